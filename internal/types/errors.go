package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
var (
	ErrNoProducts    = errors.New("no products found")
	ErrCrawlTimeout  = errors.New("crawl timed out")
	ErrNotHTML       = errors.New("response is not HTML")
	ErrInvalidURL    = errors.New("invalid URL")
	ErrMissingConfig = errors.New("missing required configuration")
)

// FetchError wraps errors that occur while fetching a page.
// Fetch errors are always recoverable at the crawl level: the URL
// is skipped and the crawl continues.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("fetch error for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("fetch error for %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ExtractError wraps errors that occur while extracting a single
// container. Recovered per container: log and continue with the next.
type ExtractError struct {
	URL string
	Err error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extract error for %s: %v", e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

// StorageError wraps errors from a storage backend.
type StorageError struct {
	Backend string
	Err     error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error (%s): %v", e.Backend, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
