package fetcher

import (
	"context"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Fetcher retrieves the content at a URL. Implementations differ only
// in transport (plain HTTP vs. headless rendering); the contract is
// identical, so the crawl loop never cares which one it holds.
type Fetcher interface {
	// Fetch retrieves the content at the given URL.
	Fetch(ctx context.Context, rawURL string) (*types.Response, error)

	// Close releases any resources held by the fetcher.
	Close() error

	// Type returns the fetcher type identifier.
	Type() string
}
