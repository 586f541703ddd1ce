package types

import (
	"bytes"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Response is the result of fetching a URL.
type Response struct {
	// URL is the URL that was requested.
	URL string

	// FinalURL is the URL after any redirects.
	FinalURL string

	// StatusCode is the HTTP status code.
	StatusCode int

	// Headers are the response HTTP headers.
	Headers http.Header

	// Body is the raw response body.
	Body []byte

	// ContentType is the MIME type of the response.
	ContentType string

	// FetchDuration is how long the fetch took.
	FetchDuration time.Duration

	// FetchedAt is when the response was received.
	FetchedAt time.Time

	// doc is the parsed document, built lazily.
	doc *goquery.Document
}

// NewResponse creates a Response from an http.Response whose body has
// already been read.
func NewResponse(url string, httpResp *http.Response, body []byte, duration time.Duration) *Response {
	return &Response{
		URL:           url,
		FinalURL:      httpResp.Request.URL.String(),
		StatusCode:    httpResp.StatusCode,
		Headers:       httpResp.Header,
		Body:          body,
		ContentType:   httpResp.Header.Get("Content-Type"),
		FetchDuration: duration,
		FetchedAt:     time.Now(),
	}
}

// NewRenderedResponse creates a Response from headless browser output.
func NewRenderedResponse(url string, body []byte, finalURL string, duration time.Duration) *Response {
	return &Response{
		URL:           url,
		FinalURL:      finalURL,
		StatusCode:    http.StatusOK,
		Headers:       make(http.Header),
		Body:          body,
		ContentType:   "text/html",
		FetchDuration: duration,
		FetchedAt:     time.Now(),
	}
}

// Document returns the parsed goquery document, initializing it on
// first use. Containers extracted from it are read-only views, so a
// single parse is shared by the classifier and the extractors.
func (r *Response) Document() (*goquery.Document, error) {
	if r.doc != nil {
		return r.doc, nil
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
	if err != nil {
		return nil, err
	}
	r.doc = doc
	return doc, nil
}

// IsSuccess returns true if the response status is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
