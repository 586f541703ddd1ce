package fetcher

import (
	"compress/gzip"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

func newTestFetcher(t *testing.T) *HTTPFetcher {
	t.Helper()
	f, err := NewHTTPFetcher(config.DefaultConfig(), testLogger)
	if err != nil {
		t.Fatalf("NewHTTPFetcher: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestHTTPFetch(t *testing.T) {
	const page = `<html><body><h1>hello</h1></body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") == "" {
			t.Error("expected a User-Agent header")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(page))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if !resp.IsSuccess() {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if string(resp.Body) != page {
		t.Errorf("body = %q", resp.Body)
	}
	if resp.ContentType != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", resp.ContentType)
	}
}

func TestHTTPFetchGzip(t *testing.T) {
	const page = `<html><body>compressed</body></html>`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		gz.Write([]byte(page))
		gz.Close()
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(resp.Body) != page {
		t.Errorf("body = %q, want decompressed page", resp.Body)
	}
}

func TestHTTPFetchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected an error for 404")
	}

	var fe *types.FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %T, want *types.FetchError", err)
	}
	if fe.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", fe.StatusCode)
	}
}

func TestHTTPFetchRejectsBinary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	_, err := f.Fetch(context.Background(), srv.URL)
	if !errors.Is(err, types.ErrNotHTML) {
		t.Errorf("err = %v, want ErrNotHTML", err)
	}
}

func TestHTTPFetchAllowsJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"product": null}`))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	resp, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(resp.Body) != `{"product": null}` {
		t.Errorf("body = %q", resp.Body)
	}
}

func TestUserAgentRotation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Fetcher.UserAgents = []string{"agent-a", "agent-b"}

	f, err := NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	first := f.nextUserAgent()
	second := f.nextUserAgent()
	if first == second {
		t.Errorf("expected rotation, got %q twice", first)
	}

	cfg.Fetcher.UserAgents = nil
	bare, err := NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatal(err)
	}
	defer bare.Close()
	if ua := bare.nextUserAgent(); ua == "" {
		t.Error("expected a fallback User-Agent")
	}
}
