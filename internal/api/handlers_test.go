package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/crawler"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/fetcher"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/storage"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const testShopListing = `<!DOCTYPE html>
<html>
<head><title>Acme Outfitters | All</title></head>
<body>
<div class="product-card"><a href="/item/1">Classic Zip Hoodie</a><span class="price">$59.99</span></div>
<div class="product-card"><a href="/item/2">Waxed Field Jacket</a><span class="price">$189.00</span></div>
<div class="product-card"><a href="/item/3">Basic Tee</a><span class="price">$24.50</span></div>
</body>
</html>`

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(testShopListing))
	}))
	t.Cleanup(shop.Close)

	cfg := config.DefaultConfig()
	cfg.Crawler.MaxPages = 5
	cfg.Crawler.PolitenessDelay = time.Millisecond
	cfg.Crawler.CrawlTimeout = 10 * time.Second
	cfg.Storage.Type = "file"
	cfg.Storage.OutputPath = filepath.Join(t.TempDir(), "out.json")

	f, err := fetcher.NewHTTPFetcher(cfg, testLogger)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })

	store, err := storage.NewFileStore(cfg.Storage.OutputPath, testLogger)
	if err != nil {
		t.Fatal(err)
	}

	c := crawler.New(f, cfg.Crawler, testLogger)
	return NewServer(*cfg, c, store, testLogger), shop
}

func postJSON(t *testing.T, handler http.Handler, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestHandleCrawl(t *testing.T) {
	server, shop := newTestServer(t)

	rr := postJSON(t, server.Handler(), "/api/crawl", crawlRequest{URL: shop.URL})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp crawlResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.BusinessID == "" {
		t.Error("expected a business ID")
	}
	if resp.BusinessName != "Acme Outfitters" {
		t.Errorf("business name = %q", resp.BusinessName)
	}
	if resp.ProductsFound != 3 {
		t.Errorf("products found = %d, want 3", resp.ProductsFound)
	}
}

func TestHandleCrawlBadRequests(t *testing.T) {
	server, _ := newTestServer(t)
	h := server.Handler()

	tests := []struct {
		name    string
		payload any
	}{
		{"missing url", crawlRequest{}},
		{"bad scheme", crawlRequest{URL: "ftp://example.com"}},
		{"not json", "plain text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postJSON(t, h, "/api/crawl", tt.payload)
			if rr.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rr.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
				t.Fatalf("decode error body: %v", err)
			}
			if body["detail"] == "" {
				t.Errorf("error body should carry a detail message, got %q", rr.Body.String())
			}
		})
	}
}

func TestHandleCrawlNoProducts(t *testing.T) {
	server, _ := newTestServer(t)

	empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><head><title>Empty</title></head><body><p>nothing</p></body></html>`))
	}))
	defer empty.Close()

	rr := postJSON(t, server.Handler(), "/api/crawl", crawlRequest{URL: empty.URL})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for a site with no products", rr.Code)
	}
}

func TestHandleCrawlAll(t *testing.T) {
	server, shop := newTestServer(t)
	h := server.Handler()

	// Seed one business via a normal crawl.
	if rr := postJSON(t, h, "/api/crawl", crawlRequest{URL: shop.URL}); rr.Code != http.StatusOK {
		t.Fatalf("seed crawl failed: %d", rr.Code)
	}

	rr := postJSON(t, h, "/api/crawl/all", struct{}{})
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Businesses int             `json:"businesses"`
		Results    []crawlResponse `json:"results"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Businesses != 1 || len(resp.Results) != 1 {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Results[0].ProductsFound != 3 {
		t.Errorf("recrawl found %d products", resp.Results[0].ProductsFound)
	}
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	server.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "ok" || body["storage"] != "file" {
		t.Errorf("health = %v", body)
	}
}

func TestHandleListBusinesses(t *testing.T) {
	server, shop := newTestServer(t)
	h := server.Handler()

	req := httptest.NewRequest(http.MethodGet, "/api/businesses", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if body := rr.Body.String(); body == "" || body[0] != '[' {
		t.Errorf("expected a JSON array, got %q", body)
	}

	postJSON(t, h, "/api/crawl", crawlRequest{URL: shop.URL})

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/businesses", nil))
	var businesses []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &businesses); err != nil {
		t.Fatal(err)
	}
	if len(businesses) != 1 {
		t.Errorf("businesses = %v", businesses)
	}
}
