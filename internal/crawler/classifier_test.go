package crawler

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func classifyHTML(t *testing.T, pageURL, html string) PageKind {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return Classify(pageURL, doc)
}

func TestClassify(t *testing.T) {
	const plain = `<html><body><p>hello</p></body></html>`
	const ogProduct = `<html><head><meta property="og:type" content="product"></head><body></body></html>`

	tests := []struct {
		name string
		url  string
		html string
		want PageKind
	}{
		{"products path", "https://shop.example.com/products/hoodie", plain, ProductPage},
		{"product path singular", "https://shop.example.com/product/hoodie", plain, ProductPage},
		{"path case insensitive", "https://shop.example.com/Products/hoodie", plain, ProductPage},
		{"og type product", "https://shop.example.com/items/hoodie", ogProduct, ProductPage},
		{"collection page", "https://shop.example.com/collections/all", plain, ListingPage},
		{"home page", "https://shop.example.com/", plain, ListingPage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyHTML(t, tt.url, tt.html); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestClassifyNilDocument(t *testing.T) {
	if got := Classify("https://shop.example.com/about", nil); got != ListingPage {
		t.Errorf("nil document should default to listing, got %v", got)
	}
}
