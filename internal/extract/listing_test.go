package extract

import (
	"log/slog"
	"os"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

const testListingHTML = `<!DOCTYPE html>
<html>
<head><title>Acme Outfitters | Shop All</title></head>
<body>
<div class="collection">
	<div class="product-card">
		<a href="/products/classic-hoodie"><img src="/img/hoodie.jpg" alt=""></a>
		<h3 class="product-title">Classic Zip Hoodie</h3>
		<span class="price">$59.99</span>
		<p class="description">A heavyweight fleece hoodie with a two-way zip.</p>
	</div>
	<div class="product-card">
		<a href="/products/field-jacket"><img data-src="/img/jacket.jpg" alt=""></a>
		<h3 class="product-title">Waxed Field Jacket</h3>
		<span class="price">$189.00</span>
	</div>
	<div class="product-card">
		<a href="/products/basic-tee"><img srcset="/img/tee-400.jpg 400w, /img/tee-800.jpg 800w" alt=""></a>
		<h3 class="product-title">Basic Tee Black</h3>
		<span class="price">$24.50</span>
	</div>
	<div class="product-card">
		<a href="/products/chino-pants"><img src="https://cdn.example.com/chino.jpg" alt=""></a>
		<h3 class="product-title">Slim Fit Chino Pants</h3>
		<span class="price">Sale from $45</span>
	</div>
	<div class="product-card">
		<a href="/products/gift"><img src="/img/gift.jpg" alt=""></a>
		<h3 class="product-title">Quick View</h3>
		<span class="price">$10.00</span>
	</div>
</div>
</body>
</html>`

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test HTML: %v", err)
	}
	return doc
}

func TestListingExtract(t *testing.T) {
	x := NewListingExtractor(testLogger)
	doc := parseDoc(t, testListingHTML)

	records := x.Extract(doc, "https://acme.example.com/collections/all", 0)

	// Five cards, one with a placeholder name.
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	first := records[0]
	if first.Name != "Classic Zip Hoodie" {
		t.Errorf("name = %q", first.Name)
	}
	if first.Price != 59.99 {
		t.Errorf("price = %v", first.Price)
	}
	if first.Description != "A heavyweight fleece hoodie with a two-way zip." {
		t.Errorf("description = %q", first.Description)
	}
	if first.ImageURL != "https://acme.example.com/img/hoodie.jpg" {
		t.Errorf("image = %q", first.ImageURL)
	}
	if first.ProductURL != "https://acme.example.com/products/classic-hoodie" {
		t.Errorf("product url = %q", first.ProductURL)
	}
	if first.Category != "Hoodies & Sweatshirts" {
		t.Errorf("category = %q", first.Category)
	}
	if !first.InStock {
		t.Error("expected in stock by default")
	}

	// Card without a description falls back to the synthesized one.
	second := records[1]
	if second.Description != "Product: Waxed Field Jacket" {
		t.Errorf("fallback description = %q", second.Description)
	}
	if second.ImageURL != "https://acme.example.com/img/jacket.jpg" {
		t.Errorf("lazy-load image = %q", second.ImageURL)
	}

	// srcset reduces to its first URL.
	third := records[2]
	if third.ImageURL != "https://acme.example.com/img/tee-400.jpg" {
		t.Errorf("srcset image = %q", third.ImageURL)
	}
	if len(third.Colors) != 1 || third.Colors[0] != "black" {
		t.Errorf("colors = %v", third.Colors)
	}

	// Price buried in sale copy still parses.
	fourth := records[3]
	if fourth.Price != 45 {
		t.Errorf("sale price = %v", fourth.Price)
	}
}

func TestListingExtractMaxProducts(t *testing.T) {
	x := NewListingExtractor(testLogger)
	doc := parseDoc(t, testListingHTML)

	records := x.Extract(doc, "https://acme.example.com/", 2)
	if len(records) != 2 {
		t.Fatalf("expected 2 records with cap, got %d", len(records))
	}
}

// Two matches of a selector group are below the acceptance threshold,
// so discovery moves on rather than extracting navigation noise.
func TestListingContainerThreshold(t *testing.T) {
	const html = `<html><body>
		<div class="product-card"><a href="/p/1">Nav Item One</a></div>
		<div class="product-card"><a href="/p/2">Nav Item Two</a></div>
	</body></html>`

	x := NewListingExtractor(testLogger)
	doc := parseDoc(t, html)

	records := x.Extract(doc, "https://acme.example.com/", 0)
	if len(records) != 0 {
		t.Fatalf("expected no records below threshold, got %d", len(records))
	}
}

// A selector group earlier in the list wins even when a later group
// also matches.
func TestListingContainerOrder(t *testing.T) {
	const html = `<html><body>
		<div class="product-card"><h3>Alpha Hoodie</h3><span class="price">$1</span></div>
		<div class="product-card"><h3>Beta Hoodie</h3><span class="price">$2</span></div>
		<div class="product-card"><h3>Gamma Hoodie</h3><span class="price">$3</span></div>
		<li class="product"><h3>Delta Hoodie</h3></li>
		<li class="product"><h3>Epsilon Hoodie</h3></li>
		<li class="product"><h3>Zeta Hoodie</h3></li>
	</body></html>`

	x := NewListingExtractor(testLogger)
	doc := parseDoc(t, html)

	records := x.Extract(doc, "https://acme.example.com/", 0)
	if len(records) != 3 {
		t.Fatalf("expected 3 records from the first group, got %d", len(records))
	}
	if records[0].Name != "Alpha Hoodie" {
		t.Errorf("first record = %q", records[0].Name)
	}
}

// Pages with no recognizable container classes fall back to the
// currency-pattern scan.
func TestListingCurrencyFallback(t *testing.T) {
	const html = `<html><body>
		<div class="thing">
			<h2>Handmade Mug</h2>
			<div>A wheel-thrown ceramic mug. $28.00</div>
		</div>
		<div class="thing">
			<h2>Walnut Serving Board</h2>
			<div>Solid walnut, food-safe finish. $64.00</div>
		</div>
	</body></html>`

	x := NewListingExtractor(testLogger)
	doc := parseDoc(t, html)

	records := x.Extract(doc, "https://acme.example.com/", 0)
	if len(records) != 2 {
		t.Fatalf("expected 2 fallback records, got %d", len(records))
	}
	if records[0].Name != "Handmade Mug" {
		t.Errorf("name = %q", records[0].Name)
	}
	if records[0].Price != 28 {
		t.Errorf("price = %v", records[0].Price)
	}
}

func TestSiteName(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"title with separator", `<html><head><title>Acme Outfitters | Home</title></head><body></body></html>`, "Acme Outfitters"},
		{"title plain", `<html><head><title>Acme Outfitters</title></head><body></body></html>`, "Acme Outfitters"},
		{"og site name", `<html><head><meta property="og:site_name" content="Acme"></head><body></body></html>`, "Acme"},
		{"h1 fallback", `<html><body><h1>Acme Shop</h1></body></html>`, "Acme Shop"},
		{"nothing", `<html><body><p>hi</p></body></html>`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseDoc(t, tt.html)
			if got := SiteName(doc); got != tt.want {
				t.Errorf("SiteName = %q, want %q", got, tt.want)
			}
		})
	}
}
