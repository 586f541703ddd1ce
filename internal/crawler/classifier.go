package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageKind is the coarse classification that selects the extraction
// strategy for a fetched page.
type PageKind int

const (
	// ListingPage is the default: a collection/category page with
	// repeated product containers.
	ListingPage PageKind = iota

	// ProductPage is a single-product detail page.
	ProductPage
)

func (k PageKind) String() string {
	if k == ProductPage {
		return "product"
	}
	return "listing"
}

// productPathMarkers are URL path segments that identify product
// detail pages across the common storefront platforms.
var productPathMarkers = []string{"/products/", "/product/"}

// Classify decides between product and listing page. Rules in order:
// a product-path marker in the URL, then an Open Graph product type
// tag; first match wins, default is listing. Misclassification is
// tolerable because the listing extractor returns empty on pages with
// no repeated containers.
func Classify(pageURL string, doc *goquery.Document) PageKind {
	if u, err := url.Parse(pageURL); err == nil {
		path := strings.ToLower(u.Path)
		for _, marker := range productPathMarkers {
			if strings.Contains(path, marker) {
				return ProductPage
			}
		}
	}

	if doc != nil {
		ogType, _ := doc.Find(`meta[property="og:type"]`).First().Attr("content")
		if strings.EqualFold(strings.TrimSpace(ogType), "product") {
			return ProductPage
		}
	}

	return ListingPage
}
