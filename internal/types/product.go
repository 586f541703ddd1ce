package types

import (
	"strings"
	"time"
)

// ProductRecord is a single product extracted from a storefront page.
type ProductRecord struct {
	// ID is assigned by the persistence layer; empty until then.
	ID string `json:"id,omitempty"`

	// BusinessID links the record to the crawled business.
	BusinessID string `json:"business_id,omitempty"`

	// Name is the product title. Never empty: a record without a
	// validated name is not created.
	Name string `json:"name"`

	// Price is the product price. 0 when unparseable.
	Price float64 `json:"price"`

	// Description falls back to "Product: {name}" when the page has none.
	Description string `json:"description"`

	// ImageURL is an absolute image URL, or empty when no image was found.
	ImageURL string `json:"image_url,omitempty"`

	// ProductURL is the product detail page, defaulting to the page the
	// record was extracted from.
	ProductURL string `json:"url"`

	// Category is a taxonomy label derived from the name, or "Other".
	Category string `json:"category,omitempty"`

	// Brand comes from the structured feed vendor field when available.
	Brand string `json:"brand,omitempty"`

	// Colors and Sizes are derived from variant options or name tokens.
	Colors []string `json:"colors,omitempty"`
	Sizes  []string `json:"sizes,omitempty"`

	// InStock defaults to true unless a structured feed says otherwise.
	InStock bool `json:"in_stock"`

	// SourceURL is the page the record was extracted from.
	SourceURL string `json:"source_url,omitempty"`

	// CreatedAt is set when the record is handed to storage.
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// DedupKey returns the identity key for in-crawl deduplication:
// normalized name plus product URL.
func (p *ProductRecord) DedupKey() string {
	return strings.ToLower(strings.Join(strings.Fields(p.Name), " ")) + "|" + p.ProductURL
}

// Business is the storefront a crawl was run against.
type Business struct {
	ID         string    `json:"id"`
	Name       string    `json:"business_name"`
	WebsiteURL string    `json:"website_url"`
	CreatedAt  time.Time `json:"created_at"`
}
