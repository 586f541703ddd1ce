package extract

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// minContainerMatches is the acceptance threshold for a container
// selector group. Fewer than 3 matches is indistinguishable from a
// false positive (a nav item or banner incidentally carrying a product
// class), so the group is rejected and the next one is tried.
const minContainerMatches = 3

// containerGroup is one entry in the ordered container discovery list.
type containerGroup struct {
	name     string
	selector string
}

// containerGroups are tried in order, most platform-specific first.
// The first group yielding at least minContainerMatches elements is
// accepted and no further groups are evaluated.
var containerGroups = []containerGroup{
	{"schema_product", "[itemtype*='Product']"},
	{"shopify_card", ".product-card, .card-wrapper, .grid-product"},
	{"woocommerce", ".woocommerce-loop-product, li.product"},
	{"generic_product", ".product, .product-item, .product-tile"},
	{"product_class", "[class*='product-'], [class*='product_']"},
	{"item_class", "[class*='item-'], [class*='item_']"},
}

// Field fallback chains. Within one chain the first strategy that
// produces a candidate wins; later entries are never attempted.
var (
	nameChain = []strategy{
		selectText(".product-title, .product-name, .product__title, .woocommerce-loop-product__title, .card__heading"),
		selectAttrOrText("[itemprop='name'], [data-product-title]", "content"),
		selectText("a"),
		selectText("h1, h2, h3, h4"),
	}

	priceChain = []strategy{
		selectAttrOrText("[itemprop='price'], [data-price]", "content"),
		selectText("[class*='price']"),
		func(el Element) (string, bool) { return currencyAmount(el.Text()) },
	}

	descriptionChain = []strategy{
		selectText("[itemprop='description']"),
		selectText("[class*='description'], [class*='excerpt']"),
		selectText("p"),
	}
)

// minDescriptionLen treats very short matches ("...", "New!") as not
// found so the chain keeps looking.
const minDescriptionLen = 10

// maxDescriptionLen is the storage column width for descriptions.
const maxDescriptionLen = 500

// imageAttrs is the lazy-load attribute priority order for <img>.
var imageAttrs = []string{"src", "data-src", "data-lazy-src", "data-original", "srcset"}

// ListingExtractor locates repeated product containers on a listing
// page and extracts a ProductRecord from each.
type ListingExtractor struct {
	logger *slog.Logger
}

// NewListingExtractor creates a listing extractor.
func NewListingExtractor(logger *slog.Logger) *ListingExtractor {
	return &ListingExtractor{
		logger: logger.With("component", "listing_extractor"),
	}
}

// Extract returns up to maxProducts records from a listing page.
// Containers whose name fails validation are skipped; every other
// field degrades to a default rather than rejecting the record, since
// name is the only field without a safe default.
func (x *ListingExtractor) Extract(doc *goquery.Document, pageURL string, maxProducts int) []*types.ProductRecord {
	base, err := url.Parse(pageURL)
	if err != nil {
		x.logger.Warn("unparseable page URL", "url", pageURL, "error", err)
		return nil
	}

	containers := x.findContainers(doc)
	if len(containers) == 0 {
		return nil
	}

	if maxProducts > 0 && len(containers) > maxProducts {
		containers = containers[:maxProducts]
	}

	var records []*types.ProductRecord
	for _, el := range containers {
		rec := x.extractRecord(el, base, pageURL)
		if rec != nil {
			records = append(records, rec)
		}
	}

	x.logger.Debug("listing extracted",
		"url", pageURL,
		"containers", len(containers),
		"records", len(records),
	)

	return records
}

// findContainers runs container discovery: the ordered selector groups
// first, then the currency-pattern fallback for bespoke templates with
// no recognizable class names.
func (x *ListingExtractor) findContainers(doc *goquery.Document) []Element {
	root := NewElement(doc.Selection)

	for _, group := range containerGroups {
		matches := root.SelectAll(group.selector)
		if len(matches) >= minContainerMatches {
			x.logger.Debug("container group accepted",
				"group", group.name,
				"matches", len(matches),
			)
			return matches
		}
	}

	return x.pricePatternContainers(doc)
}

// extractRecord runs the per-field fallback chains over one container.
func (x *ListingExtractor) extractRecord(el Element, base *url.URL, pageURL string) *types.ProductRecord {
	name, ok := x.extractName(el)
	if !ok {
		return nil
	}

	price := 0.0
	if raw, ok := firstMatch(el, priceChain); ok {
		price = ParsePrice(raw)
	}

	description := ""
	for _, s := range descriptionChain {
		if text, ok := s(el); ok && len(text) >= minDescriptionLen {
			description = Truncate(text, maxDescriptionLen)
			break
		}
	}
	if description == "" {
		description = "Product: " + name
	}

	return &types.ProductRecord{
		Name:        name,
		Price:       price,
		Description: description,
		ImageURL:    x.extractImage(el, base),
		ProductURL:  x.extractProductURL(el, base, pageURL),
		Category:    Category(name),
		Colors:      Colors(name),
		Sizes:       Sizes(name),
		InStock:     true,
		SourceURL:   pageURL,
	}
}

// extractName walks the name chain, validating each candidate. A
// candidate that fails validation does not stop the chain; a container
// where no candidate validates yields no product.
func (x *ListingExtractor) extractName(el Element) (string, bool) {
	for _, s := range nameChain {
		candidate, ok := s(el)
		if !ok {
			continue
		}
		if ValidateName(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// extractImage reads the first img's source, trying lazy-load
// attribute names in priority order.
func (x *ListingExtractor) extractImage(el Element, base *url.URL) string {
	img, ok := el.SelectOne("img")
	if !ok {
		return ""
	}
	for _, attr := range imageAttrs {
		v, ok := img.Attr(attr)
		if !ok || v == "" {
			continue
		}
		if attr == "srcset" {
			v = firstSrcsetURL(v)
			if v == "" {
				continue
			}
		}
		return ResolveURL(base, v)
	}
	return ""
}

// extractProductURL resolves the first link, defaulting to the page.
func (x *ListingExtractor) extractProductURL(el Element, base *url.URL, pageURL string) string {
	link, ok := el.SelectOne("a")
	if !ok {
		return pageURL
	}
	href, ok := link.Attr("href")
	if !ok || href == "" {
		return pageURL
	}
	resolved := ResolveURL(base, href)
	if resolved == "" {
		return pageURL
	}
	return resolved
}

// ResolveURL makes a possibly relative or protocol-relative reference
// absolute against the page's base URL.
func ResolveURL(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return base.ResolveReference(parsed).String()
}

// firstSrcsetURL reduces a srcset value to its first URL.
func firstSrcsetURL(srcset string) string {
	first := srcset
	if idx := strings.IndexByte(first, ','); idx >= 0 {
		first = first[:idx]
	}
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
