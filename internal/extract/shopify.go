package extract

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/fetcher"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// feedResponse is the platform's product JSON at <product path>.json.
type feedResponse struct {
	Product *feedProduct `json:"product"`
}

type feedProduct struct {
	Title       string        `json:"title"`
	BodyHTML    string        `json:"body_html"`
	ProductType string        `json:"product_type"`
	Vendor      string        `json:"vendor"`
	Options     []feedOption  `json:"options"`
	Variants    []feedVariant `json:"variants"`
	Images      []feedImage   `json:"images"`
}

type feedOption struct {
	Name string `json:"name"`
}

type feedVariant struct {
	Option1   string `json:"option1"`
	Option2   string `json:"option2"`
	Price     string `json:"price"`
	Available bool   `json:"available"`
}

type feedImage struct {
	Src string `json:"src"`
}

// FeedExtractor fetches a platform-exposed machine-readable product
// representation, bypassing heuristic HTML extraction. It applies only
// to product pages whose canonical path supports the .json transform;
// everything that can go wrong is answered with nil rather than an
// error, because "not a structured-feed platform" is a normal outcome.
type FeedExtractor struct {
	fetcher fetcher.Fetcher
	logger  *slog.Logger
}

// NewFeedExtractor creates a structured feed extractor.
func NewFeedExtractor(f fetcher.Fetcher, logger *slog.Logger) *FeedExtractor {
	return &FeedExtractor{
		fetcher: f,
		logger:  logger.With("component", "feed_extractor"),
	}
}

// Extract fetches and parses the structured feed for a product URL.
// Returns nil when the URL is not a product path, the feed is missing
// or malformed, or the feed's title fails name validation.
func (fe *FeedExtractor) Extract(ctx context.Context, productURL string) *types.ProductRecord {
	feedURL, ok := FeedURL(productURL)
	if !ok {
		return nil
	}

	resp, err := fe.fetcher.Fetch(ctx, feedURL)
	if err != nil {
		fe.logger.Debug("no structured feed", "url", feedURL, "error", err)
		return nil
	}

	var feed feedResponse
	if err := json.Unmarshal(resp.Body, &feed); err != nil || feed.Product == nil {
		fe.logger.Debug("feed missing product object", "url", feedURL)
		return nil
	}

	p := feed.Product

	name := strings.Join(strings.Fields(p.Title), " ")
	if !ValidateName(name) {
		fe.logger.Debug("feed title failed validation", "url", feedURL, "title", p.Title)
		return nil
	}

	rec := &types.ProductRecord{
		Name:       name,
		Price:      minVariantPrice(p.Variants),
		ProductURL: productURL,
		SourceURL:  productURL,
		Brand:      p.Vendor,
		InStock:    anyAvailable(p.Variants),
	}

	rec.Colors, rec.Sizes = classifyVariantOptions(p.Options, p.Variants)

	if desc := Truncate(StripTags(p.BodyHTML), maxDescriptionLen); desc != "" {
		rec.Description = desc
	} else {
		rec.Description = "Product: " + name
	}

	if p.ProductType != "" {
		rec.Category = p.ProductType
	} else {
		rec.Category = Category(name)
	}

	if len(p.Images) > 0 {
		rec.ImageURL = p.Images[0].Src
	}

	return rec
}

// FeedURL derives the structured feed URL from a product URL: the
// canonical product path with the query stripped and ".json" appended.
// Reports false for URLs without a product path.
func FeedURL(productURL string) (string, bool) {
	if !strings.Contains(productURL, "/products/") {
		return "", false
	}
	canonical := productURL
	if idx := strings.IndexByte(canonical, '?'); idx >= 0 {
		canonical = canonical[:idx]
	}
	canonical = strings.TrimSuffix(canonical, "/")
	if strings.HasSuffix(canonical, ".json") {
		return canonical, true
	}
	return canonical + ".json", true
}

// classifyVariantOptions splits variant option values into sizes and
// colors: an option is a size when its declared option name contains
// "size" or its value looks numeric, otherwise it is a color.
func classifyVariantOptions(options []feedOption, variants []feedVariant) (colors, sizes []string) {
	optionName := func(i int) string {
		if i < len(options) {
			return strings.ToLower(options[i].Name)
		}
		return ""
	}

	colorSeen := make(map[string]struct{})
	sizeSeen := make(map[string]struct{})

	classify := func(value string, declaredName string) {
		if value == "" {
			return
		}
		norm := strings.ToLower(strings.TrimSpace(value))
		if strings.Contains(declaredName, "size") || containsDigit(value) {
			if _, dup := sizeSeen[norm]; !dup {
				sizeSeen[norm] = struct{}{}
				sizes = append(sizes, norm)
			}
			return
		}
		if _, dup := colorSeen[norm]; !dup {
			colorSeen[norm] = struct{}{}
			colors = append(colors, norm)
		}
	}

	for _, v := range variants {
		classify(v.Option1, optionName(0))
		classify(v.Option2, optionName(1))
	}
	return colors, sizes
}

// minVariantPrice is the lowest parseable variant price, or 0.
func minVariantPrice(variants []feedVariant) float64 {
	min := 0.0
	found := false
	for _, v := range variants {
		if v.Price == "" {
			continue
		}
		p := ParsePrice(v.Price)
		if p <= 0 {
			continue
		}
		if !found || p < min {
			min = p
			found = true
		}
	}
	return min
}

// anyAvailable reports whether at least one variant is in stock.
// An empty variant list means the feed had nothing to say; default to
// available, matching the heuristic extractor.
func anyAvailable(variants []feedVariant) bool {
	if len(variants) == 0 {
		return true
	}
	for _, v := range variants {
		if v.Available {
			return true
		}
	}
	return false
}

func containsDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
