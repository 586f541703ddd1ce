package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element is a narrow read-only view over one DOM subtree. Field
// extraction chains only ever need these four operations, which keeps
// the chains independent of the underlying HTML library.
type Element struct {
	sel *goquery.Selection
}

// NewElement wraps a goquery selection.
func NewElement(sel *goquery.Selection) Element {
	return Element{sel: sel}
}

// SelectOne returns the first descendant matching the CSS pattern.
func (e Element) SelectOne(pattern string) (Element, bool) {
	found := e.sel.Find(pattern).First()
	if found.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: found}, true
}

// SelectAll returns all descendants matching the CSS pattern.
func (e Element) SelectAll(pattern string) []Element {
	var out []Element
	e.sel.Find(pattern).Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

// Text returns the subtree's visible text with whitespace collapsed.
func (e Element) Text() string {
	if e.sel == nil {
		return ""
	}
	return strings.Join(strings.Fields(e.sel.Text()), " ")
}

// Attr returns the named attribute of the element itself.
func (e Element) Attr(name string) (string, bool) {
	if e.sel == nil {
		return "", false
	}
	v, ok := e.sel.Attr(name)
	return strings.TrimSpace(v), ok
}
