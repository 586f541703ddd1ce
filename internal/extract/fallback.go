package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// maxFallbackCandidates bounds the currency scan on pathological pages.
const maxFallbackCandidates = 50

// currencyTextXPath matches text nodes containing a currency symbol.
const currencyTextXPath = `//text()[contains(., '$') or contains(., '€') or contains(., '£')]`

// precedingHeadingXPath finds the nearest heading before a node in
// document order.
const precedingHeadingXPath = `(preceding::h1 | preceding::h2 | preceding::h3 | preceding::h4)[last()]`

// pricePatternContainers is the last-resort container discovery for
// bespoke templates with no recognizable class names: any element
// whose text carries a currency symbol and that has a nearby preceding
// heading is treated as a product container. XPath's preceding axis
// makes the heading lookup direct, which CSS selectors cannot express.
func (x *ListingExtractor) pricePatternContainers(doc *goquery.Document) []Element {
	if len(doc.Nodes) == 0 {
		return nil
	}
	root := doc.Nodes[0]

	textNodes, err := htmlquery.QueryAll(root, currencyTextXPath)
	if err != nil {
		x.logger.Warn("currency scan failed", "error", err)
		return nil
	}

	var containers []Element
	seen := make(map[*html.Node]struct{})

	for _, textNode := range textNodes {
		if len(containers) >= maxFallbackCandidates {
			break
		}

		parent := textNode.Parent
		if parent == nil || parent.Type != html.ElementNode {
			continue
		}
		if parent.Data == "script" || parent.Data == "style" {
			continue
		}
		if _, dup := seen[parent]; dup {
			continue
		}

		heading, err := htmlquery.Query(textNode, precedingHeadingXPath)
		if err != nil || heading == nil {
			continue
		}
		if strings.TrimSpace(htmlquery.InnerText(heading)) == "" {
			continue
		}

		// The price's parent rarely contains the heading itself, so
		// widen to the shared ancestor when one is close by.
		container := containingBlock(parent, heading)
		if _, dup := seen[container]; dup {
			continue
		}

		seen[parent] = struct{}{}
		seen[container] = struct{}{}
		containers = append(containers, NewElement(goquery.NewDocumentFromNode(container).Selection))
	}

	if len(containers) > 0 {
		x.logger.Debug("price-pattern fallback accepted", "containers", len(containers))
	}
	return containers
}

// containingBlock walks up from the price element looking for an
// ancestor that also contains the heading, giving the extractor a
// container with both the name and the price. Capped at a few levels
// so one match cannot swallow the whole page.
func containingBlock(priceEl, heading *html.Node) *html.Node {
	const maxClimb = 4

	node := priceEl
	for i := 0; i < maxClimb && node.Parent != nil; i++ {
		if node.Parent.Type != html.ElementNode || node.Parent.Data == "body" || node.Parent.Data == "html" {
			break
		}
		node = node.Parent
		if containsNode(node, heading) {
			return node
		}
	}
	return priceEl
}

// containsNode reports whether root's subtree includes target.
func containsNode(root, target *html.Node) bool {
	for n := target; n != nil; n = n.Parent {
		if n == root {
			return true
		}
	}
	return false
}
