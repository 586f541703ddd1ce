package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SiteName recovers the storefront's display name from a page: the
// <title> up to the first separator, then og:site_name, then the first
// <h1>. Returns "" when the page offers none of these.
func SiteName(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		for _, sep := range []string{"|", "—", "–", "-"} {
			if idx := strings.Index(title, sep); idx > 0 {
				title = title[:idx]
				break
			}
		}
		if name := strings.TrimSpace(title); name != "" {
			return name
		}
	}

	if name, ok := doc.Find(`meta[property="og:site_name"]`).First().Attr("content"); ok {
		if name = strings.TrimSpace(name); name != "" {
			return name
		}
	}

	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}

	return ""
}
