package crawler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/extract"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/fetcher"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/pipeline"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Crawler walks one storefront breadth-first, extracting product
// records from every page inside the budget.
type Crawler struct {
	fetcher fetcher.Fetcher
	listing *extract.ListingExtractor
	feed    *extract.FeedExtractor
	pipe    *pipeline.Pipeline
	limiter *rate.Limiter
	logger  *slog.Logger

	maxPages           int
	maxProductsPerPage int
}

// Result holds everything a crawl produced. Products may be non-empty
// even when Crawl returns an error.
type Result struct {
	BusinessName string
	Products     []*types.ProductRecord
	PagesVisited int
}

func New(f fetcher.Fetcher, cfg config.CrawlerConfig, logger *slog.Logger) *Crawler {
	log := logger.With("component", "crawler")
	return &Crawler{
		fetcher:            f,
		listing:            extract.NewListingExtractor(logger),
		feed:               extract.NewFeedExtractor(f, logger),
		pipe:               pipeline.Default(logger),
		limiter:            rate.NewLimiter(rate.Every(cfg.PolitenessDelay), 1),
		logger:             log,
		maxPages:           cfg.MaxPages,
		maxProductsPerPage: cfg.MaxProductsPerPage,
	}
}

// Crawl fetches pages starting from seedURL until the frontier drains
// or the page budget is spent. maxPages <= 0 falls back to the
// configured budget. When ctx expires mid-crawl the products gathered
// so far are returned alongside ErrCrawlTimeout.
func (c *Crawler) Crawl(ctx context.Context, seedURL string, maxPages int) (*Result, error) {
	if maxPages <= 0 {
		maxPages = c.maxPages
	}

	session, err := NewSession(seedURL, maxPages)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	c.logger.Info("crawl started", "seed", seedURL, "max_pages", maxPages)

	for session.Active() {
		if err := c.limiter.Wait(ctx); err != nil {
			result.PagesVisited = session.VisitedCount()
			return result, fmt.Errorf("crawl of %s: %w", seedURL, types.ErrCrawlTimeout)
		}

		pageURL, ok := session.Next()
		if !ok {
			break
		}

		resp, err := c.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				result.PagesVisited = session.VisitedCount()
				return result, fmt.Errorf("crawl of %s: %w", seedURL, types.ErrCrawlTimeout)
			}
			c.logger.Warn("page fetch failed", "url", pageURL, "error", err)
			continue
		}

		doc, err := resp.Document()
		if err != nil {
			c.logger.Warn("page parse failed", "url", pageURL, "error", err)
			continue
		}

		if result.BusinessName == "" {
			result.BusinessName = extract.SiteName(doc)
		}

		records := c.extractPage(ctx, pageURL, doc)
		for _, rec := range records {
			processed, err := c.pipe.Process(rec)
			if err != nil {
				c.logger.Warn("record dropped", "url", pageURL, "error", err)
				continue
			}
			if processed != nil {
				result.Products = append(result.Products, processed)
			}
		}

		c.enqueueLinks(session, doc, pageURL)
		c.logger.Debug("page done",
			"url", pageURL,
			"kind", Classify(pageURL, doc).String(),
			"products", len(records),
			"queued", session.QueueLen())
	}

	result.PagesVisited = session.VisitedCount()
	c.logger.Info("crawl finished",
		"seed", seedURL,
		"pages", result.PagesVisited,
		"products", len(result.Products))

	if len(result.Products) == 0 {
		return result, fmt.Errorf("crawl of %s: %w", seedURL, types.ErrNoProducts)
	}
	return result, nil
}

// extractPage picks the extraction path for one fetched page. Product
// pages try the structured feed first and fall back to the heuristic
// extractor when the feed is unavailable.
func (c *Crawler) extractPage(ctx context.Context, pageURL string, doc *goquery.Document) []*types.ProductRecord {
	if Classify(pageURL, doc) == ProductPage {
		if rec := c.feed.Extract(ctx, pageURL); rec != nil {
			return []*types.ProductRecord{rec}
		}
	}
	return c.listing.Extract(doc, pageURL, c.maxProductsPerPage)
}

// enqueueLinks pushes every same-domain anchor target onto the
// frontier. Session handles dedup and the budget.
func (c *Crawler) enqueueLinks(session *Session, doc *goquery.Document, pageURL string) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return
	}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		if abs, ok := NormalizeHref(base, href); ok {
			session.Enqueue(abs)
		}
	})
}

// IsPartial reports whether err carries results worth persisting.
func IsPartial(err error) bool {
	return errors.Is(err, types.ErrCrawlTimeout)
}
