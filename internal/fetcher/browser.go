package fetcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// BrowserFetcher implements Fetcher using a headless browser via Rod.
// It satisfies the same contract as HTTPFetcher; it is selected when a
// storefront only renders its product grid client-side.
type BrowserFetcher struct {
	browser *rod.Browser
	cfg     *config.FetcherConfig
	logger  *slog.Logger
}

// NewBrowserFetcher launches a headless Chromium and connects to it.
func NewBrowserFetcher(cfg *config.Config, logger *slog.Logger) (*BrowserFetcher, error) {
	launchURL, err := launcher.New().
		Headless(true).
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("no-sandbox").
		Set("disable-blink-features", "AutomationControlled").
		Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(launchURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	bf := &BrowserFetcher{
		browser: browser,
		cfg:     &cfg.Fetcher,
		logger:  logger.With("component", "browser_fetcher"),
	}

	bf.logger.Info("browser fetcher ready")
	return bf, nil
}

// Fetch navigates to a URL and returns the rendered page HTML.
func (bf *BrowserFetcher) Fetch(ctx context.Context, rawURL string) (*types.Response, error) {
	start := time.Now()

	page, err := stealth.Page(bf.browser)
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: fmt.Errorf("open page: %w", err)}
	}
	defer page.Close()

	page = page.Context(ctx)

	if len(bf.cfg.UserAgents) > 0 {
		err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{
			UserAgent: bf.cfg.UserAgents[0],
		})
		if err != nil {
			bf.logger.Warn("failed to set user agent", "error", err)
		}
	}

	timeout := bf.cfg.RequestTimeout
	if err := page.Timeout(timeout).Navigate(rawURL); err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: err}
	}

	// Give client-side rendering a chance to settle; a stall here is
	// not fatal, the DOM snapshot below is still usable.
	if err := page.Timeout(timeout).WaitStable(300 * time.Millisecond); err != nil {
		bf.logger.Warn("page stability timeout, continuing", "url", rawURL, "error", err)
	}

	html, err := page.HTML()
	if err != nil {
		return nil, &types.FetchError{URL: rawURL, Err: fmt.Errorf("read rendered HTML: %w", err)}
	}

	info, err := page.Info()
	finalURL := rawURL
	if err == nil && info.URL != "" {
		finalURL = info.URL
	}

	resp := types.NewRenderedResponse(rawURL, []byte(html), finalURL, time.Since(start))

	bf.logger.Debug("rendered fetch complete",
		"url", rawURL,
		"size", len(html),
		"duration", resp.FetchDuration,
	)

	return resp, nil
}

// Close shuts down the browser.
func (bf *BrowserFetcher) Close() error {
	return bf.browser.Close()
}

// Type returns the fetcher type identifier.
func (bf *BrowserFetcher) Type() string {
	return "browser"
}
