package config

import (
	"fmt"
	"net/url"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Validate checks the configuration for invalid values.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", cfg.Server.Port)
	}

	if cfg.Crawler.MaxPages < 1 {
		return fmt.Errorf("crawler.max_pages must be >= 1, got %d", cfg.Crawler.MaxPages)
	}
	if cfg.Crawler.MaxProductsPerPage < 1 {
		return fmt.Errorf("crawler.max_products_per_page must be >= 1, got %d", cfg.Crawler.MaxProductsPerPage)
	}
	if cfg.Crawler.CrawlTimeout <= 0 {
		return fmt.Errorf("crawler.crawl_timeout must be > 0")
	}
	if cfg.Crawler.PolitenessDelay < 0 {
		return fmt.Errorf("crawler.politeness_delay must be >= 0")
	}

	if cfg.Fetcher.Type != "http" && cfg.Fetcher.Type != "browser" {
		return fmt.Errorf("fetcher.type must be 'http' or 'browser', got %q", cfg.Fetcher.Type)
	}
	if cfg.Fetcher.RequestTimeout <= 0 {
		return fmt.Errorf("fetcher.request_timeout must be > 0")
	}
	if cfg.Fetcher.MaxBodySize <= 0 {
		return fmt.Errorf("fetcher.max_body_size must be > 0")
	}
	if cfg.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must be >= 0")
	}

	switch cfg.Storage.Type {
	case "postgres":
		if cfg.Storage.DSN == "" {
			return fmt.Errorf("storage.dsn is required for the postgres backend: %w", types.ErrMissingConfig)
		}
	case "mongodb":
		if cfg.Storage.MongoURI == "" {
			return fmt.Errorf("storage.mongo_uri is required for the mongodb backend: %w", types.ErrMissingConfig)
		}
	case "file":
		if cfg.Storage.OutputPath == "" {
			return fmt.Errorf("storage.output_path is required for the file backend: %w", types.ErrMissingConfig)
		}
	default:
		return fmt.Errorf("storage.type %q is not supported (valid: postgres, mongodb, file)", cfg.Storage.Type)
	}
	if cfg.Storage.BatchSize < 1 {
		return fmt.Errorf("storage.batch_size must be >= 1, got %d", cfg.Storage.BatchSize)
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be debug/info/warn/error, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		return fmt.Errorf("logging.format must be 'text' or 'json', got %q", cfg.Logging.Format)
	}

	return nil
}

// ValidateURL checks if a URL string is valid as a crawl seed.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w: %v", types.ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", types.ErrInvalidURL, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: URL must have a host", types.ErrInvalidURL)
	}
	return nil
}
