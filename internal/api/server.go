package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/crawler"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/storage"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

// Server exposes the crawl REST API.
type Server struct {
	cfg     config.Config
	crawler *crawler.Crawler
	store   storage.Store
	logger  *slog.Logger

	httpServer *http.Server
}

// NewServer wires the router and returns a server ready to Start.
func NewServer(cfg config.Config, c *crawler.Crawler, store storage.Store, logger *slog.Logger) *Server {
	s := &Server{
		cfg:     cfg,
		crawler: c,
		store:   store,
		logger:  logger.With("component", "api_server"),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.Crawler.CrawlTimeout + 30*time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/crawl", s.handleCrawl)
		r.Post("/crawl/all", s.handleCrawlAll)
		r.Get("/businesses", s.handleListBusinesses)
	})

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler returns the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// crawlAndPersist runs one crawl and stores the results. Partial
// results from a timed-out crawl are still persisted before the
// timeout is reported.
func (s *Server) crawlAndPersist(ctx context.Context, seedURL, businessName, businessID string, maxPages int) (*types.Business, int, error) {
	crawlCtx, cancel := context.WithTimeout(ctx, s.cfg.Crawler.CrawlTimeout)
	defer cancel()

	result, crawlErr := s.crawler.Crawl(crawlCtx, seedURL, maxPages)
	if crawlErr != nil && !crawler.IsPartial(crawlErr) {
		return nil, 0, crawlErr
	}

	name := businessName
	if name == "" {
		name = result.BusinessName
	}
	if name == "" {
		name = seedURL
	}
	business := &types.Business{
		ID:         businessID,
		Name:       name,
		WebsiteURL: seedURL,
	}

	agg := storage.NewAggregator(s.store, s.cfg.Storage.BatchSize, s.logger)
	written, persistErr := agg.Persist(ctx, business, result.Products)
	if crawlErr != nil {
		return business, written, crawlErr
	}
	return business, written, persistErr
}
