package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/api"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/config"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/crawler"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/fetcher"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/storage"
	"github.com/diamond8oliver/AI-Agents-Local-Businesses-Fall-2025/internal/types"
)

var (
	cfgFile string
	verbose bool

	maxPages     int
	businessName string
	outputPath   string
	fetcherType  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shopcrawl",
		Short: "shopcrawl — product catalog crawler for small-business storefronts",
		Long: `shopcrawl crawls an online store, extracts its product catalog, and
persists the products for downstream use.

It follows same-domain links breadth-first, reads Shopify product feeds
where available, and falls back to heuristic extraction on any storefront
template.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(crawlCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the crawl API server",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := setupLogger(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	f, err := newFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	store, err := storage.Open(ctx, cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	c := crawler.New(f, cfg.Crawler, logger)
	server := api.NewServer(*cfg, c, store, logger)

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info("received signal, shutting down", "signal", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
		cancel()
	}()

	return server.Start()
}

// crawlCmd creates the "crawl" subcommand for one-off crawls.
func crawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl [url]",
		Short: "Crawl one storefront and save its catalog",
		Args:  cobra.ExactArgs(1),
		RunE:  runCrawl,
	}

	cmd.Flags().IntVarP(&maxPages, "max-pages", "m", 0, "page budget (0 = config default)")
	cmd.Flags().StringVarP(&businessName, "name", "n", "", "business name override")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write results to a JSON file instead of the configured backend")
	cmd.Flags().StringVarP(&fetcherType, "fetcher", "f", "", "fetcher type: http or browser")

	return cmd
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if fetcherType != "" {
		cfg.Fetcher.Type = fetcherType
	}
	if outputPath != "" {
		cfg.Storage.Type = "file"
		cfg.Storage.OutputPath = outputPath
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	logger := setupLogger(cfg)

	seedURL := args[0]
	if err := config.ValidateURL(seedURL); err != nil {
		return fmt.Errorf("invalid URL %q: %w", seedURL, err)
	}

	f, err := newFetcher(cfg, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	store, err := storage.Open(context.Background(), cfg.Storage, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Crawler.CrawlTimeout)
	defer cancel()

	start := time.Now()
	c := crawler.New(f, cfg.Crawler, logger)
	result, crawlErr := c.Crawl(ctx, seedURL, maxPages)
	if crawlErr != nil && !crawler.IsPartial(crawlErr) {
		return crawlErr
	}

	name := businessName
	if name == "" {
		name = result.BusinessName
	}
	if name == "" {
		name = seedURL
	}

	agg := storage.NewAggregator(store, cfg.Storage.BatchSize, logger)
	written, err := agg.Persist(context.Background(), &types.Business{
		Name:       name,
		WebsiteURL: seedURL,
	}, result.Products)
	if err != nil {
		return err
	}

	elapsed := time.Since(start).Round(time.Millisecond)
	fmt.Printf("Crawl complete in %s\n", elapsed)
	fmt.Printf("   Business:  %s\n", name)
	fmt.Printf("   Pages:     %d visited\n", result.PagesVisited)
	fmt.Printf("   Products:  %d found, %d saved\n", len(result.Products), written)
	if crawler.IsPartial(crawlErr) {
		fmt.Println("   Note:      crawl timed out, results are partial")
	}
	return nil
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("shopcrawl %s\n", config.Version)
		},
	}
}

func newFetcher(cfg *config.Config, logger *slog.Logger) (fetcher.Fetcher, error) {
	switch cfg.Fetcher.Type {
	case "browser":
		return fetcher.NewBrowserFetcher(cfg, logger)
	default:
		return fetcher.NewHTTPFetcher(cfg, logger)
	}
}

// setupLogger builds the logger from the logging config; the verbose
// flag overrides the configured level.
func setupLogger(cfg *config.Config) *slog.Logger {
	logging := cfg.Logging
	if verbose {
		logging.Level = "debug"
	}
	return config.NewLogger(logging, os.Stderr)
}
