package config

import (
	"time"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Config is the root configuration for the catalog crawler.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  yaml:"server"`
	Crawler CrawlerConfig `mapstructure:"crawler" yaml:"crawler"`
	Fetcher FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Host           string        `mapstructure:"host"            yaml:"host"`
	Port           int           `mapstructure:"port"            yaml:"port"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"    yaml:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"   yaml:"write_timeout"`
}

// CrawlerConfig controls the crawl loop and extraction budgets.
type CrawlerConfig struct {
	// MaxPages bounds the number of pages visited per crawl.
	MaxPages int `mapstructure:"max_pages" yaml:"max_pages"`

	// MaxProductsPerPage bounds how many candidate containers are
	// processed on a single page.
	MaxProductsPerPage int `mapstructure:"max_products_per_page" yaml:"max_products_per_page"`

	// CrawlTimeout is the end-to-end budget for one crawl.
	CrawlTimeout time.Duration `mapstructure:"crawl_timeout" yaml:"crawl_timeout"`

	// PolitenessDelay is the minimum spacing between page fetches.
	PolitenessDelay time.Duration `mapstructure:"politeness_delay" yaml:"politeness_delay"`
}

// FetcherConfig controls page fetching.
type FetcherConfig struct {
	// Type selects the rendering strategy: "http" or "browser".
	Type            string        `mapstructure:"type"             yaml:"type"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"  yaml:"request_timeout"`
	FollowRedirects bool          `mapstructure:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects    int           `mapstructure:"max_redirects"    yaml:"max_redirects"`
	MaxBodySize     int64         `mapstructure:"max_body_size"    yaml:"max_body_size"`
	TLSInsecure     bool          `mapstructure:"tls_insecure"     yaml:"tls_insecure"`
	IdleConnTimeout time.Duration `mapstructure:"idle_conn_timeout" yaml:"idle_conn_timeout"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"   yaml:"max_idle_conns"`
	UserAgents      []string      `mapstructure:"user_agents"      yaml:"user_agents"`
}

// StorageConfig controls where businesses and products are persisted.
type StorageConfig struct {
	// Type selects the backend: "postgres", "mongodb", or "file".
	Type string `mapstructure:"type" yaml:"type"`

	// DSN is the Postgres connection string.
	DSN string `mapstructure:"dsn" yaml:"dsn"`

	// MongoURI and MongoDatabase configure the MongoDB backend.
	MongoURI      string `mapstructure:"mongo_uri"      yaml:"mongo_uri"`
	MongoDatabase string `mapstructure:"mongo_database" yaml:"mongo_database"`

	// OutputPath is the file backend's output location.
	OutputPath string `mapstructure:"output_path" yaml:"output_path"`

	// BatchSize is the number of products per insert batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LoggingConfig controls logging behavior.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			AllowedOrigins: []string{"*"},
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   120 * time.Second,
		},
		Crawler: CrawlerConfig{
			MaxPages:           50,
			MaxProductsPerPage: 50,
			CrawlTimeout:       90 * time.Second,
			PolitenessDelay:    250 * time.Millisecond,
		},
		Fetcher: FetcherConfig{
			Type:            "http",
			RequestTimeout:  10 * time.Second,
			FollowRedirects: true,
			MaxRedirects:    10,
			MaxBodySize:     10 * 1024 * 1024, // 10MB
			IdleConnTimeout: 90 * time.Second,
			MaxIdleConns:    100,
			UserAgents: []string{
				"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
				"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			},
		},
		Storage: StorageConfig{
			Type:          "file",
			MongoDatabase: "catalog",
			OutputPath:    "./output/products.json",
			BatchSize:     50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
