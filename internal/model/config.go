package model

import "time"

// Config is the complete koiscope configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Cache        CacheConfig        `yaml:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting"`
	Output       OutputConfig       `yaml:"output"`
	Catalog      CatalogConfig      `yaml:"catalog"`
}

// HTTPConfig controls fetching of remote catalog blobs
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	UserAgent    string        `yaml:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	InsecureTLS  bool          `yaml:"insecure_tls"`
}

// CacheConfig controls caching of fetched catalog blobs
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Dir     string        `yaml:"dir"`
	TTL     time.Duration `yaml:"ttl"`
}

// ConcurrencyConfig controls batch processing parallelism
type ConcurrencyConfig struct {
	Workers int `yaml:"workers"`
}

// RateLimitingConfig controls per-host fetch pacing in batch mode
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose"`
	IncludeFooter bool `yaml:"include_footer"`
}

// CatalogConfig controls catalog-level derivations
type CatalogConfig struct {
	FeaturedCount int `yaml:"featured_count"` // How many top-scored records go in the featured view
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      2 * time.Minute,
			UserAgent:    "koiscope/0.2 (+https://github.com/pvolkov/koiscope)",
			MaxBodyBytes: 50_000_000, // cumulative KOI exports run ~10 MB
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "", // resolved to ~/.koiscope/cache at runtime
			TTL:     24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         2,
		},
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
		},
		Catalog: CatalogConfig{
			FeaturedCount: 6,
		},
	}
}
