package model

import "time"

// Config holds the complete runtime configuration
type Config struct {
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	Crawl        CrawlConfig        `yaml:"crawl" mapstructure:"crawl"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Robots       RobotsConfig       `yaml:"robots" mapstructure:"robots"`
	RateLimiting RateLimitingConfig `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// HTTPConfig controls the page fetcher
type HTTPConfig struct {
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent      string        `yaml:"user_agent" mapstructure:"user_agent"`
	AcceptLanguage string        `yaml:"accept_language" mapstructure:"accept_language"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`

	// Retries is the number of additional attempts after the first failure.
	// Backoff between attempts is 1.6*(attempt+1) seconds plus up to 1s of jitter.
	Retries int `yaml:"retries" mapstructure:"retries"`
}

// CrawlConfig controls site traversal
type CrawlConfig struct {
	// BaseURL is the site root all harvested links are resolved against
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`

	// Region is the URL path prefix shared by every listing on the site,
	// e.g. "ca/contra-costa-county". Street listings live under
	// /<region>/cities/<city>/streets/... and properties under
	// /<region>/<city>/property/...
	Region string `yaml:"region" mapstructure:"region"`

	// Delay between pagination rounds while harvesting links
	PageDelay       time.Duration `yaml:"page_delay" mapstructure:"page_delay"`
	PageDelayJitter time.Duration `yaml:"page_delay_jitter" mapstructure:"page_delay_jitter"`

	// Delay between property page parses
	PropertyDelay       time.Duration `yaml:"property_delay" mapstructure:"property_delay"`
	PropertyDelayJitter time.Duration `yaml:"property_delay_jitter" mapstructure:"property_delay_jitter"`
}

// CacheConfig controls the layered page cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// RobotsConfig controls robots.txt compliance checking
type RobotsConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
}

// RateLimitingConfig caps the request rate per domain, independent of the
// unconditional inter-request delays in CrawlConfig
type RateLimitingConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int     `yaml:"burst_size" mapstructure:"burst_size"`
}

// OutputConfig controls the record sink and verbosity
type OutputConfig struct {
	Path    string `yaml:"path" mapstructure:"path"`
	Format  string `yaml:"format" mapstructure:"format"` // "csv" or "xlsx"
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout: 45 * time.Second,
			UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
				"AppleWebKit/537.36 (KHTML, like Gecko) " +
				"Chrome/119.0.0.0 Safari/537.36",
			AcceptLanguage: "en-US,en;q=0.9",
			MaxBodyBytes:   5_000_000,
			Retries:        2,
		},
		Crawl: CrawlConfig{
			BaseURL:             "https://blockshopper.com",
			Region:              "ca/contra-costa-county",
			PageDelay:           500 * time.Millisecond,
			PageDelayJitter:     800 * time.Millisecond,
			PropertyDelay:       1200 * time.Millisecond,
			PropertyDelayJitter: 1000 * time.Millisecond,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".deedtrace-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Robots: RobotsConfig{
			Enabled: true,
		},
		RateLimiting: RateLimitingConfig{
			RequestsPerSecond: 2,
			BurstSize:         1,
		},
		Output: OutputConfig{
			Path:   "deedtrace.csv",
			Format: "csv",
		},
	}
}
