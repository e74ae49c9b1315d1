package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultBaseURL is the API base URL used when MYBLOG_API_BASE_URL is unset.
// Set at build time with -ldflags "-X .../internal/cli/config.DefaultBaseURL=...".
var DefaultBaseURL = "http://localhost:8080"

const DefaultTimeout = 10 * time.Second

// Config holds the CLI client configuration
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	Locale     string
	RoutesFile string // optional YAML route table, built-in table when empty
	LogLevel   string
	LogFormat  string
}

// Load reads configuration from .env files and the environment
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	cfg := &Config{
		BaseURL:    getenv("MYBLOG_API_BASE_URL", DefaultBaseURL),
		Timeout:    DefaultTimeout,
		Locale:     getenv("MYBLOG_LOCALE", "en"),
		RoutesFile: os.Getenv("MYBLOG_ROUTES"),
		LogLevel:   getenv("LOG_LEVEL", "warn"),
		LogFormat:  getenv("LOG_FORMAT", "console"),
	}

	if v := os.Getenv("MYBLOG_TIMEOUT"); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MYBLOG_TIMEOUT '%s': %w", v, err)
		}
		if timeout <= 0 {
			return nil, fmt.Errorf("invalid MYBLOG_TIMEOUT '%s': must be positive", v)
		}
		cfg.Timeout = timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the base URL is an absolute http(s) URL
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid MYBLOG_API_BASE_URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid MYBLOG_API_BASE_URL '%s': must be an absolute http(s) URL", c.BaseURL)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
