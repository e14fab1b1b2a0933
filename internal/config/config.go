package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// InputConfig controls where games come from and how they are checked
type InputConfig struct {
	// Comma-separated locations: "-" (stdin), file paths, or http(s) URLs.
	// Positional command-line arguments take precedence.
	Locations []string `env:"STATS_INPUT" envSeparator:"," envDefault:"-"`

	// Season label used by exports (e.g. "2024")
	Season string `env:"STATS_SEASON"`

	// Reject negative counts and empty player IDs instead of merging them
	Strict bool `env:"STATS_STRICT" envDefault:"false"`

	// Write the fixed-width report to stdout
	Report bool `env:"STATS_REPORT" envDefault:"true"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Enabled        bool     `env:"SERVER_ENABLED" envDefault:"false"`
	Addr           string   `env:"SERVER_ADDR" envDefault:":8086"`
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// RedisConfig holds Redis connection configuration. An empty URL disables
// every Redis sink.
type RedisConfig struct {
	URL           string        `env:"REDIS_URL"`
	CacheTTL      time.Duration `env:"REDIS_CACHE_TTL" envDefault:"24h"`
	StreamEnabled bool          `env:"REDIS_STREAM_ENABLED" envDefault:"false"`
}

// SQLConfig holds the SQL export sink configuration
type SQLConfig struct {
	Driver string `env:"SQL_DRIVER"` // "postgres" or "sqlite"
	DSN    string `env:"SQL_DSN"`
}

// ExportConfig controls retries of failed sink exports
type ExportConfig struct {
	RetryAttempts int           `env:"EXPORT_RETRY_ATTEMPTS" envDefault:"3"`
	RetryDelay    time.Duration `env:"EXPORT_RETRY_DELAY" envDefault:"500ms"`
}

// Config holds all application configuration
type Config struct {
	Input  InputConfig
	Server ServerConfig
	Redis  RedisConfig
	SQL    SQLConfig
	Export ExportConfig
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.Input.Locations = trimEmpty(cfg.Input.Locations)
	cfg.Server.AllowedOrigins = trimEmpty(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects inconsistent settings
func (c *Config) Validate() error {
	switch c.SQL.Driver {
	case "":
	case "postgres", "sqlite":
		if c.SQL.DSN == "" {
			return fmt.Errorf("SQL_DSN is required when SQL_DRIVER=%s", c.SQL.Driver)
		}
	default:
		return fmt.Errorf("unsupported SQL_DRIVER %q (want postgres or sqlite)", c.SQL.Driver)
	}

	if c.Export.RetryAttempts < 1 {
		return fmt.Errorf("EXPORT_RETRY_ATTEMPTS must be at least 1, got %d", c.Export.RetryAttempts)
	}

	if len(c.Input.Locations) == 0 {
		return fmt.Errorf("STATS_INPUT must name at least one input")
	}
	return nil
}

// WithArgs overrides the input locations with command-line arguments
func (c *Config) WithArgs(args []string) {
	if len(args) > 0 {
		c.Input.Locations = args
	}
}

func trimEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
