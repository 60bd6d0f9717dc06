// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Collection backends.
const (
	BackendSupabase = "supabase"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Remote collection. The endpoint and credential are required, but a
	// missing value is reported by CollectionError instead of failing Load,
	// so the list page can show it.
	CollectionBackend  string `env:"COLLECTION_BACKEND" envDefault:"supabase"`
	SupabaseProjectURL string `env:"SUPABASE_PROJECT_URL"`
	SupabaseAPIKey     string `env:"SUPABASE_API_KEY"`
	CreatorsTable      string `env:"CREATORS_TABLE" envDefault:"creators"`

	// Database (PostgreSQL), used by the postgres backend
	DatabaseURL string `env:"DATABASE_URL"`

	// Cache (Redis), optional; enables rate limiting of form submissions
	RedisURL string `env:"REDIS_URL"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Rate limiting of form submissions (per IP)
	RateLimitFormsEnabled bool `env:"RATE_LIMIT_FORMS_ENABLED" envDefault:"true"`
	RateLimitFormsRPS     int  `env:"RATE_LIMIT_FORMS_RPS" envDefault:"2"`
	RateLimitFormsBurst   int  `env:"RATE_LIMIT_FORMS_BURST" envDefault:"10"`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// ConfigError reports missing remote collection settings.
type ConfigError struct {
	Missing []string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("Missing required configuration: %s", strings.Join(e.Missing, ", "))
}

// ErrUnknownBackend is returned for an unsupported COLLECTION_BACKEND.
var ErrUnknownBackend = errors.New("unknown collection backend")

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// CollectionError reports which settings the selected backend is missing.
// It returns nil when the backend can be built.
func (c *Config) CollectionError() error {
	var missing []string
	switch c.CollectionBackend {
	case BackendSupabase:
		if strings.TrimSpace(c.SupabaseProjectURL) == "" {
			missing = append(missing, "SUPABASE_PROJECT_URL")
		}
		if strings.TrimSpace(c.SupabaseAPIKey) == "" {
			missing = append(missing, "SUPABASE_API_KEY")
		}
	case BackendPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownBackend, c.CollectionBackend)
	}

	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// Load reads an optional .env file, then parses environment variables and
// returns a Config. Variables already set in the environment win over .env.
// A missing file is skipped; a malformed one is an error.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.CollectionBackend = strings.ToLower(strings.TrimSpace(cfg.CollectionBackend))
	return cfg, nil
}
