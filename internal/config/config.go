package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds application configuration
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBConn   string `env:"DB_CONN" envDefault:"host=localhost port=5432 user=crowdfund password=crowdfund dbname=crowdfund sslmode=disable"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"INFO"`

	JWTSecret string `env:"JWT_SECRET" envDefault:"secret"`
	// TokenTTL bounds identity-token validity. Zero issues non-expiring
	// tokens, matching the behavior older clients were built against.
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// SweepSchedule is the cron spec for the campaign deadline sweeper.
	SweepSchedule string `env:"SWEEP_SCHEDULE" envDefault:"@hourly"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.TokenTTL < 0 {
		return nil, fmt.Errorf("TOKEN_TTL must not be negative")
	}

	return cfg, nil
}
