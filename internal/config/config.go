// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all runtime settings, parsed from environment variables.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	DBHost     string `env:"PGSQL_HOST,required"`
	DBPort     int    `env:"PGSQL_PORT" envDefault:"5432"`
	DBName     string `env:"PGSQL_DATABASE,required"`
	DBUser     string `env:"PGSQL_USER,required"`
	DBPassword string `env:"PGSQL_PASSWORD,required"`
	DBSSLMode  string `env:"PGSQL_SSLMODE" envDefault:"require"`

	// LoginFailureDelay is the constant-time floor applied when a login
	// names an unknown user, so the response time does not reveal whether
	// the account exists.
	LoginFailureDelay time.Duration `env:"LOGIN_FAILURE_DELAY" envDefault:"1s"`

	// Login lockout: failures within the window up to the threshold block
	// further attempts for the block duration.
	LockoutWindow   time.Duration `env:"LOCKOUT_WINDOW" envDefault:"15m"`
	LockoutMaxFails int           `env:"LOCKOUT_MAX_FAILS" envDefault:"10"`
	LockoutBlockFor time.Duration `env:"LOCKOUT_BLOCK_FOR" envDefault:"15m"`

	ShareSigningKey string        `env:"SHARE_SIGNING_KEY,required"`
	ShareTokenTTL   time.Duration `env:"SHARE_TOKEN_TTL" envDefault:"168h"`

	AuthRateRPS   float64 `env:"AUTH_RATE_RPS" envDefault:"5"`
	AuthRateBurst int     `env:"AUTH_RATE_BURST" envDefault:"10"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set variables directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// DSN builds a postgres:// connection string from the database settings.
func (c *Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(c.DBUser),
		url.QueryEscape(c.DBPassword),
		c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool { return c.Environment == "production" }
