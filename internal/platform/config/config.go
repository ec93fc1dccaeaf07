// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config maps environment variables onto [Config] with caarlos0/env.

Load is called once by cmd/api; the result is passed down by constructor and
never stored globally. Token verification settings are only read here; the
choice between them is made by sec.NewVerifier.
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the portal API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL      string `env:"DATABASE_URL,required,notEmpty"`
	DatabaseMaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"25"`
	DatabaseMinConns int32  `env:"DATABASE_MIN_CONNS" envDefault:"5"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// MigrateOnStart applies pending migrations before the server accepts traffic.
	MigrateOnStart bool `env:"MIGRATE_ON_START" envDefault:"false"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required,notEmpty"`

	// Token verification. See sec.NewVerifier for how these combine.
	JWTSecret      string `env:"AUTH_JWT_SECRET"`
	ExternalSecret string `env:"AUTH_EXTERNAL_SECRET"`
	DevDecodeOnly  bool   `env:"AUTH_DEV_DECODE_ONLY" envDefault:"false"`
	SessionCookie  string `env:"AUTH_SESSION_COOKIE"  envDefault:"portal_session"`
	Issuer         string `env:"AUTH_ISSUER"`

	// Cross-Origin Resource Sharing
	CORSOriginSuffix string `env:"CORS_ORIGIN_SUFFIX" envDefault:"bizportal.app"`

	// Per-IP token bucket of the platform rate limiter
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`

	// Dashboard activity feed length per user
	ActivityFeedSize int64 `env:"ACTIVITY_FEED_SIZE" envDefault:"50"`

	// Deadline of a single detached audit write
	AuditWriteTimeout time.Duration `env:"AUDIT_WRITE_TIMEOUT" envDefault:"5s"`
}

// # Configuration Loading

// Load parses the environment and rejects values no component could run with.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.ActivityFeedSize <= 0:
		return fmt.Errorf("config: ACTIVITY_FEED_SIZE must be positive, got %d", c.ActivityFeedSize)
	case c.DatabaseMinConns > c.DatabaseMaxConns:
		return fmt.Errorf("config: DATABASE_MIN_CONNS (%d) exceeds DATABASE_MAX_CONNS (%d)", c.DatabaseMinConns, c.DatabaseMaxConns)
	case c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0:
		return fmt.Errorf("config: RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	case c.AuditWriteTimeout <= 0:
		return fmt.Errorf("config: AUDIT_WRITE_TIMEOUT must be positive, got %s", c.AuditWriteTimeout)
	}
	return nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
