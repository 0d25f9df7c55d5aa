package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/petrichor-games/duelist/internal/errors"
)

// Config holds all configuration for the application
type Config struct {
	Server ServerConfig
	Redis  RedisConfig
	Sync   SyncConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// SyncConfig holds sync coordinator configuration
type SyncConfig struct {
	// PollInterval is the reconciliation poll that backs up the
	// subscription against missed change events
	PollInterval time.Duration `env:"SYNC_POLL_INTERVAL" envDefault:"5s"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse environment")
	}

	if cfg.Sync.PollInterval <= 0 {
		return nil, errors.InvalidArgument("SYNC_POLL_INTERVAL must be positive")
	}

	return cfg, nil
}
