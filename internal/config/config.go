// Package config centralises environment configuration for the client and
// the stub server.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures runtime settings, with defaults suited to local dev
// against the stub server.
type Config struct {
	// ServiceURL is the base URL of the activities service.
	ServiceURL string `env:"ACTIVITIES_URL" envDefault:"http://localhost:8000"`
	// RequestTimeout bounds every HTTP call to the service.
	RequestTimeout time.Duration `env:"ACTIVITIES_TIMEOUT" envDefault:"10s"`
	// BannerTTL is how long feedback messages stay visible.
	BannerTTL time.Duration `env:"ACTIVITIES_BANNER_TTL" envDefault:"5s"`
	// MetricsAddress, when set, exposes /metrics on this listen address.
	MetricsAddress string `env:"ACTIVITIES_METRICS_ADDRESS"`
	// StubAddress is where the stub server listens.
	StubAddress string `env:"ACTIVITIES_STUB_ADDRESS" envDefault:":8000"`
}

// Load parses configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
