// Package config handles application configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration. Values are read once at
// process start.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	SiteBaseURL string `env:"SITE_BASE_URL" envDefault:"https://finalboss.io"`

	IGDB IGDBConfig `envPrefix:"IGDB_"`
}

// IGDBConfig holds the upstream metadata API configuration.
type IGDBConfig struct {
	ClientID     string        `env:"CLIENT_ID"`
	ClientSecret string        `env:"CLIENT_SECRET"`
	APIURL       string        `env:"API_URL" envDefault:"https://api.igdb.com/v4"`
	TokenURL     string        `env:"TOKEN_URL" envDefault:"https://id.twitch.tv/oauth2/token"`
	Timeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"10s"`
	CacheTTL     time.Duration `env:"CACHE_TTL" envDefault:"1h"`
	SearchLimit  int           `env:"SEARCH_LIMIT_MAX" envDefault:"50"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// HasIGDB returns true if upstream credentials are present. Calls
// requiring authentication fail without them; the server itself can
// still start and serve health checks.
func (c *Config) HasIGDB() bool {
	return c.IGDB.ClientID != "" && c.IGDB.ClientSecret != ""
}

// Validate checks value ranges beyond what tags express.
func (c *Config) Validate() error {
	if c.IGDB.SearchLimit <= 0 {
		return fmt.Errorf("IGDB_SEARCH_LIMIT_MAX must be positive, got %d", c.IGDB.SearchLimit)
	}
	if c.IGDB.Timeout <= 0 {
		return fmt.Errorf("IGDB_REQUEST_TIMEOUT must be positive, got %s", c.IGDB.Timeout)
	}
	return nil
}
