// Package config loads server configuration from the environment, with an
// optional .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all server settings. Every field is read from an
// EZSUPPLY_-prefixed environment variable.
type Config struct {
	Addr             string        `envconfig:"ADDR" default:":8080"`
	DBPath           string        `envconfig:"DB" default:"ezsupply.sqlite3"`
	StateDir         string        `envconfig:"STATE_DIR" default:"."`
	LogFile          string        `envconfig:"LOG"`
	DefaultUsers     []string      `envconfig:"DEFAULT_USERS"`
	CategoryCacheTTL time.Duration `envconfig:"CATEGORY_CACHE_TTL" default:"5m"`
}

// Load reads the configuration. A missing .env file is fine; a malformed
// environment variable is not.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("ezsupply", &cfg); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return &cfg, nil
}
