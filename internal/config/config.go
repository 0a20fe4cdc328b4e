// Package config loads runtime configuration from the environment into an
// explicit struct that main passes to each component.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Server  ServerConfig
	Log     LogConfig
	Factors FactorConfig
	Store   StoreConfig
}

type ServerConfig struct {
	Port         string        `env:"PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" envDefault:"30s"`
	MaxBodyBytes int           `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

type LogConfig struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

// FactorConfig points at an alternative option factor table. Empty uses the
// table compiled into the binary.
type FactorConfig struct {
	TablePath string `env:"FACTOR_TABLE_PATH"`
}

// StoreConfig selects the result store. An empty Path keeps at most
// MaxEntries results in memory.
type StoreConfig struct {
	Path       string `env:"STORE_PATH"`
	MaxEntries int    `env:"STORE_MAX_ENTRIES" envDefault:"1000"`
}

// Load parses the process environment.
func Load() (Config, error) {
	return parse(env.Options{})
}

// LoadFrom parses the supplied variables instead of the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Server.Port == "" {
		return Config{}, fmt.Errorf("PORT must not be empty")
	}
	if cfg.Server.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", cfg.Server.MaxBodyBytes)
	}
	if cfg.Store.MaxEntries <= 0 {
		return Config{}, fmt.Errorf("STORE_MAX_ENTRIES must be positive, got %d", cfg.Store.MaxEntries)
	}
	return cfg, nil
}
