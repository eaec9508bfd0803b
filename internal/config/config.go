// Package config reads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Port            string        `env:"FAMILYQUEST_PORT"             envDefault:"8080"`
	DBPath          string        `env:"FAMILYQUEST_DB_PATH"          envDefault:"familyquest.db"`
	LogLevel        string        `env:"FAMILYQUEST_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"FAMILYQUEST_LOG_FORMAT"       envDefault:"text"`
	SnapshotKey     string        `env:"FAMILYQUEST_SNAPSHOT_KEY"     envDefault:"family_quest_v3"`
	ShutdownTimeout time.Duration `env:"FAMILYQUEST_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses the environment. Unset variables take their defaults.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("FAMILYQUEST_PORT must not be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("FAMILYQUEST_DB_PATH must not be empty")
	}
	if strings.TrimSpace(c.SnapshotKey) == "" {
		return fmt.Errorf("FAMILYQUEST_SNAPSHOT_KEY must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("FAMILYQUEST_LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
