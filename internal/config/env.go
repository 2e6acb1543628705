// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the settings shared by every command.
type Config struct {
	// SchemaDir is the directory schema files are loaded from.
	SchemaDir string `env:"ENTITY_SCHEMA_DIR" envDefault:"schemas"`
	// RecordDir is the directory named records are loaded from and saved to.
	RecordDir string `env:"ENTITY_RECORD_DIR" envDefault:"records"`
	// RecordFormat is the extension of record files: .yaml, .yml or .bson.
	RecordFormat string `env:"ENTITY_RECORD_FORMAT" envDefault:".yaml"`
	// LogLevel is a zerolog level name.
	LogLevel string `env:"ENTITY_LOG_LEVEL" envDefault:"info"`
	// LogFormat is "json" or "console".
	LogFormat string `env:"ENTITY_LOG_FORMAT" envDefault:"console"`
	// Watch reloads schemas when their files change.
	Watch bool `env:"ENTITY_WATCH" envDefault:"false"`
}

// Load reads Config from the environment, applying defaults.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	return nil
}
