// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the interactive and headless modes.
// Command-line flags override the environment.
type Config struct {
	// OutDir is where exported files are saved.
	OutDir string `env:"ICOMOON2FIGMA_OUT_DIR" envDefault:"."`
	// LogFile receives log output in interactive mode. Empty discards it.
	LogFile string `env:"ICOMOON2FIGMA_LOG_FILE"`
	// ToastSeconds is how long a notice stays on screen.
	ToastSeconds int `env:"ICOMOON2FIGMA_TOAST_SECONDS" envDefault:"3"`

	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME" envDefault:"icomoon2figma"`
}

// Load parses Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.ToastSeconds <= 0 {
		return Config{}, fmt.Errorf("ICOMOON2FIGMA_TOAST_SECONDS must be positive, got %d", cfg.ToastSeconds)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "."
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

// ToastDuration returns ToastSeconds as a duration.
func (c Config) ToastDuration() time.Duration {
	return time.Duration(c.ToastSeconds) * time.Second
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
