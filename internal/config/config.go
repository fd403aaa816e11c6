// Package config loads shoplist settings from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

const appName = "shoplist"

// Config holds every setting the entrypoint needs.
type Config struct {
	DataDir string `env:"SHOPLIST_DATA_DIR"`
	Theme   string `env:"SHOPLIST_THEME" envDefault:"classic"`
	Addr    string `env:"SHOPLIST_ADDR" envDefault:"127.0.0.1:8080"`
	Debug   bool   `env:"SHOPLIST_DEBUG"`
}

// Load parses the environment and resolves the data directory when it was
// not set explicitly.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return Config{}, err
		}
		cfg.DataDir = dir
	}
	return cfg, nil
}

// DefaultDataDir is the application-private data directory:
// $XDG_DATA_HOME/shoplist, falling back to ~/.local/share/shoplist.
func DefaultDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
