// Package config loads the CLI configuration from a TOML file, with
// sensible defaults and environment overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds everything the CLI needs to run.
type Config struct {
	// StorePath is the SQLite database file holding the record store.
	StorePath string `toml:"store_path"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns the configuration used when no file exists:
// the store lives under the user config directory.
func DefaultConfig() Config {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return Config{
		StorePath: filepath.Join(base, "moneytree", "moneytree.db"),
		LogLevel:  "info",
	}
}

// DefaultPath is where Load looks for the config file when no explicit
// path is given.
func DefaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "moneytree", "config.toml")
}

// Load reads the config at path, falling back to defaults when the file
// does not exist. The MONEYTREE_STORE_PATH and MONEYTREE_LOG_LEVEL
// environment variables override the file.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		path = DefaultPath()
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("Load: %s: %w", path, err)
		}
	}
	if v := os.Getenv("MONEYTREE_STORE_PATH"); v != "" {
		cfg.StorePath = v
	}
	if v := os.Getenv("MONEYTREE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}
