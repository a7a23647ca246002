// Package config loads bbref settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the config file when --config is not given
const EnvConfigPath = "BBREF_CONFIG"

const (
	DefaultBaseURL  = "https://www.baseball-reference.com"
	DefaultFormat   = "text"
	DefaultLogLevel = "warn"
)

// Config holds settings shared by every command
type Config struct {
	BaseURL  string `yaml:"base_url"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
	Output   string `yaml:"output"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		BaseURL:  DefaultBaseURL,
		Format:   DefaultFormat,
		LogLevel: DefaultLogLevel,
	}
}

// Load reads the YAML file at path over the defaults. An empty path falls back
// to $BBREF_CONFIG; with neither set, the defaults are returned. A path that
// came from the environment may point at a missing file.
func Load(path string) (Config, error) {
	cfg := Default()

	fromEnv := false
	if path == "" {
		path = os.Getenv(EnvConfigPath)
		fromEnv = true
	}
	if path == "" {
		return cfg, nil
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if fromEnv && errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.merge(file)

	return cfg, nil
}

// merge overlays the non-empty fields of other
func (c *Config) merge(other Config) {
	if other.BaseURL != "" {
		c.BaseURL = strings.TrimRight(other.BaseURL, "/")
	}
	if other.Format != "" {
		c.Format = other.Format
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.Output != "" {
		c.Output = other.Output
	}
}
