package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Built-in defaults applied when neither flags nor the config file set a
// value.
const (
	defaultTimeout     = 10 * time.Second
	defaultConcurrency = 10
	defaultRPS         = 1.0
)

// Config holds settings read from the config file. Zero values mean "not
// set"; flags override file values, and built-in defaults fill the rest.
type Config struct {
	// HTTP client settings. Timeout is a duration string such as "10s".
	UserAgent string `yaml:"user_agent"`
	Timeout   string `yaml:"timeout"`

	// Article cache database path. Overridden by the LEGIBLE_DB
	// environment variable.
	CachePath string `yaml:"cache_path"`

	// Batch settings.
	RPS         float64 `yaml:"rps"`
	Concurrency int     `yaml:"concurrency"`

	// Extraction settings. LightClean is a pointer so an absent key can
	// be told apart from an explicit false.
	LightClean *bool `yaml:"light_clean"`
	Sanitize   bool  `yaml:"sanitize"`
}

// LoadConfig reads the YAML config file at path. A missing file is not an
// error; it yields a zero Config so built-in defaults apply.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config at %q: %w", path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config at %q: %w", path, err)
	}

	return cfg, nil
}

// resolveTimeout parses the configured fetch timeout. YAML has no duration
// type, so the config stores a string and the parse happens here.
func resolveTimeout(cfg Config) (time.Duration, error) {
	if cfg.Timeout == "" {
		return defaultTimeout, nil
	}

	d, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q in config: %w", cfg.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid timeout %q in config: must be positive", cfg.Timeout)
	}

	return d, nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".legible", "config.yaml")
}
