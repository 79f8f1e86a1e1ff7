package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "PLOOFYZ_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PLOOFYZ_*). A .env file next to the
// config file is loaded first; variables already set in the environment win.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	dotenv := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", dotenv, err)
	}

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: PLOOFYZ_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	// Decoding into a non-nil slice keeps trailing default elements.
	if k.Exists("asset_include") {
		cfg.AssetInclude = nil
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}

	if _, ok := page.Parse(c.DefaultPage); !ok {
		return fmt.Errorf("invalid default_page %q: must be one of home, about, store, join, ranks", c.DefaultPage)
	}

	if c.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be positive")
	}

	if c.SearchRate < 0 {
		return fmt.Errorf("search_rate_per_sec must be non-negative")
	}

	if c.SearchBurst < 0 {
		return fmt.Errorf("search_burst must be non-negative")
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Analytics && c.DataDir == "" {
		return fmt.Errorf("data_dir is required when analytics is enabled")
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}

	return nil
}

// Home returns the configured default page, falling back to page.Default.
func (c *Config) Home() page.ID {
	if p, ok := page.Parse(c.DefaultPage); ok {
		return p
	}
	return page.Default
}

// DatabasePath returns the location of the analytics database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "analytics.db")
}
