package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Port)
	}
	if cfg.DefaultPage != "home" {
		t.Errorf("expected default page %q, got %q", "home", cfg.DefaultPage)
	}
	if cfg.SearchLimit != 8 {
		t.Errorf("expected default search_limit 8, got %d", cfg.SearchLimit)
	}
	if cfg.Home() != page.Home {
		t.Errorf("expected Home() to be home, got %q", cfg.Home())
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ploofyz.yml")

	original := DefaultConfig()
	original.Brand = "Blockhaven"
	original.Port = 9090
	original.DefaultPage = "store"
	original.AssetInclude = []string{"**/*.png", "logo.svg"}
	original.SearchRate = 2.5

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Brand != original.Brand {
		t.Errorf("brand: got %q, want %q", loaded.Brand, original.Brand)
	}
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Home() != page.Store {
		t.Errorf("default_page: got %q, want %q", loaded.DefaultPage, "store")
	}
	if loaded.SearchRate != original.SearchRate {
		t.Errorf("search_rate_per_sec: got %f, want %f", loaded.SearchRate, original.SearchRate)
	}
	if len(loaded.AssetInclude) != len(original.AssetInclude) {
		t.Fatalf("asset_include length: got %d, want %d", len(loaded.AssetInclude), len(original.AssetInclude))
	}
	for i, v := range loaded.AssetInclude {
		if v != original.AssetInclude[i] {
			t.Errorf("asset_include[%d]: got %q, want %q", i, v, original.AssetInclude[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Brand != "Ploofyz" {
		t.Errorf("expected default brand, got %q", cfg.Brand)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	if err := DefaultConfig().Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("PLOOFYZ_DEFAULT_PAGE", "ranks")
	t.Setenv("PLOOFYZ_PORT", "9191")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.DefaultPage != "ranks" {
		t.Errorf("env override failed: got %q, want %q", loaded.DefaultPage, "ranks")
	}
	if loaded.Port != 9191 {
		t.Errorf("env override failed: got %d, want %d", loaded.Port, 9191)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yml")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("PLOOFYZ_BRAND=FromDotEnv\n"), 0o644); err != nil {
		t.Fatalf("writing .env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("PLOOFYZ_BRAND") })

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Brand != "FromDotEnv" {
		t.Errorf("expected brand from .env, got %q", loaded.Brand)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateInvalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero port", func(c *Config) { c.Port = 0 }},
		{"huge port", func(c *Config) { c.Port = 70000 }},
		{"unknown default page", func(c *Config) { c.DefaultPage = "pricing" }},
		{"empty default page", func(c *Config) { c.DefaultPage = "" }},
		{"zero search limit", func(c *Config) { c.SearchLimit = 0 }},
		{"negative rate", func(c *Config) { c.SearchRate = -1 }},
		{"negative burst", func(c *Config) { c.SearchBurst = -1 }},
		{"empty output dir", func(c *Config) { c.OutputDir = "" }},
		{"analytics without data dir", func(c *Config) { c.DataDir = "" }},
		{"negative concurrency", func(c *Config) { c.MaxConcurrency = -1 }},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tt.name)
		}
	}
}

func TestHomeFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultPage = "bogus"
	if cfg.Home() != page.Home {
		t.Errorf("expected fallback to home, got %q", cfg.Home())
	}
}

func TestValidatePort(t *testing.T) {
	if err := validatePort("8080"); err != nil {
		t.Errorf("expected 8080 to be valid: %v", err)
	}
	for _, s := range []string{"", "abc", "0", "65536"} {
		if err := validatePort(s); err == nil {
			t.Errorf("expected %q to be rejected", s)
		}
	}
}

func TestSplitAndTrim(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , b , c ", []string{"a", "b", "c"}},
		{"**/*.png", []string{"**/*.png"}},
		{"", nil},
		{"  ,  , ", nil},
	}
	for _, tt := range tests {
		got := splitAndTrim(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndTrim(%q) len = %d, want %d", tt.input, len(got), len(tt.want))
			continue
		}
		for i, v := range got {
			if v != tt.want[i] {
				t.Errorf("splitAndTrim(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
			}
		}
	}
}
