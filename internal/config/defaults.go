package config

import "github.com/ploofyz/ploofyz-web/internal/page"

// DefaultConfigFile is the configuration file looked up when --config is not given.
const DefaultConfigFile = ".ploofyz.yml"

// DefaultAssetInclude are the glob patterns copied from static_dir on export.
var DefaultAssetInclude = []string{
	"**/*.png",
	"**/*.jpg",
	"**/*.svg",
	"**/*.ico",
	"**/*.css",
	"**/*.webp",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Brand:          "Ploofyz",
		Port:           8080,
		DefaultPage:    string(page.Default),
		SearchLimit:    8,
		SearchRate:     20,
		SearchBurst:    40,
		StoreURL:       "https://ploofyz.tebex.io",
		DiscordURL:     "https://discord.gg/G7kZvTtHav",
		StaticDir:      "public",
		AssetInclude:   DefaultAssetInclude,
		OutputDir:      "dist",
		DataDir:        ".ploofyz",
		Analytics:      true,
		MaxConcurrency: 4,
	}
}
