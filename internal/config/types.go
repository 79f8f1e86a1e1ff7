package config

// Config is the top-level site configuration, corresponding to .ploofyz.yml.
type Config struct {
	Brand           string   `yaml:"brand" koanf:"brand"`
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	DefaultPage     string   `yaml:"default_page" koanf:"default_page"`
	SearchLimit     int      `yaml:"search_limit" koanf:"search_limit"`
	SearchRate      float64  `yaml:"search_rate_per_sec" koanf:"search_rate_per_sec"`
	SearchBurst     int      `yaml:"search_burst" koanf:"search_burst"`
	StoreURL        string   `yaml:"store_url" koanf:"store_url"`
	DiscordURL      string   `yaml:"discord_url" koanf:"discord_url"`
	StaticDir       string   `yaml:"static_dir" koanf:"static_dir"`
	AssetInclude    []string `yaml:"asset_include" koanf:"asset_include"`
	OutputDir       string   `yaml:"output_dir" koanf:"output_dir"`
	DataDir         string   `yaml:"data_dir" koanf:"data_dir"`
	Analytics       bool     `yaml:"analytics" koanf:"analytics"`
	MaxConcurrency  int      `yaml:"max_concurrency" koanf:"max_concurrency"`
}

// Links returns the external destinations referenced by page copy.
func (c *Config) Links() map[string]string {
	return map[string]string{
		"store":   c.StoreURL,
		"discord": c.DiscordURL,
	}
}
