package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/ploofyz/ploofyz-web/internal/page"
)

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to ploofyz! Let's configure your site.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Brand name.
	brandPrompt := promptui.Prompt{
		Label:   "Brand name",
		Default: cfg.Brand,
	}
	brand, err := brandPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("brand: %w", err)
	}
	cfg.Brand = strings.TrimSpace(brand)

	// 2. Landing page.
	pages := page.All()
	items := make([]string, len(pages))
	for i, p := range pages {
		items[i] = p.Label()
	}
	pagePrompt := promptui.Select{
		Label: "Page shown when no page is requested",
		Items: items,
	}
	idx, _, err := pagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("default page selection: %w", err)
	}
	cfg.DefaultPage = string(pages[idx])

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:    "HTTP port",
		Default:  strconv.Itoa(cfg.Port),
		Validate: validatePort,
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(strings.TrimSpace(portStr))

	// 4. External links.
	storePrompt := promptui.Prompt{
		Label:   "Store URL",
		Default: cfg.StoreURL,
	}
	if cfg.StoreURL, err = storePrompt.Run(); err != nil {
		return nil, fmt.Errorf("store url: %w", err)
	}

	discordPrompt := promptui.Prompt{
		Label:   "Discord invite URL",
		Default: cfg.DiscordURL,
	}
	if cfg.DiscordURL, err = discordPrompt.Run(); err != nil {
		return nil, fmt.Errorf("discord url: %w", err)
	}

	// 5. Asset patterns.
	assetPrompt := promptui.Prompt{
		Label:   "Asset patterns to export (comma-separated globs)",
		Default: strings.Join(cfg.AssetInclude, ","),
	}
	assetStr, err := assetPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("asset patterns: %w", err)
	}
	if patterns := splitAndTrim(assetStr); len(patterns) > 0 {
		cfg.AssetInclude = patterns
	}

	// 6. Analytics.
	analyticsPrompt := promptui.Select{
		Label: "Record search and page-view analytics",
		Items: []string{"yes", "no"},
	}
	_, analytics, err := analyticsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("analytics selection: %w", err)
	}
	cfg.Analytics = analytics == "yes"

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("port must be a number")
	}
	if n <= 0 || n > 65535 {
		return fmt.Errorf("port must be between 1 and 65535")
	}
	return nil
}

// splitAndTrim splits a comma-separated string and trims whitespace.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
