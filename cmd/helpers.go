package cmd

import (
	"fmt"
	"log"

	"github.com/charmbracelet/lipgloss"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/config"
	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/db"
	"github.com/ploofyz/ploofyz-web/internal/metrics"
	"github.com/ploofyz/ploofyz-web/internal/search"
	"github.com/ploofyz/ploofyz-web/internal/site"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	sectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `ploofyz init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	if verbose {
		log.Printf("config: loaded %s (default page %s, search limit %d)", cfgFile, cfg.Home(), cfg.SearchLimit)
	}
	return cfg, nil
}

// app bundles the components shared by the commands.
type app struct {
	cfg       *config.Config
	index     *content.Index
	renderer  *site.Renderer
	engine    *search.Engine
	database  *db.DB
	analytics *analytics.Store
	metrics   *metrics.Metrics
}

// newApp builds the renderer and search engine. When record is set and
// analytics are enabled, searches are also recorded to the database and to
// Prometheus.
func newApp(cfg *config.Config, record bool) (*app, error) {
	renderer, err := site.NewRenderer(site.Options{
		Brand:       cfg.Brand,
		StoreURL:    cfg.StoreURL,
		DiscordURL:  cfg.DiscordURL,
		SearchLimit: cfg.SearchLimit,
	})
	if err != nil {
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	a := &app{cfg: cfg, index: content.Default(), renderer: renderer}

	var recorders []search.Recorder
	if record {
		a.metrics = metrics.New()
		recorders = append(recorders, a.metrics)

		if cfg.Analytics {
			a.database, err = db.Open(cfg.DatabasePath())
			if err != nil {
				return nil, fmt.Errorf("opening analytics database: %w", err)
			}
			a.analytics = analytics.NewStore(a.database)
			recorders = append(recorders, a.analytics)
		}
	}

	a.engine = search.NewEngine(a.index, cfg.SearchLimit, recorders...)
	return a, nil
}

// Close releases the analytics database, if open.
func (a *app) Close() error {
	if a.database != nil {
		return a.database.Close()
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
