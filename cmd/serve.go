package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ploofyz/ploofyz-web/internal/live"
	"github.com/ploofyz/ploofyz-web/internal/server"
	"github.com/ploofyz/ploofyz-web/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site over HTTP",
	Long: `Starts the HTTP server: page documents, the page and search JSON API,
live websocket sessions on /ws, analytics and Prometheus metrics.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}

	a, err := newApp(cfg, true)
	if err != nil {
		return err
	}
	defer a.Close()

	home := cfg.Home()
	deps := server.Deps{
		Site:      site.NewHandler(a.renderer, a.engine, home, cfg.StaticDir),
		Analytics: a.analytics,
		Metrics:   a.metrics,
	}
	// A nil *analytics.Store must not become a non-nil interface.
	if a.analytics != nil {
		deps.Hub = live.NewHub(a.renderer, a.engine, home, a.analytics, a.metrics)
	} else {
		deps.Hub = live.NewHub(a.renderer, a.engine, home, nil, a.metrics)
	}

	srv := server.New(server.Config{
		Port:        cfg.Port,
		AllowAll:    cfg.AllowAllOrigins,
		SearchRate:  cfg.SearchRate,
		SearchBurst: cfg.SearchBurst,
	}, deps)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(os.Stderr, "ploofyz server v%s starting on port %d\n", Version, cfg.Port)
	fmt.Fprintf(os.Stderr, "  Default page: %s\n", home)
	if a.database != nil {
		fmt.Fprintf(os.Stderr, "  Analytics: %s\n", a.database.Path())
	} else {
		fmt.Fprintln(os.Stderr, "  Analytics: disabled")
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
