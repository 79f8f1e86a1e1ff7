package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/progress"
	"github.com/ploofyz/ploofyz-web/internal/site"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the site as static files",
	Long: `Writes a self-contained static copy of the site: one HTML file per page,
the search index and the client script. Search and hash navigation run in
the browser, so the output can be hosted on any static file server.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("output", "", "override output directory (defaults to output_dir)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	outputDir, _ := cmd.Flags().GetString("output")
	if outputDir == "" {
		outputDir = cfg.OutputDir
	}

	a, err := newApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	exporter := &site.Exporter{
		Renderer:     a.renderer,
		Index:        a.index,
		OutputDir:    outputDir,
		StaticDir:    cfg.StaticDir,
		AssetInclude: cfg.AssetInclude,
		Home:         cfg.Home(),
		Concurrency:  cfg.MaxConcurrency,
		Reporter:     progress.NewReporter(),
	}

	result, err := exporter.Export(ctx)
	if err != nil {
		return fmt.Errorf("exporting site: %w", err)
	}

	fmt.Printf("Static site exported: %s (%d pages, %d assets)\n", outputDir, result.Pages, result.Assets)
	return nil
}
