package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ploofyz",
	Short: "Ploofyz game-server hosting site",
	Long: `ploofyz serves the Ploofyz marketing site: five pages behind a hash
router, a full-text search over the site content, and live sessions that
keep the browser's location fragment in sync with the server. The site can
also be exported as static files or browsed from the terminal.`,
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
