package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize ploofyz configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the site and writes a .ploofyz.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
