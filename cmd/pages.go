package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/page"
)

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the site's pages",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		idx := content.Default()
		home := cfg.Home()
		for _, p := range page.All() {
			marker := "  "
			if p == home {
				marker = keyStyle.Render("* ")
			}
			fmt.Printf("%s%-6s %-7s %s\n", marker, p, titleStyle.Render(p.Label()),
				dimStyle.Render(fmt.Sprintf("%s, %d entries", p.Fragment(), len(idx.EntriesFor(p)))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pagesCmd)
}
