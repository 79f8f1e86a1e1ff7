package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/analytics"
	"github.com/ploofyz/ploofyz-web/internal/db"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show recorded search and page view analytics",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().Int("limit", 10, "number of popular queries to show")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dbPath := cfg.DatabasePath()
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No analytics recorded yet. Run `ploofyz serve` with analytics enabled.")
		return nil
	}

	database, err := db.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening analytics database: %w", err)
	}
	defer database.Close()

	store := analytics.NewStore(database)
	limit, _ := cmd.Flags().GetInt("limit")

	queries, err := store.PopularQueries(ctx, limit)
	if err != nil {
		return err
	}
	views, err := store.PageViews(ctx)
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Page views"))
	for _, v := range views {
		fmt.Printf("  %-7s %s\n", v.Page.Label(), keyStyle.Render(fmt.Sprintf("%d", v.Views)))
	}

	fmt.Println()
	fmt.Println(titleStyle.Render("Popular searches"))
	if len(queries) == 0 {
		fmt.Println(dimStyle.Render("  none yet"))
	}
	for i, q := range queries {
		fmt.Printf("  %2d. %-24s %s %s\n", i+1, q.Query,
			keyStyle.Render(fmt.Sprintf("x%d", q.Count)),
			dimStyle.Render(fmt.Sprintf("(%d results, last %s)", q.LastResults, q.LastSeen.Local().Format("2006-01-02 15:04"))))
	}
	return nil
}
