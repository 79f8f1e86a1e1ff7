package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the site content",
	Long:  `Searches every page's entries for the query (case-insensitive substring of title, content or section) and prints the matches in page order.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().Int("limit", 0, "maximum number of results (defaults to search_limit)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		limit = a.engine.Limit()
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")

	results := a.engine.QueryLimit(context.Background(), args[0], limit)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	printSearchResults(os.Stdout, args[0], results)
	return nil
}

func printSearchResults(w io.Writer, query string, results []search.Result) {
	if search.Normalize(query) == "" {
		fmt.Fprintln(w, dimStyle.Render("Try searching for: "+strings.Join(search.Hints, ", ")))
		return
	}
	if len(results) == 0 {
		fmt.Fprintf(w, "No results for %q.\n", query)
		return
	}

	fmt.Fprintf(w, "Found %d results:\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, titleStyle.Render(r.Entry.Title), dimStyle.Render(r.Page.Fragment()))
		fmt.Fprintf(w, "     %s\n", sectionStyle.Render(r.Page.Label()+" / "+r.Entry.Section))
		fmt.Fprintf(w, "     %s\n\n", truncate(r.Entry.Content, 120))
	}
}
