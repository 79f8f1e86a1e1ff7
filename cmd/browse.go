package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/router"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

var browseCmd = &cobra.Command{
	Use:   "browse [#fragment]",
	Short: "Browse the site in the terminal",
	Long: `Opens the site in the terminal. The optional argument is a location
fragment such as #ranks; unknown fragments open the default page. Pages can
be reached from the menu or by picking a search result.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	a, err := newApp(cfg, false)
	if err != nil {
		return err
	}
	defer a.Close()

	fragment := ""
	if len(args) == 1 {
		fragment = args[0]
	}

	r := router.New(fragment,
		router.WithDefault(cfg.Home()),
		router.WithScroller(router.ScrollFunc(func() {
			// Clear the screen and move the cursor to the top.
			fmt.Print("\033[H\033[2J")
		})),
	)
	unsubscribe := r.Subscribe(func(p page.ID) {
		printPage(os.Stdout, a.index, p)
	})
	defer unsubscribe()

	printPage(os.Stdout, a.index, r.Current())

	for {
		menu := promptui.Select{
			Label: fmt.Sprintf("%s %s", cfg.Brand, r.Fragment()),
			Items: []string{"Search", "Go to page", "Quit"},
		}
		_, choice, err := menu.Run()
		if err != nil {
			return ignoreInterrupt(err)
		}

		switch choice {
		case "Search":
			if err := browseSearch(a.engine, r); err != nil {
				return ignoreInterrupt(err)
			}
		case "Go to page":
			pages := page.All()
			labels := make([]string, len(pages))
			for i, p := range pages {
				labels[i] = p.Label()
			}
			idx, _, err := (&promptui.Select{Label: "Page", Items: labels}).Run()
			if err != nil {
				return ignoreInterrupt(err)
			}
			r.Navigate(pages[idx])
		case "Quit":
			return nil
		}
	}
}

// browseSearch asks for a query and navigates to the chosen result.
func browseSearch(engine *search.Engine, r *router.Router) error {
	query, err := (&promptui.Prompt{Label: "Search"}).Run()
	if err != nil {
		return err
	}

	results := engine.Query(context.Background(), query)
	if len(results) == 0 {
		printSearchResults(os.Stdout, query, results)
		return nil
	}

	items := make([]string, len(results))
	for i, res := range results {
		items[i] = fmt.Sprintf("%s  (%s / %s)", res.Entry.Title, res.Page.Label(), res.Entry.Section)
	}
	idx, _, err := (&promptui.Select{Label: fmt.Sprintf("%d results", len(results)), Items: items}).Run()
	if err != nil {
		return err
	}
	r.Navigate(results[idx].Page)
	return nil
}

func printPage(w io.Writer, idx *content.Index, p page.ID) {
	fmt.Fprintf(w, "%s %s\n\n", titleStyle.Render(p.Label()), dimStyle.Render(p.Fragment()))
	section := ""
	for _, e := range idx.EntriesFor(p) {
		if e.Section != section {
			section = e.Section
			fmt.Fprintln(w, sectionStyle.Render(section))
		}
		fmt.Fprintf(w, "  %s\n  %s\n\n", keyStyle.Render(e.Title), e.Content)
	}
}

func ignoreInterrupt(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return nil
	}
	return err
}
