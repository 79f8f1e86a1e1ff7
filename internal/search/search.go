// Package search implements the site search: case-insensitive substring
// matching over the content index, in index order, capped at a limit.
package search

import (
	"strings"

	"github.com/ploofyz/ploofyz-web/internal/content"
	"github.com/ploofyz/ploofyz-web/internal/page"
)

// DefaultLimit is the number of results shown in the search panel.
const DefaultLimit = 8

// Hints are suggested queries shown while the search box is empty.
var Hints = []string{"ranks", "pricing", "hosting", "discord", "store", "VIP", "Pro plan"}

// Index is the read-only view of the content index that search needs.
type Index interface {
	Pages() []page.ID
	EntriesFor(p page.ID) []content.Entry
}

// Result is a single match.
type Result struct {
	Page  page.ID       `json:"page"`
	Entry content.Entry `json:"entry"`
}

// Normalize trims and lower-cases a raw query.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Search returns at most limit entries whose title, content or section
// contains query, ignoring case. Pages are visited in idx.Pages() order and
// entries in index order; the first matches found are the ones kept.
// A blank query yields no results.
func Search(query string, idx Index, limit int) []Result {
	results := []Result{}
	q := Normalize(query)
	if q == "" || limit <= 0 {
		return results
	}

	for _, p := range idx.Pages() {
		for _, e := range idx.EntriesFor(p) {
			if !matches(e, q) {
				continue
			}
			results = append(results, Result{Page: p, Entry: e})
			if len(results) == limit {
				return results
			}
		}
	}
	return results
}

func matches(e content.Entry, q string) bool {
	return strings.Contains(strings.ToLower(e.Title), q) ||
		strings.Contains(strings.ToLower(e.Content), q) ||
		strings.Contains(strings.ToLower(e.Section), q)
}
