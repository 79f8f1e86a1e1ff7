package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ploofyz/ploofyz-web/internal/page"
	"github.com/ploofyz/ploofyz-web/internal/search"
)

// handleSearchSite runs a substring search over the content index.
func (s *Server) handleSearchSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", s.engine.Limit())
	if limit <= 0 {
		limit = s.engine.Limit()
	}

	if search.Normalize(query) == "" {
		return mcp.NewToolResultText("Empty query. Try one of: " + strings.Join(search.Hints, ", ")), nil
	}

	results := s.engine.QueryLimit(ctx, query, limit)
	if len(results) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No results found for %q.", query)), nil
	}

	return mcp.NewToolResultText(formatSearchResults(results)), nil
}

// handleGetPage returns the entries of one page.
func (s *Server) handleGetPage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("page")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: page"), nil
	}

	p, ok := page.Parse(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown page %q", name)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%s)\n", p.Label(), p.Fragment())
	for _, e := range s.engine.Index().EntriesFor(p) {
		fmt.Fprintf(&sb, "\n## %s\nSection: %s\n\n%s\n", e.Title, e.Section, e.Content)
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleListPages lists every page with its label and fragment.
func (s *Server) handleListPages(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	for _, p := range s.engine.Index().Pages() {
		fmt.Fprintf(&sb, "- %s: %s (%s, %d entries)\n", p, p.Label(), p.Fragment(), len(s.engine.Index().EntriesFor(p)))
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatSearchResults converts search results into plain text for agents.
func formatSearchResults(results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d result(s):\n", len(results)))

	for i, r := range results {
		sb.WriteString(fmt.Sprintf("\n--- Result %d ---\n", i+1))
		sb.WriteString(fmt.Sprintf("Page: %s (%s)\n", r.Page.Label(), r.Page.Fragment()))
		sb.WriteString(fmt.Sprintf("Title: %s\n", r.Entry.Title))
		if r.Entry.Section != "" {
			sb.WriteString(fmt.Sprintf("Section: %s\n", r.Entry.Section))
		}
		sb.WriteString("\n")
		sb.WriteString(r.Entry.Content)
		sb.WriteString("\n")
	}

	return sb.String()
}
