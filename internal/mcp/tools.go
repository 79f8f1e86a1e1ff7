package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchSiteTool defines the search_site MCP tool.
var searchSiteTool = mcp.NewTool("search_site",
	mcp.WithDescription("Search the Ploofyz site content. Matches the query as a case-insensitive substring of entry titles, content and sections."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Text to look for, e.g. \"ranks\" or \"discord\""),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 8)"),
	),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get every content entry of one site page."),
	mcp.WithString("page",
		mcp.Required(),
		mcp.Description("Page identifier"),
		mcp.Enum("home", "about", "store", "join", "ranks"),
	),
)

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List the site's pages in navigation order."),
)
