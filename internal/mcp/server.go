package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ploofyz/ploofyz-web/internal/search"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the site's pages and search.
type Server struct {
	engine *search.Engine
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server answering from the given engine.
func NewServer(engine *search.Engine) *Server {
	s := &Server{engine: engine}

	s.mcp = server.NewMCPServer(
		"ploofyz",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchSiteTool, s.handleSearchSite)
	s.mcp.AddTool(getPageTool, s.handleGetPage)
	s.mcp.AddTool(listPagesTool, s.handleListPages)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
