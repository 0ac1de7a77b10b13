// Package mcp exposes a scanned component inventory over the Model
// Context Protocol, so coding agents can query it without re-parsing
// the workspace.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/sfcmap/sfcmap/pkg/mcplog"
	"github.com/sfcmap/sfcmap/pkg/report"
)

// Server wraps an MCP server around a report query service.
type Server struct {
	mcpServer *server.MCPServer
	query     *report.QueryService
	logger    *mcplog.Logger // nil disables tool-call logging
}

// NewServer builds the server and registers all inventory tools.
// version is the binary version reported during the MCP handshake.
func NewServer(qs *report.QueryService, version string, logger *mcplog.Logger) *Server {
	s := &Server{query: qs, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer("sfcmap", version, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: listFilesTool(), Handler: s.handleListFiles},
		server.ServerTool{Tool: getFileAnalysisTool(), Handler: s.handleGetFileAnalysis},
		server.ServerTool{Tool: searchImportsTool(), Handler: s.handleSearchImports},
		server.ServerTool{Tool: tagUsageTool(), Handler: s.handleTagUsage},
	)

	return s
}

// ServeStdio runs the MCP server on stdin/stdout until the client hangs up.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
