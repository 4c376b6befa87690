package mcp

import (
	"io"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// Version is reported to MCP clients.
var Version = "dev"

// NewKeyalignMCPServer creates an MCP server with every keyalign tool and
// resource registered. projectPath is the root the project-level tools and
// resources operate on.
func NewKeyalignMCPServer(projectPath string, logger *slog.Logger) *server.MCPServer {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := server.NewMCPServer(
		"keyalign",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, projectPath, logger)
	registerResources(s, projectPath, logger)

	return s
}
