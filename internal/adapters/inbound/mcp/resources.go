package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/keyalign/internal/domain"
)

const (
	configURI  = "keyalign://config"
	historyURI = "keyalign://history"
)

// registerResources registers all keyalign MCP resources on the given server.
func registerResources(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Configuration",
			mcplib.WithResourceDescription("Effective project configuration and the normalized spacing policy"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(projectPath, logger),
	)

	s.AddResource(
		mcplib.NewResource(
			historyURI,
			"Run History",
			mcplib.WithResourceDescription("Summaries of recorded check runs, oldest first"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath, logger),
	)
}

type configView struct {
	Config domain.ProjectConfig `json:"config"`
	Policy domain.Policy        `json:"policy"`
}

func handleConfigResource(projectPath string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := newCheckService(logger).Config(projectPath)
		if err != nil {
			return nil, err
		}
		return jsonContents(configURI, configView{Config: cfg, Policy: cfg.Policy()})
	}
}

func handleHistoryResource(projectPath string, logger *slog.Logger) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := newCheckService(logger).History(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}
		if entries == nil {
			entries = []domain.RunSummary{}
		}
		return jsonContents(historyURI, entries)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
