package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	cacheAdapter "github.com/abdidvp/keyalign/internal/adapters/outbound/cache"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/config"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/history"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/parser"
	"github.com/abdidvp/keyalign/internal/adapters/outbound/scanner"
	"github.com/abdidvp/keyalign/internal/application"
	"github.com/abdidvp/keyalign/internal/domain"
)

const defaultSourcePath = "source.ts"

// registerTools registers all keyalign MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath string, logger *slog.Logger) {
	s.AddTool(
		mcplib.NewTool("keyalign_check_source",
			mcplib.WithDescription("Check the key spacing of interface and enum members in a TypeScript source text. Returns diagnostics with fixes as JSON."),
			mcplib.WithString("source", mcplib.Required(), mcplib.Description("TypeScript source text")),
			mcplib.WithString("path", mcplib.Description("File name used for reporting and file type detection (default: source.ts)")),
			mcplib.WithString("options", mcplib.Description("Spacing options as JSON, e.g. {\"align\": \"colon\"}. Defaults apply when empty.")),
		),
		handleCheckSource(logger),
	)

	s.AddTool(
		mcplib.NewTool("keyalign_fix_source",
			mcplib.WithDescription("Apply every spacing fix to a TypeScript source text and return the fixed text with edit counts"),
			mcplib.WithString("source", mcplib.Required(), mcplib.Description("TypeScript source text")),
			mcplib.WithString("path", mcplib.Description("File name used for file type detection (default: source.ts)")),
			mcplib.WithString("options", mcplib.Description("Spacing options as JSON")),
		),
		handleFixSource(logger),
	)

	s.AddTool(
		mcplib.NewTool("keyalign_normalize_options",
			mcplib.WithDescription("Resolve shorthand spacing options into the complete policy the checker applies"),
			mcplib.WithString("options", mcplib.Description("Spacing options as JSON; a bare string such as \"value\" is a shorthand")),
		),
		handleNormalizeOptions(),
	)

	s.AddTool(
		mcplib.NewTool("keyalign_check_project",
			mcplib.WithDescription("Check every TypeScript file of the project using its .keyalign.yaml. Returns the run report as JSON."),
			mcplib.WithString("paths", mcplib.Description("Comma-separated files or directories relative to the project root")),
			mcplib.WithBoolean("changed", mcplib.Description("Only check files git reports as changed")),
		),
		handleCheckProject(projectPath, logger),
	)
}

// newCheckService creates the standard set of outbound adapters and the
// check service.
func newCheckService(logger *slog.Logger) *application.CheckService {
	par := parser.New()
	return application.NewCheckService(
		scanner.New(par.Supports),
		par,
		config.New(),
		cacheAdapter.New(),
		history.New(),
		gitinfo.New(),
		application.WithLogger(logger),
	)
}

func newFixService(logger *slog.Logger) *application.FixService {
	par := parser.New()
	return application.NewFixService(scanner.New(par.Supports), par, config.New(), application.WithLogger(logger))
}

func handleCheckSource(logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		raw, err := config.DecodeOptionsJSON(request.GetString("options", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("invalid options: %v", err)), nil
		}

		path := request.GetString("path", defaultSourcePath)
		report, err := newCheckService(logger).CheckSource(path, source, raw)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

func handleFixSource(logger *slog.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		source, err := request.RequireString("source")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		raw, err := config.DecodeOptionsJSON(request.GetString("options", ""))
		if err != nil {
			return errorResult(fmt.Sprintf("invalid options: %v", err)), nil
		}

		path := request.GetString("path", defaultSourcePath)
		fix, err := newFixService(logger).FixSource(path, source, raw, domain.FixOptions{})
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(fix)
	}
}

func handleNormalizeOptions() server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		text := strings.TrimSpace(request.GetString("options", ""))
		// a bare shorthand is accepted without JSON quoting
		if text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, `"`) {
			quoted, _ := json.Marshal(text)
			text = string(quoted)
		}
		raw, err := config.DecodeOptionsJSON(text)
		if err != nil {
			return errorResult(fmt.Sprintf("invalid options: %v", err)), nil
		}
		return jsonResult(domain.Normalize(raw))
	}
}

func handleCheckProject(projectPath string, logger *slog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		req := application.CheckRequest{
			ProjectPath: projectPath,
			Paths:       splitCSV(request.GetString("paths", "")),
			Changed:     request.GetBool("changed", false),
		}
		report, err := newCheckService(logger).CheckProject(ctx, req)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

// splitCSV splits a comma-separated string into trimmed non-empty parts.
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
