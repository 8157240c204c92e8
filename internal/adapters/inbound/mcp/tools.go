package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/abdidvp/moqlint/internal/adapters/outbound/config"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/detector"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/parser"
	"github.com/abdidvp/moqlint/internal/adapters/outbound/scanner"
	"github.com/abdidvp/moqlint/internal/application"
	"github.com/abdidvp/moqlint/internal/domain"
	"github.com/abdidvp/moqlint/internal/domain/rules"
)

type handlers struct {
	projectPath string
	log         *zap.Logger
}

// registerTools registers all moqlint MCP tools on the given server.
func registerTools(s *server.MCPServer, h *handlers) {
	dialectArg := mcplib.WithString("dialect",
		mcplib.Description("auto, entity or service (default: from .moqlint.yaml)"),
		mcplib.Enum(domain.DialectNames()...),
	)

	// 1. moqlint_lint_file
	s.AddTool(
		mcplib.NewTool("moqlint_lint_file",
			mcplib.WithDescription("Lint one entity or service definition file and return its issues and suggestions as JSON"),
			mcplib.WithString("path",
				mcplib.Required(),
				mcplib.Description("File path, absolute or relative to the project root"),
			),
			dialectArg,
		),
		h.lintFile,
	)

	// 2. moqlint_lint_directory
	s.AddTool(
		mcplib.NewTool("moqlint_lint_directory",
			mcplib.WithDescription("Lint every definition file under a directory and return the batch report as JSON"),
			mcplib.WithString("path", mcplib.Description("Directory, absolute or relative to the project root (default: project root)")),
			dialectArg,
		),
		h.lintDirectory,
	)

	// 3. moqlint_list_rules
	s.AddTool(
		mcplib.NewTool("moqlint_list_rules",
			mcplib.WithDescription("List the rule catalog with IDs, severities and descriptions"),
			dialectArg,
		),
		h.listRules,
	)
}

func (h *handlers) service() *application.LintService {
	return application.NewLintService(scanner.New(h.log), parser.New(), config.New()).
		WithLogger(h.log).
		WithComponents(detector.New())
}

func (h *handlers) resolve(path string) string {
	if path == "" {
		return h.projectPath
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(h.projectPath, path)
}

func dialectArgument(request mcplib.CallToolRequest) (domain.Dialect, error) {
	raw := request.GetString("dialect", "")
	if raw == "" {
		return "", nil
	}
	return domain.ParseDialect(raw)
}

func (h *handlers) lintFile(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return errorResult(err.Error()), nil
	}
	dialect, err := dialectArgument(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	report, err := h.service().LintFile(ctx, h.projectPath, h.resolve(path), dialect)
	if err != nil {
		return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) lintDirectory(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	dialect, err := dialectArgument(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}

	dir := h.resolve(request.GetString("path", ""))
	report, err := h.service().LintPaths(ctx, h.projectPath, []string{dir}, dialect)
	if err != nil {
		return errorResult(fmt.Sprintf("lint failed: %v", err)), nil
	}
	return jsonResult(report)
}

func (h *handlers) listRules(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	dialect, err := dialectArgument(request)
	if err != nil {
		return errorResult(err.Error()), nil
	}
	return jsonResult(rules.Infos(dialect))
}

// jsonResult marshals v to JSON and returns it as a text content result.
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
