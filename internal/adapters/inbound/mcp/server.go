package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// NewMoqlintMCPServer creates an MCP server with the moqlint tools and
// resources registered. Relative paths given to tools resolve against
// projectPath, which is also where .moqlint.yaml is read from.
func NewMoqlintMCPServer(projectPath string, log *zap.Logger) *server.MCPServer {
	if log == nil {
		log = zap.NewNop()
	}

	s := server.NewMCPServer(
		"moqlint",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	h := &handlers{projectPath: projectPath, log: log}
	registerTools(s, h)
	registerResources(s)

	return s
}
