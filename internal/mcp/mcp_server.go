// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/ladder/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Ladder MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Ladder Method Selection Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: select_method ---
	s.AddTool(mcp.NewTool("select_method",
		mcp.WithDescription("Score one input mapping and select the method whose ladder bracket it reaches."),
		mcp.WithString("input", mcp.Description("The input as a JSON or YAML mapping."), mcp.Required()),
		mcp.WithString("name", mcp.Description("Name recorded for the input (defaults to 'inline').")),
		mcp.WithString("factors", mcp.Description("Comma-separated factors, e.g. 'keys,depth' or 'field:complexity'.")),
		mcp.WithString("related", mcp.Description("Comma-separated related values for the derived metric.")),
		mcp.WithString("default_method", mcp.Description("Method used when no bracket matches.")),
		mcp.WithBoolean("clamp", mcp.Description("Clamp derived metrics to [0,1].")),
	), h.handleSelectMethod)

	// --- 2. Tool: select_paths ---
	s.AddTool(mcp.NewTool("select_paths",
		mcp.WithDescription("Select methods for input files or directories, ranked by complexity."),
		mcp.WithString("paths", mcp.Description("Comma-separated files or directories."), mcp.Required()),
		mcp.WithString("factors", mcp.Description("Comma-separated factors.")),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleSelectPaths)

	// --- 3. Tool: list_methods ---
	s.AddTool(mcp.NewTool("list_methods",
		mcp.WithDescription("List the method catalogue ranked by score, with ladder thresholds."),
	), h.handleListMethods)

	return s
}

// StartMCPServer starts the Ladder MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
