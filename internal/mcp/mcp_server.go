// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/solarsite/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the solarsite MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Solar Site Suitability Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: score_site ---
	s.AddTool(mcp.NewTool("score_site",
		mcp.WithDescription("Score one candidate solar-farm site from its raw metrics and return the weighted decision matrix."),
		mcp.WithObject("metrics",
			mcp.Description("Flat map of metric key to raw value. Use null for metrics that could not be measured. See get_catalog for keys and units."),
			mcp.Required(),
		),
		mcp.WithNumber("land_ownership", mcp.Description("Land ownership code: 1 for government land, any other code for private land. Overrides metrics.landOwnership.")),
		mcp.WithString("name", mcp.Description("Optional display name for the site.")),
	), h.handleScoreSite)

	// --- 2. Tool: rank_sites ---
	s.AddTool(mcp.NewTool("rank_sites",
		mcp.WithDescription("Score site documents on disk and rank them by total score."),
		mcp.WithString("pattern", mcp.Description("Path or doublestar glob of JSON/YAML site documents, e.g. 'sites/**/*.json'."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of results returned.")),
	), h.handleRankSites)

	// --- 3. Tool: get_catalog ---
	s.AddTool(mcp.NewTool("get_catalog",
		mcp.WithDescription("List every scored criterion with its weight, unit, scoring policy and improvement suggestion."),
	), h.handleGetCatalog)

	// --- 4. Tool: classify_score ---
	s.AddTool(mcp.NewTool("classify_score",
		mcp.WithDescription("Map a weighted total score onto the Go / Review / NoGo decision."),
		mcp.WithNumber("total_score", mcp.Description("Weighted total between 0 and 10."), mcp.Required()),
	), h.handleClassifyScore)

	return s
}

// StartMCPServer serves the tools over stdio until the client disconnects.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
