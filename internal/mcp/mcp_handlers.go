package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"math"

	"github.com/huangsam/solarsite/core"
	"github.com/huangsam/solarsite/core/algo"
	"github.com/huangsam/solarsite/internal/contract"
	"github.com/huangsam/solarsite/internal/sitedoc"
	"github.com/huangsam/solarsite/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// classification is the payload of classify_score.
type classification struct {
	TotalScore float64         `json:"total_score"`
	Decision   schema.Decision `json:"decision"`
	Label      string          `json:"label"`
}

func (h *toolHandler) handleScoreSite(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	metrics, ok := args["metrics"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("invalid site: metrics must be an object"), nil
	}

	raw := maps.Clone(metrics)
	name := request.GetString("name", "")
	if name != "" {
		raw[sitedoc.NameKey] = name
	}
	cfg := h.baseCfg.Clone()
	if owner, present := args["land_ownership"]; present {
		raw[sitedoc.OwnershipKey] = owner
		cfg.Ownership = 0 // an explicit argument beats the server-wide override
	}

	path := "mcp:score_site"
	if name != "" {
		path = "mcp:" + name
	}
	doc, err := sitedoc.DecodeMap(raw, path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid site: %v", err)), nil
	}

	result, err := core.ScoreDocument(core.WithSuppressHeader(ctx), cfg, h.mgr, doc)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result.Report, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleRankSites(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pattern, err := request.RequireString("pattern")
	if err != nil || pattern == "" {
		return mcp.NewToolResultError("pattern is required"), nil
	}

	cfg := h.baseCfg.Clone()
	cfg.Inputs = []string{pattern}
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = min(l, contract.MaxResultLimit)
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = contract.DefaultResultLimit
	}
	if cfg.Workers <= 0 {
		cfg.Workers = contract.DefaultWorkers
	}

	ranked, err := core.GetBatchResults(core.WithSuppressHeader(ctx), cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("ranking failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(ranked, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetCatalog(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.Catalog(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleClassifyScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	total, err := request.RequireFloat("total_score")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid total_score: %v", err)), nil
	}
	if math.IsNaN(total) || total < 0 || total > schema.MaxScore {
		return mcp.NewToolResultError(fmt.Sprintf("invalid total_score: %g is outside 0-%g", total, schema.MaxScore)), nil
	}

	decision := algo.Classify(total)
	jsonData, _ := json.MarshalIndent(classification{
		TotalScore: total,
		Decision:   decision,
		Label:      decision.Label(),
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
