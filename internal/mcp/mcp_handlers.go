package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/huangsam/pulseboard/core"
	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/huangsam/pulseboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// applyOverrides clones the base config and applies the selection overrides
// shared by every tool. Invalid overrides surface as tool errors.
func (h *toolHandler) applyOverrides(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()

	if m := request.GetString("metric", ""); m != "" {
		metric := schema.Metric(m)
		if _, ok := schema.ValidMetrics[metric]; !ok {
			return nil, fmt.Errorf("invalid metric '%s'. must be ticket_rate, msat", m)
		}
		cfg.Metric = metric
	}
	if g := request.GetString("granularity", ""); g != "" {
		granularity := schema.Granularity(g)
		if _, ok := schema.ValidGranularities[granularity]; !ok {
			return nil, fmt.Errorf("invalid granularity '%s'. must be day, week, month, year", g)
		}
		cfg.Granularity = granularity
	}

	startStr := request.GetString("start", "")
	endStr := request.GetString("end", "")
	if err := contract.RevalidateWindow(cfg, startStr, endStr); err != nil {
		return nil, err
	}

	if d := request.GetString("data_dir", ""); d != "" {
		if err := contract.RevalidateDataDir(cfg, d); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (h *toolHandler) handleGetMetricSeries(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid series parameters: %v", err)), nil
	}

	view, err := core.GetDashboardResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("series computation failed: %v", err)), nil
	}

	result := schema.SeriesResult{
		Metric:      view.Metric,
		Granularity: view.Granularity,
		Points:      view.Points,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetReleaseBuckets(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid release parameters: %v", err)), nil
	}

	view, err := core.GetDashboardResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("release alignment failed: %v", err)), nil
	}

	result := schema.ReleasesResult{
		Granularity: view.Granularity,
		Buckets:     view.Releases,
	}
	jsonData, _ := json.MarshalIndent(result, "", "  ")

	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetDashboard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.applyOverrides(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid dashboard parameters: %v", err)), nil
	}

	view, err := core.GetDashboardResults(cfg, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("dashboard computation failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(view, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
