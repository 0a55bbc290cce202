// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/pulseboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Pulseboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Pulseboard Dashboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: get_metric_series ---
	s.AddTool(mcp.NewTool("get_metric_series",
		mcp.WithDescription("Aggregate a derived product metric into calendar buckets over a date range."),
		mcp.WithString("metric", mcp.Description("Derived metric to aggregate (ticket_rate, msat). Defaults to 'ticket_rate'."), mcp.Enum("ticket_rate", "msat")),
		mcp.WithString("granularity", mcp.Description("Bucketing level (day, week, month, year). Defaults to 'day'."), mcp.Enum("day", "week", "month", "year")),
		mcp.WithString("start", mcp.Description("Inclusive range start (YYYY-MM-DD, RFC3339, or relative like '2 weeks ago').")),
		mcp.WithString("end", mcp.Description("Inclusive range end (YYYY-MM-DD, RFC3339, or relative like '1 day ago').")),
		mcp.WithString("data_dir", mcp.Description("Directory holding the metric and release CSV files.")),
	), h.handleGetMetricSeries)

	// --- 2. Tool: get_release_buckets ---
	s.AddTool(mcp.NewTool("get_release_buckets",
		mcp.WithDescription("Group release events into the same calendar buckets as the metric series."),
		mcp.WithString("granularity", mcp.Description("Bucketing level (day, week, month, year)."), mcp.Enum("day", "week", "month", "year")),
		mcp.WithString("start", mcp.Description("Inclusive range start.")),
		mcp.WithString("end", mcp.Description("Inclusive range end.")),
		mcp.WithString("data_dir", mcp.Description("Directory holding the metric and release CSV files.")),
	), h.handleGetReleaseBuckets)

	// --- 3. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Build the full dashboard view: metric series, aligned releases, and the shared axis."),
		mcp.WithString("metric", mcp.Description("Derived metric to aggregate (ticket_rate, msat)."), mcp.Enum("ticket_rate", "msat")),
		mcp.WithString("granularity", mcp.Description("Bucketing level (day, week, month, year)."), mcp.Enum("day", "week", "month", "year")),
		mcp.WithString("start", mcp.Description("Inclusive range start.")),
		mcp.WithString("end", mcp.Description("Inclusive range end.")),
		mcp.WithString("data_dir", mcp.Description("Directory holding the metric and release CSV files.")),
	), h.handleGetDashboard)

	return s
}

// StartMCPServer starts the Pulseboard MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
