// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/chartkit/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Shared argument descriptions.
const (
	seriesDesc  = `Series as JSON: an array of {"id","name","points":[{"x","y"}]} or an object {"series":[...],"stats":[...]}. X may be a number or an RFC3339 timestamp.`
	samplesDesc = `Category samples as JSON: an array of {"x","category"} or an object {"samples":[...]}.`
)

// layoutOptions are the chart layout arguments shared by every geometry tool.
func layoutOptions() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithNumber("width", mcp.Description("Chart width in pixels.")),
		mcp.WithNumber("height", mcp.Description("Chart height in pixels.")),
		mcp.WithString("margin", mcp.Description("Pixel margins as 'all', 'vertical,horizontal' or 'top,right,bottom,left'.")),
		mcp.WithString("x_axis", mcp.Description("X axis kind. Defaults to the server configuration."), mcp.Enum("linear", "temporal")),
		mcp.WithNumber("ticks", mcp.Description("Approximate number of axis ticks.")),
	}
}

// newTool builds a tool from its own options followed by the shared layout options.
func newTool(name, description string, opts ...mcp.ToolOption) mcp.Tool {
	all := append([]mcp.ToolOption{mcp.WithDescription(description)}, opts...)
	return mcp.NewTool(name, append(all, layoutOptions()...)...)
}

// NewMCPServer initializes and configures the Chartkit MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Chartkit Geometry Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: render_chart ---
	s.AddTool(newTool("render_chart",
		"Compute full chart geometry: fitted axes with ticks, SVG paths per series, category bands and a screen-reader summary.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
		mcp.WithString("samples_json", mcp.Description(samplesDesc)),
		mcp.WithString("curve", mcp.Description("Curve interpolation. Defaults to the server configuration."), mcp.Enum("linear", "monotone", "step", "natural")),
		mcp.WithNumber("reveal", mcp.Description("Fraction of each path to draw, from 0 to 1.")),
	), h.handleRenderChart)

	// --- 2. Tool: fit_scales ---
	s.AddTool(newTool("fit_scales",
		"Fit the x and y scales to the data and return their domains, ranges and ticks.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
	), h.handleFitScales)

	// --- 3. Tool: find_nearest ---
	s.AddTool(newTool("find_nearest",
		"Find the data point nearest to a pointer and narrate it.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Pointer x, as a domain value unless pixel is true."), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Pointer y, as a domain value unless pixel is true."), mcp.Required()),
		mcp.WithBoolean("pixel", mcp.Description("Treat x and y as pixel coordinates.")),
	), h.handleFindNearest)

	// --- 4. Tool: brush_range ---
	s.AddTool(newTool("brush_range",
		"Select an x range by dragging from one position to another and count the points inside it.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
		mcp.WithNumber("from", mcp.Description("Drag start, as a domain value unless pixel is true."), mcp.Required()),
		mcp.WithNumber("to", mcp.Description("Drag end, as a domain value unless pixel is true."), mcp.Required()),
		mcp.WithBoolean("pixel", mcp.Description("Treat from and to as pixel coordinates.")),
		mcp.WithNumber("min_width", mcp.Description("Minimum drag width in pixels for a selection to count.")),
	), h.handleBrushRange)

	// --- 5. Tool: compress_bands ---
	s.AddTool(newTool("compress_bands",
		"Merge consecutive category samples into bands and lay them out on the x axis.",
		mcp.WithString("samples_json", mcp.Description(samplesDesc), mcp.Required()),
		mcp.WithString("series_json", mcp.Description("Optional series that widen the x domain. "+seriesDesc)),
	), h.handleCompressBands)

	// --- 6. Tool: navigate_points ---
	s.AddTool(newTool("navigate_points",
		"Replay keyboard keys through the point focus state machine and narrate each step.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
		mcp.WithString("keys", mcp.Description("Comma-separated keys or actions, e.g. 'ArrowRight,ArrowDown,End,Enter'."), mcp.Required()),
		mcp.WithString("wrap", mcp.Description("Behaviour at the ends of a series."), mcp.Enum("clamp", "wrap")),
	), h.handleNavigatePoints)

	// --- 7. Tool: describe_chart ---
	s.AddTool(newTool("describe_chart",
		"Compose a screen-reader description of the chart and its category bands.",
		mcp.WithString("series_json", mcp.Description(seriesDesc), mcp.Required()),
		mcp.WithString("samples_json", mcp.Description(samplesDesc)),
	), h.handleDescribeChart)

	return s
}

// StartMCPServer starts the Chartkit MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.CacheManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
