package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/huangsam/chartkit/core"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/internal/dataload"
	"github.com/huangsam/chartkit/internal/outwriter"
	"github.com/huangsam/chartkit/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// layoutConfig clones the base config and applies the shared layout arguments.
func (h *toolHandler) layoutConfig(request mcp.CallToolRequest) (*contract.Config, error) {
	cfg := h.baseCfg.Clone()
	if w := request.GetFloat("width", 0); w > 0 {
		cfg.Dimensions.Width = w
	}
	if ht := request.GetFloat("height", 0); ht > 0 {
		cfg.Dimensions.Height = ht
	}
	if x := request.GetString("x_axis", ""); x != "" {
		cfg.XAxis = schema.ScaleKind(x)
	}
	if t := request.GetInt("ticks", 0); t > 0 {
		cfg.Ticks = t
	}
	if c := request.GetString("curve", ""); c != "" {
		cfg.Curve = schema.CurveKind(c)
	}
	cfg.Reveal = request.GetFloat("reveal", cfg.Reveal)

	if err := contract.RevalidateLayout(cfg, request.GetString("margin", "")); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseInput decodes the inline series and samples arguments.
func parseInput(request mcp.CallToolRequest, needSeries, needSamples bool) (core.ChartInput, error) {
	var in core.ChartInput

	seriesJSON := strings.TrimSpace(request.GetString("series_json", ""))
	if seriesJSON == "" && needSeries {
		return in, fmt.Errorf("series_json is required")
	}
	if seriesJSON != "" {
		data, err := dataload.ReadSeriesJSON(strings.NewReader(seriesJSON))
		if err != nil {
			return in, err
		}
		dataload.SortSeries(data.Series)
		in.Series, in.Stats = data.Series, data.Stats
	}

	samplesJSON := strings.TrimSpace(request.GetString("samples_json", ""))
	if samplesJSON == "" && needSamples {
		return in, fmt.Errorf("samples_json is required")
	}
	if samplesJSON != "" {
		samples, err := dataload.ReadSamplesJSON(strings.NewReader(samplesJSON))
		if err != nil {
			return in, err
		}
		dataload.SortSamples(samples)
		in.Samples = samples
	}
	return in, nil
}

// prepare resolves the config and input shared by every tool.
func (h *toolHandler) prepare(request mcp.CallToolRequest, needSeries, needSamples bool) (*contract.Config, core.ChartInput, *mcp.CallToolResult) {
	cfg, err := h.layoutConfig(request)
	if err != nil {
		return nil, core.ChartInput{}, mcp.NewToolResultError(fmt.Sprintf("invalid layout parameters: %v", err))
	}
	in, err := parseInput(request, needSeries, needSamples)
	if err != nil {
		return nil, core.ChartInput{}, mcp.NewToolResultError(fmt.Sprintf("invalid input: %v", err))
	}
	return cfg, in, nil
}

// jsonResult renders a result as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	text, err := outwriter.FormatJSON(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (h *toolHandler) handleRenderChart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}

	ctx = core.WithCommand(core.WithSuppressHeader(ctx), "mcp:render_chart")
	geom, err := core.BuildChart(ctx, cfg, in, h.mgr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("render failed: %v", err)), nil
	}
	return jsonResult(geom)
}

func (h *toolHandler) handleFitScales(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}

	result, err := core.FitScales(cfg, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scale fitting failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleFindNearest(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}

	x, err := request.RequireFloat("x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := request.RequireFloat("y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.PointerX, cfg.PointerY = x, y
	cfg.PixelMode = request.GetBool("pixel", false)

	result, err := core.Nearest(cfg, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("hit test failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleBrushRange(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}

	from, err := request.RequireFloat("from")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	to, err := request.RequireFloat("to")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cfg.BrushFrom, cfg.BrushTo = from, to
	cfg.PixelMode = request.GetBool("pixel", false)
	if mw := request.GetFloat("min_width", -1); mw >= 0 {
		cfg.MinBrushWidth = mw
	}

	result, err := core.Brush(cfg, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("brush failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleCompressBands(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, false, true)
	if errResult != nil {
		return errResult, nil
	}

	result, err := core.Bands(cfg, in)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("band compression failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleNavigatePoints(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}

	if w := request.GetString("wrap", ""); w != "" {
		cfg.Wrap = schema.WrapPolicy(w)
		if _, ok := schema.ValidWrapPolicies[cfg.Wrap]; !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid wrap policy '%s'. must be clamp, wrap", w)), nil
		}
	}

	keys := contract.ParseKeys(request.GetString("keys", ""))
	if len(keys) == 0 {
		return mcp.NewToolResultError("keys is required"), nil
	}

	result, err := core.Navigate(cfg, in, keys)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("navigation failed: %v", err)), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleDescribeChart(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, in, errResult := h.prepare(request, true, false)
	if errResult != nil {
		return errResult, nil
	}
	return jsonResult(core.Describe(cfg, in))
}
