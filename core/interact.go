package core

import (
	"fmt"

	"github.com/huangsam/chartkit/core/bands"
	"github.com/huangsam/chartkit/core/brush"
	"github.com/huangsam/chartkit/core/hit"
	"github.com/huangsam/chartkit/core/keynav"
	"github.com/huangsam/chartkit/internal/contract"
	"github.com/huangsam/chartkit/schema"
)

// FitScales returns both axes fitted to the input.
func FitScales(cfg *contract.Config, in ChartInput) (schema.ScaleResult, error) {
	x, y, err := ComputeScales(cfg, in)
	if err != nil {
		return schema.ScaleResult{}, err
	}
	return schema.ScaleResult{Dimensions: cfg.Dimensions, X: x.Axis(), Y: y.Axis()}, nil
}

// Nearest resolves the configured pointer to the nearest data point. In pixel mode
// both pointer coordinates are pixels; otherwise both are domain values.
func Nearest(cfg *contract.Config, in ChartInput) (schema.NearestResult, error) {
	x, y, err := ComputeScales(cfg, in)
	if err != nil {
		return schema.NearestResult{}, err
	}
	scales := hit.Scales{X: x, Y: y}

	var (
		h  schema.HitResult
		ok bool
	)
	px, py := cfg.PointerX, cfg.PointerY
	if cfg.PixelMode {
		h, ok = hit.FindNearestPixel(in.Series, px, py, scales)
	} else {
		px, py = x.Forward(px), y.Forward(py)
		h, ok = hit.FindNearest(in.Series, cfg.PointerX, py, scales)
	}
	result := schema.NearestResult{Pointer: schema.Point{X: px, Y: py}}
	if !ok {
		result.Narration = "No point near the pointer."
		return result, nil
	}
	result.Found = true
	result.Hit = h
	result.SeriesName = in.Series[h.SeriesIndex].Label()
	result.Pixel = schema.Point{X: x.Forward(h.Point.X), Y: y.Forward(h.Point.Y)}
	focus := schema.FocusState{SeriesIndex: h.SeriesIndex, PointIndex: h.PointIndex}
	result.Narration = describer(cfg).Focus(in.Series, focus)
	return result, nil
}

// Brush replays a drag from BrushFrom to BrushTo and counts the points each series
// has inside the selected domain range. In pixel mode the ends are pixels; otherwise
// they are domain values.
func Brush(cfg *contract.Config, in ChartInput) (schema.BrushResult, error) {
	x, _, err := ComputeScales(cfg, in)
	if err != nil {
		return schema.BrushResult{}, err
	}

	from, to := cfg.BrushFrom, cfg.BrushTo
	if !cfg.PixelMode {
		from, to = x.Forward(from), x.Forward(to)
	}
	b := brush.New(x).WithMinWidth(cfg.MinBrushWidth).Start(from).Update(to)
	sel, ok := b.End()

	result := schema.BrushResult{Active: ok, Description: describer(cfg).Brush(sel, ok)}
	if !ok {
		return result, nil
	}
	result.Selection = sel
	result.Series = make([]schema.SeriesCount, 0, len(in.Series))
	for _, s := range in.Series {
		count := 0
		for _, p := range s.Points {
			if p.X >= sel.DomainRange[0] && p.X <= sel.DomainRange[1] {
				count++
			}
		}
		result.Series = append(result.Series, schema.SeriesCount{SeriesID: s.ID, Name: s.Label(), Points: count})
	}
	return result, nil
}

// Bands compresses the input samples and lays the bands out along the x axis.
func Bands(cfg *contract.Config, in ChartInput) (schema.BandsResult, error) {
	var xs []float64
	for _, s := range in.Series {
		xs = append(xs, s.Xs()...)
	}
	for _, c := range in.Samples {
		xs = append(xs, c.X)
	}
	x, err := computeXScale(cfg, xs)
	if err != nil {
		return schema.BandsResult{}, err
	}

	compressed := bands.Compress(in.Samples)
	spans := bands.Spans(compressed, x)
	result := schema.BandsResult{
		Samples:     len(in.Samples),
		Bands:       make([]schema.BandSpan, len(compressed)),
		Description: describer(cfg).Bands(compressed),
	}
	for i, b := range compressed {
		result.Bands[i] = schema.BandSpan{Band: b, Left: spans[i].Left, Right: spans[i].Right}
	}
	return result, nil
}

// Navigate replays a sequence of keys through the focus state machine, starting
// with nothing focused, and narrates each step.
func Navigate(cfg *contract.Config, in ChartInput, keys []string) (schema.NavigationResult, error) {
	nav := keynav.Navigator{Wrap: cfg.Wrap}
	lengths := make([]int, len(in.Series))
	for i, s := range in.Series {
		lengths[i] = len(s.Points)
	}
	d := describer(cfg)

	result := schema.NavigationResult{Steps: make([]schema.NavigationStep, 0, len(keys)), Final: schema.NoFocus}
	focus := keynav.Reset()
	for _, key := range keys {
		action, ok := keynav.ActionForKey(key)
		if !ok {
			action, ok = keynav.ParseAction(key)
		}
		if !ok {
			return result, fmt.Errorf("unknown navigation key %q", key)
		}

		next, sel, err := nav.Apply(focus, action, lengths)
		if err != nil {
			return result, fmt.Errorf("key %q: %w", key, err)
		}
		focus = next

		narration := d.Focus(in.Series, focus)
		if sel != nil {
			narration = "Selected. " + narration
		}
		result.Steps = append(result.Steps, schema.NavigationStep{
			Key:       key,
			Action:    action.String(),
			Focus:     focus,
			Selected:  sel != nil,
			Narration: narration,
		})
	}
	result.Final = focus
	return result, nil
}

// Describe composes the screen-reader summary for the input, plus the band
// description when category samples are present.
func Describe(cfg *contract.Config, in ChartInput) schema.DescribeResult {
	d := describer(cfg)
	result := schema.DescribeResult{Summary: d.Summary(in.Series, allStats(cfg, in))}
	if len(in.Samples) > 0 {
		result.Bands = d.Bands(bands.Compress(in.Samples))
	}
	return result
}

// KeyBindings lists the navigation actions and the keys that trigger them.
func KeyBindings() []schema.KeyBinding {
	all := keynav.Bindings()
	out := make([]schema.KeyBinding, len(all))
	for i, b := range all {
		out[i] = schema.KeyBinding{Action: b.Action.String(), Keys: b.Keys}
	}
	return out
}
