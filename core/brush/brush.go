// Package brush tracks a horizontal drag selection over an x scale.
//
// A Brush is a value: every transition returns a new Brush and leaves the old one intact,
// so callers keep as many snapshots as they like. Anchors are stored in domain units, which
// lets a brush survive a resize through Rescale.
package brush

import (
	"math"

	"github.com/huangsam/chartkit/core/scale"
	"github.com/huangsam/chartkit/schema"
)

// DefaultMinWidth is the narrowest drag in pixels that still resolves to a selection.
const DefaultMinWidth = 2.0

// Brush is the state of one drag interaction.
type Brush struct {
	Scale    scale.Scale
	MinWidth float64

	anchor float64
	head   float64
	active bool
}

// New returns an idle brush over the given scale.
func New(s scale.Scale) Brush {
	return Brush{Scale: s, MinWidth: DefaultMinWidth}
}

// WithMinWidth returns a copy using a different minimum drag width. Non-positive widths
// fall back to DefaultMinWidth.
func (b Brush) WithMinWidth(px float64) Brush {
	if !(px > 0) {
		px = DefaultMinWidth
	}
	b.MinWidth = px
	return b
}

// Active reports whether a drag is in progress.
func (b Brush) Active() bool {
	return b.active
}

// Start begins a drag at pixel px. Pixels outside the range are clamped.
func (b Brush) Start(px float64) Brush {
	b.anchor = b.toDomain(px)
	b.head = b.anchor
	b.active = true
	return b
}

// Update moves the free end of an active drag. An idle brush is returned unchanged.
func (b Brush) Update(px float64) Brush {
	if !b.active {
		return b
	}
	b.head = b.toDomain(px)
	return b
}

// Clear drops any drag in progress.
func (b Brush) Clear() Brush {
	b.active = false
	b.anchor, b.head = 0, 0
	return b
}

// End resolves the drag. ok is false for an idle brush or a drag narrower than MinWidth.
func (b Brush) End() (schema.BrushSelection, bool) {
	lo, hi, ok := b.Pixels()
	if !ok {
		return schema.BrushSelection{}, false
	}
	minWidth := b.MinWidth
	if !(minWidth > 0) {
		minWidth = DefaultMinWidth
	}
	if hi-lo < minWidth {
		return schema.BrushSelection{}, false
	}
	d0, d1 := b.Scale.Invert(lo), b.Scale.Invert(hi)
	return schema.BrushSelection{
		PixelRange:  [2]float64{lo, hi},
		DomainRange: [2]float64{math.Min(d0, d1), math.Max(d0, d1)},
	}, true
}

// Pixels reports the current pixel extent of an active drag, ascending and clamped to
// the range.
func (b Brush) Pixels() (float64, float64, bool) {
	if !b.active {
		return 0, 0, false
	}
	p0 := b.Scale.Clamp(b.Scale.Forward(b.anchor))
	p1 := b.Scale.Clamp(b.Scale.Forward(b.head))
	return math.Min(p0, p1), math.Max(p0, p1), true
}

// Rescale swaps in a new scale, keeping the drag anchored to the same domain values.
func (b Brush) Rescale(s scale.Scale) Brush {
	b.Scale = s
	return b
}

// Project maps a resolved selection onto a scale, recomputing its pixel range from the
// domain range. Use it to redraw a committed selection after a resize.
func Project(sel schema.BrushSelection, s scale.Scale) schema.BrushSelection {
	p0 := s.Clamp(s.Forward(sel.DomainRange[0]))
	p1 := s.Clamp(s.Forward(sel.DomainRange[1]))
	sel.PixelRange = [2]float64{math.Min(p0, p1), math.Max(p0, p1)}
	return sel
}

func (b Brush) toDomain(px float64) float64 {
	return b.Scale.Invert(b.Scale.Clamp(px))
}
