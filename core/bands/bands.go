// Package bands run-length merges categorical samples into contiguous bands.
package bands

import (
	"math"
	"sort"

	"github.com/huangsam/chartkit/core/scale"
	"github.com/huangsam/chartkit/schema"
)

// Compress merges consecutive samples with the same category into bands.
// Samples must be ascending by X. Each band is closed on both ends: EndX is the X of the
// last sample in the run, not the start of the next band. Samples with a non-finite X
// are skipped.
func Compress(samples []schema.CategorySample) []schema.Band {
	bands := []schema.Band{}
	for _, s := range samples {
		if math.IsNaN(s.X) || math.IsInf(s.X, 0) {
			continue
		}
		if n := len(bands); n > 0 && bands[n-1].Category == s.Category {
			bands[n-1].EndX = s.X
			continue
		}
		bands = append(bands, schema.Band{Category: s.Category, StartX: s.X, EndX: s.X})
	}
	return bands
}

// Expand looks up the category at each x. Positions outside every band map to "".
// Expanding the bands of Compress over the original x positions gives back the
// original category sequence.
func Expand(bands []schema.Band, xs []float64) []string {
	out := make([]string, len(xs))
	for i, x := range xs {
		j := sort.Search(len(bands), func(k int) bool { return bands[k].EndX >= x })
		if j < len(bands) && bands[j].StartX <= x {
			out[i] = bands[j].Category
		}
	}
	return out
}

// Span is the horizontal pixel extent of a band.
type Span struct {
	Category string  `json:"category"`
	Left     float64 `json:"left"`
	Right    float64 `json:"right"`
}

// Width is the pixel width of the span. Single-sample bands have zero width.
func (s Span) Width() float64 {
	return s.Right - s.Left
}

// Spans projects bands into pixel space. Extents are clamped to the scale's range.
func Spans(bands []schema.Band, x scale.Scale) []Span {
	spans := make([]Span, len(bands))
	for i, b := range bands {
		l, r := x.Clamp(x.Forward(b.StartX)), x.Clamp(x.Forward(b.EndX))
		if l > r {
			l, r = r, l
		}
		spans[i] = Span{Category: b.Category, Left: l, Right: r}
	}
	return spans
}
