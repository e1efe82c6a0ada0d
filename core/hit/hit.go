// Package hit resolves a pointer position to the nearest data point across series.
package hit

import (
	"math"
	"sort"

	"github.com/huangsam/chartkit/core/scale"
	"github.com/huangsam/chartkit/schema"
)

// Scales are the scales a chart was drawn with. PerSeriesY overrides Y for the
// series whose ID it contains.
type Scales struct {
	X          scale.Scale
	Y          scale.Scale
	PerSeriesY map[string]scale.Scale
}

// yFor returns the y scale a series was drawn with.
func (s Scales) yFor(id string) scale.Scale {
	if y, ok := s.PerSeriesY[id]; ok {
		return y
	}
	return s.Y
}

// NearestIndex bisects points (ascending by X) for the index closest to x.
// When x is equally far from both neighbours the earlier index wins. It returns -1
// for an empty slice.
func NearestIndex(points []schema.DataPoint, x float64) int {
	n := len(points)
	if n == 0 || math.IsNaN(x) {
		return -1
	}
	i := sort.Search(n, func(k int) bool { return points[k].X >= x })
	switch {
	case i == 0:
		return 0
	case i == n:
		return n - 1
	}
	if x-points[i-1].X <= points[i].X-x {
		return i - 1
	}
	return i
}

// FindNearest picks, per series, the point nearest in X to pointerX (a domain value),
// then the series whose point lies closest to pointerY in pixels. Ties on pixel distance
// go to the lower series ID and then the lower point index, so the result does not
// depend on series order. ok is false when no series has points.
func FindNearest(series []schema.Series, pointerX, pointerY float64, s Scales) (schema.HitResult, bool) {
	var best schema.HitResult
	found := false
	for si, sr := range series {
		idx := NearestIndex(sr.Points, pointerX)
		if idx < 0 {
			continue
		}
		p := sr.Points[idx]
		dist := math.Abs(s.yFor(sr.ID).Forward(p.Y) - pointerY)
		if math.IsNaN(dist) {
			continue
		}
		cand := schema.HitResult{
			SeriesID:       sr.ID,
			SeriesIndex:    si,
			PointIndex:     idx,
			Point:          p,
			PixelDistanceY: dist,
		}
		if !found || closer(cand, best) {
			best, found = cand, true
		}
	}
	return best, found
}

// FindNearestPixel is FindNearest for a pointer given entirely in pixels.
func FindNearestPixel(series []schema.Series, pixelX, pixelY float64, s Scales) (schema.HitResult, bool) {
	return FindNearest(series, s.X.Invert(pixelX), pixelY, s)
}

func closer(a, b schema.HitResult) bool {
	if a.PixelDistanceY != b.PixelDistanceY {
		return a.PixelDistanceY < b.PixelDistanceY
	}
	if a.SeriesID != b.SeriesID {
		return a.SeriesID < b.SeriesID
	}
	return a.PointIndex < b.PointIndex
}
