// Package curve turns ordered pixel-space points into renderable path geometry.
package curve

import (
	"fmt"

	"github.com/huangsam/chartkit/core/scale"
	"github.com/huangsam/chartkit/schema"
)

// Build joins points with the given curve kind. Points must be ascending by X.
//
// Non-finite points are dropped. When several points share an X, the later one wins:
// only the last point of each run of equal X values takes part in the interpolation.
// A single remaining point yields a degenerate path with no segments; no points at all
// yields *schema.EmptyDomainError.
func Build(points []schema.Point, kind schema.CurveKind) (schema.Path, error) {
	pts := dedupe(points)
	if len(pts) == 0 {
		return schema.Path{}, &schema.EmptyDomainError{Axis: "x"}
	}
	if kind == "" {
		kind = schema.LinearCurve
	}
	path := schema.Path{Kind: kind, Start: pts[0]}
	if len(pts) == 1 {
		path.Degenerate = true
		return path, nil
	}

	switch kind {
	case schema.LinearCurve:
		path.Segments = linear(pts)
	case schema.StepCurve:
		path.Segments = step(pts)
	case schema.MonotoneCurve:
		path.Segments = hermite(pts, monotoneTangents(pts))
	case schema.NaturalCurve:
		path.Segments = hermite(pts, naturalTangents(pts))
	default:
		return schema.Path{}, fmt.Errorf("unsupported curve kind %q", kind)
	}
	return path, nil
}

// Project maps a series into pixel space through an x and a y scale.
func Project(series schema.Series, x, y scale.Scale) []schema.Point {
	pts := make([]schema.Point, len(series.Points))
	for i, p := range series.Points {
		pts[i] = schema.Point{X: x.Forward(p.X), Y: y.Forward(p.Y)}
	}
	return pts
}

// ForSeries projects a series and builds its path in one step.
func ForSeries(series schema.Series, x, y scale.Scale, kind schema.CurveKind) (schema.Path, []schema.Point, error) {
	pts := Project(series, x, y)
	path, err := Build(pts, kind)
	if err != nil {
		return schema.Path{}, nil, fmt.Errorf("series %s: %w", series.ID, err)
	}
	return path, pts, nil
}

func dedupe(points []schema.Point) []schema.Point {
	out := make([]schema.Point, 0, len(points))
	for _, p := range points {
		if !p.IsFinite() {
			continue
		}
		if n := len(out); n > 0 && out[n-1].X == p.X {
			out[n-1] = p
			continue
		}
		out = append(out, p)
	}
	return out
}

func linear(pts []schema.Point) []schema.Segment {
	segs := make([]schema.Segment, 0, len(pts)-1)
	for _, p := range pts[1:] {
		segs = append(segs, schema.Segment{Op: schema.LineTo, End: p})
	}
	return segs
}

// step is right-continuous: hold the previous y until the next x, then jump.
func step(pts []schema.Point) []schema.Segment {
	segs := make([]schema.Segment, 0, 2*(len(pts)-1))
	for i := 1; i < len(pts); i++ {
		prev, cur := pts[i-1], pts[i]
		segs = append(segs, schema.Segment{Op: schema.LineTo, End: schema.Point{X: cur.X, Y: prev.Y}})
		if cur.Y != prev.Y {
			segs = append(segs, schema.Segment{Op: schema.LineTo, End: cur})
		}
	}
	return segs
}
