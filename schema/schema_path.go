package schema

import (
	"math"
	"strconv"
	"strings"
)

// cubicSteps is the number of chords used to measure a cubic segment.
const cubicSteps = 16

// End returns the last point of the path.
func (p Path) End() Point {
	if len(p.Segments) == 0 {
		return p.Start
	}
	return p.Segments[len(p.Segments)-1].End
}

// At evaluates the path at pixel x. The boolean is false outside the path's x extent.
// At a jump in a step path the value to the right of the jump is returned.
func (p Path) At(x float64) (float64, bool) {
	if math.IsNaN(x) {
		return 0, false
	}
	from := p.Start
	for _, seg := range p.Segments {
		if from.X <= x && x < seg.End.X {
			t := (x - from.X) / (seg.End.X - from.X)
			if seg.Op == CubicTo {
				return cubicAt(from, seg.C1, seg.C2, seg.End, t).Y, true
			}
			return from.Y + t*(seg.End.Y-from.Y), true
		}
		from = seg.End
	}
	if end := p.End(); x == end.X {
		return end.Y, true
	}
	return 0, false
}

// Length is the arc length of the path in pixels. Cubic segments are approximated by chords.
func (p Path) Length() float64 {
	total := 0.0
	from := p.Start
	for _, seg := range p.Segments {
		total += segmentLength(from, seg)
		from = seg.End
	}
	return total
}

// Reveal truncates the path to the given fraction of its length, for animated entry.
// Fractions are clamped to [0, 1]; zero keeps only the start point.
func (p Path) Reveal(fraction float64) Path {
	if math.IsNaN(fraction) || fraction <= 0 {
		return Path{Kind: p.Kind, Start: p.Start, Degenerate: p.Degenerate}
	}
	if fraction >= 1 {
		out := p
		out.Segments = append([]Segment(nil), p.Segments...)
		return out
	}

	remaining := fraction * p.Length()
	out := Path{Kind: p.Kind, Start: p.Start, Degenerate: p.Degenerate}
	from := p.Start
	for _, seg := range p.Segments {
		l := segmentLength(from, seg)
		if l <= remaining {
			out.Segments = append(out.Segments, seg)
			remaining -= l
			from = seg.End
			continue
		}
		if remaining > 0 {
			out.Segments = append(out.Segments, splitSegment(from, seg, remaining/l))
		}
		break
	}
	return out
}

// SVG renders the path as an SVG path "d" attribute with two-decimal coordinates.
func (p Path) SVG() string {
	var b strings.Builder
	b.WriteString("M")
	writeCoord(&b, p.Start)
	for _, seg := range p.Segments {
		b.WriteString(" ")
		b.WriteString(string(seg.Op))
		if seg.Op == CubicTo {
			writeCoord(&b, seg.C1)
			b.WriteString(" ")
			writeCoord(&b, seg.C2)
			b.WriteString(" ")
		}
		writeCoord(&b, seg.End)
	}
	return b.String()
}

func writeCoord(b *strings.Builder, p Point) {
	b.WriteString(formatCoord(p.X))
	b.WriteString(",")
	b.WriteString(formatCoord(p.Y))
}

func formatCoord(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func cubicAt(p0, c1, c2, p1 Point, t float64) Point {
	u := 1 - t
	a, b, c, d := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Point{
		X: a*p0.X + b*c1.X + c*c2.X + d*p1.X,
		Y: a*p0.Y + b*c1.Y + c*c2.Y + d*p1.Y,
	}
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func segmentLength(from Point, seg Segment) float64 {
	if seg.Op != CubicTo {
		return distance(from, seg.End)
	}
	total := 0.0
	prev := from
	for i := 1; i <= cubicSteps; i++ {
		cur := cubicAt(from, seg.C1, seg.C2, seg.End, float64(i)/cubicSteps)
		total += distance(prev, cur)
		prev = cur
	}
	return total
}

// splitSegment keeps the leading share of a segment, measured by length.
func splitSegment(from Point, seg Segment, share float64) Segment {
	if seg.Op != CubicTo {
		return Segment{Op: seg.Op, End: lerp(from, seg.End, share)}
	}
	t := cubicParamAt(from, seg, share)
	// de Casteljau: the first half of the split is (p0, q0, r0, s).
	q0 := lerp(from, seg.C1, t)
	q1 := lerp(seg.C1, seg.C2, t)
	q2 := lerp(seg.C2, seg.End, t)
	r0 := lerp(q0, q1, t)
	r1 := lerp(q1, q2, t)
	return Segment{Op: CubicTo, C1: q0, C2: r0, End: lerp(r0, r1, t)}
}

// cubicParamAt finds the curve parameter where the given share of the chord length is reached.
func cubicParamAt(from Point, seg Segment, share float64) float64 {
	target := share * segmentLength(from, seg)
	walked := 0.0
	prev := from
	for i := 1; i <= cubicSteps; i++ {
		cur := cubicAt(from, seg.C1, seg.C2, seg.End, float64(i)/cubicSteps)
		step := distance(prev, cur)
		if walked+step >= target {
			if step == 0 {
				return float64(i) / cubicSteps
			}
			return (float64(i-1) + (target-walked)/step) / cubicSteps
		}
		walked += step
		prev = cur
	}
	return 1
}

func lerp(a, b Point, t float64) Point {
	return Point{X: a.X + t*(b.X-a.X), Y: a.Y + t*(b.Y-a.Y)}
}
