package curve

import (
	"math"

	"github.com/huangsam/chartkit/schema"
)

// tangent holds the slope at the start and end of one segment.
type tangent struct {
	start, end float64
}

// hermite converts per-segment cubic Hermite tangents into Bezier segments.
// Control points sit at one and two thirds of each segment's x extent, which keeps
// x(t) linear in t.
func hermite(pts []schema.Point, tangents []tangent) []schema.Segment {
	segs := make([]schema.Segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		p0, p1 := pts[i], pts[i+1]
		third := (p1.X - p0.X) / 3
		segs = append(segs, schema.Segment{
			Op:  schema.CubicTo,
			C1:  schema.Point{X: p0.X + third, Y: p0.Y + tangents[i].start*third},
			C2:  schema.Point{X: p1.X - third, Y: p1.Y - tangents[i].end*third},
			End: p1,
		})
	}
	return segs
}

func secants(pts []schema.Point) []float64 {
	d := make([]float64, len(pts)-1)
	for i := range d {
		d[i] = (pts[i+1].Y - pts[i].Y) / (pts[i+1].X - pts[i].X)
	}
	return d
}

// monotoneTangents applies Fritsch-Carlson limiting so each segment stays within the
// y values of its two end samples.
func monotoneTangents(pts []schema.Point) []tangent {
	n := len(pts)
	d := secants(pts)
	m := make([]float64, n)
	m[0] = d[0]
	m[n-1] = d[n-2]
	for k := 1; k < n-1; k++ {
		if d[k-1]*d[k] <= 0 {
			m[k] = 0
		} else {
			m[k] = (d[k-1] + d[k]) / 2
		}
	}

	for k := 0; k < n-1; k++ {
		if d[k] == 0 {
			m[k], m[k+1] = 0, 0
			continue
		}
		a, b := m[k]/d[k], m[k+1]/d[k]
		if s := a*a + b*b; s > 9 {
			tau := 3 / math.Sqrt(s)
			m[k] = tau * a * d[k]
			m[k+1] = tau * b * d[k]
		}
	}

	out := make([]tangent, n-1)
	for k := range out {
		out[k] = tangent{start: m[k], end: m[k+1]}
	}
	return out
}

// naturalTangents solves the natural cubic spline (zero second derivative at both ends)
// with the Thomas algorithm and returns the slope at each segment end.
func naturalTangents(pts []schema.Point) []tangent {
	n := len(pts)
	h := make([]float64, n-1)
	for i := range h {
		h[i] = pts[i+1].X - pts[i].X
	}
	d := secants(pts)

	// Second derivatives; M[0] = M[n-1] = 0.
	M := make([]float64, n)
	if n > 2 {
		size := n - 2
		diag := make([]float64, size)
		rhs := make([]float64, size)
		for i := 0; i < size; i++ {
			diag[i] = 2 * (h[i] + h[i+1])
			rhs[i] = 6 * (d[i+1] - d[i])
		}
		// Forward sweep; sub- and super-diagonals are h[i] and h[i+1].
		for i := 1; i < size; i++ {
			w := h[i] / diag[i-1]
			diag[i] -= w * h[i]
			rhs[i] -= w * rhs[i-1]
		}
		M[size] = rhs[size-1] / diag[size-1]
		for i := size - 2; i >= 0; i-- {
			M[i+1] = (rhs[i] - h[i+1]*M[i+2]) / diag[i]
		}
	}

	out := make([]tangent, n-1)
	for i := range out {
		out[i] = tangent{
			start: d[i] - h[i]*(2*M[i]+M[i+1])/6,
			end:   d[i] + h[i]*(M[i]+2*M[i+1])/6,
		}
	}
	return out
}
