package schema

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesAccessors(t *testing.T) {
	s := Series{ID: "cpu", Points: []DataPoint{{X: 1, Y: 10}, {X: 2, Y: 20}}}
	assert.Equal(t, "cpu", s.Label())
	assert.Equal(t, []float64{1, 2}, s.Xs())
	assert.Equal(t, []float64{10, 20}, s.Ys())

	s.Name = "CPU load"
	assert.Equal(t, "CPU load", s.Label())
}

func TestDimensions(t *testing.T) {
	d := Dimensions{Width: 400, Height: 200, Margin: Margins{Top: 10, Right: 20, Bottom: 30, Left: 40}}
	assert.Equal(t, 340.0, d.InnerWidth())
	assert.Equal(t, 160.0, d.InnerHeight())

	lo, hi := d.XRange()
	assert.Equal(t, [2]float64{40, 380}, [2]float64{lo, hi})
	lo, hi = d.YRange()
	assert.Equal(t, [2]float64{10, 170}, [2]float64{lo, hi})
}

func TestFocusStateIsNone(t *testing.T) {
	assert.True(t, NoFocus.IsNone())
	assert.True(t, FocusState{SeriesIndex: 0, PointIndex: -1}.IsNone())
	assert.False(t, FocusState{}.IsNone())
}

func TestPointIsFinite(t *testing.T) {
	assert.True(t, Point{X: 1, Y: 2}.IsFinite())
	assert.False(t, Point{X: math.NaN(), Y: 2}.IsFinite())
	assert.False(t, Point{X: 1, Y: math.Inf(-1)}.IsFinite())
}

func TestEpochMillis(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	ms := EpochMillis(ts)
	assert.Equal(t, float64(ts.UnixMilli()), ms)
	assert.True(t, FromEpochMillis(ms).Equal(ts))
	assert.Equal(t, time.UTC, FromEpochMillis(ms+0.4).Location())
}

func TestErrors(t *testing.T) {
	var err error = &EmptyDomainError{Axis: "y"}
	var empty *EmptyDomainError
	require.True(t, errors.As(err, &empty))
	assert.Equal(t, "empty domain on y axis: no finite values to scale", err.Error())
	assert.Equal(t, "empty domain: no finite values to scale", (&EmptyDomainError{}).Error())
	assert.Equal(t, "empty domain on x axis: value span overflows float64", (&EmptyDomainError{Axis: "x", Overflow: true}).Error())

	assert.Equal(t, "invalid pixel range [10, 10]: width must be positive", (&InvalidRangeError{Min: 10, Max: 10}).Error())
	assert.Equal(t, "cannot NextPoint: no series with points to focus", (&OutOfBoundsFocusError{Action: "NextPoint"}).Error())
}

func TestLinePath(t *testing.T) {
	p := Path{Kind: LinearCurve, Start: Point{X: 0, Y: 0}, Segments: []Segment{{Op: LineTo, End: Point{X: 3, Y: 4}}}}

	assert.Equal(t, Point{X: 3, Y: 4}, p.End())
	assert.InDelta(t, 5, p.Length(), 1e-12)
	assert.Equal(t, "M0,0 L3,4", p.SVG())

	tests := []struct {
		name string
		x    float64
		y    float64
		ok   bool
	}{
		{"start", 0, 0, true},
		{"middle", 1.5, 2, true},
		{"end", 3, 4, true},
		{"past end", 4, 0, false},
		{"before start", -1, 0, false},
		{"nan", math.NaN(), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			y, ok := p.At(tt.x)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.InDelta(t, tt.y, y, 1e-12)
			}
		})
	}

	half := p.Reveal(0.5)
	require.Len(t, half.Segments, 1)
	assert.InDelta(t, 1.5, half.End().X, 1e-12)
	assert.InDelta(t, 2, half.End().Y, 1e-12)
	assert.Empty(t, p.Reveal(0).Segments)
	assert.Empty(t, p.Reveal(math.NaN()).Segments)
	assert.Equal(t, p, p.Reveal(2))
}

func TestCubicPath(t *testing.T) {
	p := Path{
		Kind:  MonotoneCurve,
		Start: Point{X: 0, Y: 0},
		Segments: []Segment{
			{Op: CubicTo, C1: Point{X: 1, Y: 0}, C2: Point{X: 2, Y: 0}, End: Point{X: 3, Y: 0}},
		},
	}

	assert.InDelta(t, 3, p.Length(), 1e-9)
	assert.Equal(t, "M0,0 C1,0 2,0 3,0", p.SVG())

	third := p.Reveal(1.0 / 3)
	require.Len(t, third.Segments, 1)
	assert.Equal(t, CubicTo, third.Segments[0].Op)
	assert.InDelta(t, 1, third.End().X, 1e-9)
	assert.InDelta(t, 1, third.Length(), 1e-9)
}

func TestPathEmptyAndCoordFormatting(t *testing.T) {
	p := Path{Start: Point{X: 1.234, Y: -0.001}, Degenerate: true}
	assert.Equal(t, p.Start, p.End())
	assert.Zero(t, p.Length())
	assert.Equal(t, "M1.23,0", p.SVG())

	y, ok := p.At(1.234)
	assert.True(t, ok)
	assert.InDelta(t, -0.001, y, 1e-12)
}
