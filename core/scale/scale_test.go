package scale

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeLinearBounds(t *testing.T) {
	tests := []struct {
		name       string
		values     []float64
		opts       Options
		wantDomain [2]float64
	}{
		{
			name:       "exact span",
			values:     []float64{0, 25, 100},
			opts:       PositionAxis(5),
			wantDomain: [2]float64{0, 100},
		},
		{
			name:       "padding on both sides",
			values:     []float64{0, 100},
			opts:       Options{Padding: 0.1},
			wantDomain: [2]float64{-10, 110},
		},
		{
			name:       "nice rounding outward",
			values:     []float64{0.3, 9.7},
			opts:       Options{Nice: true, TickCount: 5},
			wantDomain: [2]float64{0, 10},
		},
		{
			name:       "degenerate domain expands symmetrically",
			values:     []float64{5, 5, 5},
			opts:       Options{},
			wantDomain: [2]float64{4.95, 5.05},
		},
		{
			name:       "degenerate zero",
			values:     []float64{0},
			opts:       Options{},
			wantDomain: [2]float64{-1e-6, 1e-6},
		},
		{
			name:       "non-finite values ignored",
			values:     []float64{math.NaN(), 2, math.Inf(1), 4},
			opts:       Options{},
			wantDomain: [2]float64{2, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ComputeLinear(tt.values, 0, 300, tt.opts)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantDomain[0], s.Domain[0], 1e-9)
			assert.InDelta(t, tt.wantDomain[1], s.Domain[1], 1e-9)
			assert.Equal(t, schema.LinearScale, s.Kind)
		})
	}
}

func TestComputeLinearExtremesLandOnRange(t *testing.T) {
	values := []float64{3, -7, 12.5, 0.25}
	s, err := ComputeLinear(values, 40, 640, PositionAxis(5))
	require.NoError(t, err)

	assert.InDelta(t, 40, s.Forward(-7), 1e-9)
	assert.InDelta(t, 640, s.Forward(12.5), 1e-9)
}

func TestComputeLinearEmpty(t *testing.T) {
	for name, values := range map[string][]float64{
		"nil":            nil,
		"empty":          {},
		"all non-finite": {math.NaN(), math.Inf(-1)},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ComputeLinear(values, 0, 100, Options{})
			require.Error(t, err)
			var empty *schema.EmptyDomainError
			assert.True(t, errors.As(err, &empty))
		})
	}
}

func TestComputeLinearOverflow(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		opts   Options
	}{
		{"padded span", []float64{-1e308, 1e308}, ValueAxis(5)},
		{"exact span", []float64{-math.MaxFloat64, math.MaxFloat64}, PositionAxis(5)},
		{"degenerate at max", []float64{math.MaxFloat64}, PositionAxis(5)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ComputeLinear(tt.values, 0, 100, tt.opts)
			require.Error(t, err, "domain %v", s.Domain)
			var empty *schema.EmptyDomainError
			require.True(t, errors.As(err, &empty))
			assert.True(t, empty.Overflow)
			assert.Contains(t, err.Error(), "overflows")
		})
	}
}

func TestComputeLinearInvalidRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max float64
	}{
		{"zero width", 10, 10},
		{"negative width", 300, 0},
		{"nan bound", math.NaN(), 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeLinear([]float64{1, 2}, tt.min, tt.max, Options{})
			var invalid *schema.InvalidRangeError
			require.True(t, errors.As(err, &invalid))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	s, err := ComputeLinear([]float64{-3.5, 18, 1e3}, 12, 812, ValueAxis(6))
	require.NoError(t, err)

	for _, v := range []float64{-3.5, 0, 1, 17.25, 500, 1e3} {
		assert.InDelta(t, v, s.Invert(s.Forward(v)), 1e-9)
	}
	for _, px := range []float64{12, 100, 400.5, 812} {
		assert.InDelta(t, px, s.Forward(s.Invert(px)), 1e-9)
	}
}

func TestFlip(t *testing.T) {
	s, err := ComputeLinear([]float64{0, 1}, 0, 200, Options{Flip: true})
	require.NoError(t, err)

	assert.InDelta(t, 200, s.Forward(0), 1e-9)
	assert.InDelta(t, 0, s.Forward(1), 1e-9)
	assert.InDelta(t, 0.25, s.Invert(150), 1e-9)
}

func TestNiceStep(t *testing.T) {
	tests := []struct {
		raw  float64
		want float64
	}{
		{1.88, 2},
		{0.013, 0.01},
		{3.6, 5},
		{7.6, 10},
		{1.5, 1}, // tie goes to the smaller step
		{420, 500},
		{0, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, NiceStep(tt.raw), 1e-12, "raw=%v", tt.raw)
	}
}

func TestTicks(t *testing.T) {
	s, err := New([2]float64{0, 10}, [2]float64{0, 100}, schema.LinearScale, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 2, 4, 6, 8, 10}, s.Ticks())

	s, err = New([2]float64{0.05, 0.95}, [2]float64{0, 100}, schema.LinearScale, false)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.2, 0.4, 0.6, 0.8}, s.Ticks())

	axis := s.Axis()
	require.Len(t, axis.TickPixels, 4)
	assert.InDelta(t, s.Forward(0.2), axis.TickPixels[0], 1e-9)
}

func TestTicksLargeMagnitude(t *testing.T) {
	s, err := ComputeLinear([]float64{1e18, 1e18 + 512}, 0, 100, ValueAxis(5))
	require.NoError(t, err)

	done := make(chan []float64, 1)
	go func() { done <- s.Ticks() }()
	select {
	case ticks := <-done:
		assert.LessOrEqual(t, len(ticks), maxTickFactor*s.TickCount)
	case <-time.After(3 * time.Second):
		t.Fatalf("Ticks did not return for domain %v", s.Domain)
	}

	axis := s.Axis()
	assert.Len(t, axis.TickPixels, len(axis.Ticks))

	// Below 2^53 step multiples are still exact
	s, err = ComputeLinear([]float64{1e15, 1e15 + 500}, 0, 100, PositionAxis(5))
	require.NoError(t, err)
	ticks := s.Ticks()
	require.Len(t, ticks, 6)
	assert.Equal(t, 1e15, ticks[0])
	assert.Equal(t, 1e15+500, ticks[5])
}

func TestWithRange(t *testing.T) {
	s, err := ComputeLinear([]float64{0, 100}, 0, 300, Options{})
	require.NoError(t, err)

	resized, err := s.WithRange(0, 600)
	require.NoError(t, err)
	assert.InDelta(t, 300, resized.Forward(50), 1e-9)
	assert.InDelta(t, 150, s.Forward(50), 1e-9, "original scale must be unchanged")

	_, err = s.WithRange(5, 5)
	assert.Error(t, err)
}

func TestComputeTemporal(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	times := []time.Time{start, start.Add(time.Hour), start.Add(2 * time.Hour)}

	s, err := ComputeTemporal(times, 0, 120, Options{})
	require.NoError(t, err)
	assert.Equal(t, schema.TemporalScale, s.Kind)
	assert.InDelta(t, 60, s.Forward(schema.EpochMillis(start.Add(time.Hour))), 1e-9)
	assert.True(t, s.InvertTime(30).Equal(start.Add(30*time.Minute)))

	_, err = ComputeTemporal(nil, 0, 120, Options{})
	var empty *schema.EmptyDomainError
	assert.True(t, errors.As(err, &empty))
}

func TestNewRejectsDegenerateDomain(t *testing.T) {
	_, err := New([2]float64{1, 1}, [2]float64{0, 10}, schema.LinearScale, false)
	var empty *schema.EmptyDomainError
	assert.True(t, errors.As(err, &empty))
}

// FuzzRoundTrip checks invert(forward(v)) ~= v for arbitrary domains and values.
func FuzzRoundTrip(f *testing.F) {
	f.Add(0.0, 100.0, 42.0, 0.0, 300.0)
	f.Add(-5.5, 5.5, 1.25, 10.0, 20.0)
	f.Add(1e6, 2e6, 1.5e6, 0.0, 1920.0)
	f.Fuzz(func(t *testing.T, a, b, v, r0, r1 float64) {
		for _, x := range []float64{a, b, v, r0, r1} {
			if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) > 1e12 {
				return
			}
		}
		if r1-r0 < 1 || math.Abs(b-a) < 1e-6 {
			return
		}
		s, err := ComputeLinear([]float64{a, b}, r0, r1, Options{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := s.Invert(s.Forward(v))
		tol := 1e-6 * math.Max(1, math.Max(math.Abs(v), math.Abs(s.Span())))
		if math.Abs(got-v) > tol {
			t.Fatalf("round trip %v -> %v (tol %v)", v, got, tol)
		}
	})
}
