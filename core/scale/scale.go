// Package scale maps numeric or temporal domains onto pixel ranges and back.
//
// A Scale is a plain value: it is never mutated once built. Resizing a chart means
// building a new Scale (or calling WithRange), not patching an old one.
package scale

import (
	"math"
	"time"

	"github.com/huangsam/chartkit/schema"
)

// DefaultTickCount is the tick count used for nice rounding when Options.TickCount is zero.
const DefaultTickCount = 5

// maxTickFactor bounds Ticks to this many times the requested tick count.
const maxTickFactor = 10

// DefaultPadding is the fraction of the span added on each side of a value axis.
const DefaultPadding = 0.1

// Options control how a domain is fitted from raw values.
type Options struct {
	Nice      bool    // round bounds outward to a {1,2,5}x10^k step
	Padding   float64 // fraction of the span added on both sides; 0 keeps the exact span
	TickCount int     // target tick count for nice rounding and Ticks
	Flip      bool    // map the domain minimum onto the range maximum (screen y axes)
}

// ValueAxis returns the options for a value (y) axis: padded, nice and flipped.
func ValueAxis(tickCount int) Options {
	return Options{Nice: true, Padding: DefaultPadding, TickCount: tickCount, Flip: true}
}

// PositionAxis returns the options for a position or index (x) axis: the exact span.
func PositionAxis(tickCount int) Options {
	return Options{TickCount: tickCount}
}

// Scale is an invertible affine mapping between a domain and a pixel range.
type Scale struct {
	Domain    [2]float64       `json:"domain"`
	Range     [2]float64       `json:"range"`
	Kind      schema.ScaleKind `json:"kind"`
	Flip      bool             `json:"flip,omitempty"`
	TickCount int              `json:"tick_count"`
}

// New builds a scale from explicit bounds. The domain must be non-degenerate.
func New(domain, rng [2]float64, kind schema.ScaleKind, flip bool) (Scale, error) {
	if err := validateRange(rng[0], rng[1]); err != nil {
		return Scale{}, err
	}
	if !(domain[1] > domain[0]) || !isFinite(domain[0]) || !isFinite(domain[1]) {
		return Scale{}, &schema.EmptyDomainError{}
	}
	return Scale{Domain: domain, Range: rng, Kind: kind, Flip: flip, TickCount: DefaultTickCount}, nil
}

// ComputeLinear fits a linear scale to values and maps it onto [rangeMin, rangeMax].
// Non-finite values are ignored. With no finite values it returns *schema.EmptyDomainError;
// with rangeMax <= rangeMin it returns *schema.InvalidRangeError. Values whose span
// overflows float64 fail with an EmptyDomainError marked Overflow.
func ComputeLinear(values []float64, rangeMin, rangeMax float64, opts Options) (Scale, error) {
	return compute(values, rangeMin, rangeMax, opts, schema.LinearScale)
}

// ComputeTemporal is ComputeLinear over timestamps expressed as epoch milliseconds.
// No calendar-aware nonlinearity is introduced.
func ComputeTemporal(times []time.Time, rangeMin, rangeMax float64, opts Options) (Scale, error) {
	values := make([]float64, len(times))
	for i, t := range times {
		values[i] = schema.EpochMillis(t)
	}
	return compute(values, rangeMin, rangeMax, opts, schema.TemporalScale)
}

// ComputeTemporalMillis is ComputeTemporal for values already on the epoch-ms axis.
func ComputeTemporalMillis(values []float64, rangeMin, rangeMax float64, opts Options) (Scale, error) {
	return compute(values, rangeMin, rangeMax, opts, schema.TemporalScale)
}

func compute(values []float64, rangeMin, rangeMax float64, opts Options, kind schema.ScaleKind) (Scale, error) {
	if err := validateRange(rangeMin, rangeMax); err != nil {
		return Scale{}, err
	}
	lo, hi, ok := extent(values)
	if !ok {
		return Scale{}, &schema.EmptyDomainError{}
	}

	if lo == hi {
		eps := math.Max(math.Abs(lo)*0.01, 1e-6)
		lo, hi = lo-eps, hi+eps
	}

	if opts.Padding > 0 {
		pad := (hi - lo) * opts.Padding
		lo, hi = lo-pad, hi+pad
	}

	ticks := opts.TickCount
	if ticks <= 0 {
		ticks = DefaultTickCount
	}

	if opts.Nice {
		step := NiceStep((hi - lo) / float64(ticks))
		lo = math.Floor(lo/step) * step
		hi = math.Ceil(hi/step) * step
	}

	if !isFinite(lo) || !isFinite(hi) || !isFinite(hi-lo) || !(hi > lo) {
		return Scale{}, &schema.EmptyDomainError{Overflow: true}
	}

	return Scale{
		Domain:    [2]float64{lo, hi},
		Range:     [2]float64{rangeMin, rangeMax},
		Kind:      kind,
		Flip:      opts.Flip,
		TickCount: ticks,
	}, nil
}

// Forward maps a domain value to a pixel.
func (s Scale) Forward(v float64) float64 {
	t := (v - s.Domain[0]) / (s.Domain[1] - s.Domain[0])
	if s.Flip {
		t = 1 - t
	}
	return s.Range[0] + t*(s.Range[1]-s.Range[0])
}

// Invert maps a pixel back to a domain value. It is the exact affine inverse of Forward.
func (s Scale) Invert(px float64) float64 {
	t := (px - s.Range[0]) / (s.Range[1] - s.Range[0])
	if s.Flip {
		t = 1 - t
	}
	return s.Domain[0] + t*(s.Domain[1]-s.Domain[0])
}

// InvertTime maps a pixel back to a timestamp on a temporal scale.
func (s Scale) InvertTime(px float64) time.Time {
	return schema.FromEpochMillis(s.Invert(px))
}

// Clamp limits a pixel to the scale's range.
func (s Scale) Clamp(px float64) float64 {
	return math.Min(math.Max(px, s.Range[0]), s.Range[1])
}

// WithRange returns a copy of the scale projected onto new pixel bounds.
func (s Scale) WithRange(rangeMin, rangeMax float64) (Scale, error) {
	if err := validateRange(rangeMin, rangeMax); err != nil {
		return Scale{}, err
	}
	s.Range = [2]float64{rangeMin, rangeMax}
	return s, nil
}

// Span is the width of the domain.
func (s Scale) Span() float64 {
	return s.Domain[1] - s.Domain[0]
}

// Ticks returns the nice tick values that fall inside the domain, ascending.
func (s Scale) Ticks() []float64 {
	count := s.TickCount
	if count <= 0 {
		count = DefaultTickCount
	}
	span := s.Span()
	if !(span > 0) {
		return nil
	}
	step := NiceStep(span / float64(count))

	first := math.Ceil(s.Domain[0]/step - 1e-9)
	last := math.Floor(s.Domain[1]/step + 1e-9)
	n := last - first
	// Beyond 2^53 consecutive step multiples are no longer distinct floats
	if first+1 == first || !(n >= 0) || n > float64(maxTickFactor*count) {
		return nil
	}
	ticks := make([]float64, 0, int(n)+1)
	for k := 0; k <= int(n); k++ {
		ticks = append(ticks, roundTo((first+float64(k))*step, step))
	}
	return ticks
}

// Axis packages the scale and its ticks for a renderer.
func (s Scale) Axis() schema.AxisGeometry {
	ticks := s.Ticks()
	pixels := make([]float64, len(ticks))
	for i, t := range ticks {
		pixels[i] = s.Forward(t)
	}
	return schema.AxisGeometry{
		Kind:       s.Kind,
		Domain:     s.Domain,
		Range:      s.Range,
		Ticks:      ticks,
		TickPixels: pixels,
	}
}

// NiceStep picks the step from {1,2,5}x10^k closest to raw. Ties go to the smaller step.
func NiceStep(raw float64) float64 {
	if !(raw > 0) || math.IsInf(raw, 0) {
		return 1
	}
	base := math.Pow(10, math.Floor(math.Log10(raw)))
	best := base
	for _, m := range []float64{2, 5, 10} {
		if c := base * m; math.Abs(c-raw) < math.Abs(best-raw) {
			best = c
		}
	}
	return best
}

func validateRange(rangeMin, rangeMax float64) error {
	if !(rangeMax > rangeMin) || !isFinite(rangeMin) || !isFinite(rangeMax) {
		return &schema.InvalidRangeError{Min: rangeMin, Max: rangeMax}
	}
	return nil
}

func extent(values []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		ok = true
	}
	return lo, hi, ok
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// roundTo trims accumulated float error from a multiple of step (0.30000000000000004 -> 0.3).
func roundTo(v, step float64) float64 {
	digits := math.Max(0, -math.Floor(math.Log10(step))+1)
	p := math.Pow(10, digits)
	return math.Round(v*p) / p
}
