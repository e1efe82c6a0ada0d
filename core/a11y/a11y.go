// Package a11y composes deterministic text descriptions of chart state for screen readers.
// Every function is pure: the same inputs always produce the same bytes.
package a11y

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/huangsam/chartkit/schema"
)

// Describer formats descriptions. TemporalX renders x values as UTC timestamps.
type Describer struct {
	TemporalX bool
}

// ComposeSummary describes series with plain numeric x values.
func ComposeSummary(series []schema.Series, stats []schema.Stat) string {
	return Describer{}.Summary(series, stats)
}

// DescribeFocus describes the focused point with plain numeric x values.
func DescribeFocus(series []schema.Series, focus schema.FocusState) string {
	return Describer{}.Focus(series, focus)
}

// DescribeBands describes bands with plain numeric x values.
func DescribeBands(bands []schema.Band) string {
	return Describer{}.Bands(bands)
}

// DescribeBrush describes a brush selection with plain numeric x values.
func DescribeBrush(sel schema.BrushSelection, ok bool) string {
	return Describer{}.Brush(sel, ok)
}

// Summary gives the series and point counts, one sentence per series with its x and
// y range, and one sentence per stat in the order supplied.
func (d Describer) Summary(series []schema.Series, stats []schema.Stat) string {
	total := 0
	for _, s := range series {
		total += len(s.Points)
	}

	var b strings.Builder
	if len(series) == 0 {
		b.WriteString("Chart with no data.")
	} else {
		fmt.Fprintf(&b, "Chart with %s and %s.", plural(len(series), "series", "series"), plural(total, "point", "points"))
	}

	for _, s := range series {
		b.WriteString(" ")
		minX, maxX, minY, maxY, ok := bounds(s.Points)
		if !ok {
			fmt.Fprintf(&b, "%s: no points.", s.Label())
			continue
		}
		fmt.Fprintf(&b, "%s: %s, x from %s to %s, y from %s to %s.",
			s.Label(), plural(len(s.Points), "point", "points"),
			d.x(minX), d.x(maxX), number(minY), number(maxY))
	}

	for _, st := range stats {
		b.WriteString(" ")
		b.WriteString(stat(st))
	}
	return b.String()
}

// Focus describes the focused point, or says that nothing is focused.
func (d Describer) Focus(series []schema.Series, focus schema.FocusState) string {
	if focus.IsNone() || focus.SeriesIndex >= len(series) {
		return "No point focused."
	}
	s := series[focus.SeriesIndex]
	if focus.PointIndex >= len(s.Points) {
		return "No point focused."
	}
	p := s.Points[focus.PointIndex]
	return fmt.Sprintf("%s, point %d of %d: x %s, y %s.",
		s.Label(), focus.PointIndex+1, len(s.Points), d.x(p.X), number(p.Y))
}

// Bands lists each band in order.
func (d Describer) Bands(bands []schema.Band) string {
	if len(bands) == 0 {
		return "No bands."
	}
	parts := make([]string, len(bands))
	for i, band := range bands {
		if band.StartX == band.EndX {
			parts[i] = fmt.Sprintf("%s at %s", band.Category, d.x(band.StartX))
			continue
		}
		parts[i] = fmt.Sprintf("%s from %s to %s", band.Category, d.x(band.StartX), d.x(band.EndX))
	}
	return fmt.Sprintf("%s: %s.", capitalize(plural(len(bands), "band", "bands")), strings.Join(parts, ", "))
}

// Brush describes a resolved brush selection. ok false means nothing is selected.
func (d Describer) Brush(sel schema.BrushSelection, ok bool) string {
	if !ok {
		return "No range selected."
	}
	return fmt.Sprintf("Selected x from %s to %s.", d.x(sel.DomainRange[0]), d.x(sel.DomainRange[1]))
}

func (d Describer) x(v float64) string {
	if d.TemporalX {
		return schema.FromEpochMillis(v).Format(time.RFC3339)
	}
	return number(v)
}

func bounds(points []schema.DataPoint) (minX, maxX, minY, maxY float64, ok bool) {
	for _, p := range points {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		if !ok {
			minX, maxX, minY, maxY, ok = p.X, p.X, p.Y, p.Y, true
			continue
		}
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return minX, maxX, minY, maxY, ok
}

func stat(st schema.Stat) string {
	value := number(st.Value)
	if st.Unit != "" {
		value += " " + st.Unit
	}
	return fmt.Sprintf("%s: %s.", capitalize(st.Name), value)
}

// number prints at most two decimals. Magnitudes from 1e15 up use exponent notation.
func number(v float64) string {
	if !finite(v) {
		return "not available"
	}
	if math.Abs(v) >= 1e15 {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
