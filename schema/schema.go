// Package schema has models, enums and typed errors shared by all parts of chartkit.
package schema

import (
	"math"
	"time"
)

// DataPoint is a single sample of a series. Temporal series carry epoch milliseconds in X.
type DataPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Series is an ordered sequence of points. Points must be sorted ascending by X;
// callers sort before handing a series to the kernel.
type Series struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Points []DataPoint `json:"points"`
	Color  string      `json:"color,omitempty"`
	Style  string      `json:"style,omitempty"`
}

// Label returns the display name of the series, falling back to its ID.
func (s Series) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// Xs returns the X values of the series in order.
func (s Series) Xs() []float64 {
	xs := make([]float64, len(s.Points))
	for i, p := range s.Points {
		xs[i] = p.X
	}
	return xs
}

// Ys returns the Y values of the series in order.
func (s Series) Ys() []float64 {
	ys := make([]float64, len(s.Points))
	for i, p := range s.Points {
		ys[i] = p.Y
	}
	return ys
}

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// CategorySample is one observation of a categorical state at position X.
type CategorySample struct {
	X        float64 `json:"x"`
	Category string  `json:"category"`
}

// Band is a contiguous run of identical category. Both ends are inclusive:
// EndX is the X of the last sample in the run, so adjacent bands may leave a gap.
type Band struct {
	Category string  `json:"category"`
	StartX   float64 `json:"start_x"`
	EndX     float64 `json:"end_x"`
}

// FocusState identifies the focused point as (series, point). NoFocus means nothing is focused.
type FocusState struct {
	SeriesIndex int `json:"series_index"`
	PointIndex  int `json:"point_index"`
}

// NoFocus is the "none" focus state.
var NoFocus = FocusState{SeriesIndex: -1, PointIndex: -1}

// IsNone reports whether nothing is focused.
func (f FocusState) IsNone() bool {
	return f.SeriesIndex < 0 || f.PointIndex < 0
}

// BrushSelection is a resolved brush: the pixel extent and the domain range it covers.
type BrushSelection struct {
	PixelRange  [2]float64 `json:"pixel_range"`
	DomainRange [2]float64 `json:"domain_range"`
}

// Margins are the insets between the container edge and the plot area.
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Dimensions describe the pixel box a chart is laid out in.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Margin Margins `json:"margin"`
}

// InnerWidth is the plot width after margins.
func (d Dimensions) InnerWidth() float64 {
	return d.Width - d.Margin.Left - d.Margin.Right
}

// InnerHeight is the plot height after margins.
func (d Dimensions) InnerHeight() float64 {
	return d.Height - d.Margin.Top - d.Margin.Bottom
}

// XRange returns the horizontal pixel range of the plot area.
func (d Dimensions) XRange() (float64, float64) {
	return d.Margin.Left, d.Width - d.Margin.Right
}

// YRange returns the vertical pixel range of the plot area.
func (d Dimensions) YRange() (float64, float64) {
	return d.Margin.Top, d.Height - d.Margin.Bottom
}

// Stat is a named derived statistic (e.g. an error metric) supplied alongside series.
type Stat struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

// EpochMillis converts a timestamp into the linear time axis used by temporal series.
func EpochMillis(t time.Time) float64 {
	return float64(t.UnixMilli())
}

// FromEpochMillis converts a temporal axis value back into a UTC timestamp.
func FromEpochMillis(ms float64) time.Time {
	return time.UnixMilli(int64(math.Round(ms))).UTC()
}
