package dataload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/huangsam/chartkit/schema"
)

type jsonPoint struct {
	X axisValue `json:"x"`
	Y float64   `json:"y"`
}

type jsonSeries struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Color  string      `json:"color"`
	Style  string      `json:"style"`
	Points []jsonPoint `json:"points"`
}

type jsonSample struct {
	X        axisValue `json:"x"`
	Category string    `json:"category"`
}

// ReadSeriesJSON decodes either a bare array of series or an object with
// "series" and optional "stats" keys. X values may be numbers or RFC3339 timestamps.
func ReadSeriesJSON(r io.Reader) (*Dataset, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw []jsonSeries
	var stats []schema.Stat
	if isJSONArray(data) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("invalid series JSON: %w", err)
		}
	} else {
		var doc struct {
			Series []jsonSeries  `json:"series"`
			Stats  []schema.Stat `json:"stats"`
		}
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("invalid series JSON: %w", err)
		}
		raw, stats = doc.Series, doc.Stats
	}

	ds := &Dataset{Series: make([]schema.Series, 0, len(raw)), Stats: stats}
	for i, rs := range raw {
		s := schema.Series{ID: rs.ID, Name: rs.Name, Color: rs.Color, Style: rs.Style}
		if s.ID == "" {
			s.ID = fmt.Sprintf("series-%d", i+1)
		}
		s.Points = make([]schema.DataPoint, len(rs.Points))
		for j, p := range rs.Points {
			s.Points[j] = schema.DataPoint{X: float64(p.X), Y: p.Y}
		}
		ds.Series = append(ds.Series, s)
	}
	return ds, nil
}

// ReadSamplesJSON decodes either a bare array of samples or an object with a "samples" key.
func ReadSamplesJSON(r io.Reader) ([]schema.CategorySample, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var raw []jsonSample
	if isJSONArray(data) {
		err = json.Unmarshal(data, &raw)
	} else {
		var doc struct {
			Samples []jsonSample `json:"samples"`
		}
		err = json.Unmarshal(data, &doc)
		raw = doc.Samples
	}
	if err != nil {
		return nil, fmt.Errorf("invalid samples JSON: %w", err)
	}

	samples := make([]schema.CategorySample, len(raw))
	for i, s := range raw {
		samples[i] = schema.CategorySample{X: float64(s.X), Category: s.Category}
	}
	return samples, nil
}

// axisValue is an X coordinate given as a number, a numeric string or an RFC3339 timestamp.
type axisValue float64

func (v *axisValue) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		*v = axisValue(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("x must be a number or timestamp string, got %s", b)
	}
	parsed, err := ParseAxisValue(s)
	if err != nil {
		return err
	}
	*v = axisValue(parsed)
	return nil
}

func isJSONArray(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// withFile opens path and hands it to read.
func withFile[T any](path string, read func(io.Reader) (T, error)) (T, error) {
	f, err := os.Open(path)
	if err != nil {
		var zero T
		return zero, err
	}
	defer func() { _ = f.Close() }()
	return read(f)
}
