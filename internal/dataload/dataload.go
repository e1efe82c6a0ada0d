// Package dataload reads telemetry series and categorical samples from files.
package dataload

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"
)

// Dataset is everything loaded from a series file.
type Dataset struct {
	Series []schema.Series `json:"series"`
	Stats  []schema.Stat   `json:"stats,omitempty"`
}

// PointCount returns the total number of points across all series.
func (d *Dataset) PointCount() int {
	total := 0
	for _, s := range d.Series {
		total += len(s.Points)
	}
	return total
}

// FormatFromPath infers the input format from a file extension.
func FormatFromPath(path string) (schema.InputFormat, error) {
	format := schema.InputFormat(strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."))
	if _, ok := schema.ValidInputFormats[format]; !ok {
		return "", fmt.Errorf("cannot infer input format from %q. must end in .json, .csv, .parquet or .xlsx", path)
	}
	return format, nil
}

// LoadSeries reads series from path in the given format. Points of each
// series are sorted ascending by X.
func LoadSeries(path string, format schema.InputFormat) (*Dataset, error) {
	if path == "" {
		return nil, fmt.Errorf("an input file is required (use --input)")
	}

	var ds *Dataset
	var err error
	switch format {
	case schema.JSONInput:
		ds, err = withFile(path, ReadSeriesJSON)
	case schema.CSVInput:
		ds, err = withFile(path, ReadSeriesCSV)
	case schema.XLSXInput:
		ds, err = readSeriesXLSX(path)
	case schema.ParquetInput:
		var rows []parquet.SeriesPoint
		rows, err = parquet.ReadFile[parquet.SeriesPoint](path)
		ds = &Dataset{Series: parquet.ToSeries(rows)}
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load series from %s: %w", path, err)
	}

	SortSeries(ds.Series)
	return ds, nil
}

// LoadSamples reads categorical samples from path, inferring the format from
// the extension. Samples are sorted ascending by X.
func LoadSamples(path string) ([]schema.CategorySample, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	var samples []schema.CategorySample
	switch format {
	case schema.JSONInput:
		samples, err = withFile(path, ReadSamplesJSON)
	case schema.CSVInput:
		samples, err = withFile(path, ReadSamplesCSV)
	case schema.XLSXInput:
		samples, err = readSamplesXLSX(path)
	case schema.ParquetInput:
		var rows []parquet.CategorySample
		rows, err = parquet.ReadFile[parquet.CategorySample](path)
		samples = parquet.ToSamples(rows)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load samples from %s: %w", path, err)
	}

	SortSamples(samples)
	return samples, nil
}

// SortSeries orders the points of every series ascending by X, keeping the
// input order of points that share an X.
func SortSeries(series []schema.Series) {
	for i := range series {
		slices.SortStableFunc(series[i].Points, func(a, b schema.DataPoint) int {
			return cmp.Compare(a.X, b.X)
		})
	}
}

// SortSamples orders samples ascending by X, keeping the input order of ties.
func SortSamples(samples []schema.CategorySample) {
	slices.SortStableFunc(samples, func(a, b schema.CategorySample) int {
		return cmp.Compare(a.X, b.X)
	})
}
