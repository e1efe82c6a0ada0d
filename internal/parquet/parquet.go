// Package parquet provides row types and functions for moving chartkit data
// in and out of Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/chartkit/schema"
	"github.com/parquet-go/parquet-go"
)

// SeriesPoint is one sample of one series, in long format.
// It is both the Parquet input layout for series and the output layout of projected points.
type SeriesPoint struct {
	SeriesID string  `parquet:"series_id,snappy,dict"`
	Name     string  `parquet:"name,snappy,dict"`
	Index    int32   `parquet:"point_index,snappy"`
	X        float64 `parquet:"x,snappy"`
	Y        float64 `parquet:"y,snappy"`

	// PixelX and PixelY are the projected position (zero on input)
	PixelX float64 `parquet:"pixel_x,snappy"`
	PixelY float64 `parquet:"pixel_y,snappy"`
}

// CategorySample is one categorical observation.
type CategorySample struct {
	X        float64 `parquet:"x,snappy"`
	Category string  `parquet:"category,snappy,dict"`
}

// Band is one compressed category run.
type Band struct {
	Category string  `parquet:"category,snappy,dict"`
	StartX   float64 `parquet:"start_x,snappy"`
	EndX     float64 `parquet:"end_x,snappy"`
}

// RenderRun represents a single chartkit command run with metadata.
// This struct maps to the chartkit_render_runs database table.
type RenderRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// Command is the CLI command that produced the run
	Command string `parquet:"command,snappy,dict"`

	// StartTime is when the run began (stored as TIMESTAMP with nanosecond precision)
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	SeriesCount int32 `parquet:"series_count,snappy"`
	PointCount  int32 `parquet:"point_count,snappy"`
	CacheHit    bool  `parquet:"cache_hit"`

	// ConfigParams contains the JSON-encoded configuration parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// SeriesSummary is the recorded extent of one series in a run.
// This struct maps to the chartkit_series_summaries database table.
type SeriesSummary struct {
	RunID      int64   `parquet:"run_id,snappy"`
	SeriesID   string  `parquet:"series_id,snappy,dict"`
	PointCount int32   `parquet:"point_count,snappy"`
	MinX       float64 `parquet:"min_x,snappy"`
	MaxX       float64 `parquet:"max_x,snappy"`
	MinY       float64 `parquet:"min_y,snappy"`
	MaxY       float64 `parquet:"max_y,snappy"`
}

// WriteRows writes rows to w using the schema inferred from T's struct tags.
func WriteRows[T any](w io.Writer, rows []T) error {
	writer := parquet.NewGenericWriter[T](w)
	if _, err := writer.Write(rows); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteFile writes rows to a new Parquet file at outputPath.
func WriteFile[T any](rows []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	return WriteRows(file, rows)
}

// ReadFile reads every row of the Parquet file at path into T.
func ReadFile[T any](path string) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet file %s: %w", path, err)
	}
	return rows[:n], nil
}

// ConvertRenderRunRecords converts schema.RenderRunRecord to RenderRun for Parquet export.
func ConvertRenderRunRecords(records []schema.RenderRunRecord) []RenderRun {
	result := make([]RenderRun, len(records))
	for i, record := range records {
		result[i] = RenderRun{
			RunID:         record.RunID,
			Command:       record.Command,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			SeriesCount:   int32(record.SeriesCount),
			PointCount:    int32(record.PointCount),
			CacheHit:      record.CacheHit,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertSeriesSummaryRecords converts schema.SeriesSummaryRecord to SeriesSummary for Parquet export.
func ConvertSeriesSummaryRecords(records []schema.SeriesSummaryRecord) []SeriesSummary {
	result := make([]SeriesSummary, len(records))
	for i, record := range records {
		result[i] = SeriesSummary{
			RunID:      record.RunID,
			SeriesID:   record.SeriesID,
			PointCount: int32(record.PointCount),
			MinX:       record.MinX,
			MaxX:       record.MaxX,
			MinY:       record.MinY,
			MaxY:       record.MaxY,
		}
	}
	return result
}

// ConvertSeriesGeometry flattens projected series into long-format rows carrying
// both the data value and the pixel position of every point.
func ConvertSeriesGeometry(series []schema.SeriesGeometry) []SeriesPoint {
	var result []SeriesPoint
	for _, sg := range series {
		for i, p := range sg.Points {
			row := SeriesPoint{SeriesID: sg.SeriesID, Name: sg.Name, Index: int32(i), PixelX: p.X, PixelY: p.Y}
			if i < len(sg.Values) {
				row.X, row.Y = sg.Values[i].X, sg.Values[i].Y
			}
			result = append(result, row)
		}
	}
	return result
}

// ConvertBands converts kernel bands to Parquet rows.
func ConvertBands(bands []schema.Band) []Band {
	result := make([]Band, len(bands))
	for i, b := range bands {
		result[i] = Band{Category: b.Category, StartX: b.StartX, EndX: b.EndX}
	}
	return result
}

// ToSeries groups long-format rows into series, keeping first-seen series order.
// Points keep row order; callers sort them by X.
func ToSeries(rows []SeriesPoint) []schema.Series {
	var out []schema.Series
	index := make(map[string]int)
	for _, row := range rows {
		i, ok := index[row.SeriesID]
		if !ok {
			i = len(out)
			index[row.SeriesID] = i
			out = append(out, schema.Series{ID: row.SeriesID, Name: row.Name})
		}
		out[i].Points = append(out[i].Points, schema.DataPoint{X: row.X, Y: row.Y})
	}
	return out
}

// ToSamples converts Parquet rows into category samples.
func ToSamples(rows []CategorySample) []schema.CategorySample {
	out := make([]schema.CategorySample, len(rows))
	for i, row := range rows {
		out[i] = schema.CategorySample{X: row.X, Category: row.Category}
	}
	return out
}
