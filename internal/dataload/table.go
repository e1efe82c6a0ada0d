package dataload

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/chartkit/schema"
)

// defaultSeriesID names rows that carry no series column.
const defaultSeriesID = "series"

// Recognized header names for tabular inputs (CSV and spreadsheets).
var (
	seriesColumns   = []string{"series_id", "series", "id"}
	nameColumns     = []string{"name", "label"}
	xColumns        = []string{"x", "time", "timestamp"}
	yColumns        = []string{"y", "value"}
	categoryColumns = []string{"category", "state"}
)

// ReadSeriesCSV reads long-format rows (series_id, name, x, y) with a header line.
func ReadSeriesCSV(r io.Reader) (*Dataset, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return seriesFromRows(rows)
}

// ReadSamplesCSV reads (x, category) rows with a header line.
func ReadSamplesCSV(r io.Reader) ([]schema.CategorySample, error) {
	rows, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	return samplesFromRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.Comment = '#'
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV: %w", err)
	}
	return rows, nil
}

// ParseAxisValue parses an X coordinate: a number, or an RFC3339 timestamp
// converted to epoch milliseconds.
func ParseAxisValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, fmt.Errorf("invalid x value %q: want a number or RFC3339 timestamp", s)
	}
	return schema.EpochMillis(t), nil
}

// header maps recognized column names to their index.
type header map[string]int

func parseHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := h[key]; !seen {
			h[key] = i
		}
	}
	return h
}

// find returns the index of the first present alias, or -1.
func (h header) find(aliases []string) int {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i
		}
	}
	return -1
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func seriesFromRows(rows [][]string) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}
	h := parseHeader(rows[0])
	idCol, nameCol := h.find(seriesColumns), h.find(nameColumns)
	xCol, yCol := h.find(xColumns), h.find(yColumns)
	if xCol < 0 || yCol < 0 {
		return nil, fmt.Errorf("header must name an x column (%s) and a y column (%s)",
			strings.Join(xColumns, "/"), strings.Join(yColumns, "/"))
	}

	ds := &Dataset{}
	index := make(map[string]int)
	for line, row := range rows[1:] {
		rawY := cell(row, yCol)
		if rawY == "" {
			continue // gap in the telemetry
		}
		x, err := ParseAxisValue(cell(row, xCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+2, err)
		}
		y, err := strconv.ParseFloat(rawY, 64)
		if err != nil || math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("row %d: invalid y value %q", line+2, rawY)
		}

		id := cell(row, idCol)
		if id == "" {
			id = defaultSeriesID
		}
		i, ok := index[id]
		if !ok {
			i = len(ds.Series)
			index[id] = i
			ds.Series = append(ds.Series, schema.Series{ID: id, Name: cell(row, nameCol)})
		}
		ds.Series[i].Points = append(ds.Series[i].Points, schema.DataPoint{X: x, Y: y})
	}
	return ds, nil
}

func samplesFromRows(rows [][]string) ([]schema.CategorySample, error) {
	if len(rows) == 0 {
		return nil, errors.New("no header row")
	}
	h := parseHeader(rows[0])
	xCol, catCol := h.find(xColumns), h.find(categoryColumns)
	if xCol < 0 || catCol < 0 {
		return nil, fmt.Errorf("header must name an x column (%s) and a category column (%s)",
			strings.Join(xColumns, "/"), strings.Join(categoryColumns, "/"))
	}

	samples := make([]schema.CategorySample, 0, len(rows)-1)
	for line, row := range rows[1:] {
		x, err := ParseAxisValue(cell(row, xCol))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", line+2, err)
		}
		samples = append(samples, schema.CategorySample{X: x, Category: cell(row, catCol)})
	}
	return samples, nil
}
