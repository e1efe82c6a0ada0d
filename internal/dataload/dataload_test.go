package dataload

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadSeriesJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected *Dataset
		wantErr  bool
	}{
		{
			name:  "bare array",
			input: `[{"id":"a","name":"Alpha","points":[{"x":0,"y":1},{"x":1,"y":2}]}]`,
			expected: &Dataset{Series: []schema.Series{
				{ID: "a", Name: "Alpha", Points: []schema.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 2}}},
			}},
		},
		{
			name:  "object with stats",
			input: `{"series":[{"id":"a","points":[]}],"stats":[{"name":"rmse","value":0.5,"unit":"mm"}]}`,
			expected: &Dataset{
				Series: []schema.Series{{ID: "a", Points: []schema.DataPoint{}}},
				Stats:  []schema.Stat{{Name: "rmse", Value: 0.5, Unit: "mm"}},
			},
		},
		{
			name:  "missing id gets a positional name",
			input: `[{"points":[{"x":"2","y":3}]}]`,
			expected: &Dataset{Series: []schema.Series{
				{ID: "series-1", Points: []schema.DataPoint{{X: 2, Y: 3}}},
			}},
		},
		{
			name:  "timestamp x",
			input: `[{"id":"t","points":[{"x":"1970-01-01T00:00:01Z","y":3}]}]`,
			expected: &Dataset{Series: []schema.Series{
				{ID: "t", Points: []schema.DataPoint{{X: 1000, Y: 3}}},
			}},
		},
		{name: "bad x", input: `[{"id":"a","points":[{"x":"yesterday","y":1}]}]`, wantErr: true},
		{name: "bad x type", input: `[{"id":"a","points":[{"x":true,"y":1}]}]`, wantErr: true},
		{name: "malformed", input: `{"series":`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ReadSeriesJSON(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestReadSamplesJSON(t *testing.T) {
	got, err := ReadSamplesJSON(strings.NewReader(`{"samples":[{"x":0,"category":"ok"},{"x":1,"category":"alert"}]}`))
	require.NoError(t, err)
	assert.Equal(t, []schema.CategorySample{{X: 0, Category: "ok"}, {X: 1, Category: "alert"}}, got)

	got, err = ReadSamplesJSON(strings.NewReader(`[{"x":5,"category":"A"}]`))
	require.NoError(t, err)
	assert.Equal(t, []schema.CategorySample{{X: 5, Category: "A"}}, got)

	_, err = ReadSamplesJSON(strings.NewReader(`[{"x":{},"category":"A"}]`))
	assert.Error(t, err)
}

func TestReadSeriesCSV(t *testing.T) {
	input := `# exported telemetry
series_id,name,x,y
temp,Temperature,0,20.5
temp,Temperature,1,
load,Load,0,0.3
temp,Temperature,2,21
`
	got, err := ReadSeriesCSV(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, got.Series, 2)
	assert.Equal(t, schema.Series{ID: "temp", Name: "Temperature", Points: []schema.DataPoint{{X: 0, Y: 20.5}, {X: 2, Y: 21}}}, got.Series[0])
	assert.Equal(t, "load", got.Series[1].ID)
	assert.Equal(t, 3, got.PointCount())
}

func TestReadSeriesCSVErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"missing y column", "x,z\n1,2\n"},
		{"bad x", "x,y\nabc,1\n"},
		{"bad y", "x,y\n1,abc\n"},
		{"infinite y", "x,y\n1,Inf\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadSeriesCSV(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestReadSeriesCSVAliases(t *testing.T) {
	got, err := ReadSeriesCSV(strings.NewReader("Timestamp,Value\n2024-01-01T00:00:00Z,1\n"))
	require.NoError(t, err)
	require.Len(t, got.Series, 1)
	assert.Equal(t, defaultSeriesID, got.Series[0].ID)
	assert.Equal(t, schema.EpochMillis(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), got.Series[0].Points[0].X)
}

func TestReadSamplesCSV(t *testing.T) {
	got, err := ReadSamplesCSV(strings.NewReader("x,category\n0,A\n1,A\n2,B\n"))
	require.NoError(t, err)
	assert.Equal(t, []schema.CategorySample{{X: 0, Category: "A"}, {X: 1, Category: "A"}, {X: 2, Category: "B"}}, got)

	_, err = ReadSamplesCSV(strings.NewReader("x,y\n0,1\n"))
	assert.Error(t, err)
}

func TestLoadSeriesSortsPoints(t *testing.T) {
	path := writeFile(t, "series.json", `[{"id":"a","points":[{"x":2,"y":1},{"x":0,"y":5},{"x":1,"y":3}]}]`)
	ds, err := LoadSeries(path, schema.JSONInput)
	require.NoError(t, err)
	assert.Equal(t, []schema.DataPoint{{X: 0, Y: 5}, {X: 1, Y: 3}, {X: 2, Y: 1}}, ds.Series[0].Points)
}

func TestLoadSeriesFormats(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		path := writeFile(t, "series.csv", "series_id,x,y\na,1,2\na,0,1\n")
		ds, err := LoadSeries(path, schema.CSVInput)
		require.NoError(t, err)
		assert.Equal(t, []schema.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 2}}, ds.Series[0].Points)
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "series.parquet")
		require.NoError(t, parquet.WriteFile([]parquet.SeriesPoint{
			{SeriesID: "a", Name: "Alpha", X: 1, Y: 2},
			{SeriesID: "a", Name: "Alpha", X: 0, Y: 1},
		}, path))
		ds, err := LoadSeries(path, schema.ParquetInput)
		require.NoError(t, err)
		require.Len(t, ds.Series, 1)
		assert.Equal(t, "Alpha", ds.Series[0].Name)
		assert.Equal(t, []schema.DataPoint{{X: 0, Y: 1}, {X: 1, Y: 2}}, ds.Series[0].Points)
	})

	t.Run("xlsx", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "series.xlsx")
		f := excelize.NewFile()
		require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]any{"series_id", "x", "y"}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]any{"cpu", 1, 0.5}))
		require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]any{"cpu", 0, 0.25}))
		require.NoError(t, f.SaveAs(path))
		require.NoError(t, f.Close())

		ds, err := LoadSeries(path, schema.XLSXInput)
		require.NoError(t, err)
		require.Len(t, ds.Series, 1)
		assert.Equal(t, []schema.DataPoint{{X: 0, Y: 0.25}, {X: 1, Y: 0.5}}, ds.Series[0].Points)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadSeries(filepath.Join(t.TempDir(), "nope.json"), schema.JSONInput)
		assert.Error(t, err)
	})

	t.Run("no path", func(t *testing.T) {
		_, err := LoadSeries("", schema.JSONInput)
		assert.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := LoadSeries("x.bin", schema.InputFormat("bin"))
		assert.Error(t, err)
	})
}

func TestLoadSamples(t *testing.T) {
	path := writeFile(t, "states.csv", "x,state\n2,B\n0,A\n1,A\n")
	samples, err := LoadSamples(path)
	require.NoError(t, err)
	assert.Equal(t, []schema.CategorySample{{X: 0, Category: "A"}, {X: 1, Category: "A"}, {X: 2, Category: "B"}}, samples)

	_, err = LoadSamples("states.txt")
	assert.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	tests := map[string]schema.InputFormat{
		"a.json":    schema.JSONInput,
		"dir/b.CSV": schema.CSVInput,
		"c.parquet": schema.ParquetInput,
		"d.xlsx":    schema.XLSXInput,
	}
	for path, expected := range tests {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, expected, got)
	}
	_, err := FormatFromPath("noext")
	assert.Error(t, err)
}

func TestSortSeriesStable(t *testing.T) {
	series := []schema.Series{{Points: []schema.DataPoint{{X: 1, Y: 1}, {X: 0, Y: 0}, {X: 1, Y: 2}}}}
	SortSeries(series)
	assert.Equal(t, []schema.DataPoint{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 2}}, series[0].Points)
}
