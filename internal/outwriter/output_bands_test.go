package outwriter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBands() schema.BandsResult {
	return schema.BandsResult{
		Samples: 4,
		Bands: []schema.BandSpan{
			{Band: schema.Band{Category: "up", StartX: 0, EndX: 5}, Left: 20, Right: 120},
			{Band: schema.Band{Category: "down", StartX: 10, EndX: 20}, Left: 220, Right: 420},
		},
		Description: "2 bands: up from 0 to 5, down from 10 to 20.",
	}
}

func TestWriteBands(t *testing.T) {
	cfg := testConfig(schema.TextOut, "")
	fmtFloat, _ := createFormatters(0)

	t.Run("table", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeBandsTable(&buf, testBands(), cfg, fmtFloat, time.Millisecond))
		out := buf.String()
		assert.Contains(t, out, "down")
		assert.Contains(t, out, "2 bands: up from 0 to 5, down from 10 to 20.")
		assert.Contains(t, out, "Compressed 4 samples into 2 bands")
	})

	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		w := csv.NewWriter(&buf)
		require.NoError(t, writeCSVResultsForBands(w, testBands(), fmtFloat))
		w.Flush()
		assert.Equal(t, "1,up,0,5,20,120\n2,down,10,20,220,420\n", buf.String())
	})

	t.Run("parquet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bands.parquet")
		require.NoError(t, WriteBands(testBands(), testConfig(schema.ParquetOut, path), time.Second))
		rows, err := parquet.ReadFile[parquet.Band](path)
		require.NoError(t, err)
		assert.Equal(t, []parquet.Band{
			{Category: "up", StartX: 0, EndX: 5},
			{Category: "down", StartX: 10, EndX: 20},
		}, rows)
	})
}

func TestWriteDescription(t *testing.T) {
	result := schema.DescribeResult{Summary: "Chart with 1 series and 2 points.", Bands: "1 band: idle at 3."}

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeDescriptionText(&buf, result))
		assert.Equal(t, "Chart with 1 series and 2 points.\n1 band: idle at 3.\n", buf.String())
	})

	t.Run("csv file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "describe.csv")
		require.NoError(t, WriteDescription(result, testConfig(schema.CSVOut, path), time.Second))
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "kind,text\nsummary,Chart with 1 series and 2 points.\nbands,1 band: idle at 3.\n", string(content))
	})

	t.Run("summary only", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "describe.csv")
		require.NoError(t, WriteDescription(schema.DescribeResult{Summary: "Chart with no data."}, testConfig(schema.CSVOut, path), time.Second))
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "kind,text\nsummary,Chart with no data.\n", string(content))
	})
}

func TestGetMaxPathWidth(t *testing.T) {
	tests := []struct {
		width    int
		expected int
	}{
		{width: 40, expected: 15},
		{width: 120, expected: 55},
		{width: 400, expected: 120},
	}
	for _, tt := range tests {
		cfg := testConfig(schema.TextOut, "")
		cfg.Width = tt.width
		assert.Equal(t, tt.expected, GetMaxPathWidth(cfg), "width %d", tt.width)
	}

	cfg := testConfig(schema.TextOut, "")
	cfg.Width = 60
	assert.Equal(t, 20, GetMaxNarrationWidth(cfg))
}
