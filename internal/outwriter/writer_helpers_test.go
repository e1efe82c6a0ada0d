package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/chartkit/internal/parquet"
	"github.com/huangsam/chartkit/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateFormatters(t *testing.T) {
	tests := []struct {
		name      string
		precision int
		value     float64
		expected  string
	}{
		{name: "precision 2", precision: 2, value: 3.14159, expected: "3.14"},
		{name: "precision 0", precision: 0, value: 219.6, expected: "220"},
		{name: "precision 4", precision: 4, value: 3.14159, expected: "3.1416"},
		{name: "negative pixel", precision: 1, value: -0.26, expected: "-0.3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fmtFloat, intFmt := createFormatters(tt.precision)
			assert.Equal(t, tt.expected, fmtFloat(tt.value))
			assert.Equal(t, "%d", intFmt)
		})
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, schema.Point{X: 1.5, Y: 2}))
	assert.Equal(t, "{\n  \"x\": 1.5,\n  \"y\": 2\n}\n", buf.String())

	err := writeJSON(&buf, make(chan int))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to encode JSON")
}

func TestFormatJSON(t *testing.T) {
	text, err := FormatJSON(schema.DescribeResult{Summary: "Chart with no data."})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"summary\": \"Chart with no data.\"\n}\n", text)
}

func TestWriteCSVWithHeader(t *testing.T) {
	var buf bytes.Buffer
	err := writeCSVWithHeader(&buf, []string{"category", "note"}, func(w *csv.Writer) error {
		return w.Write([]string{"up", "rising, fast"})
	})
	require.NoError(t, err)
	assert.Equal(t, "category,note\nup,\"rising, fast\"\n", buf.String())

	err = writeCSVWithHeader(&buf, []string{"col"}, func(*csv.Writer) error {
		return assert.AnError
	})
	assert.Equal(t, assert.AnError, err)
}

func TestWriteWithFile(t *testing.T) {
	t.Run("stdout", func(t *testing.T) {
		called := false
		err := writeWithFile("", func(io.Writer) error {
			called = true
			return nil
		}, "Test message")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(w io.Writer) error {
			_, err := w.Write([]byte("M0,0 L1,1"))
			return err
		}, "Test message")
		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "M0,0 L1,1", string(content))
	})

	t.Run("writer error", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.txt")
		err := writeWithFile(path, func(io.Writer) error { return assert.AnError }, "Test message")
		assert.Equal(t, assert.AnError, err)
	})

	t.Run("invalid path", func(t *testing.T) {
		err := writeWithFile("/nonexistent/path/file.txt", func(io.Writer) error { return nil }, "Test message")
		require.Error(t, err)
	})
}

func TestWriteParquetRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.parquet")
	rows := []parquet.Band{{Category: "up", StartX: 0, EndX: 5}}
	require.NoError(t, writeParquetRows(rows, path, "Wrote Parquet bands"))

	got, err := parquet.ReadFile[parquet.Band](path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
