package dataload

import (
	"errors"
	"fmt"

	"github.com/huangsam/chartkit/schema"
	"github.com/xuri/excelize/v2"
)

// readSheet returns the rows of the first sheet of a workbook.
func readSheet(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// readSeriesXLSX reads long-format series rows from the first sheet of a workbook.
func readSeriesXLSX(path string) (*Dataset, error) {
	rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	return seriesFromRows(rows)
}

// readSamplesXLSX reads (x, category) rows from the first sheet of a workbook.
func readSamplesXLSX(path string) ([]schema.CategorySample, error) {
	rows, err := readSheet(path)
	if err != nil {
		return nil, err
	}
	return samplesFromRows(rows)
}
