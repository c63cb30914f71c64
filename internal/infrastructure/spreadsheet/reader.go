// Package spreadsheet converts between xlsx workbooks and datasets.
package spreadsheet

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ecoyoung/packform/internal/domain"
)

// Read loads one sheet of a workbook. The first row is the header; every following
// row becomes a dataset row padded to the widest row. Columns without a header are
// named "Unnamed: N" after their zero-based index. An empty sheet name selects
// the first sheet. The resolved sheet name is returned with the dataset.
//
// Cells keep their stored type: numbers become float64, booleans bool, empty cells
// nil and everything else string.
func Read(r io.Reader, sheet string) (*domain.Dataset, string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", domain.ErrUnsupportedFile, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "", fmt.Errorf("%w: workbook has no sheets", domain.ErrUnsupportedFile)
	}
	if sheet == "" {
		sheet = sheets[0]
	} else if !slices.Contains(sheets, sheet) {
		return nil, "", fmt.Errorf("%w: sheet %q not found", domain.ErrInvalidRequest, sheet)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, "", fmt.Errorf("%w: read sheet %q: %v", domain.ErrUnsupportedFile, sheet, err)
	}

	ds := &domain.Dataset{}
	if len(rows) == 0 {
		return ds, sheet, nil
	}

	// GetRows trims trailing empty cells, so the header can be narrower than the data.
	width := 0
	for _, values := range rows {
		width = max(width, len(values))
	}

	ds.Columns = make([]string, width)
	for i := range ds.Columns {
		name := ""
		if i < len(rows[0]) {
			name = rows[0][i]
		}
		if strings.TrimSpace(name) == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		ds.Columns[i] = name
	}

	ds.Rows = make([][]any, 0, len(rows)-1)
	for r, values := range rows[1:] {
		row := make([]any, len(ds.Columns))
		for c := 0; c < len(values) && c < len(row); c++ {
			row[c] = typedCell(f, sheet, c+1, r+2, values[c])
		}
		ds.Rows = append(ds.Rows, row)
	}

	return ds, sheet, nil
}

// ReadFile is Read for a workbook on disk.
func ReadFile(path, sheet string) (*domain.Dataset, string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, "", fmt.Errorf("open workbook: %w", err)
	}
	defer file.Close()
	return Read(file, sheet)
}

func typedCell(f *excelize.File, sheet string, col, row int, raw string) any {
	if raw == "" {
		return nil
	}
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return raw
	}
	cellType, err := f.GetCellType(sheet, cell)
	if err != nil {
		return raw
	}

	switch cellType {
	case excelize.CellTypeBool:
		return raw == "1" || strings.EqualFold(raw, "true")
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v
		}
	}
	return raw
}
