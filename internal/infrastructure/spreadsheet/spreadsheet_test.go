package spreadsheet

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ecoyoung/packform/internal/domain"
)

// workbook builds an in-memory xlsx with one sheet.
func workbook(t *testing.T, sheet string, rows [][]any) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()
	if sheet != "Sheet1" {
		require.NoError(t, f.SetSheetName("Sheet1", sheet))
	}
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, v))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return bytes.NewReader(buf.Bytes())
}

func TestRead(t *testing.T) {
	t.Run("typed cells and padded rows", func(t *testing.T) {
		in := workbook(t, "Products", [][]any{
			{"SKU", "Product", "Pack form", nil, "Notes"},
			{"A1", "Fish Oil Softgels", "Softgel"},
			{"A2", "Vitamin C", nil, nil, "restock"},
			{"A3", 12345, true},
			{"A4", "12345"},
		})

		ds, sheet, err := Read(in, "")
		require.NoError(t, err)
		assert.Equal(t, "Products", sheet)
		assert.Equal(t, []string{"SKU", "Product", "Pack form", "Unnamed: 3", "Notes"}, ds.Columns)

		require.Len(t, ds.Rows, 4)
		assert.Equal(t, []any{"A1", "Fish Oil Softgels", "Softgel", nil, nil}, ds.Rows[0])
		assert.Equal(t, []any{"A2", "Vitamin C", nil, nil, "restock"}, ds.Rows[1])
		assert.Equal(t, []any{"A3", 12345.0, true, nil, nil}, ds.Rows[2])
		assert.Equal(t, []any{"A4", "12345", nil, nil, nil}, ds.Rows[3])
	})

	t.Run("data beyond the last header is kept", func(t *testing.T) {
		in := workbook(t, "Sheet1", [][]any{
			{"Product", "Pack form"},
			{"Fish Oil", nil, "keep me"},
			{"Vitamin C", "Tab", nil, nil, 42},
		})

		ds, _, err := Read(in, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Product", "Pack form", "Unnamed: 2", "Unnamed: 3", "Unnamed: 4"}, ds.Columns)
		require.Len(t, ds.Rows, 2)
		assert.Equal(t, []any{"Fish Oil", nil, "keep me", nil, nil}, ds.Rows[0])
		assert.Equal(t, []any{"Vitamin C", "Tab", nil, nil, 42.0}, ds.Rows[1])
	})

	t.Run("named sheet", func(t *testing.T) {
		in := workbook(t, "Products", [][]any{{"Product"}})
		_, sheet, err := Read(in, "Products")
		require.NoError(t, err)
		assert.Equal(t, "Products", sheet)
	})

	t.Run("unknown sheet", func(t *testing.T) {
		in := workbook(t, "Products", [][]any{{"Product"}})
		_, _, err := Read(in, "Missing")
		assert.True(t, errors.Is(err, domain.ErrInvalidRequest), "error = %v", err)
	})

	t.Run("empty sheet", func(t *testing.T) {
		ds, _, err := Read(workbook(t, "Sheet1", nil), "")
		require.NoError(t, err)
		assert.Empty(t, ds.Columns)
		assert.Empty(t, ds.Rows)
	})

	t.Run("not a workbook", func(t *testing.T) {
		_, _, err := Read(bytes.NewReader([]byte("Product,Pack form\n")), "")
		assert.True(t, errors.Is(err, domain.ErrUnsupportedFile), "error = %v", err)
	})
}

func TestWriteThenRead(t *testing.T) {
	rate := 50.0
	ds := &domain.Dataset{
		Columns: []string{"Product", "Pack form", "confidence", "was_standardized"},
		Rows: [][]any{
			{"Fish Oil", "Oil", 0.5, false},
			{"Vitamin C", nil, 0.0, false},
		},
	}
	report := &domain.Report{
		BatchID:          "batch-1",
		TotalRows:        2,
		OriginallyAbsent: 2,
		Filled:           1,
		FinalAbsent:      1,
		FillRate:         &rate,
		Distribution:     []domain.LabelCount{{Label: "Oil", Count: 1}},
		Examples:         []domain.StandardizationExample{{Row: 3, Text: "Tab", Label: "Tablet"}},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "Products", ds, report))

	got, sheet, err := Read(bytes.NewReader(buf.Bytes()), "")
	require.NoError(t, err)
	assert.Equal(t, "Products", sheet)
	assert.Equal(t, ds.Columns, got.Columns)
	require.Len(t, got.Rows, 2)
	assert.Equal(t, "Fish Oil", got.Rows[0][0])
	assert.Equal(t, "Oil", got.Rows[0][1])
	assert.Equal(t, 0.5, got.Rows[0][2])
	assert.Equal(t, false, got.Rows[0][3])
	assert.Nil(t, got.Rows[1][1])

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Products", ReportSheet}, f.GetSheetList())
	id, err := f.GetCellValue(ReportSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "batch-1", id)
	fill, err := f.GetCellValue(ReportSheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "50.0%", fill)
	label, err := f.GetCellValue(ReportSheet, "A10")
	require.NoError(t, err)
	assert.Equal(t, "Oil", label)
	example, err := f.GetCellValue(ReportSheet, "C13")
	require.NoError(t, err)
	assert.Equal(t, "Tablet", example)
}

func TestWrite_ReportSheetNameClash(t *testing.T) {
	var buf bytes.Buffer
	ds := &domain.Dataset{Columns: []string{"Product"}}
	require.NoError(t, Write(&buf, ReportSheet, ds, &domain.Report{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{ReportSheet, "Labeling Report"}, f.GetSheetList())
}

func TestWriteFileAndReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	ds := &domain.Dataset{
		Columns: []string{"Product", "Pack form"},
		Rows:    [][]any{{"Gummies", "Gummy"}},
	}
	require.NoError(t, WriteFile(path, "", ds, nil))

	got, sheet, err := ReadFile(path, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSheet, sheet)
	assert.Equal(t, ds.Rows, got.Rows)

	_, _, err = ReadFile(filepath.Join(t.TempDir(), "missing.xlsx"), "")
	assert.Error(t, err)
}
