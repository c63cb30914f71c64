package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/ecoyoung/packform/internal/domain"
)

const (
	// DefaultSheet names the data sheet when no name is given
	DefaultSheet = "Sheet1"
	// ReportSheet names the sheet holding the batch report
	ReportSheet = "Report"
)

// Write renders ds into sheet and, when report is not nil, the report into a
// second sheet, then writes the workbook to w.
func Write(w io.Writer, sheet string, ds *domain.Dataset, report *domain.Report) error {
	f, err := build(sheet, ds, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile is Write to a file on disk.
func WriteFile(path, sheet string, ds *domain.Dataset, report *domain.Report) error {
	f, err := build(sheet, ds, report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func build(sheet string, ds *domain.Dataset, report *domain.Report) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	if sheet != DefaultSheet {
		if err := f.SetSheetName(DefaultSheet, sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	}

	if err := writeData(f, sheet, ds); err != nil {
		f.Close()
		return nil, err
	}

	if report != nil {
		name := ReportSheet
		if name == sheet {
			name = "Labeling " + ReportSheet
		}
		if err := writeReport(f, name, report); err != nil {
			f.Close()
			return nil, err
		}
	}

	return f, nil
}

func writeData(f *excelize.File, sheet string, ds *domain.Dataset) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return fmt.Errorf("open stream writer: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	header := make([]any, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header, excelize.RowOpts{StyleID: headerStyle}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	return nil
}

func writeReport(f *excelize.File, sheet string, report *domain.Report) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create report sheet: %w", err)
	}

	fillRate := "-"
	if report.FillRate != nil {
		fillRate = fmt.Sprintf("%.1f%%", *report.FillRate)
	}

	rows := [][]any{
		{"Batch ID", report.BatchID},
		{"Total rows", report.TotalRows},
		{"Standardized", report.Standardized},
		{"Originally absent", report.OriginallyAbsent},
		{"Filled", report.Filled},
		{"Still absent", report.FinalAbsent},
		{"Fill rate", fillRate},
		{},
		{"Label", "Count"},
	}
	for _, lc := range report.Distribution {
		rows = append(rows, []any{lc.Label, lc.Count})
	}
	rows = append(rows, []any{}, []any{"Row", "Product", "Label"})
	for _, ex := range report.Examples {
		rows = append(rows, []any{ex.Row, ex.Text, ex.Label})
	}

	for r, values := range rows {
		for c, v := range values {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set report cell %s: %w", cell, err)
			}
		}
	}
	return nil
}
