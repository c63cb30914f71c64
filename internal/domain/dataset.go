package domain

// Names of the columns appended to a labeled dataset.
const (
	ColumnMatchedCategory  = "matched_category"
	ColumnMatchEvidence    = "match_evidence"
	ColumnOriginallyAbsent = "originally_absent"
	ColumnConfidence       = "confidence"
	ColumnWasStandardized  = "was_standardized"
)

// AppendedColumns lists the output columns in the order they are appended.
var AppendedColumns = []string{
	ColumnMatchedCategory,
	ColumnMatchEvidence,
	ColumnOriginallyAbsent,
	ColumnConfidence,
	ColumnWasStandardized,
}

// Dataset is tabular input or output. Cells hold raw values: strings for text,
// nil for empty cells, anything else for values of other types.
type Dataset struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1.
func (d *Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row/col, or nil for short rows.
func (d *Dataset) Cell(row, col int) any {
	if row < 0 || row >= len(d.Rows) || col < 0 || col >= len(d.Rows[row]) {
		return nil
	}
	return d.Rows[row][col]
}

// Fields names the label and text columns of a dataset.
type Fields struct {
	Label string `json:"label_field"`
	Text  string `json:"text_field"`
}

// TextCell converts a raw cell into a string. Non-string values are absent.
func TextCell(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}
