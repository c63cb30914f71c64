package domain

// Report summarizes a processed batch for display or export.
type Report struct {
	BatchID          string                   `json:"batchId"`
	TotalRows        int                      `json:"totalRows"`
	Standardized     int                      `json:"standardized"`
	OriginallyAbsent int                      `json:"originallyAbsent"`
	Filled           int                      `json:"filled"`
	FinalAbsent      int                      `json:"finalAbsent"`
	FillRate         *float64                 `json:"fillRate,omitempty"` // percentage, only when OriginallyAbsent > 0
	Distribution     []LabelCount             `json:"distribution"`
	Examples         []StandardizationExample `json:"examples"`
}

// LabelCount is the number of rows carrying a final label.
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// StandardizationExample is a sample standardized row for audit display.
type StandardizationExample struct {
	Row   int    `json:"row"` // 1-based
	Text  string `json:"text"`
	Label string `json:"label"`
}
