package http

import "github.com/ecoyoung/packform/internal/domain"

// StandardizeRequest is the body of POST /packforms/standardize
type StandardizeRequest struct {
	Label string `json:"label"`
}

// StandardizeResponse reports how a label was mapped
type StandardizeResponse struct {
	Input string `json:"input"`
	Label string `json:"label"`
	Kind  string `json:"kind"` // canonical, unrecognized or absent
}

// ClassifyRequest is the body of POST /packforms/classify
type ClassifyRequest struct {
	Text string `json:"text" binding:"required"`
}

// ClassifyResponse holds the detection and the reduced category.
// Category is omitted when the text carries no signal.
type ClassifyResponse struct {
	Text       string            `json:"text"`
	Categories []domain.Category `json:"categories"`
	Evidence   []string          `json:"evidence"`
	Category   domain.Category   `json:"category,omitempty"`
	Confidence float64           `json:"confidence"`
}

// LabelRequest is the body of POST /packforms/label.
// Columns fixes the column order; otherwise the sorted union of row keys is used.
type LabelRequest struct {
	LabelField string           `json:"label_field"`
	TextField  string           `json:"text_field"`
	Columns    []string         `json:"columns"`
	Rows       []map[string]any `json:"rows" binding:"required"`
}

// LabelResponse is the labeled table plus its batch report
type LabelResponse struct {
	Columns []string         `json:"columns"`
	Rows    []map[string]any `json:"rows"`
	Report  domain.Report    `json:"report"`
}

// CategoryInfo describes one canonical category
type CategoryInfo struct {
	Name        domain.Category `json:"name"`
	Description string          `json:"description"`
	Synthetic   bool            `json:"synthetic"`
	Rules       int             `json:"rules"`
	Aliases     int             `json:"aliases"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
