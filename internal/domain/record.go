package domain

import "strings"

// Record is a single row under processing.
type Record struct {
	Row   int    `json:"row"`   // 0-based position in the source dataset
	Label string `json:"label"` // blank means absent
	Text  string `json:"text"`

	MatchedCategory  Category `json:"matched_category"`
	MatchEvidence    string   `json:"match_evidence"`
	OriginallyAbsent bool     `json:"originally_absent"`
	Confidence       float64  `json:"confidence"`
	WasStandardized  bool     `json:"was_standardized"`
}

// Filled reports whether the record's label was inferred from its text.
func (r *Record) Filled() bool {
	return r.MatchedCategory != ""
}

// Batch is the set of records processed together plus its aggregate counters.
type Batch struct {
	ID                string   `json:"id"`
	Records           []Record `json:"records"`
	StandardizedCount int      `json:"standardized_count"`
	FilledCount       int      `json:"filled_count"`
}

// Detection holds every category signal found in a text and the substrings that produced them.
// Categories may repeat; one entry per independent match.
type Detection struct {
	Categories []Category `json:"categories"`
	Evidence   []string   `json:"evidence"`
}

// Empty reports whether nothing was detected.
func (d Detection) Empty() bool {
	return len(d.Categories) == 0
}

// Distinct returns the detected categories without repetition, in order of first appearance.
func (d Detection) Distinct() []Category {
	seen := make(map[Category]bool, len(d.Categories))
	out := make([]Category, 0, len(d.Categories))
	for _, c := range d.Categories {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// IsBlank reports whether s is empty or only whitespace; blank values are treated as absent.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
