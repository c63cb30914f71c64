package usecase

import (
	"context"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/logger"
	"github.com/ecoyoung/packform/internal/taxonomy"
)

// FoldText is the normalization applied to text before detection:
// NFKC (full-width forms, ligatures) then lower case.
func FoldText(text string) string {
	return strings.ToLower(norm.NFKC.String(text))
}

// PatternDetector finds category signals in free text using the pattern table.
type PatternDetector struct {
	tax   *taxonomy.Taxonomy
	log   logger.Logger
	debug bool
}

// DetectorConfig holds detector options.
type DetectorConfig struct {
	// Debug logs every detection at debug level.
	Debug bool
}

// NewPatternDetector creates a detector over tax. A nil taxonomy means the built-in one.
func NewPatternDetector(tax *taxonomy.Taxonomy, log logger.Logger, cfg DetectorConfig) *PatternDetector {
	if tax == nil {
		tax = taxonomy.Default()
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &PatternDetector{tax: tax, log: log, debug: cfg.Debug}
}

// Detect returns every category signal in text.
// Each match of a primary rule adds one occurrence of its category. The Others
// sub-patterns run after the whole primary table and add at most one Others
// occurrence, with the names of the matching sub-categories as evidence.
func (d *PatternDetector) Detect(_ context.Context, text string) domain.Detection {
	if domain.IsBlank(text) {
		return domain.Detection{}
	}

	lowered := FoldText(text)
	candidates := d.tax.Candidates(lowered)

	var det domain.Detection
	for _, e := range d.tax.Entries() {
		for _, r := range e.Rules {
			if !candidates.Admits(r) {
				continue
			}
			for _, m := range r.FindAll(lowered) {
				det.Categories = append(det.Categories, e.Category)
				det.Evidence = append(det.Evidence, m)
			}
		}
	}

	var subs []string
	for _, o := range d.tax.Others() {
		for _, r := range o.Rules {
			if candidates.Admits(r) && r.MatchString(lowered) {
				subs = append(subs, o.Name)
				break
			}
		}
	}
	if len(subs) > 0 {
		det.Categories = append(det.Categories, domain.CategoryOthers)
		det.Evidence = append(det.Evidence, subs...)
	}

	if d.debug {
		d.log.Debug("pattern detection",
			logger.String("text", text),
			logger.Any("categories", det.Categories),
			logger.Strings("evidence", det.Evidence),
		)
	}
	return det
}
