package usecase

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/taxonomy"
)

// LabelStandardizer rewrites existing labels into the canonical vocabulary.
type LabelStandardizer struct {
	tax *taxonomy.Taxonomy
}

// NewStandardizer creates a standardizer over tax. A nil taxonomy means the built-in one.
func NewStandardizer(tax *taxonomy.Taxonomy) *LabelStandardizer {
	if tax == nil {
		tax = taxonomy.Default()
	}
	return &LabelStandardizer{tax: tax}
}

// Standardize maps label to its canonical category.
// Flow: blank -> absent, exact table key -> canonical, first matching pattern
// category -> canonical, otherwise the trimmed label unchanged.
func (s *LabelStandardizer) Standardize(label string) domain.Label {
	if domain.IsBlank(label) {
		return domain.AbsentLabel(label)
	}

	trimmed := strings.TrimSpace(label)
	if c, ok := s.tax.Lookup(trimmed); ok {
		return domain.CanonicalLabel(c)
	}

	folded := norm.NFKC.String(trimmed)
	for _, e := range s.tax.Entries() {
		for _, r := range e.Rules {
			if r.MatchString(folded) {
				return domain.CanonicalLabel(e.Category)
			}
		}
	}

	return domain.UnrecognizedLabel(trimmed)
}
