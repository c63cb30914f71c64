package usecase

import (
	"sort"

	"github.com/ecoyoung/packform/internal/domain"
)

// excerptRunes is the length product text is cut to in report examples.
const excerptRunes = 80

// Report summarizes batch using the configured example limit.
func (s *LabelingService) Report(batch *domain.Batch) domain.Report {
	return BuildReport(batch, s.exampleLimit)
}

// BuildReport summarizes batch: counts, final label distribution and up to
// exampleLimit standardized rows.
func BuildReport(batch *domain.Batch, exampleLimit int) domain.Report {
	report := domain.Report{
		BatchID:      batch.ID,
		TotalRows:    len(batch.Records),
		Standardized: batch.StandardizedCount,
		Distribution: []domain.LabelCount{},
		Examples:     []domain.StandardizationExample{},
	}

	counts := make(map[string]int)
	for _, r := range batch.Records {
		if r.OriginallyAbsent {
			report.OriginallyAbsent++
		}
		if domain.IsBlank(r.Label) {
			report.FinalAbsent++
		} else {
			counts[r.Label]++
		}
		if r.WasStandardized && len(report.Examples) < exampleLimit {
			report.Examples = append(report.Examples, domain.StandardizationExample{
				Row:   r.Row + 1,
				Text:  excerpt(r.Text),
				Label: r.Label,
			})
		}
	}

	report.Filled = report.OriginallyAbsent - report.FinalAbsent
	if report.OriginallyAbsent > 0 {
		rate := float64(report.Filled) / float64(report.OriginallyAbsent) * 100
		report.FillRate = &rate
	}

	for label, n := range counts {
		report.Distribution = append(report.Distribution, domain.LabelCount{Label: label, Count: n})
	}
	sort.Slice(report.Distribution, func(i, j int) bool {
		a, b := report.Distribution[i], report.Distribution[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})

	return report
}

func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptRunes {
		return text
	}
	return string(runes[:excerptRunes]) + "..."
}
