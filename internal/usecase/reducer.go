package usecase

import "github.com/ecoyoung/packform/internal/domain"

// Classify reduces detected categories to one.
//   - nothing detected: Others
//   - Liquid and Drop both present: Drop, whatever else was detected
//   - one distinct category: that category
//   - several distinct categories: Bundle
func Classify(categories []domain.Category) domain.Category {
	if len(categories) == 0 {
		return domain.CategoryOthers
	}

	distinct := domain.Detection{Categories: categories}.Distinct()
	hasLiquid, hasDrop := false, false
	for _, c := range distinct {
		switch c {
		case domain.CategoryLiquid:
			hasLiquid = true
		case domain.CategoryDrop:
			hasDrop = true
		}
	}

	switch {
	case hasLiquid && hasDrop:
		return domain.CategoryDrop
	case len(distinct) == 1:
		return distinct[0]
	case len(distinct) > 1:
		return domain.CategoryBundle
	default:
		return domain.CategoryOthers
	}
}

// Confidence is min(distinct categories / 2, 1): 0.5 for a single signal, 1.0 for two or more.
func Confidence(categories []domain.Category) float64 {
	n := len(domain.Detection{Categories: categories}.Distinct())
	return min(float64(n)/2.0, 1.0)
}
