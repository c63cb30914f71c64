package domain

import "strings"

// Category is a canonical pack form (dosage form).
type Category string

// Canonical categories. Bundle and Others are synthetic outcomes of classification.
const (
	CategoryCapsule     Category = "Capsule"
	CategoryTablet      Category = "Tablet"
	CategoryPowder      Category = "Powder"
	CategoryGummy       Category = "Gummy"
	CategoryDrop        Category = "Drop"
	CategorySoftgel     Category = "Softgel"
	CategoryLiquid      Category = "Liquid"
	CategoryOil         Category = "Oil"
	CategoryCream       Category = "Cream"
	CategorySpray       Category = "Spray"
	CategoryLotion      Category = "Lotion"
	CategoryPatch       Category = "Patch"
	CategorySuppository Category = "Suppository"
	CategoryBundle      Category = "Bundle"
	CategoryOthers      Category = "Others"
)

// Categories lists every canonical category.
var Categories = []Category{
	CategoryCapsule,
	CategoryTablet,
	CategoryPowder,
	CategoryGummy,
	CategoryDrop,
	CategorySoftgel,
	CategoryLiquid,
	CategoryOil,
	CategoryCream,
	CategorySpray,
	CategoryLotion,
	CategoryPatch,
	CategorySuppository,
	CategoryBundle,
	CategoryOthers,
}

// categoryDescriptions are shown by the categories endpoint and the CLI.
var categoryDescriptions = map[Category]string{
	CategoryCapsule:     "Capsules (胶囊类)",
	CategoryTablet:      "Tablets, caplets and chewables (片剂类)",
	CategoryPowder:      "Powders, granules and drink mixes (粉剂类)",
	CategoryGummy:       "Gummies and jellies (软糖类)",
	CategoryDrop:        "Drops and tinctures (滴剂类)",
	CategorySoftgel:     "Softgels (软胶囊类)",
	CategoryLiquid:      "Liquids, syrups and solutions (液体类)",
	CategoryOil:         "Oils (油类)",
	CategoryCream:       "Creams and ointments (乳霜软膏类)",
	CategorySpray:       "Sprays and inhalers (喷雾类)",
	CategoryLotion:      "Lotions (乳液类)",
	CategoryPatch:       "Patches (贴剂/贴片类)",
	CategorySuppository: "Suppositories (栓剂类)",
	CategoryBundle:      "Several pack forms in one product (多种剂型组合)",
	CategoryOthers:      "Other pack forms (其他剂型)",
}

// Valid reports whether c is one of the canonical categories.
func (c Category) Valid() bool {
	_, ok := categoryDescriptions[c]
	return ok
}

// Synthetic reports whether c is only produced by classification (Bundle, Others).
func (c Category) Synthetic() bool {
	return c == CategoryBundle || c == CategoryOthers
}

// Description returns a human-readable description of the category.
func (c Category) Description() string {
	return categoryDescriptions[c]
}

// ParseCategory returns the category named s, ignoring case and surrounding whitespace.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}
