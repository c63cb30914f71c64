package domain

// LabelKind tells which variant a Label holds.
type LabelKind int

const (
	// LabelAbsent is a missing or blank label.
	LabelAbsent LabelKind = iota
	// LabelCanonical is a member of the Category enumeration.
	LabelCanonical
	// LabelUnrecognized is a non-blank label that could not be mapped; it passes through verbatim.
	LabelUnrecognized
)

// String returns the wire name of the kind.
func (k LabelKind) String() string {
	switch k {
	case LabelCanonical:
		return "canonical"
	case LabelUnrecognized:
		return "unrecognized"
	default:
		return "absent"
	}
}

// Label is the result of standardizing a raw label:
// Canonical(Category) | Unrecognized(string) | Absent.
type Label struct {
	kind     LabelKind
	category Category
	raw      string
}

// AbsentLabel returns the absent variant. raw keeps the original blank value.
func AbsentLabel(raw string) Label {
	return Label{kind: LabelAbsent, raw: raw}
}

// CanonicalLabel returns the canonical variant for c.
func CanonicalLabel(c Category) Label {
	return Label{kind: LabelCanonical, category: c}
}

// UnrecognizedLabel returns the pass-through variant for s.
func UnrecognizedLabel(s string) Label {
	return Label{kind: LabelUnrecognized, raw: s}
}

// Kind returns the variant held by l.
func (l Label) Kind() LabelKind {
	return l.kind
}

// Category returns the canonical category and true for canonical labels.
func (l Label) Category() (Category, bool) {
	if l.kind != LabelCanonical {
		return "", false
	}
	return l.category, true
}

// String renders the label the way it is written back into a record.
func (l Label) String() string {
	if l.kind == LabelCanonical {
		return string(l.category)
	}
	return l.raw
}
