package usecase

import (
	"testing"

	"github.com/ecoyoung/packform/internal/domain"
	"github.com/ecoyoung/packform/internal/taxonomy"
)

func TestStandardize(t *testing.T) {
	s := NewStandardizer(nil)

	tests := []struct {
		name     string
		label    string
		wantKind domain.LabelKind
		want     string
	}{
		{"abbreviation", "Tab", domain.LabelCanonical, "Tablet"},
		{"canonical stays canonical", "Tablet", domain.LabelCanonical, "Tablet"},
		{"surrounding whitespace", "  Capsules ", domain.LabelCanonical, "Capsule"},
		{"upper-case plural", "SOFTGELS", domain.LabelCanonical, "Softgel"},
		{"dotted unit", "Fl. Oz.", domain.LabelCanonical, "Drop"},
		{"others key", "Tea bags", domain.LabelCanonical, "Others"},
		{"pattern fallback", "Vitamin Softgel pack", domain.LabelCanonical, "Softgel"},
		{"fallback follows table order", "Liquid Drops", domain.LabelCanonical, "Drop"},
		{"full-width forms", "ＣＡＰＳＵＬＥ", domain.LabelCanonical, "Capsule"},
		{"chinese label", "胶囊", domain.LabelCanonical, "Capsule"},
		{"bundle passes through", "Bundle", domain.LabelUnrecognized, "Bundle"},
		{"unknown label is trimmed and kept", " Sachet ", domain.LabelUnrecognized, "Sachet"},
		{"empty", "", domain.LabelAbsent, ""},
		{"whitespace only", "   ", domain.LabelAbsent, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Standardize(tt.label)
			if got.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", got.Kind(), tt.wantKind)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestStandardize_EveryTableKey(t *testing.T) {
	s := NewStandardizer(taxonomy.Default())

	for key, want := range taxonomy.Default().Aliases() {
		got := s.Standardize(key)
		c, ok := got.Category()
		if !ok || c != want {
			t.Errorf("Standardize(%q) = %v (%v), want %v", key, got.String(), got.Kind(), want)
		}
	}
}

func TestStandardize_Idempotent(t *testing.T) {
	s := NewStandardizer(nil)

	labels := []string{"Tab", "caps", "Powdered", "Omega oil", "strippy", "Bundle", "mystery", "液体", "  gel "}
	for _, label := range labels {
		once := s.Standardize(label).String()
		twice := s.Standardize(once).String()
		if once != twice {
			t.Errorf("Standardize(%q) = %q, then %q", label, once, twice)
		}
	}
}
