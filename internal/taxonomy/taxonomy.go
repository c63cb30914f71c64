// Package taxonomy holds the pack form pattern table and the label standardization
// table. Both are built once and are read-only afterwards, so a *Taxonomy can be
// shared across goroutines without locking.
package taxonomy

import (
	"fmt"
	"strings"
	"sync"
	"unicode"

	ahocorasick "github.com/cloudflare/ahocorasick"

	"github.com/ecoyoung/packform/internal/domain"
)

// PatternSet is the authored form of a category's detection rules.
type PatternSet struct {
	Category domain.Category `yaml:"category"`
	Rules    []string        `yaml:"rules"`
}

// SubPatternSet is the authored form of one Others sub-category.
type SubPatternSet struct {
	Name  string   `yaml:"name"`
	Rules []string `yaml:"rules"`
}

// AliasSet is the authored form of a category's known label spellings.
type AliasSet struct {
	Category  domain.Category `yaml:"category"`
	Spellings []string        `yaml:"spellings"`
}

// Source is the authored taxonomy. It is also the schema of extension files.
type Source struct {
	Patterns []PatternSet    `yaml:"patterns,omitempty"`
	Others   []SubPatternSet `yaml:"others,omitempty"`
	Aliases  []AliasSet      `yaml:"aliases,omitempty"`
}

// Entry is a category with its compiled rules.
type Entry struct {
	Category domain.Category
	Rules    []Rule
}

// SubEntry is an Others sub-category with its compiled rules.
type SubEntry struct {
	Name  string
	Rules []Rule
}

// Taxonomy is the compiled, immutable pattern and standardization table pair.
type Taxonomy struct {
	source  Source
	entries []Entry
	others  []SubEntry
	aliases map[string]domain.Category

	prefilter *ahocorasick.Matcher
	anchors   []string
}

var defaultTaxonomy = sync.OnceValue(func() *Taxonomy {
	t, err := Build(DefaultSource())
	if err != nil {
		panic(fmt.Sprintf("taxonomy: built-in tables do not compile: %v", err))
	}
	return t
})

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	return defaultTaxonomy()
}

// DefaultSource returns a copy of the built-in authored tables.
func DefaultSource() Source {
	return Merge(Source{}, Source{
		Patterns: defaultPatterns,
		Others:   defaultOthers,
		Aliases:  defaultAliases,
	})
}

// Build validates and compiles src.
func Build(src Source) (*Taxonomy, error) {
	t := &Taxonomy{
		source:  src,
		aliases: make(map[string]domain.Category),
	}

	seen := make(map[domain.Category]bool)
	for _, ps := range src.Patterns {
		if !ps.Category.Valid() || ps.Category.Synthetic() {
			return nil, fmt.Errorf("%w: %q cannot carry detection patterns", domain.ErrInvalidTaxonomy, ps.Category)
		}
		if seen[ps.Category] {
			return nil, fmt.Errorf("%w: patterns for %s listed twice", domain.ErrInvalidTaxonomy, ps.Category)
		}
		seen[ps.Category] = true

		rules, err := compileAll(ps.Rules)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidTaxonomy, ps.Category, err)
		}
		t.entries = append(t.entries, Entry{Category: ps.Category, Rules: rules})
	}

	for _, sp := range src.Others {
		if strings.TrimSpace(sp.Name) == "" {
			return nil, fmt.Errorf("%w: others sub-pattern without a name", domain.ErrInvalidTaxonomy)
		}
		rules, err := compileAll(sp.Rules)
		if err != nil {
			return nil, fmt.Errorf("%w: others %s: %v", domain.ErrInvalidTaxonomy, sp.Name, err)
		}
		t.others = append(t.others, SubEntry{Name: sp.Name, Rules: rules})
	}

	for _, as := range src.Aliases {
		if !as.Category.Valid() || as.Category == domain.CategoryBundle {
			return nil, fmt.Errorf("%w: %q cannot be an alias target", domain.ErrInvalidTaxonomy, as.Category)
		}
		for _, spelling := range as.Spellings {
			for _, key := range casingVariants(spelling) {
				if prev, ok := t.aliases[key]; ok && prev != as.Category {
					return nil, fmt.Errorf("%w: alias %q maps to both %s and %s",
						domain.ErrInvalidTaxonomy, key, prev, as.Category)
				}
				t.aliases[key] = as.Category
			}
		}
	}

	t.buildPrefilter()
	return t, nil
}

func compileAll(sources []string) ([]Rule, error) {
	rules := make([]Rule, 0, len(sources))
	for _, s := range sources {
		r, err := CompileRule(s)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func (t *Taxonomy) buildPrefilter() {
	index := make(map[string]bool)
	add := func(rules []Rule) {
		for _, r := range rules {
			if r.anchor != "" && !index[r.anchor] {
				index[r.anchor] = true
				t.anchors = append(t.anchors, r.anchor)
			}
		}
	}
	for _, e := range t.entries {
		add(e.Rules)
	}
	for _, o := range t.others {
		add(o.Rules)
	}
	if len(t.anchors) > 0 {
		t.prefilter = ahocorasick.NewStringMatcher(t.anchors)
	}
}

// Entries returns the primary categories and their rules in table order.
func (t *Taxonomy) Entries() []Entry {
	return t.entries
}

// Others returns the Others sub-categories in evaluation order.
func (t *Taxonomy) Others() []SubEntry {
	return t.others
}

// Lookup returns the category registered for the exact key.
func (t *Taxonomy) Lookup(key string) (domain.Category, bool) {
	c, ok := t.aliases[key]
	return c, ok
}

// Aliases returns a copy of the standardization table.
func (t *Taxonomy) Aliases() map[string]domain.Category {
	out := make(map[string]domain.Category, len(t.aliases))
	for k, v := range t.aliases {
		out[k] = v
	}
	return out
}

// RuleCount returns the number of detection rules registered for c.
func (t *Taxonomy) RuleCount(c domain.Category) int {
	for _, e := range t.entries {
		if e.Category == c {
			return len(e.Rules)
		}
	}
	if c == domain.CategoryOthers {
		n := 0
		for _, o := range t.others {
			n += len(o.Rules)
		}
		return n
	}
	return 0
}

// AliasCount returns the number of standardization keys mapping to c.
func (t *Taxonomy) AliasCount(c domain.Category) int {
	n := 0
	for _, v := range t.aliases {
		if v == c {
			n++
		}
	}
	return n
}

// Source returns the authored tables the taxonomy was built from.
func (t *Taxonomy) Source() Source {
	return Merge(Source{}, t.source)
}

// Candidates tells which rules can possibly match a text.
type Candidates struct {
	hits map[string]bool
	all  bool
}

// Candidates runs the literal prefilter over lowered, which must already be
// NFKC-normalized and lower-cased.
func (t *Taxonomy) Candidates(lowered string) Candidates {
	if t.prefilter == nil {
		return Candidates{all: true}
	}
	hits := make(map[string]bool)
	for _, i := range t.prefilter.MatchThreadSafe([]byte(lowered)) {
		hits[t.anchors[i]] = true
	}
	return Candidates{hits: hits}
}

// Admits reports whether r needs to be evaluated.
func (c Candidates) Admits(r Rule) bool {
	return c.all || r.anchor == "" || c.hits[r.anchor]
}

// Merge appends ext onto base. Patterns and Others sub-patterns for names already
// present are appended to the existing set; new ones are added at the end.
func Merge(base, ext Source) Source {
	out := Source{}

	for _, ps := range base.Patterns {
		out.Patterns = append(out.Patterns, PatternSet{Category: ps.Category, Rules: append([]string(nil), ps.Rules...)})
	}
	for _, ps := range ext.Patterns {
		if i := patternIndex(out.Patterns, ps.Category); i >= 0 {
			out.Patterns[i].Rules = append(out.Patterns[i].Rules, ps.Rules...)
			continue
		}
		out.Patterns = append(out.Patterns, PatternSet{Category: ps.Category, Rules: append([]string(nil), ps.Rules...)})
	}

	for _, sp := range base.Others {
		out.Others = append(out.Others, SubPatternSet{Name: sp.Name, Rules: append([]string(nil), sp.Rules...)})
	}
	for _, sp := range ext.Others {
		if i := othersIndex(out.Others, sp.Name); i >= 0 {
			out.Others[i].Rules = append(out.Others[i].Rules, sp.Rules...)
			continue
		}
		out.Others = append(out.Others, SubPatternSet{Name: sp.Name, Rules: append([]string(nil), sp.Rules...)})
	}

	for _, as := range base.Aliases {
		out.Aliases = append(out.Aliases, AliasSet{Category: as.Category, Spellings: append([]string(nil), as.Spellings...)})
	}
	for _, as := range ext.Aliases {
		if i := aliasIndex(out.Aliases, as.Category); i >= 0 {
			out.Aliases[i].Spellings = append(out.Aliases[i].Spellings, as.Spellings...)
			continue
		}
		out.Aliases = append(out.Aliases, AliasSet{Category: as.Category, Spellings: append([]string(nil), as.Spellings...)})
	}

	return out
}

func patternIndex(sets []PatternSet, c domain.Category) int {
	for i, s := range sets {
		if s.Category == c {
			return i
		}
	}
	return -1
}

func othersIndex(sets []SubPatternSet, name string) int {
	for i, s := range sets {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

func aliasIndex(sets []AliasSet, c domain.Category) int {
	for i, s := range sets {
		if s.Category == c {
			return i
		}
	}
	return -1
}

// casingVariants returns s verbatim plus its lower, Title and UPPER forms.
func casingVariants(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	variants := []string{s, strings.ToLower(s), titleCase(s), strings.ToUpper(s)}
	out := variants[:0]
	seen := make(map[string]bool, len(variants))
	for _, v := range variants {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// titleCase upper-cases the first letter of every run of letters and lower-cases the rest.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
