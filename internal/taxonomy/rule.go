package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const boundaryToken = `\b`

// regexMeta are the characters that end a rule's literal prefix.
const regexMeta = `\.+*?()|[]{}^$`

// Rule is a single compiled detection pattern.
//
// Rules are written as `\bword\b`. A leading or trailing \b is checked against
// Unicode word characters (letters, digits and underscore of any script) rather
// than the ASCII-only \b of package regexp, so CJK rules behave like the
// authored notation suggests.
type Rule struct {
	source     string
	re         *regexp.Regexp
	exact      *regexp.Regexp
	leftBound  bool
	rightBound bool
	anchor     string
}

// CompileRule parses a rule written in `\bword\b` notation. Matching is case-insensitive.
func CompileRule(source string) (Rule, error) {
	core := strings.TrimSpace(source)
	r := Rule{source: source}

	if strings.HasPrefix(core, boundaryToken) {
		r.leftBound = true
		core = core[len(boundaryToken):]
	}
	if strings.HasSuffix(core, boundaryToken) && !strings.HasSuffix(core, `\`+boundaryToken) {
		r.rightBound = true
		core = core[:len(core)-len(boundaryToken)]
	}
	if core == "" {
		return Rule{}, fmt.Errorf("rule %q: empty pattern", source)
	}

	re, err := regexp.Compile("(?i)" + core)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %q: %w", source, err)
	}
	r.re = re
	if r.rightBound {
		exact, err := regexp.Compile("(?i)^(?:" + core + ")$")
		if err != nil {
			return Rule{}, fmt.Errorf("rule %q: %w", source, err)
		}
		r.exact = exact
	}
	r.anchor = literalPrefix(core)
	return r, nil
}

// MustCompileRule is like CompileRule but panics on error.
func MustCompileRule(source string) Rule {
	r, err := CompileRule(source)
	if err != nil {
		panic(err)
	}
	return r
}

// Source returns the rule as authored.
func (r Rule) Source() string {
	return r.source
}

// Anchor returns the lower-cased literal every match of the rule starts with.
// It is empty when the rule starts with a regex construct.
func (r Rule) Anchor() string {
	return r.anchor
}

// MatchString reports whether the rule matches anywhere in s.
func (r Rule) MatchString(s string) bool {
	_, ok := r.next(s, 0)
	return ok
}

// FindAll returns every non-overlapping match in s, left to right.
func (r Rule) FindAll(s string) []string {
	var out []string
	pos := 0
	for pos <= len(s) {
		loc, ok := r.next(s, pos)
		if !ok {
			break
		}
		out = append(out, s[loc[0]:loc[1]])
		if loc[1] > loc[0] {
			pos = loc[1]
		} else {
			pos = advance(s, loc[1])
		}
	}
	return out
}

// next finds the leftmost match at or after pos that satisfies the boundary checks.
// When the preferred match at a start fails the right boundary, every other end at a
// word boundary is tried, longest first. A start with no valid end resumes the scan
// one rune later.
func (r Rule) next(s string, pos int) ([]int, bool) {
	for pos <= len(s) {
		loc := r.re.FindStringIndex(s[pos:])
		if loc == nil {
			return nil, false
		}
		start, end := pos+loc[0], pos+loc[1]
		if !r.leftBound || isBoundary(s, start) {
			if !r.rightBound || isBoundary(s, end) {
				return []int{start, end}, true
			}
			if end, ok := r.boundedEnd(s, start); ok {
				return []int{start, end}, true
			}
		}
		pos = advance(s, start)
	}
	return nil, false
}

// boundedEnd returns the longest end e at a word boundary such that s[start:e] is
// a whole match of the rule.
func (r Rule) boundedEnd(s string, start int) (int, bool) {
	for e := len(s); e >= start; {
		if isBoundary(s, e) && r.exact.MatchString(s[start:e]) {
			return e, true
		}
		if e == start {
			break
		}
		_, size := utf8.DecodeLastRuneInString(s[start:e])
		e -= size
	}
	return 0, false
}

func advance(s string, i int) int {
	if i >= len(s) {
		return len(s) + 1
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return i + size
}

// isBoundary reports whether a word boundary sits at byte offset i of s.
func isBoundary(s string, i int) bool {
	before := false
	if i > 0 {
		r, _ := utf8.DecodeLastRuneInString(s[:i])
		before = isWordRune(r)
	}
	after := false
	if i < len(s) {
		r, _ := utf8.DecodeRuneInString(s[i:])
		after = isWordRune(r)
	}
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsNumber(r)
}

// literalPrefix returns the leading run of core that contains no regex syntax.
// A quantifier after the last literal character makes that character optional,
// so it is dropped as well.
func literalPrefix(core string) string {
	if strings.Contains(core, "|") {
		return ""
	}
	end := strings.IndexAny(core, regexMeta)
	if end < 0 {
		return strings.ToLower(core)
	}
	prefix := core[:end]
	if strings.ContainsRune("*?{", rune(core[end])) && prefix != "" {
		_, size := utf8.DecodeLastRuneInString(prefix)
		prefix = prefix[:len(prefix)-size]
	}
	return strings.ToLower(prefix)
}
