// Package textnorm provides text canonicalization and lexical similarity
// primitives for bilingual (English/Vietnamese) keyword matching.
// Diacritics are stripped from both sides of every comparison, so "ngủ"
// and "ngu" canonicalize to the same form.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD and removes combining diacritical marks.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Normalize canonicalizes free text for comparison: lower-case, strip
// diacritics, collapse runs of whitespace and hyphens to a single
// underscore. Empty input normalizes to the empty string.
//
// Normalize is idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = foldASCII(text)

	var b strings.Builder
	b.Grow(len(text))
	sep := false
	for _, r := range text {
		if unicode.IsSpace(r) || r == '-' {
			sep = true
			continue
		}
		if sep {
			b.WriteByte('_')
			sep = false
		}
		b.WriteRune(r)
	}
	if sep {
		b.WriteByte('_')
	}
	return b.String()
}

// foldASCII lower-cases and strips combining marks.
func foldASCII(text string) string {
	text = strings.ToLower(text)
	if out, _, err := transform.String(stripMarks, text); err == nil {
		return out
	}
	return text
}

// TokenSet is an insertion-ordered set of tokens. Order matters for the
// joined-string containment check in entry resolution.
type TokenSet struct {
	order []string
	seen  map[string]struct{}
}

// NewTokenSet creates an empty token set.
func NewTokenSet() *TokenSet {
	return &TokenSet{seen: make(map[string]struct{})}
}

// Add inserts a token, ignoring duplicates and empty strings.
func (s *TokenSet) Add(token string) {
	if token == "" {
		return
	}
	if _, ok := s.seen[token]; ok {
		return
	}
	s.seen[token] = struct{}{}
	s.order = append(s.order, token)
}

// Contains reports whether the set holds the token.
func (s *TokenSet) Contains(token string) bool {
	if s == nil {
		return false
	}
	_, ok := s.seen[token]
	return ok
}

// Len returns the number of tokens.
func (s *TokenSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.order)
}

// Tokens returns the tokens in insertion order.
func (s *TokenSet) Tokens() []string {
	if s == nil {
		return nil
	}
	return s.order
}

// Joined returns the tokens joined by a single space, in insertion order.
func (s *TokenSet) Joined() string {
	if s == nil {
		return ""
	}
	return strings.Join(s.order, " ")
}

// Tokenize splits text into a set of lexical tokens: lower-case,
// diacritic-strip, replace anything outside [a-z0-9_\s-] with a space,
// collapse whitespace and hyphens, split on spaces.
func Tokenize(text string) *TokenSet {
	text = foldASCII(text)

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			// Whitespace and hyphens collapse to the split character,
			// everything else is punctuation treated the same way.
			b.WriteByte(' ')
		}
	}

	set := NewTokenSet()
	for _, tok := range strings.Fields(b.String()) {
		set.Add(tok)
	}
	return set
}

// Jaccard computes the Jaccard similarity of two token sets:
// |intersection| / |union|, in [0,1]. Returns 0 if either set is empty.
func Jaccard(a, b *TokenSet) float64 {
	if a.Len() == 0 || b.Len() == 0 {
		return 0
	}

	inter := 0
	for _, tok := range a.Tokens() {
		if b.Contains(tok) {
			inter++
		}
	}

	union := a.Len() + b.Len() - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}
