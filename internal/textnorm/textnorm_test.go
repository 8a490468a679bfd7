package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercase", "SLEEP", "sleep"},
		{"vietnamese diacritics", "ngủ", "ngu"},
		{"vietnamese phrase", "mất ngủ", "mat_ngu"},
		{"whitespace collapse", "deep   sleep", "deep_sleep"},
		{"hyphen collapse", "self-care", "self_care"},
		{"mixed separators", "a - b", "a_b"},
		{"leading trailing space", " sleep ", "_sleep_"},
		{"punctuation kept", "can't", "can't"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"", "Mất Ngủ", "deep - sleep", "  hello world  ", "tại sao?", "self-care_plan"}
	for _, s := range inputs {
		once := Normalize(s)
		assert.Equal(t, once, Normalize(once), "normalize(%q) not idempotent", s)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"simple", "deep sleep", []string{"deep", "sleep"}},
		{"punctuation split", "can't sleep!", []string{"can", "t", "sleep"}},
		{"diacritics stripped", "ngủ ngon", []string{"ngu", "ngon"}},
		{"hyphen split", "self-care", []string{"self", "care"}},
		{"duplicates dropped", "sleep sleep sleep", []string{"sleep"}},
		{"underscore kept", "sleep_hygiene", []string{"sleep_hygiene"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			if tt.want == nil {
				assert.Zero(t, got.Len())
				return
			}
			assert.Equal(t, tt.want, got.Tokens())
		})
	}
}

func TestTokenSetOrder(t *testing.T) {
	s := NewTokenSet()
	s.Add("b")
	s.Add("a")
	s.Add("b")
	s.Add("c")
	assert.Equal(t, []string{"b", "a", "c"}, s.Tokens())
	assert.Equal(t, "b a c", s.Joined())
}

func TestJaccard(t *testing.T) {
	a := Tokenize("deep sleep hygiene")
	b := Tokenize("sleep hygiene tips")
	empty := NewTokenSet()

	// 2 shared out of 4 total distinct tokens.
	assert.InDelta(t, 0.5, Jaccard(a, b), 1e-9)

	// Identity and bounds.
	assert.Equal(t, 1.0, Jaccard(a, a))
	assert.Equal(t, 0.0, Jaccard(a, empty))
	assert.Equal(t, 0.0, Jaccard(empty, a))
	assert.Equal(t, 0.0, Jaccard(empty, empty))

	score := Jaccard(a, b)
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	// Symmetry.
	assert.Equal(t, Jaccard(a, b), Jaccard(b, a))
}

func TestJaccardDisjoint(t *testing.T) {
	a := Tokenize("alpha beta")
	b := Tokenize("gamma delta")
	assert.Equal(t, 0.0, Jaccard(a, b))
}
