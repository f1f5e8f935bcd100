package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	C = MarkCorrect
	P = MarkPresent
	A = MarkAbsent
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		secret string
		want   []Mark
	}{
		{"all correct", "CRANE", "CRANE", []Mark{C, C, C, C, C}},
		{"trace vs crane", "TRACE", "CRANE", []Mark{A, C, C, P, C}},
		{"all absent", "ZZZZZ", "APPLE", []Mark{A, A, A, A, A}},
		{"lower case input", "trace", "crane", []Mark{A, C, C, P, C}},
		{"excess duplicate is absent", "ALLEY", "APPLE", []Mark{C, P, A, P, A}},
		{"second copy of a single letter is absent", "SPEED", "ABIDE", []Mark{A, A, P, A, P}},
		{"positional matches take every copy", "LEVEL", "HOTEL", []Mark{A, A, A, C, C}},
		{"llama vs allow", "LLAMA", "ALLOW", []Mark{P, C, P, A, A}},
		{"all present anagram", "PLEAP", "APPLE", []Mark{P, P, P, P, P}},
		{"non ascii letters", "ÉCOLE", "ÉLOGE", []Mark{C, A, C, P, C}},
		{"other lengths", "AB", "BA", []Mark{P, P}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(tt.guess, tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateInvalidLength(t *testing.T) {
	for _, tc := range []struct{ guess, secret string }{
		{"CRAN", "CRANE"},
		{"CRANES", "CRANE"},
		{"", ""},
	} {
		_, err := Evaluate(tc.guess, tc.secret)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidLength))
		var le *InvalidLengthError
		require.ErrorAs(t, err, &le)
		assert.Equal(t, len(tc.guess), le.Guess)
		assert.Equal(t, len(tc.secret), le.Secret)
	}
}

func TestEvaluateDeterministic(t *testing.T) {
	first, err := Evaluate("EERIE", "GEESE")
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Evaluate("EERIE", "GEESE")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestEvaluateDuplicateCap(t *testing.T) {
	words := []string{"ALLOW", "LLAMA", "EERIE", "GEESE", "SPEED", "ABIDE", "MAMMA", "APPLE", "PAPER", "LEVEL"}
	for _, secret := range words {
		for _, guess := range words {
			marks, err := Evaluate(guess, secret)
			require.NoError(t, err)

			inSecret := map[rune]int{}
			for _, r := range secret {
				inSecret[r]++
			}
			hits := map[rune]int{}
			for i, r := range guess {
				if marks[i] != MarkAbsent {
					hits[r]++
				}
				if guess[i] == secret[i] {
					assert.Equal(t, MarkCorrect, marks[i], "%s vs %s at %d", guess, secret, i)
				}
			}
			for r, n := range hits {
				assert.LessOrEqual(t, n, inSecret[r], "%s vs %s letter %c", guess, secret, r)
			}
		}
	}
}

func TestEvaluateSelfIsAllCorrect(t *testing.T) {
	for _, w := range []string{"CRANE", "MAMMA", "A", "LEVELS"} {
		marks, err := Evaluate(w, w)
		require.NoError(t, err)
		assert.True(t, allCorrect(marks), w)
	}
}
