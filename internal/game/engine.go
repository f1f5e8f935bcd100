// internal/game/engine.go
//
// Guess evaluation for the Wordle game engine.
// Responsibilities:
//   - Score a guess against a secret using the two-pass algorithm.
//   - Reject mismatched lengths instead of truncating or padding.
//
// Notes:
//   - Letters are compared case-insensitively (both sides are upper-cased).
//   - Letters are counted per rune, so any alphabet works, not only A–Z.
package game

import (
	"strings"
	"unicode"
)

// Evaluate scores guess against secret.
//
// Pass 1:
//   - Mark exact matches as correct and consume them from the secret's letter counts.
//
// Pass 2:
//   - For each remaining guess letter: if the secret still has an unconsumed copy,
//     mark present and consume it; otherwise mark absent.
//
// Pass 1 must finish before pass 2 starts: a secret with k copies of a letter yields at
// most k non-absent marks for it, and positional matches always win those copies.
func Evaluate(guess, secret string) ([]Mark, error) {
	g := []rune(strings.ToUpper(guess))
	s := []rune(strings.ToUpper(secret))
	if len(g) == 0 || len(g) != len(s) {
		return nil, &InvalidLengthError{Guess: len(g), Secret: len(s)}
	}

	res := make([]Mark, len(g))
	remaining := make(map[rune]int, len(s))
	for _, r := range s {
		remaining[r]++
	}

	// First pass: exact matches.
	for i := range g {
		if g[i] == s[i] {
			res[i] = MarkCorrect
			remaining[g[i]]--
		}
	}

	// Second pass: present/absent for the rest.
	for i := range g {
		if res[i] == MarkCorrect {
			continue
		}
		if remaining[g[i]] > 0 {
			res[i] = MarkPresent
			remaining[g[i]]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res, nil
}

// allCorrect returns true if all marks are MarkCorrect.
func allCorrect(m []Mark) bool {
	for _, x := range m {
		if x != MarkCorrect {
			return false
		}
	}
	return len(m) > 0
}

// isLetters checks that a string consists only of letters.
func isLetters(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
