// internal/game/hints.go
//
// Keyboard hints: the best mark seen so far for each guessed letter.
// A letter's hint only ever improves (absent < present < correct).
package game

import (
	"encoding/json"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Hints maps a letter to the best mark observed for it so far.
type Hints map[rune]Mark

// Merge folds one record into h. A letter's hint only ever improves.
func (h Hints) Merge(rec GuessRecord) {
	for i, r := range []rune(rec.Guess) {
		if i >= len(rec.Marks) {
			break
		}
		if m := rec.Marks[i]; m.Better(h[r]) {
			h[r] = m
		}
	}
}

// ComputeHints rebuilds hints from a full history.
func ComputeHints(history []GuessRecord) Hints {
	return lo.Reduce(history, func(h Hints, rec GuessRecord, _ int) Hints {
		h.Merge(rec)
		return h
	}, Hints{})
}

// Letters returns the hinted letters in alphabetical order.
func (h Hints) Letters() []rune {
	letters := lo.Keys(map[rune]Mark(h))
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	return letters
}

// Clone returns an independent copy.
func (h Hints) Clone() Hints {
	out := make(Hints, len(h))
	for r, m := range h {
		out[r] = m
	}
	return out
}

// MarshalJSON encodes letters as one-character string keys.
func (h Hints) MarshalJSON() ([]byte, error) {
	m := lo.MapKeys(map[rune]Mark(h), func(_ Mark, r rune) string { return string(r) })
	return json.Marshal(m)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (h *Hints) UnmarshalJSON(b []byte) error {
	var m map[string]Mark
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	out := make(Hints, len(m))
	for k, v := range m {
		r, size := utf8.DecodeRuneInString(k)
		if size == 0 || size != len(k) {
			return fmt.Errorf("hints: key %q is not a single letter", k)
		}
		out[r] = v
	}
	*h = out
	return nil
}
