// internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from files or fall back to the embedded defaults.
//   - Maintain sets for quick lookups (answers only, answers ∪ guesses).
//   - Serve as the game's Dictionary and as a random SecretSource.
//
// Word Lists:
//   - "answers": canonical solutions.
//   - "allowed": valid guesses (always includes answers).
//
// Loading behavior (Load):
//  1. If both files are set, load answers from the first and allowed guesses from the second.
//  2. If only the allowed file is set, use it for both answers and allowed guesses.
//  3. If only the answers file is set, use it for answers; allowed falls back to the embedded list.
//  4. If neither is set, use the embedded lists from the assets package.
//
// Constraints:
//   - Words must be Length alphabetic letters; anything else is dropped.
//   - Lists are normalised to upper case.
package words

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"

	"github.com/samber/lo"

	"github.com/haydenChuu/wordle-clone/assets"
	"github.com/haydenChuu/wordle-clone/internal/game"
)

// Length is the word length of every list entry.
const Length = 5

// Fallback is served by Random when no answers are loaded.
const Fallback = "CRANE"

// Files names optional on-disk overrides for the embedded lists.
type Files struct {
	Answers string // WORDS_ANSWERS_FILE
	Allowed string // WORDS_ALLOWED_FILE
}

// List is an immutable pair of answer and allowed-guess sets. Safe for concurrent use.
type List struct {
	answers    []string
	answersSet map[string]struct{}
	allowedSet map[string]struct{} // answers ∪ guesses
}

// Load builds a List following the rules in the package comment.
func Load(f Files) (*List, error) {
	var ansList, allowList []string
	var err error

	switch {
	case f.Answers != "" && f.Allowed != "":
		if ansList, err = readWordFile(f.Answers); err != nil {
			return nil, err
		}
		if allowList, err = readWordFile(f.Allowed); err != nil {
			return nil, err
		}
	case f.Allowed != "":
		if allowList, err = readWordFile(f.Allowed); err != nil {
			return nil, err
		}
		ansList = allowList
	case f.Answers != "":
		if ansList, err = readWordFile(f.Answers); err != nil {
			return nil, err
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, err
		}
	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}
	return New(ansList, allowList)
}

// New builds a List from raw word slices. Invalid entries are dropped and the
// result must contain at least one answer.
func New(answers, allowed []string) (*List, error) {
	ans := normalize(answers)
	if len(ans) == 0 {
		return nil, errors.New("words: answers list is empty")
	}
	l := &List{
		answers:    ans,
		answersSet: toSet(ans),
		allowedSet: toSet(ans),
	}
	for _, w := range normalize(allowed) {
		l.allowedSet[w] = struct{}{}
	}
	return l, nil
}

// readWordFile loads one word per line from a file.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return assets.ReadLines(f)
}

// normalize upper-cases, trims, dedupes and keeps only valid words.
func normalize(list []string) []string {
	return lo.Uniq(lo.FilterMap(list, func(w string, _ int) (string, bool) {
		w = strings.ToUpper(strings.TrimSpace(w))
		return w, len(w) == Length && isAlpha(w)
	}))
}

// toSet converts a list of strings into a lookup set.
func toSet(list []string) map[string]struct{} {
	return lo.SliceToMap(list, func(w string) (string, struct{}) { return w, struct{}{} })
}

// isAlpha reports whether s is all upper-case ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// Random returns a cryptographically random answer.
func (l *List) Random() string {
	if len(l.answers) == 0 {
		return Fallback
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return l.answers[0]
	}
	return l.answers[n.Int64()]
}

// NextSecret implements game.SecretSource with a random answer. It never fails.
func (l *List) NextSecret(ctx context.Context) (game.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return game.Assignment{}, err
	}
	return game.Assignment{Word: l.Random()}, nil
}

// Accepts implements game.Dictionary (answers ∪ guesses).
func (l *List) Accepts(w string) bool {
	_, ok := l.allowedSet[strings.ToUpper(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func (l *List) IsAnswer(w string) bool {
	_, ok := l.answersSet[strings.ToUpper(w)]
	return ok
}

// Answers returns a copy of the answer list in load order.
func (l *List) Answers() []string {
	return append([]string(nil), l.answers...)
}

// Stats returns counts of loaded words: (answers, allowed).
func (l *List) Stats() (answersCount int, allowedCount int) {
	return len(l.answers), len(l.allowedSet)
}
