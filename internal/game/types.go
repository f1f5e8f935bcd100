// internal/game/types.go
//
// Core type definitions for the Wordle game engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Status: lifecycle state of a Session (in_progress/won/lost).
//   - GuessRecord: an evaluated guess kept in a session's history.
//   - Snapshot: everything a renderer needs to redraw a session.
package game

import "strings"

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the secret at this exact position.
//   - "present": letter is in the secret at another position.
//   - "absent":  letter contributes no further matches.
type Mark string

const (
	MarkCorrect Mark = "correct"
	MarkPresent Mark = "present"
	MarkAbsent  Mark = "absent"
)

// rank orders marks for keyboard hints: correct > present > absent.
// Unknown marks rank below absent.
func (m Mark) rank() int {
	switch m {
	case MarkCorrect:
		return 3
	case MarkPresent:
		return 2
	case MarkAbsent:
		return 1
	default:
		return 0
	}
}

// Better reports whether m outranks other.
func (m Mark) Better(other Mark) bool { return m.rank() > other.rank() }

// Status is the coarse lifecycle state of a Session.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
	StatusLost       Status = "lost"
)

// Terminal reports whether no further guesses are accepted.
func (s Status) Terminal() bool { return s == StatusWon || s == StatusLost }

// GuessRecord pairs a submitted guess with its feedback.
type GuessRecord struct {
	Guess string `json:"guess"` // upper-cased
	Marks []Mark `json:"marks"` // one per letter, guess order
}

// Solved reports whether every mark is correct.
func (r GuessRecord) Solved() bool {
	if len(r.Marks) == 0 {
		return false
	}
	for _, m := range r.Marks {
		if m != MarkCorrect {
			return false
		}
	}
	return true
}

func (r GuessRecord) clone() GuessRecord {
	marks := make([]Mark, len(r.Marks))
	copy(marks, r.Marks)
	return GuessRecord{Guess: r.Guess, Marks: marks}
}

// Outcome is what the statistics aggregator consumes for a finished session.
type Outcome struct {
	Won      bool `json:"won"`
	Attempts int  `json:"attempts"`
}

// Snapshot is a read-only copy of a session's full state.
type Snapshot struct {
	ID          string        `json:"id"`
	WordLength  int           `json:"wordLength"`
	MaxAttempts int           `json:"maxAttempts"`
	History     []GuessRecord `json:"history"`
	Current     string        `json:"current"`
	Status      Status        `json:"status"`
	Hints       Hints         `json:"hints"`
	Attempts    int           `json:"attempts"`
	Remaining   int           `json:"remaining"`
	Secret      string        `json:"secret,omitempty"` // only once terminal
}

// Secret is the immutable, upper-cased target word of a session.
type Secret struct {
	word string
}

// NewSecret validates and normalises a target word.
// The word must be non-empty and made of letters only.
func NewSecret(word string) (Secret, error) {
	w := strings.ToUpper(strings.TrimSpace(word))
	if w == "" {
		return Secret{}, &InvalidLengthError{Guess: 0, Secret: 0}
	}
	if !isLetters(w) {
		return Secret{}, &InvalidWordError{Word: w}
	}
	return Secret{word: w}, nil
}

// MustSecret is NewSecret for literals known to be valid.
func MustSecret(word string) Secret {
	s, err := NewSecret(word)
	if err != nil {
		panic(err)
	}
	return s
}

func (s Secret) String() string { return s.word }

// Len returns the number of letters (runes) in the secret.
func (s Secret) Len() int { return len([]rune(s.word)) }

// IsZero reports whether s was never initialised.
func (s Secret) IsZero() bool { return s.word == "" }
