// internal/game/session.go
//
// Session is the state machine for a single game.
// Responsibilities:
//   - Hold the secret, the guess history and the partial guess being typed.
//   - Validate and apply guesses (length, dictionary), delegating scoring to Evaluate.
//   - Track state transitions: in_progress → won/lost.
//   - Keep keyboard hints in step with the history.
//
// A Session is not safe for concurrent use; callers serialise operations on it.
package game

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const defaultMaxAttempts = 6

// Option configures a Session.
type Option func(*Session)

// WithMaxAttempts overrides the number of guesses allowed (default 6).
// Values below 1 are ignored.
func WithMaxAttempts(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithDictionary sets the word check used by submissions. Without one every word is accepted.
func WithDictionary(d Dictionary) Option {
	return func(s *Session) { s.dict = d }
}

// WithID sets the session identifier (default: random UUID).
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// Session holds the state of a single game.
type Session struct {
	id          string
	secret      Secret
	maxAttempts int
	dict        Dictionary

	history []GuessRecord
	current []rune
	status  Status
	hints   Hints
}

// New constructs a session for secret.
func New(secret Secret, opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		maxAttempts: defaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset(secret)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() Status { return s.status }

// WordLength is the number of letters every guess must have.
func (s *Session) WordLength() int { return s.secret.Len() }

// MaxAttempts is the number of guesses allowed.
func (s *Session) MaxAttempts() int { return s.maxAttempts }

// Attempts is the number of guesses recorded so far.
func (s *Session) Attempts() int { return len(s.history) }

// Current returns the partial guess being typed.
func (s *Session) Current() string { return string(s.current) }

// AppendLetter adds one letter to the partial guess.
// It reports false and changes nothing when the game is over, the guess is full
// or r is not a letter.
func (s *Session) AppendLetter(r rune) bool {
	if s.status.Terminal() || len(s.current) >= s.WordLength() || !unicode.IsLetter(r) {
		return false
	}
	s.current = append(s.current, unicode.ToUpper(r))
	return true
}

// DeleteLetter removes the last letter of the partial guess.
// It reports false when the game is over or there is nothing to delete.
func (s *Session) DeleteLetter() bool {
	if s.status.Terminal() || len(s.current) == 0 {
		return false
	}
	s.current = s.current[:len(s.current)-1]
	return true
}

// SubmitGuess scores the partial guess.
//
// Validation rules (state is untouched on failure):
//   - Session must be in progress (ErrGameOver).
//   - Partial guess must have exactly WordLength letters (IncompleteGuessError).
//   - The dictionary, if any, must accept it (InvalidWordError).
//
// State transitions:
//   - All marks correct → won.
//   - Else history reaches MaxAttempts → lost.
func (s *Session) SubmitGuess() (GuessRecord, Status, error) {
	return s.submit(string(s.current))
}

// SubmitWord is SubmitGuess for a whole word supplied at once. The partial guess
// is left alone on failure and cleared on success.
func (s *Session) SubmitWord(word string) (GuessRecord, Status, error) {
	return s.submit(strings.TrimSpace(word))
}

func (s *Session) submit(word string) (GuessRecord, Status, error) {
	if s.status.Terminal() {
		return GuessRecord{}, s.status, ErrGameOver
	}
	word = strings.ToUpper(word)
	if n := len([]rune(word)); n != s.WordLength() {
		return GuessRecord{}, s.status, &IncompleteGuessError{Have: n, Want: s.WordLength()}
	}
	if !isLetters(word) || (s.dict != nil && !s.dict.Accepts(word)) {
		return GuessRecord{}, s.status, &InvalidWordError{Word: word}
	}
	marks, err := Evaluate(word, s.secret.String())
	if err != nil {
		return GuessRecord{}, s.status, err
	}

	rec := GuessRecord{Guess: word, Marks: marks}
	s.history = append(s.history, rec)
	s.current = s.current[:0]
	s.hints.Merge(rec)
	if allCorrect(marks) {
		s.status = StatusWon
	} else if len(s.history) >= s.maxAttempts {
		s.status = StatusLost
	}
	return rec.clone(), s.status, nil
}

// Reset discards all progress and starts over with secret. ID and options are kept.
func (s *Session) Reset(secret Secret) {
	s.secret = secret
	s.history = nil
	s.current = nil
	s.status = StatusInProgress
	s.hints = Hints{}
}

// Outcome reports the result once the session is terminal.
func (s *Session) Outcome() (Outcome, bool) {
	if !s.status.Terminal() {
		return Outcome{}, false
	}
	return Outcome{Won: s.status == StatusWon, Attempts: len(s.history)}, true
}

// Hints returns a copy of the keyboard hints.
func (s *Session) Hints() Hints { return s.hints.Clone() }

// Snapshot returns a deep copy of everything a renderer needs.
// The secret is included only once the game is over.
func (s *Session) Snapshot() Snapshot {
	history := make([]GuessRecord, len(s.history))
	for i, rec := range s.history {
		history[i] = rec.clone()
	}
	snap := Snapshot{
		ID:          s.id,
		WordLength:  s.WordLength(),
		MaxAttempts: s.maxAttempts,
		History:     history,
		Current:     string(s.current),
		Status:      s.status,
		Hints:       s.hints.Clone(),
		Attempts:    len(s.history),
		Remaining:   s.maxAttempts - len(s.history),
	}
	if s.status.Terminal() {
		snap.Secret = s.secret.String()
	}
	return snap
}
