// internal/game/errors.go
//
// Error taxonomy for the game engine.
// Responsibilities:
//   - Sentinel errors for errors.Is, with typed wrappers carrying detail.
//   - Short user-facing messages (Reason) and stable API codes (Kind).
package game

import (
	"errors"
	"fmt"
)

// Sentinel errors, matched with errors.Is.
var (
	// ErrInvalidLength means guess and secret lengths differ. Callers that wire
	// Session correctly never see it.
	ErrInvalidLength = errors.New("invalid length")

	// ErrIncompleteGuess means the player submitted fewer letters than the secret has.
	ErrIncompleteGuess = errors.New("incomplete guess")

	// ErrInvalidWord means the word is not in the accepted vocabulary.
	ErrInvalidWord = errors.New("invalid word")

	// ErrCollaboratorUnavailable means an external collaborator (secret source,
	// word check or stats store) could not be reached and a local fallback was used.
	ErrCollaboratorUnavailable = errors.New("collaborator unavailable")

	// ErrGameOver means the session already reached won or lost.
	ErrGameOver = errors.New("game finished")
)

// InvalidLengthError wraps ErrInvalidLength with the offending lengths.
type InvalidLengthError struct {
	Guess  int
	Secret int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid length: guess has %d letters, secret has %d", e.Guess, e.Secret)
}

func (e *InvalidLengthError) Unwrap() error { return ErrInvalidLength }

// IncompleteGuessError wraps ErrIncompleteGuess.
type IncompleteGuessError struct {
	Have int
	Want int
}

func (e *IncompleteGuessError) Error() string {
	return fmt.Sprintf("incomplete guess: have %d letters, want %d", e.Have, e.Want)
}

func (e *IncompleteGuessError) Unwrap() error { return ErrIncompleteGuess }

// InvalidWordError wraps ErrInvalidWord.
type InvalidWordError struct {
	Word string
}

func (e *InvalidWordError) Error() string {
	return fmt.Sprintf("invalid word: %q", e.Word)
}

func (e *InvalidWordError) Unwrap() error { return ErrInvalidWord }

// CollaboratorUnavailableError reports a failed external call that was recovered
// locally. Unwrap exposes the cause; errors.Is also matches ErrCollaboratorUnavailable.
type CollaboratorUnavailableError struct {
	Collaborator string // "secret source", "word check", "stats store"
	Err          error
}

func (e *CollaboratorUnavailableError) Error() string {
	if e.Err == nil {
		return e.Collaborator + " unavailable"
	}
	return e.Collaborator + " unavailable: " + e.Err.Error()
}

func (e *CollaboratorUnavailableError) Unwrap() error { return e.Err }

func (e *CollaboratorUnavailableError) Is(target error) bool {
	return target == ErrCollaboratorUnavailable
}

// Unavailable wraps err as a CollaboratorUnavailableError.
func Unavailable(collaborator string, err error) error {
	return &CollaboratorUnavailableError{Collaborator: collaborator, Err: err}
}

// Reason returns the short user-facing message for a game error.
func Reason(err error) string {
	var ue *CollaboratorUnavailableError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &ue):
		return "Could not reach the " + ue.Collaborator + ". Playing offline."
	case errors.Is(err, ErrIncompleteGuess):
		var ie *IncompleteGuessError
		if errors.As(err, &ie) {
			return fmt.Sprintf("Word must be %d letters long!", ie.Want)
		}
		return "Not enough letters!"
	case errors.Is(err, ErrInvalidWord):
		return "Not a valid word!"
	case errors.Is(err, ErrGameOver):
		return "Game is already completed."
	case errors.Is(err, ErrInvalidLength):
		return "Guess and secret lengths differ."
	default:
		return err.Error()
	}
}

// Kind returns a stable machine-readable code for err, used in API payloads.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrIncompleteGuess):
		return "incomplete_guess"
	case errors.Is(err, ErrInvalidWord):
		return "invalid_word"
	case errors.Is(err, ErrGameOver):
		return "game_over"
	case errors.Is(err, ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, ErrCollaboratorUnavailable):
		return "collaborator_unavailable"
	default:
		return "unknown"
	}
}
