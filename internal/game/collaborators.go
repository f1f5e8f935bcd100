// internal/game/collaborators.go
//
// Interfaces for the services a game consults outside the engine.
//   - Dictionary: local accepted-word check, consulted by Session on submit.
//   - WordChecker: a word check that may fail (e.g. a remote call). Callers
//     fall back to the local Dictionary when it is unreachable.
//   - SecretSource: hands out the secret for a new session.
package game

import "context"

// Dictionary is the accepted-word collaborator consulted before a guess is scored.
// Words are passed upper-cased.
type Dictionary interface {
	Accepts(word string) bool
}

// DictionaryFunc adapts a function to Dictionary.
type DictionaryFunc func(word string) bool

func (f DictionaryFunc) Accepts(word string) bool { return f(word) }

// WordChecker is a word-validity check that can be unreachable.
// A non-nil error means no verdict; ok is meaningful only when err is nil.
type WordChecker interface {
	CheckWord(ctx context.Context, word string) (ok bool, err error)
}

// WordCheckerFunc adapts a function to WordChecker.
type WordCheckerFunc func(ctx context.Context, word string) (bool, error)

func (f WordCheckerFunc) CheckWord(ctx context.Context, word string) (bool, error) {
	return f(ctx, word)
}

// Assignment is a secret handed out by a SecretSource.
type Assignment struct {
	SessionID string // opaque id for remote mirroring; empty when not mirrored
	Word      string
}

// SecretSource supplies the secret for a new session.
type SecretSource interface {
	NextSecret(ctx context.Context) (Assignment, error)
}

// SecretSourceFunc adapts a function to SecretSource.
type SecretSourceFunc func(ctx context.Context) (Assignment, error)

func (f SecretSourceFunc) NextSecret(ctx context.Context) (Assignment, error) { return f(ctx) }
