// internal/daily/daily.go
//
// Daily Challenge word selection.
// Responsibilities:
//   - Derive the UTC date key (YYYY-MM-DD) for a moment in time.
//   - Map a date to an answer deterministically via HMAC(salt, date).
//   - Act as a game.SecretSource whose session id is the date key, so a
//     player's daily game is recorded once per day.
package daily

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"time"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// DefaultSalt is used when DAILY_SALT is unset.
const DefaultSalt = "local_dev_salt"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Puzzle identifies one day's challenge.
type Puzzle struct {
	Date      string `json:"date"`
	WordIndex int    `json:"wordIndex"`
	Word      string `json:"-"`
}

// Source hands out the answer of the day.
type Source struct {
	answers []string
	salt    string
	now     func() time.Time
}

// NewSource builds a Source over answers (order matters: it fixes the daily sequence).
func NewSource(answers []string, salt string) *Source {
	if salt == "" {
		salt = DefaultSalt
	}
	return &Source{answers: answers, salt: salt, now: time.Now}
}

// WithClock returns a copy of s that reads the time from now.
func (s *Source) WithClock(now func() time.Time) *Source {
	cp := *s
	cp.now = now
	return &cp
}

// Today returns the puzzle for the current UTC date.
func (s *Source) Today() (Puzzle, error) {
	return s.For(s.now())
}

// For returns the puzzle for t's UTC date.
func (s *Source) For(t time.Time) (Puzzle, error) {
	if len(s.answers) == 0 {
		return Puzzle{}, errors.New("daily: no answers loaded")
	}
	idx := WordIndex(t, s.salt, len(s.answers))
	return Puzzle{Date: DateKey(t), WordIndex: idx, Word: s.answers[idx]}, nil
}

// NextSecret implements game.SecretSource.
func (s *Source) NextSecret(ctx context.Context) (game.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return game.Assignment{}, err
	}
	p, err := s.Today()
	if err != nil {
		return game.Assignment{}, err
	}
	return game.Assignment{SessionID: "daily-" + p.Date, Word: p.Word}, nil
}
