// internal/stats/tracker.go
//
// Tracker aggregates one player's statistics across sessions.
// Responsibilities:
//   - Record each finished session exactly once, keyed by session id.
//   - Keep an up-to-date local copy that is served when the store is down.
//   - Queue outcomes the store missed and replay them once it is back.
package stats

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// Tracker is the statistics aggregator for a single player.
//
// It keeps a local Stats value that is always up to date and mirrors it to a
// Store when one is configured. When the store cannot be reached the local value
// is served instead and the failure is returned as a
// *game.CollaboratorUnavailableError notice. Outcomes the store missed are
// replayed, oldest first, on the next store call.
//
// Each session is recorded at most once, keyed by session id.
type Tracker struct {
	mu       sync.Mutex
	store    Store
	playerID string
	local    Stats
	recorded map[string]struct{}
	pending  []game.Outcome // recorded locally, not yet stored
	log      zerolog.Logger
}

// NewTracker creates a tracker seeded with local. store may be nil.
func NewTracker(store Store, playerID string, local Stats, logger zerolog.Logger) *Tracker {
	return &Tracker{
		store:    store,
		playerID: playerID,
		local:    local,
		recorded: make(map[string]struct{}),
		log:      logger,
	}
}

// Local returns the local value without touching the store.
func (t *Tracker) Local() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.local
}

// Load reads the player's stats from the store, falling back to the local value.
func (t *Tracker) Load(ctx context.Context) (Stats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store == nil {
		return t.local, nil
	}
	if err := t.flush(ctx); err != nil {
		t.log.Warn().Err(err).Str("player", t.playerID).Int("pending", len(t.pending)).Msg("stats replay failed, using local stats")
		return t.local, game.Unavailable("stats store", err)
	}
	s, err := t.store.Load(ctx, t.playerID)
	if err != nil {
		t.log.Warn().Err(err).Str("player", t.playerID).Msg("stats load failed, using local stats")
		return t.local, game.Unavailable("stats store", err)
	}
	t.local = s
	return s, nil
}

// Record applies a finished session's outcome once.
// The bool reports whether this call recorded it (false for repeats).
func (t *Tracker) Record(ctx context.Context, sessionID string, o game.Outcome) (Stats, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, done := t.recorded[sessionID]; done {
		return t.local, false, nil
	}
	t.recorded[sessionID] = struct{}{}
	t.local = t.local.Record(o)
	if t.store == nil {
		return t.local, true, nil
	}
	t.pending = append(t.pending, o)
	if err := t.flush(ctx); err != nil {
		t.log.Warn().Err(err).Str("player", t.playerID).Str("session", sessionID).Int("pending", len(t.pending)).Msg("stats record failed, kept locally")
		return t.local, true, game.Unavailable("stats store", err)
	}
	return t.local, true, nil
}

// Pending is the number of outcomes waiting for the store.
func (t *Tracker) Pending() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.pending)
}

// flush sends pending outcomes to the store in order, stopping at the first
// failure. The local value is replaced only once the queue is empty.
func (t *Tracker) flush(ctx context.Context) error {
	if len(t.pending) == 0 {
		return nil
	}
	var last Stats
	for len(t.pending) > 0 {
		s, err := t.store.Record(ctx, t.playerID, t.pending[0])
		if err != nil {
			return err
		}
		last = s
		t.pending = t.pending[1:]
	}
	t.local = last
	return nil
}
