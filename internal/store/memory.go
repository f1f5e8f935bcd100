// internal/store/memory.go
//
// In-memory store for live game sessions served over HTTP.
//
// Characteristics:
//   - Entries are keyed by game id; each wraps a *play.Game, which serialises
//     its own updates, so concurrent requests for one game are safe.
//   - Concurrency-safe via RWMutex (concurrent lookups, exclusive writes).
//   - State is lost when the process restarts; finished games live on in the
//     games and player_stats tables.
//   - Idle entries can be swept to bound memory.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/haydenChuu/wordle-clone/internal/play"
)

// ErrNotFound is returned by Get for unknown or swept ids.
var ErrNotFound = errors.New("game not found")

// Entry is one live game and who it belongs to.
type Entry struct {
	ID       string
	Game     *play.Game
	PlayerID string // user id or anonymous id at creation time
	Mode     string // "random" | "daily"
	Date     string // daily date key, empty for random games
	Started  time.Time

	lastSeen time.Time
}

// Store defines the persistence interface for live games.
type Store interface {
	Save(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Delete(ctx context.Context, id string) error
}

// Memory is a map-backed Store.
type Memory struct {
	mu    sync.RWMutex
	games map[string]*Entry
	now   func() time.Time
}

// NewMemoryStore constructs an empty in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{games: make(map[string]*Entry), now: time.Now}
}

// Save adds or replaces e.
func (m *Memory) Save(_ context.Context, e *Entry) error {
	if e == nil || e.ID == "" {
		return errors.New("store: entry without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e.lastSeen = m.now()
	m.games[e.ID] = e
	return nil
}

// Get looks up an entry and marks it as recently used.
func (m *Memory) Get(_ context.Context, id string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.games[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e, nil
}

// Delete removes id; missing ids are not an error.
func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, id)
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}

// Sweep drops entries idle for longer than maxIdle and returns how many went.
func (m *Memory) Sweep(maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, e := range m.games {
		if e.lastSeen.Before(cutoff) {
			delete(m.games, id)
			n++
		}
	}
	return n
}
