// internal/stats/store.go
//
// Persistence for player statistics.
//   - MemoryStore: process-local map, used in tests and as a default.
//   - SQLStore: the player_stats table, with anonymous-to-account transfer.
package stats

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// Store persists stats per player.
// Implementations may be backed by memory (MemoryStore), SQL (SQLStore) or a remote service.
type Store interface {
	// Load returns the player's stats; unknown players get zeroed stats.
	Load(ctx context.Context, playerID string) (Stats, error)
	// Record applies one finished game and returns the updated stats.
	Record(ctx context.Context, playerID string, o game.Outcome) (Stats, error)
}

// MemoryStore is an in-memory, map-based Store.
// Concurrency-safe; state is lost when the process restarts.
type MemoryStore struct {
	mu          sync.RWMutex     // guards players
	players     map[string]Stats // keyed by player id
	maxAttempts int
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore(maxAttempts int) *MemoryStore {
	return &MemoryStore{players: make(map[string]Stats), maxAttempts: maxAttempts}
}

func (m *MemoryStore) Load(_ context.Context, playerID string) (Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.players[playerID]; ok {
		return s, nil
	}
	return New(m.maxAttempts), nil
}

func (m *MemoryStore) Record(_ context.Context, playerID string, o game.Outcome) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.players[playerID]
	if !ok {
		s = New(m.maxAttempts)
	}
	s = s.Record(o)
	m.players[playerID] = s
	return s, nil
}

// SQLStore keeps stats in the player_stats table (see internal/db migrations).
type SQLStore struct {
	db          *sql.DB
	maxAttempts int
}

// NewSQLStore wraps an open, migrated database.
func NewSQLStore(db *sql.DB, maxAttempts int) *SQLStore {
	return &SQLStore{db: db, maxAttempts: maxAttempts}
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLStore) Load(ctx context.Context, playerID string) (Stats, error) {
	return s.load(ctx, s.db, playerID)
}

func (s *SQLStore) load(ctx context.Context, q querier, playerID string) (Stats, error) {
	var (
		st   Stats
		dist string
	)
	err := q.QueryRowContext(ctx, `
        SELECT games_played, games_won, current_streak, max_streak, distribution
        FROM player_stats WHERE player_id=?`, playerID,
	).Scan(&st.GamesPlayed, &st.GamesWon, &st.CurrentStreak, &st.MaxStreak, &dist)
	if errors.Is(err, sql.ErrNoRows) {
		return New(s.maxAttempts), nil
	}
	if err != nil {
		return Stats{}, fmt.Errorf("load stats %s: %w", playerID, err)
	}
	st.Distribution = map[int]int{}
	if dist != "" {
		if err := json.Unmarshal([]byte(dist), &st.Distribution); err != nil {
			return Stats{}, fmt.Errorf("decode distribution %s: %w", playerID, err)
		}
	}
	return st, nil
}

// Record reads, updates and writes the row inside one transaction.
func (s *SQLStore) Record(ctx context.Context, playerID string, o game.Outcome) (Stats, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := s.load(ctx, tx, playerID)
	if err != nil {
		return Stats{}, err
	}
	next := cur.Record(o)
	dist, err := json.Marshal(next.Distribution)
	if err != nil {
		return Stats{}, err
	}
	if _, err := tx.ExecContext(ctx, `
        INSERT INTO player_stats (player_id, games_played, games_won, current_streak, max_streak, distribution)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT(player_id) DO UPDATE SET
            games_played=excluded.games_played,
            games_won=excluded.games_won,
            current_streak=excluded.current_streak,
            max_streak=excluded.max_streak,
            distribution=excluded.distribution`,
		playerID, next.GamesPlayed, next.GamesWon, next.CurrentStreak, next.MaxStreak, string(dist),
	); err != nil {
		return Stats{}, fmt.Errorf("save stats %s: %w", playerID, err)
	}
	if err := tx.Commit(); err != nil {
		return Stats{}, err
	}
	return next, nil
}

// Transfer merges the stats of one player id into another (anonymous → account)
// when the target has none yet.
func (s *SQLStore) Transfer(ctx context.Context, fromID, toID string) error {
	if fromID == "" || toID == "" || fromID == toID {
		return nil
	}
	_, err := s.db.ExecContext(ctx, `
        UPDATE player_stats SET player_id=?
        WHERE player_id=? AND NOT EXISTS (SELECT 1 FROM player_stats WHERE player_id=?)`,
		toID, fromID, toID,
	)
	return err
}
