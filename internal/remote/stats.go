// internal/remote/stats.go
//
// Player statistics read from the word service (GET /api/stats/), mapped onto
// stats.Stats and exposed as a stats.Store.
package remote

import (
	"context"
	"strconv"

	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/stats"
)

type statsRes struct {
	GamesPlayed       int            `json:"games_played"`
	GamesWon          int            `json:"games_won"`
	CurrentStreak     int            `json:"current_streak"`
	MaxStreak         int            `json:"max_streak"`
	GuessDistribution map[string]int `json:"guess_distribution"`
	WinRate           int            `json:"win_rate"`
}

// Stats fetches the caller's statistics. Buckets the service omits are zero.
func (c *Client) Stats(ctx context.Context, maxAttempts int) (stats.Stats, error) {
	var res statsRes
	if err := c.do(ctx, "GET", "/api/stats/", nil, &res); err != nil {
		return stats.Stats{}, game.Unavailable(StatsService, err)
	}
	s := stats.New(maxAttempts)
	s.GamesPlayed = res.GamesPlayed
	s.GamesWon = res.GamesWon
	s.CurrentStreak = res.CurrentStreak
	s.MaxStreak = res.MaxStreak
	for k, v := range res.GuessDistribution {
		n, err := strconv.Atoi(k)
		if err != nil || n < 1 {
			continue
		}
		s.Distribution[n] = v
	}
	return s, nil
}

// StatsStore exposes the service as a stats.Store. The service keys stats by its
// own session, so player ids are ignored, and it records outcomes itself from
// mirrored guesses, so Record only re-reads the totals.
type StatsStore struct {
	c           *Client
	maxAttempts int
}

var _ stats.Store = (*StatsStore)(nil)

// StatsStore returns the stats.Store view of c.
func (c *Client) StatsStore(maxAttempts int) *StatsStore {
	return &StatsStore{c: c, maxAttempts: maxAttempts}
}

func (s *StatsStore) Load(ctx context.Context, _ string) (stats.Stats, error) {
	return s.c.Stats(ctx, s.maxAttempts)
}

func (s *StatsStore) Record(ctx context.Context, _ string, _ game.Outcome) (stats.Stats, error) {
	return s.c.Stats(ctx, s.maxAttempts)
}
