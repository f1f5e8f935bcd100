// internal/stats/stats.go
//
// Player statistics aggregated across finished games.
// Stats is a plain value: Record returns an updated copy and never mutates
// the receiver, so callers decide where (and whether) the value is kept.
package stats

import (
	"math"

	"github.com/samber/lo"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// Stats holds the aggregate counters for one player.
type Stats struct {
	GamesPlayed   int         `json:"gamesPlayed"`
	GamesWon      int         `json:"gamesWon"`
	CurrentStreak int         `json:"currentStreak"`
	MaxStreak     int         `json:"maxStreak"`
	Distribution  map[int]int `json:"guessDistribution"` // attempts used -> wins
}

// New returns zeroed stats with distribution buckets 1..maxAttempts.
func New(maxAttempts int) Stats {
	if maxAttempts < 1 {
		return Stats{Distribution: map[int]int{}}
	}
	return Stats{
		Distribution: lo.SliceToMap(lo.RangeFrom(1, maxAttempts), func(n int) (int, int) { return n, 0 }),
	}
}

// Record folds one finished game into s and returns the result.
//   - played +1 always.
//   - won: won +1, streak +1, max streak follows, distribution[attempts] +1.
//   - lost: streak resets to 0.
func (s Stats) Record(o game.Outcome) Stats {
	out := s
	out.Distribution = lo.Assign(map[int]int{}, s.Distribution)
	out.GamesPlayed++
	if o.Won {
		out.GamesWon++
		out.CurrentStreak++
		out.MaxStreak = max(out.MaxStreak, out.CurrentStreak)
		out.Distribution[o.Attempts]++
	} else {
		out.CurrentStreak = 0
	}
	return out
}

// WinRate is the rounded win percentage (0 when nothing was played).
func (s Stats) WinRate() int {
	if s.GamesPlayed == 0 {
		return 0
	}
	return int(math.Round(100 * float64(s.GamesWon) / float64(s.GamesPlayed)))
}

// Losses is the number of games played but not won.
func (s Stats) Losses() int { return s.GamesPlayed - s.GamesWon }

// AverageGuessesPerWin averages attempts over won games (0 without wins).
func (s Stats) AverageGuessesPerWin() float64 {
	if s.GamesWon == 0 {
		return 0
	}
	total := lo.Sum(lo.MapToSlice(s.Distribution, func(attempts, wins int) int { return attempts * wins }))
	return float64(total) / float64(s.GamesWon)
}

// Summary is the JSON shape served to clients: the counters plus derived values.
type Summary struct {
	Stats
	WinRate              int     `json:"winRate"`
	Losses               int     `json:"losses"`
	AverageGuessesPerWin float64 `json:"averageGuessesPerWin"`
}

// Summarize attaches the derived values.
func (s Stats) Summarize() Summary {
	return Summary{
		Stats:                s,
		WinRate:              s.WinRate(),
		Losses:               s.Losses(),
		AverageGuessesPerWin: s.AverageGuessesPerWin(),
	}
}
