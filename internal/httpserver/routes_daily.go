// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
// Exposes two endpoints under /daily:
//   - GET /daily/today       → today's date key and whether the caller already played
//   - GET /daily/leaderboard → top 20 winners for today (or ?date=YYYY-MM-DD)
//
// Daily games themselves are started with POST /game/new {"mode": "daily"} and
// played through the regular /game routes. Each player gets one result per day,
// enforced by the daily_results primary key.
package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/haydenChuu/wordle-clone/internal/daily"
)

const leaderboardSize = 20

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Get("/today", s.handleDailyToday)
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// todayRes is returned by /daily/today.
type todayRes struct {
	Date   string `json:"date"`
	Played bool   `json:"played"`
}

func (s *Server) handleDailyToday(w http.ResponseWriter, r *http.Request) {
	p, err := s.daily.Today()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "no_words", err.Error())
		return
	}
	played, err := s.results.AlreadyPlayed(r.Context(), s.playerID(w, r), p.Date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "db_error", "")
		return
	}
	writeJSON(w, http.StatusOK, todayRes{Date: p.Date, Played: played})
}

// lbRes is returned by /daily/leaderboard.
type lbRes struct {
	Date string        `json:"date"`
	Top  []daily.LBRow `json:"top"`
}

// handleLeaderboard returns the leaderboard for the given date (default today).
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		p, err := s.daily.Today()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "no_words", err.Error())
			return
		}
		date = p.Date
	}
	rows, err := s.results.Leaderboard(r.Context(), date, leaderboardSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "")
		return
	}
	writeJSON(w, http.StatusOK, lbRes{Date: date, Top: rows})
}
