// internal/httpserver/routes_game.go
//
// HTTP routes for live games (random or daily):
//   - POST   /game/new           → start a game {"mode": "random"|"daily"}
//   - GET    /game/{id}          → current state
//   - POST   /game/{id}/letter   → type one letter {"letter": "a"}
//   - DELETE /game/{id}/letter   → delete the last typed letter
//   - POST   /game/{id}/guess    → submit {"guess": "crane"} or, with no body, the typed letters
//   - POST   /game/{id}/reset    → abandon the game and start another in the same mode
//   - POST   /game/guess         → {"gameId", "guess"}, same as /game/{id}/guess
//
// Live games are held in the session store; each start writes a games row and
// the finishing guess updates it and the player's stats.
package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/haydenChuu/wordle-clone/internal/daily"
	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/play"
	"github.com/haydenChuu/wordle-clone/internal/stats"
	"github.com/haydenChuu/wordle-clone/internal/store"
)

const (
	modeRandom = "random"
	modeDaily  = "daily"

	dateLayout = "2006-01-02"
)

// mountGame registers all /game routes.
func (s *Server) mountGame(r chi.Router) {
	r.Route("/game", func(r chi.Router) {
		r.Post("/new", s.handleNewGame)
		r.Post("/guess", s.handleLegacyGuess)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetGame)
			r.Post("/letter", s.handleLetter)
			r.Delete("/letter", s.handleBackspace)
			r.Post("/guess", s.handleGuess)
			r.Post("/reset", s.handleReset)
		})
	})
}

// newGameReq is the payload for POST /game/new.
type newGameReq struct {
	Mode   string `json:"mode"`   // "random" (default) | "daily"
	Answer string `json:"answer"` // fixed answer for testing; ignored in production
}

// gameRes is returned by every /game route.
type gameRes struct {
	GameID  string            `json:"gameId"`
	Mode    string            `json:"mode"`
	Date    string            `json:"date,omitempty"`
	State   game.Snapshot     `json:"state"`
	Last    *game.GuessRecord `json:"last,omitempty"`
	Share   string            `json:"share,omitempty"`
	Stats   *stats.Summary    `json:"stats,omitempty"`
	Notices []string          `json:"notices,omitempty"`
}

// gameErrorRes carries the unchanged state alongside a rejected action.
type gameErrorRes struct {
	errorRes
	State *game.Snapshot `json:"state,omitempty"`
}

func (s *Server) handleNewGame(w http.ResponseWriter, r *http.Request) {
	var req newGameReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "")
		return
	}
	s.startGame(w, r, req.Mode, req.Answer)
}

// startGame creates a game in mode, stores it, writes its owner row and responds.
func (s *Server) startGame(w http.ResponseWriter, r *http.Request, mode, answer string) {
	ctx := r.Context()
	player := s.playerID(w, r)

	cfg := play.Config{
		Fallback:    s.words,
		Dictionary:  s.words,
		MaxAttempts: s.cfg.MaxAttempts,
		Logger:      s.log,
	}
	entry := &store.Entry{ID: uuid.NewString(), PlayerID: player, Started: time.Now().UTC()}

	switch mode {
	case "", modeRandom:
		entry.Mode = modeRandom
		switch {
		case answer != "" && !s.cfg.Production():
			cfg.Fallback = fixedAnswer(answer)
		case s.remote != nil:
			cfg.Source = s.remote
			cfg.Mirror = s.remote
			cfg.WordCheck = s.remote
		}
	case modeDaily:
		p, err := s.daily.Today()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, "no_words", err.Error())
			return
		}
		played, err := s.results.AlreadyPlayed(ctx, player, p.Date)
		if err != nil {
			s.log.Error().Err(err).Msg("daily lookup")
			writeError(w, http.StatusInternalServerError, "db_error", "")
			return
		}
		if played {
			writeJSON(w, http.StatusConflict, map[string]any{
				"error": "already_played", "message": "You already played today's puzzle.", "date": p.Date,
			})
			return
		}
		entry.Mode, entry.Date = modeDaily, p.Date
		cfg.Fallback = s.daily
	default:
		writeError(w, http.StatusBadRequest, "invalid_mode", `mode must be "random" or "daily"`)
		return
	}

	entry.Game = play.New(cfg)
	turn, err := entry.Game.Start(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("start game")
		writeError(w, http.StatusBadRequest, game.Kind(err), game.Reason(err))
		return
	}
	if err := s.store.Save(ctx, entry); err != nil {
		s.log.Error().Err(err).Msg("save game")
		writeError(w, http.StatusInternalServerError, "save_failed", "")
		return
	}
	s.insertGameRow(ctx, r, entry)

	writeJSON(w, http.StatusCreated, s.gameResponse(entry, turn, nil))
}

// fixedAnswer serves one word as the secret.
func fixedAnswer(word string) game.SecretSource {
	return game.SecretSourceFunc(func(context.Context) (game.Assignment, error) {
		return game.Assignment{Word: word}, nil
	})
}

// insertGameRow persists the owner row; the answer is never stored.
func (s *Server) insertGameRow(ctx context.Context, r *http.Request, e *store.Entry) {
	userID, anonID := any(nil), any(nil)
	if me := userFrom(r.Context()); me != nil {
		userID = me.ID
	} else {
		anonID = e.PlayerID
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO games (id, user_id, anonymous_id, mode, started_at, status, guesses) VALUES (?,?,?,?,?,?,0)`,
		e.ID, userID, anonID, e.Mode, e.Started.Format(time.RFC3339), string(game.StatusInProgress))
	if err != nil {
		s.log.Warn().Err(err).Str("gameId", e.ID).Msg("insert game row")
	}
}

// entry loads the game named by the {id} URL param, if the caller owns it.
func (s *Server) entry(w http.ResponseWriter, r *http.Request, id string) (*store.Entry, bool) {
	e, err := s.store.Get(r.Context(), id)
	if err != nil || !s.owns(r, e) {
		writeError(w, http.StatusNotFound, "not_found", "Game not found.")
		return nil, false
	}
	return e, true
}

// owns reports whether the caller started e, as a user or as the anonymous player.
func (s *Server) owns(r *http.Request, e *store.Entry) bool {
	if me := userFrom(r.Context()); me != nil && me.ID == e.PlayerID {
		return true
	}
	c, err := r.Cookie(anonCookieName)
	return err == nil && c.Value == e.PlayerID
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	snap, err := e.Game.Snapshot()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_started", "")
		return
	}
	writeJSON(w, http.StatusOK, s.gameResponse(e, play.Turn{Snapshot: snap}, nil))
}

type letterReq struct {
	Letter string `json:"letter"`
}

func (s *Server) handleLetter(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	var req letterReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || utf8.RuneCountInString(req.Letter) != 1 {
		writeError(w, http.StatusBadRequest, "invalid_letter", "Send exactly one letter.")
		return
	}
	l, _ := utf8.DecodeRuneInString(req.Letter)
	turn, err := e.Game.Type(l)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_started", "")
		return
	}
	writeJSON(w, http.StatusOK, s.gameResponse(e, turn, nil))
}

func (s *Server) handleBackspace(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	turn, err := e.Game.Backspace()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "not_started", "")
		return
	}
	writeJSON(w, http.StatusOK, s.gameResponse(e, turn, nil))
}

// guessReq is the payload for the guess routes. An empty guess submits the typed letters.
type guessReq struct {
	GameID string `json:"gameId"`
	Guess  string `json:"guess"`
}

func (s *Server) handleGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := decodeOptional(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "")
		return
	}
	s.guess(w, r, chi.URLParam(r, "id"), req.Guess)
}

func (s *Server) handleLegacyGuess(w http.ResponseWriter, r *http.Request) {
	var req guessReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeError(w, http.StatusBadRequest, "invalid_json", "gameId is required.")
		return
	}
	s.guess(w, r, req.GameID, req.Guess)
}

// guess applies a submission, persists progress and, on the finishing guess,
// records stats and the daily result.
func (s *Server) guess(w http.ResponseWriter, r *http.Request, id, word string) {
	e, ok := s.entry(w, r, id)
	if !ok {
		return
	}
	ctx := r.Context()

	var turn play.Turn
	var err error
	if strings.TrimSpace(word) == "" {
		turn, err = e.Game.Submit(ctx)
	} else {
		turn, err = e.Game.SubmitWord(ctx, word)
	}
	if err != nil {
		writeGameError(w, err, turn.Snapshot)
		return
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE games SET guesses=? WHERE id=?`, turn.Snapshot.Attempts, e.ID); err != nil {
		s.log.Warn().Err(err).Msg("update guesses")
	}

	var summary *stats.Summary
	if turn.Outcome != nil {
		summary = s.finish(ctx, w, r, e, turn)
	}
	writeJSON(w, http.StatusOK, s.gameResponse(e, turn, summary))
}

// finish closes the games row, stores the daily result and records the outcome
// for the current player. A daily game counts towards stats only when its
// result is the player's first for that date.
func (s *Server) finish(ctx context.Context, w http.ResponseWriter, r *http.Request, e *store.Entry, turn play.Turn) *stats.Summary {
	o := *turn.Outcome
	now := time.Now().UTC()
	if _, err := s.db.ExecContext(ctx, `UPDATE games SET status=?, finished_at=? WHERE id=?`,
		string(turn.Snapshot.Status), now.Format(time.RFC3339), e.ID); err != nil {
		s.log.Warn().Err(err).Msg("finish game")
	}

	player := s.playerID(w, r)
	if e.Mode == modeDaily && !s.recordDaily(ctx, player, e, o, now) {
		return s.summary(ctx, player)
	}

	st, err := s.stats.Record(ctx, player, o)
	if err != nil {
		s.log.Warn().Err(err).Str("player", player).Msg("record stats")
		return nil
	}
	sum := st.Summarize()
	return &sum
}

// recordDaily stores the daily result of e and reports whether it was the
// player's first for that date.
func (s *Server) recordDaily(ctx context.Context, player string, e *store.Entry, o game.Outcome, now time.Time) bool {
	day, err := time.Parse(dateLayout, e.Date)
	if err != nil {
		s.log.Error().Err(err).Str("date", e.Date).Msg("daily result: bad date")
		return false
	}
	p, err := s.daily.For(day)
	if err != nil {
		s.log.Error().Err(err).Str("date", e.Date).Msg("daily result: no puzzle")
		return false
	}
	inserted, err := s.results.InsertResult(ctx, daily.Result{
		PlayerID:  player,
		Date:      e.Date,
		WordIndex: p.WordIndex,
		Won:       o.Won,
		Guesses:   o.Attempts,
		ElapsedMs: now.Sub(e.Started).Milliseconds(),
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("insert daily result")
		return false
	}
	if !inserted {
		s.log.Info().Str("player", player).Str("date", e.Date).Msg("daily already recorded, stats unchanged")
	}
	return inserted
}

// summary loads the player's stats without recording anything.
func (s *Server) summary(ctx context.Context, player string) *stats.Summary {
	st, err := s.stats.Load(ctx, player)
	if err != nil {
		s.log.Warn().Err(err).Str("player", player).Msg("load stats")
		return nil
	}
	sum := st.Summarize()
	return &sum
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	e, ok := s.entry(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), e.ID); err != nil {
		s.log.Warn().Err(err).Msg("delete game")
	}
	s.startGame(w, r, e.Mode, "")
}

// gameResponse assembles the JSON body for a turn.
func (s *Server) gameResponse(e *store.Entry, turn play.Turn, summary *stats.Summary) gameRes {
	res := gameRes{
		GameID: e.ID,
		Mode:   e.Mode,
		Date:   e.Date,
		State:  turn.Snapshot,
		Last:   turn.Record,
		Stats:  summary,
	}
	if turn.Snapshot.Status.Terminal() {
		res.Share = game.ShareText(turn.Snapshot)
	}
	for _, n := range turn.Notices {
		res.Notices = append(res.Notices, game.Reason(n))
	}
	return res
}

// writeGameError maps game errors to HTTP statuses.
func writeGameError(w http.ResponseWriter, err error, snap game.Snapshot) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, game.ErrGameOver):
		status = http.StatusConflict
	case errors.Is(err, play.ErrNotStarted):
		status = http.StatusInternalServerError
	}
	res := gameErrorRes{errorRes: errorRes{Error: game.Kind(err), Message: game.Reason(err)}}
	if snap.ID != "" {
		res.State = &snap
	}
	writeJSON(w, status, res)
}

// decodeOptional decodes a JSON body, treating an empty body as {}.
func decodeOptional(r *http.Request, v any) error {
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
