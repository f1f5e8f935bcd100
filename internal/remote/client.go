// internal/remote/client.go
//
// Client for the authoritative word service (the REST backend the web
// frontend talks to).
// Responsibilities:
//   - Start a game remotely and hand its secret out as a game.SecretSource.
//   - Mirror accepted guesses so the service keeps its own game record.
//   - Check whether a guess is a word, as a game.WordChecker.
//   - Read the player's statistics, exposed as a stats.Store.
//
// Endpoints:
//   - GET  /api/daily-word/ → {"id": 7, "target_word": {"text": "CRANE"}}
//   - POST /api/guess/      ← {"game_id": 7, "guess": "TRACE"}
//   - GET  /api/words/{w}/  → {"word": "TRACE", "valid": true}
//   - GET  /api/stats/      → {"games_played", "games_won", "current_streak",
//     "max_streak", "guess_distribution": {"3": 1}, "win_rate"}
//
// Every failure (transport, status, payload shape) is returned wrapped in a
// *game.CollaboratorUnavailableError so callers can fall back to local play.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// Collaborator names used in unavailability errors.
const (
	WordService  = "word service"
	WordCheck    = "word check"
	StatsService = "stats service"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("remote: %d %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("remote: %d %s", e.Status, http.StatusText(e.Status))
}

// Client talks to the service at BaseURL. Safe for concurrent use.
type Client struct {
	baseURL string
	hc      *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client (a cookie jar is added if missing).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

// WithLogger sets the logger (default: disabled).
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New builds a client for baseURL with the given per-request timeout.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: timeout},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.hc.Jar == nil {
		// session/auth cookies issued by the service must follow later calls
		jar, _ := cookiejar.New(nil)
		c.hc.Jar = jar
	}
	return c
}

// gameID accepts the service's numeric ids as well as strings.
type gameID string

func (id *gameID) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*id = gameID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("game id: %w", err)
	}
	*id = gameID(s)
	return nil
}

type newGameRes struct {
	ID         *gameID `json:"id"`
	TargetWord *struct {
		Text string `json:"text"`
	} `json:"target_word"`
}

// NextSecret implements game.SecretSource by starting a game on the service.
func (c *Client) NextSecret(ctx context.Context) (game.Assignment, error) {
	var res newGameRes
	if err := c.do(ctx, http.MethodGet, "/api/daily-word/", nil, &res); err != nil {
		return game.Assignment{}, game.Unavailable(WordService, err)
	}
	if res.ID == nil || *res.ID == "" || res.TargetWord == nil || strings.TrimSpace(res.TargetWord.Text) == "" {
		return game.Assignment{}, game.Unavailable(WordService, errors.New("remote: malformed game payload"))
	}
	a := game.Assignment{
		SessionID: string(*res.ID),
		Word:      strings.ToUpper(strings.TrimSpace(res.TargetWord.Text)),
	}
	c.log.Debug().Str("game", a.SessionID).Msg("remote game started")
	return a, nil
}

type guessReq struct {
	GameID json.RawMessage `json:"game_id"`
	Guess  string          `json:"guess"`
}

// MirrorGuess reports an accepted guess for the remote game sessionID.
func (c *Client) MirrorGuess(ctx context.Context, sessionID, guess string) error {
	if sessionID == "" {
		return game.Unavailable(WordService, errors.New("remote: no remote game id"))
	}
	body := guessReq{GameID: encodeID(sessionID), Guess: strings.ToUpper(guess)}
	if err := c.do(ctx, http.MethodPost, "/api/guess/", body, nil); err != nil {
		return game.Unavailable(WordService, err)
	}
	return nil
}

type wordRes struct {
	Word  string `json:"word"`
	Valid *bool  `json:"valid"`
}

// CheckWord implements game.WordChecker.
func (c *Client) CheckWord(ctx context.Context, word string) (bool, error) {
	word = strings.ToUpper(strings.TrimSpace(word))
	var res wordRes
	if err := c.do(ctx, http.MethodGet, "/api/words/"+url.PathEscape(word)+"/", nil, &res); err != nil {
		return false, game.Unavailable(WordCheck, err)
	}
	if res.Valid == nil {
		return false, game.Unavailable(WordCheck, errors.New("remote: malformed word payload"))
	}
	return *res.Valid, nil
}

// encodeID sends numeric ids as JSON numbers, as the service issued them.
func encodeID(id string) json.RawMessage {
	var n json.Number
	if err := json.Unmarshal([]byte(id), &n); err == nil {
		return json.RawMessage(id)
	}
	b, _ := json.Marshal(id)
	return b
}

// do performs one JSON round trip. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("remote call")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&detail)
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
