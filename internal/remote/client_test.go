package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haydenChuu/wordle-clone/internal/game"
)

// fakeBackend mimics the word service's REST API.
type fakeBackend struct {
	mu      sync.Mutex
	guesses []map[string]any
	cookie  string
}

func (f *fakeBackend) router() http.Handler {
	r := chi.NewRouter()
	r.Get("/api/daily-word/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 42, "target_word": {"id": 3, "text": "crane"}, "attempts": 0, "guesses": []}`))
	})
	r.Post("/api/guess/", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.mu.Lock()
		f.guesses = append(f.guesses, body)
		if c, err := r.Cookie("sessionid"); err == nil {
			f.cookie = c.Value
		}
		f.mu.Unlock()
		if body["guess"] == "ZZZZZ" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"detail": "Not a valid word in our dictionary."}`))
			return
		}
		_, _ = w.Write([]byte(`{"id": 42}`))
	})
	r.Get("/api/words/{word}/", func(w http.ResponseWriter, r *http.Request) {
		switch word := chi.URLParam(r, "word"); word {
		case "CRANE", "TRACE":
			_, _ = w.Write([]byte(`{"word": "` + word + `", "valid": true}`))
		case "BROKE":
			_, _ = w.Write([]byte(`{"word": "BROKE"}`))
		default:
			_, _ = w.Write([]byte(`{"word": "` + word + `", "valid": false}`))
		}
	})
	r.Get("/api/stats/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"games_played": 3, "games_won": 2, "current_streak": 1, "max_streak": 2,
			"guess_distribution": {"3": 1, "5": 1, "bogus": 9}, "win_rate": 67}`))
	})
	return r
}

func (f *fakeBackend) seen() ([]map[string]any, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]map[string]any(nil), f.guesses...), f.cookie
}

func newTestClient(t *testing.T) (*Client, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{}
	srv := httptest.NewServer(fb.router())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", 2*time.Second), fb
}

func TestNextSecret(t *testing.T) {
	c, _ := newTestClient(t)
	a, err := c.NextSecret(context.Background())
	require.NoError(t, err)
	assert.Equal(t, game.Assignment{SessionID: "42", Word: "CRANE"}, a)
}

func TestMirrorGuess(t *testing.T) {
	c, fb := newTestClient(t)
	ctx := context.Background()
	_, err := c.NextSecret(ctx)
	require.NoError(t, err)

	require.NoError(t, c.MirrorGuess(ctx, "42", "trace"))
	guesses, cookie := fb.seen()
	require.Len(t, guesses, 1)
	assert.Equal(t, float64(42), guesses[0]["game_id"])
	assert.Equal(t, "TRACE", guesses[0]["guess"])
	assert.Equal(t, "abc", cookie, "session cookie is carried over")

	err = c.MirrorGuess(ctx, "42", "zzzzz")
	require.Error(t, err)
	assert.ErrorIs(t, err, game.ErrCollaboratorUnavailable)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Not a valid word in our dictionary.", apiErr.Detail)

	assert.Error(t, c.MirrorGuess(ctx, "", "TRACE"))
}

func TestCheckWord(t *testing.T) {
	c, _ := newTestClient(t)
	ctx := context.Background()

	ok, err := c.CheckWord(ctx, " trace ")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.CheckWord(ctx, "ZZZZZ")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = c.CheckWord(ctx, "BROKE")
	var ue *game.CollaboratorUnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, WordCheck, ue.Collaborator)
}

func TestStats(t *testing.T) {
	c, _ := newTestClient(t)
	s, err := c.StatsStore(6).Load(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, 3, s.GamesPlayed)
	assert.Equal(t, 2, s.GamesWon)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 2, s.MaxStreak)
	assert.Equal(t, map[int]int{1: 0, 2: 0, 3: 1, 4: 0, 5: 1, 6: 0}, s.Distribution)
	assert.Equal(t, 67, s.WinRate())
}

func TestUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, 500*time.Millisecond)
	_, err := c.NextSecret(context.Background())
	require.Error(t, err)
	var ue *game.CollaboratorUnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, WordService, ue.Collaborator)
	assert.Equal(t, "Could not reach the word service. Playing offline.", game.Reason(err))

	_, err = c.Stats(context.Background(), 6)
	assert.ErrorIs(t, err, game.ErrCollaboratorUnavailable)

	_, err = c.CheckWord(context.Background(), "CRANE")
	assert.ErrorIs(t, err, game.ErrCollaboratorUnavailable)
	assert.Equal(t, "Could not reach the word check. Playing offline.", game.Reason(err))
}

func TestMalformedGamePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id": 1, "target_word": 3}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).NextSecret(context.Background())
	assert.ErrorIs(t, err, game.ErrCollaboratorUnavailable)
}
