// internal/play/play.go
//
// Game coordinates one player's play across sessions and collaborators.
// Responsibilities:
//   - Start sessions from the preferred secret source, falling back to the
//     local one (with a notice) when it cannot be reached.
//   - Forward letter edits and submissions to the current game.Session.
//   - Ask the word checker, when one is wired, whether a guess is a word,
//     falling back to the local dictionary when it cannot be reached.
//   - Mirror accepted guesses to the remote service, best effort.
//   - Record each finished session's outcome exactly once.
//
// Collaborator failures never block play: they are returned as notices
// (*game.CollaboratorUnavailableError) next to a normal Turn.
package play

import (
	"context"
	"errors"
	"strings"
	"sync"
	"unicode"

	"github.com/rs/zerolog"

	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/stats"
)

// Mirror receives accepted guesses for sessions started from a remote source.
type Mirror interface {
	MirrorGuess(ctx context.Context, sessionID, guess string) error
}

// Recorder stores finished outcomes. *stats.Tracker satisfies it.
type Recorder interface {
	Record(ctx context.Context, sessionID string, o game.Outcome) (stats.Stats, bool, error)
}

// Config wires a Game to its collaborators. Only Fallback is required.
type Config struct {
	Source      game.SecretSource // preferred secret source, may be nil
	Fallback    game.SecretSource // local source used when Source fails
	Dictionary  game.Dictionary  // local word check
	WordCheck   game.WordChecker // preferred word check, may be nil
	Mirror      Mirror
	Recorder    Recorder
	MaxAttempts int
	Logger      zerolog.Logger
}

// Turn is the result of one player action.
type Turn struct {
	Snapshot game.Snapshot
	Record   *game.GuessRecord // set when a guess was accepted
	Outcome  *game.Outcome     // set on the turn that finished the session
	Stats    *stats.Stats      // set when the outcome was recorded
	Notices  []error           // collaborator problems that did not stop play
}

// Game is safe for concurrent use.
type Game struct {
	mu      sync.Mutex
	cfg     Config
	session *game.Session

	mirrorID string // remote game id; empty when not mirroring
	checking bool   // WordCheck is consulted for this session
	verdict  *verdict
	recorded bool
}

// verdict is the word checker's answer for the guess being submitted.
type verdict struct {
	word string
	ok   bool
}

// ErrNotStarted is returned by actions before the first Start.
var ErrNotStarted = errors.New("play: no session started")

// New returns a Game with no session; call Start.
func New(cfg Config) *Game {
	return &Game{cfg: cfg}
}

// Start begins a new session, replacing the current one.
// It only fails when neither source can supply a secret.
func (g *Game) Start(ctx context.Context) (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	var notices []error
	a, fromPrimary, err := g.draw(ctx, &notices)
	if err != nil {
		return Turn{Notices: notices}, err
	}
	secret, err := game.NewSecret(a.Word)
	if err != nil {
		return Turn{Notices: notices}, err
	}

	opts := []game.Option{game.WithMaxAttempts(g.cfg.MaxAttempts), game.WithID(a.SessionID)}
	if g.cfg.Dictionary != nil || g.cfg.WordCheck != nil {
		opts = append(opts, game.WithDictionary(game.DictionaryFunc(g.accepts)))
	}
	g.session = game.New(secret, opts...)
	g.recorded = false
	g.checking = g.cfg.WordCheck != nil
	g.verdict = nil
	g.mirrorID = ""
	if fromPrimary && g.cfg.Mirror != nil {
		g.mirrorID = a.SessionID
	}

	g.cfg.Logger.Debug().
		Str("session", g.session.ID()).
		Bool("remote", fromPrimary).
		Int("length", g.session.WordLength()).
		Msg("session started")
	return Turn{Snapshot: g.session.Snapshot(), Notices: notices}, nil
}

// draw picks a secret from the preferred source, else the fallback.
func (g *Game) draw(ctx context.Context, notices *[]error) (game.Assignment, bool, error) {
	if g.cfg.Source != nil {
		a, err := g.cfg.Source.NextSecret(ctx)
		if err == nil {
			if _, err = game.NewSecret(a.Word); err == nil {
				return a, true, nil
			}
		}
		g.cfg.Logger.Warn().Err(err).Msg("secret source failed, playing offline")
		if !errors.Is(err, game.ErrCollaboratorUnavailable) {
			err = game.Unavailable("word service", err)
		}
		*notices = append(*notices, err)
	}
	if g.cfg.Fallback == nil {
		return game.Assignment{}, false, errors.New("play: no fallback secret source")
	}
	a, err := g.cfg.Fallback.NextSecret(ctx)
	return a, false, err
}

// Reset abandons the current session and starts another.
func (g *Game) Reset(ctx context.Context) (Turn, error) {
	return g.Start(ctx)
}

// Type appends a letter. Rejected input leaves the state unchanged.
func (g *Game) Type(r rune) (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return Turn{}, ErrNotStarted
	}
	g.session.AppendLetter(r)
	return Turn{Snapshot: g.session.Snapshot()}, nil
}

// Backspace removes the last typed letter, if any.
func (g *Game) Backspace() (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return Turn{}, ErrNotStarted
	}
	g.session.DeleteLetter()
	return Turn{Snapshot: g.session.Snapshot()}, nil
}

// Submit scores the typed guess.
func (g *Game) Submit(ctx context.Context) (Turn, error) {
	return g.submit(ctx, "", true)
}

// SubmitWord scores word directly, ignoring typed letters.
func (g *Game) SubmitWord(ctx context.Context, word string) (Turn, error) {
	return g.submit(ctx, word, false)
}

func (g *Game) submit(ctx context.Context, word string, typed bool) (Turn, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return Turn{}, ErrNotStarted
	}
	if typed {
		word = g.session.Current()
	}

	var notices []error
	g.check(ctx, strings.ToUpper(strings.TrimSpace(word)), &notices)
	defer func() { g.verdict = nil }()

	var (
		rec game.GuessRecord
		err error
	)
	if typed {
		rec, _, err = g.session.SubmitGuess()
	} else {
		rec, _, err = g.session.SubmitWord(word)
	}
	if err != nil {
		return Turn{Snapshot: g.session.Snapshot(), Notices: notices}, err
	}

	t := Turn{Record: &rec, Notices: notices}
	if g.mirrorID != "" {
		if err := g.cfg.Mirror.MirrorGuess(ctx, g.mirrorID, rec.Guess); err != nil {
			// the remote game is out of step from here on
			g.cfg.Logger.Warn().Err(err).Str("session", g.session.ID()).Msg("guess mirror failed")
			g.mirrorID = ""
			t.Notices = append(t.Notices, err)
		}
	}

	if o, done := g.session.Outcome(); done && !g.recorded {
		g.recorded = true
		t.Outcome = &o
		if g.cfg.Recorder != nil {
			s, _, err := g.cfg.Recorder.Record(ctx, g.session.ID(), o)
			t.Stats = &s
			if err != nil {
				t.Notices = append(t.Notices, err)
			}
		}
		g.cfg.Logger.Info().
			Str("session", g.session.ID()).
			Bool("won", o.Won).
			Int("attempts", o.Attempts).
			Msg("session finished")
	}
	t.Snapshot = g.session.Snapshot()
	return t, nil
}

// check asks the word checker about word and keeps its verdict for accepts.
// Words the session would reject anyway are not sent. When the checker fails
// it is skipped for the rest of the session and the local dictionary decides.
func (g *Game) check(ctx context.Context, word string, notices *[]error) {
	if !g.checking || g.session.Status().Terminal() || !wellFormed(word, g.session.WordLength()) {
		return
	}
	ok, err := g.cfg.WordCheck.CheckWord(ctx, word)
	if err != nil {
		g.cfg.Logger.Warn().Err(err).Str("session", g.session.ID()).Msg("word check failed, using local dictionary")
		g.checking = false
		if !errors.Is(err, game.ErrCollaboratorUnavailable) {
			err = game.Unavailable("word check", err)
		}
		*notices = append(*notices, err)
		return
	}
	g.verdict = &verdict{word: word, ok: ok}
}

// accepts is the session's Dictionary: the checker's verdict for the word being
// submitted, else the local dictionary.
func (g *Game) accepts(word string) bool {
	if g.verdict != nil && g.verdict.word == word {
		return g.verdict.ok
	}
	return g.cfg.Dictionary == nil || g.cfg.Dictionary.Accepts(word)
}

func wellFormed(word string, length int) bool {
	n := 0
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return false
		}
		n++
	}
	return n == length
}

// Snapshot returns the current session's state.
func (g *Game) Snapshot() (game.Snapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.session == nil {
		return game.Snapshot{}, ErrNotStarted
	}
	return g.session.Snapshot(), nil
}

// Mirrored reports whether accepted guesses are being sent to the remote service.
func (g *Game) Mirrored() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mirrorID != ""
}
