package play

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haydenChuu/wordle-clone/internal/game"
	"github.com/haydenChuu/wordle-clone/internal/stats"
)

func fixed(id, word string) game.SecretSource {
	return game.SecretSourceFunc(func(context.Context) (game.Assignment, error) {
		return game.Assignment{SessionID: id, Word: word}, nil
	})
}

var errOffline = errors.New("connection refused")

func failing() game.SecretSource {
	return game.SecretSourceFunc(func(context.Context) (game.Assignment, error) {
		return game.Assignment{}, game.Unavailable("word service", errOffline)
	})
}

type recordingMirror struct {
	guesses []string
	err     error
}

func (m *recordingMirror) MirrorGuess(_ context.Context, id, guess string) error {
	if m.err != nil {
		return m.err
	}
	m.guesses = append(m.guesses, id+":"+guess)
	return nil
}

func words(ws ...string) game.Dictionary {
	set := map[string]bool{}
	for _, w := range ws {
		set[w] = true
	}
	return game.DictionaryFunc(func(w string) bool { return set[w] })
}

func typeWord(t *testing.T, g *Game, w string) {
	t.Helper()
	for _, r := range w {
		_, err := g.Type(r)
		require.NoError(t, err)
	}
}

func TestStartPrefersSource(t *testing.T) {
	m := &recordingMirror{}
	g := New(Config{
		Source:   fixed("42", "crane"),
		Fallback: fixed("", "SLATE"),
		Mirror:   m,
		Logger:   zerolog.Nop(),
	})
	turn, err := g.Start(context.Background())
	require.NoError(t, err)
	assert.Empty(t, turn.Notices)
	assert.Equal(t, "42", turn.Snapshot.ID)
	assert.True(t, g.Mirrored())

	tr, err := g.SubmitWord(context.Background(), "crane")
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, tr.Snapshot.Status)
	assert.Equal(t, []string{"42:CRANE"}, m.guesses)
}

func TestStartFallsBackWithNotice(t *testing.T) {
	g := New(Config{
		Source:   failing(),
		Fallback: fixed("", "SLATE"),
		Mirror:   &recordingMirror{},
		Logger:   zerolog.Nop(),
	})
	turn, err := g.Start(context.Background())
	require.NoError(t, err)
	require.Len(t, turn.Notices, 1)
	assert.ErrorIs(t, turn.Notices[0], game.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, turn.Notices[0], errOffline)
	assert.False(t, g.Mirrored())

	tr, err := g.SubmitWord(context.Background(), "SLATE")
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, tr.Snapshot.Status)
}

func TestStartRejectsBadRemoteWord(t *testing.T) {
	g := New(Config{Source: fixed("1", "12345"), Fallback: fixed("", "SLATE"), Logger: zerolog.Nop()})
	turn, err := g.Start(context.Background())
	require.NoError(t, err)
	require.Len(t, turn.Notices, 1)
	assert.ErrorIs(t, turn.Notices[0], game.ErrCollaboratorUnavailable)
}

func TestStartWithoutAnySource(t *testing.T) {
	g := New(Config{Source: failing(), Logger: zerolog.Nop()})
	_, err := g.Start(context.Background())
	assert.Error(t, err)

	_, err = g.Type('A')
	assert.ErrorIs(t, err, ErrNotStarted)
	_, err = g.Snapshot()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestMirrorFailureIsNoticeOnly(t *testing.T) {
	m := &recordingMirror{err: game.Unavailable("word service", errOffline)}
	g := New(Config{Source: fixed("42", "CRANE"), Fallback: fixed("", "SLATE"), Mirror: m, Logger: zerolog.Nop()})
	_, err := g.Start(context.Background())
	require.NoError(t, err)

	typeWord(t, g, "TRACE")
	turn, err := g.Submit(context.Background())
	require.NoError(t, err)
	require.NotNil(t, turn.Record)
	assert.Equal(t, "TRACE", turn.Record.Guess)
	require.Len(t, turn.Notices, 1)
	assert.False(t, g.Mirrored())

	turn, err = g.SubmitWord(context.Background(), "CRATE")
	require.NoError(t, err)
	assert.Empty(t, turn.Notices, "mirroring stops after the first failure")
}

func TestSubmitErrorsLeaveStateUnchanged(t *testing.T) {
	g := New(Config{Fallback: fixed("", "CRANE"), Dictionary: words("CRANE", "TRACE"), Logger: zerolog.Nop()})
	_, err := g.Start(context.Background())
	require.NoError(t, err)

	typeWord(t, g, "TRA")
	before, err := g.Snapshot()
	require.NoError(t, err)
	turn, err := g.Submit(context.Background())
	var ig *game.IncompleteGuessError
	require.ErrorAs(t, err, &ig)
	assert.Equal(t, before, turn.Snapshot)

	typeWord(t, g, "XX")
	before, _ = g.Snapshot()
	_, err = g.Submit(context.Background())
	assert.ErrorIs(t, err, game.ErrInvalidWord)
	after, _ := g.Snapshot()
	assert.Equal(t, before, after)

	for i := 0; i < 2; i++ {
		_, err = g.Backspace()
		require.NoError(t, err)
	}
	typeWord(t, g, "CE")
	turn, err = g.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "", turn.Snapshot.Current)
	assert.Len(t, turn.Snapshot.History, 1)
}

func TestOutcomeRecordedOnce(t *testing.T) {
	store := stats.NewMemoryStore(3)
	tracker := stats.NewTracker(store, "p1", stats.New(3), zerolog.Nop())
	g := New(Config{Fallback: fixed("", "CRANE"), Recorder: tracker, MaxAttempts: 3, Logger: zerolog.Nop()})
	ctx := context.Background()
	_, err := g.Start(ctx)
	require.NoError(t, err)

	for i, w := range []string{"TRACE", "SLATE", "BRICK"} {
		turn, err := g.SubmitWord(ctx, w)
		require.NoError(t, err)
		if i < 2 {
			assert.Nil(t, turn.Outcome)
			continue
		}
		require.NotNil(t, turn.Outcome)
		assert.Equal(t, game.Outcome{Won: false, Attempts: 3}, *turn.Outcome)
		require.NotNil(t, turn.Stats)
		assert.Equal(t, 1, turn.Stats.GamesPlayed)
		assert.Equal(t, "CRANE", turn.Snapshot.Secret)
	}

	_, err = g.SubmitWord(ctx, "CRANE")
	assert.ErrorIs(t, err, game.ErrGameOver)

	s, err := store.Load(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, s.GamesPlayed)
	assert.Equal(t, 0, s.GamesWon)

	// a new session records again
	_, err = g.Reset(ctx)
	require.NoError(t, err)
	turn, err := g.SubmitWord(ctx, "CRANE")
	require.NoError(t, err)
	require.NotNil(t, turn.Stats)
	assert.Equal(t, 2, turn.Stats.GamesPlayed)
	assert.Equal(t, 1, turn.Stats.Distribution[1])
}

// countingChecker accepts the words in valid, or fails with err when set.
type countingChecker struct {
	valid map[string]bool
	err   error
	calls []string
}

func (c *countingChecker) CheckWord(_ context.Context, word string) (bool, error) {
	c.calls = append(c.calls, word)
	if c.err != nil {
		return false, c.err
	}
	return c.valid[word], nil
}

func TestWordCheckOverridesLocalDictionary(t *testing.T) {
	ctx := context.Background()
	wc := &countingChecker{valid: map[string]bool{"ABBEY": true, "CRANE": true}}
	g := New(Config{
		Fallback:   fixed("", "CRANE"),
		Dictionary: words("CRANE", "TRACE"),
		WordCheck:  wc,
		Logger:     zerolog.Nop(),
	})
	_, err := g.Start(ctx)
	require.NoError(t, err)

	turn, err := g.SubmitWord(ctx, "abbey")
	require.NoError(t, err)
	assert.Empty(t, turn.Notices)
	assert.Equal(t, "ABBEY", turn.Record.Guess)

	before, _ := g.Snapshot()
	turn, err = g.SubmitWord(ctx, "TRACE")
	assert.ErrorIs(t, err, game.ErrInvalidWord)
	assert.Equal(t, before, turn.Snapshot)

	_, err = g.SubmitWord(ctx, "CR")
	assert.ErrorIs(t, err, game.ErrIncompleteGuess)
	assert.Equal(t, []string{"ABBEY", "TRACE"}, wc.calls, "malformed guesses are not sent")

	typeWord(t, g, "crane")
	turn, err = g.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, game.StatusWon, turn.Snapshot.Status)
	assert.Equal(t, []string{"ABBEY", "TRACE", "CRANE"}, wc.calls)
}

func TestWordCheckFailureFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	wc := &countingChecker{err: errOffline}
	g := New(Config{
		Fallback:   fixed("", "CRANE"),
		Dictionary: words("CRANE", "TRACE"),
		WordCheck:  wc,
		Logger:     zerolog.Nop(),
	})
	_, err := g.Start(ctx)
	require.NoError(t, err)

	turn, err := g.SubmitWord(ctx, "TRACE")
	require.NoError(t, err)
	require.Len(t, turn.Notices, 1)
	assert.ErrorIs(t, turn.Notices[0], game.ErrCollaboratorUnavailable)
	assert.ErrorIs(t, turn.Notices[0], errOffline)
	var ue *game.CollaboratorUnavailableError
	require.ErrorAs(t, turn.Notices[0], &ue)
	assert.Equal(t, "word check", ue.Collaborator)

	turn, err = g.SubmitWord(ctx, "ABBEY")
	assert.ErrorIs(t, err, game.ErrInvalidWord, "local dictionary decides")
	assert.Empty(t, turn.Notices)
	assert.Len(t, wc.calls, 1, "checker is skipped for the rest of the session")

	// a new session tries the checker again
	_, err = g.Reset(ctx)
	require.NoError(t, err)
	turn, err = g.SubmitWord(ctx, "CRANE")
	require.NoError(t, err)
	assert.Len(t, turn.Notices, 1)
	assert.Len(t, wc.calls, 2)
}
