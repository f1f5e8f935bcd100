package game

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dict(words ...string) Dictionary {
	set := map[string]bool{}
	for _, w := range words {
		set[w] = true
	}
	return DictionaryFunc(func(w string) bool { return set[w] })
}

func typeWord(t *testing.T, s *Session, word string) {
	t.Helper()
	for _, r := range word {
		require.True(t, s.AppendLetter(r), "append %c", r)
	}
}

func TestNewSessionDefaults(t *testing.T) {
	s := New(MustSecret("crane"))
	assert.NotEmpty(t, s.ID())
	assert.Equal(t, StatusInProgress, s.Status())
	assert.Equal(t, 5, s.WordLength())
	assert.Equal(t, 6, s.MaxAttempts())
	assert.Equal(t, 0, s.Attempts())

	s2 := New(MustSecret("crane"), WithID("fixed"), WithMaxAttempts(3), WithMaxAttempts(0))
	assert.Equal(t, "fixed", s2.ID())
	assert.Equal(t, 3, s2.MaxAttempts())
}

func TestAppendAndDeleteLetter(t *testing.T) {
	s := New(MustSecret("CRANE"))

	assert.False(t, s.DeleteLetter(), "nothing to delete")
	assert.False(t, s.AppendLetter('1'))
	typeWord(t, s, "tra")
	assert.Equal(t, "TRA", s.Current())

	assert.True(t, s.DeleteLetter())
	assert.Equal(t, "TR", s.Current())

	typeWord(t, s, "ace")
	assert.False(t, s.AppendLetter('x'), "guess is full")
	assert.Equal(t, "TRACE", s.Current())
}

func TestSubmitGuessIncompleteLeavesStateUnchanged(t *testing.T) {
	s := New(MustSecret("CRANE"), WithDictionary(dict("TRACE")))
	typeWord(t, s, "TRA")
	before := s.Snapshot()

	_, status, err := s.SubmitGuess()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIncompleteGuess))
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, before, s.Snapshot())

	var ie *IncompleteGuessError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 3, ie.Have)
	assert.Equal(t, 5, ie.Want)
	assert.Equal(t, "Word must be 5 letters long!", Reason(err))
}

func TestSubmitGuessInvalidWordLeavesStateUnchanged(t *testing.T) {
	s := New(MustSecret("CRANE"), WithDictionary(dict("TRACE")))
	typeWord(t, s, "XXXXX")
	before := s.Snapshot()

	_, _, err := s.SubmitGuess()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidWord))
	assert.Equal(t, "Not a valid word!", Reason(err))
	assert.Equal(t, "invalid_word", Kind(err))
	assert.Equal(t, before, s.Snapshot())
}

func TestSubmitGuessRecordsFeedback(t *testing.T) {
	s := New(MustSecret("CRANE"), WithDictionary(dict("TRACE", "CRANE")))
	typeWord(t, s, "trace")

	rec, status, err := s.SubmitGuess()
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, status)
	assert.Equal(t, "TRACE", rec.Guess)
	assert.Equal(t, []Mark{A, C, C, P, C}, rec.Marks)
	assert.Equal(t, "", s.Current())
	assert.Equal(t, 1, s.Attempts())

	hints := s.Hints()
	assert.Equal(t, MarkAbsent, hints['T'])
	assert.Equal(t, MarkCorrect, hints['R'])
	assert.Equal(t, MarkCorrect, hints['A'])
	assert.Equal(t, MarkPresent, hints['C'])

	// Mutating the returned record does not leak into the session.
	rec.Marks[0] = MarkCorrect
	assert.Equal(t, MarkAbsent, s.Snapshot().History[0].Marks[0])
}

func TestSessionWins(t *testing.T) {
	s := New(MustSecret("CRANE"))
	_, _, err := s.SubmitWord("TRACE")
	require.NoError(t, err)

	rec, status, err := s.SubmitWord("crane")
	require.NoError(t, err)
	assert.True(t, rec.Solved())
	assert.Equal(t, StatusWon, status)

	out, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Won: true, Attempts: 2}, out)
	assert.Equal(t, "CRANE", s.Snapshot().Secret)
}

func TestSessionLoses(t *testing.T) {
	s := New(MustSecret("CRANE"), WithMaxAttempts(3))
	for i := 0; i < 2; i++ {
		_, status, err := s.SubmitWord("TRACE")
		require.NoError(t, err)
		assert.Equal(t, StatusInProgress, status)
		assert.Empty(t, s.Snapshot().Secret, "secret hidden while in progress")
	}
	_, status, err := s.SubmitWord("TRACE")
	require.NoError(t, err)
	assert.Equal(t, StatusLost, status)

	out, ok := s.Outcome()
	require.True(t, ok)
	assert.Equal(t, Outcome{Won: false, Attempts: 3}, out)
}

func TestWinOnLastAttemptIsWin(t *testing.T) {
	s := New(MustSecret("CRANE"), WithMaxAttempts(2))
	_, _, err := s.SubmitWord("TRACE")
	require.NoError(t, err)
	_, status, err := s.SubmitWord("CRANE")
	require.NoError(t, err)
	assert.Equal(t, StatusWon, status)
}

func TestTerminalSessionIsFrozen(t *testing.T) {
	s := New(MustSecret("CRANE"))
	_, _, err := s.SubmitWord("CRANE")
	require.NoError(t, err)
	before := s.Snapshot()

	assert.False(t, s.AppendLetter('A'))
	assert.False(t, s.DeleteLetter())
	_, status, err := s.SubmitWord("TRACE")
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, StatusWon, status)
	_, _, err = s.SubmitGuess()
	assert.ErrorIs(t, err, ErrGameOver)
	assert.Equal(t, before, s.Snapshot())
	assert.LessOrEqual(t, len(s.Snapshot().History), s.MaxAttempts())
}

func TestSubmitWordKeepsPartialGuessOnFailure(t *testing.T) {
	s := New(MustSecret("CRANE"), WithDictionary(dict("TRACE")))
	typeWord(t, s, "CR")

	_, _, err := s.SubmitWord("ZZZZZ")
	require.ErrorIs(t, err, ErrInvalidWord)
	assert.Equal(t, "CR", s.Current())

	_, _, err = s.SubmitWord("TRACE")
	require.NoError(t, err)
	assert.Equal(t, "", s.Current())
}

func TestResetStartsOver(t *testing.T) {
	s := New(MustSecret("CRANE"), WithID("keep"), WithMaxAttempts(1))
	_, status, err := s.SubmitWord("TRACE")
	require.NoError(t, err)
	require.Equal(t, StatusLost, status)

	s.Reset(MustSecret("ABIDES"))
	snap := s.Snapshot()
	assert.Equal(t, "keep", snap.ID)
	assert.Equal(t, StatusInProgress, snap.Status)
	assert.Equal(t, 6, snap.WordLength)
	assert.Equal(t, 1, snap.MaxAttempts)
	assert.Empty(t, snap.History)
	assert.Empty(t, snap.Hints)
	assert.Empty(t, snap.Secret)
	_, ok := s.Outcome()
	assert.False(t, ok)
}

func TestHintsNeverRegressDuringSession(t *testing.T) {
	s := New(MustSecret("CRANE"))
	var prev Hints
	for _, w := range []string{"CRAMP", "ARCED", "TRACE", "REACT", "CRANE"} {
		_, _, err := s.SubmitWord(w)
		require.NoError(t, err)
		cur := s.Hints()
		for r, m := range prev {
			assert.False(t, m.Better(cur[r]), "hint for %c regressed from %s to %s", r, m, cur[r])
		}
		assert.Equal(t, ComputeHints(s.Snapshot().History), cur)
		prev = cur
	}
}

func TestNewSecret(t *testing.T) {
	s, err := NewSecret("  crane ")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", s.String())
	assert.Equal(t, 5, s.Len())

	_, err = NewSecret("")
	assert.ErrorIs(t, err, ErrInvalidLength)
	_, err = NewSecret("cr4ne")
	assert.ErrorIs(t, err, ErrInvalidWord)
	assert.Panics(t, func() { MustSecret("") })
}

func TestShareText(t *testing.T) {
	s := New(MustSecret("CRANE"))
	_, _, _ = s.SubmitWord("TRACE")
	_, _, _ = s.SubmitWord("CRANE")
	assert.Equal(t, "Wordle Clone 2/6\n\n⬛🟩🟩🟨🟩\n🟩🟩🟩🟩🟩", ShareText(s.Snapshot()))

	lost := New(MustSecret("CRANE"), WithMaxAttempts(1))
	_, _, _ = lost.SubmitWord("ZZZZZ")
	assert.Equal(t, "Wordle Clone X/1\n\n⬛⬛⬛⬛⬛", ShareText(lost.Snapshot()))
}
