package words

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	l, err := Load(Files{})
	require.NoError(t, err)

	answers, allowed := l.Stats()
	assert.Greater(t, answers, 100)
	assert.GreaterOrEqual(t, allowed, answers)

	for _, w := range l.Answers() {
		assert.True(t, l.Accepts(w), "answer %s must be an accepted guess", w)
		assert.Len(t, w, Length)
	}
	assert.True(t, l.Accepts("crane"))
	assert.True(t, l.IsAnswer("CRANE"))
	assert.False(t, l.Accepts("ZZZZZ"))
}

func TestNewNormalises(t *testing.T) {
	l, err := New([]string{" apple ", "APPLE", "toolong", "ab1cd", "crane"}, []string{"xylyl", "hi"})
	require.NoError(t, err)
	assert.Equal(t, []string{"APPLE", "CRANE"}, l.Answers())
	a, g := l.Stats()
	assert.Equal(t, 2, a)
	assert.Equal(t, 3, g)
	assert.True(t, l.Accepts("xylyl"))
	assert.False(t, l.IsAnswer("XYLYL"))
}

func TestNewRejectsEmptyAnswers(t *testing.T) {
	_, err := New([]string{"nope"}, nil)
	assert.Error(t, err)
}

func TestLoadFromFiles(t *testing.T) {
	dir := t.TempDir()
	ans := filepath.Join(dir, "answers.txt")
	allow := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(ans, []byte("# answers\ncrane\nslate\n"), 0o644))
	require.NoError(t, os.WriteFile(allow, []byte("trace\n\nbrick\n"), 0o644))

	l, err := Load(Files{Answers: ans, Allowed: allow})
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE"}, l.Answers())
	assert.True(t, l.Accepts("TRACE"))
	assert.True(t, l.Accepts("SLATE"))

	only, err := Load(Files{Allowed: allow})
	require.NoError(t, err)
	assert.Equal(t, []string{"TRACE", "BRICK"}, only.Answers())

	_, err = Load(Files{Answers: filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
}

func TestNextSecretDrawsAnswers(t *testing.T) {
	l, err := New([]string{"crane", "slate"}, nil)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		a, err := l.NextSecret(context.Background())
		require.NoError(t, err)
		assert.Empty(t, a.SessionID)
		assert.Contains(t, []string{"CRANE", "SLATE"}, a.Word)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.NextSecret(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
