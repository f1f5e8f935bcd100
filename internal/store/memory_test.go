package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haydenChuu/wordle-clone/internal/play"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Error(t, m.Save(ctx, &Entry{}))

	e := &Entry{ID: "g1", Game: play.New(play.Config{}), PlayerID: "p1", Mode: "random"}
	require.NoError(t, m.Save(ctx, e))
	got, err := m.Get(ctx, "g1")
	require.NoError(t, err)
	assert.Same(t, e, got)
	assert.Equal(t, 1, m.Len())

	require.NoError(t, m.Delete(ctx, "g1"))
	require.NoError(t, m.Delete(ctx, "g1"))
	_, err = m.Get(ctx, "g1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweepDropsIdleEntries(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewMemoryStore()
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Save(ctx, &Entry{ID: "old"}))
	clock = clock.Add(30 * time.Minute)
	require.NoError(t, m.Save(ctx, &Entry{ID: "new"}))
	clock = clock.Add(45 * time.Minute)

	assert.Equal(t, 1, m.Sweep(time.Hour))
	_, err := m.Get(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(ctx, "new")
	assert.NoError(t, err)
}
