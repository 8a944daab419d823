package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/plus3/arcade/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTempStore(t *testing.T) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	_, err := Open("  ")
	assert.Error(t, err)
}

func TestGetMissingKey(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	value, ok, err := store.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, value)
}

func TestPutOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)

	require.NoError(t, store.Put(ctx, "k", []byte("one")))
	require.NoError(t, store.Put(ctx, "k", []byte("two")))

	value, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", string(value))
}

func TestRecordRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := openTempStore(t)

	want := stats.NexusRecord{
		HighScore:            900,
		TotalPlayTime:        61.5,
		EnemiesKilled:        12,
		AchievementsUnlocked: []string{"firstKill"},
		UpgradesUnlocked:     []string{"damage"},
	}
	require.NoError(t, stats.Save(ctx, store, stats.KeyNexusPersistent, want))

	got, err := stats.Load(ctx, store, stats.KeyNexusPersistent, stats.NexusRecord{})
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReopenKeepsData(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stats.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, stats.Save(ctx, store, stats.KeyRunnerHighScore, 77))
	require.NoError(t, store.Close())

	store, err = Open(path)
	require.NoError(t, err)
	defer store.Close()

	score, err := stats.Load(ctx, store, stats.KeyRunnerHighScore, 0)
	require.NoError(t, err)
	assert.Equal(t, 77, score)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	store := openTempStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Put(ctx, "k", nil), context.Canceled)
}
