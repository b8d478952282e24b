package salesreport

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *SnapshotStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewSnapshotStore(client, time.Hour)
}

func TestSnapshotOnlyLatestGenerationCommits(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	first, err := store.Begin(ctx, "sess-1")
	require.NoError(t, err)
	second, err := store.Begin(ctx, "sess-1")
	require.NoError(t, err)
	assert.Greater(t, second, first)

	newer := exportReport()
	newer.Branch.Name = "Cabang Baru"
	require.NoError(t, store.Commit(ctx, "sess-1", second, newer, now))

	older := exportReport()
	older.Branch.Name = "Cabang Lama"
	assert.ErrorIs(t, store.Commit(ctx, "sess-1", first, older, now), ErrStaleGeneration)

	snap, ok, err := store.Load(ctx, "sess-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Cabang Baru", snap.Report.Branch.Name)
	assert.Equal(t, second, snap.Generation)
	require.Len(t, snap.Report.Transactions, 2)
	assert.Equal(t, "Budi", snap.Report.Transactions[0].CustomerName())
	assert.True(t, snap.Report.Transactions[0].Time().Equal(time.Date(2024, 5, 1, 14, 30, 0, 0, time.UTC)))
}

func TestSnapshotIsPerOwner(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	gen, err := store.Begin(ctx, "a")
	require.NoError(t, err)
	require.NoError(t, store.Commit(ctx, "a", gen, exportReport(), time.Now()))

	_, ok, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Clear(ctx, "a"))
	_, ok, err = store.Load(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}
