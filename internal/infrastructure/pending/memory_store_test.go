package pending

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/repositories"
)

func TestMemoryStore_PutGetRemove(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "reg:abc", []byte("payload"), time.Minute))

	got, err := store.Get(ctx, "reg:abc")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	_, err = store.Get(ctx, "reg:missing")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)

	require.NoError(t, store.Remove(ctx, "reg:abc"))
	_, err = store.Get(ctx, "reg:abc")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)

	// Removing an absent key is a no-op.
	require.NoError(t, store.Remove(ctx, "reg:abc"))
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "transfer:tok", []byte("v1"), 10*time.Minute))

	current = current.Add(5 * time.Minute)
	_, err := store.Get(ctx, "transfer:tok")
	require.NoError(t, err)

	current = current.Add(6 * time.Minute)
	_, err = store.Get(ctx, "transfer:tok")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)
}

func TestMemoryStore_PutReclaimsExpired(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "a", []byte("1"), time.Minute))
	require.NoError(t, store.Put(ctx, "b", []byte("2"), time.Hour))

	current = current.Add(2 * time.Minute)
	require.NoError(t, store.Put(ctx, "c", []byte("3"), time.Minute))

	require.Len(t, store.entries, 2)
	_, ok := store.entries["a"]
	require.False(t, ok)
}

func TestMemoryStore_OverwriteRefreshesTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	current := time.Now()
	store.now = func() time.Time { return current }

	require.NoError(t, store.Put(ctx, "reg:k", []byte("old"), time.Minute))
	current = current.Add(50 * time.Second)
	require.NoError(t, store.Put(ctx, "reg:k", []byte("new"), time.Minute))

	current = current.Add(30 * time.Second)
	got, err := store.Get(ctx, "reg:k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", []byte("safe"), time.Minute))

	first, err := store.Get(ctx, "k")
	require.NoError(t, err)
	first[0] = 'X'

	second, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("safe"), second)
}
