package pending

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"bankflow.backend/internal/domain/repositories"
	redispkg "bankflow.backend/pkg/redis"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	redispkg.SetClient(redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { redispkg.SetClient(nil) })
	return NewRedisStore("pending:transfer"), mr
}

func TestRedisStore_PutGetRemove(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok", []byte("payload"), time.Minute))

	// Keys are namespaced under the store prefix.
	require.True(t, mr.Exists("pending:transfer:tok"))

	got, err := store.Get(ctx, "tok")
	require.NoError(t, err)
	require.Equal(t, []byte("payload"), got)

	_, err = store.Get(ctx, "missing")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)

	require.NoError(t, store.Remove(ctx, "tok"))
	_, err = store.Get(ctx, "tok")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	store, mr := newRedisStore(t)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "tok", []byte("v"), time.Minute))

	mr.FastForward(2 * time.Minute)
	_, err := store.Get(ctx, "tok")
	require.ErrorIs(t, err, repositories.ErrPendingNotFound)
}

func TestRedisStore_PrefixIsolation(t *testing.T) {
	_, mr := newRedisStore(t)
	ctx := context.Background()

	reg := NewRedisStore("pending:registration")
	transfer := NewRedisStore("pending:transfer")

	require.NoError(t, reg.Put(ctx, "key", []byte("reg"), time.Minute))
	require.NoError(t, transfer.Put(ctx, "key", []byte("xfer"), time.Minute))

	got, err := reg.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("reg"), got)

	got, err = transfer.Get(ctx, "key")
	require.NoError(t, err)
	require.Equal(t, []byte("xfer"), got)

	require.True(t, mr.Exists("pending:registration:key"))
	require.True(t, mr.Exists("pending:transfer:key"))
}
