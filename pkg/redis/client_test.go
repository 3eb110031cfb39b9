package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestInitInvalidURL(t *testing.T) {
	err := Init("://invalid-url", "")
	assert.Error(t, err)
}

func TestBasicOps(t *testing.T) {
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	assert.NotNil(t, GetClient())

	ctx := context.Background()

	assert.NoError(t, Set(ctx, "k", "v", time.Minute))
	val, err := Get(ctx, "k")
	assert.NoError(t, err)
	assert.Equal(t, "v", val)

	ok, err := SetNX(ctx, "k", "other", time.Minute)
	assert.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, Del(ctx, "k"))
	_, err = Get(ctx, "k")
	assert.ErrorIs(t, err, goredis.Nil)

	ok, err = SetNX(ctx, "k", "fresh", time.Minute)
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestClose(t *testing.T) {
	assert.NoError(t, Close()) // nil client is a no-op

	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	assert.NoError(t, Close())
	assert.Nil(t, GetClient())
}

func TestBasicOpsWithUnreachableRedis(t *testing.T) {
	cli := goredis.NewClient(&goredis.Options{
		Addr:         "127.0.0.1:0", // invalid/unreachable
		DialTimeout:  50 * time.Millisecond,
		ReadTimeout:  50 * time.Millisecond,
		WriteTimeout: 50 * time.Millisecond,
	})
	SetClient(cli)
	t.Cleanup(func() { SetClient(nil) })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	assert.Error(t, Set(ctx, "k", "v", time.Second))
	_, err := Get(ctx, "k")
	assert.Error(t, err)
	assert.Error(t, Del(ctx, "k"))
	_, err = SetNX(ctx, "k", "v", time.Second)
	assert.Error(t, err)
}
