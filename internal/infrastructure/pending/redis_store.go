package pending

import (
	"context"
	"errors"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"bankflow.backend/internal/domain/repositories"
	"bankflow.backend/pkg/redis"
)

var (
	redisSet = redis.Set
	redisGet = redis.Get
	redisDel = redis.Del
)

// RedisStore is a PendingStore backed by the shared Redis client, so a
// two-step confirm flow survives routing across multiple instances.
// Expiry is delegated to Redis TTLs.
type RedisStore struct {
	prefix string
}

// NewRedisStore creates a new Redis-backed pending store. The prefix
// namespaces the flow (e.g. "pending:registration", "pending:transfer").
func NewRedisStore(prefix string) *RedisStore {
	return &RedisStore{prefix: prefix}
}

func (s *RedisStore) storageKey(key string) string {
	return s.prefix + ":" + key
}

// Put stores value under key with the given TTL
func (s *RedisStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return redisSet(ctx, s.storageKey(key), value, ttl)
}

// Get returns the live value for key, or ErrPendingNotFound
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := redisGet(ctx, s.storageKey(key))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, repositories.ErrPendingNotFound
		}
		return nil, err
	}
	return []byte(val), nil
}

// Remove deletes the entry for key, if any
func (s *RedisStore) Remove(ctx context.Context, key string) error {
	return redisDel(ctx, s.storageKey(key))
}
