package repositories

import (
	"context"
	"errors"
	"time"
)

// ErrPendingNotFound is returned when no live entry exists for a key
// (absent, expired, or already consumed).
var ErrPendingNotFound = errors.New("pending entry not found")

// PendingStore is a time-bounded key/value store guarding two-step confirm
// flows (register → verify-email, initiate-transfer → confirm-transfer).
// Entries are not durable: a process restart may drop them, which is
// acceptable because the flows are short-lived and re-initiable.
type PendingStore interface {
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, key string) error
}
