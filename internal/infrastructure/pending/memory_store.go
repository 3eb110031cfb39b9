package pending

import (
	"context"
	"sync"
	"time"

	"bankflow.backend/internal/domain/repositories"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is a mutex-guarded in-process PendingStore. Expired entries
// are reclaimed lazily on lookup and opportunistically on writes, so no
// background sweeper is needed. Suitable for single-instance deployments
// and tests; multi-instance deployments should use the Redis store.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore creates a new in-memory pending store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Put stores value under key with the given TTL
func (s *MemoryStore) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for k, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, k)
		}
	}

	buf := make([]byte, len(value))
	copy(buf, value)
	s.entries[key] = memoryEntry{value: buf, expiresAt: now.Add(ttl)}
	return nil
}

// Get returns the live value for key, or ErrPendingNotFound
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return nil, repositories.ErrPendingNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.entries, key)
		return nil, repositories.ErrPendingNotFound
	}

	buf := make([]byte, len(entry.value))
	copy(buf, entry.value)
	return buf, nil
}

// Remove deletes the entry for key, if any
func (s *MemoryStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
