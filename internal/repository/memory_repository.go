package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type memoryEntry struct {
	data      []byte
	updatedAt time.Time
}

// memoryRepository implements CartRepository in process memory.
type memoryRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  zerolog.Logger
}

// NewMemoryRepository creates an in-memory cart repository. Documents older than
// ttl are treated as absent; a zero ttl keeps them forever.
func NewMemoryRepository(ttl time.Duration, logger zerolog.Logger) CartRepository {
	return &memoryRepository{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger.With().Str("repository", "memory").Logger(),
	}
}

// Load returns the document stored under key.
func (r *memoryRepository) Load(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, nil
	}

	if expired(entry.updatedAt, r.ttl, r.now()) {
		r.logger.Debug().Str("key", key).Msg("cart expired")
		return nil, nil
	}

	// Callers own the returned slice
	data := make([]byte, len(entry.data))
	copy(data, entry.data)
	return data, nil
}

// Save stores data under key.
func (r *memoryRepository) Save(ctx context.Context, key string, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)

	r.mu.Lock()
	r.entries[key] = memoryEntry{data: stored, updatedAt: r.now()}
	r.mu.Unlock()

	return nil
}

// Delete removes the document stored under key.
func (r *memoryRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()

	return nil
}

// expired reports whether a document written at updatedAt is past its ttl.
func expired(updatedAt time.Time, ttl time.Duration, now time.Time) bool {
	return ttl > 0 && now.Sub(updatedAt) > ttl
}
