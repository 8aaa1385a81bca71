// Package cache provides the content-hash cache shared across requests.
// Only validated results enter the store: entries are pure functions of their
// key and immutable once written, so concurrent writers racing on the same key
// are harmless and no invalidation is ever needed. The backing store is
// pluggable.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Store is a write-once key/value store keyed by content hash.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Key derives a cache key by hashing the semantically relevant inputs of a
// generation call. Parts are joined with a NUL separator, which cannot occur
// in the text inputs, so distinct part lists never collide.
func Key(parts ...string) string {
	h := sha256.New()
	h.Write([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(h.Sum(nil))
}

// MemoryStore is the in-process map-backed store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Get returns the value for key if present.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	return value, ok, nil
}

// Set stores value under key. Existing entries are left alone: values are
// immutable once written.
func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		return nil
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.entries[key] = cp
	return nil
}

// Len returns the number of cached entries.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// group deduplicates concurrent computations of the same key in-process.
var group singleflight.Group

// computed pairs a computation's payload with whether it may be stored.
type computed struct {
	payload   []byte
	cacheable bool
}

// GetOrCompute returns the cached value for key, or computes and returns it.
// The value is written to the store only when compute reports it cacheable, so
// degraded results (fallbacks, transient provider failures) never outlive the
// request that produced them. Concurrent callers computing the same key share
// one computation. A store read/write error falls through to computing fresh:
// the cache is an optimization, never a correctness dependency.
func GetOrCompute(ctx context.Context, store Store, key string, compute func() ([]byte, bool, error)) ([]byte, bool, error) {
	if store != nil {
		if value, ok, err := store.Get(ctx, key); err == nil && ok {
			return value, true, nil
		}
	}

	value, err, _ := group.Do(key, func() (any, error) {
		payload, cacheable, err := compute()
		if err != nil {
			return nil, err
		}
		return computed{payload: payload, cacheable: cacheable}, nil
	})
	if err != nil {
		return nil, false, err
	}

	result := value.(computed)
	if store != nil && result.cacheable {
		_ = store.Set(ctx, key, result.payload)
	}
	return result.payload, false, nil
}
