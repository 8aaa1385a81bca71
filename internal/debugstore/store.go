// Package debugstore persists raw and parsed generation outputs per request
// and stage, for postmortem recovery when validation repeatedly fails.
// Persistence is fire-and-forget: failures never affect the pipeline, and an
// empty request id disables persistence silently.
package debugstore

import (
	"context"
	"sync"
)

// Store saves a payload keyed by request id and stage name.
type Store interface {
	Save(ctx context.Context, requestID, stage string, payload []byte)
}

// NopStore discards everything.
type NopStore struct{}

// Save does nothing.
func (NopStore) Save(context.Context, string, string, []byte) {}

// MemoryStore keeps payloads in memory, for tests and in-process postmortems.
type MemoryStore struct {
	mu       sync.RWMutex
	payloads map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{payloads: make(map[string][]byte)}
}

// Save stores a copy of the payload under requestID/stage.
func (s *MemoryStore) Save(_ context.Context, requestID, stage string, payload []byte) {
	if requestID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	s.payloads[requestID+"/"+stage] = cp
}

// Get returns the payload saved under requestID/stage, if any.
func (s *MemoryStore) Get(requestID, stage string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.payloads[requestID+"/"+stage]
	return payload, ok
}

// Stages returns the number of saved payloads for a request.
func (s *MemoryStore) Stages(requestID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for key := range s.payloads {
		if len(key) > len(requestID) && key[:len(requestID)+1] == requestID+"/" {
			count++
		}
	}
	return count
}
