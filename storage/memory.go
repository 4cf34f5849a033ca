package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process Store used in tests and for running without a
// database. Values round-trip through JSON so it behaves like the Postgres
// store, including losing identity between Save and Load.
type MemoryStore struct {
	mu sync.RWMutex
	t  map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{t: make(map[string][]byte)}
}

func (s *MemoryStore) Load(_ context.Context, key string, v interface{}) error {
	s.mu.RLock()
	raw, ok := s.t[key]
	s.mu.RUnlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(raw, v)
}

func (s *MemoryStore) Save(_ context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.t[key] = raw
	s.mu.Unlock()
	return nil
}

// Keys returns the stored snapshot keys, for test assertions.
func (s *MemoryStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.t))
	for k := range s.t {
		keys = append(keys, k)
	}
	return keys
}
