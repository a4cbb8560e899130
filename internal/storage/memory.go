package storage

import (
	"context"
	"sync"
)

// MemoryStore is a map-backed Store. Failures can be injected with FailGet
// and FailSet for exercising error paths.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
	getErr error
	setErr error
	sets   int
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

// Get returns the value under key.
func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return "", false, s.getErr
	}
	v, ok := s.values[key]
	return v, ok, nil
}

// Set replaces the value under key.
func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.setErr != nil {
		return s.setErr
	}
	s.values[key] = value
	s.sets++
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error { return nil }

// FailGet makes subsequent Get calls return err. nil clears it.
func (s *MemoryStore) FailGet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getErr = err
}

// FailSet makes subsequent Set calls return err. nil clears it.
func (s *MemoryStore) FailSet(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setErr = err
}

// Sets returns the number of successful Set calls.
func (s *MemoryStore) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
