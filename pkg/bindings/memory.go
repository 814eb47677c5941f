package bindings

import (
	"context"
	"sync"
)

// MemoryStore implements Store using an in-memory map.
// All bindings are lost when the process exits, so it is intended for
// tests and single-instance development setups.
//
// MemoryStore is thread-safe using sync.RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	bindings map[string]Environment
}

// NewMemoryStore creates an empty in-memory binding store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		bindings: make(map[string]Environment),
	}
}

// Get returns the bound environment for a tenant, if any.
func (s *MemoryStore) Get(_ context.Context, tenantID string) (Environment, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	env, ok := s.bindings[tenantID]
	return env, ok, nil
}

// Put creates or overwrites the binding for a tenant.
func (s *MemoryStore) Put(_ context.Context, tenantID string, env Environment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.bindings[tenantID] = env
	return nil
}

// Delete removes the binding for a tenant. Idempotent.
func (s *MemoryStore) Delete(_ context.Context, tenantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.bindings, tenantID)
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error {
	return nil
}
