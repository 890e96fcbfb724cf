// Package cache provides the process-lifetime memo store shared by the
// directory adapter and the reconciliation engine.
//
// Entries are keyed by immutable input tuples and never evicted or
// invalidated: the directory listing is quasi-static and reconciled profiles
// are pure functions of (player, fetch flags). The store is injected rather
// than package-global so tests can swap in a fresh instance per run.
package cache

import "sync"

// Store is a thread-safe append-only key/value store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]any
	enabled bool
}

// New creates a new store. Pass enabled=false to create a no-op store.
func New(enabled bool) *Store {
	return &Store{
		entries: make(map[string]any),
		enabled: enabled,
	}
}

// Get retrieves a cached value.
func (s *Store) Get(key string) (any, bool) {
	if !s.enabled {
		return nil, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[key]
	return v, ok
}

// Set stores a value. Values must not be mutated after insertion; concurrent
// readers receive the same instance.
func (s *Store) Set(key string, v any) {
	if !s.enabled {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = v
}

// Stats returns store statistics for the health endpoint.
func (s *Store) Stats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return map[string]any{
		"enabled":    s.enabled,
		"total_keys": len(s.entries),
	}
}
