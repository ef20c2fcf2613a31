// Package storage provides in-memory keyed stores.
package storage

import (
	"sync"

	"github.com/hammamikhairi/ottocost/internal/logger"
)

// MemoryStore is an in-memory store of values by key. Safe for concurrent
// access.
type MemoryStore[K comparable, V any] struct {
	mu     sync.RWMutex
	name   string
	values map[K]V
	log    *logger.Logger
}

// NewMemoryStore creates an empty store. name only labels log lines.
func NewMemoryStore[K comparable, V any](name string, log *logger.Logger) *MemoryStore[K, V] {
	return &MemoryStore[K, V]{
		name:   name,
		values: make(map[K]V),
		log:    log,
	}
}

// Save stores value under key. Overwrites if it already exists.
func (s *MemoryStore[K, V]) Save(key K, value V) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("%s: saving %v", s.name, key)
	s.values[key] = value
}

// Load retrieves the value stored under key.
func (s *MemoryStore[K, V]) Load(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		s.log.Debug("%s: miss %v", s.name, key)
	}
	return v, ok
}

// Len returns the number of stored values.
func (s *MemoryStore[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
