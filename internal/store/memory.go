// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for tests and for servers started with STORE=memory, when records
// only need to last as long as the process.
//
// Characteristics:
//   - Values are kept in a map of owners to key/value maps.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"
)

// Store is a key/value store namespaced by owner (one namespace per player).
// Implementations may be backed by memory (this file), SQLite, etc.
type Store interface {
	// Get returns the value under key and whether it was present.
	Get(ctx context.Context, owner, key string) (string, bool, error)

	// Write applies every change in b to owner's namespace, all or nothing.
	Write(ctx context.Context, owner string, b Batch) error

	// Close releases underlying resources.
	Close() error
}

// Batch is a set of changes applied together. Deleting a missing key is not an error.
type Batch struct {
	Puts    map[string]string
	Deletes []string
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex                 // guards values
	values map[string]map[string]string // owner -> key -> value
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{values: make(map[string]map[string]string)}
}

// Get looks up key in owner's namespace.
func (m *memory) Get(ctx context.Context, owner, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[owner][key]
	return v, ok, nil
}

// Write applies b under the write lock; empty namespaces are removed.
func (m *memory) Write(ctx context.Context, owner string, b Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ns, ok := m.values[owner]
	if !ok {
		ns = make(map[string]string, len(b.Puts))
		m.values[owner] = ns
	}
	for k, v := range b.Puts {
		ns[k] = v
	}
	for _, k := range b.Deletes {
		delete(ns, k)
	}
	if len(ns) == 0 {
		delete(m.values, owner)
	}
	return nil
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }
