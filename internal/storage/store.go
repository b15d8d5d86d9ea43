package storage

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"
)

// ErrVariableNotFound is returned when a remote variable doesn't exist.
var ErrVariableNotFound = errors.New("remote variable not found")

// VariableStore holds the named settings of one board.
// All implementations must be thread-safe for concurrent access.
type VariableStore interface {
	// Get retrieves the encoded value of a variable.
	// Returns ErrVariableNotFound if the variable doesn't exist.
	Get(key string) ([]byte, error)

	// Put stores a value, overwriting any previous one.
	Put(key string, value []byte) error

	// Delete removes a variable. No error if it doesn't exist.
	Delete(key string) error

	// Keys returns every variable name in ascending order.
	Keys() []string

	// Stats returns storage statistics.
	Stats() Stats
}

// Stats contains statistics about a store.
type Stats struct {
	Keys  int // Number of variables
	Bytes int // Total size of all values in bytes
}

// MemoryStore implements VariableStore with an in-memory map.
// Uses sync.RWMutex for thread-safe concurrent access.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string][]byte),
	}
}

// NewMemoryStoreFrom creates a store holding a copy of vars.
func NewMemoryStoreFrom(vars map[string]string) *MemoryStore {
	m := NewMemoryStore()
	for k, v := range vars {
		m.data[k] = []byte(v)
	}
	return m
}

// Get returns a copy of the value so callers cannot modify the store.
func (m *MemoryStore) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, exists := m.data[key]
	if !exists {
		return nil, ErrVariableNotFound
	}
	return slices.Clone(value), nil
}

// Put keeps a copy of value.
func (m *MemoryStore) Put(key string, value []byte) error {
	if key == "" {
		return errors.New("empty variable name")
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = slices.Clone(value)
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	keys := make([]string, 0, len(m.data))
	for key := range m.data {
		keys = append(keys, key)
	}
	m.mu.RUnlock()

	slices.Sort(keys)
	return keys
}

func (m *MemoryStore) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, value := range m.data {
		total += len(value)
	}
	return Stats{Keys: len(m.data), Bytes: total}
}
