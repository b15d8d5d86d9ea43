// Package storage holds the remote variables of a simulated board.
//
// # Overview
//
// Real motor control boards expose a set of named, board specific settings
// ("remote variables") that are read and written as opaque encoded values.
// VariableStore is the abstraction the simulated board uses for them;
// MemoryStore is the only implementation.
//
// # Thread Safety
//
// MemoryStore guards its map with a sync.RWMutex. Values are copied on the
// way in and on the way out, so callers never share memory with the store.
//
// # Usage
//
//	vars := storage.NewMemoryStoreFrom(map[string]string{"kinematic_mj": "1 0 0"})
//	_ = vars.Put("velocity_shift", []byte("8"))
//	keys := vars.Keys() // [kinematic_mj velocity_shift]
package storage
