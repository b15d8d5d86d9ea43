package storage

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore tests the in-memory variable store
func TestMemoryStore(t *testing.T) {
	t.Run("new store is empty", func(t *testing.T) {
		store := NewMemoryStore()

		assert.Empty(t, store.Keys())
		_, err := store.Get("missing")
		assert.ErrorIs(t, err, ErrVariableNotFound)
	})

	t.Run("put and get values", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Put("velocity_shift", []byte("8")))
		value, err := store.Get("velocity_shift")
		require.NoError(t, err)
		assert.Equal(t, []byte("8"), value)
	})

	t.Run("overwrite existing key", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Put("k", []byte("one")))
		require.NoError(t, store.Put("k", []byte("two")))
		value, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("two"), value)
		assert.Equal(t, Stats{Keys: 1, Bytes: 3}, store.Stats())
	})

	t.Run("values are copied", func(t *testing.T) {
		store := NewMemoryStore()

		in := []byte("abc")
		require.NoError(t, store.Put("k", in))
		in[0] = 'x'

		out, err := store.Get("k")
		require.NoError(t, err)
		assert.Equal(t, []byte("abc"), out)

		out[1] = 'y'
		again, _ := store.Get("k")
		assert.Equal(t, []byte("abc"), again)
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		store := NewMemoryStoreFrom(map[string]string{"k": "v"})

		require.NoError(t, store.Delete("k"))
		require.NoError(t, store.Delete("k"))
		_, err := store.Get("k")
		assert.ErrorIs(t, err, ErrVariableNotFound)
	})

	t.Run("keys are sorted", func(t *testing.T) {
		store := NewMemoryStoreFrom(map[string]string{"c": "3", "a": "1", "b": "2"})

		assert.Equal(t, []string{"a", "b", "c"}, store.Keys())
	})

	t.Run("empty key rejected", func(t *testing.T) {
		store := NewMemoryStore()

		assert.Error(t, store.Put("", []byte("v")))
		assert.Empty(t, store.Keys())
	})
}

// TestMemoryStoreConcurrency exercises the store from many goroutines
func TestMemoryStoreConcurrency(t *testing.T) {
	store := NewMemoryStore()
	const workers = 16
	const perWorker = 50

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d_%d", w, i)
				assert.NoError(t, store.Put(key, []byte(key)))
				_, err := store.Get(key)
				assert.NoError(t, err)
				_ = store.Keys()
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker, store.Stats().Keys)
}
