package storage

import "sync"

// MemoryStore is a process-local settings store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStore creates a store seeded with values.
func NewMemoryStore(values map[string]string) *MemoryStore {
	store := &MemoryStore{values: make(map[string]string, len(values))}
	for key, value := range values {
		store.values[key] = value
	}
	return store
}

func (store *MemoryStore) Get(key string) (string, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.values[key]
	return value, ok
}

func (store *MemoryStore) Set(key, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.values[key] = value
	return nil
}
