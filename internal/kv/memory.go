package kv

import (
	"context"
	"sync"
)

// Memory keeps everything in a map. It backs tests and the "memory" storage
// driver; nothing survives a restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, userID, collection string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.entries[Key(userID, collection)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (m *Memory) Put(_ context.Context, userID, collection string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.entries[Key(userID, collection)] = stored
	return nil
}

func (m *Memory) Delete(_ context.Context, userID, collection string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.entries, Key(userID, collection))
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

// PutMany stores all values under one lock.
func (m *Memory) PutMany(_ context.Context, userID string, values map[string][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for collection, value := range values {
		stored := make([]byte, len(value))
		copy(stored, value)
		m.entries[Key(userID, collection)] = stored
	}
	return nil
}
