package repo

import (
	"context"
	"sync"
)

// InMemorySnapshotStore is an in-memory implementation of SnapshotStore.
type InMemorySnapshotStore struct {
	mu        sync.RWMutex
	snapshots map[string][]byte
	saves     int
}

// NewInMemorySnapshotStore creates a new instance of InMemorySnapshotStore.
func NewInMemorySnapshotStore() *InMemorySnapshotStore {
	return &InMemorySnapshotStore{
		snapshots: map[string][]byte{},
	}
}

// Load retrieves a snapshot by its key.
func (r *InMemorySnapshotStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Save replaces the snapshot stored under key.
func (r *InMemorySnapshotStore) Save(_ context.Context, key string, data []byte) error {
	if key == "" {
		return ErrEmptyKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.snapshots[key] = append([]byte(nil), data...)
	r.saves++
	return nil
}

// SaveAll replaces every snapshot in entries under one lock.
func (r *InMemorySnapshotStore) SaveAll(_ context.Context, entries map[string][]byte) error {
	for key := range entries {
		if key == "" {
			return ErrEmptyKey
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, data := range entries {
		r.snapshots[key] = append([]byte(nil), data...)
	}
	r.saves++
	return nil
}

// Saves reports how many writes the store has accepted.
func (r *InMemorySnapshotStore) Saves() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.saves
}
