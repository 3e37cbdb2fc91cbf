package repo

import (
	"context"
	"encoding/json"
	"fmt"
)

// Snapshot is a typed view over one key of a SnapshotStore.
type Snapshot[T any] struct {
	store SnapshotStore
	key   string
}

func NewSnapshot[T any](store SnapshotStore, key string) *Snapshot[T] {
	return &Snapshot[T]{store: store, key: key}
}

func (s *Snapshot[T]) Key() string {
	return s.key
}

// Load decodes the stored snapshot. The boolean is false when nothing was stored yet.
func (s *Snapshot[T]) Load(ctx context.Context) (T, bool, error) {
	var value T
	data, ok, err := s.store.Load(ctx, s.key)
	if err != nil || !ok {
		return value, ok, err
	}
	if err := json.Unmarshal(data, &value); err != nil {
		return value, false, fmt.Errorf("failed to decode %s snapshot: %w", s.key, err)
	}
	return value, true, nil
}

func (s *Snapshot[T]) Save(ctx context.Context, value T) error {
	data, err := s.Encode(value)
	if err != nil {
		return err
	}
	return s.store.Save(ctx, s.key, data)
}

// Encode serializes value for use with SnapshotStore.SaveAll.
func (s *Snapshot[T]) Encode(value T) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s snapshot: %w", s.key, err)
	}
	return data, nil
}

// PrefixedKey joins a namespace prefix and a snapshot key.
func PrefixedKey(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + ":" + key
}
