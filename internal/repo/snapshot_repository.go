package repo

import (
	"context"
	"errors"
)

// Snapshot keys of the two persisted collections.
const (
	CatalogKey = "catalog"
	CartKey    = "cart"
)

// SnapshotStore persists whole serialized collections under a key. Every write replaces the
// previous value; there are no partial updates and no versioning.
type SnapshotStore interface {
	// Load returns the stored bytes and whether the key exists.
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, data []byte) error
	// SaveAll writes every entry or none of them.
	SaveAll(ctx context.Context, entries map[string][]byte) error
}

// ErrEmptyKey is returned when a snapshot key is blank.
var ErrEmptyKey = errors.New("snapshot key is empty")
