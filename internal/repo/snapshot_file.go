package repo

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileSnapshotStore keeps one JSON file per snapshot key inside a directory.
type FileSnapshotStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileSnapshotStore(dir string) (*FileSnapshotStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot dir: %w", err)
	}
	return &FileSnapshotStore{dir: dir}, nil
}

// fileName escapes key reversibly so distinct keys never share a file and no key can leave dir.
func fileName(key string) string {
	name := url.QueryEscape(key)
	if strings.HasPrefix(name, ".") {
		name = "%2E" + name[1:]
	}
	return name + ".json"
}

func (r *FileSnapshotStore) path(key string) string {
	return filepath.Join(r.dir, fileName(key))
}

func (r *FileSnapshotStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, ErrEmptyKey
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s snapshot: %w", key, err)
	}
	return data, true, nil
}

func (r *FileSnapshotStore) Save(ctx context.Context, key string, data []byte) error {
	return r.SaveAll(ctx, map[string][]byte{key: data})
}

// SaveAll writes every entry to a temp file first and renames them into place only once all
// writes succeeded. A crash between two renames can still leave one file updated.
func (r *FileSnapshotStore) SaveAll(_ context.Context, entries map[string][]byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	temps := make(map[string]string, len(entries))
	cleanup := func() {
		for _, tmp := range temps {
			_ = os.Remove(tmp)
		}
	}

	for key, data := range entries {
		if key == "" {
			cleanup()
			return ErrEmptyKey
		}
		tmp, err := os.CreateTemp(r.dir, ".snapshot-*")
		if err != nil {
			cleanup()
			return fmt.Errorf("failed to create temp file: %w", err)
		}
		temps[key] = tmp.Name()
		if _, err := tmp.Write(data); err != nil {
			tmp.Close()
			cleanup()
			return fmt.Errorf("failed to write %s snapshot: %w", key, err)
		}
		if err := tmp.Close(); err != nil {
			cleanup()
			return fmt.Errorf("failed to write %s snapshot: %w", key, err)
		}
	}

	for key, tmp := range temps {
		if err := os.Rename(tmp, r.path(key)); err != nil {
			cleanup()
			return fmt.Errorf("failed to replace %s snapshot: %w", key, err)
		}
		delete(temps, key)
	}
	return nil
}
