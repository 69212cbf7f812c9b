package credstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps the credential record in a JSON file on disk, which
// is what "survives reloads" means for a locally-run portal.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Save(ctx context.Context, r Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("credstore: failed to marshal record: %w", err)
	}

	// Write-then-rename so a crash mid-write can't leave a torn record
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("credstore: failed to write %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("credstore: failed to replace %s: %w", f.path, err)
	}

	return nil
}

func (f *FileStore) Load(ctx context.Context) (*Record, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, nil // nothing stored
	}
	if err != nil {
		return nil, fmt.Errorf("credstore: failed to read %s: %w", f.path, err)
	}

	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("credstore: failed to unmarshal record: %w", err)
	}

	return &r, nil
}

func (f *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(f.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("credstore: failed to remove %s: %w", f.path, err)
	}
	// Clean up a leftover temp file too, so nothing stale can reappear
	_ = os.Remove(filepath.Clean(f.path + ".tmp"))
	return nil
}
