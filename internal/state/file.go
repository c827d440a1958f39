package state

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// FileStore keeps records as <dir>/<name>.yaml.
type FileStore struct {
	dir string
	now func() time.Time
}

// NewFileStore creates a store rooted at dir. The directory is created on
// the first save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

func (s *FileStore) Load(_ context.Context, name string) (*Record, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state %s: %w", name, err)
	}
	return decode(data)
}

func (s *FileStore) Save(_ context.Context, name string, r *Record) error {
	r.UpdatedAt = s.now().UTC()
	data, err := encode(r)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated record.
	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		return fmt.Errorf("failed to write state %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) Delete(_ context.Context, name string) error {
	err := os.Remove(s.path(name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete state %s: %w", name, err)
	}
	return nil
}
