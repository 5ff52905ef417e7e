package slot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File stores each slot as <dir>/<name>.json.
type File struct {
	dir string
}

// NewFile creates a file-backed slot store rooted at dir, creating dir if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create slot dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// Path returns the file backing the named slot.
func (f *File) Path(name string) string {
	return filepath.Join(f.dir, name+".json")
}

func (f *File) Get(_ context.Context, name string) ([]byte, bool, error) {
	if err := validateName(name); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(f.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read slot %s: %w", name, err)
	}
	return data, true, nil
}

// Put writes to a temp file in the same directory and renames it over the
// target so readers never observe a partial value.
func (f *File) Put(_ context.Context, name string, data []byte) error {
	if err := validateName(name); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp slot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write temp slot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close temp slot: %w", err)
	}
	if err := os.Rename(tmpPath, f.Path(name)); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace slot %s: %w", name, err)
	}
	return nil
}

func (f *File) Close() error { return nil }
