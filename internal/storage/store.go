package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Store abstracts where the source .xlsx files live. The core only ever
// lists names, fetches bytes, and writes bytes; a local folder and a
// remote dataset repository both satisfy this.
type Store interface {
	// List returns the names of all source files, sorted ascending.
	List(ctx context.Context) ([]string, error)
	// Fetch returns the raw bytes of one named file.
	Fetch(ctx context.Context, name string) ([]byte, error)
	// Put writes a file, overwriting any existing one with that name.
	Put(ctx context.Context, name string, data []byte) error
}

// LocalStore is a Store backed by a single directory. Only .xlsx entries
// are listed; names are the bare file names, never paths.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the directory if needed and returns a store
// rooted at it.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".xlsx") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *LocalStore) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", name, err)
	}
	return data, nil
}

func (s *LocalStore) Put(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.dir, filepath.Base(name)), data, 0o644); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}
