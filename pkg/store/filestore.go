package store

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"

	"github.com/quillault/glossolalia/pkg/ngram"
)

// nameRe limits model names to filesystem-safe characters.
var nameRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore persists each model snapshot as an indented JSON document named
// <model>.json in a single directory. Writes go through an atomic rename,
// so a crash mid-save never leaves a truncated file behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("could not create store directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) (string, error) {
	if !nameRe.MatchString(name) {
		return "", fmt.Errorf("invalid model name %q", name)
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// Save writes the snapshot under name, replacing any previous one.
func (s *FileStore) Save(ctx context.Context, name string, snap *ngram.Snapshot) error {
	if err := ngram.ValidateSnapshot(snap); err != nil {
		return err
	}
	path, err := s.path(name)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode snapshot: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("could not write %s: %w", path, err)
	}
	return nil
}

// Load reads, decodes and validates the snapshot saved under name.
func (s *FileStore) Load(ctx context.Context, name string) (*ngram.Snapshot, error) {
	path, err := s.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("could not read %s: %w", path, err)
	}

	var snap ngram.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ngram.ErrBadSnapshot, err)
	}
	if err := ngram.ValidateSnapshot(&snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// List returns the names of all saved models in sorted order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("could not read store directory: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes the snapshot saved under name.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return fmt.Errorf("could not delete %s: %w", path, err)
	}
	return nil
}
