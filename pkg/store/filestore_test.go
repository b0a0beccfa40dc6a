package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/quillault/glossolalia/pkg/ngram"
)

func TestFileStoreInvalidNames(t *testing.T) {
	s := setupFileStore(t)
	ctx := context.Background()
	snap := testSnapshot(t)

	for _, name := range []string{"", "bad/name", "../escape", "white space"} {
		if err := s.Save(ctx, name, snap); err == nil {
			t.Errorf("Save(%q) expected an error but got none", name)
		}
		if _, err := s.Load(ctx, name); err == nil {
			t.Errorf("Load(%q) expected an error but got none", name)
		}
	}

	if names, err := s.List(ctx); err != nil || len(names) != 0 {
		t.Errorf("rejected names must not create files, List() got = %v, %v", names, err)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	s := setupFileStore(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(s.dir, "garbage.json"), []byte("not json"), 0o644); err != nil {
		t.Fatalf("setup: could not write corrupt file: %v", err)
	}

	if _, err := s.Load(ctx, "garbage"); !errors.Is(err, ngram.ErrBadSnapshot) {
		t.Errorf("Load() of corrupt file error = %v, want ErrBadSnapshot", err)
	}
}

func TestFileStoreRejectsNonIntegerCounts(t *testing.T) {
	s := setupFileStore(t)
	ctx := context.Background()

	doc := `{"config":{"order":1,"smoothing":1,"sampling":"stochastic","temperature":1,"top_k":0},"counts":{"a":{"b":1.5}}}`
	if err := os.WriteFile(filepath.Join(s.dir, "fractional.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("setup: could not write file: %v", err)
	}

	if _, err := s.Load(ctx, "fractional"); !errors.Is(err, ngram.ErrBadSnapshot) {
		t.Errorf("Load() with a fractional count error = %v, want ErrBadSnapshot", err)
	}
}

func TestFileStoreRejectsMissingConfig(t *testing.T) {
	s := setupFileStore(t)
	ctx := context.Background()

	doc := `{"counts":{"a":{"b":1}}}`
	if err := os.WriteFile(filepath.Join(s.dir, "headless.json"), []byte(doc), 0o644); err != nil {
		t.Fatalf("setup: could not write file: %v", err)
	}

	if _, err := s.Load(ctx, "headless"); !errors.Is(err, ngram.ErrBadSnapshot) {
		t.Errorf("Load() without a config error = %v, want ErrBadSnapshot", err)
	}
}
