package store

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/quillault/glossolalia/pkg/ngram"
)

func TestStoreRoundTrip(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		snap := testSnapshot(t)

		if err := s.Save(ctx, "fish", snap); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		loaded, err := s.Load(ctx, "fish")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if loaded.Config != snap.Config {
			t.Errorf("loaded config = %+v, want %+v", loaded.Config, snap.Config)
		}
		if !reflect.DeepEqual(loaded.Counts, snap.Counts) {
			t.Error("loaded counts differ from the saved snapshot")
		}

		// A model restored from the loaded snapshot behaves like the
		// original.
		m, err := ngram.New(ngram.DefaultConfig())
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if err := m.Restore(loaded); err != nil {
			t.Fatalf("Restore() error = %v", err)
		}
		p, err := m.Probability([]string{"one", "fish"}, "two")
		if err != nil {
			t.Fatalf("Probability() error = %v", err)
		}
		if want := 1.5 / 4.5; math.Abs(p-want) > 1e-12 {
			t.Errorf("Probability() after round trip = %v, want %v", p, want)
		}
	})
}

func TestStoreOverwrite(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if err := s.Save(ctx, "model", testSnapshot(t)); err != nil {
			t.Fatalf("Save() error = %v", err)
		}

		m, err := ngram.New(ngram.Config{Order: 1, Smoothing: 1})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		m.Train([][]string{{"a", "b"}})
		second := m.Snapshot()

		if err := s.Save(ctx, "model", second); err != nil {
			t.Fatalf("Save() overwrite error = %v", err)
		}

		loaded, err := s.Load(ctx, "model")
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if loaded.Config != second.Config {
			t.Errorf("loaded config = %+v, want the overwriting %+v", loaded.Config, second.Config)
		}
		if !reflect.DeepEqual(loaded.Counts, second.Counts) {
			t.Error("overwrite left counts from the earlier save behind")
		}
	})
}

func TestStoreNotFound(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		if _, err := s.Load(ctx, "nonexistent"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load() error = %v, want ErrNotFound", err)
		}
		if err := s.Delete(ctx, "nonexistent"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Delete() error = %v, want ErrNotFound", err)
		}
	})
}

func TestStoreListAndDelete(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		snap := testSnapshot(t)

		if names, err := s.List(ctx); err != nil || len(names) != 0 {
			t.Fatalf("List() on empty store got = %v, %v", names, err)
		}

		for _, name := range []string{"beta", "alpha"} {
			if err := s.Save(ctx, name, snap); err != nil {
				t.Fatalf("Save(%q) error = %v", name, err)
			}
		}

		names, err := s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if !reflect.DeepEqual(names, []string{"alpha", "beta"}) {
			t.Errorf("List() got = %v, want sorted [alpha beta]", names)
		}

		if err := s.Delete(ctx, "alpha"); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		names, err = s.List(ctx)
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if !reflect.DeepEqual(names, []string{"beta"}) {
			t.Errorf("List() after delete got = %v, want [beta]", names)
		}
		if _, err := s.Load(ctx, "alpha"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Load() of deleted model error = %v, want ErrNotFound", err)
		}
	})
}

func TestStoreRejectsInvalidSnapshot(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		bad := &ngram.Snapshot{Config: ngram.Config{Order: 0}}
		if err := s.Save(ctx, "bad", bad); !errors.Is(err, ngram.ErrBadSnapshot) {
			t.Errorf("Save() error = %v, want ErrBadSnapshot", err)
		}
		if names, _ := s.List(ctx); len(names) != 0 {
			t.Errorf("rejected save still left entries behind: %v", names)
		}
	})
}
