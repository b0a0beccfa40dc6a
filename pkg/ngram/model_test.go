package ngram

import (
	"errors"
	"reflect"
	"testing"
)

func TestContinuations(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 1, Smoothing: 1})

	// "fish" is followed by "two" once, the end sentinel twice and "blue"
	// once, in that encounter order.
	conts, total, err := m.Continuations([]string{"fish"})
	if err != nil {
		t.Fatalf("Continuations() error = %v", err)
	}
	if total != 4 {
		t.Errorf("expected a total count of 4 for 'fish', got %d", total)
	}
	expected := []Continuation{
		{Token: "two", Count: 1},
		{Token: EOSToken, Count: 2},
		{Token: "blue", Count: 1},
	}
	if !reflect.DeepEqual(conts, expected) {
		t.Errorf("Continuations() got = %+v, want %+v", conts, expected)
	}

	// An unseen context yields no continuations and no error.
	conts, total, err = m.Continuations([]string{"green"})
	if err != nil {
		t.Fatalf("Continuations() for unseen context error = %v", err)
	}
	if conts != nil || total != 0 {
		t.Errorf("expected no continuations for an unseen context, got %+v (total %d)", conts, total)
	}

	// A context of the wrong length is an argument error.
	_, _, err = m.Continuations([]string{"one", "fish"})
	if !errors.Is(err, ErrContextLength) {
		t.Errorf("Continuations() error = %v, want ErrContextLength", err)
	}
}

func TestReset(t *testing.T) {
	m := trainedTestModel(t, DefaultConfig())
	if m.VocabSize() == 0 {
		t.Fatal("setup: expected a trained model")
	}

	m.Reset()
	s := m.Stats()
	if s != (Stats{}) {
		t.Errorf("expected empty stats after reset, got %+v", s)
	}
	if m.Config().Order != 2 {
		t.Errorf("Reset() must not touch the config, got order %d", m.Config().Order)
	}

	// Resetting again changes nothing.
	m.Reset()
	if s2 := m.Stats(); s2 != s {
		t.Errorf("second Reset() changed stats: %+v vs %+v", s2, s)
	}

	// A reset model trains from scratch as if fresh.
	m.Train(fishCorpus())
	fresh := trainedTestModel(t, DefaultConfig())
	if !reflect.DeepEqual(m.Snapshot().Counts, fresh.Snapshot().Counts) {
		t.Error("training after Reset() differs from training a fresh model")
	}
}

func TestMerge(t *testing.T) {
	a := newTestModel(t, Config{Order: 1, Smoothing: 1})
	a.Train([][]string{Wrap([]string{"one", "fish"})})
	b := newTestModel(t, Config{Order: 1, Smoothing: 1})
	b.Train([][]string{
		Wrap([]string{"red", "fish"}),
		Wrap([]string{"one", "fish"}),
	})

	if err := a.Merge(b); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	// Shared transitions sum, new ones appear.
	conts, total, err := a.Continuations([]string{SOSToken})
	if err != nil {
		t.Fatalf("Continuations() error = %v", err)
	}
	if total != 3 {
		t.Errorf("expected a total of 3 start transitions after merge, got %d", total)
	}
	counts := map[string]int{}
	for _, c := range conts {
		counts[c.Token] = c.Count
	}
	if counts["one"] != 2 || counts["red"] != 1 {
		t.Errorf("got unexpected merged counts: %+v", counts)
	}

	// The merge source is left untouched.
	if got := b.Stats().TotalCount; got != 6 {
		t.Errorf("merge source changed, total count = %d, want 6", got)
	}

	// Models of different order cannot be merged.
	c := newTestModel(t, Config{Order: 2, Smoothing: 1})
	if err := a.Merge(c); !errors.Is(err, ErrConfig) {
		t.Errorf("Merge() across orders error = %v, want ErrConfig", err)
	}

	// Merging nil or the model itself is a no-op.
	before := a.Stats()
	if err := a.Merge(nil); err != nil {
		t.Errorf("Merge(nil) error = %v", err)
	}
	if err := a.Merge(a); err != nil {
		t.Errorf("merging a model into itself error = %v", err)
	}
	if after := a.Stats(); after != before {
		t.Errorf("no-op merges changed stats: %+v vs %+v", after, before)
	}
}

func TestStats(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 2, Smoothing: 1})

	s := m.Stats()
	want := Stats{VocabSize: 7, Contexts: 8, Transitions: 8, TotalCount: 8}
	if s != want {
		t.Errorf("Stats() got = %+v, want %+v", s, want)
	}

	empty := newTestModel(t, DefaultConfig())
	if s := empty.Stats(); s != (Stats{}) {
		t.Errorf("expected zero stats for an untrained model, got %+v", s)
	}
}
