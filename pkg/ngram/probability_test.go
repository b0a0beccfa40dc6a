package ngram

import (
	"errors"
	"math"
	"testing"
)

func TestProbability(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 1, Smoothing: 1})
	// "fish" is followed by "two" once, the end sentinel twice and "blue"
	// once; the vocabulary has 7 tokens.

	p, err := m.Probability([]string{"fish"}, EOSToken)
	if err != nil {
		t.Fatalf("Probability() error = %v", err)
	}
	if want := (2.0 + 1.0) / (4.0 + 1.0*7.0); math.Abs(p-want) > 1e-12 {
		t.Errorf("Probability() got = %v, want %v", p, want)
	}

	// An unobserved continuation keeps the smoothing floor.
	p, err = m.Probability([]string{"fish"}, "red")
	if err != nil {
		t.Fatalf("Probability() error = %v", err)
	}
	if want := 1.0 / 11.0; math.Abs(p-want) > 1e-12 {
		t.Errorf("Probability() for unobserved continuation got = %v, want %v", p, want)
	}

	// A token outside the vocabulary has probability zero.
	p, err = m.Probability([]string{"fish"}, "green")
	if err != nil {
		t.Fatalf("Probability() error = %v", err)
	}
	if p != 0 {
		t.Errorf("Probability() for out-of-vocabulary token got = %v, want 0", p)
	}
}

func TestProbabilityNormalization(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 1, Smoothing: 0.5})
	vocab := []string{SOSToken, "one", "fish", "two", EOSToken, "red", "blue"}

	for _, context := range [][]string{{"fish"}, {"two"}, {"never-seen"}} {
		var sum float64
		for _, tok := range vocab {
			p, err := m.Probability(context, tok)
			if err != nil {
				t.Fatalf("Probability(%v, %q) error = %v", context, tok, err)
			}
			sum += p
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("probabilities for context %v sum to %v, want 1", context, sum)
		}
	}
}

func TestProbabilityUnseenContextIsUniform(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 1, Smoothing: 1})

	p, err := m.Probability([]string{"green"}, "fish")
	if err != nil {
		t.Fatalf("Probability() error = %v", err)
	}
	if want := 1.0 / 7.0; math.Abs(p-want) > 1e-12 {
		t.Errorf("expected the uniform probability %v for an unseen context, got %v", want, p)
	}
}

func TestProbabilityZeroSmoothing(t *testing.T) {
	m := trainedTestModel(t, Config{Order: 1, Smoothing: 0})

	// Plain relative frequency of the observed continuations.
	p, err := m.Probability([]string{"fish"}, EOSToken)
	if err != nil {
		t.Fatalf("Probability() error = %v", err)
	}
	if want := 2.0 / 4.0; p != want {
		t.Errorf("Probability() got = %v, want %v", p, want)
	}

	// The distribution is undefined for a context never observed.
	_, err = m.Probability([]string{"green"}, "fish")
	if !errors.Is(err, ErrUnseenContext) {
		t.Errorf("Probability() error = %v, want ErrUnseenContext", err)
	}
}

func TestProbabilityArgumentErrors(t *testing.T) {
	m := newTestModel(t, Config{Order: 2, Smoothing: 1})

	// An untrained model has no distribution at all.
	_, err := m.Probability([]string{"a", "b"}, "c")
	if !errors.Is(err, ErrUntrained) {
		t.Errorf("Probability() on untrained model error = %v, want ErrUntrained", err)
	}

	m.Train(fishCorpus())
	_, err = m.Probability([]string{"fish"}, "two")
	if !errors.Is(err, ErrContextLength) {
		t.Errorf("Probability() with short context error = %v, want ErrContextLength", err)
	}
}
