package ngram

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SequenceLogProb returns the log base 2 probability the model assigns to a
// token stream, summed over every position that has a full Order-token
// context before it. A token with probability zero contributes -Inf. The
// stream must be longer than the model order.
func (m *Model) SequenceLogProb(stream []string) (float64, error) {
	if len(stream) <= m.cfg.Order {
		return 0, fmt.Errorf("%w: stream has %d tokens, need more than %d", ErrContextLength, len(stream), m.cfg.Order)
	}
	var lp float64
	for i := m.cfg.Order; i < len(stream); i++ {
		p, err := m.Probability(stream[i-m.cfg.Order:i], stream[i])
		if err != nil {
			return 0, err
		}
		lp += math.Log2(p)
	}
	return lp, nil
}

// CrossEntropy returns the average negative log base 2 probability per
// predicted token, in bits. Lower is better; a model that predicts the
// stream perfectly scores zero.
func (m *Model) CrossEntropy(stream []string) (float64, error) {
	lp, err := m.SequenceLogProb(stream)
	if err != nil {
		return 0, err
	}
	return -lp / float64(len(stream)-m.cfg.Order), nil
}

// Perplexity returns 2 raised to the cross-entropy of the stream, the
// effective branching factor the model sees per token.
func (m *Model) Perplexity(stream []string) (float64, error) {
	h, err := m.CrossEntropy(stream)
	if err != nil {
		return 0, err
	}
	return math.Exp2(h), nil
}

// ContextEntropy returns the Shannon entropy in nats of the smoothed next
// token distribution for a context. The context must have exactly Order
// tokens and the distribution must be well defined for it.
func (m *Model) ContextEntropy(context []string) (float64, error) {
	if len(context) != m.cfg.Order {
		return 0, fmt.Errorf("%w: got %d tokens, want %d", ErrContextLength, len(context), m.cfg.Order)
	}
	fs, denom, err := m.distFor(context)
	if err != nil {
		return 0, err
	}
	dist := make([]float64, len(m.tokens))
	for i := range dist {
		dist[i] = m.cfg.Smoothing
	}
	if fs != nil {
		for pos, id := range fs.ids {
			dist[id] += float64(fs.counts[pos])
		}
	}
	floats.Scale(1/denom, dist)
	return stat.Entropy(dist), nil
}
