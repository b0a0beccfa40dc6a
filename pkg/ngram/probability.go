package ngram

import (
	"fmt"
	"strings"
)

// Probability returns the smoothed conditional probability of next
// following a context of exactly Order tokens:
//
//	P(next | context) = (count(context, next) + smoothing) / (total(context) + smoothing*V)
//
// where V is the vocabulary size and total(context) sums the counts of all
// observed continuations. A context never seen in training has a total of
// zero, which makes the distribution uniform over the vocabulary. Tokens
// outside the vocabulary have probability zero.
//
// With zero smoothing the result is the plain relative frequency; if the
// context is also unseen the distribution is undefined and an error
// wrapping ErrUnseenContext is returned. An untrained model returns
// ErrUntrained.
func (m *Model) Probability(context []string, next string) (float64, error) {
	if len(context) != m.cfg.Order {
		return 0, fmt.Errorf("%w: got %d tokens, want %d", ErrContextLength, len(context), m.cfg.Order)
	}
	fs, denom, err := m.distFor(context)
	if err != nil {
		return 0, err
	}
	id, ok := m.vocab[next]
	if !ok {
		return 0, nil
	}
	return (float64(fs.count(id)) + m.cfg.Smoothing) / denom, nil
}

// distFor resolves a context window to its follower set and the smoothed
// distribution denominator. The follower set may be nil for an unseen
// context; the denominator is always positive when err is nil.
func (m *Model) distFor(context []string) (*followerSet, float64, error) {
	if len(m.tokens) == 0 {
		return nil, 0, ErrUntrained
	}
	fs := m.followers(context)
	var observed int
	if fs != nil {
		observed = fs.total
	}
	denom := float64(observed) + m.cfg.Smoothing*float64(len(m.tokens))
	if denom == 0 {
		return nil, 0, fmt.Errorf("%w: context %q", ErrUnseenContext, strings.Join(context, " "))
	}
	return fs, denom, nil
}
