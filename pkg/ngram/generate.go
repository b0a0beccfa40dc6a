package ngram

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sort"
)

// Generate extends a seed sequence with up to maxNew sampled tokens and
// returns the result. The seed must already contain at least Order tokens,
// typically start sentinels (see PadSOS). Each step takes the last Order
// tokens as context, samples from the smoothed distribution with the
// configured strategy, and appends the pick. Generation stops early when
// the end sentinel is emitted.
//
// On a distribution error mid-loop the sequence extended so far is returned
// together with the error.
func (m *Model) Generate(tokens []string, maxNew int) ([]string, error) {
	if len(tokens) < m.cfg.Order {
		return tokens, fmt.Errorf("%w: seed has %d tokens, need at least %d", ErrContextLength, len(tokens), m.cfg.Order)
	}

	out := tokens
	for i := 0; i < maxNew; i++ {
		next, err := m.nextToken(out[len(out)-m.cfg.Order:])
		if err != nil {
			return out, err
		}
		out = append(out, next)
		if next == EOSToken {
			m.logger.Debug("Generation terminated by end sentinel",
				slog.Int("generated", i+1),
				slog.Int("max_new", maxNew),
			)
			return out, nil
		}
	}

	m.logger.Debug("Generation terminated by reaching max_new",
		slog.Int("max_new", maxNew),
	)
	return out, nil
}

// nextToken picks one token for a context window of Order tokens according
// to the configured sampling strategy.
func (m *Model) nextToken(context []string) (string, error) {
	fs, _, err := m.distFor(context)
	if err != nil {
		return "", err
	}
	if m.cfg.Sampling == SamplingGreedy {
		return m.tokens[m.pickGreedy(fs)], nil
	}
	return m.tokens[m.pickWeighted(fs)], nil
}

// pickGreedy returns the id of the most probable token: the highest-count
// observed continuation, ties resolved to the earliest entry. For an unseen
// context every token is equally likely and the first token ever interned
// wins.
func (m *Model) pickGreedy(fs *followerSet) int {
	if fs == nil || len(fs.ids) == 0 {
		return 0
	}
	best := fs.ids[0]
	maxCount := fs.counts[0]
	for pos := 1; pos < len(fs.ids); pos++ {
		if fs.counts[pos] > maxCount {
			maxCount = fs.counts[pos]
			best = fs.ids[pos]
		}
	}
	return best
}

// pickWeighted draws from the smoothed distribution in two steps: with
// probability total/(total+smoothing*V) pick among the observed
// continuations weighted by count, otherwise land in the smoothing mass,
// which is uniform over the whole vocabulary. At temperature 1.0 the
// combined draw matches the Probability formula exactly; other temperatures
// reshape the observed step only.
func (m *Model) pickWeighted(fs *followerSet) int {
	ids, counts, total := m.candidates(fs)
	smoothMass := m.cfg.Smoothing * float64(len(m.tokens))

	r := m.rng.Float64() * (float64(total) + smoothMass)
	if r >= float64(total) {
		return m.rng.IntN(len(m.tokens))
	}
	if m.cfg.Temperature == 1.0 {
		for pos, c := range counts {
			r -= float64(c)
			if r < 0 {
				return ids[pos]
			}
		}
		return ids[len(ids)-1]
	}
	return pickTempered(ids, counts, m.cfg.Temperature, m.rng)
}

// candidates returns the observed continuation view the weighted draw
// samples from. For SamplingTopK with more continuations than K it is a
// copy holding the K highest counts (ties keep insertion order); otherwise
// it aliases the follower set directly.
func (m *Model) candidates(fs *followerSet) (ids, counts []int, total int) {
	if fs == nil {
		return nil, nil, 0
	}
	k := m.cfg.TopK
	if m.cfg.Sampling != SamplingTopK || k >= len(fs.ids) {
		return fs.ids, fs.counts, fs.total
	}

	pos := make([]int, len(fs.ids))
	for i := range pos {
		pos[i] = i
	}
	sort.SliceStable(pos, func(a, b int) bool {
		return fs.counts[pos[a]] > fs.counts[pos[b]]
	})

	ids = make([]int, k)
	counts = make([]int, k)
	for i, p := range pos[:k] {
		ids[i] = fs.ids[p]
		counts[i] = fs.counts[p]
		total += counts[i]
	}
	return ids, counts, total
}

// pickTempered draws from count-weighted candidates with the counts
// reshaped by temperature, using log weights shifted by their maximum to
// keep the exponentials in range.
func pickTempered(ids, counts []int, temperature float64, rng *rand.Rand) int {
	logWeights := make([]float64, len(ids))
	maxLW := math.Inf(-1)
	for i, c := range counts {
		lw := math.Log(float64(c)) / temperature
		logWeights[i] = lw
		if lw > maxLW {
			maxLW = lw
		}
	}

	var totalWeight float64
	weights := make([]float64, len(ids))
	for i, lw := range logWeights {
		w := math.Exp(lw - maxLW)
		weights[i] = w
		totalWeight += w
	}

	r := rng.Float64() * totalWeight
	for i := range ids {
		r -= weights[i]
		if r < 0 {
			return ids[i]
		}
	}
	return ids[len(ids)-1]
}
