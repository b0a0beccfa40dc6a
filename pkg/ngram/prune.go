package ngram

import (
	"log/slog"
	"strconv"
	"strings"
)

// Prune removes every transition whose count is below minCount, dropping
// contexts left with no continuations. It returns the number of
// transitions removed. Like Reset, pruning is a deliberate mutation
// outside the counts-only-grow training contract.
func (m *Model) Prune(minCount int) int {
	removed := 0
	for key, fs := range m.table {
		w := 0
		for pos := range fs.ids {
			if fs.counts[pos] >= minCount {
				fs.ids[w] = fs.ids[pos]
				fs.counts[w] = fs.counts[pos]
				w++
			} else {
				fs.total -= fs.counts[pos]
				removed++
			}
		}
		if w == 0 {
			delete(m.table, key)
			continue
		}
		if w < len(fs.ids) {
			fs.ids = fs.ids[:w]
			fs.counts = fs.counts[:w]
			fs.index = make(map[int]int, w)
			for pos, id := range fs.ids {
				fs.index[id] = pos
			}
		}
	}

	m.logger.Info("Model pruned",
		slog.Int("min_count", minCount),
		slog.Int("transitions_removed", removed),
	)
	return removed
}

// PruneVocabulary removes tokens whose summed continuation count across the
// whole table is below minTotal, together with every context and
// transition touching them, then renumbers the remaining vocabulary.
// Tokens that never appear as a continuation are kept, as are the
// sentinels. It returns the number of tokens removed.
func (m *Model) PruneVocabulary(minTotal int) int {
	totals := make(map[int]int)
	for _, fs := range m.table {
		for pos, id := range fs.ids {
			totals[id] += fs.counts[pos]
		}
	}

	rare := make(map[int]struct{})
	for id, total := range totals {
		if total >= minTotal {
			continue
		}
		if tok := m.tokens[id]; tok == SOSToken || tok == EOSToken {
			continue
		}
		rare[id] = struct{}{}
	}
	if len(rare) == 0 {
		m.logger.Info("No vocabulary to prune", slog.Int("min_total", minTotal))
		return 0
	}

	oldTokens := m.tokens
	oldTable := m.table

	remap := make([]int, len(oldTokens))
	m.vocab = make(map[string]int, len(oldTokens)-len(rare))
	m.tokens = make([]string, 0, len(oldTokens)-len(rare))
	for id, tok := range oldTokens {
		if _, ok := rare[id]; ok {
			remap[id] = -1
			continue
		}
		remap[id] = len(m.tokens)
		m.vocab[tok] = len(m.tokens)
		m.tokens = append(m.tokens, tok)
	}

	m.table = make(map[string]*followerSet, len(oldTable))
	var keyBuf []byte
	window := make([]int, m.cfg.Order)
	contextsDropped := 0
	for key, fs := range oldTable {
		affected := false
		for j, part := range strings.Split(key, " ") {
			id, _ := strconv.Atoi(part)
			if remap[id] < 0 {
				affected = true
				break
			}
			window[j] = remap[id]
		}
		if affected {
			contextsDropped++
			continue
		}

		keyBuf = appendContextKey(keyBuf, window)
		dst := &followerSet{index: make(map[int]int)}
		for pos, id := range fs.ids {
			if remap[id] < 0 {
				continue
			}
			dst.add(remap[id], fs.counts[pos])
		}
		if len(dst.ids) == 0 {
			contextsDropped++
			continue
		}
		m.table[string(keyBuf)] = dst
	}

	m.logger.Info("Vocabulary pruned",
		slog.Int("min_total", minTotal),
		slog.Int("tokens_removed", len(rare)),
		slog.Int("contexts_dropped", contextsDropped),
	)
	return len(rare)
}
