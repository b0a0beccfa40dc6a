package ngram

import "log/slog"

// Train accumulates n-gram counts from a corpus of token streams. Streams
// are expected to carry their sentinel tokens already (see Wrap); the model
// treats sentinels like any other vocabulary entry.
//
// Training is additive: repeated calls extend the same count table, and the
// result is independent of the order in which streams arrive. A stream with
// Order tokens or fewer yields no n-grams and is skipped entirely, so the
// vocabulary stays exactly the set of tokens reachable from the count
// table. An empty corpus is a no-op.
func (m *Model) Train(corpus [][]string) {
	var streams, added int
	var keyBuf []byte
	var ids []int

	for _, stream := range corpus {
		if len(stream) <= m.cfg.Order {
			continue
		}
		ids = ids[:0]
		for _, tok := range stream {
			ids = append(ids, m.intern(tok))
		}
		for i := m.cfg.Order; i < len(ids); i++ {
			keyBuf = appendContextKey(keyBuf, ids[i-m.cfg.Order:i])
			m.followersFor(string(keyBuf)).add(ids[i], 1)
			added++
		}
		streams++
	}

	m.logger.Info("Training completed",
		slog.Int("streams_processed", streams),
		slog.Int("ngrams_added", added),
		slog.Int("vocab_size", len(m.tokens)),
		slog.Int("contexts", len(m.table)),
	)
}
