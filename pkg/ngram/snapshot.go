package ngram

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
)

// ContextKeySep joins the tokens of a context into a snapshot key. The unit
// separator control character cannot appear in tokens produced by
// whitespace tokenization, which keeps the encoding reversible; custom
// tokenizers must not emit it inside tokens.
const ContextKeySep = "\x1f"

// Snapshot is the canonical serialized form of a Model: the configuration
// plus the full count table keyed by token text. It is sufficient to
// reconstruct an equivalent model without retraining, and is what the
// store package persists.
type Snapshot struct {
	Config Config                    `json:"config"`
	Counts map[string]map[string]int `json:"counts"`
}

// Snapshot returns an independent deep copy of the model's state in its
// canonical serialized form.
func (m *Model) Snapshot() *Snapshot {
	counts := make(map[string]map[string]int, len(m.table))
	parts := make([]string, m.cfg.Order)
	for key, fs := range m.table {
		for j, part := range strings.Split(key, " ") {
			id, _ := strconv.Atoi(part)
			parts[j] = m.tokens[id]
		}
		inner := make(map[string]int, len(fs.ids))
		for pos, id := range fs.ids {
			inner[m.tokens[id]] = fs.counts[pos]
		}
		counts[strings.Join(parts, ContextKeySep)] = inner
	}
	return &Snapshot{Config: m.cfg, Counts: counts}
}

// Restore replaces the model's state wholesale with the contents of snap,
// configuration included. The snapshot is validated and rebuilt into fresh
// structures first; on any error the model's prior state is left
// untouched. The restored vocabulary is ordered by a sorted traversal of
// the snapshot, so restoring is deterministic.
func (m *Model) Restore(snap *Snapshot) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}
	cfg := snap.Config.normalize()

	vocab := make(map[string]int)
	var tokens []string
	intern := func(tok string) int {
		if id, ok := vocab[tok]; ok {
			return id
		}
		id := len(tokens)
		vocab[tok] = id
		tokens = append(tokens, tok)
		return id
	}

	keys := make([]string, 0, len(snap.Counts))
	for key := range snap.Counts {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	table := make(map[string]*followerSet, len(snap.Counts))
	var keyBuf []byte
	window := make([]int, cfg.Order)
	for _, key := range keys {
		for j, tok := range strings.Split(key, ContextKeySep) {
			window[j] = intern(tok)
		}
		keyBuf = appendContextKey(keyBuf, window)

		inner := snap.Counts[key]
		nexts := make([]string, 0, len(inner))
		for tok := range inner {
			nexts = append(nexts, tok)
		}
		sort.Strings(nexts)

		fs := &followerSet{index: make(map[int]int, len(nexts))}
		for _, tok := range nexts {
			fs.add(intern(tok), inner[tok])
		}
		table[string(keyBuf)] = fs
	}

	m.cfg = cfg
	m.vocab = vocab
	m.tokens = tokens
	m.table = table

	m.logger.Info("Model restored from snapshot",
		slog.Int("contexts", len(m.table)),
		slog.Int("vocab_size", len(m.tokens)),
	)
	return nil
}

// ValidateSnapshot checks that snap is a well-formed serialized model:
// valid configuration, every context key splitting into exactly Order
// non-empty tokens, at least one continuation per context, and every count
// positive. Stores call this before accepting external data.
func ValidateSnapshot(snap *Snapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: no data", ErrBadSnapshot)
	}
	cfg := snap.Config.normalize()
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSnapshot, err)
	}
	for key, inner := range snap.Counts {
		parts := strings.Split(key, ContextKeySep)
		if len(parts) != cfg.Order {
			return fmt.Errorf("%w: context %q has %d tokens, want %d", ErrBadSnapshot, key, len(parts), cfg.Order)
		}
		for _, part := range parts {
			if part == "" {
				return fmt.Errorf("%w: context %q has an empty token", ErrBadSnapshot, key)
			}
		}
		if len(inner) == 0 {
			return fmt.Errorf("%w: context %q has no continuations", ErrBadSnapshot, key)
		}
		for tok, count := range inner {
			if tok == "" {
				return fmt.Errorf("%w: empty continuation token under context %q", ErrBadSnapshot, key)
			}
			if count < 1 {
				return fmt.Errorf("%w: count %d for %q -> %q", ErrBadSnapshot, count, key, tok)
			}
		}
	}
	return nil
}
