package ngram

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
)

// Model is an n-gram language model. It owns the count table built during
// training and exposes training, probability, generation and snapshot
// operations.
//
// A Model is not safe for concurrent use; callers that share one across
// goroutines must serialize access themselves.
type Model struct {
	cfg    Config
	vocab  map[string]int // token text -> id
	tokens []string       // id -> token text, in first-seen order
	table  map[string]*followerSet
	rng    *rand.Rand
	logger *slog.Logger
}

// New creates an empty Model from cfg. Zero values for Sampling and
// Temperature select the defaults (stochastic, 1.0); everything else is
// validated strictly and an error wrapping ErrConfig is returned for
// invalid settings.
func New(cfg Config) (*Model, error) {
	cfg = cfg.normalize()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Model{
		cfg:    cfg,
		vocab:  make(map[string]int),
		table:  make(map[string]*followerSet),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Config returns a copy of the model's configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// SetLogger sets the logger for the Model. By default, all logs are
// discarded. Providing a `log/slog.Logger` will enable logging for
// training, generation, and other operations.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// SetRand replaces the random source used by stochastic sampling. Passing a
// seeded source makes generation reproducible.
func (m *Model) SetRand(rng *rand.Rand) {
	if rng != nil {
		m.rng = rng
	}
}

// Reset clears the count table and vocabulary, leaving the configuration
// untouched. It is idempotent.
func (m *Model) Reset() {
	m.vocab = make(map[string]int)
	m.tokens = nil
	m.table = make(map[string]*followerSet)
	m.logger.Debug("Model reset")
}

// VocabSize returns the number of distinct tokens observed in training.
func (m *Model) VocabSize() int {
	return len(m.tokens)
}

// Continuation is one observed next token for a context, with its raw count.
type Continuation struct {
	Token string
	Count int
}

// Continuations returns the observed next tokens for a context in
// first-encountered order, together with the sum of their counts. An unseen
// context yields a nil slice and a zero total. The context must have
// exactly Order tokens.
func (m *Model) Continuations(context []string) ([]Continuation, int, error) {
	if len(context) != m.cfg.Order {
		return nil, 0, fmt.Errorf("%w: got %d tokens, want %d", ErrContextLength, len(context), m.cfg.Order)
	}
	fs := m.followers(context)
	if fs == nil {
		return nil, 0, nil
	}
	out := make([]Continuation, len(fs.ids))
	for pos, id := range fs.ids {
		out[pos] = Continuation{Token: m.tokens[id], Count: fs.counts[pos]}
	}
	return out, fs.total, nil
}

// Merge adds all counts from other into m. The vocabularies are unioned,
// keeping m's insertion order first; other is left unmodified. Models of
// different order cannot be merged.
func (m *Model) Merge(other *Model) error {
	if other == nil || m == other {
		return nil
	}
	if other.cfg.Order != m.cfg.Order {
		return fmt.Errorf("%w: cannot merge order %d counts into an order %d model", ErrConfig, other.cfg.Order, m.cfg.Order)
	}

	idMap := make([]int, len(other.tokens))
	for id, tok := range other.tokens {
		idMap[id] = m.intern(tok)
	}

	var keyBuf []byte
	window := make([]int, m.cfg.Order)
	var transitions int
	for key, fs := range other.table {
		for j, part := range strings.Split(key, " ") {
			id, _ := strconv.Atoi(part)
			window[j] = idMap[id]
		}
		keyBuf = appendContextKey(keyBuf, window)
		dst := m.followersFor(string(keyBuf))
		for pos, id := range fs.ids {
			dst.add(idMap[id], fs.counts[pos])
			transitions++
		}
	}

	m.logger.Info("Models merged",
		slog.Int("transitions_merged", transitions),
		slog.Int("vocab_size", len(m.tokens)),
	)
	return nil
}

// intern returns the id for a token, assigning the next free one on first
// sight. Ids are dense, starting at 0, in first-seen order.
func (m *Model) intern(token string) int {
	if id, ok := m.vocab[token]; ok {
		return id
	}
	id := len(m.tokens)
	m.vocab[token] = id
	m.tokens = append(m.tokens, token)
	return id
}

// followers resolves a context of token texts to its follower set, or nil
// if any token is out of vocabulary or the context was never observed.
func (m *Model) followers(context []string) *followerSet {
	var keyBuf []byte
	for j, tok := range context {
		id, ok := m.vocab[tok]
		if !ok {
			return nil
		}
		if j > 0 {
			keyBuf = append(keyBuf, ' ')
		}
		keyBuf = strconv.AppendInt(keyBuf, int64(id), 10)
	}
	return m.table[string(keyBuf)]
}

// followersFor returns the follower set stored under key, creating it on
// first use.
func (m *Model) followersFor(key string) *followerSet {
	fs := m.table[key]
	if fs == nil {
		fs = &followerSet{index: make(map[int]int)}
		m.table[key] = fs
	}
	return fs
}

// appendContextKey renders a window of token ids as a count table key,
// reusing buf.
func appendContextKey(buf []byte, window []int) []byte {
	buf = buf[:0]
	for j, id := range window {
		if j > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return buf
}

// followerSet holds the observed continuations of one context. The parallel
// slices keep first-insertion order, which greedy sampling uses to break
// ties; index maps a token id to its position for O(1) increments.
type followerSet struct {
	ids    []int
	counts []int
	index  map[int]int
	total  int
}

// add increments the count for a token id by n, appending it on first sight.
func (f *followerSet) add(id, n int) {
	if pos, ok := f.index[id]; ok {
		f.counts[pos] += n
	} else {
		f.index[id] = len(f.ids)
		f.ids = append(f.ids, id)
		f.counts = append(f.counts, n)
	}
	f.total += n
}

// count returns the count for a token id, zero if unobserved.
func (f *followerSet) count(id int) int {
	if f == nil {
		return 0
	}
	if pos, ok := f.index[id]; ok {
		return f.counts[pos]
	}
	return 0
}
