package ngram

import "fmt"

// Sampling selects how the next token is chosen from the smoothed
// distribution during generation.
type Sampling string

const (
	// SamplingStochastic draws the next token proportionally to its
	// smoothed probability. This is the default.
	SamplingStochastic Sampling = "stochastic"
	// SamplingGreedy always picks the highest-probability token. Ties are
	// broken by first-encountered insertion order in the count table.
	SamplingGreedy Sampling = "greedy"
	// SamplingTopK draws stochastically from the K most frequent observed
	// continuations of the current context.
	SamplingTopK Sampling = "topk"
)

// ParseSampling converts a string into a Sampling value, for use with flag
// and config file parsing.
func ParseSampling(s string) (Sampling, error) {
	switch Sampling(s) {
	case SamplingStochastic, SamplingGreedy, SamplingTopK:
		return Sampling(s), nil
	default:
		return "", fmt.Errorf("%w: unknown sampling strategy %q", ErrConfig, s)
	}
}

// Config holds the immutable settings of a Model. The Model keeps its own
// copy at construction; changing a Config value afterwards has no effect on
// models already built from it.
type Config struct {
	// Order is the number of preceding tokens used as context. An n-gram
	// has Order+1 tokens in total. Must be at least 1.
	Order int `json:"order" yaml:"order"`
	// Smoothing is the Laplace add-k constant applied to every count, so
	// unseen continuations keep non-zero probability. Must be >= 0.
	Smoothing float64 `json:"smoothing" yaml:"smoothing"`
	// Sampling selects the generation strategy. Empty means stochastic.
	Sampling Sampling `json:"sampling" yaml:"sampling"`
	// Temperature reshapes the stochastic weighting of observed
	// continuations. 1.0 is plain count-proportional sampling; values
	// below 1 sharpen the distribution, values above 1 flatten it.
	// Zero means 1.0. Must not be negative.
	Temperature float64 `json:"temperature" yaml:"temperature"`
	// TopK is the candidate pool size for SamplingTopK. Ignored by the
	// other strategies.
	TopK int `json:"top_k" yaml:"top_k"`
}

// DefaultConfig returns the documented defaults: a trigram model (two
// context tokens) with add-one smoothing and stochastic sampling.
func DefaultConfig() Config {
	return Config{
		Order:       2,
		Smoothing:   1.0,
		Sampling:    SamplingStochastic,
		Temperature: 1.0,
		TopK:        0,
	}
}

// normalize fills in the zero-value defaults for Sampling and Temperature.
func (c Config) normalize() Config {
	if c.Sampling == "" {
		c.Sampling = SamplingStochastic
	}
	if c.Temperature == 0 {
		c.Temperature = 1.0
	}
	return c
}

// validate reports the first invalid field. It expects a normalized Config.
func (c Config) validate() error {
	if c.Order < 1 {
		return fmt.Errorf("%w: order must be at least 1, got %d", ErrConfig, c.Order)
	}
	if c.Smoothing < 0 {
		return fmt.Errorf("%w: smoothing must not be negative, got %g", ErrConfig, c.Smoothing)
	}
	if _, err := ParseSampling(string(c.Sampling)); err != nil {
		return err
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("%w: temperature must be positive, got %g", ErrConfig, c.Temperature)
	}
	if c.TopK < 0 {
		return fmt.Errorf("%w: top_k must not be negative, got %d", ErrConfig, c.TopK)
	}
	if c.Sampling == SamplingTopK && c.TopK < 1 {
		return fmt.Errorf("%w: top_k must be at least 1 for topk sampling", ErrConfig)
	}
	return nil
}
