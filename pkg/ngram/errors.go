package ngram

import "errors"

// Sentinel errors returned by this package. Callers should match them with
// errors.Is; the returned errors usually wrap these with extra detail.
var (
	// ErrConfig indicates invalid configuration values.
	ErrConfig = errors.New("invalid model config")

	// ErrUntrained indicates an operation that needs a probability
	// distribution was called on a model with an empty vocabulary.
	ErrUntrained = errors.New("model has no training data")

	// ErrUnseenContext indicates the context was never observed during
	// training and smoothing is zero, so the distribution is undefined.
	ErrUnseenContext = errors.New("unseen context with zero smoothing")

	// ErrContextLength indicates a seed or context whose length does not
	// satisfy the model order.
	ErrContextLength = errors.New("context length does not match model order")

	// ErrBadSnapshot indicates a malformed or inconsistent serialized model.
	ErrBadSnapshot = errors.New("malformed model snapshot")
)
