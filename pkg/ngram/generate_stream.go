package ngram

import (
	"context"
	"fmt"
	"log/slog"
)

// GenerateStream samples like Generate but emits each newly generated token
// on the returned channel from a background goroutine. This allows
// processing output token-by-token, which is useful for real-time display
// or very long sequences. The channel is closed once maxNew tokens were
// produced, the end sentinel was emitted, the context is cancelled, or the
// distribution becomes undefined mid-stream (the error is logged).
//
// The seed is validated up front and is not echoed on the channel. The
// model must not be mutated while the stream is open.
func (m *Model) GenerateStream(ctx context.Context, seed []string, maxNew int) (<-chan string, error) {
	if len(seed) < m.cfg.Order {
		return nil, fmt.Errorf("%w: seed has %d tokens, need at least %d", ErrContextLength, len(seed), m.cfg.Order)
	}

	window := make([]string, m.cfg.Order)
	copy(window, seed[len(seed)-m.cfg.Order:])

	out := make(chan string)
	go func() {
		defer close(out)

		for i := 0; i < maxNew; i++ {
			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			default:
			}

			next, err := m.nextToken(window)
			if err != nil {
				m.logger.ErrorContext(ctx, "Generation stream stopped",
					slog.Int("generated", i),
					slog.Any("error", err),
				)
				return
			}

			select {
			case <-ctx.Done():
				m.logger.DebugContext(ctx, "Generation stream cancelled by context")
				return
			case out <- next:
			}

			if next == EOSToken {
				return
			}
			window = append(window[1:], next)
		}
	}()

	return out, nil
}
