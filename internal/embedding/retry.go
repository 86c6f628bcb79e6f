package embedding

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"

	"portfolio-chat/internal/config"
)

// Retrier wraps an Embedder with bounded exponential backoff.
// MaxAttempts counts calls, not retries: 3 attempts = 2 retries.
type Retrier struct {
	embedder Embedder
	cfg      config.RetryConfig
}

func NewRetrier(embedder Embedder, cfg config.RetryConfig) *Retrier {
	return &Retrier{embedder: embedder, cfg: cfg}
}

// EmbedQuery calls the underlying embedder, retrying transient
// rate-limit errors with doubling delays. Quota exhaustion and every
// other failure propagate immediately. The backoff waits on the
// context, so a cancelled request stops sleeping.
func (r *Retrier) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialDelay()
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0 // the attempt count bounds the loop, not wall time

	var policy backoff.BackOff = b
	if r.cfg.MaxAttempts > 0 {
		policy = backoff.WithMaxRetries(b, uint64(r.cfg.MaxAttempts-1))
	}
	policy = backoff.WithContext(policy, ctx)

	var vector []float32
	operation := func() error {
		vec, err := r.embedder.EmbedQuery(ctx, text)
		if err != nil {
			category := Classify(err)
			if category.Retryable() {
				log.Warn().Err(err).Msg("Embedding provider rate limited, backing off")
				return err
			}
			return backoff.Permanent(err)
		}
		if len(vec) == 0 {
			return backoff.Permanent(ErrEmbeddingMissing)
		}
		vector = vec
		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	return vector, nil
}
