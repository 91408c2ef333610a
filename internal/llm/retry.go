package llm

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/felixgeelhaar/fortify/retry"
)

// RetryProvider is a decorator that retries transient errors with
// exponential backoff and jitter.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// An invalid response is worth exactly one more try; the counter is
	// per request so the retrier is built per call.
	var invalidSeen atomic.Bool
	var lastErr error

	retrier := retry.New[*Response](retry.Config{
		MaxAttempts:   r.config.MaxAttempts,
		InitialDelay:  r.config.InitialWait,
		MaxDelay:      r.config.MaxWait,
		Multiplier:    r.config.Multiplier,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable: func(err error) bool {
			return retryable(err, &invalidSeen)
		},
	})

	resp, err := retrier.Do(ctx, func(ctx context.Context) (*Response, error) {
		resp, err := r.inner.Generate(ctx, req)
		if err != nil {
			lastErr = err
		}
		return resp, err
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		// Surface the provider's typed error rather than the retrier's wrapper.
		if lastErr != nil {
			return nil, lastErr
		}
		return nil, err
	}
	return resp, nil
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// retryable classifies provider errors. Context errors and truncated
// responses are final; invalid responses get one retry; everything else
// is treated as transient.
func retryable(err error, invalidSeen *atomic.Bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	var invResp *ErrInvalidResponse
	if errors.As(err, &invResp) {
		return !invalidSeen.Swap(true)
	}

	return true
}
