package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

type retryProvider struct {
	inner  Provider
	config RetryConfig
	jitter func() float64 // in [-1, 1)
}

// WithRetry wraps p so that transient failures are sent again, up to
// cfg.MaxAttempts calls in total. A reply that fails schema validation is
// resent once. MaxAttempts below one means a single attempt.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	return &retryProvider{
		inner:  p,
		config: cfg,
		jitter: func() float64 { return 2*rand.Float64() - 1 },
	}
}

func (r *retryProvider) ModelID() string { return r.inner.ModelID() }

func (r *retryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	var (
		resp      *Response
		err       error
		malformed bool
	)
	for attempt := range r.config.MaxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.wait(attempt-1, err)):
			}
		}

		resp, err = r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *ErrInvalidResponse
		if errors.As(err, &invalid) && !malformed {
			malformed = true
			continue
		}
		if !Transient(err) {
			return nil, err
		}
	}
	return nil, err
}

// wait is the pause before retry number attempt+1. A rate limit's
// RetryAfter wins; otherwise the wait grows by Multiplier per attempt up to
// MaxWait, with ±20% jitter.
func (r *retryProvider) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	d := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	d = math.Min(d, float64(r.config.MaxWait))
	d += d * 0.2 * r.jitter()
	return time.Duration(math.Max(d, 0))
}
