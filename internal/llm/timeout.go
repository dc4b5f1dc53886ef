package llm

import (
	"context"
	"time"
)

type timeoutProvider struct {
	inner Provider
	d     time.Duration
}

// WithTimeout gives every call at most d, however many retries happen
// underneath.
func WithTimeout(p Provider, d time.Duration) Provider {
	return &timeoutProvider{inner: p, d: d}
}

func (t *timeoutProvider) ModelID() string { return t.inner.ModelID() }

func (t *timeoutProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, t.d)
	defer cancel()
	return t.inner.Generate(ctx, req)
}
