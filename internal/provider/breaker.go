package provider

import (
	"context"
	"errors"

	"github.com/sony/gobreaker"
)

// breakerProvider opens after the first failed request. Later calls fail
// with the open-state error without reaching the backend. It never retries.
type breakerProvider struct {
	next Provider
	cb   *gobreaker.CircuitBreaker
}

// WithBreaker wraps p in a circuit breaker that opens on the first failure.
func WithBreaker(p Provider) Provider {
	return &breakerProvider{
		next: p,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: p.Name(),
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 1
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, context.Canceled)
			},
		}),
	}
}

func (b *breakerProvider) Name() string { return b.next.Name() }

func (b *breakerProvider) Translate(ctx context.Context, req Request) (string, error) {
	out, err := b.cb.Execute(func() (interface{}, error) {
		return b.next.Translate(ctx, req)
	})
	if err != nil {
		var perr *ProviderError
		if errors.As(err, &perr) {
			return "", err
		}
		return "", &ProviderError{Provider: b.next.Name(), Err: err}
	}
	return out.(string), nil
}
