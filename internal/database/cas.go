package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	apperrors "github.com/xyz-asif/tradehub/pkg/errors"
)

// ErrStale is returned by a compare-and-swap attempt whose precondition no
// longer matched the stored document. RetryCAS retries it; anything else
// stops the loop.
var ErrStale = errors.New("stale write")

// CASAttempts bounds the compare-and-swap loop.
const CASAttempts = 5

func casBackOff() backoff.BackOff {
	return &backoff.ExponentialBackOff{
		InitialInterval:     5 * time.Millisecond,
		RandomizationFactor: 0.5,
		Multiplier:          2,
		MaxInterval:         100 * time.Millisecond,
	}
}

// RetryCAS runs attempt until it succeeds, fails with something other than
// ErrStale, or CASAttempts is exhausted. Exhaustion surfaces as
// apperrors.ErrConcurrency.
func RetryCAS[T any](ctx context.Context, attempt func(ctx context.Context) (T, error)) (T, error) {
	result, err := backoff.Retry(ctx, func() (T, error) {
		v, err := attempt(ctx)
		if err != nil && !errors.Is(err, ErrStale) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(casBackOff()), backoff.WithMaxTries(CASAttempts))

	if errors.Is(err, ErrStale) {
		return result, fmt.Errorf("%w: gave up after %d attempts", apperrors.ErrConcurrency, CASAttempts)
	}
	return result, err
}
