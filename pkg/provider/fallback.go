package provider

import (
	"context"

	"pixfusion-be/internal/pkg/apperror"
	"pixfusion-be/internal/pkg/logger"
)

// Attempt is one provider capability in a fallback chain: a name plus a way
// to invoke it.
type Attempt[T any] struct {
	Name   string
	Invoke func(ctx context.Context) (T, error)
}

// Result carries a successful attempt's output, which provider served it and
// whether the chain had to move past the primary.
type Result[T any] struct {
	Output       T
	Provider     string
	FallbackUsed bool
}

// RunChain tries each attempt in priority order and returns the first
// success. Every failure is logged and the chain advances; the same provider
// is never re-attempted. When all attempts fail the error is
// apperror.ErrAllProvidersExhausted.
func RunChain[T any](ctx context.Context, log logger.ILogger, operation string, attempts []Attempt[T]) (*Result[T], error) {
	for i, attempt := range attempts {
		output, err := attempt.Invoke(ctx)
		if err == nil {
			return &Result[T]{
				Output:       output,
				Provider:     attempt.Name,
				FallbackUsed: i > 0,
			}, nil
		}

		if log != nil {
			log.Warn("provider", "attempt failed, advancing chain", map[string]interface{}{
				"operation": operation,
				"provider":  attempt.Name,
				"position":  i,
				"error":     err.Error(),
			})
		}
	}

	return nil, apperror.ErrAllProvidersExhausted
}
