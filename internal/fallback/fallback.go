// Package fallback runs an ordered list of candidate providers where the
// first success wins and each failure is non-fatal. Both the geocoding
// chain and the weather primary-to-legacy fetch are instances of it.
package fallback

import "context"

// Provider produces a value or reports failure. Failures carry no error:
// a provider that cannot serve simply yields false and the chain advances.
type Provider[T any] func(ctx context.Context) (T, bool)

// First tries providers in order and returns the first successful value.
// Exhausting every provider yields the zero value and false.
func First[T any](ctx context.Context, providers ...Provider[T]) (T, bool) {
	for _, p := range providers {
		if ctx.Err() != nil {
			break
		}
		if v, ok := p(ctx); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}
