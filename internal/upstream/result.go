package upstream

import "context"

// Result carries either a fetched value or the error that prevented it
type Result[T any] struct {
	Value T
	Err   error
}

// OK reports whether the fetch succeeded
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Or returns the value, or fallback when the fetch failed. The boolean
// reports whether the fallback was used.
func (r Result[T]) Or(fallback T) (T, bool) {
	if r.Err != nil {
		return fallback, true
	}
	return r.Value, false
}

// Fetch runs fn and captures its outcome as a Result
func Fetch[T any](ctx context.Context, fn func(context.Context) (T, error)) Result[T] {
	v, err := fn(ctx)
	return Result[T]{Value: v, Err: err}
}
