package result

import (
	"errors"
	"fmt"
)

// ErrInvalidAccess is the panic value used when a payload is read from a failed Result
// or an error is read from a successful one.
var ErrInvalidAccess = errors.New("invalid result access")

// ErrNilError replaces a nil error passed to Fail.
var ErrNilError = errors.New("failure without error")

// Result holds either a payload or an error.
type Result[V any] struct {
	value V
	err   error
}

// Ok returns a successful Result holding v.
func Ok[V any](v V) Result[V] {
	return Result[V]{value: v, err: nil}
}

// Fail returns a failed Result holding err.
func Fail[V any](err error) Result[V] {
	if err == nil {
		err = ErrNilError
	}

	var zero V

	return Result[V]{value: zero, err: err}
}

// From adapts a (value, error) return to a Result.
func From[V any](v V, err error) Result[V] {
	if err != nil {
		return Fail[V](err)
	}

	return Ok(v)
}

// Valid reports whether r holds a payload.
func (r Result[V]) Valid() bool {
	return r.err == nil
}

// Get returns the payload. It panics if r is a failure.
func (r Result[V]) Get() V {
	if r.err != nil {
		panic(fmt.Errorf("%w: Get on failure: %w", ErrInvalidAccess, r.err))
	}

	return r.value
}

// Err returns the error. It panics if r is a success.
func (r Result[V]) Err() error {
	if r.err == nil {
		panic(fmt.Errorf("%w: Err on success", ErrInvalidAccess))
	}

	return r.err
}

// Unpack returns the payload and error as a Go pair.
func (r Result[V]) Unpack() (V, error) {
	return r.value, r.err
}

// OrElse returns the payload, or def when r is a failure.
func (r Result[V]) OrElse(def V) V {
	if r.err != nil {
		return def
	}

	return r.value
}

// Map applies fn to the payload of a successful Result.
func Map[V, W any](r Result[V], fn func(V) W) Result[W] {
	if r.err != nil {
		return Fail[W](r.err)
	}

	return Ok(fn(r.value))
}

// Then chains a fallible step after a successful Result.
func Then[V, W any](r Result[V], fn func(V) (W, error)) Result[W] {
	if r.err != nil {
		return Fail[W](r.err)
	}

	return From(fn(r.value))
}

// All gathers the payloads of rs in order. The first failure is returned
// together with its index; no partial payloads are returned.
func All[V any](rs []Result[V]) ([]V, int, error) {
	values := make([]V, 0, len(rs))

	for i, r := range rs {
		if r.err != nil {
			return nil, i, r.err
		}

		values = append(values, r.value)
	}

	return values, -1, nil
}
