package plugin

import (
	"github.com/cockroachdb/errors"
)

// ErrInvalidResult is reported when a hook returns a zero Result, which is
// neither a success nor a failure.
var ErrInvalidResult = errors.New("returned invalid result")

var errUnspecified = errors.New("hook failed without an error")

// Result is the success/failure value every hook returns. Build one with Ok
// or Fail; the zero Result is malformed.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Fail wraps a failure. A nil err is replaced by a generic one so the
// result stays a well-formed failure.
func Fail[T any](err error) Result[T] {
	if err == nil {
		err = errUnspecified
	}

	return Result[T]{err: err}
}

// IsOk reports success.
func (r Result[T]) IsOk() bool { return r.ok }

// Value returns the success value, or the zero T for a failure.
func (r Result[T]) Value() T { return r.value }

// Err returns the failure, ErrInvalidResult for a zero Result, or nil.
func (r Result[T]) Err() error {
	switch {
	case r.ok:
		return nil
	case r.err == nil:
		return ErrInvalidResult
	default:
		return r.err
	}
}

// Unwrap splits the result into the usual Go pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.Err()
}

func (r Result[T]) valid() bool {
	return r.ok || r.err != nil
}

func (r Result[T]) erase() Result[any] {
	return Result[any]{value: r.value, err: r.err, ok: r.ok}
}
