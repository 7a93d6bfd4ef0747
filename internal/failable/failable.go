// Package failable provides a two-variant result type used by all
// fallible application operations: success with a value, or failure with a
// user-facing message and an optional low-level cause.
package failable

// Failable holds either a value or a failure message. The cause, when set,
// carries the underlying error for logging; it never becomes part of the
// message shown to callers.
type Failable[T any] struct {
	ok      bool
	value   T
	message string
	cause   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Failable[T] {
	return Failable[T]{ok: true, value: v}
}

// Fail builds a failure with a user-facing message.
func Fail[T any](message string) Failable[T] {
	return Failable[T]{message: message}
}

// FailCause builds a failure with a user-facing message and the underlying
// cause preserved for logging.
func FailCause[T any](message string, cause error) Failable[T] {
	return Failable[T]{message: message, cause: cause}
}

// OK reports whether the result is a success.
func (f Failable[T]) OK() bool { return f.ok }

// Value returns the success value. Only meaningful when OK() is true.
func (f Failable[T]) Value() T { return f.value }

// Message returns the user-facing failure message, empty on success.
func (f Failable[T]) Message() string { return f.message }

// Cause returns the underlying error of a failure, if any.
func (f Failable[T]) Cause() error { return f.cause }

// Get returns the value together with the success flag.
func (f Failable[T]) Get() (T, bool) { return f.value, f.ok }
