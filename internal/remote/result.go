package remote

import "errors"

// Failure classifies an unsuccessful Result.
type Failure int

const (
	// FailureNone marks a successful result.
	FailureNone Failure = iota
	// FailureRemote carries the collaborator's failure message verbatim.
	FailureRemote
	// FailureNotFound means a key lookup matched zero or more than one row.
	FailureNotFound
	// FailureConfig means the remote endpoint or credential is missing.
	FailureConfig
)

// String returns the failure name used in logs and metrics.
func (f Failure) String() string {
	switch f {
	case FailureNone:
		return "none"
	case FailureRemote:
		return "remote"
	case FailureNotFound:
		return "not_found"
	case FailureConfig:
		return "config"
	default:
		return "unknown"
	}
}

// Result is the outcome of one remote collection call: either Ok(Value)
// or Err(Message) tagged with a Failure kind.
type Result[T any] struct {
	Value   T
	Message string
	Failure Failure
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Err wraps a remote failure message.
func Err[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Failure: FailureRemote}
}

// NotFound wraps a failed key lookup.
func NotFound[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Failure: FailureNotFound}
}

// ConfigErr wraps a configuration failure.
func ConfigErr[T any](msg string) Result[T] {
	return Result[T]{Message: msg, Failure: FailureConfig}
}

// OK reports whether the result is a success.
func (r Result[T]) OK() bool {
	return r.Failure == FailureNone
}

// FromError builds a Result from a Go-style (value, error) pair.
// The error text is kept verbatim as the message.
func FromError[T any](v T, err error) Result[T] {
	switch {
	case err == nil:
		return Ok(v)
	case errors.Is(err, ErrNotConfigured):
		return ConfigErr[T](err.Error())
	case errors.Is(err, ErrNotFound):
		return NotFound[T](err.Error())
	default:
		return Err[T](err.Error())
	}
}
