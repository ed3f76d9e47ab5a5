// Package outcome defines the closed set of results a persistence operation
// can produce.
//
// Repositories never return raw errors to their callers. Instead every
// operation returns exactly one Outcome variant:
//
//   - Success[T]: the operation succeeded and carries a value
//   - Void: the operation succeeded with nothing to return
//   - NotFound: the addressed record does not exist
//   - FailureDetails: a validation or business-rule rejection with a code
//   - Failure: a generic rejection without payload
//   - SystemError: an infrastructure fault (store down, constraint violation, ...)
//
// The set is sealed by an unexported marker method, so a type switch over
// these variants is the whole vocabulary. Callers that receive a variant they
// did not plan for should panic with Unhandled.
package outcome

import "fmt"

// Outcome is the sealed sum type returned by repository operations.
type Outcome interface {
	outcome()
}

// Success carries the value produced by a successful operation.
type Success[T any] struct {
	Value T
}

// Void is a successful operation without a value (e.g. delete).
type Void struct{}

// NotFound means the addressed record does not exist.
type NotFound struct {
	Message string
}

// FailureDetails is a rejection the client can act upon.
type FailureDetails struct {
	Message string
	Code    int
}

// Failure is a rejection without any detail.
type Failure struct{}

// SystemError wraps an unexpected fault raised by the store or its driver.
type SystemError struct {
	Err error
}

func (Success[T]) outcome()     {}
func (Void) outcome()           {}
func (NotFound) outcome()       {}
func (FailureDetails) outcome() {}
func (Failure) outcome()        {}
func (SystemError) outcome()    {}

// Message returns the underlying fault's message.
func (e SystemError) Message() string {
	if e.Err == nil {
		return "unknown system error"
	}
	return e.Err.Error()
}

// Unwrap exposes the underlying fault to errors.Is / errors.As.
func (e SystemError) Unwrap() error {
	return e.Err
}

// Ok wraps value in a Success.
func Ok[T any](value T) Outcome {
	return Success[T]{Value: value}
}

// Missing builds a NotFound with a formatted message.
func Missing(format string, args ...any) Outcome {
	return NotFound{Message: fmt.Sprintf(format, args...)}
}

// Fault wraps err in a SystemError.
func Fault(err error) Outcome {
	return SystemError{Err: err}
}

// Name returns a stable snake_case label for o, used in logs and traces.
func Name(o Outcome) string {
	switch o.(type) {
	case Void:
		return "success"
	case NotFound:
		return "not_found"
	case FailureDetails:
		return "failure_details"
	case Failure:
		return "failure"
	case SystemError:
		return "system_error"
	case nil:
		return "none"
	}
	// Success[T] is generic, so any remaining variant is a success instance.
	return "success"
}

// UnhandledError is the panic value used when a caller receives a variant it
// does not handle. It signals a contract mismatch between a repository and
// its caller, never a user error.
type UnhandledError struct {
	Operation string
	Outcome   Outcome
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("%s: unhandled outcome %T", e.Operation, e.Outcome)
}

// Unhandled builds the panic value for an unexpected variant.
//
//	default:
//		panic(outcome.Unhandled("update contact", result))
func Unhandled(operation string, o Outcome) *UnhandledError {
	return &UnhandledError{Operation: operation, Outcome: o}
}
