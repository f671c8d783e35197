package sessionkit

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure conditions. These can be used with
// errors.Is() for error checking.
var (
	// ErrNoStore indicates Process was called without a storage
	// collaborator. This is a contract violation, not a recoverable
	// runtime state.
	ErrNoStore = errors.New("no storage collaborator supplied")

	// ErrInvalidConfig indicates the provided configuration is invalid or
	// incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Error kinds categorize errors by their type.
const (
	// KindValidation represents errors related to input validation.
	KindValidation = "validation"

	// KindDecode represents errors from strict identifier decoding.
	KindDecode = "decode"

	// KindStorage represents errors from the storage collaborator.
	KindStorage = "storage"

	// KindConfiguration represents errors related to configuration.
	KindConfiguration = "configuration"
)

// Error is a structured error that wraps an underlying error with the
// operation that failed and the category of failure.
//
// Error supports unwrapping, so it is compatible with errors.Is() and
// errors.As().
type Error struct {
	// Op is the operation that failed (e.g. "Tracker.Process").
	Op string

	// Kind categorizes the error (e.g. KindValidation, KindStorage).
	Kind string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sessionkit: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("sessionkit: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches either another *Error with the same Kind (and Op, when the
// target sets one) or the underlying error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}
