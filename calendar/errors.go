package calendar

import (
	"errors"
	"fmt"
)

// ErrorType classifies core errors.
type ErrorType string

const (
	// ErrParse covers malformed date strings and recurrence rules. Parse
	// errors are always recovered locally; they never abort a batch.
	ErrParse ErrorType = "parse_error"
	// ErrLookup covers references to events that no longer exist in the
	// caller's event set. A lookup failure silently cancels the gesture
	// that needed it.
	ErrLookup ErrorType = "lookup_error"
	// ErrInvariantViolation indicates a programming error in the caller
	// or the core (negative duration, double session start). These fail
	// loudly.
	ErrInvariantViolation ErrorType = "invariant_violation"
	// ErrUnsupportedInput indicates a DateLike value of a kind the
	// normalizer does not accept.
	ErrUnsupportedInput ErrorType = "unsupported_input"
)

// Error represents a core scheduling error.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsType reports whether err is a core Error of the given type.
func IsType(err error, t ErrorType) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == t
}
