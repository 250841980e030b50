package chainclock

import (
	"errors"
	"fmt"
)

// InvalidTimestampError indicates a block timestamp that violates the chain
// time rules: moving backwards for a real proposer, or changing at all for a
// NIL block.
type InvalidTimestampError struct {
	err error
}

// NewInvalidTimestampErrorf constructs an InvalidTimestampError.
func NewInvalidTimestampErrorf(msg string, args ...interface{}) error {
	return InvalidTimestampError{err: fmt.Errorf(msg, args...)}
}

func (e InvalidTimestampError) Error() string {
	return e.err.Error()
}

func (e InvalidTimestampError) Unwrap() error {
	return e.err
}

// IsInvalidTimestampError returns whether err is or wraps an
// InvalidTimestampError.
func IsInvalidTimestampError(err error) bool {
	var target InvalidTimestampError
	return errors.As(err, &target)
}
