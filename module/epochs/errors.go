package epochs

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned when Initialize is invoked twice.
	ErrAlreadyInitialized = errors.New("reconfiguration already initialized")

	// ErrNotInitialized is returned when an operation is invoked before the
	// one-time bootstrap initialization.
	ErrNotInitialized = errors.New("reconfiguration not initialized")
)

// InvalidTransitionStateError indicates an operation invoked in the wrong
// transition state, such as finishing a transition that never started.
type InvalidTransitionStateError struct {
	Actual   TransitionState
	Expected TransitionState
}

func (e InvalidTransitionStateError) Error() string {
	return fmt.Sprintf("operation requires transition state %s, but state is %s", e.Expected, e.Actual)
}

// IsInvalidTransitionStateError returns whether err is or wraps an
// InvalidTransitionStateError.
func IsInvalidTransitionStateError(err error) bool {
	var target InvalidTransitionStateError
	return errors.As(err, &target)
}
