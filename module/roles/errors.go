package roles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/graviton-network/graviton-go/model/stake"
)

// UnauthorizedError indicates that a restricted operation was invoked by a
// caller that holds none of the expected roles. It carries both the actual
// caller and the expected roles.
type UnauthorizedError struct {
	Caller   stake.Address
	Expected []Role
}

// NewUnauthorizedError constructs an UnauthorizedError.
func NewUnauthorizedError(caller stake.Address, expected ...Role) error {
	return UnauthorizedError{Caller: caller, Expected: expected}
}

func (e UnauthorizedError) Error() string {
	names := make([]string, 0, len(e.Expected))
	for _, role := range e.Expected {
		names = append(names, role.String())
	}
	return fmt.Sprintf("caller %s is not authorized (expected role: %s)", e.Caller, strings.Join(names, "|"))
}

// IsUnauthorizedError returns whether err is or wraps an UnauthorizedError.
func IsUnauthorizedError(err error) bool {
	var target UnauthorizedError
	return errors.As(err, &target)
}
