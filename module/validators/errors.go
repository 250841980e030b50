package validators

import (
	"errors"
	"fmt"

	"github.com/graviton-network/graviton-go/model/stake"
)

var (
	// ErrUnknownStakePool is returned when a registration references a
	// stake pool the ledger does not know.
	ErrUnknownStakePool = errors.New("unknown stake pool")

	// ErrUnknownValidator is returned when an operation references an
	// unregistered validator.
	ErrUnknownValidator = errors.New("unknown validator")

	// ErrAlreadyRegistered is returned when a registration would reuse a
	// stake pool or consensus identity that is already registered.
	ErrAlreadyRegistered = errors.New("already registered")

	// ErrInvalidMoniker is returned for monikers that are empty or exceed
	// the length bound.
	ErrInvalidMoniker = errors.New("invalid moniker")

	// ErrInvalidConsensusKey is returned for consensus keys or proofs of
	// possession with the wrong length.
	ErrInvalidConsensusKey = errors.New("invalid consensus key")

	// ErrSetChangeDisallowed is returned for join/leave requests while the
	// configuration disallows validator-set changes.
	ErrSetChangeDisallowed = errors.New("validator set changes are disallowed")

	// ErrTransitionInProgress is returned for set-mutating operations while
	// a reconfiguration is in flight.
	ErrTransitionInProgress = errors.New("reconfiguration in progress")

	// ErrLastValidator protects the final member of the active set: the
	// active set may never become empty.
	ErrLastValidator = errors.New("cannot remove the last active validator")

	// ErrValidatorSetFull is returned when a join request would exceed the
	// configured maximum validator set size.
	ErrValidatorSetFull = errors.New("validator set is full")

	// ErrIndexOutOfRange is returned for active-set lookups with an index
	// outside [0, activeCount).
	ErrIndexOutOfRange = errors.New("active-set index out of range")
)

// InvalidBondError indicates a bonded amount outside the configured
// [minimum, maximum] bond range.
type InvalidBondError struct {
	Bonded  uint64
	Minimum uint64
	Maximum uint64
}

func (e InvalidBondError) Error() string {
	return fmt.Sprintf("bonded stake %d outside configured bounds [%d, %d]", e.Bonded, e.Minimum, e.Maximum)
}

// IsInvalidBondError returns whether err is or wraps an InvalidBondError.
func IsInvalidBondError(err error) bool {
	var target InvalidBondError
	return errors.As(err, &target)
}

// InvalidStatusError indicates an operation invoked on a validator in the
// wrong lifecycle status.
type InvalidStatusError struct {
	Validator stake.Address
	Status    stake.ValidatorStatus
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("validator %s has status %s, which does not permit the operation", e.Validator, e.Status)
}

// IsInvalidStatusError returns whether err is or wraps an
// InvalidStatusError.
func IsInvalidStatusError(err error) bool {
	var target InvalidStatusError
	return errors.As(err, &target)
}
