package stake

import "github.com/pkg/errors"

// ValidatorStatus captures where a validator currently sits in the set
// lifecycle. Status changes that affect the active set only take effect
// inside the epoch-boundary recomputation, never immediately.
type ValidatorStatus uint8

const (
	// StatusInactive is the resting state: registered but not part of the
	// active set and not queued to join it.
	StatusInactive ValidatorStatus = iota
	// StatusPendingActive marks a validator queued for activation at the
	// next epoch boundary.
	StatusPendingActive
	// StatusActive marks a member of the current active set, carrying a
	// valid active-set index.
	StatusActive
	// StatusPendingInactive marks an active validator that leaves the set
	// at the next epoch boundary. It keeps proposing until then.
	StatusPendingInactive
)

func (s ValidatorStatus) String() string {
	switch s {
	case StatusInactive:
		return "inactive"
	case StatusPendingActive:
		return "pending_active"
	case StatusActive:
		return "active"
	case StatusPendingInactive:
		return "pending_inactive"
	default:
		return "unknown"
	}
}

// ParseStatus parses a string representation of a validator status.
func ParseStatus(s string) (ValidatorStatus, error) {
	switch s {
	case "inactive":
		return StatusInactive, nil
	case "pending_active":
		return StatusPendingActive, nil
	case "active":
		return StatusActive, nil
	case "pending_inactive":
		return StatusPendingInactive, nil
	default:
		return 0, errors.Errorf("invalid validator status string (%s)", s)
	}
}
