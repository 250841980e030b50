// Package roles implements caller authorization for the epoch lifecycle
// core. Each restricted entry point is bound to one or two roles drawn from
// a small closed set; the mapping from role to caller identity is a
// configurable table rather than a set of hard-coded addresses.
package roles

import (
	"github.com/pkg/errors"
)

// Role identifies one of the privileged caller roles.
type Role uint8

const (
	// Genesis is the bootstrap authority, allowed to perform one-time
	// initialization actions.
	Genesis Role = iota + 1
	// BlockPrologue is the runtime caller invoking the per-block entry
	// point.
	BlockPrologue
	// Consensus is the consensus-engine caller, allowed to complete DKG
	// hand-offs with a transcript.
	Consensus
	// Governance is the governance authority, allowed to take emergency
	// actions.
	Governance
)

func (r Role) String() string {
	switch r {
	case Genesis:
		return "genesis"
	case BlockPrologue:
		return "block_prologue"
	case Consensus:
		return "consensus"
	case Governance:
		return "governance"
	default:
		return "unknown"
	}
}

// ParseRole parses a string representation of a role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "genesis":
		return Genesis, nil
	case "block_prologue":
		return BlockPrologue, nil
	case "consensus":
		return Consensus, nil
	case "governance":
		return Governance, nil
	default:
		return 0, errors.Errorf("invalid role string (%s)", s)
	}
}

// Roles returns the closed set of privileged roles.
func Roles() []Role {
	return []Role{Genesis, BlockPrologue, Consensus, Governance}
}
