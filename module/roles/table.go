package roles

import (
	"github.com/pkg/errors"

	"github.com/graviton-network/graviton-go/model/stake"
)

// Default caller identities, used when the genesis configuration does not
// assign roles explicitly. They mirror the reserved system accounts of the
// runtime.
var (
	DefaultGenesisAuthority    = reserved(0x01)
	DefaultBlockPrologueCaller = reserved(0x02)
	DefaultConsensusCaller     = reserved(0x03)
	DefaultGovernanceAuthority = reserved(0x04)
)

func reserved(tag byte) stake.Address {
	var addr stake.Address
	addr[stake.AddressLength-1] = tag
	return addr
}

// Table maps each privileged role to exactly one caller identity.
type Table struct {
	assignments map[Role]stake.Address
}

// NewTable builds a role table from explicit assignments. Every role in the
// closed set must be assigned, and no two roles may share an identity.
func NewTable(assignments map[Role]stake.Address) (*Table, error) {
	byAddr := make(map[stake.Address]Role, len(assignments))
	for _, role := range Roles() {
		addr, ok := assignments[role]
		if !ok {
			return nil, errors.Errorf("role %s has no assigned caller", role)
		}
		if addr == stake.SystemAddress {
			return nil, errors.Errorf("role %s cannot be assigned the system identity", role)
		}
		if prev, dup := byAddr[addr]; dup {
			return nil, errors.Errorf("caller %s assigned to both %s and %s", addr, prev, role)
		}
		byAddr[addr] = role
	}
	dup := make(map[Role]stake.Address, len(assignments))
	for role, addr := range assignments {
		dup[role] = addr
	}
	return &Table{assignments: dup}, nil
}

// DefaultTable returns a table with the reserved default identities.
func DefaultTable() *Table {
	table, err := NewTable(map[Role]stake.Address{
		Genesis:       DefaultGenesisAuthority,
		BlockPrologue: DefaultBlockPrologueCaller,
		Consensus:     DefaultConsensusCaller,
		Governance:    DefaultGovernanceAuthority,
	})
	if err != nil {
		panic("default role table invalid: " + err.Error())
	}
	return table
}

// Identity returns the caller identity assigned to the role.
func (t *Table) Identity(role Role) stake.Address {
	return t.assignments[role]
}

// HasRole reports whether the caller holds the given role.
func (t *Table) HasRole(caller stake.Address, role Role) bool {
	return t.assignments[role] == caller
}

// Require checks that the caller holds one of the expected roles.
//
// Expected errors during normal operations:
//   - UnauthorizedError if the caller holds none of the expected roles.
func (t *Table) Require(caller stake.Address, expected ...Role) error {
	for _, role := range expected {
		if t.assignments[role] == caller {
			return nil
		}
	}
	return NewUnauthorizedError(caller, expected...)
}
