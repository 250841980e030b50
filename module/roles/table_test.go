package roles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/roles"
)

func TestDefaultTable(t *testing.T) {
	table := roles.DefaultTable()

	for _, role := range roles.Roles() {
		identity := table.Identity(role)
		assert.True(t, table.HasRole(identity, role))
		require.NoError(t, table.Require(identity, role))
	}

	// no identity holds more than one role
	assert.False(t, table.HasRole(roles.DefaultGenesisAuthority, roles.Governance))
}

func TestNewTableRejectsIncompleteAssignments(t *testing.T) {
	_, err := roles.NewTable(map[roles.Role]stake.Address{
		roles.Genesis: roles.DefaultGenesisAuthority,
	})
	assert.Error(t, err)
}

func TestNewTableRejectsDuplicateIdentity(t *testing.T) {
	_, err := roles.NewTable(map[roles.Role]stake.Address{
		roles.Genesis:       roles.DefaultGenesisAuthority,
		roles.BlockPrologue: roles.DefaultGenesisAuthority,
		roles.Consensus:     roles.DefaultConsensusCaller,
		roles.Governance:    roles.DefaultGovernanceAuthority,
	})
	assert.Error(t, err)
}

func TestNewTableRejectsSystemIdentity(t *testing.T) {
	_, err := roles.NewTable(map[roles.Role]stake.Address{
		roles.Genesis:       stake.SystemAddress,
		roles.BlockPrologue: roles.DefaultBlockPrologueCaller,
		roles.Consensus:     roles.DefaultConsensusCaller,
		roles.Governance:    roles.DefaultGovernanceAuthority,
	})
	assert.Error(t, err)
}

func TestRequireUnauthorized(t *testing.T) {
	table := roles.DefaultTable()
	intruder := stake.DeriveAddress([]byte("intruder"))

	err := table.Require(intruder, roles.Governance)
	require.Error(t, err)
	assert.True(t, roles.IsUnauthorizedError(err))

	// a privileged identity is still rejected when the wrong role is required
	err = table.Require(roles.DefaultConsensusCaller, roles.Governance)
	require.Error(t, err)
	assert.True(t, roles.IsUnauthorizedError(err))

	// any of multiple expected roles suffices
	require.NoError(t, table.Require(roles.DefaultGovernanceAuthority, roles.Consensus, roles.Governance))
}

func TestParseRole(t *testing.T) {
	for _, role := range roles.Roles() {
		parsed, err := roles.ParseRole(role.String())
		require.NoError(t, err)
		assert.Equal(t, role, parsed)
	}

	_, err := roles.ParseRole("bogus")
	assert.Error(t, err)
}
