package genesis_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/genesis"
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/roles"
	"github.com/graviton-network/graviton-go/utils/unittest"
)

func TestConfigJSONRoundtrip(t *testing.T) {
	cfg := unittest.GenesisConfigFixture(
		unittest.InitialValidatorFixture(500),
		unittest.InitialValidatorFixture(700),
	)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	var decoded genesis.Config
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, &decoded)
	require.NoError(t, decoded.Validate())
}

func TestValidateCollectsAllProblems(t *testing.T) {
	valid := unittest.InitialValidatorFixture(500)
	require.NoError(t, unittest.GenesisConfigFixture(valid).Validate())

	t.Run("no validators", func(t *testing.T) {
		cfg := unittest.GenesisConfigFixture()
		assert.Error(t, cfg.Validate())
	})

	t.Run("stake out of bounds", func(t *testing.T) {
		cfg := unittest.GenesisConfigFixture(unittest.InitialValidatorFixture(50))
		assert.Error(t, cfg.Validate())
	})

	t.Run("duplicate operator", func(t *testing.T) {
		a := unittest.InitialValidatorFixture(500)
		b := unittest.InitialValidatorFixture(500)
		b.Operator = a.Operator
		cfg := unittest.GenesisConfigFixture(a, b)
		assert.Error(t, cfg.Validate())
	})

	t.Run("malformed consensus key", func(t *testing.T) {
		v := unittest.InitialValidatorFixture(500)
		v.ConsensusPubkey = "abcd"
		cfg := unittest.GenesisConfigFixture(v)
		assert.Error(t, cfg.Validate())
	})

	t.Run("too many validators", func(t *testing.T) {
		cfg := unittest.GenesisConfigFixture(
			unittest.InitialValidatorFixture(500),
			unittest.InitialValidatorFixture(500),
		)
		cfg.ValidatorConfig.MaxValidatorSetSize = "1"
		assert.Error(t, cfg.Validate())
	})

	t.Run("zero epoch interval", func(t *testing.T) {
		cfg := unittest.GenesisConfigFixture(unittest.InitialValidatorFixture(500))
		cfg.EpochIntervalMicros = 0
		assert.Error(t, cfg.Validate())
	})

	t.Run("multiple problems reported together", func(t *testing.T) {
		v := unittest.InitialValidatorFixture(50)
		v.Moniker = ""
		cfg := unittest.GenesisConfigFixture(v)
		cfg.EpochIntervalMicros = 0
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "epochIntervalMicros")
		assert.Contains(t, err.Error(), "moniker")
	})
}

func TestBootstrap(t *testing.T) {
	cfg := unittest.GenesisConfigFixture(
		unittest.InitialValidatorFixture(500),
		unittest.InitialValidatorFixture(700),
		unittest.InitialValidatorFixture(800),
	)
	consumer := &unittest.RecordingConsumer{}

	sys, err := genesis.Bootstrap(unittest.Logger(), cfg, genesis.WithConsumer(consumer))
	require.NoError(t, err)

	assert.Equal(t, uint64(4), sys.ChainID)
	assert.Equal(t, uint64(0), sys.Reconfig.CurrentEpoch())
	assert.Equal(t, stake.Timestamp(cfg.GenesisTimeMicros), sys.Clock.Now())
	assert.Equal(t, stake.Timestamp(cfg.GenesisTimeMicros), sys.Reconfig.LastReconfigurationTime())

	require.Equal(t, 3, sys.Registry.ActiveCount())
	assert.Equal(t, uint64(2_000), sys.Registry.TotalVotingPower())
	for i := 0; i < 3; i++ {
		info, err := sys.Registry.ActiveValidatorAt(uint64(i))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), info.ValidatorIndex)
	}

	// performance counters are sized to the genesis set
	assert.Len(t, sys.Tracker.AllPerformances(), 3)

	// the system is immediately able to process blocks
	prologue := sys.Table.Identity(roles.BlockPrologue)
	require.NoError(t, sys.Blocker.OnBlockStart(prologue, 0, nil,
		sys.Clock.Now().AddMicros(1_000)))
	assert.Equal(t, []uint64{1}, consumer.Blocks)

	// and the first epoch ends on schedule
	require.NoError(t, sys.Blocker.OnBlockStart(prologue, 1, nil,
		stake.Timestamp(cfg.GenesisTimeMicros+cfg.EpochIntervalMicros)))
	assert.Equal(t, uint64(1), sys.Reconfig.CurrentEpoch())
	assert.Equal(t, []uint64{1}, consumer.Transitions)
}

func TestBootstrapRejectsInvalidConfig(t *testing.T) {
	cfg := unittest.GenesisConfigFixture() // no validators
	_, err := genesis.Bootstrap(unittest.Logger(), cfg)
	require.Error(t, err)
}

func TestBootstrapWithExplicitRoles(t *testing.T) {
	governance := unittest.AddressFixture()
	cfg := unittest.GenesisConfigFixture(unittest.InitialValidatorFixture(500))
	cfg.Roles = &genesis.RolesConfig{GovernanceAuthority: governance.Hex()}

	sys, err := genesis.Bootstrap(unittest.Logger(), cfg)
	require.NoError(t, err)

	assert.Equal(t, governance, sys.Table.Identity(roles.Governance))
	// unset roles keep their reserved defaults
	assert.Equal(t, roles.DefaultGenesisAuthority, sys.Table.Identity(roles.Genesis))

	require.NoError(t, sys.Reconfig.GovernanceReconfigure(governance))
	assert.Equal(t, uint64(1), sys.Reconfig.CurrentEpoch())
}
