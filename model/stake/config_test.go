package stake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/model/stake"
)

func validConfigFixture() stake.ValidatorConfig {
	return stake.ValidatorConfig{
		MinimumBond:                 100,
		MaximumBond:                 10_000,
		AllowValidatorSetChange:     true,
		VotingPowerIncreaseLimitPct: 20,
		MaxValidatorSetSize:         50,
		AutoEvictThreshold:          5_000,
	}
}

func TestValidatorConfigValidate(t *testing.T) {
	require.NoError(t, validConfigFixture().Validate())

	mutations := map[string]func(*stake.ValidatorConfig){
		"zero minimum bond":      func(c *stake.ValidatorConfig) { c.MinimumBond = 0 },
		"max bond below min":     func(c *stake.ValidatorConfig) { c.MaximumBond = c.MinimumBond - 1 },
		"zero increase limit":    func(c *stake.ValidatorConfig) { c.VotingPowerIncreaseLimitPct = 0 },
		"increase limit over 50": func(c *stake.ValidatorConfig) { c.VotingPowerIncreaseLimitPct = 51 },
		"zero set size":          func(c *stake.ValidatorConfig) { c.MaxValidatorSetSize = 0 },
		"threshold over 10000":   func(c *stake.ValidatorConfig) { c.AutoEvictThreshold = 10_001 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := validConfigFixture()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestRandomnessConfigValidate(t *testing.T) {
	off := stake.RandomnessConfig{Variant: stake.RandomnessOff}
	require.NoError(t, off.Validate())
	assert.False(t, off.Enabled())

	v2 := stake.RandomnessConfig{
		Variant:                  stake.RandomnessV2,
		SecrecyThreshold:         5_000,
		ReconstructionThreshold:  6_667,
		FastPathSecrecyThreshold: 6_700,
	}
	require.NoError(t, v2.Validate())
	assert.True(t, v2.Enabled())

	v2.ReconstructionThreshold = v2.SecrecyThreshold
	assert.Error(t, v2.Validate(), "reconstruction threshold must exceed secrecy threshold")
}

func TestStatusRoundtrip(t *testing.T) {
	for _, status := range []stake.ValidatorStatus{
		stake.StatusInactive,
		stake.StatusPendingActive,
		stake.StatusActive,
		stake.StatusPendingInactive,
	} {
		parsed, err := stake.ParseStatus(status.String())
		require.NoError(t, err)
		assert.Equal(t, status, parsed)
	}

	_, err := stake.ParseStatus("no such status")
	assert.Error(t, err)
}
