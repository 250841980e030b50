package stake

import "github.com/pkg/errors"

// ValidatorConfig bounds validator registration and the epoch-boundary
// recomputation of the active set. It is a per-epoch tunable: changes are
// staged and only take effect at the next epoch boundary.
type ValidatorConfig struct {
	// MinimumBond and MaximumBond bound the bonded stake accepted at
	// registration. MaximumBond also caps effective voting power.
	MinimumBond uint64
	MaximumBond uint64

	// UnbondingDelayMicros is the delay applied to stake leaving the set.
	// Stake custody is handled outside this module; the value is carried
	// here so it commits atomically with the rest of the validator config.
	UnbondingDelayMicros uint64

	// AllowValidatorSetChange gates operator-initiated join/leave requests.
	AllowValidatorSetChange bool

	// VotingPowerIncreaseLimitPct bounds, per epoch, the total voting power
	// activated from the pending-active queue, as a percentage of the total
	// active power when the recomputation starts.
	VotingPowerIncreaseLimitPct uint64

	// MaxValidatorSetSize bounds the size of the active set.
	MaxValidatorSetSize uint64

	// AutoEvictEnabled and AutoEvictThreshold control performance-based
	// eviction. The threshold is the failure share, in basis points, above
	// which a validator is scheduled for removal.
	AutoEvictEnabled   bool
	AutoEvictThreshold uint64
}

// Validate checks internal consistency of the validator config.
func (c ValidatorConfig) Validate() error {
	if c.MinimumBond == 0 {
		return errors.New("minimum bond must be positive")
	}
	if c.MaximumBond < c.MinimumBond {
		return errors.Errorf("maximum bond (%d) below minimum bond (%d)", c.MaximumBond, c.MinimumBond)
	}
	if c.VotingPowerIncreaseLimitPct == 0 || c.VotingPowerIncreaseLimitPct > 50 {
		return errors.Errorf("voting power increase limit must be in (0, 50], got %d", c.VotingPowerIncreaseLimitPct)
	}
	if c.MaxValidatorSetSize == 0 {
		return errors.New("maximum validator set size must be positive")
	}
	if c.AutoEvictThreshold > 10_000 {
		return errors.Errorf("auto-evict threshold exceeds 10000 basis points (%d)", c.AutoEvictThreshold)
	}
	return nil
}

// StakingConfig carries stake-pool parameters. Fund custody itself lives
// outside this module; the config is committed here at epoch boundaries so
// the custody layer observes parameter changes aligned with epochs.
type StakingConfig struct {
	MinimumStake         uint64
	LockupDurationMicros uint64
	UnbondingDelayMicros uint64
	MinimumProposalStake uint64
}

// GovernanceConfig carries proposal-voting parameters for the governance
// collaborator, committed at epoch boundaries.
type GovernanceConfig struct {
	MinVotingThreshold    uint64
	RequiredProposerStake uint64
	VotingDurationMicros  uint64
	ExecutionDelayMicros  uint64
	ExecutionWindowMicros uint64
}

// RandomnessVariant selects the on-chain randomness protocol for an epoch.
type RandomnessVariant uint8

const (
	// RandomnessOff disables DKG-based randomness: epoch transitions apply
	// immediately, with no DKG hand-off.
	RandomnessOff RandomnessVariant = iota
	// RandomnessV2 enables the weighted DKG with a fast path.
	RandomnessV2
)

func (v RandomnessVariant) String() string {
	switch v {
	case RandomnessOff:
		return "off"
	case RandomnessV2:
		return "v2"
	default:
		return "unknown"
	}
}

// RandomnessConfig declares whether DKG-based randomness is enabled for the
// current epoch, and with which thresholds.
type RandomnessConfig struct {
	Variant RandomnessVariant

	// Thresholds for the V2 variant, expressed as fractions of total weight
	// scaled by 1e4. Unused when the variant is off.
	SecrecyThreshold         uint64
	ReconstructionThreshold  uint64
	FastPathSecrecyThreshold uint64
}

// Enabled returns true if an epoch transition must run the DKG hand-off.
func (c RandomnessConfig) Enabled() bool {
	return c.Variant != RandomnessOff
}

// Validate checks internal consistency of the randomness config.
func (c RandomnessConfig) Validate() error {
	if c.Variant == RandomnessOff {
		return nil
	}
	if c.ReconstructionThreshold <= c.SecrecyThreshold {
		return errors.Errorf("reconstruction threshold (%d) must exceed secrecy threshold (%d)",
			c.ReconstructionThreshold, c.SecrecyThreshold)
	}
	return nil
}
