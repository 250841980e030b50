// Package genesis bootstraps the epoch lifecycle core from a genesis
// configuration: it registers and activates the initial validator set,
// anchors chain time, and initializes the reconfiguration state machine at
// epoch 0.
package genesis

import (
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/roles"
)

// Config is the genesis configuration. Field names follow the genesis JSON
// produced by the chain tooling; token amounts are decimal strings.
type Config struct {
	ChainID             uint64                 `json:"chainId"`
	ValidatorConfig     ValidatorConfigParams  `json:"validatorConfig"`
	StakingConfig       StakingConfigParams    `json:"stakingConfig"`
	GovernanceConfig    GovernanceConfigParams `json:"governanceConfig"`
	EpochIntervalMicros uint64                 `json:"epochIntervalMicros"`
	GenesisTimeMicros   uint64                 `json:"genesisTimeMicros"`
	MajorVersion        uint64                 `json:"majorVersion"`
	ConsensusConfig     string                 `json:"consensusConfig"`
	ExecutionConfig     string                 `json:"executionConfig"`
	RandomnessConfig    RandomnessConfigData   `json:"randomnessConfig"`
	Roles               *RolesConfig           `json:"roles,omitempty"`
	Validators          []InitialValidator     `json:"validators"`
}

// ValidatorConfigParams mirrors stake.ValidatorConfig in genesis JSON form.
type ValidatorConfigParams struct {
	MinimumBond                 string `json:"minimumBond"`
	MaximumBond                 string `json:"maximumBond"`
	UnbondingDelayMicros        uint64 `json:"unbondingDelayMicros"`
	AllowValidatorSetChange     bool   `json:"allowValidatorSetChange"`
	VotingPowerIncreaseLimitPct uint64 `json:"votingPowerIncreaseLimitPct"`
	MaxValidatorSetSize         string `json:"maxValidatorSetSize"`
	AutoEvictEnabled            bool   `json:"autoEvictEnabled"`
	AutoEvictThreshold          string `json:"autoEvictThreshold,omitempty"`
}

// Parse converts the JSON form into the runtime config.
func (p ValidatorConfigParams) Parse() (stake.ValidatorConfig, error) {
	minBond, err := parseAmount("minimumBond", p.MinimumBond)
	if err != nil {
		return stake.ValidatorConfig{}, err
	}
	maxBond, err := parseAmount("maximumBond", p.MaximumBond)
	if err != nil {
		return stake.ValidatorConfig{}, err
	}
	maxSize, err := parseAmount("maxValidatorSetSize", p.MaxValidatorSetSize)
	if err != nil {
		return stake.ValidatorConfig{}, err
	}
	var threshold uint64
	if p.AutoEvictThreshold != "" {
		threshold, err = parseAmount("autoEvictThreshold", p.AutoEvictThreshold)
		if err != nil {
			return stake.ValidatorConfig{}, err
		}
	}
	cfg := stake.ValidatorConfig{
		MinimumBond:                 minBond,
		MaximumBond:                 maxBond,
		UnbondingDelayMicros:        p.UnbondingDelayMicros,
		AllowValidatorSetChange:     p.AllowValidatorSetChange,
		VotingPowerIncreaseLimitPct: p.VotingPowerIncreaseLimitPct,
		MaxValidatorSetSize:         maxSize,
		AutoEvictEnabled:            p.AutoEvictEnabled,
		AutoEvictThreshold:          threshold,
	}
	if err := cfg.Validate(); err != nil {
		return stake.ValidatorConfig{}, errors.Wrap(err, "invalid validator config")
	}
	return cfg, nil
}

// StakingConfigParams mirrors stake.StakingConfig in genesis JSON form.
type StakingConfigParams struct {
	MinimumStake         string `json:"minimumStake"`
	LockupDurationMicros uint64 `json:"lockupDurationMicros"`
	UnbondingDelayMicros uint64 `json:"unbondingDelayMicros"`
	MinimumProposalStake string `json:"minimumProposalStake"`
}

// Parse converts the JSON form into the runtime config.
func (p StakingConfigParams) Parse() (stake.StakingConfig, error) {
	minStake, err := parseAmount("minimumStake", p.MinimumStake)
	if err != nil {
		return stake.StakingConfig{}, err
	}
	minProposal, err := parseAmount("minimumProposalStake", p.MinimumProposalStake)
	if err != nil {
		return stake.StakingConfig{}, err
	}
	return stake.StakingConfig{
		MinimumStake:         minStake,
		LockupDurationMicros: p.LockupDurationMicros,
		UnbondingDelayMicros: p.UnbondingDelayMicros,
		MinimumProposalStake: minProposal,
	}, nil
}

// GovernanceConfigParams mirrors stake.GovernanceConfig in genesis JSON
// form.
type GovernanceConfigParams struct {
	MinVotingThreshold    string `json:"minVotingThreshold"`
	RequiredProposerStake string `json:"requiredProposerStake"`
	VotingDurationMicros  uint64 `json:"votingDurationMicros"`
	ExecutionDelayMicros  uint64 `json:"executionDelayMicros"`
	ExecutionWindowMicros uint64 `json:"executionWindowMicros"`
}

// Parse converts the JSON form into the runtime config.
func (p GovernanceConfigParams) Parse() (stake.GovernanceConfig, error) {
	threshold, err := parseAmount("minVotingThreshold", p.MinVotingThreshold)
	if err != nil {
		return stake.GovernanceConfig{}, err
	}
	proposerStake, err := parseAmount("requiredProposerStake", p.RequiredProposerStake)
	if err != nil {
		return stake.GovernanceConfig{}, err
	}
	return stake.GovernanceConfig{
		MinVotingThreshold:    threshold,
		RequiredProposerStake: proposerStake,
		VotingDurationMicros:  p.VotingDurationMicros,
		ExecutionDelayMicros:  p.ExecutionDelayMicros,
		ExecutionWindowMicros: p.ExecutionWindowMicros,
	}, nil
}

// RandomnessConfigData mirrors stake.RandomnessConfig in genesis JSON form.
// Variant 0 is off, 1 is the V2 weighted DKG.
type RandomnessConfigData struct {
	Variant  uint8        `json:"variant"`
	ConfigV2 ConfigV2Data `json:"configV2"`
}

// ConfigV2Data carries the V2 thresholds.
type ConfigV2Data struct {
	SecrecyThreshold         uint64 `json:"secrecyThreshold"`
	ReconstructionThreshold  uint64 `json:"reconstructionThreshold"`
	FastPathSecrecyThreshold uint64 `json:"fastPathSecrecyThreshold"`
}

// Parse converts the JSON form into the runtime config.
func (p RandomnessConfigData) Parse() (stake.RandomnessConfig, error) {
	if p.Variant > uint8(stake.RandomnessV2) {
		return stake.RandomnessConfig{}, errors.Errorf("unknown randomness variant %d", p.Variant)
	}
	cfg := stake.RandomnessConfig{
		Variant:                  stake.RandomnessVariant(p.Variant),
		SecrecyThreshold:         p.ConfigV2.SecrecyThreshold,
		ReconstructionThreshold:  p.ConfigV2.ReconstructionThreshold,
		FastPathSecrecyThreshold: p.ConfigV2.FastPathSecrecyThreshold,
	}
	if err := cfg.Validate(); err != nil {
		return stake.RandomnessConfig{}, errors.Wrap(err, "invalid randomness config")
	}
	return cfg, nil
}

// RolesConfig assigns the privileged caller roles. Unset fields fall back
// to the reserved default identities.
type RolesConfig struct {
	GenesisAuthority    string `json:"genesisAuthority,omitempty"`
	BlockPrologueCaller string `json:"blockPrologueCaller,omitempty"`
	ConsensusCaller     string `json:"consensusCaller,omitempty"`
	GovernanceAuthority string `json:"governanceAuthority,omitempty"`
}

// Parse builds the role table, applying defaults for unset fields.
func (p *RolesConfig) Parse() (*roles.Table, error) {
	assignments := map[roles.Role]stake.Address{
		roles.Genesis:       roles.DefaultGenesisAuthority,
		roles.BlockPrologue: roles.DefaultBlockPrologueCaller,
		roles.Consensus:     roles.DefaultConsensusCaller,
		roles.Governance:    roles.DefaultGovernanceAuthority,
	}
	if p != nil {
		for role, field := range map[roles.Role]string{
			roles.Genesis:       p.GenesisAuthority,
			roles.BlockPrologue: p.BlockPrologueCaller,
			roles.Consensus:     p.ConsensusCaller,
			roles.Governance:    p.GovernanceAuthority,
		} {
			if field == "" {
				continue
			}
			addr, err := stake.HexToAddress(field)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid %s caller", role)
			}
			assignments[role] = addr
		}
	}
	return roles.NewTable(assignments)
}

// InitialValidator is one entry of the genesis validator set.
type InitialValidator struct {
	Operator          string `json:"operator"`
	Owner             string `json:"owner"`
	StakeAmount       string `json:"stakeAmount"`
	Moniker           string `json:"moniker"`
	ConsensusPubkey   string `json:"consensusPubkey"`
	ConsensusPop      string `json:"consensusPop"`
	NetworkAddresses  string `json:"networkAddresses"`
	FullnodeAddresses string `json:"fullnodeAddresses"`
	VotingPower       string `json:"votingPower"`
}

func parseAmount(field, value string) (uint64, error) {
	amount, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid amount for %s", field)
	}
	return amount, nil
}

func parseHexBytes(field, value string) ([]byte, error) {
	s := strings.TrimPrefix(value, "0x")
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid hex for %s", field)
	}
	return b, nil
}
