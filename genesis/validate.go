package genesis

import (
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/graviton-network/graviton-go/model/stake"
)

// Validate checks the genesis configuration for internal consistency. It
// collects every problem it finds rather than stopping at the first one.
func (c *Config) Validate() error {
	var result *multierror.Error

	validatorCfg, err := c.ValidatorConfig.Parse()
	if err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.StakingConfig.Parse(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.GovernanceConfig.Parse(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.RandomnessConfig.Parse(); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := c.Roles.Parse(); err != nil {
		result = multierror.Append(result, err)
	}
	if c.EpochIntervalMicros == 0 {
		result = multierror.Append(result, errors.New("epochIntervalMicros must be positive"))
	}
	if _, err := parseHexBytes("consensusConfig", c.ConsensusConfig); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := parseHexBytes("executionConfig", c.ExecutionConfig); err != nil {
		result = multierror.Append(result, err)
	}

	if len(c.Validators) == 0 {
		result = multierror.Append(result, errors.New("genesis requires at least one validator"))
	}
	if validatorCfg.MaxValidatorSetSize > 0 && uint64(len(c.Validators)) > validatorCfg.MaxValidatorSetSize {
		result = multierror.Append(result, errors.Errorf(
			"%d genesis validators exceed max validator set size %d",
			len(c.Validators), validatorCfg.MaxValidatorSetSize))
	}

	seenOperators := make(map[stake.Address]struct{}, len(c.Validators))
	seenOwners := make(map[stake.Address]struct{}, len(c.Validators))
	for i, v := range c.Validators {
		if err := c.validateValidator(i, v, validatorCfg, seenOperators, seenOwners); err != nil {
			result = multierror.Append(result, err)
		}
	}

	return result.ErrorOrNil()
}

func (c *Config) validateValidator(
	i int,
	v InitialValidator,
	cfg stake.ValidatorConfig,
	seenOperators map[stake.Address]struct{},
	seenOwners map[stake.Address]struct{},
) error {
	var result *multierror.Error

	operator, err := stake.HexToAddress(v.Operator)
	if err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "validator %d: invalid operator", i))
	} else {
		if _, ok := seenOperators[operator]; ok {
			result = multierror.Append(result, errors.Errorf("validator %d: duplicate operator %s", i, operator))
		}
		seenOperators[operator] = struct{}{}
	}

	owner, err := stake.HexToAddress(v.Owner)
	if err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "validator %d: invalid owner", i))
	} else {
		if _, ok := seenOwners[owner]; ok {
			result = multierror.Append(result, errors.Errorf("validator %d: duplicate owner %s", i, owner))
		}
		seenOwners[owner] = struct{}{}
	}

	bonded, err := parseAmount("stakeAmount", v.StakeAmount)
	if err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "validator %d", i))
	} else if cfg.MinimumBond > 0 {
		if bonded < cfg.MinimumBond || bonded > cfg.MaximumBond {
			result = multierror.Append(result, errors.Errorf(
				"validator %d: stake %d outside bond bounds [%d, %d]",
				i, bonded, cfg.MinimumBond, cfg.MaximumBond))
		}
	}

	if len(v.Moniker) == 0 || len(v.Moniker) > stake.MaxMonikerLength {
		result = multierror.Append(result, errors.Errorf("validator %d: invalid moniker %q", i, v.Moniker))
	}

	pubkey, err := parseHexBytes("consensusPubkey", v.ConsensusPubkey)
	if err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "validator %d", i))
	} else if len(pubkey) != stake.ConsensusPubkeyLength {
		result = multierror.Append(result, errors.Errorf(
			"validator %d: consensus pubkey has %d bytes, expected %d",
			i, len(pubkey), stake.ConsensusPubkeyLength))
	}

	pop, err := parseHexBytes("consensusPop", v.ConsensusPop)
	if err != nil {
		result = multierror.Append(result, errors.Wrapf(err, "validator %d", i))
	} else if len(pop) != stake.ConsensusPopLength {
		result = multierror.Append(result, errors.Errorf(
			"validator %d: consensus proof of possession has %d bytes, expected %d",
			i, len(pop), stake.ConsensusPopLength))
	}

	if v.VotingPower != "" {
		power, err := parseAmount("votingPower", v.VotingPower)
		if err != nil {
			result = multierror.Append(result, errors.Wrapf(err, "validator %d", i))
		} else if bonded > 0 && cfg.MaximumBond > 0 {
			expected := bonded
			if expected > cfg.MaximumBond {
				expected = cfg.MaximumBond
			}
			if power != expected {
				result = multierror.Append(result, errors.Errorf(
					"validator %d: voting power %d does not match capped stake %d",
					i, power, expected))
			}
		}
	}

	return result.ErrorOrNil()
}
