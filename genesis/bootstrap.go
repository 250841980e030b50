package genesis

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
	"github.com/graviton-network/graviton-go/module/chainclock"
	"github.com/graviton-network/graviton-go/module/dkg"
	"github.com/graviton-network/graviton-go/module/epochs"
	"github.com/graviton-network/graviton-go/module/events"
	"github.com/graviton-network/graviton-go/module/metrics"
	"github.com/graviton-network/graviton-go/module/performance"
	"github.com/graviton-network/graviton-go/module/roles"
	"github.com/graviton-network/graviton-go/module/stagedconfig"
	"github.com/graviton-network/graviton-go/module/validators"
)

// System is the fully wired epoch lifecycle core produced by Bootstrap.
type System struct {
	ChainID uint64

	Table    *roles.Table
	Clock    *chainclock.ChainClock
	Ledger   *validators.MapLedger
	Registry *validators.Registry
	Tracker  *performance.Tracker
	DKG      *dkg.Coordinator
	Reconfig *epochs.Reconfiguration
	Blocker  *epochs.Blocker

	Distributor *events.Distributor

	ValidatorConfig  *stagedconfig.Cell[stake.ValidatorConfig]
	StakingConfig    *stagedconfig.Cell[stake.StakingConfig]
	GovernanceConfig *stagedconfig.Cell[stake.GovernanceConfig]
	EpochInterval    *stagedconfig.Cell[uint64]
	Randomness       *stagedconfig.Cell[stake.RandomnessConfig]
	MajorVersion     *stagedconfig.Cell[uint64]
	ConsensusConfig  *stagedconfig.Cell[[]byte]
	ExecutionConfig  *stagedconfig.Cell[[]byte]
	Configs          *stagedconfig.Registry
}

// Option customizes the bootstrap wiring.
type Option func(*options)

type options struct {
	epochMetrics     module.EpochMetrics
	validatorMetrics module.ValidatorMetrics
	consumers        []module.ReconfigurationConsumer
}

// WithEpochMetrics replaces the default no-op epoch metrics.
func WithEpochMetrics(m module.EpochMetrics) Option {
	return func(o *options) { o.epochMetrics = m }
}

// WithValidatorMetrics replaces the default no-op validator metrics.
func WithValidatorMetrics(m module.ValidatorMetrics) Option {
	return func(o *options) { o.validatorMetrics = m }
}

// WithConsumer subscribes a consumer to lifecycle notifications.
func WithConsumer(c module.ReconfigurationConsumer) Option {
	return func(o *options) { o.consumers = append(o.consumers, c) }
}

// Bootstrap validates the genesis configuration, constructs the component
// graph, registers and activates the initial validator set through the
// genesis authority, and initializes the epoch state machine at epoch 0.
func Bootstrap(log zerolog.Logger, cfg *Config, opts ...Option) (*System, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid genesis config")
	}

	o := options{
		epochMetrics:     metrics.NewNoopCollector(),
		validatorMetrics: metrics.NewNoopCollector(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	distributor := events.NewDistributor()
	for _, c := range o.consumers {
		distributor.AddConsumer(c)
	}

	validatorCfg, err := cfg.ValidatorConfig.Parse()
	if err != nil {
		return nil, err
	}
	stakingCfg, err := cfg.StakingConfig.Parse()
	if err != nil {
		return nil, err
	}
	governanceCfg, err := cfg.GovernanceConfig.Parse()
	if err != nil {
		return nil, err
	}
	randomnessCfg, err := cfg.RandomnessConfig.Parse()
	if err != nil {
		return nil, err
	}
	table, err := cfg.Roles.Parse()
	if err != nil {
		return nil, err
	}
	consensusBlob, err := parseHexBytes("consensusConfig", cfg.ConsensusConfig)
	if err != nil {
		return nil, err
	}
	executionBlob, err := parseHexBytes("executionConfig", cfg.ExecutionConfig)
	if err != nil {
		return nil, err
	}

	sys := &System{
		ChainID:     cfg.ChainID,
		Table:       table,
		Distributor: distributor,
	}

	sys.ValidatorConfig = stagedconfig.NewValidated("validator_config", validatorCfg,
		func(c stake.ValidatorConfig) error { return c.Validate() })
	sys.StakingConfig = stagedconfig.New("staking_config", stakingCfg)
	sys.GovernanceConfig = stagedconfig.New("governance_config", governanceCfg)
	sys.MajorVersion = stagedconfig.New("major_version", cfg.MajorVersion)
	sys.EpochInterval = stagedconfig.NewValidated("epoch_interval_micros", cfg.EpochIntervalMicros,
		func(interval uint64) error {
			if interval == 0 {
				return errors.New("epoch interval must be positive")
			}
			return nil
		})
	sys.Randomness = stagedconfig.NewValidated("randomness_config", randomnessCfg,
		func(c stake.RandomnessConfig) error { return c.Validate() })
	sys.ConsensusConfig = stagedconfig.New("consensus_config", consensusBlob)
	sys.ExecutionConfig = stagedconfig.New("execution_config", executionBlob)

	sys.Configs = stagedconfig.NewRegistry(log)
	sys.Configs.Add(
		sys.ValidatorConfig,
		sys.StakingConfig,
		sys.GovernanceConfig,
		sys.MajorVersion,
		sys.EpochInterval,
		sys.Randomness,
		sys.ConsensusConfig,
		sys.ExecutionConfig,
	)

	sys.Clock = chainclock.New(log, stake.Timestamp(cfg.GenesisTimeMicros))
	sys.Ledger = validators.NewMapLedger()
	sys.Registry = validators.NewRegistry(log, o.validatorMetrics, distributor, table, sys.Ledger, sys.ValidatorConfig)
	sys.Tracker = performance.NewTracker(log, 0)
	sys.DKG = dkg.NewCoordinator(log, o.epochMetrics)
	sys.Reconfig = epochs.NewReconfiguration(
		log, o.epochMetrics, distributor, table,
		sys.Clock, sys.Registry, sys.Tracker, sys.DKG,
		sys.EpochInterval, sys.Randomness, sys.Configs,
	)
	sys.Registry.SetTransitionGate(sys.Reconfig)
	sys.Blocker = epochs.NewBlocker(log, table, sys.Tracker, sys.Clock, sys.Registry, sys.Reconfig, distributor)

	genesisAuthority := table.Identity(roles.Genesis)
	for i, v := range cfg.Validators {
		if err := bootstrapValidator(sys, genesisAuthority, v); err != nil {
			return nil, errors.Wrapf(err, "genesis validator %d", i)
		}
	}

	// activate the initial set at epoch 0
	sys.Registry.OnNewEpoch()
	sys.Tracker.OnNewEpoch(sys.Registry.ActiveCount())
	if err := sys.Reconfig.Initialize(genesisAuthority); err != nil {
		return nil, errors.Wrap(err, "initializing reconfiguration")
	}

	log.Info().
		Uint64("chain_id", cfg.ChainID).
		Int("validators", sys.Registry.ActiveCount()).
		Uint64("total_voting_power", sys.Registry.TotalVotingPower()).
		Msg("genesis bootstrap complete")
	return sys, nil
}

func bootstrapValidator(sys *System, genesisAuthority stake.Address, v InitialValidator) error {
	operator, err := stake.HexToAddress(v.Operator)
	if err != nil {
		return err
	}
	owner, err := stake.HexToAddress(v.Owner)
	if err != nil {
		return err
	}
	bonded, err := parseAmount("stakeAmount", v.StakeAmount)
	if err != nil {
		return err
	}
	pubkey, err := parseHexBytes("consensusPubkey", v.ConsensusPubkey)
	if err != nil {
		return err
	}
	pop, err := parseHexBytes("consensusPop", v.ConsensusPop)
	if err != nil {
		return err
	}

	sys.Ledger.SetBonded(owner, bonded)

	identity, err := sys.Registry.Register(genesisAuthority, validators.RegisterRequest{
		Pool:              owner,
		Operator:          operator,
		ConsensusPubkey:   pubkey,
		ConsensusPop:      pop,
		Moniker:           v.Moniker,
		FeeRecipient:      operator,
		NetworkAddresses:  []byte(v.NetworkAddresses),
		FullnodeAddresses: []byte(v.FullnodeAddresses),
	})
	if err != nil {
		return errors.Wrap(err, "registering")
	}
	if err := sys.Registry.JoinValidatorSet(genesisAuthority, identity); err != nil {
		return errors.Wrap(err, "joining validator set")
	}
	return nil
}
