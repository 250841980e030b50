// Package validators owns validator identity, lifecycle status, and the
// epoch-boundary recomputation of the active set.
//
// Status changes requested by operators or governance never touch the active
// set directly: they are queued and consumed only inside OnNewEpoch, which
// recomputes the set, its contiguous indices, and its capped voting power as
// a pure function of the membership sets. Records are never deleted;
// inactive is a resting state.
package validators

import (
	"fmt"
	"sort"

	"github.com/ef-ds/deque"
	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
	"github.com/graviton-network/graviton-go/module/roles"
	"github.com/graviton-network/graviton-go/module/stagedconfig"
)

// record is the registry's internal state for one registered validator. The
// validator identity is derived from the consensus key presented at
// registration and stays stable across key rotations.
type record struct {
	identity          stake.Address
	pool              stake.Address
	operator          stake.Address
	consensusPubkey   []byte
	consensusPop      []byte
	moniker           string
	feeRecipient      stake.Address
	networkAddresses  []byte
	fullnodeAddresses []byte

	// staged changes, applied only inside OnNewEpoch
	pendingConsensusPubkey []byte
	pendingConsensusPop    []byte
	pendingFeeRecipient    *stake.Address

	status stake.ValidatorStatus
	// index is the active-set index; meaningful only while status is
	// active or pending-inactive.
	index uint64
	// votingPower is the capped power of the current epoch; meaningful only
	// while in the active set.
	votingPower uint64
	// seq is the registration sequence number, the deterministic tie-break
	// for index assignment and pending-active admission.
	seq uint64
}

// RegisterRequest carries the parameters of a validator registration.
type RegisterRequest struct {
	Pool              stake.Address
	Operator          stake.Address
	ConsensusPubkey   []byte
	ConsensusPop      []byte
	Moniker           string
	FeeRecipient      stake.Address
	NetworkAddresses  []byte
	FullnodeAddresses []byte
}

// Registry implements validator lifecycle management and the module
// interfaces consumed by the reconfiguration orchestrator.
type Registry struct {
	log      zerolog.Logger
	metrics  module.ValidatorMetrics
	consumer module.ReconfigurationConsumer
	table    *roles.Table
	ledger   module.StakeLedger
	config   *stagedconfig.Cell[stake.ValidatorConfig]
	gate     module.TransitionGate

	records map[stake.Address]*record
	byPool  map[stake.Address]stake.Address

	// active holds the current active set (including pending-inactive
	// members), ordered by active-set index.
	active          []*record
	pendingActive   *deque.Deque
	pendingInactive map[stake.Address]struct{}

	totalVotingPower uint64
	nextSeq          uint64
}

var _ module.ValidatorRegistry = (*Registry)(nil)

// NewRegistry creates an empty registry.
func NewRegistry(
	log zerolog.Logger,
	metrics module.ValidatorMetrics,
	consumer module.ReconfigurationConsumer,
	table *roles.Table,
	ledger module.StakeLedger,
	config *stagedconfig.Cell[stake.ValidatorConfig],
) *Registry {
	return &Registry{
		log:             log.With().Str("component", "validator_registry").Logger(),
		metrics:         metrics,
		consumer:        consumer,
		table:           table,
		ledger:          ledger,
		config:          config,
		records:         make(map[stake.Address]*record),
		byPool:          make(map[stake.Address]stake.Address),
		pendingActive:   deque.New(),
		pendingInactive: make(map[stake.Address]struct{}),
	}
}

// SetTransitionGate wires the reconfiguration orchestrator's in-progress
// signal. Must be called during construction of the component graph, before
// any blocks are processed.
func (r *Registry) SetTransitionGate(gate module.TransitionGate) {
	r.gate = gate
}

// Register creates a validator record in the inactive resting state. The
// caller must be the operator named in the request, or the genesis authority
// registering on the operator's behalf during bootstrap; on the genesis path
// the consensus key format check is skipped, since bootstrap keys are
// validated against the genesis configuration instead.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a caller that is neither operator nor
//     genesis authority
//   - ErrUnknownStakePool, ErrAlreadyRegistered, ErrInvalidMoniker,
//     ErrInvalidConsensusKey
//   - InvalidBondError if the pool's bonded amount is out of bounds
func (r *Registry) Register(caller stake.Address, req RegisterRequest) (stake.Address, error) {
	genesisPath := false
	if caller != req.Operator {
		if err := r.table.Require(caller, roles.Genesis); err != nil {
			return stake.Address{}, err
		}
		genesisPath = true
	}

	if !genesisPath {
		if err := checkConsensusKey(req.ConsensusPubkey, req.ConsensusPop); err != nil {
			return stake.Address{}, err
		}
	}
	if len(req.Moniker) == 0 || len(req.Moniker) > stake.MaxMonikerLength {
		return stake.Address{}, fmt.Errorf("moniker length %d outside [1, %d]: %w",
			len(req.Moniker), stake.MaxMonikerLength, ErrInvalidMoniker)
	}

	bonded, ok := r.ledger.BondedStake(req.Pool)
	if !ok {
		return stake.Address{}, fmt.Errorf("stake pool %s: %w", req.Pool, ErrUnknownStakePool)
	}
	cfg := r.config.Get()
	if bonded < cfg.MinimumBond || bonded > cfg.MaximumBond {
		return stake.Address{}, InvalidBondError{Bonded: bonded, Minimum: cfg.MinimumBond, Maximum: cfg.MaximumBond}
	}
	if _, exists := r.byPool[req.Pool]; exists {
		return stake.Address{}, fmt.Errorf("stake pool %s: %w", req.Pool, ErrAlreadyRegistered)
	}

	identity := stake.DeriveAddress(req.ConsensusPubkey)
	if _, exists := r.records[identity]; exists {
		return stake.Address{}, fmt.Errorf("consensus identity %s: %w", identity, ErrAlreadyRegistered)
	}

	rec := &record{
		identity:          identity,
		pool:              req.Pool,
		operator:          req.Operator,
		consensusPubkey:   req.ConsensusPubkey,
		consensusPop:      req.ConsensusPop,
		moniker:           req.Moniker,
		feeRecipient:      req.FeeRecipient,
		networkAddresses:  req.NetworkAddresses,
		fullnodeAddresses: req.FullnodeAddresses,
		status:            stake.StatusInactive,
		seq:               r.nextSeq,
	}
	r.nextSeq++
	r.records[identity] = rec
	r.byPool[req.Pool] = identity

	r.log.Info().
		Str("validator", identity.Hex()).
		Str("pool", req.Pool.Hex()).
		Str("moniker", req.Moniker).
		Uint64("bonded", bonded).
		Msg("validator registered")
	return identity, nil
}

// JoinValidatorSet queues an inactive validator for activation at the next
// epoch boundary.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError, ErrUnknownValidator
//   - ErrSetChangeDisallowed, ErrTransitionInProgress, ErrValidatorSetFull
//   - InvalidStatusError if the validator is not inactive
//   - InvalidBondError if the bonded amount has left the configured bounds
func (r *Registry) JoinValidatorSet(caller, validator stake.Address) error {
	rec, genesisPath, err := r.operatorRecord(caller, validator)
	if err != nil {
		return err
	}
	cfg := r.config.Get()
	// genesis assembles the initial set before set changes open up
	if !genesisPath {
		if err := r.checkSetMutable(cfg); err != nil {
			return err
		}
	}
	if rec.status != stake.StatusInactive {
		return InvalidStatusError{Validator: validator, Status: rec.status}
	}
	bonded, _ := r.ledger.BondedStake(rec.pool)
	if bonded < cfg.MinimumBond || bonded > cfg.MaximumBond {
		return InvalidBondError{Bonded: bonded, Minimum: cfg.MinimumBond, Maximum: cfg.MaximumBond}
	}
	if uint64(len(r.active)+r.pendingActive.Len()) >= cfg.MaxValidatorSetSize {
		return fmt.Errorf("set size limit %d: %w", cfg.MaxValidatorSetSize, ErrValidatorSetFull)
	}

	rec.status = stake.StatusPendingActive
	r.pendingActive.PushBack(rec)
	r.log.Info().Str("validator", validator.Hex()).Msg("validator queued for activation")
	return nil
}

// LeaveValidatorSet requests removal from the set. A pending-active
// validator is dequeued and reverts to inactive immediately, cancelling the
// unconsummated join; an active validator becomes pending-inactive and is
// deactivated at the next epoch boundary.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError, ErrUnknownValidator
//   - ErrSetChangeDisallowed, ErrTransitionInProgress
//   - ErrLastValidator if this is the sole remaining active validator
//   - InvalidStatusError if the validator is neither active nor
//     pending-active
func (r *Registry) LeaveValidatorSet(caller, validator stake.Address) error {
	rec, _, err := r.operatorRecord(caller, validator)
	if err != nil {
		return err
	}
	if err := r.checkSetMutable(r.config.Get()); err != nil {
		return err
	}

	switch rec.status {
	case stake.StatusPendingActive:
		r.removePendingActive(rec)
		rec.status = stake.StatusInactive
		r.log.Info().Str("validator", validator.Hex()).Msg("pending join cancelled")
		return nil
	case stake.StatusActive:
		return r.scheduleLeave(rec)
	default:
		return InvalidStatusError{Validator: validator, Status: rec.status}
	}
}

// ForceLeaveValidatorSet is the governance emergency equivalent of an
// active validator leaving. It has no reconfiguration-in-progress gate, so
// governance can act during an in-flight transition.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a non-governance caller
//   - ErrUnknownValidator, ErrLastValidator
//   - InvalidStatusError if the validator is not active
func (r *Registry) ForceLeaveValidatorSet(caller, validator stake.Address) error {
	if err := r.table.Require(caller, roles.Governance); err != nil {
		return err
	}
	rec, ok := r.records[validator]
	if !ok {
		return fmt.Errorf("validator %s: %w", validator, ErrUnknownValidator)
	}
	if rec.status != stake.StatusActive {
		return InvalidStatusError{Validator: validator, Status: rec.status}
	}
	return r.scheduleLeave(rec)
}

// RotateConsensusKey stages a consensus key rotation, applied at the next
// epoch boundary so keys never change mid-epoch. The validator identity
// remains bound to the registration key.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError, ErrUnknownValidator
//   - ErrTransitionInProgress, ErrInvalidConsensusKey
func (r *Registry) RotateConsensusKey(caller, validator stake.Address, newPubkey, newPop []byte) error {
	rec, _, err := r.operatorRecord(caller, validator)
	if err != nil {
		return err
	}
	if r.transitionInProgress() {
		return ErrTransitionInProgress
	}
	if err := checkConsensusKey(newPubkey, newPop); err != nil {
		return err
	}
	rec.pendingConsensusPubkey = newPubkey
	rec.pendingConsensusPop = newPop
	r.log.Info().Str("validator", validator.Hex()).Msg("consensus key rotation staged")
	return nil
}

// SetFeeRecipient stages a fee recipient change, applied at the next epoch
// boundary.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError, ErrUnknownValidator, ErrTransitionInProgress
func (r *Registry) SetFeeRecipient(caller, validator, recipient stake.Address) error {
	rec, _, err := r.operatorRecord(caller, validator)
	if err != nil {
		return err
	}
	if r.transitionInProgress() {
		return ErrTransitionInProgress
	}
	rec.pendingFeeRecipient = &recipient
	r.log.Info().
		Str("validator", validator.Hex()).
		Str("fee_recipient", recipient.Hex()).
		Msg("fee recipient change staged")
	return nil
}

// OnNewEpoch runs the epoch-boundary recomputation, in the context of the
// epoch that is ending:
//
//  1. pending-inactive validators are deactivated;
//  2. pending-active validators are admitted in registration order, subject
//     to the voting-power-increase limit (measured against the total power
//     at the start of the recomputation) and to the set size cap; a
//     validator that does not fit stays queued and blocks nobody behind it;
//  3. staged per-validator changes (fee recipient, key rotation) apply;
//  4. the active set is re-ordered by registration sequence, indices are
//     reassigned contiguously, and voting power is recomputed as the capped
//     bonded stake.
func (r *Registry) OnNewEpoch() {
	cfg := r.config.Get()
	prevTotal := r.totalVotingPower

	// 1. deactivate
	remaining := r.active[:0]
	for _, rec := range r.active {
		if _, leaving := r.pendingInactive[rec.identity]; leaving {
			rec.status = stake.StatusInactive
			rec.votingPower = 0
			continue
		}
		remaining = append(remaining, rec)
	}
	r.active = remaining
	r.pendingInactive = make(map[stake.Address]struct{})

	// 2. admit
	var added uint64
	limited := prevTotal > 0
	headroom := prevTotal / 100 * cfg.VotingPowerIncreaseLimitPct
	queued := r.pendingActive.Len()
	for i := 0; i < queued; i++ {
		v, _ := r.pendingActive.PopFront()
		rec := v.(*record)
		bonded, _ := r.ledger.BondedStake(rec.pool)
		power := stake.CapVotingPower(bonded, cfg.MaximumBond)
		if uint64(len(r.active)) >= cfg.MaxValidatorSetSize || (limited && added+power > headroom) {
			r.pendingActive.PushBack(rec)
			continue
		}
		rec.status = stake.StatusActive
		r.active = append(r.active, rec)
		added += power
	}

	// 3. apply staged changes
	for _, rec := range r.records {
		if rec.pendingFeeRecipient != nil {
			rec.feeRecipient = *rec.pendingFeeRecipient
			rec.pendingFeeRecipient = nil
		}
		if rec.pendingConsensusPubkey != nil {
			rec.consensusPubkey = rec.pendingConsensusPubkey
			rec.consensusPop = rec.pendingConsensusPop
			rec.pendingConsensusPubkey = nil
			rec.pendingConsensusPop = nil
		}
	}

	// 4. recompute indices and voting power
	sort.Slice(r.active, func(i, j int) bool {
		return r.active[i].seq < r.active[j].seq
	})
	var total uint64
	for i, rec := range r.active {
		rec.index = uint64(i)
		bonded, _ := r.ledger.BondedStake(rec.pool)
		rec.votingPower = stake.CapVotingPower(bonded, cfg.MaximumBond)
		total += rec.votingPower
	}
	r.totalVotingPower = total

	r.metrics.ActiveValidators(len(r.active))
	r.metrics.TotalVotingPower(total)
	r.log.Info().
		Int("active_validators", len(r.active)).
		Uint64("total_voting_power", total).
		Int("still_pending_active", r.pendingActive.Len()).
		Msg("active set recomputed")
}

// EvictUnderperformingValidators schedules removal of active validators
// whose failure share, per the given per-epoch performance snapshot,
// exceeds the configured auto-evict threshold. A snapshot whose length does
// not match the active set is dropped with a diagnostic notification and no
// state change: a malformed snapshot must never corrupt the active set.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a non-governance caller
func (r *Registry) EvictUnderperformingValidators(caller stake.Address, snapshot []stake.ValidatorPerformance) error {
	if err := r.table.Require(caller, roles.Governance); err != nil {
		return err
	}
	if len(snapshot) != len(r.active) {
		r.log.Warn().
			Int("snapshot_len", len(snapshot)).
			Int("active_count", len(r.active)).
			Msg("dropping length-mismatched performance snapshot")
		r.consumer.PerformanceSnapshotMismatch(len(snapshot), len(r.active))
		return nil
	}
	cfg := r.config.Get()
	if !cfg.AutoEvictEnabled {
		r.log.Debug().Msg("auto-evict disabled, ignoring performance snapshot")
		return nil
	}
	for i, rec := range r.active {
		perf := snapshot[i]
		proposals := perf.SuccessfulProposals + perf.FailedProposals
		if proposals == 0 {
			continue
		}
		if perf.FailedProposals*10_000/proposals <= cfg.AutoEvictThreshold {
			continue
		}
		if rec.status != stake.StatusActive {
			continue
		}
		if err := r.scheduleLeave(rec); err != nil {
			// the last-validator protection also applies to eviction
			r.log.Warn().
				Str("validator", rec.identity.Hex()).
				Err(err).
				Msg("skipping eviction")
			continue
		}
		r.consumer.ValidatorEvicted(rec.identity)
		r.metrics.ValidatorEvicted()
		r.log.Info().
			Str("validator", rec.identity.Hex()).
			Uint64("failed", perf.FailedProposals).
			Uint64("proposals", proposals).
			Msg("validator scheduled for eviction")
	}
	return nil
}

// ActiveValidatorAt returns the consensus info of the active validator with
// the given index.
//
// Expected errors during normal operations:
//   - ErrIndexOutOfRange
func (r *Registry) ActiveValidatorAt(index uint64) (stake.ValidatorConsensusInfo, error) {
	if index >= uint64(len(r.active)) {
		return stake.ValidatorConsensusInfo{}, fmt.Errorf("index %d with %d active validators: %w",
			index, len(r.active), ErrIndexOutOfRange)
	}
	return r.consensusInfo(r.active[index]), nil
}

// ActiveCount returns the size of the active set.
func (r *Registry) ActiveCount() int {
	return len(r.active)
}

// TotalVotingPower returns the sum of the capped voting power of the active
// set.
func (r *Registry) TotalVotingPower() uint64 {
	return r.totalVotingPower
}

// StatusOf returns the lifecycle status of a registered validator.
//
// Expected errors during normal operations:
//   - ErrUnknownValidator
func (r *Registry) StatusOf(validator stake.Address) (stake.ValidatorStatus, error) {
	rec, ok := r.records[validator]
	if !ok {
		return 0, fmt.Errorf("validator %s: %w", validator, ErrUnknownValidator)
	}
	return rec.status, nil
}

// CurrentConsensusInfos returns the consensus infos of the current active
// set, ordered by index.
func (r *Registry) CurrentConsensusInfos() stake.ConsensusInfoList {
	infos := make(stake.ConsensusInfoList, 0, len(r.active))
	for _, rec := range r.active {
		infos = append(infos, r.consensusInfo(rec))
	}
	return infos
}

// NextConsensusInfos returns the projected active set of the next epoch:
// current members minus pending-inactive plus pending-active, with staged
// key rotations applied and indices assigned in registration order. The
// projection uses the currently committed config; it is a best-effort
// snapshot for the DKG target set, not a binding commitment.
func (r *Registry) NextConsensusInfos() stake.ConsensusInfoList {
	cfg := r.config.Get()
	next := make([]*record, 0, len(r.active)+r.pendingActive.Len())
	for _, rec := range r.active {
		if _, leaving := r.pendingInactive[rec.identity]; leaving {
			continue
		}
		next = append(next, rec)
	}
	queued := r.pendingActive.Len()
	for i := 0; i < queued; i++ {
		v, _ := r.pendingActive.PopFront()
		next = append(next, v.(*record))
		r.pendingActive.PushBack(v)
	}
	sort.Slice(next, func(i, j int) bool {
		return next[i].seq < next[j].seq
	})

	infos := make(stake.ConsensusInfoList, 0, len(next))
	for i, rec := range next {
		info := r.consensusInfo(rec)
		info.ValidatorIndex = uint64(i)
		if rec.pendingConsensusPubkey != nil {
			info.ConsensusPubkey = rec.pendingConsensusPubkey
			info.ConsensusPop = rec.pendingConsensusPop
		}
		bonded, _ := r.ledger.BondedStake(rec.pool)
		info.VotingPower = stake.CapVotingPower(bonded, cfg.MaximumBond)
		infos = append(infos, info)
	}
	return infos
}

func (r *Registry) consensusInfo(rec *record) stake.ValidatorConsensusInfo {
	return stake.ValidatorConsensusInfo{
		Validator:         rec.identity,
		ConsensusPubkey:   rec.consensusPubkey,
		ConsensusPop:      rec.consensusPop,
		VotingPower:       rec.votingPower,
		ValidatorIndex:    rec.index,
		NetworkAddresses:  rec.networkAddresses,
		FullnodeAddresses: rec.fullnodeAddresses,
	}
}

// operatorRecord resolves a validator record and checks that the caller is
// its operator, or the genesis authority acting during bootstrap. The
// second return signals the genesis path.
func (r *Registry) operatorRecord(caller, validator stake.Address) (*record, bool, error) {
	rec, ok := r.records[validator]
	if !ok {
		return nil, false, fmt.Errorf("validator %s: %w", validator, ErrUnknownValidator)
	}
	if caller != rec.operator {
		if err := r.table.Require(caller, roles.Genesis); err != nil {
			return nil, false, err
		}
		return rec, true, nil
	}
	return rec, false, nil
}

func (r *Registry) checkSetMutable(cfg stake.ValidatorConfig) error {
	if !cfg.AllowValidatorSetChange {
		return ErrSetChangeDisallowed
	}
	if r.transitionInProgress() {
		return ErrTransitionInProgress
	}
	return nil
}

func (r *Registry) transitionInProgress() bool {
	return r.gate != nil && r.gate.IsTransitionInProgress()
}

// scheduleLeave moves an active validator to pending-inactive, enforcing
// that the active set can never drain below one member.
func (r *Registry) scheduleLeave(rec *record) error {
	if len(r.active)-len(r.pendingInactive) <= 1 {
		return ErrLastValidator
	}
	rec.status = stake.StatusPendingInactive
	r.pendingInactive[rec.identity] = struct{}{}
	r.log.Info().Str("validator", rec.identity.Hex()).Msg("validator scheduled for deactivation")
	return nil
}

// removePendingActive drops one record from the pending-active queue,
// preserving the order of the others.
func (r *Registry) removePendingActive(target *record) {
	queued := r.pendingActive.Len()
	for i := 0; i < queued; i++ {
		v, _ := r.pendingActive.PopFront()
		if v.(*record) == target {
			continue
		}
		r.pendingActive.PushBack(v)
	}
}

func checkConsensusKey(pubkey, pop []byte) error {
	if len(pubkey) != stake.ConsensusPubkeyLength {
		return fmt.Errorf("consensus pubkey length %d != %d: %w",
			len(pubkey), stake.ConsensusPubkeyLength, ErrInvalidConsensusKey)
	}
	if len(pop) != stake.ConsensusPopLength {
		return fmt.Errorf("proof of possession length %d != %d: %w",
			len(pop), stake.ConsensusPopLength, ErrInvalidConsensusKey)
	}
	return nil
}
