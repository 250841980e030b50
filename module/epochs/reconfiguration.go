// Package epochs implements the epoch transition state machine and the
// per-block entry point that drives it.
//
// Once per block the prologue asks the Reconfiguration orchestrator whether
// the current epoch should end. Without DKG-based randomness the transition
// applies synchronously within that block. With randomness enabled the
// orchestrator suspends into a DKG hand-off that spans an indeterminate
// number of blocks; ordinary block production continues during the hand-off,
// and only the consensus engine (with a transcript) or governance can end
// it.
package epochs

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
	"github.com/graviton-network/graviton-go/module/roles"
	"github.com/graviton-network/graviton-go/module/stagedconfig"
)

// Reconfiguration is the epoch transition orchestrator. It owns the epoch
// counter and the transition state; all other epoch-scoped state is owned by
// the injected collaborators and driven through them in a fixed order.
type Reconfiguration struct {
	log      zerolog.Logger
	metrics  module.EpochMetrics
	consumer module.ReconfigurationConsumer
	table    *roles.Table

	clock    module.Clock
	registry module.ValidatorRegistry
	tracker  module.PerformanceTracker
	dkg      module.DKGCoordinator

	epochInterval *stagedconfig.Cell[uint64]
	randomness    *stagedconfig.Cell[stake.RandomnessConfig]
	configs       *stagedconfig.Registry

	currentEpoch             uint64
	lastReconfigurationTime  stake.Timestamp
	state                    TransitionState
	transitionStartedAtEpoch uint64
	initialized              bool
}

var _ module.TransitionGate = (*Reconfiguration)(nil)

// NewReconfiguration wires the orchestrator. The configs registry must
// contain every per-epoch tunable, including the epoch interval and
// randomness cells passed here.
func NewReconfiguration(
	log zerolog.Logger,
	metrics module.EpochMetrics,
	consumer module.ReconfigurationConsumer,
	table *roles.Table,
	clock module.Clock,
	registry module.ValidatorRegistry,
	tracker module.PerformanceTracker,
	dkg module.DKGCoordinator,
	epochInterval *stagedconfig.Cell[uint64],
	randomness *stagedconfig.Cell[stake.RandomnessConfig],
	configs *stagedconfig.Registry,
) *Reconfiguration {
	return &Reconfiguration{
		log:           log.With().Str("component", "reconfiguration").Logger(),
		metrics:       metrics,
		consumer:      consumer,
		table:         table,
		clock:         clock,
		registry:      registry,
		tracker:       tracker,
		dkg:           dkg,
		epochInterval: epochInterval,
		randomness:    randomness,
		configs:       configs,
		state:         StateIdle,
	}
}

// Initialize is the one-time bootstrap action: epoch 0, idle state, and the
// reconfiguration timer anchored to the current chain time.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a non-genesis caller
//   - ErrAlreadyInitialized on repeated initialization
func (r *Reconfiguration) Initialize(caller stake.Address) error {
	if err := r.table.Require(caller, roles.Genesis); err != nil {
		return err
	}
	if r.initialized {
		return ErrAlreadyInitialized
	}
	r.currentEpoch = 0
	r.lastReconfigurationTime = r.clock.Now()
	r.state = StateIdle
	r.initialized = true
	r.metrics.CurrentEpoch(0)
	r.log.Info().
		Uint64("genesis_time_micros", uint64(r.lastReconfigurationTime)).
		Msg("reconfiguration initialized")
	return nil
}

// CheckAndStartTransition decides, once per block, whether the current
// epoch should end. It returns false with no side effect while a DKG
// hand-off is in flight or the epoch interval has not yet elapsed.
// Otherwise it either applies the transition synchronously (randomness off)
// or starts the DKG hand-off (randomness on), and returns true.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a caller other than the block prologue
//   - ErrNotInitialized before bootstrap
func (r *Reconfiguration) CheckAndStartTransition(caller stake.Address) (bool, error) {
	if err := r.table.Require(caller, roles.BlockPrologue); err != nil {
		return false, err
	}
	if !r.initialized {
		return false, ErrNotInitialized
	}
	if r.state == StateDKGInProgress {
		return false, nil
	}
	now := r.clock.Now()
	if now < r.lastReconfigurationTime.AddMicros(r.epochInterval.Get()) {
		return false, nil
	}
	if err := r.transition(); err != nil {
		return false, err
	}
	return true, nil
}

// FinishTransition ends the DKG hand-off: the transcript produced by the
// external protocol finalizes the session, stale session state is cleaned
// up, and the shared apply step runs. Restricted to the consensus engine
// and, for emergency recovery, governance.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for other callers
//   - ErrNotInitialized before bootstrap
//   - InvalidTransitionStateError if no transition is in flight
func (r *Reconfiguration) FinishTransition(caller stake.Address, transcript []byte) error {
	if err := r.table.Require(caller, roles.Consensus, roles.Governance); err != nil {
		return err
	}
	if !r.initialized {
		return ErrNotInitialized
	}
	if r.state != StateDKGInProgress {
		return InvalidTransitionStateError{Actual: r.state, Expected: StateDKGInProgress}
	}
	if len(transcript) > 0 {
		if err := r.dkg.Finish(transcript); err != nil {
			// a tracked session is guaranteed while we are in the DKG
			// state; an error here means the session was already finished
			// and must not block the transition
			r.log.Warn().Err(err).Msg("could not record dkg transcript")
		}
	}
	r.dkg.DiscardStale(r.currentEpoch)
	r.applyTransition()
	return nil
}

// GovernanceReconfigure is the emergency path: it forces a transition
// without waiting for the epoch interval, so governance can expel a
// malicious validator immediately. While a DKG hand-off is in flight the
// transition must instead complete through FinishTransition.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a non-governance caller
//   - ErrNotInitialized before bootstrap
//   - InvalidTransitionStateError while a hand-off is in flight
func (r *Reconfiguration) GovernanceReconfigure(caller stake.Address) error {
	if err := r.table.Require(caller, roles.Governance); err != nil {
		return err
	}
	if !r.initialized {
		return ErrNotInitialized
	}
	if r.state == StateDKGInProgress {
		return InvalidTransitionStateError{Actual: r.state, Expected: StateIdle}
	}
	return r.transition()
}

// transition branches on the randomness configuration: immediate apply when
// disabled, DKG hand-off when enabled.
func (r *Reconfiguration) transition() error {
	randomness := r.randomness.Get()
	if !randomness.Enabled() {
		r.applyTransition()
		return nil
	}

	dealers := r.registry.CurrentConsensusInfos()
	targets := r.registry.NextConsensusInfos()
	r.dkg.DiscardStale(r.currentEpoch)
	if err := r.dkg.Start(r.currentEpoch, randomness, dealers, targets); err != nil {
		return fmt.Errorf("could not start dkg session: %w", err)
	}
	r.state = StateDKGInProgress
	r.transitionStartedAtEpoch = r.currentEpoch
	r.metrics.TransitionInProgress(true)
	r.consumer.DKGSessionStarted(r.currentEpoch)
	r.log.Info().
		Uint64("epoch", r.currentEpoch).
		Int("dealers", len(dealers)).
		Int("targets", len(targets)).
		Msg("epoch transition suspended on dkg")
	return nil
}

// applyTransition is the shared apply step, in strict order: staged configs
// commit first so the new epoch's first block observes consistent
// parameters; the validator set recomputes next, still in the context of
// the ending epoch; only then does the epoch counter increment. The step
// cannot fail partway: every sub-step is infallible by construction.
func (r *Reconfiguration) applyTransition() {
	committed := r.configs.CommitAll()
	r.registry.OnNewEpoch()
	r.tracker.OnNewEpoch(r.registry.ActiveCount())

	r.currentEpoch++
	r.lastReconfigurationTime = r.clock.Now()
	r.state = StateIdle

	r.metrics.CurrentEpoch(r.currentEpoch)
	r.metrics.EpochTransitionCompleted()
	r.metrics.TransitionInProgress(false)
	r.consumer.EpochTransitionCompleted(r.currentEpoch, r.lastReconfigurationTime)
	r.log.Info().
		Uint64("epoch", r.currentEpoch).
		Uint64("reconfiguration_time_micros", uint64(r.lastReconfigurationTime)).
		Int("committed_configs", committed).
		Int("active_validators", r.registry.ActiveCount()).
		Msg("epoch transition completed")
}

// CurrentEpoch returns the current epoch counter.
func (r *Reconfiguration) CurrentEpoch() uint64 {
	return r.currentEpoch
}

// LastReconfigurationTime returns the chain time of the last completed
// reconfiguration.
func (r *Reconfiguration) LastReconfigurationTime() stake.Timestamp {
	return r.lastReconfigurationTime
}

// IsTransitionInProgress returns true while a DKG hand-off is in flight.
func (r *Reconfiguration) IsTransitionInProgress() bool {
	return r.state == StateDKGInProgress
}

// TransitionState returns the current state of the transition machine.
func (r *Reconfiguration) TransitionState() TransitionState {
	return r.state
}

// CanTransition returns true if the next block-prologue check would trigger
// a transition.
func (r *Reconfiguration) CanTransition() bool {
	if !r.initialized || r.state != StateIdle {
		return false
	}
	return r.clock.Now() >= r.lastReconfigurationTime.AddMicros(r.epochInterval.Get())
}

// RemainingSeconds returns the seconds left until the elapsed-time gate
// opens, or zero if it is already open.
func (r *Reconfiguration) RemainingSeconds() uint64 {
	deadline := r.lastReconfigurationTime.AddMicros(r.epochInterval.Get())
	now := r.clock.Now()
	if now >= deadline {
		return 0
	}
	return uint64(time.Duration(deadline-now) * time.Microsecond / time.Second)
}
