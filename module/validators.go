package module

import (
	"github.com/graviton-network/graviton-go/model/stake"
)

// StakeLedger exposes the bonded stake backing validator registrations. Fund
// custody (deposits, withdrawals, lockups) is owned by the surrounding
// staking layer; this module only reads bonded amounts through it.
type StakeLedger interface {

	// BondedStake returns the bonded amount of the given stake pool, and
	// whether the pool exists.
	BondedStake(pool stake.Address) (uint64, bool)
}

// ValidatorRegistry is the view of validator membership consumed by the
// reconfiguration orchestrator. Possession of this interface is the
// capability to drive the epoch-boundary recomputation: it is handed to the
// orchestrator only.
type ValidatorRegistry interface {

	// CurrentConsensusInfos returns the consensus infos of the current
	// active set, ordered by active-set index.
	CurrentConsensusInfos() stake.ConsensusInfoList

	// NextConsensusInfos returns the projected consensus infos of the
	// next-epoch active set: current members minus pending-inactive plus
	// pending-active, with staged key rotations applied.
	NextConsensusInfos() stake.ConsensusInfoList

	// OnNewEpoch runs the epoch-boundary recomputation: it consumes the
	// pending queues, recomputes the active set with contiguous indices and
	// capped voting power, and applies staged per-validator changes. It is
	// invoked exactly once per completed reconfiguration, before the epoch
	// counter increments.
	OnNewEpoch()

	// ActiveCount returns the size of the active set.
	ActiveCount() int

	// ActiveValidatorAt returns the consensus info of the active validator
	// with the given active-set index.
	//
	// Expected errors during normal operations:
	//   - validators.ErrIndexOutOfRange if the index is out of range.
	ActiveValidatorAt(index uint64) (stake.ValidatorConsensusInfo, error)
}

// TransitionGate reports whether an epoch transition is in flight.
// Validator-set-mutating operations are refused while it is.
type TransitionGate interface {
	IsTransitionInProgress() bool
}
