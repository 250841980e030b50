package module

import (
	"github.com/graviton-network/graviton-go/model/stake"
)

// ReconfigurationConsumer consumes notifications emitted by the epoch
// lifecycle core. Implementations must be non-blocking and must not call
// back into the emitting component.
type ReconfigurationConsumer interface {

	// EpochTransitionCompleted is emitted at the end of the apply step of a
	// reconfiguration, carrying the new epoch and the reconfiguration time.
	EpochTransitionCompleted(epoch uint64, time stake.Timestamp)

	// DKGSessionStarted is emitted when an epoch transition enters the DKG
	// hand-off instead of applying immediately.
	DKGSessionStarted(epoch uint64)

	// BlockProcessed is emitted once per block after the prologue has run.
	BlockProcessed(height uint64, epoch uint64, proposer stake.Address, time stake.Timestamp)

	// PerformanceSnapshotMismatch is emitted when a performance snapshot
	// handed to eviction does not match the active-set size. The snapshot
	// is dropped without mutating state.
	PerformanceSnapshotMismatch(got, want int)

	// ValidatorEvicted is emitted when a validator is scheduled for removal
	// due to underperformance.
	ValidatorEvicted(validator stake.Address)
}
