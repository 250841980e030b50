package epochs

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
	"github.com/graviton-network/graviton-go/module/roles"
)

// Blocker is the single per-block entry point of the epoch lifecycle core,
// invoked by the surrounding runtime at the start of every block.
type Blocker struct {
	log      zerolog.Logger
	table    *roles.Table
	tracker  module.PerformanceTracker
	clock    module.Clock
	registry module.ValidatorRegistry
	reconfig *Reconfiguration
	consumer module.ReconfigurationConsumer

	height uint64
}

// NewBlocker wires the per-block entry point.
func NewBlocker(
	log zerolog.Logger,
	table *roles.Table,
	tracker module.PerformanceTracker,
	clock module.Clock,
	registry module.ValidatorRegistry,
	reconfig *Reconfiguration,
	consumer module.ReconfigurationConsumer,
) *Blocker {
	return &Blocker{
		log:      log.With().Str("component", "blocker").Logger(),
		table:    table,
		tracker:  tracker,
		clock:    clock,
		registry: registry,
		reconfig: reconfig,
		consumer: consumer,
	}
}

// OnBlockStart drives the epoch lifecycle for one block. The proposer
// identity resolves first and the block timestamp is validated against the
// clock rules, so a rejected block leaves no trace. Then, in fixed order:
// performance counters update (a block that triggers a transition still
// belongs to the ending epoch), the clock advances, and the transition check
// runs. The sentinel proposer index resolves to the system identity used for
// NIL blocks.
//
// Expected errors during normal operations:
//   - roles.UnauthorizedError for a caller other than the block prologue
//   - chainclock.InvalidTimestampError for a timestamp that moves time
//     backwards or advances it on a NIL block
//   - ErrNotInitialized before bootstrap
func (b *Blocker) OnBlockStart(caller stake.Address, proposerIndex uint64, failedIndices []uint64, blockTimestamp stake.Timestamp) error {
	if err := b.table.Require(caller, roles.BlockPrologue); err != nil {
		return err
	}

	proposer := stake.SystemAddress
	advanceClock := proposerIndex == stake.NilProposerIndex
	if proposerIndex != stake.NilProposerIndex {
		info, err := b.registry.ActiveValidatorAt(proposerIndex)
		if err != nil {
			// a proposer index the consensus engine vouched for but the
			// active set does not know; dropped like a malformed
			// performance index, the block must still be producible
			b.log.Warn().
				Uint64("proposer_index", proposerIndex).
				Err(err).
				Msg("could not resolve proposer, skipping clock advance")
		} else {
			proposer = info.Validator
			advanceClock = true
		}
	}
	// an invalid timestamp must reject the block before any state mutates,
	// otherwise a retry of the same block would double-count the counters
	if advanceClock {
		if err := b.clock.Validate(proposer, blockTimestamp); err != nil {
			return fmt.Errorf("invalid block timestamp: %w", err)
		}
	}

	b.tracker.UpdateStatistics(proposerIndex, failedIndices)

	if advanceClock {
		if err := b.clock.Advance(proposer, blockTimestamp); err != nil {
			return fmt.Errorf("could not advance chain time: %w", err)
		}
	}

	if _, err := b.reconfig.CheckAndStartTransition(caller); err != nil {
		return fmt.Errorf("could not check epoch transition: %w", err)
	}

	b.height++
	b.consumer.BlockProcessed(b.height, b.reconfig.CurrentEpoch(), proposer, b.clock.Now())
	return nil
}

// Height returns the number of blocks processed since bootstrap.
func (b *Blocker) Height() uint64 {
	return b.height
}
