package events

import (
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
)

// Noop implements module.ReconfigurationConsumer with no-ops.
type Noop struct{}

var _ module.ReconfigurationConsumer = (*Noop)(nil)

// NewNoop creates a no-op consumer.
func NewNoop() *Noop {
	return &Noop{}
}

func (n *Noop) EpochTransitionCompleted(uint64, stake.Timestamp) {}

func (n *Noop) DKGSessionStarted(uint64) {}

func (n *Noop) BlockProcessed(uint64, uint64, stake.Address, stake.Timestamp) {}

func (n *Noop) PerformanceSnapshotMismatch(int, int) {}

func (n *Noop) ValidatorEvicted(stake.Address) {}
