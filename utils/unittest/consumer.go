package unittest

import (
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
)

// RecordingConsumer captures lifecycle notifications for assertions.
type RecordingConsumer struct {
	Transitions []uint64
	DKGStarts   []uint64
	Blocks      []uint64
	Mismatches  [][2]int
	Evicted     []stake.Address
}

var _ module.ReconfigurationConsumer = (*RecordingConsumer)(nil)

func (c *RecordingConsumer) EpochTransitionCompleted(epoch uint64, _ stake.Timestamp) {
	c.Transitions = append(c.Transitions, epoch)
}

func (c *RecordingConsumer) DKGSessionStarted(epoch uint64) {
	c.DKGStarts = append(c.DKGStarts, epoch)
}

func (c *RecordingConsumer) BlockProcessed(height uint64, _ uint64, _ stake.Address, _ stake.Timestamp) {
	c.Blocks = append(c.Blocks, height)
}

func (c *RecordingConsumer) PerformanceSnapshotMismatch(got, want int) {
	c.Mismatches = append(c.Mismatches, [2]int{got, want})
}

func (c *RecordingConsumer) ValidatorEvicted(validator stake.Address) {
	c.Evicted = append(c.Evicted, validator)
}
