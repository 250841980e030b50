// Package events provides fan-out of the notifications emitted by the epoch
// lifecycle core.
package events

import (
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
)

// Distributor implements module.ReconfigurationConsumer and forwards every
// notification to all registered consumers, in registration order. Consumers
// must be added before the runtime starts processing blocks; Distributor
// performs no synchronization of its own.
type Distributor struct {
	subscribers []module.ReconfigurationConsumer
}

var _ module.ReconfigurationConsumer = (*Distributor)(nil)

// NewDistributor creates a distributor with no subscribers.
func NewDistributor() *Distributor {
	return &Distributor{}
}

// AddConsumer registers a consumer for all future notifications.
func (d *Distributor) AddConsumer(consumer module.ReconfigurationConsumer) {
	d.subscribers = append(d.subscribers, consumer)
}

func (d *Distributor) EpochTransitionCompleted(epoch uint64, time stake.Timestamp) {
	for _, sub := range d.subscribers {
		sub.EpochTransitionCompleted(epoch, time)
	}
}

func (d *Distributor) DKGSessionStarted(epoch uint64) {
	for _, sub := range d.subscribers {
		sub.DKGSessionStarted(epoch)
	}
}

func (d *Distributor) BlockProcessed(height uint64, epoch uint64, proposer stake.Address, time stake.Timestamp) {
	for _, sub := range d.subscribers {
		sub.BlockProcessed(height, epoch, proposer, time)
	}
}

func (d *Distributor) PerformanceSnapshotMismatch(got, want int) {
	for _, sub := range d.subscribers {
		sub.PerformanceSnapshotMismatch(got, want)
	}
}

func (d *Distributor) ValidatorEvicted(validator stake.Address) {
	for _, sub := range d.subscribers {
		sub.ValidatorEvicted(validator)
	}
}
