package module

import (
	"github.com/graviton-network/graviton-go/model/stake"
)

// PerformanceTracker counts per-block proposal outcomes for each active
// validator, keyed by active-set index, and is reset at every epoch
// boundary.
type PerformanceTracker interface {

	// UpdateStatistics records the outcome of one block: a successful
	// proposal for proposerIndex and a failure for every index in failed.
	// The NIL-block sentinel index and out-of-range indices are silently
	// ignored; this call must never fail, its caller is the consensus
	// engine itself.
	UpdateStatistics(proposerIndex uint64, failed []uint64)

	// OnNewEpoch discards the counters of the ending epoch and allocates
	// fresh zeroed counters matching the new active-set size.
	OnNewEpoch(n int)

	// PerformanceOf returns the counters of the validator at the given
	// active-set index.
	//
	// Expected errors during normal operations:
	//   - performance.InvalidIndexError if the index is out of range.
	PerformanceOf(index uint64) (stake.ValidatorPerformance, error)

	// AllPerformances returns a copy of all counters, ordered by
	// active-set index.
	AllPerformances() []stake.ValidatorPerformance
}
