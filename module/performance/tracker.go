// Package performance tracks per-block proposal outcomes for the active
// validator set. Counters are keyed by active-set index and reset at every
// epoch boundary, so they always describe the current epoch only.
package performance

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
)

// Tracker implements module.PerformanceTracker.
type Tracker struct {
	log      zerolog.Logger
	counters []stake.ValidatorPerformance
}

// NewTracker allocates a tracker with n zeroed counters, one per active
// validator.
func NewTracker(log zerolog.Logger, n int) *Tracker {
	return &Tracker{
		log:      log.With().Str("component", "performance_tracker").Logger(),
		counters: make([]stake.ValidatorPerformance, n),
	}
}

// UpdateStatistics records the outcome of one block: a success for the
// proposer and a failure for every index in failed. The NIL-block sentinel
// and out-of-range indices are dropped without error; the caller is the
// consensus engine and a malformed index must never make a block
// unproducible.
func (t *Tracker) UpdateStatistics(proposerIndex uint64, failed []uint64) {
	if proposerIndex != stake.NilProposerIndex {
		if proposerIndex < uint64(len(t.counters)) {
			t.counters[proposerIndex].SuccessfulProposals++
		} else {
			t.log.Warn().
				Uint64("proposer_index", proposerIndex).
				Int("active_count", len(t.counters)).
				Msg("dropping out-of-range proposer index")
		}
	}
	for _, index := range failed {
		if index < uint64(len(t.counters)) {
			t.counters[index].FailedProposals++
		} else {
			t.log.Warn().
				Uint64("failed_index", index).
				Int("active_count", len(t.counters)).
				Msg("dropping out-of-range failed proposer index")
		}
	}
}

// OnNewEpoch discards the old counters and allocates n fresh zeroed counters
// matching the recomputed active set.
func (t *Tracker) OnNewEpoch(n int) {
	t.counters = make([]stake.ValidatorPerformance, n)
}

// PerformanceOf returns the counters of the validator at the given index.
//
// Expected errors during normal operations:
//   - InvalidIndexError if the index is out of range.
func (t *Tracker) PerformanceOf(index uint64) (stake.ValidatorPerformance, error) {
	if index >= uint64(len(t.counters)) {
		return stake.ValidatorPerformance{}, NewInvalidIndexErrorf("index %d out of range [0, %d)", index, len(t.counters))
	}
	return t.counters[index], nil
}

// AllPerformances returns a copy of all counters, ordered by active-set
// index.
func (t *Tracker) AllPerformances() []stake.ValidatorPerformance {
	dup := make([]stake.ValidatorPerformance, len(t.counters))
	copy(dup, t.counters)
	return dup
}

// InvalidIndexError indicates a performance query for an index outside the
// active set.
type InvalidIndexError struct {
	err error
}

// NewInvalidIndexErrorf constructs an InvalidIndexError.
func NewInvalidIndexErrorf(msg string, args ...interface{}) error {
	return InvalidIndexError{err: fmt.Errorf(msg, args...)}
}

func (e InvalidIndexError) Error() string {
	return e.err.Error()
}

func (e InvalidIndexError) Unwrap() error {
	return e.err
}

// IsInvalidIndexError returns whether err is or wraps an InvalidIndexError.
func IsInvalidIndexError(err error) bool {
	var target InvalidIndexError
	return errors.As(err, &target)
}
