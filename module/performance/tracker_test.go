package performance_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/performance"
	"github.com/graviton-network/graviton-go/utils/unittest"
)

func TestUpdateStatistics(t *testing.T) {
	tracker := performance.NewTracker(unittest.Logger(), 3)

	tracker.UpdateStatistics(0, []uint64{1, 2})
	tracker.UpdateStatistics(0, nil)
	tracker.UpdateStatistics(2, []uint64{1})

	perf, err := tracker.PerformanceOf(0)
	require.NoError(t, err)
	assert.Equal(t, stake.ValidatorPerformance{SuccessfulProposals: 2}, perf)

	perf, err = tracker.PerformanceOf(1)
	require.NoError(t, err)
	assert.Equal(t, stake.ValidatorPerformance{FailedProposals: 2}, perf)

	perf, err = tracker.PerformanceOf(2)
	require.NoError(t, err)
	assert.Equal(t, stake.ValidatorPerformance{SuccessfulProposals: 1, FailedProposals: 1}, perf)
}

// A NIL block carries the sentinel proposer index; it must count nothing.
func TestUpdateStatisticsNilBlock(t *testing.T) {
	tracker := performance.NewTracker(unittest.Logger(), 2)

	tracker.UpdateStatistics(stake.NilProposerIndex, nil)

	for _, perf := range tracker.AllPerformances() {
		assert.Equal(t, stake.ValidatorPerformance{}, perf)
	}
}

// Malformed indices from the consensus engine are dropped, never panicking
// and never corrupting neighbouring counters.
func TestUpdateStatisticsOutOfRange(t *testing.T) {
	tracker := performance.NewTracker(unittest.Logger(), 2)

	tracker.UpdateStatistics(7, []uint64{0, 99})

	perf, err := tracker.PerformanceOf(0)
	require.NoError(t, err)
	assert.Equal(t, stake.ValidatorPerformance{FailedProposals: 1}, perf)

	perf, err = tracker.PerformanceOf(1)
	require.NoError(t, err)
	assert.Equal(t, stake.ValidatorPerformance{}, perf)
}

func TestOnNewEpochResetsCounters(t *testing.T) {
	tracker := performance.NewTracker(unittest.Logger(), 2)
	tracker.UpdateStatistics(0, []uint64{1})

	tracker.OnNewEpoch(4)

	all := tracker.AllPerformances()
	require.Len(t, all, 4)
	for _, perf := range all {
		assert.Equal(t, stake.ValidatorPerformance{}, perf)
	}
}

func TestPerformanceOfOutOfRange(t *testing.T) {
	tracker := performance.NewTracker(unittest.Logger(), 2)

	_, err := tracker.PerformanceOf(2)
	require.Error(t, err)
	assert.True(t, performance.IsInvalidIndexError(err))
}
