package epochs_test

import (
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/chainclock"
	"github.com/graviton-network/graviton-go/module/roles"
	"github.com/graviton-network/graviton-go/utils/unittest"
)

func (s *ReconfigurationSuite) TestBlockerHeightAndNotifications() {
	s.Require().Equal(uint64(0), s.blocker.Height())

	s.prologue(genesisTime.AddMicros(1_000))
	s.prologue(genesisTime.AddMicros(2_000))

	s.Assert().Equal(uint64(2), s.blocker.Height())
	s.Assert().Equal([]uint64{1, 2}, s.consumer.Blocks)
}

func (s *ReconfigurationSuite) TestBlockerRequiresPrologueCaller() {
	err := s.blocker.OnBlockStart(unittest.AddressFixture(), 0, nil, genesisTime)
	s.Assert().True(roles.IsUnauthorizedError(err))
	s.Assert().Equal(uint64(0), s.blocker.Height())
}

func (s *ReconfigurationSuite) TestBlockerNilBlock() {
	// a NIL block carries the sentinel index and the unchanged timestamp
	err := s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		stake.NilProposerIndex, nil, s.clock.Now())
	s.Require().NoError(err)
	s.Assert().Equal(uint64(1), s.blocker.Height())

	// counters are untouched by NIL blocks
	for _, perf := range s.tracker.AllPerformances() {
		s.Assert().Equal(stake.ValidatorPerformance{}, perf)
	}

	// a NIL block that tries to advance time fails the block
	err = s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		stake.NilProposerIndex, nil, s.clock.Now().AddMicros(1))
	s.Require().Error(err)
	s.Assert().True(chainclock.IsInvalidTimestampError(err))
	s.Assert().Equal(uint64(1), s.blocker.Height())
}

func (s *ReconfigurationSuite) TestBlockerCountsProposals() {
	s.prologue(genesisTime.AddMicros(1_000))
	s.Require().NoError(s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		1, []uint64{0}, genesisTime.AddMicros(2_000)))

	perf, err := s.tracker.PerformanceOf(0)
	s.Require().NoError(err)
	s.Assert().Equal(stake.ValidatorPerformance{SuccessfulProposals: 1, FailedProposals: 1}, perf)

	perf, err = s.tracker.PerformanceOf(1)
	s.Require().NoError(err)
	s.Assert().Equal(stake.ValidatorPerformance{SuccessfulProposals: 1}, perf)
}

// A proposer index the active set does not know must not fail the block:
// the statistics drop it and the clock is left untouched.
func (s *ReconfigurationSuite) TestBlockerUnresolvableProposer() {
	before := s.clock.Now()
	err := s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		99, nil, before.AddMicros(1_000))
	s.Require().NoError(err)
	s.Assert().Equal(before, s.clock.Now(), "clock advance is skipped")
	s.Assert().Equal(uint64(1), s.blocker.Height())
}

// A block rejected for an invalid timestamp must leave no trace: a retry of
// the same block would otherwise double-count the performance counters.
func (s *ReconfigurationSuite) TestBlockerRejectedBlockHasNoEffect() {
	s.prologue(genesisTime.AddMicros(2_000))

	perfBefore := s.tracker.AllPerformances()
	heightBefore := s.blocker.Height()
	timeBefore := s.clock.Now()

	// proposer 0 with a backwards timestamp, reporting index 1 as failed
	err := s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		0, []uint64{1}, genesisTime.AddMicros(1_000))
	s.Require().Error(err)
	s.Assert().True(chainclock.IsInvalidTimestampError(err))

	s.Assert().Equal(perfBefore, s.tracker.AllPerformances())
	s.Assert().Equal(heightBefore, s.blocker.Height())
	s.Assert().Equal(timeBefore, s.clock.Now())

	// a NIL block that tries to advance time is rejected the same way
	err = s.blocker.OnBlockStart(roles.DefaultBlockPrologueCaller,
		stake.NilProposerIndex, []uint64{1}, timeBefore.AddMicros(1))
	s.Require().Error(err)
	s.Assert().True(chainclock.IsInvalidTimestampError(err))
	s.Assert().Equal(perfBefore, s.tracker.AllPerformances())
}

func (s *ReconfigurationSuite) TestBlockerTriggersTransition() {
	deadline := genesisTime.AddMicros(epochInterval)
	s.prologue(deadline)

	s.Assert().Equal(uint64(1), s.reconfig.CurrentEpoch())
	// the notification carries the epoch after the transition
	s.Require().Len(s.consumer.Blocks, 1)
	s.Assert().Equal([]uint64{1}, s.consumer.Transitions)
}
