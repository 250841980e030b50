package dkg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module/dkg"
	"github.com/graviton-network/graviton-go/module/metrics"
	"github.com/graviton-network/graviton-go/utils/unittest"
)

func randomnessV2Fixture() stake.RandomnessConfig {
	return stake.RandomnessConfig{
		Variant:                  stake.RandomnessV2,
		SecrecyThreshold:         5_000,
		ReconstructionThreshold:  6_667,
		FastPathSecrecyThreshold: 6_700,
	}
}

func participantsFixture(n int) stake.ConsensusInfoList {
	list := make(stake.ConsensusInfoList, 0, n)
	for i := 0; i < n; i++ {
		pubkey := unittest.ConsensusKeyFixture()
		list = append(list, stake.ValidatorConsensusInfo{
			Validator:       stake.DeriveAddress(pubkey),
			ConsensusPubkey: pubkey,
			VotingPower:     100,
			ValidatorIndex:  uint64(i),
		})
	}
	return list
}

func TestSessionLifecycle(t *testing.T) {
	coordinator := dkg.NewCoordinator(unittest.Logger(), metrics.NewNoopCollector())

	assert.False(t, coordinator.InProgress())
	_, tracked := coordinator.SessionEpoch()
	assert.False(t, tracked)
	assert.Equal(t, dkg.ErrNoSession, coordinator.Finish([]byte("transcript")))

	dealers := participantsFixture(3)
	targets := participantsFixture(4)
	require.NoError(t, coordinator.Start(7, randomnessV2Fixture(), dealers, targets))
	assert.True(t, coordinator.InProgress())

	epoch, tracked := coordinator.SessionEpoch()
	require.True(t, tracked)
	assert.Equal(t, uint64(7), epoch)

	// only one session at a time
	assert.Equal(t, dkg.ErrSessionInProgress, coordinator.Start(7, randomnessV2Fixture(), dealers, targets))

	require.NoError(t, coordinator.Finish([]byte("transcript")))
	assert.False(t, coordinator.InProgress())

	session, ok := coordinator.CurrentSession()
	require.True(t, ok)
	assert.True(t, session.Completed)
	assert.Equal(t, []byte("transcript"), session.Transcript)

	// finishing twice has no session to finish
	assert.Equal(t, dkg.ErrNoSession, coordinator.Finish([]byte("again")))
}

func TestDiscardStale(t *testing.T) {
	coordinator := dkg.NewCoordinator(unittest.Logger(), metrics.NewNoopCollector())

	assert.False(t, coordinator.DiscardStale(0), "no session to discard")

	dealers := participantsFixture(2)
	require.NoError(t, coordinator.Start(5, randomnessV2Fixture(), dealers, dealers))

	// an incomplete session of the current epoch is kept
	assert.False(t, coordinator.DiscardStale(5))
	assert.True(t, coordinator.InProgress())

	// an incomplete session of an earlier epoch is stale
	assert.True(t, coordinator.DiscardStale(6))
	assert.False(t, coordinator.InProgress())
	_, tracked := coordinator.SessionEpoch()
	assert.False(t, tracked)

	// idempotent
	assert.False(t, coordinator.DiscardStale(6))

	// a completed session is stale regardless of epoch
	require.NoError(t, coordinator.Start(6, randomnessV2Fixture(), dealers, dealers))
	require.NoError(t, coordinator.Finish(nil))
	assert.True(t, coordinator.DiscardStale(6))
}

func TestSessionID(t *testing.T) {
	dealers := participantsFixture(2)
	targets := participantsFixture(3)

	a := dkg.Session{Epoch: 1, Dealers: dealers, Targets: targets}
	b := dkg.Session{Epoch: 1, Dealers: dealers, Targets: targets}
	assert.Equal(t, a.ID(), b.ID())

	c := dkg.Session{Epoch: 2, Dealers: dealers, Targets: targets}
	assert.NotEqual(t, a.ID(), c.ID())
}
