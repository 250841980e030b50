package stake_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graviton-network/graviton-go/model/stake"
)

func TestCapVotingPower(t *testing.T) {
	assert.Equal(t, uint64(500), stake.CapVotingPower(500, 1000))
	assert.Equal(t, uint64(1000), stake.CapVotingPower(1000, 1000))
	assert.Equal(t, uint64(1000), stake.CapVotingPower(5000, 1000))
}

func infoFixture(seed byte, power uint64, index uint64) stake.ValidatorConsensusInfo {
	pubkey := make([]byte, stake.ConsensusPubkeyLength)
	pubkey[0] = seed
	return stake.ValidatorConsensusInfo{
		Validator:       stake.DeriveAddress(pubkey),
		ConsensusPubkey: pubkey,
		VotingPower:     power,
		ValidatorIndex:  index,
	}
}

func TestConsensusInfoList(t *testing.T) {
	list := stake.ConsensusInfoList{
		infoFixture(1, 100, 0),
		infoFixture(2, 200, 1),
		infoFixture(3, 300, 2),
	}

	assert.Equal(t, uint64(600), list.TotalVotingPower())
	assert.Len(t, list.Addresses(), 3)

	info, ok := list.ByAddress(list[1].Validator)
	require.True(t, ok)
	assert.Equal(t, uint64(200), info.VotingPower)

	_, ok = list.ByAddress(stake.SystemAddress)
	assert.False(t, ok)
}

func TestConsensusInfoListFingerprint(t *testing.T) {
	list := stake.ConsensusInfoList{
		infoFixture(1, 100, 0),
		infoFixture(2, 200, 1),
	}

	assert.Equal(t, list.Fingerprint(), list.Fingerprint(), "fingerprint must be deterministic")

	reordered := stake.ConsensusInfoList{list[1], list[0]}
	assert.NotEqual(t, list.Fingerprint(), reordered.Fingerprint(), "fingerprint must be order-sensitive")

	changed := stake.ConsensusInfoList{list[0], infoFixture(2, 999, 1)}
	assert.NotEqual(t, list.Fingerprint(), changed.Fingerprint())
}

func TestMakeID(t *testing.T) {
	type entity struct {
		Epoch uint64
		Name  string
	}

	a := stake.MakeID(entity{Epoch: 1, Name: "x"})
	assert.Equal(t, a, stake.MakeID(entity{Epoch: 1, Name: "x"}))
	assert.NotEqual(t, a, stake.MakeID(entity{Epoch: 2, Name: "x"}))
}
