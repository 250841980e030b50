package stake

import (
	"fmt"
	"math"
)

const (
	// ConsensusPubkeyLength is the expected length of a BLS12-381 G1
	// consensus public key.
	ConsensusPubkeyLength = 48

	// ConsensusPopLength is the expected length of a proof of possession
	// (a BLS12-381 G2 signature over the public key).
	ConsensusPopLength = 96

	// MaxMonikerLength bounds the human-readable validator moniker.
	MaxMonikerLength = 64
)

// NilProposerIndex is the sentinel proposer index used for NIL blocks, where
// consensus failed to produce a real proposer.
const NilProposerIndex uint64 = math.MaxUint64

// ValidatorConsensusInfo is the consensus-facing view of an active (or
// soon-to-be-active) validator, as consumed by the proposer election and the
// DKG protocol.
type ValidatorConsensusInfo struct {
	Validator         Address
	ConsensusPubkey   []byte
	ConsensusPop      []byte
	VotingPower       uint64
	ValidatorIndex    uint64
	NetworkAddresses  []byte
	FullnodeAddresses []byte
}

func (info ValidatorConsensusInfo) String() string {
	return fmt.Sprintf("%s[%d]=%d", info.Validator, info.ValidatorIndex, info.VotingPower)
}

// ConsensusInfoList is an ordered list of validator consensus infos, ordered
// by active-set index.
type ConsensusInfoList []ValidatorConsensusInfo

// TotalVotingPower returns the sum of the voting power of all entries.
func (l ConsensusInfoList) TotalVotingPower() uint64 {
	var total uint64
	for _, info := range l {
		total += info.VotingPower
	}
	return total
}

// Addresses returns the validator addresses of all entries, in order.
func (l ConsensusInfoList) Addresses() []Address {
	addrs := make([]Address, 0, len(l))
	for _, info := range l {
		addrs = append(addrs, info.Validator)
	}
	return addrs
}

// ByAddress returns the entry for the given validator, if present.
func (l ConsensusInfoList) ByAddress(addr Address) (ValidatorConsensusInfo, bool) {
	for _, info := range l {
		if info.Validator == addr {
			return info, true
		}
	}
	return ValidatorConsensusInfo{}, false
}

// Fingerprint returns a collision-resistant digest of the list, used to tag
// DKG sessions with the exact dealer and target sets they were started for.
func (l ConsensusInfoList) Fingerprint() Identifier {
	return MakeID(l)
}

// CapVotingPower derives the effective voting power from bonded stake,
// capped by the configured maximum bond.
func CapVotingPower(bonded, maximumBond uint64) uint64 {
	if bonded > maximumBond {
		return maximumBond
	}
	return bonded
}

// ValidatorPerformance counts proposal outcomes for one active validator
// within the current epoch.
type ValidatorPerformance struct {
	SuccessfulProposals uint64
	FailedProposals     uint64
}
