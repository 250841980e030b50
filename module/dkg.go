package module

import (
	"github.com/graviton-network/graviton-go/model/stake"
)

// DKGCoordinator manages at most one distributed key generation session at a
// time. The protocol itself runs out of band, across an indeterminate number
// of blocks; the coordinator only tracks the session hand-off.
type DKGCoordinator interface {

	// Start opens a new session tagged with the epoch it was started in,
	// snapshotting the dealer set (current validators) and the target set
	// (next-epoch validators).
	//
	// Expected errors during normal operations:
	//   - dkg.ErrSessionInProgress if an incomplete session exists; the
	//     caller must discard it first.
	Start(epoch uint64, config stake.RandomnessConfig, dealers, targets stake.ConsensusInfoList) error

	// Finish finalizes the in-progress session with the transcript produced
	// by the external protocol.
	//
	// Expected errors during normal operations:
	//   - dkg.ErrNoSession if no session is in progress.
	Finish(transcript []byte) error

	// DiscardStale drops the tracked session if it is completed or was
	// started in an earlier epoch. It is idempotent and reports whether a
	// session was discarded.
	DiscardStale(currentEpoch uint64) bool

	// InProgress returns true while an incomplete session is tracked.
	InProgress() bool

	// SessionEpoch returns the epoch of the tracked session, if any.
	SessionEpoch() (uint64, bool)
}
