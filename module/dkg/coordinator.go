// Package dkg tracks the hand-off to the out-of-band distributed key
// generation protocol. The protocol itself runs across an indeterminate
// number of blocks; this package only manages the single tracked session:
// its start, its completion transcript, and the idempotent discard of stale
// sessions. There is no time-based abandonment: a stuck session persists
// until the next transition attempt discards it explicitly.
package dkg

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
)

var (
	// ErrSessionInProgress is returned by Start while an incomplete session
	// is tracked. The caller must discard it first.
	ErrSessionInProgress = errors.New("dkg session already in progress")

	// ErrNoSession is returned by Finish when no session is in progress.
	ErrNoSession = errors.New("no dkg session in progress")
)

// Session is one tracked DKG run, tagged with the epoch it was started in
// and snapshotting the exact dealer and target sets handed to the external
// protocol.
type Session struct {
	Epoch      uint64
	Config     stake.RandomnessConfig
	Dealers    stake.ConsensusInfoList
	Targets    stake.ConsensusInfoList
	Transcript []byte
	Completed  bool
}

// ID returns a digest identifying the session by its epoch and participant
// sets.
func (s *Session) ID() stake.Identifier {
	return stake.MakeID(struct {
		Epoch   uint64
		Dealers stake.Identifier
		Targets stake.Identifier
	}{
		Epoch:   s.Epoch,
		Dealers: s.Dealers.Fingerprint(),
		Targets: s.Targets.Fingerprint(),
	})
}

// Coordinator implements module.DKGCoordinator, managing at most one session
// at a time.
type Coordinator struct {
	log     zerolog.Logger
	metrics module.EpochMetrics
	session *Session
}

var _ module.DKGCoordinator = (*Coordinator)(nil)

// NewCoordinator creates a coordinator with no tracked session.
func NewCoordinator(log zerolog.Logger, metrics module.EpochMetrics) *Coordinator {
	return &Coordinator{
		log:     log.With().Str("component", "dkg_coordinator").Logger(),
		metrics: metrics,
	}
}

// Start opens a new session for the given epoch.
//
// Expected errors during normal operations:
//   - ErrSessionInProgress if an incomplete session exists.
func (c *Coordinator) Start(epoch uint64, config stake.RandomnessConfig, dealers, targets stake.ConsensusInfoList) error {
	if c.session != nil && !c.session.Completed {
		return ErrSessionInProgress
	}
	c.session = &Session{
		Epoch:   epoch,
		Config:  config,
		Dealers: dealers,
		Targets: targets,
	}
	c.metrics.DKGSessionStarted()
	c.log.Info().
		Uint64("epoch", epoch).
		Int("dealers", len(dealers)).
		Int("targets", len(targets)).
		Str("session_id", c.session.ID().String()).
		Msg("dkg session started")
	return nil
}

// Finish finalizes the in-progress session with the given transcript.
//
// Expected errors during normal operations:
//   - ErrNoSession if no incomplete session is tracked.
func (c *Coordinator) Finish(transcript []byte) error {
	if c.session == nil || c.session.Completed {
		return ErrNoSession
	}
	c.session.Transcript = transcript
	c.session.Completed = true
	c.log.Info().
		Uint64("epoch", c.session.Epoch).
		Int("transcript_len", len(transcript)).
		Msg("dkg session finished")
	return nil
}

// DiscardStale drops the tracked session if it is completed or was started
// in an earlier epoch. Idempotent: repeated calls are no-ops.
func (c *Coordinator) DiscardStale(currentEpoch uint64) bool {
	if c.session == nil {
		return false
	}
	if !c.session.Completed && c.session.Epoch >= currentEpoch {
		return false
	}
	c.log.Info().
		Uint64("session_epoch", c.session.Epoch).
		Uint64("current_epoch", currentEpoch).
		Bool("completed", c.session.Completed).
		Msg("discarding stale dkg session")
	c.session = nil
	c.metrics.DKGSessionDiscarded()
	return true
}

// InProgress returns true while an incomplete session is tracked.
func (c *Coordinator) InProgress() bool {
	return c.session != nil && !c.session.Completed
}

// SessionEpoch returns the epoch of the tracked session, if any.
func (c *Coordinator) SessionEpoch() (uint64, bool) {
	if c.session == nil {
		return 0, false
	}
	return c.session.Epoch, true
}

// CurrentSession returns the tracked session, if any. The returned session
// must not be mutated.
func (c *Coordinator) CurrentSession() (*Session, bool) {
	if c.session == nil {
		return nil, false
	}
	return c.session, true
}
