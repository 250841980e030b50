// Package chainclock implements the authoritative chain time source. Chain
// time is a monotonic microsecond timestamp advanced exactly once per block
// by the block prologue.
package chainclock

import (
	"github.com/rs/zerolog"
	"go.uber.org/atomic"

	"github.com/graviton-network/graviton-go/model/stake"
)

// ChainClock implements module.Clock. Writes are serialized by the
// surrounding runtime; the timestamp is held in an atomic cell so read-only
// views may be served concurrently.
type ChainClock struct {
	log    zerolog.Logger
	micros *atomic.Uint64
}

// New creates a chain clock starting at the given genesis time.
func New(log zerolog.Logger, genesisTime stake.Timestamp) *ChainClock {
	return &ChainClock{
		log:    log.With().Str("component", "chain_clock").Logger(),
		micros: atomic.NewUint64(uint64(genesisTime)),
	}
}

// Now returns the current chain time.
func (c *ChainClock) Now() stake.Timestamp {
	return stake.Timestamp(c.micros.Load())
}

// Validate checks a (proposer, timestamp) pair against the rules of Advance
// without mutating chain time.
//
// Expected errors during normal operations:
//   - InvalidTimestampError if the timestamp violates the rules of Advance.
func (c *ChainClock) Validate(proposer stake.Address, ts stake.Timestamp) error {
	now := stake.Timestamp(c.micros.Load())
	if proposer.IsSystem() {
		if ts != now {
			return NewInvalidTimestampErrorf("NIL block must not advance time (got %d, now %d)", ts, now)
		}
		return nil
	}
	if ts < now {
		return NewInvalidTimestampErrorf("timestamp moves backwards (got %d, now %d)", ts, now)
	}
	return nil
}

// Advance moves chain time forward for a new block. NIL blocks, proposed by
// the system identity, must carry the unchanged current timestamp; blocks
// with a real proposer must not move time backwards.
//
// Expected errors during normal operations:
//   - InvalidTimestampError if the timestamp violates the rules above.
func (c *ChainClock) Advance(proposer stake.Address, ts stake.Timestamp) error {
	if err := c.Validate(proposer, ts); err != nil {
		return err
	}
	if proposer.IsSystem() {
		return nil
	}
	c.micros.Store(uint64(ts))
	c.log.Debug().
		Uint64("timestamp_micros", uint64(ts)).
		Str("proposer", proposer.Hex()).
		Msg("chain time advanced")
	return nil
}
