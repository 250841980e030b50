package module

import (
	"github.com/graviton-network/graviton-go/model/stake"
)

// Clock is the authoritative source of chain time, advanced exactly once per
// block by the block prologue.
type Clock interface {

	// Now returns the current chain time in microseconds.
	Now() stake.Timestamp

	// Advance moves chain time forward for a new block. For blocks with a
	// real proposer the new timestamp must not be smaller than the current
	// one. For NIL blocks the proposer is the system identity and the
	// timestamp must equal the current value: time must not appear to
	// advance for a block with no real proposer.
	//
	// Expected errors during normal operations:
	//   - chainclock.InvalidTimestampError if the timestamp violates the
	//     rules above.
	Advance(proposer stake.Address, ts stake.Timestamp) error

	// Validate checks a (proposer, timestamp) pair against the rules of
	// Advance without mutating chain time, so callers can reject a block
	// before applying any other per-block effects.
	//
	// Expected errors during normal operations:
	//   - chainclock.InvalidTimestampError if the timestamp violates the
	//     rules of Advance.
	Validate(proposer stake.Address, ts stake.Timestamp) error
}
