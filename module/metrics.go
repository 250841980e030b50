package module

// EpochMetrics encapsulates the metrics collectors for the epoch lifecycle.
type EpochMetrics interface {

	// CurrentEpoch reports the current epoch counter.
	CurrentEpoch(epoch uint64)

	// EpochTransitionCompleted counts completed reconfigurations.
	EpochTransitionCompleted()

	// TransitionInProgress reports whether a DKG hand-off is in flight.
	TransitionInProgress(inProgress bool)

	// DKGSessionStarted counts started DKG sessions.
	DKGSessionStarted()

	// DKGSessionDiscarded counts stale DKG sessions that were dropped.
	DKGSessionDiscarded()
}

// ValidatorMetrics encapsulates the metrics collectors for validator-set
// membership.
type ValidatorMetrics interface {

	// ActiveValidators reports the size of the active set.
	ActiveValidators(n int)

	// TotalVotingPower reports the total capped voting power of the active
	// set.
	TotalVotingPower(power uint64)

	// ValidatorEvicted counts performance-based evictions.
	ValidatorEvicted()
}
