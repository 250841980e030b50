package metrics

// NoopCollector implements all metrics interfaces of this module with
// no-ops, for contexts where metrics are not collected.
type NoopCollector struct{}

// NewNoopCollector creates a no-op collector.
func NewNoopCollector() *NoopCollector {
	return &NoopCollector{}
}

func (nc *NoopCollector) CurrentEpoch(uint64)       {}
func (nc *NoopCollector) EpochTransitionCompleted() {}
func (nc *NoopCollector) TransitionInProgress(bool) {}
func (nc *NoopCollector) DKGSessionStarted()        {}
func (nc *NoopCollector) DKGSessionDiscarded()      {}
func (nc *NoopCollector) ActiveValidators(int)      {}
func (nc *NoopCollector) TotalVotingPower(uint64)   {}
func (nc *NoopCollector) ValidatorEvicted()         {}
