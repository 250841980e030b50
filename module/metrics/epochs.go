package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/graviton-network/graviton-go/module"
)

// EpochCollector implements module.EpochMetrics.
type EpochCollector struct {
	currentEpoch         prometheus.Gauge
	transitionsCompleted prometheus.Counter
	transitionInProgress prometheus.Gauge
	dkgSessionsStarted   prometheus.Counter
	dkgSessionsDiscarded prometheus.Counter
}

var _ module.EpochMetrics = (*EpochCollector)(nil)

// NewEpochCollector creates a collector for the epoch lifecycle and
// registers it with the given registerer.
func NewEpochCollector(registerer prometheus.Registerer) *EpochCollector {
	currentEpoch := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemEpochs,
		Name:      "current_epoch",
		Help:      "the current epoch counter",
	})
	transitionsCompleted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemEpochs,
		Name:      "transitions_completed_total",
		Help:      "the number of completed epoch transitions",
	})
	transitionInProgress := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemEpochs,
		Name:      "transition_in_progress",
		Help:      "1 while a DKG hand-off is in flight, 0 otherwise",
	})
	dkgSessionsStarted := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemEpochs,
		Name:      "dkg_sessions_started_total",
		Help:      "the number of DKG sessions started",
	})
	dkgSessionsDiscarded := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemEpochs,
		Name:      "dkg_sessions_discarded_total",
		Help:      "the number of stale DKG sessions discarded",
	})
	registerer.MustRegister(
		currentEpoch,
		transitionsCompleted,
		transitionInProgress,
		dkgSessionsStarted,
		dkgSessionsDiscarded,
	)
	return &EpochCollector{
		currentEpoch:         currentEpoch,
		transitionsCompleted: transitionsCompleted,
		transitionInProgress: transitionInProgress,
		dkgSessionsStarted:   dkgSessionsStarted,
		dkgSessionsDiscarded: dkgSessionsDiscarded,
	}
}

func (c *EpochCollector) CurrentEpoch(epoch uint64) {
	c.currentEpoch.Set(float64(epoch))
}

func (c *EpochCollector) EpochTransitionCompleted() {
	c.transitionsCompleted.Inc()
}

func (c *EpochCollector) TransitionInProgress(inProgress bool) {
	if inProgress {
		c.transitionInProgress.Set(1)
	} else {
		c.transitionInProgress.Set(0)
	}
}

func (c *EpochCollector) DKGSessionStarted() {
	c.dkgSessionsStarted.Inc()
}

func (c *EpochCollector) DKGSessionDiscarded() {
	c.dkgSessionsDiscarded.Inc()
}
