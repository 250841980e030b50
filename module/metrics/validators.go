package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/graviton-network/graviton-go/module"
)

// ValidatorCollector implements module.ValidatorMetrics.
type ValidatorCollector struct {
	activeValidators prometheus.Gauge
	totalVotingPower prometheus.Gauge
	evictions        prometheus.Counter
}

var _ module.ValidatorMetrics = (*ValidatorCollector)(nil)

// NewValidatorCollector creates a collector for validator-set membership and
// registers it with the given registerer.
func NewValidatorCollector(registerer prometheus.Registerer) *ValidatorCollector {
	activeValidators := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemValidators,
		Name:      "active_validators",
		Help:      "the size of the active validator set",
	})
	totalVotingPower := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemValidators,
		Name:      "total_voting_power",
		Help:      "the total capped voting power of the active set",
	})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespaceChain,
		Subsystem: subsystemValidators,
		Name:      "evictions_total",
		Help:      "the number of validators scheduled for removal due to underperformance",
	})
	registerer.MustRegister(activeValidators, totalVotingPower, evictions)
	return &ValidatorCollector{
		activeValidators: activeValidators,
		totalVotingPower: totalVotingPower,
		evictions:        evictions,
	}
}

func (c *ValidatorCollector) ActiveValidators(n int) {
	c.activeValidators.Set(float64(n))
}

func (c *ValidatorCollector) TotalVotingPower(power uint64) {
	c.totalVotingPower.Set(float64(power))
}

func (c *ValidatorCollector) ValidatorEvicted() {
	c.evictions.Inc()
}
