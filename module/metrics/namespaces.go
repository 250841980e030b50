package metrics

// Prometheus namespace and subsystems for all collectors in this module.
const (
	namespaceChain = "graviton"

	subsystemEpochs     = "epochs"
	subsystemValidators = "validators"
)
