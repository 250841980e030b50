package validators

import (
	"github.com/graviton-network/graviton-go/model/stake"
	"github.com/graviton-network/graviton-go/module"
)

// MapLedger is an in-memory module.StakeLedger, used by the genesis
// bootstrap and by deployments where the custody layer mirrors bonded
// amounts into the runtime.
type MapLedger struct {
	bonded map[stake.Address]uint64
}

var _ module.StakeLedger = (*MapLedger)(nil)

// NewMapLedger creates an empty ledger.
func NewMapLedger() *MapLedger {
	return &MapLedger{
		bonded: make(map[stake.Address]uint64),
	}
}

// SetBonded records the bonded amount of a stake pool, creating the pool if
// necessary.
func (l *MapLedger) SetBonded(pool stake.Address, amount uint64) {
	l.bonded[pool] = amount
}

// BondedStake returns the bonded amount of the given pool.
func (l *MapLedger) BondedStake(pool stake.Address) (uint64, bool) {
	amount, ok := l.bonded[pool]
	return amount, ok
}
