// Package fx provides the reference FX collaborators consumed by the vault
// keeper: the allocation oracle and the rate-table swap desk. Both mirror
// the behavior of the original deployment's Mento oracle and broker.
package fx

import (
	"fmt"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Oracle suggests a 4-way split of a base-currency amount. Safe mode keeps
// more of the deposit in the base currency.
type Oracle struct {
	basePct     int64
	legPct      int64
	safeBasePct int64
	safeLegPct  int64
}

// NewOracle creates an oracle with the default allocation ratios.
func NewOracle() *Oracle {
	return &Oracle{
		basePct:     types.AllocBasePct,
		legPct:      types.AllocLegPct,
		safeBasePct: types.SafeAllocBasePct,
		safeLegPct:  types.SafeAllocLegPct,
	}
}

// SuggestAllocation splits totalAmount into base/USD/EUR/GBP legs. The GBP
// leg absorbs the integer-division remainder so the legs always sum exactly
// to totalAmount.
func (o *Oracle) SuggestAllocation(totalAmount math.Int, safeMode bool) (types.Allocation, error) {
	if totalAmount.IsNil() || totalAmount.IsNegative() {
		return types.Allocation{}, fmt.Errorf("invalid allocation amount %s", totalAmount)
	}

	basePct, legPct := o.basePct, o.legPct
	if safeMode {
		basePct, legPct = o.safeBasePct, o.safeLegPct
	}

	hundred := math.NewInt(100)
	base := totalAmount.Mul(math.NewInt(basePct)).Quo(hundred)
	usd := totalAmount.Mul(math.NewInt(legPct)).Quo(hundred)
	eur := totalAmount.Mul(math.NewInt(legPct)).Quo(hundred)
	gbp := totalAmount.Sub(base).Sub(usd).Sub(eur)

	return types.Allocation{Base: base, USD: usd, EUR: eur, GBP: gbp}, nil
}
