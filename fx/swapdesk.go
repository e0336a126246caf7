package fx

import (
	"fmt"
	"sync"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/bank"
)

// DeskAccount is the custody-side account holding the desk's inventory.
const DeskAccount = "swap-desk"

// SwapDesk executes swaps between the base currency and the FX legs at
// quoted rates. Rates are settable per ordered pair; a missing pair quotes
// 1:1. The desk settles through custody: amountIn leaves the vault, the
// quoted amountOut comes back, so balances stay conserved end to end.
type SwapDesk struct {
	mu      sync.RWMutex
	rates   map[string]math.LegacyDec // "in/out" -> rate
	custody *bank.Custody
}

// NewSwapDesk creates a desk settling against the given custody book.
func NewSwapDesk(custody *bank.Custody) *SwapDesk {
	return &SwapDesk{
		rates:   make(map[string]math.LegacyDec),
		custody: custody,
	}
}

// SetRate sets the amountOut-per-amountIn rate for one direction of a pair.
func (d *SwapDesk) SetRate(legIn, legOut string, rate math.LegacyDec) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rates[pairKey(legIn, legOut)] = rate
}

// Quote returns the amount of legOut received for amountIn of legIn, without
// moving funds.
func (d *SwapDesk) Quote(legIn, legOut string, amountIn math.Int) (math.Int, error) {
	if amountIn.IsNil() || amountIn.IsNegative() {
		return math.ZeroInt(), fmt.Errorf("invalid swap amount %s", amountIn)
	}
	d.mu.RLock()
	rate, ok := d.rates[pairKey(legIn, legOut)]
	d.mu.RUnlock()
	if !ok {
		return amountIn, nil
	}
	return rate.MulInt(amountIn).TruncateInt(), nil
}

// SwapIn executes a swap: amountIn of legIn moves from the vault to the
// desk, amountOut of legOut moves back. Fails without custody movement if
// the quote is below minOut; a desk inventory shortfall refunds the input
// leg before returning.
func (d *SwapDesk) SwapIn(legIn, legOut string, amountIn, minOut math.Int) (math.Int, error) {
	amountOut, err := d.Quote(legIn, legOut, amountIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	if amountOut.LT(minOut) {
		return math.ZeroInt(), fmt.Errorf("quote %s below min out %s", amountOut.String(), minOut.String())
	}

	if err := d.custody.Transfer(legIn, bank.VaultAccount, DeskAccount, amountIn); err != nil {
		return math.ZeroInt(), fmt.Errorf("swap input leg: %w", err)
	}
	if err := d.custody.Transfer(legOut, DeskAccount, bank.VaultAccount, amountOut); err != nil {
		if rerr := d.custody.Transfer(legIn, DeskAccount, bank.VaultAccount, amountIn); rerr != nil {
			return math.ZeroInt(), fmt.Errorf("swap output leg: %v (refund also failed: %v)", err, rerr)
		}
		return math.ZeroInt(), fmt.Errorf("swap output leg: %w", err)
	}
	return amountOut, nil
}

func pairKey(legIn, legOut string) string {
	return legIn + "/" + legOut
}
