// Package bank provides the in-memory custody book backing the vault. It
// stands in for the token contracts of the original deployment: every
// account, the vault itself and the developer are rows in a per-leg balance
// map.
package bank

import (
	"fmt"
	"sync"

	"cosmossdk.io/math"
)

// VaultAccount is the custody-side account holding vault funds.
const VaultAccount = "vault"

// Custody is a thread-safe multi-currency balance book.
type Custody struct {
	mu       sync.RWMutex
	balances map[string]map[string]math.Int // leg -> account -> balance
}

// NewCustody creates an empty custody book.
func NewCustody() *Custody {
	return &Custody{
		balances: make(map[string]map[string]math.Int),
	}
}

// Mint credits an account out of thin air. Test and bootstrap helper,
// mirrors the mock ERC20 mint of the original test suite.
func (c *Custody) Mint(leg, account string, amount math.Int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.credit(leg, account, amount)
}

// Balance returns an account's balance in a leg.
func (c *Custody) Balance(leg, account string) math.Int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if accounts, ok := c.balances[leg]; ok {
		if bal, ok := accounts[account]; ok {
			return bal
		}
	}
	return math.ZeroInt()
}

// TransferIn moves amount of leg from account into vault custody.
func (c *Custody) TransferIn(leg, account string, amount math.Int) error {
	return c.Transfer(leg, account, VaultAccount, amount)
}

// TransferOut moves amount of leg from vault custody to account.
func (c *Custody) TransferOut(leg, account string, amount math.Int) error {
	return c.Transfer(leg, VaultAccount, account, amount)
}

// Transfer moves amount of leg between two accounts. Fails without mutation
// if the sender cannot cover it.
func (c *Custody) Transfer(leg, from, to string, amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return fmt.Errorf("invalid transfer amount %s", amount)
	}
	if amount.IsZero() {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	bal := c.balanceLocked(leg, from)
	if bal.LT(amount) {
		return fmt.Errorf("%s: %s has %s, needs %s", leg, from, bal.String(), amount.String())
	}
	c.balances[leg][from] = bal.Sub(amount)
	c.credit(leg, to, amount)
	return nil
}

func (c *Custody) balanceLocked(leg, account string) math.Int {
	accounts, ok := c.balances[leg]
	if !ok {
		accounts = make(map[string]math.Int)
		c.balances[leg] = accounts
	}
	bal, ok := accounts[account]
	if !ok {
		bal = math.ZeroInt()
		accounts[account] = bal
	}
	return bal
}

func (c *Custody) credit(leg, account string, amount math.Int) {
	bal := c.balanceLocked(leg, account)
	c.balances[leg][account] = bal.Add(amount)
}
