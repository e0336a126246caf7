package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// Reward funding split across the three pools. The 90-day share is computed
// as total - 40% - 35% so the three parts always sum exactly to the funded
// amount.
const (
	FundingSharePct30 = int64(40)
	FundingSharePct60 = int64(35)
)

// Default allocation ratios (percent of the deposit kept per leg). Safe mode
// biases toward the base currency for lower FX exposure.
const (
	AllocBasePct     = int64(40)
	AllocLegPct      = int64(20)
	SafeAllocBasePct = int64(70)
	SafeAllocLegPct  = int64(10)
)

// Params holds the configurable ledger constants.
type Params struct {
	// RewardFeeBps is the developer cut of the promised reward on unstake.
	RewardFeeBps int64 `json:"reward_fee_bps" yaml:"reward_fee_bps"`

	// ProfitFeeBps is the developer cut of positive FX profit on piggy
	// claims.
	ProfitFeeBps int64 `json:"profit_fee_bps" yaml:"profit_fee_bps"`

	// MaxDepositPerWallet caps a single account's combined stake principal
	// across all pools.
	MaxDepositPerWallet math.Int `json:"max_deposit_per_wallet" yaml:"max_deposit_per_wallet"`
}

// DefaultParams returns the production defaults: 5% fee on rewards, 5% fee
// on profit, 100M cCOP wallet cap.
func DefaultParams() Params {
	return Params{
		RewardFeeBps:        500,
		ProfitFeeBps:        500,
		MaxDepositPerWallet: NewAmountFromUnits(100_000_000),
	}
}

// Validate checks the params for internal consistency.
func (p Params) Validate() error {
	if p.RewardFeeBps < 0 || p.RewardFeeBps > 10000 {
		return fmt.Errorf("reward fee bps out of range: %d", p.RewardFeeBps)
	}
	if p.ProfitFeeBps < 0 || p.ProfitFeeBps > 10000 {
		return fmt.Errorf("profit fee bps out of range: %d", p.ProfitFeeBps)
	}
	if p.MaxDepositPerWallet.IsNil() || !p.MaxDepositPerWallet.IsPositive() {
		return fmt.Errorf("max deposit per wallet must be positive")
	}
	return nil
}
