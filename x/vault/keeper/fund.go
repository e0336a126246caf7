package keeper

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// FundRewards pulls totalAmount of base currency from the caller into vault
// custody and credits the pools at the fixed 40/35/remainder split. The
// 90-day share is computed by subtraction so the three parts always sum
// exactly to totalAmount. Owner-only.
func (k *Keeper) FundRewards(caller string, totalAmount math.Int) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if caller != k.authority {
		return errors.Wrapf(types.ErrUnauthorized, "caller %s is not the owner", caller)
	}
	if totalAmount.IsNil() || !totalAmount.IsPositive() {
		return errors.Wrap(types.ErrInvalidAmount, "funding amount must be positive")
	}

	if err := k.custody.TransferIn(types.LegCCOP, caller, totalAmount); err != nil {
		return errors.Wrapf(types.ErrInsufficientBalance, "fund rewards: %s", err)
	}

	hundred := math.NewInt(100)
	share30 := totalAmount.Mul(math.NewInt(types.FundingSharePct30)).Quo(hundred)
	share60 := totalAmount.Mul(math.NewInt(types.FundingSharePct60)).Quo(hundred)
	share90 := totalAmount.Sub(share30).Sub(share60)

	now := k.now().Unix()
	for duration, share := range map[int64]math.Int{
		types.Duration30: share30,
		types.Duration60: share60,
		types.Duration90: share90,
	} {
		pool := k.pools[duration]
		pool.TotalRewardsFunded = pool.TotalRewardsFunded.Add(share)
		pool.UpdatedAt = now
	}

	k.emit(types.NewEvent(types.EventRewardsFunded, map[string]string{
		"funder":    caller,
		"amount":    totalAmount.String(),
		"share_30d": share30.String(),
		"share_60d": share60.String(),
		"share_90d": share90.String(),
	}))

	k.logger.Info("Rewards funded",
		"funder", caller,
		"amount", totalAmount.String(),
		"share_30d", share30.String(),
		"share_60d", share60.String(),
		"share_90d", share90.String(),
	)
	return nil
}
