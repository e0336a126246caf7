package keeper

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// GetPool returns a copy of the pool for a duration.
func (k *Keeper) GetPool(duration int64) (*types.StakingPool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pool, ok := k.pools[duration]
	if !ok {
		return nil, errors.Wrapf(types.ErrInvalidDuration, "%d days", duration)
	}
	cp := *pool
	return &cp, nil
}

// GetAllPools returns copies of the three pools, ordered by duration.
func (k *Keeper) GetAllPools() []*types.StakingPool {
	k.mu.RLock()
	defer k.mu.RUnlock()

	pools := make([]*types.StakingPool, 0, len(k.pools))
	for _, d := range []int64{types.Duration30, types.Duration60, types.Duration90} {
		cp := *k.pools[d]
		pools = append(pools, &cp)
	}
	return pools
}

// GetUserStakes returns copies of an account's stake records in creation
// order. Indices into the returned slice are the ledger indices.
func (k *Keeper) GetUserStakes(account string) []*types.Stake {
	k.mu.RLock()
	defer k.mu.RUnlock()

	stakes := make([]*types.Stake, 0, len(k.stakes[account]))
	for _, s := range k.stakes[account] {
		cp := *s
		stakes = append(stakes, &cp)
	}
	return stakes
}

// GetUserPiggies returns copies of an account's piggy records in creation
// order.
func (k *Keeper) GetUserPiggies(account string) []*types.Piggy {
	k.mu.RLock()
	defer k.mu.RUnlock()

	piggies := make([]*types.Piggy, 0, len(k.piggies[account]))
	for _, p := range k.piggies[account] {
		cp := *p
		piggies = append(piggies, &cp)
	}
	return piggies
}

// EstimateStakeInterest previews the interest accrued so far on an active
// stake using proportional partial-period accrual. Settlement ignores this
// and always pays the reward fixed at creation.
func (k *Keeper) EstimateStakeInterest(account string, index int) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	stakes := k.stakes[account]
	if index < 0 || index >= len(stakes) {
		return math.ZeroInt(), errors.Wrapf(types.ErrNotFound, "stake index %d for %s", index, account)
	}
	stake := stakes[index]

	elapsed := (k.now().Unix() - stake.StartTime) / 86400
	if elapsed > stake.Duration {
		elapsed = stake.Duration
	}
	if elapsed < 0 {
		elapsed = 0
	}
	return CalculateInterestForDays(stake.Amount, stake.Duration, elapsed)
}

// OpenPositionValue sums, in base currency, the vault's open exposure: the
// re-quoted value of every active piggy plus every unclaimed stake's
// principal and promised reward. Used by the valuation snapshot job.
func (k *Keeper) OpenPositionValue() (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	total := math.ZeroInt()
	for account, piggies := range k.piggies {
		for i, p := range piggies {
			if p.Claimed {
				continue
			}
			value, err := k.quotePiggyValue(account, i)
			if err != nil {
				return math.ZeroInt(), err
			}
			total = total.Add(value)
		}
	}
	for _, stakes := range k.stakes {
		for _, s := range stakes {
			if s.Claimed {
				continue
			}
			total = total.Add(s.Amount).Add(s.Reward)
		}
	}
	return total, nil
}
