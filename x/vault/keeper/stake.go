package keeper

import (
	"strconv"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Stake locks amount into the fixed-duration pool and returns the index of
// the new stake record. The reward is fixed here, at creation time, and the
// pool's capacity and reward liability are both reserved before any state is
// mutated — a failed check leaves the ledger untouched.
func (k *Keeper) Stake(account string, amount math.Int, duration int64) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !types.ValidDuration(duration) {
		return 0, errors.Wrapf(types.ErrInvalidDuration, "%d days", duration)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return 0, errors.Wrap(types.ErrInvalidAmount, "stake amount must be positive")
	}

	pool := k.pools[duration]
	reward := amount.Mul(math.NewInt(pool.RateBps)).Quo(math.NewInt(bpsDenominator))

	// Wallet cap spans all pools.
	staked := k.totalStakedBy(account)
	if staked.Add(amount).GT(k.params.MaxDepositPerWallet) {
		return 0, errors.Wrapf(types.ErrWalletCapExceeded,
			"attempted %s, remaining wallet capacity %s",
			amount.String(), k.params.MaxDepositPerWallet.Sub(staked).String())
	}

	// Dry-run both reservations before applying either, so a reward
	// failure cannot leave capacity consumed.
	if pool.TotalStaked.Add(amount).GT(pool.MaxTotalStake) {
		return 0, errors.Wrapf(types.ErrPoolFull,
			"pool %dd: requested %s, remaining capacity %s",
			duration, amount.String(), pool.RemainingCapacity().String())
	}
	if pool.TotalRewardsPromised.Add(reward).GT(pool.TotalRewardsFunded) {
		return 0, errors.Wrapf(types.ErrUnderfundedPool,
			"pool %dd: reward %s, unpromised rewards %s",
			duration, reward.String(), pool.UnpromisedRewards().String())
	}

	if err := k.custody.TransferIn(types.LegCCOP, account, amount); err != nil {
		return 0, errors.Wrapf(types.ErrInsufficientBalance, "stake: %s", err)
	}

	if err := k.reserveCapacity(pool, amount); err != nil {
		return 0, err
	}
	if err := k.reserveReward(pool, reward); err != nil {
		return 0, err
	}

	now := k.now().Unix()
	pool.UpdatedAt = now
	stake := types.NewStake(account, amount, duration, now, reward)
	k.stakes[account] = append(k.stakes[account], stake)
	index := len(k.stakes[account]) - 1

	k.emit(types.NewEvent(types.EventStakeCreated, map[string]string{
		"owner":    account,
		"index":    strconv.Itoa(index),
		"stake_id": stake.StakeID,
		"amount":   amount.String(),
		"duration": strconv.FormatInt(duration, 10),
		"reward":   reward.String(),
	}))

	k.logger.Info("Stake created",
		"owner", account,
		"index", index,
		"amount", amount.String(),
		"duration", duration,
		"reward", reward.String(),
	)
	return index, nil
}

// Unstake settles a matured stake: principal plus reward minus the developer
// fee on the reward. Pool totals are not decremented — capacity consumption
// is permanent. The record stays at its index with Claimed set.
func (k *Keeper) Unstake(account string, index int) (userPayout, devFee math.Int, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	zero := math.ZeroInt()
	stakes := k.stakes[account]
	if index < 0 || index >= len(stakes) {
		return zero, zero, errors.Wrapf(types.ErrNotFound, "stake index %d for %s", index, account)
	}
	stake := stakes[index]
	if stake.Claimed {
		return zero, zero, errors.Wrapf(types.ErrAlreadyClaimed, "stake index %d", index)
	}

	now := k.now().Unix()
	if stake.Locked(now) {
		return zero, zero, errors.Wrapf(types.ErrLockNotEnded,
			"unlocks at %d, now %d", stake.UnlockTime(), now)
	}

	devFee, userReward := SplitOnReward(stake.Reward, k.params.RewardFeeBps)
	userPayout = stake.Amount.Add(userReward)

	if err := k.custody.TransferOut(types.LegCCOP, account, userPayout); err != nil {
		return zero, zero, errors.Wrapf(types.ErrInsufficientBalance, "unstake payout: %s", err)
	}
	if devFee.IsPositive() {
		if err := k.custody.TransferOut(types.LegCCOP, k.developer, devFee); err != nil {
			// Unwind the user leg so the call is all-or-nothing.
			if cerr := k.custody.TransferIn(types.LegCCOP, account, userPayout); cerr != nil {
				k.logger.Error("Unstake compensation failed",
					"owner", account, "index", index, "error", cerr)
			}
			return zero, zero, errors.Wrapf(types.ErrInsufficientBalance, "unstake dev fee: %s", err)
		}
	}

	stake.Claimed = true

	k.emit(types.NewEvent(types.EventStakeClaimed, map[string]string{
		"owner":       account,
		"index":       strconv.Itoa(index),
		"stake_id":    stake.StakeID,
		"duration":    strconv.FormatInt(stake.Duration, 10),
		"user_payout": userPayout.String(),
		"dev_fee":     devFee.String(),
	}))

	k.logger.Info("Stake claimed",
		"owner", account,
		"index", index,
		"user_payout", userPayout.String(),
		"dev_fee", devFee.String(),
	)
	return userPayout, devFee, nil
}

// totalStakedBy sums an account's stake principal across all pools,
// including claimed stakes (the wallet cap is a lifetime cap, matching the
// pools' own capacity semantics). Caller holds a lock.
func (k *Keeper) totalStakedBy(account string) math.Int {
	total := math.ZeroInt()
	for _, s := range k.stakes[account] {
		total = total.Add(s.Amount)
	}
	return total
}
