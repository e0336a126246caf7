package keeper

import (
	"strconv"

	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// legSwap pairs a leg name with the amount held in it.
type legSwap struct {
	leg    string
	amount math.Int
}

// Deposit diversifies amount of base currency across the FX legs at the
// oracle-suggested allocation and returns the index of the new piggy record.
// The multi-leg swap sequence is a saga: any leg failure swaps the completed
// legs back and refunds the caller, so no partial diversification ever
// persists.
func (k *Keeper) Deposit(account string, amount math.Int, duration int64, safeMode bool) (int, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !types.ValidDuration(duration) {
		return 0, errors.Wrapf(types.ErrInvalidDuration, "%d days", duration)
	}
	if amount.IsNil() || !amount.IsPositive() {
		return 0, errors.Wrap(types.ErrInvalidAmount, "deposit amount must be positive")
	}

	if err := k.custody.TransferIn(types.LegCCOP, account, amount); err != nil {
		return 0, errors.Wrapf(types.ErrInsufficientBalance, "deposit: %s", err)
	}

	alloc, err := k.oracle.SuggestAllocation(amount, safeMode)
	if err != nil {
		k.refundDeposit(account, amount)
		return 0, errors.Wrapf(types.ErrSwapFailed, "allocation oracle: %s", err)
	}
	if !alloc.Total().Equal(amount) {
		k.refundDeposit(account, amount)
		return 0, errors.Wrapf(types.ErrBadAllocation,
			"allocated %s for deposit %s", alloc.Total().String(), amount.String())
	}

	// Swap each non-base leg; the base leg is held directly. Completed
	// swaps are tracked so a later failure can unwind them.
	targets := []legSwap{
		{types.LegCUSD, alloc.USD},
		{types.LegCEUR, alloc.EUR},
		{types.LegCGBP, alloc.GBP},
	}
	received := make([]legSwap, 0, len(targets))
	for _, t := range targets {
		if t.amount.IsZero() {
			received = append(received, legSwap{t.leg, math.ZeroInt()})
			continue
		}
		out, err := k.swapper.SwapIn(types.LegCCOP, t.leg, t.amount, math.ZeroInt())
		if err != nil {
			k.unwindSwaps(received)
			k.refundDeposit(account, amount)
			return 0, errors.Wrapf(types.ErrSwapFailed, "%s->%s: %s", types.LegCCOP, t.leg, err)
		}
		received = append(received, legSwap{t.leg, out})
	}

	now := k.now().Unix()
	piggy := types.NewPiggy(account, amount, duration, now, safeMode,
		alloc.Base, received[0].amount, received[1].amount, received[2].amount)
	k.piggies[account] = append(k.piggies[account], piggy)
	index := len(k.piggies[account]) - 1

	k.emit(types.NewEvent(types.EventPiggyCreated, map[string]string{
		"owner":       account,
		"index":       strconv.Itoa(index),
		"piggy_id":    piggy.PiggyID,
		"amount":      amount.String(),
		"duration":    strconv.FormatInt(duration, 10),
		"safe_mode":   strconv.FormatBool(safeMode),
		"base_amount": alloc.Base.String(),
	}))

	k.logger.Info("Piggy created",
		"owner", account,
		"index", index,
		"amount", amount.String(),
		"duration", duration,
		"safe_mode", safeMode,
	)
	return index, nil
}

// Claim liquidates every non-base leg back to base currency, takes the
// developer fee from positive profit, and pays out the rest. A failed
// liquidation swaps the already-liquidated legs back so the piggy stays
// intact and claimable.
func (k *Keeper) Claim(account string, index int) (userPayout, devFee math.Int, err error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	zero := math.ZeroInt()
	piggies := k.piggies[account]
	if index < 0 || index >= len(piggies) {
		return zero, zero, errors.Wrapf(types.ErrNotFound, "piggy index %d for %s", index, account)
	}
	piggy := piggies[index]
	if piggy.Claimed {
		return zero, zero, errors.Wrapf(types.ErrAlreadyClaimed, "piggy index %d", index)
	}

	now := k.now().Unix()
	if piggy.Locked(now) {
		return zero, zero, errors.Wrapf(types.ErrLockNotEnded,
			"unlocks at %d, now %d", piggy.UnlockTime(), now)
	}

	legs := []legSwap{
		{types.LegCUSD, piggy.USDAmount},
		{types.LegCEUR, piggy.EURAmount},
		{types.LegCGBP, piggy.GBPAmount},
	}
	returned := piggy.BaseAmount
	liquidated := make([]legSwap, 0, len(legs))
	for _, l := range legs {
		if l.amount.IsZero() {
			continue
		}
		out, err := k.swapper.SwapIn(l.leg, types.LegCCOP, l.amount, math.ZeroInt())
		if err != nil {
			k.rewindLiquidation(liquidated)
			return zero, zero, errors.Wrapf(types.ErrSwapFailed, "%s->%s: %s", l.leg, types.LegCCOP, err)
		}
		liquidated = append(liquidated, legSwap{l.leg, out})
		returned = returned.Add(out)
	}

	profit := returned.Sub(piggy.InitialAmount)
	devFee = math.ZeroInt()
	if profit.IsPositive() {
		devFee, _ = SplitOnProfit(profit, k.params.ProfitFeeBps)
	}
	userPayout = returned.Sub(devFee)

	if err := k.custody.TransferOut(types.LegCCOP, account, userPayout); err != nil {
		return zero, zero, errors.Wrapf(types.ErrInsufficientBalance, "claim payout: %s", err)
	}
	if devFee.IsPositive() {
		if err := k.custody.TransferOut(types.LegCCOP, k.developer, devFee); err != nil {
			if cerr := k.custody.TransferIn(types.LegCCOP, account, userPayout); cerr != nil {
				k.logger.Error("Claim compensation failed",
					"owner", account, "index", index, "error", cerr)
			}
			return zero, zero, errors.Wrapf(types.ErrInsufficientBalance, "claim dev fee: %s", err)
		}
	}

	piggy.Claimed = true

	k.emit(types.NewEvent(types.EventPiggyClaimed, map[string]string{
		"owner":       account,
		"index":       strconv.Itoa(index),
		"piggy_id":    piggy.PiggyID,
		"safe_mode":   strconv.FormatBool(piggy.SafeMode),
		"returned":    returned.String(),
		"user_payout": userPayout.String(),
		"dev_fee":     devFee.String(),
	}))

	k.logger.Info("Piggy claimed",
		"owner", account,
		"index", index,
		"returned", returned.String(),
		"user_payout", userPayout.String(),
		"dev_fee", devFee.String(),
	)
	return userPayout, devFee, nil
}

// GetPiggyValue re-quotes the current base-currency value of a piggy without
// executing swaps. Read-only.
func (k *Keeper) GetPiggyValue(account string, index int) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.quotePiggyValue(account, index)
}

// EstimateReturn is an alias view over the same re-quote, matching the
// original contract's estimate call.
func (k *Keeper) EstimateReturn(account string, index int) (math.Int, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.quotePiggyValue(account, index)
}

// quotePiggyValue sums leg quotes plus the held base leg. Caller holds a
// lock.
func (k *Keeper) quotePiggyValue(account string, index int) (math.Int, error) {
	piggies := k.piggies[account]
	if index < 0 || index >= len(piggies) {
		return math.ZeroInt(), errors.Wrapf(types.ErrNotFound, "piggy index %d for %s", index, account)
	}
	piggy := piggies[index]

	value := piggy.BaseAmount
	for _, l := range []legSwap{
		{types.LegCUSD, piggy.USDAmount},
		{types.LegCEUR, piggy.EURAmount},
		{types.LegCGBP, piggy.GBPAmount},
	} {
		if l.amount.IsZero() {
			continue
		}
		out, err := k.swapper.Quote(l.leg, types.LegCCOP, l.amount)
		if err != nil {
			return math.ZeroInt(), errors.Wrapf(types.ErrSwapFailed, "quote %s->%s: %s", l.leg, types.LegCCOP, err)
		}
		value = value.Add(out)
	}
	return value, nil
}

// refundDeposit returns a failed deposit's base amount to the caller.
// Best-effort compensation; failures are logged, not returned, because the
// original error is the one the caller needs.
func (k *Keeper) refundDeposit(account string, amount math.Int) {
	if err := k.custody.TransferOut(types.LegCCOP, account, amount); err != nil {
		k.logger.Error("Deposit refund failed", "account", account, "amount", amount.String(), "error", err)
	}
}

// unwindSwaps converts already-acquired legs back to base currency after a
// failed diversification.
func (k *Keeper) unwindSwaps(done []legSwap) {
	for _, s := range done {
		if s.amount.IsZero() {
			continue
		}
		if _, err := k.swapper.SwapIn(s.leg, types.LegCCOP, s.amount, math.ZeroInt()); err != nil {
			k.logger.Error("Swap unwind failed", "leg", s.leg, "amount", s.amount.String(), "error", err)
		}
	}
}

// rewindLiquidation re-buys legs that were liquidated before a claim failed,
// restoring the piggy's holdings.
func (k *Keeper) rewindLiquidation(done []legSwap) {
	for _, s := range done {
		if s.amount.IsZero() {
			continue
		}
		if _, err := k.swapper.SwapIn(types.LegCCOP, s.leg, s.amount, math.ZeroInt()); err != nil {
			k.logger.Error("Liquidation rewind failed", "leg", s.leg, "amount", s.amount.String(), "error", err)
		}
	}
}
