package keeper

import (
	"cosmossdk.io/math"
)

// SplitOnProfit splits positive FX profit between the developer and the
// user. devFee is floored, so userShare absorbs the rounding remainder and
// devFee + userShare == profit exactly.
func SplitOnProfit(profit math.Int, feeBps int64) (devFee, userShare math.Int) {
	devFee = profit.Mul(math.NewInt(feeBps)).Quo(math.NewInt(bpsDenominator))
	userShare = profit.Sub(devFee)
	return devFee, userShare
}

// SplitOnReward splits a promised stake reward between the developer and the
// user. Same conservation guarantee as SplitOnProfit; rewards are always
// non-negative by construction.
func SplitOnReward(reward math.Int, feeBps int64) (devFee, userShare math.Int) {
	return SplitOnProfit(reward, feeBps)
}
