package keeper

import (
	"cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Monthly compound rates per pool, in basis points. These reproduce the
// committed full-period yields exactly: (1.0125)^1 = 1.0125,
// (1.015)^2 = 1.030225, (1.02)^3 = 1.061208.
const (
	monthlyRateBps30 = int64(125)
	monthlyRateBps60 = int64(150)
	monthlyRateBps90 = int64(200)

	bpsDenominator = int64(10000)
	daysPerPeriod  = int64(30)
)

func monthlyRateBps(duration int64) int64 {
	switch duration {
	case types.Duration30:
		return monthlyRateBps30
	case types.Duration60:
		return monthlyRateBps60
	case types.Duration90:
		return monthlyRateBps90
	}
	return 0
}

// compoundRatio returns ((denom+bps)^periods, denom^periods). Integer-exact;
// callers divide at the end so rounding (toward zero) happens once.
func compoundRatio(bps, periods int64) (num, den math.Int) {
	num = math.OneInt()
	den = math.OneInt()
	growth := math.NewInt(bpsDenominator + bps)
	base := math.NewInt(bpsDenominator)
	for i := int64(0); i < periods; i++ {
		num = num.Mul(growth)
		den = den.Mul(base)
	}
	return num, den
}

// CalculateCompoundInterest returns the full-period compound interest for a
// principal locked for days (a valid pool duration). Pure function; rounds
// toward zero.
func CalculateCompoundInterest(principal math.Int, days int64) (math.Int, error) {
	if !types.ValidDuration(days) {
		return math.ZeroInt(), errors.Wrapf(types.ErrInvalidDuration, "%d days", days)
	}
	if principal.IsNil() || principal.IsNegative() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "principal must be non-negative")
	}

	periods := days / daysPerPeriod
	num, den := compoundRatio(monthlyRateBps(days), periods)

	// principal * (num - den) / den, floor division
	return principal.Mul(num.Sub(den)).Quo(den), nil
}

// CalculateInterestForDays returns a proportional interest estimate for
// daysElapsed of a duration-day lock: full compounding for each complete
// 30-day period, linear accrual of the monthly rate inside the running
// period. Equals CalculateCompoundInterest exactly when daysElapsed ==
// duration, and is strictly below it for any shorter elapsed time. Preview
// only; settlement always pays the reward fixed at stake creation.
func CalculateInterestForDays(principal math.Int, duration, daysElapsed int64) (math.Int, error) {
	if !types.ValidDuration(duration) {
		return math.ZeroInt(), errors.Wrapf(types.ErrInvalidDuration, "%d days", duration)
	}
	if principal.IsNil() || principal.IsNegative() {
		return math.ZeroInt(), errors.Wrap(types.ErrInvalidAmount, "principal must be non-negative")
	}
	if daysElapsed < 0 || daysElapsed > duration {
		return math.ZeroInt(), errors.Wrapf(types.ErrInvalidAmount,
			"days elapsed %d outside [0, %d]", daysElapsed, duration)
	}

	bps := monthlyRateBps(duration)
	completePeriods := daysElapsed / daysPerPeriod
	remDays := daysElapsed % daysPerPeriod

	num, den := compoundRatio(bps, completePeriods)

	// Interest from the complete periods.
	interest := principal.Mul(num.Sub(den)).Quo(den)

	if remDays > 0 {
		// Linear accrual on the grown principal:
		// grown * bps/10000 * remDays/30
		grown := principal.Mul(num).Quo(den)
		partial := grown.Mul(math.NewInt(bps)).Mul(math.NewInt(remDays)).
			Quo(math.NewInt(bpsDenominator * daysPerPeriod))
		interest = interest.Add(partial)
	}
	return interest, nil
}
