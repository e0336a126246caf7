package keeper

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

func TestSplitOnProfit(t *testing.T) {
	testCases := []struct {
		name         string
		profit       math.Int
		feeBps       int64
		expectedFee  math.Int
		expectedUser math.Int
	}{
		{
			name:         "5% of a round profit",
			profit:       types.NewAmountFromUnits(1000),
			feeBps:       500,
			expectedFee:  types.NewAmountFromUnits(50),
			expectedUser: types.NewAmountFromUnits(950),
		},
		{
			name:         "fee floors, user absorbs remainder",
			profit:       math.NewInt(999),
			feeBps:       500,
			expectedFee:  math.NewInt(49), // floor(999*0.05)
			expectedUser: math.NewInt(950),
		},
		{
			name:         "profit below fee granularity",
			profit:       math.NewInt(19),
			feeBps:       500,
			expectedFee:  math.ZeroInt(),
			expectedUser: math.NewInt(19),
		},
		{
			name:         "zero fee",
			profit:       types.NewAmountFromUnits(1000),
			feeBps:       0,
			expectedFee:  math.ZeroInt(),
			expectedUser: types.NewAmountFromUnits(1000),
		},
		{
			name:         "full fee",
			profit:       types.NewAmountFromUnits(1000),
			feeBps:       10000,
			expectedFee:  types.NewAmountFromUnits(1000),
			expectedUser: math.ZeroInt(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			devFee, userShare := SplitOnProfit(tc.profit, tc.feeBps)
			if !devFee.Equal(tc.expectedFee) {
				t.Errorf("expected dev fee %s, got %s", tc.expectedFee.String(), devFee.String())
			}
			if !userShare.Equal(tc.expectedUser) {
				t.Errorf("expected user share %s, got %s", tc.expectedUser.String(), userShare.String())
			}
		})
	}
}

// TestSplitConservation checks devFee + userShare == input across awkward
// amounts.
func TestSplitConservation(t *testing.T) {
	amounts := []math.Int{
		math.NewInt(1),
		math.NewInt(3),
		math.NewInt(7919),
		math.NewInt(999_999_999_999_999_999),
		types.NewAmountFromUnits(12_345_678),
	}

	for _, amount := range amounts {
		for _, feeBps := range []int64{1, 123, 500, 9999} {
			devFee, userShare := SplitOnReward(amount, feeBps)
			if !devFee.Add(userShare).Equal(amount) {
				t.Errorf("amount %s feeBps %d: fee %s + user %s != amount",
					amount.String(), feeBps, devFee.String(), userShare.String())
			}
			if devFee.IsNegative() || userShare.IsNegative() {
				t.Errorf("amount %s feeBps %d: negative split", amount.String(), feeBps)
			}
		}
	}
}
