package fx

import (
	"testing"

	"cosmossdk.io/math"
)

func TestSuggestAllocation(t *testing.T) {
	oracle := NewOracle()

	testCases := []struct {
		name     string
		amount   math.Int
		safeMode bool
		base     int64
		usd      int64
		eur      int64
		gbp      int64
	}{
		{
			name:   "normal mode 40/20/20/20",
			amount: math.NewInt(1000),
			base:   400, usd: 200, eur: 200, gbp: 200,
		},
		{
			name:     "safe mode 70/10/10/10",
			amount:   math.NewInt(1000),
			safeMode: true,
			base:     700, usd: 100, eur: 100, gbp: 100,
		},
		{
			name:   "remainder lands on the gbp leg",
			amount: math.NewInt(101),
			base:   40, usd: 20, eur: 20, gbp: 21,
		},
		{
			name:   "tiny amount",
			amount: math.NewInt(3),
			base:   1, usd: 0, eur: 0, gbp: 2,
		},
		{
			name:   "zero amount",
			amount: math.ZeroInt(),
			base:   0, usd: 0, eur: 0, gbp: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			alloc, err := oracle.SuggestAllocation(tc.amount, tc.safeMode)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !alloc.Base.Equal(math.NewInt(tc.base)) {
				t.Errorf("base: expected %d, got %s", tc.base, alloc.Base.String())
			}
			if !alloc.USD.Equal(math.NewInt(tc.usd)) {
				t.Errorf("usd: expected %d, got %s", tc.usd, alloc.USD.String())
			}
			if !alloc.EUR.Equal(math.NewInt(tc.eur)) {
				t.Errorf("eur: expected %d, got %s", tc.eur, alloc.EUR.String())
			}
			if !alloc.GBP.Equal(math.NewInt(tc.gbp)) {
				t.Errorf("gbp: expected %d, got %s", tc.gbp, alloc.GBP.String())
			}
			if !alloc.Total().Equal(tc.amount) {
				t.Errorf("legs sum to %s, expected %s", alloc.Total().String(), tc.amount.String())
			}
		})
	}
}

func TestSuggestAllocationNegative(t *testing.T) {
	oracle := NewOracle()
	if _, err := oracle.SuggestAllocation(math.NewInt(-1), false); err == nil {
		t.Error("expected error for negative amount")
	}
}

// TestAllocationConservationSweep sweeps awkward amounts in both modes.
func TestAllocationConservationSweep(t *testing.T) {
	oracle := NewOracle()
	for amount := int64(0); amount < 500; amount++ {
		for _, safeMode := range []bool{false, true} {
			alloc, err := oracle.SuggestAllocation(math.NewInt(amount), safeMode)
			if err != nil {
				t.Fatalf("amount %d: %v", amount, err)
			}
			if !alloc.Total().Equal(math.NewInt(amount)) {
				t.Fatalf("amount %d safe=%v: legs sum to %s", amount, safeMode, alloc.Total().String())
			}
			for _, leg := range []math.Int{alloc.Base, alloc.USD, alloc.EUR, alloc.GBP} {
				if leg.IsNegative() {
					t.Fatalf("amount %d safe=%v: negative leg", amount, safeMode)
				}
			}
		}
	}
}
