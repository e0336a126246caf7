package keeper

import (
	"errors"
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

func TestFundRewardsSplit(t *testing.T) {
	env := newTestEnv(t)
	amount := types.NewAmountFromUnits(1_000_000)
	env.custody.Mint(types.LegCCOP, testOwner, amount)

	if err := env.keeper.FundRewards(testOwner, amount); err != nil {
		t.Fatalf("fund rewards: %v", err)
	}

	expected := map[int64]math.Int{
		30: types.NewAmountFromUnits(400_000), // 40%
		60: types.NewAmountFromUnits(350_000), // 35%
		90: types.NewAmountFromUnits(250_000), // remainder
	}
	total := math.ZeroInt()
	for duration, want := range expected {
		pool, err := env.keeper.GetPool(duration)
		if err != nil {
			t.Fatalf("get pool %d: %v", duration, err)
		}
		if !pool.TotalRewardsFunded.Equal(want) {
			t.Errorf("pool %dd: expected funded %s, got %s",
				duration, want.String(), pool.TotalRewardsFunded.String())
		}
		total = total.Add(pool.TotalRewardsFunded)
	}
	if !total.Equal(amount) {
		t.Errorf("shares %s do not sum to funded amount %s", total.String(), amount.String())
	}

	// Funds moved from the owner into custody.
	if !env.balance(types.LegCCOP, testOwner).IsZero() {
		t.Errorf("owner still holds %s", env.balance(types.LegCCOP, testOwner).String())
	}
}

// TestFundRewardsRemainderSplit uses an amount that does not divide evenly;
// the 90-day pool absorbs the remainder.
func TestFundRewardsRemainderSplit(t *testing.T) {
	env := newTestEnv(t)
	amount := math.NewInt(101) // indivisible by the percentage split
	env.custody.Mint(types.LegCCOP, testOwner, amount)

	if err := env.keeper.FundRewards(testOwner, amount); err != nil {
		t.Fatalf("fund rewards: %v", err)
	}

	p30, _ := env.keeper.GetPool(30)
	p60, _ := env.keeper.GetPool(60)
	p90, _ := env.keeper.GetPool(90)

	if !p30.TotalRewardsFunded.Equal(math.NewInt(40)) {
		t.Errorf("30d share: expected 40, got %s", p30.TotalRewardsFunded.String())
	}
	if !p60.TotalRewardsFunded.Equal(math.NewInt(35)) {
		t.Errorf("60d share: expected 35, got %s", p60.TotalRewardsFunded.String())
	}
	if !p90.TotalRewardsFunded.Equal(math.NewInt(26)) {
		t.Errorf("90d share: expected 26, got %s", p90.TotalRewardsFunded.String())
	}
}

func TestFundRewardsGuards(t *testing.T) {
	env := newTestEnv(t)
	amount := types.NewAmountFromUnits(1000)
	env.mintTo(testUser, 1000)

	if err := env.keeper.FundRewards(testUser, amount); !errors.Is(err, types.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for non-owner, got %v", err)
	}
	if err := env.keeper.FundRewards(testOwner, math.ZeroInt()); !errors.Is(err, types.ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero, got %v", err)
	}
	// Owner without balance cannot fund.
	if err := env.keeper.FundRewards(testOwner, amount); !errors.Is(err, types.ErrInsufficientBalance) {
		t.Errorf("expected ErrInsufficientBalance, got %v", err)
	}
}
