package types

import (
	"testing"

	"cosmossdk.io/math"
)

func TestValidDuration(t *testing.T) {
	for _, d := range []int64{30, 60, 90} {
		if !ValidDuration(d) {
			t.Errorf("%d should be valid", d)
		}
	}
	for _, d := range []int64{0, 1, 29, 31, 45, 91, -30} {
		if ValidDuration(d) {
			t.Errorf("%d should be invalid", d)
		}
	}
}

func TestRateBpsForDuration(t *testing.T) {
	testCases := []struct {
		duration int64
		expected int64
	}{
		{30, 125},
		{60, 302},
		{90, 612},
		{45, 0},
	}
	for _, tc := range testCases {
		if got := RateBpsForDuration(tc.duration); got != tc.expected {
			t.Errorf("duration %d: expected %d bps, got %d", tc.duration, tc.expected, got)
		}
	}
}

func TestNewStakingPool(t *testing.T) {
	pool := NewStakingPool(Duration60, MaxTotalStake60)

	if pool.RateBps != RateBps60 {
		t.Errorf("expected rate %d, got %d", RateBps60, pool.RateBps)
	}
	if !pool.TotalStaked.IsZero() || !pool.TotalRewardsFunded.IsZero() || !pool.TotalRewardsPromised.IsZero() {
		t.Error("new pool must start empty")
	}
	if !pool.RemainingCapacity().Equal(MaxTotalStake60) {
		t.Errorf("expected full capacity, got %s", pool.RemainingCapacity().String())
	}
	if !pool.UnpromisedRewards().IsZero() {
		t.Errorf("expected zero unpromised, got %s", pool.UnpromisedRewards().String())
	}
}

func TestStakeUnlock(t *testing.T) {
	start := int64(1_700_000_000)
	stake := NewStake("alice", NewAmountFromUnits(100), Duration30, start, NewAmountFromUnits(1))

	unlock := start + 30*86400
	if stake.UnlockTime() != unlock {
		t.Errorf("expected unlock %d, got %d", unlock, stake.UnlockTime())
	}
	if !stake.Locked(unlock - 1) {
		t.Error("expected locked one second before unlock")
	}
	if stake.Locked(unlock) {
		t.Error("expected unlocked at exact unlock time")
	}
}

func TestPiggyUnlock(t *testing.T) {
	start := int64(1_700_000_000)
	piggy := NewPiggy("alice", NewAmountFromUnits(100), Duration90, start, false,
		NewAmountFromUnits(40), NewAmountFromUnits(20), NewAmountFromUnits(20), NewAmountFromUnits(20))

	unlock := start + 90*86400
	if piggy.UnlockTime() != unlock {
		t.Errorf("expected unlock %d, got %d", unlock, piggy.UnlockTime())
	}
	if piggy.Locked(unlock + 1) {
		t.Error("expected unlocked after unlock time")
	}
}

func TestAllocationTotal(t *testing.T) {
	alloc := Allocation{
		Base: math.NewInt(40),
		USD:  math.NewInt(20),
		EUR:  math.NewInt(20),
		GBP:  math.NewInt(21),
	}
	if !alloc.Total().Equal(math.NewInt(101)) {
		t.Errorf("expected total 101, got %s", alloc.Total().String())
	}
}

func TestRecordIDs(t *testing.T) {
	a := NewStake("alice", NewAmountFromUnits(1), Duration30, 0, math.ZeroInt())
	b := NewStake("alice", NewAmountFromUnits(1), Duration30, 0, math.ZeroInt())
	if a.StakeID == b.StakeID {
		t.Error("stake IDs must be unique")
	}
	p := NewPiggy("alice", NewAmountFromUnits(1), Duration30, 0, false,
		math.ZeroInt(), math.ZeroInt(), math.ZeroInt(), math.ZeroInt())
	if p.PiggyID == a.StakeID {
		t.Error("piggy and stake IDs must not collide")
	}
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultParams().Validate(); err != nil {
		t.Errorf("default params invalid: %v", err)
	}

	p := DefaultParams()
	p.RewardFeeBps = 10001
	if err := p.Validate(); err == nil {
		t.Error("expected error for reward fee above 100%")
	}

	p = DefaultParams()
	p.ProfitFeeBps = -1
	if err := p.Validate(); err == nil {
		t.Error("expected error for negative profit fee")
	}

	p = DefaultParams()
	p.MaxDepositPerWallet = math.ZeroInt()
	if err := p.Validate(); err == nil {
		t.Error("expected error for zero wallet cap")
	}
}
