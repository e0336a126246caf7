package api

import (
	"testing"

	"cosmossdk.io/log"

	"github.com/openalpha/piggy-vault/bank"
	"github.com/openalpha/piggy-vault/fx"
	"github.com/openalpha/piggy-vault/x/vault/keeper"
	"github.com/openalpha/piggy-vault/x/vault/types"
)

func newTestService(t *testing.T) (*VaultService, *bank.Custody) {
	t.Helper()

	custody := bank.NewCustody()
	desk := fx.NewSwapDesk(custody)
	k := keeper.NewKeeper(custody, fx.NewOracle(), desk, types.DefaultParams(),
		"owner", "dev", log.NewNopLogger())
	return NewVaultService(k), custody
}

func TestGetPools(t *testing.T) {
	svc, _ := newTestService(t)

	pools, err := svc.GetPools()
	if err != nil {
		t.Fatalf("get pools: %v", err)
	}
	if len(pools) != 3 {
		t.Fatalf("expected 3 pools, got %d", len(pools))
	}

	// Ordered by duration with the committed full-period rates.
	expected := []struct {
		duration int64
		rateBps  int64
	}{
		{30, 125},
		{60, 302},
		{90, 612},
	}
	for i, want := range expected {
		if pools[i].Duration != want.duration {
			t.Errorf("pool %d: expected duration %d, got %d", i, want.duration, pools[i].Duration)
		}
		if pools[i].RateBps != want.rateBps {
			t.Errorf("pool %d: expected rate %d, got %d", i, want.rateBps, pools[i].RateBps)
		}
		if pools[i].TotalStaked != "0" {
			t.Errorf("pool %d: expected zero staked, got %s", i, pools[i].TotalStaked)
		}
	}
}

func TestStakeRoundTrip(t *testing.T) {
	svc, custody := newTestService(t)

	funding := types.NewAmountFromUnits(1_000_000)
	custody.Mint(types.LegCCOP, "owner", funding)
	if err := svc.FundRewards("owner", funding); err != nil {
		t.Fatalf("fund rewards: %v", err)
	}

	amount := types.NewAmountFromUnits(1000)
	custody.Mint(types.LegCCOP, "alice", amount)

	result, err := svc.Stake("alice", amount, 30)
	if err != nil {
		t.Fatalf("stake: %v", err)
	}
	if result.Index != 0 {
		t.Errorf("expected index 0, got %d", result.Index)
	}
	// 1.25% of 1000 cCOP at 18 decimals.
	if result.Reward != "12500000000000000000" {
		t.Errorf("expected reward 12.5 cCOP, got %s", result.Reward)
	}

	stakes, err := svc.GetUserStakes("alice")
	if err != nil {
		t.Fatalf("get stakes: %v", err)
	}
	if len(stakes) != 1 {
		t.Fatalf("expected 1 stake, got %d", len(stakes))
	}
	if stakes[0].Amount != amount.String() {
		t.Errorf("expected amount %s, got %s", amount.String(), stakes[0].Amount)
	}
	if stakes[0].UnlockAt != stakes[0].StartTime+30*86400 {
		t.Errorf("unlock %d inconsistent with start %d", stakes[0].UnlockAt, stakes[0].StartTime)
	}
}

func TestPiggyRoundTrip(t *testing.T) {
	svc, custody := newTestService(t)

	amount := types.NewAmountFromUnits(1000)
	custody.Mint(types.LegCCOP, "alice", amount)
	for _, leg := range []string{types.LegCUSD, types.LegCEUR, types.LegCGBP} {
		custody.Mint(leg, fx.DeskAccount, types.NewAmountFromUnits(10_000))
	}

	result, err := svc.Deposit("alice", amount, 60, true)
	if err != nil {
		t.Fatalf("deposit: %v", err)
	}

	piggies, err := svc.GetUserPiggies("alice")
	if err != nil {
		t.Fatalf("get piggies: %v", err)
	}
	if len(piggies) != 1 {
		t.Fatalf("expected 1 piggy, got %d", len(piggies))
	}
	if !piggies[0].SafeMode {
		t.Error("safe mode flag lost in translation")
	}

	value, err := svc.GetPiggyValue("alice", result.Index)
	if err != nil {
		t.Fatalf("piggy value: %v", err)
	}
	if value.InitialAmount != amount.String() {
		t.Errorf("expected initial %s, got %s", amount.String(), value.InitialAmount)
	}
	if value.CurrentValue != amount.String() {
		t.Errorf("expected flat-FX value %s, got %s", amount.String(), value.CurrentValue)
	}
}
