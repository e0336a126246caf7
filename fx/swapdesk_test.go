package fx

import (
	"testing"

	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/bank"
	"github.com/openalpha/piggy-vault/x/vault/types"
)

func TestQuote(t *testing.T) {
	desk := NewSwapDesk(bank.NewCustody())

	// Unconfigured pairs quote 1:1.
	out, err := desk.Quote(types.LegCCOP, types.LegCUSD, math.NewInt(500))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !out.Equal(math.NewInt(500)) {
		t.Errorf("expected 1:1 quote 500, got %s", out.String())
	}

	desk.SetRate(types.LegCCOP, types.LegCUSD, math.LegacyMustNewDecFromStr("0.00025"))
	out, err = desk.Quote(types.LegCCOP, types.LegCUSD, math.NewInt(1_000_000))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !out.Equal(math.NewInt(250)) {
		t.Errorf("expected 250, got %s", out.String())
	}

	// Rates are directional: the reverse pair stays 1:1.
	out, err = desk.Quote(types.LegCUSD, types.LegCCOP, math.NewInt(250))
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !out.Equal(math.NewInt(250)) {
		t.Errorf("reverse pair should be 1:1, got %s", out.String())
	}

	if _, err := desk.Quote(types.LegCCOP, types.LegCUSD, math.NewInt(-1)); err == nil {
		t.Error("expected error for negative amount")
	}
}

func TestSwapIn(t *testing.T) {
	custody := bank.NewCustody()
	desk := NewSwapDesk(custody)

	custody.Mint(types.LegCCOP, bank.VaultAccount, math.NewInt(1000))
	custody.Mint(types.LegCUSD, DeskAccount, math.NewInt(1000))

	out, err := desk.SwapIn(types.LegCCOP, types.LegCUSD, math.NewInt(400), math.ZeroInt())
	if err != nil {
		t.Fatalf("swap: %v", err)
	}
	if !out.Equal(math.NewInt(400)) {
		t.Errorf("expected 400 out, got %s", out.String())
	}

	// Settlement is conserved per leg.
	if !custody.Balance(types.LegCCOP, bank.VaultAccount).Equal(math.NewInt(600)) {
		t.Errorf("vault ccop %s", custody.Balance(types.LegCCOP, bank.VaultAccount).String())
	}
	if !custody.Balance(types.LegCCOP, DeskAccount).Equal(math.NewInt(400)) {
		t.Errorf("desk ccop %s", custody.Balance(types.LegCCOP, DeskAccount).String())
	}
	if !custody.Balance(types.LegCUSD, bank.VaultAccount).Equal(math.NewInt(400)) {
		t.Errorf("vault cusd %s", custody.Balance(types.LegCUSD, bank.VaultAccount).String())
	}
}

func TestSwapInMinOut(t *testing.T) {
	custody := bank.NewCustody()
	desk := NewSwapDesk(custody)
	custody.Mint(types.LegCCOP, bank.VaultAccount, math.NewInt(1000))

	desk.SetRate(types.LegCCOP, types.LegCUSD, math.LegacyMustNewDecFromStr("0.5"))

	_, err := desk.SwapIn(types.LegCCOP, types.LegCUSD, math.NewInt(100), math.NewInt(51))
	if err == nil {
		t.Fatal("expected min-out rejection")
	}
	// Rejected before any custody movement.
	if !custody.Balance(types.LegCCOP, bank.VaultAccount).Equal(math.NewInt(1000)) {
		t.Errorf("vault mutated on rejected swap: %s",
			custody.Balance(types.LegCCOP, bank.VaultAccount).String())
	}
}

// TestSwapInInventoryShortfall verifies the desk refunds the input leg when
// it cannot deliver the output leg.
func TestSwapInInventoryShortfall(t *testing.T) {
	custody := bank.NewCustody()
	desk := NewSwapDesk(custody)
	custody.Mint(types.LegCCOP, bank.VaultAccount, math.NewInt(1000))
	// Desk has no cUSD inventory.

	_, err := desk.SwapIn(types.LegCCOP, types.LegCUSD, math.NewInt(400), math.ZeroInt())
	if err == nil {
		t.Fatal("expected inventory failure")
	}
	if !custody.Balance(types.LegCCOP, bank.VaultAccount).Equal(math.NewInt(1000)) {
		t.Errorf("input leg not refunded: %s",
			custody.Balance(types.LegCCOP, bank.VaultAccount).String())
	}
}
