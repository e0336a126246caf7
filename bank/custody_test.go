package bank

import (
	"testing"

	"cosmossdk.io/math"
)

func TestTransfer(t *testing.T) {
	c := NewCustody()
	c.Mint("cCOP", "alice", math.NewInt(1000))

	if err := c.Transfer("cCOP", "alice", "bob", math.NewInt(400)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if !c.Balance("cCOP", "alice").Equal(math.NewInt(600)) {
		t.Errorf("alice balance %s", c.Balance("cCOP", "alice").String())
	}
	if !c.Balance("cCOP", "bob").Equal(math.NewInt(400)) {
		t.Errorf("bob balance %s", c.Balance("cCOP", "bob").String())
	}
}

// TestTransferOverdraft verifies an uncovered transfer fails without
// mutating either side.
func TestTransferOverdraft(t *testing.T) {
	c := NewCustody()
	c.Mint("cCOP", "alice", math.NewInt(100))

	if err := c.Transfer("cCOP", "alice", "bob", math.NewInt(101)); err == nil {
		t.Fatal("expected overdraft error")
	}
	if !c.Balance("cCOP", "alice").Equal(math.NewInt(100)) {
		t.Errorf("alice mutated: %s", c.Balance("cCOP", "alice").String())
	}
	if !c.Balance("cCOP", "bob").IsZero() {
		t.Errorf("bob credited: %s", c.Balance("cCOP", "bob").String())
	}
}

func TestTransferValidation(t *testing.T) {
	c := NewCustody()
	c.Mint("cCOP", "alice", math.NewInt(100))

	if err := c.Transfer("cCOP", "alice", "bob", math.NewInt(-1)); err == nil {
		t.Error("expected error for negative amount")
	}
	// Zero transfers are a no-op, not an error.
	if err := c.Transfer("cCOP", "alice", "bob", math.ZeroInt()); err != nil {
		t.Errorf("zero transfer: %v", err)
	}
}

func TestVaultHelpers(t *testing.T) {
	c := NewCustody()
	c.Mint("cUSD", "alice", math.NewInt(50))

	if err := c.TransferIn("cUSD", "alice", math.NewInt(50)); err != nil {
		t.Fatalf("transfer in: %v", err)
	}
	if !c.Balance("cUSD", VaultAccount).Equal(math.NewInt(50)) {
		t.Errorf("vault balance %s", c.Balance("cUSD", VaultAccount).String())
	}

	if err := c.TransferOut("cUSD", "alice", math.NewInt(20)); err != nil {
		t.Fatalf("transfer out: %v", err)
	}
	if !c.Balance("cUSD", "alice").Equal(math.NewInt(20)) {
		t.Errorf("alice balance %s", c.Balance("cUSD", "alice").String())
	}

	// Legs are independent books.
	if !c.Balance("cCOP", "alice").IsZero() {
		t.Errorf("unexpected cCOP balance %s", c.Balance("cCOP", "alice").String())
	}
}
