package keeper

import (
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/bank"
	"github.com/openalpha/piggy-vault/fx"
	"github.com/openalpha/piggy-vault/x/vault/types"
)

const (
	testOwner     = "owner"
	testDeveloper = "dev"
	testUser      = "alice"
)

// testClock is a controllable time source.
type testClock struct {
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Unix(1_700_000_000, 0)}
}

func (c *testClock) Now() time.Time {
	return c.now
}

func (c *testClock) AdvanceDays(days int64) {
	c.now = c.now.Add(time.Duration(days) * 24 * time.Hour)
}

// testEnv bundles a keeper with its collaborators.
type testEnv struct {
	keeper  *Keeper
	custody *bank.Custody
	desk    *fx.SwapDesk
	clock   *testClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	custody := bank.NewCustody()
	desk := fx.NewSwapDesk(custody)
	k := NewKeeper(custody, fx.NewOracle(), desk, types.DefaultParams(),
		testOwner, testDeveloper, log.NewNopLogger())

	clock := newTestClock()
	k.SetClock(clock.Now)

	return &testEnv{keeper: k, custody: custody, desk: desk, clock: clock}
}

// fundPools mints to the owner and funds the reward pools.
func (e *testEnv) fundPools(t *testing.T, units int64) {
	t.Helper()
	amount := types.NewAmountFromUnits(units)
	e.custody.Mint(types.LegCCOP, testOwner, amount)
	if err := e.keeper.FundRewards(testOwner, amount); err != nil {
		t.Fatalf("fund rewards: %v", err)
	}
}

// mintTo credits an account with base currency.
func (e *testEnv) mintTo(account string, units int64) {
	e.custody.Mint(types.LegCCOP, account, types.NewAmountFromUnits(units))
}

// stockDesk gives the swap desk inventory in every non-base leg.
func (e *testEnv) stockDesk(units int64) {
	for _, leg := range []string{types.LegCUSD, types.LegCEUR, types.LegCGBP} {
		e.custody.Mint(leg, fx.DeskAccount, types.NewAmountFromUnits(units))
	}
}

func (e *testEnv) balance(leg, account string) math.Int {
	return e.custody.Balance(leg, account)
}

// capturedEvents is an EventEmitter recording everything it receives.
type capturedEvents struct {
	events []types.Event
}

func (c *capturedEvents) Emit(event types.Event) {
	c.events = append(c.events, event)
}

func (c *capturedEvents) ofType(eventType string) []types.Event {
	var out []types.Event
	for _, e := range c.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

// failingSwapper wraps the real desk and fails one specific SwapIn call.
// Quote always delegates.
type failingSwapper struct {
	desk   *fx.SwapDesk
	failAt int // 1-based call number that fails
	calls  int
}

func (f *failingSwapper) Quote(legIn, legOut string, amountIn math.Int) (math.Int, error) {
	return f.desk.Quote(legIn, legOut, amountIn)
}

func (f *failingSwapper) SwapIn(legIn, legOut string, amountIn, minOut math.Int) (math.Int, error) {
	f.calls++
	if f.calls == f.failAt {
		return math.ZeroInt(), errTestSwapDown
	}
	return f.desk.SwapIn(legIn, legOut, amountIn, minOut)
}

var errTestSwapDown = &testSwapError{}

type testSwapError struct{}

func (e *testSwapError) Error() string { return "venue unavailable" }
