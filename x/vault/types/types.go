package types

import (
	"time"

	"cosmossdk.io/math"
	"github.com/google/uuid"
)

// Module name
const (
	ModuleName = "vault"
)

// Valid lock durations in days
const (
	Duration30 = int64(30)
	Duration60 = int64(60)
	Duration90 = int64(90)
)

// Currency legs. cCOP is the base currency; the other three are the
// diversification legs.
const (
	LegCCOP = "cCOP"
	LegCUSD = "cUSD"
	LegCEUR = "cEUR"
	LegCGBP = "cGBP"
)

// Pool yield rates in basis points of the full lock period.
const (
	RateBps30 = int64(125)
	RateBps60 = int64(302)
	RateBps90 = int64(612)
)

// Pool capacity ceilings, 18-decimal fixed point.
var (
	MaxTotalStake30 = NewAmountFromUnits(3_200_000_000)
	MaxTotalStake60 = NewAmountFromUnits(1_157_981_803)
	MaxTotalStake90 = NewAmountFromUnits(408_443_341)
)

// AmountScale is the fixed-point scale shared with the on-chain token (18
// decimals).
var AmountScale = math.NewIntWithDecimal(1, 18)

// NewAmountFromUnits returns units scaled to 18-decimal fixed point.
func NewAmountFromUnits(units int64) math.Int {
	return math.NewInt(units).Mul(AmountScale)
}

// ValidDuration reports whether d is one of the three supported lock
// durations.
func ValidDuration(d int64) bool {
	return d == Duration30 || d == Duration60 || d == Duration90
}

// RateBpsForDuration returns the committed full-period yield for a pool.
func RateBpsForDuration(d int64) int64 {
	switch d {
	case Duration30:
		return RateBps30
	case Duration60:
		return RateBps60
	case Duration90:
		return RateBps90
	}
	return 0
}

// StakingPool tracks capacity and reward solvency for one fixed duration.
type StakingPool struct {
	Duration      int64    `json:"duration"` // days
	RateBps       int64    `json:"rate_bps"` // full-period yield
	MaxTotalStake math.Int `json:"max_total_stake"`

	// TotalStaked is never decremented: capacity is a lifetime cap, not a
	// concurrent-exposure cap. Unstaking does not free it.
	TotalStaked          math.Int `json:"total_staked"`
	TotalRewardsFunded   math.Int `json:"total_rewards_funded"`
	TotalRewardsPromised math.Int `json:"total_rewards_promised"`

	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// NewStakingPool creates a pool for one of the fixed durations.
func NewStakingPool(duration int64, maxTotalStake math.Int) *StakingPool {
	now := time.Now().Unix()
	return &StakingPool{
		Duration:             duration,
		RateBps:              RateBpsForDuration(duration),
		MaxTotalStake:        maxTotalStake,
		TotalStaked:          math.ZeroInt(),
		TotalRewardsFunded:   math.ZeroInt(),
		TotalRewardsPromised: math.ZeroInt(),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
}

// RemainingCapacity returns how much principal the pool can still accept.
func (p *StakingPool) RemainingCapacity() math.Int {
	return p.MaxTotalStake.Sub(p.TotalStaked)
}

// UnpromisedRewards returns the funded rewards not yet committed to stakers.
func (p *StakingPool) UnpromisedRewards() math.Int {
	return p.TotalRewardsFunded.Sub(p.TotalRewardsPromised)
}

// Stake is one fixed-term deposit. Records are append-only; Claimed flips
// once and the record stays at its index forever.
type Stake struct {
	StakeID   string   `json:"stake_id"`
	Owner     string   `json:"owner"`
	Amount    math.Int `json:"amount"`
	Duration  int64    `json:"duration"` // days
	StartTime int64    `json:"start_time"`
	Reward    math.Int `json:"reward"` // fixed at creation
	Claimed   bool     `json:"claimed"`
}

// NewStake creates an active stake record.
func NewStake(owner string, amount math.Int, duration, startTime int64, reward math.Int) *Stake {
	return &Stake{
		StakeID:   generateID("stk"),
		Owner:     owner,
		Amount:    amount,
		Duration:  duration,
		StartTime: startTime,
		Reward:    reward,
		Claimed:   false,
	}
}

// UnlockTime returns the unix time at which the stake can be claimed.
func (s *Stake) UnlockTime() int64 {
	return s.StartTime + s.Duration*86400
}

// Locked reports whether the lock period is still running at the given time.
func (s *Stake) Locked(now int64) bool {
	return now < s.UnlockTime()
}

// Allocation is a 4-way split of a base-currency amount across the legs.
// The legs always sum exactly to the allocated total; the last leg absorbs
// integer-division remainder.
type Allocation struct {
	Base math.Int `json:"base"`
	USD  math.Int `json:"usd"`
	EUR  math.Int `json:"eur"`
	GBP  math.Int `json:"gbp"`
}

// Total returns the sum of all four legs.
func (a Allocation) Total() math.Int {
	return a.Base.Add(a.USD).Add(a.EUR).Add(a.GBP)
}

// Piggy is one diversified deposit. Leg amounts are fixed at creation; there
// is no rebalancing. Claimed flips once at claim time.
type Piggy struct {
	PiggyID       string   `json:"piggy_id"`
	Owner         string   `json:"owner"`
	InitialAmount math.Int `json:"initial_amount"`

	// Leg balances held by the vault. BaseAmount is kept in cCOP; the
	// others are denominated in their own leg currency.
	BaseAmount math.Int `json:"base_amount"`
	USDAmount  math.Int `json:"usd_amount"`
	EURAmount  math.Int `json:"eur_amount"`
	GBPAmount  math.Int `json:"gbp_amount"`

	StartTime int64 `json:"start_time"`
	Duration  int64 `json:"duration"` // days
	SafeMode  bool  `json:"safe_mode"`
	Claimed   bool  `json:"claimed"`
}

// NewPiggy creates an active piggy record from the executed leg balances.
func NewPiggy(owner string, initialAmount math.Int, duration, startTime int64, safeMode bool, base, usd, eur, gbp math.Int) *Piggy {
	return &Piggy{
		PiggyID:       generateID("pgy"),
		Owner:         owner,
		InitialAmount: initialAmount,
		BaseAmount:    base,
		USDAmount:     usd,
		EURAmount:     eur,
		GBPAmount:     gbp,
		StartTime:     startTime,
		Duration:      duration,
		SafeMode:      safeMode,
		Claimed:       false,
	}
}

// UnlockTime returns the unix time at which the piggy can be claimed.
func (p *Piggy) UnlockTime() int64 {
	return p.StartTime + p.Duration*86400
}

// Locked reports whether the lock period is still running at the given time.
func (p *Piggy) Locked(now int64) bool {
	return now < p.UnlockTime()
}

// Event is a ledger lifecycle event, fanned out to the websocket hub, the
// recorder and the metrics collector.
type Event struct {
	Type       string            `json:"type"`
	Attributes map[string]string `json:"attributes"`
	Timestamp  int64             `json:"timestamp"`
}

// Event types
const (
	EventStakeCreated  = "stake_created"
	EventStakeClaimed  = "stake_claimed"
	EventPiggyCreated  = "piggy_created"
	EventPiggyClaimed  = "piggy_claimed"
	EventRewardsFunded = "rewards_funded"
)

// NewEvent creates a timestamped event.
func NewEvent(eventType string, attrs map[string]string) Event {
	return Event{
		Type:       eventType,
		Attributes: attrs,
		Timestamp:  time.Now().Unix(),
	}
}

// EventEmitter receives ledger lifecycle events. Implementations must not
// block: emission happens inside the ledger critical section.
type EventEmitter interface {
	Emit(event Event)
}

// generateID generates a unique record ID with a prefix. The ID is for
// event/audit correlation only; lookups use the per-account array index.
func generateID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
