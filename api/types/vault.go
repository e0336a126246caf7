// Package types defines the API service interfaces and wire DTOs. Amounts
// cross the wire as decimal strings; 18-decimal fixed-point values overflow
// JSON numbers.
package types

import "cosmossdk.io/math"

// VaultService defines the operations exposed over the API.
type VaultService interface {
	// Read views
	GetPools() ([]*PoolInfo, error)
	GetUserStakes(account string) ([]*StakeInfo, error)
	GetUserPiggies(account string) ([]*PiggyInfo, error)
	GetPiggyValue(account string, index int) (*PiggyValue, error)
	EstimateStakeInterest(account string, index int) (*InterestEstimate, error)

	// Staking operations
	Stake(account string, amount math.Int, duration int64) (*StakeResult, error)
	Unstake(account string, index int) (*SettlementResult, error)
	FundRewards(caller string, amount math.Int) error

	// Piggy operations
	Deposit(account string, amount math.Int, duration int64, safeMode bool) (*DepositResult, error)
	Claim(account string, index int) (*SettlementResult, error)
}

// PoolInfo describes one staking pool.
type PoolInfo struct {
	Duration             int64  `json:"duration"`
	RateBps              int64  `json:"rate_bps"`
	MaxTotalStake        string `json:"max_total_stake"`
	TotalStaked          string `json:"total_staked"`
	TotalRewardsFunded   string `json:"total_rewards_funded"`
	TotalRewardsPromised string `json:"total_rewards_promised"`
	RemainingCapacity    string `json:"remaining_capacity"`
	UpdatedAt            int64  `json:"updated_at"`
}

// StakeInfo describes one stake record.
type StakeInfo struct {
	Index     int    `json:"index"`
	StakeID   string `json:"stake_id"`
	Owner     string `json:"owner"`
	Amount    string `json:"amount"`
	Duration  int64  `json:"duration"`
	StartTime int64  `json:"start_time"`
	UnlockAt  int64  `json:"unlock_at"`
	Reward    string `json:"reward"`
	Claimed   bool   `json:"claimed"`
}

// PiggyInfo describes one piggy record.
type PiggyInfo struct {
	Index         int    `json:"index"`
	PiggyID       string `json:"piggy_id"`
	Owner         string `json:"owner"`
	InitialAmount string `json:"initial_amount"`
	BaseAmount    string `json:"base_amount"`
	USDAmount     string `json:"usd_amount"`
	EURAmount     string `json:"eur_amount"`
	GBPAmount     string `json:"gbp_amount"`
	StartTime     int64  `json:"start_time"`
	Duration      int64  `json:"duration"`
	UnlockAt      int64  `json:"unlock_at"`
	SafeMode      bool   `json:"safe_mode"`
	Claimed       bool   `json:"claimed"`
}

// PiggyValue is the current re-quoted value of a piggy.
type PiggyValue struct {
	Index         int    `json:"index"`
	InitialAmount string `json:"initial_amount"`
	CurrentValue  string `json:"current_value"`
}

// InterestEstimate previews accrued interest on an active stake.
type InterestEstimate struct {
	Index    int    `json:"index"`
	Interest string `json:"interest"`
}

// StakeResult is the response to a stake request.
type StakeResult struct {
	Index  int    `json:"index"`
	Reward string `json:"reward"`
}

// DepositResult is the response to a deposit request.
type DepositResult struct {
	Index int `json:"index"`
}

// SettlementResult is the response to an unstake or claim request.
type SettlementResult struct {
	UserPayout string `json:"user_payout"`
	DevFee     string `json:"dev_fee"`
}
