package api

import (
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/api/types"
	"github.com/openalpha/piggy-vault/x/vault/keeper"
)

// VaultService implements types.VaultService over the ledger keeper. The
// keeper serializes mutations; this layer only translates to wire DTOs.
type VaultService struct {
	keeper *keeper.Keeper
}

// NewVaultService creates a vault service over a keeper.
func NewVaultService(k *keeper.Keeper) *VaultService {
	return &VaultService{keeper: k}
}

func (s *VaultService) GetPools() ([]*types.PoolInfo, error) {
	pools := s.keeper.GetAllPools()
	infos := make([]*types.PoolInfo, 0, len(pools))
	for _, p := range pools {
		infos = append(infos, &types.PoolInfo{
			Duration:             p.Duration,
			RateBps:              p.RateBps,
			MaxTotalStake:        p.MaxTotalStake.String(),
			TotalStaked:          p.TotalStaked.String(),
			TotalRewardsFunded:   p.TotalRewardsFunded.String(),
			TotalRewardsPromised: p.TotalRewardsPromised.String(),
			RemainingCapacity:    p.RemainingCapacity().String(),
			UpdatedAt:            p.UpdatedAt,
		})
	}
	return infos, nil
}

func (s *VaultService) GetUserStakes(account string) ([]*types.StakeInfo, error) {
	stakes := s.keeper.GetUserStakes(account)
	infos := make([]*types.StakeInfo, 0, len(stakes))
	for i, st := range stakes {
		infos = append(infos, &types.StakeInfo{
			Index:     i,
			StakeID:   st.StakeID,
			Owner:     st.Owner,
			Amount:    st.Amount.String(),
			Duration:  st.Duration,
			StartTime: st.StartTime,
			UnlockAt:  st.UnlockTime(),
			Reward:    st.Reward.String(),
			Claimed:   st.Claimed,
		})
	}
	return infos, nil
}

func (s *VaultService) GetUserPiggies(account string) ([]*types.PiggyInfo, error) {
	piggies := s.keeper.GetUserPiggies(account)
	infos := make([]*types.PiggyInfo, 0, len(piggies))
	for i, p := range piggies {
		infos = append(infos, &types.PiggyInfo{
			Index:         i,
			PiggyID:       p.PiggyID,
			Owner:         p.Owner,
			InitialAmount: p.InitialAmount.String(),
			BaseAmount:    p.BaseAmount.String(),
			USDAmount:     p.USDAmount.String(),
			EURAmount:     p.EURAmount.String(),
			GBPAmount:     p.GBPAmount.String(),
			StartTime:     p.StartTime,
			Duration:      p.Duration,
			UnlockAt:      p.UnlockTime(),
			SafeMode:      p.SafeMode,
			Claimed:       p.Claimed,
		})
	}
	return infos, nil
}

func (s *VaultService) GetPiggyValue(account string, index int) (*types.PiggyValue, error) {
	value, err := s.keeper.GetPiggyValue(account, index)
	if err != nil {
		return nil, err
	}
	piggies := s.keeper.GetUserPiggies(account)
	initial := math.ZeroInt()
	if index >= 0 && index < len(piggies) {
		initial = piggies[index].InitialAmount
	}
	return &types.PiggyValue{
		Index:         index,
		InitialAmount: initial.String(),
		CurrentValue:  value.String(),
	}, nil
}

func (s *VaultService) EstimateStakeInterest(account string, index int) (*types.InterestEstimate, error) {
	interest, err := s.keeper.EstimateStakeInterest(account, index)
	if err != nil {
		return nil, err
	}
	return &types.InterestEstimate{Index: index, Interest: interest.String()}, nil
}

func (s *VaultService) Stake(account string, amount math.Int, duration int64) (*types.StakeResult, error) {
	index, err := s.keeper.Stake(account, amount, duration)
	if err != nil {
		return nil, err
	}
	stakes := s.keeper.GetUserStakes(account)
	reward := math.ZeroInt()
	if index < len(stakes) {
		reward = stakes[index].Reward
	}
	return &types.StakeResult{Index: index, Reward: reward.String()}, nil
}

func (s *VaultService) Unstake(account string, index int) (*types.SettlementResult, error) {
	userPayout, devFee, err := s.keeper.Unstake(account, index)
	if err != nil {
		return nil, err
	}
	return &types.SettlementResult{
		UserPayout: userPayout.String(),
		DevFee:     devFee.String(),
	}, nil
}

func (s *VaultService) Deposit(account string, amount math.Int, duration int64, safeMode bool) (*types.DepositResult, error) {
	index, err := s.keeper.Deposit(account, amount, duration, safeMode)
	if err != nil {
		return nil, err
	}
	return &types.DepositResult{Index: index}, nil
}

func (s *VaultService) Claim(account string, index int) (*types.SettlementResult, error) {
	userPayout, devFee, err := s.keeper.Claim(account, index)
	if err != nil {
		return nil, err
	}
	return &types.SettlementResult{
		UserPayout: userPayout.String(),
		DevFee:     devFee.String(),
	}, nil
}

func (s *VaultService) FundRewards(caller string, amount math.Int) error {
	return s.keeper.FundRewards(caller, amount)
}
