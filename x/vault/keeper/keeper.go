package keeper

import (
	"sync"
	"time"

	"cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/openalpha/piggy-vault/x/vault/types"
)

// Custody defines the expected interface for base/leg currency movement.
// TransferIn pulls from an account into vault custody; TransferOut pays out.
type Custody interface {
	TransferIn(leg, account string, amount math.Int) error
	TransferOut(leg, account string, amount math.Int) error
}

// AllocationOracle defines the expected interface for the FX allocation
// oracle. The returned legs must sum exactly to totalAmount.
type AllocationOracle interface {
	SuggestAllocation(totalAmount math.Int, safeMode bool) (types.Allocation, error)
}

// SwapExecutor defines the expected interface for the swap broker. SwapIn
// moves amountIn of legIn out of vault custody and credits the received
// legOut amount back.
type SwapExecutor interface {
	Quote(legIn, legOut string, amountIn math.Int) (math.Int, error)
	SwapIn(legIn, legOut string, amountIn, minOut math.Int) (math.Int, error)
}

// Keeper owns the staking-pool, stake and piggy ledgers. Every mutating
// operation runs under the write lock for its full check+apply sequence, so
// capacity/solvency checks and their increments are never observed
// half-applied. Read views take the read lock and see a consistent snapshot.
type Keeper struct {
	mu sync.RWMutex

	pools   map[int64]*types.StakingPool
	stakes  map[string][]*types.Stake
	piggies map[string][]*types.Piggy

	custody Custody
	oracle  AllocationOracle
	swapper SwapExecutor

	params    types.Params
	authority string // owner account, may fund rewards
	developer string // fee recipient

	emitter types.EventEmitter
	logger  log.Logger

	// now is sampled once per operation.
	now func() time.Time
}

// NewKeeper creates a vault keeper with the three pools bootstrapped at
// their fixed capacities. Capacities are design constants, not derived at
// runtime.
func NewKeeper(
	custody Custody,
	oracle AllocationOracle,
	swapper SwapExecutor,
	params types.Params,
	authority string,
	developer string,
	logger log.Logger,
) *Keeper {
	k := &Keeper{
		pools:     make(map[int64]*types.StakingPool),
		stakes:    make(map[string][]*types.Stake),
		piggies:   make(map[string][]*types.Piggy),
		custody:   custody,
		oracle:    oracle,
		swapper:   swapper,
		params:    params,
		authority: authority,
		developer: developer,
		logger:    logger.With("module", "x/"+types.ModuleName),
		now:       time.Now,
	}
	k.initPools()
	return k
}

// SetClock overrides the time source. Test hook.
func (k *Keeper) SetClock(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// Now returns the keeper's current time.
func (k *Keeper) Now() time.Time {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.now()
}

// SetEventEmitter attaches a lifecycle event sink.
func (k *Keeper) SetEventEmitter(emitter types.EventEmitter) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.emitter = emitter
}

// Logger returns the module logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger
}

// GetAuthority returns the owner account.
func (k *Keeper) GetAuthority() string {
	return k.authority
}

// GetParams returns the ledger params.
func (k *Keeper) GetParams() types.Params {
	return k.params
}

// initPools creates the three fixed-duration pools. Called once at
// construction.
func (k *Keeper) initPools() {
	k.pools[types.Duration30] = types.NewStakingPool(types.Duration30, types.MaxTotalStake30)
	k.pools[types.Duration60] = types.NewStakingPool(types.Duration60, types.MaxTotalStake60)
	k.pools[types.Duration90] = types.NewStakingPool(types.Duration90, types.MaxTotalStake90)
	k.logger.Info("Initialized staking pools",
		"pool_30d_cap", types.MaxTotalStake30.String(),
		"pool_60d_cap", types.MaxTotalStake60.String(),
		"pool_90d_cap", types.MaxTotalStake90.String(),
	)
}

// emit fans an event out to the attached sink, if any.
func (k *Keeper) emit(event types.Event) {
	if k.emitter != nil {
		k.emitter.Emit(event)
	}
}

// reserveCapacity checks and consumes pool capacity. Caller holds the write
// lock.
func (k *Keeper) reserveCapacity(pool *types.StakingPool, amount math.Int) error {
	if pool.TotalStaked.Add(amount).GT(pool.MaxTotalStake) {
		return errors.Wrapf(types.ErrPoolFull,
			"pool %dd: requested %s, remaining capacity %s",
			pool.Duration, amount.String(), pool.RemainingCapacity().String())
	}
	pool.TotalStaked = pool.TotalStaked.Add(amount)
	return nil
}

// reserveReward checks solvency and commits reward liability. Caller holds
// the write lock.
func (k *Keeper) reserveReward(pool *types.StakingPool, reward math.Int) error {
	if pool.TotalRewardsPromised.Add(reward).GT(pool.TotalRewardsFunded) {
		return errors.Wrapf(types.ErrUnderfundedPool,
			"pool %dd: reward %s, unpromised rewards %s",
			pool.Duration, reward.String(), pool.UnpromisedRewards().String())
	}
	pool.TotalRewardsPromised = pool.TotalRewardsPromised.Add(reward)
	return nil
}
