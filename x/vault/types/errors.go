package types

import (
	"cosmossdk.io/errors"
)

// Module error codes
var (
	ErrInvalidDuration     = errors.Register(ModuleName, 1, "invalid duration: must be 30, 60 or 90 days")
	ErrPoolFull            = errors.Register(ModuleName, 2, "pool is full")
	ErrUnderfundedPool     = errors.Register(ModuleName, 3, "not enough rewards funded in pool")
	ErrWalletCapExceeded   = errors.Register(ModuleName, 4, "exceeds max wallet deposit limit")
	ErrLockNotEnded        = errors.Register(ModuleName, 5, "lock period not ended")
	ErrAlreadyClaimed      = errors.Register(ModuleName, 6, "already claimed")
	ErrNotFound            = errors.Register(ModuleName, 7, "record not found")
	ErrUnauthorized        = errors.Register(ModuleName, 8, "unauthorized")
	ErrSwapFailed          = errors.Register(ModuleName, 9, "swap failed")
	ErrInsufficientBalance = errors.Register(ModuleName, 10, "insufficient balance")
	ErrInvalidAmount       = errors.Register(ModuleName, 11, "invalid amount")
	ErrBadAllocation       = errors.Register(ModuleName, 12, "oracle allocation does not sum to deposit amount")
)
