package pool

import (
	"errors"

	"swapCore/internal/vault"
)

// Every transition failure maps to one of these. All are terminal: the
// engine never retries, and a failed transition leaves no state change.
var (
	ErrInvalidFee         = errors.New("fee basis points out of range")
	ErrPoolExists         = errors.New("pool already exists")
	ErrPoolNotFound       = errors.New("pool not found")
	ErrPoolLocked         = errors.New("pool is locked")
	ErrAssetMismatch      = errors.New("asset identity mismatch")
	ErrZeroAmount         = errors.New("amount must be greater than zero")
	ErrSlippageExceeded   = errors.New("slippage bound exceeded")
	ErrInsufficientShares = errors.New("insufficient share balance")
	// ErrInsufficientFunds is the ledger's own sentinel, re-exported so
	// callers match transition failures against this package alone.
	ErrInsufficientFunds  = vault.ErrInsufficientFunds
	ErrUnauthorized       = errors.New("caller is not the pool authority")
	ErrInvalidState       = errors.New("invalid pool state")
)
