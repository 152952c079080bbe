package model

import "github.com/ethereum/go-ethereum/common"

// Transition kinds recorded in the journal.
const (
	TransitionCreate   = "create"
	TransitionDeposit  = "deposit"
	TransitionWithdraw = "withdraw"
	TransitionSwap     = "swap"
	TransitionLock     = "lock"
)

// TransitionRecord is the journal receipt for one applied transition.
type TransitionRecord struct {
	Kind      string         `json:"kind"`
	PoolID    common.Hash    `json:"pool_id"`
	Actor     common.Address `json:"actor"`
	AmountA   uint64         `json:"amount_a,omitempty"`
	AmountB   uint64         `json:"amount_b,omitempty"`
	Shares    uint64         `json:"shares,omitempty"`
	AssetIn   common.Hash    `json:"asset_in,omitempty"`
	AmountIn  uint64         `json:"amount_in,omitempty"`
	AmountOut uint64         `json:"amount_out,omitempty"`
	FeeBps    uint32         `json:"fee_bps,omitempty"`
	Locked    bool           `json:"locked,omitempty"`
	AppliedAt string         `json:"applied_at"`
}
