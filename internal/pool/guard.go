package pool

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"swapCore/internal/model"
)

// The guard predicates gate every mutating transition. They have no side
// effects: each either returns nil or the error that aborts the request.

func guardUnlocked(p model.Pool) error {
	if p.Locked {
		return fmt.Errorf("pool %s: %w", p.ID, ErrPoolLocked)
	}
	return nil
}

func guardAsset(p model.Pool, asset common.Hash) error {
	if !p.HasAsset(asset) {
		return fmt.Errorf("asset %s not in pool %s: %w", asset, p.ID, ErrAssetMismatch)
	}
	return nil
}

// guardFunds defers the real balance check to the ledger but rejects early
// so no transfer is attempted with insufficient cover.
func (e *Engine) guardFunds(asset common.Hash, holder common.Address, amount uint64) error {
	if e.ledger.BalanceOf(asset, holder) < amount {
		return fmt.Errorf("holder %s needs %d of %s: %w", holder, amount, asset, ErrInsufficientFunds)
	}
	return nil
}

func (e *Engine) guardShares(p model.Pool, holder common.Address, amount uint64) error {
	if e.ledger.BalanceOf(p.ShareAsset, holder) < amount {
		return fmt.Errorf("holder %s needs %d shares of pool %s: %w", holder, amount, p.ID, ErrInsufficientShares)
	}
	return nil
}
