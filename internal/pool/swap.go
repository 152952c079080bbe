package pool

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"swapCore/internal/fpmath"
	"swapCore/internal/ident"
	"swapCore/internal/model"
)

// Swap sells amountIn of assetIn to the pool for the other asset of the
// pair. The fee is charged on the input and retained in the pool's
// reserves, so the product of the reserves strictly grows on every
// non-zero swap with a non-zero fee. Output is floored: the pool never
// pays out more than the exact curve permits.
func (e *Engine) Swap(actor common.Address, poolID, assetIn common.Hash, amountIn, minOut uint64) (model.TransitionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.loadPool(poolID)
	if err != nil {
		return model.TransitionRecord{}, err
	}
	if err := guardUnlocked(p); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: %w", err)
	}
	if err := guardAsset(p, assetIn); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: %w", err)
	}
	if amountIn == 0 {
		return model.TransitionRecord{}, fmt.Errorf("swap: input: %w", ErrZeroAmount)
	}

	assetOut := p.AssetB
	if assetIn == p.AssetB {
		assetOut = p.AssetA
	}
	reserveIn := e.ledger.BalanceOf(assetIn, ident.VaultAddress(p.ID, assetIn))
	reserveOut := e.ledger.BalanceOf(assetOut, ident.VaultAddress(p.ID, assetOut))
	if reserveIn == 0 || reserveOut == 0 {
		return model.TransitionRecord{}, fmt.Errorf("swap against empty reserves: %w", ErrInvalidState)
	}

	fee, err := fpmath.MulDiv(amountIn, uint64(p.FeeBps), MaxFeeBps)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: fee: %w", err)
	}
	netIn, err := fpmath.Sub(amountIn, fee)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: net input: %w", err)
	}
	denom, err := fpmath.Add(reserveIn, netIn)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: denominator: %w", err)
	}
	amountOut, err := fpmath.MulDiv(reserveOut, netIn, denom)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: output: %w", err)
	}
	if amountOut < minOut {
		return model.TransitionRecord{}, fmt.Errorf("swap yields %d, caller requires %d: %w",
			amountOut, minOut, ErrSlippageExceeded)
	}

	if err := e.guardFunds(assetIn, actor, amountIn); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: %w", err)
	}
	// The full input, fee included, enters the vault.
	if _, err := fpmath.Add(reserveIn, amountIn); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: reserve in: %w", err)
	}
	if _, err := fpmath.Add(e.ledger.BalanceOf(assetOut, actor), amountOut); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: balance out: %w", err)
	}

	if err := e.ledger.Transfer(assetIn, actor, ident.VaultAddress(p.ID, assetIn), amountIn); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: collect input: %w", err)
	}
	if err := e.ledger.Transfer(assetOut, ident.VaultAddress(p.ID, assetOut), actor, amountOut); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("swap: pay out: %w", err)
	}

	e.logger.Info("swap applied",
		zap.String("pool", p.ID.Hex()),
		zap.String("actor", actor.Hex()),
		zap.String("asset_in", assetIn.Hex()),
		zap.Uint64("amount_in", amountIn),
		zap.Uint64("amount_out", amountOut),
		zap.Uint64("fee", fee),
	)
	return model.TransitionRecord{
		Kind:      model.TransitionSwap,
		PoolID:    p.ID,
		Actor:     actor,
		AssetIn:   assetIn,
		AmountIn:  amountIn,
		AmountOut: amountOut,
		AppliedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
