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

// Deposit mints desiredShares to the actor against assets taken into
// custody. The first deposit fixes the pool's price: it takes exactly
// maxA and maxB. Later deposits take amounts proportional to the current
// reserves, bounded by the caller's maxA/maxB ceilings.
func (e *Engine) Deposit(actor common.Address, poolID common.Hash, desiredShares, maxA, maxB uint64) (model.TransitionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.loadPool(poolID)
	if err != nil {
		return model.TransitionRecord{}, err
	}
	if err := guardUnlocked(p); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: %w", err)
	}
	if desiredShares == 0 {
		return model.TransitionRecord{}, fmt.Errorf("deposit: shares: %w", ErrZeroAmount)
	}

	reserveA, reserveB, supply := e.balances(p)

	var amountA, amountB uint64
	if supply == 0 {
		if reserveA != 0 || reserveB != 0 {
			return model.TransitionRecord{}, fmt.Errorf("deposit: reserves without shares: %w", ErrInvalidState)
		}
		if maxA == 0 || maxB == 0 {
			return model.TransitionRecord{}, fmt.Errorf("deposit: bootstrap amounts: %w", ErrZeroAmount)
		}
		// Bootstrap: the caller sets the initial price at exactly maxA:maxB.
		amountA, amountB = maxA, maxB
	} else {
		if reserveA == 0 || reserveB == 0 {
			return model.TransitionRecord{}, fmt.Errorf("deposit: shares without reserves: %w", ErrInvalidState)
		}
		if amountA, err = fpmath.MulDiv(desiredShares, reserveA, supply); err != nil {
			return model.TransitionRecord{}, fmt.Errorf("deposit: amount A: %w", err)
		}
		if amountB, err = fpmath.MulDiv(desiredShares, reserveB, supply); err != nil {
			return model.TransitionRecord{}, fmt.Errorf("deposit: amount B: %w", err)
		}
		if amountA > maxA || amountB > maxB {
			return model.TransitionRecord{}, fmt.Errorf("deposit needs %d/%d, caller allows %d/%d: %w",
				amountA, amountB, maxA, maxB, ErrSlippageExceeded)
		}
	}

	if err := e.guardFunds(p.AssetA, actor, amountA); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: %w", err)
	}
	if err := e.guardFunds(p.AssetB, actor, amountB); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: %w", err)
	}
	// Overflow checks before the first transfer so the commit below cannot
	// fail mid-way.
	if _, err := fpmath.Add(reserveA, amountA); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: reserve A: %w", err)
	}
	if _, err := fpmath.Add(reserveB, amountB); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: reserve B: %w", err)
	}
	if _, err := fpmath.Add(supply, desiredShares); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: share supply: %w", err)
	}
	if _, err := fpmath.Add(e.ledger.BalanceOf(p.ShareAsset, actor), desiredShares); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: share balance: %w", err)
	}

	vaultA := ident.VaultAddress(p.ID, p.AssetA)
	vaultB := ident.VaultAddress(p.ID, p.AssetB)
	if err := e.ledger.Transfer(p.AssetA, actor, vaultA, amountA); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: collect A: %w", err)
	}
	if err := e.ledger.Transfer(p.AssetB, actor, vaultB, amountB); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: collect B: %w", err)
	}
	if err := e.ledger.Mint(p.ShareAsset, actor, desiredShares); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("deposit: mint shares: %w", err)
	}

	e.logger.Info("deposit applied",
		zap.String("pool", p.ID.Hex()),
		zap.String("actor", actor.Hex()),
		zap.Uint64("amount_a", amountA),
		zap.Uint64("amount_b", amountB),
		zap.Uint64("shares", desiredShares),
	)
	return model.TransitionRecord{
		Kind:      model.TransitionDeposit,
		PoolID:    p.ID,
		Actor:     actor,
		AmountA:   amountA,
		AmountB:   amountB,
		Shares:    desiredShares,
		AppliedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}

// Withdraw burns shareAmount of the actor's shares and pays out both
// assets in proportion to the share of supply burned, floored. minA and
// minB are the caller's slippage floors.
func (e *Engine) Withdraw(actor common.Address, poolID common.Hash, shareAmount, minA, minB uint64) (model.TransitionRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.loadPool(poolID)
	if err != nil {
		return model.TransitionRecord{}, err
	}
	if err := guardUnlocked(p); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: %w", err)
	}
	if shareAmount == 0 {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: shares: %w", ErrZeroAmount)
	}

	reserveA, reserveB, supply := e.balances(p)
	if supply == 0 {
		return model.TransitionRecord{}, fmt.Errorf("withdraw from empty pool: %w", ErrInvalidState)
	}
	if err := e.guardShares(p, actor, shareAmount); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: %w", err)
	}

	amountA, err := fpmath.MulDiv(shareAmount, reserveA, supply)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: amount A: %w", err)
	}
	amountB, err := fpmath.MulDiv(shareAmount, reserveB, supply)
	if err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: amount B: %w", err)
	}
	if amountA < minA || amountB < minB {
		return model.TransitionRecord{}, fmt.Errorf("withdraw yields %d/%d, caller requires %d/%d: %w",
			amountA, amountB, minA, minB, ErrSlippageExceeded)
	}
	if _, err := fpmath.Add(e.ledger.BalanceOf(p.AssetA, actor), amountA); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: balance A: %w", err)
	}
	if _, err := fpmath.Add(e.ledger.BalanceOf(p.AssetB, actor), amountB); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: balance B: %w", err)
	}

	if err := e.ledger.Burn(p.ShareAsset, actor, shareAmount); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: burn shares: %w", err)
	}
	vaultA := ident.VaultAddress(p.ID, p.AssetA)
	vaultB := ident.VaultAddress(p.ID, p.AssetB)
	if err := e.ledger.Transfer(p.AssetA, vaultA, actor, amountA); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: pay out A: %w", err)
	}
	if err := e.ledger.Transfer(p.AssetB, vaultB, actor, amountB); err != nil {
		return model.TransitionRecord{}, fmt.Errorf("withdraw: pay out B: %w", err)
	}

	e.logger.Info("withdraw applied",
		zap.String("pool", p.ID.Hex()),
		zap.String("actor", actor.Hex()),
		zap.Uint64("amount_a", amountA),
		zap.Uint64("amount_b", amountB),
		zap.Uint64("shares", shareAmount),
	)
	return model.TransitionRecord{
		Kind:      model.TransitionWithdraw,
		PoolID:    p.ID,
		Actor:     actor,
		AmountA:   amountA,
		AmountB:   amountB,
		Shares:    shareAmount,
		AppliedAt: time.Now().UTC().Format(time.RFC3339Nano),
	}, nil
}
