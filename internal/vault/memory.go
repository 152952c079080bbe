package vault

import (
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"swapCore/internal/fpmath"
	"swapCore/internal/model"
)

// MemoryLedger keeps balances and supplies in process memory. Safe for
// concurrent readers; writers serialize on the mutex.
type MemoryLedger struct {
	mu       sync.RWMutex
	balances map[common.Hash]map[common.Address]uint64
	supplies map[common.Hash]uint64
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[common.Hash]map[common.Address]uint64),
		supplies: make(map[common.Hash]uint64),
	}
}

func (l *MemoryLedger) BalanceOf(asset common.Hash, holder common.Address) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[asset][holder]
}

func (l *MemoryLedger) SupplyOf(asset common.Hash) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supplies[asset]
}

// Transfer moves amount from one holder to another.
func (l *MemoryLedger) Transfer(asset common.Hash, from, to common.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	fromBal := l.balances[asset][from]
	if fromBal < amount {
		return fmt.Errorf("transfer %d of %s from %s: %w", amount, asset, from, ErrInsufficientFunds)
	}
	// A self-transfer is a no-op; summing the destination before debiting
	// the source would otherwise double-count the holder.
	if from == to {
		return nil
	}
	toBal, err := fpmath.Add(l.balances[asset][to], amount)
	if err != nil {
		return fmt.Errorf("transfer %d of %s to %s: %w", amount, asset, to, err)
	}

	l.setBalance(asset, from, fromBal-amount)
	l.setBalance(asset, to, toBal)
	return nil
}

// Mint creates amount units of asset for the holder, growing supply.
func (l *MemoryLedger) Mint(asset common.Hash, to common.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	supply, err := fpmath.Add(l.supplies[asset], amount)
	if err != nil {
		return fmt.Errorf("mint %d of %s: supply: %w", amount, asset, err)
	}
	bal, err := fpmath.Add(l.balances[asset][to], amount)
	if err != nil {
		return fmt.Errorf("mint %d of %s to %s: %w", amount, asset, to, err)
	}

	l.supplies[asset] = supply
	l.setBalance(asset, to, bal)
	return nil
}

// Burn destroys amount units of asset held by the holder, shrinking supply.
func (l *MemoryLedger) Burn(asset common.Hash, from common.Address, amount uint64) error {
	if amount == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	bal := l.balances[asset][from]
	if bal < amount {
		return fmt.Errorf("burn %d of %s from %s: %w", amount, asset, from, ErrInsufficientFunds)
	}
	supply, err := fpmath.Sub(l.supplies[asset], amount)
	if err != nil {
		return fmt.Errorf("burn %d of %s: supply: %w", amount, asset, err)
	}

	l.supplies[asset] = supply
	l.setBalance(asset, from, bal-amount)
	return nil
}

func (l *MemoryLedger) setBalance(asset common.Hash, holder common.Address, amount uint64) {
	holders := l.balances[asset]
	if holders == nil {
		holders = make(map[common.Address]uint64)
		l.balances[asset] = holders
	}
	if amount == 0 {
		delete(holders, holder)
		return
	}
	holders[holder] = amount
}

// Export returns every balance and supply row for persistence.
func (l *MemoryLedger) Export() ([]model.BalanceRecord, []model.SupplyRecord) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var balances []model.BalanceRecord
	for asset, holders := range l.balances {
		for holder, amount := range holders {
			balances = append(balances, model.BalanceRecord{Asset: asset, Holder: holder, Amount: amount})
		}
	}
	var supplies []model.SupplyRecord
	for asset, amount := range l.supplies {
		supplies = append(supplies, model.SupplyRecord{Asset: asset, Amount: amount})
	}
	return balances, supplies
}

// Restore replaces the ledger contents with the given rows.
func (l *MemoryLedger) Restore(balances []model.BalanceRecord, supplies []model.SupplyRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances = make(map[common.Hash]map[common.Address]uint64)
	l.supplies = make(map[common.Hash]uint64)
	for _, b := range balances {
		if b.Amount == 0 {
			continue
		}
		l.setBalance(b.Asset, b.Holder, b.Amount)
	}
	for _, s := range supplies {
		if s.Amount == 0 {
			continue
		}
		l.supplies[s.Asset] = s.Amount
	}
}
