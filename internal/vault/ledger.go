package vault

import (
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrInsufficientFunds is returned when a holder's balance cannot cover a
// transfer or burn.
var ErrInsufficientFunds = errors.New("insufficient funds")

// Ledger is the boundary to the fungible-asset module that custodies
// balances. Every mutating call either fully applies or fails with no
// effect; a failure aborts the whole pool transition that issued it.
type Ledger interface {
	BalanceOf(asset common.Hash, holder common.Address) uint64
	SupplyOf(asset common.Hash) uint64
	Transfer(asset common.Hash, from, to common.Address, amount uint64) error
	Mint(asset common.Hash, to common.Address, amount uint64) error
	Burn(asset common.Hash, from common.Address, amount uint64) error
}
