package vault

import (
	"errors"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"swapCore/internal/fpmath"
)

var (
	testAsset = common.HexToHash("0xaa")
	alice     = common.HexToAddress("0x01")
	bob       = common.HexToAddress("0x02")
)

func TestMintAndBalance(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if got := l.BalanceOf(testAsset, alice); got != 100 {
		t.Fatalf("balance = %d, want 100", got)
	}
	if got := l.SupplyOf(testAsset); got != 100 {
		t.Fatalf("supply = %d, want 100", got)
	}
}

func TestTransfer(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Transfer(testAsset, alice, bob, 40); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := l.BalanceOf(testAsset, alice); got != 60 {
		t.Fatalf("alice = %d, want 60", got)
	}
	if got := l.BalanceOf(testAsset, bob); got != 40 {
		t.Fatalf("bob = %d, want 40", got)
	}
	if got := l.SupplyOf(testAsset); got != 100 {
		t.Fatalf("supply changed on transfer: %d", got)
	}
}

func TestTransferToSelf(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Transfer(testAsset, alice, alice, 40); err != nil {
		t.Fatalf("self transfer: %v", err)
	}
	if got := l.BalanceOf(testAsset, alice); got != 100 {
		t.Fatalf("self transfer changed balance: %d, want 100", got)
	}
	if got := l.SupplyOf(testAsset); got != 100 {
		t.Fatalf("self transfer changed supply: %d, want 100", got)
	}
	// Still bounded by the holder's balance.
	if err := l.Transfer(testAsset, alice, alice, 101); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestTransferInsufficient(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 10); err != nil {
		t.Fatalf("mint: %v", err)
	}
	err := l.Transfer(testAsset, alice, bob, 11)
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
	if got := l.BalanceOf(testAsset, alice); got != 10 {
		t.Fatalf("failed transfer moved funds: %d", got)
	}
}

func TestBurn(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Burn(testAsset, alice, 30); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := l.BalanceOf(testAsset, alice); got != 70 {
		t.Fatalf("balance = %d, want 70", got)
	}
	if got := l.SupplyOf(testAsset); got != 70 {
		t.Fatalf("supply = %d, want 70", got)
	}

	if err := l.Burn(testAsset, alice, 71); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestMintSupplyOverflow(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, math.MaxUint64); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Mint(testAsset, bob, 1); !errors.Is(err, fpmath.ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestExportRestoreRoundTrip(t *testing.T) {
	l := NewMemoryLedger()
	if err := l.Mint(testAsset, alice, 100); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := l.Transfer(testAsset, alice, bob, 25); err != nil {
		t.Fatalf("transfer: %v", err)
	}

	balances, supplies := l.Export()

	restored := NewMemoryLedger()
	restored.Restore(balances, supplies)

	if got := restored.BalanceOf(testAsset, alice); got != 75 {
		t.Fatalf("alice = %d, want 75", got)
	}
	if got := restored.BalanceOf(testAsset, bob); got != 25 {
		t.Fatalf("bob = %d, want 25", got)
	}
	if got := restored.SupplyOf(testAsset); got != 100 {
		t.Fatalf("supply = %d, want 100", got)
	}
}
