package fpmath

import (
	"errors"
	"math"
	"testing"
)

func TestMulDiv(t *testing.T) {
	got, err := MulDiv(50_000_000, 100_000_000, 100_000_000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 50_000_000 {
		t.Fatalf("got %d, want 50000000", got)
	}
}

func TestMulDivFloors(t *testing.T) {
	got, err := MulDiv(7, 3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
}

func TestMulDivWideIntermediate(t *testing.T) {
	// a*b wraps uint64 but the quotient fits.
	got, err := MulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != math.MaxUint64 {
		t.Fatalf("got %d, want MaxUint64", got)
	}
}

func TestMulDivOverflow(t *testing.T) {
	if _, err := MulDiv(math.MaxUint64, 2, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestMulDivZeroDivisor(t *testing.T) {
	if _, err := MulDiv(1, 1, 0); !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestAdd(t *testing.T) {
	got, err := Add(1, 2)
	if err != nil || got != 3 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := Add(math.MaxUint64, 1); !errors.Is(err, ErrOverflow) {
		t.Fatalf("expected ErrOverflow, got %v", err)
	}
}

func TestSub(t *testing.T) {
	got, err := Sub(5, 2)
	if err != nil || got != 3 {
		t.Fatalf("got %d, %v", got, err)
	}
	if _, err := Sub(2, 5); !errors.Is(err, ErrUnderflow) {
		t.Fatalf("expected ErrUnderflow, got %v", err)
	}
}
