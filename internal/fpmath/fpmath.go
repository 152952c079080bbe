package fpmath

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow is returned when a result does not fit in uint64.
	ErrOverflow = errors.New("math overflow")
	// ErrUnderflow is returned when a subtraction would go negative.
	ErrUnderflow = errors.New("math underflow")
	// ErrDivisionByZero is returned when a divisor is zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// MulDiv returns floor(a*b/c). The product is computed in 256-bit space so
// a*b never wraps; only the final quotient must fit in uint64.
func MulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrDivisionByZero
	}
	prod := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	quo := prod.Div(prod, uint256.NewInt(c))
	if !quo.IsUint64() {
		return 0, ErrOverflow
	}
	return quo.Uint64(), nil
}

// Add returns a+b, failing instead of wrapping.
func Add(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b, failing instead of wrapping.
func Sub(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}
