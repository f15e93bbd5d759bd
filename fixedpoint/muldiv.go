// Package fixedpoint implements the Q64.96 / Q128.128 fixed-point
// arithmetic that the pool's price and fee-growth accounting is built
// on: sqrt-price-at-tick conversion, token-amount-from-liquidity
// deltas, next-sqrt-price-from-swap-input math, and the single-tick
// swap step.
package fixedpoint

import (
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// mulDiv computes floor(a * b / denominator) using uint256's own
// 512-bit-safe primitives, so the full-precision 256x256 product never
// round-trips through math/big.
func mulDiv(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, types.ErrArithmetic.Wrap("division by zero")
	}
	result, overflow := new(uint256.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, types.ErrArithmetic.Wrap("mulDiv overflow")
	}
	return result, nil
}

// mulDivRoundingUp computes ceil(a * b / denominator).
func mulDivRoundingUp(a, b, denominator *uint256.Int) (*uint256.Int, error) {
	if denominator.IsZero() {
		return nil, types.ErrArithmetic.Wrap("division by zero")
	}
	result, overflow := new(uint256.Int).MulDivOverflow(a, b, denominator)
	if overflow {
		return nil, types.ErrArithmetic.Wrap("mulDivRoundingUp overflow")
	}
	rem := new(uint256.Int).MulMod(a, b, denominator)
	if !rem.IsZero() {
		result = new(uint256.Int).AddUint64(result, 1)
	}
	return result, nil
}

// divRoundingUp computes ceil(a / b) for b != 0.
func divRoundingUp(a, b *uint256.Int) *uint256.Int {
	q := new(uint256.Int).Div(a, b)
	r := new(uint256.Int).Mod(a, b)
	if !r.IsZero() {
		q = new(uint256.Int).AddUint64(q, 1)
	}
	return q
}
