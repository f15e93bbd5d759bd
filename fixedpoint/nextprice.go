package fixedpoint

import (
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// GetNextSqrtPriceFromInput returns the sqrt price after swapping
// amountIn of the input asset into the pool.
func GetNextSqrtPriceFromInput(sqrtPriceX96, liquidity, amountIn *uint256.Int, zeroForOne bool) (*uint256.Int, error) {
	if sqrtPriceX96.IsZero() {
		return nil, types.ErrArithmetic.Wrap("sqrtPriceX96 must be positive")
	}
	if liquidity.IsZero() {
		return nil, types.ErrArithmetic.Wrap("liquidity must be positive")
	}
	if zeroForOne {
		return nextSqrtPriceFromAmount0RoundingUp(sqrtPriceX96, liquidity, amountIn, true)
	}
	return nextSqrtPriceFromAmount1RoundingDown(sqrtPriceX96, liquidity, amountIn, true)
}

// GetNextSqrtPriceFromOutput returns the sqrt price after swapping
// amountOut of the output asset out of the pool.
func GetNextSqrtPriceFromOutput(sqrtPriceX96, liquidity, amountOut *uint256.Int, zeroForOne bool) (*uint256.Int, error) {
	if sqrtPriceX96.IsZero() {
		return nil, types.ErrArithmetic.Wrap("sqrtPriceX96 must be positive")
	}
	if liquidity.IsZero() {
		return nil, types.ErrArithmetic.Wrap("liquidity must be positive")
	}
	if zeroForOne {
		return nextSqrtPriceFromAmount1RoundingDown(sqrtPriceX96, liquidity, amountOut, false)
	}
	return nextSqrtPriceFromAmount0RoundingUp(sqrtPriceX96, liquidity, amountOut, false)
}

// nextSqrtPriceFromAmount0RoundingUp moves the price by a delta
// expressed in asset0: adding asset0 to the pool (add=true) always
// decreases the price, removing it (add=false) always increases it.
func nextSqrtPriceFromAmount0RoundingUp(sqrtPriceX96, liquidity, amount *uint256.Int, add bool) (*uint256.Int, error) {
	if amount.IsZero() {
		return new(uint256.Int).Set(sqrtPriceX96), nil
	}
	numerator1 := new(uint256.Int).Lsh(liquidity, types.Q96Resolution)

	if add {
		product, overflow := new(uint256.Int).MulOverflow(amount, sqrtPriceX96)
		if !overflow {
			denominator := new(uint256.Int).Add(numerator1, product)
			if denominator.Cmp(numerator1) >= 0 {
				return mulDivRoundingUp(numerator1, sqrtPriceX96, denominator)
			}
		}
		quotient := new(uint256.Int).Div(numerator1, sqrtPriceX96)
		quotient.Add(quotient, amount)
		return divRoundingUp(numerator1, quotient), nil
	}

	product, overflow := new(uint256.Int).MulOverflow(amount, sqrtPriceX96)
	if overflow || numerator1.Cmp(product) <= 0 {
		return nil, types.ErrArithmetic.Wrap("amount0 too large to remove from pool")
	}
	denominator := new(uint256.Int).Sub(numerator1, product)
	return mulDivRoundingUp(numerator1, sqrtPriceX96, denominator)
}

// nextSqrtPriceFromAmount1RoundingDown moves the price by a delta
// expressed in asset1: adding asset1 (add=true) always increases the
// price, removing it (add=false) always decreases it.
func nextSqrtPriceFromAmount1RoundingDown(sqrtPriceX96, liquidity, amount *uint256.Int, add bool) (*uint256.Int, error) {
	if add {
		quotient, err := mulDiv(amount, types.Q96, liquidity)
		if err != nil {
			return nil, err
		}
		return new(uint256.Int).Add(sqrtPriceX96, quotient), nil
	}

	quotient, err := mulDivRoundingUp(amount, types.Q96, liquidity)
	if err != nil {
		return nil, err
	}
	if sqrtPriceX96.Cmp(quotient) <= 0 {
		return nil, types.ErrArithmetic.Wrap("amount1 too large to remove from pool")
	}
	return new(uint256.Int).Sub(sqrtPriceX96, quotient), nil
}
