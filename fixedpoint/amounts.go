package fixedpoint

import (
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

func sortPrices(a, b *uint256.Int) (*uint256.Int, *uint256.Int) {
	if a.Cmp(b) > 0 {
		return b, a
	}
	return a, b
}

// GetAmount0Delta returns the amount of asset0 required to move the
// price from sqrtRatioAX96 to sqrtRatioBX96 for the given liquidity,
// rounding up if roundUp is set (the caller is paying in) or down
// otherwise (the caller is receiving out).
func GetAmount0Delta(sqrtRatioAX96, sqrtRatioBX96 *uint256.Int, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	lo, hi := sortPrices(sqrtRatioAX96, sqrtRatioBX96)
	if lo.IsZero() {
		return nil, types.ErrArithmetic.Wrap("sqrtRatioAX96 must be positive")
	}

	numerator1 := new(uint256.Int).Lsh(liquidity, types.Q96Resolution)
	numerator2 := new(uint256.Int).Sub(hi, lo)

	if roundUp {
		n, err := mulDivRoundingUp(numerator1, numerator2, hi)
		if err != nil {
			return nil, err
		}
		return divRoundingUp(n, lo), nil
	}
	n, err := mulDiv(numerator1, numerator2, hi)
	if err != nil {
		return nil, err
	}
	return new(uint256.Int).Div(n, lo), nil
}

// GetAmount1Delta returns the amount of asset1 required to move the
// price from sqrtRatioAX96 to sqrtRatioBX96 for the given liquidity.
func GetAmount1Delta(sqrtRatioAX96, sqrtRatioBX96 *uint256.Int, liquidity *uint256.Int, roundUp bool) (*uint256.Int, error) {
	lo, hi := sortPrices(sqrtRatioAX96, sqrtRatioBX96)
	diff := new(uint256.Int).Sub(hi, lo)

	if roundUp {
		return mulDivRoundingUp(liquidity, diff, types.Q96)
	}
	return mulDiv(liquidity, diff, types.Q96)
}
