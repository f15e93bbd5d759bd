package pool

import (
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// wrappingMulDivQ128 computes floor(feeAmount*Q128/liquidity) mod
// 2^256: the feeGrowthGlobal accumulator is explicitly specified (§9)
// to wrap on overflow rather than revert, unlike every other
// arithmetic path in the engine.
func wrappingMulDivQ128(feeAmount, liquidity *uint256.Int) *uint256.Int {
	result, _ := new(uint256.Int).MulDivOverflow(feeAmount, types.Q128, liquidity)
	return result
}
