// Package tick holds the per-tick accounting the pool consults on every
// mint, burn, and tick crossing: liquidityNet/liquidityGross, the
// feeGrowthOutside "outside" trick used to derive a position's
// feeGrowthInside, and the oracle-adjacent outside accumulators used by
// snapshotCumulativesInside.
package tick

import (
	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

// Info is the accounting record stored at a single initialized tick.
type Info struct {
	// LiquidityGross is the total position liquidity referencing this
	// tick as an endpoint, regardless of direction. Used to determine
	// whether the tick needs to be flipped in the bitmap.
	LiquidityGross math.Int
	// LiquidityNet is the liquidity added (lower tick) or removed (upper
	// tick) when the price crosses this tick moving left to right.
	LiquidityNet math.Int

	FeeGrowthOutside0X128 *uint256.Int
	FeeGrowthOutside1X128 *uint256.Int

	TickCumulativeOutside          int64
	SecondsPerLiquidityOutsideX128 *uint256.Int
	SecondsOutside                 uint32

	Initialized bool
}

// NewInfo returns a zeroed tick record.
func NewInfo() *Info {
	return &Info{
		LiquidityGross:                 math.ZeroInt(),
		LiquidityNet:                   math.ZeroInt(),
		FeeGrowthOutside0X128:          new(uint256.Int),
		FeeGrowthOutside1X128:          new(uint256.Int),
		SecondsPerLiquidityOutsideX128: new(uint256.Int),
	}
}

// Clear resets a tick record to its zero state, releasing the storage
// slot once liquidityGross returns to zero.
func (info *Info) Clear() {
	*info = *NewInfo()
}
