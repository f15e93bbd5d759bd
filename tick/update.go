package tick

import (
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// Update applies a liquidityDelta to a tick, initializing it if this is
// the first time it has seen nonzero liquidityGross, and reports
// whether the tick's initialized state flipped (the caller must then
// flip the tick in its bitmap).
func (info *Info) Update(
	tickIndex, tickCurrent int32,
	liquidityDelta math.Int,
	feeGrowthGlobal0X128, feeGrowthGlobal1X128 *uint256.Int,
	secondsPerLiquidityCumulativeX128 *uint256.Int,
	tickCumulative int64,
	time uint32,
	upper bool,
	maxLiquidityPerTick math.Int,
) (flipped bool, err error) {
	liquidityGrossBefore := info.LiquidityGross
	liquidityGrossAfter := liquidityGrossBefore.Add(liquidityDelta)

	if liquidityGrossAfter.IsNegative() {
		return false, types.LiquidityOverflowError{
			TickIndex:           tickIndex,
			LiquidityGross:      liquidityGrossAfter,
			MaxLiquidityPerTick: maxLiquidityPerTick,
		}
	}
	if liquidityGrossAfter.GT(maxLiquidityPerTick) {
		return false, types.LiquidityOverflowError{
			TickIndex:           tickIndex,
			LiquidityGross:      liquidityGrossAfter,
			MaxLiquidityPerTick: maxLiquidityPerTick,
		}
	}

	flipped = liquidityGrossAfter.IsZero() != liquidityGrossBefore.IsZero()

	if liquidityGrossBefore.IsZero() {
		// By convention, all growth before a tick is initialized is
		// assumed to have happened below it.
		if tickIndex <= tickCurrent {
			info.FeeGrowthOutside0X128 = new(uint256.Int).Set(feeGrowthGlobal0X128)
			info.FeeGrowthOutside1X128 = new(uint256.Int).Set(feeGrowthGlobal1X128)
			info.SecondsPerLiquidityOutsideX128 = new(uint256.Int).Set(secondsPerLiquidityCumulativeX128)
			info.TickCumulativeOutside = tickCumulative
			info.SecondsOutside = time
		}
		info.Initialized = true
	}

	info.LiquidityGross = liquidityGrossAfter

	if upper {
		info.LiquidityNet = info.LiquidityNet.Sub(liquidityDelta)
	} else {
		info.LiquidityNet = info.LiquidityNet.Add(liquidityDelta)
	}

	return flipped, nil
}

// Cross flips the tick's outside accumulators to reflect crossing it,
// and returns the liquidityNet to apply to the pool's active liquidity.
func (info *Info) Cross(
	feeGrowthGlobal0X128, feeGrowthGlobal1X128 *uint256.Int,
	secondsPerLiquidityCumulativeX128 *uint256.Int,
	tickCumulative int64,
	time uint32,
) math.Int {
	info.FeeGrowthOutside0X128 = new(uint256.Int).Sub(feeGrowthGlobal0X128, info.FeeGrowthOutside0X128)
	info.FeeGrowthOutside1X128 = new(uint256.Int).Sub(feeGrowthGlobal1X128, info.FeeGrowthOutside1X128)
	info.SecondsPerLiquidityOutsideX128 = new(uint256.Int).Sub(secondsPerLiquidityCumulativeX128, info.SecondsPerLiquidityOutsideX128)
	info.TickCumulativeOutside = tickCumulative - info.TickCumulativeOutside
	info.SecondsOutside = time - info.SecondsOutside
	return info.LiquidityNet
}

// GetFeeGrowthInside computes the feeGrowthInside accumulators for the
// range [lowerTick, upperTick] given the current tick and the pool's
// global fee-growth accumulators, using the "outside" subtraction trick
// so that a position's fee share only ever needs the two endpoint
// ticks, not the whole tick range.
func GetFeeGrowthInside(
	lower, upper *Info,
	tickLower, tickUpper, tickCurrent int32,
	feeGrowthGlobal0X128, feeGrowthGlobal1X128 *uint256.Int,
) (feeGrowthInside0X128, feeGrowthInside1X128 *uint256.Int) {
	var feeGrowthBelow0, feeGrowthBelow1 *uint256.Int
	if tickCurrent >= tickLower {
		feeGrowthBelow0 = lower.FeeGrowthOutside0X128
		feeGrowthBelow1 = lower.FeeGrowthOutside1X128
	} else {
		feeGrowthBelow0 = new(uint256.Int).Sub(feeGrowthGlobal0X128, lower.FeeGrowthOutside0X128)
		feeGrowthBelow1 = new(uint256.Int).Sub(feeGrowthGlobal1X128, lower.FeeGrowthOutside1X128)
	}

	var feeGrowthAbove0, feeGrowthAbove1 *uint256.Int
	if tickCurrent < tickUpper {
		feeGrowthAbove0 = upper.FeeGrowthOutside0X128
		feeGrowthAbove1 = upper.FeeGrowthOutside1X128
	} else {
		feeGrowthAbove0 = new(uint256.Int).Sub(feeGrowthGlobal0X128, upper.FeeGrowthOutside0X128)
		feeGrowthAbove1 = new(uint256.Int).Sub(feeGrowthGlobal1X128, upper.FeeGrowthOutside1X128)
	}

	feeGrowthInside0X128 = new(uint256.Int).Sub(new(uint256.Int).Sub(feeGrowthGlobal0X128, feeGrowthBelow0), feeGrowthAbove0)
	feeGrowthInside1X128 = new(uint256.Int).Sub(new(uint256.Int).Sub(feeGrowthGlobal1X128, feeGrowthBelow1), feeGrowthAbove1)
	return feeGrowthInside0X128, feeGrowthInside1X128
}

// SnapshotCumulativesInside mirrors GetFeeGrowthInside's outside trick
// but for the oracle's tickCumulative and secondsPerLiquidity
// accumulators, used by Pool.SnapshotCumulativesInside.
func SnapshotCumulativesInside(
	lower, upper *Info,
	tickLower, tickUpper, tickCurrent int32,
	tickCumulative int64,
	secondsPerLiquidityCumulativeX128 *uint256.Int,
	time uint32,
) (tickCumulativeInside int64, secondsPerLiquidityInsideX128 *uint256.Int, secondsInside uint32) {
	var tickCumulativeBelow int64
	var secondsPerLiquidityBelow *uint256.Int
	var secondsBelow uint32
	if tickCurrent >= tickLower {
		tickCumulativeBelow = lower.TickCumulativeOutside
		secondsPerLiquidityBelow = lower.SecondsPerLiquidityOutsideX128
		secondsBelow = lower.SecondsOutside
	} else {
		tickCumulativeBelow = tickCumulative - lower.TickCumulativeOutside
		secondsPerLiquidityBelow = new(uint256.Int).Sub(secondsPerLiquidityCumulativeX128, lower.SecondsPerLiquidityOutsideX128)
		secondsBelow = time - lower.SecondsOutside
	}

	var tickCumulativeAbove int64
	var secondsPerLiquidityAbove *uint256.Int
	var secondsAbove uint32
	if tickCurrent < tickUpper {
		tickCumulativeAbove = upper.TickCumulativeOutside
		secondsPerLiquidityAbove = upper.SecondsPerLiquidityOutsideX128
		secondsAbove = upper.SecondsOutside
	} else {
		tickCumulativeAbove = tickCumulative - upper.TickCumulativeOutside
		secondsPerLiquidityAbove = new(uint256.Int).Sub(secondsPerLiquidityCumulativeX128, upper.SecondsPerLiquidityOutsideX128)
		secondsAbove = time - upper.SecondsOutside
	}

	tickCumulativeInside = tickCumulative - tickCumulativeBelow - tickCumulativeAbove
	secondsPerLiquidityInsideX128 = new(uint256.Int).Sub(new(uint256.Int).Sub(secondsPerLiquidityCumulativeX128, secondsPerLiquidityBelow), secondsPerLiquidityAbove)
	secondsInside = time - secondsBelow - secondsAbove
	return tickCumulativeInside, secondsPerLiquidityInsideX128, secondsInside
}
