// Package types holds the shared numeric boundaries, error types, and
// small value types used across the concentrated-liquidity engine:
// the tick bounds, the sqrt-price bounds, packed protocol-fee settings,
// and the typed errors each operation in the pool package can return.
package types

import (
	"math/big"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
)

const (
	// MinTick is the minimum tick that may be used on any pool.
	MinTick int32 = -887272
	// MaxTick is the maximum tick that may be used on any pool.
	MaxTick int32 = 887272

	// Q96Resolution is the number of fractional bits in a Q64.96 sqrt price.
	Q96Resolution = 96
	// Q128Resolution is the number of fractional bits in a Q128.128 fee-growth accumulator.
	Q128Resolution = 128

	// FeeDenominator expresses pool fees and the protocol fee split in parts per million.
	FeeDenominator uint32 = 1_000_000

	// MaxObservationCardinality bounds the oracle ring the same way the spec's
	// fixed-size array would; this implementation grows a slice lazily instead.
	MaxObservationCardinality = 65535
)

var (
	minSqrtRatioBig, _ = new(big.Int).SetString("4295128739", 10)
	maxSqrtRatioBig, _ = new(big.Int).SetString("1461446703485210103287273052203988822378723970342", 10)

	// MinSqrtRatio is the smallest sqrt price representable by a valid tick (MinTick).
	MinSqrtRatio = uint256.MustFromBig(minSqrtRatioBig)
	// MaxSqrtRatio is the largest sqrt price representable by a valid tick (MaxTick).
	MaxSqrtRatio = uint256.MustFromBig(maxSqrtRatioBig)

	// Q96 is 2^96, the fixed-point unit for sqrt prices.
	Q96 = new(uint256.Int).Lsh(uint256.NewInt(1), Q96Resolution)
	// Q128 is 2^128, the fixed-point unit for fee-growth accumulators.
	Q128 = new(uint256.Int).Lsh(uint256.NewInt(1), Q128Resolution)

	// MaxUint128 is 2^128-1, the numerator of the per-tick liquidity
	// ceiling (see MaxUint128Int). tokensOwed is not reduced to it.
	MaxUint128 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 128), uint256.NewInt(1))
)

// MaxUint128Int returns 2^128-1 as a signed math.Int, for callers working
// in the signed domain (liquidityGross ceilings, delta arithmetic).
func MaxUint128Int() math.Int {
	return math.NewIntFromBigInt(MaxUint128.ToBig())
}
