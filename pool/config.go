// Package pool implements the concentrated-liquidity AMM engine itself:
// the Pool value type that owns slot0, the tick map, the position table,
// the tick bitmap, and the oracle ring, and the mint/burn/collect/swap/
// flash operations that mutate them.
package pool

import (
	"cosmossdk.io/math"

	"github.com/omnipool-labs/clmm-core/types"
)

// Config holds a pool's immutable parameters, fixed at construction.
type Config struct {
	Token0      string
	Token1      string
	Fee         uint32 // parts per million, e.g. 3000 == 0.3%.
	TickSpacing int32
	Owner       string
}

// MaxLiquidityPerTick returns floor((2^128-1) / numUsableTicks), the
// liquidityGross ceiling enforced at every tick for this tickSpacing.
func (c Config) MaxLiquidityPerTick() math.Int {
	minTick := (types.MinTick / c.TickSpacing) * c.TickSpacing
	maxTick := (types.MaxTick / c.TickSpacing) * c.TickSpacing
	numTicks := (maxTick-minTick)/c.TickSpacing + 1
	return types.MaxUint128Int().Quo(math.NewInt(int64(numTicks)))
}
