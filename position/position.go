// Package position tracks a single liquidity provider's stake in a tick
// range: their liquidity, the feeGrowthInside snapshot taken at their
// last touch, and the fees they have accrued since but not yet
// collected.
package position

import (
	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// Position is the accounting record for one owner's liquidity in one
// tick range of one pool.
type Position struct {
	Owner     string
	LowerTick int32
	UpperTick int32

	Liquidity math.Int

	FeeGrowthInside0LastX128 *uint256.Int
	FeeGrowthInside1LastX128 *uint256.Int

	TokensOwed0 *uint256.Int
	TokensOwed1 *uint256.Int
}

// New returns a zeroed position for the given owner and tick range.
func New(owner string, lowerTick, upperTick int32) *Position {
	return &Position{
		Owner:                    owner,
		LowerTick:                lowerTick,
		UpperTick:                upperTick,
		Liquidity:                math.ZeroInt(),
		FeeGrowthInside0LastX128: new(uint256.Int),
		FeeGrowthInside1LastX128: new(uint256.Int),
		TokensOwed0:              new(uint256.Int),
		TokensOwed1:              new(uint256.Int),
	}
}

// Update applies a liquidity change to the position and credits any
// fees earned since the last update, using the feeGrowthInside
// accumulators the caller derived from tick.GetFeeGrowthInside.
//
// A zero liquidityDelta is a "poke": a no-op on liquidity used solely to
// refresh tokensOwed, and it is rejected on a position that currently
// holds no liquidity (there would be nothing to poke).
func (p *Position) Update(liquidityDelta math.Int, feeGrowthInside0X128, feeGrowthInside1X128 *uint256.Int) error {
	var liquidityNext math.Int
	if liquidityDelta.IsZero() {
		if p.Liquidity.IsZero() {
			return types.NoPositionError{LowerTick: p.LowerTick, UpperTick: p.UpperTick}
		}
		liquidityNext = p.Liquidity
	} else {
		liquidityNext = p.Liquidity.Add(liquidityDelta)
		if liquidityNext.IsNegative() {
			return types.InsufficientPositionLiquidityError{
				Owner:          p.Owner,
				LowerTick:      p.LowerTick,
				UpperTick:      p.UpperTick,
				Liquidity:      p.Liquidity,
				LiquidityDelta: liquidityDelta,
			}
		}
	}

	feeDelta0 := new(uint256.Int).Sub(feeGrowthInside0X128, p.FeeGrowthInside0LastX128)
	feeDelta1 := new(uint256.Int).Sub(feeGrowthInside1X128, p.FeeGrowthInside1LastX128)

	liquidityUint, err := uint256FromSdkInt(p.Liquidity)
	if err != nil {
		return err
	}

	tokensOwed0, err := mulDivQ128(feeDelta0, liquidityUint)
	if err != nil {
		return err
	}
	tokensOwed1, err := mulDivQ128(feeDelta1, liquidityUint)
	if err != nil {
		return err
	}

	if !liquidityDelta.IsZero() {
		p.Liquidity = liquidityNext
	}
	p.FeeGrowthInside0LastX128 = new(uint256.Int).Set(feeGrowthInside0X128)
	p.FeeGrowthInside1LastX128 = new(uint256.Int).Set(feeGrowthInside1X128)

	if !tokensOwed0.IsZero() || !tokensOwed1.IsZero() {
		p.TokensOwed0 = new(uint256.Int).Add(p.TokensOwed0, tokensOwed0)
		p.TokensOwed1 = new(uint256.Int).Add(p.TokensOwed1, tokensOwed1)
	}
	return nil
}

func uint256FromSdkInt(v math.Int) (*uint256.Int, error) {
	if v.IsNegative() {
		return nil, types.ErrArithmetic.Wrap("liquidity must not be negative")
	}
	return uint256.MustFromBig(v.BigInt()), nil
}

// mulDivQ128 computes floor(a * liquidity / Q128), the token amount a
// feeGrowth delta translates to for a given liquidity.
func mulDivQ128(feeGrowthDelta, liquidity *uint256.Int) (*uint256.Int, error) {
	result, overflow := new(uint256.Int).MulDivOverflow(feeGrowthDelta, liquidity, types.Q128)
	if overflow {
		return nil, types.ErrArithmetic.Wrap("tokensOwed overflow")
	}
	return result, nil
}
