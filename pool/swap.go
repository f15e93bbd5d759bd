package pool

import (
	"context"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/fixedpoint"
	"github.com/omnipool-labs/clmm-core/types"
)

// swapState is the swap loop's working set, mirroring SwapState in the
// canonical implementation: everything that changes step-to-step as
// the price walks across tick boundaries.
type swapState struct {
	amountSpecifiedRemaining math.Int
	amountCalculated         math.Int
	sqrtPriceX96             *uint256.Int
	tick                     int32
	feeGrowthGlobalX128      *uint256.Int
	protocolFee              *uint256.Int
	liquidity                *uint256.Int
}

// Swap exchanges one asset for the other, walking the price across
// initialized ticks one word-search at a time until amountSpecified is
// exhausted or sqrtPriceLimitX96 is reached, per §4.7.
func (p *Pool) Swap(
	ctx context.Context, payer Payer, recipient string,
	zeroForOne bool, amountSpecified math.Int, sqrtPriceLimitX96 *uint256.Int, data []byte,
) (amount0, amount1 math.Int, evt types.SwapEvent, err error) {
	if amountSpecified.IsZero() {
		return math.Int{}, math.Int{}, types.SwapEvent{}, types.ZeroAmountSpecifiedError{}
	}
	if err := p.requireInitialized(); err != nil {
		return math.Int{}, math.Int{}, types.SwapEvent{}, err
	}

	slot0Start := p.Slot0.Clone()

	if zeroForOne {
		if sqrtPriceLimitX96.Cmp(slot0Start.SqrtPriceX96) >= 0 || sqrtPriceLimitX96.Cmp(types.MinSqrtRatio) <= 0 {
			return math.Int{}, math.Int{}, types.SwapEvent{}, types.InvalidSqrtPriceLimitError{
				SqrtPriceLimitX96: sqrtPriceLimitX96.Hex(), CurrentSqrtPriceX96: slot0Start.SqrtPriceX96.Hex(), ZeroForOne: zeroForOne,
			}
		}
	} else {
		if sqrtPriceLimitX96.Cmp(slot0Start.SqrtPriceX96) <= 0 || sqrtPriceLimitX96.Cmp(types.MaxSqrtRatio) >= 0 {
			return math.Int{}, math.Int{}, types.SwapEvent{}, types.InvalidSqrtPriceLimitError{
				SqrtPriceLimitX96: sqrtPriceLimitX96.Hex(), CurrentSqrtPriceX96: slot0Start.SqrtPriceX96.Hex(), ZeroForOne: zeroForOne,
			}
		}
	}

	if err := p.lock(); err != nil {
		return math.Int{}, math.Int{}, types.SwapEvent{}, err
	}
	defer p.unlock()

	exactInput := amountSpecified.IsPositive()

	globalX128 := p.FeeGrowthGlobal1X128
	if zeroForOne {
		globalX128 = p.FeeGrowthGlobal0X128
	}

	state := swapState{
		amountSpecifiedRemaining: amountSpecified,
		amountCalculated:         math.ZeroInt(),
		sqrtPriceX96:             new(uint256.Int).Set(slot0Start.SqrtPriceX96),
		tick:                     slot0Start.Tick,
		feeGrowthGlobalX128:      new(uint256.Int).Set(globalX128),
		protocolFee:              new(uint256.Int),
		liquidity:                new(uint256.Int).Set(p.Liquidity),
	}

	var cachedTickCumulative int64
	var cachedSecondsPerLiquidityX128 *uint256.Int
	haveCache := false

	feeProtocolDenominator := p.Slot0.FeeProtocol.Denominator(zeroForOne)

	for !state.amountSpecifiedRemaining.IsZero() && state.sqrtPriceX96.Cmp(sqrtPriceLimitX96) != 0 {
		sqrtPriceStart := new(uint256.Int).Set(state.sqrtPriceX96)

		tickNext, initialized := p.Bitmap.NextInitializedTickWithinOneWord(state.tick, p.Config.TickSpacing, zeroForOne)
		if tickNext < types.MinTick {
			tickNext = types.MinTick
		} else if tickNext > types.MaxTick {
			tickNext = types.MaxTick
		}

		sqrtPriceNext, err := fixedpoint.GetSqrtRatioAtTick(tickNext)
		if err != nil {
			return math.Int{}, math.Int{}, types.SwapEvent{}, err
		}

		target := sqrtPriceNext
		if zeroForOne {
			if target.Cmp(sqrtPriceLimitX96) < 0 {
				target = sqrtPriceLimitX96
			}
		} else {
			if target.Cmp(sqrtPriceLimitX96) > 0 {
				target = sqrtPriceLimitX96
			}
		}

		step, err := fixedpoint.ComputeSwapStep(
			state.sqrtPriceX96, target, state.liquidity,
			fixedpoint.NewSignedFromBig(state.amountSpecifiedRemaining.BigInt()),
			p.Config.Fee,
		)
		if err != nil {
			return math.Int{}, math.Int{}, types.SwapEvent{}, err
		}

		if exactInput {
			consumed := liquidityAsInt(step.AmountIn).Add(liquidityAsInt(step.FeeAmount))
			state.amountSpecifiedRemaining = state.amountSpecifiedRemaining.Sub(consumed)
			state.amountCalculated = state.amountCalculated.Sub(liquidityAsInt(step.AmountOut))
		} else {
			state.amountSpecifiedRemaining = state.amountSpecifiedRemaining.Add(liquidityAsInt(step.AmountOut))
			produced := liquidityAsInt(step.AmountIn).Add(liquidityAsInt(step.FeeAmount))
			state.amountCalculated = state.amountCalculated.Add(produced)
		}

		if feeProtocolDenominator != 0 {
			protocolDelta := new(uint256.Int).Div(step.FeeAmount, uint256.NewInt(uint64(feeProtocolDenominator)))
			step.FeeAmount = new(uint256.Int).Sub(step.FeeAmount, protocolDelta)
			state.protocolFee = new(uint256.Int).Add(state.protocolFee, protocolDelta)
		}

		if !state.liquidity.IsZero() {
			growth := wrappingMulDivQ128(step.FeeAmount, state.liquidity)
			state.feeGrowthGlobalX128 = new(uint256.Int).Add(state.feeGrowthGlobalX128, growth)
		}

		if step.SqrtRatioNextX96.Cmp(sqrtPriceNext) == 0 {
			if initialized {
				if !haveCache {
					cachedTickCumulative, cachedSecondsPerLiquidityX128, err = p.Oracle.ObserveSingle(
						p.now(), 0, slot0Start.Tick, slot0Start.ObservationIndex, p.Liquidity, slot0Start.ObservationCardinality,
					)
					if err != nil {
						return math.Int{}, math.Int{}, types.SwapEvent{}, err
					}
					haveCache = true
				}

				info := p.tickInfo(tickNext)
				var feeArg0, feeArg1 *uint256.Int
				if zeroForOne {
					feeArg0, feeArg1 = state.feeGrowthGlobalX128, p.FeeGrowthGlobal1X128
				} else {
					feeArg0, feeArg1 = p.FeeGrowthGlobal0X128, state.feeGrowthGlobalX128
				}
				liquidityNet := info.Cross(feeArg0, feeArg1, cachedSecondsPerLiquidityX128, cachedTickCumulative, p.now())
				if zeroForOne {
					liquidityNet = liquidityNet.Neg()
				}

				nextLiquidity := liquidityAsInt(state.liquidity).Add(liquidityNet)
				nextLiquidityU, err := liquidityAsUint256(nextLiquidity)
				if err != nil {
					return math.Int{}, math.Int{}, types.SwapEvent{}, err
				}
				state.liquidity = nextLiquidityU
			}

			if zeroForOne {
				state.tick = tickNext - 1
			} else {
				state.tick = tickNext
			}
		} else if step.SqrtRatioNextX96.Cmp(sqrtPriceStart) != 0 {
			state.tick, err = fixedpoint.GetTickAtSqrtRatio(step.SqrtRatioNextX96)
			if err != nil {
				return math.Int{}, math.Int{}, types.SwapEvent{}, err
			}
		}

		state.sqrtPriceX96 = step.SqrtRatioNextX96
	}

	if state.tick != slot0Start.Tick {
		index, cardinality := p.Oracle.Write(
			slot0Start.ObservationIndex, slot0Start.ObservationCardinality, slot0Start.ObservationCardinalityNext,
			p.now(), slot0Start.Tick, p.Liquidity,
		)
		p.Slot0.SqrtPriceX96 = state.sqrtPriceX96
		p.Slot0.Tick = state.tick
		p.Slot0.ObservationIndex = index
		p.Slot0.ObservationCardinality = cardinality
	} else {
		p.Slot0.SqrtPriceX96 = state.sqrtPriceX96
	}

	if !p.Liquidity.Eq(state.liquidity) {
		p.Liquidity = state.liquidity
	}

	if zeroForOne {
		p.FeeGrowthGlobal0X128 = state.feeGrowthGlobalX128
		p.ProtocolFees0 = new(uint256.Int).Add(p.ProtocolFees0, state.protocolFee)
	} else {
		p.FeeGrowthGlobal1X128 = state.feeGrowthGlobalX128
		p.ProtocolFees1 = new(uint256.Int).Add(p.ProtocolFees1, state.protocolFee)
	}

	if zeroForOne == exactInput {
		amount0 = amountSpecified.Sub(state.amountSpecifiedRemaining)
		amount1 = state.amountCalculated
	} else {
		amount0 = state.amountCalculated
		amount1 = amountSpecified.Sub(state.amountSpecifiedRemaining)
	}

	if zeroForOne {
		if amount1.IsNegative() {
			if err := payer.Transfer(ctx, recipient, types.Asset1, amount1.Neg()); err != nil {
				return math.Int{}, math.Int{}, types.SwapEvent{}, err
			}
		}
		if err := requireBalanceIncrease(ctx, payer, types.Asset0, "swap", amount0, func() error {
			return payer.SwapCallback(ctx, amount0, amount1, data)
		}); err != nil {
			return math.Int{}, math.Int{}, types.SwapEvent{}, err
		}
	} else {
		if amount0.IsNegative() {
			if err := payer.Transfer(ctx, recipient, types.Asset0, amount0.Neg()); err != nil {
				return math.Int{}, math.Int{}, types.SwapEvent{}, err
			}
		}
		if err := requireBalanceIncrease(ctx, payer, types.Asset1, "swap", amount1, func() error {
			return payer.SwapCallback(ctx, amount0, amount1, data)
		}); err != nil {
			return math.Int{}, math.Int{}, types.SwapEvent{}, err
		}
	}

	p.Logger.Debug("swap", "recipient", recipient, "zeroForOne", zeroForOne, "amount0", amount0.String(), "amount1", amount1.String(), "tick", p.Slot0.Tick)

	evt = types.SwapEvent{
		Recipient: recipient, Amount0: amount0.String(), Amount1: amount1.String(),
		SqrtPriceX96: new(uint256.Int).Set(p.Slot0.SqrtPriceX96), Liquidity: liquidityAsInt(p.Liquidity).String(), Tick: p.Slot0.Tick,
	}
	return amount0, amount1, evt, nil
}
