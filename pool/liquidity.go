package pool

import (
	"context"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/fixedpoint"
	"github.com/omnipool-labs/clmm-core/position"
	"github.com/omnipool-labs/clmm-core/tick"
	"github.com/omnipool-labs/clmm-core/types"
)

func (p *Pool) validateTicks(lowerTick, upperTick int32) error {
	if lowerTick >= upperTick {
		return types.InvalidLowerUpperTickError{LowerTick: lowerTick, UpperTick: upperTick}
	}
	if lowerTick < types.MinTick {
		return types.InvalidTickError{Tick: lowerTick, IsLower: true}
	}
	if upperTick > types.MaxTick {
		return types.InvalidTickError{Tick: upperTick, IsLower: false}
	}
	if lowerTick%p.Config.TickSpacing != 0 {
		return types.TickSpacingError{TickSpacing: p.Config.TickSpacing, Tick: lowerTick}
	}
	if upperTick%p.Config.TickSpacing != 0 {
		return types.TickSpacingError{TickSpacing: p.Config.TickSpacing, Tick: upperTick}
	}
	return nil
}

func (p *Pool) tickInfo(tickIndex int32) *tick.Info {
	info, ok := p.Ticks[tickIndex]
	if !ok {
		info = tick.NewInfo()
		p.Ticks[tickIndex] = info
	}
	return info
}

// updatePosition applies liquidityDelta to both endpoint ticks and the
// owner's position, flipping bitmap bits and clearing emptied ticks as
// needed, and returns the feeGrowthInside accumulators the caller uses
// to compute owed token amounts.
func (p *Pool) updatePosition(owner string, lowerTick, upperTick int32, liquidityDelta math.Int) (feeGrowthInside0X128, feeGrowthInside1X128 *uint256.Int, pos *position.Position, err error) {
	tickCurrent := p.Slot0.Tick
	now := p.now()

	tickCumulative, secondsPerLiquidityCumulativeX128, err := p.Oracle.ObserveSingle(
		now, 0, tickCurrent, p.Slot0.ObservationIndex, p.Liquidity, p.Slot0.ObservationCardinality,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	maxLiquidityPerTick := p.Config.MaxLiquidityPerTick()

	lower := p.tickInfo(lowerTick)
	flippedLower, err := lower.Update(
		lowerTick, tickCurrent, liquidityDelta,
		p.FeeGrowthGlobal0X128, p.FeeGrowthGlobal1X128,
		secondsPerLiquidityCumulativeX128, tickCumulative, now,
		false, maxLiquidityPerTick,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	upper := p.tickInfo(upperTick)
	flippedUpper, err := upper.Update(
		upperTick, tickCurrent, liquidityDelta,
		p.FeeGrowthGlobal0X128, p.FeeGrowthGlobal1X128,
		secondsPerLiquidityCumulativeX128, tickCumulative, now,
		true, maxLiquidityPerTick,
	)
	if err != nil {
		return nil, nil, nil, err
	}

	if flippedLower {
		p.Bitmap.FlipTick(lowerTick, p.Config.TickSpacing)
	}
	if flippedUpper {
		p.Bitmap.FlipTick(upperTick, p.Config.TickSpacing)
	}

	feeGrowthInside0X128, feeGrowthInside1X128 = tick.GetFeeGrowthInside(
		lower, upper, lowerTick, upperTick, tickCurrent,
		p.FeeGrowthGlobal0X128, p.FeeGrowthGlobal1X128,
	)

	key := positionKey{owner: owner, lowerTick: lowerTick, upperTick: upperTick}
	pos, ok := p.Positions[key]
	if !ok {
		pos = position.New(owner, lowerTick, upperTick)
		p.Positions[key] = pos
	}
	if err := pos.Update(liquidityDelta, feeGrowthInside0X128, feeGrowthInside1X128); err != nil {
		return nil, nil, nil, err
	}

	if liquidityDelta.IsNegative() {
		if flippedLower && lower.LiquidityGross.IsZero() {
			lower.Clear()
		}
		if flippedUpper && upper.LiquidityGross.IsZero() {
			upper.Clear()
		}
	}

	return feeGrowthInside0X128, feeGrowthInside1X128, pos, nil
}

// modifyPosition updates a position by liquidityDelta and returns the
// token amounts owed (positive: owed to the pool by the caller;
// negative: owed back to the caller), per §4.7.
func (p *Pool) modifyPosition(owner string, lowerTick, upperTick int32, liquidityDelta math.Int) (amount0, amount1 math.Int, err error) {
	if err := p.validateTicks(lowerTick, upperTick); err != nil {
		return math.Int{}, math.Int{}, err
	}

	if _, _, _, err := p.updatePosition(owner, lowerTick, upperTick, liquidityDelta); err != nil {
		return math.Int{}, math.Int{}, err
	}

	sqrtRatioLower, err := fixedpoint.GetSqrtRatioAtTick(lowerTick)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}
	sqrtRatioUpper, err := fixedpoint.GetSqrtRatioAtTick(upperTick)
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	roundUp := liquidityDelta.IsPositive()
	liquidityAbs, err := liquidityAsUint256(liquidityDelta.Abs())
	if err != nil {
		return math.Int{}, math.Int{}, err
	}

	tickCurrent := p.Slot0.Tick
	var amt0, amt1 *uint256.Int

	switch {
	case tickCurrent < lowerTick:
		amt0, err = fixedpoint.GetAmount0Delta(sqrtRatioLower, sqrtRatioUpper, liquidityAbs, roundUp)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		amt1 = new(uint256.Int)
	case tickCurrent < upperTick:
		amt0, err = fixedpoint.GetAmount0Delta(p.Slot0.SqrtPriceX96, sqrtRatioUpper, liquidityAbs, roundUp)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		amt1, err = fixedpoint.GetAmount1Delta(sqrtRatioLower, p.Slot0.SqrtPriceX96, liquidityAbs, roundUp)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}

		liquidityBefore := p.Liquidity
		liquidityNext := liquidityAsInt(liquidityBefore).Add(liquidityDelta)
		next, err := liquidityAsUint256(liquidityNext)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
		p.Liquidity = next

		index, cardinality := p.Oracle.Write(
			p.Slot0.ObservationIndex, p.Slot0.ObservationCardinality, p.Slot0.ObservationCardinalityNext,
			p.now(), tickCurrent, liquidityBefore,
		)
		p.Slot0.ObservationIndex = index
		p.Slot0.ObservationCardinality = cardinality
	default:
		amt0 = new(uint256.Int)
		amt1, err = fixedpoint.GetAmount1Delta(sqrtRatioLower, sqrtRatioUpper, liquidityAbs, roundUp)
		if err != nil {
			return math.Int{}, math.Int{}, err
		}
	}

	amount0 = liquidityAsInt(amt0)
	amount1 = liquidityAsInt(amt1)
	if liquidityDelta.IsNegative() {
		amount0 = amount0.Neg()
		amount1 = amount1.Neg()
	}
	return amount0, amount1, nil
}

// Mint creates or adds to recipient's position over [lowerTick,
// upperTick] by amount units of liquidity, invoking payer's
// MintCallback to collect the owed tokens.
func (p *Pool) Mint(ctx context.Context, payer Payer, recipient string, lowerTick, upperTick int32, amount math.Int, data []byte) (amount0, amount1 math.Int, evt types.MintEvent, err error) {
	if !amount.IsPositive() {
		return math.Int{}, math.Int{}, types.MintEvent{}, types.ErrArgument.Wrap("mint amount must be positive")
	}
	if err := p.requireInitialized(); err != nil {
		return math.Int{}, math.Int{}, types.MintEvent{}, err
	}
	if err := p.lock(); err != nil {
		return math.Int{}, math.Int{}, types.MintEvent{}, err
	}
	defer p.unlock()

	amount0, amount1, err = p.modifyPosition(recipient, lowerTick, upperTick, amount)
	if err != nil {
		return math.Int{}, math.Int{}, types.MintEvent{}, err
	}

	if err := requireBalancesIncrease(ctx, payer, amount0, amount1, "mint0", "mint1", func() error {
		return payer.MintCallback(ctx, amount0, amount1, data)
	}); err != nil {
		return math.Int{}, math.Int{}, types.MintEvent{}, err
	}

	p.Logger.Debug("mint", "recipient", recipient, "lowerTick", lowerTick, "upperTick", upperTick, "amount", amount.String())

	evt = types.MintEvent{
		Owner: recipient, LowerTick: lowerTick, UpperTick: upperTick,
		Liquidity: amount.String(), Amount0: amount0.String(), Amount1: amount1.String(),
	}
	return amount0, amount1, evt, nil
}

// Burn removes amount units of liquidity from caller's position over
// [lowerTick, upperTick], crediting the resulting token amounts to
// tokensOwed for later Collect — burn never transfers tokens directly.
func (p *Pool) Burn(caller string, lowerTick, upperTick int32, amount math.Int) (amount0, amount1 math.Int, evt types.BurnEvent, err error) {
	if err := p.requireInitialized(); err != nil {
		return math.Int{}, math.Int{}, types.BurnEvent{}, err
	}
	if err := p.lock(); err != nil {
		return math.Int{}, math.Int{}, types.BurnEvent{}, err
	}
	defer p.unlock()

	amount0, amount1, err = p.modifyPosition(caller, lowerTick, upperTick, amount.Neg())
	if err != nil {
		return math.Int{}, math.Int{}, types.BurnEvent{}, err
	}

	owed0 := amount0.Neg()
	owed1 := amount1.Neg()

	key := positionKey{owner: caller, lowerTick: lowerTick, upperTick: upperTick}
	pos := p.Positions[key]
	if !owed0.IsZero() || !owed1.IsZero() {
		owed0U, err := liquidityAsUint256(owed0)
		if err != nil {
			return math.Int{}, math.Int{}, types.BurnEvent{}, err
		}
		owed1U, err := liquidityAsUint256(owed1)
		if err != nil {
			return math.Int{}, math.Int{}, types.BurnEvent{}, err
		}
		pos.TokensOwed0 = new(uint256.Int).Add(pos.TokensOwed0, owed0U)
		pos.TokensOwed1 = new(uint256.Int).Add(pos.TokensOwed1, owed1U)
	}

	p.Logger.Debug("burn", "caller", caller, "lowerTick", lowerTick, "upperTick", upperTick, "amount", amount.String())

	evt = types.BurnEvent{Owner: caller, LowerTick: lowerTick, UpperTick: upperTick, Liquidity: amount.String(), Amount0: owed0.String(), Amount1: owed1.String()}
	return owed0, owed1, evt, nil
}

// Collect transfers up to amount{0,1}Requested of a position's
// tokensOwed to recipient, capping silently at what is actually owed.
func (p *Pool) Collect(ctx context.Context, payer Payer, caller, recipient string, lowerTick, upperTick int32, amount0Requested, amount1Requested *uint256.Int) (amount0, amount1 *uint256.Int, evt types.CollectEvent, err error) {
	if err := p.lock(); err != nil {
		return nil, nil, types.CollectEvent{}, err
	}
	defer p.unlock()

	key := positionKey{owner: caller, lowerTick: lowerTick, upperTick: upperTick}
	pos, ok := p.Positions[key]
	if !ok {
		pos = position.New(caller, lowerTick, upperTick)
		p.Positions[key] = pos
	}

	amount0 = amount0Requested
	if amount0.Cmp(pos.TokensOwed0) > 0 {
		amount0 = pos.TokensOwed0
	}
	amount1 = amount1Requested
	if amount1.Cmp(pos.TokensOwed1) > 0 {
		amount1 = pos.TokensOwed1
	}

	if !amount0.IsZero() {
		pos.TokensOwed0 = new(uint256.Int).Sub(pos.TokensOwed0, amount0)
		if err := payer.Transfer(ctx, recipient, types.Asset0, liquidityAsInt(amount0)); err != nil {
			return nil, nil, types.CollectEvent{}, err
		}
	}
	if !amount1.IsZero() {
		pos.TokensOwed1 = new(uint256.Int).Sub(pos.TokensOwed1, amount1)
		if err := payer.Transfer(ctx, recipient, types.Asset1, liquidityAsInt(amount1)); err != nil {
			return nil, nil, types.CollectEvent{}, err
		}
	}

	p.Logger.Debug("collect", "caller", caller, "recipient", recipient, "amount0", amount0.String(), "amount1", amount1.String())

	evt = types.CollectEvent{
		Owner: caller, Recipient: recipient, LowerTick: lowerTick, UpperTick: upperTick,
		Amount0: amount0.String(), Amount1: amount1.String(),
	}
	return amount0, amount1, evt, nil
}
