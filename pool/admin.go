package pool

import (
	"context"

	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/tick"
	"github.com/omnipool-labs/clmm-core/types"
)

// SetFeeProtocol sets the protocol fee split for both swap directions.
// Owner-gated: only the pool's configured owner may call it.
func (p *Pool) SetFeeProtocol(caller string, feeProtocol0, feeProtocol1 uint8) (types.SetFeeProtocolEvent, error) {
	if caller != p.Config.Owner {
		return types.SetFeeProtocolEvent{}, types.NotOwnerError{}
	}

	next, err := types.NewFeeProtocol(feeProtocol0, feeProtocol1)
	if err != nil {
		return types.SetFeeProtocolEvent{}, err
	}

	old := p.Slot0.FeeProtocol
	p.Slot0.FeeProtocol = next

	p.Logger.Info("set fee protocol", "feeProtocol0", feeProtocol0, "feeProtocol1", feeProtocol1)

	return types.SetFeeProtocolEvent{
		OldFeeProtocol0Old: old.Denominator(true),
		OldFeeProtocol1Old: old.Denominator(false),
		FeeProtocol0New:    feeProtocol0,
		FeeProtocol1New:    feeProtocol1,
	}, nil
}

// CollectProtocol transfers up to amount{0,1}Requested of the
// accumulated protocol fees to recipient, capping silently at what is
// actually available. Owner-gated.
func (p *Pool) CollectProtocol(ctx context.Context, payer Payer, caller, recipient string, amount0Requested, amount1Requested *uint256.Int) (amount0, amount1 *uint256.Int, evt types.CollectProtocolEvent, err error) {
	if caller != p.Config.Owner {
		return nil, nil, types.CollectProtocolEvent{}, types.NotOwnerError{}
	}

	if err := p.lock(); err != nil {
		return nil, nil, types.CollectProtocolEvent{}, err
	}
	defer p.unlock()

	amount0 = amount0Requested
	if amount0.Cmp(p.ProtocolFees0) > 0 {
		amount0 = p.ProtocolFees0
	}
	amount1 = amount1Requested
	if amount1.Cmp(p.ProtocolFees1) > 0 {
		amount1 = p.ProtocolFees1
	}

	if !amount0.IsZero() {
		p.ProtocolFees0 = new(uint256.Int).Sub(p.ProtocolFees0, amount0)
		if err := payer.Transfer(ctx, recipient, types.Asset0, liquidityAsInt(amount0)); err != nil {
			return nil, nil, types.CollectProtocolEvent{}, err
		}
	}
	if !amount1.IsZero() {
		p.ProtocolFees1 = new(uint256.Int).Sub(p.ProtocolFees1, amount1)
		if err := payer.Transfer(ctx, recipient, types.Asset1, liquidityAsInt(amount1)); err != nil {
			return nil, nil, types.CollectProtocolEvent{}, err
		}
	}

	p.Logger.Info("collect protocol", "recipient", recipient, "amount0", amount0.String(), "amount1", amount1.String())

	evt = types.CollectProtocolEvent{Recipient: recipient, Amount0: amount0.String(), Amount1: amount1.String()}
	return amount0, amount1, evt, nil
}

// IncreaseObservationCardinalityNext reserves additional oracle ring
// capacity; a no-op if the pool's cardinalityNext is already at least
// desired.
func (p *Pool) IncreaseObservationCardinalityNext(desired uint16) (types.IncreaseObservationCardinalityNextEvent, error) {
	if err := p.lock(); err != nil {
		return types.IncreaseObservationCardinalityNextEvent{}, err
	}
	defer p.unlock()

	old := p.Slot0.ObservationCardinalityNext
	next, err := p.Oracle.Grow(old, desired)
	if err != nil {
		return types.IncreaseObservationCardinalityNextEvent{}, err
	}
	p.Slot0.ObservationCardinalityNext = next

	if next != old {
		p.Logger.Info("increased observation cardinality", "old", old, "new", next)
	}

	return types.IncreaseObservationCardinalityNextEvent{ObservationCardinalityNextOld: old, ObservationCardinalityNextNew: next}, nil
}

// SnapshotCumulativesInside returns the oracle accumulators attributable
// to the price having been inside [lowerTick, upperTick] as of now,
// using the same outside-subtraction trick as GetFeeGrowthInside. It is
// read-only and takes no lock.
func (p *Pool) SnapshotCumulativesInside(lowerTick, upperTick int32) (tickCumulativeInside int64, secondsPerLiquidityInsideX128 *uint256.Int, secondsInside uint32, err error) {
	lower, ok := p.Ticks[lowerTick]
	if !ok || !lower.Initialized {
		return 0, nil, 0, types.TickNotInitializedError{Tick: lowerTick}
	}
	upper, ok := p.Ticks[upperTick]
	if !ok || !upper.Initialized {
		return 0, nil, 0, types.TickNotInitializedError{Tick: upperTick}
	}

	now := p.now()
	tickCumulative, secondsPerLiquidityCumulativeX128, err := p.Oracle.ObserveSingle(
		now, 0, p.Slot0.Tick, p.Slot0.ObservationIndex, p.Liquidity, p.Slot0.ObservationCardinality,
	)
	if err != nil {
		return 0, nil, 0, err
	}

	tickCumulativeInside, secondsPerLiquidityInsideX128, secondsInside = tick.SnapshotCumulativesInside(
		lower, upper, lowerTick, upperTick, p.Slot0.Tick, tickCumulative, secondsPerLiquidityCumulativeX128, now,
	)
	return tickCumulativeInside, secondsPerLiquidityInsideX128, secondsInside, nil
}

// Observe returns the tickCumulative and secondsPerLiquidityCumulativeX128
// accumulators for each entry in secondsAgos. Read-only, no lock.
func (p *Pool) Observe(secondsAgos []uint32) ([]int64, []*uint256.Int, error) {
	return p.Oracle.Observe(p.now(), secondsAgos, p.Slot0.Tick, p.Slot0.ObservationIndex, p.Liquidity, p.Slot0.ObservationCardinality)
}
