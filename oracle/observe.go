package oracle

import (
	"github.com/holiman/uint256"
	"github.com/osmosis-labs/osmosis/osmomath"

	"github.com/omnipool-labs/clmm-core/types"
)

// lte is an overflow-safe "a <= b" for timestamps measured relative to
// time, matching the modulo-2^32 comparator the ring's monotonicity
// relies on once blockTimestamp itself has wrapped.
func lte(time, a, b uint32) bool {
	if a <= time && b <= time {
		return a <= b
	}
	aAdjusted := int64(a)
	if a > time {
		aAdjusted -= 1 << 32
	}
	bAdjusted := int64(b)
	if b > time {
		bAdjusted -= 1 << 32
	}
	return aAdjusted <= bAdjusted
}

// binarySearch finds the two observations straddling target among the
// populated (and possibly partially-initialized) ring slots, skipping
// over any entries that were reserved by Grow but never written.
func (r *Ring) binarySearch(time, target uint32, index, cardinality uint16) (beforeOrAt, atOrAfter Observation) {
	l := uint32(index+1) % uint32(cardinality)
	rr := l + uint32(cardinality) - 1

	for {
		i := (l + rr) / 2
		beforeOrAt = r.at(uint16(i % uint32(cardinality)))

		if !beforeOrAt.Initialized {
			l = i + 1
			continue
		}

		atOrAfter = r.at(uint16((i + 1) % uint32(cardinality)))

		targetAtOrAfter := lte(time, beforeOrAt.BlockTimestamp, target)

		if targetAtOrAfter && lte(time, target, atOrAfter.BlockTimestamp) {
			break
		}

		if !targetAtOrAfter {
			rr = i - 1
		} else {
			l = i + 1
		}
	}
	return beforeOrAt, atOrAfter
}

func (r *Ring) getSurroundingObservations(time, target uint32, tick int32, index uint16, liquidity *uint256.Int, cardinality uint16) (beforeOrAt, atOrAfter Observation, err error) {
	beforeOrAt = r.at(index)

	if lte(time, beforeOrAt.BlockTimestamp, target) {
		if beforeOrAt.BlockTimestamp == target {
			return beforeOrAt, atOrAfter, nil
		}
		return beforeOrAt, transform(beforeOrAt, target, tick, liquidity), nil
	}

	beforeOrAt = r.at((index + 1) % cardinality)
	if !beforeOrAt.Initialized {
		beforeOrAt = r.at(0)
	}
	if !lte(time, beforeOrAt.BlockTimestamp, target) {
		return Observation{}, Observation{}, types.ObservationTooOldError{
			OldestTimestamp:    beforeOrAt.BlockTimestamp,
			RequestedTimestamp: target,
		}
	}

	before, after := r.binarySearch(time, target, index, cardinality)
	return before, after, nil
}

// ObserveSingle returns the tickCumulative and
// secondsPerLiquidityCumulativeX128 accumulators as of secondsAgo
// seconds before time.
func (r *Ring) ObserveSingle(time uint32, secondsAgo uint32, tick int32, index uint16, liquidity *uint256.Int, cardinality uint16) (tickCumulative int64, secondsPerLiquidityCumulativeX128 *uint256.Int, err error) {
	if cardinality == 0 {
		return 0, nil, types.ObservationCardinalityError{}
	}

	if secondsAgo == 0 {
		last := r.at(index)
		if last.BlockTimestamp != time {
			last = transform(last, time, tick, liquidity)
		}
		return last.TickCumulative, last.SecondsPerLiquidityCumulativeX128, nil
	}

	target := time - secondsAgo

	beforeOrAt, atOrAfter, err := r.getSurroundingObservations(time, target, tick, index, liquidity, cardinality)
	if err != nil {
		return 0, nil, err
	}

	switch target {
	case beforeOrAt.BlockTimestamp:
		return beforeOrAt.TickCumulative, beforeOrAt.SecondsPerLiquidityCumulativeX128, nil
	case atOrAfter.BlockTimestamp:
		return atOrAfter.TickCumulative, atOrAfter.SecondsPerLiquidityCumulativeX128, nil
	default:
		observationTimeDelta := int64(atOrAfter.BlockTimestamp - beforeOrAt.BlockTimestamp)
		targetDelta := int64(target - beforeOrAt.BlockTimestamp)

		avgTick := AverageTick(atOrAfter.TickCumulative-beforeOrAt.TickCumulative, uint32(observationTimeDelta))
		tickCumulative = beforeOrAt.TickCumulative + avgTick.MulInt64(targetDelta).TruncateInt64()

		spDelta := new(uint256.Int).Sub(atOrAfter.SecondsPerLiquidityCumulativeX128, beforeOrAt.SecondsPerLiquidityCumulativeX128)
		spDelta = new(uint256.Int).Mul(spDelta, uint256.NewInt(uint64(targetDelta)))
		spDelta = new(uint256.Int).Div(spDelta, uint256.NewInt(uint64(observationTimeDelta)))

		secondsPerLiquidityCumulativeX128 = new(uint256.Int).Add(beforeOrAt.SecondsPerLiquidityCumulativeX128, spDelta)
		return tickCumulative, secondsPerLiquidityCumulativeX128, nil
	}
}

// Observe returns the tickCumulative and secondsPerLiquidityCumulativeX128
// accumulators for each entry in secondsAgos.
func (r *Ring) Observe(time uint32, secondsAgos []uint32, tick int32, index uint16, liquidity *uint256.Int, cardinality uint16) (tickCumulatives []int64, secondsPerLiquidityCumulativesX128 []*uint256.Int, err error) {
	tickCumulatives = make([]int64, len(secondsAgos))
	secondsPerLiquidityCumulativesX128 = make([]*uint256.Int, len(secondsAgos))
	for i, secondsAgo := range secondsAgos {
		tc, sp, err := r.ObserveSingle(time, secondsAgo, tick, index, liquidity, cardinality)
		if err != nil {
			return nil, nil, err
		}
		tickCumulatives[i] = tc
		secondsPerLiquidityCumulativesX128[i] = sp
	}
	return tickCumulatives, secondsPerLiquidityCumulativesX128, nil
}

// AverageTick converts a pair of observations' tickCumulative
// difference over the elapsed seconds into a time-weighted average
// tick, using osmomath.BigDec so ObserveSingle's interpolation step
// keeps fractional precision through the division instead of
// truncating it away before the final multiply.
func AverageTick(tickCumulativeDiff int64, secondsElapsed uint32) osmomath.BigDec {
	if secondsElapsed == 0 {
		return osmomath.ZeroBigDec()
	}
	return osmomath.NewBigDec(tickCumulativeDiff).QuoInt64(int64(secondsElapsed))
}
