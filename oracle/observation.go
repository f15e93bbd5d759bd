// Package oracle implements the price/liquidity time-weighted oracle: a
// circular buffer of observations recording the running tick and
// seconds-per-liquidity accumulators, queryable by a binary search over
// arbitrary lookback windows.
package oracle

import (
	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// Observation is a single ring-buffer entry.
type Observation struct {
	BlockTimestamp                    uint32
	TickCumulative                    int64
	SecondsPerLiquidityCumulativeX128 *uint256.Int
	Initialized                       bool
}

// Ring is the pool's oracle: a lazily-grown slice standing in for the
// fixed [65535]Observation array, indexed the same way.
type Ring struct {
	observations []Observation
}

// NewRing returns an empty, uninitialized oracle.
func NewRing() *Ring {
	return &Ring{}
}

// Cardinality returns the length of the backing slice: the written slots
// plus any slots reserved by Grow that have not been written yet.
func (r *Ring) Cardinality() uint16 {
	return uint16(len(r.observations))
}

func (r *Ring) at(i uint16) Observation {
	return r.observations[int(i)%len(r.observations)]
}

// Initialize seeds index 0 with an observation at time whose
// accumulators are zero, and returns the starting (cardinality, cardinalityNext) pair.
func (r *Ring) Initialize(time uint32) (cardinality, cardinalityNext uint16) {
	r.observations = []Observation{{
		BlockTimestamp:                    time,
		TickCumulative:                    0,
		SecondsPerLiquidityCumulativeX128: new(uint256.Int),
		Initialized:                       true,
	}}
	return 1, 1
}

// transform extrapolates an observation forward to blockTimestamp given
// the tick and liquidity that have been active since last.
func transform(last Observation, blockTimestamp uint32, tick int32, liquidity *uint256.Int) Observation {
	delta := int64(blockTimestamp - last.BlockTimestamp)

	l := liquidity
	if l.IsZero() {
		l = uint256.NewInt(1)
	}
	shifted := new(uint256.Int).Lsh(uint256.NewInt(uint64(delta)), types.Q128Resolution)
	secondsPerLiquidityDelta := new(uint256.Int).Div(shifted, l)

	return Observation{
		BlockTimestamp:                    blockTimestamp,
		TickCumulative:                    last.TickCumulative + int64(tick)*delta,
		SecondsPerLiquidityCumulativeX128: new(uint256.Int).Add(last.SecondsPerLiquidityCumulativeX128, secondsPerLiquidityDelta),
		Initialized:                       true,
	}
}

// Write appends a new observation if blockTimestamp has advanced past
// the current head, growing into cardinalityNext reservations along the
// way, and returns the new (index, cardinality).
func (r *Ring) Write(index, cardinality, cardinalityNext uint16, blockTimestamp uint32, tick int32, liquidity *uint256.Int) (indexUpdated, cardinalityUpdated uint16) {
	last := r.at(index)
	if last.BlockTimestamp == blockTimestamp {
		return index, cardinality
	}

	if cardinalityNext > cardinality && index == cardinality-1 {
		cardinalityUpdated = cardinalityNext
	} else {
		cardinalityUpdated = cardinality
	}

	indexUpdated = (index + 1) % cardinalityUpdated
	r.ensureLen(int(indexUpdated) + 1)
	r.observations[indexUpdated] = transform(last, blockTimestamp, tick, liquidity)
	return indexUpdated, cardinalityUpdated
}

func (r *Ring) ensureLen(n int) {
	for len(r.observations) < n {
		r.observations = append(r.observations, Observation{})
	}
}

// Grow reserves additional ring capacity for future writes without
// immediately populating it; a caller pays the one-time storage cost of
// a larger ring by raising cardinalityNext.
func (r *Ring) Grow(current, next uint16) (uint16, error) {
	if current == 0 {
		return 0, types.ObservationCardinalityError{}
	}
	if next <= current {
		return current, nil
	}
	r.ensureLen(int(next))
	for i := current; i < next; i++ {
		r.observations[i].BlockTimestamp = 1
	}
	return next, nil
}
