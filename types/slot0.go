package types

import "github.com/holiman/uint256"

// Slot0 mirrors the canonical "slot0" packed-storage struct: the
// frequently-read pieces of pool state that change on every price-moving
// operation.
type Slot0 struct {
	// SqrtPriceX96 is the current sqrt(price) as a Q64.96 fixed-point
	// value, price expressed as asset1 per asset0.
	SqrtPriceX96 *uint256.Int
	// Tick is the tick corresponding to SqrtPriceX96, or the tick just
	// below in the case the price is not an exact tick boundary.
	Tick int32
	// ObservationIndex is the index of the most recently written oracle
	// observation.
	ObservationIndex uint16
	// ObservationCardinality is the number of populated observation slots
	// currently in the oracle ring.
	ObservationCardinality uint16
	// ObservationCardinalityNext is the cardinality the ring will grow to
	// the next time it wraps.
	ObservationCardinalityNext uint16
	// FeeProtocol packs the protocol fee taken on top of the pool fee.
	FeeProtocol FeeProtocol
	// Unlocked is false while a reentrant call is in flight.
	Unlocked bool
}

// Clone returns a deep copy, so callers can hand out a Slot0 snapshot
// without letting the recipient mutate live pool state through the
// embedded pointer.
func (s Slot0) Clone() Slot0 {
	out := s
	if s.SqrtPriceX96 != nil {
		out.SqrtPriceX96 = new(uint256.Int).Set(s.SqrtPriceX96)
	}
	return out
}
