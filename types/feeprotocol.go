package types

// FeeProtocol packs the two protocol-fee denominators (one per swap
// direction) into a single byte: the low nibble is the denominator
// charged against fees collected swapping asset0 for asset1, the high
// nibble against fees collected swapping asset1 for asset0. Each
// nibble is either 0 (protocol takes no cut) or in [4, 10].
type FeeProtocol uint8

// NewFeeProtocol validates and packs a pair of denominators.
func NewFeeProtocol(asset0Denominator, asset1Denominator uint8) (FeeProtocol, error) {
	if err := validateFeeProtocolComponent(asset0Denominator); err != nil {
		return 0, err
	}
	if err := validateFeeProtocolComponent(asset1Denominator); err != nil {
		return 0, err
	}
	return FeeProtocol(asset0Denominator | asset1Denominator<<4), nil
}

func validateFeeProtocolComponent(v uint8) error {
	if v == 0 {
		return nil
	}
	if v < 4 || v > 10 {
		return InvalidFeeProtocolError{Value: v}
	}
	return nil
}

// Denominator returns the protocol-fee denominator that applies to fees
// collected from swaps in the given direction, and whether the
// protocol takes a cut at all (denominator == 0 means it does not).
func (f FeeProtocol) Denominator(zeroForOne bool) uint8 {
	if zeroForOne {
		return uint8(f) & 0x0F
	}
	return uint8(f) >> 4
}
