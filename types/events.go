package types

import "github.com/holiman/uint256"

// InitializeEvent is returned by Pool.Initialize.
type InitializeEvent struct {
	SqrtPriceX96 *uint256.Int
	Tick         int32
}

// MintEvent is returned by Pool.Mint.
type MintEvent struct {
	Sender     string
	Owner      string
	LowerTick  int32
	UpperTick  int32
	Liquidity  string
	Amount0    string
	Amount1    string
}

// CollectEvent is returned by Pool.Collect.
type CollectEvent struct {
	Owner     string
	Recipient string
	LowerTick int32
	UpperTick int32
	Amount0   string
	Amount1   string
}

// BurnEvent is returned by Pool.Burn.
type BurnEvent struct {
	Owner     string
	LowerTick int32
	UpperTick int32
	Liquidity string
	Amount0   string
	Amount1   string
}

// SwapEvent is returned by Pool.Swap.
type SwapEvent struct {
	Sender       string
	Recipient    string
	Amount0      string
	Amount1      string
	SqrtPriceX96 *uint256.Int
	Liquidity    string
	Tick         int32
}

// FlashEvent is returned by Pool.Flash.
type FlashEvent struct {
	Sender    string
	Recipient string
	Amount0   string
	Amount1   string
	Paid0     string
	Paid1     string
}

// SetFeeProtocolEvent is returned by Pool.SetFeeProtocol.
type SetFeeProtocolEvent struct {
	OldFeeProtocol0Old uint8
	OldFeeProtocol1Old uint8
	FeeProtocol0New    uint8
	FeeProtocol1New    uint8
}

// CollectProtocolEvent is returned by Pool.CollectProtocol.
type CollectProtocolEvent struct {
	Sender    string
	Recipient string
	Amount0   string
	Amount1   string
}

// IncreaseObservationCardinalityNextEvent is returned by
// Pool.IncreaseObservationCardinalityNext.
type IncreaseObservationCardinalityNextEvent struct {
	ObservationCardinalityNextOld uint16
	ObservationCardinalityNextNew uint16
}
