package types

import (
	"fmt"

	sdkerrors "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

const codespace = "concentratedliquidity"

// Coarse-grained error classes, registered the way the teacher module
// registers its sentinel codes, used to Wrap/Wrapf ad-hoc failures that
// don't warrant a dedicated typed error.
var (
	ErrArgument     = sdkerrors.Register(codespace, 2, "invalid argument")
	ErrInvariant    = sdkerrors.Register(codespace, 3, "invariant violation")
	ErrReentrant    = sdkerrors.Register(codespace, 4, "reentrant call")
	ErrArithmetic   = sdkerrors.Register(codespace, 5, "arithmetic overflow")
	ErrPayment      = sdkerrors.Register(codespace, 6, "payment verification failed")
	ErrUnauthorized = sdkerrors.Register(codespace, 7, "unauthorized")
)

// AlreadyInitializedError is returned by Initialize on a pool that has
// already been seeded. Failure code: AI.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "pool is already initialized"
}

// InvalidTickError is returned when a tick lies outside [MinTick, MaxTick].
// Failure codes: TLM (lower) / TUM (upper).
type InvalidTickError struct {
	Tick    int32
	IsLower bool
}

func (e InvalidTickError) Error() string {
	side := "upper"
	if e.IsLower {
		side = "lower"
	}
	return fmt.Sprintf("%s tick %d is out of bounds [%d, %d]", side, e.Tick, MinTick, MaxTick)
}

// InvalidLowerUpperTickError is returned when tickLower >= tickUpper.
// Failure code: TLU.
type InvalidLowerUpperTickError struct {
	LowerTick int32
	UpperTick int32
}

func (e InvalidLowerUpperTickError) Error() string {
	return fmt.Sprintf("lower tick %d must be less than upper tick %d", e.LowerTick, e.UpperTick)
}

// TickSpacingError is returned when a tick is not a multiple of the
// pool's tickSpacing.
type TickSpacingError struct {
	TickSpacing int32
	Tick        int32
}

func (e TickSpacingError) Error() string {
	return fmt.Sprintf("tick %d is not a multiple of tick spacing %d", e.Tick, e.TickSpacing)
}

// LiquidityOverflowError is returned when a tick's liquidityGross would
// exceed maxLiquidityPerTick or drop below zero. Failure code: LO.
type LiquidityOverflowError struct {
	TickIndex           int32
	LiquidityGross      math.Int
	MaxLiquidityPerTick math.Int
}

func (e LiquidityOverflowError) Error() string {
	return fmt.Sprintf("liquidityGross %s at tick %d would exceed maxLiquidityPerTick %s", e.LiquidityGross, e.TickIndex, e.MaxLiquidityPerTick)
}

// InsufficientPositionLiquidityError is returned by Position.Update when
// a liquidityDelta would drive the position's liquidity negative, i.e.
// the caller is trying to burn more than the position ever received.
type InsufficientPositionLiquidityError struct {
	Owner          string
	LowerTick      int32
	UpperTick      int32
	Liquidity      math.Int
	LiquidityDelta math.Int
}

func (e InsufficientPositionLiquidityError) Error() string {
	return fmt.Sprintf("position %s [%d, %d] holds liquidity %s, cannot apply delta %s", e.Owner, e.LowerTick, e.UpperTick, e.Liquidity, e.LiquidityDelta)
}

// InsufficientLiquidityCreatedError describes an owed amount that is
// below a caller's minimum, per asset (IsTokenZero). No operation in
// this module returns it: Mint reports its M0 / M1 underpayment as
// UnderpaidError.
type InsufficientLiquidityCreatedError struct {
	Actual      math.Int
	Minimum     math.Int
	IsTokenZero bool
}

func (e InsufficientLiquidityCreatedError) Error() string {
	asset := "token1"
	if e.IsTokenZero {
		asset = "token0"
	}
	return fmt.Sprintf("%s amount %s is less than minimum %s", asset, e.Actual, e.Minimum)
}

// NoPositionError is returned by Position.Update (reached through burn)
// for a position with zero liquidity and a zero liquidity delta (an
// empty "poke").
// Failure code: NP.
type NoPositionError struct {
	LowerTick int32
	UpperTick int32
}

func (e NoPositionError) Error() string {
	return fmt.Sprintf("no position with liquidity in range [%d, %d]", e.LowerTick, e.UpperTick)
}

// ZeroAmountSpecifiedError is returned by swap when amountSpecified == 0.
// Failure code: AS.
type ZeroAmountSpecifiedError struct{}

func (e ZeroAmountSpecifiedError) Error() string {
	return "amountSpecified must be nonzero"
}

// InvalidSqrtPriceLimitError is returned when a swap's price limit is on
// the wrong side of the current price or not strictly between
// MinSqrtRatio and MaxSqrtRatio, and by GetTickAtSqrtRatio for a price
// outside [MinSqrtRatio, MaxSqrtRatio]. Failure code: SPL.
type InvalidSqrtPriceLimitError struct {
	SqrtPriceLimitX96 string
	CurrentSqrtPriceX96 string
	ZeroForOne          bool
}

func (e InvalidSqrtPriceLimitError) Error() string {
	return fmt.Sprintf("sqrtPriceLimitX96 %s is invalid for current price %s (zeroForOne=%v)", e.SqrtPriceLimitX96, e.CurrentSqrtPriceX96, e.ZeroForOne)
}

// LockedError is returned when a state-mutating operation is invoked
// while the reentrancy lock is already held. Failure code: LOK.
type LockedError struct{}

func (e LockedError) Error() string {
	return "pool is locked (reentrant call)"
}

// Unwrap makes LockedError classify as ErrReentrant under errors.Is.
func (e LockedError) Unwrap() error {
	return ErrReentrant
}

// UnderpaidError is returned when a mint/swap/flash payment callback
// fails to bring the pool's balance up to the required amount. Failure
// codes: M0/M1 (mint), IIA (swap), F0/F1 (flash).
type UnderpaidError struct {
	Asset     Asset
	Operation string
	Required  math.Int
	Delta     math.Int
}

func (e UnderpaidError) Error() string {
	return fmt.Sprintf("%s: %s balance increased by %s, required %s", e.Operation, e.Asset, e.Delta, e.Required)
}

// Unwrap makes UnderpaidError classify as ErrPayment under errors.Is.
func (e UnderpaidError) Unwrap() error {
	return ErrPayment
}

// ZeroLiquidityError is returned by flash when the pool currently has
// no in-range liquidity to attribute fees to. Failure code: L.
type ZeroLiquidityError struct{}

func (e ZeroLiquidityError) Error() string {
	return "pool has zero liquidity"
}

// InvalidFeeProtocolError is returned by setFeeProtocol for a
// denominator that is nonzero and outside [4, 10].
type InvalidFeeProtocolError struct {
	Value uint8
}

func (e InvalidFeeProtocolError) Error() string {
	return fmt.Sprintf("feeProtocol denominator %d must be 0 or in [4, 10]", e.Value)
}

// NotOwnerError is returned by owner-gated entrypoints (setFeeProtocol,
// collectProtocol) when called by anyone but the pool's configured
// owner.
type NotOwnerError struct{}

func (e NotOwnerError) Error() string {
	return "caller is not the pool owner"
}

// Unwrap makes NotOwnerError classify as ErrUnauthorized under errors.Is.
func (e NotOwnerError) Unwrap() error {
	return ErrUnauthorized
}

// ObservationCardinalityError is returned by observe when the oracle
// has not yet been seeded (cardinality == 0). Failure code: I.
type ObservationCardinalityError struct{}

func (e ObservationCardinalityError) Error() string {
	return "oracle has not been initialized"
}

// ObservationTooOldError is returned by observe/observeSingle when the
// requested lookback predates the oldest retained observation. Failure
// code: OLD.
type ObservationTooOldError struct {
	OldestTimestamp    uint32
	RequestedTimestamp uint32
}

func (e ObservationTooOldError) Error() string {
	return fmt.Sprintf("observation at %d is older than the oldest retained observation %d", e.RequestedTimestamp, e.OldestTimestamp)
}

// TickNotInitializedError is returned by snapshotCumulativesInside when
// either endpoint tick is not initialized.
type TickNotInitializedError struct {
	Tick int32
}

func (e TickNotInitializedError) Error() string {
	return fmt.Sprintf("tick %d is not initialized", e.Tick)
}
