package fixedpoint

import (
	"math/big"

	"github.com/holiman/uint256"

	"github.com/omnipool-labs/clmm-core/types"
)

// SwapStep is the outcome of advancing a swap as far as it can go
// within a single tick range: up to sqrtRatioTargetX96, or until
// amountRemaining is exhausted, whichever comes first.
type SwapStep struct {
	SqrtRatioNextX96 *uint256.Int
	AmountIn         *uint256.Int
	AmountOut        *uint256.Int
	FeeAmount        *uint256.Int
}

// ComputeSwapStep computes the result of swapping up to amountRemaining
// (positive for exact-input, negative for exact-output) between
// sqrtRatioCurrentX96 and sqrtRatioTargetX96 at the given liquidity and
// fee rate (feePips, parts per million of types.FeeDenominator).
func ComputeSwapStep(
	sqrtRatioCurrentX96, sqrtRatioTargetX96 *uint256.Int,
	liquidity *uint256.Int,
	amountRemaining *SignedAmount,
	feePips uint32,
) (SwapStep, error) {
	zeroForOne := sqrtRatioCurrentX96.Cmp(sqrtRatioTargetX96) >= 0
	exactIn := !amountRemaining.neg

	step := SwapStep{
		AmountIn:  uint256.NewInt(0),
		AmountOut: uint256.NewInt(0),
		FeeAmount: uint256.NewInt(0),
	}

	feeDenominator := uint256.NewInt(uint64(types.FeeDenominator))
	feePipsU := uint256.NewInt(uint64(feePips))

	var err error
	if exactIn {
		remainingLessFee, err2 := mulDiv(amountRemaining.abs, new(uint256.Int).Sub(feeDenominator, feePipsU), feeDenominator)
		if err2 != nil {
			return SwapStep{}, err2
		}
		if zeroForOne {
			step.AmountIn, err = GetAmount0Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, true)
		} else {
			step.AmountIn, err = GetAmount1Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, true)
		}
		if err != nil {
			return SwapStep{}, err
		}

		if remainingLessFee.Cmp(step.AmountIn) >= 0 {
			step.SqrtRatioNextX96 = new(uint256.Int).Set(sqrtRatioTargetX96)
		} else {
			step.SqrtRatioNextX96, err = GetNextSqrtPriceFromInput(sqrtRatioCurrentX96, liquidity, remainingLessFee, zeroForOne)
			if err != nil {
				return SwapStep{}, err
			}
		}
	} else {
		if zeroForOne {
			step.AmountOut, err = GetAmount1Delta(sqrtRatioTargetX96, sqrtRatioCurrentX96, liquidity, false)
		} else {
			step.AmountOut, err = GetAmount0Delta(sqrtRatioCurrentX96, sqrtRatioTargetX96, liquidity, false)
		}
		if err != nil {
			return SwapStep{}, err
		}

		if amountRemaining.abs.Cmp(step.AmountOut) >= 0 {
			step.SqrtRatioNextX96 = new(uint256.Int).Set(sqrtRatioTargetX96)
		} else {
			step.SqrtRatioNextX96, err = GetNextSqrtPriceFromOutput(sqrtRatioCurrentX96, liquidity, amountRemaining.abs, zeroForOne)
			if err != nil {
				return SwapStep{}, err
			}
		}
	}

	max := sqrtRatioTargetX96.Cmp(step.SqrtRatioNextX96) == 0

	if zeroForOne {
		if !(max && exactIn) {
			step.AmountIn, err = GetAmount0Delta(step.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, true)
			if err != nil {
				return SwapStep{}, err
			}
		}
		if !(max && !exactIn) {
			step.AmountOut, err = GetAmount1Delta(step.SqrtRatioNextX96, sqrtRatioCurrentX96, liquidity, false)
			if err != nil {
				return SwapStep{}, err
			}
		}
	} else {
		if !(max && exactIn) {
			step.AmountIn, err = GetAmount1Delta(sqrtRatioCurrentX96, step.SqrtRatioNextX96, liquidity, true)
			if err != nil {
				return SwapStep{}, err
			}
		}
		if !(max && !exactIn) {
			step.AmountOut, err = GetAmount0Delta(sqrtRatioCurrentX96, step.SqrtRatioNextX96, liquidity, false)
			if err != nil {
				return SwapStep{}, err
			}
		}
	}

	if !exactIn && step.AmountOut.Cmp(amountRemaining.abs) > 0 {
		step.AmountOut = new(uint256.Int).Set(amountRemaining.abs)
	}

	if exactIn && step.SqrtRatioNextX96.Cmp(sqrtRatioTargetX96) != 0 {
		step.FeeAmount = new(uint256.Int).Sub(amountRemaining.abs, step.AmountIn)
	} else {
		step.FeeAmount, err = mulDivRoundingUp(step.AmountIn, feePipsU, new(uint256.Int).Sub(feeDenominator, feePipsU))
		if err != nil {
			return SwapStep{}, err
		}
	}

	return step, nil
}

// SignedAmount is a minimal signed wrapper around *uint256.Int used
// only to carry amountRemaining's sign through ComputeSwapStep the way
// the pool's int256 amountSpecifiedRemaining does.
type SignedAmount struct {
	abs *uint256.Int
	neg bool
}

// NewSignedFromBig builds a SignedAmount from a math/big.Int, the form
// amountSpecified/amountSpecifiedRemaining naturally take when converted
// from a cosmossdk.io/math.Int.
func NewSignedFromBig(v *big.Int) *SignedAmount {
	if v.Sign() < 0 {
		return &SignedAmount{abs: uint256.MustFromBig(new(big.Int).Neg(v)), neg: true}
	}
	return &SignedAmount{abs: uint256.MustFromBig(v), neg: false}
}

// NewSigned builds a SignedAmount from an absolute magnitude and sign.
func NewSigned(abs *uint256.Int, neg bool) *SignedAmount {
	return &SignedAmount{abs: new(uint256.Int).Set(abs), neg: neg}
}

// IsNegative reports whether the amount is negative (an exact-output
// swap's amountRemaining).
func (s *SignedAmount) IsNegative() bool { return s.neg }

// Abs returns the unsigned magnitude.
func (s *SignedAmount) Abs() *uint256.Int { return new(uint256.Int).Set(s.abs) }
