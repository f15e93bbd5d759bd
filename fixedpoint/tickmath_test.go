package fixedpoint_test

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/omnipool-labs/clmm-core/fixedpoint"
	"github.com/omnipool-labs/clmm-core/types"
)

func TestGetSqrtRatioAtTick_Bounds(t *testing.T) {
	got, err := fixedpoint.GetSqrtRatioAtTick(types.MinTick)
	require.NoError(t, err)
	require.Equal(t, types.MinSqrtRatio.ToBig(), got.ToBig())

	got, err = fixedpoint.GetSqrtRatioAtTick(types.MaxTick)
	require.NoError(t, err)
	require.Equal(t, types.MaxSqrtRatio.ToBig(), got.ToBig())
}

func TestGetSqrtRatioAtTick_OutOfBounds(t *testing.T) {
	_, err := fixedpoint.GetSqrtRatioAtTick(types.MinTick - 1)
	require.Error(t, err)

	_, err = fixedpoint.GetSqrtRatioAtTick(types.MaxTick + 1)
	require.Error(t, err)
}

func TestGetSqrtRatioAtTick_ZeroIsUnity(t *testing.T) {
	got, err := fixedpoint.GetSqrtRatioAtTick(0)
	require.NoError(t, err)
	require.Equal(t, types.Q96.ToBig(), got.ToBig())
}

func TestTickSqrtPriceRoundTrip(t *testing.T) {
	for _, tick := range []int32{-443636, -887272, -1000, -1, 0, 1, 1000, 443636, 887272} {
		ratio, err := fixedpoint.GetSqrtRatioAtTick(tick)
		require.NoError(t, err)

		recovered, err := fixedpoint.GetTickAtSqrtRatio(ratio)
		require.NoError(t, err)
		require.Equal(t, tick, recovered, "round trip for tick %d", tick)
	}
}

func TestGetAmount0Delta_Monotonic(t *testing.T) {
	low, err := fixedpoint.GetSqrtRatioAtTick(-100)
	require.NoError(t, err)
	high, err := fixedpoint.GetSqrtRatioAtTick(100)
	require.NoError(t, err)
	liquidity := uint256.NewInt(1_000_000_000)

	amt, err := fixedpoint.GetAmount0Delta(low, high, liquidity, false)
	require.NoError(t, err)
	require.False(t, amt.IsZero())

	amtRoundedUp, err := fixedpoint.GetAmount0Delta(low, high, liquidity, true)
	require.NoError(t, err)
	require.True(t, amtRoundedUp.Cmp(amt) >= 0)
}

func TestGetAmount1Delta_ZeroRangeIsZero(t *testing.T) {
	price, err := fixedpoint.GetSqrtRatioAtTick(500)
	require.NoError(t, err)
	amt, err := fixedpoint.GetAmount1Delta(price, price, uint256.NewInt(42), false)
	require.NoError(t, err)
	require.True(t, amt.IsZero())
}

func TestGetNextSqrtPriceFromInput_ZeroForOneDecreasesPrice(t *testing.T) {
	price := types.Q96
	liquidity := uint256.NewInt(1_000_000)
	next, err := fixedpoint.GetNextSqrtPriceFromInput(price, liquidity, uint256.NewInt(1_000), true)
	require.NoError(t, err)
	require.True(t, next.Cmp(price) < 0)
}

func TestGetNextSqrtPriceFromInput_OneForZeroIncreasesPrice(t *testing.T) {
	price := types.Q96
	liquidity := uint256.NewInt(1_000_000)
	next, err := fixedpoint.GetNextSqrtPriceFromInput(price, liquidity, uint256.NewInt(1_000), false)
	require.NoError(t, err)
	require.True(t, next.Cmp(price) > 0)
}

func TestComputeSwapStep_ExactInNeverPassesTarget(t *testing.T) {
	current := types.Q96
	target, err := fixedpoint.GetSqrtRatioAtTick(10)
	require.NoError(t, err)
	liquidity := uint256.NewInt(2_000_000_000_000)

	step, err := fixedpoint.ComputeSwapStep(
		current, target, liquidity,
		fixedpoint.NewSignedFromBig(big.NewInt(1_000_000_000)),
		3000,
	)
	require.NoError(t, err)
	require.NotNil(t, step.SqrtRatioNextX96)
	require.True(t, step.SqrtRatioNextX96.Cmp(current) >= 0)
	require.True(t, step.SqrtRatioNextX96.Cmp(target) <= 0)
	require.False(t, step.FeeAmount.IsZero())
}

func TestComputeSwapStep_ExactOutNeverExceedsRemaining(t *testing.T) {
	current := types.Q96
	target, err := fixedpoint.GetSqrtRatioAtTick(-10)
	require.NoError(t, err)
	liquidity := uint256.NewInt(2_000_000_000_000)

	step, err := fixedpoint.ComputeSwapStep(
		current, target, liquidity,
		fixedpoint.NewSignedFromBig(big.NewInt(-500)),
		3000,
	)
	require.NoError(t, err)
	require.True(t, step.AmountOut.Cmp(uint256.NewInt(500)) <= 0)
}
