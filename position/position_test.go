package position_test

import (
	"testing"

	"cosmossdk.io/math"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/omnipool-labs/clmm-core/position"
	"github.com/omnipool-labs/clmm-core/types"
)

func TestUpdate_PokeOnEmptyPositionFails(t *testing.T) {
	p := position.New("owner1", -60, 60)
	err := p.Update(math.ZeroInt(), uint256.NewInt(0), uint256.NewInt(0))
	require.Error(t, err)
}

func TestUpdate_AccruesFeesProportionalToLiquidity(t *testing.T) {
	p := position.New("owner1", -60, 60)
	require.NoError(t, p.Update(math.NewInt(1_000_000), uint256.NewInt(0), uint256.NewInt(0)))

	// feeGrowthInside advances by 1 << 128, i.e. one Q128.128 unit: a
	// rate of exactly one fee unit per unit of liquidity.
	feeGrowthDelta := new(uint256.Int).Lsh(uint256.NewInt(1), 128)
	require.NoError(t, p.Update(math.ZeroInt(), feeGrowthDelta, feeGrowthDelta))

	require.Equal(t, uint256.NewInt(1_000_000), p.TokensOwed0)
	require.Equal(t, uint256.NewInt(1_000_000), p.TokensOwed1)
}

func TestUpdate_BurningMoreThanDepositedFails(t *testing.T) {
	p := position.New("owner1", -60, 60)
	require.NoError(t, p.Update(math.NewInt(500), uint256.NewInt(0), uint256.NewInt(0)))

	err := p.Update(math.NewInt(-501), uint256.NewInt(0), uint256.NewInt(0))
	require.Error(t, err)
	require.IsType(t, types.InsufficientPositionLiquidityError{}, err)
	require.True(t, p.Liquidity.Equal(math.NewInt(500)), "a rejected burn must not mutate liquidity")
}

func TestUpdate_WithdrawingLiquidityStillAccruesFees(t *testing.T) {
	p := position.New("owner1", -60, 60)
	require.NoError(t, p.Update(math.NewInt(500), uint256.NewInt(0), uint256.NewInt(0)))

	err := p.Update(math.NewInt(-500), new(uint256.Int).Lsh(uint256.NewInt(1), 128), new(uint256.Int).Lsh(uint256.NewInt(1), 128))
	require.NoError(t, err)
	require.True(t, p.Liquidity.IsZero())
	require.Equal(t, uint256.NewInt(500), p.TokensOwed0)
}
