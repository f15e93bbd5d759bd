package oracle_test

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/omnipool-labs/clmm-core/oracle"
)

func TestInitialize_SeedsFirstSlot(t *testing.T) {
	r := oracle.NewRing()
	cardinality, cardinalityNext := r.Initialize(0)
	require.Equal(t, uint16(1), cardinality)
	require.Equal(t, uint16(1), cardinalityNext)
}

func TestWrite_NoOpWithinSameBlock(t *testing.T) {
	r := oracle.NewRing()
	r.Initialize(0)
	index, cardinality := r.Write(0, 1, 1, 0, 5, uint256.NewInt(1000))
	require.Equal(t, uint16(0), index)
	require.Equal(t, uint16(1), cardinality)
}

func TestWrite_AdvancesIndexAndAccumulates(t *testing.T) {
	r := oracle.NewRing()
	r.Initialize(0)
	cardinality, err := r.Grow(1, 3)
	require.NoError(t, err)

	index, cardinality := r.Write(0, cardinality, 3, 100, 0, uint256.NewInt(1000))
	require.Equal(t, uint16(1), index)

	index, cardinality = r.Write(index, cardinality, 3, 200, 100, uint256.NewInt(1000))
	require.Equal(t, uint16(2), index)
}

func TestObserveSingle_ZeroSecondsAgoReturnsLatest(t *testing.T) {
	r := oracle.NewRing()
	r.Initialize(0)
	index, cardinality := r.Write(0, 1, 1, 100, 0, uint256.NewInt(1000))

	tc, _, err := r.ObserveSingle(100, 0, 0, index, uint256.NewInt(1000), cardinality)
	require.NoError(t, err)
	require.Equal(t, int64(0), tc)
}

func TestObserveSingle_TWAPAcrossThreeObservations(t *testing.T) {
	r := oracle.NewRing()
	r.Initialize(0)
	cardinality, err := r.Grow(1, 3)
	require.NoError(t, err)

	index, cardinality := r.Write(0, cardinality, 3, 100, 100, uint256.NewInt(1000))
	index, cardinality = r.Write(index, cardinality, 3, 200, -50, uint256.NewInt(1000))

	tcAt200, _, err := r.ObserveSingle(200, 0, -50, index, uint256.NewInt(1000), cardinality)
	require.NoError(t, err)

	tcAt0, _, err := r.ObserveSingle(200, 200, -50, index, uint256.NewInt(1000), cardinality)
	require.NoError(t, err)
	require.Equal(t, int64(0), tcAt0)

	// tickCumulative(100) = 0 + 100*100 = 10000; tickCumulative(200) = 10000 + (-50)*100 = 5000.
	require.Equal(t, int64(5000), tcAt200)

	tcAt150, _, err := r.ObserveSingle(200, 50, -50, index, uint256.NewInt(1000), cardinality)
	require.NoError(t, err)
	require.Equal(t, int64(10000+(-50)*50), tcAt150)
}

func TestObserveSingle_TooOldFails(t *testing.T) {
	r := oracle.NewRing()
	r.Initialize(100)
	_, _, err := r.ObserveSingle(100, 200, 0, 0, uint256.NewInt(1000), 1)
	require.Error(t, err)
}
