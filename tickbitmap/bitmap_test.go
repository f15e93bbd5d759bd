package tickbitmap_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/omnipool-labs/clmm-core/tickbitmap"
)

func TestFlipTick_TogglesInitialized(t *testing.T) {
	m := tickbitmap.New()
	require.False(t, m.IsInitialized(60, 60))

	m.FlipTick(60, 60)
	require.True(t, m.IsInitialized(60, 60))

	m.FlipTick(60, 60)
	require.False(t, m.IsInitialized(60, 60))
}

func TestFlipTick_NegativeTicks(t *testing.T) {
	m := tickbitmap.New()
	m.FlipTick(-120, 60)
	require.True(t, m.IsInitialized(-120, 60))
	require.False(t, m.IsInitialized(-60, 60))
}

func TestNextInitializedTickWithinOneWord_Lte(t *testing.T) {
	m := tickbitmap.New()
	m.FlipTick(60, 60)
	m.FlipTick(120, 60)

	next, initialized := m.NextInitializedTickWithinOneWord(180, 60, true)
	require.True(t, initialized)
	require.Equal(t, int32(120), next)

	next, initialized = m.NextInitializedTickWithinOneWord(120, 60, true)
	require.True(t, initialized)
	require.Equal(t, int32(120), next)
}

func TestNextInitializedTickWithinOneWord_Gt(t *testing.T) {
	m := tickbitmap.New()
	m.FlipTick(60, 60)
	m.FlipTick(180, 60)

	next, initialized := m.NextInitializedTickWithinOneWord(0, 60, false)
	require.True(t, initialized)
	require.Equal(t, int32(60), next)
}

func TestNextInitializedTickWithinOneWord_NoneInWord(t *testing.T) {
	m := tickbitmap.New()
	_, initialized := m.NextInitializedTickWithinOneWord(0, 60, true)
	require.False(t, initialized)
}
