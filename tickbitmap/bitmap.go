// Package tickbitmap implements the word-packed bitmap that tracks
// which ticks (spaced by a pool's tickSpacing) are initialized, so a
// swap can jump directly to the next initialized tick instead of
// stepping one tick at a time.
package tickbitmap

import (
	"github.com/holiman/uint256"
)

// Map is a sparse bitmap of initialized ticks, keyed by the tick's
// compressed value (tick / tickSpacing) packed 256-to-a-word.
type Map struct {
	words map[int16]*uint256.Int
}

// New returns an empty bitmap.
func New() *Map {
	return &Map{words: make(map[int16]*uint256.Int)}
}

// Position splits a compressed tick into its word index and the bit
// position within that word.
func Position(compressedTick int32) (wordPos int16, bitPos uint8) {
	wordPos = int16(compressedTick >> 8)
	bitPos = uint8(uint32(compressedTick) % 256)
	return wordPos, bitPos
}

// compress converts a raw tick to its compressed form, rounding toward
// negative infinity the same way Solidity's division does for negative
// ticks (Go's integer division truncates toward zero, so negative,
// non-exact ticks need an explicit correction).
func compress(tick, tickSpacing int32) int32 {
	quotient := tick / tickSpacing
	if tick%tickSpacing != 0 && tick < 0 {
		quotient--
	}
	return quotient
}

// FlipTick toggles whether a tick is marked initialized. tick must
// already be a multiple of tickSpacing.
func (m *Map) FlipTick(tick, tickSpacing int32) {
	compressed := compress(tick, tickSpacing)
	wordPos, bitPos := Position(compressed)
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), uint(bitPos))

	word, ok := m.words[wordPos]
	if !ok {
		word = new(uint256.Int)
		m.words[wordPos] = word
	}
	word.Xor(word, mask)
}

// IsInitialized reports whether tick is marked initialized.
func (m *Map) IsInitialized(tick, tickSpacing int32) bool {
	compressed := compress(tick, tickSpacing)
	wordPos, bitPos := Position(compressed)
	word, ok := m.words[wordPos]
	if !ok {
		return false
	}
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), uint(bitPos))
	return !new(uint256.Int).And(word, mask).IsZero()
}

// NextInitializedTickWithinOneWord finds the next initialized tick
// contained in the same word as tick, searching right-to-left and
// including tick itself (lte=true, toward lower ticks) or strictly
// left-to-right starting at the next compressed tick (lte=false, toward
// higher ticks). It returns the found tick (or the edge of the word if
// none is initialized) and whether that tick is actually initialized.
func (m *Map) NextInitializedTickWithinOneWord(tick, tickSpacing int32, lte bool) (next int32, initialized bool) {
	compressed := compress(tick, tickSpacing)

	if lte {
		wordPos, bitPos := Position(compressed)
		masked := new(uint256.Int).And(m.wordAt(wordPos), maskLTE(bitPos))
		initialized = !masked.IsZero()
		bit := uint8(0)
		if initialized {
			bit = msb(masked)
		}
		next = (int32(wordPos)*256 + int32(bit)) * tickSpacing
		return next, initialized
	}

	wordPos, bitPos := Position(compressed + 1)
	masked := new(uint256.Int).And(m.wordAt(wordPos), maskGTE(bitPos))
	initialized = !masked.IsZero()
	bit := uint8(255)
	if initialized {
		bit = lsb(masked)
	}
	next = (int32(wordPos)*256 + int32(bit)) * tickSpacing
	return next, initialized
}

func (m *Map) wordAt(wordPos int16) *uint256.Int {
	if w, ok := m.words[wordPos]; ok {
		return w
	}
	return new(uint256.Int)
}

// maskLTE returns a mask with bits [0, bitPos] set.
func maskLTE(bitPos uint8) *uint256.Int {
	if bitPos == 255 {
		return new(uint256.Int).Not(uint256.NewInt(0))
	}
	one := new(uint256.Int).Lsh(uint256.NewInt(1), uint(bitPos)+1)
	return new(uint256.Int).SubUint64(one, 1)
}

// maskGTE returns a mask with bits [bitPos, 255] set.
func maskGTE(bitPos uint8) *uint256.Int {
	all := new(uint256.Int).Not(uint256.NewInt(0))
	if bitPos == 0 {
		return all
	}
	return new(uint256.Int).Xor(all, maskLTE(bitPos-1))
}

// msb returns the index of the most significant set bit of a nonzero
// 256-bit word.
func msb(x *uint256.Int) uint8 {
	for i := 255; i >= 0; i-- {
		if bitSet(x, uint(i)) {
			return uint8(i)
		}
	}
	return 0
}

// lsb returns the index of the least significant set bit of a nonzero
// 256-bit word.
func lsb(x *uint256.Int) uint8 {
	for i := uint(0); i < 256; i++ {
		if bitSet(x, i) {
			return uint8(i)
		}
	}
	return 0
}

func bitSet(x *uint256.Int, i uint) bool {
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), i)
	return !new(uint256.Int).And(x, mask).IsZero()
}
