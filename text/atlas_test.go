package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphRectInRange(t *testing.T) {
	rect, ok := Builtin.GlyphRect('A')
	require.True(t, ok)
	assert.Equal(t, Builtin.CellWidth, rect.Dx())
	assert.Equal(t, Builtin.CellHeight, rect.Dy())
}

func TestGlyphRectOutOfRange(t *testing.T) {
	_, ok := Builtin.GlyphRect(0x01)
	assert.False(t, ok)
	_, ok = Builtin.GlyphRect(0x7F)
	assert.False(t, ok)
}

func TestGlyphRectsAreDistinctPerColumn(t *testing.T) {
	rectA, _ := Builtin.GlyphRect('A')
	rectB, _ := Builtin.GlyphRect('B')
	assert.NotEqual(t, rectA, rectB)
}

func TestUVNormalizedToUnitRange(t *testing.T) {
	minU, minV, maxU, maxV, ok := Builtin.UV('A')
	require.True(t, ok)
	assert.GreaterOrEqual(t, minU, float32(0))
	assert.GreaterOrEqual(t, minV, float32(0))
	assert.LessOrEqual(t, maxU, float32(1))
	assert.LessOrEqual(t, maxV, float32(1))
	assert.Less(t, minU, maxU)
	assert.Less(t, minV, maxV)
}

func TestUVOutOfRangeReturnsFalse(t *testing.T) {
	_, _, _, _, ok := Builtin.UV(0x00)
	assert.False(t, ok)
}
