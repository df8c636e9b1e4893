package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAABBContains(t *testing.T) {
	outer := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	inner := AABB{Min: Vec3{X: -0.5, Y: -0.5, Z: -0.5}, Max: Vec3{X: 0.5, Y: 0.5, Z: 0.5}}
	assert.True(t, outer.Contains(inner))
	assert.False(t, inner.Contains(outer))
	assert.True(t, outer.Contains(outer))
}

func TestAABBDegenerate(t *testing.T) {
	assert.True(t, AABB{Min: Vec3{X: 1}, Max: Vec3{X: 1}}.Degenerate())
	assert.True(t, AABB{Min: Vec3{X: 2}, Max: Vec3{X: 1}}.Degenerate())
	assert.False(t, AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}.Degenerate())
}

func TestAABBIsFinite(t *testing.T) {
	assert.True(t, AABB{Min: Vec3{X: -1}, Max: Vec3{X: 1}}.IsFinite())
	assert.False(t, AABB{Min: Vec3{X: float32(math.NaN())}, Max: Vec3{X: 1}}.IsFinite())
}

func TestAABBContainsPoint(t *testing.T) {
	box := AABB{Min: Vec3{X: -1, Y: -1, Z: -1}, Max: Vec3{X: 1, Y: 1, Z: 1}}
	assert.True(t, box.ContainsPoint(Vec3{X: 0, Y: 0, Z: 0}))
	assert.True(t, box.ContainsPoint(Vec3{X: 1, Y: 1, Z: 1}))
	assert.False(t, box.ContainsPoint(Vec3{X: 1.1, Y: 0, Z: 0}))
}
