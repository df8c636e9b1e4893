package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepthBufferInitializesToFarPlane(t *testing.T) {
	d := newDepthBuffer(2, 2)
	for _, z := range d.z {
		assert.Equal(t, float32(1), z)
	}
}

func TestDepthBufferTestRejectsFartherFragment(t *testing.T) {
	d := newDepthBuffer(2, 2)
	require.True(t, d.test(0, 0, 0.5))
	assert.False(t, d.test(0, 0, 0.8))
	assert.True(t, d.test(0, 0, 0.2))
}

func TestDepthBufferTestOutOfBoundsFails(t *testing.T) {
	d := newDepthBuffer(2, 2)
	assert.False(t, d.test(-1, 0, 0.1))
	assert.False(t, d.test(0, 5, 0.1))
}

func TestRasterizeTriangleFillsInterior(t *testing.T) {
	img := newImage(10, 10)
	depth := newDepthBuffer(10, 10)
	v0 := screenVertex{x: 1, y: 1, z: 0.5}
	v1 := screenVertex{x: 8, y: 1, z: 0.5}
	v2 := screenVertex{x: 4, y: 8, z: 0.5}
	shade := flatShader([4]float32{1, 0, 0, 1}, [4]float32{1, 0, 0, 1}, [4]float32{1, 0, 0, 1})
	rasterizeTriangle(img, depth, v0, v1, v2, shade)
	r, _, _, a := img.at(4, 3)
	assert.Equal(t, byte(255), r)
	assert.Equal(t, byte(255), a)
}

func TestRasterizeTriangleSkipsDegenerate(t *testing.T) {
	img := newImage(10, 10)
	depth := newDepthBuffer(10, 10)
	v0 := screenVertex{x: 1, y: 1, z: 0.5}
	shade := flatShader([4]float32{1, 0, 0, 1}, [4]float32{1, 0, 0, 1}, [4]float32{1, 0, 0, 1})
	rasterizeTriangle(img, depth, v0, v0, v0, shade)
	for _, p := range img.Pixels {
		assert.Equal(t, byte(0), p)
	}
}

func TestBlendOverOpaqueSourceReplacesDestination(t *testing.T) {
	img := newImage(1, 1)
	img.set(0, 0, 10, 20, 30, 255)
	blendOver(img, 0, 0, 1, 0, 0, 1)
	r, g, b, a := img.at(0, 0)
	assert.Equal(t, byte(255), r)
	assert.Equal(t, byte(0), g)
	assert.Equal(t, byte(0), b)
	assert.Equal(t, byte(255), a)
}

func TestBlendOverTransparentSourceLeavesDestination(t *testing.T) {
	img := newImage(1, 1)
	img.set(0, 0, 10, 20, 30, 255)
	blendOver(img, 0, 0, 1, 1, 1, 0)
	r, g, b, a := img.at(0, 0)
	assert.Equal(t, byte(10), r)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(30), b)
	assert.Equal(t, byte(255), a)
}

func TestBlendOverOpaquePartialIntensityPreservesValue(t *testing.T) {
	img := newImage(1, 1)
	img.set(0, 0, 0, 0, 0, 255)
	blendOver(img, 0, 0, 0.5, 0.5, 0.5, 1)
	r, g, b, a := img.at(0, 0)
	assert.InDelta(t, 128, int(r), 1)
	assert.InDelta(t, 128, int(g), 1)
	assert.InDelta(t, 128, int(b), 1)
	assert.Equal(t, byte(255), a)
}

func TestPerpendicular2DIsUnitAndOrthogonal(t *testing.T) {
	px, py := perpendicular2D(3, 0)
	assert.InDelta(t, 0, float64(px), 1e-6)
	assert.InDelta(t, 1, float64(py), 1e-6)
}

func TestPerpendicular2DZeroVectorIsZero(t *testing.T) {
	px, py := perpendicular2D(0, 0)
	assert.Equal(t, float32(0), px)
	assert.Equal(t, float32(0), py)
}
