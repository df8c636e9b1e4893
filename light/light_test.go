package light

import (
	"testing"

	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
)

func TestNewNormalizesDirection(t *testing.T) {
	l := New(vecmath.Vec3{X: 0, Y: 10, Z: 0}, 1.5)
	assert.InDelta(t, 1.0, float64(vecmath.Length(l.Direction)), 1e-6)
	assert.Equal(t, float32(1.5), l.Intensity)
	assert.True(t, l.Enabled)
}

func TestLambertianClampsToZero(t *testing.T) {
	l := New(vecmath.Vec3{X: 0, Y: 1, Z: 0}, 1)
	facingAway := l.Lambertian(vecmath.Vec3{X: 0, Y: -1, Z: 0})
	assert.Equal(t, float32(0), facingAway)
}

func TestLambertianClampsToOne(t *testing.T) {
	l := New(vecmath.Vec3{X: 0, Y: 1, Z: 0}, 5)
	facing := l.Lambertian(vecmath.Vec3{X: 0, Y: 1, Z: 0})
	assert.Equal(t, float32(1), facing)
}

func TestLambertianDirectFace(t *testing.T) {
	l := New(vecmath.Vec3{X: 0, Y: 1, Z: 0}, 1)
	assert.InDelta(t, 1.0, float64(l.Lambertian(vecmath.Vec3{X: 0, Y: 1, Z: 0})), 1e-6)
}

func TestPresetsAreNormalizedAndEnabled(t *testing.T) {
	presets := []Light{
		ScientificFlat(), StudioSoft(), RimHighlight(), DepthEmphasis(), SideLight(), ThreeQuarter(),
	}
	for _, l := range presets {
		assert.InDelta(t, 1.0, float64(vecmath.Length(l.Direction)), 1e-4)
		assert.True(t, l.Enabled)
		assert.Greater(t, l.Intensity, float32(0))
	}
}
