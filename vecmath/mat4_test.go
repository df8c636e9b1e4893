package vecmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityMul(t *testing.T) {
	id := Identity4()
	m := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	assert.Equal(t, m, Mul4(id, m))
	assert.Equal(t, m, Mul4(m, id))
}

func TestLookAtRHMapsEyeToOrigin(t *testing.T) {
	m := LookAtRH(Vec3{X: 0, Y: 0, Z: 5}, Vec3{X: 0, Y: 0, Z: 0}, Vec3{X: 0, Y: 1, Z: 0})
	// eye maps to the origin of view space
	p := TransformPoint(m, Vec3{X: 0, Y: 0, Z: 5})
	assert.InDelta(t, 0, float64(p.X), 1e-4)
	assert.InDelta(t, 0, float64(p.Y), 1e-4)
	assert.InDelta(t, 0, float64(p.Z), 1e-4)
}

func TestPerspectiveRHMapsNearFar(t *testing.T) {
	m := PerspectiveRH(float32(math.Pi)/2, 1, 1, 100)
	// a point on the near plane's center maps to NDC z=0
	_, _, zNear, wNear := TransformHomogeneous(m, Vec3{X: 0, Y: 0, Z: -1})
	assert.InDelta(t, 0, float64(zNear/wNear), 1e-4)

	_, _, zFar, wFar := TransformHomogeneous(m, Vec3{X: 0, Y: 0, Z: -100})
	assert.InDelta(t, 1, float64(zFar/wFar), 1e-4)
}

func TestOrthographicRHMapsNearFar(t *testing.T) {
	m := OrthographicRH(2, 1, 1, 100)
	p := TransformPoint(m, Vec3{X: 0, Y: 0, Z: -1})
	assert.InDelta(t, 0, float64(p.Z), 1e-4)
	p = TransformPoint(m, Vec3{X: 0, Y: 0, Z: -100})
	assert.InDelta(t, 1, float64(p.Z), 1e-4)
}

func TestTransformPointIdentity(t *testing.T) {
	p := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, p, TransformPoint(Identity4(), p))
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Identity4()
	m[12], m[13], m[14] = 10, 20, 30
	v := Vec3{X: 1, Y: 2, Z: 3}
	assert.Equal(t, v, TransformDirection(m, v))
}

func TestTransformHomogeneousW(t *testing.T) {
	x, y, z, w := TransformHomogeneous(Identity4(), Vec3{X: 1, Y: 2, Z: 3})
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(2), y)
	assert.Equal(t, float32(3), z)
	assert.Equal(t, float32(1), w)
}
