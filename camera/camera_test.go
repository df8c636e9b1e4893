package camera

import (
	"math"
	"testing"

	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
)

func TestProjectionString(t *testing.T) {
	assert.Equal(t, "perspective", Perspective.String())
	assert.Equal(t, "orthographic", Orthographic.String())
	assert.Equal(t, "unknown", Projection(99).String())
}

func TestViewMatrixPlacesEyeAtOrigin(t *testing.T) {
	c := Camera{
		Eye:    vecmath.Vec3{X: 0, Y: 0, Z: 5},
		Target: vecmath.Vec3{X: 0, Y: 0, Z: 0},
		Up:     vecmath.Vec3{X: 0, Y: 1, Z: 0},
	}
	p := vecmath.TransformPoint(c.ViewMatrix(), c.Eye)
	assert.InDelta(t, 0, float64(p.X), 1e-4)
	assert.InDelta(t, 0, float64(p.Y), 1e-4)
	assert.InDelta(t, 0, float64(p.Z), 1e-4)
}

func TestProjectionMatrixSelectsByKind(t *testing.T) {
	persp := Camera{Projection: Perspective, FovY: 60, Near: 0.1, Far: 100}
	ortho := Camera{Projection: Orthographic, ViewHeight: 4, Near: 0.1, Far: 100}

	wantPersp := vecmath.PerspectiveRH(60*float32(math.Pi)/180, 1.5, 0.1, 100)
	assert.Equal(t, wantPersp, persp.ProjectionMatrix(1.5))

	wantOrtho := vecmath.OrthographicRH(4, 1.5, 0.1, 100)
	assert.Equal(t, wantOrtho, ortho.ProjectionMatrix(1.5))
}

func TestViewProjectionMatrixComposes(t *testing.T) {
	c := Camera{
		Eye: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Target: vecmath.Vec3{}, Up: vecmath.Vec3{X: 0, Y: 1, Z: 0},
		Projection: Perspective, FovY: 60, Near: 0.1, Far: 100,
	}
	want := vecmath.Mul4(c.ProjectionMatrix(1), c.ViewMatrix())
	assert.Equal(t, want, c.ViewProjectionMatrix(1))
}
