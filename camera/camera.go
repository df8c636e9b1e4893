// Package camera defines Frustum's Camera value and its matrix
// construction. A Camera is an immutable value produced once and consumed
// by the render orchestrator — there is no per-frame Update, no attached
// controller, and no auto-fit: every parameter is explicit.
package camera

import "github.com/frustum-vis/frustum/vecmath"

// Projection discriminates the two supported projection kinds.
type Projection int

const (
	// Perspective uses FovY (degrees) as its projection-specific parameter.
	Perspective Projection = iota
	// Orthographic uses ViewHeight (world units) as its projection-specific
	// parameter.
	Orthographic
)

func (p Projection) String() string {
	switch p {
	case Perspective:
		return "perspective"
	case Orthographic:
		return "orthographic"
	default:
		return "unknown"
	}
}

// Camera is an immutable camera description. Eye, Target and Up are always
// populated; exactly one of FovY or ViewHeight is meaningful, selected by
// Projection.
type Camera struct {
	Eye, Target, Up vecmath.Vec3
	Projection      Projection
	Near, Far       float32
	// FovY is the vertical field of view in degrees, used when
	// Projection == Perspective.
	FovY float32
	// ViewHeight is the vertical view extent in world units, used when
	// Projection == Orthographic.
	ViewHeight float32
}

// ViewMatrix builds the right-handed view matrix for this camera.
func (c Camera) ViewMatrix() vecmath.Mat4 {
	return vecmath.LookAtRH(c.Eye, c.Target, c.Up)
}

// ProjectionMatrix builds the projection matrix for this camera at the
// given aspect ratio (width/height), applying the WebGPU NDC convention
// (Y-up, Z in [0, 1]), the only implicit transformation this package applies.
func (c Camera) ProjectionMatrix(aspect float32) vecmath.Mat4 {
	switch c.Projection {
	case Orthographic:
		return vecmath.OrthographicRH(c.ViewHeight, aspect, c.Near, c.Far)
	default:
		return vecmath.PerspectiveRH(c.FovY*(3.14159265358979323846/180), aspect, c.Near, c.Far)
	}
}

// ViewProjectionMatrix returns ProjectionMatrix(aspect) * ViewMatrix().
func (c Camera) ViewProjectionMatrix(aspect float32) vecmath.Mat4 {
	return vecmath.Mul4(c.ProjectionMatrix(aspect), c.ViewMatrix())
}
