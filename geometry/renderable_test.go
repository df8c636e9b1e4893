package geometry

import (
	"testing"

	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
)

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindPoints: "points", KindLines: "lines", KindCurves: "curves",
		KindMesh: "mesh", KindAxisBundle: "axes", Kind(99): "unknown",
	}
	for k, want := range cases {
		assert.Equal(t, want, k.String())
	}
}

func TestCurveTypeString(t *testing.T) {
	assert.Equal(t, "cubic_bezier", CubicBezier.String())
	assert.Equal(t, "catmull_rom", CatmullRom.String())
	assert.Equal(t, "b_spline", BSpline.String())
	assert.Equal(t, "unknown", CurveType(99).String())
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "x", AxisX.String())
	assert.Equal(t, "y", AxisY.String())
	assert.Equal(t, "z", AxisZ.String())
	assert.Equal(t, "unknown", Axis(99).String())
}

func TestNewLabelSpecDefaultOffset(t *testing.T) {
	l := NewLabelSpec(true)
	assert.True(t, l.Show)
	assert.Equal(t, vecmath.Vec3{X: 0.1, Y: 0, Z: 0}, l.Offset)

	hidden := NewLabelSpec(false)
	assert.False(t, hidden.Show)
}
