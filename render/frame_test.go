package render

import (
	"testing"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCam() camera.Camera {
	return camera.Camera{
		Eye: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Target: vecmath.Vec3{}, Up: vecmath.Vec3{Y: 1},
		Projection: camera.Perspective, Near: 0.1, Far: 100, FovY: 45,
	}
}

func testWorldBounds() vecmath.AABB {
	return vecmath.AABB{Min: vecmath.Vec3{X: -2, Y: -2, Z: -2}, Max: vecmath.Vec3{X: 2, Y: 2, Z: 2}}
}

func TestBuildFrameEmptySceneProducesEmptyFrame(t *testing.T) {
	s := scene.New(testCam(), testWorldBounds())
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	assert.Empty(t, frame.Triangles)
	assert.Empty(t, frame.Lines)
	assert.Empty(t, frame.Points)
	assert.Empty(t, frame.Labels)
}

func TestBuildFramePointsDefaultSizeAndIntensity(t *testing.T) {
	s := scene.New(testCam(), testWorldBounds()).WithObjects(geometry.Renderable{
		Kind: geometry.KindPoints,
		Points: geometry.Points{
			Positions: []vecmath.Vec3{{X: 0}, {X: 1}},
		},
	})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	require.Len(t, frame.Points, 2)
	assert.Equal(t, float32(defaultPointSizePx), frame.Points[0].Size)
	assert.Equal(t, float32(1), frame.Points[0].V.Intensity)
}

func TestBuildFrameMeshUnlitWithoutLight(t *testing.T) {
	mesh := geometry.Mesh{
		Positions:   []vecmath.Vec3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
		Indices:     []uint32{0, 1, 2},
		Normals:     []vecmath.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		MaterialRef: "m", HasMaterial: true,
	}
	s := scene.New(testCam(), testWorldBounds()).
		WithMaterials(material.NewSolid("m", material.RGBA{R: 1, G: 0, B: 0, A: 1})).
		WithObjects(geometry.Renderable{Kind: geometry.KindMesh, Mesh: mesh})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	require.Len(t, frame.Triangles, 1)
	assert.Equal(t, float32(1), frame.Triangles[0].V0.Intensity)
	assert.Equal(t, material.RGBA{R: 1, G: 0, B: 0, A: 1}, frame.Triangles[0].V0.Color)
}

func TestBuildFrameMeshLambertianWithLight(t *testing.T) {
	mesh := geometry.Mesh{
		Positions:   []vecmath.Vec3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
		Indices:     []uint32{0, 1, 2},
		Normals:     []vecmath.Vec3{{Z: 1}, {Z: 1}, {Z: 1}},
		MaterialRef: "m", HasMaterial: true,
	}
	l := light.New(vecmath.Vec3{Z: 1}, 1.0)
	s := scene.New(testCam(), testWorldBounds()).
		WithMaterials(material.NewSolid("m", material.RGBA{R: 1, G: 1, B: 1, A: 1})).
		WithObjects(geometry.Renderable{Kind: geometry.KindMesh, Mesh: mesh}).
		WithLight(l)
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	// normal faces the light directly: full intensity
	assert.InDelta(t, 1.0, float64(frame.Triangles[0].V0.Intensity), 1e-5)
}

func TestBuildFrameScalarMappedColorMatchesColormapStop(t *testing.T) {
	points := geometry.Points{
		Positions:   []vecmath.Vec3{{X: 0}},
		Scalars:     []float32{0},
		MaterialRef: "sm", HasMaterial: true,
	}
	s := scene.New(testCam(), testWorldBounds()).
		WithMaterials(material.NewScalarMapped("sm", "viridis", 0, 1)).
		WithObjects(geometry.Renderable{Kind: geometry.KindPoints, Points: points})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	expected, err := material.SampleColormap("viridis", 0)
	require.NoError(t, err)
	assert.Equal(t, expected, frame.Points[0].V.Color)
}

func TestBuildFrameAxisBundleExpandsIntoLinesAndLabels(t *testing.T) {
	labelSpec := geometry.NewLabelSpec(true)
	ab := geometry.AxisBundle{
		Bounds:      testWorldBounds(),
		Axes:        []geometry.Axis{geometry.AxisX},
		MaterialRef: "axis-mat",
		Ticks:       &geometry.TickSpec{Mode: geometry.TicksAuto, Count: 3},
		Labels:      &labelSpec,
	}
	s := scene.New(testCam(), testWorldBounds()).
		WithMaterials(material.NewSolid("axis-mat", material.RGBA{R: 0, G: 0, B: 0, A: 1})).
		WithObjects(geometry.Renderable{Kind: geometry.KindAxisBundle, AxisBundle: ab})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	assert.NotEmpty(t, frame.Lines)
	assert.Len(t, frame.Labels, 3)
}

func TestBuildFrameLinesDefaultWidth(t *testing.T) {
	lines := geometry.Lines{Positions: []vecmath.Vec3{{X: 0}, {X: 1}, {X: 2}}}
	s := scene.New(testCam(), testWorldBounds()).
		WithObjects(geometry.Renderable{Kind: geometry.KindLines, Lines: lines})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	require.Len(t, frame.Lines, 2)
	assert.Equal(t, float32(defaultLineWidthPx), frame.Lines[0].Width)
}

func TestBuildFrameUnresolvedMaterialFallsBackToWhite(t *testing.T) {
	points := geometry.Points{
		Positions:   []vecmath.Vec3{{X: 0}},
		MaterialRef: "missing", HasMaterial: true,
	}
	s := scene.New(testCam(), testWorldBounds()).
		WithObjects(geometry.Renderable{Kind: geometry.KindPoints, Points: points})
	frame, err := BuildFrame(s)
	require.NoError(t, err)
	assert.Equal(t, material.RGBA{R: 1, G: 1, B: 1, A: 1}, frame.Points[0].V.Color)
}
