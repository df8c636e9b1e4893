package scene

import (
	"testing"

	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRoundTripScene() Scene {
	labels := geometry.NewLabelSpec(true)
	return New(testCamera(), testBounds()).
		WithObjects(
			geometry.Renderable{
				Id: "pts", Kind: geometry.KindPoints,
				Points: geometry.Points{
					Positions: []vecmath.Vec3{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 1}},
					MaterialRef: "solid", HasMaterial: true,
				},
			},
			geometry.Renderable{
				Id: "mesh", Kind: geometry.KindMesh,
				Mesh: geometry.Mesh{
					Positions: []vecmath.Vec3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
					Indices:   []uint32{0, 1, 2},
					MaterialRef: "scalar", HasMaterial: true,
					Scalars: []float32{0, 0.5, 1},
				},
			},
			geometry.Renderable{
				Id: "axes", Kind: geometry.KindAxisBundle,
				AxisBundle: geometry.AxisBundle{
					Id: "axes", Bounds: testBounds(),
					Axes: []geometry.Axis{geometry.AxisX, geometry.AxisY, geometry.AxisZ},
					MaterialRef: "solid",
					Ticks: &geometry.TickSpec{Mode: geometry.TicksAuto, Count: 5},
					Labels: &labels,
				},
			},
		).
		WithMaterials(
			material.NewSolid("solid", material.RGBA{R: 1, G: 0, B: 0, A: 1}),
			material.NewScalarMapped("scalar", "viridis", 0, 1),
		).
		WithLight(light.New(vecmath.Vec3{X: 0, Y: 1, Z: 0}, 1))
}

func TestMarshalUnmarshalRoundTrip(t *testing.T) {
	s := buildRoundTripScene()

	data, err := Marshal(s)
	require.NoError(t, err)

	got, err := Unmarshal(data)
	require.NoError(t, err)

	assert.Equal(t, s.Version, got.Version)
	assert.Equal(t, s.Camera, got.Camera)
	assert.Equal(t, s.WorldBounds, got.WorldBounds)
	require.Len(t, got.Objects, 3)
	assert.Equal(t, s.Objects[0].Points.Positions, got.Objects[0].Points.Positions)
	assert.Equal(t, s.Objects[1].Mesh.Indices, got.Objects[1].Mesh.Indices)
	assert.Equal(t, s.Objects[1].Mesh.Scalars, got.Objects[1].Mesh.Scalars)
	assert.Equal(t, s.Objects[2].AxisBundle.Axes, got.Objects[2].AxisBundle.Axes)
	require.Len(t, got.Materials, 2)
	assert.Equal(t, s.Materials, got.Materials)
	require.NotNil(t, got.Light)
	assert.Equal(t, s.Light.Direction, got.Light.Direction)
}

func TestMarshalCanonicalIsDeterministic(t *testing.T) {
	s := buildRoundTripScene()
	a, err := MarshalCanonical(s)
	require.NoError(t, err)
	b, err := MarshalCanonical(s)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestUnmarshalRejectsUnrecognizedProjection(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":"frustum/scene/v1","camera":{"eye":[0,0,0],"target":[0,0,0],"up":[0,1,0],"projection":"fisheye","near":0.1,"far":10},"world_bounds":{"min":[0,0,0],"max":[1,1,1]}}`))
	require.Error(t, err)
}

func TestUnmarshalRejectsMalformedPositions(t *testing.T) {
	_, err := Unmarshal([]byte(`{"version":"frustum/scene/v1","camera":{"eye":[0,0,0],"target":[0,0,1],"up":[0,1,0],"projection":"perspective","near":0.1,"far":10,"fov_y":60},"world_bounds":{"min":[0,0,0],"max":[1,1,1]},"objects":[{"type":"points","positions":[1,2]}]}`))
	require.Error(t, err)
}
