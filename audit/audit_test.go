package audit

import (
	"testing"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/render"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func auditTestScene() scene.Scene {
	cam := camera.Camera{
		Eye: vecmath.Vec3{Z: 5}, Target: vecmath.Vec3{}, Up: vecmath.Vec3{Y: 1},
		Projection: camera.Perspective, Near: 0.1, Far: 100, FovY: 45,
	}
	bounds := vecmath.AABB{Min: vecmath.Vec3{X: -2, Y: -2, Z: -2}, Max: vecmath.Vec3{X: 2, Y: 2, Z: 2}}
	mesh := geometry.Mesh{
		Positions:   []vecmath.Vec3{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 0, Y: 1}},
		Indices:     []uint32{0, 1, 2},
		MaterialRef: "m", HasMaterial: true,
	}
	return scene.New(cam, bounds).
		WithMaterials(material.NewSolid("m", material.RGBA{R: 1, G: 0, B: 0, A: 1})).
		WithObjects(geometry.Renderable{Kind: geometry.KindMesh, Mesh: mesh})
}

func TestRunProducesBundleAndImageForValidScene(t *testing.T) {
	s := auditTestScene()
	cfg := render.DefaultConfig(32, 32)
	img, bundle, err := Run(s, cfg, render.SoftBackend{}, "soft", "cpu")
	require.NoError(t, err)
	assert.Equal(t, 32, img.Width)
	assert.Equal(t, uint32(1), bundle.Metadata.PrimitiveCounts.TotalTriangles)
	assert.Equal(t, "soft", bundle.Metadata.Backend)
	assert.NotEmpty(t, bundle.Metadata.SceneHash)
	assert.NotEqual(t, Fail, bundle.Invariants.Overall)
}

func TestRunPropagatesValidationError(t *testing.T) {
	s := scene.Scene{Version: "bogus"}
	_, _, err := Run(s, render.DefaultConfig(10, 10), render.SoftBackend{}, "soft", "cpu")
	require.Error(t, err)
}

func TestRunPropagatesConfigError(t *testing.T) {
	s := auditTestScene()
	_, _, err := Run(s, render.DefaultConfig(0, 10), render.SoftBackend{}, "soft", "cpu")
	require.Error(t, err)
}

func TestBundleJSONRoundTrip(t *testing.T) {
	s := auditTestScene()
	_, bundle, err := Run(s, render.DefaultConfig(16, 16), render.SoftBackend{}, "soft", "cpu")
	require.NoError(t, err)

	data, err := bundle.ToJSON()
	require.NoError(t, err)

	decoded, err := BundleFromJSON(data)
	require.NoError(t, err)
	assert.Equal(t, bundle.Metadata.SceneHash, decoded.Metadata.SceneHash)
	assert.Equal(t, bundle.Invariants.Overall, decoded.Invariants.Overall)
	assert.Equal(t, bundle.Metadata.PrimitiveCounts, decoded.Metadata.PrimitiveCounts)
}
