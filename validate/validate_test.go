package validate

import (
	"testing"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/ferr"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCamera() camera.Camera {
	return camera.Camera{
		Eye: vecmath.Vec3{X: 0, Y: 0, Z: 5}, Target: vecmath.Vec3{}, Up: vecmath.Vec3{X: 0, Y: 1, Z: 0},
		Projection: camera.Perspective, Near: 0.1, Far: 100, FovY: 60,
	}
}

func validBounds() vecmath.AABB {
	return vecmath.AABB{Min: vecmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 1}}
}

func baseScene() scene.Scene {
	return scene.New(validCamera(), validBounds())
}

func TestValidateEmptySceneIsValid(t *testing.T) {
	assert.NoError(t, Validate(baseScene()))
}

func TestValidateRejectsUnsupportedSchemaVersion(t *testing.T) {
	s := baseScene()
	s.Version = "frustum/scene/v0"
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.SchemaVersionUnsupported{}, err)
}

func TestValidateRejectsDegenerateCamera(t *testing.T) {
	s := baseScene()
	s.Camera.Eye = s.Camera.Target
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateRejectsCollinearUp(t *testing.T) {
	s := baseScene()
	s.Camera.Eye = vecmath.Vec3{X: 0, Y: 0, Z: 5}
	s.Camera.Target = vecmath.Vec3{X: 0, Y: 0, Z: 0}
	s.Camera.Up = vecmath.Vec3{X: 0, Y: 0, Z: 1}
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateRejectsNearNotLessThanFar(t *testing.T) {
	s := baseScene()
	s.Camera.Near, s.Camera.Far = 10, 5
	err := Validate(s)
	require.Error(t, err)
}

func TestValidateRejectsBadFovForPerspective(t *testing.T) {
	s := baseScene()
	s.Camera.FovY = 200
	err := Validate(s)
	require.Error(t, err)
}

func TestValidateAcceptsOrthographicCamera(t *testing.T) {
	s := baseScene()
	s.Camera.Projection = camera.Orthographic
	s.Camera.ViewHeight = 4
	assert.NoError(t, Validate(s))
}

func TestValidateRejectsDegenerateWorldBounds(t *testing.T) {
	s := baseScene()
	s.WorldBounds = vecmath.AABB{Min: vecmath.Vec3{X: 1}, Max: vecmath.Vec3{X: 1}}
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateRejectsDuplicateMaterialIDs(t *testing.T) {
	s := baseScene().WithMaterials(
		material.NewSolid("dup", material.RGBA{A: 1}),
		material.NewSolid("dup", material.RGBA{A: 1}),
	)
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateRejectsSolidColorOutOfRange(t *testing.T) {
	s := baseScene().WithMaterials(material.NewSolid("bad", material.RGBA{R: 2, A: 1}))
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateRejectsUnrecognizedColormap(t *testing.T) {
	s := baseScene().WithMaterials(material.NewScalarMapped("bad", "rainbow", 0, 1))
	err := Validate(s)
	require.Error(t, err)
}

func TestValidateRejectsBadScalarRange(t *testing.T) {
	s := baseScene().WithMaterials(material.NewScalarMapped("bad", "viridis", 1, 0))
	err := Validate(s)
	require.Error(t, err)
}

func TestValidatePointsRequiresMaterialResolution(t *testing.T) {
	s := baseScene().WithObjects(geometry.Renderable{
		Id: "pts", Kind: geometry.KindPoints,
		Points: geometry.Points{
			Positions:   []vecmath.Vec3{{X: 0}, {X: 1}},
			MaterialRef: "missing", HasMaterial: true,
		},
	})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.MaterialRefUnresolved{}, err)
}

func TestValidatePointsRequiresScalarsForScalarMappedMaterial(t *testing.T) {
	s := baseScene().
		WithMaterials(material.NewScalarMapped("cm", "viridis", 0, 1)).
		WithObjects(geometry.Renderable{
			Id: "pts", Kind: geometry.KindPoints,
			Points: geometry.Points{
				Positions:   []vecmath.Vec3{{X: 0}, {X: 1}},
				MaterialRef: "cm", HasMaterial: true,
			},
		})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.ScalarsRequired{}, err)
}

func TestValidateLinesRequiresAtLeastTwoPositions(t *testing.T) {
	s := baseScene().WithObjects(geometry.Renderable{
		Id: "line", Kind: geometry.KindLines,
		Lines: geometry.Lines{Positions: []vecmath.Vec3{{X: 0}}},
	})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateCurvesRequiresFourControlPointsForBezier(t *testing.T) {
	s := baseScene().WithObjects(geometry.Renderable{
		Id: "curve", Kind: geometry.KindCurves,
		Curves: geometry.Curves{
			CurveType:     geometry.CubicBezier,
			ControlPoints: []vecmath.Vec3{{X: 0}, {X: 1}, {X: 2}},
			Segments:      8,
		},
	})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.LengthMismatch{}, err)
}

func TestValidateMeshRejectsOutOfBoundsIndex(t *testing.T) {
	s := baseScene().WithObjects(geometry.Renderable{
		Id: "mesh", Kind: geometry.KindMesh,
		Mesh: geometry.Mesh{
			Positions: []vecmath.Vec3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
			Indices:   []uint32{0, 1, 5},
		},
	})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.IndexOutOfBounds{}, err)
}

func TestValidateMeshRejectsNonTripletIndices(t *testing.T) {
	s := baseScene().WithObjects(geometry.Renderable{
		Id: "mesh", Kind: geometry.KindMesh,
		Mesh: geometry.Mesh{
			Positions: []vecmath.Vec3{{X: 0}, {X: 1}, {X: 0, Y: 1}},
			Indices:   []uint32{0, 1},
		},
	})
	err := Validate(s)
	require.Error(t, err)
}

func TestValidateAxisBundleRejectsDegenerateBounds(t *testing.T) {
	s := baseScene().
		WithMaterials(material.NewSolid("axis", material.RGBA{A: 1})).
		WithObjects(geometry.Renderable{
			Id: "axes", Kind: geometry.KindAxisBundle,
			AxisBundle: geometry.AxisBundle{
				Id: "axes", Bounds: vecmath.AABB{Min: vecmath.Vec3{X: 1}, Max: vecmath.Vec3{X: 1}},
				Axes: []geometry.Axis{geometry.AxisX}, MaterialRef: "axis",
			},
		})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateAxisBundleRejectsBoundsExceedingWorldBounds(t *testing.T) {
	s := baseScene().
		WithMaterials(material.NewSolid("axis", material.RGBA{A: 1})).
		WithObjects(geometry.Renderable{
			Id: "axes", Kind: geometry.KindAxisBundle,
			AxisBundle: geometry.AxisBundle{
				Id: "axes", Bounds: vecmath.AABB{Min: vecmath.Vec3{X: -5}, Max: vecmath.Vec3{X: 5}},
				Axes: []geometry.Axis{geometry.AxisX}, MaterialRef: "axis",
			},
		})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.BoundsNotContained{}, err)
}

func TestValidateAxisBundleRejectsScalarMappedMaterial(t *testing.T) {
	s := baseScene().
		WithMaterials(material.NewScalarMapped("cm", "viridis", 0, 1)).
		WithObjects(geometry.Renderable{
			Id: "axes", Kind: geometry.KindAxisBundle,
			AxisBundle: geometry.AxisBundle{
				Id: "axes", Bounds: validBounds(),
				Axes: []geometry.Axis{geometry.AxisX}, MaterialRef: "cm",
			},
		})
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.MaterialKindMismatch{}, err)
}

func TestValidateAxisBundleAcceptsValidBundle(t *testing.T) {
	labels := geometry.NewLabelSpec(true)
	s := baseScene().
		WithMaterials(material.NewSolid("axis", material.RGBA{A: 1})).
		WithObjects(geometry.Renderable{
			Id: "axes", Kind: geometry.KindAxisBundle,
			AxisBundle: geometry.AxisBundle{
				Id: "axes", Bounds: validBounds(),
				Axes: []geometry.Axis{geometry.AxisX, geometry.AxisY, geometry.AxisZ},
				MaterialRef: "axis",
				Ticks:       &geometry.TickSpec{Mode: geometry.TicksAuto, Count: 5},
				Labels:      &labels,
			},
		})
	assert.NoError(t, Validate(s))
}

func TestValidateLightRejectsUnnormalizedDirection(t *testing.T) {
	s := baseScene()
	l := light.Light{Direction: vecmath.Vec3{X: 10, Y: 0, Z: 0}, Intensity: 1, Enabled: true}
	s = s.WithLight(l)
	err := Validate(s)
	require.Error(t, err)
	assert.IsType(t, &ferr.FieldOutOfRange{}, err)
}

func TestValidateLightRejectsNegativeIntensity(t *testing.T) {
	s := baseScene().WithLight(light.New(vecmath.Vec3{X: 0, Y: 1, Z: 0}, -1))
	err := Validate(s)
	require.Error(t, err)
}
