// Package validate implements Frustum's single-pass scene validator.
// Validation is atomic: a scene is either fully valid or rejected
// with a typed error (package ferr) naming the offending field. The
// validator never normalizes, rounds, or substitutes a value — it only
// accepts or rejects, walking the scene in a fixed order: version,
// camera, world_bounds, materials, objects, light.
package validate

import (
	"fmt"
	"math"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/ferr"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
)

// Validate checks s against every structural and numeric invariant and
// returns the first violation encountered while walking the scene in the fixed order
// version -> camera -> world_bounds -> materials -> objects -> light. A nil
// error means s may be treated as an immutable, renderable-eligible scene
// (though it may still be legitimately empty of objects or materials).
func Validate(s scene.Scene) error {
	if s.Version != scene.SchemaVersion {
		return &ferr.SchemaVersionUnsupported{Got: s.Version}
	}

	if err := validateCamera(s.Camera); err != nil {
		return err
	}

	if !s.WorldBounds.IsFinite() {
		return &ferr.FieldNotFinite{Path: "world_bounds"}
	}
	if s.WorldBounds.Degenerate() {
		return &ferr.FieldOutOfRange{Path: "world_bounds", Constraint: "min < max on every axis"}
	}

	materialIndex := make(map[string]material.Material, len(s.Materials))
	seen := make(map[string]bool, len(s.Materials))
	for i, m := range s.Materials {
		path := fmt.Sprintf("materials[%d]", i)
		if m.ID == "" {
			return &ferr.FieldMissing{Path: path + ".id"}
		}
		if seen[m.ID] {
			return &ferr.FieldOutOfRange{Path: path + ".id", Constraint: "material ids must be unique"}
		}
		seen[m.ID] = true

		switch m.Kind {
		case material.KindSolid:
			if err := validateSolid(path, m.Solid); err != nil {
				return err
			}
		case material.KindScalarMapped:
			if err := validateScalarMapped(path, m.ScalarMapped); err != nil {
				return err
			}
		default:
			return &ferr.FieldOutOfRange{Path: path + ".type", Constraint: "must be solid or scalar_mapped"}
		}
		materialIndex[m.ID] = m
	}

	for i, o := range s.Objects {
		if err := validateRenderable(fmt.Sprintf("objects[%d]", i), o, s.WorldBounds, materialIndex); err != nil {
			return err
		}
	}

	if s.Light != nil {
		if err := validateLight(*s.Light); err != nil {
			return err
		}
	}

	return nil
}

func validateCamera(c camera.Camera) error {
	if !vecmath.IsFinite(c.Eye) {
		return &ferr.FieldNotFinite{Path: "camera.eye"}
	}
	if !vecmath.IsFinite(c.Target) {
		return &ferr.FieldNotFinite{Path: "camera.target"}
	}
	if !vecmath.IsFinite(c.Up) {
		return &ferr.FieldNotFinite{Path: "camera.up"}
	}
	if c.Eye == c.Target {
		return &ferr.FieldOutOfRange{Path: "camera.eye", Constraint: "eye must not equal target"}
	}
	if vecmath.Collinear(c.Up, vecmath.Sub(c.Target, c.Eye)) {
		return &ferr.FieldOutOfRange{Path: "camera.up", Constraint: "up must not be collinear with (target - eye)"}
	}
	if !isFinite32(c.Near) {
		return &ferr.FieldNotFinite{Path: "camera.near"}
	}
	if !isFinite32(c.Far) {
		return &ferr.FieldNotFinite{Path: "camera.far"}
	}
	if !(c.Near > 0) {
		return &ferr.FieldOutOfRange{Path: "camera.near", Constraint: "must be positive"}
	}
	if !(c.Near < c.Far) {
		return &ferr.FieldOutOfRange{Path: "camera.far", Constraint: "must be greater than near"}
	}
	switch c.Projection {
	case camera.Perspective:
		if !isFinite32(c.FovY) || c.FovY <= 0 || c.FovY >= 180 {
			return &ferr.FieldOutOfRange{Path: "camera.fov_y", Constraint: "must be finite and in (0, 180) degrees"}
		}
	case camera.Orthographic:
		if !isFinite32(c.ViewHeight) || c.ViewHeight <= 0 {
			return &ferr.FieldOutOfRange{Path: "camera.view_height", Constraint: "must be finite and positive"}
		}
	default:
		return &ferr.FieldOutOfRange{Path: "camera.projection", Constraint: "must be perspective or orthographic"}
	}
	return nil
}

func validateSolid(path string, m material.SolidMaterial) error {
	c := m.Color
	for name, v := range map[string]float32{"r": c.R, "g": c.G, "b": c.B, "a": c.A} {
		if !isFinite32(v) {
			return &ferr.FieldNotFinite{Path: path + ".color." + name}
		}
		if v < 0 || v > 1 {
			return &ferr.FieldOutOfRange{Path: path + ".color." + name, Constraint: "must be in [0, 1]"}
		}
	}
	return nil
}

func validateScalarMapped(path string, m material.ScalarMappedMaterial) error {
	if !material.ValidColormap(m.Colormap) {
		return &ferr.FieldOutOfRange{Path: path + ".colormap", Constraint: "must be one of viridis, plasma, inferno, magma, cividis"}
	}
	if !isFinite32(m.RangeMin) || !isFinite32(m.RangeMax) {
		return &ferr.FieldNotFinite{Path: path + ".range"}
	}
	if !(m.RangeMin < m.RangeMax) {
		return &ferr.FieldOutOfRange{Path: path + ".range", Constraint: "min must be less than max"}
	}
	return nil
}

func validateLight(l light.Light) error {
	if !vecmath.IsFinite(l.Direction) {
		return &ferr.FieldNotFinite{Path: "light.direction"}
	}
	length := vecmath.Length(l.Direction)
	if length < 0.99 || length > 1.01 {
		return &ferr.FieldOutOfRange{Path: "light.direction", Constraint: "length must be in [0.99, 1.01]"}
	}
	if !isFinite32(l.Intensity) {
		return &ferr.FieldNotFinite{Path: "light.intensity"}
	}
	if l.Intensity < 0 {
		return &ferr.FieldOutOfRange{Path: "light.intensity", Constraint: "must be >= 0"}
	}
	return nil
}

func validateRenderable(path string, r geometry.Renderable, worldBounds vecmath.AABB, materials map[string]material.Material) error {
	switch r.Kind {
	case geometry.KindPoints:
		return validatePoints(path, r.Points, materials)
	case geometry.KindLines:
		return validateLines(path, r.Lines, materials)
	case geometry.KindCurves:
		return validateCurves(path, r.Curves, materials)
	case geometry.KindMesh:
		return validateMesh(path, r.Mesh, materials)
	case geometry.KindAxisBundle:
		return validateAxisBundle(path, r.AxisBundle, worldBounds, materials)
	default:
		return &ferr.FieldOutOfRange{Path: path + ".type", Constraint: "must be a recognized renderable kind"}
	}
}

func validatePositions(path string, positions []vecmath.Vec3) error {
	for i, p := range positions {
		if !vecmath.IsFinite(p) {
			return &ferr.FieldNotFinite{Path: fmt.Sprintf("%s.positions[%d]", path, i)}
		}
	}
	return nil
}

func resolveMaterialRef(path string, ref string, has bool, materials map[string]material.Material, hasScalars bool) error {
	if !has {
		return nil
	}
	m, ok := materials[ref]
	if !ok {
		return &ferr.MaterialRefUnresolved{Ref: ref}
	}
	if m.Kind == material.KindScalarMapped && !hasScalars {
		return &ferr.ScalarsRequired{Primitive: path}
	}
	return nil
}

func validatePoints(path string, p geometry.Points, materials map[string]material.Material) error {
	if err := validatePositions(path, p.Positions); err != nil {
		return err
	}
	if p.Scalars != nil && len(p.Scalars) != len(p.Positions) {
		return &ferr.LengthMismatch{Path: path + ".scalars", Expected: len(p.Positions), Actual: len(p.Scalars)}
	}
	if p.HasSize && !(p.Size > 0) {
		return &ferr.FieldOutOfRange{Path: path + ".size", Constraint: "must be > 0"}
	}
	return resolveMaterialRef(path, p.MaterialRef, p.HasMaterial, materials, p.Scalars != nil)
}

func validateLines(path string, l geometry.Lines, materials map[string]material.Material) error {
	if len(l.Positions) < 2 {
		return &ferr.FieldOutOfRange{Path: path + ".positions", Constraint: "must have at least 2 positions"}
	}
	if err := validatePositions(path, l.Positions); err != nil {
		return err
	}
	if l.Scalars != nil && len(l.Scalars) != len(l.Positions) {
		return &ferr.LengthMismatch{Path: path + ".scalars", Expected: len(l.Positions), Actual: len(l.Scalars)}
	}
	if l.HasWidth && !(l.Width > 0) {
		return &ferr.FieldOutOfRange{Path: path + ".width", Constraint: "must be > 0"}
	}
	return resolveMaterialRef(path, l.MaterialRef, l.HasMaterial, materials, l.Scalars != nil)
}

func validateCurves(path string, c geometry.Curves, materials map[string]material.Material) error {
	if c.CurveType == geometry.CubicBezier && len(c.ControlPoints) != 4 {
		return &ferr.LengthMismatch{Path: path + ".positions", Expected: 4, Actual: len(c.ControlPoints)}
	}
	if c.CurveType != geometry.CubicBezier && len(c.ControlPoints) < 4 {
		return &ferr.FieldOutOfRange{Path: path + ".positions", Constraint: "must have at least 4 control points"}
	}
	if err := validatePositions(path, c.ControlPoints); err != nil {
		return err
	}
	if c.Segments < 1 {
		return &ferr.FieldOutOfRange{Path: path + ".segments", Constraint: "must be >= 1"}
	}
	if c.HasWidth && !(c.Width > 0) {
		return &ferr.FieldOutOfRange{Path: path + ".width", Constraint: "must be > 0"}
	}
	return resolveMaterialRef(path, c.MaterialRef, c.HasMaterial, materials, c.Scalars != nil)
}

func validateMesh(path string, m geometry.Mesh, materials map[string]material.Material) error {
	if err := validatePositions(path, m.Positions); err != nil {
		return err
	}
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Positions) {
			return &ferr.IndexOutOfBounds{Path: fmt.Sprintf("%s.indices[%d]", path, i), Index: int(idx), Bound: len(m.Positions)}
		}
	}
	if len(m.Indices)%3 != 0 {
		return &ferr.FieldOutOfRange{Path: path + ".indices", Constraint: "length must be a multiple of 3"}
	}
	if m.Normals != nil && len(m.Normals) != len(m.Positions) {
		return &ferr.LengthMismatch{Path: path + ".normals", Expected: len(m.Positions), Actual: len(m.Normals)}
	}
	if m.Scalars != nil && len(m.Scalars) != len(m.Positions) {
		return &ferr.LengthMismatch{Path: path + ".scalars", Expected: len(m.Positions), Actual: len(m.Scalars)}
	}
	return resolveMaterialRef(path, m.MaterialRef, m.HasMaterial, materials, m.Scalars != nil)
}

func validateAxisBundle(path string, ab geometry.AxisBundle, worldBounds vecmath.AABB, materials map[string]material.Material) error {
	if !ab.Bounds.IsFinite() {
		return &ferr.FieldNotFinite{Path: path + ".bounds"}
	}
	// AxisBundle bounds are non-degenerate when they are not a single
	// collapsed point; unlike world_bounds, individual axes are allowed
	// zero extent (an x-only bundle has zero extent in y and z).
	if ab.Bounds.Min == ab.Bounds.Max {
		return &ferr.FieldOutOfRange{Path: path + ".bounds", Constraint: "must be non-degenerate"}
	}
	if ab.Bounds.Min.X > ab.Bounds.Max.X || ab.Bounds.Min.Y > ab.Bounds.Max.Y || ab.Bounds.Min.Z > ab.Bounds.Max.Z {
		return &ferr.FieldOutOfRange{Path: path + ".bounds", Constraint: "min must be <= max on every axis"}
	}
	if !worldBounds.Contains(ab.Bounds) {
		return &ferr.BoundsNotContained{Bundle: ab.Id}
	}
	if len(ab.Axes) == 0 {
		return &ferr.FieldOutOfRange{Path: path + ".axes", Constraint: "must reference at least one axis"}
	}
	if ab.MaterialRef == "" {
		return &ferr.FieldMissing{Path: path + ".material_id"}
	}
	m, ok := materials[ab.MaterialRef]
	if !ok {
		return &ferr.MaterialRefUnresolved{Ref: ab.MaterialRef}
	}
	if m.Kind != material.KindSolid {
		return &ferr.MaterialKindMismatch{Where: path, Required: "solid", Got: m.Kind.String()}
	}
	if ab.Ticks != nil && ab.Ticks.Mode == geometry.TicksFixed {
		axisMin, axisMax := axisRange(ab)
		for i, v := range ab.Ticks.Values {
			if !isFinite32(v) {
				return &ferr.FieldNotFinite{Path: fmt.Sprintf("%s.ticks.values[%d]", path, i)}
			}
			if v < axisMin || v > axisMax {
				return &ferr.FieldOutOfRange{Path: fmt.Sprintf("%s.ticks.values[%d]", path, i), Constraint: "must be within bounds"}
			}
		}
	}
	if ab.Ticks != nil && ab.Ticks.Mode == geometry.TicksAuto && ab.Ticks.Count < 1 {
		return &ferr.FieldOutOfRange{Path: path + ".ticks.count", Constraint: "must be >= 1"}
	}
	return nil
}

// axisRange returns a conservative [min, max] spanning every enabled axis
// of the bundle's bounds, used only to sanity-check fixed tick values.
func axisRange(ab geometry.AxisBundle) (float32, float32) {
	min := ab.Bounds.Min.X
	max := ab.Bounds.Max.X
	for _, axis := range ab.Axes {
		var lo, hi float32
		switch axis {
		case geometry.AxisX:
			lo, hi = ab.Bounds.Min.X, ab.Bounds.Max.X
		case geometry.AxisY:
			lo, hi = ab.Bounds.Min.Y, ab.Bounds.Max.Y
		case geometry.AxisZ:
			lo, hi = ab.Bounds.Min.Z, ab.Bounds.Max.Z
		}
		if lo < min {
			min = lo
		}
		if hi > max {
			max = hi
		}
	}
	return min, max
}

func isFinite32(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
