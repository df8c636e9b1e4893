// Package ferr defines Frustum's typed error taxonomy. Every
// validation and generator failure surfaces as one of these concrete types
// rather than an ad-hoc string, so callers can distinguish failure classes
// with errors.As and so every error names the offending field by path and
// states the violated constraint.
package ferr

import "fmt"

// SchemaVersionUnsupported reports an unrecognized scene schema version tag.
type SchemaVersionUnsupported struct {
	Got string
}

func (e *SchemaVersionUnsupported) Error() string {
	return fmt.Sprintf("unsupported schema version %q", e.Got)
}

// FieldMissing reports a required field that was absent.
type FieldMissing struct {
	Path string
}

func (e *FieldMissing) Error() string {
	return fmt.Sprintf("%s: required field is missing", e.Path)
}

// FieldNotFinite reports a numeric field containing NaN or Inf.
type FieldNotFinite struct {
	Path  string
	Value float64
}

func (e *FieldNotFinite) Error() string {
	return fmt.Sprintf("%s: value %v is not finite", e.Path, e.Value)
}

// FieldOutOfRange reports a numeric field violating a stated constraint.
type FieldOutOfRange struct {
	Path       string
	Constraint string
}

func (e *FieldOutOfRange) Error() string {
	return fmt.Sprintf("%s: violates constraint %s", e.Path, e.Constraint)
}

// LengthMismatch reports an array field whose length does not match an
// expected cross-constraint (e.g. scalars length vs. vertex count).
type LengthMismatch struct {
	Path     string
	Expected int
	Actual   int
}

func (e *LengthMismatch) Error() string {
	return fmt.Sprintf("%s: expected length %d, got %d", e.Path, e.Expected, e.Actual)
}

// IndexOutOfBounds reports an index field (e.g. a mesh triangle index)
// falling outside the valid range.
type IndexOutOfBounds struct {
	Path  string
	Index int
	Bound int
}

func (e *IndexOutOfBounds) Error() string {
	return fmt.Sprintf("%s: index %d out of bounds [0, %d)", e.Path, e.Index, e.Bound)
}

// MaterialRefUnresolved reports a renderable referencing a material id that
// does not exist in the scene's material list.
type MaterialRefUnresolved struct {
	Ref string
}

func (e *MaterialRefUnresolved) Error() string {
	return fmt.Sprintf("material reference %q does not resolve to any declared material", e.Ref)
}

// MaterialKindMismatch reports a material reference resolving to a kind not
// permitted in the referencing context (e.g. a ScalarMappedMaterial on an
// AxisBundle).
type MaterialKindMismatch struct {
	Where    string
	Required string
	Got      string
}

func (e *MaterialKindMismatch) Error() string {
	return fmt.Sprintf("%s: requires material kind %s, got %s", e.Where, e.Required, e.Got)
}

// ScalarsRequired reports a primitive referencing a ScalarMappedMaterial
// without carrying the scalar values that material requires.
type ScalarsRequired struct {
	Primitive string
}

func (e *ScalarsRequired) Error() string {
	return fmt.Sprintf("%s: references a scalar-mapped material but carries no scalars", e.Primitive)
}

// BoundsNotContained reports an AxisBundle whose bounds are not contained
// within the scene's world_bounds.
type BoundsNotContained struct {
	Bundle string
}

func (e *BoundsNotContained) Error() string {
	return fmt.Sprintf("axis bundle %q bounds are not contained within world_bounds", e.Bundle)
}

// CategoricalVolumeRejected reports a volume caller-annotated as categorical
// data without an explicit opt-in acknowledging the continuity mismatch.
type CategoricalVolumeRejected struct{}

func (e *CategoricalVolumeRejected) Error() string {
	return "volume is annotated categorical; marching cubes assumes a continuous field (set AllowCategorical to opt in)"
}

// VolumeNonFinite reports a volume scalar field containing NaN or Inf.
type VolumeNonFinite struct{}

func (e *VolumeNonFinite) Error() string {
	return "volume values contain NaN or Inf"
}

// VolumeDimensionTooSmall reports a volume axis with fewer than 2 samples.
type VolumeDimensionTooSmall struct {
	Axis string
}

func (e *VolumeDimensionTooSmall) Error() string {
	return fmt.Sprintf("volume dimension %s has fewer than 2 samples", e.Axis)
}

// RenderConfigInvalid reports an invalid or missing RenderConfig field.
type RenderConfigInvalid struct {
	Field string
}

func (e *RenderConfigInvalid) Error() string {
	return fmt.Sprintf("render config field %s is invalid", e.Field)
}

// GpuReadbackFailed reports a failure reading the framebuffer back from the
// GPU after submission.
type GpuReadbackFailed struct {
	Reason string
}

func (e *GpuReadbackFailed) Error() string {
	return fmt.Sprintf("gpu readback failed: %s", e.Reason)
}
