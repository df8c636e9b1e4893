package ferr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessagesNameOffendingField(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&SchemaVersionUnsupported{Got: "v0"}, `unsupported schema version "v0"`},
		{&FieldMissing{Path: "camera.eye"}, "camera.eye: required field is missing"},
		{&FieldNotFinite{Path: "light.intensity", Value: 1}, "light.intensity: value 1 is not finite"},
		{&FieldOutOfRange{Path: "camera.near", Constraint: "> 0"}, "camera.near: violates constraint > 0"},
		{&LengthMismatch{Path: "mesh.scalars", Expected: 3, Actual: 2}, "mesh.scalars: expected length 3, got 2"},
		{&IndexOutOfBounds{Path: "mesh.indices[2]", Index: 5, Bound: 3}, "mesh.indices[2]: index 5 out of bounds [0, 3)"},
		{&MaterialRefUnresolved{Ref: "missing"}, `material reference "missing" does not resolve to any declared material`},
		{&MaterialKindMismatch{Where: "axes", Required: "solid", Got: "scalar_mapped"}, "axes: requires material kind solid, got scalar_mapped"},
		{&ScalarsRequired{Primitive: "mesh[0]"}, "mesh[0]: references a scalar-mapped material but carries no scalars"},
		{&BoundsNotContained{Bundle: "axes"}, `axis bundle "axes" bounds are not contained within world_bounds`},
		{&CategoricalVolumeRejected{}, "volume is annotated categorical; marching cubes assumes a continuous field (set AllowCategorical to opt in)"},
		{&VolumeNonFinite{}, "volume values contain NaN or Inf"},
		{&VolumeDimensionTooSmall{Axis: "x"}, "volume dimension x has fewer than 2 samples"},
		{&RenderConfigInvalid{Field: "width"}, "render config field width is invalid"},
		{&GpuReadbackFailed{Reason: "map failed"}, "gpu readback failed: map failed"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, c.err.Error())
	}
}
