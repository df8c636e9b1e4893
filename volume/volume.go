// Package volume implements Frustum's marching-cubes isosurface generator:
// given a regular scalar field, produce an indexed triangle Mesh crossing a
// chosen iso-value.
package volume

import (
	"math"

	"github.com/frustum-vis/frustum/ferr"
)

// Volume is a regular 3D scalar field sampled on a grid of
// Dimensions[0] x Dimensions[1] x Dimensions[2] points, spaced Spacing
// apart along each axis and anchored at Origin. Values is flattened in
// x-fastest, then y, then z order: Values[(k*ny+j)*nx+i].
type Volume struct {
	Values     []float32
	Dimensions [3]int
	Spacing    [3]float32
	Origin     [3]float32

	// AllowCategorical opts into extracting an isosurface from a field the
	// caller has annotated as categorical (label ids rather than a
	// continuous quantity). Without this set, MarchingCubes rejects
	// categorical volumes rather than silently interpolate label ids.
	AllowCategorical bool
	Categorical      bool

	// Smoothing is the standard deviation, in samples, of an optional
	// separable Gaussian pre-filter applied to Values before extraction.
	// Zero disables smoothing.
	Smoothing float32

	// Decimation, in (0, 1), is the target fraction of triangles to keep
	// after a deterministic edge-collapse pass. Zero disables decimation.
	Decimation float32
}

func (v Volume) index(i, j, k int) int {
	nx, ny := v.Dimensions[0], v.Dimensions[1]
	return (k*ny+j)*nx + i
}

func (v Volume) at(i, j, k int) float32 {
	return v.Values[v.index(i, j, k)]
}

func (v Volume) validate() error {
	nx, ny, nz := v.Dimensions[0], v.Dimensions[1], v.Dimensions[2]
	if nx < 2 {
		return &ferr.VolumeDimensionTooSmall{Axis: "x"}
	}
	if ny < 2 {
		return &ferr.VolumeDimensionTooSmall{Axis: "y"}
	}
	if nz < 2 {
		return &ferr.VolumeDimensionTooSmall{Axis: "z"}
	}
	for _, s := range v.Spacing {
		if !isFinite(s) || s <= 0 {
			return &ferr.FieldOutOfRange{Path: "volume.spacing", Constraint: "each component must be finite and positive"}
		}
	}
	if len(v.Values) != nx*ny*nz {
		return &ferr.LengthMismatch{Path: "volume.values", Expected: nx * ny * nz, Actual: len(v.Values)}
	}
	for _, val := range v.Values {
		if !isFinite(val) {
			return &ferr.VolumeNonFinite{}
		}
	}
	if v.Categorical && !v.AllowCategorical {
		return &ferr.CategoricalVolumeRejected{}
	}
	return nil
}

func isFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}
