// Package material defines Frustum's material variants. A
// Material is a tagged sum type keyed by a stable id: either a uniform
// SolidMaterial or a colormap-driven ScalarMappedMaterial. Geometry never
// embeds appearance directly — it references a material by id, resolved
// once at validation time.
package material

// Kind discriminates the two material variants.
type Kind int

const (
	// KindSolid is a uniform RGBA color.
	KindSolid Kind = iota
	// KindScalarMapped maps a per-vertex scalar through a named colormap.
	KindScalarMapped
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindScalarMapped:
		return "scalar_mapped"
	default:
		return "unknown"
	}
}

// RGBA is a color with components nominally in [0, 1].
type RGBA struct {
	R, G, B, A float32
}

// Material is the tagged variant shared by both material kinds. Renderables
// hold a material reference by id (a logical reference, resolved to an
// index at validation time); Material itself only describes appearance.
type Material struct {
	// ID is the unique identifier other scene elements reference.
	ID string
	// Kind discriminates which of Solid / ScalarMapped is populated.
	Kind Kind

	// Solid is populated when Kind == KindSolid.
	Solid SolidMaterial
	// ScalarMapped is populated when Kind == KindScalarMapped.
	ScalarMapped ScalarMappedMaterial
}

// SolidMaterial is a uniform RGBA color, each component in [0, 1].
type SolidMaterial struct {
	Color RGBA
}

// ScalarMappedMaterial maps a per-vertex scalar to a color via a named
// colormap and a linear range.
type ScalarMappedMaterial struct {
	// Colormap is one of "viridis", "plasma", "inferno", "magma", "cividis".
	Colormap string
	// RangeMin and RangeMax define the linear normalization range; RangeMin
	// must be strictly less than RangeMax.
	RangeMin, RangeMax float32
	// Clamp, when true (the default), clamps normalized t to [0, 1]. When
	// false, out-of-range or NaN scalars sample MissingColor instead.
	Clamp bool
	// MissingColor is sampled for NaN or (when Clamp is false) out-of-range
	// scalars.
	MissingColor RGBA
}

// NewSolid builds a Solid material with the given id and color.
func NewSolid(id string, color RGBA) Material {
	return Material{ID: id, Kind: KindSolid, Solid: SolidMaterial{Color: color}}
}

// NewScalarMapped builds a ScalarMapped material with the given id,
// colormap name and range. Clamp defaults to true and MissingColor defaults
// to opaque gray, matching the defaults named in 
func NewScalarMapped(id, colormap string, rangeMin, rangeMax float32) Material {
	return Material{
		ID:   id,
		Kind: KindScalarMapped,
		ScalarMapped: ScalarMappedMaterial{
			Colormap:     colormap,
			RangeMin:     rangeMin,
			RangeMax:     rangeMax,
			Clamp:        true,
			MissingColor: RGBA{0.5, 0.5, 0.5, 1},
		},
	}
}
