// Package light defines Frustum's single optional directional light and
// its Lambertian shading contract. There is never more
// than one light and there is no implicit headlight: a scene with no light
// renders every mesh with flat, unlit color.
package light

import "github.com/frustum-vis/frustum/vecmath"

// Light is a directional light used for Lambertian shading of Mesh
// fragments. Direction points toward the light source, not the direction
// light travels, matching the convention documented in the original
// lighting model this component supplements from.
type Light struct {
	// Direction toward the light source, world space, unit length within
	// [0.99, 1.01]
	Direction vecmath.Vec3
	// Intensity multiplies the diffuse term; must be finite and >= 0.
	Intensity float32
	// Enabled toggles whether the light contributes to the lighting pass.
	// Defaults to true.
	Enabled bool
}

// New builds a Light with the given direction (normalized) and intensity.
// Enabled defaults to true.
func New(direction vecmath.Vec3, intensity float32) Light {
	return Light{
		Direction: vecmath.Normalize(direction),
		Intensity: intensity,
		Enabled:   true,
	}
}

// Lambertian computes the diffuse shading contribution for a surface with
// the given unit normal:
//
//	color = base * min(max(dot(normalize(normal), light_dir), 0) * intensity, 1)
func (l Light) Lambertian(normal vecmath.Vec3) float32 {
	n := vecmath.Normalize(normal)
	d := vecmath.Dot(n, l.Direction)
	if d < 0 {
		d = 0
	}
	term := d * l.Intensity
	if term > 1 {
		term = 1
	}
	return term
}

// Supplemented lighting presets (original_source/frustum-core/lighting.rs),
// each a validated, ready-to-use Light for common scientific-figure setups.

// ScientificFlat is an overhead light of moderate intensity, good for data
// visualization where shape matters more than drama.
func ScientificFlat() Light { return New(vecmath.Vec3{X: 0, Y: 1, Z: 0.3}, 0.8) }

// StudioSoft is a front-top-right light of balanced intensity, a classic
// general-purpose 3D rendering setup.
func StudioSoft() Light { return New(vecmath.Vec3{X: 0.5, Y: 0.7, Z: 0.5}, 1.0) }

// RimHighlight is a back-top light that brightens silhouette edges.
func RimHighlight() Light { return New(vecmath.Vec3{X: -0.3, Y: 0.5, Z: -0.8}, 1.2) }

// DepthEmphasis is a steep top-down light emphasizing depth and surface
// detail.
func DepthEmphasis() Light { return New(vecmath.Vec3{X: 0.1, Y: 0.95, Z: 0.1}, 1.0) }

// SideLight is a strong lateral light emphasizing topology and small
// features.
func SideLight() Light { return New(vecmath.Vec3{X: 1.0, Y: 0.3, Z: 0.2}, 1.0) }

// ThreeQuarter is a classic 45-degree front-top-right light, the most
// versatile general-purpose preset.
func ThreeQuarter() Light { return New(vecmath.Vec3{X: 0.577, Y: 0.577, Z: 0.577}, 1.0) }
