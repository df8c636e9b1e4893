// Package scene defines Frustum's immutable Scene value and the
// builder used to assemble one before validation. Once accepted by
// validate.Validate, a Scene is treated as deeply immutable: no field is
// ever mutated in place by a generator or by Render.
package scene

import (
	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/vecmath"
)

// SchemaVersion is the only schema version this build of Frustum accepts.
const SchemaVersion = "frustum/scene/v1"

// Scene is the top-level immutable scene description. A Scene
// with no Objects or no Materials is valid but non-renderable.
type Scene struct {
	Version     string
	Camera      camera.Camera
	WorldBounds vecmath.AABB
	Objects     []geometry.Renderable
	Materials   []material.Material
	Light       *light.Light
}

// New returns a Scene with SchemaVersion pre-filled, ready for a builder
// to populate. Scenes are ordinary values: build one with struct literals
// or the With* helpers below, then pass it to validate.Validate. There is
// intentionally no fluent builder that mutates a Scene in place, because a
// Scene is meant to be constructed once, not incrementally reshaped —
// this Scene has no lifecycle beyond "validated" or "not yet validated".
func New(cam camera.Camera, worldBounds vecmath.AABB) Scene {
	return Scene{
		Version:     SchemaVersion,
		Camera:      cam,
		WorldBounds: worldBounds,
	}
}

// WithObjects returns a copy of s with Objects set, leaving s unmodified.
func (s Scene) WithObjects(objects ...geometry.Renderable) Scene {
	s.Objects = append([]geometry.Renderable(nil), objects...)
	return s
}

// WithMaterials returns a copy of s with Materials set, leaving s
// unmodified.
func (s Scene) WithMaterials(materials ...material.Material) Scene {
	s.Materials = append([]material.Material(nil), materials...)
	return s
}

// WithLight returns a copy of s with Light set, leaving s unmodified.
func (s Scene) WithLight(l light.Light) Scene {
	s.Light = &l
	return s
}

// MaterialByID returns the material with the given id and true, or the
// zero Material and false if no such material exists.
func (s Scene) MaterialByID(id string) (material.Material, bool) {
	for _, m := range s.Materials {
		if m.ID == id {
			return m, true
		}
	}
	return material.Material{}, false
}
