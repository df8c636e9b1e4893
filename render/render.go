// Package render implements Frustum's fixed four-pass render pipeline:
// geometry expansion, Lambertian lighting, colormap resolution and a
// final backend-specific rasterize-and-composite resolve pass. Render is a
// pure function: it never mutates its scene argument and never falls back
// to defaults the caller didn't ask for (no auto camera fit, no implicit
// lights).
package render

import (
	"log"

	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/validate"
)

// Render executes the full pipeline against an already-buildable scene and
// config, using backend as the resolve-pass implementation. Passes run in
// the fixed order geometry -> lighting -> color mapping -> resolve; the
// first three always run in Go regardless of backend, so SoftBackend and
// WgpuBackend only ever differ in how they rasterize an identical, already
// shaded Frame.
func Render(s scene.Scene, cfg Config, backend Backend) (*Image, error) {
	if err := validate.Validate(s); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	frame, err := buildFrame(s)
	if err != nil {
		return nil, err
	}

	if len(frame.Triangles) == 0 && len(frame.Lines) == 0 && len(frame.Points) == 0 && len(frame.Labels) == 0 {
		log.Printf("render: scene has no renderable geometry, emitting solid background")
	}

	return backend.Rasterize(frame, s.Camera, cfg)
}

// RenderSoft is a convenience wrapper for the common case of rendering
// with the deterministic CPU backend.
func RenderSoft(s scene.Scene, cfg Config) (*Image, error) {
	return Render(s, cfg, SoftBackend{})
}
