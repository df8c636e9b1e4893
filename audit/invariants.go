package audit

import (
	"fmt"

	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
)

// OverallStatus summarizes an InvariantResults at a glance.
type OverallStatus int

const (
	Pass OverallStatus = iota
	PassWithWarnings
	Fail
)

func (s OverallStatus) String() string {
	switch s {
	case Pass:
		return "pass"
	case PassWithWarnings:
		return "pass_with_warnings"
	case Fail:
		return "fail"
	default:
		return "unknown"
	}
}

func (s OverallStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

func (s *OverallStatus) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case `"pass"`:
		*s = Pass
	case `"pass_with_warnings"`:
		*s = PassWithWarnings
	case `"fail"`:
		*s = Fail
	default:
		return fmt.Errorf("audit: unrecognized overall status %s", data)
	}
	return nil
}

// InvariantCategory groups a violation by the part of the pipeline it
// concerns.
type InvariantCategory int

const (
	CategoryScene InvariantCategory = iota
	CategoryCamera
	CategoryGeometry
	CategoryMaterial
	CategoryRender
	CategoryStability
)

func (c InvariantCategory) String() string {
	switch c {
	case CategoryScene:
		return "scene"
	case CategoryCamera:
		return "camera"
	case CategoryGeometry:
		return "geometry"
	case CategoryMaterial:
		return "material"
	case CategoryRender:
		return "render"
	case CategoryStability:
		return "stability"
	default:
		return "unknown"
	}
}

func (c InvariantCategory) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

func (c *InvariantCategory) UnmarshalJSON(data []byte) error {
	names := map[string]InvariantCategory{
		`"scene"`: CategoryScene, `"camera"`: CategoryCamera, `"geometry"`: CategoryGeometry,
		`"material"`: CategoryMaterial, `"render"`: CategoryRender, `"stability"`: CategoryStability,
	}
	v, ok := names[string(data)]
	if !ok {
		return fmt.Errorf("audit: unrecognized invariant category %s", data)
	}
	*c = v
	return nil
}

// InvariantViolation is one error or warning raised while checking a
// Bundle.
type InvariantViolation struct {
	Category InvariantCategory `json:"category"`
	Message  string            `json:"message"`
	Details  string            `json:"details,omitempty"`
}

// InvariantResults accumulates the checks run over one Bundle.
type InvariantResults struct {
	Errors   []InvariantViolation `json:"errors"`
	Warnings []InvariantViolation `json:"warnings"`
	Notes    []string             `json:"notes"`
	Overall  OverallStatus        `json:"overall"`
}

func newInvariantResults() InvariantResults {
	return InvariantResults{Overall: Pass}
}

func (r *InvariantResults) error(cat InvariantCategory, message string) {
	r.Errors = append(r.Errors, InvariantViolation{Category: cat, Message: message})
	r.Overall = Fail
}

func (r *InvariantResults) errorWithDetails(cat InvariantCategory, message, details string) {
	r.Errors = append(r.Errors, InvariantViolation{Category: cat, Message: message, Details: details})
	r.Overall = Fail
}

func (r *InvariantResults) warning(cat InvariantCategory, message string) {
	r.Warnings = append(r.Warnings, InvariantViolation{Category: cat, Message: message})
	if r.Overall == Pass {
		r.Overall = PassWithWarnings
	}
}

func (r *InvariantResults) note(message string) {
	r.Notes = append(r.Notes, message)
}

// checkAllInvariants runs every category of check and folds the results
// into one InvariantResults.
func checkAllInvariants(s scene.Scene, meta RenderMetadata, geom GeometryProbes, img ImageMetrics) InvariantResults {
	results := newInvariantResults()
	checkSceneInvariants(s, meta, &results)
	checkCameraInvariants(s, geom, &results)
	checkGeometryInvariants(geom, meta, &results)
	checkRenderInvariants(img, meta, &results)
	return results
}

func checkSceneInvariants(s scene.Scene, meta RenderMetadata, results *InvariantResults) {
	if len(s.Objects) == 0 {
		results.warning(CategoryScene, "scene contains no geometry objects")
	}

	bounds := s.WorldBounds
	for i, obj := range s.Objects {
		switch obj.Kind {
		case geometry.KindMesh:
			checkPositionsWithinBounds(results, CategoryScene, fmt.Sprintf("mesh %d", i), obj.Mesh.Positions, bounds)
		case geometry.KindPoints:
			checkPositionsFinite(results, CategoryScene, fmt.Sprintf("point cloud %d", i), obj.Points.Positions)
		case geometry.KindLines:
			checkPositionsFinite(results, CategoryScene, fmt.Sprintf("polyline %d", i), obj.Lines.Positions)
		case geometry.KindAxisBundle:
			ab := obj.AxisBundle.Bounds
			if ab.Degenerate() {
				results.error(CategoryScene, fmt.Sprintf("axis bundle %d has degenerate bounds", i))
			} else if !bounds.Contains(ab) {
				results.warning(CategoryScene, fmt.Sprintf("axis bundle %d bounds exceed scene world bounds", i))
			}
		}
	}

	results.note(fmt.Sprintf(
		"scene contains %d meshes (%d triangles), %d point clouds, %d polylines",
		meta.PrimitiveCounts.Meshes, meta.PrimitiveCounts.TotalTriangles,
		meta.PrimitiveCounts.PointClouds, meta.PrimitiveCounts.Polylines,
	))
}

func checkPositionsWithinBounds(results *InvariantResults, cat InvariantCategory, label string, positions []vecmath.Vec3, bounds vecmath.AABB) {
	warnedOutOfBounds := false
	for _, p := range positions {
		if !vecmath.IsFinite(p) {
			results.error(cat, fmt.Sprintf("%s contains a non-finite vertex position", label))
			return
		}
		if !warnedOutOfBounds && !bounds.ContainsPoint(p) {
			results.warning(cat, fmt.Sprintf("%s has a vertex (%.2f, %.2f, %.2f) outside world bounds", label, p.X, p.Y, p.Z))
			warnedOutOfBounds = true
		}
	}
}

func checkPositionsFinite(results *InvariantResults, cat InvariantCategory, label string, positions []vecmath.Vec3) {
	for _, p := range positions {
		if !vecmath.IsFinite(p) {
			results.error(cat, fmt.Sprintf("%s contains a non-finite position", label))
			return
		}
	}
}

func checkCameraInvariants(s scene.Scene, geom GeometryProbes, results *InvariantResults) {
	cam := s.Camera
	if vecmath.Length(vecmath.Sub(cam.Eye, cam.Target)) < 1e-6 {
		results.error(CategoryCamera, "camera eye equals target (degenerate view)")
	}
	if cam.Near >= cam.Far {
		results.error(CategoryCamera, fmt.Sprintf("camera near (%v) >= far (%v)", cam.Near, cam.Far))
	}
	if cam.Near <= 0 {
		results.error(CategoryCamera, fmt.Sprintf("camera near plane (%v) must be positive", cam.Near))
	}
	if !geom.GeometryVisible {
		results.warning(CategoryCamera, "no geometry visible in view frustum")
	}
	if geom.HasInvalidValues {
		results.error(CategoryCamera, "NaN or Inf detected in projected coordinates")
	}
	if geom.DepthStats.FarPlanePercentage > 99 {
		results.warning(CategoryCamera, fmt.Sprintf(
			"%.1f%% of pixels at far plane (scene may be empty or camera misaligned)", geom.DepthStats.FarPlanePercentage))
	}
}

func checkGeometryInvariants(geom GeometryProbes, meta RenderMetadata, results *InvariantResults) {
	if geom.DegenerateCount > 0 {
		results.warning(CategoryGeometry, fmt.Sprintf("%d degenerate primitives detected (zero-area triangles)", geom.DegenerateCount))
	}
	if geom.ClippedCount > 0 {
		total := meta.PrimitiveCounts.TotalTriangles
		pct := float32(0)
		if total > 0 {
			pct = float32(geom.ClippedCount) / float32(total) * 100
		}
		if pct > 50 {
			results.warning(CategoryGeometry, fmt.Sprintf(
				"%d primitives clipped (%.1f%% of total) - consider adjusting camera planes", geom.ClippedCount, pct))
		} else {
			results.note(fmt.Sprintf("%d primitives clipped by near/far planes or view frustum", geom.ClippedCount))
		}
	}
	if geom.BackfaceCount > 0 {
		results.note(fmt.Sprintf("%d back-facing triangles", geom.BackfaceCount))
	}
}

func checkRenderInvariants(img ImageMetrics, meta RenderMetadata, results *InvariantResults) {
	if meta.Resolution[0] == 0 || meta.Resolution[1] == 0 {
		results.error(CategoryRender, fmt.Sprintf("invalid resolution: %dx%d", meta.Resolution[0], meta.Resolution[1]))
	}
	if img.TransparentPercentage > 99 {
		results.warning(CategoryRender, fmt.Sprintf("%.1f%% transparent pixels - render may have failed", img.TransparentPercentage))
	}
	if img.BackgroundPercentage > 99 {
		results.warning(CategoryRender, fmt.Sprintf("%.1f%% of image is background color - scene may be empty or not visible", img.BackgroundPercentage))
	}
	if img.EdgeDensity < 0.001 && img.BackgroundPercentage < 100 {
		results.note("very low edge density - image may be mostly flat colors")
	}
	if img.ConnectedComponents > 0 {
		results.note(fmt.Sprintf("%d distinct regions detected in rendered image", img.ConnectedComponents))
	}
}
