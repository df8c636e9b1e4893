package audit

import (
	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/render"
	"github.com/frustum-vis/frustum/vecmath"
)

// GeometryProbes are numeric measurements taken on the shaded Frame
// against the camera's view-projection matrix, independent of whatever a
// Backend goes on to draw. They exist so a caller can tell "nothing is in
// frame" or "the projection produced NaNs" apart from "the image happens
// to be blank".
type GeometryProbes struct {
	NDCBounds        *BoundsSummary `json:"ndc_bounds,omitempty"`
	DepthStats       DepthStats     `json:"depth_stats"`
	DegenerateCount  uint32         `json:"degenerate_count"`
	ClippedCount     uint32         `json:"clipped_count"`
	BackfaceCount    uint32         `json:"backface_count"`
	GeometryVisible  bool           `json:"geometry_visible"`
	HasInvalidValues bool           `json:"has_invalid_values"`
}

// DepthStats summarizes the NDC z of every vertex that projected inside
// the view volume.
type DepthStats struct {
	Min               float32 `json:"min"`
	Max               float32 `json:"max"`
	Mean              float32 `json:"mean"`
	FarPlanePercentage float32 `json:"far_plane_percentage"`
}

// computeGeometryProbes projects every vertex of frame (triangle corners,
// line endpoints, points and label anchors) through cam's view-projection
// matrix at aspect. ClippedCount counts the projected vertices of every
// primitive kind that fall behind the eye or outside the view volume;
// vertices inside it feed the NDC bounds and depth stats (a triangle's only
// when all three are inside). Degenerate and back-facing counts are taken
// over triangles only.
func computeGeometryProbes(frame render.Frame, cam camera.Camera, aspect float32) GeometryProbes {
	viewProj := cam.ViewProjectionMatrix(aspect)

	var probes GeometryProbes
	var ndcMin, ndcMax vecmath.Vec3
	haveNDC := false
	var depthSum float32
	var depthCount, farCount int

	visit := func(p vecmath.Vec3) (ndc vecmath.Vec3, visible bool) {
		x, y, z, w := vecmath.TransformHomogeneous(viewProj, p)
		if !isFinite(x) || !isFinite(y) || !isFinite(z) || !isFinite(w) {
			probes.HasInvalidValues = true
		}
		if w <= 0 {
			probes.ClippedCount++
			return vecmath.Vec3{}, false
		}
		invW := 1 / w
		ndc = vecmath.Vec3{X: x * invW, Y: y * invW, Z: z * invW}
		if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < 0 || ndc.Z > 1 {
			probes.ClippedCount++
			return ndc, false
		}
		return ndc, true
	}

	accumulate := func(ndc vecmath.Vec3) {
		if !haveNDC {
			ndcMin, ndcMax = ndc, ndc
			haveNDC = true
		} else {
			ndcMin = vecmath.Vec3{X: minf(ndcMin.X, ndc.X), Y: minf(ndcMin.Y, ndc.Y), Z: minf(ndcMin.Z, ndc.Z)}
			ndcMax = vecmath.Vec3{X: maxf(ndcMax.X, ndc.X), Y: maxf(ndcMax.Y, ndc.Y), Z: maxf(ndcMax.Z, ndc.Z)}
		}
		depthSum += ndc.Z
		depthCount++
		if ndc.Z >= 0.999 {
			farCount++
		}
		probes.GeometryVisible = true
	}

	for _, tri := range frame.Triangles {
		n0, ok0 := visit(tri.V0.Position)
		n1, ok1 := visit(tri.V1.Position)
		n2, ok2 := visit(tri.V2.Position)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		accumulate(n0)
		accumulate(n1)
		accumulate(n2)

		area2 := (n1.X-n0.X)*(n2.Y-n0.Y) - (n2.X-n0.X)*(n1.Y-n0.Y)
		if area2 == 0 {
			probes.DegenerateCount++
		} else if area2 < 0 {
			probes.BackfaceCount++
		}
	}
	for _, l := range frame.Lines {
		if n, ok := visit(l.A.Position); ok {
			accumulate(n)
		}
		if n, ok := visit(l.B.Position); ok {
			accumulate(n)
		}
	}
	for _, pt := range frame.Points {
		if n, ok := visit(pt.V.Position); ok {
			accumulate(n)
		}
	}
	for _, lbl := range frame.Labels {
		if n, ok := visit(lbl.Anchor); ok {
			accumulate(n)
		}
	}

	if haveNDC {
		probes.NDCBounds = &BoundsSummary{
			Min:    [3]float32{ndcMin.X, ndcMin.Y, ndcMin.Z},
			Max:    [3]float32{ndcMax.X, ndcMax.Y, ndcMax.Z},
			Center: [3]float32{(ndcMin.X + ndcMax.X) / 2, (ndcMin.Y + ndcMax.Y) / 2, (ndcMin.Z + ndcMax.Z) / 2},
			Extent: [3]float32{ndcMax.X - ndcMin.X, ndcMax.Y - ndcMin.Y, ndcMax.Z - ndcMin.Z},
		}
	}
	if depthCount > 0 {
		probes.DepthStats = DepthStats{
			Min:                ndcMin.Z,
			Max:                ndcMax.Z,
			Mean:               depthSum / float32(depthCount),
			FarPlanePercentage: float32(farCount) / float32(depthCount) * 100,
		}
	}
	return probes
}

func isFinite(f float32) bool { return f == f && f > -maxFloat32 && f < maxFloat32 }

const maxFloat32 = 3.402823466e+38

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
