// Package audit computes a structured evidence bundle alongside a render:
// scene metadata, geometry probes gathered from the shaded Frame, and
// image-derived metrics gathered from the rasterized pixels, then checks a
// fixed set of invariants against that evidence. It exists so a caller (or
// an AI reviewing a figure) can sanity-check a render without inspecting
// raw pixels by eye. Nothing in this package mutates the image or the
// scene it inspects; Run only reads.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/render"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/validate"
	"github.com/frustum-vis/frustum/vecmath"
)

// RendererVersion is stamped into every Bundle's metadata. It identifies
// this build of the renderer, independent of the scene schema version.
const RendererVersion = "frustum-render/0.1"

// Bundle is the complete audit evidence emitted alongside a render.
type Bundle struct {
	Metadata   RenderMetadata   `json:"metadata"`
	Geometry   GeometryProbes   `json:"geometry"`
	Image      ImageMetrics     `json:"image_metrics"`
	Invariants InvariantResults `json:"invariants"`
}

// RenderMetadata is structural metadata about one render invocation.
type RenderMetadata struct {
	SceneHash        string          `json:"scene_hash"`
	SchemaVersion    string          `json:"schema_version"`
	RendererVersion  string          `json:"renderer_version"`
	Backend          string          `json:"backend"`
	Adapter          string          `json:"adapter"`
	Resolution       [2]int          `json:"resolution"`
	Camera           CameraSummary   `json:"camera"`
	WorldBounds      BoundsSummary   `json:"world_bounds"`
	PrimitiveCounts  PrimitiveCounts `json:"primitive_counts"`
}

// CameraSummary condenses a camera.Camera to the fields worth auditing.
type CameraSummary struct {
	Projection  string     `json:"projection"`
	Position    [3]float32 `json:"position"`
	Target      [3]float32 `json:"target"`
	Near        float32    `json:"near"`
	Far         float32    `json:"far"`
	FovOrHeight float32    `json:"fov_or_height"`
}

// BoundsSummary condenses a vecmath.AABB to the fields worth auditing.
type BoundsSummary struct {
	Min    [3]float32 `json:"min"`
	Max    [3]float32 `json:"max"`
	Center [3]float32 `json:"center"`
	Extent [3]float32 `json:"extent"`
}

// PrimitiveCounts tallies scene objects and the Frame primitives they
// expanded into.
type PrimitiveCounts struct {
	Meshes            uint32 `json:"meshes"`
	TotalTriangles    uint32 `json:"total_triangles"`
	TotalVertices     uint32 `json:"total_vertices"`
	PointClouds       uint32 `json:"point_clouds"`
	TotalPoints       uint32 `json:"total_points"`
	Polylines         uint32 `json:"polylines"`
	TotalLineSegments uint32 `json:"total_line_segments"`
}

// Run executes a full render through backend, gathering the audit Bundle
// alongside the usual *render.Image. It re-validates and re-expands the
// scene itself rather than calling render.Render, since it needs the
// intermediate Frame that Render discards after rasterizing — that costs
// one extra geometry/lighting/color pass, spent only when a caller asks
// for the bundle.
func Run(s scene.Scene, cfg render.Config, backend render.Backend, backendName, adapterName string) (*render.Image, Bundle, error) {
	if err := validate.Validate(s); err != nil {
		return nil, Bundle{}, err
	}
	if err := render.Validate(cfg); err != nil {
		return nil, Bundle{}, err
	}

	frame, err := render.BuildFrame(s)
	if err != nil {
		return nil, Bundle{}, err
	}
	img, err := backend.Rasterize(frame, s.Camera, cfg)
	if err != nil {
		return nil, Bundle{}, err
	}

	aspect := float32(cfg.PhysicalWidth()) / float32(cfg.PhysicalHeight())
	geom := computeGeometryProbes(frame, s.Camera, aspect)
	imgMetrics := computeImageMetrics(img, cfg.Background)
	meta := buildMetadata(s, cfg, frame, backendName, adapterName)
	inv := checkAllInvariants(s, meta, geom, imgMetrics)

	return img, Bundle{Metadata: meta, Geometry: geom, Image: imgMetrics, Invariants: inv}, nil
}

func buildMetadata(s scene.Scene, cfg render.Config, frame render.Frame, backendName, adapterName string) RenderMetadata {
	canonical, err := scene.MarshalCanonical(s)
	hash := ""
	if err == nil {
		sum := sha256.Sum256(canonical)
		hash = hex.EncodeToString(sum[:])
	}

	fovOrHeight := s.Camera.FovY
	if s.Camera.Projection == camera.Orthographic {
		fovOrHeight = s.Camera.ViewHeight
	}

	counts := PrimitiveCounts{
		TotalTriangles:    uint32(len(frame.Triangles)),
		TotalPoints:       uint32(len(frame.Points)),
		TotalLineSegments: uint32(len(frame.Lines)),
	}
	vertexTotal := 0
	for _, obj := range s.Objects {
		switch obj.Kind {
		case geometry.KindMesh:
			counts.Meshes++
			vertexTotal += len(obj.Mesh.Positions)
		case geometry.KindPoints:
			counts.PointClouds++
		case geometry.KindLines, geometry.KindCurves:
			counts.Polylines++
		}
	}
	counts.TotalVertices = uint32(vertexTotal)

	return RenderMetadata{
		SceneHash:       hash,
		SchemaVersion:   s.Version,
		RendererVersion: RendererVersion,
		Backend:         backendName,
		Adapter:         adapterName,
		Resolution:      [2]int{cfg.PhysicalWidth(), cfg.PhysicalHeight()},
		Camera: CameraSummary{
			Projection:  s.Camera.Projection.String(),
			Position:    [3]float32{s.Camera.Eye.X, s.Camera.Eye.Y, s.Camera.Eye.Z},
			Target:      [3]float32{s.Camera.Target.X, s.Camera.Target.Y, s.Camera.Target.Z},
			Near:        s.Camera.Near,
			Far:         s.Camera.Far,
			FovOrHeight: fovOrHeight,
		},
		WorldBounds:     boundsSummary(s.WorldBounds.Min, s.WorldBounds.Max),
		PrimitiveCounts: counts,
	}
}

func boundsSummary(min, max vecmath.Vec3) BoundsSummary {
	return BoundsSummary{
		Min:    [3]float32{min.X, min.Y, min.Z},
		Max:    [3]float32{max.X, max.Y, max.Z},
		Center: [3]float32{(min.X + max.X) / 2, (min.Y + max.Y) / 2, (min.Z + max.Z) / 2},
		Extent: [3]float32{max.X - min.X, max.Y - min.Y, max.Z - min.Z},
	}
}

// ToJSON serializes a Bundle as pretty-printed JSON.
func (b Bundle) ToJSON() ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// BundleFromJSON deserializes a Bundle previously written by ToJSON.
func BundleFromJSON(data []byte) (Bundle, error) {
	var b Bundle
	err := json.Unmarshal(data, &b)
	return b, err
}
