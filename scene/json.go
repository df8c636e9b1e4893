package scene

import (
	"encoding/json"
	"fmt"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/vecmath"
)

// The wire DTOs below mirror the canonical JSON encoding named in :
// a top-level object with version/camera/world_bounds/objects/materials/
// light, position arrays flattened as [x0,y0,z0,x1,y1,z1,...], and every
// tagged variant discriminated by a "type" string field.

type wireVec3 [3]float32

type wireAABB struct {
	Min wireVec3 `json:"min"`
	Max wireVec3 `json:"max"`
}

type wireCamera struct {
	Eye        wireVec3 `json:"eye"`
	Target     wireVec3 `json:"target"`
	Up         wireVec3 `json:"up"`
	Projection string   `json:"projection"`
	Near       float32  `json:"near"`
	Far        float32  `json:"far"`
	FovY       *float32 `json:"fov_y,omitempty"`
	ViewHeight *float32 `json:"view_height,omitempty"`
}

type wireTickSpec struct {
	Mode   string    `json:"mode"`
	Values []float32 `json:"values,omitempty"`
	Count  *int      `json:"count,omitempty"`
}

type wireLabelSpec struct {
	Show   bool     `json:"show"`
	Offset wireVec3 `json:"offset"`
	Format string   `json:"format,omitempty"`
}

type wireRenderable struct {
	Type        string         `json:"type"`
	ID          string         `json:"id,omitempty"`
	Positions   []float32      `json:"positions,omitempty"`
	Scalars     []float32      `json:"scalars,omitempty"`
	Size        *float32       `json:"size,omitempty"`
	Width       *float32       `json:"width,omitempty"`
	MaterialID  string         `json:"material_id,omitempty"`
	CurveType   string         `json:"curve_type,omitempty"`
	Segments    int            `json:"segments,omitempty"`
	Indices     []uint32       `json:"indices,omitempty"`
	Normals     []float32      `json:"normals,omitempty"`
	Bounds      *wireAABB      `json:"bounds,omitempty"`
	Axes        []string       `json:"axes,omitempty"`
	Ticks       *wireTickSpec  `json:"ticks,omitempty"`
	Labels      *wireLabelSpec `json:"labels,omitempty"`
}

type wireMaterial struct {
	Type         string    `json:"type"`
	ID           string    `json:"id"`
	Color        []float32 `json:"color,omitempty"`
	Colormap     string    `json:"colormap,omitempty"`
	Range        []float32 `json:"range,omitempty"`
	Clamp        *bool     `json:"clamp,omitempty"`
	MissingColor []float32 `json:"missing_color,omitempty"`
}

type wireLight struct {
	Direction wireVec3 `json:"direction"`
	Intensity float32  `json:"intensity"`
	Enabled   *bool    `json:"enabled,omitempty"`
}

type wireScene struct {
	Version     string           `json:"version"`
	Camera      wireCamera       `json:"camera"`
	WorldBounds wireAABB         `json:"world_bounds"`
	Objects     []wireRenderable `json:"objects"`
	Materials   []wireMaterial   `json:"materials"`
	Light       *wireLight       `json:"light,omitempty"`
}

func toVec3(w wireVec3) vecmath.Vec3 { return vecmath.Vec3{X: w[0], Y: w[1], Z: w[2]} }
func fromVec3(v vecmath.Vec3) wireVec3 { return wireVec3{v.X, v.Y, v.Z} }

func flatten(vs []vecmath.Vec3) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v.X, v.Y, v.Z)
	}
	return out
}

func unflatten(path string, xs []float32) ([]vecmath.Vec3, error) {
	if len(xs)%3 != 0 {
		return nil, fmt.Errorf("%s: flattened position array length %d is not a multiple of 3", path, len(xs))
	}
	out := make([]vecmath.Vec3, 0, len(xs)/3)
	for i := 0; i+2 < len(xs); i += 3 {
		out = append(out, vecmath.Vec3{X: xs[i], Y: xs[i+1], Z: xs[i+2]})
	}
	return out, nil
}

// Marshal encodes s to its JSON wire form.
func Marshal(s Scene) ([]byte, error) {
	w := wireScene{
		Version: s.Version,
		Camera:  cameraToWire(s.Camera),
		WorldBounds: wireAABB{
			Min: fromVec3(s.WorldBounds.Min),
			Max: fromVec3(s.WorldBounds.Max),
		},
	}
	for _, o := range s.Objects {
		wo, err := renderableToWire(o)
		if err != nil {
			return nil, err
		}
		w.Objects = append(w.Objects, wo)
	}
	for _, m := range s.Materials {
		w.Materials = append(w.Materials, materialToWire(m))
	}
	if s.Light != nil {
		enabled := s.Light.Enabled
		w.Light = &wireLight{
			Direction: fromVec3(s.Light.Direction),
			Intensity: s.Light.Intensity,
			Enabled:   &enabled,
		}
	}
	return json.Marshal(w)
}

// MarshalCanonical encodes s with lexicographically sorted object keys and
// numbers in Go's shortest round-tripping form, the canonical serialization
// used for regression comparisons. It round-trips through a generic map so
// that encoding/json's built-in key sorting for map values produces the
// sorted form, rather than reimplementing a JSON writer.
func MarshalCanonical(s Scene) ([]byte, error) {
	raw, err := Marshal(s)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}

// Unmarshal decodes JSON in the wire form into a Scene. It does not
// validate the result; callers must run validate.Validate afterward.
func Unmarshal(data []byte) (Scene, error) {
	var w wireScene
	if err := json.Unmarshal(data, &w); err != nil {
		return Scene{}, err
	}
	return sceneFromWire(w)
}

func cameraToWire(c camera.Camera) wireCamera {
	w := wireCamera{
		Eye:    fromVec3(c.Eye),
		Target: fromVec3(c.Target),
		Up:     fromVec3(c.Up),
		Near:   c.Near,
		Far:    c.Far,
	}
	switch c.Projection {
	case camera.Orthographic:
		w.Projection = "orthographic"
		vh := c.ViewHeight
		w.ViewHeight = &vh
	default:
		w.Projection = "perspective"
		fov := c.FovY
		w.FovY = &fov
	}
	return w
}

func cameraFromWire(w wireCamera) (camera.Camera, error) {
	c := camera.Camera{
		Eye:    toVec3(w.Eye),
		Target: toVec3(w.Target),
		Up:     toVec3(w.Up),
		Near:   w.Near,
		Far:    w.Far,
	}
	switch w.Projection {
	case "perspective":
		c.Projection = camera.Perspective
		if w.FovY != nil {
			c.FovY = *w.FovY
		}
	case "orthographic":
		c.Projection = camera.Orthographic
		if w.ViewHeight != nil {
			c.ViewHeight = *w.ViewHeight
		}
	default:
		return camera.Camera{}, fmt.Errorf("camera.projection: unrecognized value %q", w.Projection)
	}
	return c, nil
}

func materialToWire(m material.Material) wireMaterial {
	switch m.Kind {
	case material.KindScalarMapped:
		clamp := m.ScalarMapped.Clamp
		mc := m.ScalarMapped.MissingColor
		return wireMaterial{
			Type:         "scalar_mapped",
			ID:           m.ID,
			Colormap:     m.ScalarMapped.Colormap,
			Range:        []float32{m.ScalarMapped.RangeMin, m.ScalarMapped.RangeMax},
			Clamp:        &clamp,
			MissingColor: []float32{mc.R, mc.G, mc.B, mc.A},
		}
	default:
		c := m.Solid.Color
		return wireMaterial{
			Type:  "solid",
			ID:    m.ID,
			Color: []float32{c.R, c.G, c.B, c.A},
		}
	}
}

func materialFromWire(w wireMaterial) (material.Material, error) {
	switch w.Type {
	case "solid":
		if len(w.Color) != 4 {
			return material.Material{}, fmt.Errorf("material %q: color must have 4 components", w.ID)
		}
		return material.NewSolid(w.ID, material.RGBA{R: w.Color[0], G: w.Color[1], B: w.Color[2], A: w.Color[3]}), nil
	case "scalar_mapped":
		if len(w.Range) != 2 {
			return material.Material{}, fmt.Errorf("material %q: range must have 2 components", w.ID)
		}
		m := material.NewScalarMapped(w.ID, w.Colormap, w.Range[0], w.Range[1])
		if w.Clamp != nil {
			m.ScalarMapped.Clamp = *w.Clamp
		}
		if len(w.MissingColor) == 4 {
			m.ScalarMapped.MissingColor = material.RGBA{
				R: w.MissingColor[0], G: w.MissingColor[1], B: w.MissingColor[2], A: w.MissingColor[3],
			}
		}
		return m, nil
	default:
		return material.Material{}, fmt.Errorf("material %q: unrecognized type %q", w.ID, w.Type)
	}
}

func renderableToWire(r geometry.Renderable) (wireRenderable, error) {
	w := wireRenderable{ID: r.Id}
	switch r.Kind {
	case geometry.KindPoints:
		w.Type = "points"
		w.Positions = flatten(r.Points.Positions)
		w.Scalars = r.Points.Scalars
		if r.Points.HasSize {
			s := r.Points.Size
			w.Size = &s
		}
		if r.Points.HasMaterial {
			w.MaterialID = r.Points.MaterialRef
		}
	case geometry.KindLines:
		w.Type = "lines"
		w.Positions = flatten(r.Lines.Positions)
		w.Scalars = r.Lines.Scalars
		if r.Lines.HasWidth {
			wd := r.Lines.Width
			w.Width = &wd
		}
		if r.Lines.HasMaterial {
			w.MaterialID = r.Lines.MaterialRef
		}
	case geometry.KindCurves:
		w.Type = "curves"
		w.CurveType = r.Curves.CurveType.String()
		w.Positions = flatten(r.Curves.ControlPoints)
		w.Segments = r.Curves.Segments
		w.Scalars = r.Curves.Scalars
		if r.Curves.HasWidth {
			wd := r.Curves.Width
			w.Width = &wd
		}
		if r.Curves.HasMaterial {
			w.MaterialID = r.Curves.MaterialRef
		}
	case geometry.KindMesh:
		w.Type = "mesh"
		w.Positions = flatten(r.Mesh.Positions)
		w.Indices = r.Mesh.Indices
		if r.Mesh.Normals != nil {
			w.Normals = flatten(r.Mesh.Normals)
		}
		w.Scalars = r.Mesh.Scalars
		if r.Mesh.HasMaterial {
			w.MaterialID = r.Mesh.MaterialRef
		}
	case geometry.KindAxisBundle:
		w.Type = "axes"
		ab := r.AxisBundle
		w.ID = ab.Id
		w.Bounds = &wireAABB{Min: fromVec3(ab.Bounds.Min), Max: fromVec3(ab.Bounds.Max)}
		for _, a := range ab.Axes {
			w.Axes = append(w.Axes, a.String())
		}
		w.MaterialID = ab.MaterialRef
		if ab.Ticks != nil {
			wt := &wireTickSpec{}
			if ab.Ticks.Mode == geometry.TicksFixed {
				wt.Mode = "fixed"
				wt.Values = ab.Ticks.Values
			} else {
				wt.Mode = "auto"
				c := ab.Ticks.Count
				wt.Count = &c
			}
			w.Ticks = wt
		}
		if ab.Labels != nil {
			w.Labels = &wireLabelSpec{
				Show:   ab.Labels.Show,
				Offset: fromVec3(ab.Labels.Offset),
				Format: ab.Labels.Format,
			}
		}
	default:
		return wireRenderable{}, fmt.Errorf("renderable %q: unrecognized kind", r.Id)
	}
	return w, nil
}

func renderableFromWire(w wireRenderable) (geometry.Renderable, error) {
	r := geometry.Renderable{Id: w.ID}
	switch w.Type {
	case "points":
		r.Kind = geometry.KindPoints
		pos, err := unflatten(fmt.Sprintf("objects[%s].positions", w.ID), w.Positions)
		if err != nil {
			return geometry.Renderable{}, err
		}
		r.Points = geometry.Points{Positions: pos, Scalars: w.Scalars, MaterialRef: w.MaterialID, HasMaterial: w.MaterialID != ""}
		if w.Size != nil {
			r.Points.Size = *w.Size
			r.Points.HasSize = true
		}
	case "lines":
		r.Kind = geometry.KindLines
		pos, err := unflatten(fmt.Sprintf("objects[%s].positions", w.ID), w.Positions)
		if err != nil {
			return geometry.Renderable{}, err
		}
		r.Lines = geometry.Lines{Positions: pos, Scalars: w.Scalars, MaterialRef: w.MaterialID, HasMaterial: w.MaterialID != ""}
		if w.Width != nil {
			r.Lines.Width = *w.Width
			r.Lines.HasWidth = true
		}
	case "curves":
		r.Kind = geometry.KindCurves
		cps, err := unflatten(fmt.Sprintf("objects[%s].positions", w.ID), w.Positions)
		if err != nil {
			return geometry.Renderable{}, err
		}
		ct, err := parseCurveType(w.CurveType)
		if err != nil {
			return geometry.Renderable{}, err
		}
		r.Curves = geometry.Curves{
			CurveType: ct, ControlPoints: cps, Segments: w.Segments, Scalars: w.Scalars,
			MaterialRef: w.MaterialID, HasMaterial: w.MaterialID != "",
		}
		if w.Width != nil {
			r.Curves.Width = *w.Width
			r.Curves.HasWidth = true
		}
	case "mesh":
		r.Kind = geometry.KindMesh
		pos, err := unflatten(fmt.Sprintf("objects[%s].positions", w.ID), w.Positions)
		if err != nil {
			return geometry.Renderable{}, err
		}
		m := geometry.Mesh{Positions: pos, Indices: w.Indices, Scalars: w.Scalars, MaterialRef: w.MaterialID, HasMaterial: w.MaterialID != ""}
		if w.Normals != nil {
			normals, err := unflatten(fmt.Sprintf("objects[%s].normals", w.ID), w.Normals)
			if err != nil {
				return geometry.Renderable{}, err
			}
			m.Normals = normals
		}
		r.Mesh = m
	case "axes":
		r.Kind = geometry.KindAxisBundle
		if w.Bounds == nil {
			return geometry.Renderable{}, fmt.Errorf("axes %q: missing bounds", w.ID)
		}
		ab := geometry.AxisBundle{
			Id:          w.ID,
			Bounds:      vecmath.AABB{Min: toVec3(w.Bounds.Min), Max: toVec3(w.Bounds.Max)},
			MaterialRef: w.MaterialID,
		}
		for _, a := range w.Axes {
			axis, err := parseAxis(a)
			if err != nil {
				return geometry.Renderable{}, err
			}
			ab.Axes = append(ab.Axes, axis)
		}
		if w.Ticks != nil {
			ts := &geometry.TickSpec{}
			switch w.Ticks.Mode {
			case "fixed":
				ts.Mode = geometry.TicksFixed
				ts.Values = w.Ticks.Values
			case "auto":
				ts.Mode = geometry.TicksAuto
				if w.Ticks.Count != nil {
					ts.Count = *w.Ticks.Count
				}
			default:
				return geometry.Renderable{}, fmt.Errorf("axes %q: unrecognized tick mode %q", w.ID, w.Ticks.Mode)
			}
			ab.Ticks = ts
		}
		if w.Labels != nil {
			ab.Labels = &geometry.LabelSpec{
				Show:   w.Labels.Show,
				Offset: toVec3(w.Labels.Offset),
				Format: w.Labels.Format,
			}
		}
		r.AxisBundle = ab
	default:
		return geometry.Renderable{}, fmt.Errorf("object %q: unrecognized type %q", w.ID, w.Type)
	}
	return r, nil
}

func parseCurveType(s string) (geometry.CurveType, error) {
	switch s {
	case "cubic_bezier":
		return geometry.CubicBezier, nil
	case "catmull_rom":
		return geometry.CatmullRom, nil
	case "b_spline":
		return geometry.BSpline, nil
	default:
		return 0, fmt.Errorf("unrecognized curve_type %q", s)
	}
}

func parseAxis(s string) (geometry.Axis, error) {
	switch s {
	case "x":
		return geometry.AxisX, nil
	case "y":
		return geometry.AxisY, nil
	case "z":
		return geometry.AxisZ, nil
	default:
		return 0, fmt.Errorf("unrecognized axis %q", s)
	}
}

func sceneFromWire(w wireScene) (Scene, error) {
	cam, err := cameraFromWire(w.Camera)
	if err != nil {
		return Scene{}, err
	}
	s := Scene{
		Version:     w.Version,
		Camera:      cam,
		WorldBounds: vecmath.AABB{Min: toVec3(w.WorldBounds.Min), Max: toVec3(w.WorldBounds.Max)},
	}
	for _, wo := range w.Objects {
		o, err := renderableFromWire(wo)
		if err != nil {
			return Scene{}, err
		}
		s.Objects = append(s.Objects, o)
	}
	for _, wm := range w.Materials {
		m, err := materialFromWire(wm)
		if err != nil {
			return Scene{}, err
		}
		s.Materials = append(s.Materials, m)
	}
	if w.Light != nil {
		l := light.Light{
			Direction: toVec3(w.Light.Direction),
			Intensity: w.Light.Intensity,
			Enabled:   true,
		}
		if w.Light.Enabled != nil {
			l.Enabled = *w.Light.Enabled
		}
		s.Light = &l
	}
	return s, nil
}
