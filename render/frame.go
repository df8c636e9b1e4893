package render

import (
	"github.com/frustum-vis/frustum/axis"
	"github.com/frustum-vis/frustum/curve"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/text"
	"github.com/frustum-vis/frustum/vecmath"
)

// defaultPointSizePx and defaultLineWidthPx are applied when a Points or
// Lines primitive leaves Size/Width unset.
const (
	defaultPointSizePx = 6
	defaultLineWidthPx = 1.5
)

// Vertex is one shaded, colored vertex, world-space, ready for rasterization.
// Normal and Scalar are carried through geometry assembly so the lighting
// and color-mapping passes can resolve Intensity and Color before any
// backend ever touches a pixel.
type Vertex struct {
	Position    vecmath.Vec3
	Normal      vecmath.Vec3
	HasNormal   bool
	Scalar      float32
	HasScalar   bool
	MaterialRef string
	HasMaterial bool
	// Intensity is the Lambertian diffuse term, resolved by the lighting
	// pass. Unlit primitives (points, lines, labels) always carry 1.
	Intensity float32
	// Color is the final resolved, lit color, filled by the color pass.
	Color material.RGBA
}

// Triangle is one lit, colored mesh face.
type Triangle struct {
	V0, V1, V2 Vertex
}

// LineSeg is one lit, colored line segment with a uniform logical-pixel
// width.
type LineSeg struct {
	A, B  Vertex
	Width float32
}

// PointPrim is one lit, colored point with a logical-pixel size.
type PointPrim struct {
	V    Vertex
	Size float32
}

// LabelPrim is one label's billboard quads plus the anchor and material
// they're placed and colored against. Labels are always unlit.
type LabelPrim struct {
	Anchor      vecmath.Vec3
	HeightPx    float32
	Quads       []text.Quad
	MaterialRef string
	HasMaterial bool
	Color       material.RGBA
}

// Frame is the fully expanded, world-space primitive set a Backend
// rasterizes. It carries no camera or config: those are supplied
// separately to Backend.Rasterize.
type Frame struct {
	Triangles []Triangle
	Lines     []LineSeg
	Points    []PointPrim
	Labels    []LabelPrim
}

// BuildFrame runs the geometry, lighting and color-mapping passes over an
// already-validated scene and returns the resulting Frame directly,
// without rasterizing it. Render never needs this itself; it exists for
// callers (audit bundles, tests) that need to inspect the shaded,
// backend-independent primitive set on its own.
func BuildFrame(s scene.Scene) (Frame, error) {
	return buildFrame(s)
}

// buildFrame runs the geometry, lighting and color-mapping passes over an
// already-validated scene, in that fixed order, producing the Frame the
// resolve pass (a Backend) rasterizes.
func buildFrame(s scene.Scene) (Frame, error) {
	frame, err := geometryPass(s)
	if err != nil {
		return Frame{}, err
	}
	lightingPass(&frame, s.Light)
	colorPass(&frame, s)
	return frame, nil
}

func geometryPass(s scene.Scene) (Frame, error) {
	var frame Frame
	for _, obj := range s.Objects {
		switch obj.Kind {
		case geometry.KindPoints:
			appendPoints(&frame, obj.Points)
		case geometry.KindLines:
			appendLines(&frame, obj.Lines)
		case geometry.KindCurves:
			lines, err := curve.Evaluate(obj.Curves)
			if err != nil {
				return Frame{}, err
			}
			appendLines(&frame, lines)
		case geometry.KindMesh:
			appendMesh(&frame, obj.Mesh)
		case geometry.KindAxisBundle:
			lineSets, labels := axis.Expand(obj.AxisBundle)
			for _, l := range lineSets {
				appendLines(&frame, l)
			}
			for _, lbl := range labels {
				frame.Labels = append(frame.Labels, LabelPrim{
					Anchor:      lbl.Anchor,
					HeightPx:    lbl.HeightPx,
					Quads:       text.Layout(lbl),
					MaterialRef: lbl.MaterialRef,
					HasMaterial: lbl.MaterialRef != "",
				})
			}
		}
	}
	return frame, nil
}

func appendPoints(frame *Frame, p geometry.Points) {
	size := p.Size
	if !p.HasSize {
		size = defaultPointSizePx
	}
	for i, pos := range p.Positions {
		v := Vertex{Position: pos, MaterialRef: p.MaterialRef, HasMaterial: p.HasMaterial, Intensity: 1}
		if p.Scalars != nil {
			v.Scalar, v.HasScalar = p.Scalars[i], true
		}
		frame.Points = append(frame.Points, PointPrim{V: v, Size: size})
	}
}

func appendLines(frame *Frame, l geometry.Lines) {
	width := l.Width
	if !l.HasWidth {
		width = defaultLineWidthPx
	}
	vertexAt := func(i int) Vertex {
		v := Vertex{Position: l.Positions[i], MaterialRef: l.MaterialRef, HasMaterial: l.HasMaterial, Intensity: 1}
		if l.Scalars != nil {
			v.Scalar, v.HasScalar = l.Scalars[i], true
		}
		return v
	}
	for i := 0; i+1 < len(l.Positions); i++ {
		frame.Lines = append(frame.Lines, LineSeg{A: vertexAt(i), B: vertexAt(i + 1), Width: width})
	}
}

func appendMesh(frame *Frame, m geometry.Mesh) {
	vertexAt := func(i uint32) Vertex {
		v := Vertex{Position: m.Positions[i], MaterialRef: m.MaterialRef, HasMaterial: m.HasMaterial, Intensity: 1}
		if m.Normals != nil {
			v.Normal, v.HasNormal = m.Normals[i], true
		}
		if m.Scalars != nil {
			v.Scalar, v.HasScalar = m.Scalars[i], true
		}
		return v
	}
	for i := 0; i+2 < len(m.Indices); i += 3 {
		frame.Triangles = append(frame.Triangles, Triangle{
			V0: vertexAt(m.Indices[i]),
			V1: vertexAt(m.Indices[i+1]),
			V2: vertexAt(m.Indices[i+2]),
		})
	}
}

// lightingPass resolves Intensity from l for every mesh vertex that carries
// a normal, leaving mesh vertices without normals, points, lines and labels
// at their geometry-pass default of 1 (always
// unlit, matching the "no implicit lights" contract: only Mesh normals
// ever participate in shading).
func lightingPass(frame *Frame, l *light.Light) {
	if l == nil || !l.Enabled {
		return
	}
	for i := range frame.Triangles {
		tri := &frame.Triangles[i]
		for _, v := range [3]*Vertex{&tri.V0, &tri.V1, &tri.V2} {
			if v.HasNormal {
				v.Intensity = l.Lambertian(v.Normal)
			}
		}
	}
}

// colorPass resolves every vertex's final Color from its material
// reference (and, for scalar-mapped materials, its Scalar), scaled by the
// Intensity the lighting pass computed.
func colorPass(frame *Frame, s scene.Scene) {
	resolve := func(v *Vertex) {
		v.Color = resolveColor(s, v.MaterialRef, v.HasMaterial, v.Scalar, v.HasScalar, v.Intensity)
	}
	for i := range frame.Triangles {
		tri := &frame.Triangles[i]
		resolve(&tri.V0)
		resolve(&tri.V1)
		resolve(&tri.V2)
	}
	for i := range frame.Lines {
		l := &frame.Lines[i]
		resolve(&l.A)
		resolve(&l.B)
	}
	for i := range frame.Points {
		resolve(&frame.Points[i].V)
	}
	for i := range frame.Labels {
		lbl := &frame.Labels[i]
		lbl.Color = resolveColor(s, lbl.MaterialRef, lbl.HasMaterial, 0, false, 1)
	}
}

func resolveColor(s scene.Scene, ref string, hasMaterial bool, scalar float32, hasScalar bool, intensity float32) material.RGBA {
	base := material.RGBA{R: 1, G: 1, B: 1, A: 1}
	if hasMaterial {
		if m, ok := s.MaterialByID(ref); ok {
			switch m.Kind {
			case material.KindSolid:
				base = m.Solid.Color
			case material.KindScalarMapped:
				base = sampleScalarMapped(m.ScalarMapped, scalar, hasScalar)
			}
		}
	}
	return material.RGBA{R: base.R * intensity, G: base.G * intensity, B: base.B * intensity, A: base.A}
}

func sampleScalarMapped(sm material.ScalarMappedMaterial, scalar float32, hasScalar bool) material.RGBA {
	if !hasScalar || scalar != scalar { // NaN check without importing math
		if !sm.Clamp {
			return sm.MissingColor
		}
		scalar = sm.RangeMin
	}
	t := (scalar - sm.RangeMin) / (sm.RangeMax - sm.RangeMin)
	if t < 0 || t > 1 {
		if !sm.Clamp {
			return sm.MissingColor
		}
		if t < 0 {
			t = 0
		} else {
			t = 1
		}
	}
	c, err := material.SampleColormap(sm.Colormap, t)
	if err != nil {
		return sm.MissingColor
	}
	return c
}
