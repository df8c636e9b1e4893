// Package axis implements Frustum's axis expander: each
// enabled axis of an AxisBundle becomes a main Line, a short perpendicular
// tick Line per tick value, and (when LabelSpec.Show) one ExpandedLabel per
// tick. All generated geometry inherits the bundle's material reference.
package axis

import "github.com/frustum-vis/frustum/geometry"
import "github.com/frustum-vis/frustum/vecmath"

// tickFraction is the tick mark's length as a fraction of the bundle's
// smallest bounds extent, matching the visual proportions used in the
// original figure-generation lighting/axis presets this component is
// grounded on.
const tickFraction = 0.02

// defaultLabelHeightPx is used when the caller does not specify a label
// height elsewhere in the pipeline; label height itself is a rendering
// concern, so this is only the value axis expansion stamps
// onto each ExpandedLabel it produces.
const defaultLabelHeightPx = 12

// Expand produces the Lines primitives (main axis + ticks) and
// ExpandedLabels for a single AxisBundle. The caller is expected to have
// already validated the bundle (bounds contained in world_bounds,
// material reference resolved to a SolidMaterial).
func Expand(ab geometry.AxisBundle) ([]geometry.Lines, []geometry.ExpandedLabel) {
	var lines []geometry.Lines
	var labels []geometry.ExpandedLabel

	tickSize := smallestExtent(ab.Bounds) * tickFraction

	for _, a := range ab.Axes {
		mainLine, tickLines, axisLabels := expandAxis(ab, a, tickSize)
		lines = append(lines, mainLine)
		lines = append(lines, tickLines...)
		labels = append(labels, axisLabels...)
	}
	return lines, labels
}

func smallestExtent(bounds vecmath.AABB) float32 {
	ext := vecmath.Sub(bounds.Max, bounds.Min)
	m := ext.X
	if ext.Y < m {
		m = ext.Y
	}
	if ext.Z < m {
		m = ext.Z
	}
	return m
}

func expandAxis(ab geometry.AxisBundle, a geometry.Axis, tickSize float32) (geometry.Lines, []geometry.Lines, []geometry.ExpandedLabel) {
	lo, hi, start, tickDir := axisFrame(ab.Bounds, a)

	main := geometry.Lines{
		Positions:   []vecmath.Vec3{start, axisPoint(start, a, hi)},
		HasMaterial: true,
		MaterialRef: ab.MaterialRef,
	}

	var ticks []geometry.Lines
	var labels []geometry.ExpandedLabel

	for _, v := range tickValues(ab.Ticks, lo, hi) {
		tickBase := axisPoint(start, a, v)
		tickEnd := vecmath.Add(tickBase, vecmath.Scale(tickDir, tickSize))
		ticks = append(ticks, geometry.Lines{
			Positions:   []vecmath.Vec3{tickBase, tickEnd},
			HasMaterial: true,
			MaterialRef: ab.MaterialRef,
		})

		if ab.Labels != nil && ab.Labels.Show {
			labels = append(labels, geometry.ExpandedLabel{
				Text:        FormatTick(v, ab.Labels.Format),
				Anchor:      vecmath.Add(tickBase, ab.Labels.Offset),
				HeightPx:    defaultLabelHeightPx,
				MaterialRef: ab.MaterialRef,
			})
		}
	}

	return main, ticks, labels
}

// axisFrame returns (lo, hi) along axis a, the axis's origin point (the
// bounds.min corner all three axes emanate from), and a unit direction
// perpendicular to a used to draw tick marks.
func axisFrame(bounds vecmath.AABB, a geometry.Axis) (lo, hi float32, start, tickDir vecmath.Vec3) {
	start = bounds.Min
	switch a {
	case geometry.AxisX:
		return bounds.Min.X, bounds.Max.X, start, vecmath.Vec3{X: 0, Y: -1, Z: 0}
	case geometry.AxisY:
		return bounds.Min.Y, bounds.Max.Y, start, vecmath.Vec3{X: -1, Y: 0, Z: 0}
	default:
		return bounds.Min.Z, bounds.Max.Z, start, vecmath.Vec3{X: -1, Y: 0, Z: 0}
	}
}

// axisPoint returns start with its axis-a component replaced by v.
func axisPoint(start vecmath.Vec3, a geometry.Axis, v float32) vecmath.Vec3 {
	p := start
	switch a {
	case geometry.AxisX:
		p.X = v
	case geometry.AxisY:
		p.Y = v
	case geometry.AxisZ:
		p.Z = v
	}
	return p
}

// tickValues generates the tick positions for a TickSpec over [lo, hi]. A
// nil spec produces no ticks. Auto mode uses the exact formula
// lo + k*(hi-lo)/(n-1) for k in [0, n-1] — deliberately not the "nice
// number" stepping some figure-generation tools use, which is sensitive to
// floating-point rounding quirks and would make tick positions
// non-reproducible across platforms.
func tickValues(ts *geometry.TickSpec, lo, hi float32) []float32 {
	if ts == nil {
		return nil
	}
	switch ts.Mode {
	case geometry.TicksFixed:
		return ts.Values
	case geometry.TicksAuto:
		n := ts.Count
		if n < 1 {
			return nil
		}
		if n == 1 {
			return []float32{lo}
		}
		out := make([]float32, n)
		for k := 0; k < n; k++ {
			out[k] = lo + float32(k)*(hi-lo)/float32(n-1)
		}
		return out
	default:
		return nil
	}
}
