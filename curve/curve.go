// Package curve implements Frustum's deterministic curve evaluator: given
// a Curves primitive, produce s+1 evaluated points using the canonical
// basis for the curve's type, then package the result as a Lines
// primitive inheriting the curve's material reference, scalars and width.
// Evaluation depends on nothing but the curve's own control points and
// segment count — no surrounding scene state.
package curve

import (
	"fmt"

	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/vecmath"
)

// Evaluate expands c into a Lines primitive of len(evaluated) == c.Segments+1
// points, sampled uniformly in the curve's native parameterization.
func Evaluate(c geometry.Curves) (geometry.Lines, error) {
	var points []vecmath.Vec3
	switch c.CurveType {
	case geometry.CubicBezier:
		if len(c.ControlPoints) != 4 {
			return geometry.Lines{}, fmt.Errorf("cubic_bezier requires exactly 4 control points, got %d", len(c.ControlPoints))
		}
		points = evalBezier(c.ControlPoints, c.Segments)
	case geometry.CatmullRom:
		if len(c.ControlPoints) < 4 {
			return geometry.Lines{}, fmt.Errorf("catmull_rom requires at least 4 control points, got %d", len(c.ControlPoints))
		}
		points = evalCatmullRom(c.ControlPoints, c.Segments)
	case geometry.BSpline:
		if len(c.ControlPoints) < 4 {
			return geometry.Lines{}, fmt.Errorf("b_spline requires at least 4 control points, got %d", len(c.ControlPoints))
		}
		points = evalBSpline(c.ControlPoints, c.Segments)
	default:
		return geometry.Lines{}, fmt.Errorf("unrecognized curve type %v", c.CurveType)
	}

	scalars := resampleScalars(c.Scalars, len(points))

	return geometry.Lines{
		Positions:   points,
		Scalars:     scalars,
		Width:       c.Width,
		HasWidth:    c.HasWidth,
		MaterialRef: c.MaterialRef,
		HasMaterial: c.HasMaterial,
	}, nil
}

// evalBezier evaluates a cubic Bezier curve using the Bernstein basis:
//
//	B(t) = (1-t)^3 P0 + 3(1-t)^2 t P1 + 3(1-t) t^2 P2 + t^3 P3
func evalBezier(p []vecmath.Vec3, segments int) []vecmath.Vec3 {
	out := make([]vecmath.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float32(i) / float32(segments)
		u := 1 - t
		b0 := u * u * u
		b1 := 3 * u * u * t
		b2 := 3 * u * t * t
		b3 := t * t * t
		out = append(out, vecmath.Add(
			vecmath.Add(vecmath.Scale(p[0], b0), vecmath.Scale(p[1], b1)),
			vecmath.Add(vecmath.Scale(p[2], b2), vecmath.Scale(p[3], b3)),
		))
	}
	return out
}

// evalCatmullRom evaluates a uniform Catmull-Rom spline through control
// points p[1..n-2] (p[0] and p[n-1] act only as tangent anchors for the
// first and last interior segment), sampling `segments` uniform steps
// across the whole parameter domain per segment count of interior spans.
func evalCatmullRom(p []vecmath.Vec3, segments int) []vecmath.Vec3 {
	n := len(p)
	spans := n - 3 // interior segments between p[1..n-2]
	if spans < 1 {
		spans = 1
	}
	out := make([]vecmath.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments) * float32(spans)
		seg := int(u)
		if seg >= spans {
			seg = spans - 1
		}
		localT := u - float32(seg)
		p0 := p[seg]
		p1 := p[seg+1]
		p2 := p[seg+2]
		p3 := p[seg+3]
		out = append(out, catmullRomPoint(p0, p1, p2, p3, localT))
	}
	return out
}

func catmullRomPoint(p0, p1, p2, p3 vecmath.Vec3, t float32) vecmath.Vec3 {
	t2 := t * t
	t3 := t2 * t

	c0 := -0.5*t3 + t2 - 0.5*t
	c1 := 1.5*t3 - 2.5*t2 + 1.0
	c2 := -1.5*t3 + 2.0*t2 + 0.5*t
	c3 := 0.5*t3 - 0.5*t2

	return vecmath.Add(
		vecmath.Add(vecmath.Scale(p0, c0), vecmath.Scale(p1, c1)),
		vecmath.Add(vecmath.Scale(p2, c2), vecmath.Scale(p3, c3)),
	)
}

// evalBSpline evaluates a clamped cubic uniform B-spline through control
// points p[0..n-1], clamped so the curve begins at p[0] and ends at
// p[n-1] by repeating the first and last control point.
func evalBSpline(p []vecmath.Vec3, segments int) []vecmath.Vec3 {
	clamped := make([]vecmath.Vec3, 0, len(p)+4)
	clamped = append(clamped, p[0], p[0])
	clamped = append(clamped, p...)
	clamped = append(clamped, p[len(p)-1], p[len(p)-1])

	spans := len(clamped) - 3
	out := make([]vecmath.Vec3, 0, segments+1)
	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments) * float32(spans)
		seg := int(u)
		if seg >= spans {
			seg = spans - 1
		}
		localT := u - float32(seg)
		out = append(out, bSplinePoint(clamped[seg], clamped[seg+1], clamped[seg+2], clamped[seg+3], localT))
	}
	// Clamp endpoints exactly to the original first/last control points to
	// counter accumulated floating-point drift from the repeated-knot trick.
	if len(out) > 0 {
		out[0] = p[0]
		out[len(out)-1] = p[len(p)-1]
	}
	return out
}

func bSplinePoint(p0, p1, p2, p3 vecmath.Vec3, t float32) vecmath.Vec3 {
	t2 := t * t
	t3 := t2 * t
	const inv6 = 1.0 / 6.0

	c0 := inv6 * (-t3 + 3*t2 - 3*t + 1)
	c1 := inv6 * (3*t3 - 6*t2 + 4)
	c2 := inv6 * (-3*t3 + 3*t2 + 3*t + 1)
	c3 := inv6 * t3

	return vecmath.Add(
		vecmath.Add(vecmath.Scale(p0, c0), vecmath.Scale(p1, c1)),
		vecmath.Add(vecmath.Scale(p2, c2), vecmath.Scale(p3, c3)),
	)
}

// resampleScalars linearly resamples a per-control-point scalar array to
// the given evaluated vertex count, so a scalar-mapped color varies
// smoothly along the curve even though it evaluates far more vertices
// than control points. A nil input returns nil.
func resampleScalars(scalars []float32, outCount int) []float32 {
	if scalars == nil {
		return nil
	}
	if len(scalars) == outCount {
		return scalars
	}
	if len(scalars) == 1 {
		out := make([]float32, outCount)
		for i := range out {
			out[i] = scalars[0]
		}
		return out
	}
	out := make([]float32, outCount)
	last := len(scalars) - 1
	for i := 0; i < outCount; i++ {
		u := float32(i) / float32(outCount-1) * float32(last)
		i0 := int(u)
		if i0 >= last {
			out[i] = scalars[last]
			continue
		}
		frac := u - float32(i0)
		out[i] = scalars[i0] + frac*(scalars[i0+1]-scalars[i0])
	}
	return out
}
