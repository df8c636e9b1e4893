package render

import (
	"math"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/text"
	"github.com/frustum-vis/frustum/vecmath"
)

// SoftBackend is a deterministic, dependency-free CPU rasterizer. It is
// the default backend: every scenario a caller can express renders
// identically on any machine, which makes it the one the test suite
// exercises directly. WgpuBackend implements the same Backend contract
// against a real GPU for interactive use.
type SoftBackend struct{}

// projector carries the per-frame camera state the resolve pass needs to
// turn world-space positions into screen-space fragments, including the
// billboard sizing basis (camera right/up and world-units-per-pixel) used
// by points and labels.
type projector struct {
	viewProj              vecmath.Mat4
	eye, right, up        vecmath.Vec3
	forward               vecmath.Vec3
	physW, physH          int
	perspective           bool
	fovYRadians, viewFovH float32
}

func newProjector(cam camera.Camera, cfg Config) projector {
	physW, physH := cfg.PhysicalWidth(), cfg.PhysicalHeight()
	aspect := float32(physW) / float32(physH)
	forward := vecmath.Normalize(vecmath.Sub(cam.Target, cam.Eye))
	right := vecmath.Normalize(vecmath.Cross(forward, cam.Up))
	up := vecmath.Cross(right, forward)
	p := projector{
		viewProj: cam.ViewProjectionMatrix(aspect),
		eye:      cam.Eye,
		right:    right,
		up:       up,
		forward:  forward,
		physW:    physW,
		physH:    physH,
	}
	if cam.Projection == camera.Perspective {
		p.perspective = true
		p.fovYRadians = cam.FovY * (math.Pi / 180)
	} else {
		p.viewFovH = cam.ViewHeight
	}
	return p
}

// project maps a world-space point to a screenVertex position, returning
// ok = false when the point lies behind the eye (w <= 0) and therefore
// cannot be rasterized.
func (p projector) project(pos vecmath.Vec3) (sx, sy, sz float32, ok bool) {
	x, y, z, w := vecmath.TransformHomogeneous(p.viewProj, pos)
	if w <= 0 {
		return 0, 0, 0, false
	}
	invW := 1 / w
	ndcX, ndcY, ndcZ := x*invW, y*invW, z*invW
	sx = (ndcX*0.5 + 0.5) * float32(p.physW)
	sy = (1 - (ndcY*0.5 + 0.5)) * float32(p.physH)
	return sx, sy, ndcZ, true
}

// projectNDC maps a world-space point directly to WebGPU clip-space NDC
// (no pixel scaling, no Y-flip), for backends that hand coordinates to a
// GPU vertex stage rather than rasterizing in pixel space themselves.
func (p projector) projectNDC(pos vecmath.Vec3) (ndcX, ndcY, ndcZ float32, ok bool) {
	x, y, z, w := vecmath.TransformHomogeneous(p.viewProj, pos)
	if w <= 0 {
		return 0, 0, 0, false
	}
	invW := 1 / w
	return x * invW, y * invW, z * invW, true
}

// worldPerPixel returns the world-space size of one physical pixel at the
// depth of pos, used to size billboarded points and labels so they read
// as a constant screen size regardless of distance.
func (p projector) worldPerPixel(pos vecmath.Vec3) float32 {
	if p.perspective {
		depth := vecmath.Dot(vecmath.Sub(pos, p.eye), p.forward)
		if depth < 0 {
			depth = -depth
		}
		return 2 * depth * float32(math.Tan(float64(p.fovYRadians)/2)) / float32(p.physH)
	}
	return p.viewFovH / float32(p.physH)
}

// Rasterize implements Backend for SoftBackend.
func (SoftBackend) Rasterize(frame Frame, cam camera.Camera, cfg Config) (*Image, error) {
	physW, physH := cfg.PhysicalWidth(), cfg.PhysicalHeight()
	img := newImage(physW, physH)
	fillBackground(img, cfg.Background)
	depth := newDepthBuffer(physW, physH)
	proj := newProjector(cam, cfg)

	for _, tri := range frame.Triangles {
		rasterMeshTriangle(img, depth, proj, tri)
	}
	for _, line := range frame.Lines {
		rasterLine(img, depth, proj, line)
	}
	for _, pt := range frame.Points {
		rasterPoint(img, depth, proj, pt)
	}
	for _, lbl := range frame.Labels {
		rasterLabel(img, depth, proj, lbl)
	}
	return img, nil
}

func fillBackground(img *Image, bg material.RGBA) {
	r, g, b, a := toByte(bg.R), toByte(bg.G), toByte(bg.B), toByte(bg.A)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			img.set(x, y, r, g, b, a)
		}
	}
}

func flatShader(c0, c1, c2 [4]float32) fragmentShader {
	return func(w0, w1, w2 float32, _ [3]screenVertex) (r, g, b, a float32, ok bool) {
		r = w0*c0[0] + w1*c1[0] + w2*c2[0]
		g = w0*c0[1] + w1*c1[1] + w2*c2[1]
		b = w0*c0[2] + w1*c1[2] + w2*c2[2]
		a = w0*c0[3] + w1*c1[3] + w2*c2[3]
		return r, g, b, a, true
	}
}

func rasterMeshTriangle(img *Image, depth *depthBuffer, proj projector, tri Triangle) {
	x0, y0, z0, ok0 := proj.project(tri.V0.Position)
	x1, y1, z1, ok1 := proj.project(tri.V1.Position)
	x2, y2, z2, ok2 := proj.project(tri.V2.Position)
	if !ok0 || !ok1 || !ok2 {
		return
	}
	sv0 := screenVertex{x: x0, y: y0, z: z0}
	sv1 := screenVertex{x: x1, y: y1, z: z1}
	sv2 := screenVertex{x: x2, y: y2, z: z2}
	c0 := [4]float32{tri.V0.Color.R, tri.V0.Color.G, tri.V0.Color.B, tri.V0.Color.A}
	c1 := [4]float32{tri.V1.Color.R, tri.V1.Color.G, tri.V1.Color.B, tri.V1.Color.A}
	c2 := [4]float32{tri.V2.Color.R, tri.V2.Color.G, tri.V2.Color.B, tri.V2.Color.A}
	rasterizeTriangle(img, depth, sv0, sv1, sv2, flatShader(c0, c1, c2))
}

func rasterLine(img *Image, depth *depthBuffer, proj projector, line LineSeg) {
	x0, y0, z0, ok0 := proj.project(line.A.Position)
	x1, y1, z1, ok1 := proj.project(line.B.Position)
	if !ok0 || !ok1 {
		return
	}
	px, py := perpendicular2D(x1-x0, y1-y0)
	half := line.Width / 2
	ox, oy := px*half, py*half

	a0 := screenVertex{x: x0 - ox, y: y0 - oy, z: z0}
	a1 := screenVertex{x: x0 + ox, y: y0 + oy, z: z0}
	b0 := screenVertex{x: x1 - ox, y: y1 - oy, z: z1}
	b1 := screenVertex{x: x1 + ox, y: y1 + oy, z: z1}

	ca := [4]float32{line.A.Color.R, line.A.Color.G, line.A.Color.B, line.A.Color.A}
	cb := [4]float32{line.B.Color.R, line.B.Color.G, line.B.Color.B, line.B.Color.A}

	rasterizeTriangle(img, depth, a0, a1, b0, flatShader(ca, ca, cb))
	rasterizeTriangle(img, depth, a1, b1, b0, flatShader(ca, cb, cb))
}

func rasterPoint(img *Image, depth *depthBuffer, proj projector, pt PointPrim) {
	worldHalf := proj.worldPerPixel(pt.V.Position) * pt.Size / 2
	corners := billboardCorners(proj, pt.V.Position, worldHalf, worldHalf)
	c := [4]float32{pt.V.Color.R, pt.V.Color.G, pt.V.Color.B, pt.V.Color.A}
	quad, ok := projectQuad(proj, corners)
	if !ok {
		return
	}
	rasterizeTriangle(img, depth, quad[0], quad[1], quad[2], flatShader(c, c, c))
	rasterizeTriangle(img, depth, quad[0], quad[2], quad[3], flatShader(c, c, c))
}

func rasterLabel(img *Image, depth *depthBuffer, proj projector, lbl LabelPrim) {
	worldPerPx := proj.worldPerPixel(lbl.Anchor) * lbl.HeightPx
	for _, q := range lbl.Quads {
		corners := [4]vecmath.Vec3{
			billboardOffset(proj, lbl.Anchor, q.X0*worldPerPx, q.Y0*worldPerPx),
			billboardOffset(proj, lbl.Anchor, q.X1*worldPerPx, q.Y0*worldPerPx),
			billboardOffset(proj, lbl.Anchor, q.X1*worldPerPx, q.Y1*worldPerPx),
			billboardOffset(proj, lbl.Anchor, q.X0*worldPerPx, q.Y1*worldPerPx),
		}
		quad, ok := projectQuad(proj, corners)
		if !ok {
			continue
		}
		quad[0].u, quad[0].v = q.U0, q.V0
		quad[1].u, quad[1].v = q.U1, q.V0
		quad[2].u, quad[2].v = q.U1, q.V1
		quad[3].u, quad[3].v = q.U0, q.V1

		shade := glyphShader(lbl.Color)
		rasterizeTriangle(img, depth, quad[0], quad[1], quad[2], shade)
		rasterizeTriangle(img, depth, quad[0], quad[2], quad[3], shade)
	}
}

func glyphShader(c material.RGBA) fragmentShader {
	return func(w0, w1, w2 float32, verts [3]screenVertex) (r, g, b, a float32, ok bool) {
		u := w0*verts[0].u + w1*verts[1].u + w2*verts[2].u
		v := w0*verts[0].v + w1*verts[1].v + w2*verts[2].v
		coverage := sampleAtlas(u, v)
		if coverage <= 0 {
			return 0, 0, 0, 0, false
		}
		return c.R, c.G, c.B, c.A * coverage, true
	}
}

func sampleAtlas(u, v float32) float32 {
	bounds := text.Builtin.Image.Bounds()
	x := int(u * float32(bounds.Dx()))
	y := int(v * float32(bounds.Dy()))
	x = clampInt(x, 0, bounds.Dx()-1)
	y = clampInt(y, 0, bounds.Dy()-1)
	return float32(text.Builtin.Image.AlphaAt(x, y).A) / 255
}

func billboardCorners(proj projector, center vecmath.Vec3, halfW, halfH float32) [4]vecmath.Vec3 {
	return [4]vecmath.Vec3{
		billboardOffset(proj, center, -halfW, -halfH),
		billboardOffset(proj, center, halfW, -halfH),
		billboardOffset(proj, center, halfW, halfH),
		billboardOffset(proj, center, -halfW, halfH),
	}
}

func billboardOffset(proj projector, center vecmath.Vec3, dx, dy float32) vecmath.Vec3 {
	offset := vecmath.Add(vecmath.Scale(proj.right, dx), vecmath.Scale(proj.up, dy))
	return vecmath.Add(center, offset)
}

func projectQuad(proj projector, corners [4]vecmath.Vec3) ([4]screenVertex, bool) {
	var out [4]screenVertex
	for i, c := range corners {
		x, y, z, ok := proj.project(c)
		if !ok {
			return out, false
		}
		out[i] = screenVertex{x: x, y: y, z: z}
	}
	return out, true
}
