package render

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/ferr"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/text"
	"github.com/frustum-vis/frustum/vecmath"
)

// WgpuBackend rasterizes a Frame on a real GPU via headless offscreen
// render-to-texture, submitting once per Rasterize call and blocking on a
// synchronous buffer readback rather than presenting to a swapchain — this
// package never opens a window or a live surface. It backs frustum-render's
// -gpu flag (frustum-view renders through SoftBackend); the deterministic
// test suite runs against SoftBackend instead, since two independent GPU vendors are not
// guaranteed to rasterize the same triangle identically at the pixel
// level.
type WgpuBackend struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	solidPipeline *wgpu.RenderPipeline
	glyphPipeline *wgpu.RenderPipeline
	glyphBindLayout *wgpu.BindGroupLayout
	glyphTexture    *wgpu.Texture
	glyphView       *wgpu.TextureView
	glyphSampler    *wgpu.Sampler
	glyphBindGroup  *wgpu.BindGroup

	initOnce sync.Once
	initErr  error
}

// gpuVertex is the packed layout uploaded for both the solid and glyph
// pipelines; glyph draws additionally read UV, solid draws leave it zero.
type gpuVertex struct {
	x, y, z    float32
	r, g, b, a float32
	u, v       float32
}

const gpuVertexStride = 9 * 4

// NewWgpuBackend returns a WgpuBackend. Device initialization is deferred
// to the first Rasterize call so constructing one never touches the GPU.
func NewWgpuBackend() *WgpuBackend {
	return &WgpuBackend{}
}

func (b *WgpuBackend) ensureInit() error {
	b.initOnce.Do(func() {
		b.initErr = b.init()
	})
	return b.initErr
}

func (b *WgpuBackend) init() error {
	b.instance = wgpu.CreateInstance(nil)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("render: requesting wgpu adapter: %w", err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "frustum-offscreen-device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		return fmt.Errorf("render: requesting wgpu device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()

	if err := b.buildSolidPipeline(); err != nil {
		return err
	}
	return b.buildGlyphPipeline()
}

func (b *WgpuBackend) vertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: gpuVertexStride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 3 * 4, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 7 * 4, ShaderLocation: 2},
		},
	}
}

const solidShaderWGSL = `
struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) color: vec4<f32>,
};

@vertex
fn vs_main(@location(0) pos: vec3<f32>, @location(1) color: vec4<f32>, @location(2) uv: vec2<f32>) -> VertexOut {
	var out: VertexOut;
	out.position = vec4<f32>(pos, 1.0);
	out.color = color;
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	return in.color;
}
`

const glyphShaderWGSL = `
@group(0) @binding(0) var atlasTexture: texture_2d<f32>;
@group(0) @binding(1) var atlasSampler: sampler;

struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) color: vec4<f32>,
	@location(1) uv: vec2<f32>,
};

@vertex
fn vs_main(@location(0) pos: vec3<f32>, @location(1) color: vec4<f32>, @location(2) uv: vec2<f32>) -> VertexOut {
	var out: VertexOut;
	out.position = vec4<f32>(pos, 1.0);
	out.color = color;
	out.uv = uv;
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	let coverage = textureSample(atlasTexture, atlasSampler, in.uv).a;
	return vec4<f32>(in.color.rgb, in.color.a * coverage);
}
`

func (b *WgpuBackend) buildSolidPipeline() error {
	pipeline, err := b.buildPipeline("frustum-solid-pipeline", solidShaderWGSL, nil)
	if err != nil {
		return err
	}
	b.solidPipeline = pipeline
	return nil
}

func (b *WgpuBackend) buildGlyphPipeline() error {
	atlas := text.Builtin
	bounds := atlas.Image.Bounds()

	texture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "frustum-glyph-atlas",
		Size:          wgpu.Extent3D{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy()), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("render: creating glyph atlas texture: %w", err)
	}
	b.glyphTexture = texture

	rgba := alphaToRGBA(atlas.Image)
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspectAll},
		rgba,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(bounds.Dx() * 4), RowsPerImage: uint32(bounds.Dy())},
		&wgpu.Extent3D{Width: uint32(bounds.Dx()), Height: uint32(bounds.Dy()), DepthOrArrayLayers: 1},
	)

	view, err := texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("render: creating glyph atlas view: %w", err)
	}
	b.glyphView = view

	sampler, err := b.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("render: creating glyph atlas sampler: %w", err)
	}
	b.glyphSampler = sampler

	bindLayout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat, ViewDimension: wgpu.TextureViewDimension2D}},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
		},
	})
	if err != nil {
		return fmt.Errorf("render: creating glyph bind group layout: %w", err)
	}
	b.glyphBindLayout = bindLayout

	bindGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: view},
			{Binding: 1, Sampler: sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("render: creating glyph bind group: %w", err)
	}
	b.glyphBindGroup = bindGroup

	pipeline, err := b.buildPipeline("frustum-glyph-pipeline", glyphShaderWGSL, bindLayout)
	if err != nil {
		return err
	}
	b.glyphPipeline = pipeline
	return nil
}

func (b *WgpuBackend) buildPipeline(label, wgsl string, bindLayout *wgpu.BindGroupLayout) (*wgpu.RenderPipeline, error) {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          label + "-shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: wgsl},
	})
	if err != nil {
		return nil, fmt.Errorf("render: compiling %s: %w", label, err)
	}

	var layouts []*wgpu.BindGroupLayout
	if bindLayout != nil {
		layouts = append(layouts, bindLayout)
	}
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{BindGroupLayouts: layouts})
	if err != nil {
		return nil, fmt.Errorf("render: building %s layout: %w", label, err)
	}

	return b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  label,
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
			Buffers:    []wgpu.VertexBufferLayout{b.vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{{
				Format: wgpu.TextureFormatRGBA8UnormSrgb,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorSrcAlpha, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
					Alpha: wgpu.BlendComponent{SrcFactor: wgpu.BlendFactorOne, DstFactor: wgpu.BlendFactorOneMinusSrcAlpha, Operation: wgpu.BlendOperationAdd},
				},
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{Topology: wgpu.PrimitiveTopologyTriangleList, FrontFace: wgpu.FrontFaceCCW, CullMode: wgpu.CullModeNone},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLessEqual,
		},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
}

func alphaToRGBA(a *image.Alpha) []byte {
	bounds := a.Bounds()
	out := make([]byte, bounds.Dx()*bounds.Dy()*4)
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			v := a.AlphaAt(x, y).A
			out[i], out[i+1], out[i+2], out[i+3] = 255, 255, 255, v
			i += 4
		}
	}
	return out
}

// Rasterize implements Backend for WgpuBackend. Every submission is
// synchronous: the call does not return until the GPU has finished
// executing and the framebuffer has been read back to host memory.
func (b *WgpuBackend) Rasterize(frame Frame, cam camera.Camera, cfg Config) (*Image, error) {
	if err := b.ensureInit(); err != nil {
		return nil, err
	}

	physW, physH := cfg.PhysicalWidth(), cfg.PhysicalHeight()
	proj := newProjector(cam, cfg)

	solidVerts := gpuTriangleData(frame, proj)
	glyphVerts := gpuGlyphData(frame, proj)

	colorTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "frustum-color-target",
		Size:          wgpu.Extent3D{Width: uint32(physW), Height: uint32(physH), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc,
	})
	if err != nil {
		return nil, fmt.Errorf("render: creating color target: %w", err)
	}
	defer colorTexture.Release()
	colorView, err := colorTexture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("render: creating color target view: %w", err)
	}

	depthTexture, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "frustum-depth-target",
		Size:          wgpu.Extent3D{Width: uint32(physW), Height: uint32(physH), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, fmt.Errorf("render: creating depth target: %w", err)
	}
	defer depthTexture.Release()
	depthView, err := depthTexture.CreateView(nil)
	if err != nil {
		return nil, fmt.Errorf("render: creating depth target view: %w", err)
	}

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return nil, fmt.Errorf("render: creating command encoder: %w", err)
	}

	bg := cfg.Background
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       colorView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: float64(bg.R), G: float64(bg.G), B: float64(bg.B), A: float64(bg.A)},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthClearValue: 1,
			DepthStoreOp:    wgpu.StoreOpDiscard,
		},
	})

	if len(solidVerts) > 0 {
		if err := b.drawVertices(pass, b.solidPipeline, nil, solidVerts); err != nil {
			pass.End()
			return nil, err
		}
	}
	if len(glyphVerts) > 0 {
		if err := b.drawVertices(pass, b.glyphPipeline, b.glyphBindGroup, glyphVerts); err != nil {
			pass.End()
			return nil, err
		}
	}
	pass.End()

	readbackBuf, bytesPerRow, err := b.copyToReadbackBuffer(encoder, colorTexture, physW, physH)
	if err != nil {
		return nil, err
	}

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return nil, &ferr.GpuReadbackFailed{Reason: err.Error()}
	}
	b.queue.Submit(commandBuffer)

	return b.readback(readbackBuf, physW, physH, bytesPerRow)
}

func (b *WgpuBackend) drawVertices(pass *wgpu.RenderPassEncoder, pipeline *wgpu.RenderPipeline, bindGroup *wgpu.BindGroup, verts []gpuVertex) error {
	data := packVertices(verts)
	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            "frustum-vertex-buffer",
		Size:             uint64(len(data)),
		Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
	if err != nil {
		return fmt.Errorf("render: creating vertex buffer: %w", err)
	}
	defer buf.Release()
	b.queue.WriteBuffer(buf, 0, data)

	pass.SetPipeline(pipeline)
	if bindGroup != nil {
		pass.SetBindGroup(0, bindGroup, nil)
	}
	pass.SetVertexBuffer(0, buf, 0, uint64(len(data)))
	pass.Draw(uint32(len(verts)), 1, 0, 0)
	return nil
}

// copyToReadbackBuffer schedules a texture-to-buffer copy on encoder,
// rounding bytesPerRow up to wgpu's 256-byte alignment requirement, and
// returns the buffer submission will populate.
func (b *WgpuBackend) copyToReadbackBuffer(encoder *wgpu.CommandEncoder, src *wgpu.Texture, width, height int) (*wgpu.Buffer, int, error) {
	const align = 256
	unaligned := width * 4
	bytesPerRow := ((unaligned + align - 1) / align) * align

	buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "frustum-readback-buffer",
		Size:  uint64(bytesPerRow * height),
		Usage: wgpu.BufferUsageCopyDst | wgpu.BufferUsageMapRead,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("render: creating readback buffer: %w", err)
	}

	encoder.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{Texture: src, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspectAll},
		&wgpu.ImageCopyBuffer{
			Buffer: buf,
			Layout: wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(bytesPerRow), RowsPerImage: uint32(height)},
		},
		&wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
	)
	return buf, bytesPerRow, nil
}

// readback blocks until the GPU submission above completes and the
// readback buffer is mapped, then copies it into an *Image row by row to
// strip wgpu's row-alignment padding.
func (b *WgpuBackend) readback(buf *wgpu.Buffer, width, height, bytesPerRow int) (*Image, error) {
	defer buf.Release()

	done := make(chan error, 1)
	buf.MapAsync(wgpu.MapModeRead, 0, uint64(bytesPerRow*height), func(status wgpu.BufferMapAsyncStatus) {
		if status != wgpu.BufferMapAsyncStatusSuccess {
			done <- fmt.Errorf("map status %v", status)
			return
		}
		done <- nil
	})

	var mapErr error
	for waiting := true; waiting; {
		b.device.Poll(true, nil)
		select {
		case mapErr = <-done:
			waiting = false
		default:
		}
	}
	if mapErr != nil {
		return nil, &ferr.GpuReadbackFailed{Reason: mapErr.Error()}
	}

	mapped := buf.GetMappedRange(0, uint(bytesPerRow*height))
	if mapped == nil {
		return nil, &ferr.GpuReadbackFailed{Reason: "GetMappedRange returned nil"}
	}
	img := newImage(width, height)
	for y := 0; y < height; y++ {
		srcRow := mapped[y*bytesPerRow : y*bytesPerRow+width*4]
		copy(img.Pixels[y*width*4:(y+1)*width*4], srcRow)
	}
	buf.Unmap()
	return img, nil
}

// gpuTriangleData flattens mesh triangles and line/point billboard quads
// into clip-space vertices for the solid pipeline. Colors are already
// resolved by the lighting and color-mapping passes; the GPU only
// rasterizes, depth-tests and blends.
func gpuTriangleData(frame Frame, proj projector) []gpuVertex {
	var out []gpuVertex
	emit := func(pos [3]float32, c [4]float32) {
		out = append(out, gpuVertex{x: pos[0], y: pos[1], z: pos[2], r: c[0], g: c[1], b: c[2], a: c[3]})
	}
	tri := func(p0, p1, p2 [3]float32, c0, c1, c2 [4]float32) {
		emit(p0, c0)
		emit(p1, c1)
		emit(p2, c2)
	}

	for _, t := range frame.Triangles {
		x0, y0, z0, ok0 := proj.projectNDC(t.V0.Position)
		x1, y1, z1, ok1 := proj.projectNDC(t.V1.Position)
		x2, y2, z2, ok2 := proj.projectNDC(t.V2.Position)
		if !ok0 || !ok1 || !ok2 {
			continue
		}
		tri([3]float32{x0, y0, z0}, [3]float32{x1, y1, z1}, [3]float32{x2, y2, z2},
			rgbaOf(t.V0.Color), rgbaOf(t.V1.Color), rgbaOf(t.V2.Color))
	}

	for _, l := range frame.Lines {
		corners, ok := lineQuadNDC(proj, l)
		if !ok {
			continue
		}
		ca, cb := rgbaOf(l.A.Color), rgbaOf(l.B.Color)
		tri(corners[0], corners[1], corners[2], ca, ca, cb)
		tri(corners[0], corners[2], corners[3], ca, cb, cb)
	}

	for _, p := range frame.Points {
		worldHalf := proj.worldPerPixel(p.V.Position) * p.Size / 2
		corners := billboardCorners(proj, p.V.Position, worldHalf, worldHalf)
		ndc, ok := projectQuadNDC(proj, corners)
		if !ok {
			continue
		}
		c := rgbaOf(p.V.Color)
		tri(ndc[0], ndc[1], ndc[2], c, c, c)
		tri(ndc[0], ndc[2], ndc[3], c, c, c)
	}

	return out
}

// gpuGlyphData flattens label quads into clip-space, UV-tagged vertices
// for the textured glyph pipeline.
func gpuGlyphData(frame Frame, proj projector) []gpuVertex {
	var out []gpuVertex
	for _, lbl := range frame.Labels {
		worldPerPx := proj.worldPerPixel(lbl.Anchor) * lbl.HeightPx
		c := rgbaOf(lbl.Color)
		for _, q := range lbl.Quads {
			corners := [4]vecmath.Vec3{
				billboardOffset(proj, lbl.Anchor, q.X0*worldPerPx, q.Y0*worldPerPx),
				billboardOffset(proj, lbl.Anchor, q.X1*worldPerPx, q.Y0*worldPerPx),
				billboardOffset(proj, lbl.Anchor, q.X1*worldPerPx, q.Y1*worldPerPx),
				billboardOffset(proj, lbl.Anchor, q.X0*worldPerPx, q.Y1*worldPerPx),
			}
			ndc, ok := projectQuadNDC(proj, corners)
			if !ok {
				continue
			}
			uv := [4][2]float32{{q.U0, q.V0}, {q.U1, q.V0}, {q.U1, q.V1}, {q.U0, q.V1}}
			for _, idx := range [6]int{0, 1, 2, 0, 2, 3} {
				out = append(out, gpuVertex{
					x: ndc[idx][0], y: ndc[idx][1], z: ndc[idx][2],
					r: c[0], g: c[1], b: c[2], a: c[3],
					u: uv[idx][0], v: uv[idx][1],
				})
			}
		}
	}
	return out
}

// lineQuadNDC expands a line segment into a screen-space quad (matching
// SoftBackend's perpendicular-offset construction) and reprojects its
// corners into clip-space NDC for the GPU vertex buffer.
func lineQuadNDC(proj projector, l LineSeg) ([4][3]float32, bool) {
	ax, ay, az, okA := proj.project(l.A.Position)
	bx, by, bz, okB := proj.project(l.B.Position)
	if !okA || !okB {
		return [4][3]float32{}, false
	}
	px, py := perpendicular2D(bx-ax, by-ay)
	half := l.Width / 2
	ox, oy := px*half, py*half

	toNDC := func(sx, sy, sz float32) [3]float32 {
		ndcX := (sx/float32(proj.physW))*2 - 1
		ndcY := 1 - (sy/float32(proj.physH))*2
		return [3]float32{ndcX, ndcY, sz}
	}
	return [4][3]float32{
		toNDC(ax-ox, ay-oy, az),
		toNDC(ax+ox, ay+oy, az),
		toNDC(bx+ox, by+oy, bz),
		toNDC(bx-ox, by-oy, bz),
	}, true
}

// projectQuadNDC projects four world-space billboard corners directly to
// clip-space NDC, returning ok = false if any corner lies behind the eye.
func projectQuadNDC(proj projector, corners [4]vecmath.Vec3) ([4][3]float32, bool) {
	var out [4][3]float32
	for i, c := range corners {
		x, y, z, ok := proj.projectNDC(c)
		if !ok {
			return out, false
		}
		out[i] = [3]float32{x, y, z}
	}
	return out, true
}

func rgbaOf(c material.RGBA) [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

func f32bits(f float32) uint32 {
	return math.Float32bits(f)
}

func packVertices(verts []gpuVertex) []byte {
	out := make([]byte, 0, len(verts)*gpuVertexStride)
	put := func(f float32) {
		bits := f32bits(f)
		out = append(out, byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
	}
	for _, v := range verts {
		put(v.x)
		put(v.y)
		put(v.z)
		put(v.r)
		put(v.g)
		put(v.b)
		put(v.a)
		put(v.u)
		put(v.v)
	}
	return out
}
