// Command frustum-view opens a live window and re-renders a scene every
// frame while the camera orbits it, for interactively previewing a figure
// before committing to a still PNG. The frame itself is always produced by
// the deterministic CPU backend (SoftBackend), the same one the test suite
// exercises; this command's own GPU use is limited to blitting that
// finished image onto a live swapchain, so what you see here is exactly
// what frustum-render would have written to disk.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"runtime"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/render"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	scenePath := flag.String("scene", "", "path to a scene JSON file (default: an orbiting demo scene)")
	width := flag.Int("width", 900, "window width")
	height := flag.Int("height", 700, "window height")
	orbit := flag.Float64("orbit-speed", 0.4, "camera orbit speed in radians per second")
	flag.Parse()

	s, err := loadOrDemoScene(*scenePath)
	if err != nil {
		log.Fatalf("frustum-view: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("frustum-view: initializing glfw: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(*width, *height, "frustum-view", nil, nil)
	if err != nil {
		log.Fatalf("frustum-view: creating window: %v", err)
	}
	defer win.Destroy()
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	view, err := newLiveView(win, *width, *height)
	if err != nil {
		log.Fatalf("frustum-view: setting up wgpu surface: %v", err)
	}
	defer view.release()

	baseEye := s.Camera.Eye
	radius := float32(math.Hypot(float64(baseEye.X), float64(baseEye.Z)))
	start := time.Now()

	for !win.ShouldClose() {
		glfw.PollEvents()

		elapsed := time.Since(start).Seconds()
		angle := float32(elapsed * *orbit)
		orbiting := s
		orbiting.Camera.Eye = vecmath.Vec3{
			X: radius * float32(math.Cos(float64(angle))),
			Y: baseEye.Y,
			Z: radius * float32(math.Sin(float64(angle))),
		}

		cfg := render.DefaultConfig(*width, *height)
		img, err := render.RenderSoft(orbiting, cfg)
		if err != nil {
			log.Fatalf("frustum-view: render failed: %v", err)
		}

		if err := view.present(img); err != nil {
			log.Fatalf("frustum-view: presenting frame: %v", err)
		}
	}
}

func loadOrDemoScene(path string) (scene.Scene, error) {
	if path == "" {
		return demoOrbitScene(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Scene{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return scene.Unmarshal(data)
}

func demoOrbitScene() scene.Scene {
	cam := camera.Camera{
		Eye:        vecmath.Vec3{X: 3, Y: 1.6, Z: 0},
		Target:     vecmath.Vec3{X: 0, Y: 0, Z: 0},
		Up:         vecmath.Vec3{X: 0, Y: 1, Z: 0},
		Projection: camera.Perspective,
		Near:       0.1,
		Far:        20,
		FovY:       45,
	}
	bounds := vecmath.AABB{Min: vecmath.Vec3{X: -1, Y: -1, Z: -1}, Max: vecmath.Vec3{X: 1, Y: 1, Z: 1}}
	return scene.New(cam, bounds)
}

// liveView owns the wgpu surface and the single blit pipeline used to
// display a *render.Image on the window each frame. It never rasterizes
// geometry itself; SoftBackend already produced final pixels.
type liveView struct {
	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	format   wgpu.TextureFormat

	pipeline   *wgpu.RenderPipeline
	sampler    *wgpu.Sampler
	bindLayout *wgpu.BindGroupLayout

	texWidth, texHeight int
}

const blitShaderWGSL = `
@group(0) @binding(0) var frameTexture: texture_2d<f32>;
@group(0) @binding(1) var frameSampler: sampler;

struct VertexOut {
	@builtin(position) position: vec4<f32>,
	@location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) idx: u32) -> VertexOut {
	var positions = array<vec2<f32>, 3>(
		vec2<f32>(-1.0, -1.0), vec2<f32>(3.0, -1.0), vec2<f32>(-1.0, 3.0)
	);
	var out: VertexOut;
	let p = positions[idx];
	out.position = vec4<f32>(p, 0.0, 1.0);
	out.uv = vec2<f32>((p.x + 1.0) * 0.5, 1.0 - (p.y + 1.0) * 0.5);
	return out;
}

@fragment
fn fs_main(in: VertexOut) -> @location(0) vec4<f32> {
	return textureSample(frameTexture, frameSampler, in.uv);
}
`

func newLiveView(win *glfw.Window, width, height int) (*liveView, error) {
	instance := wgpu.CreateInstance(nil)
	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(win))

	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{CompatibleSurface: surface})
	if err != nil {
		return nil, fmt.Errorf("requesting adapter: %w", err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label:          "frustum-view-device",
		RequiredLimits: &wgpu.RequiredLimits{Limits: wgpu.DefaultLimits()},
	})
	if err != nil {
		return nil, fmt.Errorf("requesting device: %w", err)
	}

	caps := surface.GetCapabilities(adapter)
	format := caps.Formats[0]
	surface.Configure(adapter, device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      format,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	})

	v := &liveView{instance: instance, surface: surface, adapter: adapter, device: device, queue: device.GetQueue(), format: format}
	if err := v.buildPipeline(); err != nil {
		return nil, err
	}
	return v, nil
}

func (v *liveView) buildPipeline() error {
	bindLayout, err := v.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Entries: []wgpu.BindGroupLayoutEntry{
			{Binding: 0, Visibility: wgpu.ShaderStageFragment, Texture: wgpu.TextureBindingLayout{SampleType: wgpu.TextureSampleTypeFloat, ViewDimension: wgpu.TextureViewDimension2D}},
			{Binding: 1, Visibility: wgpu.ShaderStageFragment, Sampler: wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeFiltering}},
		},
	})
	if err != nil {
		return fmt.Errorf("building blit bind group layout: %w", err)
	}
	v.bindLayout = bindLayout

	sampler, err := v.device.CreateSampler(&wgpu.SamplerDescriptor{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
	})
	if err != nil {
		return fmt.Errorf("building blit sampler: %w", err)
	}
	v.sampler = sampler

	module, err := v.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "frustum-view-blit-shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: blitShaderWGSL},
	})
	if err != nil {
		return fmt.Errorf("compiling blit shader: %w", err)
	}

	layout, err := v.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{BindGroupLayouts: []*wgpu.BindGroupLayout{bindLayout}})
	if err != nil {
		return fmt.Errorf("building blit pipeline layout: %w", err)
	}

	pipeline, err := v.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "frustum-view-blit-pipeline",
		Layout: layout,
		Vertex: wgpu.VertexState{Module: module, EntryPoint: "vs_main"},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{{Format: v.format, WriteMask: wgpu.ColorWriteMaskAll}},
		},
		Primitive:   wgpu.PrimitiveState{Topology: wgpu.PrimitiveTopologyTriangleList, FrontFace: wgpu.FrontFaceCCW, CullMode: wgpu.CullModeNone},
		Multisample: wgpu.MultisampleState{Count: 1, Mask: 0xFFFFFFFF},
	})
	if err != nil {
		return fmt.Errorf("building blit pipeline: %w", err)
	}
	v.pipeline = pipeline
	return nil
}

// present uploads img as a texture and draws it, full-screen, to the next
// swapchain frame.
func (v *liveView) present(img *render.Image) error {
	texture, err := v.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "frustum-view-frame",
		Size:          wgpu.Extent3D{Width: uint32(img.Width), Height: uint32(img.Height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("creating frame texture: %w", err)
	}
	defer texture.Release()

	v.queue.WriteTexture(
		&wgpu.ImageCopyTexture{Texture: texture, MipLevel: 0, Origin: wgpu.Origin3D{}, Aspect: wgpu.TextureAspectAll},
		img.Pixels,
		&wgpu.TextureDataLayout{Offset: 0, BytesPerRow: uint32(img.Width * 4), RowsPerImage: uint32(img.Height)},
		&wgpu.Extent3D{Width: uint32(img.Width), Height: uint32(img.Height), DepthOrArrayLayers: 1},
	)

	texView, err := texture.CreateView(nil)
	if err != nil {
		return fmt.Errorf("creating frame texture view: %w", err)
	}
	defer texView.Release()

	bindGroup, err := v.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Layout: v.bindLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, TextureView: texView},
			{Binding: 1, Sampler: v.sampler},
		},
	})
	if err != nil {
		return fmt.Errorf("creating frame bind group: %w", err)
	}

	surfaceTexture, err := v.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("acquiring swapchain texture: %w", err)
	}
	swapView, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("creating swapchain view: %w", err)
	}

	encoder, err := v.device.CreateCommandEncoder(nil)
	if err != nil {
		swapView.Release()
		surfaceTexture.Release()
		return fmt.Errorf("creating command encoder: %w", err)
	}

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       swapView,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0, G: 0, B: 0, A: 1},
		}},
	})
	pass.SetPipeline(v.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	pass.Draw(3, 1, 0, 0)
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		swapView.Release()
		surfaceTexture.Release()
		return fmt.Errorf("finishing command buffer: %w", err)
	}
	v.queue.Submit(commandBuffer)
	v.surface.Present()

	swapView.Release()
	surfaceTexture.Release()
	return nil
}

func (v *liveView) release() {
	if v.pipeline != nil {
		v.pipeline.Release()
	}
	if v.sampler != nil {
		v.sampler.Release()
	}
	if v.bindLayout != nil {
		v.bindLayout.Release()
	}
	if v.device != nil {
		v.device.Release()
	}
	if v.adapter != nil {
		v.adapter.Release()
	}
	if v.surface != nil {
		v.surface.Release()
	}
	if v.instance != nil {
		v.instance.Release()
	}
}
