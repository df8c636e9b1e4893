// Command frustum-render renders one scene to a PNG, non-interactively.
// With no arguments it renders a built-in demo scene (a marching-cubes
// sphere under a single directional light); given a path it loads and
// renders that JSON scene instead.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/frustum-vis/frustum/audit"
	"github.com/frustum-vis/frustum/camera"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/imageenc"
	"github.com/frustum-vis/frustum/light"
	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/render"
	"github.com/frustum-vis/frustum/scene"
	"github.com/frustum-vis/frustum/vecmath"
	"github.com/frustum-vis/frustum/volume"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene JSON file (default: built-in demo)")
	outPath := flag.String("out", "frustum-render.png", "output PNG path")
	auditPath := flag.String("audit", "", "optional path to write an audit bundle JSON alongside the render")
	width := flag.Int("width", 800, "output width in logical pixels")
	height := flag.Int("height", 600, "output height in logical pixels")
	gpu := flag.Bool("gpu", false, "rasterize with the headless GPU backend instead of the CPU backend")
	flag.Parse()

	s, err := loadScene(*scenePath)
	if err != nil {
		log.Fatalf("frustum-render: %v", err)
	}

	cfg := render.DefaultConfig(*width, *height)

	var backend render.Backend = render.SoftBackend{}
	backendName, adapterName := "cpu-soft", "cpu-soft"
	if *gpu {
		wgpuBackend := render.NewWgpuBackend()
		backend = wgpuBackend
		backendName, adapterName = "wgpu", "wgpu-headless"
	}

	img, bundle, err := audit.Run(s, cfg, backend, backendName, adapterName)
	if err != nil {
		log.Fatalf("frustum-render: render failed: %v", err)
	}

	if err := imageenc.SavePNG(*outPath, img); err != nil {
		log.Fatalf("frustum-render: writing %s: %v", *outPath, err)
	}
	fmt.Printf("wrote %s (%dx%d)\n", *outPath, img.Width, img.Height)

	if bundle.Invariants.Overall != audit.Pass {
		fmt.Printf("audit: %s (%d errors, %d warnings)\n",
			bundle.Invariants.Overall, len(bundle.Invariants.Errors), len(bundle.Invariants.Warnings))
	}

	if *auditPath != "" {
		data, err := bundle.ToJSON()
		if err != nil {
			log.Fatalf("frustum-render: encoding audit bundle: %v", err)
		}
		if err := os.WriteFile(*auditPath, data, 0o644); err != nil {
			log.Fatalf("frustum-render: writing %s: %v", *auditPath, err)
		}
		fmt.Printf("wrote %s\n", *auditPath)
	}
}

func loadScene(path string) (scene.Scene, error) {
	if path == "" {
		return demoScene(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return scene.Scene{}, fmt.Errorf("reading %s: %w", path, err)
	}
	s, err := scene.Unmarshal(data)
	if err != nil {
		return scene.Scene{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// demoScene builds a sphere of radius 0.8 via marching cubes over the field
// x²+y²+z²−0.64 (zero on the sphere), lit by a single directional light,
// framed by an axis bundle.
func demoScene() scene.Scene {
	const n = 32
	values := make([]float32, n*n*n)
	spacing := float32(2) / float32(n-1)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				x := -1 + float32(i)*spacing
				y := -1 + float32(j)*spacing
				z := -1 + float32(k)*spacing
				values[(k*n+j)*n+i] = x*x + y*y + z*z - 0.64 // sphere, radius 0.8
			}
		}
	}
	vol := volume.Volume{
		Values:     values,
		Dimensions: [3]int{n, n, n},
		Spacing:    [3]float32{spacing, spacing, spacing},
		Origin:     [3]float32{-1, -1, -1},
	}
	mesh, err := volume.MarchingCubes(vol, 0)
	if err != nil {
		log.Fatalf("frustum-render: building demo mesh: %v", err)
	}
	mesh.MaterialRef, mesh.HasMaterial = "sphere", true

	cam := camera.Camera{
		Eye:        vecmath.Vec3{X: 2.5, Y: 2, Z: 2.5},
		Target:     vecmath.Vec3{X: 0, Y: 0, Z: 0},
		Up:         vecmath.Vec3{X: 0, Y: 1, Z: 0},
		Projection: camera.Perspective,
		Near:       0.1,
		Far:        20,
		FovY:       45,
	}
	worldBounds := vecmath.AABB{Min: vecmath.Vec3{X: -1.2, Y: -1.2, Z: -1.2}, Max: vecmath.Vec3{X: 1.2, Y: 1.2, Z: 1.2}}

	labels := geometry.NewLabelSpec(true)
	axes := geometry.Renderable{
		Id:   "axes",
		Kind: geometry.KindAxisBundle,
		AxisBundle: geometry.AxisBundle{
			Id:          "axes",
			Bounds:      worldBounds,
			Axes:        []geometry.Axis{geometry.AxisX, geometry.AxisY, geometry.AxisZ},
			MaterialRef: "axis-line",
			Ticks:       &geometry.TickSpec{Mode: geometry.TicksAuto, Count: 5},
			Labels:      &labels,
		},
	}

	return scene.New(cam, worldBounds).
		WithObjects(
			geometry.Renderable{Id: "sphere", Kind: geometry.KindMesh, Mesh: mesh},
			axes,
		).
		WithMaterials(
			material.NewSolid("sphere", material.RGBA{R: 0.85, G: 0.35, B: 0.2, A: 1}),
			material.NewSolid("axis-line", material.RGBA{R: 0.2, G: 0.2, B: 0.2, A: 1}),
		).
		WithLight(light.New(vecmath.Vec3{X: 0.4, Y: 0.8, Z: 0.4}, 1))
}
