package render

import "github.com/frustum-vis/frustum/camera"

// Backend performs the fourth, resolve pass: it rasterizes an already
// lit and colored Frame under the given camera, composites the result
// over cfg.Background, and returns the sRGB-encoded framebuffer. Both
// backends this module ships (soft and wgpu) are deterministic for a
// fixed Frame, camera and config; only their internal traversal order
// differs.
type Backend interface {
	Rasterize(frame Frame, cam camera.Camera, cfg Config) (*Image, error)
}

// Image is Frustum's output framebuffer: sRGB-encoded, straight (not
// premultiplied) alpha, row-major top-to-bottom.
type Image struct {
	Width, Height int
	// Pixels is Width*Height*4 bytes, RGBA8 per pixel.
	Pixels []byte
}

func newImage(width, height int) *Image {
	return &Image{Width: width, Height: height, Pixels: make([]byte, width*height*4)}
}

func (img *Image) set(x, y int, r, g, b, a byte) {
	if x < 0 || y < 0 || x >= img.Width || y >= img.Height {
		return
	}
	i := (y*img.Width + x) * 4
	img.Pixels[i+0] = r
	img.Pixels[i+1] = g
	img.Pixels[i+2] = b
	img.Pixels[i+3] = a
}

func (img *Image) at(x, y int) (r, g, b, a byte) {
	i := (y*img.Width + x) * 4
	return img.Pixels[i+0], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3]
}
