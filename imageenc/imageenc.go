// Package imageenc turns a rendered *render.Image into bytes on disk or in
// memory. Encoding to a particular file format is a consumer concern,
// deliberately kept out of package render itself: Render returns pixels,
// nothing more.
package imageenc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/frustum-vis/frustum/render"
)

// toGoImage adapts a render.Image (packed straight-alpha RGBA8 bytes) to the
// standard library's non-premultiplied image.NRGBA so the stdlib codecs can
// consume it directly.
func toGoImage(img *render.Image) *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))
	copy(out.Pix, img.Pixels)
	return out
}

// EncodePNG writes img to w as a PNG, straight-alpha RGBA8, matching what
// Render produced without any further color conversion.
func EncodePNG(w io.Writer, img *render.Image) error {
	return png.Encode(w, toGoImage(img))
}

// SavePNG encodes img as a PNG and writes it to path.
func SavePNG(path string, img *render.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imageenc: creating %s: %w", path, err)
	}
	defer f.Close()
	if err := EncodePNG(f, img); err != nil {
		return fmt.Errorf("imageenc: encoding %s: %w", path, err)
	}
	return nil
}

// PNGBytes encodes img as a PNG and returns the result as an in-memory
// byte slice, for callers that hand the image to something other than a
// file (an HTTP response, a test golden-file comparison).
func PNGBytes(img *render.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := EncodePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// At returns the color of the pixel at (x, y), for callers that want to
// inspect a rendered image (golden-file comparisons, audits) without
// going through the standard library's image.Image interface.
func At(img *render.Image, x, y int) color.RGBA {
	i := (y*img.Width + x) * 4
	return color.RGBA{R: img.Pixels[i], G: img.Pixels[i+1], B: img.Pixels[i+2], A: img.Pixels[i+3]}
}
