package render

import (
	"github.com/frustum-vis/frustum/ferr"
	"github.com/frustum-vis/frustum/material"
)

// Config is the only externally supplied configuration for a render call.
// It never affects scene semantics — only how the already-validated scene
// is realized into pixels.
type Config struct {
	Width, Height int
	// Background is composited under every fragment during the resolve
	// pass; its alpha is preserved in the output image. Defaults to
	// opaque white.
	Background material.RGBA
	// PixelRatio scales Width/Height into physical pixel dimensions and
	// scales every logical-pixel size attribute (point size, line width,
	// label height). Defaults to 1.0.
	PixelRatio float32
}

// DefaultConfig returns a Config with the documented defaults applied for
// every field except Width and Height, which the caller must always supply.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:      width,
		Height:     height,
		Background: material.RGBA{R: 1, G: 1, B: 1, A: 1},
		PixelRatio: 1,
	}
}

// Validate checks cfg against its documented constraints, returning
// ferr.RenderConfigInvalid for the first violation found.
func Validate(cfg Config) error {
	if cfg.Width <= 0 {
		return &ferr.RenderConfigInvalid{Field: "width"}
	}
	if cfg.Height <= 0 {
		return &ferr.RenderConfigInvalid{Field: "height"}
	}
	if cfg.PixelRatio <= 0 {
		return &ferr.RenderConfigInvalid{Field: "pixel_ratio"}
	}
	for name, v := range map[string]float32{"r": cfg.Background.R, "g": cfg.Background.G, "b": cfg.Background.B, "a": cfg.Background.A} {
		if v < 0 || v > 1 {
			return &ferr.RenderConfigInvalid{Field: "background_color." + name}
		}
	}
	return nil
}

// PhysicalWidth and PhysicalHeight return the output image dimensions in
// physical pixels: the logical dimensions scaled by PixelRatio and rounded
// to the nearest integer.
func (c Config) PhysicalWidth() int  { return int(float32(c.Width)*c.PixelRatio + 0.5) }
func (c Config) PhysicalHeight() int { return int(float32(c.Height)*c.PixelRatio + 0.5) }
