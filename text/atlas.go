// Package text implements Frustum's built-in monospace label font: a
// single frozen ASCII (0x20-0x7E) glyph atlas rasterized once at package
// init, and the layout logic that turns an ExpandedLabel into per-character
// billboard quads.
package text

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = 0x20
	lastRune  = 0x7E
	numGlyphs = lastRune - firstRune + 1
)

// Atlas is a single-channel bitmap packing every printable ASCII glyph of
// the built-in monospace face into a fixed grid, plus the per-glyph
// metrics needed to place and sample it.
type Atlas struct {
	Image      *image.Alpha
	CellWidth  int
	CellHeight int
	Columns    int
	glyphRects [numGlyphs]image.Rectangle
}

// Builtin is the single frozen glyph atlas every label in this module uses.
var Builtin = buildAtlas()

func buildAtlas() *Atlas {
	face := basicfont.Face7x13
	cellW, cellH := face.Width, face.Height
	columns := 16
	rows := (numGlyphs + columns - 1) / columns

	atlas := &Atlas{
		Image:      image.NewAlpha(image.Rect(0, 0, columns*cellW, rows*cellH)),
		CellWidth:  cellW,
		CellHeight: cellH,
		Columns:    columns,
	}

	for i := 0; i < numGlyphs; i++ {
		r := rune(firstRune + i)
		col := i % columns
		row := i / columns
		cellOrigin := image.Pt(col*cellW, row*cellH)

		dot := fixed.P(0, face.Ascent)
		dr, mask, maskp, _, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}
		dst := dr.Add(cellOrigin).Sub(dr.Min)
		draw.DrawMask(atlas.Image, dst, image.NewUniform(image.Opaque), image.Point{}, mask, maskp, draw.Over)
		atlas.glyphRects[i] = image.Rect(cellOrigin.X, cellOrigin.Y, cellOrigin.X+cellW, cellOrigin.Y+cellH)
	}

	return atlas
}

// GlyphRect returns the atlas-pixel rectangle for r, and whether r is in
// the supported printable ASCII range.
func (a *Atlas) GlyphRect(r rune) (image.Rectangle, bool) {
	if r < firstRune || r > lastRune {
		return image.Rectangle{}, false
	}
	return a.glyphRects[r-firstRune], true
}

// UV returns the glyph rectangle for r normalized to [0, 1] atlas
// coordinates, and whether r is supported.
func (a *Atlas) UV(r rune) (minU, minV, maxU, maxV float32, ok bool) {
	rect, ok := a.GlyphRect(r)
	if !ok {
		return 0, 0, 0, 0, false
	}
	bounds := a.Image.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	return float32(rect.Min.X) / w, float32(rect.Min.Y) / h, float32(rect.Max.X) / w, float32(rect.Max.Y) / h, true
}
