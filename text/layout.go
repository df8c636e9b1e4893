package text

import "github.com/frustum-vis/frustum/geometry"

// Quad is one character's billboard quad, expressed in the label's local
// 2D frame (origin at the label anchor, +x to the right, +y up, units in
// fractions of HeightPx). The render backend expands each Quad into two
// camera-facing triangles when it rasterizes the label — Quad itself
// carries no world-space or camera information.
type Quad struct {
	// X0, Y0, X1, Y1 are the quad corners in local label space.
	X0, Y0, X1, Y1 float32
	// U0, V0, U1, V1 are the matching atlas UV coordinates.
	U0, V0, U1, V1 float32
}

// aspectRatio is the built-in face's glyph width/height, used to size each
// quad so text does not appear stretched regardless of HeightPx.
var aspectRatio = float32(Builtin.CellWidth) / float32(Builtin.CellHeight)

// Layout lays out label.Text as a left-to-right run of monospace quads,
// one per printable ASCII character. Characters outside the built-in
// atlas's range are skipped: they produce no quad but still take one
// advance. The first character's left edge sits at local x=0; each
// subsequent character advances by aspectRatio local units.
func Layout(label geometry.ExpandedLabel) []Quad {
	var quads []Quad
	advance := aspectRatio
	col := 0
	for _, r := range label.Text {
		u0, v0, u1, v1, ok := Builtin.UV(r)
		x0 := float32(col) * advance
		col++
		if !ok {
			continue
		}
		quads = append(quads, Quad{
			X0: x0, Y0: 0, X1: x0 + advance, Y1: 1,
			U0: u0, V0: v0, U1: u1, V1: v1,
		})
	}
	return quads
}
