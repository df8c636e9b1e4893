package vecmath

// AABB is an axis-aligned bounding box expressed as a (Min, Max) pair.
type AABB struct {
	Min, Max Vec3
}

// Contains reports whether b lies entirely within a, inclusive of the
// boundary. Both boxes are assumed well-formed (Min <= Max componentwise).
func (a AABB) Contains(b AABB) bool {
	return b.Min.X >= a.Min.X && b.Min.Y >= a.Min.Y && b.Min.Z >= a.Min.Z &&
		b.Max.X <= a.Max.X && b.Max.Y <= a.Max.Y && b.Max.Z <= a.Max.Z
}

// Degenerate reports whether the box has zero or negative extent along any
// axis.
func (a AABB) Degenerate() bool {
	return a.Max.X <= a.Min.X || a.Max.Y <= a.Min.Y || a.Max.Z <= a.Min.Z
}

// IsFinite reports whether every component of the box is finite.
func (a AABB) IsFinite() bool {
	return IsFinite(a.Min) && IsFinite(a.Max)
}

// ContainsPoint reports whether p lies within the box, inclusive.
func (a AABB) ContainsPoint(p Vec3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}
