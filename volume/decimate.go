package volume

import (
	"sort"

	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/vecmath"
)

// decimate reduces mesh to approximately keepFraction of its original
// triangle count using deterministic edge collapse: edges are sorted by
// length (shortest first, ties broken by vertex index so the ordering is
// stable across runs) and collapsed one at a time onto their midpoint
// until the triangle budget is reached or no collapsible edge remains.
func decimate(mesh geometry.Mesh, keepFraction float32) geometry.Mesh {
	targetTris := int(float32(len(mesh.Indices)/3) * keepFraction)
	if targetTris < 1 {
		targetTris = 1
	}

	positions := append([]vecmath.Vec3(nil), mesh.Positions...)
	tris := trianglesOf(mesh.Indices)
	remap := identityRemap(len(positions))

	for len(tris) > targetTris {
		edge, ok := shortestCollapsibleEdge(positions, tris, remap)
		if !ok {
			break
		}
		collapseEdge(edge, positions, remap)
		tris = removeDegenerateTriangles(tris, remap)
	}

	return rebuildMesh(mesh, positions, tris, remap)
}

type edgeKey struct{ a, b uint32 }

func trianglesOf(indices []uint32) [][3]uint32 {
	tris := make([][3]uint32, 0, len(indices)/3)
	for i := 0; i+2 < len(indices); i += 3 {
		tris = append(tris, [3]uint32{indices[i], indices[i+1], indices[i+2]})
	}
	return tris
}

func identityRemap(n int) []uint32 {
	remap := make([]uint32, n)
	for i := range remap {
		remap[i] = uint32(i)
	}
	return remap
}

func resolve(remap []uint32, v uint32) uint32 {
	for remap[v] != v {
		v = remap[v]
	}
	return v
}

// shortestCollapsibleEdge finds the shortest surviving triangle edge,
// breaking ties by (min index, max index) so the choice never depends on
// map iteration order or goroutine scheduling.
func shortestCollapsibleEdge(positions []vecmath.Vec3, tris [][3]uint32, remap []uint32) (edgeKey, bool) {
	seen := make(map[edgeKey]bool)
	var candidates []edgeKey
	for _, tri := range tris {
		v := [3]uint32{resolve(remap, tri[0]), resolve(remap, tri[1]), resolve(remap, tri[2])}
		if v[0] == v[1] || v[1] == v[2] || v[0] == v[2] {
			continue
		}
		pairs := [3][2]uint32{{v[0], v[1]}, {v[1], v[2]}, {v[2], v[0]}}
		for _, p := range pairs {
			a, b := p[0], p[1]
			if a > b {
				a, b = b, a
			}
			key := edgeKey{a, b}
			if !seen[key] {
				seen[key] = true
				candidates = append(candidates, key)
			}
		}
	}
	if len(candidates) == 0 {
		return edgeKey{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		li := vecmath.Length(vecmath.Sub(positions[candidates[i].b], positions[candidates[i].a]))
		lj := vecmath.Length(vecmath.Sub(positions[candidates[j].b], positions[candidates[j].a]))
		if li != lj {
			return li < lj
		}
		if candidates[i].a != candidates[j].a {
			return candidates[i].a < candidates[j].a
		}
		return candidates[i].b < candidates[j].b
	})
	return candidates[0], true
}

func collapseEdge(edge edgeKey, positions []vecmath.Vec3, remap []uint32) {
	mid := vecmath.Scale(vecmath.Add(positions[edge.a], positions[edge.b]), 0.5)
	positions[edge.a] = mid
	remap[edge.b] = edge.a
}

func removeDegenerateTriangles(tris [][3]uint32, remap []uint32) [][3]uint32 {
	out := tris[:0:0]
	for _, tri := range tris {
		v := [3]uint32{resolve(remap, tri[0]), resolve(remap, tri[1]), resolve(remap, tri[2])}
		if v[0] == v[1] || v[1] == v[2] || v[0] == v[2] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func rebuildMesh(mesh geometry.Mesh, positions []vecmath.Vec3, tris [][3]uint32, remap []uint32) geometry.Mesh {
	used := make(map[uint32]uint32)
	var outPositions []vecmath.Vec3
	var outNormals []vecmath.Vec3
	var outScalars []float32
	var outIndices []uint32

	resolved := func(v uint32) uint32 { return resolve(remap, v) }

	for _, tri := range tris {
		for _, v := range tri {
			r := resolved(v)
			if _, ok := used[r]; !ok {
				used[r] = uint32(len(outPositions))
				outPositions = append(outPositions, positions[r])
				if mesh.Normals != nil {
					outNormals = append(outNormals, mesh.Normals[r])
				}
				if mesh.Scalars != nil {
					outScalars = append(outScalars, mesh.Scalars[r])
				}
			}
			outIndices = append(outIndices, used[r])
		}
	}

	out := geometry.Mesh{
		Positions:   outPositions,
		Indices:     outIndices,
		MaterialRef: mesh.MaterialRef,
		HasMaterial: mesh.HasMaterial,
	}
	if mesh.Normals != nil {
		out.Normals = outNormals
	}
	if mesh.Scalars != nil {
		out.Scalars = outScalars
	}
	return out
}
