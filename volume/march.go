package volume

import (
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/frustum-vis/frustum/geometry"
	"github.com/frustum-vis/frustum/vecmath"
)

// MarchingCubes extracts an isosurface mesh from v at the given iso-value.
// Cells are visited in (k, j, i) order and their triangles are always
// concatenated in that same order regardless of how many goroutines did
// the work, so two runs over the same volume always produce byte-identical
// output. An iso-value outside the volume's value range is not an error:
// MarchingCubes logs a warning and returns an empty mesh.
func MarchingCubes(v Volume, isoValue float32) (geometry.Mesh, error) {
	if err := v.validate(); err != nil {
		return geometry.Mesh{}, err
	}

	if v.Smoothing > 0 {
		v.Values = gaussianSmooth(v, v.Smoothing)
	}

	lo, hi := valueRange(v.Values)
	if isoValue < lo || isoValue > hi {
		log.Printf("volume: iso value %v outside data range [%v, %v]; returning empty mesh", isoValue, lo, hi)
		return geometry.Mesh{}, nil
	}

	nx, ny, nz := v.Dimensions[0], v.Dimensions[1], v.Dimensions[2]
	slices := nz - 1

	workers := runtime.NumCPU()
	if workers > slices {
		workers = slices
	}
	if workers < 1 {
		workers = 1
	}
	pool := worker.NewDynamicWorkerPool(workers, slices+1, time.Second)

	results := make([]cellBatch, slices)
	var wg sync.WaitGroup
	for k := 0; k < slices; k++ {
		wg.Add(1)
		kCap := k
		pool.SubmitTask(worker.Task{
			ID: k,
			Do: func() (any, error) {
				defer wg.Done()
				results[kCap] = marchSlice(v, isoValue, kCap, nx, ny)
				return nil, nil
			},
		})
	}
	wg.Wait()

	var positions []vecmath.Vec3
	var normals []vecmath.Vec3
	var indices []uint32
	for _, batch := range results {
		base := uint32(len(positions))
		positions = append(positions, batch.positions...)
		normals = append(normals, batch.normals...)
		for _, idx := range batch.indices {
			indices = append(indices, base+idx)
		}
	}

	scalars := make([]float32, len(positions))
	for i := range scalars {
		scalars[i] = isoValue
	}

	mesh := geometry.Mesh{
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
		Scalars:   scalars,
	}

	if v.Decimation > 0 && v.Decimation < 1 {
		mesh = decimate(mesh, v.Decimation)
	}

	return mesh, nil
}

type cellBatch struct {
	positions []vecmath.Vec3
	normals   []vecmath.Vec3
	indices   []uint32
}

// marchSlice runs marching cubes over every cell in z-slice k, visiting
// cells in (j, i) order within the slice.
func marchSlice(v Volume, isoValue float32, k, nx, ny int) cellBatch {
	var batch cellBatch
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			marchCell(v, isoValue, i, j, k, &batch)
		}
	}
	return batch
}

// cellCorner is the (di, dj, dk) offset of each of the 8 cube corners in
// the corner-indexing convention shared with tables.go.
var cellCorner = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// edgeCorners maps each of the 12 cube edges to the pair of corner indices
// it connects.
var edgeCorners = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

func marchCell(v Volume, isoValue float32, i, j, k int, batch *cellBatch) {
	var cornerVal [8]float32
	var cornerPos [8]vecmath.Vec3
	cubeIndex := 0
	for c := 0; c < 8; c++ {
		off := cellCorner[c]
		ci, cj, ck := i+off[0], j+off[1], k+off[2]
		cornerVal[c] = v.at(ci, cj, ck)
		cornerPos[c] = gridPoint(v, ci, cj, ck)
	}
	for c := 0; c < 8; c++ {
		if cornerVal[c] < isoValue {
			cubeIndex |= 1 << uint(c)
		}
	}

	edges := edgeTable[cubeIndex]
	if edges == 0 {
		return
	}

	var edgeVertex [12]vecmath.Vec3
	var edgeNormal [12]vecmath.Vec3
	var has [12]bool
	for e := 0; e < 12; e++ {
		if edges&(1<<uint(e)) == 0 {
			continue
		}
		a, b := edgeCorners[e][0], edgeCorners[e][1]
		t := (isoValue - cornerVal[a]) / (cornerVal[b] - cornerVal[a])
		edgeVertex[e] = vecmath.Add(cornerPos[a], vecmath.Scale(vecmath.Sub(cornerPos[b], cornerPos[a]), t))
		ga := gradientAt(v, i+cellCorner[a][0], j+cellCorner[a][1], k+cellCorner[a][2])
		gb := gradientAt(v, i+cellCorner[b][0], j+cellCorner[b][1], k+cellCorner[b][2])
		g := vecmath.Add(ga, vecmath.Scale(vecmath.Sub(gb, ga), t))
		n := vecmath.Normalize(g)
		edgeNormal[e] = vecmath.Vec3{X: -n.X, Y: -n.Y, Z: -n.Z}
		has[e] = true
	}

	// triTable[cubeIndex] and triTable[255-cubeIndex] share the same crossed
	// edges (edgeTable is symmetric under corner inversion) but stitch them
	// into the two topologically distinct triangulations of an ambiguous
	// configuration. resolvesTunnel picks whichever one matches what the
	// scalar field's face saddles actually do.
	tri := triTable[cubeIndex]
	if resolvesTunnel(cornerVal, isoValue) {
		tri = triTable[255-cubeIndex]
	}
	for t := 0; t+2 < len(tri) && tri[t] != -1; t += 3 {
		e0, e1, e2 := tri[t], tri[t+1], tri[t+2]
		if !has[e0] || !has[e1] || !has[e2] {
			continue
		}
		base := uint32(len(batch.positions))
		batch.positions = append(batch.positions, edgeVertex[e0], edgeVertex[e1], edgeVertex[e2])
		batch.normals = append(batch.normals, edgeNormal[e0], edgeNormal[e1], edgeNormal[e2])
		batch.indices = append(batch.indices, base, base+1, base+2)
	}
}

// faceCorners lists, for each of a cube's 6 faces, the 4 corner indices in
// cyclic order around the face; diagonal pairs are (corner 0, corner 2) and
// (corner 1, corner 3).
var faceCorners = [6][4]int{
	{0, 1, 2, 3}, // k
	{4, 5, 6, 7}, // k+1
	{0, 1, 5, 4}, // j
	{3, 2, 6, 7}, // j+1
	{0, 3, 7, 4}, // i
	{1, 2, 6, 5}, // i+1
}

// resolvesTunnel applies the asymptotic decider to every face of the cube
// and reports whether any ambiguous face's bilinear saddle indicates that
// the surface tunnels through rather than separates the face's diagonal
// pair of same-sign corners. A cube with no ambiguous face (the common
// case) always reports false, leaving triTable[cubeIndex] untouched.
func resolvesTunnel(cornerVal [8]float32, isoValue float32) bool {
	for _, f := range faceCorners {
		ambiguous, tunnels := faceSaddleTunnels(cornerVal[f[0]], cornerVal[f[1]], cornerVal[f[2]], cornerVal[f[3]], isoValue)
		if ambiguous && tunnels {
			return true
		}
	}
	return false
}

// faceSaddleTunnels evaluates one face of the ambiguous-face test: given
// the face's 4 corner values in cyclic order, it reports whether the face
// is ambiguous (its corners form a checkerboard of inside/outside relative
// to isoValue) and, if so, whether the saddle of the bilinear interpolant
// over the face sits on the same side of isoValue as corners v0 and v2 --
// meaning the surface connects through the face along that diagonal
// instead of separating it.
func faceSaddleTunnels(v0, v1, v2, v3, isoValue float32) (ambiguous, tunnels bool) {
	in0, in1, in2, in3 := v0 < isoValue, v1 < isoValue, v2 < isoValue, v3 < isoValue
	if in0 != in2 || in1 != in3 || in0 == in1 {
		return false, false
	}
	denom := v0 + v2 - v1 - v3
	if denom == 0 {
		return true, false
	}
	saddle := (v0*v2 - v1*v3) / denom
	return true, (saddle < isoValue) == in0
}

func gridPoint(v Volume, i, j, k int) vecmath.Vec3 {
	return vecmath.Vec3{
		X: v.Origin[0] + float32(i)*v.Spacing[0],
		Y: v.Origin[1] + float32(j)*v.Spacing[1],
		Z: v.Origin[2] + float32(k)*v.Spacing[2],
	}
}

// gradientAt computes the central-difference gradient of the scalar field
// at grid index (i, j, k), falling back to a one-sided difference at the
// volume's boundary.
func gradientAt(v Volume, i, j, k int) vecmath.Vec3 {
	nx, ny, nz := v.Dimensions[0], v.Dimensions[1], v.Dimensions[2]

	dx := centralDiff(i, nx, func(o int) float32 { return v.at(o, j, k) }) / v.Spacing[0]
	dy := centralDiff(j, ny, func(o int) float32 { return v.at(i, o, k) }) / v.Spacing[1]
	dz := centralDiff(k, nz, func(o int) float32 { return v.at(i, j, o) }) / v.Spacing[2]

	return vecmath.Vec3{X: dx, Y: dy, Z: dz}
}

// centralDiff differentiates sample at coord using a central difference,
// falling back to a one-sided difference at the grid boundary.
func centralDiff(coord, n int, sample func(int) float32) float32 {
	switch {
	case coord == 0:
		return sample(1) - sample(0)
	case coord == n-1:
		return sample(n-1) - sample(n-2)
	default:
		return (sample(coord+1) - sample(coord-1)) / 2
	}
}

func valueRange(values []float32) (float32, float32) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}
