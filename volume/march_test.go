package volume

import (
	"testing"

	"github.com/frustum-vis/frustum/ferr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sphereVolume(n int, radius float32) Volume {
	spacing := float32(2) / float32(n-1)
	values := make([]float32, n*n*n)
	for k := 0; k < n; k++ {
		for j := 0; j < n; j++ {
			for i := 0; i < n; i++ {
				x := -1 + float32(i)*spacing
				y := -1 + float32(j)*spacing
				z := -1 + float32(k)*spacing
				values[(k*n+j)*n+i] = x*x + y*y + z*z - radius*radius
			}
		}
	}
	return Volume{
		Values:     values,
		Dimensions: [3]int{n, n, n},
		Spacing:    [3]float32{spacing, spacing, spacing},
		Origin:     [3]float32{-1, -1, -1},
	}
}

func TestMarchingCubesSphereVerticesLieOnIsoSurface(t *testing.T) {
	vol := sphereVolume(24, 0.6)
	mesh, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Positions)
	assert.NotEmpty(t, mesh.Indices)
	assert.Equal(t, 0, len(mesh.Indices)%3)
	assert.Equal(t, len(mesh.Positions), len(mesh.Normals))
	require.Equal(t, len(mesh.Positions), len(mesh.Scalars))
	for _, s := range mesh.Scalars {
		assert.Equal(t, float32(0), s)
	}

	for _, idx := range mesh.Indices {
		assert.Less(t, int(idx), len(mesh.Positions))
	}

	// every extracted vertex should lie close to the iso-surface radius
	for _, p := range mesh.Positions {
		r := p.X*p.X + p.Y*p.Y + p.Z*p.Z
		assert.InDelta(t, 0.36, float64(r), 0.05)
	}
}

func TestMarchingCubesIsoValueOutsideRangeReturnsEmptyMesh(t *testing.T) {
	vol := sphereVolume(8, 0.6)
	mesh, err := MarchingCubes(vol, 1000)
	require.NoError(t, err)
	assert.Empty(t, mesh.Positions)
	assert.Empty(t, mesh.Indices)
}

func TestMarchingCubesDeterministic(t *testing.T) {
	vol := sphereVolume(16, 0.6)
	m1, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
	m2, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
	assert.Equal(t, m1.Positions, m2.Positions)
	assert.Equal(t, m1.Indices, m2.Indices)
	assert.Equal(t, m1.Normals, m2.Normals)
	assert.Equal(t, m1.Scalars, m2.Scalars)
}

func TestMarchingCubesRejectsTooSmallDimensions(t *testing.T) {
	vol := Volume{Values: []float32{0}, Dimensions: [3]int{1, 2, 2}, Spacing: [3]float32{1, 1, 1}}
	_, err := MarchingCubes(vol, 0)
	require.Error(t, err)
	assert.IsType(t, &ferr.VolumeDimensionTooSmall{}, err)
}

func TestMarchingCubesRejectsNonFiniteValues(t *testing.T) {
	vol := sphereVolume(4, 0.6)
	zero := float32(0)
	vol.Values[0] = 1 / zero
	_, err := MarchingCubes(vol, 0)
	require.Error(t, err)
	assert.IsType(t, &ferr.VolumeNonFinite{}, err)
}

func TestMarchingCubesRejectsCategoricalWithoutOptIn(t *testing.T) {
	vol := sphereVolume(4, 0.6)
	vol.Categorical = true
	_, err := MarchingCubes(vol, 0)
	require.Error(t, err)
	assert.IsType(t, &ferr.CategoricalVolumeRejected{}, err)
}

func TestMarchingCubesAllowsCategoricalWithOptIn(t *testing.T) {
	vol := sphereVolume(8, 0.6)
	vol.Categorical = true
	vol.AllowCategorical = true
	_, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
}

func TestMarchingCubesAppliesSmoothing(t *testing.T) {
	vol := sphereVolume(16, 0.6)
	vol.Smoothing = 1
	mesh, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Positions)
}

func TestFaceSaddleTunnelsDetectsAmbiguousCheckerboard(t *testing.T) {
	ambiguous, tunnels := faceSaddleTunnels(-3, 1, -1, 1, 0)
	assert.True(t, ambiguous)
	assert.True(t, tunnels)
}

func TestFaceSaddleTunnelsSeparatedWhenSaddleOutsideTunnel(t *testing.T) {
	ambiguous, tunnels := faceSaddleTunnels(-1, 3, -1, 3, 0)
	assert.True(t, ambiguous)
	assert.False(t, tunnels)
}

func TestFaceSaddleTunnelsNonAmbiguousFaceIsFalse(t *testing.T) {
	ambiguous, _ := faceSaddleTunnels(-1, -1, -1, -1, 0)
	assert.False(t, ambiguous)
}

// TestMarchingCubesAmbiguousFaceProducesConnectedTopology exercises a
// single cell whose near face has two diagonally opposite corners below
// the iso value and the other two above it -- the classic ambiguous face
// configuration. Read straight out of triTable this splits into two
// disjoint corner-cap triangles; the asymptotic decider must instead
// select the complementary entry that stitches the same edge crossings
// into one connected patch.
func TestMarchingCubesAmbiguousFaceProducesConnectedTopology(t *testing.T) {
	vol := Volume{
		Values:     []float32{-3, 1, 1, -1, 2, 2, 2, 2},
		Dimensions: [3]int{2, 2, 2},
		Spacing:    [3]float32{1, 1, 1},
	}

	mesh, err := MarchingCubes(vol, 0)
	require.NoError(t, err)
	require.Len(t, mesh.Indices, 12)

	parent := make([]int, len(mesh.Positions))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}
	for i := 0; i < len(mesh.Positions); i++ {
		for j := i + 1; j < len(mesh.Positions); j++ {
			if mesh.Positions[i] == mesh.Positions[j] {
				union(i, j)
			}
		}
	}
	for t := 0; t+2 < len(mesh.Indices); t += 3 {
		union(int(mesh.Indices[t]), int(mesh.Indices[t+1]))
		union(int(mesh.Indices[t+1]), int(mesh.Indices[t+2]))
	}
	roots := map[int]bool{}
	for i := range mesh.Positions {
		roots[find(i)] = true
	}
	assert.Len(t, roots, 1, "ambiguous face must resolve to a single connected surface, not disjoint caps")
}

func TestMarchingCubesAppliesDecimation(t *testing.T) {
	vol := sphereVolume(24, 0.6)
	full, err := MarchingCubes(vol, 0)
	require.NoError(t, err)

	vol.Decimation = 0.5
	decimated, err := MarchingCubes(vol, 0)
	require.NoError(t, err)

	assert.Less(t, len(decimated.Indices), len(full.Indices))
	assert.NotEmpty(t, decimated.Indices)
	assert.Equal(t, len(decimated.Positions), len(decimated.Scalars))
}
