package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussianKernelSumsToOne(t *testing.T) {
	kernel := gaussianKernel(1.5)
	var sum float32
	for _, w := range kernel {
		sum += w
	}
	assert.InDelta(t, 1.0, float64(sum), 1e-5)
}

func TestGaussianKernelIsSymmetric(t *testing.T) {
	kernel := gaussianKernel(2)
	n := len(kernel)
	for i := 0; i < n/2; i++ {
		assert.InDelta(t, float64(kernel[i]), float64(kernel[n-1-i]), 1e-6)
	}
}

func TestGaussianSmoothPreservesUniformField(t *testing.T) {
	v := Volume{
		Values:     make([]float32, 4*4*4),
		Dimensions: [3]int{4, 4, 4},
		Spacing:    [3]float32{1, 1, 1},
	}
	for i := range v.Values {
		v.Values[i] = 3
	}
	smoothed := gaussianSmooth(v, 1)
	for _, val := range smoothed {
		assert.InDelta(t, 3.0, float64(val), 1e-4)
	}
}

func TestGaussianSmoothChangesNonUniformField(t *testing.T) {
	vol := sphereVolume(12, 0.6)
	smoothed := gaussianSmooth(vol, 1.5)
	require.Len(t, smoothed, len(vol.Values))
	differs := false
	for i := range smoothed {
		if smoothed[i] != vol.Values[i] {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}
