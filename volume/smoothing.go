package volume

import "math"

// gaussianSmooth applies a separable 1D Gaussian blur along x, then y, then
// z, with the given standard deviation in samples. The kernel radius is
// fixed at 3 sigma, truncated at the grid boundary (no wraparound, no
// reflection), so results are deterministic and independent of any
// out-of-bounds convention.
func gaussianSmooth(v Volume, sigma float32) []float32 {
	kernel := gaussianKernel(sigma)
	nx, ny, nz := v.Dimensions[0], v.Dimensions[1], v.Dimensions[2]

	out := make([]float32, len(v.Values))
	copy(out, v.Values)

	out = convolveAxis(out, nx, ny, nz, kernel, 0)
	out = convolveAxis(out, nx, ny, nz, kernel, 1)
	out = convolveAxis(out, nx, ny, nz, kernel, 2)
	return out
}

func gaussianKernel(sigma float32) []float32 {
	radius := int(math.Ceil(float64(3 * sigma)))
	if radius < 1 {
		radius = 1
	}
	kernel := make([]float32, 2*radius+1)
	var sum float32
	for i := -radius; i <= radius; i++ {
		x := float64(i)
		w := float32(math.Exp(-(x * x) / (2 * float64(sigma) * float64(sigma))))
		kernel[i+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

// convolveAxis convolves values (flattened x-fastest, then y, then z) with
// kernel along the given axis (0=x, 1=y, 2=z).
func convolveAxis(values []float32, nx, ny, nz int, kernel []float32, axis int) []float32 {
	radius := len(kernel) / 2
	out := make([]float32, len(values))
	idx := func(i, j, k int) int { return (k*ny+j)*nx + i }

	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				var sum, weight float32
				for t := -radius; t <= radius; t++ {
					ci, cj, ck := i, j, k
					switch axis {
					case 0:
						ci = i + t
					case 1:
						cj = j + t
					default:
						ck = k + t
					}
					if ci < 0 || ci >= nx || cj < 0 || cj >= ny || ck < 0 || ck >= nz {
						continue
					}
					w := kernel[t+radius]
					sum += w * values[idx(ci, cj, ck)]
					weight += w
				}
				out[idx(i, j, k)] = sum / weight
			}
		}
	}
	return out
}
