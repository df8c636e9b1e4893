package audit

import (
	"sort"

	"github.com/frustum-vis/frustum/material"
	"github.com/frustum-vis/frustum/render"
)

// ImageMetrics summarizes the pixels a Backend produced, computed once
// from the finished RGBA8 buffer so a caller can reason about the image
// without decoding or eyeballing it.
type ImageMetrics struct {
	Histogram              ColorHistogram `json:"histogram"`
	EdgeDensity            float32        `json:"edge_density"`
	TransparentPercentage  float32        `json:"transparent_percentage"`
	BackgroundPercentage   float32        `json:"background_percentage"`
	ConnectedComponents    uint32         `json:"connected_components"`
	DominantColors         [][3]byte      `json:"dominant_colors"`
}

// ColorHistogram buckets each channel into 16 uniform bins (256/16 values
// per bin).
type ColorHistogram struct {
	Red   [16]uint32 `json:"red"`
	Green [16]uint32 `json:"green"`
	Blue  [16]uint32 `json:"blue"`
	Alpha [16]uint32 `json:"alpha"`
}

const colorTolerance = 5
const componentBlockSize = 8

func computeImageMetrics(img *render.Image, bg material.RGBA) ImageMetrics {
	pixelCount := img.Width * img.Height
	bgR, bgG, bgB := toByteChan(bg.R), toByteChan(bg.G), toByteChan(bg.B)

	var hist ColorHistogram
	var transparent, background int

	for i := 0; i+3 < len(img.Pixels); i += 4 {
		r, g, b, a := img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], img.Pixels[i+3]
		hist.Red[r/16]++
		hist.Green[g/16]++
		hist.Blue[b/16]++
		hist.Alpha[a/16]++
		if a == 0 {
			transparent++
		}
		if similarColor(r, g, b, bgR, bgG, bgB, colorTolerance) {
			background++
		}
	}

	metrics := ImageMetrics{
		Histogram:            hist,
		EdgeDensity:          edgeDensity(img),
		DominantColors:       dominantColors(img),
		ConnectedComponents:  connectedComponents(img, bgR, bgG, bgB),
	}
	if pixelCount > 0 {
		metrics.TransparentPercentage = float32(transparent) / float32(pixelCount) * 100
		metrics.BackgroundPercentage = float32(background) / float32(pixelCount) * 100
	}
	return metrics
}

func toByteChan(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return byte(v*255 + 0.5)
}

func similarColor(r1, g1, b1, r2, g2, b2 byte, tolerance int) bool {
	return absDiff(r1, r2) <= tolerance && absDiff(g1, g2) <= tolerance && absDiff(b1, b2) <= tolerance
}

func absDiff(a, b byte) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

// edgeDensity is a coarse Sobel-like gradient-magnitude measure over
// luminance: the fraction of interior pixels whose horizontal-plus-vertical
// neighbor luminance gradient exceeds a fixed threshold.
func edgeDensity(img *render.Image) float32 {
	w, h := img.Width, img.Height
	if w < 3 || h < 3 {
		return 0
	}
	const threshold = 30
	lum := func(x, y int) int {
		i := (y*w + x) * 4
		return (int(img.Pixels[i]) + int(img.Pixels[i+1]) + int(img.Pixels[i+2])) / 3
	}

	var edgeCount int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := absInt(lum(x+1, y) - lum(x-1, y))
			gy := absInt(lum(x, y+1) - lum(x, y-1))
			if gx+gy > threshold {
				edgeCount++
			}
		}
	}
	interior := float32((w - 2) * (h - 2))
	if interior == 0 {
		return 0
	}
	return float32(edgeCount) / interior
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// dominantColors quantizes every opaque-enough pixel to 4 bits per channel,
// counts occurrences and returns the 5 most frequent, dequantized back to
// the center of their bucket.
func dominantColors(img *render.Image) [][3]byte {
	type rgb struct{ r, g, b byte }
	counts := make(map[rgb]int)
	for i := 0; i+3 < len(img.Pixels); i += 4 {
		if img.Pixels[i+3] <= 128 {
			continue
		}
		key := rgb{img.Pixels[i] / 16, img.Pixels[i+1] / 16, img.Pixels[i+2] / 16}
		counts[key]++
	}

	keys := make([]rgb, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })

	limit := 5
	if len(keys) < limit {
		limit = len(keys)
	}
	out := make([][3]byte, limit)
	for i := 0; i < limit; i++ {
		k := keys[i]
		out[i] = [3]byte{k.r*16 + 8, k.g*16 + 8, k.b*16 + 8}
	}
	return out
}

// connectedComponents downsamples the image into componentBlockSize
// blocks, classifies each block foreground/background by sampling its
// center pixel, then flood-fills the binary mask to count distinct
// regions. It is a coarse estimate, not exact segmentation.
func connectedComponents(img *render.Image, bgR, bgG, bgB byte) uint32 {
	w, h := img.Width, img.Height
	smallW := maxInt(w/componentBlockSize, 1)
	smallH := maxInt(h/componentBlockSize, 1)

	mask := make([]bool, smallW*smallH)
	for sy := 0; sy < smallH; sy++ {
		for sx := 0; sx < smallW; sx++ {
			x := minInt(sx*componentBlockSize+componentBlockSize/2, w-1)
			y := minInt(sy*componentBlockSize+componentBlockSize/2, h-1)
			i := (y*w + x) * 4
			isBg := similarColor(img.Pixels[i], img.Pixels[i+1], img.Pixels[i+2], bgR, bgG, bgB, 10)
			mask[sy*smallW+sx] = !isBg
		}
	}

	visited := make([]bool, len(mask))
	var components uint32
	for i := range mask {
		if mask[i] && !visited[i] {
			floodFill(mask, visited, smallW, smallH, i)
			components++
		}
	}
	return components
}

func floodFill(mask []bool, visited []bool, w, h, start int) {
	stack := []int{start}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if idx < 0 || idx >= len(mask) || visited[idx] || !mask[idx] {
			continue
		}
		visited[idx] = true
		x, y := idx%w, idx/w
		if x > 0 {
			stack = append(stack, idx-1)
		}
		if x < w-1 {
			stack = append(stack, idx+1)
		}
		if y > 0 {
			stack = append(stack, idx-w)
		}
		if y < h-1 {
			stack = append(stack, idx+w)
		}
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
