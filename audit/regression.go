package audit

import "fmt"

// RegressionTolerance bounds how far a current Bundle may drift from a
// baseline before CompareRegression calls it a mismatch. Edge density
// drift never fails the comparison on its own; it is listed in
// Differences but leaves Matches unchanged.
type RegressionTolerance struct {
	Depth      float32
	Histogram  float32
	EdgeDensity float32
	Background float32
}

// DefaultRegressionTolerance is a permissive tolerance suitable for
// catching gross regressions (dropped geometry, broken materials) without
// failing on ordinary rasterizer-level jitter.
func DefaultRegressionTolerance() RegressionTolerance {
	return RegressionTolerance{
		Depth:      0.01,
		Histogram:  0.05,
		EdgeDensity: 0.1,
		Background: 5,
	}
}

// RegressionResult is the outcome of comparing two Bundles produced from
// (nominally) the same scene.
type RegressionResult struct {
	Matches     bool
	Differences []string
	Notes       []string
}

// CompareRegression checks baseline against current within tol, comparing
// triangle count exactly and everything else within tolerance. It never
// touches pixels itself — both Bundles must already have their Image
// metrics computed by Run.
func CompareRegression(baseline, current Bundle, tol RegressionTolerance) RegressionResult {
	result := RegressionResult{Matches: true}

	if baseline.Metadata.PrimitiveCounts.TotalTriangles != current.Metadata.PrimitiveCounts.TotalTriangles {
		result.Matches = false
		result.Differences = append(result.Differences, fmt.Sprintf(
			"triangle count changed: %d -> %d",
			baseline.Metadata.PrimitiveCounts.TotalTriangles, current.Metadata.PrimitiveCounts.TotalTriangles))
	}

	depthDiff := absf(baseline.Geometry.DepthStats.Mean - current.Geometry.DepthStats.Mean)
	if depthDiff > tol.Depth {
		result.Matches = false
		result.Differences = append(result.Differences, fmt.Sprintf(
			"mean depth changed beyond tolerance: %.4f -> %.4f (diff %.4f, tolerance %.4f)",
			baseline.Geometry.DepthStats.Mean, current.Geometry.DepthStats.Mean, depthDiff, tol.Depth))
	}

	histDiff := histogramDifference(baseline.Image.Histogram, current.Image.Histogram)
	if histDiff > tol.Histogram {
		result.Matches = false
		result.Differences = append(result.Differences, fmt.Sprintf(
			"color histogram drift: %.2f%% (tolerance %.2f%%)", histDiff*100, tol.Histogram*100))
	}

	edgeDiff := absf(baseline.Image.EdgeDensity - current.Image.EdgeDensity)
	if edgeDiff > tol.EdgeDensity {
		result.Differences = append(result.Differences, fmt.Sprintf(
			"edge density changed: %.4f -> %.4f", baseline.Image.EdgeDensity, current.Image.EdgeDensity))
	}

	bgDiff := absf(baseline.Image.BackgroundPercentage - current.Image.BackgroundPercentage)
	if bgDiff > tol.Background {
		result.Matches = false
		result.Differences = append(result.Differences, fmt.Sprintf(
			"background percentage changed: %.1f%% -> %.1f%%",
			baseline.Image.BackgroundPercentage, current.Image.BackgroundPercentage))
	}

	if baseline.Metadata.Backend != current.Metadata.Backend {
		result.Notes = append(result.Notes, fmt.Sprintf(
			"different backend: %s vs %s", baseline.Metadata.Backend, current.Metadata.Backend))
	}

	return result
}

func histogramDifference(a, b ColorHistogram) float32 {
	var totalDiff, totalCount int64
	for i := 0; i < 16; i++ {
		totalDiff += absDiff64(int64(a.Red[i]), int64(b.Red[i]))
		totalDiff += absDiff64(int64(a.Green[i]), int64(b.Green[i]))
		totalDiff += absDiff64(int64(a.Blue[i]), int64(b.Blue[i]))
		totalCount += int64(a.Red[i]) + int64(a.Green[i]) + int64(a.Blue[i])
	}
	if totalCount == 0 {
		return 0
	}
	return float32(totalDiff) / float32(totalCount)
}

func absDiff64(a, b int64) int64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

func absf(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
