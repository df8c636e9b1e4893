package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func baseBundle() Bundle {
	return Bundle{
		Metadata: RenderMetadata{PrimitiveCounts: PrimitiveCounts{TotalTriangles: 100}, Backend: "soft"},
		Geometry: GeometryProbes{DepthStats: DepthStats{Mean: 0.5}},
		Image:    ImageMetrics{BackgroundPercentage: 40, EdgeDensity: 0.1},
	}
}

func TestCompareRegressionIdenticalBundlesMatch(t *testing.T) {
	b := baseBundle()
	result := CompareRegression(b, b, DefaultRegressionTolerance())
	assert.True(t, result.Matches)
	assert.Empty(t, result.Differences)
}

func TestCompareRegressionTriangleCountChangeFails(t *testing.T) {
	baseline := baseBundle()
	current := baseBundle()
	current.Metadata.PrimitiveCounts.TotalTriangles = 50
	result := CompareRegression(baseline, current, DefaultRegressionTolerance())
	assert.False(t, result.Matches)
	assert.NotEmpty(t, result.Differences)
}

func TestCompareRegressionDepthDriftBeyondToleranceFails(t *testing.T) {
	baseline := baseBundle()
	current := baseBundle()
	current.Geometry.DepthStats.Mean = 0.9
	result := CompareRegression(baseline, current, DefaultRegressionTolerance())
	assert.False(t, result.Matches)
}

func TestCompareRegressionEdgeDensityDriftIsListedButStillMatches(t *testing.T) {
	baseline := baseBundle()
	current := baseBundle()
	current.Image.EdgeDensity = 0.5
	result := CompareRegression(baseline, current, DefaultRegressionTolerance())
	assert.True(t, result.Matches)
	assert.NotEmpty(t, result.Differences)
}

func TestCompareRegressionDifferentBackendAddsNote(t *testing.T) {
	baseline := baseBundle()
	current := baseBundle()
	current.Metadata.Backend = "wgpu"
	result := CompareRegression(baseline, current, DefaultRegressionTolerance())
	assert.NotEmpty(t, result.Notes)
}

func TestHistogramDifferenceOfIdenticalHistogramsIsZero(t *testing.T) {
	h := ColorHistogram{}
	h.Red[0] = 10
	assert.Equal(t, float32(0), histogramDifference(h, h))
}

func TestHistogramDifferenceEmptyHistogramsIsZero(t *testing.T) {
	assert.Equal(t, float32(0), histogramDifference(ColorHistogram{}, ColorHistogram{}))
}
