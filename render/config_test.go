package render

import (
	"testing"

	"github.com/frustum-vis/frustum/ferr"
	"github.com/frustum-vis/frustum/material"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDefaults(t *testing.T) {
	cfg := DefaultConfig(640, 480)
	assert.Equal(t, 640, cfg.Width)
	assert.Equal(t, 480, cfg.Height)
	assert.Equal(t, float32(1), cfg.PixelRatio)
	assert.Equal(t, material.RGBA{R: 1, G: 1, B: 1, A: 1}, cfg.Background)
	require.NoError(t, Validate(cfg))
}

func TestValidateRejectsNonPositiveDimensions(t *testing.T) {
	cfg := DefaultConfig(0, 480)
	err := Validate(cfg)
	require.Error(t, err)
	assert.IsType(t, &ferr.RenderConfigInvalid{}, err)

	cfg = DefaultConfig(640, -1)
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsNonPositivePixelRatio(t *testing.T) {
	cfg := DefaultConfig(640, 480)
	cfg.PixelRatio = 0
	require.Error(t, Validate(cfg))
}

func TestValidateRejectsOutOfRangeBackground(t *testing.T) {
	cfg := DefaultConfig(640, 480)
	cfg.Background.R = 1.5
	require.Error(t, Validate(cfg))
}

func TestPhysicalDimensionsScaleByPixelRatio(t *testing.T) {
	cfg := DefaultConfig(100, 50)
	cfg.PixelRatio = 2
	assert.Equal(t, 200, cfg.PhysicalWidth())
	assert.Equal(t, 100, cfg.PhysicalHeight())
}
