package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageSetAndAtRoundTrip(t *testing.T) {
	img := newImage(4, 4)
	img.set(1, 2, 10, 20, 30, 40)
	r, g, b, a := img.at(1, 2)
	assert.Equal(t, byte(10), r)
	assert.Equal(t, byte(20), g)
	assert.Equal(t, byte(30), b)
	assert.Equal(t, byte(40), a)
}

func TestImageSetOutOfBoundsIsNoop(t *testing.T) {
	img := newImage(2, 2)
	img.set(-1, 0, 1, 2, 3, 4)
	img.set(5, 5, 1, 2, 3, 4)
	for _, p := range img.Pixels {
		assert.Equal(t, byte(0), p)
	}
}

func TestNewImageAllocatesRGBA8Buffer(t *testing.T) {
	img := newImage(3, 5)
	assert.Equal(t, 3*5*4, len(img.Pixels))
}
