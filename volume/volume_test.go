package volume

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndexAndAt(t *testing.T) {
	v := Volume{
		Values:     []float32{0, 1, 2, 3, 4, 5, 6, 7},
		Dimensions: [3]int{2, 2, 2},
		Spacing:    [3]float32{1, 1, 1},
	}
	assert.Equal(t, 0, v.index(0, 0, 0))
	assert.Equal(t, 5, v.index(1, 0, 1))
	assert.Equal(t, float32(5), v.at(1, 0, 1))
}

func TestValidateAcceptsWellFormedVolume(t *testing.T) {
	v := Volume{
		Values:     make([]float32, 8),
		Dimensions: [3]int{2, 2, 2},
		Spacing:    [3]float32{1, 1, 1},
	}
	assert.NoError(t, v.validate())
}

func TestValidateRejectsNonPositiveSpacing(t *testing.T) {
	v := Volume{
		Values:     make([]float32, 8),
		Dimensions: [3]int{2, 2, 2},
		Spacing:    [3]float32{0, 1, 1},
	}
	assert.Error(t, v.validate())
}

func TestValidateRejectsWrongValueCount(t *testing.T) {
	v := Volume{
		Values:     make([]float32, 7),
		Dimensions: [3]int{2, 2, 2},
		Spacing:    [3]float32{1, 1, 1},
	}
	assert.Error(t, v.validate())
}
