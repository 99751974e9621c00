package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrayRoundTripPreservesPixels(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			src.SetGray(x, y, color.Gray{Y: uint8(10*y + x)})
		}
	}

	mat, err := ImageToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 3, mat.Rows())
	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, 1, mat.Channels())

	back, err := MatToImage(mat)
	require.NoError(t, err)

	gray, ok := back.(*image.Gray)
	require.True(t, ok)
	for y := 0; y < 3; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, src.GrayAt(x, y), gray.GrayAt(x, y))
		}
	}
}

func TestImageToMatRejectsNil(t *testing.T) {
	_, err := ImageToMat(nil)
	assert.Error(t, err)
}
