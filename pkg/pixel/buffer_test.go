package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/bmpscale/internal/errors"
)

func TestGetSet(t *testing.T) {
	b, err := New(3, 2, RGB)
	require.NoError(t, err)
	assert.Len(t, b.Pix, 18)

	c := Color{R: 10, G: 20, B: 30}
	require.NoError(t, b.Set(2, 1, c))

	actual, err := b.Get(2, 1)
	require.NoError(t, err)
	assert.Equal(t, c, actual)

	// row-major: y*width + x
	i := (1*3 + 2) * RGB
	assert.Equal(t, []uint8{10, 20, 30}, b.Pix[i:i+3])
}

func TestOutOfRange(t *testing.T) {
	b, err := New(2, 2, RGBA)
	require.NoError(t, err)

	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}, {5, 5}} {
		_, err = b.Get(p[0], p[1])
		assert.True(t, errors.IsOutOfRange(err), "get %v", p)

		err = b.Set(p[0], p[1], Color{R: 1})
		assert.True(t, errors.IsOutOfRange(err), "set %v", p)
	}

	// nothing was written
	for _, v := range b.Pix {
		assert.Zero(t, v)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New(0, 1, RGB)
	assert.Error(t, err)

	_, err = New(1, 1, 2)
	assert.Equal(t, errors.Unsupported, errors.KindOf(err))
}

func TestFromBytes(t *testing.T) {
	_, err := FromBytes(make([]uint8, 11), 2, 2, RGB)
	assert.Equal(t, errors.MalformedPixelData, errors.KindOf(err))

	b, err := FromBytes(make([]uint8, 12), 2, 2, RGB)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Width)
}

func TestExpandPack(t *testing.T) {
	src, err := FromBytes([]uint8{1, 2, 3, 4, 5, 6}, 2, 1, RGB)
	require.NoError(t, err)

	exp := src.Expand()
	assert.Equal(t, RGBA, exp.Channels)
	assert.Equal(t, []uint8{1, 2, 3, 0, 4, 5, 6, 0}, exp.Pix)

	// alpha is dropped again
	exp.Pix[3] = 99
	packed := exp.Pack()
	assert.True(t, src.Equal(packed))

	// expanding twice yields an independent copy
	again := exp.Expand()
	again.Pix[0] = 42
	assert.Equal(t, uint8(1), exp.Pix[0])
}

func TestImageInterface(t *testing.T) {
	b, err := New(2, 2, RGBA)
	require.NoError(t, err)
	b.Fill(Color{R: 200, G: 100, B: 50})

	var img image.Image = b
	assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
	assert.Equal(t, color.RGBA{200, 100, 50, 255}, img.At(1, 1))
	assert.Equal(t, color.RGBA{}, img.At(3, 3))

	// alpha stays zero in the buffer even though At reports opaque colours
	assert.Equal(t, uint8(0), b.Pix[3])
}

func TestFromImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(5, 5, 7, 6))
	src.Set(5, 5, color.RGBA{1, 2, 3, 255})
	src.Set(6, 5, color.RGBA{4, 5, 6, 255})

	b, err := FromImage(src, RGBA)
	require.NoError(t, err)
	assert.Equal(t, []uint8{1, 2, 3, 0, 4, 5, 6, 0}, b.Pix)

	gray := image.NewGray(image.Rect(0, 0, 1, 1))
	gray.Set(0, 0, color.Gray{Y: 77})
	b, err = FromImage(gray, RGB)
	require.NoError(t, err)
	assert.Equal(t, []uint8{77, 77, 77}, b.Pix)
}
