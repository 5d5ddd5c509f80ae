package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/bmpscale/pkg/pixel"
)

func buffer(t *testing.T, w, h int, c pixel.Color) *pixel.Buffer {
	b, err := pixel.New(w, h, pixel.RGBA)
	require.NoError(t, err)
	b.Fill(c)
	return b
}

func TestPNG(t *testing.T) {
	b := buffer(t, 3, 2, pixel.Color{R: 12, G: 34, B: 56})

	var out bytes.Buffer
	require.NoError(t, PNG(b, &out))

	img, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	// zero alpha in the buffer does not make the preview transparent
	assert.Equal(t, color.RGBA{12, 34, 56, 255}, color.RGBAModel.Convert(img.At(2, 1)))
}

func TestReport(t *testing.T) {
	entries := []Entry{
		{
			Name:   "first.bmp",
			Source: buffer(t, 4, 4, pixel.Color{R: 255}),
			Result: buffer(t, 8, 2, pixel.Color{G: 255}),
			Note:   "blerp, align-corners, 2 x 0.5",
		},
		{
			Name:   "second.bmp",
			Source: buffer(t, 1, 1, pixel.Color{B: 255}),
			Result: buffer(t, 3, 3, pixel.Color{B: 255}),
		},
	}

	var out bytes.Buffer
	require.NoError(t, Report(entries, &out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(out.Bytes(), []byte("/Producer")))
}

func TestReportEmpty(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, Report(nil, &out))
	assert.Zero(t, out.Len())
}

func TestFit(t *testing.T) {
	w, h := fit(100, 50, 200, 200)
	assert.Equal(t, 200.0, w)
	assert.Equal(t, 100.0, h)

	w, h = fit(10, 100, 200, 200)
	assert.Equal(t, 20.0, w)
	assert.Equal(t, 200.0, h)

	w, h = fit(0, 5, 10, 10)
	assert.Zero(t, w)
	assert.Zero(t, h)
}
