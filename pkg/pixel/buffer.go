// Package pixel holds the in-memory pixel grid shared by the BMP codec and
// the resampler.
package pixel

import (
	"image"
	"image/color"

	"github.com/akeil/bmpscale/internal/errors"
)

const (
	// RGB is the channel count of a decoded 24-bit bitmap.
	RGB = 3
	// RGBA is the channel count of an expanded buffer. The alpha channel is
	// always zero.
	RGBA = 4
)

// Color is a single pixel. A is only meaningful for 4-channel buffers.
type Color struct {
	R, G, B, A uint8
}

// Buffer is a row-major grid of 8-bit samples.
//
// Samples are stored in R, G, B (, A) order; y=0 is the top row.
type Buffer struct {
	Pix      []uint8
	Width    int
	Height   int
	Channels int
}

// New allocates a zeroed buffer.
func New(width, height, channels int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.OutOfRange, "invalid dimensions %vx%v", width, height)
	}
	if channels != RGB && channels != RGBA {
		return nil, errors.New(errors.Unsupported, "unsupported channel count %v", channels)
	}
	return &Buffer{
		Pix:      make([]uint8, width*height*channels),
		Width:    width,
		Height:   height,
		Channels: channels,
	}, nil
}

// FromBytes wraps existing samples.
// The length of pix must match the given dimensions.
func FromBytes(pix []uint8, width, height, channels int) (*Buffer, error) {
	b := &Buffer{Pix: pix, Width: width, Height: height, Channels: channels}
	err := b.Validate()
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the length invariant of the sample array.
func (b *Buffer) Validate() error {
	if b.Channels != RGB && b.Channels != RGBA {
		return errors.New(errors.Unsupported, "unsupported channel count %v", b.Channels)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return errors.New(errors.OutOfRange, "invalid dimensions %vx%v", b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*b.Channels {
		return errors.New(errors.MalformedPixelData, "have %v samples, want %v",
			len(b.Pix), b.Width*b.Height*b.Channels)
	}
	return nil
}

func (b *Buffer) offset(x, y int) (int, error) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0, errors.New(errors.OutOfRange, "(%v,%v) outside %vx%v", x, y, b.Width, b.Height)
	}
	return (y*b.Width + x) * b.Channels, nil
}

// Get returns the pixel at column x, row y.
func (b *Buffer) Get(x, y int) (Color, error) {
	i, err := b.offset(x, y)
	if err != nil {
		return Color{}, err
	}
	return b.at(i), nil
}

// Set writes the pixel at column x, row y.
// For 3-channel buffers, the alpha value is ignored.
func (b *Buffer) Set(x, y int, c Color) error {
	i, err := b.offset(x, y)
	if err != nil {
		return err
	}
	b.put(i, c)
	return nil
}

func (b *Buffer) at(i int) Color {
	s := b.Pix[i : i+b.Channels : i+b.Channels]
	c := Color{R: s[0], G: s[1], B: s[2]}
	if b.Channels == RGBA {
		c.A = s[3]
	}
	return c
}

func (b *Buffer) put(i int, c Color) {
	s := b.Pix[i : i+b.Channels : i+b.Channels]
	s[0] = c.R
	s[1] = c.G
	s[2] = c.B
	if b.Channels == RGBA {
		s[3] = c.A
	}
}

// Expand returns a 4-channel copy of a 3-channel buffer.
// The alpha channel of every pixel is zero.
// A 4-channel buffer is returned as a clone.
func (b *Buffer) Expand() *Buffer {
	if b.Channels == RGBA {
		return b.Clone()
	}
	dst := &Buffer{
		Pix:      make([]uint8, b.Width*b.Height*RGBA),
		Width:    b.Width,
		Height:   b.Height,
		Channels: RGBA,
	}
	for i, j := 0, 0; i < len(b.Pix); i, j = i+RGB, j+RGBA {
		copy(dst.Pix[j:j+RGB], b.Pix[i:i+RGB])
	}
	return dst
}

// Pack returns a 3-channel copy, dropping alpha.
func (b *Buffer) Pack() *Buffer {
	if b.Channels == RGB {
		return b.Clone()
	}
	dst := &Buffer{
		Pix:      make([]uint8, b.Width*b.Height*RGB),
		Width:    b.Width,
		Height:   b.Height,
		Channels: RGB,
	}
	for i, j := 0, 0; i < len(b.Pix); i, j = i+RGBA, j+RGB {
		copy(dst.Pix[j:j+RGB], b.Pix[i:i+RGB])
	}
	return dst
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Pix: pix, Width: b.Width, Height: b.Height, Channels: b.Channels}
}

// Equal compares dimensions, channel count and samples.
func (b *Buffer) Equal(o *Buffer) bool {
	if b.Width != o.Width || b.Height != o.Height || b.Channels != o.Channels {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Fill sets every pixel to c.
func (b *Buffer) Fill(c Color) {
	for i := 0; i < len(b.Pix); i += b.Channels {
		b.put(i, c)
	}
}

// image.Image ----------------------------------------------------------------

// ColorModel reports RGBA; the alpha channel of the buffer is not exposed.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// At returns an opaque color; pixels outside the buffer are transparent black.
func (b *Buffer) At(x, y int) color.Color {
	i, err := b.offset(x, y)
	if err != nil {
		return color.RGBA{}
	}
	c := b.at(i)
	return color.RGBA{c.R, c.G, c.B, 0xff}
}

func (b *Buffer) setColor(x, y int, c color.Color) {
	i, err := b.offset(x, y)
	if err != nil {
		return
	}
	r, g, bl, _ := color.RGBAModel.Convert(c).RGBA()
	b.put(i, Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(bl >> 8)})
}

// FromImage copies any image into a new buffer with the given channel count.
// Colours are taken without alpha; 4-channel buffers get A=0.
func FromImage(src image.Image, channels int) (*Buffer, error) {
	r := src.Bounds()
	dst, err := New(r.Dx(), r.Dy(), channels)
	if err != nil {
		return nil, err
	}

	if rgba, ok := src.(*image.RGBA); ok {
		for y := 0; y < dst.Height; y++ {
			for x := 0; x < dst.Width; x++ {
				i := rgba.PixOffset(r.Min.X+x, r.Min.Y+y)
				s := rgba.Pix[i : i+4 : i+4]
				dst.put((y*dst.Width+x)*channels, Color{R: s[0], G: s[1], B: s[2]})
			}
		}
		return dst, nil
	}

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.setColor(x-r.Min.X, y-r.Min.Y, src.At(x, y))
		}
	}
	return dst, nil
}
