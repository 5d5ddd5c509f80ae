// Package bmp reads and writes uncompressed 24-bit bitmap files.
//
// Pixels are decoded into a pixel.Buffer with R, G, B channel order and the
// top row first, regardless of the row order used in the file.
package bmp

import (
	"fmt"
	"strings"

	"github.com/akeil/bmpscale/pkg/pixel"
)

// DefaultMaxPixels is the largest image (width * height) decoded
// unless Options.MaxPixels says otherwise.
const DefaultMaxPixels = 1 << 28

// Image is a decoded bitmap with the headers it was read with.
type Image struct {
	File FileHeader
	Info InfoHeader
	// Extra holds the bytes between the info header and the pixel array.
	Extra  []byte
	Pixels *pixel.Buffer
}

// New creates a black, bottom-up bitmap with default headers.
func New(width, height int) (*Image, error) {
	buf, err := pixel.New(width, height, pixel.RGB)
	if err != nil {
		return nil, err
	}

	size := Padded.Stride(width) * height
	return &Image{
		File: FileHeader{
			Type:    Signature,
			Size:    uint32(HeaderLen + size),
			OffBits: HeaderLen,
		},
		Info: InfoHeader{
			Size:          InfoHeaderLen,
			Width:         int32(width),
			Height:        int32(height),
			Planes:        1,
			BitCount:      24,
			SizeImage:     uint32(size),
			XPelsPerMeter: 2835, // 72 DPI
			YPelsPerMeter: 2835,
		},
		Pixels: buf,
	}, nil
}

// Layout describes how pixel rows are stored.
type Layout int

const (
	// Padded rows are aligned to 4 bytes, as required by the BMP format.
	Padded Layout = iota
	// Packed rows have no padding. Some tools write bitmaps like this.
	Packed
)

// Stride returns the number of bytes per stored row.
func (l Layout) Stride(width int) int {
	n := width * bytesPerPixel
	if l == Packed {
		return n
	}
	return n + (4-n%4)%4
}

func (l Layout) String() string {
	switch l {
	case Padded:
		return "padded"
	case Packed:
		return "packed"
	default:
		return fmt.Sprintf("Layout(%d)", int(l))
	}
}

// ParseLayout reads a layout name as returned by Layout.String.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "padded", "":
		return Padded, nil
	case "packed":
		return Packed, nil
	default:
		return Padded, fmt.Errorf("unknown row layout %q", s)
	}
}

// SizeMode selects how the size fields are rewritten on encode.
type SizeMode int

const (
	// SizeExact sets SizeImage to the pixel array length and
	// Size to the resulting file size.
	SizeExact SizeMode = iota
	// SizeLegacy sets SizeImage to width*height*24 and adjusts Size by the
	// difference in packed pixel bytes. Files written this way carry an
	// inflated SizeImage; readers that trust the field over-read.
	SizeLegacy
)

func (m SizeMode) String() string {
	switch m {
	case SizeExact:
		return "exact"
	case SizeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("SizeMode(%d)", int(m))
	}
}

// ParseSizeMode reads a mode name as returned by SizeMode.String.
func ParseSizeMode(s string) (SizeMode, error) {
	switch strings.ToLower(s) {
	case "exact", "":
		return SizeExact, nil
	case "legacy":
		return SizeLegacy, nil
	default:
		return SizeExact, fmt.Errorf("unknown size mode %q", s)
	}
}

// Options control decoding and encoding.
// The zero value reads and writes padded rows with exact size fields.
type Options struct {
	Layout    Layout
	SizeMode  SizeMode
	MaxPixels int
}

func (o Options) maxPixels() int64 {
	if o.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return int64(o.MaxPixels)
}
