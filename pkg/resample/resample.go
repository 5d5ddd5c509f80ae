// Package resample scales pixel buffers.
//
// The default algorithm interpolates every color channel bilinearly between
// the 2x2 source pixels around the mapped destination coordinate.
package resample

import (
	"fmt"
	"math"
	"strings"

	"github.com/akeil/bmpscale/internal/errors"
	"github.com/akeil/bmpscale/internal/imaging"
	"github.com/akeil/bmpscale/pkg/pixel"
)

// colorChannels are interpolated; a fourth (alpha) channel is left at zero.
const colorChannels = 3

// DefaultMaxPixels limits the destination size unless the Resampler says otherwise.
const DefaultMaxPixels = 1 << 28

// Mapping selects how destination coordinates map onto the source grid.
type Mapping int

const (
	// AlignCorners maps the first and last destination pixel of a row or
	// column onto the first and last source pixel.
	AlignCorners Mapping = iota
	// Stretch uses gx = dx/dw * (sw-1). The last source row and column are
	// never reached exactly.
	Stretch
)

func (m Mapping) String() string {
	switch m {
	case AlignCorners:
		return "align-corners"
	case Stretch:
		return "stretch"
	default:
		return fmt.Sprintf("Mapping(%d)", int(m))
	}
}

// ParseMapping reads a mapping name as returned by Mapping.String.
func ParseMapping(s string) (Mapping, error) {
	switch strings.ToLower(s) {
	case "align-corners", "":
		return AlignCorners, nil
	case "stretch":
		return Stretch, nil
	default:
		return AlignCorners, fmt.Errorf("unknown mapping %q", s)
	}
}

// source returns the source coordinate for destination coordinate d.
func (m Mapping) source(d, dstLen, srcLen int) float64 {
	switch m {
	case Stretch:
		return float64(d) / float64(dstLen) * float64(srcLen-1)
	default:
		if dstLen <= 1 {
			return 0
		}
		// multiply before dividing so that d == dstLen-1 hits srcLen-1 exactly
		return float64(d) * float64(srcLen-1) / float64(dstLen-1)
	}
}

// Resampler holds the settings for bilinear resizing.
// The zero value uses AlignCorners and DefaultMaxPixels.
type Resampler struct {
	Mapping   Mapping
	MaxPixels int
}

// Resize scales src with the default settings.
func Resize(src *pixel.Buffer, scaleX, scaleY float64) (*pixel.Buffer, error) {
	return Resampler{}.Resize(src, scaleX, scaleY)
}

// Dimensions returns floor(width*scaleX) x floor(height*scaleY).
// Scales that produce an empty or unrepresentable image are rejected.
func Dimensions(width, height int, scaleX, scaleY float64) (int, int, error) {
	w, err := scaled(width, scaleX)
	if err != nil {
		return 0, 0, err
	}
	h, err := scaled(height, scaleY)
	if err != nil {
		return 0, 0, err
	}
	return w, h, nil
}

func scaled(n int, scale float64) (int, error) {
	if math.IsNaN(scale) || math.IsInf(scale, 0) || scale <= 0 {
		return 0, errors.New(errors.InvalidScale, "scale factor %v", scale)
	}
	v := math.Floor(float64(n) * scale)
	if v < 1 {
		return 0, errors.New(errors.InvalidScale, "scale factor %v shrinks %v pixels to nothing", scale, n)
	}
	if v > math.MaxInt32 {
		return 0, errors.New(errors.InvalidScale, "scale factor %v is too large", scale)
	}
	return int(v), nil
}

// Resize creates a new buffer of floor(w*scaleX) x floor(h*scaleY) pixels.
//
// Every destination pixel is visited once in row-major order. The result has
// the same channel count as src; an alpha channel is always zero.
func (r Resampler) Resize(src *pixel.Buffer, scaleX, scaleY float64) (*pixel.Buffer, error) {
	err := src.Validate()
	if err != nil {
		return nil, err
	}

	dw, dh, err := Dimensions(src.Width, src.Height, scaleX, scaleY)
	if err != nil {
		return nil, err
	}
	if int64(dw)*int64(dh) > r.maxPixels() {
		return nil, errors.New(errors.AllocationFailure, "%vx%v exceeds the limit of %v pixels",
			dw, dh, r.maxPixels())
	}

	dst, err := pixel.New(dw, dh, src.Channels)
	if err != nil {
		return nil, err
	}

	sw, sh := src.Width, src.Height
	ch := src.Channels
	for dy := 0; dy < dh; dy++ {
		gy := r.Mapping.source(dy, dh, sh)
		gyi := int(gy)
		ty := gy - float64(gyi)
		row0 := imaging.Clamp(gyi, sh) * sw
		row1 := imaging.Clamp(gyi+1, sh) * sw

		for dx := 0; dx < dw; dx++ {
			gx := r.Mapping.source(dx, dw, sw)
			gxi := int(gx)
			tx := gx - float64(gxi)
			x0 := imaging.Clamp(gxi, sw)
			x1 := imaging.Clamp(gxi+1, sw)

			i00 := (row0 + x0) * ch
			i10 := (row0 + x1) * ch
			i01 := (row1 + x0) * ch
			i11 := (row1 + x1) * ch
			o := (dy*dw + dx) * ch

			for c := 0; c < colorChannels; c++ {
				v := imaging.Blerp(
					float64(src.Pix[i00+c]),
					float64(src.Pix[i10+c]),
					float64(src.Pix[i01+c]),
					float64(src.Pix[i11+c]),
					tx, ty)
				dst.Pix[o+c] = truncate(v)
			}
		}
	}

	return dst, nil
}

func (r Resampler) maxPixels() int64 {
	if r.MaxPixels <= 0 {
		return DefaultMaxPixels
	}
	return int64(r.MaxPixels)
}

// truncate drops the fraction; it does not round.
func truncate(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
