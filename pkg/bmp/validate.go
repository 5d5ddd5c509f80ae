package bmp

import (
	"github.com/akeil/bmpscale/internal/errors"
)

// maxExtra limits the bytes kept between the info header and the pixel array.
// Real files store at most a larger DIB header and color masks there.
const maxExtra = 1 << 20

// Validate checks the signature and the pixel offset.
func (h *FileHeader) Validate() error {
	if h.Type != Signature {
		return errors.New(errors.BadSignature, "got %q, want %q", h.Type[:], Signature[:])
	}

	if h.OffBits < HeaderLen {
		return errors.New(errors.MalformedHeader, "pixel offset %v overlaps headers", h.OffBits)
	}
	if h.OffBits-HeaderLen > maxExtra {
		return errors.New(errors.MalformedHeader, "pixel offset %v too large", h.OffBits)
	}

	return nil
}

// Validate checks that the header describes an uncompressed 24-bit bitmap.
func (h *InfoHeader) Validate() error {
	if h.Size < InfoHeaderLen {
		return errors.New(errors.Unsupported, "info header size %v", h.Size)
	}

	if h.Planes != 1 {
		return errors.New(errors.Unsupported, "%v color planes", h.Planes)
	}

	if h.BitCount != 24 {
		return errors.New(errors.Unsupported, "%v bits per pixel, only 24 is supported", h.BitCount)
	}

	if h.Compression != 0 {
		return errors.New(errors.Unsupported, "compression method %v", h.Compression)
	}

	if h.Width <= 0 {
		return errors.New(errors.MalformedHeader, "invalid width %v", h.Width)
	}

	// -MinInt32 is not representable
	if h.Height == 0 || h.Height == -1<<31 {
		return errors.New(errors.MalformedHeader, "invalid height %v", h.Height)
	}

	return nil
}

// Validate checks both headers and the pixel buffer of the image.
func (img *Image) Validate() error {
	err := img.File.Validate()
	if err != nil {
		return err
	}

	err = img.Info.Validate()
	if err != nil {
		return err
	}

	if img.Pixels == nil {
		return errors.New(errors.MalformedPixelData, "image has no pixels")
	}
	err = img.Pixels.Validate()
	if err != nil {
		return err
	}

	if len(img.Extra) > int(img.File.OffBits-HeaderLen) {
		return errors.New(errors.MalformedHeader, "%v extra header bytes do not fit before offset %v",
			len(img.Extra), img.File.OffBits)
	}

	return nil
}
