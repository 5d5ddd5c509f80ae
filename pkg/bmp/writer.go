package bmp

import (
	"bufio"
	"bytes"
	"io"
	"math"

	"github.com/akeil/bmpscale/internal/errors"
	"github.com/akeil/bmpscale/internal/fs"
	"github.com/akeil/bmpscale/internal/logging"
	"github.com/akeil/bmpscale/pkg/pixel"
)

// Encode writes the image to path.
//
// The file is created only if encoding succeeds; an existing file at path is
// replaced.
func Encode(path string, img *Image, opts Options) error {
	err := fs.WriteAtomic(path, func(w io.Writer) error {
		return Write(w, img, opts)
	})
	if err != nil {
		if errors.KindOf(err) == errors.Unknown {
			err = errors.Wrap(errors.IOError, err, "write")
		}
		return errors.WithPath(err, path)
	}

	logging.Debug("Encoded %q: %vx%v", path, img.Pixels.Width, img.Pixels.Height)
	return nil
}

// MarshalBinary returns the complete bitmap file with default options.
func (img *Image) MarshalBinary() ([]byte, error) {
	buf := &bytes.Buffer{}
	err := Write(buf, img, Options{})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes the image to w.
//
// Width and height are taken from the pixel buffer, the row order from the
// sign of the height in img.Info. The headers of img are not modified.
func Write(w io.Writer, img *Image, opts Options) error {
	err := img.Validate()
	if err != nil {
		return err
	}
	if opts.SizeMode == SizeLegacy {
		err = checkLegacySize(img.Pixels.Width, img.Pixels.Height)
		if err != nil {
			return err
		}
	}

	fh, ih := Headers(img, opts)

	bw := bufio.NewWriter(w)
	err = writeHeaders(bw, &fh, &ih)
	if err != nil {
		return err
	}

	_, err = bw.Write(img.Extra)
	if err != nil {
		return err
	}
	gap := int(fh.OffBits) - HeaderLen - len(img.Extra)
	_, err = bw.Write(make([]byte, gap))
	if err != nil {
		return err
	}

	err = writePixels(bw, img.Pixels, opts.Layout, ih.TopDown())
	if err != nil {
		return err
	}

	return bw.Flush()
}

// Headers returns the headers Write would produce for img.
//
// In SizeExact mode, a SizeImage of zero is kept as zero.
func Headers(img *Image, opts Options) (FileHeader, InfoHeader) {
	fh := img.File
	ih := img.Info

	width := img.Pixels.Width
	height := img.Pixels.Height
	size := opts.Layout.Stride(width) * height

	ih.Width = int32(width)
	if img.Info.TopDown() {
		ih.Height = -int32(height)
	} else {
		ih.Height = int32(height)
	}

	switch opts.SizeMode {
	case SizeLegacy:
		packed := int64(width * height * bytesPerPixel)
		fh.Size = uint32(int64(img.File.Size) + packed - int64(img.Info.SizeImage))
		ih.SizeImage = uint32(width * height * 24)
	default:
		if img.Info.SizeImage != 0 {
			ih.SizeImage = uint32(size)
		}
		fh.Size = fh.OffBits + uint32(size)
	}

	return fh, ih
}

// checkLegacySize rejects images whose width*height*24 does not fit the
// 32-bit SizeImage field.
func checkLegacySize(width, height int) error {
	n := int64(width) * int64(height) * 24
	if n > math.MaxUint32 {
		return errors.New(errors.MalformedHeader, "legacy image size %v for %vx%v does not fit 32 bits",
			n, width, height)
	}
	return nil
}

func writeHeaders(w io.Writer, fh *FileHeader, ih *InfoHeader) error {
	b, err := fh.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	if err != nil {
		return err
	}

	b, err = ih.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// writePixels writes the rows of buf in B,G,R order, padded per layout.
func writePixels(w io.Writer, buf *pixel.Buffer, l Layout, topDown bool) error {
	rowLen := buf.Width * bytesPerPixel
	row := make([]byte, l.Stride(buf.Width))

	src := buf
	if buf.Channels != pixel.RGB {
		src = buf.Pack()
	}

	for i := 0; i < buf.Height; i++ {
		y := buf.Height - 1 - i
		if topDown {
			y = i
		}
		swapRow(row[:rowLen], src.Pix[y*rowLen:(y+1)*rowLen])
		_, err := w.Write(row)
		if err != nil {
			return err
		}
	}

	return nil
}
