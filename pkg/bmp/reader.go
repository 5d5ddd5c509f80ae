package bmp

import (
	"bufio"
	e "errors"
	"io"
	"os"

	"github.com/akeil/bmpscale/internal/errors"
	"github.com/akeil/bmpscale/internal/logging"
	"github.com/akeil/bmpscale/pkg/pixel"
)

// Decode reads the bitmap file at path.
func Decode(path string, opts Options) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WithPath(errors.Wrap(errors.FileNotFound, err, ""), path)
		}
		return nil, errors.WithPath(errors.Wrap(errors.IOError, err, "open"), path)
	}
	defer f.Close()

	img, err := Read(bufio.NewReader(f), opts)
	if err != nil {
		return nil, errors.WithPath(err, path)
	}

	w, h := img.Info.Dimensions()
	logging.Debug("Decoded %q: %vx%v, %v bpp, offset %v, %v bytes",
		path, w, h, img.Info.BitCount, img.File.OffBits, img.Info.SizeImage)
	return img, nil
}

// Read decodes a bitmap from r.
//
// The signature is checked before anything else is read.
func Read(r io.Reader, opts Options) (*Image, error) {
	var hdr [HeaderLen]byte

	_, err := io.ReadFull(r, hdr[:2])
	if err != nil {
		if isShort(err) {
			return nil, errors.New(errors.BadSignature, "file too short for a signature")
		}
		return nil, errors.Wrap(errors.IOError, err, "read signature")
	}
	if hdr[0] != Signature[0] || hdr[1] != Signature[1] {
		return nil, errors.New(errors.BadSignature, "got %q, want %q", hdr[:2], Signature[:])
	}

	_, err = io.ReadFull(r, hdr[2:])
	if err != nil {
		return nil, readErr(err, "headers")
	}

	img := &Image{}
	err = img.File.UnmarshalBinary(hdr[:FileHeaderLen])
	if err != nil {
		return nil, errors.Wrap(errors.MalformedHeader, err, "file header")
	}
	err = img.Info.UnmarshalBinary(hdr[FileHeaderLen:])
	if err != nil {
		return nil, errors.Wrap(errors.MalformedHeader, err, "info header")
	}

	err = img.File.Validate()
	if err != nil {
		return nil, err
	}
	err = img.Info.Validate()
	if err != nil {
		return nil, err
	}

	width, height := img.Info.Dimensions()
	if int64(width)*int64(height) > opts.maxPixels() {
		return nil, errors.New(errors.AllocationFailure, "%vx%v exceeds the limit of %v pixels",
			width, height, opts.maxPixels())
	}

	if n := img.File.OffBits - HeaderLen; n > 0 {
		img.Extra = make([]byte, n)
		_, err = io.ReadFull(r, img.Extra)
		if err != nil {
			return nil, readErr(err, "extra header bytes")
		}
	}

	stride := opts.Layout.Stride(width)
	rowLen := width * bytesPerPixel
	size := stride * height
	err = checkSizeImage(img.Info.SizeImage, size, opts.Layout)
	if err != nil {
		return nil, err
	}

	data := make([]byte, size)
	_, err = io.ReadFull(r, data)
	if err != nil {
		return nil, readErr(err, "pixel data")
	}

	buf, err := pixel.New(width, height, pixel.RGB)
	if err != nil {
		return nil, err
	}

	topDown := img.Info.TopDown()
	for i := 0; i < height; i++ {
		y := height - 1 - i
		if topDown {
			y = i
		}
		src := data[i*stride : i*stride+rowLen]
		dst := buf.Pix[y*rowLen : (y+1)*rowLen]
		swapRow(dst, src)
	}
	img.Pixels = buf

	return img, nil
}

// checkSizeImage compares the declared pixel array size with the size
// required by the image dimensions. Zero is allowed for uncompressed bitmaps.
func checkSizeImage(declared uint32, required int, l Layout) error {
	if declared == 0 {
		return nil
	}
	if l == Packed && declared%bytesPerPixel != 0 {
		return errors.New(errors.MalformedPixelData, "pixel data size %v is not a multiple of %v",
			declared, bytesPerPixel)
	}
	if int64(declared) < int64(required) {
		return errors.New(errors.MalformedPixelData, "pixel data size %v, image needs %v",
			declared, required)
	}
	if int64(declared) > int64(required) {
		logging.Debug("Declared pixel data size %v exceeds the %v bytes needed", declared, required)
	}
	return nil
}

// swapRow copies pixels while swapping the first and third byte of each.
// It converts B,G,R to R,G,B and back.
func swapRow(dst, src []byte) {
	for x := 0; x+2 < len(src); x += bytesPerPixel {
		dst[x] = src[x+2]
		dst[x+1] = src[x+1]
		dst[x+2] = src[x]
	}
}

func isShort(err error) bool {
	return e.Is(err, io.EOF) || e.Is(err, io.ErrUnexpectedEOF)
}

func readErr(err error, what string) error {
	if isShort(err) {
		return errors.Wrap(errors.TruncatedFile, err, what)
	}
	return errors.Wrap(errors.IOError, err, what)
}
