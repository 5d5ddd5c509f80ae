// Package render creates previews of images: PNG files and a PDF report
// comparing images before and after resizing.
package render

import (
	"image"
	"image/png"
	"io"

	"github.com/akeil/bmpscale/internal/imaging"
)

// PNG writes the given image as PNG data to w.
func PNG(img image.Image, w io.Writer) error {
	// The encoder has a fast path for *image.RGBA only.
	if _, ok := img.(*image.RGBA); !ok {
		img = imaging.ToRGBA(img)
	}
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}
