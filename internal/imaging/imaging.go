package imaging

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// kernels maps names to the scalers from x/image/draw.
var kernels = map[string]draw.Scaler{
	"nearest":         draw.NearestNeighbor,
	"approx-bilinear": draw.ApproxBiLinear,
	"bilinear":        draw.BiLinear,
	"catmull-rom":     draw.CatmullRom,
}

// Kernels lists the names accepted by Scale.
func Kernels() []string {
	return []string{"nearest", "approx-bilinear", "bilinear", "catmull-rom"}
}

// Scale creates a copy of the given image, scaled to width x height with
// the named x/image/draw kernel.
func Scale(i image.Image, width, height int, kernel string) (*image.RGBA, error) {
	s, ok := kernels[strings.ToLower(kernel)]
	if !ok {
		return nil, fmt.Errorf("unknown kernel %q", kernel)
	}

	size := image.Rect(0, 0, width, height)
	dst := image.NewRGBA(size)
	// Src instead of Over: the destination starts out transparent and
	// must end up with the source colors only.
	s.Scale(dst, size, i, i.Bounds(), draw.Src, nil)
	return dst, nil
}

// ToRGBA copies any image into an RGBA image with the origin at 0,0.
func ToRGBA(i image.Image) *image.RGBA {
	b := i.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), i, b.Min, draw.Src)
	return dst
}
