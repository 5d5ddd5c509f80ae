package resample

import (
	"fmt"
	"strings"

	"github.com/akeil/bmpscale/internal/errors"
	"github.com/akeil/bmpscale/internal/imaging"
	"github.com/akeil/bmpscale/pkg/pixel"
)

// Blerp is the name of the built-in bilinear algorithm.
// All other method names refer to x/image/draw kernels.
const Blerp = "blerp"

// Methods lists the accepted method names, default first.
func Methods() []string {
	return append([]string{Blerp}, imaging.Kernels()...)
}

// CheckMethod reports an error for unknown method names.
func CheckMethod(method string) error {
	m := strings.ToLower(method)
	for _, name := range Methods() {
		if m == name {
			return nil
		}
	}
	return fmt.Errorf("unknown method %q, choose one of %v", method, strings.Join(Methods(), ", "))
}

// Scale resizes src with the named method.
//
// An empty method name selects Blerp. The x/image kernels ignore the
// Mapping setting; their output gets a zero alpha channel like Blerp.
func (r Resampler) Scale(src *pixel.Buffer, scaleX, scaleY float64, method string) (*pixel.Buffer, error) {
	if method == "" || strings.EqualFold(method, Blerp) {
		return r.Resize(src, scaleX, scaleY)
	}

	err := CheckMethod(method)
	if err != nil {
		return nil, err
	}
	err = src.Validate()
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

	scaled, err := imaging.Scale(src, dw, dh, method)
	if err != nil {
		return nil, err
	}
	return pixel.FromImage(scaled, src.Channels)
}
