package main

import (
	"fmt"

	"github.com/akeil/bmpscale"
	"github.com/akeil/bmpscale/pkg/bmp"
)

// doInfo prints the headers of each file. Files that cannot be read are
// reported and the first error is returned after all files were shown.
func doInfo(cfg bmpscale.Config, paths []string) error {
	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	var first error
	for i, path := range paths {
		if i > 0 {
			fmt.Println()
		}
		img, err := bmpscale.Open(path, opts)
		if err != nil {
			fmt.Printf("%v %v\n", crossmark, err)
			if first == nil {
				first = err
			}
			continue
		}
		showInfo(path, img, opts.Layout)
	}
	return first
}

func showInfo(path string, img *bmp.Image, l bmp.Layout) {
	w, h := img.Info.Dimensions()
	order := "bottom-up"
	if img.Info.TopDown() {
		order = "top-down"
	}
	stride := l.Stride(w)

	fmt.Printf("Filename:\t%v\n", path)
	fmt.Printf("Filesize:\t%v bytes\n", img.File.Size)
	fmt.Printf("Width:\t\t%v px\n", w)
	fmt.Printf("Height:\t\t%v px (%v)\n", h, order)
	fmt.Printf("BitCount:\t%v bits\n", img.Info.BitCount)
	fmt.Printf("PixelOffset:\t%v bytes\n", img.File.OffBits)
	fmt.Printf("ImageSize:\t%v bytes\n", img.Info.SizeImage)
	fmt.Printf("PixelCount:\t%v pixels\n", w*h)
	fmt.Printf("Stride:\t\t%v bytes\n", stride)
	fmt.Printf("Padding:\t%v bytes\n", stride-w*3)
	fmt.Printf("Resolution:\t%v x %v px/m\n", img.Info.XPelsPerMeter, img.Info.YPelsPerMeter)
	if len(img.Extra) > 0 {
		fmt.Printf("Extra:\t\t%v bytes\n", len(img.Extra))
	}
}
