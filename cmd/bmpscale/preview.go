package main

import (
	"fmt"
	"io"

	"github.com/akeil/bmpscale"
	"github.com/akeil/bmpscale/internal/fs"
	"github.com/akeil/bmpscale/pkg/render"
)

func doPreview(cfg bmpscale.Config, o overrides, in, out string) error {
	opts, err := options(cfg, o)
	if err != nil {
		return err
	}
	if out == "" {
		out = outputPath(in, "", ".png")
	}

	src, err := bmpscale.Open(in, opts)
	if err != nil {
		return err
	}
	res, err := bmpscale.Scale(src, opts)
	if err != nil {
		return err
	}

	err = fs.WriteAtomic(out, func(w io.Writer) error {
		return render.PNG(res.Pixels, w)
	})
	if err != nil {
		return bmpscale.WrapError(bmpscale.IOError, err, out)
	}

	fmt.Printf("%v preview saved as %q.\n", checkmark, out)
	return nil
}
