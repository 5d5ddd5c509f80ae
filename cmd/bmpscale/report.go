package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/akeil/bmpscale"
	"github.com/akeil/bmpscale/internal/fs"
	"github.com/akeil/bmpscale/pkg/render"
)

func doReport(cfg bmpscale.Config, o overrides, inputs []string, out string) error {
	opts, err := options(cfg, o)
	if err != nil {
		return err
	}

	entries := make([]render.Entry, 0, len(inputs))
	for _, in := range inputs {
		fmt.Printf("%v resize %q\n", ellipsis, in)
		src, err := bmpscale.Open(in, opts)
		if err != nil {
			fmt.Printf("%v Failed to read %q: %v\n", crossmark, in, err)
			return err
		}
		res, err := bmpscale.Scale(src, opts)
		if err != nil {
			fmt.Printf("%v Failed to resize %q: %v\n", crossmark, in, err)
			return err
		}
		entries = append(entries, render.Entry{
			Name:   filepath.Base(in),
			Source: src.Pixels,
			Result: res.Pixels,
			Note:   describe(opts),
		})
	}

	fmt.Printf("%v render %q\n", ellipsis, out)
	err = fs.WriteAtomic(out, func(w io.Writer) error {
		return render.Report(entries, w)
	})
	if err != nil {
		fmt.Printf("%v Failed to render %q: %v\n", crossmark, out, err)
		return bmpscale.WrapError(bmpscale.IOError, err, out)
	}

	fmt.Printf("%v report saved as %q.\n", checkmark, out)
	return nil
}

func describe(o bmpscale.Options) string {
	method := o.Method
	if method == "" {
		method = "blerp"
	}
	return fmt.Sprintf("scale %v x %v, method %v, mapping %v", o.ScaleX, o.ScaleY, method, o.Mapping)
}
