// Package bmpscale resizes uncompressed 24-bit bitmap files.
//
// A run decodes the input file, expands the pixels to four channels,
// resamples them and encodes the result to the output path:
//
//  bytes -> bmp.Decode -> pixel.Buffer -> resample -> pixel.Buffer -> bmp.Encode -> bytes
package bmpscale

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/akeil/bmpscale/internal/errors"
	"github.com/akeil/bmpscale/internal/logging"
	"github.com/akeil/bmpscale/pkg/bmp"
	"github.com/akeil/bmpscale/pkg/pixel"
	"github.com/akeil/bmpscale/pkg/resample"
)

// Options for a single run.
type Options struct {
	ScaleX float64
	ScaleY float64
	// Method is resample.Blerp or one of the x/image kernels.
	Method  string
	Mapping resample.Mapping
	// Layout applies to the input and the output file.
	Layout    bmp.Layout
	SizeMode  bmp.SizeMode
	MaxPixels int
}

// DefaultOptions keep the image size.
func DefaultOptions() Options {
	return Options{
		ScaleX: 1,
		ScaleY: 1,
		Method: resample.Blerp,
	}
}

func (o Options) codec() bmp.Options {
	return bmp.Options{
		Layout:    o.Layout,
		SizeMode:  o.SizeMode,
		MaxPixels: o.MaxPixels,
	}
}

func (o Options) resampler() resample.Resampler {
	return resample.Resampler{
		Mapping:   o.Mapping,
		MaxPixels: o.MaxPixels,
	}
}

// Validate checks scale factors and method before any file is touched.
func (o Options) Validate() error {
	if !(o.ScaleX > 0) || !(o.ScaleY > 0) {
		return errors.New(errors.InvalidScale, "scale factors must be positive, got %vx%v", o.ScaleX, o.ScaleY)
	}
	err := resample.CheckMethod(o.method())
	if err != nil {
		return err
	}
	return nil
}

func (o Options) method() string {
	if o.Method == "" {
		return resample.Blerp
	}
	return o.Method
}

// Open decodes the bitmap at path with the codec settings from opts.
func Open(path string, opts Options) (*bmp.Image, error) {
	return bmp.Decode(path, opts.codec())
}

// Scale returns a resized copy of img.
//
// img itself is left unchanged; headers and extra bytes are carried over
// to the copy.
func Scale(img *bmp.Image, opts Options) (*bmp.Image, error) {
	err := opts.Validate()
	if err != nil {
		return nil, err
	}
	if img == nil || img.Pixels == nil {
		return nil, errors.New(errors.MalformedPixelData, "image has no pixels")
	}

	dst, err := resize(img.Pixels.Expand(), opts)
	if err != nil {
		return nil, err
	}

	out := &bmp.Image{
		File:   img.File,
		Info:   img.Info,
		Pixels: dst,
	}
	if len(img.Extra) > 0 {
		out.Extra = append([]byte(nil), img.Extra...)
	}
	return out, nil
}

func resize(src *pixel.Buffer, opts Options) (*pixel.Buffer, error) {
	dst, err := opts.resampler().Scale(src, opts.ScaleX, opts.ScaleY, opts.method())
	if err != nil {
		return nil, err
	}
	logging.Debug("Resampled from %vx%v to %vx%v", src.Width, src.Height, dst.Width, dst.Height)
	return dst, nil
}

// Run resizes the bitmap at in and writes the result to out.
//
// out is only created if every step succeeds. in and out may be the same path.
func Run(in, out string, opts Options) error {
	err := opts.Validate()
	if err != nil {
		return errors.WithPath(err, in)
	}

	logging.Info("Resize %q -> %q by %vx%v (%v, %v)", in, out, opts.ScaleX, opts.ScaleY,
		opts.method(), opts.Mapping)

	img, err := Open(in, opts)
	if err != nil {
		return err
	}

	// release the 3-channel buffer before the output is allocated
	src := img.Pixels.Expand()
	img.Pixels = nil

	dst, err := resize(src, opts)
	if err != nil {
		return errors.WithPath(err, in)
	}

	img.Pixels = dst
	return bmp.Encode(out, img, opts.codec())
}

// Job is a single input/output pair.
type Job struct {
	In  string
	Out string
}

func (j Job) String() string {
	return fmt.Sprintf("%v -> %v", j.In, j.Out)
}

// RunAll runs one pipeline per job, concurrently.
//
// Every job is attempted; each failure is reported through the given callback
// (may be nil) and the first error is returned.
func RunAll(jobs []Job, opts Options, done func(Job, error)) error {
	err := opts.Validate()
	if err != nil {
		return err
	}

	var group errgroup.Group
	for _, j := range jobs {
		job := j // scope
		group.Go(func() error {
			err := Run(job.In, job.Out, opts)
			if err != nil {
				logging.Debug("Failed %v: %v", job, err)
			}
			if done != nil {
				done(job, err)
			}
			return err
		})
	}
	return group.Wait()
}
