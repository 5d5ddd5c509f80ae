package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/akeil/bmpscale"
)

func doResize(cfg bmpscale.Config, o overrides, inputs []string, out, dir string) error {
	opts, err := options(cfg, o)
	if err != nil {
		return err
	}

	jobs, err := resizeJobs(inputs, out, dir)
	if err != nil {
		return err
	}

	for _, j := range jobs {
		fmt.Printf("%v resize %q\n", ellipsis, j.In)
	}

	return bmpscale.RunAll(jobs, opts, func(j bmpscale.Job, err error) {
		if err != nil {
			fmt.Printf("%v Failed to resize %q: %v\n", crossmark, j.In, err)
			return
		}
		fmt.Printf("%v %q saved as %q.\n", checkmark, j.In, j.Out)
	})
}

// resizeJobs pairs each input with its output path.
func resizeJobs(inputs []string, out, dir string) ([]bmpscale.Job, error) {
	if out != "" {
		if len(inputs) != 1 {
			return nil, fmt.Errorf("--output requires exactly one input, got %d", len(inputs))
		}
		if dir != "" {
			return nil, fmt.Errorf("--output and --dir are mutually exclusive")
		}
		return []bmpscale.Job{{In: inputs[0], Out: out}}, nil
	}

	jobs := make([]bmpscale.Job, 0, len(inputs))
	seen := make(map[string]bool)
	for _, in := range inputs {
		p := outputPath(in, dir, ".scaled.bmp")
		if seen[p] {
			return nil, fmt.Errorf("inputs map to the same output %q", p)
		}
		seen[p] = true
		jobs = append(jobs, bmpscale.Job{In: in, Out: p})
	}
	return jobs, nil
}

// outputPath derives an output name from the input path.
// The result is placed in dir, or next to the input if dir is empty.
func outputPath(in, dir, suffix string) string {
	base := filepath.Base(in)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Dir(in)
	}
	return filepath.Join(dir, stem+suffix)
}
