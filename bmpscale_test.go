package bmpscale

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/bmpscale/internal/logging"
	"github.com/akeil/bmpscale/pkg/bmp"
	"github.com/akeil/bmpscale/pkg/pixel"
)

// writeBitmap creates a bitmap with a color pattern and returns its path.
func writeBitmap(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img, err := bmp.New(w, h)
	require.NoError(t, err)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := pixel.Color{R: uint8(x * 29), G: uint8(y * 31), B: uint8(255 - x*y)}
			require.NoError(t, img.Pixels.Set(x, y, c))
		}
	}

	path := filepath.Join(dir, name)
	require.NoError(t, bmp.Encode(path, img, bmp.Options{}))
	return path
}

func TestRunIdentity(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 5, 3)
	out := filepath.Join(dir, "out.bmp")

	require.NoError(t, Run(in, out, DefaultOptions()))

	expected, err := os.ReadFile(in)
	require.NoError(t, err)
	actual, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, expected, actual)
}

func TestRunScale(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 5, 3)
	out := filepath.Join(dir, "out.bmp")

	opts := DefaultOptions()
	opts.ScaleX = 2
	opts.ScaleY = 1.5
	require.NoError(t, Run(in, out, opts))

	img, err := bmp.Decode(out, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 10, img.Pixels.Width)
	assert.Equal(t, 4, img.Pixels.Height)
	assert.Equal(t, int32(10), img.Info.Width)
	assert.Equal(t, int32(4), img.Info.Height)
	assert.Equal(t, uint32(32*4), img.Info.SizeImage) // 30 bytes per row, padded to 32

	src, err := bmp.Decode(in, bmp.Options{})
	require.NoError(t, err)
	for _, p := range [][4]int{{0, 0, 0, 0}, {4, 0, 9, 0}, {0, 2, 0, 3}, {4, 2, 9, 3}} {
		expected, err := src.Pixels.Get(p[0], p[1])
		require.NoError(t, err)
		actual, err := img.Pixels.Get(p[2], p[3])
		require.NoError(t, err)
		assert.Equal(t, expected, actual, "corner %v", p)
	}
}

func TestRunLegacySize(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 4, 2)
	out := filepath.Join(dir, "out.bmp")

	opts := DefaultOptions()
	opts.ScaleX = 0.5
	opts.SizeMode = bmp.SizeLegacy
	require.NoError(t, Run(in, out, opts))

	img, err := bmp.Decode(out, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, uint32(2*2*24), img.Info.SizeImage)
}

func TestRunBadSignature(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.bmp")
	require.NoError(t, os.WriteFile(in, []byte("GIF89a......................................................"), 0644))
	out := filepath.Join(dir, "out.bmp")

	err := Run(in, out, DefaultOptions())
	assert.True(t, IsBadSignature(err))
	assert.Equal(t, in, PathOf(err))

	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no output must be written")
}

func TestRunMissing(t *testing.T) {
	dir := t.TempDir()
	err := Run(filepath.Join(dir, "nope.bmp"), filepath.Join(dir, "out.bmp"), DefaultOptions())
	assert.True(t, IsNotFound(err))
	assert.Equal(t, FileNotFound, KindOf(err))
}

func TestRunInvalidScale(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 2, 2)

	opts := DefaultOptions()
	opts.ScaleX = 0.1 // 2 * 0.1 < 1 pixel
	err := Run(in, filepath.Join(dir, "out.bmp"), opts)
	assert.Equal(t, InvalidScale, KindOf(err))
	assert.Equal(t, in, PathOf(err))

	opts.ScaleX = -1
	err = Run(in, filepath.Join(dir, "out.bmp"), opts)
	assert.Equal(t, InvalidScale, KindOf(err))

	opts = DefaultOptions()
	opts.Method = "sinc"
	err = Run(in, filepath.Join(dir, "out.bmp"), opts)
	assert.Error(t, err)
}

func TestRunAll(t *testing.T) {
	dir := t.TempDir()
	jobs := []Job{
		{In: writeBitmap(t, dir, "a.bmp", 3, 3), Out: filepath.Join(dir, "a.out.bmp")},
		{In: writeBitmap(t, dir, "b.bmp", 3, 2), Out: filepath.Join(dir, "b.out.bmp")},
		{In: filepath.Join(dir, "missing.bmp"), Out: filepath.Join(dir, "c.out.bmp")},
	}

	var mx sync.Mutex
	failed := make(map[string]error)
	opts := DefaultOptions()
	opts.ScaleX = 2
	err := RunAll(jobs, opts, func(j Job, err error) {
		mx.Lock()
		defer mx.Unlock()
		if err != nil {
			failed[j.In] = err
		}
	})
	assert.True(t, IsNotFound(err))
	assert.Len(t, failed, 1)

	// the other jobs ran regardless
	for _, j := range jobs[:2] {
		img, err := bmp.Decode(j.Out, bmp.Options{})
		require.NoError(t, err, j.Out)
		assert.Equal(t, 6, img.Pixels.Width)
	}
}

func TestXImageKernel(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 4, 4)
	out := filepath.Join(dir, "out.bmp")

	opts := DefaultOptions()
	opts.ScaleX = 0.5
	opts.ScaleY = 0.5
	opts.Method = "nearest"
	require.NoError(t, Run(in, out, opts))

	img, err := bmp.Decode(out, bmp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, img.Pixels.Width)
	assert.Equal(t, 2, img.Pixels.Height)
}

func TestScaleInMemory(t *testing.T) {
	dir := t.TempDir()
	in := writeBitmap(t, dir, "in.bmp", 4, 3)

	img, err := Open(in, DefaultOptions())
	require.NoError(t, err)
	before := img.Pixels.Clone()

	opts := DefaultOptions()
	opts.ScaleX = 0.5
	opts.ScaleY = 2
	res, err := Scale(img, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Pixels.Width)
	assert.Equal(t, 6, res.Pixels.Height)
	assert.True(t, before.Equal(img.Pixels), "source is left unchanged")

	_, err = Scale(&bmp.Image{}, opts)
	assert.Error(t, err)
}

func TestRunAllLeavesReportingToCallback(t *testing.T) {
	var log bytes.Buffer
	logging.SetLevel(logging.LevelWarning)
	logging.SetOutput(&log)
	defer logging.SetOutput(os.Stderr)

	dir := t.TempDir()
	jobs := []Job{{In: filepath.Join(dir, "missing.bmp"), Out: filepath.Join(dir, "out.bmp")}}

	calls := 0
	err := RunAll(jobs, DefaultOptions(), func(j Job, err error) {
		calls++
	})
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, log.String(), "failures are not logged at the default level")
}
