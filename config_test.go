package bmpscale

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/bmpscale/pkg/bmp"
	"github.com/akeil/bmpscale/pkg/resample"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bmpscale.yaml")
	data := `
scale:
  x: 2
  y: 0.5
mapping: stretch
size_mode: legacy
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 2.0, c.Scale.X)
	assert.Equal(t, 0.5, c.Scale.Y)
	// defaults remain for missing keys
	assert.Equal(t, "blerp", c.Method)
	assert.Equal(t, "padded", c.Layout)

	o, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, resample.Stretch, o.Mapping)
	assert.Equal(t, bmp.SizeLegacy, o.SizeMode)
	assert.Equal(t, bmp.Padded, o.Layout)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	path := filepath.Join(dir, "typo.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scael:\n  x: 2\n"), 0644))
	_, err = LoadConfig(path)
	assert.Error(t, err, "unknown keys are rejected")
}

func TestConfigOptionsInvalid(t *testing.T) {
	c := DefaultConfig()
	c.Layout = "diagonal"
	_, err := c.Options()
	assert.Error(t, err)

	c = DefaultConfig()
	c.Scale.X = 0
	_, err = c.Options()
	assert.Equal(t, InvalidScale, KindOf(err))

	c = DefaultConfig()
	c.Method = "Catmull-Rom"
	o, err := c.Options()
	require.NoError(t, err)
	assert.Equal(t, "catmull-rom", o.Method)
}
