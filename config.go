package bmpscale

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/akeil/bmpscale/internal/logging"
	"github.com/akeil/bmpscale/pkg/bmp"
	"github.com/akeil/bmpscale/pkg/resample"
)

// Config is the content of a YAML configuration file:
//
//  scale:
//    x: 2.0
//    y: 1.5
//  method: blerp
//  mapping: align-corners
//  layout: padded
//  size_mode: exact
//  max_pixels: 268435456
//  log_level: warning
type Config struct {
	Scale     ScaleConfig `yaml:"scale"`
	Method    string      `yaml:"method"`
	Mapping   string      `yaml:"mapping"`
	Layout    string      `yaml:"layout"`
	SizeMode  string      `yaml:"size_mode"`
	MaxPixels int         `yaml:"max_pixels"`
	LogLevel  string      `yaml:"log_level"`
}

type ScaleConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// DefaultConfig returns the settings used without a configuration file.
func DefaultConfig() Config {
	return Config{
		Scale:    ScaleConfig{X: 1, Y: 1},
		Method:   resample.Blerp,
		Mapping:  resample.AlignCorners.String(),
		Layout:   bmp.Padded.String(),
		SizeMode: bmp.SizeExact.String(),
		LogLevel: "warning",
	}
}

// LoadConfig reads a configuration file.
// Settings missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	err = yaml.UnmarshalStrict(data, &c)
	if err != nil {
		return c, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}
	logging.Debug("Loaded configuration from %q", path)

	return c, nil
}

// Options converts the configuration into pipeline options.
func (c Config) Options() (Options, error) {
	var o Options
	var err error

	o.ScaleX = c.Scale.X
	o.ScaleY = c.Scale.Y
	o.Method = strings.ToLower(c.Method)
	o.MaxPixels = c.MaxPixels

	o.Mapping, err = resample.ParseMapping(c.Mapping)
	if err != nil {
		return o, err
	}
	o.Layout, err = bmp.ParseLayout(c.Layout)
	if err != nil {
		return o, err
	}
	o.SizeMode, err = bmp.ParseSizeMode(c.SizeMode)
	if err != nil {
		return o, err
	}

	return o, o.Validate()
}

// SetLogLevel sets the log level by name (debug, info, warning, error).
// Unknown names disable logging.
func SetLogLevel(level string) {
	lvl, err := logging.ParseLevel(level)
	if err != nil {
		lvl = logging.LevelNone
	}
	logging.SetLevel(lvl)
}
