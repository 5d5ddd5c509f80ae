package main

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/akeil/bmpscale"
	"github.com/akeil/bmpscale/pkg/bmp"
	"github.com/akeil/bmpscale/pkg/resample"
)

const (
	checkmark = "\u2713"
	crossmark = "\u2717"
	ellipsis  = "\u2026"
)

// exit codes per error kind
var exitCodes = map[bmpscale.ErrorKind]int{
	bmpscale.FileNotFound:       3,
	bmpscale.IOError:            4,
	bmpscale.BadSignature:       5,
	bmpscale.Unsupported:        6,
	bmpscale.MalformedHeader:    7,
	bmpscale.TruncatedFile:      8,
	bmpscale.MalformedPixelData: 9,
	bmpscale.OutOfRange:         10,
	bmpscale.AllocationFailure:  11,
	bmpscale.InvalidScale:       12,
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	code, ok := exitCodes[bmpscale.KindOf(err)]
	if !ok {
		return 1
	}
	return code
}

// overrides holds the command line flags that take precedence over the
// configuration file. Empty values keep the configured setting.
type overrides struct {
	scaleX   string
	scaleY   string
	method   string
	mapping  string
	layout   string
	sizeMode string
}

func (o overrides) apply(c *bmpscale.Config) error {
	var err error
	if o.scaleX != "" {
		c.Scale.X, err = parseScale(o.scaleX)
		if err != nil {
			return err
		}
	}
	if o.scaleY != "" {
		c.Scale.Y, err = parseScale(o.scaleY)
		if err != nil {
			return err
		}
	}
	if o.method != "" {
		c.Method = o.method
	}
	if o.mapping != "" {
		c.Mapping = o.mapping
	}
	if o.layout != "" {
		c.Layout = o.layout
	}
	if o.sizeMode != "" {
		c.SizeMode = o.sizeMode
	}
	return nil
}

func parseScale(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, bmpscale.NewError(bmpscale.InvalidScale, "invalid scale factor %q", s)
	}
	return v, nil
}

func main() {
	err := run(os.Args[1:])
	if err != nil {
		fail(err)
	}
	os.Exit(0)
}

// run parses the command line and executes the selected command.
// Input files are not checked by the parser; a missing file is reported
// with its error kind by the command.
func run(args []string) error {
	app := kingpin.New("bmpscale", "Resize 24-bit bitmap files")
	app.HelpFlag.Short('h')

	var (
		configPath = app.Flag("config", "YAML configuration file").Short('c').Envar("BMPSCALE_CONFIG").String()
		logLevel   = app.Flag("log-level", "Log level (debug, info, warning, error)").Envar("BMPSCALE_LOG_LEVEL").String()
	)

	resize := app.Command("resize", "Resize one or more bitmap files").Default()
	var (
		resizeIn  = resize.Arg("input", "Input files").Required().Strings()
		resizeOut = resize.Flag("output", "Output file, for a single input").Short('o').String()
		resizeDir = resize.Flag("dir", "Output directory").Short('d').ExistingDir()
	)
	var ro overrides
	scaleFlags(resize, &ro)

	info := app.Command("info", "Show the headers of bitmap files")
	var (
		infoIn = info.Arg("input", "Input files").Required().Strings()
	)

	report := app.Command("report", "Render a PDF comparing images before and after resizing")
	var (
		reportIn  = report.Arg("input", "Input files").Required().Strings()
		reportOut = report.Flag("output", "Output file").Short('o').Default("report.pdf").String()
	)
	var rpo overrides
	scaleFlags(report, &rpo)

	preview := app.Command("preview", "Write a PNG of the resized image")
	var (
		previewIn  = preview.Arg("input", "Input file").Required().String()
		previewOut = preview.Flag("output", "Output file").Short('o').String()
	)
	var pvo overrides
	scaleFlags(preview, &pvo)

	command, err := app.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(*configPath, *logLevel)
	if err != nil {
		return err
	}

	switch command {
	case "resize":
		return doResize(cfg, ro, *resizeIn, *resizeOut, *resizeDir)
	case "info":
		return doInfo(cfg, *infoIn)
	case "report":
		return doReport(cfg, rpo, *reportIn, *reportOut)
	case "preview":
		return doPreview(cfg, pvo, *previewIn, *previewOut)
	default:
		return fmt.Errorf("unknown command: %q", command)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitCode(err))
}

func scaleFlags(cmd *kingpin.CmdClause, o *overrides) {
	cmd.Flag("scale-x", "Horizontal scale factor").Short('x').StringVar(&o.scaleX)
	cmd.Flag("scale-y", "Vertical scale factor").Short('y').StringVar(&o.scaleY)
	cmd.Flag("method", "Resampling method").Short('m').EnumVar(&o.method, resample.Methods()...)
	cmd.Flag("mapping", "Coordinate mapping (align-corners, stretch)").EnumVar(&o.mapping,
		resample.AlignCorners.String(), resample.Stretch.String())
	cmd.Flag("layout", "Row layout (padded, packed)").EnumVar(&o.layout,
		bmp.Padded.String(), bmp.Packed.String())
	cmd.Flag("size-mode", "How to compute the image size header (exact, legacy)").EnumVar(&o.sizeMode,
		bmp.SizeExact.String(), bmp.SizeLegacy.String())
}

// loadConfig reads the configuration file, if any, and sets up logging.
// An explicit log level wins over the configured one.
func loadConfig(path, logLevel string) (bmpscale.Config, error) {
	cfg := bmpscale.DefaultConfig()
	var err error
	if path != "" {
		cfg, err = bmpscale.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	bmpscale.SetLogLevel(cfg.LogLevel)
	return cfg, nil
}

func options(cfg bmpscale.Config, o overrides) (bmpscale.Options, error) {
	err := o.apply(&cfg)
	if err != nil {
		return bmpscale.Options{}, err
	}
	return cfg.Options()
}
