package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fourey/lineart"
	"github.com/fourey/lineart/cli"
	"github.com/fourey/lineart/utils"
)

const HelpBanner = `
┬  ┬┌┐┌┌─┐┌─┐┬─┐┌┬┐
│  ││││├┤ ├─┤├┬┘ │
┴─┘┴┘└┘└─┘┴ ┴┴└─ ┴

Line-art closure engine.
    Version: %s

`

// pipeName indicates that stdin/stdout is being used as a file name.
const pipeName = "-"

// Version indicates the current build version, set via -ldflags at build
// time, the same way the reference tool's main.go does.
var Version string

func main() {
	log.SetFlags(0)

	configPath := flagString(os.Args[1:], "-config", "")
	cfg, err := cli.LoadConfig(configPath)
	if err != nil {
		fatal(err)
	}

	var (
		source            = flag.String("in", pipeName, "Source image path, or - for stdin")
		destination       = flag.String("out", pipeName, "Destination path, or - for stdout")
		threshold         = flag.Float64("threshold", cfg.Threshold, "Stroke threshold in [0,1]")
		splineLen         = flag.Int("spline-len", cfg.SplineLen, "Spline closure max length, in pixels")
		segmentLen        = flag.Int("segment-len", cfg.SegmentLen, "Segment closure max length, in pixels")
		maxGrow           = flag.Int("max-grow", cfg.MaxGrow, "Fill-overflow max grow level")
		selectTransparent = flag.Bool("select-transparent", cfg.SelectTransparent, "Binarize against the alpha channel instead of luminance")
		bindGap           = flag.Bool("bind-gap", cfg.BindGapLength, "Bind spline-len and segment-len together")
		fillX             = flag.Int("fill-x", -1, "Fill-overflow seed X, -1 to skip")
		fillY             = flag.Int("fill-y", -1, "Fill-overflow seed Y, -1 to skip")
		_                 = flag.String("config", "", "TOML config file path")
		preview           = flag.Bool("preview", false, "Show the live preview window")
		debug             = flag.Bool("debug", false, "Also write intermediate debug rasters")
		workers           = flag.Int("conc", cfg.Workers, "Number of files to process concurrently in directory mode")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, HelpBanner, Version)
		flag.PrintDefaults()
	}
	flag.Parse()

	params := lineart.Params{
		SelectTransparent: *selectTransparent,
		StrokeThreshold:   *threshold,
		SplineMaxLength:   *splineLen,
		SegmentMaxLength:  *segmentLen,
		MaxGrow:           *maxGrow,
		BindGapLength:     *bindGap,
	}
	if err := params.Validate(); err != nil {
		fatal(err)
	}

	opts := cli.Options{
		Source:  *source,
		Dest:    *destination,
		Params:  params,
		FillX:   *fillX,
		FillY:   *fillY,
		Debug:   *debug,
		Workers: *workers,
	}

	if *preview {
		runWithPreview(opts)
		return
	}
	if err := cli.Run(opts); err != nil {
		fatal(err)
	}
}

// flagString scans raw CLI args for -name VALUE or -name=VALUE before the
// full flag.Parse runs, so a -config path can be loaded and used to seed
// the real flags' defaults (config overrides hardcoded defaults; flags
// override config, per §4.9).
func flagString(args []string, name, fallback string) string {
	for i, a := range args {
		if a == name && i+1 < len(args) {
			return args[i+1]
		}
		if len(a) > len(name)+1 && a[:len(name)+1] == name+"=" {
			return a[len(name)+1:]
		}
	}
	return fallback
}

func fatal(err error) {
	log.Fatal(utils.DecorateText(fmt.Sprintf("%s %v", "lineart:", err), utils.ErrorMessage))
}
