package cli

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fourey/lineart"
	"github.com/fourey/lineart/utils"
)

// validExtensions are the image formats Decode/Encode supports.
var validExtensions = []string{".png", ".jpg", ".jpeg", ".bmp"}

// fillTint is the overlay color used for the optional fill-overlay output.
var fillTint = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0x80}

// Options holds one CLI invocation's resolved settings (§4.6).
type Options struct {
	Source, Dest string
	Params       lineart.Params
	FillX, FillY int // -1, -1 means "skip the fill-overflow pass"
	Debug        bool
	Workers      int
}

// result mirrors the reference tool's exec.go result type for batch-mode
// error aggregation.
type result struct {
	path string
	err  error
}

// Run dispatches a single file or, if Source is a directory, a
// concurrent batch of files through Process, grounded on the reference
// tool's Processor.Execute / consumer / walkDir pattern.
func Run(opts Options) error {
	fi, err := os.Stat(opts.Source)
	if err != nil {
		if opts.Source == pipeName {
			fi = nil
		} else {
			return fmt.Errorf("failed to load the source image: %w", err)
		}
	}

	now := time.Now()

	if fi != nil && fi.IsDir() {
		err = runBatch(opts)
	} else {
		quiet := opts.Source == pipeName || opts.Dest == pipeName
		var spinner *utils.Spinner
		if !quiet {
			spinner = utils.NewSpinner("Closing the line-art ", 100*time.Millisecond, true)
			spinner.Start()
		}
		err = Process(opts.Source, opts.Dest, opts)
		if spinner != nil {
			spinner.Stop()
		}
		printOpStatus(opts.Dest, err)
	}

	if err == nil {
		fmt.Fprintf(os.Stderr, "\nExecution time: %s\n",
			utils.DecorateText(utils.FormatTime(time.Since(now)), utils.SuccessMessage))
	}
	return err
}

func runBatch(opts Options) error {
	if _, err := os.Stat(opts.Dest); err != nil {
		if err := os.Mkdir(opts.Dest, 0755); err != nil {
			return fmt.Errorf("unable to create destination directory: %w", err)
		}
	}

	workers := opts.Workers
	if workers <= 0 || workers > runtime.NumCPU() {
		workers = runtime.NumCPU()
	}

	ch := make(chan result)
	done := make(chan struct{})
	defer close(done)

	paths, errc := walkDir(done, opts.Source, validExtensions)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			consumer(done, paths, opts, ch)
		}()
	}

	go func() {
		defer close(ch)
		wg.Wait()
	}()

	var firstErr error
	for res := range ch {
		if res.err != nil && firstErr == nil {
			firstErr = res.err
		}
		printOpStatus(res.path, res.err)
	}
	if err := <-errc; err != nil {
		fmt.Fprint(os.Stderr, utils.DecorateText(err.Error(), utils.ErrorMessage))
	}
	return firstErr
}

func consumer(done <-chan struct{}, paths <-chan string, opts Options, res chan<- result) {
	for src := range paths {
		dst := filepath.Join(opts.Dest, filepath.Base(src))
		err := Process(src, dst, opts)
		select {
		case <-done:
			return
		case res <- result{path: src, err: err}:
		}
	}
}

// walkDir recursively walks src, sending the path of every regular file
// whose extension is in srcExts, grounded on exec.go's walkDir.
func walkDir(done <-chan struct{}, src string, srcExts []string) (<-chan string, <-chan error) {
	pathChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(pathChan)
		errChan <- filepath.Walk(src, func(path string, f os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !f.Mode().IsRegular() {
				return nil
			}
			if !slices.Contains(srcExts, filepath.Ext(f.Name())) {
				return nil
			}
			select {
			case <-done:
				return errors.New("directory walk cancelled")
			case pathChan <- path:
			}
			return nil
		})
	}()
	return pathChan, errChan
}

func printOpStatus(fname string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr,
			utils.DecorateText("\nError closing the image: %s\n", utils.ErrorMessage),
			utils.DecorateText(fmt.Sprintf("\tReason: %v\n", err), utils.DefaultMessage),
		)
		return
	}
	if fname != pipeName {
		fmt.Fprintf(os.Stderr, "\nThe closed image has been saved as: %s%s\n\n",
			utils.DecorateText(filepath.Base(fname), utils.SuccessMessage), utils.DefaultColor)
	}
}

// Process runs one image through the full C4 controller (decode → close →
// optional fill-overflow → encode), exercising the same controller code
// path an interactive host would use even though the CLI only ever makes
// one Get call per run (§4.6).
func Process(src, dst string, opts Options) error {
	r, w, err := ResolvePath(src, dst)
	if err != nil {
		return err
	}
	defer r.Close()
	defer w.Close()

	if src != pipeName {
		if ctype, cerr := utils.DetectFileContentType(src); cerr == nil {
			if s, ok := ctype.(string); ok && !strings.HasPrefix(s, "image/") {
				return fmt.Errorf("source file is not an image (detected %s)", s)
			}
		}
	}

	img, err := DecodeImage(r)
	if err != nil {
		return err
	}
	buf := NewImageBuffer(img)

	lc := lineart.NewController(opts.Params)
	defer lc.Shutdown()
	lc.SetInput(buf)
	mask, dist, err := lc.Get()
	if err != nil {
		return err
	}

	ext := filepath.Ext(dst)

	if opts.FillX >= 0 && opts.FillY >= 0 {
		seedMask := lineart.NewMask(mask.Width, mask.Height)
		if seedMask.InBounds(opts.FillX, opts.FillY) {
			seedMask.SetStroke(opts.FillX, opts.FillY, true)
		}
		grown := lineart.Overflow(mask, dist, seedMask, opts.Params.MaxGrow)
		return EncodeFillOverlay(img, grown, fillTint, w, ext)
	}

	if opts.Debug {
		if err := writeDebugRaster(dst, "dist", func(dw *os.File) error {
			return EncodeDistanceMap(dist, dw, ext)
		}, ext); err != nil {
			return err
		}
	}

	return EncodeMask(mask, w, ext)
}

func writeDebugRaster(dst, suffix string, encode func(*os.File) error, ext string) error {
	path := fmt.Sprintf("%s.%s%s", dst[:len(dst)-len(ext)], suffix, ext)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to write debug raster: %w", err)
	}
	defer f.Close()
	return encode(f)
}
