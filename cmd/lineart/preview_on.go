//go:build preview

package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gioui.org/app"

	"github.com/fourey/lineart"
	"github.com/fourey/lineart/cli"
	"github.com/fourey/lineart/preview"
)

var fillTint = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0x80}

// runWithPreview decodes the source image, wires a controller that both
// drives the preview window and produces the final output, and blocks on
// app.Main as the reference tool's main.go does for its own Gio window: the
// window's event loop runs in a goroutine so it never blocks the platform
// driver app.Main pumps on the main OS thread.
func runWithPreview(opts cli.Options) {
	r, w, err := cli.ResolvePath(opts.Source, opts.Dest)
	if err != nil {
		fatal(err)
	}
	defer r.Close()

	img, err := cli.DecodeImage(r)
	if err != nil {
		fatal(err)
	}
	buf := cli.NewImageBuffer(img)

	ctrl := lineart.NewController(opts.Params)
	ctrl.SetInput(buf)

	go func() {
		defer w.Close()
		mask, dist, err := ctrl.Get()
		if err != nil {
			fatal(err)
		}
		if mask == nil || dist == nil {
			// The preview window closed (Shutdown) before the pipeline
			// produced a result; there is nothing to write.
			fmt.Fprintln(os.Stderr, "preview closed before the closure finished, nothing written")
			return
		}
		ext := filepath.Ext(opts.Dest)

		if opts.FillX >= 0 && opts.FillY >= 0 {
			seedMask := lineart.NewMask(mask.Width, mask.Height)
			if seedMask.InBounds(opts.FillX, opts.FillY) {
				seedMask.SetStroke(opts.FillX, opts.FillY, true)
			}
			grown := lineart.Overflow(mask, dist, seedMask, opts.Params.MaxGrow)
			if err := cli.EncodeFillOverlay(img, grown, fillTint, w, ext); err != nil {
				fatal(err)
			}
			return
		}
		if err := cli.EncodeMask(mask, w, ext); err != nil {
			fatal(err)
		}
		fmt.Fprintln(os.Stderr, "done, you may close the preview window")
	}()

	go func() {
		err := preview.Run(preview.Options{Source: img, Controller: ctrl})
		ctrl.Shutdown()
		if err != nil {
			fatal(err)
		}
		os.Exit(0)
	}()

	app.Main()
}
