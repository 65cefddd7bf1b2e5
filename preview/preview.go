//go:build preview

// Package preview implements the optional Gio live preview window (C8),
// grounded on the reference tool's gui.go/preview.go/draw.go. It is gated
// behind the "preview" build tag so a headless build of the CLI carries no
// Gio dependency footprint, matching the reference tool's own -preview=false
// escape hatch.
package preview

import (
	"image"
	"image/color"

	"github.com/fourey/lineart"
	"github.com/fourey/lineart/imop"
)

// frame is one snapshot handed from the controller to the GUI loop,
// the domain analogue of the reference tool's worker struct sent over
// imgWorker.
type frame struct {
	mask      *lineart.Mask
	dist      *lineart.DistanceMap
	computing bool
}

// Options configures the preview window.
type Options struct {
	Source     image.Image
	Controller *lineart.Controller
	MaskTint   color.NRGBA
}

// Run opens the preview window and blocks until it is closed, subscribing
// to the controller's computing-start/computing-end notifications the same
// way the reference tool's showPreview subscribes to imgWorker. It blocks
// the calling goroutine, so callers run it in its own goroutine while
// app.Main keeps the main OS thread. The caller
// retains ownership of opts.Controller and is responsible for shutting it
// down once its own use of it is done.
func Run(opts Options) error {
	if opts.MaskTint == (color.NRGBA{}) {
		opts.MaskTint = color.NRGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xa0}
	}

	g := newGui(opts)
	return g.run()
}

// compositeOverlay draws mask's stroke pixels as tint over base, using the
// same imop.Composite/Blend machinery the reference tool's gui.go uses to
// overlay its own debug mask.
func compositeOverlay(base *image.NRGBA, mask *lineart.Mask, tint color.NRGBA) *image.NRGBA {
	overlay := image.NewNRGBA(base.Bounds())
	b := base.Bounds()
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Stroke(x, y) {
				overlay.SetNRGBA(b.Min.X+x, b.Min.Y+y, tint)
			}
		}
	}

	op := imop.InitOp()
	op.Set(imop.SrcOver)
	bitmap := imop.NewBitmap(b)
	op.Draw(bitmap, overlay, base, nil)
	return bitmap.Img
}
