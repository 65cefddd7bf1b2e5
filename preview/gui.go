//go:build preview

package preview

import (
	"image"
	"image/color"
	"time"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/fourey/lineart"
)

// Maximum preview window dimensions; larger source images are downscaled
// to fit, the same ceiling the reference tool's gui.go applies to its own
// preview window.
const (
	maxScreenX = 1280
	maxScreenY = 720
)

type (
	C = layout.Context
	D = layout.Dimensions
)

// gui is the Gio window state, grounded on the reference tool's Gui struct.
type gui struct {
	opts  Options
	ctrl  *lineart.Controller
	base  *image.NRGBA
	theme *material.Theme

	frames chan frame
	cur    frame

	showDist widget.Bool

	ctx layout.Context
}

func newGui(opts Options) *gui {
	base := toNRGBA(opts.Source)
	b := windowRect(base.Bounds())

	g := &gui{
		opts:   opts,
		ctrl:   opts.Controller,
		base:   base,
		theme:  material.NewTheme(),
		frames: make(chan frame, 1),
		ctx: layout.Context{
			Ops: new(op.Ops),
			Constraints: layout.Constraints{
				Max: image.Pt(b.Dx(), b.Dy()),
			},
		},
	}
	g.theme.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	g.theme.TextSize = unit.Sp(14)

	g.ctrl.OnComputingStart(func() {
		g.push(frame{computing: true})
	})
	g.ctrl.OnComputingEnd(func() {
		// Get is served by the controller's loop goroutine, which is the
		// one running this listener, so it is called from a new goroutine.
		go func() {
			mask, dist, _ := g.ctrl.Get()
			g.push(frame{mask: mask, dist: dist})
		}()
	})
	return g
}

// push delivers a new frame to the GUI loop without ever blocking the
// controller's owning goroutine, draining any stale pending frame first.
func (g *gui) push(f frame) {
	select {
	case g.frames <- f:
	default:
		select {
		case <-g.frames:
		default:
		}
		g.frames <- f
	}
}

func (g *gui) run() error {
	b := windowRect(g.base.Bounds())
	width, height := unit.Dp(b.Dx()), unit.Dp(b.Dy())

	w := new(app.Window)
	w.Option(
		app.Title("lineart preview"),
		app.Size(width, height),
	)
	w.Perform(system.ActionCenter)

	for {
		select {
		case f := <-g.frames:
			g.cur = f
			w.Invalidate()
		case <-time.After(16 * time.Millisecond):
		}

		switch e := w.Event().(type) {
		case app.FrameEvent:
			g.ctx = app.NewContext(g.ctx.Ops, e)

			for {
				event, ok := g.ctx.Event(key.Filter{Name: key.NameEscape})
				if !ok {
					break
				}
				if ev, ok := event.(key.Event); ok && ev.Name == key.NameEscape {
					w.Perform(system.ActionClose)
					return nil
				}
			}

			g.draw()
			e.Frame(g.ctx.Ops)
		case app.DestroyEvent:
			return e.Err
		}
	}
}

// windowRect reports the rectangle the preview window should occupy for a
// source image of bounds b, downscaled to fit within maxScreenX/maxScreenY
// while preserving aspect ratio, mirroring the reference tool's
// getWindowSize/getRatio. The actual pixel resampling happens once per
// frame in currentImage via imaging.Fit; this only needs the target size.
func windowRect(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w <= maxScreenX && h <= maxScreenY {
		return image.Rect(0, 0, w, h)
	}
	r := float64(maxScreenX) / float64(w)
	if hr := float64(maxScreenY) / float64(h); hr < r {
		r = hr
	}
	return image.Rect(0, 0, int(float64(w)*r), int(float64(h)*r))
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			out.Set(x, y, img.At(x, y))
		}
	}
	return out
}

var bgColor = color.NRGBA{R: 0x2d, G: 0x23, B: 0x2e, A: 0xff}
