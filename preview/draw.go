//go:build preview

package preview

import (
	"image"
	"image/color"
	"math"

	"gioui.org/layout"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"

	"github.com/disintegration/imaging"

	"github.com/fourey/lineart"
)

// draw renders the current frame: the source image with the working mask
// composited over it in the stroke color, or, with the HUD checkbox
// toggled, the false-colored distance map instead. Grounded on the
// reference tool's Gui.draw.
func (g *gui) draw() {
	gtx := g.ctx

	paint.Fill(gtx.Ops, bgColor)

	layout.Stack{}.Layout(gtx,
		layout.Stacked(func(gtx C) D {
			img := g.currentImage()
			src := paint.NewImageOp(img)
			src.Add(gtx.Ops)

			return widget.Image{
				Src:   src,
				Scale: 1 / float32(unit.Dp(1)),
				Fit:   widget.Contain,
			}.Layout(gtx)
		}),
		layout.Expanded(func(gtx C) D {
			return g.drawHud(gtx)
		}),
	)
}

func (g *gui) drawHud(gtx C) D {
	hudHeight := gtx.Dp(unit.Dp(28))
	r := image.Rectangle{Max: image.Point{X: gtx.Constraints.Max.X, Y: hudHeight}}

	return layout.Stack{}.Layout(gtx,
		layout.Expanded(func(gtx C) D {
			paint.FillShape(gtx.Ops, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}, clip.Rect(r).Op())
			return D{Size: r.Max}
		}),
		layout.Stacked(func(gtx C) D {
			return layout.UniformInset(unit.Dp(4)).Layout(gtx, func(gtx C) D {
				if g.cur.mask == nil {
					label := "waiting for input..."
					if g.cur.computing {
						label = "computing..."
					}
					return material.Label(g.theme, unit.Sp(14), label).Layout(gtx)
				}
				cb := material.CheckBox(g.theme, &g.showDist, "show distance map")
				cb.Size = 16
				return cb.Layout(gtx)
			})
		}),
	)
}

// currentImage composites the current frame over the source image and, for
// large sources, downscales the result before it's handed to Gio so the
// texture upload cost doesn't scale with the full source resolution when
// widget.Contain would shrink it for display anyway.
func (g *gui) currentImage() image.Image {
	var img image.Image = g.base
	switch {
	case g.cur.mask == nil:
	case g.showDist.Value && g.cur.dist != nil:
		img = falseColorImage(g.cur.dist)
	default:
		img = compositeOverlay(g.base, g.cur.mask, g.opts.MaskTint)
	}

	b := img.Bounds()
	if b.Dx() > maxScreenX || b.Dy() > maxScreenY {
		img = imaging.Fit(img, maxScreenX, maxScreenY, imaging.Lanczos)
	}
	return img
}

// falseColorImage renders a distance map as a red/blue gradient, near
// strokes rendered blue and far pixels rendered red.
func falseColorImage(dist *lineart.DistanceMap) *image.NRGBA {
	max := float32(0)
	for _, v := range dist.Values {
		if v > max {
			max = v
		}
	}
	if max == 0 {
		max = 1
	}

	img := image.NewNRGBA(image.Rect(0, 0, dist.Width, dist.Height))
	for y := 0; y < dist.Height; y++ {
		for x := 0; x < dist.Width; x++ {
			t := math.Max(0, math.Min(1, float64(dist.At(x, y)/max)))
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(255 * t), B: uint8(255 * (1 - t)), A: 0xff})
		}
	}
	return img
}
