// Package cli hosts the file-system, flag and TOML concerns that the
// lineart engine package deliberately stays free of (§6): decoding and
// encoding images, resolving source/destination paths (including stdin/
// stdout pipes), batch-processing a directory of inputs, and loading a
// TOML config file of default parameters.
package cli

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/bmp"
	"golang.org/x/term"

	"github.com/fourey/lineart"
	"github.com/fourey/lineart/imop"
)

// pipeName is the special path value meaning "use stdin/stdout."
const pipeName = "-"

// DecodeImage decodes src (a PNG, JPEG or BMP file) into an image.Image,
// grounded on the reference tool's decodeImg.
func DecodeImage(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("could not decode image: %w", err)
	}
	return img, nil
}

// imageBuffer adapts a decoded image.Image to the lineart.Buffer contract
// (§6), grounded on the reference tool's imgToNRGBA/rgbToGrayscale
// conversions.
type imageBuffer struct {
	width, height int
	gray          []uint8
	alpha         []uint8
	hasAlpha      bool
	listeners     []func()
}

// NewImageBuffer builds a lineart.Buffer from a decoded image, extracting
// both a luminance plane and, if present, an alpha plane up front so
// Read never needs to touch img again.
func NewImageBuffer(img image.Image) lineart.Buffer {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	buf := &imageBuffer{
		width:  w,
		height: h,
		gray:   make([]uint8, w*h),
		alpha:  make([]uint8, w*h),
	}

	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.NRGBA64, *image.RGBA64:
		buf.hasAlpha = true
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bb, a := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			buf.gray[i] = uint8((0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bb)) / 256)
			buf.alpha[i] = uint8(a >> 8)
			if a>>8 != 0xff {
				buf.hasAlpha = true
			}
		}
	}
	return buf
}

func (b *imageBuffer) Bounds() (int, int) { return b.width, b.height }
func (b *imageBuffer) HasAlpha() bool     { return b.hasAlpha }

func (b *imageBuffer) Read(format lineart.SampleFormat) []uint8 {
	if format == lineart.FormatAlpha {
		if !b.hasAlpha {
			out := make([]uint8, len(b.alpha))
			for i := range out {
				out[i] = 0xff
			}
			return out
		}
		return b.alpha
	}
	return b.gray
}

func (b *imageBuffer) Copy() lineart.Buffer {
	out := &imageBuffer{width: b.width, height: b.height, hasAlpha: b.hasAlpha}
	out.gray = append([]uint8(nil), b.gray...)
	out.alpha = append([]uint8(nil), b.alpha...)
	return out
}

func (b *imageBuffer) OnChanged(fn func()) func() {
	b.listeners = append(b.listeners, fn)
	idx := len(b.listeners) - 1
	return func() { b.listeners[idx] = func() {} }
}

// EncodeMask writes mask as a black-on-white grayscale raster (stroke
// pixels black, background white), in the format named by ext (".png",
// ".jpg"/".jpeg", ".bmp"), grounded on the reference tool's
// extension-switched encodeImg.
func EncodeMask(mask *lineart.Mask, w io.Writer, ext string) error {
	img := image.NewGray(image.Rect(0, 0, mask.Width, mask.Height))
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			v := uint8(0xff)
			if mask.Stroke(x, y) {
				v = 0x00
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return encodeByExt(w, img, ext)
}

// EncodeDistanceMap writes dist as a false-colored raster (blue near strokes,
// red far from them) in the format named by ext, purely for human inspection.
func EncodeDistanceMap(dist *lineart.DistanceMap, w io.Writer, ext string) error {
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
			t := float64(dist.At(x, y) / max)
			img.SetNRGBA(x, y, falseColor(t))
		}
	}
	return encodeByExt(w, img, ext)
}

func falseColor(t float64) color.NRGBA {
	t = math.Max(0, math.Min(1, t))
	r := uint8(255 * t)
	b := uint8(255 * (1 - t))
	return color.NRGBA{R: r, G: 0, B: b, A: 0xff}
}

// EncodeFillOverlay composites fill over original at SrcOver, using the
// imop package the same way the reference tool's preview composites its
// own debug overlays, and writes the result in the format named by ext.
func EncodeFillOverlay(original image.Image, fill *lineart.Mask, tint color.NRGBA, w io.Writer, ext string) error {
	base := toNRGBA(original)
	overlay := image.NewNRGBA(base.Bounds())
	draw.Draw(overlay, overlay.Bounds(), base, base.Bounds().Min, draw.Src)
	for y := 0; y < fill.Height; y++ {
		for x := 0; x < fill.Width; x++ {
			if fill.Stroke(x, y) {
				overlay.SetNRGBA(x, y, tint)
			}
		}
	}

	op := imop.InitOp()
	op.Set(imop.SrcOver)
	bitmap := imop.NewBitmap(base.Bounds())
	op.Draw(bitmap, overlay, base, nil)

	return encodeByExt(w, bitmap.Img, ext)
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

func encodeByExt(w io.Writer, img image.Image, ext string) error {
	switch ext {
	case "", ".jpg", ".jpeg":
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	case ".png":
		return png.Encode(w, img)
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return errors.New("unsupported image format")
	}
}

// ResolvePath opens src for reading and out for writing, following the
// reference tool's pathToFile: either name may be "-" to mean stdin/stdout,
// which is only legal when that stream is actually a pipe.
func ResolvePath(src, out string) (io.ReadCloser, io.WriteCloser, error) {
	var (
		r   io.ReadCloser
		w   io.WriteCloser
		err error
	)

	if src == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdin")
		}
		r = os.Stdin
	} else {
		r, err = os.Open(src)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to open the source file: %w", err)
		}
	}

	if out == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, nil, errors.New("`-` should be used with a pipe for stdout")
		}
		w = os.Stdout
	} else {
		w, err = os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0755)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create the destination file: %w", err)
		}
	}
	return r, w, nil
}
