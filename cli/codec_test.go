package cli

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fourey/lineart"
)

func smallMask() *lineart.Mask {
	mask := lineart.NewMask(4, 3)
	mask.SetStroke(0, 0, true)
	mask.SetStroke(3, 2, true)
	return mask
}

func TestEncodeMask_PNGRoundTrip(t *testing.T) {
	assert := assert.New(t)

	mask := smallMask()
	var buf bytes.Buffer
	assert.NoError(EncodeMask(mask, &buf, ".png"))

	img, _, err := image.Decode(&buf)
	assert.NoError(err)
	assert.Equal(mask.Width, img.Bounds().Dx())
	assert.Equal(mask.Height, img.Bounds().Dy())

	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if mask.Stroke(x, y) {
				assert.Zero(r>>8, "stroke pixel (%d,%d) must encode black", x, y)
			} else {
				assert.EqualValues(0xff, r>>8, "background pixel (%d,%d) must encode white", x, y)
			}
		}
	}
}

func TestEncodeMask_BMPRoundTrip(t *testing.T) {
	assert := assert.New(t)

	mask := smallMask()
	var buf bytes.Buffer
	assert.NoError(EncodeMask(mask, &buf, ".bmp"))

	img, _, err := image.Decode(&buf)
	assert.NoError(err)
	assert.Equal(mask.Width, img.Bounds().Dx())
	assert.Equal(mask.Height, img.Bounds().Dy())

	r, _, _, _ := img.At(0, 0).RGBA()
	assert.Zero(r >> 8)
}

func TestEncodeMask_UnsupportedExtension(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	assert.Error(EncodeMask(smallMask(), &buf, ".gif"))
}

func TestEncodeDistanceMap_FalseColorsNearAndFar(t *testing.T) {
	assert := assert.New(t)

	dist := lineart.NewDistanceMap(2, 1)
	dist.Values[0] = 0
	dist.Values[1] = 10

	var buf bytes.Buffer
	assert.NoError(EncodeDistanceMap(dist, &buf, ".png"))

	img, _, err := image.Decode(&buf)
	assert.NoError(err)
	near := img.At(0, 0)
	far := img.At(1, 0)
	assert.NotEqual(near, far)
}

func TestNewImageBuffer_ExtractsGrayscaleAndAlpha(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 0, A: 0xff})
	src.SetNRGBA(1, 0, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
	src.SetNRGBA(0, 1, color.NRGBA{R: 0, G: 0, B: 0, A: 0x00})
	src.SetNRGBA(1, 1, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	buf := NewImageBuffer(src)
	w, h := buf.Bounds()
	assert.Equal(2, w)
	assert.Equal(2, h)
	assert.True(buf.HasAlpha())

	gray := buf.Read(lineart.FormatLuma)
	assert.Less(gray[0], gray[1], "black pixel must read darker than white pixel")

	alpha := buf.Read(lineart.FormatAlpha)
	assert.Zero(alpha[2], "the transparent pixel's alpha must read back as 0")
	assert.EqualValues(0xff, alpha[3])
}

func TestImageBuffer_CopyIsIndependent(t *testing.T) {
	assert := assert.New(t)

	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	buf := NewImageBuffer(src).(*imageBuffer)
	clone := buf.Copy().(*imageBuffer)

	clone.gray[0] = 0xaa
	assert.NotEqual(clone.gray[0], buf.gray[0], "mutating the copy must not affect the original")
}
