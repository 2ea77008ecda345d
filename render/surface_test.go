package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSurfaceSetAtClips(t *testing.T) {
	s := NewSurface(4, 3)
	assert.Equal(t, 4, s.Width())
	assert.Equal(t, 3, s.Height())

	s.Set(1, 2, RGBWhite)
	assert.Equal(t, RGBWhite, s.At(1, 2))

	// Out of range writes are dropped, reads return black
	s.Set(-1, 0, RGBWhite)
	s.Set(4, 0, RGBWhite)
	assert.Equal(t, RGBBlack, s.At(-1, 0))
	assert.Equal(t, RGBBlack, s.At(4, 0))
	assert.Len(t, s.Pix(), 4*3*4)
}

func TestFillRectClipped(t *testing.T) {
	s := NewSurface(5, 5)
	red := RGB{R: 255}
	s.FillRect(3, 3, 10, 10, red)

	count := 0
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if s.At(x, y) == red {
				count++
			}
		}
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, RGBBlack, s.At(2, 2))
}

func TestLineEndpoints(t *testing.T) {
	s := NewSurface(10, 10)
	s.Line(0, 0, 9, 4, RGBWhite)
	assert.Equal(t, RGBWhite, s.At(0, 0))
	assert.Equal(t, RGBWhite, s.At(9, 4))
}

func TestBlitScaled(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.NRGBA{R: 255, A: 255})
	src.Set(1, 0, color.NRGBA{G: 255, A: 255})
	// Bottom row transparent

	s := NewSurface(8, 8)
	s.Clear(Gray(10))
	s.BlitScaled(src, image.Rect(0, 0, 8, 8))

	assert.Equal(t, RGB{R: 255}, s.At(1, 1))
	assert.Equal(t, RGB{G: 255}, s.At(6, 1))
	assert.Equal(t, Gray(10), s.At(3, 6), "transparent source keeps background")

	// Fully offscreen destination is a no-op
	s.BlitScaled(src, image.Rect(20, 20, 30, 30))
}

func TestColorHelpers(t *testing.T) {
	a := RGB{0, 100, 200}
	b := RGB{200, 100, 0}

	assert.Equal(t, a, Blend(a, b, 0))
	assert.Equal(t, b, Blend(a, b, 1))
	assert.Equal(t, RGB{100, 100, 100}, Blend(a, b, 0.5))

	assert.Equal(t, RGB{200, 100, 200}, Max(a, b))
	assert.Equal(t, RGB{0, 200, 255}, Scale(a, 2))
	assert.Equal(t, RGB{100, 100, 100}, Lerp(a, b, 0.5))
	assert.Equal(t, uint8(255), Luma(RGBWhite))
}
