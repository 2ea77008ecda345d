package asset

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/haunted/raster"
	"github.com/lixenwraith/haunted/vmath"
)

var white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

func canvas(size int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, max(size, 1), max(size, 1)))
}

// pen returns a plot that stamps a width x width square
func pen(img *image.NRGBA, width int, c color.NRGBA) raster.Plot {
	half := width / 2
	return func(x, y int) {
		for dy := 0; dy < width; dy++ {
			for dx := 0; dx < width; dx++ {
				img.SetNRGBA(x-half+dx, y-half+dy, c)
			}
		}
	}
}

// Ghost is a translucent white disc with an opaque rim
func Ghost(size int) image.Image {
	img := canvas(size)
	r := size / 2
	body := color.NRGBA{R: 255, G: 255, B: 255, A: 180}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			dx, dy := x-r, y-r
			if dx*dx+dy*dy <= r*r {
				img.SetNRGBA(x, y, body)
			}
		}
	}
	raster.Circle(r, r, r-1, pen(img, 1, white))
	return img
}

// Stickman draws a line figure: ring head, spine, two arms, two legs
func Stickman(size int) image.Image {
	img := canvas(size)
	cx, cy := size/2, size/2
	plot := pen(img, 3, white)

	head := size / 8
	for r := head; r > head-3 && r >= 0; r-- {
		raster.Circle(cx, cy-size/4, r, pen(img, 1, white))
	}
	raster.Bresenham(cx, cy-size/8, cx, cy+size/6, plot)
	raster.Bresenham(cx, cy, cx-size/6, cy-size/10, plot)
	raster.Bresenham(cx, cy, cx+size/6, cy-size/10, plot)
	raster.Bresenham(cx, cy+size/6, cx-size/8, cy+size/3, plot)
	raster.Bresenham(cx, cy+size/6, cx+size/8, cy+size/3, plot)
	return img
}

// Tint returns a placeholder that fills the square with one translucent color
func Tint(c color.NRGBA) Placeholder {
	return func(size int) image.Image {
		img := canvas(size)
		draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
		return img
	}
}

// Mottled returns a placeholder whose brightness is modulated by perlin noise
func Mottled(c color.NRGBA, seed int64) Placeholder {
	return func(size int) image.Image {
		noise := perlin.NewPerlin(2, 2, 3, seed)
		img := canvas(size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				n := vmath.Clamp(noise.Noise2D(float64(x)/16, float64(y)/16), -1, 1)
				f := 1 + 0.3*n
				img.SetNRGBA(x, y, color.NRGBA{R: scale(c.R, f), G: scale(c.G, f), B: scale(c.B, f), A: c.A})
			}
		}
		return img
	}
}

func scale(v uint8, f float64) uint8 {
	s := float64(v) * f
	switch {
	case s >= 255:
		return 255
	case s <= 0:
		return 0
	}
	return uint8(s)
}
