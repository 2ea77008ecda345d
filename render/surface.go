// Package render owns the pixel surface every scene paints into.
// Frontends (terminal, window) only read it back after a frame completes.
package render

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/lixenwraith/haunted/raster"
)

// Surface is a fixed-size RGBA pixel buffer
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a width x height surface cleared to black
func NewSurface(width, height int) *Surface {
	s := &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	s.Clear(RGBBlack)
	return s
}

func (s *Surface) Width() int  { return s.img.Rect.Dx() }
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Image exposes the backing buffer for presenters
func (s *Surface) Image() *image.RGBA { return s.img }

// Pix returns the raw RGBA bytes, row-major, 4 bytes per pixel
func (s *Surface) Pix() []byte { return s.img.Pix }

// Clear fills the whole surface
func (s *Surface) Clear(c RGB) {
	pix := s.img.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = c.R, c.G, c.B, 0xFF
	}
}

// Set writes one pixel, out-of-range writes are dropped
func (s *Surface) Set(x, y int, c RGB) {
	if !image.Pt(x, y).In(s.img.Rect) {
		return
	}
	i := s.img.PixOffset(x, y)
	s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], s.img.Pix[i+3] = c.R, c.G, c.B, 0xFF
}

// At reads one pixel, out-of-range reads return black
func (s *Surface) At(x, y int) RGB {
	if !image.Pt(x, y).In(s.img.Rect) {
		return RGBBlack
	}
	i := s.img.PixOffset(x, y)
	return RGB{s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2]}
}

// FillRect fills the rectangle [x, x+w) x [y, y+h), clipped to the surface
func (s *Surface) FillRect(x, y, w, h int, c RGB) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		i := s.img.PixOffset(r.Min.X, py)
		for px := r.Min.X; px < r.Max.X; px++ {
			s.img.Pix[i], s.img.Pix[i+1], s.img.Pix[i+2], s.img.Pix[i+3] = c.R, c.G, c.B, 0xFF
			i += 4
		}
	}
}

// BlendRect blends c over the rectangle with the given alpha
func (s *Surface) BlendRect(x, y, w, h int, c RGB, alpha float64) {
	r := image.Rect(x, y, x+w, y+h).Intersect(s.img.Rect)
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			s.Set(px, py, Blend(s.At(px, py), c, alpha))
		}
	}
}

// StrokeRect draws a rectangle outline of the given thickness
func (s *Surface) StrokeRect(x, y, w, h, thickness int, c RGB) {
	s.FillRect(x, y, w, thickness, c)
	s.FillRect(x, y+h-thickness, w, thickness, c)
	s.FillRect(x, y, thickness, h, c)
	s.FillRect(x+w-thickness, y, thickness, h, c)
}

// Line draws a 1px Bresenham line
func (s *Surface) Line(x1, y1, x2, y2 int, c RGB) {
	raster.Bresenham(x1, y1, x2, y2, func(x, y int) { s.Set(x, y, c) })
}

// ThickLine draws a line with a square pen of the given width
func (s *Surface) ThickLine(x1, y1, x2, y2, width int, c RGB) {
	if width <= 1 {
		s.Line(x1, y1, x2, y2, c)
		return
	}
	half := width / 2
	raster.Bresenham(x1, y1, x2, y2, func(x, y int) { s.FillRect(x-half, y-half, width, width, c) })
}

// FillCircle paints a filled disc
func (s *Surface) FillCircle(cx, cy, r int, c RGB) {
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				s.Set(cx+dx, cy+dy, c)
			}
		}
	}
}

// BlitScaled draws src scaled into dst with alpha compositing, nearest-neighbor sampling
// Parts of dst outside the surface are clipped
func (s *Surface) BlitScaled(src image.Image, dst image.Rectangle) {
	if dst.Empty() || src.Bounds().Empty() {
		return
	}
	draw.NearestNeighbor.Scale(s.img, dst, src, src.Bounds(), draw.Over, nil)
}

// Text draws s with the 7x13 bitmap face, (x, y) is the top-left corner
func (s *Surface) Text(x, y int, text string, c RGB) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}),
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(text)
}
