package raycast

import (
	"image"
	"math"

	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/vmath"
)

// Decorate returns an overlay image for a wall cell, nil for plain walls
type Decorate func(c Column) image.Image

// PaintBackground fills the upper half with ceiling and the lower half with floor
func (c Camera) PaintBackground(s *render.Surface, ceiling, floor render.RGB) {
	half := c.Height / 2
	s.FillRect(0, 0, c.Width, half, ceiling)
	s.FillRect(0, half, c.Width, c.Height-half, floor)
}

// SliceRect is the on-screen rectangle of column k at the given height
func (c Camera) SliceRect(k, height int) image.Rectangle {
	w := c.SliceWidth()
	top := c.Height/2 - height/2
	return image.Rect(k*w, top, (k+1)*w, top+height)
}

// PaintColumns draws one shaded slice per hit column, then its decoration scaled over it
// Columns without a hit leave the background untouched
func (c Camera) PaintColumns(s *render.Surface, cols []Column, cellSize float64, decorate Decorate) {
	for _, col := range cols {
		if !col.OK {
			continue
		}
		h := c.SliceHeight(col.Depth, cellSize)
		r := c.SliceRect(col.Index, h)
		s.FillRect(r.Min.X, r.Min.Y, r.Dx(), r.Dy(), c.Shade(col.Depth))

		if decorate == nil {
			continue
		}
		if img := decorate(col); img != nil {
			s.BlitScaled(img, r)
		}
	}
}

// Billboard is a projected sprite: a size x size square with top-left at (X, Y)
type Billboard struct {
	X, Y     int
	Size     int
	Distance float64
	Bearing  float64 // angle off heading, in (-pi, pi]
}

// Rect is the billboard's destination rectangle
func (b Billboard) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Size, b.Y+b.Size)
}

// ProjectSprite places a world-space point on screen
// Visible iff |bearing| < FOV/2; bearing is normalized so headings past +-pi still see sprites
func (c Camera) ProjectSprite(origin vmath.Vec2, heading float64, target vmath.Vec2, cellSize float64) (Billboard, bool) {
	delta := target.Sub(origin)
	distance := delta.Len()
	gamma := vmath.NormalizeAngle(delta.Angle() - heading)

	b := Billboard{Distance: distance, Bearing: gamma}
	if math.Abs(gamma) >= c.FOV/2 {
		return b, false
	}

	b.Size = c.SliceHeight(distance, cellSize)
	half := float64(c.Width) / 2
	b.X = int(half*(1+math.Tan(gamma)/math.Tan(c.FOV/2))) - b.Size/2
	b.Y = c.Height/2 - b.Size/2
	return b, true
}

// PaintSprite scales frame into the billboard with alpha; sprites are not occluded by walls
func PaintSprite(s *render.Surface, b Billboard, frame image.Image) {
	if frame == nil || b.Size <= 0 {
		return
	}
	s.BlitScaled(frame, b.Rect())
}
