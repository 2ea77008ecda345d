// Package raycast turns an occupancy grid and a viewer pose into a pseudo-3D
// first-person frame: one marched ray per screen column plus billboard sprites.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/haunted/render"
)

var (
	ErrStepTooLarge = errors.New("raycast: march step exceeds cell size")
	ErrCamera       = errors.New("raycast: invalid camera")
)

// Shading selects how wall slices are colored
type Shading uint8

const (
	ShadeDistance Shading = iota // intensity falls off with distance
	ShadeFlat                    // constant wall color
)

// Correction selects fisheye handling
type Correction uint8

const (
	CorrectionNone   Correction = iota // euclidean ray distance, rounded look near walls
	CorrectionCosine                   // distance * cos(offset from heading)
)

// Method selects how rays walk the grid
type Method uint8

const (
	MarchFixedStep Method = iota // sample every Step units
	MarchDDA                     // exact cell-boundary traversal
)

// Camera holds the projection parameters shared by walls and sprites
type Camera struct {
	Width, Height int // render target in pixels

	FOV      float64 // horizontal field of view, radians
	Columns  int     // rays per frame
	MaxDepth float64 // march cap in world units
	Step     float64 // fixed march step, must not exceed cell size
	Epsilon  float64 // added to distances before division

	Shading      Shading
	ShadeFalloff float64    // k in 255 / (1 + d*k)
	WallColor    render.RGB // floor of shaded color, or the flat color

	Correction Correction
	Centered   bool // sample column centers instead of left edges
	Method     Method
}

// DefaultCamera returns the 800x600, 120-ray, 60 degree setup
func DefaultCamera() Camera {
	return Camera{
		Width:        800,
		Height:       600,
		FOV:          math.Pi / 3,
		Columns:      120,
		MaxDepth:     800,
		Step:         1,
		Epsilon:      0.0001,
		Shading:      ShadeDistance,
		ShadeFalloff: 0.02,
		WallColor:    render.Gray(40),
	}
}

// Validate checks the camera against the grid cell size
func (c Camera) Validate(cellSize float64) error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrCamera, c.Width, c.Height)
	case c.FOV <= 0 || c.FOV >= math.Pi:
		return fmt.Errorf("%w: fov %.3f out of (0, pi)", ErrCamera, c.FOV)
	case c.Columns <= 0:
		return fmt.Errorf("%w: %d columns", ErrCamera, c.Columns)
	case c.MaxDepth <= 0:
		return fmt.Errorf("%w: max depth %.1f", ErrCamera, c.MaxDepth)
	case c.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive", ErrCamera)
	}
	if c.Method == MarchFixedStep && (c.Step <= 0 || c.Step > cellSize) {
		return fmt.Errorf("%w: step %.3f, cell %.3f", ErrStepTooLarge, c.Step, cellSize)
	}
	return nil
}

// Projection is the distance-to-height constant: (W/2)/tan(FOV/2) * cellSize
func (c Camera) Projection(cellSize float64) float64 {
	return float64(c.Width) / 2 / math.Tan(c.FOV/2) * cellSize
}

// ColumnAngle returns the ray angle of column k for the given heading
func (c Camera) ColumnAngle(heading float64, k int) float64 {
	offset := float64(k)
	if c.Centered {
		offset += 0.5
	}
	return heading - c.FOV/2 + offset*(c.FOV/float64(c.Columns))
}

// SliceWidth is the pixel width of one column, at least 1
func (c Camera) SliceWidth() int {
	return max(1, c.Width/c.Columns)
}

// SliceHeight maps a distance to an on-screen height: min(H, proj / (d + eps))
// Non-increasing in d
func (c Camera) SliceHeight(distance, cellSize float64) int {
	h := c.Projection(cellSize) / (distance + c.Epsilon)
	if h >= float64(c.Height) {
		return c.Height
	}
	return int(h)
}

// Shade returns the wall color at a distance
func (c Camera) Shade(distance float64) render.RGB {
	if c.Shading == ShadeFlat {
		return c.WallColor
	}
	intensity := 255 / (1 + distance*c.ShadeFalloff)
	ch := func(base uint8) uint8 {
		return uint8(math.Max(float64(base), math.Min(255, intensity)))
	}
	return render.RGB{R: ch(c.WallColor.R), G: ch(c.WallColor.G), B: ch(c.WallColor.B)}
}
