// Package raster implements the classic integer line and circle algorithms.
// Every function emits pixels through a plot callback and never allocates.
package raster

import "math"

// Plot receives one rasterized pixel
type Plot func(x, y int)

// Bresenham plots every pixel of the segment (x1, y1)-(x2, y2) inclusive of both ends
// Uses the decision-parameter form: p = 2dy - dx for shallow lines, mirrored for steep
func Bresenham(x1, y1, x2, y2 int, plot Plot) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x2 < x1 {
		sx = -1
	}
	if y2 < y1 {
		sy = -1
	}

	x, y := x1, y1
	plot(x, y)

	if dx >= dy {
		p := 2*dy - dx
		for i := 0; i < dx; i++ {
			x += sx
			if p < 0 {
				p += 2 * dy
			} else {
				y += sy
				p += 2*dy - 2*dx
			}
			plot(x, y)
		}
		return
	}

	p := 2*dx - dy
	for i := 0; i < dy; i++ {
		y += sy
		if p < 0 {
			p += 2 * dx
		} else {
			x += sx
			p += 2*dx - 2*dy
		}
		plot(x, y)
	}
}

// DDA plots the segment by stepping the major axis one pixel at a time and
// rounding the minor axis, steps+1 pixels in total
func DDA(x1, y1, x2, y2 int, plot Plot) {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	steps := max(abs(x2-x1), abs(y2-y1))
	if steps == 0 {
		plot(x1, y1)
		return
	}

	xinc := dx / float64(steps)
	yinc := dy / float64(steps)
	x, y := float64(x1), float64(y1)
	for i := 0; i <= steps; i++ {
		plot(int(math.Round(x)), int(math.Round(y)))
		x += xinc
		y += yinc
	}
}

// Segment is an integer line segment
type Segment struct {
	X1, Y1, X2, Y2 int
}

// Translate shifts the segment by (tx, ty)
func (s Segment) Translate(tx, ty int) Segment {
	return Segment{s.X1 + tx, s.Y1 + ty, s.X2 + tx, s.Y2 + ty}
}

// Rotate rotates both endpoints about the origin by deg degrees (y-down screen: clockwise)
func (s Segment) Rotate(deg float64) Segment {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	rot := func(x, y int) (int, int) {
		fx, fy := float64(x), float64(y)
		return int(math.Round(fx*cos - fy*sin)), int(math.Round(fx*sin + fy*cos))
	}
	x1, y1 := rot(s.X1, s.Y1)
	x2, y2 := rot(s.X2, s.Y2)
	return Segment{x1, y1, x2, y2}
}

// Sweep returns the frames of a horizontal translation: offsets 0, step, 2*step, ... below limit
func (s Segment) Sweep(step, limit int) []Segment {
	if step <= 0 {
		return []Segment{s}
	}
	out := make([]Segment, 0, (limit+step-1)/step)
	for tx := 0; tx < limit; tx += step {
		out = append(out, s.Translate(tx, 0))
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
