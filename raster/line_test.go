package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct{ x, y int }

func collect(fn func(Plot)) []point {
	var pts []point
	fn(func(x, y int) { pts = append(pts, point{x, y}) })
	return pts
}

func TestBresenhamEndpointsAndCount(t *testing.T) {
	tests := []struct {
		name           string
		x1, y1, x2, y2 int
	}{
		{"shallow", 0, 0, 80, 30},
		{"steep", 0, 0, 30, 80},
		{"reverse", 80, 30, 0, 0},
		{"vertical", 5, 0, 5, -10},
		{"diagonal", 0, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pts := collect(func(p Plot) { Bresenham(tt.x1, tt.y1, tt.x2, tt.y2, p) })
			assert.Equal(t, point{tt.x1, tt.y1}, pts[0])
			assert.Equal(t, point{tt.x2, tt.y2}, pts[len(pts)-1])
			assert.Len(t, pts, max(abs(tt.x2-tt.x1), abs(tt.y2-tt.y1))+1)

			// 8-connected: consecutive pixels differ by at most one on each axis
			for i := 1; i < len(pts); i++ {
				assert.LessOrEqual(t, abs(pts[i].x-pts[i-1].x), 1)
				assert.LessOrEqual(t, abs(pts[i].y-pts[i-1].y), 1)
			}
		})
	}
}

func TestBresenhamSinglePoint(t *testing.T) {
	pts := collect(func(p Plot) { Bresenham(3, 4, 3, 4, p) })
	assert.Equal(t, []point{{3, 4}}, pts)
}

func TestDDA(t *testing.T) {
	pts := collect(func(p Plot) { DDA(40, 40, 120, 120, p) })
	assert.Len(t, pts, 81)
	for i, pt := range pts {
		assert.Equal(t, point{40 + i, 40 + i}, pt)
	}

	pts = collect(func(p Plot) { DDA(7, 7, 7, 7, p) })
	assert.Equal(t, []point{{7, 7}}, pts)
}

func TestSegmentTransforms(t *testing.T) {
	s := Segment{100, 100, 600, 600}
	assert.Equal(t, Segment{110, 100, 610, 600}, s.Translate(10, 0))

	frames := s.Sweep(10, 500)
	assert.Len(t, frames, 50)
	assert.Equal(t, 490, frames[len(frames)-1].X1-s.X1)

	r := Segment{10, 0, 0, 10}.Rotate(90)
	assert.Equal(t, Segment{0, 10, -10, 0}, r)
}

func TestCircleIsSymmetric(t *testing.T) {
	pts := collect(func(p Plot) { Circle(0, 0, 10, p) })
	set := map[point]bool{}
	for _, p := range pts {
		set[p] = true
		assert.InDelta(t, 100, p.x*p.x+p.y*p.y, 21)
	}
	assert.True(t, set[point{10, 0}])
	assert.True(t, set[point{0, -10}])
	assert.True(t, set[point{-10, 0}])
}
