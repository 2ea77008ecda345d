package vmath

import (
	"math"
)

// GridTraverser is a zero-allocation iterator for DDA grid traversal along a ray
// Cells are square with side cellSize, cell (i, j) covers [i*size, (i+1)*size)
type GridTraverser struct {
	currX, currY int
	stepX, stepY int

	tMaxX, tMaxY     float64
	tDeltaX, tDeltaY float64

	t    float64
	maxT float64

	started bool
	done    bool
}

// NewGridTraverser creates an iterator starting at (ox, oy) heading along (dx, dy)
// (dx, dy) must be a unit vector, traversal stops once entry distance exceeds maxT
func NewGridTraverser(ox, oy, dx, dy, cellSize, maxT float64) GridTraverser {
	t := GridTraverser{
		currX: FloorDiv(ox, cellSize),
		currY: FloorDiv(oy, cellSize),
		maxT:  maxT,
	}

	t.stepX, t.stepY = 1, 1
	if dx < 0 {
		t.stepX = -1
	}
	if dy < 0 {
		t.stepY = -1
	}

	if dx == 0 {
		t.tMaxX = math.Inf(1)
		t.tDeltaX = math.Inf(1)
	} else {
		t.tDeltaX = cellSize / math.Abs(dx)
		if dx > 0 {
			t.tMaxX = (float64(t.currX+1)*cellSize - ox) / dx
		} else {
			t.tMaxX = (ox - float64(t.currX)*cellSize) / -dx
		}
	}

	if dy == 0 {
		t.tMaxY = math.Inf(1)
		t.tDeltaY = math.Inf(1)
	} else {
		t.tDeltaY = cellSize / math.Abs(dy)
		if dy > 0 {
			t.tMaxY = (float64(t.currY+1)*cellSize - oy) / dy
		} else {
			t.tMaxY = (oy - float64(t.currY)*cellSize) / -dy
		}
	}

	return t
}

// Next advances to the next cell crossed by the ray
// Returns true if a valid cell is available via Pos() and Distance()
func (t *GridTraverser) Next() bool {
	if t.done {
		return false
	}
	if !t.started {
		t.started = true
		return true
	}

	next := math.Min(t.tMaxX, t.tMaxY)
	if next > t.maxT {
		t.done = true
		return false
	}

	if t.tMaxX < t.tMaxY {
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
	} else if t.tMaxX > t.tMaxY {
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	} else {
		// Exact corner, step diagonally
		t.currX += t.stepX
		t.tMaxX += t.tDeltaX
		t.currY += t.stepY
		t.tMaxY += t.tDeltaY
	}
	t.t = next

	return true
}

// Pos returns the current cell coordinates
func (t *GridTraverser) Pos() (int, int) {
	return t.currX, t.currY
}

// Distance returns the ray parameter at which the current cell was entered
func (t *GridTraverser) Distance() float64 {
	return t.t
}
