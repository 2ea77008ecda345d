// Package grid holds the static occupancy maps the raycaster walks and the
// links that connect floors of a building.
package grid

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lixenwraith/haunted/vmath"
)

var (
	ErrEmpty      = errors.New("grid: empty layout")
	ErrRagged     = errors.New("grid: rows have different lengths")
	ErrOpenBorder = errors.New("grid: border cell is not a wall")
	ErrCellSize   = errors.New("grid: cell size must be positive")
)

// Cell is an integer grid coordinate
type Cell struct {
	X, Y int
}

// Grid is an immutable occupancy map, true = wall
// Every border cell is a wall, which keeps rays and movers inside
type Grid struct {
	width, height int
	cellSize      float64
	cells         []bool // row-major: cells[y*width + x]
}

// New builds a grid from rows of wall flags, rows[y][x]
func New(rows [][]bool, cellSize float64) (*Grid, error) {
	if cellSize <= 0 {
		return nil, ErrCellSize
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	h, w := len(rows), len(rows[0])
	g := &Grid{width: w, height: h, cellSize: cellSize, cells: make([]bool, w*h)}
	for y, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(row), w)
		}
		copy(g.cells[y*w:], row)
	}

	for x := 0; x < w; x++ {
		if !g.cells[x] || !g.cells[(h-1)*w+x] {
			return nil, fmt.Errorf("%w: column %d", ErrOpenBorder, x)
		}
	}
	for y := 0; y < h; y++ {
		if !g.cells[y*w] || !g.cells[y*w+w-1] {
			return nil, fmt.Errorf("%w: row %d", ErrOpenBorder, y)
		}
	}

	return g, nil
}

// FromInts builds a grid from 0/1 rows, any non-zero value is a wall
func FromInts(rows [][]int, cellSize float64) (*Grid, error) {
	b := make([][]bool, len(rows))
	for y, row := range rows {
		b[y] = make([]bool, len(row))
		for x, v := range row {
			b[y][x] = v != 0
		}
	}
	return New(b, cellSize)
}

// Parse builds a grid from text rows: '1' or '#' is a wall, '0', '.' or ' ' is open
// Blank lines are skipped
func Parse(text string, cellSize float64) (*Grid, error) {
	var rows [][]bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		row := make([]bool, 0, len(line))
		for i, r := range line {
			switch r {
			case '1', '#':
				row = append(row, true)
			case '0', '.', ' ':
				row = append(row, false)
			default:
				return nil, fmt.Errorf("grid: row %d col %d: unexpected %q", len(rows), i, r)
			}
		}
		rows = append(rows, row)
	}
	return New(rows, cellSize)
}

// MustParse is Parse for built-in layouts, panics on error
func MustParse(text string, cellSize float64) *Grid {
	g, err := Parse(text, cellSize)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) Width() int { return g.width }
func (g *Grid) Height() int { return g.height }
func (g *Grid) CellSize() float64 { return g.cellSize }
func (g *Grid) InBounds(c Cell) bool { return c.X >= 0 && c.X < g.width && c.Y >= 0 && c.Y < g.height }

// Occupied reports whether a cell blocks movement, out-of-range cells block
func (g *Grid) Occupied(c Cell) bool {
	if !g.InBounds(c) {
		return true
	}
	return g.cells[c.Y*g.width+c.X]
}

// CellAt returns the cell containing a world-space point
func (g *Grid) CellAt(p vmath.Vec2) Cell {
	return Cell{X: vmath.FloorDiv(p.X, g.cellSize), Y: vmath.FloorDiv(p.Y, g.cellSize)}
}

// Blocked reports whether the cell containing p is occupied
func (g *Grid) Blocked(p vmath.Vec2) bool {
	return g.Occupied(g.CellAt(p))
}

// Center returns the world-space center of a cell
func (g *Grid) Center(c Cell) vmath.Vec2 {
	return vmath.Vec2{
		X: (float64(c.X) + 0.5) * g.cellSize,
		Y: (float64(c.Y) + 0.5) * g.cellSize,
	}
}

// OpenCells lists every walkable cell in row-major order
func (g *Grid) OpenCells() []Cell {
	var out []Cell
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if !g.cells[y*g.width+x] {
				out = append(out, Cell{x, y})
			}
		}
	}
	return out
}

// String renders the grid with '#' walls and '.' floor
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if g.cells[y*g.width+x] {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
