package raycast

import (
	"math"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/vmath"
)

// Hit is the first wall a ray meets
type Hit struct {
	Distance float64
	Cell     grid.Cell
}

// March samples the ray every step units from distance 0 up to and including maxDepth
// Returns the first in-bounds occupied cell; out-of-bounds samples are skipped
func March(g *grid.Grid, origin vmath.Vec2, angle, maxDepth, step float64) (Hit, bool) {
	sin, cos := math.Sincos(angle)
	n := int(maxDepth / step)
	for i := 0; i <= n; i++ {
		d := float64(i) * step
		p := vmath.Vec2{X: origin.X + d*cos, Y: origin.Y + d*sin}
		c := g.CellAt(p)
		if g.InBounds(c) && g.Occupied(c) {
			return Hit{Distance: d, Cell: c}, true
		}
	}
	return Hit{}, false
}

// MarchExact walks cell boundaries and reports the exact entry distance of the first wall
func MarchExact(g *grid.Grid, origin vmath.Vec2, angle, maxDepth float64) (Hit, bool) {
	sin, cos := math.Sincos(angle)
	tr := vmath.NewGridTraverser(origin.X, origin.Y, cos, sin, g.CellSize(), maxDepth)
	for tr.Next() {
		x, y := tr.Pos()
		c := grid.Cell{X: x, Y: y}
		if !g.InBounds(c) {
			// Border walls keep rays inside, leaving bounds means no hit
			return Hit{}, false
		}
		if g.Occupied(c) {
			return Hit{Distance: tr.Distance(), Cell: c}, true
		}
	}
	return Hit{}, false
}

// Column is one ray's result
type Column struct {
	Index int
	Angle float64
	Hit   Hit
	OK    bool    // false when nothing was hit within MaxDepth
	Depth float64 // distance used for projection, after fisheye correction
}

// Cast marches one ray per column and appends the results to dst[:0]
func (c Camera) Cast(g *grid.Grid, origin vmath.Vec2, heading float64, dst []Column) []Column {
	dst = dst[:0]
	for k := 0; k < c.Columns; k++ {
		angle := c.ColumnAngle(heading, k)

		var hit Hit
		var ok bool
		if c.Method == MarchDDA {
			hit, ok = MarchExact(g, origin, angle, c.MaxDepth)
		} else {
			hit, ok = March(g, origin, angle, c.MaxDepth, c.Step)
		}

		depth := hit.Distance
		if ok && c.Correction == CorrectionCosine {
			depth *= math.Cos(angle - heading)
		}
		dst = append(dst, Column{Index: k, Angle: angle, Hit: hit, OK: ok, Depth: depth})
	}
	return dst
}
