package engine

import (
	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/world"
)

// MinimapScale is pixels per grid cell
const MinimapScale = 8

var (
	mapBackground = render.RGB{R: 30, G: 30, B: 30}
	mapWall       = render.Gray(100)
	mapLadder     = render.RGB{R: 200, G: 150, B: 50}
	mapPlayer     = render.RGB{R: 255}
	mapActor      = render.RGB{R: 200, G: 200, B: 255}
)

// DrawMinimap draws the player's floor in the top-left corner:
// walls, ladders touching the floor, the player and actors on the same floor
func DrawMinimap(s *render.Surface, st world.State) {
	g := st.Floor()
	if g == nil {
		return
	}
	k := MinimapScale
	s.FillRect(0, 0, g.Width()*k, g.Height()*k, mapBackground)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			if g.Occupied(grid.Cell{X: x, Y: y}) {
				s.FillRect(x*k, y*k, k, k, mapWall)
			}
		}
	}

	for _, ln := range st.House.LinksTouching(st.Player.Floor) {
		s.FillRect(ln.Cell.X*k, ln.Cell.Y*k, k, k, mapLadder)
	}

	cell := g.CellSize()
	toMap := func(v float64) int { return int(v / cell * float64(k)) }

	s.FillCircle(toMap(st.Player.Pos.X), toMap(st.Player.Pos.Y), 3, mapPlayer)
	for _, a := range st.Actors {
		if a.Floor == st.Player.Floor {
			s.FillCircle(toMap(a.Pos.X), toMap(a.Pos.Y), 2, mapActor)
		}
	}
}
