package level

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lixenwraith/haunted/asset"
	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/maze"
)

// GeneratedActorsPerFloor is the ghost count placed on each generated floor
const GeneratedActorsPerFloor = 2

// Generated builds a house of maze floors
// Consecutive floors are joined by an up link and a separate down link on always-open odd cells,
// the player starts at cell (1, 1) of floor 0 and ghosts start on random open cells
func Generated(seed uint64, floors, width, height int) *Level {
	floors = max(floors, 1)
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))

	lvl := &Level{
		Name:     fmt.Sprintf("generated-%d", seed),
		CellSize: 64,
		Player:   Spawn{X: 1.5, Y: 1.5},
	}

	var grids []*grid.Grid
	for f := 0; f < floors; f++ {
		res := maze.Generate(maze.Config{
			Width:    width,
			Height:   height,
			Braiding: 0.3,
			CellSize: lvl.CellSize,
			Seed:     int64(rng.Uint64()>>1) | 1,
		})
		grids = append(grids, res.Floor)
		lvl.Floors = append(lvl.Floors, res.Floor.String())
	}

	// Odd cells are carved on every maze of the same size
	w, h := grids[0].Width(), grids[0].Height()
	var odd []grid.Cell
	for y := 1; y < h-1; y += 2 {
		for x := 1; x < w-1; x += 2 {
			if x == 1 && y == 1 {
				continue
			}
			odd = append(odd, grid.Cell{X: x, Y: y})
		}
	}
	rng.Shuffle(len(odd), func(i, j int) { odd[i], odd[j] = odd[j], odd[i] })

	next := 0
	take := func() grid.Cell {
		c := odd[next%len(odd)]
		next++
		return c
	}
	for f := 0; f+1 < floors && len(odd) >= 2; f++ {
		up, down := take(), take()
		lvl.Links = append(lvl.Links,
			Link{X: up.X, Y: up.Y, From: f, To: f + 1},
			Link{X: down.X, Y: down.Y, From: f + 1, To: f},
		)
	}

	for f, g := range grids {
		open := g.OpenCells()
		for i := 0; i < GeneratedActorsPerFloor && len(open) > 0; i++ {
			c := open[rng.IntN(len(open))]
			if c.X == 1 && c.Y == 1 && f == 0 {
				continue
			}
			lvl.Actors = append(lvl.Actors, Actor{
				X:      float64(c.X) + 0.5,
				Y:      float64(c.Y) + 0.5,
				Floor:  f,
				Frames: fmt.Sprintf("ghost%d", len(lvl.Actors)%4+1),
				Sprite: asset.SpriteGhost,
			})
		}
	}

	kinds := []string{asset.KindCrack, asset.KindSkeleton, asset.KindChair, asset.KindMirror, asset.KindPainting}
	for _, kind := range kinds {
		x, y := rng.IntN(w), rng.IntN(h)
		if grids[0].Occupied(grid.Cell{X: x, Y: y}) {
			lvl.Elements = append(lvl.Elements, Element{X: x, Y: y, Kind: kind})
		}
	}
	return lvl
}

// String renders the level's floors for debugging
func (l *Level) String() string {
	var b strings.Builder
	for i, f := range l.Floors {
		fmt.Fprintf(&b, "floor %d\n%s", i, f)
	}
	return b.String()
}
