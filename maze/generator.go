// Package maze generates walled floor layouts for the haunted house.
package maze

import (
	"math/rand"
	"time"

	"github.com/lixenwraith/haunted/grid"
)

// Config controls floor generation
type Config struct {
	Width, Height int

	// Braiding: 0.0 (perfect maze, tree) to 1.0 (no dead ends)
	// Higher values open loops; plaza and pillar constraints take precedence
	Braiding float64

	CellSize float64
	Seed     int64 // 0 = time-seeded
}

// Result is a generated floor with its corner-to-corner route
type Result struct {
	Floor      *grid.Grid
	Start, End grid.Cell
	Path       []grid.Cell // nil when Start and End are disconnected
}

var (
	jumps = []grid.Cell{{X: 0, Y: -2}, {X: 0, Y: 2}, {X: -2, Y: 0}, {X: 2, Y: 0}}
	ortho = []grid.Cell{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}}
)

// Generate carves a maze with a solid border so the result satisfies grid.New
func Generate(cfg Config) Result {
	rows := ensureOdd(cfg.Height)
	cols := ensureOdd(cfg.Width)
	if cfg.CellSize <= 0 {
		cfg.CellSize = 64
	}

	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	start := grid.Cell{X: 1, Y: 1}
	end := grid.Cell{X: cols - 2, Y: rows - 2}

	carve(walls, start, rng)
	if cfg.Braiding > 0 {
		braid(walls, cfg.Braiding, rng)
	}

	// Border is never carved, New cannot fail on shape
	floor, err := grid.New(walls, cfg.CellSize)
	if err != nil {
		panic(err)
	}

	return Result{
		Floor: floor,
		Start: start,
		End:   end,
		Path:  Solve(floor, start, end),
	}
}

// carve runs the recursive backtracker from start, producing a spanning tree of odd cells
func carve(walls [][]bool, start grid.Cell, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	stack := []grid.Cell{start}
	walls[start.Y][start.X] = false

	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		candidates := make([]grid.Cell, 0, 4)
		for _, d := range jumps {
			nx, ny := curr.X+d.X, curr.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny][nx] {
				candidates = append(candidates, d)
			}
		}

		if len(candidates) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := candidates[rng.Intn(len(candidates))]
		walls[curr.Y+d.Y/2][curr.X+d.X/2] = false
		next := grid.Cell{X: curr.X + d.X, Y: curr.Y + d.Y}
		walls[next.Y][next.X] = false
		stack = append(stack, next)
	}
}

// braid knocks through dead ends with the given probability
func braid(walls [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if walls[y][x] {
				continue
			}

			exits := 0
			for _, d := range ortho {
				if !walls[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			candidates := make([]grid.Cell, 0, 4)
			for _, d := range jumps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				// Never open the outer border
				if wx <= 0 || wx >= cols-1 || wy <= 0 || wy >= rows-1 {
					continue
				}
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if !walls[ny][nx] && walls[wy][wx] && safeToOpen(walls, wx, wy) {
					candidates = append(candidates, grid.Cell{X: wx, Y: wy})
				}
			}

			if len(candidates) > 0 {
				c := candidates[rng.Intn(len(candidates))]
				walls[c.Y][c.X] = false
			}
		}
	}
}

// safeToOpen rejects openings that would create a 2x2 open plaza or an isolated pillar
func safeToOpen(walls [][]bool, x, y int) bool {
	rows, cols := len(walls), len(walls[0])
	open := func(tx, ty int) bool {
		if tx < 0 || tx >= cols || ty < 0 || ty >= rows {
			return false
		}
		return !walls[ty][tx]
	}

	// Plazas: each 2x2 quadrant around (x, y)
	quads := [][3][2]int{
		{{-1, -1}, {0, -1}, {-1, 0}},
		{{0, -1}, {1, -1}, {1, 0}},
		{{-1, 0}, {-1, 1}, {0, 1}},
		{{1, 0}, {0, 1}, {1, 1}},
	}
	for _, q := range quads {
		if open(x+q[0][0], y+q[0][1]) && open(x+q[1][0], y+q[1][1]) && open(x+q[2][0], y+q[2][1]) {
			return false
		}
	}

	// Pillars: a neighboring wall must keep at least one other wall neighbor
	for _, d := range ortho {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !walls[ny][nx] {
			continue
		}
		links := 0
		for _, d2 := range ortho {
			mx, my := nx+d2.X, ny+d2.Y
			if mx == x && my == y {
				continue
			}
			if mx >= 0 && mx < cols && my >= 0 && my < rows && walls[my][mx] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}

	return true
}

// Solve returns the shortest 4-connected route from start to end, nil if none
func Solve(g *grid.Grid, start, end grid.Cell) []grid.Cell {
	if g.Occupied(start) || g.Occupied(end) {
		return nil
	}

	cameFrom := map[grid.Cell]grid.Cell{}
	visited := map[grid.Cell]bool{start: true}
	queue := []grid.Cell{start}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		if curr == end {
			var path []grid.Cell
			for curr != start {
				path = append(path, curr)
				curr = cameFrom[curr]
			}
			path = append(path, start)
			for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
				path[i], path[j] = path[j], path[i]
			}
			return path
		}

		for _, d := range ortho {
			next := grid.Cell{X: curr.X + d.X, Y: curr.Y + d.Y}
			if !g.Occupied(next) && !visited[next] {
				visited[next] = true
				cameFrom[next] = curr
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// ensureOdd rounds down to the nearest odd size of at least 5
func ensureOdd(n int) int {
	if n < 5 {
		return 5
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}
