package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/level"
	"github.com/lixenwraith/haunted/maze"
)

var (
	widthFlag  = flag.Int("width", 15, "Floor width in cells [odd preferred]")
	heightFlag = flag.Int("height", 11, "Floor height in cells [odd preferred]")
	floorsFlag = flag.Int("floors", 2, "Number of floors")
	seedFlag   = flag.Uint64("seed", 0, "Seed (0 = time-seeded)")
	outFlag    = flag.String("out", "", "Write the level YAML here instead of stdout")
	quietFlag  = flag.Bool("quiet", false, "Skip the floor preview on stderr")
)

func main() {
	flag.Parse()

	seed := *seedFlag
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	start := time.Now()
	lvl := level.Generated(seed, *floorsFlag, *widthFlag, *heightFlag)
	house, err := lvl.Building()
	if err != nil {
		log.Fatalf("maze-generator: %v", err)
	}

	if !*quietFlag {
		fmt.Fprintf(os.Stderr, "%s: %d floors in %v\n", lvl.Name, len(house.Floors), time.Since(start))
		for i, g := range house.Floors {
			preview(i, g, house)
		}
	}

	data, err := lvl.Encode()
	if err != nil {
		log.Fatalf("maze-generator: %v", err)
	}
	if *outFlag == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*outFlag, data, 0o644); err != nil {
		log.Fatalf("maze-generator: %v", err)
	}
}

// preview draws one floor with its corner-to-corner route and ladders
func preview(floor int, g *grid.Grid, house *grid.Building) {
	end := grid.Cell{X: g.Width() - 2, Y: g.Height() - 2}
	path := maze.Solve(g, grid.Cell{X: 1, Y: 1}, end)
	onPath := make(map[grid.Cell]bool, len(path))
	for _, c := range path {
		onPath[c] = true
	}
	ladders := map[grid.Cell]bool{}
	for _, ln := range house.LinksTouching(floor) {
		ladders[ln.Cell] = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "floor %d", floor)
	if path == nil {
		b.WriteString(" (corners disconnected)")
	} else {
		fmt.Fprintf(&b, " (route %d steps)", len(path))
	}
	b.WriteByte('\n')

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			c := grid.Cell{X: x, Y: y}
			switch {
			case g.Occupied(c):
				b.WriteString("█")
			case ladders[c]:
				b.WriteString("H")
			case onPath[c]:
				b.WriteString("•")
			default:
				b.WriteByte(' ')
			}
		}
		b.WriteByte('\n')
	}
	fmt.Fprint(os.Stderr, b.String())
}
