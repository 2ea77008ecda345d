package raycast

import (
	"image"
	"image/draw"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/maze"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/vmath"
)

const house = `
#########
#.......#
#.#.#.#.#
#.#.#.#.#
#.......#
#########
`

const pillar = `
##########
#........#
#....#...#
#........#
##########
`

func solid(w, h int, c render.RGB) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
	return img
}

func TestMarchHitsRightBorder(t *testing.T) {
	g := grid.MustParse(house, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 1})

	hit, ok := March(g, origin, 0, 800, 1)
	require.True(t, ok)
	assert.Equal(t, grid.Cell{X: 8, Y: 1}, hit.Cell)
	assert.Equal(t, 416.0, hit.Distance)

	exact, ok := MarchExact(g, origin, 0, 800)
	require.True(t, ok)
	assert.Equal(t, hit.Cell, exact.Cell)
	assert.InDelta(t, 416, exact.Distance, 1e-9)
}

func TestMarchIsolatedWall(t *testing.T) {
	g := grid.MustParse(pillar, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 2})

	for _, step := range []float64{1, 3, 7.5} {
		hit, ok := March(g, origin, 0, 800, step)
		require.True(t, ok)
		assert.Equal(t, grid.Cell{X: 5, Y: 2}, hit.Cell)
		assert.InDelta(t, 224, hit.Distance, step)
		assert.GreaterOrEqual(t, hit.Distance, 224.0)
	}
}

func TestMarchRespectsCap(t *testing.T) {
	g := grid.MustParse(pillar, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 2})

	_, ok := March(g, origin, 0, 223, 1)
	assert.False(t, ok)

	// Cap is inclusive
	hit, ok := March(g, origin, 0, 224, 1)
	require.True(t, ok)
	assert.Equal(t, 224.0, hit.Distance)

	_, ok = MarchExact(g, origin, 0, 223)
	assert.False(t, ok)
}

func TestMarchOutOfBoundsIsNotAHit(t *testing.T) {
	g := grid.MustParse(house, 64)
	// Outside the map looking away from it
	_, ok := March(g, vmath.V2(-100, 96), math.Pi, 500, 1)
	assert.False(t, ok)
	_, ok = MarchExact(g, vmath.V2(-100, 96), math.Pi, 500)
	assert.False(t, ok)
}

func TestMarchNeverReportsOpenCell(t *testing.T) {
	res := maze.Generate(maze.Config{Width: 15, Height: 11, Braiding: 0.4, CellSize: 64, Seed: 7})
	g := res.Floor
	rng := rand.New(rand.NewPCG(1, 2))
	open := g.OpenCells()

	for i := 0; i < 300; i++ {
		c := open[rng.IntN(len(open))]
		origin := g.Center(c).Add(vmath.V2(rng.Float64()*40-20, rng.Float64()*40-20))
		angle := rng.Float64() * vmath.Tau

		hit, ok := March(g, origin, angle, 2000, 1)
		require.True(t, ok, "bordered floor always stops the ray")
		assert.True(t, g.Occupied(hit.Cell))
		assert.LessOrEqual(t, hit.Distance, 2000.0)

		exact, ok := MarchExact(g, origin, angle, 2000)
		require.True(t, ok)
		assert.True(t, g.Occupied(exact.Cell))
		// Sampling can only find a wall after the exact boundary crossing
		assert.GreaterOrEqual(t, hit.Distance, exact.Distance-1e-9)
		if hit.Cell == exact.Cell {
			assert.Less(t, hit.Distance-exact.Distance, 1.0+1e-9)
		}
	}
}

func TestCastColumns(t *testing.T) {
	g := grid.MustParse(house, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 1})

	cam := DefaultCamera()
	cam.Columns = 1

	// Left-edge sampling puts the single ray at heading - FOV/2
	cols := cam.Cast(g, origin, 0, nil)
	require.Len(t, cols, 1)
	assert.InDelta(t, -math.Pi/6, cols[0].Angle, 1e-12)
	require.True(t, cols[0].OK)
	assert.Equal(t, 0, cols[0].Hit.Cell.Y)

	// Centered sampling looks straight ahead
	cam.Centered = true
	cols = cam.Cast(g, origin, 0, cols)
	require.Len(t, cols, 1)
	assert.Equal(t, grid.Cell{X: 8, Y: 1}, cols[0].Hit.Cell)
	assert.Equal(t, 416.0, cols[0].Depth)

	cam.Method = MarchDDA
	cols = cam.Cast(g, origin, 0, cols)
	assert.InDelta(t, 416, cols[0].Depth, 1e-9)
}

func TestCastCorrection(t *testing.T) {
	g := grid.MustParse(house, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 1})

	cam := DefaultCamera()
	cam.Columns = 12
	raw := cam.Cast(g, origin, 0.2, nil)

	cam.Correction = CorrectionCosine
	corrected := cam.Cast(g, origin, 0.2, nil)

	for i := range raw {
		require.True(t, raw[i].OK)
		assert.Equal(t, raw[i].Hit, corrected[i].Hit)
		assert.Equal(t, raw[i].Hit.Distance, raw[i].Depth)
		assert.InDelta(t, raw[i].Hit.Distance*math.Cos(raw[i].Angle-0.2), corrected[i].Depth, 1e-9)
	}
}

func TestValidate(t *testing.T) {
	cam := DefaultCamera()
	require.NoError(t, cam.Validate(64))

	cam.Step = 65
	assert.ErrorIs(t, cam.Validate(64), ErrStepTooLarge)

	// Exact traversal ignores the step
	cam.Method = MarchDDA
	assert.NoError(t, cam.Validate(64))

	bad := DefaultCamera()
	bad.FOV = math.Pi
	assert.ErrorIs(t, bad.Validate(64), ErrCamera)

	bad = DefaultCamera()
	bad.Columns = 0
	assert.ErrorIs(t, bad.Validate(64), ErrCamera)
}

func TestSliceHeightNonIncreasing(t *testing.T) {
	cam := DefaultCamera()
	assert.Equal(t, cam.Height, cam.SliceHeight(0, 64))

	prev := cam.SliceHeight(0, 64)
	for d := 0.5; d <= 2000; d += 0.5 {
		h := cam.SliceHeight(d, 64)
		require.LessOrEqual(t, h, prev, "distance %.1f", d)
		require.GreaterOrEqual(t, h, 0)
		prev = h
	}

	want := int(400 / math.Tan(math.Pi/6) * 64 / (416 + cam.Epsilon))
	assert.Equal(t, want, cam.SliceHeight(416, 64))
}

func TestShade(t *testing.T) {
	cam := DefaultCamera()
	assert.Equal(t, render.RGBWhite, cam.Shade(0))
	assert.Equal(t, render.Gray(127), cam.Shade(50))
	assert.Equal(t, render.Gray(40), cam.Shade(10000), "clamped to the base wall color")

	cam.Shading = ShadeFlat
	cam.WallColor = render.Gray(80)
	assert.Equal(t, render.Gray(80), cam.Shade(0))
	assert.Equal(t, render.Gray(80), cam.Shade(700))
}

func TestPaintColumns(t *testing.T) {
	g := grid.MustParse(house, 64)
	origin := g.Center(grid.Cell{X: 1, Y: 1})

	cam := DefaultCamera()
	cam.Width, cam.Height, cam.Columns = 120, 60, 12
	cam.Centered = true

	s := render.NewSurface(cam.Width, cam.Height)
	ceiling, floor := render.RGB{B: 30}, render.RGB{G: 30}
	cam.PaintBackground(s, ceiling, floor)
	assert.Equal(t, ceiling, s.At(0, 0))
	assert.Equal(t, floor, s.At(0, 59))

	cols := cam.Cast(g, origin, 0, nil)
	red := render.RGB{R: 200}
	decorate := func(c Column) image.Image {
		if c.Hit.Cell == (grid.Cell{X: 8, Y: 1}) {
			return solid(4, 4, red)
		}
		return nil
	}
	cam.PaintColumns(s, cols, 64, decorate)

	// Column 6 looks straight down the corridor into the decorated border cell
	mid := cols[6]
	require.Equal(t, grid.Cell{X: 8, Y: 1}, mid.Hit.Cell)
	assert.Equal(t, red, s.At(6*cam.SliceWidth()+5, cam.Height/2))

	// Column 0 hits a plain wall close by and is shaded
	first := cols[0]
	require.True(t, first.OK)
	assert.Equal(t, cam.Shade(first.Depth), s.At(2, cam.Height/2))
}

func TestPaintColumnsSkipsMisses(t *testing.T) {
	cam := DefaultCamera()
	cam.Width, cam.Height, cam.Columns = 40, 20, 4
	s := render.NewSurface(40, 20)
	cam.PaintColumns(s, []Column{{Index: 1, OK: false}}, 64, nil)
	assert.Equal(t, render.RGBBlack, s.At(15, 10))
}

func TestProjectSpriteVisibility(t *testing.T) {
	cam := DefaultCamera()
	origin := vmath.V2(100, 100)

	tests := []struct {
		name    string
		heading float64
		bearing float64
		visible bool
	}{
		{"ahead", 0, 0, true},
		{"inside left", 0, -0.5, true},
		{"inside right", 0, 0.5, true},
		{"just past edge", 0, math.Pi/6 + 1e-6, false},
		{"behind", 0, math.Pi, false},
		{"wrap across pi", math.Pi - 0.1, 0.2, true},
		{"wrap across -pi", -math.Pi + 0.1, -0.2, true},
		{"far right", 1, 1.2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := origin.Add(vmath.FromAngle(tt.heading + tt.bearing).Scale(200))
			b, ok := cam.ProjectSprite(origin, tt.heading, target, 64)
			assert.Equal(t, tt.visible, ok)
			assert.InDelta(t, 200, b.Distance, 1e-9)
			assert.LessOrEqual(t, math.Abs(b.Bearing), math.Pi)
		})
	}
}

func TestProjectSpritePlacement(t *testing.T) {
	cam := DefaultCamera()
	origin := vmath.V2(100, 100)

	b, ok := cam.ProjectSprite(origin, 0, vmath.V2(300, 100), 64)
	require.True(t, ok)
	assert.Equal(t, cam.SliceHeight(200, 64), b.Size)
	assert.Equal(t, 400-b.Size/2, b.X)
	assert.Equal(t, 300-b.Size/2, b.Y)

	// Positive bearing (screen y grows downward) lands right of center
	right, ok := cam.ProjectSprite(origin, 0, origin.Add(vmath.FromAngle(0.3).Scale(200)), 64)
	require.True(t, ok)
	assert.Greater(t, right.X, b.X)
}

func TestPaintSprite(t *testing.T) {
	s := render.NewSurface(100, 100)
	b := Billboard{X: 10, Y: 10, Size: 20}
	PaintSprite(s, b, solid(2, 2, render.RGBWhite))
	assert.Equal(t, render.RGBWhite, s.At(15, 15))
	assert.Equal(t, render.RGBBlack, s.At(35, 15))

	// Nil frames and empty billboards draw nothing
	PaintSprite(s, Billboard{X: 50, Y: 50, Size: 10}, nil)
	PaintSprite(s, Billboard{X: 50, Y: 50}, solid(2, 2, render.RGBWhite))
	assert.Equal(t, render.RGBBlack, s.At(55, 55))
}
