package level

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/vmath"
)

func rng() *rand.Rand { return rand.New(rand.NewPCG(1, 1)) }

func TestBuiltinUltimate(t *testing.T) {
	lvl, err := Builtin("ultimate")
	require.NoError(t, err)

	s, err := lvl.State(rng())
	require.NoError(t, err)

	require.Len(t, s.House.Floors, 2)
	assert.Len(t, s.House.Links, 4)
	assert.Equal(t, vmath.V2(96, 96), s.Player.Pos)
	assert.Equal(t, 0, s.Player.Floor)

	require.Len(t, s.Actors, 4)
	assert.Equal(t, vmath.V2(224, 160), s.Actors[0].Pos)
	assert.Equal(t, "ghost1", s.Actors[0].FrameSet)
	assert.Equal(t, 1, s.Actors[3].Floor)
	for _, a := range s.Actors {
		assert.Contains(t, []float64{-1, 1}, a.DX)
		assert.Contains(t, []float64{-1, 1}, a.DY)
	}

	require.Len(t, s.Elements, 7)
	e, ok := s.ElementAt(1, grid.Cell{X: 7, Y: 1})
	require.True(t, ok)
	assert.Equal(t, "mirror", e.Kind)
	assert.Equal(t, -1, e.Floor)
}

func TestBuiltinStickman(t *testing.T) {
	lvl, err := Builtin("stickman")
	require.NoError(t, err)
	s, err := lvl.State(rng())
	require.NoError(t, err)

	assert.Len(t, s.House.Floors, 1)
	require.Len(t, s.Actors, 4)
	assert.Equal(t, "stickman", s.Actors[0].Sprite)
	assert.Equal(t, vmath.V2(288, 256), s.Actors[3].Pos)
	assert.Empty(t, s.Elements)
}

func TestBuiltinNames(t *testing.T) {
	assert.Equal(t, []string{"stickman", "ultimate"}, BuiltinNames())

	_, err := Builtin("mansion")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestStateErrors(t *testing.T) {
	base := `
name: test
floors:
  - |
    #####
    #...#
    #####
player: {x: 1.5, y: 1.5}
`
	tests := []struct {
		name  string
		extra string
		want  error
	}{
		{"actor floor", "actors:\n  - {x: 1.5, y: 1.5, floor: 3}\n", ErrUnknownFloor},
		{"element floor", "elements:\n  - {x: 0, y: 0, floor: 2, kind: crack}\n", ErrUnknownFloor},
		{"link floor", "links:\n  - {x: 1, y: 1, from: 0, to: 1}\n", grid.ErrBadLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lvl, err := Parse([]byte(base + tt.extra))
			require.NoError(t, err)
			_, err = lvl.State(rng())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestStateRejectsBadFloors(t *testing.T) {
	lvl, err := Parse([]byte("name: x\nfloors:\n  - |\n    ###\n    #.\n    ###\n"))
	require.NoError(t, err)
	_, err = lvl.State(rng())
	assert.ErrorIs(t, err, grid.ErrRagged)

	lvl, err = Parse([]byte("name: x\nfloors:\n  - |\n    ###\n    #..\n    ###\n"))
	require.NoError(t, err)
	_, err = lvl.State(rng())
	assert.ErrorIs(t, err, grid.ErrOpenBorder)

	_, err = (&Level{}).State(rng())
	assert.ErrorIs(t, err, ErrNoFloors)

	lvl, err = Parse([]byte("name: x\nfloors:\n  - |\n    ###\n    #.#\n    ###\nplayer: {x: 0.5, y: 0.5}\n"))
	require.NoError(t, err)
	_, err = lvl.State(rng())
	assert.ErrorContains(t, err, "inside a wall")

	_, err = Parse([]byte("floors: [unclosed"))
	assert.ErrorContains(t, err, "level parse")
}

func TestLoadAndResolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tiny.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: tiny\nfloors:\n  - |\n    ###\n    #.#\n    ###\nplayer: {x: 1.5, y: 1.5}\n"), 0o644))

	lvl, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "tiny", lvl.Name)
	assert.Equal(t, 64.0, lvl.CellSize)

	lvl, err = Resolve("stickman")
	require.NoError(t, err)
	assert.Equal(t, "stickman", lvl.Name)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "read level")
}

func TestGenerated(t *testing.T) {
	a := Generated(42, 3, 13, 9)
	b := Generated(42, 3, 13, 9)
	assert.Equal(t, a.Floors, b.Floors)
	assert.Equal(t, a.Links, b.Links)

	require.Len(t, a.Floors, 3)
	require.Len(t, a.Links, 4)
	for i := 0; i < len(a.Links); i += 2 {
		up, down := a.Links[i], a.Links[i+1]
		assert.NotEqual(t, [2]int{up.X, up.Y}, [2]int{down.X, down.Y})
		assert.Equal(t, up.From+1, up.To)
		assert.Equal(t, down.From-1, down.To)
	}

	s, err := a.State(rng())
	require.NoError(t, err)
	for _, actor := range s.Actors {
		assert.False(t, s.House.Floor(actor.Floor).Blocked(actor.Pos))
	}
	for _, e := range s.Elements {
		assert.True(t, s.House.Floor(0).Occupied(e.Cell))
	}
	assert.NotEmpty(t, a.String())
}

func TestEncodeGenerated(t *testing.T) {
	a := Generated(7, 2, 11, 9)
	data, err := a.Encode()
	require.NoError(t, err)

	b, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, a.Floors, b.Floors)
	assert.Equal(t, a.Links, b.Links)
	assert.Len(t, b.Actors, len(a.Actors))

	_, err = b.State(rng())
	assert.NoError(t, err)
}
