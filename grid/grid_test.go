package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func TestParse(t *testing.T) {
	g, err := Parse(house, 64)
	require.NoError(t, err)

	assert.Equal(t, 9, g.Width())
	assert.Equal(t, 6, g.Height())
	assert.True(t, g.Occupied(Cell{0, 0}))
	assert.False(t, g.Occupied(Cell{1, 1}))
	assert.True(t, g.Occupied(Cell{2, 2}))
	assert.Equal(t, house[1:], g.String())
}

func TestNewRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name string
		rows [][]int
		want error
	}{
		{"empty", nil, ErrEmpty},
		{"ragged", [][]int{{1, 1, 1}, {1, 1}}, ErrRagged},
		{"open border", [][]int{{1, 1, 1}, {0, 0, 1}, {1, 1, 1}}, ErrOpenBorder},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromInts(tt.rows, 64)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := FromInts([][]int{{1}}, 0)
	assert.ErrorIs(t, err, ErrCellSize)
}

func TestOutOfBoundsIsOccupied(t *testing.T) {
	g := MustParse(house, 64)
	assert.True(t, g.Occupied(Cell{-1, 3}))
	assert.True(t, g.Occupied(Cell{3, 99}))
	assert.True(t, g.Blocked(vmath.V2(-10, 10)))
}

func TestCellAtAndCenter(t *testing.T) {
	g := MustParse(house, 64)
	assert.Equal(t, Cell{1, 1}, g.CellAt(vmath.V2(96, 96)))
	assert.Equal(t, Cell{2, 1}, g.CellAt(vmath.V2(128, 127.9)))
	assert.Equal(t, vmath.V2(96, 96), g.Center(Cell{1, 1}))
}

func TestOpenCells(t *testing.T) {
	g := MustParse("###\n#.#\n###", 1)
	assert.Equal(t, []Cell{{1, 1}}, g.OpenCells())
}

func TestBuildingTransitions(t *testing.T) {
	b := &Building{
		Floors: []*Grid{MustParse(house, 64), MustParse(house, 64)},
		Links:  []Link{{Cell{1, 1}, 0, 1}, {Cell{7, 4}, 1, 0}},
	}
	require.NoError(t, b.Validate())

	l, ok := b.Transition(0, Cell{1, 1})
	assert.True(t, ok)
	assert.Equal(t, 1, l.To)

	_, ok = b.Transition(1, Cell{1, 1})
	assert.False(t, ok, "link only fires from its source floor")

	assert.Len(t, b.LinksTouching(0), 2)
	assert.Nil(t, b.Floor(5))
}

func TestBuildingValidate(t *testing.T) {
	b := &Building{
		Floors: []*Grid{MustParse(house, 64)},
		Links:  []Link{{Cell{1, 1}, 0, 3}},
	}
	assert.ErrorIs(t, b.Validate(), ErrBadLink)

	b.Links = []Link{{Cell{2, 2}, 0, 0}}
	assert.ErrorIs(t, b.Validate(), ErrBadLink, "landing on a wall")

	assert.ErrorIs(t, (&Building{}).Validate(), ErrEmpty)
}
