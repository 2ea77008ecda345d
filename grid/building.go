package grid

import (
	"errors"
	"fmt"
)

var ErrBadLink = errors.New("grid: invalid floor link")

// Link teleports a player standing on Cell of floor From to the same cell on floor To
type Link struct {
	Cell     Cell
	From, To int
}

// Building is an ordered stack of floors plus the static link table between them
type Building struct {
	Floors []*Grid
	Links  []Link
}

// Validate checks that floors exist and every link lands on open cells of existing floors
func (b *Building) Validate() error {
	if len(b.Floors) == 0 {
		return ErrEmpty
	}
	for i, l := range b.Links {
		if l.From < 0 || l.From >= len(b.Floors) || l.To < 0 || l.To >= len(b.Floors) {
			return fmt.Errorf("%w: link %d references floor %d->%d of %d", ErrBadLink, i, l.From, l.To, len(b.Floors))
		}
		if !b.Floors[l.To].InBounds(l.Cell) || b.Floors[l.To].Occupied(l.Cell) {
			return fmt.Errorf("%w: link %d lands on wall (%d,%d) of floor %d", ErrBadLink, i, l.Cell.X, l.Cell.Y, l.To)
		}
	}
	return nil
}

// Floor returns floor i, nil when out of range
func (b *Building) Floor(i int) *Grid {
	if i < 0 || i >= len(b.Floors) {
		return nil
	}
	return b.Floors[i]
}

// Transition returns the first link leaving floor at cell c
func (b *Building) Transition(floor int, c Cell) (Link, bool) {
	for _, l := range b.Links {
		if l.From == floor && l.Cell == c {
			return l, true
		}
	}
	return Link{}, false
}

// LinksTouching returns links whose source or destination is floor, in table order
func (b *Building) LinksTouching(floor int) []Link {
	var out []Link
	for _, l := range b.Links {
		if l.From == floor || l.To == floor {
			out = append(out, l)
		}
	}
	return out
}
