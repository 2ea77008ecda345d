package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/haunted/render"
)

// halfBlock is the upper half block glyph
const halfBlock = '▀'

// Presenter downsamples a surface onto a tcell screen, two pixels per cell
type Presenter struct {
	Screen tcell.Screen
}

// NewPresenter wraps an initialized screen
func NewPresenter(screen tcell.Screen) *Presenter {
	return &Presenter{Screen: screen}
}

// Present samples the surface at cell resolution and shows the screen
func (p *Presenter) Present(s *render.Surface) error {
	cols, rows := p.Screen.Size()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	w, h := s.Width(), s.Height()

	for cy := 0; cy < rows; cy++ {
		top := 2 * cy * h / (2 * rows)
		bottom := (2*cy + 1) * h / (2 * rows)
		for cx := 0; cx < cols; cx++ {
			x := cx * w / cols
			style := tcell.StyleDefault.
				Foreground(Color(s.At(x, top))).
				Background(Color(s.At(x, bottom)))
			p.Screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	p.Screen.Show()
	return nil
}

// Color converts to a truecolor tcell color
func Color(c render.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
