package engine

import (
	"math"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/raster"
	"github.com/lixenwraith/haunted/render"
)

// Line demo parameters
const (
	SweepStep  = 10
	SweepLimit = 500
	RotateStep = 1.0 // degrees per tick
	RotateFast = 3.0 // degrees per tick while turning
)

var (
	linePanel  = render.Gray(15)
	lineLabel  = render.Gray(180)
	lineColor  = render.RGBWhite
	lineAccent = render.RGB{R: 255, G: 200, B: 60}
	lineFaded  = render.Gray(70)
)

// Lines shows the rasterizers side by side: Bresenham, DDA, a translation sweep
// and a rotating segment inside a midpoint circle
type Lines struct {
	Segment raster.Segment // drawn relative to each panel's center
	Angle   float64        // degrees
	Frame   int            // sweep frames revealed

	tick uint64
}

// NewLines uses the demo segment (-60, -40)-(80, 50)
func NewLines() *Lines {
	return &Lines{Segment: raster.Segment{X1: -60, Y1: -40, X2: 80, Y2: 50}}
}

// Update rotates automatically; TurnLeft and TurnRight spin faster, Forward restarts the sweep
func (l *Lines) Update(in input.Snapshot) bool {
	c := in.Slot(0)
	switch {
	case c.Has(input.TurnLeft):
		l.Angle -= RotateFast
	case c.Has(input.TurnRight):
		l.Angle += RotateFast
	default:
		l.Angle += RotateStep
	}
	if l.Angle >= 360 || l.Angle <= -360 {
		l.Angle = 0
	}

	if c.Has(input.Forward) {
		l.Frame = 0
	}
	l.tick++
	if l.tick%4 == 0 && l.Frame*SweepStep < SweepLimit {
		l.Frame++
	}
	return true
}

// Draw splits the surface into four panels
func (l *Lines) Draw(s *render.Surface) {
	s.Clear(render.RGBBlack)
	w, h := s.Width()/2, s.Height()/2

	panels := []struct {
		x, y  int
		label string
		draw  func(cx, cy int, plot raster.Plot)
	}{
		{0, 0, "bresenham", func(cx, cy int, plot raster.Plot) {
			seg := l.Segment.Translate(cx, cy)
			raster.Bresenham(seg.X1, seg.Y1, seg.X2, seg.Y2, plot)
		}},
		{w, 0, "dda", func(cx, cy int, plot raster.Plot) {
			seg := l.Segment.Translate(cx, cy)
			raster.DDA(seg.X1, seg.Y1, seg.X2, seg.Y2, plot)
		}},
		{0, h, "translate", nil},
		{w, h, "rotate", func(cx, cy int, plot raster.Plot) {
			seg := l.Segment.Rotate(l.Angle).Translate(cx, cy)
			raster.Bresenham(seg.X1, seg.Y1, seg.X2, seg.Y2, plot)
		}},
	}

	for _, p := range panels {
		s.FillRect(p.x+2, p.y+2, w-4, h-4, linePanel)
		s.Text(p.x+8, p.y+6, p.label, lineLabel)
		cx, cy := p.x+w/2, p.y+h/2
		if p.draw != nil {
			p.draw(cx, cy, func(x, y int) { s.Set(x, y, lineColor) })
		}
	}

	l.drawSweep(s, 0, h, w, h)

	// Rotation path of the segment's endpoints
	cx, cy := w+w/2, h+h/2
	r := int(radius(l.Segment))
	raster.Circle(cx, cy, r, func(x, y int) { s.Set(x, y, lineAccent) })
}

// drawSweep shows every revealed translation frame, compressed to fit the panel
func (l *Lines) drawSweep(s *render.Surface, x, y, w, h int) {
	base := raster.Segment{X1: 0, Y1: -40, X2: 20, Y2: 40}
	frames := base.Sweep(SweepStep, SweepLimit)
	n := min(l.Frame, len(frames))

	left := x + 20
	span := w - 60
	for i, seg := range frames[:n] {
		// Map the 0..SweepLimit offset onto the panel width
		off := seg.X1 * span / SweepLimit
		seg = raster.Segment{X1: off, Y1: seg.Y1, X2: off + base.X2, Y2: seg.Y2}.Translate(left, y+h/2)

		c := lineFaded
		if i == n-1 {
			c = lineColor
		}
		raster.Bresenham(seg.X1, seg.Y1, seg.X2, seg.Y2, func(px, py int) { s.Set(px, py, c) })
	}
}

// radius is the larger endpoint distance from the origin
func radius(seg raster.Segment) float64 {
	return math.Max(math.Hypot(float64(seg.X1), float64(seg.Y1)), math.Hypot(float64(seg.X2), float64(seg.Y2)))
}
