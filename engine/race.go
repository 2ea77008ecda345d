package engine

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/physics"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/vmath"
)

// RaceTheme colors one driving demo
type RaceTheme struct {
	Ground  render.RGB
	Surface render.RGB // track band
	Kerb    render.RGB
	Edge    render.RGB
	Cars    []render.RGB // per player
}

var (
	// BoatTheme is sand around sky-blue water with red buoys lining the channel
	BoatTheme = RaceTheme{
		Ground:  render.RGB{R: 194, G: 178, B: 128},
		Surface: render.RGB{R: 135, G: 206, B: 235},
		Kerb:    render.RGB{R: 220, G: 40, B: 40},
		Edge:    render.RGB{R: 135, G: 206, B: 235},
		Cars:    []render.RGB{{R: 255}, {B: 255}},
	}
	// CircuitTheme is asphalt on grass with red and white kerbs
	CircuitTheme = RaceTheme{
		Ground:  render.RGB{R: 34, G: 139, B: 34},
		Surface: render.RGB{R: 45, G: 45, B: 48},
		Kerb:    render.RGB{R: 200},
		Edge:    render.RGBWhite,
		Cars:    []render.RGB{{R: 186, G: 12, B: 47}, {R: 255, G: 140}},
	}
)

var (
	rockGray  = render.Gray(110)
	logBrown  = render.RGB{R: 140, G: 90, B: 40}
	buoyRed   = render.RGB{R: 220, G: 40, B: 40}
	hudBlack  = render.RGBBlack
	winYellow = render.RGB{R: 255, G: 255}
	onTrack   = render.RGB{G: 255}
	offTrack  = render.RGB{R: 255, G: 50, B: 50}
)

var playerNames = []string{"RED", "BLUE"}

// Race is the top-down driving scene
type Race struct {
	Race    *physics.Race
	Theme   RaceTheme
	Minimap bool
}

// NewRace picks the theme from the profile
func NewRace(r *physics.Race) *Race {
	theme := CircuitTheme
	if r.Config.Profile.Name == physics.SpeedBoat.Name {
		theme = BoatTheme
	}
	return &Race{Race: r, Theme: theme, Minimap: r.Config.Circuit}
}

// Update advances every vehicle from its input slot
func (r *Race) Update(in input.Snapshot) bool {
	r.Race.Step(in)
	return true
}

// Draw paints ground, track, obstacles, wakes, vehicles and HUD
func (r *Race) Draw(s *render.Surface) {
	race := r.Race
	s.Clear(r.Theme.Ground)

	if race.Config.Circuit {
		r.drawTrack(s)
	}
	for _, o := range race.Obstacles {
		drawObstacle(s, o)
	}
	for _, w := range race.Wakes {
		for _, p := range w.Particles {
			d := p.Size
			s.BlendRect(int(p.Pos.X)-d/2, int(p.Pos.Y)-d/2, d, d, render.RGBWhite, float64(p.Alpha)/255)
		}
	}
	for i, v := range race.Vehicles {
		drawVehicle(s, v, r.Theme.Cars[i%len(r.Theme.Cars)])
	}

	r.drawHUD(s)
	if r.Minimap {
		r.drawMinimap(s)
	}
}

// drawTrack strokes the closed polyline three times, widest first, to leave kerbs on both sides
func (r *Race) drawTrack(s *render.Surface) {
	t := r.Race.Track
	band := int(2 * t.HalfWidth)
	for _, layer := range []struct {
		width int
		color render.RGB
	}{
		{band + 20, r.Theme.Kerb},
		{band + 10, r.Theme.Edge},
		{band, r.Theme.Surface},
	} {
		for i, a := range t.Points {
			b := t.Points[(i+1)%len(t.Points)]
			s.ThickLine(int(a.X), int(a.Y), int(b.X), int(b.Y), layer.width, layer.color)
		}
	}

	f := t.Finish
	s.ThickLine(int(f[0].X), int(f[0].Y), int(f[1].X), int(f[1].Y), 6, render.RGBWhite)
}

func drawObstacle(s *render.Surface, o physics.Obstacle) {
	x, y := int(o.Pos.X), int(o.Pos.Y)
	switch o.Kind {
	case physics.Log:
		size := int(o.Size)
		s.FillRect(x-size/2, y-10, size, 20, logBrown)
	case physics.Buoy:
		s.FillCircle(x, y, int(o.Radius()), buoyRed)
	default:
		s.FillCircle(x, y, int(o.Radius()), rockGray)
	}
}

// drawVehicle strokes the hull from stern to bow, with a pale windshield toward the bow
func drawVehicle(s *render.Surface, v *physics.Vehicle, c render.RGB) {
	h := v.Profile.Hull
	dir := v.Heading()
	bow := v.Pos.Add(dir.Scale(h.Y - h.X))
	stern := v.Pos.Sub(dir.Scale(h.Y - h.X))
	width := int(2 * h.X)
	s.ThickLine(int(stern.X), int(stern.Y), int(bow.X), int(bow.Y), width, c)

	shield := v.Pos.Add(dir.Scale(h.Y / 3))
	s.FillCircle(int(shield.X), int(shield.Y), max(2, int(h.X/2)), render.Lerp(c, render.RGBWhite, 0.6))
}

func (r *Race) drawHUD(s *render.Surface) {
	race := r.Race
	s.FillRect(20, 20, 500, 50, hudBlack)

	switch {
	case race.Config.LapsToWin > 0:
		text := ""
		for i, v := range race.Vehicles {
			if i > 0 {
				text += " | "
			}
			text += fmt.Sprintf("%s: %d", playerNames[i%len(playerNames)], v.Laps)
		}
		s.Text(35, 33, text, render.RGBWhite)
	case race.Config.Circuit:
		status, color := "ON TRACK", onTrack
		if !race.OnTrack[0] {
			status, color = "OFF TRACK - TRACTION LOST", offTrack
		}
		s.Text(35, 33, fmt.Sprintf("%s | %s", strings.ToUpper(race.Config.Profile.Name), status), color)
	default:
		v := race.Vehicles[0]
		s.Text(35, 33, fmt.Sprintf("%s | SPEED %.1f", strings.ToUpper(race.Config.Profile.Name), v.Speed), render.RGBWhite)
	}

	if race.Finished() {
		text := fmt.Sprintf("%s WINS!", playerNames[race.Winner%len(playerNames)])
		s.Text(s.Width()/2-len(text)*7/2, s.Height()/2-6, text, winYellow)
	}
}

// drawMinimap shows waypoints and vehicles in a 120x120 box at the top-right
func (r *Race) drawMinimap(s *render.Surface) {
	const size, margin = 120, 20
	race := r.Race
	left := s.Width() - size - margin
	s.FillRect(left, margin, size, size, render.Gray(20))

	sx := float64(size) / float64(race.Config.Width)
	sy := float64(size) / float64(race.Config.Height)
	toMap := func(p vmath.Vec2) (int, int) {
		return left + int(p.X*sx), margin + int(p.Y*sy)
	}

	for _, p := range race.Track.Points {
		x, y := toMap(p)
		s.FillCircle(x, y, 2, render.Gray(150))
	}
	for i, v := range race.Vehicles {
		x, y := toMap(v.Pos)
		s.FillCircle(x, y, 3, r.Theme.Cars[i%len(r.Theme.Cars)])
	}
}
