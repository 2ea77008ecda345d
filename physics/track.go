package physics

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/haunted/vmath"
)

// Track is a closed polyline circuit with a drivable band around it
type Track struct {
	Points    []vmath.Vec2
	HalfWidth float64
	Finish    [2]vmath.Vec2 // horizontal segment crossed upward to count a lap
}

// DefaultTrack is the eight-waypoint oval of the 1200x650 arena
func DefaultTrack() Track {
	return Track{
		Points: []vmath.Vec2{
			{X: 150, Y: 325}, {X: 200, Y: 150}, {X: 600, Y: 80}, {X: 1000, Y: 150},
			{X: 1050, Y: 325}, {X: 950, Y: 500}, {X: 600, Y: 570}, {X: 250, Y: 500},
		},
		HalfWidth: 50,
		Finish:    [2]vmath.Vec2{{X: 80, Y: 325}, {X: 220, Y: 325}},
	}
}

// Distance is the shortest distance from p to the circuit line
func (t Track) Distance(p vmath.Vec2) float64 {
	best := math.Inf(1)
	for i, a := range t.Points {
		b := t.Points[(i+1)%len(t.Points)]
		best = math.Min(best, vmath.DistToSegment(p, a, b))
	}
	return best
}

// OnTrack reports whether p lies within the band
func (t Track) OnTrack(p vmath.Vec2) bool {
	return len(t.Points) > 1 && t.Distance(p) <= t.HalfWidth
}

// Inside reports whether p is enclosed by the circuit polygon
func (t Track) Inside(p vmath.Vec2) bool {
	return vmath.PointInPolygon(p, t.Points)
}

// CrossedFinish reports an upward crossing of the finish segment between two positions
func (t Track) CrossedFinish(prev, pos vmath.Vec2) bool {
	a, b := t.Finish[0], t.Finish[1]
	y := a.Y
	return prev.Y > y && pos.Y <= y && pos.X >= a.X && pos.X <= b.X
}

// ObstacleKind names the hazard shape
type ObstacleKind uint8

const (
	Rock ObstacleKind = iota
	Log
	Buoy
)

func (k ObstacleKind) String() string {
	switch k {
	case Rock:
		return "rock"
	case Log:
		return "log"
	default:
		return "buoy"
	}
}

// Obstacle is a floating hazard; rocks and buoys are discs, logs are boxes
type Obstacle struct {
	Pos   vmath.Vec2
	Kind  ObstacleKind
	Size  float64
	phase float64
}

// NewObstacle sizes an obstacle: rock radius 25-40, log length 50-80, buoy diameter 25
func NewObstacle(kind ObstacleKind, pos vmath.Vec2, rng *rand.Rand) Obstacle {
	o := Obstacle{Pos: pos, Kind: kind}
	switch kind {
	case Rock:
		o.Size = float64(25 + rng.IntN(16))
	case Log:
		o.Size = float64(50 + rng.IntN(31))
	default:
		o.Size = 25
	}
	return o
}

// Radius of disc obstacles
func (o Obstacle) Radius() float64 {
	if o.Kind == Buoy {
		return float64(int(o.Size) / 2)
	}
	return o.Size
}

// Bob drifts the obstacle vertically on a slow sine
func (o *Obstacle) Bob() {
	o.phase += 0.03
	o.Pos.Y += math.Sin(o.phase) * 0.3
}

// Hits reports overlap with a hull of half extents h centered at p
func (o Obstacle) Hits(p, h vmath.Vec2) bool {
	if o.Kind == Log {
		return math.Abs(p.X-o.Pos.X) < o.Size/2+h.X && math.Abs(p.Y-o.Pos.Y) < 20+h.Y
	}
	return p.Dist(o.Pos) < o.Radius()+h.X
}

// PlaceObstacles scatters n obstacles of random kinds inside the track polygon
func PlaceObstacles(t Track, n, width, height int, rng *rand.Rand) []Obstacle {
	out := make([]Obstacle, 0, n)
	if len(t.Points) < 3 || width <= 0 || height <= 0 {
		return out
	}
	for len(out) < n {
		p := vmath.Vec2{X: float64(rng.IntN(width)), Y: float64(rng.IntN(height))}
		if !t.Inside(p) {
			continue
		}
		out = append(out, NewObstacle(ObstacleKind(rng.IntN(3)), p, rng))
	}
	return out
}

// Particle is one wake puff
type Particle struct {
	Pos   vmath.Vec2
	Alpha int
	Size  int
}

// Wake is the fading trail behind a boat
type Wake struct {
	Particles []Particle
}

// Emit spawns a fully opaque particle of size 5-10
func (w *Wake) Emit(p vmath.Vec2, rng *rand.Rand) {
	w.Particles = append(w.Particles, Particle{Pos: p, Alpha: 255, Size: 5 + rng.IntN(6)})
}

// Fade lowers every particle's alpha by 4 and drops the transparent ones
func (w *Wake) Fade() {
	kept := w.Particles[:0]
	for _, p := range w.Particles {
		p.Alpha -= 4
		if p.Alpha > 0 {
			kept = append(kept, p)
		}
	}
	w.Particles = kept
}
