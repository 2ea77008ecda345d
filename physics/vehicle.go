package physics

import (
	"math"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/vmath"
)

// DragMode selects how speed decays with no throttle
type DragMode uint8

const (
	// DragLinear subtracts Friction toward zero each tick
	DragLinear DragMode = iota
	// DragFactor multiplies speed by Drag each tick
	DragFactor
)

// Profile parameterizes one vehicle's handling
// Profiles are pre-defined as package variables, callers copy or point at them
type Profile struct {
	Name string

	Accel    float64 // speed gained per throttle tick
	Brake    float64 // speed lost per reverse tick
	MaxSpeed float64
	Reverse  float64 // most negative speed
	Boost    float64 // extra forward limit while Boost is held

	OffTrackLimit float64 // forward limit off the track band, 0 = unlimited

	Mode     DragMode
	Friction float64 // DragLinear
	Drag     float64 // DragFactor

	Steer         float64 // degrees per tick
	MinSteerSpeed float64 // no steering at or below this |speed|

	Hull vmath.Vec2 // half extents for obstacle tests (x = half width, y = half length)
}

// McLaren is the free-roaming car: linear friction, symmetric accel and brake
var McLaren = Profile{
	Name:          "mclaren",
	Accel:         0.15,
	Brake:         0.15,
	MaxSpeed:      10,
	Reverse:       -5,
	Mode:          DragLinear,
	Friction:      0.04,
	Steer:         3.5,
	MinSteerSpeed: 0.1,
	Hull:          vmath.Vec2{X: 20, Y: 40},
}

// Porsche is the circuit car: multiplicative drag, loses traction off the asphalt
var Porsche = Profile{
	Name:          "porsche",
	Accel:         0.12,
	Brake:         0.25,
	MaxSpeed:      8,
	Reverse:       -2.5,
	OffTrackLimit: 2,
	Mode:          DragFactor,
	Drag:          0.97,
	Steer:         4.5,
	MinSteerSpeed: 0.1,
	Hull:          vmath.Vec2{X: 16, Y: 30},
}

// SpeedBoat races on water with a boost and wake
var SpeedBoat = Profile{
	Name:          "boat",
	Accel:         0.10,
	Brake:         0.15,
	MaxSpeed:      6,
	Reverse:       -2,
	Boost:         4,
	Mode:          DragFactor,
	Drag:          0.98,
	Steer:         3,
	MinSteerSpeed: 0.2,
	Hull:          vmath.Vec2{X: 14, Y: 35},
}

// Profiles indexes the pre-defined profiles by name
var Profiles = map[string]*Profile{
	McLaren.Name:   &McLaren,
	Porsche.Name:   &Porsche,
	SpeedBoat.Name: &SpeedBoat,
}

// Vehicle is a top-down car or boat
// Angle is in degrees: 0 faces screen up (-y), positive turns counterclockwise
type Vehicle struct {
	Pos     vmath.Vec2
	Prev    vmath.Vec2
	Angle   float64
	Speed   float64
	Laps    int
	Profile *Profile
}

// NewVehicle places a stationary vehicle facing up
func NewVehicle(p *Profile, pos vmath.Vec2) *Vehicle {
	return &Vehicle{Pos: pos, Prev: pos, Profile: p}
}

// Heading is the unit direction of travel for positive speed
func (v *Vehicle) Heading() vmath.Vec2 {
	sin, cos := math.Sincos(vmath.Radians(v.Angle))
	return vmath.Vec2{X: -sin, Y: -cos}
}

// Velocity is the displacement applied per tick
func (v *Vehicle) Velocity() vmath.Vec2 {
	return v.Heading().Scale(v.Speed)
}

// Stern is the point dist units behind the vehicle
func (v *Vehicle) Stern(dist float64) vmath.Vec2 {
	return v.Pos.Sub(v.Heading().Scale(dist))
}

// Drive applies one tick of throttle, drag and steering, then integrates position
func (v *Vehicle) Drive(in input.Controls, onTrack bool) {
	p := v.Profile

	limit := p.MaxSpeed
	if in.Has(input.Boost) {
		limit += p.Boost
	}
	if !onTrack && p.OffTrackLimit > 0 {
		limit = p.OffTrackLimit
	}

	switch {
	case in.Has(input.Forward):
		v.Speed = math.Min(v.Speed+p.Accel, limit)
	case in.Has(input.Backward):
		v.Speed = math.Max(v.Speed-p.Brake, p.Reverse)
	default:
		v.coast()
	}

	if math.Abs(v.Speed) > p.MinSteerSpeed {
		dir := 1.0
		if v.Speed < 0 {
			dir = -1
		}
		if in.Has(input.TurnLeft) {
			v.Angle += p.Steer * dir
		}
		if in.Has(input.TurnRight) {
			v.Angle -= p.Steer * dir
		}
	}

	v.Prev = v.Pos
	v.Pos = v.Pos.Add(v.Velocity())
}

func (v *Vehicle) coast() {
	p := v.Profile
	if p.Mode == DragFactor {
		v.Speed *= p.Drag
		return
	}
	switch {
	case math.Abs(v.Speed) <= p.Friction:
		v.Speed = 0
	case v.Speed > 0:
		v.Speed -= p.Friction
	default:
		v.Speed += p.Friction
	}
}

// Bounce reverses and damps the vehicle after hitting an obstacle
func (v *Vehicle) Bounce() {
	v.Speed *= -0.1
}

// Clamp keeps the vehicle inside [0, w) x [0, h), stopping it at the edge
func (v *Vehicle) Clamp(w, h float64) {
	x := vmath.Clamp(v.Pos.X, 0, w-1)
	y := vmath.Clamp(v.Pos.Y, 0, h-1)
	if x != v.Pos.X || y != v.Pos.Y {
		v.Pos = vmath.Vec2{X: x, Y: y}
		v.Speed = 0
	}
}
