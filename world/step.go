package world

import (
	"math"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/vmath"
)

// UpdatePlayer applies one tick of controls
// Moves commit only into unoccupied cells; after any move attempt a link whose
// source is the current floor moves the player to the link's cell center on the destination floor
func UpdatePlayer(p Player, house *grid.Building, in input.Controls, params Params) Player {
	if in.Has(input.TurnLeft) {
		p.Heading -= params.TurnRate
	}
	if in.Has(input.TurnRight) {
		p.Heading += params.TurnRate
	}

	speed := params.Speed
	if in.Has(input.Boost) && params.RunMultiplier > 0 {
		speed *= params.RunMultiplier
	}

	floor := house.Floor(p.Floor)
	if floor == nil {
		return p
	}

	forward := vmath.FromAngle(p.Heading)
	right := vmath.Vec2{X: -forward.Y, Y: forward.X}

	moved := false
	try := func(dir vmath.Vec2) {
		moved = true
		next := p.Pos.Add(dir.Scale(speed))
		if !floor.Blocked(next) {
			p.Pos = next
		}
	}
	if in.Has(input.Forward) {
		try(forward)
	}
	if in.Has(input.Backward) {
		try(forward.Scale(-1))
	}
	if in.Has(input.StrafeLeft) {
		try(right.Scale(-1))
	}
	if in.Has(input.StrafeRight) {
		try(right)
	}

	if moved {
		if link, ok := house.Transition(p.Floor, floor.CellAt(p.Pos)); ok {
			p.Floor = link.To
			if dst := house.Floor(link.To); dst != nil {
				p.Pos = dst.Center(link.Cell)
			}
		}
	}
	return p
}

// MoveActor advances an actor one tick on its floor
// A blocked step inverts both direction components and leaves the position unchanged
func MoveActor(a Actor, floor *grid.Grid, speed, animationRate float64) Actor {
	next := vmath.Vec2{X: a.Pos.X + a.DX*speed, Y: a.Pos.Y + a.DY*speed}
	if floor != nil && !floor.Blocked(next) {
		a.Pos = next
	} else {
		a.DX, a.DY = -a.DX, -a.DY
	}

	a.Cursor += animationRate
	if a.Cursor >= float64(max(a.FrameCount, 1)) {
		a.Cursor = 0
	}
	return a
}

// Cue is a sound event emitted by proximity
type Cue uint8

const (
	CueAmbient Cue = iota // actor nearby and visible
	CueStartle            // actor very close, once per approach
)

func (c Cue) String() string {
	if c == CueStartle {
		return "startle"
	}
	return "ambient"
}

// CueSink plays cues; Play must not block
type CueSink interface {
	Play(Cue)
	Busy() bool
}

// Visible reports whether target lies strictly inside the viewer's field of view
func Visible(viewer Pose, target vmath.Vec2, fov float64) bool {
	gamma := vmath.NormalizeAngle(target.Sub(viewer.Pos).Angle() - viewer.Heading)
	return math.Abs(gamma) < fov/2
}

// Cues evaluates proximity rules for one actor on the player's floor
// Returns the updated actor; the startle latch clears when the actor leaves the view
func Cues(a Actor, p Player, params Params, sink CueSink) Actor {
	if a.Floor != p.Floor {
		return a
	}
	if !Visible(p.Pose, a.Pos, params.FOV) {
		a.Startled = false
		return a
	}

	d := a.Pos.Dist(p.Pos)
	if sink == nil {
		return a
	}
	if d < params.AmbientRange && !sink.Busy() {
		sink.Play(CueAmbient)
	}
	if d < params.StartleRange && !a.Startled {
		sink.Play(CueStartle)
		a.Startled = true
	}
	return a
}

// Step runs one tick: player, then every actor, then cues
func Step(s State, in input.Controls, params Params, sink CueSink) State {
	s = s.clone()
	s.Player = UpdatePlayer(s.Player, s.House, in, params)
	for i := range s.Actors {
		a := MoveActor(s.Actors[i], s.House.Floor(s.Actors[i].Floor), params.ActorSpeed, params.AnimationRate)
		s.Actors[i] = Cues(a, s.Player, params, sink)
	}
	s.Tick++
	return s
}
