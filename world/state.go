// Package world holds the haunted house simulation: the player, the wandering
// actors, floor transitions and proximity cues. State is a value passed through
// each phase of a tick and returned, never shared.
package world

import (
	"math"

	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/vmath"
)

// Pose is a continuous position plus heading in radians, 0 = +x, positive turns toward +y
type Pose struct {
	Pos     vmath.Vec2
	Heading float64
}

// Player is the viewer
type Player struct {
	Pose
	Floor int
}

// Actor is a wandering billboard (ghost, stickman)
type Actor struct {
	Pos   vmath.Vec2
	DX    float64 // +-1
	DY    float64 // +-1
	Floor int

	FrameSet   string  // asset set name
	Sprite     string  // placeholder kind when the set has no files
	Cursor     float64 // animation position in frames
	FrameCount int

	Startled bool // startle cue already fired during this approach
}

// Frame is the index of the current animation frame
func (a Actor) Frame() int {
	return int(a.Cursor)
}

// WallElement decorates one wall cell; Floor < 0 applies to every floor
type WallElement struct {
	Cell  grid.Cell
	Floor int
	Kind  string
	Index int
}

// Params are the tuning knobs of one edition
type Params struct {
	TurnRate      float64 // radians per tick
	Speed         float64 // units per tick
	RunMultiplier float64 // speed factor while Boost is held
	ActorSpeed    float64
	AnimationRate float64 // frames per tick
	FOV           float64 // cue visibility cone
	AmbientRange  float64
	StartleRange  float64
}

// DefaultParams match the two-floor edition
func DefaultParams() Params {
	return Params{
		TurnRate:      0.03,
		Speed:         2,
		RunMultiplier: 1.5,
		ActorSpeed:    0.5,
		AnimationRate: 0.15,
		FOV:           math.Pi / 3,
		AmbientRange:  120,
		StartleRange:  50,
	}
}

// State is the full simulation at one tick
type State struct {
	House    *grid.Building
	Player   Player
	Actors   []Actor
	Elements []WallElement
	Tick     uint64
}

// Floor is the grid the player stands on
func (s State) Floor() *grid.Grid {
	return s.House.Floor(s.Player.Floor)
}

// ElementAt returns the decoration of a wall cell on a floor
func (s State) ElementAt(floor int, c grid.Cell) (WallElement, bool) {
	for _, e := range s.Elements {
		if e.Cell == c && (e.Floor < 0 || e.Floor == floor) {
			return e, true
		}
	}
	return WallElement{}, false
}

// clone copies the actor slice so the returned state does not alias the input
func (s State) clone() State {
	s.Actors = append([]Actor(nil), s.Actors...)
	return s
}
