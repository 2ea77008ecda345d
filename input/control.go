package input

import "strings"

// Control is one enumerated game input
type Control uint8

const (
	TurnLeft Control = iota
	TurnRight
	Forward
	Backward
	Boost
	StrafeLeft
	StrafeRight
	ToggleMap
	Quit

	controlCount
)

// Slots is the number of player control slots, two for the split-keyboard race
const Slots = 2

var controlNames = [controlCount]string{
	TurnLeft:    "turn_left",
	TurnRight:   "turn_right",
	Forward:     "forward",
	Backward:    "backward",
	Boost:       "boost",
	StrafeLeft:  "strafe_left",
	StrafeRight: "strafe_right",
	ToggleMap:   "toggle_map",
	Quit:        "quit",
}

func (c Control) String() string {
	if c < controlCount {
		return controlNames[c]
	}
	return "unknown"
}

// ControlByName resolves a snake_case action name
func ControlByName(name string) (Control, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range controlNames {
		if n == name {
			return Control(c), true
		}
	}
	return 0, false
}

// Controls is the set of held controls of one slot
type Controls uint16

// Has reports whether c is held
func (cs Controls) Has(c Control) bool { return cs&(1<<c) != 0 }

// With returns the set plus c
func (cs Controls) With(c Control) Controls { return cs | 1<<c }

// Snapshot is the immutable input state of one frame
type Snapshot [Slots]Controls

// Slot returns the controls of player slot i, empty when out of range
func (s Snapshot) Slot(i int) Controls {
	if i < 0 || i >= Slots {
		return 0
	}
	return s[i]
}

// With returns a copy with c held in slot i
func (s Snapshot) With(i int, c Control) Snapshot {
	if i >= 0 && i < Slots {
		s[i] = s[i].With(c)
	}
	return s
}

// Quit reports a quit request from any slot
func (s Snapshot) Quit() bool {
	for _, cs := range s {
		if cs.Has(Quit) {
			return true
		}
	}
	return false
}
