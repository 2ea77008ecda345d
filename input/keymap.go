package input

import (
	"fmt"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
)

// Binding routes a key to a control of one player slot
type Binding struct {
	Slot    int
	Control Control
}

// Keymap maps frontend-neutral key names ("left", "w", "rshift", "escape") to bindings
// A key may drive several bindings
type Keymap map[string][]Binding

// Section names, one per slot
var slotSections = [Slots]string{"player1", "player2"}

// actionNone in an override removes the key
const actionNone = "none"

// DefaultKeymap: player 1 on arrows, player 2 on WASD
// Terminals do not report bare modifier presses, so comma and q stand in for the shifts
func DefaultKeymap() Keymap {
	km := Keymap{}
	km.bind("left", 0, TurnLeft)
	km.bind("right", 0, TurnRight)
	km.bind("up", 0, Forward)
	km.bind("down", 0, Backward)
	km.bind("rshift", 0, Boost)
	km.bind(",", 0, Boost)
	km.bind("z", 0, StrafeLeft)
	km.bind("x", 0, StrafeRight)
	km.bind("m", 0, ToggleMap)
	km.bind("escape", 0, Quit)

	km.bind("a", 1, TurnLeft)
	km.bind("d", 1, TurnRight)
	km.bind("w", 1, Forward)
	km.bind("s", 1, Backward)
	km.bind("lshift", 1, Boost)
	km.bind("q", 1, Boost)
	return km
}

func (km Keymap) bind(key string, slot int, c Control) {
	km[key] = append(km[key], Binding{Slot: slot, Control: c})
}

// LoadKeymap parses TOML keymap data into a sparse override Keymap
//
//	[player1]
//	left = "turn_left"
//	space = "boost"
//
// Returns error on unknown sections, unknown actions, or parse failure
func LoadKeymap(data []byte) (Keymap, error) {
	var raw map[string]map[string]string
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, errors.Wrap(err, "keymap parse")
	}
	return KeymapFromTable(raw)
}

// KeymapFromTable builds an override Keymap from section -> key -> action tables
// An action of "none" marks the key for removal on Merge
func KeymapFromTable(raw map[string]map[string]string) (Keymap, error) {
	km := Keymap{}
	for section, keys := range raw {
		slot := -1
		for i, name := range slotSections {
			if strings.EqualFold(section, name) {
				slot = i
			}
		}
		if slot < 0 {
			return nil, fmt.Errorf("keymap: unknown section [%s]", section)
		}

		for key, action := range keys {
			key = normalizeKey(key)
			if strings.EqualFold(action, actionNone) {
				if _, ok := km[key]; !ok {
					km[key] = []Binding{}
				}
				continue
			}
			c, ok := ControlByName(action)
			if !ok {
				return nil, fmt.Errorf("keymap: [%s] key %q: unknown action %q", section, key, action)
			}
			km.bind(key, slot, c)
		}
	}
	return km, nil
}

// Merge returns base with every key present in override replaced
// An empty binding list in override deletes the key
func Merge(base, override Keymap) Keymap {
	out := make(Keymap, len(base)+len(override))
	for k, v := range base {
		out[k] = append([]Binding(nil), v...)
	}
	for k, v := range override {
		if len(v) == 0 {
			delete(out, k)
			continue
		}
		out[k] = append([]Binding(nil), v...)
	}
	return out
}

// Resolve builds the frame snapshot from the currently held key names
func (km Keymap) Resolve(held []string) Snapshot {
	var snap Snapshot
	for _, key := range held {
		for _, b := range km[normalizeKey(key)] {
			snap = snap.With(b.Slot, b.Control)
		}
	}
	return snap
}

// Key name aliases accepted in TOML where the bare character is awkward
var keyAliases = map[string]string{
	"comma":  ",",
	"period": ".",
	"esc":    "escape",
	" ":      "space",
}

func normalizeKey(key string) string {
	key = strings.ToLower(key)
	if alias, ok := keyAliases[key]; ok {
		return alias
	}
	return key
}
