// Package level loads haunted house layouts from YAML and builds the initial
// simulation state from them.
package level

import (
	"embed"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/haunted/asset"
	"github.com/lixenwraith/haunted/grid"
	"github.com/lixenwraith/haunted/vmath"
	"github.com/lixenwraith/haunted/world"
)

var (
	ErrUnknownFloor = errors.New("level: unknown floor")
	ErrUnknownLevel = errors.New("level: unknown built-in level")
	ErrNoFloors     = errors.New("level: no floors")
)

//go:embed builtin/*.yaml
var builtin embed.FS

// Level is the on-disk description of a house; positions are in cell units
type Level struct {
	Name     string    `yaml:"name"`
	CellSize float64   `yaml:"cell_size"`
	Floors   []string  `yaml:"floors"`
	Links    []Link    `yaml:"links"`
	Player   Spawn     `yaml:"player"`
	Actors   []Actor   `yaml:"actors"`
	Elements []Element `yaml:"elements"`
}

type Link struct {
	X    int `yaml:"x"`
	Y    int `yaml:"y"`
	From int `yaml:"from"`
	To   int `yaml:"to"`
}

type Spawn struct {
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Heading float64 `yaml:"heading"`
	Floor   int     `yaml:"floor"`
}

type Actor struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Floor  int     `yaml:"floor"`
	Frames string  `yaml:"frames"`
	Sprite string  `yaml:"sprite"`
}

type Element struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Floor *int   `yaml:"floor"`
	Kind  string `yaml:"kind"`
	Index int    `yaml:"index"`
}

// Parse decodes YAML level data
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(data, &lvl); err != nil {
		return nil, pkgerrors.Wrap(err, "level parse")
	}
	if lvl.CellSize <= 0 {
		lvl.CellSize = 64
	}
	return &lvl, nil
}

// Encode writes the level as YAML that Parse reads back
func (l *Level) Encode() ([]byte, error) {
	data, err := yaml.Marshal(l)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "level encode")
	}
	return data, nil
}

// Load reads a YAML level file
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read level %s", path)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "level %s", path)
	}
	return lvl, nil
}

// Builtin returns an embedded level by name ("ultimate", "stickman")
func Builtin(name string) (*Level, error) {
	data, err := builtin.ReadFile("builtin/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownLevel, name, strings.Join(BuiltinNames(), ", "))
	}
	return Parse(data)
}

// BuiltinNames lists embedded levels in name order
func BuiltinNames() []string {
	entries, _ := builtin.ReadDir("builtin")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// Resolve loads ref as a built-in name first, then as a file path
func Resolve(ref string) (*Level, error) {
	if lvl, err := Builtin(ref); err == nil {
		return lvl, nil
	}
	return Load(ref)
}

// Building parses the floors and validates the links
func (l *Level) Building() (*grid.Building, error) {
	if len(l.Floors) == 0 {
		return nil, ErrNoFloors
	}
	b := &grid.Building{}
	for i, text := range l.Floors {
		g, err := grid.Parse(text, l.CellSize)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "floor %d", i)
		}
		b.Floors = append(b.Floors, g)
	}
	for _, ln := range l.Links {
		b.Links = append(b.Links, grid.Link{Cell: grid.Cell{X: ln.X, Y: ln.Y}, From: ln.From, To: ln.To})
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// State builds the initial simulation state; rng picks each actor's starting diagonal
func (l *Level) State(rng *rand.Rand) (world.State, error) {
	house, err := l.Building()
	if err != nil {
		return world.State{}, err
	}

	spawn := house.Floor(l.Player.Floor)
	if spawn == nil {
		return world.State{}, fmt.Errorf("%w: player on floor %d", ErrUnknownFloor, l.Player.Floor)
	}

	s := world.State{
		House: house,
		Player: world.Player{
			Pose: world.Pose{
				Pos:     vmath.V2(l.Player.X*l.CellSize, l.Player.Y*l.CellSize),
				Heading: l.Player.Heading,
			},
			Floor: l.Player.Floor,
		},
	}
	if spawn.Blocked(s.Player.Pos) {
		return world.State{}, fmt.Errorf("level %s: player starts inside a wall", l.Name)
	}

	for i, a := range l.Actors {
		floor := house.Floor(a.Floor)
		if floor == nil {
			return world.State{}, fmt.Errorf("%w: actor %d on floor %d", ErrUnknownFloor, i, a.Floor)
		}
		sprite := a.Sprite
		if sprite == "" {
			sprite = asset.SpriteGhost
		}
		actor := world.Actor{
			Pos:      vmath.V2(a.X*l.CellSize, a.Y*l.CellSize),
			DX:       pick(rng),
			DY:       pick(rng),
			Floor:    a.Floor,
			FrameSet: a.Frames,
			Sprite:   sprite,
		}
		if floor.Blocked(actor.Pos) {
			// It will flip in place every tick, drawn through the wall
			log.Printf("level: %s actor %d starts inside a wall at %v", l.Name, i, floor.CellAt(actor.Pos))
		}
		s.Actors = append(s.Actors, actor)
	}

	for _, e := range l.Elements {
		floor := -1
		if e.Floor != nil {
			floor = *e.Floor
			if house.Floor(floor) == nil {
				return world.State{}, fmt.Errorf("%w: element %s on floor %d", ErrUnknownFloor, e.Kind, floor)
			}
		}
		s.Elements = append(s.Elements, world.WallElement{
			Cell:  grid.Cell{X: e.X, Y: e.Y},
			Floor: floor,
			Kind:  e.Kind,
			Index: e.Index,
		})
	}
	return s, nil
}

func pick(rng *rand.Rand) float64 {
	if rng.IntN(2) == 0 {
		return -1
	}
	return 1
}
