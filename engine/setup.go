package engine

import (
	"log"
	"math/rand/v2"

	"github.com/lixenwraith/haunted/asset"
	"github.com/lixenwraith/haunted/config"
	"github.com/lixenwraith/haunted/level"
	"github.com/lixenwraith/haunted/world"
)

// GeneratedLevel is the level name that builds a maze house from the level section
const GeneratedLevel = "generated"

// ResolveLevel loads the configured level: a built-in name, a YAML path, or a generated house
func ResolveLevel(cfg config.LevelConfig) (*level.Level, error) {
	if cfg.Name == GeneratedLevel {
		return level.Generated(cfg.Seed, cfg.Floors, cfg.Width, cfg.Height), nil
	}
	return level.Resolve(cfg.Name)
}

// HauntedFromConfig builds the house scene; sink receives audio cues, nil plays nothing
func HauntedFromConfig(cfg config.Config, sink world.CueSink, metrics *Metrics) (*Haunted, error) {
	cam, err := cfg.RaycastCamera()
	if err != nil {
		return nil, err
	}
	lvl, err := ResolveLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	st, err := lvl.State(rand.New(rand.NewPCG(cfg.Level.Seed, uint64(cfg.Assets.Seed))))
	if err != nil {
		return nil, err
	}
	log.Printf("level: %s, %d floors, %d actors", lvl.Name, len(lvl.Floors), len(st.Actors))

	lib := asset.NewLibrary(cfg.Assets.Dir, cfg.Assets.Tile, cfg.Assets.Seed)
	h := NewHaunted(st, cfg.Params(), cam, lib, cfg.Actors.SpriteSize)
	h.Ceiling = cfg.CeilingColor()
	h.Floor = cfg.FloorColor()
	h.ShowMap = cfg.Screen.Minimap
	h.Metrics = metrics
	if sink != nil {
		h.Sink = CountingSink{Sink: sink, Metrics: metrics}
	}
	if cfg.Actors.Flicker > 0 {
		h.Flicker = NewFlicker(cfg.Actors.Flicker, cfg.Assets.Seed)
	}
	return h, nil
}
