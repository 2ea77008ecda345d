// Package config loads the game configuration from TOML. Every field has a
// default from the selected edition, so a file only lists what it overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	pkgerrors "github.com/pkg/errors"

	"github.com/lixenwraith/haunted/audio"
	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/raycast"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/vmath"
	"github.com/lixenwraith/haunted/world"
)

// EnvPath names the config file when no -config flag is given
const EnvPath = "HAUNTED_CONFIG"

// Editions
const (
	EditionUltimate = "ultimate"
	EditionStickman = "stickman"
)

var ErrInvalid = errors.New("config: invalid value")

type ScreenConfig struct {
	Width   int      `toml:"width"`
	Height  int      `toml:"height"`
	FPS     int      `toml:"fps"`
	Ceiling [3]uint8 `toml:"ceiling"`
	Floor   [3]uint8 `toml:"floor"`
	Minimap bool     `toml:"minimap"`
}

type CameraConfig struct {
	FOV        float64  `toml:"fov"` // degrees
	Columns    int      `toml:"columns"`
	MaxDepth   float64  `toml:"max_depth"`
	Step       float64  `toml:"step"`
	Epsilon    float64  `toml:"epsilon"`
	Shading    string   `toml:"shading"` // distance | flat
	Falloff    float64  `toml:"falloff"`
	WallColor  [3]uint8 `toml:"wall_color"`
	Correction string   `toml:"correction"` // none | cosine
	Centered   bool     `toml:"centered"`
	Method     string   `toml:"method"` // march | dda
}

type PlayerConfig struct {
	TurnRate      float64 `toml:"turn_rate"`
	Speed         float64 `toml:"speed"`
	RunMultiplier float64 `toml:"run_multiplier"`
}

type ActorConfig struct {
	Speed         float64 `toml:"speed"`
	AnimationRate float64 `toml:"animation_rate"`
	AmbientRange  float64 `toml:"ambient_range"`
	StartleRange  float64 `toml:"startle_range"`
	SpriteSize    int     `toml:"sprite_size"` // placeholder size, 0 uses the tile
	Flicker       float64 `toml:"flicker"`     // perlin brightness wobble, 0 disables
}

type AudioConfig struct {
	Enabled       bool    `toml:"enabled"`
	Dir           string  `toml:"dir"`
	Ambient       string  `toml:"ambient"`
	Startle       string  `toml:"startle"`
	AmbientVolume float64 `toml:"ambient_volume"`
	StartleVolume float64 `toml:"startle_volume"`
}

type AssetConfig struct {
	Dir  string `toml:"dir"`
	Tile int    `toml:"tile"`
	Seed int64  `toml:"seed"`
}

// LevelConfig picks a built-in level, a YAML file, or "generated"
type LevelConfig struct {
	Name   string `toml:"name"`
	Seed   uint64 `toml:"seed"`
	Floors int    `toml:"floors"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

// Config is the full game configuration
type Config struct {
	Edition string                       `toml:"edition"`
	Screen  ScreenConfig                 `toml:"screen"`
	Camera  CameraConfig                 `toml:"camera"`
	Player  PlayerConfig                 `toml:"player"`
	Actors  ActorConfig                  `toml:"actors"`
	Audio   AudioConfig                  `toml:"audio"`
	Assets  AssetConfig                  `toml:"assets"`
	Level   LevelConfig                  `toml:"level"`
	Metrics MetricsConfig                `toml:"metrics"`
	Keys    map[string]map[string]string `toml:"keys"`
}

// Default returns the two-floor edition
func Default() Config {
	return Config{
		Edition: EditionUltimate,
		Screen: ScreenConfig{
			Width:   800,
			Height:  600,
			FPS:     60,
			Ceiling: [3]uint8{20, 20, 20},
			Floor:   [3]uint8{40, 40, 40},
			Minimap: true,
		},
		Camera: CameraConfig{
			FOV:        60,
			Columns:    120,
			MaxDepth:   800,
			Step:       1,
			Epsilon:    0.0001,
			Shading:    "distance",
			Falloff:    0.02,
			WallColor:  [3]uint8{40, 40, 40},
			Correction: "none",
			Method:     "march",
		},
		Player: PlayerConfig{
			TurnRate:      0.03,
			Speed:         2,
			RunMultiplier: 1.5,
		},
		Actors: ActorConfig{
			Speed:         0.5,
			AnimationRate: 0.15,
			AmbientRange:  120,
			StartleRange:  50,
		},
		Audio: AudioConfig{
			Enabled:       true,
			Dir:           ".",
			Ambient:       "ghost.mp3",
			Startle:       "jumpscare.mp3",
			AmbientVolume: 0.3,
			StartleVolume: 0.7,
		},
		Assets: AssetConfig{
			Dir:  "assets",
			Tile: 64,
			Seed: 1,
		},
		Level: LevelConfig{
			Name:   "ultimate",
			Floors: 2,
			Width:  15,
			Height: 11,
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
	}
}

// Edition returns the preset of a named edition
func Edition(name string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(name) {
	case "", EditionUltimate:
		return cfg, nil
	case EditionStickman:
		cfg.Edition = EditionStickman
		cfg.Camera.Shading = "flat"
		cfg.Camera.WallColor = [3]uint8{80, 80, 80}
		cfg.Camera.Epsilon = 0.01
		cfg.Actors.Speed = 0.4
		cfg.Actors.SpriteSize = int(64 / 1.5 * 0.75)
		cfg.Audio.AmbientVolume = 1
		cfg.Audio.StartleVolume = 1
		cfg.Level.Name = "stickman"
		cfg.Screen.Minimap = false
		return cfg, nil
	}
	return Config{}, fmt.Errorf("%w: unknown edition %q", ErrInvalid, name)
}

// Parse decodes TOML over the defaults of the edition the document names
func Parse(data []byte) (Config, error) {
	var head struct {
		Edition string `toml:"edition"`
	}
	if err := toml.Unmarshal(data, &head); err != nil {
		return Config{}, pkgerrors.Wrap(err, "config parse")
	}

	cfg, err := Edition(head.Edition)
	if err != nil {
		return Config{}, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, pkgerrors.Wrap(err, "config parse")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads path, or the file named by $HAUNTED_CONFIG when path is empty
// With neither set it returns the defaults
func Load(path string) (Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, pkgerrors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, pkgerrors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

// Validate checks ranges and enumerations
func (c Config) Validate() error {
	switch {
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("%w: screen %dx%d", ErrInvalid, c.Screen.Width, c.Screen.Height)
	case c.Screen.FPS <= 0:
		return fmt.Errorf("%w: fps %d", ErrInvalid, c.Screen.FPS)
	case c.Player.Speed < 0 || c.Actors.Speed < 0:
		return fmt.Errorf("%w: negative speed", ErrInvalid)
	case c.Actors.StartleRange > c.Actors.AmbientRange:
		return fmt.Errorf("%w: startle range %.0f beyond ambient range %.0f", ErrInvalid, c.Actors.StartleRange, c.Actors.AmbientRange)
	case c.Audio.AmbientVolume < 0 || c.Audio.StartleVolume < 0:
		return fmt.Errorf("%w: negative volume", ErrInvalid)
	case c.Assets.Tile <= 0:
		return fmt.Errorf("%w: tile %d", ErrInvalid, c.Assets.Tile)
	}
	if _, err := parseShading(c.Camera.Shading); err != nil {
		return err
	}
	if _, err := parseCorrection(c.Camera.Correction); err != nil {
		return err
	}
	if _, err := parseMethod(c.Camera.Method); err != nil {
		return err
	}
	if _, err := input.KeymapFromTable(c.Keys); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	cam, _ := c.RaycastCamera()
	if err := cam.Validate(float64(c.Assets.Tile)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// RaycastCamera converts the camera section
func (c Config) RaycastCamera() (raycast.Camera, error) {
	shading, err := parseShading(c.Camera.Shading)
	if err != nil {
		return raycast.Camera{}, err
	}
	correction, err := parseCorrection(c.Camera.Correction)
	if err != nil {
		return raycast.Camera{}, err
	}
	method, err := parseMethod(c.Camera.Method)
	if err != nil {
		return raycast.Camera{}, err
	}
	return raycast.Camera{
		Width:        c.Screen.Width,
		Height:       c.Screen.Height,
		FOV:          vmath.Radians(c.Camera.FOV),
		Columns:      c.Camera.Columns,
		MaxDepth:     c.Camera.MaxDepth,
		Step:         c.Camera.Step,
		Epsilon:      c.Camera.Epsilon,
		Shading:      shading,
		ShadeFalloff: c.Camera.Falloff,
		WallColor:    rgb(c.Camera.WallColor),
		Correction:   correction,
		Centered:     c.Camera.Centered,
		Method:       method,
	}, nil
}

// Params converts the player and actor sections; the cue cone follows the camera FOV
func (c Config) Params() world.Params {
	return world.Params{
		TurnRate:      c.Player.TurnRate,
		Speed:         c.Player.Speed,
		RunMultiplier: c.Player.RunMultiplier,
		ActorSpeed:    c.Actors.Speed,
		AnimationRate: c.Actors.AnimationRate,
		FOV:           vmath.Radians(c.Camera.FOV),
		AmbientRange:  c.Actors.AmbientRange,
		StartleRange:  c.Actors.StartleRange,
	}
}

// AudioPlayer converts the audio section
func (c Config) AudioPlayer() audio.Config {
	return audio.Config{
		Enabled:       c.Audio.Enabled,
		Dir:           c.Audio.Dir,
		Ambient:       c.Audio.Ambient,
		Startle:       c.Audio.Startle,
		AmbientVolume: c.Audio.AmbientVolume,
		StartleVolume: c.Audio.StartleVolume,
	}
}

// Keymap returns the default bindings with the [keys] overrides applied
func (c Config) Keymap() (input.Keymap, error) {
	override, err := input.KeymapFromTable(c.Keys)
	if err != nil {
		return nil, err
	}
	return input.Merge(input.DefaultKeymap(), override), nil
}

// CeilingColor and FloorColor are the background halves
func (c Config) CeilingColor() render.RGB { return rgb(c.Screen.Ceiling) }
func (c Config) FloorColor() render.RGB   { return rgb(c.Screen.Floor) }

// FrameInterval is the tick period at the configured FPS
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(max(1, c.Screen.FPS))
}

func rgb(v [3]uint8) render.RGB {
	return render.RGB{R: v[0], G: v[1], B: v[2]}
}

func parseShading(s string) (raycast.Shading, error) {
	switch strings.ToLower(s) {
	case "", "distance":
		return raycast.ShadeDistance, nil
	case "flat":
		return raycast.ShadeFlat, nil
	}
	return 0, fmt.Errorf("%w: shading %q", ErrInvalid, s)
}

func parseCorrection(s string) (raycast.Correction, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return raycast.CorrectionNone, nil
	case "cosine":
		return raycast.CorrectionCosine, nil
	}
	return 0, fmt.Errorf("%w: correction %q", ErrInvalid, s)
}

func parseMethod(s string) (raycast.Method, error) {
	switch strings.ToLower(s) {
	case "", "march":
		return raycast.MarchFixedStep, nil
	case "dda":
		return raycast.MarchDDA, nil
	}
	return 0, fmt.Errorf("%w: method %q", ErrInvalid, s)
}
