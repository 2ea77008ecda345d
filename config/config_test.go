package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/raycast"
	"github.com/lixenwraith/haunted/render"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cam, err := cfg.RaycastCamera()
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/3, cam.FOV, 1e-12)
	cam.FOV = math.Pi / 3
	assert.Equal(t, raycast.DefaultCamera(), cam)

	p := cfg.Params()
	assert.InDelta(t, math.Pi/3, p.FOV, 1e-12)
	assert.Equal(t, 0.5, p.ActorSpeed)
	assert.Equal(t, 120.0, p.AmbientRange)

	assert.Equal(t, render.Gray(20), cfg.CeilingColor())
	assert.Equal(t, render.Gray(40), cfg.FloorColor())
	assert.Equal(t, time.Second/60, cfg.FrameInterval())
}

func TestStickmanEdition(t *testing.T) {
	cfg, err := Edition("Stickman")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	cam, err := cfg.RaycastCamera()
	require.NoError(t, err)
	assert.Equal(t, raycast.ShadeFlat, cam.Shading)
	assert.Equal(t, render.Gray(80), cam.Shade(10))
	assert.Equal(t, 0.01, cam.Epsilon)
	assert.Equal(t, 0.4, cfg.Params().ActorSpeed)
	assert.Equal(t, 31, cfg.Actors.SpriteSize)
	assert.Equal(t, "stickman", cfg.Level.Name)

	_, err = Edition("deluxe")
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestParseOverridesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
edition = "stickman"

[screen]
fps = 30

[camera]
correction = "cosine"
method = "dda"

[audio]
enabled = false

[keys.player1]
space = "boost"
m = "none"
`))
	require.NoError(t, err)

	// Untouched values keep the edition preset
	assert.Equal(t, 800, cfg.Screen.Width)
	assert.Equal(t, 0.4, cfg.Actors.Speed)
	assert.Equal(t, 30, cfg.Screen.FPS)
	assert.False(t, cfg.Audio.Enabled)
	assert.False(t, cfg.AudioPlayer().Enabled)

	cam, err := cfg.RaycastCamera()
	require.NoError(t, err)
	assert.Equal(t, raycast.CorrectionCosine, cam.Correction)
	assert.Equal(t, raycast.MarchDDA, cam.Method)

	km, err := cfg.Keymap()
	require.NoError(t, err)
	snap := km.Resolve([]string{"space", "m", "up"})
	assert.True(t, snap.Slot(0).Has(input.Boost))
	assert.True(t, snap.Slot(0).Has(input.Forward))
	assert.False(t, snap.Slot(0).Has(input.ToggleMap))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		invalid bool
	}{
		{"syntax", "[screen\nwidth = 1", false},
		{"zero width", "[screen]\nwidth = 0", true},
		{"unknown shading", "[camera]\nshading = \"phong\"", true},
		{"unknown method", "[camera]\nmethod = \"bsp\"", true},
		{"step beyond tile", "[camera]\nstep = 100", true},
		{"startle beyond ambient", "[actors]\nstartle_range = 500", true},
		{"unknown action", "[keys.player1]\nq = \"jump\"", true},
		{"unknown edition", "edition = \"deluxe\"", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, ErrInvalid)
			}
		})
	}

	_, err := Parse([]byte("[camera]\nstep = 100"))
	assert.ErrorIs(t, err, raycast.ErrStepTooLarge)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "haunted.toml")
	require.NoError(t, os.WriteFile(path, []byte("[player]\nspeed = 3\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Player.Speed)

	t.Setenv(EnvPath, path)
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, 3.0, cfg.Player.Speed)

	t.Setenv(EnvPath, "")
	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
