package engine

import (
	"image"
	"sort"

	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/haunted/asset"
	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/raycast"
	"github.com/lixenwraith/haunted/render"
	"github.com/lixenwraith/haunted/vmath"
	"github.com/lixenwraith/haunted/world"
)

// Haunted is the first-person house scene
type Haunted struct {
	State   world.State
	Params  world.Params
	Camera  raycast.Camera
	Library *asset.Library
	Sink    world.CueSink // nil plays nothing

	Ceiling    render.RGB
	Floor      render.RGB
	SpriteSize int // placeholder size, 0 uses the library tile
	ShowMap    bool
	Flicker    *Flicker
	Metrics    *Metrics

	cols       []raycast.Column
	sprites    []sprite
	toggleHeld bool
}

type sprite struct {
	board raycast.Billboard
	frame image.Image
}

// NewHaunted resolves every actor's frame set so animation cursors wrap at the right count
func NewHaunted(st world.State, params world.Params, cam raycast.Camera, lib *asset.Library, spriteSize int) *Haunted {
	st.Actors = append([]world.Actor(nil), st.Actors...)
	for i, a := range st.Actors {
		st.Actors[i].FrameCount = len(lib.Actor(a.FrameSet, a.Sprite, spriteSize))
	}
	return &Haunted{
		State:      st,
		Params:     params,
		Camera:     cam,
		Library:    lib,
		Ceiling:    render.Gray(20),
		Floor:      render.Gray(40),
		SpriteSize: spriteSize,
		cols:       make([]raycast.Column, 0, cam.Columns),
	}
}

// Update steps the simulation with player 1's controls; ToggleMap flips on press
func (h *Haunted) Update(in input.Snapshot) bool {
	controls := in.Slot(0)

	toggle := controls.Has(input.ToggleMap)
	if toggle && !h.toggleHeld {
		h.ShowMap = !h.ShowMap
	}
	h.toggleHeld = toggle

	h.State = world.Step(h.State, controls, h.Params, h.Sink)
	return true
}

// Draw paints background, wall slices, decorations, actors and the optional minimap
func (h *Haunted) Draw(s *render.Surface) {
	st := h.State
	floor := st.Floor()
	cell := floor.CellSize()

	light := h.Flicker.Factor(st.Tick)
	h.Camera.PaintBackground(s, render.Scale(h.Ceiling, light), render.Scale(h.Floor, light))

	h.cols = h.Camera.Cast(floor, st.Player.Pos, st.Player.Heading, h.cols)
	h.Camera.PaintColumns(s, h.cols, cell, h.decorate)

	hits := 0
	for _, c := range h.cols {
		if c.OK {
			hits++
		}
	}
	h.Metrics.ObserveRays(len(h.cols), hits)

	h.drawActors(s, cell)

	if h.ShowMap {
		DrawMinimap(s, st)
	}
}

func (h *Haunted) decorate(c raycast.Column) image.Image {
	if h.Library == nil {
		return nil
	}
	e, ok := h.State.ElementAt(h.State.Player.Floor, c.Hit.Cell)
	if !ok {
		return nil
	}
	return h.Library.Wall(e.Kind, e.Index)
}

// drawActors paints same-floor actors far to near so closer ones overlap farther ones
func (h *Haunted) drawActors(s *render.Surface, cell float64) {
	p := h.State.Player
	h.sprites = h.sprites[:0]
	for _, a := range h.State.Actors {
		if a.Floor != p.Floor {
			continue
		}
		b, ok := h.Camera.ProjectSprite(p.Pos, p.Heading, a.Pos, cell)
		if !ok {
			continue
		}
		frames := h.Library.Actor(a.FrameSet, a.Sprite, h.SpriteSize)
		h.sprites = append(h.sprites, sprite{board: b, frame: frames.At(a.Cursor)})
	}

	sort.SliceStable(h.sprites, func(i, j int) bool {
		return h.sprites[i].board.Distance > h.sprites[j].board.Distance
	})
	for _, sp := range h.sprites {
		raycast.PaintSprite(s, sp.board, sp.frame)
	}
}

// Flicker modulates light with 1D perlin noise over ticks
type Flicker struct {
	Amplitude float64 // max relative brightness change
	Rate      float64 // noise units per tick
	noise     *perlin.Perlin
}

// NewFlicker creates a flicker; amplitude 0 keeps light constant
func NewFlicker(amplitude float64, seed int64) *Flicker {
	return &Flicker{
		Amplitude: amplitude,
		Rate:      0.05,
		noise:     perlin.NewPerlin(2, 2, 3, seed),
	}
}

// Factor is the brightness multiplier at a tick, within [1-Amplitude, 1+Amplitude]
func (f *Flicker) Factor(tick uint64) float64 {
	if f == nil || f.Amplitude == 0 {
		return 1
	}
	n := vmath.Clamp(f.noise.Noise1D(float64(tick)*f.Rate), -1, 1)
	return 1 + f.Amplitude*n
}
