// Package engine drives the frame loop: read a snapshot, step the scene, draw
// it into the surface and hand the surface to a presenter. Scenes own their
// simulation state; the loop owns timing and instrumentation.
package engine

import (
	"context"
	"time"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/render"
)

// Scene is one demo: it advances on a snapshot and paints itself
type Scene interface {
	// Update advances one tick; false ends the loop after this frame
	Update(in input.Snapshot) bool
	Draw(s *render.Surface)
}

// Presenter shows a finished frame
type Presenter interface {
	Present(s *render.Surface) error
}

// Source produces the control snapshot for the frame starting at now
type Source interface {
	Snapshot(now time.Time) input.Snapshot
}

// Loop runs a scene at a fixed frame interval
type Loop struct {
	Scene     Scene
	Surface   *render.Surface
	Presenter Presenter
	Input     Source
	Clock     Clock
	Interval  time.Duration
	Metrics   *Metrics

	frames uint64
}

// Frames is the number of frames run so far
func (l *Loop) Frames() uint64 { return l.frames }

// Frame runs one snapshot-update-draw-present cycle
// Returns false when the scene or the snapshot asks to quit; the frame is still presented
func (l *Loop) Frame() (bool, error) {
	if l.Clock == nil {
		l.Clock = SystemClock{}
	}
	start := l.Clock.Now()

	snap := l.Input.Snapshot(start)
	cont := l.Scene.Update(snap)
	l.Scene.Draw(l.Surface)
	if err := l.Presenter.Present(l.Surface); err != nil {
		return false, err
	}

	l.frames++
	l.Metrics.ObserveFrame(l.Clock.Now().Sub(start))
	return cont && !snap.Quit(), nil
}

// Run ticks until quit, a present error, or ctx cancellation; cancellation returns nil
func (l *Loop) Run(ctx context.Context) error {
	if l.Interval <= 0 {
		l.Interval = time.Second / 60
	}

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	for {
		cont, err := l.Frame()
		if err != nil || !cont {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
