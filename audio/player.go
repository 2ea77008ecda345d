// Package audio plays proximity cues through the system speaker.
// Cue files (wav or mp3) are decoded once at startup; a missing or broken
// file falls back to a synthesized sound, and an absent audio device turns
// every call into a no-op.
package audio

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	pkgerrors "github.com/pkg/errors"

	"github.com/lixenwraith/haunted/world"
)

var ErrFormat = errors.New("audio: unsupported cue format")

// Config selects cue files and their volumes
type Config struct {
	Enabled       bool
	Dir           string
	Ambient       string // file name under Dir
	Startle       string
	AmbientVolume float64 // linear, 1 is unity gain
	StartleVolume float64
}

// DefaultConfig returns ghost.mp3 at 0.3 and jumpscare.mp3 at 0.7 from the working directory
func DefaultConfig() Config {
	return Config{
		Enabled:       true,
		Dir:           ".",
		Ambient:       "ghost.mp3",
		Startle:       "jumpscare.mp3",
		AmbientVolume: 0.3,
		StartleVolume: 0.7,
	}
}

const cueCount = 2

// Player implements world.CueSink on top of a beep mixer
type Player struct {
	mu          sync.Mutex
	cfg         Config
	mixer       *beep.Mixer
	buffers     [cueCount]*beep.Buffer // nil plays the synthesized fallback
	active      atomic.Int32
	initialized bool
}

var _ world.CueSink = (*Player)(nil)

// NewPlayer decodes the configured cue files; failures are logged and synthesized instead
func NewPlayer(cfg Config) *Player {
	p := &Player{
		cfg:   cfg,
		mixer: &beep.Mixer{},
	}
	for c, name := range [cueCount]string{cfg.Ambient, cfg.Startle} {
		if name == "" {
			continue
		}
		path := filepath.Join(cfg.Dir, name)
		buf, err := decodeFile(path)
		if err != nil {
			log.Printf("audio: %s cue falls back to synth: %v", world.Cue(c), err)
			continue
		}
		p.buffers[c] = buf
	}
	return p
}

// Initialize opens the speaker; disabled configs stay silent
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized || !p.cfg.Enabled {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return pkgerrors.Wrap(err, "speaker init")
	}

	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup drops every playing cue
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()

	p.active.Store(0)
	p.initialized = false
}

// Play starts a cue without waiting for it
func (p *Player) Play(c world.Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	s := p.source(c)
	if s == nil {
		return
	}

	speaker.Lock()
	p.mixer.Add(p.track(s))
	speaker.Unlock()
}

// Busy reports whether any cue is still playing
func (p *Player) Busy() bool {
	return p.active.Load() > 0
}

// Synthesized reports whether a cue plays the generated fallback
func (p *Player) Synthesized(c world.Cue) bool {
	return int(c) < cueCount && p.buffers[c] == nil
}

// source builds a fresh volume-scaled stream for a cue
func (p *Player) source(c world.Cue) beep.Streamer {
	if int(c) >= cueCount {
		return nil
	}

	var s beep.Streamer
	if buf := p.buffers[c]; buf != nil {
		s = buf.Streamer(0, buf.Len())
	} else {
		s = synthesize(c)
	}

	vol := p.cfg.AmbientVolume
	if c == world.CueStartle {
		vol = p.cfg.StartleVolume
	}
	return newVolume(s, vol)
}

// track counts s as active until it drains
func (p *Player) track(s beep.Streamer) beep.Streamer {
	p.active.Add(1)
	return beep.Seq(s, beep.Callback(func() {
		p.active.Add(-1)
	}))
}

func synthesize(c world.Cue) beep.Streamer {
	if c == world.CueStartle {
		return beep.Take(sampleRate.N(startleDuration), NewShriekGenerator(sampleRate, time.Now().UnixNano()))
	}
	return beep.Take(sampleRate.N(moanDuration), NewMoanGenerator(sampleRate))
}

// decodeFile reads a whole wav or mp3 file into memory at the speaker rate
func decodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "open cue")
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		s, format, err = mp3.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("%w: %s", ErrFormat, filepath.Base(path))
	}
	if err != nil {
		f.Close()
		return nil, pkgerrors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	defer s.Close()

	var src beep.Streamer = s
	if format.SampleRate != sampleRate {
		src = beep.Resample(4, format.SampleRate, sampleRate, s)
	}

	buf := beep.NewBuffer(beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2})
	buf.Append(src)
	return buf, nil
}
