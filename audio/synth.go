package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const (
	sampleRate = beep.SampleRate(48000)

	moanDuration    = 2 * time.Second
	startleDuration = 600 * time.Millisecond
)

// MoanGenerator generates a slow wavering sweep used when no ambient cue file exists
type MoanGenerator struct {
	sr      beep.SampleRate
	pos     int
	samples int
}

// NewMoanGenerator creates a moan generator with one rise-and-fall per cycle
func NewMoanGenerator(sr beep.SampleRate) *MoanGenerator {
	return &MoanGenerator{
		sr:      sr,
		samples: sr.N(moanDuration),
	}
}

func (g *MoanGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Pitch rises 110Hz to 170Hz and back, with a slow vibrato
		cyclePos := float64(g.pos%g.samples) / float64(g.samples)
		freq := 110 + 60*math.Sin(cyclePos*math.Pi) + 4*math.Sin(2*math.Pi*5*t)

		amplitude := 0.3 * math.Sin(cyclePos*math.Pi)
		sample := amplitude * (math.Sin(2*math.Pi*freq*t) + 0.3*math.Sin(2*math.Pi*freq*1.5*t)) / 1.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *MoanGenerator) Err() error {
	return nil
}

// ShriekGenerator generates a noisy falling screech used when no startle cue file exists
type ShriekGenerator struct {
	sr   beep.SampleRate
	pos  int
	seed int64
}

// NewShriekGenerator creates a shriek generator, seed drives the noise component
func NewShriekGenerator(sr beep.SampleRate, seed int64) *ShriekGenerator {
	return &ShriekGenerator{
		sr:   sr,
		seed: seed,
	}
}

func (g *ShriekGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Fast attack, exponential decay
		envelope := math.Min(t/0.01, 1) * math.Exp(-t*5)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1

		freq := 900 - 500*math.Min(t/startleDuration.Seconds(), 1)
		tone := math.Sin(2 * math.Pi * freq * t)

		sample := envelope * (0.35*noise + 0.45*tone)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ShriekGenerator) Err() error {
	return nil
}

// newVolume scales a stream linearly
// math.Log2(0) is -Inf, so zero volume is made silent instead
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
