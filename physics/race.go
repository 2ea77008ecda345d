package physics

import (
	"math/rand/v2"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/vmath"
)

// RaceConfig describes one driving session
type RaceConfig struct {
	Profile   *Profile
	Players   int  // 1 or 2, bounded by input.Slots
	Obstacles int  // hazards placed inside the circuit
	Circuit   bool // draw and enforce the track band
	Wake      bool
	LapsToWin int // 0 = endless
	Width     int
	Height    int
	Seed      uint64
}

// Preset returns the session matching a profile name: two-boat race, Porsche circuit, free McLaren
func Preset(name string) RaceConfig {
	cfg := RaceConfig{Width: 1200, Height: 650, Players: 1}
	switch name {
	case SpeedBoat.Name:
		cfg.Profile = &SpeedBoat
		cfg.Players = 2
		cfg.Obstacles = 12
		cfg.Circuit = true
		cfg.Wake = true
		cfg.LapsToWin = 3
	case Porsche.Name:
		cfg.Profile = &Porsche
		cfg.Circuit = true
	default:
		cfg.Profile = &McLaren
	}
	return cfg
}

// Race owns every vehicle and hazard of a session
type Race struct {
	Config    RaceConfig
	Track     Track
	Vehicles  []*Vehicle
	Wakes     []Wake
	Obstacles []Obstacle
	OnTrack   []bool
	Winner    int // index into Vehicles, -1 while racing
	rng       *rand.Rand
}

// NewRace lines the vehicles up on the start line
func NewRace(cfg RaceConfig) *Race {
	if cfg.Profile == nil {
		cfg.Profile = &McLaren
	}
	cfg.Players = max(1, min(cfg.Players, input.Slots))
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1200, 650
	}

	r := &Race{
		Config: cfg,
		Track:  DefaultTrack(),
		Winner: -1,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed+1)),
	}

	start := vmath.V2(150, 325)
	if !cfg.Circuit {
		start = vmath.V2(float64(cfg.Width)/2, float64(cfg.Height)/2)
	}
	for i := 0; i < cfg.Players; i++ {
		r.Vehicles = append(r.Vehicles, NewVehicle(cfg.Profile, start.Add(vmath.V2(float64(20*i), 0))))
	}
	r.Wakes = make([]Wake, cfg.Players)
	r.OnTrack = make([]bool, cfg.Players)
	r.Obstacles = PlaceObstacles(r.Track, cfg.Obstacles, cfg.Width, cfg.Height, r.rng)
	return r
}

// Finished reports a winner
func (r *Race) Finished() bool { return r.Winner >= 0 }

// Step advances the session one tick; vehicle i reads input slot i
func (r *Race) Step(snap input.Snapshot) {
	if !r.Finished() {
		for i, v := range r.Vehicles {
			onTrack := !r.Config.Circuit || r.Track.OnTrack(v.Pos)
			r.OnTrack[i] = onTrack
			v.Drive(snap.Slot(i), onTrack)
			v.Clamp(float64(r.Config.Width), float64(r.Config.Height))

			if r.Config.Wake {
				r.Wakes[i].Emit(v.Stern(25), r.rng)
				r.Wakes[i].Fade()
			}

			for _, o := range r.Obstacles {
				if o.Hits(v.Pos, v.Profile.Hull) {
					v.Bounce()
				}
			}

			if r.Config.Circuit && r.Track.CrossedFinish(v.Prev, v.Pos) {
				v.Laps++
			}
		}
		if r.Config.LapsToWin > 0 {
			for i, v := range r.Vehicles {
				if v.Laps >= r.Config.LapsToWin {
					r.Winner = i
					break
				}
			}
		}
	}

	for i := range r.Obstacles {
		r.Obstacles[i].Bob()
	}
}
