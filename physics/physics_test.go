package physics

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/haunted/input"
	"github.com/lixenwraith/haunted/vmath"
)

var none input.Controls

func TestHeadingConvention(t *testing.T) {
	v := NewVehicle(&SpeedBoat, vmath.V2(0, 0))
	assert.True(t, v.Heading().Eq(vmath.V2(0, -1), 1e-12), "0 degrees faces up")

	v.Angle = 90
	assert.True(t, v.Heading().Eq(vmath.V2(-1, 0), 1e-12), "positive angle turns left")

	v.Speed = 2
	assert.True(t, v.Velocity().Eq(vmath.V2(-2, 0), 1e-12))
	assert.True(t, v.Stern(25).Eq(vmath.V2(25, 0), 1e-12))
}

func TestDriveLimits(t *testing.T) {
	v := NewVehicle(&Porsche, vmath.V2(0, 0))
	for i := 0; i < 200; i++ {
		v.Drive(none.With(input.Forward), true)
	}
	assert.Equal(t, 8.0, v.Speed)

	// Off the asphalt the forward limit collapses to 2
	v.Drive(none.With(input.Forward), false)
	assert.Equal(t, 2.0, v.Speed)

	for i := 0; i < 100; i++ {
		v.Drive(none.With(input.Backward), true)
	}
	assert.Equal(t, -2.5, v.Speed)

	boat := NewVehicle(&SpeedBoat, vmath.V2(0, 0))
	for i := 0; i < 200; i++ {
		boat.Drive(none.With(input.Forward).With(input.Boost), true)
	}
	assert.InDelta(t, 10, boat.Speed, 1e-9)
	// Boost released: limit drops back on the next throttle tick
	boat.Drive(none.With(input.Forward), true)
	assert.Equal(t, 6.0, boat.Speed)
}

func TestCoast(t *testing.T) {
	car := NewVehicle(&McLaren, vmath.V2(0, 0))
	car.Speed = 1
	car.Drive(none, true)
	assert.InDelta(t, 0.96, car.Speed, 1e-12)

	car.Speed = -0.03
	car.Drive(none, true)
	assert.Equal(t, 0.0, car.Speed)

	boat := NewVehicle(&SpeedBoat, vmath.V2(0, 0))
	boat.Speed = 1
	boat.Drive(none, true)
	assert.InDelta(t, 0.98, boat.Speed, 1e-12)
}

func TestSteering(t *testing.T) {
	boat := NewVehicle(&SpeedBoat, vmath.V2(0, 0))
	boat.Speed = 0.15
	boat.Drive(none.With(input.TurnLeft), true)
	assert.Equal(t, 0.0, boat.Angle, "too slow to steer")

	boat.Speed = 3
	boat.Drive(none.With(input.TurnLeft), true)
	assert.Equal(t, 3.0, boat.Angle)
	boat.Drive(none.With(input.TurnRight), true)
	assert.Equal(t, 0.0, boat.Angle)

	// Reversing flips the steering sense
	boat.Speed = -1.5
	boat.Drive(none.With(input.TurnLeft), true)
	assert.Equal(t, -3.0, boat.Angle)
}

func TestTrack(t *testing.T) {
	tr := DefaultTrack()
	assert.True(t, tr.OnTrack(vmath.V2(150, 325)))
	assert.True(t, tr.OnTrack(vmath.V2(600, 120)))
	assert.False(t, tr.OnTrack(vmath.V2(600, 325)))
	assert.False(t, tr.OnTrack(vmath.V2(10, 10)))

	assert.True(t, tr.Inside(vmath.V2(600, 325)))
	assert.False(t, tr.Inside(vmath.V2(10, 10)))

	assert.True(t, tr.CrossedFinish(vmath.V2(150, 326), vmath.V2(150, 324)))
	assert.True(t, tr.CrossedFinish(vmath.V2(150, 326), vmath.V2(150, 325)))
	assert.False(t, tr.CrossedFinish(vmath.V2(150, 325), vmath.V2(150, 324)), "starting on the line")
	assert.False(t, tr.CrossedFinish(vmath.V2(150, 324), vmath.V2(150, 326)), "downward")
	assert.False(t, tr.CrossedFinish(vmath.V2(300, 326), vmath.V2(300, 324)), "outside the segment")
}

func TestObstacleHits(t *testing.T) {
	hull := SpeedBoat.Hull
	rock := Obstacle{Kind: Rock, Size: 30}
	assert.True(t, rock.Hits(vmath.V2(40, 0), hull))
	assert.False(t, rock.Hits(vmath.V2(50, 0), hull))

	buoy := Obstacle{Kind: Buoy, Size: 25}
	assert.Equal(t, 12.0, buoy.Radius())
	assert.True(t, buoy.Hits(vmath.V2(25, 0), hull))
	assert.False(t, buoy.Hits(vmath.V2(27, 0), hull))

	log := Obstacle{Kind: Log, Size: 60}
	assert.True(t, log.Hits(vmath.V2(43, 0), hull))
	assert.True(t, log.Hits(vmath.V2(0, 54), hull))
	assert.False(t, log.Hits(vmath.V2(0, 56), hull))

	v := NewVehicle(&SpeedBoat, vmath.V2(0, 0))
	v.Speed = 5
	v.Bounce()
	assert.Equal(t, -0.5, v.Speed)
}

func TestObstacleSizesAndBob(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	for i := 0; i < 100; i++ {
		r := NewObstacle(Rock, vmath.V2(0, 0), rng)
		require.GreaterOrEqual(t, r.Size, 25.0)
		require.LessOrEqual(t, r.Size, 40.0)
		l := NewObstacle(Log, vmath.V2(0, 0), rng)
		require.GreaterOrEqual(t, l.Size, 50.0)
		require.LessOrEqual(t, l.Size, 80.0)
	}
	assert.Equal(t, 25.0, NewObstacle(Buoy, vmath.V2(0, 0), rng).Size)

	o := Obstacle{Pos: vmath.V2(0, 100)}
	o.Bob()
	assert.Greater(t, o.Pos.Y, 100.0)
	assert.Less(t, o.Pos.Y, 100.3)
}

func TestPlaceObstacles(t *testing.T) {
	tr := DefaultTrack()
	a := PlaceObstacles(tr, 12, 1200, 650, rand.New(rand.NewPCG(9, 9)))
	b := PlaceObstacles(tr, 12, 1200, 650, rand.New(rand.NewPCG(9, 9)))
	require.Len(t, a, 12)
	assert.Equal(t, a, b)
	for _, o := range a {
		assert.True(t, tr.Inside(o.Pos))
	}
	assert.Empty(t, PlaceObstacles(Track{}, 5, 100, 100, rand.New(rand.NewPCG(1, 1))))
}

func TestWakeFades(t *testing.T) {
	var w Wake
	rng := rand.New(rand.NewPCG(2, 2))
	w.Emit(vmath.V2(1, 1), rng)
	require.Len(t, w.Particles, 1)
	assert.Equal(t, 255, w.Particles[0].Alpha)
	assert.GreaterOrEqual(t, w.Particles[0].Size, 5)
	assert.LessOrEqual(t, w.Particles[0].Size, 10)

	for i := 0; i < 63; i++ {
		w.Fade()
	}
	require.Len(t, w.Particles, 1)
	assert.Equal(t, 3, w.Particles[0].Alpha)
	w.Fade()
	assert.Empty(t, w.Particles)
}

func TestRaceLapsAndWinner(t *testing.T) {
	cfg := Preset("boat")
	cfg.Obstacles = 0
	r := NewRace(cfg)
	require.Len(t, r.Vehicles, 2)
	assert.Equal(t, vmath.V2(170, 325), r.Vehicles[1].Pos)

	lead := r.Vehicles[0]
	lead.Pos = vmath.V2(150, 340)
	lead.Laps = 2

	var snap input.Snapshot
	snap = snap.With(0, input.Forward)
	for i := 0; i < 100 && !r.Finished(); i++ {
		r.Step(snap)
	}
	require.True(t, r.Finished())
	assert.Equal(t, 0, r.Winner)
	assert.Equal(t, 3, lead.Laps)
	assert.NotEmpty(t, r.Wakes[0].Particles)

	// Finished races freeze the vehicles
	pos := lead.Pos
	r.Step(snap)
	assert.Equal(t, pos, lead.Pos)
}

func TestPresets(t *testing.T) {
	assert.Equal(t, &Porsche, Preset("porsche").Profile)
	assert.Equal(t, 1, Preset("porsche").Players)
	assert.False(t, Preset("mclaren").Circuit)
	assert.Equal(t, &McLaren, Preset("anything").Profile)
	assert.Len(t, Profiles, 3)

	free := NewRace(Preset("mclaren"))
	assert.Equal(t, vmath.V2(600, 325), free.Vehicles[0].Pos)
	assert.Empty(t, free.Obstacles)
}

func TestClamp(t *testing.T) {
	v := NewVehicle(&McLaren, vmath.V2(-5, 700))
	v.Speed = 4
	v.Clamp(1200, 650)
	assert.Equal(t, vmath.V2(0, 649), v.Pos)
	assert.Equal(t, 0.0, v.Speed)
}
