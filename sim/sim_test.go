package sim_test

import (
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld() (*ecs.Storage, *ecs.Scheduler) {
	registry := ecs.NewComponentRegistry()
	sim.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	sim.Register(scheduler)
	return storage, scheduler
}

func TestMovementThenAcceleration(t *testing.T) {
	storage, scheduler := newWorld()

	id := storage.Spawn(sim.Position{}, sim.Velocity{X: 2, Y: 1}, sim.Acceleration{Y: 0.5})
	scheduler.Once(1)
	scheduler.Once(1)

	pos := ecs.ReadComponent[sim.Position](storage, id)
	vel := ecs.ReadComponent[sim.Velocity](storage, id)
	assert.Equal(t, sim.Position{X: 4, Y: 2.5}, *pos)
	assert.Equal(t, sim.Velocity{X: 2, Y: 2}, *vel)
}

func TestLifetimeDeletesExpired(t *testing.T) {
	storage, scheduler := newWorld()

	short := storage.Spawn(sim.Position{}, sim.Lifetime{Remaining: 1, Total: 1})
	long := storage.Spawn(sim.Position{}, sim.Lifetime{Remaining: 3, Total: 3})

	scheduler.Once(1)
	assert.False(t, storage.Alive(short))
	assert.True(t, storage.Alive(long))

	life := ecs.ReadComponent[sim.Lifetime](storage, long)
	assert.InDelta(t, 2.0/3.0, life.Alpha(), 1e-9)
}

func TestLifetimeAlpha(t *testing.T) {
	assert.Equal(t, 0.0, sim.Lifetime{}.Alpha())
	assert.Equal(t, 1.0, sim.Lifetime{Remaining: 60, Total: 50}.Alpha())
	assert.Equal(t, 0.5, sim.Lifetime{Remaining: 25, Total: 50}.Alpha())
}

func TestBurst(t *testing.T) {
	storage, scheduler := newWorld()
	rng := rand.New(rand.NewPCG(7, 7))

	cfg := sim.BurstConfig{Spread: 8, Gravity: 0.2, MinLife: 30, LifeJitter: 20, MaxLife: 50, Size: 2}
	scheduler.Register(burstOnce(func(frame *ecs.UpdateFrame) {
		sim.Burst(frame.Commands, rng, cfg, 10, 20, 5, color.RGBA{R: 255, A: 255})
	}))

	scheduler.Once(1)
	require.Equal(t, 5, storage.Count())

	view := ecs.NewView[struct {
		*sim.Velocity
		*sim.Lifetime
		*sim.Acceleration
	}](storage)
	for p := range view.Values() {
		assert.InDelta(t, 0, p.Velocity.X, 4)
		assert.InDelta(t, 0, p.Velocity.Y, 4)
		assert.GreaterOrEqual(t, p.Lifetime.Remaining, 30.0)
		assert.Less(t, p.Lifetime.Remaining, 50.0)
		assert.Equal(t, 50.0, p.Lifetime.Total)
		assert.Equal(t, 0.2, p.Acceleration.Y)
	}
}

func TestParticleRender(t *testing.T) {
	storage, scheduler := newWorld()
	scheduler.Register(&sim.ParticleRenderSystem{})

	rec := draw.NewRecorder(100, 100)
	storage.AddSingleton(sim.Canvas{Surface: rec})
	storage.Spawn(sim.Position{X: 10, Y: 10}, sim.Particle{Color: color.RGBA{200, 200, 200, 255}, Size: 4},
		sim.Lifetime{Remaining: 3, Total: 2})
	storage.Spawn(sim.Position{X: 50, Y: 50}, sim.Particle{Color: color.RGBA{0, 0, 255, 255}, Size: 2})

	scheduler.Once(1)

	require.Len(t, rec.Ops, 2)
	assert.Equal(t, draw.Op{Kind: draw.KindFillRect, X: 8, Y: 8, W: 4, H: 4, Color: color.RGBA{200, 200, 200, 255}}, rec.Ops[0])
	assert.Equal(t, 49.0, rec.Ops[1].X)
}

func TestChance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))

	assert.False(t, sim.Chance(rng, 0))
	assert.True(t, sim.Chance(rng, 1))

	hits := 0
	for range 10000 {
		if sim.Chance(rng, 0.25) {
			hits++
		}
	}
	assert.InDelta(t, 2500, hits, 200)
}

func TestEffects(t *testing.T) {
	var fx sim.Effects[string]

	fx.Activate("shield", 5000)
	fx.Activate("speed", 3000)
	assert.True(t, fx.Active("shield"))
	assert.Equal(t, []string{"shield", "speed"}, fx.Names())

	assert.Empty(t, fx.Advance(2000))
	assert.Equal(t, 1000.0, fx.Remaining("speed"))

	assert.Equal(t, []string{"speed"}, fx.Advance(1000))
	assert.False(t, fx.Active("speed"))
	assert.Zero(t, fx.Remaining("speed"))
	assert.Empty(t, fx.Advance(0), "expiry is reported once")

	fx.Activate("shield", 100)
	assert.Equal(t, 100.0, fx.Remaining("shield"), "reactivation restarts the countdown")

	fx.Deactivate("shield")
	assert.Empty(t, fx.Names())

	fx.Activate("magnet", 1)
	fx.Reset()
	assert.False(t, fx.Active("magnet"))
}

type burstOnce func(frame *ecs.UpdateFrame)

func (f burstOnce) Execute(frame *ecs.UpdateFrame) {
	if frame.Tick == 1 {
		f(frame)
	}
}
