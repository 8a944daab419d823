package sim

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/arcade/ecs"
)

// BurstConfig describes a particle explosion. Velocities are drawn from
// (rand-0.5)*Spread on each axis, lifetimes from MinLife+rand*LifeJitter and
// sizes from Size+rand*SizeJitter.
type BurstConfig struct {
	Spread     float64
	Gravity    float64
	MinLife    float64
	LifeJitter float64
	MaxLife    float64
	Size       float64
	SizeJitter float64
}

// Burst queues count particles at (x, y).
func Burst(cmds *ecs.Commands, rng *rand.Rand, cfg BurstConfig, x, y float64, count int, c color.RGBA) {
	for range count {
		life := cfg.MinLife + rng.Float64()*cfg.LifeJitter
		total := cfg.MaxLife
		if total <= 0 {
			total = life
		}

		components := []any{
			Position{X: x, Y: y},
			Velocity{X: (rng.Float64() - 0.5) * cfg.Spread, Y: (rng.Float64() - 0.5) * cfg.Spread},
			Lifetime{Remaining: life, Total: total},
			Particle{Color: c, Size: cfg.Size + rng.Float64()*cfg.SizeJitter},
		}
		if cfg.Gravity != 0 {
			components = append(components, Acceleration{Y: cfg.Gravity})
		}
		cmds.Spawn(components...)
	}
}

// Chance is a Bernoulli trial with success probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
