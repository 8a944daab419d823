// Package sim holds the components and systems shared by the continuous
// games. Systems are unit-agnostic: frame.DeltaTime is whatever time unit the
// owning game advances its scheduler by.
package sim

import (
	"image/color"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
)

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Acceleration struct {
	X, Y float64
}

// Lifetime counts down and the entity is deleted when Remaining reaches zero.
type Lifetime struct {
	Remaining float64
	Total     float64
}

// Alpha is the remaining fraction of the lifetime, clamped to [0, 1].
func (l Lifetime) Alpha() float64 {
	if l.Total <= 0 {
		return 0
	}
	return max(0, min(l.Remaining/l.Total, 1))
}

// Particle is a square spark centred on its Position.
type Particle struct {
	Color color.RGBA
	Size  float64
}

// Canvas is the singleton render systems draw to. Hosts set Surface before
// running a render scheduler.
type Canvas struct {
	Surface draw.Surface
}

// RegisterComponents registers every sim component with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Acceleration](registry)
	ecs.RegisterComponent[Lifetime](registry)
	ecs.RegisterComponent[Particle](registry)
}
