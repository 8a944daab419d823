package sim

import (
	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
)

// AccelerationSystem integrates acceleration into velocity.
type AccelerationSystem struct {
	Bodies ecs.Query[struct {
		*Velocity
		*Acceleration
	}]
}

func (s *AccelerationSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Bodies.Values() {
		b.Velocity.X += b.Acceleration.X * frame.DeltaTime
		b.Velocity.Y += b.Acceleration.Y * frame.DeltaTime
	}
}

// MovementSystem integrates velocity into position.
type MovementSystem struct {
	Bodies ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for b := range s.Bodies.Values() {
		b.Position.X += b.Velocity.X * frame.DeltaTime
		b.Position.Y += b.Velocity.Y * frame.DeltaTime
	}
}

// LifetimeSystem counts lifetimes down and deletes expired entities.
type LifetimeSystem struct {
	Mortal ecs.Query[struct {
		ecs.EntityId
		*Lifetime
	}]
}

func (s *LifetimeSystem) Execute(frame *ecs.UpdateFrame) {
	for m := range s.Mortal.Values() {
		m.Lifetime.Remaining -= frame.DeltaTime
		if m.Lifetime.Remaining <= 0 {
			frame.Commands.Delete(m.EntityId)
		}
	}
}

// ParticleRenderSystem draws particles faded by their remaining lifetime.
type ParticleRenderSystem struct {
	Particles ecs.Query[struct {
		*Position
		*Particle
		Lifetime *Lifetime `ecs:"optional"`
	}]
	Canvas ecs.Singleton[Canvas]
}

func (s *ParticleRenderSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	if canvas == nil || canvas.Surface == nil {
		return
	}

	for p := range s.Particles.Values() {
		c := p.Particle.Color
		if p.Lifetime != nil {
			c = draw.Fade(c, p.Lifetime.Alpha())
		}
		half := p.Particle.Size / 2
		canvas.Surface.FillRect(p.Position.X-half, p.Position.Y-half, p.Particle.Size, p.Particle.Size, c)
	}
}

// Register adds the movement pipeline to scheduler. Position integrates
// before velocity, then lifetimes count down.
func Register(scheduler *ecs.Scheduler) {
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&AccelerationSystem{})
	scheduler.Register(&LifetimeSystem{})
}
