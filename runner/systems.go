package runner

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/sim"
)

var sparks = sim.BurstConfig{
	Spread:     8,
	Gravity:    0.2,
	MinLife:    30,
	LifeJitter: 20,
	MaxLife:    50,
	Size:       2,
}

var (
	jumpColor = draw.Hex("#00d4aa")
	coinColor = draw.Hex("#ffeb3b")
)

// PlayerSystem applies controls and gravity and awards distance score.
type PlayerSystem struct {
	Players ecs.Query[struct {
		*sim.Position
		*Player
	}]
	State    ecs.Singleton[State]
	Controls ecs.Singleton[Controls]
	Rand     *rand.Rand
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	state, controls := s.State.Get(), s.Controls.Get()
	if state == nil || controls == nil {
		return
	}
	state.Ticks++

	for p := range s.Players.Values() {
		if controls.Jump && p.Grounded && !p.Sliding {
			p.DY = jumpImpulse
			p.Grounded = false
			state.unlock("firstJump")
			sim.Burst(frame.Commands, s.Rand, sparks, p.Position.X, p.Position.Y+p.Height, 5, jumpColor)
		}

		switch {
		case controls.Slide && p.Grounded && !p.Sliding:
			p.Sliding = true
			p.Height = slideHeight
			p.Position.Y = state.GroundY - p.Height
		case !controls.Slide && p.Sliding:
			p.Sliding = false
			p.Height = playerHeight
			p.Position.Y = state.GroundY - p.Height
		}

		if !p.Grounded {
			p.DY += gravity * frame.DeltaTime
			p.Position.Y += p.DY * frame.DeltaTime
		}
		if p.Position.Y >= state.GroundY-p.Height {
			p.Position.Y = state.GroundY - p.Height
			p.Grounded = true
			p.DY = 0
		}
	}
	controls.Jump = false

	state.Score += int(math.Floor(state.Speed / 3))
}

// ScrollSystem sets the velocity of scrolling entities to the game speed.
type ScrollSystem struct {
	Scrolling ecs.Query[struct {
		*Scrolling
		*sim.Velocity
	}]
	State ecs.Singleton[State]
}

func (s *ScrollSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}
	for e := range s.Scrolling.Values() {
		e.Velocity.X = -state.Speed
	}
}

// CoinSystem spins coins and pulls them towards the player while the magnet
// is running. PowerUps pulse.
type CoinSystem struct {
	Coins ecs.Query[struct {
		*sim.Position
		*Coin
	}]
	PowerUps ecs.Query[struct {
		*PowerUp
	}]
	Players ecs.Query[struct {
		*sim.Position
		*Player
	}]
	Powers ecs.Singleton[Powers]
}

func (s *CoinSystem) Execute(frame *ecs.UpdateFrame) {
	for p := range s.PowerUps.Values() {
		p.Pulse += 0.1 * frame.DeltaTime
	}

	powers := s.Powers.Get()
	magnet := powers != nil && powers.Active(Magnet)

	var cx, cy float64
	for p := range s.Players.Values() {
		cx, cy = p.Position.X+p.Width/2, p.Position.Y+p.Height/2
	}

	for c := range s.Coins.Values() {
		c.Rotation += 0.1 * frame.DeltaTime
		if !magnet {
			continue
		}
		if geom.Distance(c.Position.X, c.Position.Y, cx, cy) < magnetRadius {
			c.Position.X += (cx - c.Position.X) * magnetForce
			c.Position.Y += (cy - c.Position.Y) * magnetForce
		}
	}
}

// PowerSystem counts power-ups down. An expired speed boost restores the base
// speed; an expired shield simply stops protecting.
type PowerSystem struct {
	State  ecs.Singleton[State]
	Powers ecs.Singleton[Powers]
}

func (s *PowerSystem) Execute(frame *ecs.UpdateFrame) {
	state, powers := s.State.Get(), s.Powers.Get()
	if state == nil || powers == nil {
		return
	}
	for _, kind := range powers.Advance(tickMillis * frame.DeltaTime) {
		if kind == Speed {
			// BaseSpeed already carries the level ramp.
			state.Speed = state.BaseSpeed
		}
	}
}

// CullSystem deletes entities that scrolled off the left edge.
type CullSystem struct {
	Obstacles ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Obstacle
	}]
	Coins ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Coin
	}]
	PowerUps ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*PowerUp
	}]
}

func (s *CullSystem) Execute(frame *ecs.UpdateFrame) {
	for o := range s.Obstacles.Values() {
		if o.Position.X+o.Width < 0 {
			frame.Commands.Delete(o.EntityId)
		}
	}
	for c := range s.Coins.Values() {
		if c.Position.X <= -coinBox {
			frame.Commands.Delete(c.EntityId)
		}
	}
	for p := range s.PowerUps.Values() {
		if p.Position.X <= -powerUpBox {
			frame.Commands.Delete(p.EntityId)
		}
	}
}

// CollisionSystem resolves player contact with obstacles, coins and
// power-ups. Contact is a trigger: nothing is pushed apart.
type CollisionSystem struct {
	Players ecs.Query[struct {
		*sim.Position
		*Player
	}]
	Obstacles ecs.Query[struct {
		*sim.Position
		*Obstacle
	}]
	Coins ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Coin
	}]
	PowerUps ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*PowerUp
	}]
	State  ecs.Singleton[State]
	Powers ecs.Singleton[Powers]
	Rand   *rand.Rand

	// OnGameOver runs once when an obstacle ends the run.
	OnGameOver func()
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	state, powers := s.State.Get(), s.Powers.Get()
	if state == nil || powers == nil {
		return
	}

	for p := range s.Players.Values() {
		body := geom.Rect{X: p.Position.X, Y: p.Position.Y, W: p.Width, H: p.Height}

		protected := powers.Active(Shield)
		for o := range s.Obstacles.Values() {
			if protected || state.Phase == Over {
				break
			}
			if body.Overlaps(geom.Rect{X: o.Position.X, Y: o.Position.Y, W: o.Width, H: o.Height}) {
				state.Phase = Over
				if s.OnGameOver != nil {
					s.OnGameOver()
				}
			}
		}

		for c := range s.Coins.Values() {
			box := geom.Rect{X: c.Position.X - coinBox/2, Y: c.Position.Y - coinBox/2, W: coinBox, H: coinBox}
			if !body.Overlaps(box) {
				continue
			}
			frame.Commands.Delete(c.EntityId)
			state.Coins++
			state.Score += 50
			if state.Coins >= 50 {
				state.unlock("coins50")
			}
			if state.Coins >= 100 {
				state.unlock("coins100")
			}
			sim.Burst(frame.Commands, s.Rand, sparks, c.Position.X, c.Position.Y, 8, coinColor)
		}

		for u := range s.PowerUps.Values() {
			box := geom.Rect{X: u.Position.X - powerUpBox/2, Y: u.Position.Y - powerUpBox/2, W: powerUpBox, H: powerUpBox}
			if !body.Overlaps(box) {
				continue
			}
			frame.Commands.Delete(u.EntityId)
			powers.Activate(u.Kind, u.Kind.duration())
			if u.Kind == Speed {
				state.Speed = state.BaseSpeed * 1.5
			}
			state.Score += 25
			sim.Burst(frame.Commands, s.Rand, sparks, u.Position.X, u.Position.Y, 10, u.Kind.color())
		}
	}
}

// SpawnSystem rolls for new obstacles, coins and power-ups at the right edge.
type SpawnSystem struct {
	State ecs.Singleton[State]
	Rand  *rand.Rand
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}
	x := state.Width

	if sim.Chance(s.Rand, obstacleChanceBase+obstacleChanceStep*float64(state.Level)) {
		kind := Spike
		if sim.Chance(s.Rand, 0.7) {
			kind = Block
		}
		frame.Commands.Spawn(
			sim.Position{X: x, Y: state.GroundY - obstacleHeight},
			sim.Velocity{X: -state.Speed},
			Scrolling{},
			Obstacle{Kind: kind, Width: obstacleWidth, Height: obstacleHeight},
		)
	}

	if sim.Chance(s.Rand, coinChance) {
		frame.Commands.Spawn(
			sim.Position{X: x, Y: state.GroundY - 60 - s.Rand.Float64()*100},
			sim.Velocity{X: -state.Speed},
			Scrolling{},
			Coin{},
		)
	}

	if sim.Chance(s.Rand, powerUpChance) {
		frame.Commands.Spawn(
			sim.Position{X: x, Y: state.GroundY - 80 - s.Rand.Float64()*80},
			sim.Velocity{X: -state.Speed},
			Scrolling{},
			PowerUp{Kind: powerUpKinds[s.Rand.IntN(len(powerUpKinds))]},
		)
	}
}

// LevelSystem derives the level from the score. Each new level raises the
// base speed.
type LevelSystem struct {
	State  ecs.Singleton[State]
	Powers ecs.Singleton[Powers]
}

func (s *LevelSystem) Execute(frame *ecs.UpdateFrame) {
	state, powers := s.State.Get(), s.Powers.Get()
	if state == nil || powers == nil {
		return
	}

	level := state.Score/levelScore + 1
	if level <= state.Level {
		return
	}
	state.BaseSpeed += 0.5 * float64(level-state.Level)
	state.Level = level
	state.Speed = state.BaseSpeed
	if powers.Active(Speed) {
		state.Speed += state.BaseSpeed * 0.5
	}

	if state.Level >= 5 {
		state.unlock("level5")
	}
	if state.Level >= 10 {
		state.unlock("level10")
	}
}
