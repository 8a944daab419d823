package nexus

import (
	"math"
	"math/rand/v2"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/geom"
	"github.com/plus3/arcade/sim"
)

var sparks = sim.BurstConfig{
	Spread:     200,
	MinLife:    0.5,
	LifeJitter: 0.5,
	MaxLife:    1,
	Size:       2,
	SizeJitter: 4,
}

var (
	hurtColor   = draw.Hex("#ff4757")
	impactColor = draw.Hex("#ffeb3b")
	shotColor   = draw.Hex("#00d4aa")
)

type playerView struct {
	*sim.Position
	*Player
}

// PlayerSystem moves the player, regenerates energy, counts timers down and
// fires towards the aim point.
type PlayerSystem struct {
	Players  ecs.Query[playerView]
	State    ecs.Singleton[State]
	Controls ecs.Singleton[Controls]
	Camera   ecs.Singleton[Camera]
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	state, controls, camera := s.State.Get(), s.Controls.Get(), s.Camera.Get()
	if state == nil || controls == nil || camera == nil {
		return
	}
	dt := frame.DeltaTime
	state.SessionTime += dt

	var mx, my float64
	if controls.Up {
		my--
	}
	if controls.Down {
		my++
	}
	if controls.Left {
		mx--
	}
	if controls.Right {
		mx++
	}
	mx, my = geom.Normalize(mx, my)

	for p := range s.Players.Values() {
		p.Position.X = geom.Clamp(p.Position.X+mx*p.Speed*dt, p.Radius, state.WorldW-p.Radius)
		p.Position.Y = geom.Clamp(p.Position.Y+my*p.Speed*dt, p.Radius, state.WorldH-p.Radius)

		p.Invulnerable = max(0, p.Invulnerable-dt)
		p.Cooldown = max(0, p.Cooldown-dt)
		p.Energy = min(p.MaxEnergy, p.Energy+energyRegen*dt)

		if !controls.Shoot || p.Cooldown > 0 {
			continue
		}
		dx := controls.AimX + camera.X - p.Position.X
		dy := controls.AimY + camera.Y - p.Position.Y
		if dx == 0 && dy == 0 {
			continue
		}
		p.Cooldown = shotCooldown
		vx, vy := geom.Normalize(dx, dy)
		frame.Commands.Spawn(
			sim.Position{X: p.Position.X, Y: p.Position.Y},
			sim.Velocity{X: vx * shotSpeed, Y: vy * shotSpeed},
			sim.Lifetime{Remaining: shotLife, Total: shotLife},
			Projectile{Radius: shotRadius, Damage: shotDamage * state.DamageMultiplier, Friendly: true},
		)
	}
}

// SeekSystem points every enemy at the player.
type SeekSystem struct {
	Players ecs.Query[playerView]
	Enemies ecs.Query[struct {
		*sim.Position
		*sim.Velocity
		*Enemy
	}]
}

func (s *SeekSystem) Execute(frame *ecs.UpdateFrame) {
	var px, py float64
	found := false
	for p := range s.Players.Values() {
		px, py, found = p.Position.X, p.Position.Y, true
	}
	if !found {
		return
	}

	for e := range s.Enemies.Values() {
		dx, dy := geom.Normalize(px-e.Position.X, py-e.Position.Y)
		e.Velocity.X = dx * e.Speed
		e.Velocity.Y = dy * e.Speed
	}
}

// ItemSystem advances item pulses.
type ItemSystem struct {
	Items ecs.Query[struct {
		*Item
	}]
}

func (s *ItemSystem) Execute(frame *ecs.UpdateFrame) {
	for i := range s.Items.Values() {
		i.Pulse += frame.DeltaTime
	}
}

// CameraSystem eases the camera towards the player and decays the shake.
type CameraSystem struct {
	Players ecs.Query[playerView]
	State   ecs.Singleton[State]
	Camera  ecs.Singleton[Camera]
	Rand    *rand.Rand
}

func (s *CameraSystem) Execute(frame *ecs.UpdateFrame) {
	state, camera := s.State.Get(), s.Camera.Get()
	if state == nil || camera == nil {
		return
	}
	dt := frame.DeltaTime

	for p := range s.Players.Values() {
		tx, ty := p.Position.X-state.ViewW/2, p.Position.Y-state.ViewH/2
		k := min(1, cameraFollow*dt)
		camera.X += (tx - camera.X) * k
		camera.Y += (ty - camera.Y) * k
	}

	camera.OffsetX, camera.OffsetY = 0, 0
	if camera.Shake <= 0 {
		return
	}
	camera.Shake -= 2 * dt
	if camera.Shake <= 0 {
		camera.Shake, camera.ShakeIntensity = 0, 0
		return
	}
	camera.OffsetX = (s.Rand.Float64() - 0.5) * camera.ShakeIntensity
	camera.OffsetY = (s.Rand.Float64() - 0.5) * camera.ShakeIntensity
}

// CollisionSystem resolves enemy contact, projectile hits and pickups. All
// tests are circle overlaps and trigger effects without pushing bodies apart.
type CollisionSystem struct {
	Players ecs.Query[playerView]
	Enemies ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Enemy
	}]
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Projectile
	}]
	Items ecs.Query[struct {
		ecs.EntityId
		*sim.Position
		*Item
	}]
	State  ecs.Singleton[State]
	Camera ecs.Singleton[Camera]
	Rand   *rand.Rand

	// OnDeath runs once when the player's health runs out.
	OnDeath func()
}

func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	state, camera := s.State.Get(), s.Camera.Get()
	if state == nil || camera == nil {
		return
	}

	for p := range s.Players.Values() {
		s.enemyContact(frame, state, camera, p)
		s.pickups(frame, state, p)
	}
	s.projectileHits(frame, state, camera)
}

func (s *CollisionSystem) enemyContact(frame *ecs.UpdateFrame, state *State, camera *Camera, p playerView) {
	if state.Phase == Over {
		return
	}
	for e := range s.Enemies.Values() {
		if p.Invulnerable > 0 {
			return
		}
		if e.Health <= 0 || !geom.CirclesOverlap(p.Position.X, p.Position.Y, p.Radius, e.Position.X, e.Position.Y, e.Radius) {
			continue
		}

		p.Health -= e.Damage
		p.Invulnerable = hurtGrace
		camera.AddShake(0.5, 10)
		sim.Burst(frame.Commands, s.Rand, sparks, p.Position.X, p.Position.Y, 8, hurtColor)

		if p.Health <= 0 {
			p.Health = 0
			state.Phase = Over
			if s.OnDeath != nil {
				s.OnDeath()
			}
			return
		}
	}
}

func (s *CollisionSystem) pickups(frame *ecs.UpdateFrame, state *State, p playerView) {
	for it := range s.Items.Values() {
		if !geom.CirclesOverlap(p.Position.X, p.Position.Y, p.Radius, it.Position.X, it.Position.Y, it.Radius) {
			continue
		}
		frame.Commands.Delete(it.EntityId)

		switch it.Kind {
		case HealthItem:
			p.Health = min(p.MaxHealth, p.Health+it.Value)
		case EnergyItem:
			p.Energy = min(p.MaxEnergy, p.Energy+it.Value)
		case DataItem:
			state.DataCollected += it.Value
			state.Score += int(it.Value * 10)
		case UpgradeItem:
			state.Experience += int(it.Value)
		}
		sim.Burst(frame.Commands, s.Rand, sparks, it.Position.X, it.Position.Y, 10, it.Kind.color())
	}
}

func (s *CollisionSystem) projectileHits(frame *ecs.UpdateFrame, state *State, camera *Camera) {
	for shot := range s.Projectiles.Values() {
		if !shot.Friendly {
			continue
		}
		for e := range s.Enemies.Values() {
			if e.Health <= 0 || !geom.CirclesOverlap(shot.Position.X, shot.Position.Y, shot.Radius, e.Position.X, e.Position.Y, e.Radius) {
				continue
			}

			frame.Commands.Delete(shot.EntityId)
			sim.Burst(frame.Commands, s.Rand, sparks, shot.Position.X, shot.Position.Y, 6, impactColor)
			camera.AddShake(0.1, 3)

			e.Health -= shot.Damage
			if e.Health <= 0 {
				s.kill(frame, state, e.EntityId, e.Position, e.Enemy)
			}
			break
		}
	}
}

func (s *CollisionSystem) kill(frame *ecs.UpdateFrame, state *State, id ecs.EntityId, pos *sim.Position, e *Enemy) {
	frame.Commands.Delete(id)
	state.Score += e.ScoreValue
	state.Experience += e.ExpValue
	state.EnemiesKilled++

	if sim.Chance(s.Rand, itemDropRate) {
		frame.Commands.Spawn(
			sim.Position{X: pos.X + (s.Rand.Float64()-0.5)*50, Y: pos.Y + (s.Rand.Float64()-0.5)*50},
			Item{
				Kind:   itemKinds[s.Rand.IntN(len(itemKinds))],
				Value:  10 + s.Rand.Float64()*20,
				Radius: itemRadius,
			},
		)
	}
	sim.Burst(frame.Commands, s.Rand, sparks, pos.X, pos.Y, 12, e.Color)
}

// ProgressSystem levels the player up and unlocks achievements.
type ProgressSystem struct {
	State ecs.Singleton[State]
	Rand  *rand.Rand
}

func (s *ProgressSystem) Execute(frame *ecs.UpdateFrame) {
	state := s.State.Get()
	if state == nil {
		return
	}

	if state.Phase == Playing && state.Experience >= state.ExperienceToNext {
		state.Level++
		state.Experience -= state.ExperienceToNext
		state.ExperienceToNext = int(math.Floor(float64(state.ExperienceToNext) * 1.2))
		state.Offers = randomUpgrades(s.Rand, 3)
		state.Phase = LevelUp
	}

	if state.EnemiesKilled >= 1 {
		state.unlock("firstKill")
	}
	if state.SessionTime >= survivorSeconds {
		state.unlock("survivor")
	}
	if state.DataCollected >= 100 {
		state.unlock("collector")
	}
	if state.Level >= 10 {
		state.unlock("level10")
	}
	if state.Wave >= 10 {
		state.unlock("wave10")
	}
}

// WaveSystem releases staggered wave spawns, runs the continuous spawner and
// starts the next wave once the field is clear.
type WaveSystem struct {
	Enemies ecs.Query[struct {
		*Enemy
	}]
	State   ecs.Singleton[State]
	Spawner ecs.Singleton[Spawner]
	Rand    *rand.Rand
}

func (s *WaveSystem) Execute(frame *ecs.UpdateFrame) {
	state, spawner := s.State.Get(), s.Spawner.Get()
	if state == nil || spawner == nil || state.Phase == Over {
		return
	}
	dt := frame.DeltaTime
	spawned := false

	kept := spawner.Pending[:0]
	for _, delay := range spawner.Pending {
		delay -= dt
		if delay <= 0 {
			s.spawn(frame, state)
			spawned = true
			continue
		}
		kept = append(kept, delay)
	}
	spawner.Pending = kept

	spawner.Timer += dt
	if spawner.Timer >= spawner.Interval {
		s.spawn(frame, state)
		spawned = true
		spawner.Timer = 0
		spawner.Interval = max(0.5, 2-0.1*float64(state.Wave))
	}

	if spawned || len(spawner.Pending) > 0 {
		return
	}
	for e := range s.Enemies.Values() {
		if e.Health > 0 {
			return
		}
	}
	state.Wave++
	spawner.queueWave(3 + 2*state.Wave)
}

// spawn queues one enemy for the current wave at a random world edge.
func (s *WaveSystem) spawn(frame *ecs.UpdateFrame, state *State) {
	enemy := NewEnemy(enemyKinds[s.Rand.IntN(len(enemyKinds))], state.Wave)

	var x, y float64
	switch s.Rand.IntN(4) {
	case 0:
		x, y = s.Rand.Float64()*state.WorldW, 0
	case 1:
		x, y = state.WorldW, s.Rand.Float64()*state.WorldH
	case 2:
		x, y = s.Rand.Float64()*state.WorldW, state.WorldH
	default:
		x, y = 0, s.Rand.Float64()*state.WorldH
	}

	frame.Commands.Spawn(sim.Position{X: x, Y: y}, sim.Velocity{}, enemy)
}
