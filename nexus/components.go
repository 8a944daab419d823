package nexus

import (
	"image/color"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/sim"
	"github.com/plus3/arcade/stats"
)

const (
	playerSize   = 32
	playerRadius = playerSize / 2

	energyRegen    = 20
	shotCooldown   = 0.2
	shotSpeed      = 400
	shotRadius     = 4
	shotDamage     = 25
	shotLife       = 3
	hurtGrace      = 1.0
	cameraFollow   = 5

	itemRadius    = 8
	itemDropRate  = 0.3
	waveStagger   = 0.5
	firstInterval = 2

	survivorSeconds = 300
)

// Class is a playable character class.
type Class string

const (
	Hacker   Class = "hacker"
	Guardian Class = "guardian"
	Explorer Class = "explorer"
)

// Classes lists the playable classes in menu order.
var Classes = []Class{Hacker, Guardian, Explorer}

type classStats struct {
	health, energy, speed float64
	color                 color.RGBA
}

var classTable = map[Class]classStats{
	Hacker:   {health: 80, energy: 70, speed: 220, color: draw.Hex("#00d4aa")},
	Guardian: {health: 150, energy: 40, speed: 180, color: draw.Hex("#2196f3")},
	Explorer: {health: 100, energy: 60, speed: 250, color: draw.Hex("#ff6b35")},
}

func (c Class) stats() classStats {
	if s, ok := classTable[c]; ok {
		return s
	}
	return classTable[Hacker]
}

// Player is centred on its Position.
type Player struct {
	Class     Class
	Health    float64
	MaxHealth float64
	Energy    float64
	MaxEnergy float64
	Speed     float64
	Radius    float64

	// Invulnerable and Cooldown count down in seconds.
	Invulnerable float64
	Cooldown     float64
}

func newPlayer(c Class) Player {
	s := c.stats()
	return Player{
		Class:     c,
		Health:    s.health,
		MaxHealth: s.health,
		Energy:    s.energy,
		MaxEnergy: s.energy,
		Speed:     s.speed,
		Radius:    playerRadius,
	}
}

// EnemyKind names an enemy archetype.
type EnemyKind string

const (
	Basic EnemyKind = "basic"
	Fast  EnemyKind = "fast"
	Tank  EnemyKind = "tank"
)

var enemyKinds = []EnemyKind{Basic, Fast, Tank}

// Enemy seeks the player. It is centred on its Position.
type Enemy struct {
	Kind       EnemyKind
	Health     float64
	MaxHealth  float64
	Speed      float64
	Radius     float64
	Damage     float64
	ScoreValue int
	ExpValue   int
	Color      color.RGBA
}

var enemyTable = map[EnemyKind]Enemy{
	Basic: {Health: 50, Speed: 80, Radius: 12, Damage: 10, ScoreValue: 100, ExpValue: 10, Color: draw.Hex("#ff4757")},
	Fast:  {Health: 30, Speed: 150, Radius: 8, Damage: 5, ScoreValue: 150, ExpValue: 15, Color: draw.Hex("#ffa502")},
	Tank:  {Health: 100, Speed: 50, Radius: 20, Damage: 20, ScoreValue: 200, ExpValue: 25, Color: draw.Hex("#ff3838")},
}

// NewEnemy returns kind scaled to wave.
func NewEnemy(kind EnemyKind, wave int) Enemy {
	e, ok := enemyTable[kind]
	if !ok {
		e = enemyTable[Basic]
		kind = Basic
	}
	w := float64(wave)
	e.Kind = kind
	e.Health += 10 * w
	e.MaxHealth = e.Health
	e.Speed += 2 * w
	e.Damage += float64(wave / 2)
	e.ScoreValue += 50 * wave
	e.ExpValue += 5 * wave
	return e
}

// Projectile damages the first enemy it touches.
type Projectile struct {
	Radius   float64
	Damage   float64
	Friendly bool
}

// ItemKind names a pickup.
type ItemKind string

const (
	HealthItem  ItemKind = "health"
	EnergyItem  ItemKind = "energy"
	DataItem    ItemKind = "data"
	UpgradeItem ItemKind = "upgrade"
)

var itemKinds = []ItemKind{HealthItem, EnergyItem, DataItem, UpgradeItem}

func (k ItemKind) color() color.RGBA {
	switch k {
	case HealthItem:
		return draw.Hex("#ff4757")
	case EnergyItem:
		return draw.Hex("#2196f3")
	case UpgradeItem:
		return draw.Hex("#a29bfe")
	}
	return draw.Hex("#ffeb3b")
}

// Item is dropped by enemies and collected on contact.
type Item struct {
	Kind   ItemKind
	Value  float64
	Radius float64
	Pulse  float64
}

type SceneryKind int

const (
	Wall SceneryKind = iota
	Barrier
)

// Scenery is decorative level geometry. Its Position is the top-left corner.
type Scenery struct {
	Kind SceneryKind
	W, H float64
}

// Phase is the lifecycle state of the game.
type Phase int

const (
	Menu Phase = iota
	Playing
	Paused
	LevelUp
	Over
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case LevelUp:
		return "level-up"
	case Over:
		return "over"
	}
	return "menu"
}

// State is the per-run singleton.
type State struct {
	Phase Phase
	Class Class

	Score            int
	Level            int
	Wave             int
	DataCollected    float64
	EnemiesKilled    int
	SessionTime      float64
	Experience       int
	ExperienceToNext int

	// DamageMultiplier scales projectile damage.
	DamageMultiplier float64
	Upgrades         []string
	Offers           []Upgrade

	WorldW, WorldH float64
	ViewW, ViewH   float64

	Achievements stats.Achievements
	Unlocked     []string
}

func (s *State) unlock(id string) {
	if s.Achievements.Unlock(id) {
		s.Unlocked = append(s.Unlocked, id)
	}
}

// Controls carries held input into the update systems. AimX and AimY are
// screen coordinates.
type Controls struct {
	Up, Down, Left, Right bool
	Shoot                 bool
	AimX, AimY            float64
}

// Camera is the top-left of the viewport in world coordinates. Shake offsets
// the rendered view without moving the camera itself.
type Camera struct {
	X, Y           float64
	Shake          float64
	ShakeIntensity float64
	OffsetX        float64
	OffsetY        float64
}

// AddShake extends the shake to at least duration seconds at intensity pixels.
func (c *Camera) AddShake(duration, intensity float64) {
	c.Shake = max(c.Shake, duration)
	c.ShakeIntensity = max(c.ShakeIntensity, intensity)
}

// Spawner drives enemy arrivals. Pending holds the delays of wave spawns that
// have not happened yet.
type Spawner struct {
	Timer    float64
	Interval float64
	Pending  []float64
}

// queueWave schedules count spawns staggered by waveStagger seconds.
func (s *Spawner) queueWave(count int) {
	for i := range count {
		s.Pending = append(s.Pending, float64(i)*waveStagger)
	}
}

// Screen is the singleton HUD systems draw to, in screen coordinates. The
// sim.Canvas surface is offset by the camera.
type Screen struct {
	Surface draw.Surface
}

func registerComponents(registry *ecs.ComponentRegistry) {
	sim.RegisterComponents(registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Enemy](registry)
	ecs.RegisterComponent[Projectile](registry)
	ecs.RegisterComponent[Item](registry)
	ecs.RegisterComponent[Scenery](registry)
}
