package runner

import (
	"image/color"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/sim"
	"github.com/plus3/arcade/stats"
)

const (
	playerX      = 100
	playerWidth  = 30
	playerHeight = 40
	slideHeight  = 20

	gravity     = 0.6
	jumpImpulse = -12

	obstacleWidth  = 30
	obstacleHeight = 40
	coinBox        = 20
	powerUpBox     = 30

	magnetRadius = 100
	magnetForce  = 0.3

	baseSpeed  = 3
	levelScore = 500

	// tickMillis is how far timers advance per Update.
	tickMillis = 16

	speedDuration      = 3000
	shieldDuration     = 5000
	magnetDuration     = 4000
	obstacleChanceBase = 0.005
	obstacleChanceStep = 0.001
	coinChance         = 0.008
	powerUpChance      = 0.002
)

// Player is the runner's avatar. Its Position is the top-left corner.
type Player struct {
	Width, Height float64
	DY            float64
	Grounded      bool
	Sliding       bool
}

// Scrolling marks entities that move left at the game speed.
type Scrolling struct{}

type ObstacleKind int

const (
	Block ObstacleKind = iota
	Spike
)

// Obstacle ends the run on contact. Its Position is the top-left corner.
type Obstacle struct {
	Kind          ObstacleKind
	Width, Height float64
}

// Coin is centred on its Position.
type Coin struct {
	Rotation float64
}

// PowerUpKind names a timed power-up.
type PowerUpKind string

const (
	Speed  PowerUpKind = "speed"
	Shield PowerUpKind = "shield"
	Magnet PowerUpKind = "coinMagnet"
)

var powerUpKinds = []PowerUpKind{Speed, Shield, Magnet}

func (k PowerUpKind) duration() float64 {
	switch k {
	case Speed:
		return speedDuration
	case Shield:
		return shieldDuration
	case Magnet:
		return magnetDuration
	}
	return 0
}

func (k PowerUpKind) color() color.RGBA {
	switch k {
	case Speed:
		return draw.Hex("#ffeb3b")
	case Shield:
		return draw.Hex("#2196f3")
	}
	return draw.Hex("#ffc107")
}

func (k PowerUpKind) symbol() string {
	switch k {
	case Speed:
		return "S"
	case Shield:
		return "D"
	}
	return "M"
}

// PowerUp is centred on its Position.
type PowerUp struct {
	Kind  PowerUpKind
	Pulse float64
}

// Phase is the lifecycle state of a run.
type Phase int

const (
	Ready Phase = iota
	Running
	Paused
	Over
)

func (p Phase) String() string {
	switch p {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Over:
		return "over"
	}
	return "ready"
}

// State is the per-run singleton.
type State struct {
	Phase     Phase
	Score     int
	Level     int
	Coins     int
	Speed     float64
	BaseSpeed float64
	HighScore int
	Ticks     uint64

	Width, Height float64
	GroundY       float64

	Achievements stats.Achievements
	// Unlocked lists achievements unlocked during this run, oldest first.
	Unlocked []string
}

func (s *State) unlock(id string) {
	if s.Achievements.Unlock(id) {
		s.Unlocked = append(s.Unlocked, id)
	}
}

// Powers holds the running power-ups, timed in milliseconds.
type Powers struct {
	sim.Effects[PowerUpKind]
}

// Controls carries input into the update systems.
type Controls struct {
	Jump  bool
	Slide bool
}

func registerComponents(registry *ecs.ComponentRegistry) {
	sim.RegisterComponents(registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Scrolling](registry)
	ecs.RegisterComponent[Obstacle](registry)
	ecs.RegisterComponent[Coin](registry)
	ecs.RegisterComponent[PowerUp](registry)
}
