// Package runner is an endless side-scroller: jump and slide past obstacles,
// collect coins and pick up timed power-ups while the world speeds up.
//
// The game advances one fixed tick per Update. Positions are in canvas pixels
// and timers in milliseconds, 16 per tick.
package runner

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/sim"
	"github.com/plus3/arcade/stats"
)

// Config carries a Game's collaborators. Zero fields get defaults: an 800x400
// canvas, an in-memory store, a time-seeded generator and log.Default().
type Config struct {
	Width, Height float64
	Store         stats.Store
	Rand          *rand.Rand
	Logger        *log.Logger
}

// Game owns the runner's storage and its update and render schedulers.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	render  *ecs.Scheduler

	state    *ecs.Singleton[State]
	powers   *ecs.Singleton[Powers]
	controls *ecs.Singleton[Controls]
	canvas   *ecs.Singleton[sim.Canvas]

	store  stats.Store
	logger *log.Logger
}

// New creates a game in the Ready phase with the persisted high score and
// achievements loaded.
func New(cfg Config) *Game {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = 800, 400
	}
	if cfg.Store == nil {
		cfg.Store = stats.NewMemoryStore()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	g := &Game{
		storage: storage,
		update:  ecs.NewScheduler(storage),
		render:  ecs.NewScheduler(storage),
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
	g.state = ecs.NewSingleton(storage, State{
		Width:   cfg.Width,
		Height:  cfg.Height,
		GroundY: cfg.Height - 50,
	})
	g.powers = ecs.NewSingleton[Powers](storage)
	g.controls = ecs.NewSingleton[Controls](storage)
	g.canvas = ecs.NewSingleton[sim.Canvas](storage)

	g.update.Register(&PlayerSystem{Rand: cfg.Rand})
	g.update.Register(&ScrollSystem{})
	sim.Register(g.update)
	g.update.Register(&CoinSystem{})
	g.update.Register(&PowerSystem{})
	g.update.Register(&CullSystem{})
	g.update.Register(&CollisionSystem{Rand: cfg.Rand, OnGameOver: g.gameOver})
	g.update.Register(&SpawnSystem{Rand: cfg.Rand})
	g.update.Register(&LevelSystem{})

	g.render.Register(&BackgroundRenderSystem{})
	g.render.Register(&EntityRenderSystem{})
	g.render.Register(&sim.ParticleRenderSystem{})
	g.render.Register(&HUDRenderSystem{})

	g.load()
	g.reset()
	return g
}

func (g *Game) load() {
	ctx := context.Background()
	state := g.state.Get()

	high, err := stats.Load(ctx, g.store, stats.KeyRunnerHighScore, 0)
	if err != nil {
		g.logger.Printf("runner: load high score: %v", err)
	}
	state.HighScore = high

	achievements, err := stats.Load(ctx, g.store, stats.KeyRunnerAchievements, stats.Achievements{})
	if err != nil {
		g.logger.Printf("runner: load achievements: %v", err)
	}
	if achievements == nil {
		achievements = stats.Achievements{}
	}
	state.Achievements = achievements
}

// reset clears the world and puts a fresh player on the ground.
func (g *Game) reset() {
	g.storage.Clear()

	state := g.state.Get()
	state.Phase = Ready
	state.Score = 0
	state.Level = 1
	state.Coins = 0
	state.BaseSpeed = baseSpeed
	state.Speed = baseSpeed
	state.Ticks = 0
	state.Unlocked = nil

	g.powers.Get().Reset()
	*g.controls.Get() = Controls{}

	g.storage.Spawn(
		sim.Position{X: playerX, Y: state.GroundY - playerHeight},
		Player{Width: playerWidth, Height: playerHeight, Grounded: true},
	)
	g.update.Resume()
}

// Start begins a new run.
func (g *Game) Start() {
	g.reset()
	g.state.Get().Phase = Running
}

// Update advances one tick. It does nothing unless the game is running.
func (g *Game) Update() {
	if g.Phase() != Running {
		return
	}
	g.update.Once(1)
}

// Draw renders the current frame onto surface.
func (g *Game) Draw(surface draw.Surface) {
	g.canvas.Get().Surface = surface
	g.render.Once(0)
	g.canvas.Get().Surface = nil
}

// Handle applies a command. Jump also starts a run from the Ready phase.
func (g *Game) Handle(ev input.Event) {
	state := g.state.Get()
	controls := g.controls.Get()

	switch ev.Command {
	case input.Jump:
		if !ev.Pressed {
			return
		}
		if state.Phase == Ready {
			g.Start()
			return
		}
		controls.Jump = true
	case input.Slide:
		controls.Slide = ev.Pressed
	case input.Pause:
		if ev.Pressed {
			g.TogglePause()
		}
	case input.Start:
		if ev.Pressed && state.Phase == Ready {
			g.Start()
		}
	case input.Restart:
		if ev.Pressed && state.Phase == Over {
			g.Start()
		}
	}
}

// Touch handles a touch at canvas height y: the top half jumps, the bottom
// half slides until the touch ends.
func (g *Game) Touch(y float64, pressed bool) {
	if !pressed {
		g.Handle(input.Event{Command: input.Slide})
		return
	}
	g.Handle(input.Event{Command: input.RunnerTouch(y, g.state.Get().Height), Pressed: true})
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() {
	state := g.state.Get()
	switch state.Phase {
	case Running:
		state.Phase = Paused
		g.update.Pause()
	case Paused:
		state.Phase = Running
		g.update.Resume()
	}
}

// gameOver scores the run's achievements and persists the records.
func (g *Game) gameOver() {
	state := g.state.Get()
	if state.Score >= 100 {
		state.unlock("score100")
	}
	if state.Score >= 500 {
		state.unlock("score500")
	}
	if state.Score >= 1000 {
		state.unlock("score1000")
	}

	ctx := context.Background()
	if state.Score > state.HighScore {
		state.HighScore = state.Score
		if err := stats.Save(ctx, g.store, stats.KeyRunnerHighScore, state.HighScore); err != nil {
			g.logger.Printf("runner: save high score: %v", err)
		}
	}
	if err := stats.Save(ctx, g.store, stats.KeyRunnerAchievements, state.Achievements); err != nil {
		g.logger.Printf("runner: save achievements: %v", err)
	}
	g.logger.Printf("runner: game over score=%d level=%d coins=%d", state.Score, state.Level, state.Coins)
}

func (g *Game) Phase() Phase {
	return g.state.Get().Phase
}

func (g *Game) Score() int {
	return g.state.Get().Score
}

func (g *Game) Level() int {
	return g.state.Get().Level
}

func (g *Game) Coins() int {
	return g.state.Get().Coins
}

func (g *Game) HighScore() int {
	return g.state.Get().HighScore
}

// Speed returns the current scroll speed in pixels per tick.
func (g *Game) Speed() float64 {
	return g.state.Get().Speed
}

// Achievements returns every unlocked achievement id, sorted.
func (g *Game) Achievements() []string {
	return g.state.Get().Achievements.Unlocked()
}

// PowerActive reports whether kind is running.
func (g *Game) PowerActive(kind PowerUpKind) bool {
	return g.powers.Get().Active(kind)
}

// Storage exposes the world for debugging tools.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the update scheduler for debugging tools.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.update
}
