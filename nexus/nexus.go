// Package nexus is a top-down arena game: pick a class, move and shoot
// through endless enemy waves, collect drops and choose upgrades on level-up.
//
// The game is delta-time driven. Distances are world pixels, speeds are
// pixels per second and timers count seconds.
package nexus

import (
	"context"
	"errors"
	"log"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/sim"
	"github.com/plus3/arcade/stats"
)

var (
	// ErrNoLevelUp is returned by ChooseUpgrade outside the level-up phase.
	ErrNoLevelUp = errors.New("nexus: no level-up pending")
	// ErrInvalidChoice is returned by ChooseUpgrade for an index with no offer.
	ErrInvalidChoice = errors.New("nexus: invalid upgrade choice")
)

// Config carries a Game's collaborators. Zero fields get defaults: an 800x600
// viewport, an in-memory store, a time-seeded generator and log.Default().
type Config struct {
	Width, Height float64
	Store         stats.Store
	Rand          *rand.Rand
	Logger        *log.Logger
}

// Game owns the nexus storage and its update and render schedulers.
type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	render  *ecs.Scheduler

	state    *ecs.Singleton[State]
	controls *ecs.Singleton[Controls]
	camera   *ecs.Singleton[Camera]
	spawner  *ecs.Singleton[Spawner]
	canvas   *ecs.Singleton[sim.Canvas]
	screen   *ecs.Singleton[Screen]
	players  *ecs.View[playerView]

	rng    *rand.Rand
	store  stats.Store
	logger *log.Logger
	record stats.NexusRecord
	saved  int
}

// New creates a game on the class-selection menu with the persisted record
// loaded.
func New(cfg Config) *Game {
	if cfg.Width == 0 || cfg.Height == 0 {
		cfg.Width, cfg.Height = 800, 600
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
		rng:     cfg.Rand,
		store:   cfg.Store,
		logger:  cfg.Logger,
	}
	g.state = ecs.NewSingleton(storage, State{
		Class:  Hacker,
		WorldW: max(1200, cfg.Width*1.5),
		WorldH: max(800, cfg.Height*1.5),
		ViewW:  cfg.Width,
		ViewH:  cfg.Height,
	})
	g.controls = ecs.NewSingleton[Controls](storage)
	g.camera = ecs.NewSingleton[Camera](storage)
	g.spawner = ecs.NewSingleton[Spawner](storage)
	g.canvas = ecs.NewSingleton[sim.Canvas](storage)
	g.screen = ecs.NewSingleton[Screen](storage)
	g.players = ecs.NewView[playerView](storage)

	g.update.Register(&PlayerSystem{})
	g.update.Register(&SeekSystem{})
	sim.Register(g.update)
	g.update.Register(&ItemSystem{})
	g.update.Register(&CameraSystem{Rand: cfg.Rand})
	g.update.Register(&CollisionSystem{Rand: cfg.Rand, OnDeath: g.gameOver})
	g.update.Register(&ProgressSystem{Rand: cfg.Rand})
	g.update.Register(&WaveSystem{Rand: cfg.Rand})

	g.render.Register(&WorldRenderSystem{})
	g.render.Register(&sim.ParticleRenderSystem{})
	g.render.Register(&PlayerRenderSystem{})
	g.render.Register(&HUDRenderSystem{})

	g.load()
	return g
}

func (g *Game) load() {
	ctx := context.Background()
	state := g.state.Get()

	record, err := stats.Load(ctx, g.store, stats.KeyNexusPersistent, stats.NexusRecord{})
	if err != nil {
		g.logger.Printf("nexus: load record: %v", err)
	}
	g.record = record

	achievements, err := stats.Load(ctx, g.store, stats.KeyNexusAchievements, stats.Achievements{})
	if err != nil {
		g.logger.Printf("nexus: load achievements: %v", err)
	}
	if achievements == nil {
		achievements = stats.Achievements{}
	}
	state.Achievements = achievements
}

// SelectClass picks the class for the next run. It only works on the menu.
func (g *Game) SelectClass(c Class) {
	state := g.state.Get()
	if state.Phase != Menu {
		return
	}
	if _, ok := classTable[c]; ok {
		state.Class = c
	}
}

// Start begins a run with the selected class: the player in the middle of
// the world, fresh scenery and the first wave queued.
func (g *Game) Start() {
	g.storage.Clear()
	state := g.state.Get()

	state.Phase = Playing
	state.Score = 0
	state.Level = 1
	state.Wave = 1
	state.DataCollected = 0
	state.EnemiesKilled = 0
	state.SessionTime = 0
	state.Experience = 0
	state.ExperienceToNext = 100
	state.DamageMultiplier = 1
	state.Upgrades = nil
	state.Offers = nil
	state.Unlocked = nil
	g.saved = 0

	px, py := state.WorldW/2, state.WorldH/2
	g.storage.Spawn(sim.Position{X: px, Y: py}, newPlayer(state.Class))

	*g.controls.Get() = Controls{}
	*g.camera.Get() = Camera{X: px - state.ViewW/2, Y: py - state.ViewH/2}
	spawner := g.spawner.Get()
	*spawner = Spawner{Interval: firstInterval}
	spawner.queueWave(3 + 2*state.Wave)

	g.generateScenery(20 + 5*state.Level)
	g.update.Resume()
}

func (g *Game) generateScenery(n int) {
	state := g.state.Get()
	for range n {
		kind := Barrier
		if sim.Chance(g.rng, 0.7) {
			kind = Wall
		}
		g.storage.Spawn(
			sim.Position{X: g.rng.Float64()*(state.WorldW-100) + 50, Y: g.rng.Float64()*(state.WorldH-100) + 50},
			Scenery{Kind: kind, W: 30 + g.rng.Float64()*40, H: 30 + g.rng.Float64()*40},
		)
	}
}

// Update advances the game by dt seconds. It does nothing unless playing.
func (g *Game) Update(dt float64) {
	if g.Phase() != Playing {
		return
	}
	g.update.Once(dt)

	state := g.state.Get()
	if len(state.Unlocked) > g.saved {
		g.saved = len(state.Unlocked)
		g.save(stats.KeyNexusAchievements, state.Achievements)
	}
}

// Draw renders the current frame onto surface.
func (g *Game) Draw(surface draw.Surface) {
	camera := g.camera.Get()
	g.screen.Get().Surface = surface
	g.canvas.Get().Surface = draw.Offset(surface, -camera.X-camera.OffsetX, -camera.Y-camera.OffsetY)
	g.render.Once(0)
	g.screen.Get().Surface = nil
	g.canvas.Get().Surface = nil
}

// Aim sets the pointer position in screen coordinates.
func (g *Game) Aim(x, y float64) {
	c := g.controls.Get()
	c.AimX, c.AimY = x, y
}

// Handle applies a command.
func (g *Game) Handle(ev input.Event) {
	state := g.state.Get()
	c := g.controls.Get()

	switch ev.Command {
	case input.MoveUp:
		c.Up = ev.Pressed
	case input.MoveDown:
		c.Down = ev.Pressed
	case input.MoveLeft:
		c.Left = ev.Pressed
	case input.MoveRight:
		c.Right = ev.Pressed
	case input.Shoot:
		c.Shoot = ev.Pressed
	}
	if !ev.Pressed {
		return
	}

	switch ev.Command {
	case input.Choose1, input.Choose2, input.Choose3:
		switch state.Phase {
		case Menu:
			g.SelectClass(Classes[ev.Command.Choice()])
		case LevelUp:
			if err := g.ChooseUpgrade(ev.Command.Choice()); err != nil {
				g.logger.Printf("nexus: %v", err)
			}
		}
	case input.Start:
		if state.Phase == Menu {
			g.Start()
		}
	case input.Pause:
		g.TogglePause()
	case input.Restart:
		if state.Phase == Over {
			g.Start()
		}
	case input.Quit:
		if state.Phase == Paused || state.Phase == Over {
			g.BackToMenu()
		}
	}
}

// ChooseUpgrade applies offer i and resumes play.
func (g *Game) ChooseUpgrade(i int) error {
	state := g.state.Get()
	if state.Phase != LevelUp {
		return ErrNoLevelUp
	}
	if i < 0 || i >= len(state.Offers) {
		return ErrInvalidChoice
	}

	u := state.Offers[i]
	for p := range g.players.Values() {
		u.apply(p.Player, state)
	}
	if !slices.Contains(state.Upgrades, u.ID) {
		state.Upgrades = append(state.Upgrades, u.ID)
	}
	state.Offers = nil
	state.Phase = Playing
	return nil
}

// TogglePause pauses a running game or resumes a paused one.
func (g *Game) TogglePause() {
	state := g.state.Get()
	switch state.Phase {
	case Playing:
		state.Phase = Paused
		g.update.Pause()
	case Paused:
		state.Phase = Playing
		g.update.Resume()
	}
}

// BackToMenu abandons the current run.
func (g *Game) BackToMenu() {
	g.storage.Clear()
	g.state.Get().Phase = Menu
}

// gameOver folds the run into the persistent record.
func (g *Game) gameOver() {
	state := g.state.Get()
	r := &g.record
	r.HighScore = max(r.HighScore, state.Score)
	r.TotalPlayTime += state.SessionTime
	r.EnemiesKilled += state.EnemiesKilled
	r.AchievementsUnlocked = union(r.AchievementsUnlocked, state.Achievements.Unlocked())
	r.UpgradesUnlocked = union(r.UpgradesUnlocked, state.Upgrades)

	g.save(stats.KeyNexusPersistent, g.record)
	g.save(stats.KeyNexusAchievements, state.Achievements)
	g.logger.Printf("nexus: game over score=%d wave=%d level=%d", state.Score, state.Wave, state.Level)
}

func (g *Game) save(key string, v any) {
	if err := stats.Save(context.Background(), g.store, key, v); err != nil {
		g.logger.Printf("nexus: save %s: %v", key, err)
	}
}

func union(a, b []string) []string {
	out := slices.Clone(a)
	for _, s := range b {
		if !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	slices.Sort(out)
	return out
}

func (g *Game) Phase() Phase {
	return g.state.Get().Phase
}

func (g *Game) Class() Class {
	return g.state.Get().Class
}

func (g *Game) Score() int {
	return g.state.Get().Score
}

func (g *Game) Wave() int {
	return g.state.Get().Wave
}

func (g *Game) Level() int {
	return g.state.Get().Level
}

// Offers returns the upgrades on offer during a level-up.
func (g *Game) Offers() []Upgrade {
	return slices.Clone(g.state.Get().Offers)
}

// Player returns a copy of the player, or false before the first run.
func (g *Game) Player() (Player, sim.Position, bool) {
	for p := range g.players.Values() {
		return *p.Player, *p.Position, true
	}
	return Player{}, sim.Position{}, false
}

// Record returns the persistent record.
func (g *Game) Record() stats.NexusRecord {
	return g.record
}

// Achievements returns every unlocked achievement id, sorted.
func (g *Game) Achievements() []string {
	return g.state.Get().Achievements.Unlocked()
}

// Storage exposes the world for debugging tools.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

// Scheduler exposes the update scheduler for debugging tools.
func (g *Game) Scheduler() *ecs.Scheduler {
	return g.update
}
