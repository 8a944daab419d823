package main

import (
	"context"
	"fmt"
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/arcade/chess"
	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/nexus"
	"github.com/plus3/arcade/runner"
	"github.com/plus3/arcade/stats"
)

type screen int

const (
	screenMenu screen = iota
	screenChess
	screenRunner
	screenNexus
)

var screenNames = map[string]screen{
	"menu":   screenMenu,
	"chess":  screenChess,
	"runner": screenRunner,
	"nexus":  screenNexus,
}

var (
	menuBackground = draw.Hex("#0a0a0a")
	menuTitle      = draw.Hex("#00ff41")
	menuText       = draw.Hex("#cccccc")
	menuDim        = draw.Hex("#666666")
)

type secret struct {
	seq    *input.Sequence
	target screen
}

// app routes input to the open game and draws it. It knows nothing about
// the window so it can be driven from tests.
type app struct {
	width, height float64
	chessMode     chess.Mode
	store         stats.Store
	rng           *rand.Rand
	logger        *log.Logger

	screen  screen
	chess   *chess.Session
	runner  *runner.Game
	nexus   *nexus.Game
	secrets []secret
	quit    bool

	menuLines []string
}

type appConfig struct {
	Width, Height float64
	Screen        string
	ChessMode     chess.Mode
	Store         stats.Store
	Rand          *rand.Rand
	Logger        *log.Logger
}

func newApp(cfg appConfig) *app {
	a := &app{
		width:     cfg.Width,
		height:    cfg.Height,
		chessMode: cfg.ChessMode,
		store:     cfg.Store,
		rng:       cfg.Rand,
		logger:    cfg.Logger,
		secrets: []secret{
			{input.SiderCode(), screenRunner},
			{input.KonamiCode(), screenRunner},
			{input.PlayCode(), screenNexus},
		},
	}
	a.open(screenNames[cfg.Screen])
	return a
}

// open switches screens. Games are rebuilt on every visit so they pick up
// records saved by earlier runs.
func (a *app) open(s screen) {
	a.screen = s
	a.chess, a.runner, a.nexus = nil, nil, nil

	switch s {
	case screenMenu:
		a.menuLines = a.records()
	case screenChess:
		a.chess = chess.NewSession(chess.SessionConfig{
			Mode: a.chessMode, Store: a.store, Rand: a.rng, Logger: a.logger,
		})
	case screenRunner:
		a.runner = runner.New(runner.Config{
			Width: a.width, Height: a.height, Store: a.store, Rand: a.rng, Logger: a.logger,
		})
	case screenNexus:
		a.nexus = nexus.New(nexus.Config{
			Width: a.width, Height: a.height, Store: a.store, Rand: a.rng, Logger: a.logger,
		})
	}
	a.logger.Printf("arcade: open %s", a.name())
}

func (a *app) name() string {
	for name, s := range screenNames {
		if s == a.screen {
			return name
		}
	}
	return "unknown"
}

func (a *app) records() []string {
	ctx := context.Background()
	high, err := stats.Load(ctx, a.store, stats.KeyRunnerHighScore, 0)
	if err != nil {
		a.logger.Printf("arcade: %v", err)
	}
	chessRec, err := stats.Load(ctx, a.store, stats.KeyChess, stats.ChessRecord{})
	if err != nil {
		a.logger.Printf("arcade: %v", err)
	}
	nexusRec, err := stats.Load(ctx, a.store, stats.KeyNexusPersistent, stats.NexusRecord{})
	if err != nil {
		a.logger.Printf("arcade: %v", err)
	}
	return []string{
		fmt.Sprintf("Chess  %d won, %d lost, %d drawn", chessRec.Wins, chessRec.Losses, chessRec.Draws),
		"Runner best " + draw.Number(high),
		"Nexus  best " + draw.Number(nexusRec.HighScore),
	}
}

// Done reports whether the player asked to leave the arcade.
func (a *app) Done() bool {
	return a.quit
}

// Scheduler is the update scheduler of the open ECS game, if any.
func (a *app) Scheduler() *ecs.Scheduler {
	switch {
	case a.runner != nil:
		return a.runner.Scheduler()
	case a.nexus != nil:
		return a.nexus.Scheduler()
	}
	return nil
}

// Update advances the open game by one host tick of dt seconds. The runner
// counts whole ticks.
func (a *app) Update(dt float64) {
	switch a.screen {
	case screenChess:
		a.chess.Update(dt)
	case screenRunner:
		a.runner.Update()
	case screenNexus:
		a.nexus.Update(dt)
	}
}

// Key handles a key edge at time now.
func (a *app) Key(k input.Key, pressed bool, now time.Time) {
	switch a.screen {
	case screenMenu:
		if pressed {
			a.menuKey(k, now)
		}
	case screenChess:
		ev, ok := input.ChessBindings().Translate(k, pressed)
		if !ok {
			return
		}
		if ev.Command == input.Quit && ev.Pressed {
			a.open(screenMenu)
			return
		}
		a.chess.Handle(ev)
	case screenRunner:
		ev, ok := input.RunnerBindings().Translate(k, pressed)
		if !ok {
			return
		}
		if ev.Command == input.Quit && ev.Pressed {
			if a.runner.Phase() != runner.Running {
				a.open(screenMenu)
			}
			return
		}
		a.runner.Handle(ev)
	case screenNexus:
		ev, ok := input.NexusBindings().Translate(k, pressed)
		if !ok {
			return
		}
		if ev.Command == input.Quit && ev.Pressed && a.nexus.Phase() == nexus.Menu {
			a.open(screenMenu)
			return
		}
		a.nexus.Handle(ev)
	}
}

func (a *app) menuKey(k input.Key, now time.Time) {
	if k == input.KeyEscape {
		a.quit = true
		return
	}
	for _, s := range a.secrets {
		if s.seq.Feed(k, now) {
			a.open(s.target)
			return
		}
	}
	switch k {
	case input.Digit1:
		a.open(screenChess)
	case input.Digit2:
		a.open(screenRunner)
	case input.Digit3:
		a.open(screenNexus)
	}
}

// PointerMove tracks the pointer for aiming.
func (a *app) PointerMove(x, y float64) {
	if a.screen == screenNexus {
		a.nexus.Aim(x, y)
	}
}

// PointerButton handles a primary button or touch edge at x, y.
func (a *app) PointerButton(x, y float64, pressed bool) {
	switch a.screen {
	case screenChess:
		if pressed {
			a.chess.ClickAt(x, y)
		}
	case screenRunner:
		a.runner.Touch(y, pressed)
	case screenNexus:
		a.nexus.Aim(x, y)
		a.nexus.Handle(input.Event{Command: input.Shoot, Pressed: pressed})
	}
}

// Draw renders the open screen.
func (a *app) Draw(surface draw.Surface) {
	switch a.screen {
	case screenChess:
		a.chess.Draw(surface)
	case screenRunner:
		a.runner.Draw(surface)
	case screenNexus:
		a.nexus.Draw(surface)
	default:
		a.drawMenu(surface)
	}
}

func (a *app) drawMenu(surface draw.Surface) {
	w, h := surface.Size()
	surface.FillRect(0, 0, w, h, menuBackground)

	cx := w / 2
	y := h/2 - 90
	draw.CenteredText(surface, "SIDER ARCADE", cx, y, menuTitle)
	y += 40
	for _, line := range []string{"[1] Chess", "[2] Sider Runner", "[3] Sider Nexus"} {
		draw.CenteredText(surface, line, cx, y, menuText)
		y += 20
	}
	y += 20
	for _, line := range a.menuLines {
		draw.CenteredText(surface, line, cx, y, menuDim)
		y += 16
	}
	draw.CenteredText(surface, "ESC to exit", cx, h-30, menuDim)
}
