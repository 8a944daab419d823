package main

import (
	"fmt"
	"math/rand/v2"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/ecs"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/nexus"
	"github.com/plus3/arcade/runner"
)

// target is a game driven headless by a scripted player. Step restarts the
// game when a run ends.
type target interface {
	Name() string
	Step(dt float64)
	Draw(s draw.Surface)
	Scheduler() *ecs.Scheduler
	Runs() int
	Best() int
}

func newTarget(name string, rng *rand.Rand) (target, error) {
	switch name {
	case "runner":
		return newRunnerTarget(rng), nil
	case "nexus":
		return newNexusTarget(rng), nil
	}
	return nil, fmt.Errorf("unknown game %q", name)
}

const jumpChance = 0.02

type runnerTarget struct {
	game *runner.Game
	rng  *rand.Rand
	runs int
	best int
}

func newRunnerTarget(rng *rand.Rand) *runnerTarget {
	g := runner.New(runner.Config{Rand: rng, Logger: quietLogger})
	g.Start()
	return &runnerTarget{game: g, rng: rng}
}

func (t *runnerTarget) Name() string { return "runner" }

func (t *runnerTarget) Step(float64) {
	if t.game.Phase() == runner.Over {
		t.finish()
		t.game.Start()
	}
	if t.rng.Float64() < jumpChance {
		t.game.Handle(input.Event{Command: input.Jump, Pressed: true})
	}
	t.game.Update()
}

func (t *runnerTarget) finish() {
	t.runs++
	t.best = max(t.best, t.game.Score())
}

func (t *runnerTarget) Draw(s draw.Surface)       { t.game.Draw(s) }
func (t *runnerTarget) Scheduler() *ecs.Scheduler { return t.game.Scheduler() }
func (t *runnerTarget) Runs() int                 { return t.runs }
func (t *runnerTarget) Best() int                 { return t.best }

// nexusTarget strafes in a random direction and fires at a random point,
// taking the first upgrade offered.
type nexusTarget struct {
	game *nexus.Game
	rng  *rand.Rand
	held input.Command
	runs int
	best int
}

var moves = []input.Command{input.MoveUp, input.MoveDown, input.MoveLeft, input.MoveRight}

func newNexusTarget(rng *rand.Rand) *nexusTarget {
	g := nexus.New(nexus.Config{Rand: rng, Logger: quietLogger})
	t := &nexusTarget{game: g, rng: rng}
	t.start()
	return t
}

func (t *nexusTarget) start() {
	t.game.SelectClass(nexus.Classes[t.rng.IntN(len(nexus.Classes))])
	t.game.Start()
	t.game.Handle(input.Event{Command: input.Shoot, Pressed: true})
}

func (t *nexusTarget) Name() string { return "nexus" }

func (t *nexusTarget) Step(dt float64) {
	switch t.game.Phase() {
	case nexus.Over:
		t.runs++
		t.best = max(t.best, t.game.Score())
		t.game.BackToMenu()
		t.start()
	case nexus.LevelUp:
		_ = t.game.ChooseUpgrade(0)
	}

	if t.rng.Float64() < 0.05 {
		if t.held != input.None {
			t.game.Handle(input.Event{Command: t.held})
		}
		t.held = moves[t.rng.IntN(len(moves))]
		t.game.Handle(input.Event{Command: t.held, Pressed: true})
		t.game.Aim(t.rng.Float64()*800, t.rng.Float64()*600)
	}
	t.game.Update(dt)
}

func (t *nexusTarget) Draw(s draw.Surface)       { t.game.Draw(s) }
func (t *nexusTarget) Scheduler() *ecs.Scheduler { return t.game.Scheduler() }
func (t *nexusTarget) Runs() int                 { return t.runs }
func (t *nexusTarget) Best() int                 { return t.best }
