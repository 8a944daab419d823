package main

import (
	"context"
	"io"
	"log"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/arcade/chess"
	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/nexus"
	"github.com/plus3/arcade/runner"
	"github.com/plus3/arcade/stats"
)

func newTestApp(t *testing.T, screen string) (*app, *stats.MemoryStore) {
	t.Helper()
	store := stats.NewMemoryStore()
	a := newApp(appConfig{
		Width:  800,
		Height: 600,
		Screen: screen,
		Store:  store,
		Rand:   rand.New(rand.NewPCG(1, 2)),
		Logger: log.New(io.Discard, "", 0),
	})
	return a, store
}

func typeKeys(a *app, keys ...input.Key) {
	now := time.Unix(0, 0)
	for _, k := range keys {
		now = now.Add(100 * time.Millisecond)
		a.Key(k, true, now)
		a.Key(k, false, now)
	}
}

func TestMenuOpensGames(t *testing.T) {
	tests := []struct {
		key  input.Key
		want screen
	}{
		{input.Digit1, screenChess},
		{input.Digit2, screenRunner},
		{input.Digit3, screenNexus},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			a, _ := newTestApp(t, "menu")
			typeKeys(a, tt.key)
			assert.Equal(t, tt.want, a.screen)
		})
	}
}

func TestMenuSecretCodes(t *testing.T) {
	t.Run("sider", func(t *testing.T) {
		a, _ := newTestApp(t, "menu")
		typeKeys(a, input.KeyS, "KeyI", input.KeyD, "KeyE", input.KeyR)
		assert.Equal(t, screenRunner, a.screen)
	})
	t.Run("konami", func(t *testing.T) {
		a, _ := newTestApp(t, "menu")
		typeKeys(a,
			input.KeyArrowUp, input.KeyArrowUp, input.KeyArrowDown, input.KeyArrowDown,
			input.KeyArrowLeft, input.KeyArrowRight, input.KeyArrowLeft, input.KeyArrowRight,
		)
		assert.Equal(t, screenRunner, a.screen)
	})
	t.Run("play", func(t *testing.T) {
		a, _ := newTestApp(t, "menu")
		typeKeys(a, input.KeyP, "KeyL", input.KeyA, "KeyY")
		assert.Equal(t, screenNexus, a.screen)
	})
}

func TestMenuEscapeQuits(t *testing.T) {
	a, _ := newTestApp(t, "menu")
	assert.False(t, a.Done())
	typeKeys(a, input.KeyEscape)
	assert.True(t, a.Done())
}

func TestMenuShowsRecords(t *testing.T) {
	a, store := newTestApp(t, "menu")
	require.NoError(t, stats.Save(context.Background(), store, stats.KeyRunnerHighScore, 12345))
	require.NoError(t, stats.Save(context.Background(), store, stats.KeyChess, stats.ChessRecord{Wins: 3, Losses: 1}))

	// records are read when the menu opens
	a.open(screenMenu)
	rec := draw.NewRecorder(800, 600)
	a.Draw(rec)

	assert.True(t, rec.HasText("SIDER ARCADE"))
	assert.True(t, rec.HasText("Runner best 12,345"))
	assert.True(t, rec.HasText("Chess  3 won, 1 lost, 0 drawn"))
	assert.True(t, rec.HasText("Nexus  best 0"))
}

func TestChessPointerMoves(t *testing.T) {
	a, _ := newTestApp(t, "chess")
	require.NotNil(t, a.chess)
	assert.Nil(t, a.Scheduler())

	a.Draw(draw.NewRecorder(800, 600))
	l := a.chess.Layout()
	e2x, e2y := l.Center(chess.Sq(6, 4))
	e4x, e4y := l.Center(chess.Sq(4, 4))

	a.PointerButton(e2x, e2y, true)
	a.PointerButton(e2x, e2y, false)
	a.PointerButton(e4x, e4y, true)

	game := a.chess.Game()
	assert.Equal(t, chess.Black, game.Turn())
	assert.Equal(t, chess.Pawn, game.At(chess.Sq(4, 4)).Kind)

	typeKeys(a, input.KeyQ)
	assert.Equal(t, screenMenu, a.screen)
	assert.Nil(t, a.chess)
}

func TestRunnerKeysAndQuit(t *testing.T) {
	a, _ := newTestApp(t, "runner")
	require.NotNil(t, a.runner)
	assert.Same(t, a.runner.Scheduler(), a.Scheduler())

	typeKeys(a, input.KeySpace)
	assert.Equal(t, runner.Running, a.runner.Phase())

	a.Update(1.0 / 60)
	assert.Positive(t, a.runner.Score())

	typeKeys(a, input.KeyQ)
	assert.Equal(t, screenRunner, a.screen, "quit is ignored mid-run")

	typeKeys(a, input.KeyEscape)
	assert.Equal(t, runner.Paused, a.runner.Phase())

	typeKeys(a, input.KeyQ)
	assert.Equal(t, screenMenu, a.screen)
}

func TestNexusPointerAndQuit(t *testing.T) {
	a, _ := newTestApp(t, "nexus")
	require.NotNil(t, a.nexus)

	typeKeys(a, input.Digit2, input.KeyEnter)
	assert.Equal(t, nexus.Guardian, a.nexus.Class())
	assert.Equal(t, nexus.Playing, a.nexus.Phase())

	a.PointerMove(700, 300)
	a.PointerButton(700, 300, true)
	a.Update(1.0 / 60)
	a.PointerButton(700, 300, false)

	projectiles := 0
	for _, arch := range a.nexus.Storage().Archetypes() {
		for _, typ := range arch.Types() {
			if typ.Name() == "Projectile" {
				projectiles += arch.Len()
			}
		}
	}
	assert.Equal(t, 1, projectiles)

	typeKeys(a, input.KeyEscape, input.KeyQ)
	assert.Equal(t, nexus.Menu, a.nexus.Phase(), "quit from pause returns to the class menu")

	typeKeys(a, input.KeyQ)
	assert.Equal(t, screenMenu, a.screen)
}
