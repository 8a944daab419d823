package chess

import (
	"bytes"
	"context"
	"log"
	"math/rand/v2"
	"testing"

	"github.com/plus3/arcade/draw"
	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, mode Mode) (*Session, *stats.MemoryStore) {
	t.Helper()
	store := stats.NewMemoryStore()
	s := NewSession(SessionConfig{
		Mode:   mode,
		Store:  store,
		Rand:   rand.New(rand.NewPCG(11, 12)),
		Logger: log.New(&bytes.Buffer{}, "", 0),
	})
	return s, store
}

func TestSessionSelection(t *testing.T) {
	s, _ := newTestSession(t, VsHuman)

	s.Click(Sq(1, 4))
	_, ok := s.Selected()
	assert.False(t, ok, "cannot select an opponent piece")

	s.Click(Sq(6, 4))
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, Sq(6, 4), sel)

	s.Click(Sq(7, 6))
	sel, _ = s.Selected()
	assert.Equal(t, Sq(7, 6), sel, "clicking another own piece reselects")

	s.Click(Sq(3, 3))
	_, ok = s.Selected()
	assert.False(t, ok, "clicking an unreachable square deselects")

	s.Click(Sq(6, 4))
	s.Click(Sq(4, 4))
	assert.Equal(t, Pawn, s.Game().At(Sq(4, 4)).Kind)
	assert.Equal(t, Black, s.Game().Turn())
	assert.False(t, s.Thinking(), "no AI in vs-human mode")

	s.Click(Sq(1, 4))
	s.Click(Sq(3, 4))
	assert.Equal(t, 2, s.Game().MoveCount(), "black moves by click in vs-human mode")
}

func TestSessionAIReplyAfterDelay(t *testing.T) {
	s, _ := newTestSession(t, VsAI)

	s.Click(Sq(6, 4))
	s.Click(Sq(4, 4))
	require.True(t, s.Thinking())

	s.Click(Sq(6, 3))
	_, ok := s.Selected()
	assert.False(t, ok, "input is ignored while the AI thinks")

	s.Update(0.4)
	assert.True(t, s.Thinking())
	assert.Equal(t, 1, s.Game().MoveCount())

	s.Update(1.2)
	assert.False(t, s.Thinking())
	assert.Equal(t, 2, s.Game().MoveCount())
	assert.Equal(t, White, s.Game().Turn())
	assert.InDelta(t, 1.6, s.Elapsed(), 1e-9)
}

func TestSessionRecordsWin(t *testing.T) {
	s, store := newTestSession(t, VsAI)

	b, err := ParseBoard("k.......\n........\n........\n........\n........\n........\n........\nQ......K\n")
	require.NoError(t, err)
	s.game = NewGameFrom(b, White)

	s.Update(65.7)
	s.Click(Sq(7, 0))
	s.Click(Sq(0, 0))

	require.True(t, s.Game().IsOver())
	rec := s.Record()
	assert.Equal(t, 1, rec.GamesPlayed)
	assert.Equal(t, 1, rec.Wins)
	require.NotNil(t, rec.BestTime)
	assert.Equal(t, 65, *rec.BestTime)

	saved, err := stats.Load(context.Background(), store, stats.KeyChess, stats.ChessRecord{})
	require.NoError(t, err)
	assert.Equal(t, rec, saved)

	s.Update(10)
	assert.InDelta(t, 65.7, s.Elapsed(), 1e-9, "clock stops at game end")

	s.Handle(input.Event{Command: input.Restart, Pressed: true})
	assert.False(t, s.Game().IsOver())
	assert.Zero(t, s.Elapsed())
	assert.Equal(t, 1, s.Record().GamesPlayed)
}

func TestSessionRecordsLossAndDraw(t *testing.T) {
	s, _ := newTestSession(t, VsHuman)

	b, err := ParseBoard("K.......\n........\n........\n........\n........\n........\n........\nq......k\n")
	require.NoError(t, err)
	s.game = NewGameFrom(b, Black)
	s.Click(Sq(7, 0))
	s.Click(Sq(0, 0))
	assert.Equal(t, 1, s.Record().Losses)

	stalemated, err := ParseBoard(".......K\n........\n........\n........\n........\n........\npp......\nkp.....N\n")
	require.NoError(t, err)
	s.Reset()
	s.game = NewGameFrom(stalemated, White)
	s.Click(Sq(7, 7))
	s.Click(Sq(6, 5))
	assert.Equal(t, Stalemate, s.Game().Status())
	assert.Equal(t, 1, s.Record().Draws)
	assert.Equal(t, 2, s.Record().GamesPlayed)
}

func TestSessionLoadsRecord(t *testing.T) {
	store := stats.NewMemoryStore()
	require.NoError(t, stats.Save(context.Background(), store, stats.KeyChess, stats.ChessRecord{GamesPlayed: 4, Wins: 3}))

	s := NewSession(SessionConfig{Store: store, Logger: log.New(&bytes.Buffer{}, "", 0)})
	assert.Equal(t, 4, s.Record().GamesPlayed)
	assert.Equal(t, VsAI, s.Mode())
}

func TestSessionClickAt(t *testing.T) {
	s, _ := newTestSession(t, VsHuman)
	rec := draw.NewRecorder(640, 600)
	s.Draw(rec)

	x, y := s.Layout().Center(Sq(6, 4))
	s.ClickAt(x, y)
	sel, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, Sq(6, 4), sel)

	s.ClickAt(1, 1)
	_, ok = s.Selected()
	assert.True(t, ok, "clicks off the board are ignored")
}

func TestLayoutSquareAt(t *testing.T) {
	l := LayoutFor(640, 600)
	assert.Equal(t, Layout{X: 80, Y: 40}, l)

	s, ok := l.SquareAt(80, 40)
	assert.True(t, ok)
	assert.Equal(t, Sq(0, 0), s)

	s, ok = l.SquareAt(80+479, 40+479)
	assert.True(t, ok)
	assert.Equal(t, Sq(7, 7), s)

	_, ok = l.SquareAt(79, 100)
	assert.False(t, ok)
	_, ok = l.SquareAt(100, 40+480)
	assert.False(t, ok)
}

func TestSessionDraw(t *testing.T) {
	s, _ := newTestSession(t, VsHuman)
	rec := draw.NewRecorder(640, 600)

	s.Draw(rec)
	assert.Equal(t, 64, rec.Count(draw.KindStrokeRect))
	assert.Equal(t, 32, rec.Count(draw.KindFillCircle))
	assert.True(t, rec.HasText("Turn: White"))
	assert.True(t, rec.HasText("a"))
	assert.True(t, rec.HasText("8"))

	rec.Reset()
	s.Click(Sq(6, 4))
	s.Draw(rec)
	assert.Equal(t, 32+2, rec.Count(draw.KindFillCircle), "two hint dots for the pawn")

	b, err := ParseBoard("k.......\n........\n........\n........\n........\n........\n........\nQ......K\n")
	require.NoError(t, err)
	s.game = NewGameFrom(b, White)
	s.Click(Sq(7, 0))
	s.Click(Sq(0, 0))
	rec.Reset()
	s.Draw(rec)
	assert.True(t, rec.HasText("GAME OVER"))
	assert.True(t, rec.HasText("White wins by capturing the king!"))
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "01:05", FormatClock(65.9))
	assert.Equal(t, "12:00", FormatClock(720))
}
