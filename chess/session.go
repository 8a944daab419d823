package chess

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"github.com/plus3/arcade/input"
	"github.com/plus3/arcade/stats"
)

// Mode selects the opponent.
type Mode int

const (
	VsAI Mode = iota
	VsHuman
)

func (m Mode) String() string {
	if m == VsHuman {
		return "vs-human"
	}
	return "vs-ai"
}

// SessionConfig carries a Session's collaborators. Zero fields get defaults:
// an in-memory store, a time-seeded generator and log.Default().
type SessionConfig struct {
	Mode   Mode
	Store  stats.Store
	Rand   *rand.Rand
	Logger *log.Logger
}

type pendingMove struct {
	move      Move
	remaining float64
}

// Session is one interactive game: the human plays white, clicks select and
// move pieces, and in VsAI mode black answers after a short delay.
type Session struct {
	game   *Game
	ai     *AI
	mode   Mode
	store  stats.Store
	logger *log.Logger

	selected    Square
	hasSelected bool
	pending     *pendingMove
	elapsed     float64
	recorded    bool
	record      stats.ChessRecord
	layout      Layout
}

// NewSession creates a session and loads the persisted record.
func NewSession(cfg SessionConfig) *Session {
	if cfg.Store == nil {
		cfg.Store = stats.NewMemoryStore()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	s := &Session{
		game:   NewGame(),
		ai:     NewAI(Black, cfg.Rand),
		mode:   cfg.Mode,
		store:  cfg.Store,
		logger: cfg.Logger,
		layout: LayoutFor(640, 600),
	}

	record, err := stats.Load(context.Background(), s.store, stats.KeyChess, stats.ChessRecord{})
	if err != nil {
		s.logger.Printf("chess: load stats: %v", err)
	}
	s.record = record
	return s
}

// Game returns the underlying rules engine.
func (s *Session) Game() *Game {
	return s.game
}

// Mode returns the opponent mode.
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches opponent and starts a new game.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.Reset()
}

// Record returns the persisted results.
func (s *Session) Record() stats.ChessRecord {
	return s.record
}

// Elapsed returns the game clock in seconds.
func (s *Session) Elapsed() float64 {
	return s.elapsed
}

// Selected returns the currently selected square.
func (s *Session) Selected() (Square, bool) {
	return s.selected, s.hasSelected
}

// Thinking reports whether an AI move is waiting to be played.
func (s *Session) Thinking() bool {
	return s.pending != nil
}

// Layout returns the board placement used for pointer input.
func (s *Session) Layout() Layout {
	return s.layout
}

// Reset starts a new game, keeping the record.
func (s *Session) Reset() {
	s.game.Reset()
	s.hasSelected = false
	s.pending = nil
	s.elapsed = 0
	s.recorded = false
}

func (s *Session) humanTurn() bool {
	if s.game.IsOver() || s.pending != nil {
		return false
	}
	return s.mode == VsHuman || s.game.Turn() == White
}

// Click applies the selection model to square sq: select one of your pieces,
// click a destination to move, click another of your pieces to reselect,
// click anything else to deselect.
func (s *Session) Click(sq Square) {
	if !s.humanTurn() || !sq.OnBoard() {
		return
	}
	own := func(sq Square) bool {
		p := s.game.At(sq)
		return !p.IsEmpty() && p.Color == s.game.Turn()
	}

	if !s.hasSelected {
		if own(sq) {
			s.selected, s.hasSelected = sq, true
		}
		return
	}

	if _, err := s.game.MakeMove(s.selected, sq); err == nil {
		s.hasSelected = false
		s.afterMove()
		return
	}

	if own(sq) {
		s.selected = sq
		return
	}
	s.hasSelected = false
}

// ClickAt is Click for canvas coordinates.
func (s *Session) ClickAt(x, y float64) {
	if sq, ok := s.layout.SquareAt(x, y); ok {
		s.Click(sq)
	}
}

// Handle applies a key command. Restart only works once the game is over.
func (s *Session) Handle(ev input.Event) {
	if !ev.Pressed {
		return
	}
	if ev.Command == input.Restart && s.game.IsOver() {
		s.Reset()
	}
}

func (s *Session) afterMove() {
	if s.game.IsOver() {
		s.finish()
		return
	}
	if s.mode != VsAI || s.game.Turn() != s.ai.Color {
		return
	}
	if move, ok := s.ai.Choose(s.game); ok {
		s.pending = &pendingMove{move: move, remaining: s.ai.Delay().Seconds()}
	}
}

// Update advances the clock and the AI countdown by dt seconds.
func (s *Session) Update(dt float64) {
	if s.game.IsOver() {
		return
	}
	s.elapsed += dt

	if s.pending == nil {
		return
	}
	s.pending.remaining -= dt
	if s.pending.remaining > 0 {
		return
	}

	move := s.pending.move
	s.pending = nil
	if _, err := s.game.MakeMove(move.From, move.To); err != nil {
		s.logger.Printf("chess: ai move %s-%s: %v", move.From, move.To, err)
		return
	}
	s.afterMove()
}

// finish updates the record once per game. A white win also tracks the
// fastest winning time.
func (s *Session) finish() {
	if s.recorded {
		return
	}
	s.recorded = true
	s.record.GamesPlayed++

	winner, won := s.game.Winner()
	switch {
	case won && winner == White:
		s.record.Wins++
		t := int(s.elapsed)
		if s.record.BestTime == nil || t < *s.record.BestTime {
			s.record.BestTime = &t
		}
	case won:
		s.record.Losses++
	default:
		s.record.Draws++
	}

	if err := stats.Save(context.Background(), s.store, stats.KeyChess, s.record); err != nil {
		s.logger.Printf("chess: save stats: %v", err)
	}
}
