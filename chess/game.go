package chess

import (
	"errors"
	"slices"
)

var (
	// ErrIllegalMove is returned by MakeMove for a move the rules reject.
	ErrIllegalMove = errors.New("chess: illegal move")
	// ErrGameOver is returned by MakeMove once the game has ended.
	ErrGameOver = errors.New("chess: game is over")
)

// Status is the state of a game after the last move.
type Status int

const (
	InProgress Status = iota
	Check
	Checkmate
	Stalemate
	KingCaptured
)

func (s Status) String() string {
	switch s {
	case InProgress:
		return "in-progress"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	case KingCaptured:
		return "king-captured"
	}
	return "unknown"
}

// Over reports whether the status ends the game.
func (s Status) Over() bool {
	return s == Checkmate || s == Stalemate || s == KingCaptured
}

// Move is one applied move.
type Move struct {
	From, To Square
	Piece    Piece
	Captured Piece
	Promoted bool
	Number   int
}

// Game holds a board and the rules state around it. Moves that leave the
// mover's own king attacked are allowed; a king can therefore be captured,
// which ends the game in favour of the capturer.
type Game struct {
	board    Board
	turn     Color
	history  []Move
	captured [2][]Piece
	status   Status
	winner   Color
}

// NewGame starts a game from the standard position with white to move.
func NewGame() *Game {
	g := &Game{}
	g.Reset()
	return g
}

// NewGameFrom starts a game from an arbitrary position. The status is
// computed for the side to move.
func NewGameFrom(board Board, turn Color) *Game {
	g := &Game{board: board, turn: turn}
	g.updateStatus()
	return g
}

// Reset restores the starting position.
func (g *Game) Reset() {
	*g = Game{board: NewBoard(), turn: White}
}

// Board returns a copy of the board.
func (g *Game) Board() Board {
	return g.board
}

// At returns the piece on s.
func (g *Game) At(s Square) Piece {
	return g.board.At(s)
}

// Turn returns the side to move.
func (g *Game) Turn() Color {
	return g.turn
}

// Status returns the state after the last move.
func (g *Game) Status() Status {
	return g.status
}

// IsOver reports whether the game has ended.
func (g *Game) IsOver() bool {
	return g.status.Over()
}

// MoveCount returns the number of moves played.
func (g *Game) MoveCount() int {
	return len(g.history)
}

// History returns the moves played so far.
func (g *Game) History() []Move {
	return slices.Clone(g.history)
}

// Captured returns the pieces of colour c that have been taken.
func (g *Game) Captured(c Color) []Piece {
	return slices.Clone(g.captured[c])
}

// Winner returns the winning side once the game has been won.
func (g *Game) Winner() (Color, bool) {
	if g.status == Checkmate || g.status == KingCaptured {
		return g.winner, true
	}
	return 0, false
}

// Result describes a finished game, or returns "" while it is running.
func (g *Game) Result() string {
	switch g.status {
	case Checkmate:
		return g.winner.Title() + " wins by checkmate!"
	case KingCaptured:
		return g.winner.Title() + " wins by capturing the king!"
	case Stalemate:
		return "Stalemate - Draw!"
	}
	return ""
}

// IsValidMove reports whether the side to move may move the piece on from to
// to. Moves into check are not rejected.
func (g *Game) IsValidMove(from, to Square) bool {
	if !from.OnBoard() {
		return false
	}
	piece := g.board.At(from)
	if piece.IsEmpty() || piece.Color != g.turn {
		return false
	}
	return g.board.Attacks(from, to)
}

// MakeMove applies a move for the side to move. On error nothing changes.
func (g *Game) MakeMove(from, to Square) (Move, error) {
	if g.IsOver() {
		return Move{}, ErrGameOver
	}
	if !g.IsValidMove(from, to) {
		return Move{}, ErrIllegalMove
	}

	piece := g.board.At(from)
	move := Move{
		From:     from,
		To:       to,
		Piece:    piece,
		Captured: g.board.At(to),
		Number:   len(g.history) + 1,
	}

	g.board.Set(to, piece)
	g.board.Set(from, Piece{})

	if !move.Captured.IsEmpty() {
		g.captured[move.Captured.Color] = append(g.captured[move.Captured.Color], move.Captured)
	}

	if piece.Kind == Pawn && (to.Row == 0 || to.Row == 7) {
		g.board.Set(to, Piece{Kind: Queen, Color: piece.Color})
		move.Promoted = true
	}

	g.history = append(g.history, move)
	g.turn = g.turn.Opponent()

	if move.Captured.Kind == King {
		g.status = KingCaptured
		g.winner = piece.Color
		return move, nil
	}
	g.updateStatus()
	return move, nil
}

func (g *Game) updateStatus() {
	inCheck := g.IsKingInCheck(g.turn)
	noMoves := g.HasNoLegalMoves()

	switch {
	case inCheck && noMoves:
		g.status = Checkmate
		g.winner = g.turn.Opponent()
	case inCheck:
		g.status = Check
	case noMoves:
		g.status = Stalemate
	default:
		g.status = InProgress
	}
}

// IsKingInCheck reports whether any piece of the other colour attacks c's
// king. Without a king on the board it is false.
func (g *Game) IsKingInCheck(c Color) bool {
	king, ok := g.board.KingSquare(c)
	if !ok {
		return false
	}

	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			from := Sq(row, col)
			if p := g.board.At(from); !p.IsEmpty() && p.Color != c && g.board.Attacks(from, king) {
				return true
			}
		}
	}
	return false
}

// HasNoLegalMoves reports whether the side to move has no valid move,
// trying every (from, to) pair.
func (g *Game) HasNoLegalMoves() bool {
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			for toRow := 0; toRow < 8; toRow++ {
				for toCol := 0; toCol < 8; toCol++ {
					if g.IsValidMove(Sq(fromRow, fromCol), Sq(toRow, toCol)) {
						return false
					}
				}
			}
		}
	}
	return true
}

// LegalMoves lists every move available to colour c in board order. Only
// From, To, Piece and Captured are filled in.
func (g *Game) LegalMoves(c Color) []Move {
	var moves []Move
	for fromRow := 0; fromRow < 8; fromRow++ {
		for fromCol := 0; fromCol < 8; fromCol++ {
			from := Sq(fromRow, fromCol)
			piece := g.board.At(from)
			if piece.IsEmpty() || piece.Color != c {
				continue
			}
			for toRow := 0; toRow < 8; toRow++ {
				for toCol := 0; toCol < 8; toCol++ {
					to := Sq(toRow, toCol)
					if g.board.Attacks(from, to) {
						moves = append(moves, Move{From: from, To: to, Piece: piece, Captured: g.board.At(to)})
					}
				}
			}
		}
	}
	return moves
}

// MovesFrom lists the destinations the side to move can reach from s.
func (g *Game) MovesFrom(s Square) []Square {
	var out []Square
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if to := Sq(row, col); g.IsValidMove(s, to) {
				out = append(out, to)
			}
		}
	}
	return out
}
