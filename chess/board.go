// Package chess implements the rules engine, a capture-greedy AI and a
// vs-AI session for an 8x8 chess board.
package chess

import "fmt"

// Color is a side. The zero value is White.
type Color int8

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// Title is the capitalised colour name.
func (c Color) Title() string {
	if c == White {
		return "White"
	}
	return "Black"
}

// Opponent returns the other side.
func (c Color) Opponent() Color {
	return 1 - c
}

// Kind is a piece type. The zero value marks an empty square.
type Kind int8

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"empty", "pawn", "knight", "bishop", "rook", "queen", "king"}

func (k Kind) String() string {
	return kindNames[k]
}

// Piece is the content of a square.
type Piece struct {
	Kind  Kind
	Color Color
}

// IsEmpty reports whether the square holds no piece.
func (p Piece) IsEmpty() bool {
	return p.Kind == Empty
}

// Letter returns the piece's FEN letter, upper case for white.
func (p Piece) Letter() string {
	letters := [...]string{"", "P", "N", "B", "R", "Q", "K"}
	if p.Color == Black {
		letters = [...]string{"", "p", "n", "b", "r", "q", "k"}
	}
	return letters[p.Kind]
}

func (p Piece) String() string {
	if p.IsEmpty() {
		return "empty"
	}
	return p.Color.String() + " " + p.Kind.String()
}

// Square addresses the board by row and column. Row 0 is black's back rank.
type Square struct {
	Row, Col int
}

// Sq is shorthand for Square{row, col}.
func Sq(row, col int) Square {
	return Square{Row: row, Col: col}
}

// OnBoard reports whether the square lies on the 8x8 board.
func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

// String renders the square in algebraic notation, e.g. row 6 col 4 is "e2".
func (s Square) String() string {
	if !s.OnBoard() {
		return fmt.Sprintf("(%d,%d)", s.Row, s.Col)
	}
	return fmt.Sprintf("%c%d", 'a'+s.Col, 8-s.Row)
}

// ParseSquare parses algebraic notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Square{}, fmt.Errorf("invalid square %q", s)
	}
	return Square{Row: 8 - int(s[1]-'0'), Col: int(s[0] - 'a')}, nil
}

// Board is an 8x8 grid indexed [row][col].
type Board [8][8]Piece

var backRank = [8]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard returns the standard starting position.
func NewBoard() Board {
	var b Board
	for col := 0; col < 8; col++ {
		b[0][col] = Piece{Kind: backRank[col], Color: Black}
		b[1][col] = Piece{Kind: Pawn, Color: Black}
		b[6][col] = Piece{Kind: Pawn, Color: White}
		b[7][col] = Piece{Kind: backRank[col], Color: White}
	}
	return b
}

// At returns the piece on s. Off-board squares read as empty.
func (b Board) At(s Square) Piece {
	if !s.OnBoard() {
		return Piece{}
	}
	return b[s.Row][s.Col]
}

// Set places p on s.
func (b *Board) Set(s Square, p Piece) {
	b[s.Row][s.Col] = p
}

// Attacks reports whether the piece on from could move to to by its movement
// rules, whichever side is to move. It rejects off-board destinations, empty
// origins and destinations holding a piece of the mover's colour.
func (b Board) Attacks(from, to Square) bool {
	if !from.OnBoard() || !to.OnBoard() {
		return false
	}
	piece := b.At(from)
	if piece.IsEmpty() {
		return false
	}
	target := b.At(to)
	if !target.IsEmpty() && target.Color == piece.Color {
		return false
	}

	dr, dc := to.Row-from.Row, to.Col-from.Col
	switch piece.Kind {
	case Pawn:
		return b.pawnMove(piece.Color, from, to, target)
	case Rook:
		return (dr == 0 || dc == 0) && b.pathClear(from, to)
	case Bishop:
		return abs(dr) == abs(dc) && b.pathClear(from, to)
	case Queen:
		return (dr == 0 || dc == 0 || abs(dr) == abs(dc)) && b.pathClear(from, to)
	case Knight:
		return (abs(dr) == 2 && abs(dc) == 1) || (abs(dr) == 1 && abs(dc) == 2)
	case King:
		return abs(dr) <= 1 && abs(dc) <= 1
	}
	return false
}

func (b Board) pawnMove(c Color, from, to Square, target Piece) bool {
	dir, start := -1, 6
	if c == Black {
		dir, start = 1, 1
	}

	if from.Col == to.Col && target.IsEmpty() {
		if to.Row == from.Row+dir {
			return true
		}
		// The square passed over is not checked.
		return from.Row == start && to.Row == from.Row+2*dir
	}

	return abs(to.Col-from.Col) == 1 && to.Row == from.Row+dir && !target.IsEmpty()
}

// pathClear checks that every square strictly between from and to is empty.
func (b Board) pathClear(from, to Square) bool {
	rowStep, colStep := sign(to.Row-from.Row), sign(to.Col-from.Col)
	r, c := from.Row+rowStep, from.Col+colStep
	for r != to.Row || c != to.Col {
		if !b[r][c].IsEmpty() {
			return false
		}
		r += rowStep
		c += colStep
	}
	return true
}

// KingSquare locates c's king.
func (b Board) KingSquare(c Color) (Square, bool) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if p := b[row][col]; p.Kind == King && p.Color == c {
				return Sq(row, col), true
			}
		}
	}
	return Square{}, false
}

// String renders the board as eight FEN-style lines with '.' for empty squares.
func (b Board) String() string {
	out := make([]byte, 0, 72)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if l := b[row][col].Letter(); l != "" {
				out = append(out, l...)
			} else {
				out = append(out, '.')
			}
		}
		out = append(out, '\n')
	}
	return string(out)
}

// ParseBoard reads the format produced by Board.String.
func ParseBoard(s string) (Board, error) {
	var b Board
	row, col := 0, 0
	for _, r := range s {
		if r == '\n' {
			if col != 0 && col != 8 {
				return b, fmt.Errorf("row %d has %d squares", row, col)
			}
			if col == 8 {
				row++
				col = 0
			}
			continue
		}
		if row >= 8 || col >= 8 {
			return b, fmt.Errorf("board larger than 8x8")
		}
		if r != '.' {
			p, ok := pieceFromLetter(r)
			if !ok {
				return b, fmt.Errorf("unknown piece %q", r)
			}
			b[row][col] = p
		}
		col++
	}
	if col == 8 {
		row++
	}
	if row != 8 {
		return b, fmt.Errorf("board has %d rows", row)
	}
	return b, nil
}

func pieceFromLetter(r rune) (Piece, bool) {
	c := White
	if r >= 'a' && r <= 'z' {
		c = Black
		r -= 'a' - 'A'
	}
	kinds := map[rune]Kind{'P': Pawn, 'N': Knight, 'B': Bishop, 'R': Rook, 'Q': Queen, 'K': King}
	k, ok := kinds[r]
	return Piece{Kind: k, Color: c}, ok
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}
