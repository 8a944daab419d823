package chess_test

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/plus3/arcade/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBoard(t *testing.T, rows ...string) chess.Board {
	t.Helper()
	var s string
	for _, r := range rows {
		s += r + "\n"
	}
	b, err := chess.ParseBoard(s)
	require.NoError(t, err)
	return b
}

func sq(t *testing.T, s string) chess.Square {
	t.Helper()
	square, err := chess.ParseSquare(s)
	require.NoError(t, err)
	return square
}

func TestStartingPosition(t *testing.T) {
	b := chess.NewBoard()
	assert.Equal(t, "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n", b.String())

	g := chess.NewGame()
	assert.Equal(t, chess.White, g.Turn())
	assert.Equal(t, chess.InProgress, g.Status())
	assert.Len(t, g.LegalMoves(chess.White), 20)
	assert.Len(t, g.LegalMoves(chess.Black), 20)
}

func TestPawnE2E4(t *testing.T) {
	g := chess.NewGame()

	move, err := g.MakeMove(chess.Sq(6, 4), chess.Sq(4, 4))
	require.NoError(t, err)

	assert.True(t, g.At(chess.Sq(6, 4)).IsEmpty())
	assert.Equal(t, chess.Piece{Kind: chess.Pawn, Color: chess.White}, g.At(chess.Sq(4, 4)))
	assert.Equal(t, chess.Black, g.Turn())
	assert.Equal(t, 1, move.Number)
	assert.Equal(t, "e2", move.From.String())
	assert.Equal(t, "e4", move.To.String())
	assert.Equal(t, []chess.Move{move}, g.History())
}

func TestIllegalMovesChangeNothing(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"empty origin", "e4", "e5"},
		{"opponent piece", "e7", "e5"},
		{"own piece on target", "a1", "a2"},
		{"blocked rook", "a1", "a5"},
		{"pawn triple step", "e2", "e5"},
		{"pawn sideways", "e2", "d2"},
		{"knight straight", "b1", "b3"},
		{"bishop blocked", "c1", "e3"},
		{"king two squares", "e1", "e3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := chess.NewGame()
			before := g.Board()

			_, err := g.MakeMove(sq(t, tt.from), sq(t, tt.to))
			assert.ErrorIs(t, err, chess.ErrIllegalMove)
			assert.Equal(t, before, g.Board())
			assert.Equal(t, chess.White, g.Turn())
			assert.Zero(t, g.MoveCount())
		})
	}

	g := chess.NewGame()
	assert.False(t, g.IsValidMove(chess.Sq(6, 0), chess.Sq(-1, 0)))
	assert.False(t, g.IsValidMove(chess.Sq(8, 0), chess.Sq(7, 0)))
}

func TestPieceMovement(t *testing.T) {
	b := mustBoard(t,
		"....k...",
		"........",
		"...p....",
		"........",
		"...Q.N..",
		"........",
		"....P...",
		"....K...",
	)
	g := chess.NewGameFrom(b, chess.White)

	queen := sq(t, "d4")
	assert.True(t, g.IsValidMove(queen, sq(t, "d6")), "capture up the file")
	assert.False(t, g.IsValidMove(queen, sq(t, "d7")), "blocked by the pawn")
	assert.True(t, g.IsValidMove(queen, sq(t, "a7")))
	assert.True(t, g.IsValidMove(queen, sq(t, "e4")))
	assert.False(t, g.IsValidMove(queen, sq(t, "f4")), "own knight")
	assert.False(t, g.IsValidMove(queen, sq(t, "e6")))

	knight := sq(t, "f4")
	assert.True(t, g.IsValidMove(knight, sq(t, "g6")))
	assert.False(t, g.IsValidMove(knight, sq(t, "e2")), "own pawn")
	assert.True(t, g.IsValidMove(knight, sq(t, "h3")))

	pawn := sq(t, "e2")
	assert.True(t, g.IsValidMove(pawn, sq(t, "e3")))
	assert.True(t, g.IsValidMove(pawn, sq(t, "e4")))
	assert.False(t, g.IsValidMove(pawn, sq(t, "d3")), "diagonal needs a capture")
}

func TestPawnDoubleStepChecksOnlyDestination(t *testing.T) {
	b := mustBoard(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"....n...",
		"....P...",
		"....K...",
	)
	g := chess.NewGameFrom(b, chess.White)

	assert.True(t, g.IsValidMove(sq(t, "e2"), sq(t, "e4")), "the piece on e3 is jumped")
	assert.False(t, g.IsValidMove(sq(t, "e2"), sq(t, "e3")))

	b.Set(sq(t, "e4"), chess.Piece{Kind: chess.Knight, Color: chess.Black})
	g = chess.NewGameFrom(b, chess.White)
	assert.False(t, g.IsValidMove(sq(t, "e2"), sq(t, "e4")), "occupied destination")
}

func TestCaptureIsRecorded(t *testing.T) {
	g := chess.NewGame()
	for _, m := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"e4", "d5"}} {
		_, err := g.MakeMove(sq(t, m[0]), sq(t, m[1]))
		require.NoError(t, err)
	}

	assert.Equal(t, []chess.Piece{{Kind: chess.Pawn, Color: chess.Black}}, g.Captured(chess.Black))
	assert.Empty(t, g.Captured(chess.White))
	assert.Equal(t, chess.Pawn, g.History()[2].Captured.Kind)
}

func TestPromotion(t *testing.T) {
	b := mustBoard(t,
		".......k",
		"P.......",
		"........",
		"........",
		"........",
		"........",
		".......p",
		"K.......",
	)

	g := chess.NewGameFrom(b, chess.White)
	move, err := g.MakeMove(sq(t, "a7"), sq(t, "a8"))
	require.NoError(t, err)
	assert.True(t, move.Promoted)
	assert.Equal(t, chess.Piece{Kind: chess.Queen, Color: chess.White}, g.At(sq(t, "a8")))

	move, err = g.MakeMove(sq(t, "h2"), sq(t, "h1"))
	require.NoError(t, err)
	assert.True(t, move.Promoted)
	assert.Equal(t, chess.Piece{Kind: chess.Queen, Color: chess.Black}, g.At(sq(t, "h1")))
}

func TestCheck(t *testing.T) {
	g := chess.NewGame()
	for _, m := range [][2]string{{"f2", "f3"}, {"e7", "e5"}, {"g2", "g4"}, {"d8", "h4"}} {
		_, err := g.MakeMove(sq(t, m[0]), sq(t, m[1]))
		require.NoError(t, err)
	}

	assert.True(t, g.IsKingInCheck(chess.White))
	assert.False(t, g.IsKingInCheck(chess.Black))
	assert.Equal(t, chess.Check, g.Status(), "moves into check are allowed, so this is not mate")
	assert.False(t, g.IsOver())
}

func TestCheckIgnoresTurn(t *testing.T) {
	b := mustBoard(t,
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....R..K",
	)

	assert.True(t, chess.NewGameFrom(b, chess.White).IsKingInCheck(chess.Black))
	assert.True(t, chess.NewGameFrom(b, chess.Black).IsKingInCheck(chess.Black))
}

func TestCheckmate(t *testing.T) {
	b := mustBoard(t,
		".......K",
		"........",
		"........",
		"........",
		"........",
		"........",
		"ppN.....",
		"kp......",
	)

	g := chess.NewGameFrom(b, chess.Black)
	assert.True(t, g.IsKingInCheck(chess.Black))
	assert.True(t, g.HasNoLegalMoves())
	assert.Equal(t, chess.Checkmate, g.Status())

	winner, ok := g.Winner()
	assert.True(t, ok)
	assert.Equal(t, chess.White, winner)
	assert.Equal(t, "White wins by checkmate!", g.Result())

	_, err := g.MakeMove(sq(t, "h8"), sq(t, "g8"))
	assert.ErrorIs(t, err, chess.ErrGameOver)
}

func TestStalemate(t *testing.T) {
	b := mustBoard(t,
		".......K",
		"........",
		"........",
		"........",
		"........",
		"........",
		"pp.....N",
		"kp......",
	)

	g := chess.NewGameFrom(b, chess.Black)
	assert.False(t, g.IsKingInCheck(chess.Black))
	assert.Equal(t, chess.Stalemate, g.Status())
	_, ok := g.Winner()
	assert.False(t, ok)
	assert.Equal(t, "Stalemate - Draw!", g.Result())
}

func TestKingCapture(t *testing.T) {
	b := mustBoard(t,
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"Q......K",
	)

	g := chess.NewGameFrom(b, chess.White)
	move, err := g.MakeMove(sq(t, "a1"), sq(t, "a8"))
	require.NoError(t, err)
	assert.Equal(t, chess.King, move.Captured.Kind)
	assert.Equal(t, chess.KingCaptured, g.Status())

	winner, ok := g.Winner()
	assert.True(t, ok)
	assert.Equal(t, chess.White, winner)

	_, err = g.MakeMove(sq(t, "h1"), sq(t, "g1"))
	assert.ErrorIs(t, err, chess.ErrGameOver)
}

func TestReset(t *testing.T) {
	g := chess.NewGame()
	_, err := g.MakeMove(sq(t, "e2"), sq(t, "e4"))
	require.NoError(t, err)

	g.Reset()
	assert.Equal(t, chess.NewBoard(), g.Board())
	assert.Zero(t, g.MoveCount())
	assert.Equal(t, chess.White, g.Turn())
}

// TestRandomPlayouts checks the move, promotion, check and status properties
// over many random games.
func TestRandomPlayouts(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))

	for game := 0; game < 40; game++ {
		g := chess.NewGame()
		for ply := 0; ply < 120 && !g.IsOver(); ply++ {
			moves := g.LegalMoves(g.Turn())
			require.NotEmpty(t, moves)
			m := moves[rng.IntN(len(moves))]

			before := g.At(m.From)
			applied, err := g.MakeMove(m.From, m.To)
			require.NoError(t, err)

			assert.True(t, g.At(m.From).IsEmpty())
			after := g.At(m.To)
			if before.Kind == chess.Pawn && (m.To.Row == 0 || m.To.Row == 7) {
				assert.True(t, applied.Promoted)
				assert.Equal(t, chess.Piece{Kind: chess.Queen, Color: before.Color}, after)
			} else {
				assert.Equal(t, before, after)
			}

			if g.Status() == chess.KingCaptured {
				break
			}
			for _, c := range []chess.Color{chess.White, chess.Black} {
				board := g.Board()
				king, ok := board.KingSquare(c)
				require.True(t, ok)
				attacked := slices.ContainsFunc(g.LegalMoves(c.Opponent()), func(m chess.Move) bool {
					return m.To == king
				})
				assert.Equal(t, attacked, g.IsKingInCheck(c))
			}

			inCheck, stuck := g.IsKingInCheck(g.Turn()), g.HasNoLegalMoves()
			assert.Equal(t, inCheck && stuck, g.Status() == chess.Checkmate)
			assert.Equal(t, !inCheck && stuck, g.Status() == chess.Stalemate)
		}
	}
}

func TestParseSquare(t *testing.T) {
	s, err := chess.ParseSquare("a8")
	require.NoError(t, err)
	assert.Equal(t, chess.Sq(0, 0), s)

	_, err = chess.ParseSquare("i9")
	assert.Error(t, err)
}

func TestParseBoardErrors(t *testing.T) {
	_, err := chess.ParseBoard("xxxxxxxx\n")
	assert.Error(t, err)
	_, err = chess.ParseBoard("........\n")
	assert.Error(t, err)
}
