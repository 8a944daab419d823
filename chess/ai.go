package chess

import (
	"math/rand/v2"
	"time"
)

// AI picks a random capture when one exists and a random move otherwise.
type AI struct {
	Color Color
	rng   *rand.Rand
}

// NewAI creates an AI playing color.
func NewAI(color Color, rng *rand.Rand) *AI {
	return &AI{Color: color, rng: rng}
}

// Choose selects a move for the AI's side. ok is false when it has none.
func (a *AI) Choose(g *Game) (Move, bool) {
	moves := g.LegalMoves(a.Color)
	if len(moves) == 0 {
		return Move{}, false
	}

	var captures []Move
	for _, m := range moves {
		if !m.Captured.IsEmpty() {
			captures = append(captures, m)
		}
	}
	if len(captures) > 0 {
		moves = captures
	}
	return moves[a.rng.IntN(len(moves))], true
}

// Delay is how long the AI "thinks" before moving: 500 ms to 1.5 s.
func (a *AI) Delay() time.Duration {
	return 500*time.Millisecond + time.Duration(a.rng.Float64()*float64(time.Second))
}
