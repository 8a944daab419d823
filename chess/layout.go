package chess

// SquareSize is the side of one board square in pixels.
const SquareSize = 60

// BoardSize is the side of the whole board in pixels.
const BoardSize = 8 * SquareSize

// Layout positions the board on a canvas.
type Layout struct {
	X, Y float64
}

// LayoutFor centres the board on a w x h canvas, nudged 20 px up to leave
// room for the column labels.
func LayoutFor(w, h float64) Layout {
	return Layout{X: (w - BoardSize) / 2, Y: (h-BoardSize)/2 - 20}
}

// SquareAt maps canvas coordinates to a board square.
func (l Layout) SquareAt(x, y float64) (Square, bool) {
	rx, ry := x-l.X, y-l.Y
	if rx < 0 || ry < 0 || rx >= BoardSize || ry >= BoardSize {
		return Square{}, false
	}
	return Sq(int(ry/SquareSize), int(rx/SquareSize)), true
}

// Origin returns the top-left corner of s.
func (l Layout) Origin(s Square) (float64, float64) {
	return l.X + float64(s.Col)*SquareSize, l.Y + float64(s.Row)*SquareSize
}

// Center returns the centre of s.
func (l Layout) Center(s Square) (float64, float64) {
	x, y := l.Origin(s)
	return x + SquareSize/2, y + SquareSize/2
}
