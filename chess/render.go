package chess

import (
	"fmt"
	"image/color"

	"github.com/plus3/arcade/draw"
)

var (
	lightSquare = draw.Hex("#F0D9B5")
	darkSquare  = draw.Hex("#B58863")
	squareEdge  = draw.Hex("#8B4513")
	terminal    = draw.Hex("#00ff41")
	alert       = draw.Hex("#ff4444")
	highlight   = draw.Hex("#4CAF50")
	whiteFill   = draw.Hex("#ffffff")
	blackFill   = draw.Hex("#1a1a1a")
	background  = draw.Hex("#121827")
)

// Draw renders the session onto surface, centring the board on it.
func (s *Session) Draw(surface draw.Surface) {
	w, h := surface.Size()
	s.layout = LayoutFor(w, h)
	l := s.layout

	surface.FillRect(0, 0, w, h, background)
	s.drawBoard(surface, l)
	s.drawPieces(surface, l)
	if s.hasSelected {
		x, y := l.Origin(s.selected)
		surface.FillRect(x, y, SquareSize, SquareSize, draw.Fade(highlight, 0.3))
		s.drawHints(surface, l)
	}
	s.drawStatus(surface, l)
	if s.game.IsOver() {
		s.drawGameOver(surface, w, h)
	}
}

func (s *Session) drawBoard(surface draw.Surface, l Layout) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			x, y := l.Origin(Sq(row, col))
			fill := darkSquare
			if (row+col)%2 == 0 {
				fill = lightSquare
			}
			surface.FillRect(x, y, SquareSize, SquareSize, fill)
			surface.StrokeRect(x, y, SquareSize, SquareSize, 1, squareEdge)
		}
	}

	for i := 0; i < 8; i++ {
		x, _ := l.Center(Sq(0, i))
		draw.CenteredText(surface, string(rune('a'+i)), x, l.Y+BoardSize+12, terminal)
		_, y := l.Center(Sq(i, 0))
		surface.Text(fmt.Sprint(8-i), l.X-20, y-8, terminal)
	}
}

func (s *Session) drawPieces(surface draw.Surface, l Layout) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := s.game.At(Sq(row, col))
			if p.IsEmpty() {
				continue
			}
			cx, cy := l.Center(Sq(row, col))
			fill, ink := color.Color(whiteFill), color.Color(blackFill)
			if p.Color == Black {
				fill, ink = blackFill, whiteFill
			}
			surface.FillCircle(cx, cy, SquareSize*0.35, fill)
			surface.StrokeCircle(cx, cy, SquareSize*0.35, 2, ink)
			draw.CenteredText(surface, p.Letter(), cx, cy-8, ink)
		}
	}
}

func (s *Session) drawHints(surface draw.Surface, l Layout) {
	for _, to := range s.game.MovesFrom(s.selected) {
		cx, cy := l.Center(to)
		if s.game.At(to).IsEmpty() {
			surface.FillCircle(cx, cy, 8, draw.Fade(highlight, 0.7))
		} else {
			surface.StrokeCircle(cx, cy, 25, 3, draw.Fade(alert, 0.7))
		}
	}
}

func (s *Session) drawStatus(surface draw.Surface, l Layout) {
	y := l.Y - 40
	surface.Text("Turn: "+s.game.Turn().Title(), l.X, y, terminal)
	if s.game.Status() == Check {
		surface.Text("CHECK!", l.X+150, y, alert)
	}
	if s.pending != nil {
		surface.Text("thinking...", l.X+230, y, terminal)
	}
	moves := fmt.Sprintf("Move: %d  %s", s.game.MoveCount(), FormatClock(s.elapsed))
	surface.Text(moves, l.X+BoardSize-float64(len(moves))*draw.CharWidth, y, terminal)

	r := s.record
	summary := fmt.Sprintf("Games %d  W %d  L %d  D %d", r.GamesPlayed, r.Wins, r.Losses, r.Draws)
	if r.BestTime != nil {
		summary += "  Best " + FormatClock(float64(*r.BestTime))
	}
	surface.Text(summary, l.X, l.Y+BoardSize+30, terminal)
}

func (s *Session) drawGameOver(surface draw.Surface, w, h float64) {
	surface.FillRect(0, 0, w, h, draw.Fade(color.RGBA{A: 0xff}, 0.8))
	draw.CenteredText(surface, "GAME OVER", w/2, h/2-40, terminal)
	draw.CenteredText(surface, s.game.Result(), w/2, h/2, terminal)
	draw.CenteredText(surface, "Press R to restart or ESC to exit", w/2, h/2+40, terminal)
}

// FormatClock renders seconds as mm:ss.
func FormatClock(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
