// Package ebitendraw renders draw intents onto an ebiten image.
package ebitendraw

import (
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/arcade/draw"
)

// Surface adapts an *ebiten.Image to draw.Surface. Text uses ebiten's debug
// font, printed white onto a scratch image and tinted on the way out.
type Surface struct {
	Image     *ebiten.Image
	Antialias bool

	scratch *ebiten.Image
}

// Debug font cell size.
const (
	glyphWidth  = 6
	glyphHeight = 16
)

var _ draw.Surface = (*Surface)(nil)

// New wraps img.
func New(img *ebiten.Image) *Surface {
	return &Surface{Image: img, Antialias: true}
}

func (s *Surface) Size() (float64, float64) {
	b := s.Image.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.Image, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *Surface) StrokeRect(x, y, w, h, width float64, c color.Color) {
	vector.StrokeRect(s.Image, float32(x), float32(y), float32(w), float32(h), float32(width), c, false)
}

func (s *Surface) FillCircle(cx, cy, r float64, c color.Color) {
	vector.DrawFilledCircle(s.Image, float32(cx), float32(cy), float32(r), c, s.Antialias)
}

func (s *Surface) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	vector.StrokeCircle(s.Image, float32(cx), float32(cy), float32(r), float32(width), c, s.Antialias)
}

func (s *Surface) Line(x1, y1, x2, y2, width float64, c color.Color) {
	vector.StrokeLine(s.Image, float32(x1), float32(y1), float32(x2), float32(y2), float32(width), c, s.Antialias)
}

func (s *Surface) Text(str string, x, y float64, c color.Color) {
	w, h := textSize(str)
	if w == 0 || h == 0 {
		return
	}
	if s.scratch == nil || s.scratch.Bounds().Dx() < w || s.scratch.Bounds().Dy() < h {
		if s.scratch != nil {
			s.scratch.Deallocate()
		}
		sb := s.Image.Bounds()
		s.scratch = ebiten.NewImage(max(w, sb.Dx()), max(h, glyphHeight))
	}
	s.scratch.Clear()
	ebitenutil.DebugPrintAt(s.scratch, str, 0, 0)

	src := s.scratch.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	s.Image.DrawImage(src, textOptions(x, y, c))
}

// textSize is the pixel extent of str in the debug font.
func textSize(str string) (int, int) {
	if str == "" {
		return 0, 0
	}
	lines := strings.Split(str, "\n")
	cols := 0
	for _, l := range lines {
		cols = max(cols, utf8.RuneCountInString(l))
	}
	return cols * glyphWidth, len(lines) * glyphHeight
}

func textOptions(x, y float64, c color.Color) *ebiten.DrawImageOptions {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(int(x)), float64(int(y)))
	op.ColorScale.ScaleWithColor(c)
	return op
}
