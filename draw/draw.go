// Package draw defines the drawing-intent surface the games render to.
package draw

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Surface consumes drawing intents for one frame. Coordinates are in pixels
// with the origin at the top-left corner.
type Surface interface {
	Size() (w, h float64)
	FillRect(x, y, w, h float64, c color.Color)
	StrokeRect(x, y, w, h, width float64, c color.Color)
	FillCircle(cx, cy, r float64, c color.Color)
	StrokeCircle(cx, cy, r, width float64, c color.Color)
	Line(x1, y1, x2, y2, width float64, c color.Color)
	Text(s string, x, y float64, c color.Color)
}

// Hex parses "#rrggbb" or "#rgb". Malformed input yields opaque black.
func Hex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if len(s) != 6 || err != nil {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Fade scales c by alpha in [0, 1]. color.RGBA is premultiplied so every
// channel is scaled.
func Fade(c color.RGBA, alpha float64) color.RGBA {
	alpha = max(0, min(alpha, 1))
	return color.RGBA{
		R: uint8(float64(c.R) * alpha),
		G: uint8(float64(c.G) * alpha),
		B: uint8(float64(c.B) * alpha),
		A: uint8(float64(c.A) * alpha),
	}
}

var printer = message.NewPrinter(language.English)

// Number formats n with thousands separators for HUD text.
func Number(n int) string {
	return printer.Sprintf("%d", n)
}

// CenteredText draws s horizontally centred on cx, assuming the fixed-width
// debug font of the host.
func CenteredText(s Surface, text string, cx, y float64, c color.Color) {
	s.Text(text, cx-float64(len(text))*CharWidth/2, y, c)
}

// CharWidth is the advance of one glyph of the host's debug font.
const CharWidth = 6

type offset struct {
	Surface
	dx, dy float64
}

// Offset returns a Surface that translates every intent by (dx, dy) before
// forwarding it to s. Camera transforms use it.
func Offset(s Surface, dx, dy float64) Surface {
	return offset{Surface: s, dx: dx, dy: dy}
}

func (o offset) FillRect(x, y, w, h float64, c color.Color) {
	o.Surface.FillRect(x+o.dx, y+o.dy, w, h, c)
}

func (o offset) StrokeRect(x, y, w, h, width float64, c color.Color) {
	o.Surface.StrokeRect(x+o.dx, y+o.dy, w, h, width, c)
}

func (o offset) FillCircle(cx, cy, r float64, c color.Color) {
	o.Surface.FillCircle(cx+o.dx, cy+o.dy, r, c)
}

func (o offset) StrokeCircle(cx, cy, r, width float64, c color.Color) {
	o.Surface.StrokeCircle(cx+o.dx, cy+o.dy, r, width, c)
}

func (o offset) Line(x1, y1, x2, y2, width float64, c color.Color) {
	o.Surface.Line(x1+o.dx, y1+o.dy, x2+o.dx, y2+o.dy, width, c)
}

func (o offset) Text(s string, x, y float64, c color.Color) {
	o.Surface.Text(s, x+o.dx, y+o.dy, c)
}
