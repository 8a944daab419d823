package draw_test

import (
	"image/color"
	"testing"

	"github.com/plus3/arcade/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.RGBA
	}{
		{"#00ff88", color.RGBA{0x00, 0xff, 0x88, 0xff}},
		{"ff0000", color.RGBA{0xff, 0, 0, 0xff}},
		{"#fff", color.RGBA{0xff, 0xff, 0xff, 0xff}},
		{"#zzzzzz", color.RGBA{A: 0xff}},
		{"#12345", color.RGBA{A: 0xff}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, draw.Hex(tt.in))
		})
	}
}

func TestFade(t *testing.T) {
	c := color.RGBA{200, 100, 50, 255}

	assert.Equal(t, c, draw.Fade(c, 1))
	assert.Equal(t, color.RGBA{}, draw.Fade(c, 0))
	assert.Equal(t, color.RGBA{100, 50, 25, 127}, draw.Fade(c, 0.5))
	assert.Equal(t, c, draw.Fade(c, 3), "alpha is clamped")
}

func TestNumber(t *testing.T) {
	assert.Equal(t, "0", draw.Number(0))
	assert.Equal(t, "999", draw.Number(999))
	assert.Equal(t, "12,345", draw.Number(12345))
	assert.Equal(t, "1,000,000", draw.Number(1000000))
}

func TestOffset(t *testing.T) {
	rec := draw.NewRecorder(100, 50)
	s := draw.Offset(rec, -10, 5)

	w, h := s.Size()
	assert.Equal(t, 100.0, w)
	assert.Equal(t, 50.0, h)

	s.FillRect(10, 10, 4, 4, color.White)
	s.Line(0, 0, 10, 10, 1, color.White)
	s.Text("hi", 20, 0, color.White)

	require.Len(t, rec.Ops, 3)
	assert.Equal(t, draw.Op{Kind: draw.KindFillRect, X: 0, Y: 15, W: 4, H: 4, Color: color.White}, rec.Ops[0])
	assert.Equal(t, draw.Op{Kind: draw.KindLine, X: -10, Y: 5, W: 0, H: 15, Width: 1, Color: color.White}, rec.Ops[1])
	assert.Equal(t, 10.0, rec.Ops[2].X)
	assert.True(t, rec.HasText("hi"))
}

func TestRecorderCounts(t *testing.T) {
	rec := draw.NewRecorder(10, 10)
	rec.FillCircle(1, 1, 1, color.Black)
	rec.FillCircle(2, 2, 1, color.Black)
	rec.StrokeCircle(2, 2, 1, 1, color.Black)

	assert.Equal(t, 2, rec.Count(draw.KindFillCircle))
	assert.Equal(t, 1, rec.Count(draw.KindStrokeCircle))
	assert.Empty(t, rec.Texts())

	rec.Reset()
	assert.Empty(t, rec.Ops)
}
