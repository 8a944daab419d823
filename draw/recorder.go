package draw

import (
	"image/color"
	"slices"
)

// Kind names a drawing intent.
type Kind string

const (
	KindFillRect     Kind = "fillRect"
	KindStrokeRect   Kind = "strokeRect"
	KindFillCircle   Kind = "fillCircle"
	KindStrokeCircle Kind = "strokeCircle"
	KindLine         Kind = "line"
	KindText         Kind = "text"
)

// Op is one recorded drawing intent. Circles store the centre in X/Y and the
// radius in W; lines store the end point in W/H.
type Op struct {
	Kind  Kind
	X, Y  float64
	W, H  float64
	Width float64
	Text  string
	Color color.Color
}

// Recorder is a Surface that keeps every intent it receives.
type Recorder struct {
	Width, Height float64
	Ops           []Op
}

// NewRecorder creates a recorder reporting the given size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (float64, float64) {
	return r.Width, r.Height
}

func (r *Recorder) FillRect(x, y, w, h float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) StrokeRect(x, y, w, h, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindStrokeRect, X: x, Y: y, W: w, H: h, Width: width, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindFillCircle, X: cx, Y: cy, W: radius, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, radius, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindStrokeCircle, X: cx, Y: cy, W: radius, Width: width, Color: c})
}

func (r *Recorder) Line(x1, y1, x2, y2, width float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindLine, X: x1, Y: y1, W: x2, H: y2, Width: width, Color: c})
}

func (r *Recorder) Text(s string, x, y float64, c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: KindText, X: x, Y: y, Text: s, Color: c})
}

// Count returns how many intents of kind k were recorded.
func (r *Recorder) Count(k Kind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

// Texts returns the recorded text strings in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == KindText {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether s was drawn as text.
func (r *Recorder) HasText(s string) bool {
	return slices.Contains(r.Texts(), s)
}

// Reset drops all recorded intents.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}
