// Package geom holds the overlap tests and small vector helpers shared by the
// games.
package geom

import "math"

// Rect is an axis-aligned rectangle with its origin at the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and o share any interior area. Touching edges do
// not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W &&
		r.X+r.W > o.X &&
		r.Y < o.Y+o.H &&
		r.Y+r.H > o.Y
}

// RectsOverlap is Rect.Overlaps in argument form.
func RectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return Rect{x1, y1, w1, h1}.Overlaps(Rect{x2, y2, w2, h2})
}

// CirclesOverlap reports whether the distance between the centres is
// strictly less than r1+r2.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	return Distance(x1, y1, x2, y2) < r1+r2
}

// Distance is the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1)
}

// Normalize scales (x, y) to unit length. The zero vector stays zero.
func Normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
