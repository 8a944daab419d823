package geom_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/plus3/arcade/geom"
	"github.com/stretchr/testify/assert"
)

func TestRectsOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b geom.Rect
		want bool
	}{
		{"same", geom.Rect{0, 0, 10, 10}, geom.Rect{0, 0, 10, 10}, true},
		{"partial", geom.Rect{0, 0, 10, 10}, geom.Rect{5, 5, 10, 10}, true},
		{"contained", geom.Rect{0, 0, 10, 10}, geom.Rect{2, 2, 1, 1}, true},
		{"touching edge", geom.Rect{0, 0, 10, 10}, geom.Rect{10, 0, 10, 10}, false},
		{"apart", geom.Rect{0, 0, 10, 10}, geom.Rect{30, 30, 5, 5}, false},
		{"above", geom.Rect{0, 0, 10, 10}, geom.Rect{0, -20, 10, 10}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
			assert.Equal(t, tt.want, geom.RectsOverlap(tt.a.X, tt.a.Y, tt.a.W, tt.a.H, tt.b.X, tt.b.Y, tt.b.W, tt.b.H))
		})
	}
}

func TestCirclesOverlap(t *testing.T) {
	assert.True(t, geom.CirclesOverlap(0, 0, 5, 6, 0, 2))
	assert.False(t, geom.CirclesOverlap(0, 0, 5, 7, 0, 2), "touching circles do not overlap")
	assert.False(t, geom.CirclesOverlap(1, 1, 0, 1, 1, 0), "zero radii never overlap")
	assert.True(t, geom.CirclesOverlap(0, 0, 0, 0.5, 0, 1))
}

func TestCirclesOverlapMatchesDistance(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 10000; i++ {
		x1, y1 := rng.Float64()*2000-1000, rng.Float64()*2000-1000
		x2, y2 := rng.Float64()*2000-1000, rng.Float64()*2000-1000
		r1, r2 := rng.Float64()*300, rng.Float64()*300
		if i%10 == 0 {
			r1 = 0
		}

		want := math.Sqrt((x2-x1)*(x2-x1)+(y2-y1)*(y2-y1)) < r1+r2
		if math.Abs(math.Sqrt((x2-x1)*(x2-x1)+(y2-y1)*(y2-y1))-(r1+r2)) < 1e-9 {
			continue
		}
		assert.Equal(t, want, geom.CirclesOverlap(x1, y1, r1, x2, y2, r2))
	}
}

func TestNormalize(t *testing.T) {
	x, y := geom.Normalize(3, 4)
	assert.InDelta(t, 0.6, x, 1e-12)
	assert.InDelta(t, 0.8, y, 1e-12)

	x, y = geom.Normalize(0, 0)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5.0, geom.Clamp(5, 0, 10))
	assert.Equal(t, 0.0, geom.Clamp(-1, 0, 10))
	assert.Equal(t, 10.0, geom.Clamp(11, 0, 10))
}
