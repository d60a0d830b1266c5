package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestCircleOverlap(t *testing.T) {
	assert.True(t, CircleOverlap(V(0, 0), 5, V(9, 0), 5))
	assert.False(t, CircleOverlap(V(0, 0), 5, V(10, 0), 5), "touching circles do not overlap")
	assert.False(t, CircleOverlap(V(0, 0), 1, V(3, 3), 1))
}

func TestCircleVsRect(t *testing.T) {
	rect := Rect{X: 10, Y: 10, W: 20, H: 10}

	assert.True(t, CircleVsRect(V(15, 15), 1, rect), "center inside")
	assert.True(t, CircleVsRect(V(5, 15), 6, rect))
	assert.False(t, CircleVsRect(V(5, 15), 5, rect))
	assert.False(t, CircleVsRect(V(0, 0), 10, rect), "corner distance is sqrt(200)")
	assert.True(t, CircleVsRect(V(0, 0), 14.2, rect))
}

func TestOBBVsCircle(t *testing.T) {
	// 240x80 beam travelling along +x.
	assert.True(t, OBBVsCircle(V(0, 0), 0, 120, 40, V(130, 0), 22))
	assert.False(t, OBBVsCircle(V(0, 0), 0, 120, 40, V(143, 0), 22))
	assert.True(t, OBBVsCircle(V(0, 0), 0, 120, 40, V(0, 60), 22))
	assert.False(t, OBBVsCircle(V(0, 0), 0, 120, 40, V(0, 63), 22))

	// Rotated a quarter turn the long axis points along y.
	assert.True(t, OBBVsCircle(V(0, 0), math.Pi/2, 120, 40, V(0, 130), 22))
	assert.False(t, OBBVsCircle(V(0, 0), math.Pi/2, 120, 40, V(130, 0), 22))
}

func TestSegmentVsCircle(t *testing.T) {
	assert.True(t, SegmentVsCircle(V(0, 0), V(100, 0), V(50, 10), 11))
	assert.False(t, SegmentVsCircle(V(0, 0), V(100, 0), V(50, 10), 10))
	assert.False(t, SegmentVsCircle(V(0, 0), V(100, 0), V(120, 0), 10), "beyond the head")
	assert.True(t, SegmentVsCircle(V(5, 5), V(5, 5), V(6, 5), 2), "degenerate segment")
}

func TestSegmentBlockedByRect(t *testing.T) {
	rect := Rect{X: 40, Y: 40, W: 20, H: 20}

	tests := []struct {
		name   string
		p1, p2 Vector
		want   bool
	}{
		{"straight through", V(0, 50), V(100, 50), true},
		{"passes above", V(0, 30), V(100, 30), false},
		{"stops short", V(0, 50), V(39, 50), false},
		{"starts inside", V(50, 50), V(200, 200), true},
		{"diagonal miss", V(0, 100), V(100, 61), false},
		{"diagonal hit", V(0, 0), V(100, 100), true},
		{"vertical outside", V(30, 0), V(30, 100), false},
		{"grazes edge", V(0, 40), V(100, 40), true},
		{"point inside", V(45, 45), V(45, 45), true},
		{"point outside", V(5, 5), V(5, 5), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentBlockedByRect(tt.p1, tt.p2, rect))
		})
	}
}

func TestSegmentBlockedByRectEndpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rect := Rect{
			X: rapid.Float64Range(-100, 100).Draw(t, "x"),
			Y: rapid.Float64Range(-100, 100).Draw(t, "y"),
			W: rapid.Float64Range(1, 80).Draw(t, "w"),
			H: rapid.Float64Range(1, 80).Draw(t, "h"),
		}
		a := V(rapid.Float64Range(-200, 200).Draw(t, "ax"), rapid.Float64Range(-200, 200).Draw(t, "ay"))
		b := V(rapid.Float64Range(-200, 200).Draw(t, "bx"), rapid.Float64Range(-200, 200).Draw(t, "by"))

		if rect.Contains(a) && !SegmentBlockedByRect(a, b, rect) {
			t.Fatalf("segment starting inside %+v was not blocked", rect)
		}
		if rect.Contains(b) && !SegmentBlockedByRect(a, b, rect) {
			t.Fatalf("segment ending inside %+v was not blocked", rect)
		}
		if a.X < rect.MinX() && b.X < rect.MinX() && SegmentBlockedByRect(a, b, rect) {
			t.Fatalf("segment left of %+v was blocked", rect)
		}
	})
}

func TestRotateAboutIsInvolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := Rect{
			X: rapid.Float64Range(0, 400).Draw(t, "x"),
			Y: rapid.Float64Range(0, 800).Draw(t, "y"),
			W: rapid.Float64Range(1, 200).Draw(t, "w"),
			H: rapid.Float64Range(1, 200).Draw(t, "h"),
		}
		center := V(240, 427)
		back := r.RotateAbout(center).RotateAbout(center)
		if math.Abs(back.X-r.X) > 1e-9 || math.Abs(back.Y-r.Y) > 1e-9 {
			t.Fatalf("rotating twice moved %+v to %+v", r, back)
		}
	})
}
