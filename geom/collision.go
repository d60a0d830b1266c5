package geom

import "math"

func CircleOverlap(c1 Vector, r1 float64, c2 Vector, r2 float64) bool {
	rr := r1 + r2
	return c1.Sub(c2).LenSq() < rr*rr
}

// CircleVsRect clamps the circle center onto rect and compares the squared
// distance to r².
func CircleVsRect(c Vector, r float64, rect Rect) bool {
	return c.Sub(rect.Clamp(c)).LenSq() < r*r
}

// OBBVsCircle tests a rectangle centered on center and rotated to angle
// against a circle. The circle center is moved into the rectangle's local
// frame and the clamped distance to the half extents is compared to r².
func OBBVsCircle(center Vector, angle, halfW, halfH float64, c Vector, r float64) bool {
	d := c.Sub(center)
	cos, sin := math.Cos(angle), math.Sin(angle)

	lx := math.Abs(d.X*cos + d.Y*sin)
	ly := math.Abs(-d.X*sin + d.Y*cos)

	nx := math.Max(0, lx-halfW)
	ny := math.Max(0, ly-halfH)
	return nx*nx+ny*ny < r*r
}

// SegmentVsCircle reports whether the segment a→b passes within r of c.
func SegmentVsCircle(a, b, c Vector, r float64) bool {
	d := b.Sub(a)
	lenSq := d.LenSq()
	closest := a
	if lenSq > 0 {
		t := clamp(c.Sub(a).Dot(d)/lenSq, 0, 1)
		closest = a.Add(d.Scale(t))
	}
	return c.Sub(closest).LenSq() < r*r
}

// SegmentBlockedByRect clips the segment p1→p2 against rect (Liang–Barsky)
// and reports whether any parametric t in [0, 1] lies inside it.
func SegmentBlockedByRect(p1, p2 Vector, rect Rect) bool {
	d := p2.Sub(p1)
	p := [4]float64{-d.X, d.X, -d.Y, d.Y}
	q := [4]float64{
		p1.X - rect.MinX(),
		rect.MaxX() - p1.X,
		p1.Y - rect.MinY(),
		rect.MaxY() - p1.Y,
	}

	t0, t1 := 0.0, 1.0
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			t0 = math.Max(t0, t)
		} else {
			t1 = math.Min(t1, t)
		}
		if t0 > t1 {
			return false
		}
	}
	return true
}
