package geom

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) MinX() float64 { return r.X }
func (r Rect) MinY() float64 { return r.Y }
func (r Rect) MaxX() float64 { return r.X + r.W }
func (r Rect) MaxY() float64 { return r.Y + r.H }

func (r Rect) Center() Vector {
	return Vector{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vector) bool {
	return p.X >= r.X && p.X <= r.MaxX() && p.Y >= r.Y && p.Y <= r.MaxY()
}

// Clamp returns the point of r closest to p.
func (r Rect) Clamp(p Vector) Vector {
	return Vector{
		X: clamp(p.X, r.X, r.MaxX()),
		Y: clamp(p.Y, r.Y, r.MaxY()),
	}
}

// RotateAbout returns r rotated by 180 degrees about center.
func (r Rect) RotateAbout(center Vector) Rect {
	return Rect{
		X: 2*center.X - r.X - r.W,
		Y: 2*center.Y - r.Y - r.H,
		W: r.W,
		H: r.H,
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
