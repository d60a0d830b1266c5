package geom

import "math"

type Vector struct {
	X, Y float64
}

func V(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

// FromAngle returns the vector of the given length pointing along angle.
func FromAngle(angle, length float64) Vector {
	return Vector{
		X: math.Cos(angle) * length,
		Y: math.Sin(angle) * length,
	}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vector) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vector) Len() float64 {
	return math.Sqrt(v.LenSq())
}

func (v Vector) Dist(o Vector) float64 {
	return v.Sub(o).Len()
}

// Angle is the direction of v in radians, as atan2(y, x).
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Normalize returns the unit vector of v, or the zero vector when v is
// shorter than minLen.
func (v Vector) Normalize(minLen float64) Vector {
	l := v.Len()
	if l <= minLen {
		return Vector{}
	}
	return Vector{X: v.X / l, Y: v.Y / l}
}

func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0
}
