package world

import (
	"math"

	"example.com/arena/config"
	"example.com/arena/geom"
)

// GenerateObstacles returns four rectangles laid out with 180 degree
// rotational symmetry about the arena center, ordered upper-left,
// upper-right, lower-left, lower-right. A and D mirror each other, as do B
// and C.
func GenerateObstacles(cfg config.Config, rng Rand) []geom.Rect {
	o := cfg.Obstacles
	W, H := cfg.Arena.Width, cfg.Arena.Height

	long := func() float64 { return float64(o.LongMin) + math.Floor(rng.Float64()*float64(o.LongSpan)) }
	short := func() float64 { return float64(o.ShortMin) + math.Floor(rng.Float64()*float64(o.ShortSpan)) }

	var w, h float64
	if rng.Float64() < o.HorizontalBias {
		w = long()
		h = short()
	} else {
		w = short()
		h = long()
	}

	maxX := W/2 - w - o.CenterGapX
	maxY := H/2 - h - o.CenterGapY
	bx := o.MarginX + math.Floor(rng.Float64()*(maxX-o.MarginX))
	by := o.MarginY + math.Floor(rng.Float64()*(maxY-o.MarginY))

	mx := W - bx - w
	my := H - by - h
	return []geom.Rect{
		{X: bx, Y: by, W: w, H: h},
		{X: mx, Y: by, W: w, H: h},
		{X: bx, Y: my, W: w, H: h},
		{X: mx, Y: my, W: w, H: h},
	}
}

// Field is the immutable obstacle set of one match.
type Field struct {
	rects []geom.Rect
}

func NewField(rects []geom.Rect) *Field {
	return &Field{rects: append([]geom.Rect(nil), rects...)}
}

func (f *Field) Rects() []geom.Rect {
	return append([]geom.Rect(nil), f.rects...)
}

func (f *Field) Len() int {
	return len(f.rects)
}

func (f *Field) ContainsPoint(p geom.Vector) bool {
	for _, r := range f.rects {
		if r.Contains(p) {
			return true
		}
	}
	return false
}

func (f *Field) CircleOverlaps(c geom.Vector, radius float64) bool {
	for _, r := range f.rects {
		if geom.CircleVsRect(c, radius, r) {
			return true
		}
	}
	return false
}

// LineBlocked reports whether any obstacle crosses the segment p1→p2.
func (f *Field) LineBlocked(p1, p2 geom.Vector) bool {
	for _, r := range f.rects {
		if geom.SegmentBlockedByRect(p1, p2, r) {
			return true
		}
	}
	return false
}

// Nearest returns the obstacle whose center is closest to p.
func (f *Field) Nearest(p geom.Vector) (geom.Rect, bool) {
	var best geom.Rect
	bestDist := math.Inf(1)
	for _, r := range f.rects {
		if d := r.Center().Dist(p); d < bestDist {
			best, bestDist = r, d
		}
	}
	return best, len(f.rects) > 0
}
