package world

import (
	"example.com/arena/geom"

	"github.com/segmentio/ksuid"
)

type ActorView struct {
	ID            ksuid.KSUID
	Name          string
	Position      geom.Vector
	Radius        float64
	Health        int
	MaxHealth     int
	Weapon        Weapon
	CooldownRatio float64
	Frozen        bool
}

type ProjectileView struct {
	Kind       ProjectileKind
	Owner      ksuid.KSUID
	Position   geom.Vector
	Angle      float64
	Radius     float64
	Tail       geom.Vector
	Width      float64
	Height     float64
	Generation int
	Replica    bool
}

// Snapshot is the per-tick state presentation reads.
type Snapshot struct {
	Tick        int64
	Actors      []ActorView
	Projectiles []ProjectileView
	Obstacles   []geom.Rect
	Freeze      int
}

func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Tick:        w.tick,
		Actors:      make([]ActorView, 0, len(w.actors)),
		Projectiles: make([]ProjectileView, 0, w.ProjectileCount()),
		Obstacles:   w.field.Rects(),
		Freeze:      w.hitStop.Remaining(),
	}
	for _, a := range w.actors {
		s.Actors = append(s.Actors, ActorView{
			ID:            a.ID,
			Name:          a.Name,
			Position:      a.Position,
			Radius:        a.Radius,
			Health:        a.Health,
			MaxHealth:     a.MaxHealth,
			Weapon:        a.Weapon,
			CooldownRatio: a.CooldownRatio(w.cfg),
			Frozen:        w.hitStop.Frozen(a.ID),
		})
	}

	pr := w.cfg.Projectile
	for _, p := range w.pellets {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			Kind:     KindPellet,
			Owner:    p.Owner,
			Position: p.Position,
			Angle:    p.Velocity.Angle(),
			Radius:   pr.PelletRadius,
			Replica:  p.Replica,
		})
	}
	for _, b := range w.lasers {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			Kind:       KindLaser,
			Owner:      b.Owner,
			Position:   b.Position,
			Angle:      b.Angle,
			Radius:     pr.LaserRadius,
			Tail:       b.Tail(pr.LaserTail),
			Generation: b.Generation,
			Replica:    b.Replica,
		})
	}
	for _, b := range w.beams {
		s.Projectiles = append(s.Projectiles, ProjectileView{
			Kind:     KindBeam,
			Owner:    b.Owner,
			Position: b.Position,
			Angle:    b.Angle,
			Width:    b.Width,
			Height:   b.Height,
			Replica:  b.Replica,
		})
	}
	return s
}
