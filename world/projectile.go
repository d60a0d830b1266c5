package world

import (
	"math"

	"example.com/arena/geom"

	"github.com/segmentio/ksuid"
)

// maxLaserGeneration caps splitting regardless of configuration.
const maxLaserGeneration = 1

type ProjectileKind int

const (
	KindPellet ProjectileKind = iota
	KindLaser
	KindBeam
)

func (k ProjectileKind) String() string {
	switch k {
	case KindPellet:
		return "pellet"
	case KindLaser:
		return "laser"
	case KindBeam:
		return "beam"
	}
	return "unknown"
}

// Replica projectiles are visual copies of a remote peer's volley. They obey
// motion and obstacle rules but never hit anything.

type Pellet struct {
	Owner    ksuid.KSUID
	Position geom.Vector
	Velocity geom.Vector
	Damage   int
	Lifespan int
	Replica  bool
	dead     bool
}

type LaserBolt struct {
	Owner      ksuid.KSUID
	Position   geom.Vector
	Velocity   geom.Vector
	Angle      float64
	Speed      float64
	Damage     int
	Generation int
	HasHit     bool
	Lifespan   int
	Replica    bool
	dead       bool
}

// Tail is the trailing end of the bolt's hit line.
func (b *LaserBolt) Tail(length float64) geom.Vector {
	return b.Position.Sub(geom.FromAngle(b.Angle, length))
}

func (b *LaserBolt) Dead() bool { return b.dead }

type BeamShot struct {
	Owner    ksuid.KSUID
	Position geom.Vector
	Velocity geom.Vector
	Angle    float64
	Width    float64
	Height   float64
	Damage   int
	MaxHits  int
	Lifespan int
	Replica  bool
	Struck   map[ksuid.KSUID]struct{}
	dead     bool
}

func (b *BeamShot) Dead() bool { return b.dead }

func (w *World) newLaserBolt(owner ksuid.KSUID, at geom.Vector, angle, speed float64, damage, generation int, replica bool) *LaserBolt {
	return &LaserBolt{
		Owner:      owner,
		Position:   at,
		Velocity:   geom.FromAngle(angle, speed),
		Angle:      angle,
		Speed:      speed,
		Damage:     damage,
		Generation: generation,
		Lifespan:   w.cfg.Projectile.LaserLifespan,
		Replica:    replica,
	}
}

// spawnVolley dispatches one shot of weapon from origin along angle.
func (w *World) spawnVolley(owner ksuid.KSUID, weapon Weapon, origin geom.Vector, angle float64, replica bool) {
	damage := weapon.Damage(w.cfg)
	if replica {
		damage = 0
	}

	switch weapon {
	case Shotgun:
		sg := w.cfg.Weapons.Shotgun
		for i := 0; i < sg.Pellets; i++ {
			a := angle + (w.rng.Float64()-0.5)*sg.Spread
			w.pellets = append(w.pellets, &Pellet{
				Owner:    owner,
				Position: origin,
				Velocity: geom.FromAngle(a, sg.Speed),
				Damage:   damage,
				Lifespan: w.cfg.Projectile.PelletLifespan,
				Replica:  replica,
			})
		}

	case Laser:
		w.lasers = append(w.lasers, w.newLaserBolt(owner, origin, angle, w.cfg.Weapons.Laser.Speed, damage, 0, replica))

	case Beam:
		bc := w.cfg.Weapons.Beam
		w.beams = append(w.beams, &BeamShot{
			Owner:    owner,
			Position: origin,
			Velocity: geom.FromAngle(angle, bc.Speed),
			Angle:    angle,
			Width:    bc.Width,
			Height:   bc.Height,
			Damage:   damage,
			MaxHits:  bc.MaxHits,
			Lifespan: w.cfg.Projectile.BeamLifespan,
			Replica:  replica,
			Struck:   make(map[ksuid.KSUID]struct{}),
		})
	}
}

func (w *World) updateProjectiles() {
	pellets := w.pellets[:0]
	for _, p := range w.pellets {
		w.updatePellet(p)
		if !p.dead {
			pellets = append(pellets, p)
		}
	}
	w.pellets = pellets

	lasers := w.lasers[:0]
	for _, b := range w.lasers {
		w.updateLaser(b)
		if !b.dead {
			lasers = append(lasers, b)
		}
	}
	// Split children join after the pass so they first move next tick.
	w.lasers = append(lasers, w.spawned...)
	w.spawned = w.spawned[:0]

	beams := w.beams[:0]
	for _, b := range w.beams {
		w.updateBeam(b)
		if !b.dead {
			beams = append(beams, b)
		}
	}
	w.beams = beams
}

func (w *World) updatePellet(p *Pellet) {
	p.Position = p.Position.Add(p.Velocity.Scale(w.dt))
	p.Lifespan--
	if p.Lifespan <= 0 || !w.inArena(p.Position) {
		p.dead = true
		return
	}

	radius := w.cfg.Projectile.PelletRadius
	if w.field.CircleOverlaps(p.Position, radius) {
		p.dead = true
		return
	}
	if p.Replica {
		return
	}

	for _, target := range w.targets(p.Owner) {
		if geom.CircleOverlap(p.Position, radius, target.Position, target.Radius) &&
			!w.field.LineBlocked(p.Position, target.Position) {
			w.Damage(target, p.Owner, p.Damage, Shotgun)
			p.dead = true
			return
		}
	}
}

func (w *World) updateLaser(b *LaserBolt) {
	W, H := w.cfg.Arena.Width, w.cfg.Arena.Height
	next := b.Position.Add(b.Velocity.Scale(w.dt))

	clamped := next
	hitWall := false
	// sideWall is a left or right edge; the vertical test wins on corners.
	sideWall := false
	if next.X > W {
		clamped.X, hitWall, sideWall = W, true, true
	} else if next.X < 0 {
		clamped.X, hitWall, sideWall = 0, true, true
	}
	if next.Y > H {
		clamped.Y, hitWall, sideWall = H, true, false
	} else if next.Y < 0 {
		clamped.Y, hitWall, sideWall = 0, true, false
	}

	if hitWall {
		b.dead = true
		reflect := -b.Angle
		if sideWall {
			reflect = math.Pi - b.Angle
		}
		w.splitLaser(b, clamped, reflect)
		return
	}

	b.Position = next
	b.Lifespan--
	if b.Lifespan <= 0 {
		b.dead = true
		return
	}

	if w.field.ContainsPoint(b.Position) {
		reflect := -b.Angle
		if math.Abs(b.Velocity.X) > math.Abs(b.Velocity.Y) {
			reflect = math.Pi - b.Angle
		}
		w.splitLaser(b, b.Position, reflect)
		b.dead = true
		return
	}
	if b.Replica || b.HasHit {
		return
	}

	pr := w.cfg.Projectile
	tail := b.Tail(pr.LaserTail)
	for _, target := range w.targets(b.Owner) {
		if geom.SegmentVsCircle(tail, b.Position, target.Position, target.Radius+pr.LaserRadius) &&
			!w.field.LineBlocked(b.Position, target.Position) {
			b.HasHit = true
			w.Damage(target, b.Owner, b.Damage, Laser)
			b.dead = true
			return
		}
	}
}

// splitLaser queues three children of b at the reflected angle and at the
// reflected angle plus and minus the split spread. Bolts already at the
// generation cap produce nothing.
func (w *World) splitLaser(b *LaserBolt, at geom.Vector, reflect float64) {
	if b.Generation >= min(w.cfg.Weapons.Laser.MaxGenerations, maxLaserGeneration) {
		return
	}
	spread := w.cfg.Projectile.LaserSpread
	for _, da := range []float64{0, spread, -spread} {
		w.spawned = append(w.spawned, w.newLaserBolt(b.Owner, at, reflect+da, b.Speed, b.Damage, b.Generation+1, b.Replica))
	}
}

func (w *World) updateBeam(b *BeamShot) {
	b.Position = b.Position.Add(b.Velocity.Scale(w.dt))
	b.Lifespan--

	// Beams are culled only once they are a full arena plus one beam size out.
	sw, sh := w.cfg.Arena.Width+b.Width, w.cfg.Arena.Height+b.Height
	p := b.Position
	if b.Lifespan <= 0 || p.X < -sw || p.X > sw || p.Y < -sh || p.Y > sh {
		b.dead = true
		return
	}
	if w.field.ContainsPoint(p) {
		b.dead = true
		return
	}
	if b.Replica {
		return
	}

	for _, target := range w.targets(b.Owner) {
		if len(b.Struck) >= b.MaxHits {
			b.dead = true
			return
		}
		if _, ok := b.Struck[target.ID]; ok {
			continue
		}
		if !geom.OBBVsCircle(p, b.Angle, b.Width/2, b.Height/2, target.Position, target.Radius) {
			continue
		}
		b.Struck[target.ID] = struct{}{}
		w.Damage(target, b.Owner, b.Damage, Beam)
		if len(b.Struck) >= b.MaxHits {
			b.dead = true
			return
		}
	}
}
