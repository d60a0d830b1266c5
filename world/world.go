package world

import (
	"time"

	"example.com/arena/config"
	"example.com/arena/geom"
	"example.com/arena/logging"
	"example.com/arena/utils"

	"github.com/segmentio/ksuid"
)

type World struct {
	cfg     config.Config
	dt      float64
	rng     Rand
	field   *Field
	hitStop *HitStop

	actors []*Actor
	byID   map[ksuid.KSUID]*Actor

	pellets []*Pellet
	lasers  []*LaserBolt
	beams   []*BeamShot
	spawned []*LaserBolt

	events []Event
	tick   int64
}

func NewWorld(cfg config.Config, field *Field, rng Rand) *World {
	if field == nil {
		field = NewField(nil)
	}
	return &World{
		cfg:     cfg,
		dt:      cfg.Step(),
		rng:     rng,
		field:   field,
		hitStop: NewHitStop(),
		byID:    make(map[ksuid.KSUID]*Actor),
	}
}

func (w *World) Config() config.Config { return w.cfg }
func (w *World) Field() *Field         { return w.field }
func (w *World) HitStop() *HitStop     { return w.hitStop }
func (w *World) Tick() int64           { return w.tick }

func (w *World) AddActor(a *Actor) {
	if _, ok := w.byID[a.ID]; ok {
		logging.Fatal("actor already exists", "actor", a.ID)
		return
	}
	w.actors = append(w.actors, a)
	w.byID[a.ID] = a
}

func (w *World) Actor(ID ksuid.KSUID) *Actor {
	return w.byID[ID]
}

func (w *World) ForEachActor(callback func(*Actor)) {
	for _, a := range w.actors {
		callback(a)
	}
}

// Opponent returns the first actor other than a.
func (w *World) Opponent(a *Actor) *Actor {
	for _, other := range w.actors {
		if other.ID != a.ID {
			return other
		}
	}
	return nil
}

func (w *World) targets(owner ksuid.KSUID) []*Actor {
	targets := make([]*Actor, 0, len(w.actors))
	for _, a := range w.actors {
		if a.ID != owner && a.Alive() {
			targets = append(targets, a)
		}
	}
	return targets
}

func (w *World) Pellets() []*Pellet   { return w.pellets }
func (w *World) Lasers() []*LaserBolt { return w.lasers }
func (w *World) Beams() []*BeamShot   { return w.beams }
func (w *World) ProjectileCount() int { return len(w.pellets) + len(w.lasers) + len(w.beams) }

func (w *World) inArena(p geom.Vector) bool {
	return p.X >= 0 && p.X <= w.cfg.Arena.Width && p.Y >= 0 && p.Y <= w.cfg.Arena.Height
}

func (w *World) emit(e Event) {
	e.Tick = w.tick
	w.events = append(w.events, e)
}

// DrainEvents returns the events emitted since the last call.
func (w *World) DrainEvents() []Event {
	events := w.events
	w.events = nil
	return events
}

// Step advances the simulation by one fixed tick: hit-stop, then actors, then
// projectiles.
func (w *World) Step() {
	if w.hitStop.Update() {
		w.emit(Event{Kind: EventFreezeEnd})
	}
	for _, a := range w.actors {
		w.updateActor(a)
	}
	w.updateProjectiles()
	w.tick++
}

func (w *World) updateActor(a *Actor) {
	if a.Cooldown > 0 {
		a.Cooldown--
	}
	if a.respawns && !a.Alive() {
		a.Health = a.MaxHealth
		w.emit(Event{Kind: EventRespawn, Actor: a.ID, Position: a.Position})
	}
	if a.Controller == nil || !a.Alive() {
		a.Velocity = geom.Vector{}
		return
	}

	intent := a.Controller.Intent(w, a)
	a.Velocity = intent.Velocity
	if w.hitStop.Frozen(a.ID) {
		a.Velocity = geom.Vector{}
	} else {
		w.move(a)
	}
	if intent.Fire {
		w.Fire(a, intent.Aim)
	}
}

// move integrates velocity one axis at a time. An axis that leaves the arena
// is clamped and one that would newly overlap an obstacle is cancelled;
// either marks the axis blocked.
func (w *World) move(a *Actor) {
	a.BlockedX, a.BlockedY = false, false
	d := a.Velocity.Scale(w.dt)
	W, H := w.cfg.Arena.Width, w.cfg.Arena.Height

	if d.X != 0 {
		x := a.Position.X + d.X
		cx := utils.Clamp(x, a.Radius, W-a.Radius)
		if cx != x {
			a.BlockedX = true
		}
		next := geom.V(cx, a.Position.Y)
		if w.obstructed(a, next) {
			a.BlockedX = true
		} else {
			a.Position = next
		}
	}
	if d.Y != 0 {
		y := a.Position.Y + d.Y
		cy := utils.Clamp(y, a.Radius, H-a.Radius)
		if cy != y {
			a.BlockedY = true
		}
		next := geom.V(a.Position.X, cy)
		if w.obstructed(a, next) {
			a.BlockedY = true
		} else {
			a.Position = next
		}
	}
}

func (w *World) obstructed(a *Actor, next geom.Vector) bool {
	return w.field.CircleOverlaps(next, a.Radius) && !w.field.CircleOverlaps(a.Position, a.Radius)
}

// Fire shoots a's weapon at target. It is a no-op returning false while the
// cooldown is running.
func (w *World) Fire(a *Actor, target geom.Vector) bool {
	if !a.Alive() || !a.CanFire() {
		return false
	}
	angle := target.Sub(a.Position).Angle()
	a.Cooldown = utils.RoundTicks(a.Weapon.Cooldown(w.cfg), a.CooldownMultiplier)
	w.spawnVolley(a.ID, a.Weapon, a.Position, angle, false)
	w.emit(Event{
		Kind:     EventFired,
		Actor:    a.ID,
		Weapon:   a.Weapon,
		Angle:    angle,
		Position: a.Position,
	})
	return true
}

// SpawnReplica adds a harmless copy of a remote volley fired from owner's
// current position.
func (w *World) SpawnReplica(owner *Actor, weapon Weapon, angle float64) {
	w.spawnVolley(owner.ID, weapon, owner.Position, angle, true)
}

// Damage applies a hit to victim and emits its feedback. source is the
// attacking actor, or ksuid.Nil when the hit was resolved by a remote peer.
// Local hits freeze both the victim and the attacker; a victim that ignores
// hit-stop only freezes its attacker.
func (w *World) Damage(victim *Actor, source ksuid.KSUID, amount int, weapon Weapon) {
	ko := victim.TakeDamage(amount)
	w.emit(Event{
		Kind:     EventDamage,
		Actor:    victim.ID,
		Source:   source,
		Amount:   amount,
		Weapon:   weapon,
		Position: victim.Position,
	})

	frames := weapon.HitStopFrames(w.cfg)
	intensity := w.cfg.Shake.HitIntensity
	duration := time.Duration(w.cfg.Shake.HitDurationMS) * time.Millisecond
	if ko {
		w.emit(Event{Kind: EventKO, Actor: victim.ID, Source: source, Weapon: weapon, Position: victim.Position})
		frames = w.cfg.HitStop.KO
		intensity = w.cfg.Shake.KOIntensity
		duration = time.Duration(w.cfg.Shake.KODurationMS) * time.Millisecond
	}

	var frozen []ksuid.KSUID
	if victim.ignoresHitStop {
		// Dummies stay unfrozen and use the weapon frames even on a KO.
		frames = weapon.HitStopFrames(w.cfg)
	} else {
		frozen = append(frozen, victim.ID)
	}
	if attacker := w.Actor(source); attacker != nil && attacker.ID != victim.ID && !attacker.ignoresHitStop {
		frozen = append(frozen, attacker.ID)
	}
	if len(frozen) > 0 {
		w.hitStop.Trigger(frames, frozen...)
		w.emit(Event{Kind: EventFreezeStart, Actor: victim.ID, Source: source, Frames: frames})
	}
	w.emit(Event{Kind: EventShake, Actor: victim.ID, Intensity: intensity, Duration: duration})
}
