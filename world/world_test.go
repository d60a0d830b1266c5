package world

import (
	"math"
	"testing"

	"example.com/arena/config"
	"example.com/arena/geom"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func newTestWorld(rects ...geom.Rect) *World {
	return NewWorld(config.Default(), NewField(rects), NewRand(1))
}

func addTestActor(w *World, name string, pos geom.Vector, hp int, weapon Weapon) *Actor {
	a := NewActor(ActorSpec{
		Name:      name,
		Position:  pos,
		Radius:    22,
		MaxHealth: hp,
		Speed:     250,
		Weapon:    weapon,
	})
	w.AddActor(a)
	return a
}

func countEvents(events []Event, kind EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestLaserHitEndToEnd(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 600), 150, Laser)
	b := addTestActor(w, "b", geom.V(240, 300), 100, Laser)

	require.True(t, w.Fire(a, b.Position))
	require.Len(t, w.Lasers(), 1)
	bolt := w.Lasers()[0]

	for i := 0; i < 60 && b.Health == 100; i++ {
		w.Step()
	}

	assert.Equal(t, 85, b.Health)
	assert.Equal(t, 150, a.Health)
	assert.True(t, bolt.HasHit)
	assert.True(t, bolt.Dead())
	assert.Empty(t, w.Lasers())

	assert.Equal(t, 4, w.HitStop().Remaining())
	assert.True(t, w.HitStop().Frozen(a.ID))
	assert.True(t, w.HitStop().Frozen(b.ID))

	events := w.DrainEvents()
	assert.Equal(t, 1, countEvents(events, EventFired))
	assert.Equal(t, 1, countEvents(events, EventDamage))
	assert.Equal(t, 1, countEvents(events, EventFreezeStart))
	assert.Equal(t, 0, countEvents(events, EventKO))
	for _, e := range events {
		if e.Kind == EventFreezeStart {
			assert.Equal(t, 4, e.Frames)
		}
		if e.Kind == EventDamage {
			assert.Equal(t, b.ID, e.Actor)
			assert.Equal(t, a.ID, e.Source)
			assert.Equal(t, 15, e.Amount)
		}
	}
	assert.Empty(t, w.DrainEvents())
}

func TestShotgunSpread(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 600), 150, Shotgun)
	target := geom.V(240, 100)

	require.True(t, w.Fire(a, target))

	cfg := w.Config()
	base := target.Sub(a.Position).Angle()
	half := cfg.Weapons.Shotgun.Spread / 2
	require.Len(t, w.Pellets(), 12)
	for _, p := range w.Pellets() {
		angle := p.Velocity.Angle()
		assert.GreaterOrEqual(t, angle, base-half-1e-9)
		assert.LessOrEqual(t, angle, base+half+1e-9)
		assert.InDelta(t, cfg.Weapons.Shotgun.Speed, p.Velocity.Len(), 1e-9)
		assert.Equal(t, 5, p.Damage)
	}
}

func TestShotgunKillsThroughOpenGround(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 500), 150, Shotgun)
	b := addTestActor(w, "b", geom.V(240, 440), 100, Shotgun)

	require.True(t, w.Fire(a, b.Position))
	for i := 0; i < 30; i++ {
		w.Step()
	}
	assert.Less(t, b.Health, 100)
	assert.Equal(t, 0, (100-b.Health)%5)
}

func TestPelletsStoppedByObstacle(t *testing.T) {
	w := newTestWorld(geom.Rect{X: 140, Y: 540, W: 200, H: 30})
	a := addTestActor(w, "a", geom.V(240, 700), 150, Shotgun)
	b := addTestActor(w, "b", geom.V(240, 400), 100, Shotgun)

	require.True(t, w.Fire(a, b.Position))
	for i := 0; i < 60; i++ {
		w.Step()
	}
	assert.Equal(t, 100, b.Health)
	assert.Empty(t, w.Pellets())
}

func TestCooldown(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 600), 150, Laser)
	target := geom.V(240, 0)

	require.True(t, w.Fire(a, target))
	assert.Equal(t, 30, a.Cooldown)
	assert.False(t, w.Fire(a, target))

	for i := 0; i < 29; i++ {
		w.Step()
	}
	assert.Equal(t, 1, a.Cooldown)
	assert.False(t, w.Fire(a, target))

	w.Step()
	assert.Equal(t, 0, a.Cooldown)
	assert.True(t, w.Fire(a, target))
}

func TestCooldownMultiplier(t *testing.T) {
	w := newTestWorld()
	a := NewActor(ActorSpec{Name: "cpu", Position: geom.V(240, 150), Radius: 22, MaxHealth: 150, Weapon: Laser, CooldownMultiplier: 0.5})
	w.AddActor(a)

	require.True(t, w.Fire(a, geom.V(240, 800)))
	assert.Equal(t, 15, a.Cooldown)
	assert.InDelta(t, 0.5, a.CooldownRatio(w.Config()), 1e-9)
}

func TestHealthFloor(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		hp := rapid.IntRange(1, 300).Draw(t, "hp")
		hits := rapid.SliceOf(rapid.IntRange(0, 200)).Draw(t, "hits")

		a := NewActor(ActorSpec{MaxHealth: hp})
		kos := 0
		for _, amount := range hits {
			if a.TakeDamage(amount) {
				kos++
			}
			if a.Health < 0 {
				t.Fatalf("health went negative: %d", a.Health)
			}
		}
		if kos > 1 {
			t.Fatalf("knocked out %d times", kos)
		}
	})
}

func TestDamageKO(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 600), 150, Beam)
	b := addTestActor(w, "b", geom.V(240, 300), 10, Beam)

	w.Damage(b, a.ID, 15, Beam)
	assert.Equal(t, 0, b.Health)
	assert.Equal(t, 120, w.HitStop().Remaining())

	events := w.DrainEvents()
	assert.Equal(t, 1, countEvents(events, EventKO))
	for _, e := range events {
		if e.Kind == EventShake {
			assert.Equal(t, 0.015, e.Intensity)
		}
	}
}

func TestRemoteDamageFreezesVictimOnly(t *testing.T) {
	w := newTestWorld()
	a := addTestActor(w, "a", geom.V(240, 600), 150, Laser)
	b := addTestActor(w, "b", geom.V(240, 300), 150, Laser)

	w.Damage(a, ksuid.Nil, 25, Laser)
	assert.Equal(t, 125, a.Health)
	assert.True(t, w.HitStop().Frozen(a.ID))
	assert.False(t, w.HitStop().Frozen(b.ID))
}

func TestFrozenActorsDoNotMove(t *testing.T) {
	w := newTestWorld()
	input := &InputController{}
	a := NewActor(ActorSpec{Name: "a", Position: geom.V(240, 600), Radius: 22, MaxHealth: 150, Speed: 250, Weapon: Laser, Controller: input})
	w.AddActor(a)
	input.SetMove(geom.V(1, 0))

	w.HitStop().Trigger(2, a.ID)
	w.Step()
	assert.Equal(t, 240.0, a.Position.X)
	w.Step()
	w.Step()
	assert.Greater(t, a.Position.X, 240.0)
}

func TestMovementBlockedByObstacle(t *testing.T) {
	w := newTestWorld(geom.Rect{X: 130, Y: 350, W: 30, H: 100})
	input := &InputController{}
	a := NewActor(ActorSpec{Name: "a", Position: geom.V(100, 400), Radius: 22, MaxHealth: 150, Speed: 250, Weapon: Laser, Controller: input})
	w.AddActor(a)
	input.SetMove(geom.V(1, 0))

	for i := 0; i < 10; i++ {
		w.Step()
	}
	assert.True(t, a.BlockedX)
	assert.False(t, a.BlockedY)
	assert.Less(t, a.Position.X+a.Radius, 130.0)
}

func TestMovementClampedToArena(t *testing.T) {
	w := newTestWorld()
	input := &InputController{}
	a := NewActor(ActorSpec{Name: "a", Position: geom.V(30, 400), Radius: 22, MaxHealth: 150, Speed: 250, Weapon: Shotgun, Controller: input})
	w.AddActor(a)
	input.SetMove(geom.V(-1, -1))

	for i := 0; i < 5; i++ {
		w.Step()
	}
	assert.Equal(t, 22.0, a.Position.X)
	assert.True(t, a.BlockedX)

	// Diagonal input is normalized, shotgun wielders move 10% faster.
	step := 250 * 1.1 / 60 / math.Sqrt2
	assert.InDelta(t, 400-5*step, a.Position.Y, 1e-6)
}

func TestInputFireIsConsumed(t *testing.T) {
	w := newTestWorld()
	input := &InputController{}
	a := NewActor(ActorSpec{Name: "a", Position: geom.V(240, 600), Radius: 22, MaxHealth: 150, Speed: 250, Weapon: Beam, Controller: input})
	w.AddActor(a)

	input.FireAt(geom.V(240, 0))
	w.Step()
	assert.Len(t, w.Beams(), 1)
	assert.Equal(t, 60, a.Cooldown)

	w.Step()
	assert.Equal(t, 1, countEvents(w.DrainEvents(), EventFired))
}

func TestDummyRespawns(t *testing.T) {
	w := newTestWorld()
	dummy := NewActor(ActorSpec{Name: "dummy", Position: geom.V(240, 284), Radius: 30, MaxHealth: 200, Respawns: true, IgnoresHitStop: true})
	w.AddActor(dummy)

	w.Damage(dummy, ksuid.Nil, 250, Laser)
	assert.Equal(t, 0, dummy.Health)
	assert.False(t, w.HitStop().Active())

	w.Step()
	assert.Equal(t, 200, dummy.Health)
	assert.Equal(t, 1, countEvents(w.DrainEvents(), EventRespawn))
}

func TestSnapshot(t *testing.T) {
	w := newTestWorld(geom.Rect{X: 10, Y: 10, W: 10, H: 10})
	a := addTestActor(w, "a", geom.V(240, 600), 150, Laser)
	addTestActor(w, "b", geom.V(240, 100), 150, Beam)

	require.True(t, w.Fire(a, geom.V(240, 0)))
	s := w.Snapshot()

	require.Len(t, s.Actors, 2)
	assert.Equal(t, "a", s.Actors[0].Name)
	assert.Equal(t, 0.0, s.Actors[0].CooldownRatio)
	assert.Equal(t, 1.0, s.Actors[1].CooldownRatio)
	require.Len(t, s.Projectiles, 1)
	assert.Equal(t, KindLaser, s.Projectiles[0].Kind)
	assert.InDelta(t, 600+160, s.Projectiles[0].Tail.Y, 1e-9)
	assert.Len(t, s.Obstacles, 1)
}
