package world

import (
	"math"
	"testing"

	"example.com/arena/config"
	"example.com/arena/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIWorld(rects ...geom.Rect) (*World, *Actor, *Actor) {
	w := newTestWorld(rects...)
	cpu := addTestActor(w, "cpu", geom.V(240, 300), 150, Laser)
	target := addTestActor(w, "player", geom.V(240, 500), 150, Laser)
	return w, cpu, target
}

func TestAdvancedTransitionDistribution(t *testing.T) {
	cfg := config.Default()
	w, cpu, target := newAIWorld(GenerateObstacles(cfg, NewRand(7))...)
	c := NewAIController(cfg, 3, NewRand(42))

	const trials = 20000
	counts := map[AIState]int{}
	for i := 0; i < trials; i++ {
		c.transitionAdvanced(w, cpu, target, 200)
		counts[c.state]++
	}

	assert.InDelta(t, 0.50, float64(counts[StateFire])/trials, 0.02)
	assert.InDelta(t, 0.25, float64(counts[StatePause])/trials, 0.02)
	assert.InDelta(t, 0.25, float64(counts[StateCover])/trials, 0.02)
	assert.Zero(t, counts[StateWander]+counts[StateApproach]+counts[StateEvade])
}

func TestAdvancedTransitions(t *testing.T) {
	cfg := config.Default()
	w, cpu, target := newAIWorld()

	c := NewAIController(cfg, 3, &seqRand{vals: []float64{0.1}})
	c.transitionAdvanced(w, cpu, target, cfg.Enemy.FireRange*1.3)
	assert.Equal(t, StateApproach, c.State())
	assert.Equal(t, 90, c.Timer())

	c.transitionAdvanced(w, cpu, target, 200)
	assert.Equal(t, StateFire, c.State())
	assert.Equal(t, 80, c.Timer())

	c = NewAIController(cfg, 3, &seqRand{vals: []float64{0.6, 0.99}})
	c.transitionAdvanced(w, cpu, target, 200)
	assert.Equal(t, StatePause, c.State())
	assert.Equal(t, 89, c.Timer())

	// No obstacles: the cover roll falls back to a pause.
	c = NewAIController(cfg, 3, &seqRand{vals: []float64{0.9}})
	c.transitionAdvanced(w, cpu, target, 200)
	assert.Equal(t, StatePause, c.State())
	assert.Equal(t, 60, c.Timer())
}

func TestDefaultTransitions(t *testing.T) {
	cfg := config.Default()
	c := NewAIController(cfg, 1, &seqRand{vals: []float64{0.25}})

	c.transitionDefault(200)
	assert.Equal(t, StateFire, c.State())
	assert.Equal(t, 40, c.Timer())

	c.state = StateEvade
	c.transitionDefault(200)
	assert.Equal(t, StateApproach, c.State())
	assert.Equal(t, 120, c.Timer())

	c.transitionDefault(400)
	assert.Equal(t, StateApproach, c.State())
	assert.Equal(t, 90, c.Timer())

	c.transitionDefault(600)
	assert.Equal(t, StateWander, c.State())
	assert.Equal(t, 120, c.Timer())
	assert.InDelta(t, math.Pi/2, c.heading, 1e-12)
}

func TestFireWindowEndsInEvade(t *testing.T) {
	cfg := config.Default()
	w, cpu, target := newAIWorld()
	c := NewAIController(cfg, 1, &seqRand{vals: []float64{0.5}})
	c.state = StateFire
	c.timer = 12

	intent := c.Intent(w, cpu)
	assert.Equal(t, StateFire, c.State())
	assert.True(t, intent.Fire)
	assert.True(t, intent.Velocity.IsZero())
	// Zero jitter aims straight at the target.
	assert.InDelta(t, 240, intent.Aim.X, 1e-9)
	assert.InDelta(t, 400, intent.Aim.Y, 1e-9)

	c.Intent(w, cpu)
	assert.Equal(t, StateEvade, c.State())
	assert.Equal(t, cfg.Enemy.EvadeTicks, c.Timer())
	want := target.Position.Sub(cpu.Position).Angle() + math.Pi/2
	assert.InDelta(t, want, c.heading, 1e-9)
}

func TestAdvancedFiresWhileApproaching(t *testing.T) {
	cfg := config.Default()
	w, cpu, _ := newAIWorld()
	c := NewAIController(cfg, 3, &seqRand{vals: []float64{0.5}})
	c.state = StateFire
	c.timer = 5

	intent := c.Intent(w, cpu)
	assert.Equal(t, StateFire, c.State(), "level 3 does not evade")
	assert.True(t, intent.Fire)
	assert.InDelta(t, cfg.Enemy.Speed, intent.Velocity.Len(), 1e-9)
	assert.Greater(t, intent.Velocity.Y, 0.0)
}

func TestEvadeReflectsOffWalls(t *testing.T) {
	cfg := config.Default()
	w, cpu, _ := newAIWorld()
	c := NewAIController(cfg, 1, &seqRand{vals: []float64{0.5}})
	c.state = StateEvade
	c.timer = 50
	c.heading = 0.3

	cpu.BlockedX = true
	c.Intent(w, cpu)
	assert.InDelta(t, math.Pi-0.3, c.heading, 1e-12)

	cpu.BlockedX = false
	cpu.BlockedY = true
	intent := c.Intent(w, cpu)
	assert.InDelta(t, -(math.Pi - 0.3), c.heading, 1e-12)
	assert.InDelta(t, cpu.MoveSpeed(cfg), intent.Velocity.Len(), 1e-9)
}

func TestCoverArrivalSwitchesToFire(t *testing.T) {
	cfg := config.Default()
	w, cpu, _ := newAIWorld()
	c := NewAIController(cfg, 3, &seqRand{vals: []float64{0.5}})
	c.state = StateCover
	c.timer = 50

	c.cover = cpu.Position.Add(geom.V(100, 0))
	intent := c.Intent(w, cpu)
	assert.Equal(t, StateCover, c.State())
	assert.InDelta(t, cfg.Enemy.Speed, intent.Velocity.X, 1e-9)

	c.cover = cpu.Position.Add(geom.V(5, 0))
	intent = c.Intent(w, cpu)
	assert.Equal(t, StateFire, c.State())
	assert.Equal(t, 80, c.Timer())
	assert.True(t, intent.Velocity.IsZero())
}

func TestFindCover(t *testing.T) {
	cfg := config.Default()
	c := NewAIController(cfg, 3, NewRand(1))

	field := NewField([]geom.Rect{
		{X: 200, Y: 417, W: 80, H: 20},
		{X: 100, Y: 60, W: 80, H: 20},
	})

	cover, ok := c.findCover(field, geom.V(240, 380), geom.V(240, 700))
	require.True(t, ok)
	assert.InDelta(t, 240, cover.X, 1e-9)
	assert.InDelta(t, 347, cover.Y, 1e-9)

	// Behind the top obstacle lies off the arena and is clamped.
	cover, ok = c.findCover(field, geom.V(140, 120), geom.V(140, 600))
	require.True(t, ok)
	assert.InDelta(t, 140, cover.X, 1e-9)
	assert.InDelta(t, 80, cover.Y, 1e-9)

	_, ok = c.findCover(NewField(nil), geom.V(0, 0), geom.V(1, 1))
	assert.False(t, ok)
}

func TestAIChasesAcrossTicks(t *testing.T) {
	cfg := config.Default()
	w := NewWorld(cfg, NewField(nil), NewRand(3))
	ai := NewAIController(cfg, 2, NewRand(3))
	spec := TopSpec(cfg, "cpu", Laser, ai)
	spec.CooldownMultiplier = ai.Params().CooldownMultiplier
	cpu := NewActor(spec)
	w.AddActor(cpu)
	player := NewActor(PlayerSpec(cfg, Laser, nil))
	player.Position = geom.V(240, 500)
	w.AddActor(player)

	start := cpu.Position.Dist(player.Position)
	for i := 0; i < 60; i++ {
		w.Step()
	}
	assert.Less(t, cpu.Position.Dist(player.Position), start)
	assert.Equal(t, StateApproach, ai.State())
}
