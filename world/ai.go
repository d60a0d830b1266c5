package world

import (
	"math"

	"example.com/arena/config"
	"example.com/arena/geom"
	"example.com/arena/utils"
)

type AIState int

const (
	StateWander AIState = iota
	StateApproach
	StateFire
	StateEvade
	StatePause
	StateCover
)

func (s AIState) String() string {
	switch s {
	case StateWander:
		return "wander"
	case StateApproach:
		return "approach"
	case StateFire:
		return "fire"
	case StateEvade:
		return "evade"
	case StatePause:
		return "pause"
	case StateCover:
		return "cover"
	}
	return "unknown"
}

const (
	aimDistance      = 100
	evadeWindow      = 10
	evadeApproach    = 120
	approachTicks    = 90
	wanderTicks      = 120
	approachFactor   = 1.5
	advancedFarRatio = 1.3
	rollFire         = 0.50
	rollPause        = 0.75
	pauseMin         = 50
	pauseSpan        = 40
)

// AIController drives a CPU actor through a countdown-timed state machine.
// Levels 1 and 2 share one transition policy; level 3 rolls between firing,
// pausing and taking cover.
type AIController struct {
	cfg    config.Config
	level  int
	params config.LevelParams
	rng    Rand

	state   AIState
	timer   int
	heading float64
	cover   geom.Vector
}

func NewAIController(cfg config.Config, level int, rng Rand) *AIController {
	if level < 1 {
		level = 1
	}
	if level > len(cfg.Levels) {
		level = len(cfg.Levels)
	}
	return &AIController{
		cfg:    cfg,
		level:  level,
		params: cfg.Level(level),
		rng:    rng,
		state:  StateWander,
	}
}

func (c *AIController) Level() int                 { return c.level }
func (c *AIController) Params() config.LevelParams { return c.params }
func (c *AIController) State() AIState             { return c.state }
func (c *AIController) Timer() int                 { return c.timer }
func (c *AIController) CoverTarget() geom.Vector   { return c.cover }

func (c *AIController) Intent(w *World, a *Actor) Intent {
	target := w.Opponent(a)
	if target == nil || !a.Alive() {
		return Intent{}
	}
	toTarget := target.Position.Sub(a.Position)
	dist := toTarget.Len()

	c.timer--
	if c.timer <= 0 {
		if c.level >= 3 {
			c.transitionAdvanced(w, a, target, dist)
		} else {
			c.transitionDefault(dist)
		}
	}

	var intent Intent
	switch c.state {
	case StateWander:
		intent.Velocity = a.Direction(c.cfg, geom.FromAngle(c.heading, 1))

	case StateApproach:
		intent.Velocity = c.approach(toTarget, dist)

	case StateFire:
		if c.params.ApproachWhileFiring {
			intent.Velocity = c.approach(toTarget, dist)
		}
		angle := c.aim(a, toTarget, &intent)
		if c.params.UseEvade && c.timer <= evadeWindow {
			c.state = StateEvade
			c.heading = angle + math.Pi/2
			c.timer = c.cfg.Enemy.EvadeTicks
		}

	case StateEvade:
		if a.BlockedX {
			c.heading = math.Pi - c.heading
		}
		if a.BlockedY {
			c.heading = -c.heading
		}
		intent.Velocity = a.Direction(c.cfg, geom.FromAngle(c.heading, 1))

	case StatePause:
		if dist < c.cfg.Enemy.FireRange {
			c.aim(a, toTarget, &intent)
		}

	case StateCover:
		toCover := c.cover.Sub(a.Position)
		if toCover.Len() > c.cfg.Cover.ArriveRadius {
			intent.Velocity = toCover.Normalize(0).Scale(c.approachSpeed())
		} else {
			c.state = StateFire
			c.timer = c.params.FireStateDuration
		}
	}
	return intent
}

func (c *AIController) approachSpeed() float64 {
	return c.cfg.Enemy.Speed * c.params.ApproachSpeedRatio
}

func (c *AIController) approach(toTarget geom.Vector, dist float64) geom.Vector {
	return toTarget.Scale(c.approachSpeed() / math.Max(dist, 1))
}

// aim fills a fire intent at a point aimDistance away along the jittered
// angle to the target and returns that angle.
func (c *AIController) aim(a *Actor, toTarget geom.Vector, intent *Intent) float64 {
	jitter := (c.rng.Float64() - 0.5) * c.params.AimJitter * 2
	angle := toTarget.Angle() + jitter
	intent.Fire = true
	intent.Aim = a.Position.Add(geom.FromAngle(angle, aimDistance))
	return angle
}

func (c *AIController) transitionDefault(dist float64) {
	switch {
	case c.state == StateEvade && c.params.UseEvade:
		c.state = StateApproach
		c.timer = evadeApproach
	case dist < c.cfg.Enemy.FireRange:
		c.state = StateFire
		c.timer = c.params.FireStateDuration
	case dist < c.cfg.Enemy.ApproachRange*approachFactor:
		c.state = StateApproach
		c.timer = approachTicks
	default:
		c.state = StateWander
		c.heading = c.rng.Float64() * 2 * math.Pi
		c.timer = wanderTicks
	}
}

func (c *AIController) transitionAdvanced(w *World, a, target *Actor, dist float64) {
	if dist >= c.cfg.Enemy.FireRange*advancedFarRatio {
		c.state = StateApproach
		c.timer = approachTicks
		return
	}

	roll := c.rng.Float64()
	switch {
	case roll < rollFire:
		c.state = StateFire
		c.timer = c.params.FireStateDuration
	case roll < rollPause:
		c.state = StatePause
		c.timer = pauseMin + int(math.Floor(c.rng.Float64()*pauseSpan))
	default:
		cover, ok := c.findCover(w.Field(), a.Position, target.Position)
		if !ok {
			c.state = StatePause
			c.timer = c.cfg.Cover.FallbackTicks
			return
		}
		c.cover = cover
		c.state = StateCover
		c.timer = c.cfg.Cover.Ticks
	}
}

// findCover returns the point behind the obstacle nearest to self, as seen
// from target, clamped inside the arena.
func (c *AIController) findCover(field *Field, self, target geom.Vector) (geom.Vector, bool) {
	if field == nil {
		return geom.Vector{}, false
	}
	obs, ok := field.Nearest(self)
	if !ok {
		return geom.Vector{}, false
	}
	center := obs.Center()
	away := target.Sub(center)
	length := away.Len()
	if length == 0 {
		length = 1
	}
	offset := math.Max(obs.W, obs.H)/2 + c.cfg.Cover.Margin
	p := center.Sub(away.Scale(offset / length))

	cv := c.cfg.Cover
	W, H := c.cfg.Arena.Width, c.cfg.Arena.Height
	return geom.V(
		utils.Clamp(p.X, cv.ClampX, W-cv.ClampX),
		utils.Clamp(p.Y, cv.ClampY, H-cv.ClampY),
	), true
}
