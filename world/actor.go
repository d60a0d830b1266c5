package world

import (
	"math"

	"example.com/arena/config"
	"example.com/arena/geom"

	"github.com/segmentio/ksuid"
)

type ActorSpec struct {
	Name               string
	Position           geom.Vector
	Radius             float64
	MaxHealth          int
	Speed              float64
	Weapon             Weapon
	CooldownMultiplier float64
	Controller         Controller
	// Respawns restores full health on the tick after health reaches zero.
	Respawns bool
	// IgnoresHitStop keeps hits on this actor from freezing anyone.
	IgnoresHitStop bool
}

// Actor is a combatant. Its behavior comes from Controller: local input, AI,
// a remote peer, or nothing for a stationary dummy.
type Actor struct {
	ID       ksuid.KSUID
	Name     string
	Position geom.Vector
	Velocity geom.Vector
	Radius   float64

	Health    int
	MaxHealth int

	Weapon             Weapon
	Cooldown           int
	CooldownMultiplier float64
	Speed              float64

	Controller Controller

	// BlockedX and BlockedY record which axes were stopped by a wall or an
	// obstacle on the last move.
	BlockedX, BlockedY bool

	respawns       bool
	ignoresHitStop bool
}

func NewActor(spec ActorSpec) *Actor {
	mult := spec.CooldownMultiplier
	if mult <= 0 {
		mult = 1
	}
	return &Actor{
		ID:                 ksuid.New(),
		Name:               spec.Name,
		Position:           spec.Position,
		Radius:             spec.Radius,
		Health:             spec.MaxHealth,
		MaxHealth:          spec.MaxHealth,
		Weapon:             spec.Weapon,
		CooldownMultiplier: mult,
		Speed:              spec.Speed,
		Controller:         spec.Controller,
		respawns:           spec.Respawns,
		ignoresHitStop:     spec.IgnoresHitStop,
	}
}

func (a *Actor) Alive() bool {
	return a.Health > 0
}

func (a *Actor) CanFire() bool {
	return a.Cooldown <= 0
}

// TakeDamage lowers health, never below zero, and reports whether this hit
// knocked the actor out.
func (a *Actor) TakeDamage(amount int) bool {
	if amount < 0 {
		amount = 0
	}
	wasAlive := a.Alive()
	a.Health -= amount
	if a.Health < 0 {
		a.Health = 0
	}
	return wasAlive && !a.Alive()
}

// SetHealth overwrites health with a replicated value.
func (a *Actor) SetHealth(hp int) {
	if hp < 0 {
		hp = 0
	}
	if hp > a.MaxHealth {
		hp = a.MaxHealth
	}
	a.Health = hp
}

// CooldownRatio is 1 when the weapon is ready.
func (a *Actor) CooldownRatio(cfg config.Config) float64 {
	base := float64(a.Weapon.Cooldown(cfg))
	return math.Min(1, (base-float64(a.Cooldown))/base)
}

// MoveSpeed is the speed used for direction-driven movement. Shotgun
// wielders are faster.
func (a *Actor) MoveSpeed(cfg config.Config) float64 {
	if a.Weapon == Shotgun {
		return a.Speed * cfg.Player.ShotgunSpeedBonus
	}
	return a.Speed
}

// Direction returns the velocity for moving along dir at MoveSpeed. Inputs
// shorter than 0.01 stop the actor.
func (a *Actor) Direction(cfg config.Config, dir geom.Vector) geom.Vector {
	return dir.Normalize(0.01).Scale(a.MoveSpeed(cfg))
}
