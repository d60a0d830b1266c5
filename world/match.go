package world

import (
	"example.com/arena/config"
	"example.com/arena/geom"
)

type Mode int

const (
	ModeBattle Mode = iota
	ModeTraining
)

type Result int

const (
	ResultNone Result = iota
	ResultWin
	ResultLose
)

func (r Result) String() string {
	switch r {
	case ResultWin:
		return "win"
	case ResultLose:
		return "lose"
	}
	return "none"
}

// Match runs a local game: the player against the CPU, or the player
// against a training dummy.
type Match struct {
	cfg    config.Config
	rng    Rand
	mode   Mode
	weapon Weapon
	level  int

	World    *World
	Input    *InputController
	Player   *Actor
	Opponent *Actor
	AI       *AIController

	result Result
}

func NewBattle(cfg config.Config, weapon Weapon, level int, rng Rand) *Match {
	m := &Match{cfg: cfg, rng: rng, mode: ModeBattle, weapon: weapon, level: level}
	m.build()
	return m
}

func NewTraining(cfg config.Config, weapon Weapon, rng Rand) *Match {
	m := &Match{cfg: cfg, rng: rng, mode: ModeTraining, weapon: weapon}
	m.build()
	return m
}

// PlayerSpec is the local combatant at the bottom of the arena.
func PlayerSpec(cfg config.Config, weapon Weapon, controller Controller) ActorSpec {
	return ActorSpec{
		Name:       "player",
		Position:   geom.V(cfg.Arena.Width/2, cfg.Arena.Height-150),
		Radius:     cfg.Player.Radius,
		MaxHealth:  cfg.Player.MaxHP,
		Speed:      cfg.Player.Speed,
		Weapon:     weapon,
		Controller: controller,
	}
}

// TopSpec is the combatant spawning at the top of the arena.
func TopSpec(cfg config.Config, name string, weapon Weapon, controller Controller) ActorSpec {
	return ActorSpec{
		Name:       name,
		Position:   geom.V(cfg.Arena.Width/2, 150),
		Radius:     cfg.Enemy.Radius,
		MaxHealth:  cfg.Player.MaxHP,
		Speed:      cfg.Player.Speed,
		Weapon:     weapon,
		Controller: controller,
	}
}

func (m *Match) build() {
	m.Input = &InputController{}
	m.result = ResultNone

	switch m.mode {
	case ModeTraining:
		m.World = NewWorld(m.cfg, nil, m.rng)
		m.Player = NewActor(PlayerSpec(m.cfg, m.weapon, m.Input))
		m.Opponent = NewActor(ActorSpec{
			Name:           "dummy",
			Position:       geom.V(m.cfg.Arena.Width/2, m.cfg.Arena.Height/3),
			Radius:         m.cfg.Training.DummyRadius,
			MaxHealth:      m.cfg.Training.DummyMaxHP,
			Weapon:         m.weapon,
			Respawns:       true,
			IgnoresHitStop: true,
		})
		m.AI = nil

	default:
		field := NewField(GenerateObstacles(m.cfg, m.rng))
		m.World = NewWorld(m.cfg, field, m.rng)
		m.AI = NewAIController(m.cfg, m.level, m.rng)
		m.Player = NewActor(PlayerSpec(m.cfg, m.weapon, m.Input))
		spec := TopSpec(m.cfg, "cpu", RandomWeapon(m.rng), m.AI)
		spec.CooldownMultiplier = m.AI.Params().CooldownMultiplier
		m.Opponent = NewActor(spec)
	}
	m.World.AddActor(m.Player)
	m.World.AddActor(m.Opponent)
}

func (m *Match) Mode() Mode { return m.mode }

// Step advances the match one tick. A finished match no longer steps.
func (m *Match) Step() {
	if m.result != ResultNone {
		return
	}
	m.World.Step()
	if m.mode != ModeBattle {
		return
	}
	if !m.Player.Alive() {
		m.result = ResultLose
	} else if !m.Opponent.Alive() {
		m.result = ResultWin
	}
}

func (m *Match) Over() (Result, bool) {
	return m.result, m.result != ResultNone
}

// Restart rebuilds the match with fresh obstacles and a fresh CPU.
func (m *Match) Restart() {
	m.build()
}

// SetWeapon changes the player's weapon for the next Restart.
func (m *Match) SetWeapon(w Weapon) {
	m.weapon = w
}
