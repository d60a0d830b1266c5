package world

import (
	"fmt"
	"strings"

	"example.com/arena/config"
)

type Weapon int

const (
	Shotgun Weapon = iota
	Laser
	Beam
)

var Weapons = []Weapon{Shotgun, Laser, Beam}

func (w Weapon) String() string {
	switch w {
	case Shotgun:
		return "shotgun"
	case Laser:
		return "laser"
	case Beam:
		return "beam"
	}
	return fmt.Sprintf("weapon(%d)", int(w))
}

func (w Weapon) Valid() bool {
	return w >= Shotgun && w <= Beam
}

func ParseWeapon(s string) (Weapon, error) {
	for _, w := range Weapons {
		if strings.EqualFold(s, w.String()) {
			return w, nil
		}
	}
	return Shotgun, fmt.Errorf("unknown weapon %q", s)
}

// RandomWeapon picks one of the three weapons uniformly.
func RandomWeapon(rng Rand) Weapon {
	i := int(rng.Float64() * float64(len(Weapons)))
	if i >= len(Weapons) {
		i = len(Weapons) - 1
	}
	return Weapons[i]
}

func (w Weapon) Cooldown(cfg config.Config) int {
	switch w {
	case Laser:
		return cfg.Weapons.Laser.Cooldown
	case Beam:
		return cfg.Weapons.Beam.Cooldown
	}
	return cfg.Weapons.Shotgun.Cooldown
}

func (w Weapon) Damage(cfg config.Config) int {
	switch w {
	case Laser:
		return cfg.Weapons.Laser.Damage
	case Beam:
		return cfg.Weapons.Beam.Damage
	}
	return cfg.Weapons.Shotgun.Damage
}

// HitStopFrames is the freeze length for a non-lethal hit by w.
func (w Weapon) HitStopFrames(cfg config.Config) int {
	switch w {
	case Laser:
		return cfg.HitStop.Laser
	case Beam:
		return cfg.HitStop.Beam
	}
	return cfg.HitStop.Shotgun
}
