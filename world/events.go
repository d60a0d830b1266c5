package world

import (
	"time"

	"example.com/arena/geom"

	"github.com/segmentio/ksuid"
)

type EventKind int

const (
	EventDamage EventKind = iota
	EventKO
	EventFreezeStart
	EventFreezeEnd
	EventShake
	EventFired
	EventRespawn
)

func (k EventKind) String() string {
	switch k {
	case EventDamage:
		return "damage"
	case EventKO:
		return "ko"
	case EventFreezeStart:
		return "freeze_start"
	case EventFreezeEnd:
		return "freeze_end"
	case EventShake:
		return "shake"
	case EventFired:
		return "fired"
	case EventRespawn:
		return "respawn"
	}
	return "unknown"
}

// Event is a discrete simulation outcome handed to presentation and to the
// online session. Only the fields relevant to Kind are set.
type Event struct {
	Kind EventKind
	Tick int64

	// Actor is the victim of damage, the shooter of a volley or the actor
	// that respawned.
	Actor ksuid.KSUID
	// Source is the attacking actor, or ksuid.Nil for damage that arrived
	// over the network.
	Source ksuid.KSUID

	Amount    int
	Weapon    Weapon
	Angle     float64
	Position  geom.Vector
	Frames    int
	Intensity float64
	Duration  time.Duration
}
