package protocol

import (
	"example.com/arena/geom"
	"example.com/arena/world"
)

// Tag identifies a message variant. It doubles as the envelope field number
// on the wire.
type Tag int

const (
	TagReady Tag = iota + 1
	TagPos
	TagFire
	TagHit
	TagGameOver
	TagRematch
	TagRematchAccept
	TagReturnToMenu
)

func (t Tag) String() string {
	switch t {
	case TagReady:
		return "ready"
	case TagPos:
		return "pos"
	case TagFire:
		return "fire"
	case TagHit:
		return "hit"
	case TagGameOver:
		return "gameOver"
	case TagRematch:
		return "rematch"
	case TagRematchAccept:
		return "rematchAccept"
	case TagReturnToMenu:
		return "returnToMenu"
	}
	return "unknown"
}

type Message interface {
	Tag() Tag
}

// Ready opens a match. Obstacles are set only by the obstacle authority.
type Ready struct {
	Weapon    world.Weapon
	Obstacles []geom.Rect
}

// Pos replicates the sender's own actor every tick.
type Pos struct {
	X, Y float64
	HP   int
}

// Fire tells the peer to spawn a harmless replica of a volley.
type Fire struct {
	Angle float64
}

// Hit is an authoritative hit on the receiver's actor.
type Hit struct {
	Amount int
	Weapon world.Weapon
}

type GameOver struct{}

// Rematch is proposed by the loser of the previous match.
type Rematch struct {
	Weapon    world.Weapon
	Obstacles []geom.Rect
}

type RematchAccept struct {
	Weapon    world.Weapon
	Obstacles []geom.Rect
}

type ReturnToMenu struct{}

func (Ready) Tag() Tag         { return TagReady }
func (Pos) Tag() Tag           { return TagPos }
func (Fire) Tag() Tag          { return TagFire }
func (Hit) Tag() Tag           { return TagHit }
func (GameOver) Tag() Tag      { return TagGameOver }
func (Rematch) Tag() Tag       { return TagRematch }
func (RematchAccept) Tag() Tag { return TagRematchAccept }
func (ReturnToMenu) Tag() Tag  { return TagReturnToMenu }
