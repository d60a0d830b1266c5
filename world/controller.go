package world

import "example.com/arena/geom"

// Intent is what a controller wants its actor to do this tick.
type Intent struct {
	Velocity geom.Vector
	Fire     bool
	Aim      geom.Vector
}

type Controller interface {
	Intent(w *World, a *Actor) Intent
}

// InputController turns a movement vector and discrete fire requests into
// intents.
type InputController struct {
	move   geom.Vector
	fire   bool
	target geom.Vector
}

func (c *InputController) SetMove(v geom.Vector) {
	c.move = v
}

// FireAt queues a shot at a world point for the next tick.
func (c *InputController) FireAt(target geom.Vector) {
	c.fire = true
	c.target = target
}

func (c *InputController) Intent(w *World, a *Actor) Intent {
	intent := Intent{
		Velocity: a.Direction(w.Config(), c.move),
		Fire:     c.fire,
		Aim:      c.target,
	}
	c.fire = false
	return intent
}

// RemoteController places its actor at the last position received from the
// peer. It never moves or fires on its own.
type RemoteController struct {
	position geom.Vector
	known    bool
}

func (c *RemoteController) Follow(p geom.Vector) {
	c.position = p
	c.known = true
}

func (c *RemoteController) Intent(w *World, a *Actor) Intent {
	if c.known {
		a.Position = c.position
	}
	return Intent{}
}
