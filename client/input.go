package client

import (
	"example.com/arena/geom"
	"example.com/arena/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type commands struct {
	move    geom.Vector
	fire    bool
	target  geom.Vector
	weapon  world.Weapon
	pick    bool
	restart bool
	leave   bool
}

// readCommands polls the keyboard and mouse once per tick.
func readCommands() commands {
	var c commands
	var keys []ebiten.Key
	for _, key := range inpututil.AppendPressedKeys(keys) {
		switch key {
		case ebiten.KeyA, ebiten.KeyArrowLeft:
			c.move.X--
		case ebiten.KeyD, ebiten.KeyArrowRight:
			c.move.X++
		case ebiten.KeyW, ebiten.KeyArrowUp:
			c.move.Y--
		case ebiten.KeyS, ebiten.KeyArrowDown:
			c.move.Y++
		}
	}

	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		c.fire = true
		c.target = geom.V(float64(x), float64(y))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		c.weapon, c.pick = world.Shotgun, true
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		c.weapon, c.pick = world.Laser, true
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		c.weapon, c.pick = world.Beam, true
	}
	c.restart = inpututil.IsKeyJustPressed(ebiten.KeyR)
	c.leave = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	return c
}

func (c commands) apply(input *world.InputController) {
	input.SetMove(c.move)
	if c.fire {
		input.FireAt(c.target)
	}
}
