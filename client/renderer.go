package client

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"example.com/arena/geom"
	"example.com/arena/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/segmentio/ksuid"
)

var (
	backgroundColor = color.RGBA{164, 178, 191, 255}
	obstacleColor   = color.RGBA{70, 78, 92, 255}
	playerColor     = color.RGBA{218, 212, 94, 255}
	enemyColor      = color.RGBA{208, 70, 72, 255}
	frozenColor     = color.RGBA{255, 255, 255, 255}
	healthColor     = color.RGBA{96, 200, 110, 255}
	missingColor    = color.RGBA{60, 60, 60, 200}
	cooldownColor   = color.RGBA{90, 150, 230, 255}
	pelletColor     = color.RGBA{250, 235, 160, 255}
	laserColor      = color.RGBA{255, 90, 200, 255}
	beamColor       = color.RGBA{120, 220, 255, 140}
	replicaAlpha    = uint8(150)
)

type renderData struct {
	lastDrawCoords geom.Vector
}

// Renderer draws snapshots. Actors that jump more than correctionRate pixels
// between frames, like remote actors snapping to a fresh pos message, are
// eased toward their new position.
type Renderer struct {
	localID      ksuid.KSUID
	renderData   map[ksuid.KSUID]*renderData
	lastDrawTime time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{
		renderData: make(map[ksuid.KSUID]*renderData),
	}
}

// Reset forgets smoothing state, used when a new match starts.
func (r *Renderer) Reset(localID ksuid.KSUID) {
	r.localID = localID
	r.renderData = make(map[ksuid.KSUID]*renderData)
}

func (r *Renderer) Render(screen *ebiten.Image, s world.Snapshot, offset geom.Vector) {
	screen.Fill(backgroundColor)

	for _, o := range s.Obstacles {
		vector.DrawFilledRect(screen, f32(o.X+offset.X), f32(o.Y+offset.Y), f32(o.W), f32(o.H), obstacleColor, false)
	}
	for _, p := range s.Projectiles {
		r.renderProjectile(screen, p, offset)
	}
	for _, a := range s.Actors {
		r.renderActor(screen, a, offset)
	}
	r.lastDrawTime = time.Now()
}

func (r *Renderer) smoothed(a world.ActorView) geom.Vector {
	drawCoords := a.Position
	data, ok := r.renderData[a.ID]
	if !ok {
		r.renderData[a.ID] = &renderData{lastDrawCoords: drawCoords}
		return drawCoords
	}

	correctionRate := float64(10)
	movement := math.Min(time.Since(r.lastDrawTime).Seconds()*correctionRate*60, correctionRate)
	if math.Abs(data.lastDrawCoords.X-drawCoords.X) > correctionRate {
		if drawCoords.X > data.lastDrawCoords.X {
			drawCoords.X = data.lastDrawCoords.X + movement
		} else {
			drawCoords.X = data.lastDrawCoords.X - movement
		}
	}
	if math.Abs(data.lastDrawCoords.Y-drawCoords.Y) > correctionRate {
		if drawCoords.Y > data.lastDrawCoords.Y {
			drawCoords.Y = data.lastDrawCoords.Y + movement
		} else {
			drawCoords.Y = data.lastDrawCoords.Y - movement
		}
	}
	data.lastDrawCoords = drawCoords
	return drawCoords
}

func (r *Renderer) renderActor(screen *ebiten.Image, a world.ActorView, offset geom.Vector) {
	p := r.smoothed(a).Add(offset)

	clr := enemyColor
	if a.ID == r.localID {
		clr = playerColor
	}
	if a.Frozen {
		clr = frozenColor
	}
	vector.DrawFilledCircle(screen, f32(p.X), f32(p.Y), f32(a.Radius), clr, true)

	barW := a.Radius * 2
	top := p.Y - a.Radius - 12
	left := p.X - a.Radius
	ratio := 0.0
	if a.MaxHealth > 0 {
		ratio = float64(a.Health) / float64(a.MaxHealth)
	}
	vector.DrawFilledRect(screen, f32(left), f32(top), f32(barW), 5, missingColor, false)
	vector.DrawFilledRect(screen, f32(left), f32(top), f32(barW*ratio), 5, healthColor, false)
	vector.DrawFilledRect(screen, f32(left), f32(top+6), f32(barW*a.CooldownRatio), 2, cooldownColor, false)

	label := fmt.Sprintf("%s %s\n%d/%d", a.Name, a.Weapon, a.Health, a.MaxHealth)
	ebitenutil.DebugPrintAt(screen, label, int(left), int(p.Y+a.Radius+4))
}

func (r *Renderer) renderProjectile(screen *ebiten.Image, p world.ProjectileView, offset geom.Vector) {
	pos := p.Position.Add(offset)
	switch p.Kind {
	case world.KindPellet:
		vector.DrawFilledCircle(screen, f32(pos.X), f32(pos.Y), f32(p.Radius), fade(pelletColor, p.Replica), true)

	case world.KindLaser:
		tail := p.Tail.Add(offset)
		width := p.Radius * 2
		if p.Generation > 0 {
			width = p.Radius
		}
		vector.StrokeLine(screen, f32(tail.X), f32(tail.Y), f32(pos.X), f32(pos.Y), f32(width), fade(laserColor, p.Replica), true)

	case world.KindBeam:
		half := geom.FromAngle(p.Angle, p.Width/2)
		a, b := pos.Sub(half), pos.Add(half)
		vector.StrokeLine(screen, f32(a.X), f32(a.Y), f32(b.X), f32(b.Y), f32(p.Height), fade(beamColor, p.Replica), true)
	}
}

func fade(c color.RGBA, replica bool) color.RGBA {
	if !replica {
		return c
	}
	scale := float64(replicaAlpha) / 255
	return color.RGBA{
		R: uint8(float64(c.R) * scale),
		G: uint8(float64(c.G) * scale),
		B: uint8(float64(c.B) * scale),
		A: uint8(float64(c.A) * scale),
	}
}

func f32(v float64) float32 {
	return float32(v)
}
