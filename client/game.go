package client

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"example.com/arena/config"
	"example.com/arena/geom"
	"example.com/arena/session"
	"example.com/arena/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/segmentio/ksuid"
)

// scene is whatever the window is currently playing: a local match or an
// online session.
type scene interface {
	update(c commands) error
	snapshot() (world.Snapshot, bool)
	localID() ksuid.KSUID
	drainEvents() []world.Event
	banner() string
	status() string
}

type shake struct {
	intensity float64
	until     time.Time
}

func (s *shake) start(intensity float64, d time.Duration) {
	until := time.Now().Add(d)
	if until.After(s.until) || intensity > s.intensity {
		s.intensity = intensity
		s.until = until
	}
}

func (s *shake) offset(rng *rand.Rand, size float64) geom.Vector {
	if time.Now().After(s.until) {
		return geom.Vector{}
	}
	m := s.intensity * size
	return geom.V((rng.Float64()*2-1)*m, (rng.Float64()*2-1)*m)
}

type Game struct {
	cfg      config.Config
	assets   *Assets
	renderer *Renderer
	scene    scene
	shake    shake
	rng      *rand.Rand
	shownID  ksuid.KSUID
}

func newGame(cfg config.Config, assets *Assets, sc scene) *Game {
	return &Game{
		cfg:      cfg,
		assets:   assets,
		renderer: NewRenderer(),
		scene:    sc,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewLocalGame shows a battle against the CPU or a training session.
func NewLocalGame(cfg config.Config, assets *Assets, match *world.Match, weapon world.Weapon) *Game {
	return newGame(cfg, assets, &localScene{match: match, weapon: weapon})
}

// NewOnlineGame shows an online session. input must be the controller the
// session was created with.
func NewOnlineGame(cfg config.Config, assets *Assets, sess *session.Session, input *world.InputController, room string) *Game {
	return newGame(cfg, assets, &onlineScene{
		sess:   sess,
		input:  input,
		room:   room,
		weapon: sess.Weapon(),
	})
}

func (g *Game) Update() error {
	if err := g.scene.update(readCommands()); err != nil {
		return err
	}
	for _, e := range g.scene.drainEvents() {
		if e.Kind == world.EventShake {
			g.shake.start(e.Intensity, e.Duration)
		}
	}
	if id := g.scene.localID(); id != g.shownID {
		g.renderer.Reset(id)
		g.shownID = id
	}
	return nil
}

func (g *Game) debugString() string {
	return strings.Join([]string{
		fmt.Sprintf("Version: %s, TPS: %0.02f, FPS: %0.02f", strings.TrimSpace(Version), ebiten.ActualTPS(), ebiten.ActualFPS()),
		g.scene.status(),
		"1/2/3 weapon  R restart/rematch  Esc quit",
	}, "\n")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if snap, ok := g.scene.snapshot(); ok {
		g.renderer.Render(screen, snap, g.shake.offset(g.rng, g.cfg.Arena.Width))
	} else {
		screen.Fill(backgroundColor)
	}

	if name := g.scene.banner(); name != "" {
		image := g.assets.Image(name)
		b := image.Bounds()
		opt := &ebiten.DrawImageOptions{}
		opt.GeoM.Translate(-float64(b.Dx())/2, -float64(b.Dy())/2)
		opt.GeoM.Translate(g.cfg.Arena.Width/2, g.cfg.Arena.Height/2)
		opt.Filter = ebiten.FilterLinear
		screen.DrawImage(image, opt)
		ebitenutil.DebugPrintAt(screen, strings.ToUpper(name), int(g.cfg.Arena.Width/2)-24, int(g.cfg.Arena.Height/2)+b.Dy()/2+8)
	}
	ebitenutil.DebugPrint(screen, g.debugString())
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return int(g.cfg.Arena.Width), int(g.cfg.Arena.Height)
}

type localScene struct {
	match  *world.Match
	weapon world.Weapon
}

func (s *localScene) update(c commands) error {
	if c.leave {
		return ebiten.Termination
	}
	if c.pick {
		s.weapon = c.weapon
		s.match.SetWeapon(c.weapon)
	}
	if _, over := s.match.Over(); c.restart && (over || s.match.Mode() == world.ModeTraining) {
		s.match.Restart()
	}
	c.apply(s.match.Input)
	s.match.Step()
	return nil
}

func (s *localScene) snapshot() (world.Snapshot, bool) {
	return s.match.World.Snapshot(), true
}

func (s *localScene) localID() ksuid.KSUID       { return s.match.Player.ID }
func (s *localScene) drainEvents() []world.Event { return s.match.World.DrainEvents() }

func (s *localScene) banner() string {
	switch result, _ := s.match.Over(); result {
	case world.ResultWin:
		return "win"
	case world.ResultLose:
		return "lose"
	}
	return ""
}

func (s *localScene) status() string {
	if s.match.Mode() == world.ModeTraining {
		return fmt.Sprintf("Training  next weapon: %s", s.weapon)
	}
	return fmt.Sprintf("CPU Lv%d %s  next weapon: %s", s.match.AI.Level(), s.match.AI.State(), s.weapon)
}

type onlineScene struct {
	sess     *session.Session
	input    *world.InputController
	room     string
	weapon   world.Weapon
	result   string
	proposal string
}

func (s *onlineScene) update(c commands) error {
	if c.leave {
		s.sess.Leave()
		return ebiten.Termination
	}
	if c.pick {
		s.weapon = c.weapon
		s.sess.SelectWeapon(c.weapon)
	}
	if c.restart {
		s.sess.RequestRematch(s.weapon)
	}
	c.apply(s.input)
	s.sess.Step()

	for _, e := range s.sess.DrainEvents() {
		switch e.Kind {
		case session.EventMatchStarted:
			s.result, s.proposal = "", ""
		case session.EventMatchOver:
			s.result = "lose"
			if e.Won {
				s.result = "win"
			}
		case session.EventRematchProposed:
			s.proposal = fmt.Sprintf("rematch accepted, peer picked %s", e.Weapon)
		case session.EventPeerLeft:
			s.result = "left"
		case session.EventDisconnected:
			s.result = "disconnected"
		}
	}
	return nil
}

func (s *onlineScene) snapshot() (world.Snapshot, bool) {
	if s.sess.World() == nil {
		return world.Snapshot{}, false
	}
	return s.sess.World().Snapshot(), true
}

func (s *onlineScene) localID() ksuid.KSUID {
	if s.sess.Local() == nil {
		return ksuid.Nil
	}
	return s.sess.Local().ID
}

func (s *onlineScene) drainEvents() []world.Event {
	return s.sess.DrainWorldEvents()
}

func (s *onlineScene) banner() string {
	if s.result != "" {
		return s.result
	}
	if s.sess.Phase() == session.PhaseLobby {
		return "waiting"
	}
	return ""
}

func (s *onlineScene) status() string {
	line := fmt.Sprintf("Room %s  %s  %s  next weapon: %s", s.room, s.sess.Role(), s.sess.Phase(), s.weapon)
	if s.proposal != "" {
		line += "\n" + s.proposal
	}
	return line
}
