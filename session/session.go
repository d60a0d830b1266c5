package session

import (
	"errors"
	"log/slog"
	"sync"

	"example.com/arena/config"
	"example.com/arena/geom"
	"example.com/arena/protocol"
	"example.com/arena/world"

	"github.com/google/uuid"
	"github.com/segmentio/ksuid"
)

type Role int

const (
	// RoleHost generates every obstacle layout and spawns at the bottom.
	RoleHost Role = iota
	RoleGuest
)

func (r Role) String() string {
	if r == RoleHost {
		return "host"
	}
	return "guest"
}

type Phase int

const (
	PhaseLobby Phase = iota
	PhaseBattle
	PhaseOver
	PhaseClosed
	PhaseDisconnected
)

func (p Phase) String() string {
	switch p {
	case PhaseLobby:
		return "lobby"
	case PhaseBattle:
		return "battle"
	case PhaseOver:
		return "over"
	case PhaseClosed:
		return "closed"
	case PhaseDisconnected:
		return "disconnected"
	}
	return "unknown"
}

func (p Phase) Terminal() bool {
	return p == PhaseClosed || p == PhaseDisconnected
}

type EventKind int

const (
	EventMatchStarted EventKind = iota
	EventMatchOver
	EventRematchProposed
	EventPeerLeft
	EventDisconnected
)

type Event struct {
	Kind    EventKind
	MatchID uuid.UUID
	Won     bool
	Weapon  world.Weapon
	Err     error
}

var ErrConnectionClosed = errors.New("connection closed")

const queueSize = 512

type inbound struct {
	connected bool
	msg       protocol.Message
}

// Session runs one side of an online duel. Transport goroutines feed it
// through Connected, Deliver and Disconnect; the game loop calls Step once
// per tick and the transport drains Outbox.
type Session struct {
	cfg        config.Config
	role       Role
	rng        world.Rand
	controller world.Controller
	logger     *slog.Logger

	inbox  chan inbound
	outbox chan protocol.Message
	done   chan struct{}

	mu   sync.Mutex
	lost error

	closeOnce sync.Once

	phase      Phase
	weapon     world.Weapon
	peerWeapon world.Weapon

	readySent bool
	peerReady bool
	obstacles []geom.Rect

	rematchSent bool
	won         bool
	matchID     uuid.UUID

	world     *world.World
	local     *world.Actor
	remote    *world.Actor
	remoteCtl *world.RemoteController

	events      []Event
	worldEvents []world.Event
}

// New creates a session in the lobby. controller drives the local actor in
// every match.
func New(cfg config.Config, role Role, weapon world.Weapon, controller world.Controller, rng world.Rand) *Session {
	return &Session{
		cfg:        cfg,
		role:       role,
		rng:        rng,
		controller: controller,
		logger:     slog.Default().With("role", role.String()),
		inbox:      make(chan inbound, queueSize),
		outbox:     make(chan protocol.Message, queueSize),
		done:       make(chan struct{}),
		weapon:     weapon,
	}
}

func (s *Session) Role() Role                      { return s.role }
func (s *Session) Phase() Phase                    { return s.phase }
func (s *Session) MatchID() uuid.UUID              { return s.matchID }
func (s *Session) World() *world.World             { return s.world }
func (s *Session) Local() *world.Actor             { return s.local }
func (s *Session) Remote() *world.Actor            { return s.remote }
func (s *Session) Weapon() world.Weapon            { return s.weapon }
func (s *Session) Won() bool                       { return s.won }
func (s *Session) Done() <-chan struct{}           { return s.done }
func (s *Session) Outbox() <-chan protocol.Message { return s.outbox }

// Connected tells the session the peer channel is open.
func (s *Session) Connected() {
	s.enqueue(inbound{connected: true})
}

// Deliver queues a decoded peer message for the next Step.
func (s *Session) Deliver(msg protocol.Message) {
	s.enqueue(inbound{msg: msg})
}

func (s *Session) enqueue(in inbound) {
	select {
	case s.inbox <- in:
	default:
		s.logger.Warn("inbox full, dropping message")
	}
}

// Disconnect records a transport failure. It is safe to call from any
// goroutine and more than once; only the first error is kept.
func (s *Session) Disconnect(err error) {
	if err == nil {
		err = ErrConnectionClosed
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.lost == nil {
		s.lost = err
	}
}

func (s *Session) send(msg protocol.Message) {
	select {
	case s.outbox <- msg:
	default:
		s.logger.Warn("outbox full, dropping message", "tag", msg.Tag())
	}
}

// SelectWeapon sets the weapon used for the next match this side starts or
// accepts.
func (s *Session) SelectWeapon(w world.Weapon) {
	s.weapon = w
}

// RequestRematch proposes a new match. Only the loser of a finished match
// may propose, once.
func (s *Session) RequestRematch(w world.Weapon) bool {
	if s.phase != PhaseOver || s.won || s.rematchSent {
		return false
	}
	s.weapon = w
	s.rematchSent = true

	msg := protocol.Rematch{Weapon: w}
	if s.role == RoleHost {
		s.obstacles = world.GenerateObstacles(s.cfg, s.rng)
		msg.Obstacles = s.obstacles
	}
	s.send(msg)
	s.logger.Info("rematch requested", "weapon", w)
	return true
}

// Leave sends returnToMenu and closes the session.
func (s *Session) Leave() {
	if s.phase.Terminal() {
		return
	}
	s.send(protocol.ReturnToMenu{})
	s.terminate(PhaseClosed)
}

func (s *Session) DrainEvents() []Event {
	events := s.events
	s.events = nil
	return events
}

// DrainWorldEvents returns simulation events of the current match for
// presentation.
func (s *Session) DrainWorldEvents() []world.Event {
	events := s.worldEvents
	s.worldEvents = nil
	return events
}

func (s *Session) emit(e Event) {
	e.MatchID = s.matchID
	s.events = append(s.events, e)
}

// Step drains the inbox, then advances the match by one tick and replicates
// the local actor.
func (s *Session) Step() {
	for len(s.inbox) > 0 {
		in := <-s.inbox
		if in.connected {
			s.handleConnected()
			continue
		}
		s.handle(in.msg)
	}

	s.mu.Lock()
	lost := s.lost
	s.mu.Unlock()
	if lost != nil && !s.phase.Terminal() {
		s.logger.Info("peer disconnected", "matchID", s.matchID, "err", lost)
		s.terminate(PhaseDisconnected)
		s.emit(Event{Kind: EventDisconnected, Err: lost})
	}

	if s.phase != PhaseBattle {
		return
	}
	s.world.Step()
	s.relayWorldEvents()
	if s.phase == PhaseBattle {
		s.send(protocol.Pos{X: s.local.Position.X, Y: s.local.Position.Y, HP: s.local.Health})
	}
}

// relayWorldEvents turns local volleys and local hits on the remote actor
// into peer messages.
func (s *Session) relayWorldEvents() {
	events := s.world.DrainEvents()
	s.worldEvents = append(s.worldEvents, events...)
	for _, e := range events {
		switch e.Kind {
		case world.EventFired:
			if e.Actor == s.local.ID {
				s.send(protocol.Fire{Angle: e.Angle})
			}
		case world.EventDamage:
			if e.Actor == s.remote.ID && e.Source == s.local.ID {
				s.send(protocol.Hit{Amount: e.Amount, Weapon: e.Weapon})
			}
		case world.EventKO:
			if e.Actor == s.remote.ID && s.phase == PhaseBattle {
				s.finish(true)
			}
		}
	}
}

func (s *Session) handleConnected() {
	if s.phase != PhaseLobby || s.readySent {
		return
	}
	msg := protocol.Ready{Weapon: s.weapon}
	if s.role == RoleHost {
		s.obstacles = world.GenerateObstacles(s.cfg, s.rng)
		msg.Obstacles = s.obstacles
	}
	s.send(msg)
	s.readySent = true
	s.logger.Info("connected", "weapon", s.weapon)
	if s.peerReady {
		s.startMatch()
	}
}

func (s *Session) handle(msg protocol.Message) {
	if s.phase.Terminal() {
		return
	}
	if _, ok := msg.(protocol.ReturnToMenu); ok {
		s.logger.Info("peer left", "matchID", s.matchID)
		s.terminate(PhaseClosed)
		s.emit(Event{Kind: EventPeerLeft})
		return
	}

	switch s.phase {
	case PhaseLobby:
		s.handleLobby(msg)
	case PhaseBattle:
		s.handleBattle(msg)
	case PhaseOver:
		s.handleOver(msg)
	}
}

func (s *Session) handleLobby(msg protocol.Message) {
	m, ok := msg.(protocol.Ready)
	if !ok {
		s.ignore(msg)
		return
	}
	s.peerWeapon = m.Weapon
	if s.role == RoleGuest {
		s.obstacles = m.Obstacles
	}
	s.peerReady = true
	if s.readySent {
		s.startMatch()
	}
}

func (s *Session) handleBattle(msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.Pos:
		s.remoteCtl.Follow(geom.V(m.X, m.Y))
		s.remote.Position = geom.V(m.X, m.Y)
		s.remote.SetHealth(m.HP)

	case protocol.Fire:
		s.world.SpawnReplica(s.remote, s.peerWeapon, m.Angle)

	case protocol.Hit:
		s.world.Damage(s.local, ksuid.Nil, m.Amount, m.Weapon)
		s.worldEvents = append(s.worldEvents, s.world.DrainEvents()...)
		if !s.local.Alive() {
			s.send(protocol.GameOver{})
			s.finish(false)
		}

	case protocol.GameOver:
		s.finish(true)

	default:
		s.ignore(msg)
	}
}

func (s *Session) handleOver(msg protocol.Message) {
	switch m := msg.(type) {
	case protocol.Rematch:
		if !s.won {
			s.ignore(msg)
			return
		}
		s.emit(Event{Kind: EventRematchProposed, Weapon: m.Weapon})
		s.peerWeapon = m.Weapon
		reply := protocol.RematchAccept{Weapon: s.weapon}
		if s.role == RoleHost {
			s.obstacles = world.GenerateObstacles(s.cfg, s.rng)
			reply.Obstacles = s.obstacles
		} else {
			s.obstacles = m.Obstacles
		}
		s.send(reply)
		s.startMatch()

	case protocol.Hit:
		// In a double KO the guest yields: a lethal hit that lands after its
		// own win turns the match into a loss.
		if !s.won || s.role != RoleGuest {
			s.ignore(msg)
			return
		}
		s.world.Damage(s.local, ksuid.Nil, m.Amount, m.Weapon)
		s.worldEvents = append(s.worldEvents, s.world.DrainEvents()...)
		if !s.local.Alive() {
			s.logger.Info("double KO, yielding", "matchID", s.matchID)
			s.send(protocol.GameOver{})
			s.finish(false)
		}

	case protocol.GameOver:
		if s.won || s.role != RoleHost {
			s.ignore(msg)
			return
		}
		s.logger.Info("double KO, peer yielded", "matchID", s.matchID)
		s.finish(true)

	case protocol.RematchAccept:
		if !s.rematchSent {
			s.ignore(msg)
			return
		}
		s.peerWeapon = m.Weapon
		if s.role == RoleGuest {
			s.obstacles = m.Obstacles
		}
		s.startMatch()

	default:
		s.ignore(msg)
	}
}

func (s *Session) ignore(msg protocol.Message) {
	s.logger.Debug("ignoring message", "tag", msg.Tag(), "phase", s.phase)
}

func (s *Session) startMatch() {
	s.matchID = uuid.New()
	s.world = world.NewWorld(s.cfg, world.NewField(s.obstacles), s.rng)
	s.remoteCtl = &world.RemoteController{}

	localSpec := world.PlayerSpec(s.cfg, s.weapon, s.controller)
	remoteSpec := world.TopSpec(s.cfg, "remote", s.peerWeapon, s.remoteCtl)
	if s.role == RoleGuest {
		localSpec = world.TopSpec(s.cfg, "player", s.weapon, s.controller)
		remoteSpec = world.PlayerSpec(s.cfg, s.peerWeapon, s.remoteCtl)
		remoteSpec.Name = "remote"
	}
	if ai, ok := s.controller.(*world.AIController); ok {
		localSpec.CooldownMultiplier = ai.Params().CooldownMultiplier
	}
	s.local = world.NewActor(localSpec)
	s.remote = world.NewActor(remoteSpec)
	s.remoteCtl.Follow(s.remote.Position)
	s.world.AddActor(s.local)
	s.world.AddActor(s.remote)

	s.phase = PhaseBattle
	s.won = false
	s.rematchSent = false
	s.worldEvents = nil
	s.emit(Event{Kind: EventMatchStarted, Weapon: s.weapon})
	s.logger.Info("match started", "matchID", s.matchID, "weapon", s.weapon, "peerWeapon", s.peerWeapon)
}

func (s *Session) finish(won bool) {
	s.phase = PhaseOver
	s.won = won
	s.rematchSent = false
	s.emit(Event{Kind: EventMatchOver, Won: won})
	s.logger.Info("match over", "matchID", s.matchID, "won", won)
}

func (s *Session) terminate(p Phase) {
	s.phase = p
	s.closeOnce.Do(func() { close(s.done) })
}
