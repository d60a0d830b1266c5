package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/http/pprof"
	"strings"
	"sync"
	"time"

	"example.com/arena/session"
	"example.com/arena/world"

	"nhooyr.io/websocket"
)

var (
	ErrBadRoomCode = errors.New("no room with that code")
	ErrRoomFull    = errors.New("room already has a guest")
)

// NewRoomCode returns a four digit room code.
func NewRoomCode(rng world.Rand) string {
	return fmt.Sprintf("%04d", 1000+int(rng.Float64()*9000))
}

// Room accepts exactly one guest for a hosted session.
type Room struct {
	code     string
	sess     *session.Session
	serveMux http.ServeMux

	mu    sync.Mutex
	taken bool
}

func NewRoom(code string, sess *session.Session) *Room {
	r := &Room{
		code: code,
		sess: sess,
	}
	r.serveMux.HandleFunc("GET /room/{code}", r.onConnection)
	r.serveMux.HandleFunc("/debug/pprof/", pprof.Index)
	r.serveMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	r.serveMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	r.serveMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	r.serveMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return r
}

func (r *Room) Code() string { return r.code }

func (r *Room) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.serveMux.ServeHTTP(w, req)
}

func (r *Room) claim() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.taken {
		return false
	}
	r.taken = true
	return true
}

func (r *Room) onConnection(w http.ResponseWriter, req *http.Request) {
	if req.PathValue("code") != r.code {
		http.NotFound(w, req)
		return
	}
	if !r.claim() {
		http.Error(w, ErrRoomFull.Error(), http.StatusConflict)
		return
	}

	c, err := websocket.Accept(w, req, nil)
	if err != nil {
		slog.Error("accept guest", "err", err)
		r.sess.Disconnect(err)
		return
	}
	slog.Info("guest joined", "room", r.code, "remote", req.RemoteAddr)

	if err := Link(req.Context(), NewTransport(c), r.sess); err != nil {
		slog.Info("guest link ended", "room", r.code, "err", err)
	}
}

// Host serves the room on addr until the session ends or ctx is cancelled.
func Host(ctx context.Context, addr string, room *Room) error {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	slog.Info("hosting", "url", fmt.Sprintf("http://%v", l.Addr()), "room", room.Code())

	s := &http.Server{
		Handler:           room,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		errc <- s.Serve(l)
	}()

	select {
	case err := <-errc:
		return err
	case <-room.sess.Done():
	case <-ctx.Done():
		slog.Info("terminating", "err", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Join dials the host's room and links sess to it.
func Join(ctx context.Context, baseURL, code string, sess *session.Session) error {
	url := strings.TrimSuffix(baseURL, "/") + "/room/" + code
	c, resp, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		if resp != nil {
			switch resp.StatusCode {
			case http.StatusNotFound:
				err = ErrBadRoomCode
			case http.StatusConflict:
				err = ErrRoomFull
			}
		}
		sess.Disconnect(err)
		return fmt.Errorf("join %s: %w", url, err)
	}
	slog.Info("joined", "url", url)
	return Link(ctx, NewTransport(c), sess)
}
