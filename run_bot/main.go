package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"example.com/arena/config"
	"example.com/arena/logging"
	"example.com/arena/server"
	"example.com/arena/session"
	"example.com/arena/utils"
	"example.com/arena/world"
)

// run_bot joins a hosted room with a CPU opponent and keeps asking for
// rematches after every loss.
func main() {
	logging.Setup()
	if err := run(os.Args); err != nil {
		logging.Fatal("bot exited", "err", err)
	}
}

func run(args []string) error {
	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}
	level, err := strconv.Atoi(utils.GetEnvDefault("BOT_LEVEL", "2"))
	if err != nil {
		return err
	}
	code := utils.GetEnvDefault("ROOM", "")
	if len(args) > 1 {
		code = args[1]
	}
	url := utils.GetEnvDefault("ADDR", "http://localhost:4242")

	rng := world.NewRand(time.Now().UnixNano())
	ai := world.NewAIController(cfg, level, rng)
	sess := session.New(cfg, session.RoleGuest, world.RandomWeapon(rng), ai, rng)
	logger := slog.With("room", code, "level", ai.Level())

	errc := make(chan error, 1)
	go func() {
		errc <- server.Join(context.Background(), url, code, sess)
	}()

	sigs, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Arena.TickRate))
	defer ticker.Stop()

	for {
		select {
		case <-sigs.Done():
			logger.Info("terminating")
			sess.Leave()
			select {
			case err := <-errc:
				return err
			case <-time.After(2 * time.Second):
				return nil
			}

		case err := <-errc:
			return err

		case <-ticker.C:
			sess.Step()
			sess.DrainWorldEvents()
			for _, e := range sess.DrainEvents() {
				switch e.Kind {
				case session.EventMatchOver:
					logger.Info("match over", "matchID", e.MatchID, "won", e.Won)
					if !e.Won {
						sess.RequestRematch(world.RandomWeapon(rng))
					}
				case session.EventPeerLeft, session.EventDisconnected:
					logger.Info("peer gone", "err", e.Err)
				}
			}
		}
	}
}
