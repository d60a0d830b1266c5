package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"time"

	"example.com/arena/client"
	"example.com/arena/config"
	"example.com/arena/logging"
	"example.com/arena/server"
	"example.com/arena/session"
	"example.com/arena/utils"
	"example.com/arena/world"

	"github.com/hajimehoshi/ebiten/v2"
)

const usage = `usage:
  arena battle [weapon] [level]
  arena training [weapon]
  arena host [weapon] [addr]
  arena join CODE [weapon] [url]`

func main() {
	logging.Setup()

	cfg, err := config.FromEnv()
	if err != nil {
		logging.Fatal("load config", "err", err)
	}
	if err := run(cfg, os.Args[1:]); err != nil {
		logging.Fatal("arena exited", "err", err)
	}
}

func arg(args []string, i int, fallback string) string {
	if i < len(args) && args[i] != "" {
		return args[i]
	}
	return fallback
}

func parseWeapon(s string, rng world.Rand) (world.Weapon, error) {
	if s == "" || s == "random" {
		return world.RandomWeapon(rng), nil
	}
	return world.ParseWeapon(s)
}

func run(cfg config.Config, args []string) error {
	mode := arg(args, 0, "battle")
	if len(args) > 0 {
		args = args[1:]
	}
	rng := world.NewRand(time.Now().UnixNano())

	assets, err := client.LoadAssets()
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(int(cfg.Arena.Width), int(cfg.Arena.Height))
	ebiten.SetWindowTitle("Arena")
	ebiten.SetTPS(cfg.Arena.TickRate)

	switch mode {
	case "battle":
		weapon, err := parseWeapon(arg(args, 0, ""), rng)
		if err != nil {
			return err
		}
		level, err := strconv.Atoi(arg(args, 1, "1"))
		if err != nil {
			return fmt.Errorf("level: %w", err)
		}
		match := world.NewBattle(cfg, weapon, level, rng)
		return ebiten.RunGame(client.NewLocalGame(cfg, assets, match, weapon))

	case "training":
		weapon, err := parseWeapon(arg(args, 0, ""), rng)
		if err != nil {
			return err
		}
		match := world.NewTraining(cfg, weapon, rng)
		return ebiten.RunGame(client.NewLocalGame(cfg, assets, match, weapon))

	case "host":
		weapon, err := parseWeapon(arg(args, 0, ""), rng)
		if err != nil {
			return err
		}
		addr := arg(args, 1, utils.GetEnvDefault("ADDR", "localhost:4242"))
		code := utils.GetEnvDefault("ROOM", server.NewRoomCode(rng))

		input := &world.InputController{}
		sess := session.New(cfg, session.RoleHost, weapon, input, rng)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			if err := server.Host(ctx, addr, server.NewRoom(code, sess)); err != nil {
				slog.Error("host", "err", err)
				sess.Disconnect(err)
			}
		}()
		return ebiten.RunGame(client.NewOnlineGame(cfg, assets, sess, input, code))

	case "join":
		code := arg(args, 0, utils.GetEnvDefault("ROOM", ""))
		if code == "" {
			return fmt.Errorf("join needs a room code\n%s", usage)
		}
		weapon, err := parseWeapon(arg(args, 1, ""), rng)
		if err != nil {
			return err
		}
		url := arg(args, 2, utils.GetEnvDefault("ADDR", "http://localhost:4242"))

		input := &world.InputController{}
		sess := session.New(cfg, session.RoleGuest, weapon, input, rng)
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		go func() {
			if err := server.Join(ctx, url, code, sess); err != nil {
				slog.Error("join", "err", err)
			}
		}()
		return ebiten.RunGame(client.NewOnlineGame(cfg, assets, sess, input, code))
	}
	return fmt.Errorf("unknown mode %q\n%s", mode, usage)
}
