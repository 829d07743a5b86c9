package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/Black-And-White-Club/frolf-broadcast/app"
	"github.com/Black-And-White-Club/frolf-broadcast/app/shared"
	"github.com/Black-And-White-Club/frolf-broadcast/config"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "frolf-broadcast",
		Usage: "drive live disc golf graphics from the scoring service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Value: "config.yaml", Usage: "path to the configuration file"},
			&cli.StringFlag{Name: "host", Usage: "production system host"},
			&cli.StringFlag{Name: "transport", Usage: "production transport: tcp or http"},
			&cli.StringFlag{Name: "event", Usage: "scoring event id"},
			&cli.StringFlag{Name: "player", Usage: "player focused at startup"},
			&cli.IntFlag{Name: "round", Usage: "1-based round to broadcast"},
			&cli.IntFlag{Name: "hole", Usage: "featured hole"},
			&cli.StringFlag{Name: "mode", Usage: "leaderboard movement mode: live or post_event"},
			&cli.StringFlag{Name: "addr", Usage: "control surface listen address"},
		},
		Action: run,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	if err := applyFlags(c); err != nil {
		return err
	}
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	logger := shared.NewLogger(os.Stdout, cfg.Observability.LogLevel, cfg.Observability.Environment)

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(ctx)
}

// flagEnv maps command line flags onto the environment overrides read by
// config.LoadConfig, so flags take precedence over both file and environment.
var flagEnv = map[string]string{
	"host":      "BROADCAST_HOST",
	"transport": "BROADCAST_TRANSPORT",
	"event":     "EVENT_ID",
	"player":    "FOCUSED_PLAYER",
	"round":     "ROUND",
	"hole":      "FEATURED_HOLE",
	"mode":      "LEADERBOARD_MODE",
	"addr":      "HTTP_ADDR",
}

func applyFlags(c *cli.Context) error {
	for flag, env := range flagEnv {
		if !c.IsSet(flag) {
			continue
		}
		value := c.String(flag)
		if flag == "round" || flag == "hole" {
			value = strconv.Itoa(c.Int(flag))
		}
		if err := os.Setenv(env, value); err != nil {
			return err
		}
	}
	return nil
}
