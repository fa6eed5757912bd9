package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/tiggercwh/go-dice/apiclient"
	"github.com/tiggercwh/go-dice/client/repl"
	"github.com/tiggercwh/go-dice/config"
	"github.com/tiggercwh/go-dice/gameModel"
	"github.com/tiggercwh/go-dice/session"
)

func main() {
	cfg, err := config.ParseClient(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DICE] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := apiclient.NewClient(cfg.ServerURL, cfg.HTTPTimeout)
	view := repl.NewTerminalView()
	ctrl := session.New(client, view)

	// ParseClient already validated the mode.
	mode, _ := gameModel.ParseMode(cfg.Mode)
	ctrl.SetMode(mode)
	if err := ctrl.SetDiceCount(cfg.DiceCount); err != nil {
		log.Fatalf("dice: %v", err)
	}

	if cfg.Watch {
		go func() {
			err := client.WatchStats(ctx, func(s *gameModel.Stats) {
				fmt.Println(repl.RenderStatsLine(s))
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("stats feed: %v", err)
			}
		}()
	}

	fmt.Println("Welcome to Dice Roller!")
	fmt.Printf("Playing against %s. Type help for commands.\n", cfg.ServerURL)
	if err := repl.Run(ctx, ctrl, view, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("client: %v", err)
	}
}
