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

	"github.com/tiggercwh/go-dice/client/repl"
	"github.com/tiggercwh/go-dice/config"
	"github.com/tiggercwh/go-dice/engine"
	"github.com/tiggercwh/go-dice/gameModel"
	"github.com/tiggercwh/go-dice/session"
)

// Offline play: the same client, with the game rules running in-process.
func main() {
	cfg, err := config.ParseClient(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[DICE] ")

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = engine.NewSeed(); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := repl.NewTerminalView()
	ctrl := session.New(engine.NewLocal(engine.New(seed)), view)
	mode, _ := gameModel.ParseMode(cfg.Mode)
	ctrl.SetMode(mode)
	if err := ctrl.SetDiceCount(cfg.DiceCount); err != nil {
		log.Fatalf("dice: %v", err)
	}

	fmt.Println("Welcome to Dice Roller (offline)!")
	if err := repl.Run(ctx, ctrl, view, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("offline: %v", err)
	}
}
