// Package config loads binary configuration from the environment and then
// lets command-line flags override it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tiggercwh/go-dice/gameModel"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

type Server struct {
	Port           int      `env:"DICE_PORT" envDefault:"8080"`
	Seed           int64    `env:"DICE_SEED"`
	AllowedOrigins []string `env:"DICE_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
}

// ParseServer parses environment and flags into a Server config.
func ParseServer(fs *flag.FlagSet, args []string) (Server, error) {
	var cfg Server
	if err := ParseEnv(&cfg); err != nil {
		return Server{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "Port to listen on")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Dice seed (0 picks a random one)")
	if err := fs.Parse(args); err != nil {
		return Server{}, err
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Server{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	return cfg, nil
}

type Client struct {
	ServerURL   string        `env:"DICE_SERVER_URL" envDefault:"http://localhost:8080/api"`
	HTTPTimeout time.Duration `env:"DICE_HTTP_TIMEOUT" envDefault:"8s"`
	Mode        string        `env:"DICE_MODE" envDefault:"solo"`
	DiceCount   int           `env:"DICE_COUNT" envDefault:"1"`
	Watch       bool          `env:"DICE_WATCH"`
	Seed        int64         `env:"DICE_SEED"`
}

// ParseClient parses environment and flags into a Client config.
func ParseClient(fs *flag.FlagSet, args []string) (Client, error) {
	var cfg Client
	if err := ParseEnv(&cfg); err != nil {
		return Client{}, err
	}
	fs.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Game server API base URL")
	fs.DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "Per-request timeout")
	fs.StringVar(&cfg.Mode, "mode", cfg.Mode, "Starting mode: solo, vs_computer or two_player")
	fs.IntVar(&cfg.DiceCount, "dice", cfg.DiceCount, "Starting number of dice")
	fs.BoolVar(&cfg.Watch, "watch", cfg.Watch, "Print live stats pushed by the server")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Dice seed for offline play (0 picks a random one)")
	if err := fs.Parse(args); err != nil {
		return Client{}, err
	}
	if _, err := gameModel.ParseMode(cfg.Mode); err != nil {
		return Client{}, err
	}
	if cfg.DiceCount < 1 || cfg.DiceCount > gameModel.MaxDice {
		return Client{}, fmt.Errorf("dice count must be between 1 and %d", gameModel.MaxDice)
	}
	if cfg.HTTPTimeout <= 0 {
		return Client{}, errors.New("timeout must be positive")
	}
	return cfg, nil
}
