package config

import (
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/tiggercwh/go-dice/gameModel"
)

type envTestConfig struct {
	Port int `env:"DICE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("DICE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env error, got %v", err)
	}
}

func TestParseServerFlagsOverrideEnv(t *testing.T) {
	t.Setenv("DICE_PORT", "9000")
	t.Setenv("DICE_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := ParseServer(flag.NewFlagSet("server", flag.ContinueOnError), []string{"-seed", "42"})
	if err != nil {
		t.Fatalf("ParseServer: %v", err)
	}
	if cfg.Port != 9000 || cfg.Seed != 42 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "http://b.test" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestParseServerRejectsBadPort(t *testing.T) {
	if _, err := ParseServer(flag.NewFlagSet("server", flag.ContinueOnError), []string{"-port", "0"}); err == nil {
		t.Fatal("expected error for port 0")
	}
}

func TestParseClientDefaults(t *testing.T) {
	cfg, err := ParseClient(flag.NewFlagSet("client", flag.ContinueOnError), nil)
	if err != nil {
		t.Fatalf("ParseClient: %v", err)
	}
	if cfg.ServerURL != "http://localhost:8080/api" || cfg.HTTPTimeout != 8*time.Second {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mode != "solo" || cfg.DiceCount != 1 || cfg.Watch {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestParseClientValidates(t *testing.T) {
	_, err := ParseClient(flag.NewFlagSet("client", flag.ContinueOnError), []string{"-mode", "coop"})
	if !errors.Is(err, gameModel.ErrUnknownMode) {
		t.Fatalf("expected ErrUnknownMode, got %v", err)
	}
	if _, err := ParseClient(flag.NewFlagSet("client", flag.ContinueOnError), []string{"-dice", "7"}); err == nil {
		t.Fatal("expected error for 7 dice")
	}
}
