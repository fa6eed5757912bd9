// Package session holds the client-side game session and the controller that
// keeps it in step with the game server.
package session

import (
	"errors"
	"fmt"

	"github.com/tiggercwh/go-dice/gameModel"
)

var (
	ErrInvalidDiceCount = errors.New("dice count out of range")
	ErrActorMode        = errors.New("roll actor does not match mode")
)

// Session is the local view of a game. CurrentRound caches the server's round
// count; the server wins whenever it reports one.
type Session struct {
	Mode         gameModel.Mode
	DiceCount    int
	CurrentRound int
	GameOver     bool
}

func NewSession() Session {
	return Session{Mode: gameModel.Solo, DiceCount: 1}
}

// restart clears round progress but keeps mode and dice count.
func (s *Session) restart() {
	s.CurrentRound = 0
	s.GameOver = false
}

// syncRound applies the server round count, or counts locally when the stats
// carry none.
func (s *Session) syncRound(stats *gameModel.Stats) {
	if r, ok := stats.RoundsValue(); ok {
		s.CurrentRound = r
		return
	}
	s.CurrentRound++
}

func validDiceCount(n int) error {
	if n < 1 || n > gameModel.MaxDice {
		return fmt.Errorf("%w: %d (want 1-%d)", ErrInvalidDiceCount, n, gameModel.MaxDice)
	}
	return nil
}

// Actor identifies who pressed a roll action.
type Actor int

const (
	ActorSingle Actor = 0
	Player1     Actor = 1
	Player2     Actor = 2
)

func (a Actor) allowedIn(m gameModel.Mode) bool {
	if m == gameModel.TwoPlayer {
		return a == Player1 || a == Player2
	}
	return a == ActorSingle
}

// Action is a roll control the view can show.
type Action string

const (
	ActionRoll   Action = "roll"
	ActionRollP1 Action = "roll_p1"
	ActionRollP2 Action = "roll_p2"
)

// ActionsFor returns the roll actions visible in mode. The single roll and the
// per-player rolls are never visible together.
func ActionsFor(m gameModel.Mode) []Action {
	if m == gameModel.TwoPlayer {
		return []Action{ActionRollP1, ActionRollP2}
	}
	return []Action{ActionRoll}
}
