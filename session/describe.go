package session

import (
	"fmt"
	"strings"

	"github.com/tiggercwh/go-dice/gameModel"
)

const finalRoundFallback = "Final round"

var bracketStripper = strings.NewReplacer("[", "", "]", "")

func DescribeSolo(round int, ev gameModel.RollEvent) string {
	return fmt.Sprintf("Round %d: You rolled %d", round, ev.Player.Sum)
}

func DescribeVsComputer(round int, ev gameModel.RollEvent) string {
	return fmt.Sprintf("Round %d: You rolled %d | Computer rolled %d", round, ev.Player.Sum, ev.Opponent.Sum)
}

func DescribeTwoPlayer(round int, actor Actor, ev gameModel.RollEvent) string {
	return fmt.Sprintf("Round %d: Player %d rolled %d", round, int(actor), ev.Player.Sum)
}

// DescribeTwoPlayerFinal uses the server text because the client cannot tell
// which player's roll closed the game. Brackets are stripped from it.
func DescribeTwoPlayerFinal(round int, ev gameModel.RollEvent) string {
	desc := strings.TrimSpace(bracketStripper.Replace(ev.Desc))
	if desc == "" {
		desc = finalRoundFallback
	}
	return fmt.Sprintf("Round %d: %s", round, desc)
}

// describeRound returns the history line for a normal roll, or false when the
// event lacks the sides the mode needs.
func describeRound(mode gameModel.Mode, round int, actor Actor, ev gameModel.RollEvent) (string, bool) {
	switch mode {
	case gameModel.VsComputer:
		if ev.Player == nil || ev.Opponent == nil {
			return "", false
		}
		return DescribeVsComputer(round, ev), true
	case gameModel.TwoPlayer:
		if ev.Player == nil {
			return "", false
		}
		return DescribeTwoPlayer(round, actor, ev), true
	default:
		if ev.Player == nil {
			return "", false
		}
		return DescribeSolo(round, ev), true
	}
}

func describeFinal(mode gameModel.Mode, round int, ev gameModel.RollEvent) (string, bool) {
	if mode == gameModel.TwoPlayer {
		return DescribeTwoPlayerFinal(round, ev), true
	}
	return describeRound(mode, round, ActorSingle, ev)
}

func gameOverMessage(winner string) string {
	return "🏁 GAME OVER — Winner: " + strings.ToUpper(winner)
}

func vsComputerMessage(winner string) string {
	switch winner {
	case "you":
		return "🎉 You win!"
	case "computer":
		return "💻 Computer wins!"
	default:
		return "🤝 Tie!"
	}
}
