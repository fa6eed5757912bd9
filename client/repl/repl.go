// Package repl runs the line-oriented dice client shared by the networked and
// offline binaries.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tiggercwh/go-dice/gameModel"
	"github.com/tiggercwh/go-dice/session"
)

const helpText = `Commands:
  solo | cpu | two    switch mode (clears the round)
  dice N              roll N dice (1-6)
  roll                roll in solo / vs computer
  p1 | p2             roll for player 1 or 2 in two player mode
  reset               reset the game on the server
  help                show this help
  quit                leave`

// Run reads commands from in until EOF, "quit" or ctx is done, rendering a
// frame to out after every command.
func Run(ctx context.Context, ctrl *session.Controller, view *TerminalView, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	ctrl.Start(ctx)
	view.Render(out)

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}

		var err error
		switch fields[0] {
		case "quit", "exit", "q":
			return nil
		case "help", "?":
			fmt.Fprintln(out, helpText)
			continue
		case "solo":
			ctrl.SetMode(gameModel.Solo)
		case "cpu", "vs", "vs_computer":
			ctrl.SetMode(gameModel.VsComputer)
		case "two", "two_player":
			ctrl.SetMode(gameModel.TwoPlayer)
		case "dice":
			err = setDice(ctrl, fields[1:])
		case "roll", "r":
			err = ctrl.Roll(ctx, session.ActorSingle)
		case "p1":
			err = ctrl.Roll(ctx, session.Player1)
		case "p2":
			err = ctrl.Roll(ctx, session.Player2)
		case "reset":
			err = ctrl.Reset(ctx)
		default:
			fmt.Fprintf(out, "Unknown command %q. Type help.\n", fields[0])
			continue
		}

		switch {
		case errors.Is(err, session.ErrActorMode):
			if ctrl.Session().Mode == gameModel.TwoPlayer {
				fmt.Fprintln(out, "In two player mode use p1 or p2.")
			} else {
				fmt.Fprintln(out, "Use roll outside two player mode.")
			}
			continue
		case errors.Is(err, session.ErrInvalidDiceCount):
			fmt.Fprintln(out, err)
			continue
		}
		// Transport errors are already on screen as the status message.
		view.Render(out)
	}
}

func setDice(ctrl *session.Controller, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: usage dice N", session.ErrInvalidDiceCount)
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", session.ErrInvalidDiceCount, args[0])
	}
	return ctrl.SetDiceCount(n)
}
