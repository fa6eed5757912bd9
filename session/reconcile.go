package session

import (
	"context"
	"fmt"

	"github.com/tiggercwh/go-dice/gameModel"
)

// Roll sends one roll for actor and folds the response into the session.
// It is a no-op once the game is over. Transport failures leave the session
// untouched and surface as a generic message.
func (c *Controller) Roll(ctx context.Context, actor Actor) error {
	c.rollMu.Lock()
	defer c.rollMu.Unlock()

	c.mu.Lock()
	sess, gen := c.sess, c.gen
	c.mu.Unlock()

	if sess.GameOver {
		return nil
	}
	if !actor.allowedIn(sess.Mode) {
		return fmt.Errorf("%w: actor %d in %s", ErrActorMode, int(actor), sess.Mode)
	}

	req := gameModel.RollRequest{Mode: sess.Mode, NumberOfDice: sess.DiceCount}
	if sess.Mode == gameModel.TwoPlayer {
		req.Player = int(actor)
	}
	resp, err := c.server.Roll(ctx, req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.logger.Printf("dropping stale roll response (mode %s, generation %d)", sess.Mode, gen)
		return nil
	}
	if err != nil {
		c.view.SetMessage(networkErrorMessage)
		c.logger.Printf("roll: %v", err)
		return fmt.Errorf("roll: %w", err)
	}
	c.reconcile(sess.Mode, actor, resp)
	return nil
}

// IsGameOver reports whether a roll response ends the game: the event names a
// winner and the server round count has reached the limit.
func IsGameOver(ev gameModel.RollEvent, stats *gameModel.Stats) bool {
	if ev.Winner == "" {
		return false
	}
	r, ok := stats.RoundsValue()
	return ok && r >= gameModel.MaxRounds
}

// reconcile must be called with c.mu held.
func (c *Controller) reconcile(mode gameModel.Mode, actor Actor, resp gameModel.RollResponse) {
	ev, stats := resp.Event, resp.Stats
	c.sess.syncRound(stats)
	round := c.sess.CurrentRound

	if IsGameOver(ev, stats) {
		if desc, ok := describeFinal(mode, round, ev); ok {
			c.view.PrependHistory(desc)
		}
		c.view.SetMessage(gameOverMessage(ev.Winner))
		c.view.SetButtonsEnabled(false)
		c.sess.GameOver = true
		c.pushStats(stats)
		return
	}

	switch mode {
	case gameModel.VsComputer:
		if ev.Player != nil {
			c.view.RenderDice(AreaPlayer, ev.Player.Dice)
		}
		if ev.Opponent != nil {
			c.view.RenderDice(AreaOpponent, ev.Opponent.Dice)
		}
		if desc, ok := describeRound(mode, round, actor, ev); ok {
			c.view.SetMessage(vsComputerMessage(ev.Winner))
			c.view.PrependHistory(desc)
		}
	case gameModel.TwoPlayer:
		if ev.Player != nil {
			area := AreaPlayer
			if actor == Player2 {
				area = AreaOpponent
			}
			c.view.RenderDice(area, ev.Player.Dice)
			c.view.SetMessage(fmt.Sprintf("Player %d rolled %d", int(actor), ev.Player.Sum))
			c.view.PrependHistory(DescribeTwoPlayer(round, actor, ev))
		}
	default:
		if ev.Player != nil {
			c.view.RenderDice(AreaPlayer, ev.Player.Dice)
			c.view.SetMessage(fmt.Sprintf("You rolled %d", ev.Player.Sum))
			c.view.PrependHistory(DescribeSolo(round, ev))
		}
	}
	c.pushStats(stats)
}
