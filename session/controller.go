package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/tiggercwh/go-dice/gameModel"
)

const (
	welcomeMessage      = "Choose mode and roll!"
	networkErrorMessage = "Network or server error."
	resetFailedMessage  = "Reset failed."
)

// GameServer is the remote authority for dice, rounds and winners.
type GameServer interface {
	Roll(ctx context.Context, req gameModel.RollRequest) (gameModel.RollResponse, error)
	State(ctx context.Context) (*gameModel.Stats, error)
	Reset(ctx context.Context) error
}

type Area int

const (
	AreaPlayer   Area = 1
	AreaOpponent Area = 2
)

// View receives every visible change. The controller calls it while holding
// its lock, so implementations must not call back into the controller.
type View interface {
	RenderDice(area Area, values []int)
	RenderPlaceholders(area Area, n int)
	SetMessage(text string)
	PrependHistory(text string)
	ClearHistory()
	UpdateStats(stats *gameModel.Stats)
	SetButtonsEnabled(enabled bool)
	SetModeLabels(mode gameModel.Mode)
	SetActions(actions []Action)
}

// Controller owns the Session and applies mode, dice, roll and reset
// transitions to it.
//
// Rolls are serialized: a second roll waits for the first exchange to finish.
// Reset and SetMode bump a generation counter so responses to requests sent
// before them are dropped instead of applied.
type Controller struct {
	server GameServer
	view   View
	logger *log.Logger

	rollMu sync.Mutex

	mu   sync.Mutex
	sess Session
	gen  uint64
}

type Option func(*Controller)

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func New(server GameServer, view View, opts ...Option) *Controller {
	c := &Controller{
		server: server,
		view:   view,
		logger: log.Default(),
		sess:   NewSession(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns a copy of the current session.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sess
}

// Start draws the initial UI and pulls the server stats.
func (c *Controller) Start(ctx context.Context) {
	c.mu.Lock()
	c.resetLocalUI()
	c.mu.Unlock()
	c.resync(ctx)
}

func (c *Controller) SetMode(m gameModel.Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.Mode = m
	c.gen++
	c.sess.restart()
	c.resetLocalUI()
}

func (c *Controller) SetDiceCount(n int) error {
	if err := validDiceCount(n); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sess.DiceCount = n
	c.redrawPlaceholders()
	return nil
}

// Reset asks the server to reset and then resets locally whatever the outcome.
// Stats are only resynced when the server call succeeded, so the session
// always ends at round zero.
func (c *Controller) Reset(ctx context.Context) error {
	err := c.server.Reset(ctx)

	c.mu.Lock()
	c.gen++
	c.sess.restart()
	c.resetLocalUI()
	if err != nil {
		c.view.SetMessage(resetFailedMessage)
		c.logger.Printf("reset: %v", err)
	}
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	c.resync(ctx)
	return nil
}

func (c *Controller) resync(ctx context.Context) {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	stats, err := c.server.State(ctx)
	if err != nil {
		c.logger.Printf("fetch state: %v", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return
	}
	c.pushStats(stats)
	if r, ok := stats.RoundsValue(); ok {
		c.sess.CurrentRound = r
	}
}

// resetLocalUI must be called with c.mu held.
func (c *Controller) resetLocalUI() {
	c.view.ClearHistory()
	c.view.SetMessage(welcomeMessage)
	c.view.UpdateStats(&gameModel.Stats{
		TotalActions: gameModel.IntPtr(0),
		HighestSum:   gameModel.IntPtr(0),
	})
	c.view.SetButtonsEnabled(true)
	c.redrawPlaceholders()
	c.view.SetModeLabels(c.sess.Mode)
	c.view.SetActions(ActionsFor(c.sess.Mode))
}

func (c *Controller) redrawPlaceholders() {
	c.view.RenderPlaceholders(AreaPlayer, c.sess.DiceCount)
	c.view.RenderPlaceholders(AreaOpponent, c.sess.DiceCount)
}

func (c *Controller) pushStats(stats *gameModel.Stats) {
	if stats == nil {
		return
	}
	c.view.UpdateStats(stats)
}
