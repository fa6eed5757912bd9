package engine

import (
	"context"

	"github.com/tiggercwh/go-dice/gameModel"
)

// Local serves a Game in-process, without HTTP, for offline play.
type Local struct {
	Game *Game
}

func NewLocal(g *Game) *Local {
	return &Local{Game: g}
}

func (l *Local) Roll(ctx context.Context, req gameModel.RollRequest) (gameModel.RollResponse, error) {
	if err := ctx.Err(); err != nil {
		return gameModel.RollResponse{}, err
	}
	return l.Game.Roll(req)
}

func (l *Local) State(ctx context.Context) (*gameModel.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s := l.Game.Snapshot()
	return &s, nil
}

func (l *Local) Reset(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.Game.Reset()
	return nil
}
