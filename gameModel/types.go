package gameModel

import (
	"errors"
	"fmt"
)

type Mode string

const (
	Solo       Mode = "solo"
	VsComputer Mode = "vs_computer"
	TwoPlayer  Mode = "two_player"
)

const (
	MaxRounds = 5
	MaxDice   = 6
	DieFaces  = 6
)

var ErrUnknownMode = errors.New("unknown game mode")

func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case Solo, VsComputer, TwoPlayer:
		return m, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// SideRoll is one side's dice for a single roll.
type SideRoll struct {
	Dice []int `json:"dice"`
	Sum  int   `json:"sum"`
}

type RollEvent struct {
	Player   *SideRoll `json:"player,omitempty"`
	Opponent *SideRoll `json:"opponent,omitempty"`
	// Winner is empty when the server sent null or omitted it.
	Winner string `json:"winner,omitempty"`
	Desc   string `json:"desc,omitempty"`
}

type RollRequest struct {
	Mode         Mode `json:"mode"`
	NumberOfDice int  `json:"number_of_dice"`
	Player       int  `json:"player,omitempty"`
}

type RollResponse struct {
	Event RollEvent `json:"event"`
	Stats *Stats    `json:"stats"`
}
