// Package engine implements the reference dice game rules: solo rolls,
// best-of-five against the computer, and a five-roll two player match.
package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/tiggercwh/go-dice/gameModel"
)

var (
	ErrInvalidDiceCount = errors.New("number_of_dice must be between 1 and 6")
	ErrInvalidPlayer    = errors.New("player must be 1 or 2")
)

const (
	WinnerYou      = "you"
	WinnerComputer = "computer"
	WinnerTie      = "tie"
	WinnerPlayer1  = "Player 1"
	WinnerPlayer2  = "Player 2"
)

// Game is the server-side game state. It is safe for concurrent use.
type Game struct {
	mu  sync.Mutex
	rng *rand.Rand

	totalRolls   int
	highestSum   int
	player1Score int
	player2Score int
	rounds       int
}

// New creates a game whose dice are deterministic for a given seed.
func New(seed int64) *Game {
	return &Game{rng: rand.New(rand.NewSource(seed))}
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func (g *Game) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.totalRolls, g.highestSum = 0, 0
	g.player1Score, g.player2Score = 0, 0
	g.rounds = 0
}

// Snapshot returns the full stats shape, as served by the state endpoint.
func (g *Game) Snapshot() gameModel.Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fullStats()
}

func (g *Game) Roll(req gameModel.RollRequest) (gameModel.RollResponse, error) {
	if _, err := gameModel.ParseMode(string(req.Mode)); err != nil {
		return gameModel.RollResponse{}, err
	}
	if req.NumberOfDice < 1 || req.NumberOfDice > gameModel.MaxDice {
		return gameModel.RollResponse{}, ErrInvalidDiceCount
	}
	if req.Mode == gameModel.TwoPlayer && req.Player != 1 && req.Player != 2 {
		return gameModel.RollResponse{}, ErrInvalidPlayer
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	switch req.Mode {
	case gameModel.VsComputer:
		return g.rollVsComputer(req.NumberOfDice), nil
	case gameModel.TwoPlayer:
		return g.rollTwoPlayer(req.NumberOfDice, req.Player), nil
	default:
		return g.rollSolo(req.NumberOfDice), nil
	}
}

func (g *Game) rollSolo(n int) gameModel.RollResponse {
	side := g.rollDice(n)
	g.totalRolls++
	g.trackHigh(side.Sum)
	return gameModel.RollResponse{
		Event: gameModel.RollEvent{
			Player: &side,
			Desc:   fmt.Sprintf("Solo rolled %v = %d", side.Dice, side.Sum),
		},
		Stats: &gameModel.Stats{
			TotalActions: gameModel.IntPtr(g.totalRolls),
			HighestSum:   gameModel.IntPtr(g.highestSum),
		},
	}
}

func (g *Game) rollVsComputer(n int) gameModel.RollResponse {
	if g.rounds >= gameModel.MaxRounds {
		return g.finalResponse(g.overallWinner(WinnerYou, WinnerComputer))
	}

	you, cpu := g.rollDice(n), g.rollDice(n)
	g.totalRolls++
	g.rounds++
	g.trackHigh(you.Sum)
	g.trackHigh(cpu.Sum)

	winner := WinnerTie
	switch {
	case you.Sum > cpu.Sum:
		winner = WinnerYou
		g.player1Score++
	case cpu.Sum > you.Sum:
		winner = WinnerComputer
		g.player2Score++
	}

	stats := g.fullStats()
	return gameModel.RollResponse{
		Event: gameModel.RollEvent{
			Player:   &you,
			Opponent: &cpu,
			Winner:   winner,
			Desc:     fmt.Sprintf("You rolled %v=%d | Computer rolled %v=%d", you.Dice, you.Sum, cpu.Dice, cpu.Sum),
		},
		Stats: &stats,
	}
}

func (g *Game) rollTwoPlayer(n, player int) gameModel.RollResponse {
	if g.rounds >= gameModel.MaxRounds {
		return g.finalResponse(g.overallWinner(WinnerPlayer1, WinnerPlayer2))
	}

	side := g.rollDice(n)
	g.totalRolls++
	g.rounds++
	g.trackHigh(side.Sum)
	if player == 1 {
		g.player1Score += side.Sum
	} else {
		g.player2Score += side.Sum
	}

	stats := g.fullStats()
	return gameModel.RollResponse{
		Event: gameModel.RollEvent{
			Player: &side,
			Desc:   fmt.Sprintf("P%d rolled %v = %d", player, side.Dice, side.Sum),
		},
		Stats: &stats,
	}
}

func (g *Game) finalResponse(winner string) gameModel.RollResponse {
	stats := g.fullStats()
	return gameModel.RollResponse{
		Event: gameModel.RollEvent{
			Winner: winner,
			Desc:   "🏁 GAME OVER — Final Winner: " + strings.ToUpper(winner),
		},
		Stats: &stats,
	}
}

func (g *Game) overallWinner(first, second string) string {
	switch {
	case g.player1Score > g.player2Score:
		return first
	case g.player2Score > g.player1Score:
		return second
	}
	return WinnerTie
}

func (g *Game) rollDice(n int) gameModel.SideRoll {
	dice := make([]int, n)
	sum := 0
	for i := range dice {
		dice[i] = g.rng.Intn(gameModel.DieFaces) + 1
		sum += dice[i]
	}
	return gameModel.SideRoll{Dice: dice, Sum: sum}
}

func (g *Game) trackHigh(sum int) {
	if sum > g.highestSum {
		g.highestSum = sum
	}
}

func (g *Game) fullStats() gameModel.Stats {
	return gameModel.Stats{
		TotalActions: gameModel.IntPtr(g.totalRolls),
		HighestSum:   gameModel.IntPtr(g.highestSum),
		Rounds:       gameModel.IntPtr(g.rounds),
		PlayerScores: map[string]int{
			"1": g.player1Score,
			"2": g.player2Score,
		},
	}
}
