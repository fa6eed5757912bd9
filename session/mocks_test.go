package session

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/tiggercwh/go-dice/gameModel"
)

var errUnreachable = errors.New("connection refused")

type MockGameServer struct {
	Responses []gameModel.RollResponse
	RollErr   error
	Requests  []gameModel.RollRequest
	// OnRoll runs after the request is recorded and before the response is returned.
	OnRoll func()

	StateStats *gameModel.Stats
	StateErr   error
	StateCalls int

	ResetErr   error
	ResetCalls int
}

func (m *MockGameServer) Roll(ctx context.Context, req gameModel.RollRequest) (gameModel.RollResponse, error) {
	m.Requests = append(m.Requests, req)
	if m.OnRoll != nil {
		m.OnRoll()
	}
	if m.RollErr != nil {
		return gameModel.RollResponse{}, m.RollErr
	}
	if len(m.Responses) == 0 {
		return gameModel.RollResponse{}, errors.New("no scripted response")
	}
	resp := m.Responses[0]
	m.Responses = m.Responses[1:]
	return resp, nil
}

func (m *MockGameServer) State(ctx context.Context) (*gameModel.Stats, error) {
	m.StateCalls++
	return m.StateStats, m.StateErr
}

func (m *MockGameServer) Reset(ctx context.Context) error {
	m.ResetCalls++
	return m.ResetErr
}

type MockView struct {
	dice         map[Area][]int
	placeholders map[Area]int
	message      string
	history      []string
	stats        *gameModel.Stats
	enabled      bool
	labels       gameModel.Mode
	actions      []Action
}

func newMockView() *MockView {
	return &MockView{dice: map[Area][]int{}, placeholders: map[Area]int{}}
}

func (m *MockView) RenderDice(area Area, values []int) { m.dice[area] = values }
func (m *MockView) RenderPlaceholders(area Area, n int) {
	m.placeholders[area] = n
	delete(m.dice, area)
}
func (m *MockView) SetMessage(text string) { m.message = text }
func (m *MockView) PrependHistory(text string) { m.history = append([]string{text}, m.history...) }
func (m *MockView) ClearHistory() { m.history = nil }
func (m *MockView) UpdateStats(stats *gameModel.Stats) { m.stats = stats }
func (m *MockView) SetButtonsEnabled(enabled bool) { m.enabled = enabled }
func (m *MockView) SetModeLabels(mode gameModel.Mode) { m.labels = mode }
func (m *MockView) SetActions(actions []Action) { m.actions = actions }

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func newTestController(server *MockGameServer) (*Controller, *MockView) {
	view := newMockView()
	c := New(server, view, WithLogger(quietLogger()))
	c.Start(context.Background())
	return c, view
}

func side(sum int, dice ...int) *gameModel.SideRoll {
	return &gameModel.SideRoll{Dice: dice, Sum: sum}
}

func statsWithRounds(r int) *gameModel.Stats {
	return &gameModel.Stats{Rounds: gameModel.IntPtr(r)}
}
