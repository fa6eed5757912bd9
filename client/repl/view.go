package repl

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/tiggercwh/go-dice/gameModel"
	"github.com/tiggercwh/go-dice/session"
)

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	clrBorder = lipgloss.Color("#30363d")
	clrSubtle = lipgloss.Color("#8b949e")
	clrGold   = lipgloss.Color("#e3b341")
	clrGreen  = lipgloss.Color("#3fb950")
	clrRed    = lipgloss.Color("#f85149")
	clrTitle  = lipgloss.Color("#58a6ff")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(clrBorder).
			Padding(0, 1)
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func bold(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c).Bold(true)
}

var faces = []string{"⚀", "⚁", "⚂", "⚃", "⚄", "⚅"}

const (
	placeholderGlyph = "🎲"
	historyShown     = 10
)

func face(v int) string {
	if v < 1 || v > len(faces) {
		return "?"
	}
	return faces[v-1]
}

type diceArea struct {
	label string
	dice  []string
	shown bool
}

// TerminalView draws the game as text frames. It is safe to update from the
// controller while a frame is being rendered.
type TerminalView struct {
	mu sync.Mutex

	areas   map[session.Area]*diceArea
	message string
	history []string
	total   int
	high    int
	p1Score int
	p2Score int
	enabled bool
	actions []session.Action
}

func NewTerminalView() *TerminalView {
	return &TerminalView{
		areas: map[session.Area]*diceArea{
			session.AreaPlayer:   {shown: true},
			session.AreaOpponent: {},
		},
		enabled: true,
	}
}

func (v *TerminalView) RenderDice(area session.Area, values []int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	glyphs := make([]string, len(values))
	for i, d := range values {
		glyphs[i] = face(d)
	}
	v.areas[area].dice = glyphs
}

func (v *TerminalView) RenderPlaceholders(area session.Area, n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	glyphs := make([]string, n)
	for i := range glyphs {
		glyphs[i] = placeholderGlyph
	}
	v.areas[area].dice = glyphs
}

func (v *TerminalView) SetMessage(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.message = text
}

func (v *TerminalView) PrependHistory(text string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = append([]string{text}, v.history...)
}

func (v *TerminalView) ClearHistory() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = nil
}

// UpdateStats keeps the previous totals for fields the server left out.
func (v *TerminalView) UpdateStats(stats *gameModel.Stats) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.total = stats.TotalActionsOr(v.total)
	v.high = stats.HighestSumOr(v.high)
	v.p1Score = stats.ScoreOr(1, 0)
	v.p2Score = stats.ScoreOr(2, 0)
}

func (v *TerminalView) SetButtonsEnabled(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.enabled = enabled
}

func (v *TerminalView) SetModeLabels(mode gameModel.Mode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	p, o := v.areas[session.AreaPlayer], v.areas[session.AreaOpponent]
	switch mode {
	case gameModel.VsComputer:
		p.label, o.label, o.shown = "You 🎯", "Computer 💻", true
	case gameModel.TwoPlayer:
		p.label, o.label, o.shown = "Player 1 🧑", "Player 2 👩", true
	default:
		p.label, o.label, o.shown = "You 🎯", "", false
	}
}

func (v *TerminalView) SetActions(actions []session.Action) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.actions = actions
}

// Render writes one frame.
func (v *TerminalView) Render(w io.Writer) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var b strings.Builder
	for _, area := range []session.Area{session.AreaPlayer, session.AreaOpponent} {
		a := v.areas[area]
		if !a.shown {
			continue
		}
		fmt.Fprintf(&b, "%s  %s\n", bold(clrTitle).Render(fmt.Sprintf("%-14s", a.label)), strings.Join(a.dice, " "))
	}
	fmt.Fprintf(&b, "\n%s\n", bold(clrGold).Render(v.message))
	fmt.Fprintf(&b, "%s\n", fg(clrSubtle).Render(fmt.Sprintf(
		"Total: %d  High: %d  P1 Score: %d  P2 Score: %d", v.total, v.high, v.p1Score, v.p2Score)))

	if len(v.history) > 0 {
		b.WriteString("\n")
		for i, line := range v.history {
			if i == historyShown {
				fmt.Fprintf(&b, "%s\n", fg(clrSubtle).Render(fmt.Sprintf("… %d more", len(v.history)-historyShown)))
				break
			}
			fmt.Fprintf(&b, "%s\n", line)
		}
	}

	b.WriteString("\n")
	b.WriteString(v.actionLine())
	fmt.Fprintln(w, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func (v *TerminalView) actionLine() string {
	names := map[session.Action]string{
		session.ActionRoll:   "roll",
		session.ActionRollP1: "p1",
		session.ActionRollP2: "p2",
	}
	parts := make([]string, 0, len(v.actions))
	for _, a := range v.actions {
		parts = append(parts, names[a])
	}
	if !v.enabled {
		return fg(clrRed).Render("rolls disabled · reset to play again")
	}
	return fg(clrGreen).Render("actions: " + strings.Join(parts, ", ") + " · reset · help")
}

// RenderStatsLine formats a live stats frame pushed by the server.
func RenderStatsLine(stats *gameModel.Stats) string {
	rounds := "-"
	if r, ok := stats.RoundsValue(); ok {
		rounds = fmt.Sprint(r)
	}
	return fg(clrSubtle).Render(fmt.Sprintf("live · total %d · high %d · rounds %s · P1 %d · P2 %d",
		stats.TotalActionsOr(0), stats.HighestSumOr(0), rounds, stats.ScoreOr(1, 0), stats.ScoreOr(2, 0)))
}
