package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bear-run/internal/storage"
)

// Leaderboard layout constants
const (
	maxRuns       = 100 // Max runs to load
	ledgerTimeout = time.Second
)

// Leaderboard shows the best runs of the ledger in a scrollable table.
type Leaderboard struct {
	ledger *storage.Ledger
	runs   []storage.RunRecord
	table  table.Model
	width  int
	height int
	err    error
}

// NewLeaderboard creates a leaderboard for the given ledger, which may be nil.
func NewLeaderboard(ledger *storage.Ledger, width, height int) Leaderboard {
	b := Leaderboard{
		ledger: ledger,
		width:  width,
		height: height,
	}
	b.table = b.createTable()
	return b
}

// createTable creates a new table with columns sized to the terminal.
func (b *Leaderboard) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 14},
		{Title: "Score", Width: 8},
		{Title: "Night", Width: 6},
		{Title: "Time", Width: 14},
	}

	// Give spare width to the player column
	if spare := b.width - 4 - 58; spare > 0 {
		columns[1].Width += min(spare, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(b.height-8, 3)), // Leave room for title, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh reloads the best runs from the ledger.
func (b *Leaderboard) Refresh() {
	if b.ledger == nil {
		b.runs = nil
		b.updateRows()
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), ledgerTimeout)
	defer cancel()

	b.runs, b.err = b.ledger.Top(ctx, maxRuns)
	b.updateRows()
}

// updateRows updates the table with the loaded runs.
func (b *Leaderboard) updateRows() {
	rows := make([]table.Row, len(b.runs))
	for i, r := range b.runs {
		night := ""
		if r.Night {
			night = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			r.Player,
			fmt.Sprintf("%d", r.Score),
			night,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	b.table.SetRows(rows)
	b.table.GotoTop()
}

// Resize adapts the table to a new terminal size.
func (b *Leaderboard) Resize(width, height int) {
	b.width = width
	b.height = height
	b.table = b.createTable()
	b.updateRows()
}

// Runs returns the loaded runs, best first.
func (b Leaderboard) Runs() []storage.RunRecord {
	return b.runs
}

// Update scrolls the table.
func (b Leaderboard) Update(msg tea.Msg) (Leaderboard, tea.Cmd) {
	var cmd tea.Cmd
	b.table, cmd = b.table.Update(msg)
	return b, cmd
}

// View renders the leaderboard above the given help line.
func (b Leaderboard) View(r *Renderer, helpLine string) string {
	var sb strings.Builder

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	sb.WriteString(titleStyle.Render(centerText("BEST RUNS", b.width)))
	sb.WriteString("\n\n")

	tableStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	sb.WriteString(tableStyle.Render(b.content(r)))

	sb.WriteString("\n")
	sb.WriteString(helpLine)
	return sb.String()
}

// content renders the table or an empty message.
func (b Leaderboard) content(r *Renderer) string {
	muted := r.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	switch {
	case b.err != nil:
		return muted.Render("Could not load runs:\n" + b.err.Error())
	case len(b.runs) == 0:
		return muted.Render("No runs finished yet.\nJump over some logs first!")
	}
	return b.table.View()
}

// Podium summarizes the top n runs on one line, e.g. for the game-over view.
func (b Leaderboard) Podium(n int) string {
	if len(b.runs) == 0 || n <= 0 {
		return ""
	}
	parts := make([]string, 0, n)
	for i, r := range b.runs {
		if i == n {
			break
		}
		parts = append(parts, fmt.Sprintf("%d. %s %d", i+1, r.Player, r.Score))
	}
	return "Best runs: " + strings.Join(parts, "  ")
}

// centerText pads text on the left to center it in width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
