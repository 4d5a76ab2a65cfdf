package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// newLeaderboard creates the ranking table sized for n snakes.
func newLeaderboard(n int) table.Model {
	columns := []table.Column{
		{Title: "#", Width: 2},
		{Title: "Snake", Width: 8},
		{Title: "Score", Width: 6},
		{Title: "Len", Width: 4},
		{Title: "", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(false),
		table.WithHeight(n+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Cell
	t.SetStyles(s)
	return t
}

// leaderboardRows ranks the snakes by score.
func leaderboardRows(st arena.State) []table.Row {
	board := st.Leaderboard()
	rows := make([]table.Row, 0, len(board))
	for i, s := range board {
		state := "alive"
		if !s.Alive {
			state = "dead"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			displayName(s),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Len()),
			state,
		})
	}
	return rows
}

func displayName(s arena.Snake) string {
	if s.ID == config.PlayerID {
		return "You"
	}
	return s.ID
}

// statusBanner describes what the player can do next.
func statusBanner(st arena.State) string {
	switch st.Status {
	case arena.StatusWaiting:
		return "Press enter to start"
	case arena.StatusPaused:
		return "PAUSED - space to resume"
	case arena.StatusGameOver:
		switch st.Winner {
		case "":
			return "GAME OVER - no survivors"
		case config.PlayerID:
			return "GAME OVER - you win!"
		default:
			return "GAME OVER - " + st.Winner + " wins"
		}
	}
	return ""
}

// renderPanel draws the side panel: leaderboard, stats and status.
func renderPanel(st arena.State, board table.Model) string {
	var lines []string
	lines = append(lines, titleStyle.Render("SNAKE ARENA"), "")
	lines = append(lines, board.View(), "")

	stat := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-8s", label)) + valueStyle.Render(value)
	}
	lines = append(lines,
		stat("Alive", fmt.Sprintf("%d/%d", len(st.AliveSnakes()), len(st.Snakes))),
		stat("Total", strconv.Itoa(st.TotalScore())),
		stat("Foods", strconv.Itoa(len(st.Foods))),
		stat("Tick", strconv.FormatUint(st.Tick, 10)),
	)
	if p, ok := st.Player(); ok && p.Skin != "" {
		lines = append(lines, stat("Skin", p.Skin))
	}
	if longest, ok := st.LongestSnake(); ok {
		lines = append(lines, stat("Longest", fmt.Sprintf("%s (%d)", displayName(longest), longest.Len())))
	}

	if banner := statusBanner(st); banner != "" {
		lines = append(lines, "", bannerStyle.Render(banner))
	}
	return panelStyle.Render(strings.Join(lines, "\n"))
}
