package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/engine"
	"github.com/vovakirdan/snake-arena/internal/skins"
)

// Controller is the part of the engine the model drives.
type Controller interface {
	Start()
	Reset()
	TogglePause()
	ChangePlayerDirection(dir core.Direction) bool
	SetSkin(id, skin string) bool
}

// Model is the Bubble Tea model for one arena game.
type Model struct {
	ctl      Controller
	feed     *engine.Feed
	state    arena.State
	screen   *core.Screen
	board    table.Model
	keys     KeyMap
	help     help.Model
	skin     string // Player skin re-applied after a reset
	quitting bool
}

// NewModel creates a model showing eng. It subscribes a feed that is
// closed when the user quits.
func NewModel(eng *engine.Engine) Model {
	return newModel(eng, eng.Feed(8), eng.Snapshot())
}

func newModel(ctl Controller, feed *engine.Feed, st arena.State) Model {
	h := help.New()
	h.ShowAll = false

	m := Model{
		ctl:    ctl,
		feed:   feed,
		state:  st,
		screen: core.NewScreen(st.Config.Board.Width+2, st.Config.Board.Height+2),
		board:  newLeaderboard(len(st.Snakes)),
		keys:   DefaultKeyMap(),
		help:   h,
	}
	m.board.SetRows(leaderboardRows(st))
	if p, ok := st.Player(); ok {
		m.skin = p.Skin
	}
	return m
}

// Init starts listening for snapshots.
func (m Model) Init() tea.Cmd {
	if m.feed == nil {
		return nil
	}
	return waitForSnapshot(m.feed)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case SnapshotMsg:
		m.state = arena.State(msg)
		m.screen.Resize(m.state.Config.Board.Width+2, m.state.Config.Board.Height+2)
		m.board.SetRows(leaderboardRows(m.state))
		return m, m.Init()

	case feedClosedMsg:
		return m, nil
	}

	return m, nil
}

// handleKey forwards key presses to the engine as commands.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	switch action {
	case core.ActionQuit:
		m.quitting = true
		if m.feed != nil {
			m.feed.Close()
		}
		return m, tea.Quit
	case core.ActionStart:
		if m.state.Status == arena.StatusGameOver {
			m.reset()
		}
		m.ctl.Start()
	case core.ActionPauseToggle:
		m.ctl.TogglePause()
	case core.ActionReset:
		m.reset()
	case core.ActionNextSkin:
		m.skin = skins.Next(m.skin).ID
		m.ctl.SetSkin(config.PlayerID, m.skin)
	default:
		if dir, ok := action.Direction(); ok {
			m.ctl.ChangePlayerDirection(dir)
		}
	}
	return m, nil
}

// reset restarts the game and puts the player's chosen skin back on.
func (m Model) reset() {
	m.ctl.Reset()
	if m.skin != "" && m.skin != arena.DefaultPlayerSkin {
		m.ctl.SetSkin(config.PlayerID, m.skin)
	}
}

// View renders the board next to the side panel.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	DrawArena(m.screen, m.state)

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		RenderScreen(m.screen),
		"  ",
		renderPanel(m.state, m.board),
	)
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.help.View(m.keys))
}

// Run starts the Bubble Tea program for eng and blocks until the user quits.
func Run(eng *engine.Engine) error {
	p := tea.NewProgram(NewModel(eng), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
