// Package tui provides the Bubble Tea frontend for the arena and its SSH server.
// The engine drives time on its own; this package only renders the snapshots
// it publishes and forwards key presses as commands.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/engine"
)

// SnapshotMsg carries a state published by the engine.
type SnapshotMsg arena.State

// feedClosedMsg is sent once the feed channel is closed.
type feedClosedMsg struct{}

// waitForSnapshot returns a command that blocks until the next snapshot.
func waitForSnapshot(feed *engine.Feed) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-feed.Events()
		if !ok {
			return feedClosedMsg{}
		}
		return SnapshotMsg(st)
	}
}
