package core

import (
	"fmt"
	"strings"
)

// Action represents a semantic player command, abstracted from physical key
// presses, swipes, or network messages. Frontends map their input to actions
// and the engine never sees the input source.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionStart       // Enter - begin a waiting game
	ActionPauseToggle // Space - pause while playing, resume while paused
	ActionPause
	ActionResume
	ActionReset    // R key - back to the starting layout
	ActionNextSkin // Tab - cycle the player's skin
	ActionQuit     // Q, Ctrl+C - exit session
)

var actionNames = map[Action]string{
	ActionNone:        "none",
	ActionUp:          "up",
	ActionDown:        "down",
	ActionLeft:        "left",
	ActionRight:       "right",
	ActionStart:       "start",
	ActionPauseToggle: "toggle",
	ActionPause:       "pause",
	ActionResume:      "resume",
	ActionReset:       "reset",
	ActionNextSkin:    "skin",
	ActionQuit:        "quit",
}

// String returns the wire name of the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAction resolves a wire name back to an action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return ActionNone, fmt.Errorf("core: unknown action %q", s)
}

// Direction returns the heading carried by a movement action.
func (a Action) Direction() (Direction, bool) {
	switch a {
	case ActionUp:
		return Up, true
	case ActionDown:
		return Down, true
	case ActionLeft:
		return Left, true
	case ActionRight:
		return Right, true
	}
	return 0, false
}
