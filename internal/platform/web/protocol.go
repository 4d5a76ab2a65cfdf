// Package web streams a local arena to browsers over WebSocket.
//
// Client → server, keyed by "t":
//
//	{"t":"dir","d":"UP"}       steer the player
//	{"t":"start"}              start or resume
//	{"t":"pause"}, {"t":"resume"}, {"t":"toggle"}
//	{"t":"reset"}
//	{"t":"skin","s":"dragon"}  change the player's skin
//
// Server → client:
//
//	{"t":"w","i":"<client uuid>","p":"player"}  welcome
//	{"t":"s","s":{...state...}}                  snapshot
//	{"t":"e","m":"message"}                      error
package web

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
	"github.com/vovakirdan/snake-arena/internal/skins"
)

// Message type identifiers. Command types are core action names.
var (
	MsgStart  = core.ActionStart.String()
	MsgPause  = core.ActionPause.String()
	MsgResume = core.ActionResume.String()
	MsgToggle = core.ActionPauseToggle.String()
	MsgReset  = core.ActionReset.String()
	MsgSkin   = core.ActionNextSkin.String()
)

const (
	MsgDirection = "dir"

	MsgWelcome = "w"
	MsgState   = "s"
	MsgError   = "e"
)

// ErrUnknownMessage is returned for a message type the server does not handle.
var ErrUnknownMessage = errors.New("web: unknown message type")

// ClientMessage is an incoming command from the browser.
type ClientMessage struct {
	Type      string `json:"t"`
	Direction string `json:"d,omitempty"`
	Skin      string `json:"s,omitempty"`
}

// WelcomeMsg is sent once on connect.
type WelcomeMsg struct {
	Type     string `json:"t"`
	ClientID string `json:"i"`
	PlayerID string `json:"p"`
}

// StateMsg carries one engine snapshot.
type StateMsg struct {
	Type  string      `json:"t"`
	State arena.State `json:"s"`
}

// ErrorMsg reports a rejected command.
type ErrorMsg struct {
	Type    string `json:"t"`
	Message string `json:"m"`
}

// Controller is the part of the engine a browser may drive.
type Controller interface {
	Start()
	Pause()
	Resume()
	TogglePause()
	Reset()
	ChangePlayerDirection(dir core.Direction) bool
	SetSkin(id, skin string) bool
}

// Apply executes msg against ctl. Besides "dir", any action name
// ("up", "pause", "skin", ...) is accepted as a message type. Rejected
// steering is not an error.
func Apply(ctl Controller, msg ClientMessage) error {
	if msg.Type == MsgDirection {
		dir, err := core.ParseDirection(msg.Direction)
		if err != nil {
			return fmt.Errorf("web: %w", err)
		}
		ctl.ChangePlayerDirection(dir)
		return nil
	}

	action, err := core.ParseAction(msg.Type)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	if dir, ok := action.Direction(); ok {
		ctl.ChangePlayerDirection(dir)
		return nil
	}

	switch action {
	case core.ActionStart:
		ctl.Start()
	case core.ActionPause:
		ctl.Pause()
	case core.ActionResume:
		ctl.Resume()
	case core.ActionPauseToggle:
		ctl.TogglePause()
	case core.ActionReset:
		ctl.Reset()
	case core.ActionNextSkin:
		if !skins.Exists(msg.Skin) {
			return fmt.Errorf("web: unknown skin %q", msg.Skin)
		}
		ctl.SetSkin(config.PlayerID, msg.Skin)
	default:
		// none and quit mean nothing to a shared arena
		return fmt.Errorf("%w: %q", ErrUnknownMessage, msg.Type)
	}
	return nil
}
