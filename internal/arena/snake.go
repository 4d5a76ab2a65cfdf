// Package arena holds the game data model and the pure collision rules shared
// by the tick engine and the AI. Nothing here keeps hidden state.
package arena

import (
	"fmt"

	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// DefaultPlayerSkin is the skin the human snake spawns with.
const DefaultPlayerSkin = "classic"

// Snake is one competitor. Body[0] is the head.
type Snake struct {
	ID         string            `json:"id"`
	Body       []core.Point      `json:"body"`
	Direction  core.Direction    `json:"direction"`
	Color      core.Color        `json:"color"`
	IsAI       bool              `json:"isAI"`
	Difficulty config.Difficulty `json:"difficulty,omitempty"`
	Score      int               `json:"score"`
	Alive      bool              `json:"isAlive"`
	Skin       string            `json:"skinId,omitempty"` // Opaque to the engine
}

// AIID returns the roster identity of the i-th AI opponent.
func AIID(i int) string {
	return fmt.Sprintf("ai-%d", i)
}

// Head returns the head position. Callers must not use it on an empty body.
func (s *Snake) Head() core.Point {
	return s.Body[0]
}

// Len returns the body length.
func (s *Snake) Len() int {
	return len(s.Body)
}

// Occupies reports whether any segment sits on p.
func (s *Snake) Occupies(p core.Point) bool {
	for _, seg := range s.Body {
		if seg == p {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (s Snake) Clone() Snake {
	out := s
	if s.Body != nil {
		out.Body = make([]core.Point, len(s.Body))
		copy(out.Body, s.Body)
	}
	return out
}

// NewRoster builds the starting snakes for cfg: the player first, then
// ai-0..ai-n, all alive with zero score.
func NewRoster(cfg config.GameConfig) []Snake {
	spawns := config.StartLayout(cfg)
	snakes := make([]Snake, 0, len(spawns))
	for i, spawn := range spawns {
		s := Snake{
			Body:      spawn.Body,
			Direction: spawn.Direction,
			Color:     core.PaletteColor(i),
			Alive:     true,
		}
		if i == 0 {
			s.ID = config.PlayerID
			s.Skin = DefaultPlayerSkin
		} else {
			s.ID = AIID(i - 1)
			s.IsAI = true
			s.Difficulty = cfg.DifficultyFor(i - 1)
		}
		snakes = append(snakes, s)
	}
	return snakes
}
