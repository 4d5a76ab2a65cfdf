// Package config provides YAML-based arena configuration loading,
// validation, and difficulty presets.
package config

import (
	"time"

	"github.com/vovakirdan/snake-arena/internal/core"
)

// GameConfig contains everything needed to build one game. It is immutable
// for the lifetime of an engine; changing it means creating a new game.
type GameConfig struct {
	Board       BoardConfig   `yaml:"board" json:"board"`
	Players     PlayersConfig `yaml:"players" json:"players"`
	AI          AIConfig      `yaml:"ai" json:"ai"`
	GameSpeedMS int           `yaml:"game_speed_ms" json:"gameSpeedMs"` // Tick period in milliseconds
	FoodCount   int           `yaml:"food_count" json:"foodCount"`      // Target number of foods on the board
	Seed        int64         `yaml:"seed" json:"seed"`                 // 0 = seed from the clock
}

// BoardConfig defines the grid size in cells.
type BoardConfig struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// PlayersConfig defines the roster size.
type PlayersConfig struct {
	Human int `yaml:"human" json:"human"` // Always 1 in practice
	AI    int `yaml:"ai" json:"ai"`
}

// AIConfig holds per-opponent settings.
type AIConfig struct {
	// Difficulties[i] applies to ai-<i>. Opponents past the end of the list play easy.
	Difficulties []Difficulty `yaml:"difficulties" json:"difficulties"`
}

// TickPeriod returns the scheduler interval.
func (c GameConfig) TickPeriod() time.Duration {
	return time.Duration(c.GameSpeedMS) * time.Millisecond
}

// Bounds returns the board as a rectangle anchored at the origin.
func (c GameConfig) Bounds() core.Rect {
	return core.NewRect(0, 0, c.Board.Width, c.Board.Height)
}

// DifficultyFor returns the difficulty of the i-th AI opponent.
func (c GameConfig) DifficultyFor(i int) Difficulty {
	if i >= 0 && i < len(c.AI.Difficulties) && c.AI.Difficulties[i] != "" {
		return c.AI.Difficulties[i]
	}
	return DifficultyEasy
}

// Clone returns a copy that shares no memory with c.
func (c GameConfig) Clone() GameConfig {
	out := c
	if c.AI.Difficulties != nil {
		out.AI.Difficulties = make([]Difficulty, len(c.AI.Difficulties))
		copy(out.AI.Difficulties, c.AI.Difficulties)
	}
	return out
}
