package config

import (
	"fmt"
	"strings"
)

// Difficulty is a named AI skill tier.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Difficulties lists the tiers from weakest to strongest.
var Difficulties = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

// Valid reports whether d is a known tier.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// ParseDifficulty accepts a tier name in any case. "normal" is an alias for medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	case "normal":
		return DifficultyMedium, nil
	}
	return "", fmt.Errorf("%w: %q (want easy, medium or hard)", ErrInvalidDifficulty, s)
}

// DefaultDifficulties mirrors the classic assignment: the first opponent is
// hard, the second medium, the rest easy.
func DefaultDifficulties() []Difficulty {
	return []Difficulty{DifficultyHard, DifficultyMedium}
}

// ApplyDifficultyPreset makes every AI opponent play at the same tier.
func ApplyDifficultyPreset(cfg *GameConfig, preset Difficulty) {
	n := max(cfg.Players.AI, len(cfg.AI.Difficulties))
	cfg.AI.Difficulties = make([]Difficulty, n)
	for i := range cfg.AI.Difficulties {
		cfg.AI.Difficulties[i] = preset
	}
}
