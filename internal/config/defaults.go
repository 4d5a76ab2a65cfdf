package config

import (
	_ "embed"
)

//go:embed defaults/arena.yaml
var defaultArenaYAML []byte

// DefaultGameConfig returns the default arena configuration.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Board: BoardConfig{
			Width:  30,
			Height: 30,
		},
		Players: PlayersConfig{
			Human: 1,
			AI:    3,
		},
		AI: AIConfig{
			Difficulties: DefaultDifficulties(),
		},
		GameSpeedMS: 200,
		FoodCount:   5,
		Seed:        0,
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultArenaYAML
}
