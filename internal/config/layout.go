package config

import "github.com/vovakirdan/snake-arena/internal/core"

// StartLength is the body length every snake spawns with.
const StartLength = 3

// PlayerID is the roster identity of the human-controlled snake.
const PlayerID = "player"

// Spawn describes where one snake begins a game.
type Spawn struct {
	Body      []core.Point // Head at index 0
	Direction core.Direction
}

// PlayerSpawn is fixed: head at (5,5) facing right.
func PlayerSpawn() Spawn {
	return Spawn{
		Body:      []core.Point{{X: 5, Y: 5}, {X: 4, Y: 5}, {X: 3, Y: 5}},
		Direction: core.Right,
	}
}

// AISpawn places ai-<i> near the bottom-right corner facing left, with an
// empty row between neighbours. Bodies trail behind the head.
func AISpawn(cfg GameConfig, i int) Spawn {
	x := cfg.Board.Width - 5
	y := cfg.Board.Height - 2 - 2*i
	return Spawn{
		Body:      []core.Point{{X: x, Y: y}, {X: x + 1, Y: y}, {X: x + 2, Y: y}},
		Direction: core.Left,
	}
}

// StartLayout returns every spawn in roster order: the player, then ai-0..ai-n.
func StartLayout(cfg GameConfig) []Spawn {
	spawns := make([]Spawn, 0, 1+cfg.Players.AI)
	spawns = append(spawns, PlayerSpawn())
	for i := range cfg.Players.AI {
		spawns = append(spawns, AISpawn(cfg, i))
	}
	return spawns
}
