package config

import (
	"errors"
	"fmt"
)

// Sentinel errors wrapped by ValidationError.
var (
	ErrInvalidBoard      = errors.New("invalid board")
	ErrInvalidPlayers    = errors.New("invalid player count")
	ErrInvalidSpeed      = errors.New("invalid game speed")
	ErrInvalidFood       = errors.New("invalid food count")
	ErrInvalidDifficulty = errors.New("invalid difficulty")
	ErrLayout            = errors.New("starting layout does not fit")
)

// Limits of the configuration panel.
const (
	MinAI          = 1
	MaxAI          = 5
	MinFood        = 1
	MaxFood        = 10
	MinGameSpeedMS = 100
	MaxGameSpeedMS = 500
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s: %s", e.Field, e.Err, e.Message)
}

func (e ValidationError) Unwrap() error {
	return e.Err
}

// Validate rejects configurations the engine cannot run. Checks:
//   - board and roster sizes
//   - every starting snake inside the board with no overlap
//   - food target fits in the cells left free at spawn
func Validate(cfg GameConfig) error {
	if cfg.Board.Width <= 0 || cfg.Board.Height <= 0 {
		return ValidationError{"board", fmt.Sprintf("%dx%d", cfg.Board.Width, cfg.Board.Height), ErrInvalidBoard}
	}
	if cfg.Players.Human != 1 {
		return ValidationError{"players.human", fmt.Sprintf("got %d, want 1", cfg.Players.Human), ErrInvalidPlayers}
	}
	if cfg.Players.AI < MinAI || cfg.Players.AI > MaxAI {
		return ValidationError{"players.ai", fmt.Sprintf("got %d, want %d-%d", cfg.Players.AI, MinAI, MaxAI), ErrInvalidPlayers}
	}
	if cfg.GameSpeedMS <= 0 {
		return ValidationError{"game_speed_ms", fmt.Sprintf("got %d, want > 0", cfg.GameSpeedMS), ErrInvalidSpeed}
	}
	for i, d := range cfg.AI.Difficulties {
		if !d.Valid() {
			return ValidationError{fmt.Sprintf("ai.difficulties[%d]", i), fmt.Sprintf("%q", d), ErrInvalidDifficulty}
		}
	}

	occupied, err := validateLayout(cfg)
	if err != nil {
		return err
	}

	if cfg.FoodCount < MinFood {
		return ValidationError{"food_count", fmt.Sprintf("got %d, want >= %d", cfg.FoodCount, MinFood), ErrInvalidFood}
	}
	if free := cfg.Bounds().Area() - occupied; cfg.FoodCount > free {
		return ValidationError{"food_count", fmt.Sprintf("got %d, only %d free cells", cfg.FoodCount, free), ErrInvalidFood}
	}
	return nil
}

// validateLayout checks spawns and returns how many cells they occupy.
func validateLayout(cfg GameConfig) (int, error) {
	bounds := cfg.Bounds()
	seen := make(map[[2]int]int)
	for i, spawn := range StartLayout(cfg) {
		for _, p := range spawn.Body {
			if !bounds.Contains(p) {
				return 0, ValidationError{"board", fmt.Sprintf("snake %d spawns off the board at %v", i, p), ErrLayout}
			}
			key := [2]int{p.X, p.Y}
			if other, ok := seen[key]; ok {
				return 0, ValidationError{"board", fmt.Sprintf("snakes %d and %d overlap at %v", other, i, p), ErrLayout}
			}
			seen[key] = i
		}
	}
	return len(seen), nil
}

// Warnings reports settings outside the recommended ranges. They are legal.
func Warnings(cfg GameConfig) []string {
	var out []string
	if cfg.GameSpeedMS > 0 && (cfg.GameSpeedMS < MinGameSpeedMS || cfg.GameSpeedMS > MaxGameSpeedMS) {
		out = append(out, fmt.Sprintf("game_speed_ms %d is outside %d-%d", cfg.GameSpeedMS, MinGameSpeedMS, MaxGameSpeedMS))
	}
	if cfg.FoodCount > MaxFood {
		out = append(out, fmt.Sprintf("food_count %d is above %d", cfg.FoodCount, MaxFood))
	}
	if len(cfg.AI.Difficulties) > cfg.Players.AI {
		out = append(out, fmt.Sprintf("%d difficulties listed for %d AI opponents", len(cfg.AI.Difficulties), cfg.Players.AI))
	}
	return out
}
