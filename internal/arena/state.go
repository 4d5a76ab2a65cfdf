package arena

import (
	"github.com/vovakirdan/snake-arena/internal/config"
)

// Status is the lifecycle phase of a game.
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusPlaying  Status = "playing"
	StatusPaused   Status = "paused"
	StatusGameOver Status = "gameOver"
)

// State is the complete, self-contained snapshot of one game.
type State struct {
	GameID string            `json:"gameId"`
	Snakes []Snake           `json:"snakes"`
	Foods  []Food            `json:"foods"`
	Status Status            `json:"gameStatus"`
	Winner string            `json:"winner,omitempty"` // Empty means no winner
	Tick   uint64            `json:"tick"`
	Config config.GameConfig `json:"config"`
}

// NewState returns the starting layout for cfg with no food placed yet.
func NewState(cfg config.GameConfig) State {
	return State{
		Snakes: NewRoster(cfg),
		Foods:  make([]Food, 0, cfg.FoodCount),
		Status: StatusWaiting,
		Config: cfg.Clone(),
	}
}

// Clone returns a deep copy sharing no memory with s.
func (s State) Clone() State {
	out := s
	out.Snakes = make([]Snake, len(s.Snakes))
	for i := range s.Snakes {
		out.Snakes[i] = s.Snakes[i].Clone()
	}
	out.Foods = make([]Food, len(s.Foods))
	copy(out.Foods, s.Foods)
	out.Config = s.Config.Clone()
	return out
}

// FillFood tops the food pool up to the configured target. It stops early
// when the board has no free cell.
func (s *State) FillFood(rng Rand) {
	bounds := s.Config.Bounds()
	for len(s.Foods) < s.Config.FoodCount {
		food, ok := SpawnFood(rng, bounds, s.Snakes, s.Foods)
		if !ok {
			return
		}
		s.Foods = append(s.Foods, food)
	}
}
