package arena

import (
	"sort"

	"github.com/vovakirdan/snake-arena/internal/config"
)

// Snake returns the snake with the given id.
func (s State) Snake(id string) (Snake, bool) {
	for _, sn := range s.Snakes {
		if sn.ID == id {
			return sn, true
		}
	}
	return Snake{}, false
}

// Player returns the human snake.
func (s State) Player() (Snake, bool) {
	return s.Snake(config.PlayerID)
}

// AliveSnakes returns the living snakes in roster order.
func (s State) AliveSnakes() []Snake {
	var alive []Snake
	for _, sn := range s.Snakes {
		if sn.Alive {
			alive = append(alive, sn)
		}
	}
	return alive
}

// TotalScore sums every snake's score, dead or alive.
func (s State) TotalScore() int {
	total := 0
	for _, sn := range s.Snakes {
		total += sn.Score
	}
	return total
}

// Leaderboard returns all snakes ordered by score, highest first. Equal
// scores keep roster order.
func (s State) Leaderboard() []Snake {
	board := make([]Snake, len(s.Snakes))
	copy(board, s.Snakes)
	sort.SliceStable(board, func(i, j int) bool {
		return board[i].Score > board[j].Score
	})
	return board
}

// LongestSnake returns the snake with the longest body. Ties go to the
// earlier snake in the roster.
func (s State) LongestSnake() (Snake, bool) {
	if len(s.Snakes) == 0 {
		return Snake{}, false
	}
	best := s.Snakes[0]
	for _, sn := range s.Snakes[1:] {
		if sn.Len() > best.Len() {
			best = sn
		}
	}
	return best, true
}
