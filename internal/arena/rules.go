package arena

import (
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// WallCollision reports whether p lies outside the board.
func WallCollision(p core.Point, cfg config.GameConfig) bool {
	return !cfg.Bounds().Contains(p)
}

// SelfCollision reports whether any non-head segment shares the head's cell.
func SelfCollision(s Snake) bool {
	if len(s.Body) == 0 {
		return false
	}
	head := s.Body[0]
	for _, seg := range s.Body[1:] {
		if seg == head {
			return true
		}
	}
	return false
}

// SnakeCollision reports whether the head of s lies on any segment of any
// snake in others, heads included. Dead snakes still count as obstacles.
func SnakeCollision(s Snake, others []Snake) bool {
	if len(s.Body) == 0 {
		return false
	}
	head := s.Body[0]
	for i := range others {
		if others[i].Occupies(head) {
			return true
		}
	}
	return false
}

// Others returns every snake in all except the one with the given id.
func Others(id string, all []Snake) []Snake {
	out := make([]Snake, 0, len(all))
	for _, s := range all {
		if s.ID != id {
			out = append(out, s)
		}
	}
	return out
}

// ValidDirections returns every heading except the reverse of the current
// one, in Up, Down, Left, Right order.
func ValidDirections(s Snake) []core.Direction {
	dirs := make([]core.Direction, 0, len(core.Directions))
	for _, d := range core.Directions {
		if !d.IsOpposite(s.Direction) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// IsValidDirection reports whether d is in ValidDirections(s).
func IsValidDirection(s Snake, d core.Direction) bool {
	return d.Valid() && !d.IsOpposite(s.Direction)
}

// Distance is the Manhattan distance between two cells.
func Distance(a, b core.Point) int {
	return core.Distance(a, b)
}

// IsOccupied reports whether any snake, alive or dead, covers p.
func IsOccupied(p core.Point, snakes []Snake) bool {
	for i := range snakes {
		if snakes[i].Occupies(p) {
			return true
		}
	}
	return false
}
