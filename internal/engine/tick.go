package engine

import (
	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// tickLocked advances the game by one step. The caller holds e.mu and the
// game is playing.
func (e *Engine) tickLocked() {
	st := &e.state
	cfg := st.Config
	st.Tick++

	// AI decisions
	for i := range st.Snakes {
		s := &st.Snakes[i]
		if !s.IsAI || !s.Alive {
			continue
		}
		// The policy gets its own copy of the board.
		view := st.Clone()
		dir := e.policy(e.rng, view.Config, view.Snakes[i], view.Foods, view.Snakes)
		if !arena.IsValidDirection(*s, dir) {
			e.log.Warn("ignoring invalid AI heading", "snake", s.ID, "heading", int(dir), "current", s.Direction)
			continue
		}
		s.Direction = dir
	}

	// Provisional move. Food hits are judged against the pre-tick foods.
	ate := make([]int, len(st.Snakes))
	for i := range st.Snakes {
		ate[i] = -1
		s := &st.Snakes[i]
		if !s.Alive {
			continue
		}
		head := s.Head().Move(s.Direction)
		s.Body = append([]core.Point{head}, s.Body...)
		ate[i] = arena.FoodAt(st.Foods, head)
	}

	// Every collision is judged against the same provisional board.
	frozen := make([]arena.Snake, len(st.Snakes))
	for i := range st.Snakes {
		frozen[i] = st.Snakes[i].Clone()
	}

	eaten := make(map[int]bool)
	for i := range st.Snakes {
		s := &st.Snakes[i]
		if !s.Alive {
			continue
		}
		if cause := collision(frozen[i], frozen, cfg); cause != "" {
			s.Alive = false
			e.log.Debug("snake died", "game", st.GameID, "tick", st.Tick, "snake", s.ID, "cause", cause, "at", s.Head(), "score", s.Score)
			continue
		}
		if f := ate[i]; f >= 0 {
			s.Score += st.Foods[f].Type.Points()
			eaten[f] = true
			continue
		}
		if len(s.Body) > config.StartLength {
			s.Body = s.Body[:len(s.Body)-1]
		}
	}

	if len(eaten) > 0 {
		kept := st.Foods[:0]
		for i, f := range st.Foods {
			if !eaten[i] {
				kept = append(kept, f)
			}
		}
		st.Foods = kept
	}
	st.FillFood(e.rng)

	alive := st.AliveSnakes()
	if len(alive) > 1 {
		return
	}
	st.Status = arena.StatusGameOver
	st.Winner = ""
	if len(alive) == 1 {
		st.Winner = alive[0].ID
	}
	e.disarmLocked()
	e.log.Info("game over", "game", st.GameID, "tick", st.Tick, "winner", winnerName(st.Winner))
}

// collision names what s hit on the frozen board, or returns "".
func collision(s arena.Snake, frozen []arena.Snake, cfg config.GameConfig) string {
	switch {
	case arena.WallCollision(s.Head(), cfg):
		return "wall"
	case arena.SelfCollision(s):
		return "self"
	case arena.SnakeCollision(s, arena.Others(s.ID, frozen)):
		return "snake"
	}
	return ""
}

func winnerName(id string) string {
	if id == "" {
		return "none"
	}
	return id
}
