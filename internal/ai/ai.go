// Package ai implements the one-step greedy policy that steers computer
// snakes. Each call scores the legal headings and then applies a
// difficulty-dependent random gate so weaker opponents make mistakes.
package ai

import (
	"sort"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/config"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// Rand is the randomness source consumed by Decide.
type Rand = arena.Rand

// Scoring weights.
const (
	WallPenalty  = -1000
	SelfPenalty  = -1000
	SnakePenalty = -800

	foodReach   = 50
	openCell    = 10
	centerReach = 20
)

// tier is the probability of taking the best heading and whether the
// fallback prefers the runner-up before a uniform pick.
type tier struct {
	best     float64
	runnerUp bool
}

var tiers = map[config.Difficulty]tier{
	config.DifficultyEasy:   {best: 0.70},
	config.DifficultyMedium: {best: 0.85, runnerUp: true},
	config.DifficultyHard:   {best: 0.95, runnerUp: true},
}

// Decide picks the next heading for s. The result is always one of
// arena.ValidDirections(s), or s.Direction when no heading is legal.
func Decide(rng Rand, cfg config.GameConfig, s arena.Snake, foods []arena.Food, all []arena.Snake) core.Direction {
	valid := arena.ValidDirections(s)
	if len(valid) == 0 || len(s.Body) == 0 {
		return s.Direction
	}

	target, ok := NearestFood(s.Head(), foods)
	if !ok {
		return randomOf(rng, valid)
	}

	ranked := Rank(cfg, s, target, all, valid)
	return selectDirection(rng, s.Difficulty, ranked, valid)
}

// Scored pairs a heading with its heuristic value.
type Scored struct {
	Direction core.Direction
	Score     int
}

// Rank scores every heading in valid and orders them best first. Equal
// scores keep the order of valid.
func Rank(cfg config.GameConfig, s arena.Snake, target core.Point, all []arena.Snake, valid []core.Direction) []Scored {
	ranked := make([]Scored, len(valid))
	for i, d := range valid {
		ranked[i] = Scored{Direction: d, Score: ScoreDirection(cfg, s, d, target, all)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// NearestFood returns the food position closest to head. The first of
// several equally close foods wins.
func NearestFood(head core.Point, foods []arena.Food) (core.Point, bool) {
	if len(foods) == 0 {
		return core.Point{}, false
	}
	best := foods[0].Position
	bestDist := arena.Distance(head, best)
	for _, f := range foods[1:] {
		if d := arena.Distance(head, f.Position); d < bestDist {
			best, bestDist = f.Position, d
		}
	}
	return best, true
}

// ScoreDirection evaluates moving s one step in d.
func ScoreDirection(cfg config.GameConfig, s arena.Snake, d core.Direction, target core.Point, all []arena.Snake) int {
	next := s.Head().Move(d)
	if arena.WallCollision(next, cfg) {
		return WallPenalty
	}

	projected := s.Clone()
	projected.Body = append([]core.Point{next}, s.Body...)
	if arena.SelfCollision(projected) {
		return SelfPenalty
	}
	if arena.SnakeCollision(projected, arena.Others(s.ID, all)) {
		return SnakePenalty
	}

	score := max(0, foodReach-arena.Distance(next, target))
	score += openCell * openNeighbours(cfg, next, all)
	score += max(0, centerReach-arena.Distance(next, cfg.Bounds().Center()))
	return score
}

// openNeighbours counts in-bounds orthogonal neighbours of p that no snake covers.
func openNeighbours(cfg config.GameConfig, p core.Point, all []arena.Snake) int {
	n := 0
	for _, nb := range p.Neighbors() {
		if !arena.WallCollision(nb, cfg) && !arena.IsOccupied(nb, all) {
			n++
		}
	}
	return n
}

func selectDirection(rng Rand, difficulty config.Difficulty, ranked []Scored, valid []core.Direction) core.Direction {
	t, ok := tiers[difficulty]
	if !ok {
		t = tiers[config.DifficultyEasy]
	}
	if rng.Float64() < t.best {
		return ranked[0].Direction
	}
	if t.runnerUp && len(ranked) > 1 {
		return ranked[1].Direction
	}
	return randomOf(rng, valid)
}

func randomOf(rng Rand, dirs []core.Direction) core.Direction {
	return dirs[rng.Intn(len(dirs))]
}
