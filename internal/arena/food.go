package arena

import "github.com/vovakirdan/snake-arena/internal/core"

// FoodType distinguishes ordinary and bonus food.
type FoodType string

const (
	FoodNormal  FoodType = "normal"
	FoodSpecial FoodType = "special"
)

// NormalFoodChance is the probability that a spawned food is normal.
const NormalFoodChance = 0.8

// Points returns the score credited for eating this type.
func (t FoodType) Points() int {
	if t == FoodSpecial {
		return 20
	}
	return 10
}

// Food is an edible item on the board.
type Food struct {
	Position core.Point `json:"position"`
	Type     FoodType   `json:"type"`
}

// Rand is the randomness the simulation consumes. *math/rand.Rand satisfies it;
// tests seed one for reproducible games.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// RandomFoodType picks normal 80% of the time and special otherwise.
func RandomFoodType(rng Rand) FoodType {
	if rng.Float64() < NormalFoodChance {
		return FoodNormal
	}
	return FoodSpecial
}

// FoodAt returns the index of the first food at p, or -1.
func FoodAt(foods []Food, p core.Point) int {
	for i, f := range foods {
		if f.Position == p {
			return i
		}
	}
	return -1
}

// SpawnFood places one food on a random cell not covered by any snake
// segment or existing food. Rejection sampling is capped; after that the
// free cells are enumerated. ok is false when the board is full.
func SpawnFood(rng Rand, bounds core.Rect, snakes []Snake, foods []Food) (food Food, ok bool) {
	blocked := func(p core.Point) bool {
		return IsOccupied(p, snakes) || FoodAt(foods, p) >= 0
	}

	maxAttempts := 4 * bounds.Area()
	for range maxAttempts {
		p := core.Point{X: bounds.X + rng.Intn(bounds.W), Y: bounds.Y + rng.Intn(bounds.H)}
		if !blocked(p) {
			return Food{Position: p, Type: RandomFoodType(rng)}, true
		}
	}

	// Collect all empty cells
	var emptyCells []core.Point
	for y := bounds.Y; y < bounds.Bottom(); y++ {
		for x := bounds.X; x < bounds.Right(); x++ {
			if p := (core.Point{X: x, Y: y}); !blocked(p) {
				emptyCells = append(emptyCells, p)
			}
		}
	}
	if len(emptyCells) == 0 {
		return Food{}, false
	}
	p := emptyCells[rng.Intn(len(emptyCells))]
	return Food{Position: p, Type: RandomFoodType(rng)}, true
}
