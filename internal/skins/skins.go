// Package skins provides a global registry of cosmetic snake skins.
// The default set registers itself in init(), and frontends look skins up
// by the opaque identifier carried on each snake.
package skins

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/snake-arena/internal/arena"
	"github.com/vovakirdan/snake-arena/internal/core"
)

// Pattern controls how body segments alternate.
type Pattern string

const (
	PatternSolid   Pattern = "solid"
	PatternStriped Pattern = "striped"
	PatternDotted  Pattern = "dotted"
)

// Rarity is a collectible tier.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// Skin describes how a snake is drawn.
type Skin struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Head        rune       `json:"-"`
	Body        rune       `json:"-"`
	HeadColor   core.Color `json:"headColor"`
	BodyColor   core.Color `json:"bodyColor"`
	BorderColor core.Color `json:"borderColor"`
	Pattern     Pattern    `json:"pattern"`
	Rarity      Rarity     `json:"rarity"`
}

// SegmentRune returns the glyph for body segment i (0 is the head).
func (s Skin) SegmentRune(i int) rune {
	if i == 0 {
		return s.Head
	}
	switch s.Pattern {
	case PatternStriped:
		if i%2 == 0 {
			return '='
		}
	case PatternDotted:
		if i%2 == 0 {
			return '.'
		}
	}
	return s.Body
}

// SegmentColor returns the colour for body segment i.
func (s Skin) SegmentColor(i int) core.Color {
	if i == 0 {
		return s.HeadColor
	}
	if s.Pattern == PatternStriped && i%2 == 0 {
		return s.BorderColor
	}
	return s.BodyColor
}

var (
	skins = make(map[string]Skin)
	mu    sync.RWMutex
)

// Register adds a skin. Panics if the id is already taken.
func Register(s Skin) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := skins[s.ID]; exists {
		panic(fmt.Sprintf("skins: skin %q already registered", s.ID))
	}
	skins[s.ID] = s
}

// List returns every registered skin sorted by ID.
func List() []Skin {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Skin, 0, len(skins))
	for _, s := range skins {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}

// Get looks a skin up by ID.
func Get(id string) (Skin, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := skins[id]
	if !ok {
		return Skin{}, fmt.Errorf("skins: unknown skin %q", id)
	}
	return s, nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := skins[id]
	return ok
}

// ByRarity returns the skins of one tier sorted by ID.
func ByRarity(r Rarity) []Skin {
	var out []Skin
	for _, s := range List() {
		if s.Rarity == r {
			out = append(out, s)
		}
	}
	return out
}

// Random picks a registered skin uniformly.
func Random(rng arena.Rand) Skin {
	all := List()
	return all[rng.Intn(len(all))]
}

// Next returns the skin after id in List order, wrapping around. An unknown
// id yields the first skin.
func Next(id string) Skin {
	all := List()
	for i, s := range all {
		if s.ID == id {
			return all[(i+1)%len(all)]
		}
	}
	return all[0]
}

// ForSnake resolves the skin a snake should be drawn with. Snakes without a
// registered skin get a plain skin in their roster colour.
func ForSnake(s arena.Snake) Skin {
	if sk, err := Get(s.Skin); err == nil {
		return sk
	}
	head := 'O'
	if s.IsAI {
		head = 'A'
	}
	return Skin{
		ID:          "plain",
		Head:        head,
		Body:        'o',
		HeadColor:   s.Color,
		BodyColor:   s.Color,
		BorderColor: s.Color,
		Pattern:     PatternSolid,
		Rarity:      RarityCommon,
	}
}
