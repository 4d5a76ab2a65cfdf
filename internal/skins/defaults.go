package skins

import "github.com/vovakirdan/snake-arena/internal/arena"

// DefaultID is the skin the player starts with.
const DefaultID = arena.DefaultPlayerSkin

func init() {
	for _, s := range defaultSkins {
		Register(s)
	}
}

var defaultSkins = []Skin{
	{
		ID: "classic", Name: "Classic", Description: "The classic red snake",
		Head: '@', Body: 'o',
		HeadColor: "#dc2626", BodyColor: "#dc2626", BorderColor: "#ffffff",
		Pattern: PatternSolid, Rarity: RarityCommon,
	},
	{
		ID: "forest", Name: "Forest", Description: "A green snake from the woods",
		Head: 'S', Body: 's',
		HeadColor: "#059669", BodyColor: "#10b981", BorderColor: "#ffffff",
		Pattern: PatternStriped, Rarity: RarityCommon,
	},
	{
		ID: "royal", Name: "Royal", Description: "A purple snake with a crown",
		Head: 'W', Body: 'o',
		HeadColor: "#7c3aed", BodyColor: "#8b5cf6", BorderColor: "#fbbf24",
		Pattern: PatternSolid, Rarity: RarityRare,
	},
	{
		ID: "golden", Name: "Golden", Description: "A shining golden snake",
		Head: '*', Body: 'o',
		HeadColor: "#f59e0b", BodyColor: "#fbbf24", BorderColor: "#ffffff",
		Pattern: PatternDotted, Rarity: RarityEpic,
	},
	{
		ID: "dragon", Name: "Dragon", Description: "The legendary dragon",
		Head: 'D', Body: 'x',
		HeadColor: "#dc2626", BodyColor: "#ef4444", BorderColor: "#fbbf24",
		Pattern: PatternStriped, Rarity: RarityLegendary,
	},
	{
		ID: "ninja", Name: "Ninja", Description: "A mysterious ninja snake",
		Head: 'N', Body: 'o',
		HeadColor: "#1f2937", BodyColor: "#374151", BorderColor: "#ef4444",
		Pattern: PatternSolid, Rarity: RarityEpic,
	},
	{
		ID: "ice", Name: "Ice", Description: "A frosty snake",
		Head: '#', Body: 'o',
		HeadColor: "#0ea5e9", BodyColor: "#38bdf8", BorderColor: "#ffffff",
		Pattern: PatternDotted, Rarity: RarityRare,
	},
	{
		ID: "fire", Name: "Fire", Description: "A burning snake",
		Head: '^', Body: 'o',
		HeadColor: "#ea580c", BodyColor: "#f97316", BorderColor: "#fbbf24",
		Pattern: PatternStriped, Rarity: RarityEpic,
	},
}
