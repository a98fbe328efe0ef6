package models

// OccupantKind tags what an Occupant holds.
type OccupantKind int

const (
	KindTerrain OccupantKind = iota
	KindGold
	KindPlayer
	KindHostile
)

// Terrain types for KindTerrain occupants
type Terrain int

const (
	TerrainRock Terrain = iota
	TerrainEmpty
	TerrainWall
)

// Glyphs used by the loader and the renderer
const (
	GlyphRock    byte = ' '
	GlyphEmpty   byte = '.'
	GlyphWall    byte = '#'
	GlyphGold    byte = '*'
	GlyphPlayer  byte = '@'
	GlyphHostile byte = 'E'
)

// Occupant is one entry in a tile's occupant list.
type Occupant struct {
	Kind    OccupantKind
	Terrain Terrain
	Amount  int
	Entity  EntityID
}

func TerrainOccupant(t Terrain) Occupant {
	return Occupant{Kind: KindTerrain, Terrain: t}
}

func GoldOccupant(amount int) Occupant {
	return Occupant{Kind: KindGold, Amount: amount}
}

func PlayerOccupant(id EntityID) Occupant {
	return Occupant{Kind: KindPlayer, Entity: id}
}

func HostileOccupant(id EntityID) Occupant {
	return Occupant{Kind: KindHostile, Entity: id}
}

func (o Occupant) IsPlayer() bool {
	return o.Kind == KindPlayer
}

// Glyph returns the display character for this occupant on its own.
func (o Occupant) Glyph() byte {
	switch o.Kind {
	case KindGold:
		return GlyphGold
	case KindPlayer:
		return GlyphPlayer
	case KindHostile:
		return GlyphHostile
	}
	switch o.Terrain {
	case TerrainEmpty:
		return GlyphEmpty
	case TerrainWall:
		return GlyphWall
	default:
		return GlyphRock
	}
}
