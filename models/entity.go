package models

// EntityID identifies a player or hostile in the Registry.
// Tiles only ever hold an EntityID, never the entity itself.
type EntityID int

// PlayerID is the ID of the one and only player.
const PlayerID EntityID = 0

type Player struct {
	ID     EntityID `json:"id"`
	Pos    Position `json:"pos"`
	HP     int      `json:"hp"`
	Damage int      `json:"damage"`
	Gold   int      `json:"gold"`
}

// Hostile is a stationary enemy ("emu"). Pos is its spawn tile.
type Hostile struct {
	ID     EntityID `json:"id"`
	Pos    Position `json:"pos"`
	HP     int      `json:"hp"`
	Damage int      `json:"damage"`
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p shifted by d.
func (p Position) Add(d Position) Position {
	return Position{X: p.X + d.X, Y: p.Y + d.Y}
}
