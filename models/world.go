package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the map.
	ErrOutOfBounds = errors.New("out of bounds")
	// ErrNoPlayerOnTile means RemovePlayer found nothing to remove.
	ErrNoPlayerOnTile = errors.New("no player on tile")
)

// GameMap is the occupancy grid: Width*Height tiles, each an ordered list
// of occupants. Tiles are stored flat at index y*Width+x.
type GameMap struct {
	Width  int
	Height int
	tiles  [][]Occupant
}

// NewGameMap creates a map with every tile empty. The loader fills them in.
func NewGameMap(width, height int) *GameMap {
	return &GameMap{
		Width:  width,
		Height: height,
		tiles:  make([][]Occupant, width*height),
	}
}

// InBounds reports whether (x, y) addresses a tile.
func (m *GameMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

func (m *GameMap) index(x, y int) (int, error) {
	if !m.InBounds(x, y) {
		return 0, fmt.Errorf("tile (%d,%d) on %dx%d map: %w", x, y, m.Width, m.Height, ErrOutOfBounds)
	}
	return y*m.Width + x, nil
}

// TileAt returns a copy of the occupant list at (x, y).
func (m *GameMap) TileAt(x, y int) ([]Occupant, error) {
	i, err := m.index(x, y)
	if err != nil {
		return nil, err
	}
	out := make([]Occupant, len(m.tiles[i]))
	copy(out, m.tiles[i])
	return out, nil
}

// Append adds an occupant to the end of the tile's list.
func (m *GameMap) Append(x, y int, o Occupant) error {
	i, err := m.index(x, y)
	if err != nil {
		return err
	}
	m.tiles[i] = append(m.tiles[i], o)
	return nil
}

// RemovePlayer drops the player reference from (x, y). Every other
// occupant stays, in its original order.
func (m *GameMap) RemovePlayer(x, y int) error {
	i, err := m.index(x, y)
	if err != nil {
		return err
	}

	kept := make([]Occupant, 0, len(m.tiles[i]))
	removed := false
	for _, o := range m.tiles[i] {
		if o.IsPlayer() {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	if !removed {
		return fmt.Errorf("tile (%d,%d): %w", x, y, ErrNoPlayerOnTile)
	}

	m.tiles[i] = kept
	return nil
}

// InsertPlayer appends a player reference to (x, y).
func (m *GameMap) InsertPlayer(x, y int, id EntityID) error {
	return m.Append(x, y, PlayerOccupant(id))
}

// Glyph returns what the tile looks like: the player if present,
// otherwise the first occupant.
func (m *GameMap) Glyph(x, y int) (byte, error) {
	i, err := m.index(x, y)
	if err != nil {
		return 0, err
	}
	tile := m.tiles[i]
	for _, o := range tile {
		if o.IsPlayer() {
			return GlyphPlayer, nil
		}
	}
	if len(tile) == 0 {
		return GlyphRock, nil
	}
	return tile[0].Glyph(), nil
}

// Render returns Height rows of Width glyphs.
func (m *GameMap) Render() []string {
	rows := make([]string, m.Height)
	row := make([]byte, m.Width)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			row[x], _ = m.Glyph(x, y)
		}
		rows[y] = string(row)
	}
	return rows
}

func (m *GameMap) String() string {
	return strings.Join(m.Render(), "\n")
}

// PlayerTiles lists every tile that holds a player reference.
// On a consistent map there is exactly one.
func (m *GameMap) PlayerTiles() []Position {
	var found []Position
	for i, tile := range m.tiles {
		for _, o := range tile {
			if o.IsPlayer() {
				found = append(found, Position{X: i % m.Width, Y: i / m.Width})
				break
			}
		}
	}
	return found
}

// Layout is a named loadfile as kept by persistence.
type Layout struct {
	Name   string `json:"name" yaml:"name"`
	Width  int    `json:"width" yaml:"width"`
	Height int    `json:"height" yaml:"height"`
	Data   string `json:"data" yaml:"data"`
}
