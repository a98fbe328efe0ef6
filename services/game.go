package services

import (
	"errors"
	"fmt"

	"gridcrawl/server/models"
)

// ErrOutOfBounds is returned for a move that would leave the map.
var ErrOutOfBounds = models.ErrOutOfBounds

// Direction is one of the four axis-aligned steps.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// Offset is the unit step for d. y grows downwards.
func (d Direction) Offset() models.Position {
	switch d {
	case Left:
		return models.Position{X: -1}
	case Right:
		return models.Position{X: 1}
	case Up:
		return models.Position{Y: -1}
	case Down:
		return models.Position{Y: 1}
	}
	return models.Position{}
}

// Game is one running map. It is not safe for concurrent use; see
// WorldService for the serialized wrapper.
type Game struct {
	Map      *models.GameMap
	Registry *models.Registry
	Turn     int
}

func (g *Game) Player() *models.Player {
	return g.Registry.Player()
}

func (g *Game) Hostiles() []*models.Hostile {
	return g.Registry.Hostiles()
}

// MovePlayer steps the player one tile in dir. Moves off the map return
// ErrOutOfBounds and change nothing. Whatever is on the destination tile
// stays there.
func (g *Game) MovePlayer(dir Direction) (models.Position, error) {
	player := g.Registry.Player()
	from := player.Pos
	to := from.Add(dir.Offset())

	if !g.Map.InBounds(to.X, to.Y) {
		return from, fmt.Errorf("move %s from (%d,%d): %w", dir, from.X, from.Y, ErrOutOfBounds)
	}

	if err := g.Map.RemovePlayer(from.X, from.Y); err != nil {
		panic(fmt.Sprintf("player record and map disagree: %v", err))
	}
	player.Pos = to
	if err := g.Map.InsertPlayer(to.X, to.Y, player.ID); err != nil {
		panic(fmt.Sprintf("insert player: %v", err))
	}

	return to, nil
}

func (g *Game) Render() []string {
	return g.Map.Render()
}

// CheckInvariants verifies exactly one tile holds the player and that it
// matches the player's recorded position.
func (g *Game) CheckInvariants() error {
	tiles := g.Map.PlayerTiles()
	if len(tiles) != 1 {
		return fmt.Errorf("player found on %d tiles", len(tiles))
	}
	if pos := g.Player().Pos; tiles[0] != pos {
		return fmt.Errorf("player recorded at (%d,%d) but found at (%d,%d)", pos.X, pos.Y, tiles[0].X, tiles[0].Y)
	}

	tile, _ := g.Map.TileAt(tiles[0].X, tiles[0].Y)
	for _, o := range tile {
		if o.IsPlayer() && o.Entity != g.Player().ID {
			return errors.New("tile references a player that is not in the registry")
		}
	}
	return nil
}
