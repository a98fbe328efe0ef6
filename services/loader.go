package services

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gridcrawl/server/config"
	"gridcrawl/server/models"
)

var (
	ErrDuplicatePlayer   = errors.New("more than one player in loadfile")
	ErrMissingPlayer     = models.ErrMissingPlayer
	ErrMalformedLoadfile = errors.New("malformed loadfile")
)

// LoadError reports where in the loadfile loading failed.
type LoadError struct {
	Pos  models.Position
	Char byte
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("cell (%d,%d) %q: %v", e.Pos.X, e.Pos.Y, e.Char, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load builds a Game from a loadfile of height rows of width cells.
// Newlines are skipped and do not take up a cell.
func Load(raw []byte, width, height int, stats config.Balance) (*Game, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("dimensions %dx%d: %w", width, height, ErrMalformedLoadfile)
	}
	total := width * height

	// Tiles are collected as they are read so the map is only allocated
	// once the buffer is known to fill it.
	var tiles [][]models.Occupant
	var player *models.Player
	var hostiles []*models.Hostile

	for _, c := range raw {
		if len(tiles) == total {
			break
		}
		if c == '\n' || c == '\r' {
			continue
		}

		x, y := len(tiles)%width, len(tiles)/width
		pos := models.Position{X: x, Y: y}
		var tile []models.Occupant

		switch c {
		case models.GlyphRock:
			tile = append(tile, models.TerrainOccupant(models.TerrainRock))
		case models.GlyphEmpty:
			tile = append(tile, models.TerrainOccupant(models.TerrainEmpty))
		case models.GlyphPlayer:
			if player != nil {
				return nil, &LoadError{Pos: pos, Char: c, Err: ErrDuplicatePlayer}
			}
			player = &models.Player{
				ID:     models.PlayerID,
				Pos:    pos,
				HP:     stats.PlayerHP,
				Damage: stats.PlayerDamage,
				Gold:   stats.PlayerGold,
			}
			// The floor under the player is kept so it shows once they leave.
			tile = append(tile,
				models.PlayerOccupant(player.ID),
				models.TerrainOccupant(models.TerrainEmpty))
		case models.GlyphHostile:
			h := &models.Hostile{
				ID:     models.EntityID(len(hostiles) + 1),
				Pos:    pos,
				HP:     stats.HostileHP,
				Damage: stats.HostileDamage,
			}
			hostiles = append(hostiles, h)
			tile = append(tile, models.HostileOccupant(h.ID))
		case models.GlyphGold:
			tile = append(tile, models.GoldOccupant(stats.GoldPile))
		case models.GlyphWall:
			tile = append(tile, models.TerrainOccupant(models.TerrainWall))
		default:
			return nil, &LoadError{Pos: pos, Char: c, Err: ErrMalformedLoadfile}
		}

		tiles = append(tiles, tile)
	}

	registry, err := models.NewRegistry(player, hostiles)
	if err != nil {
		return nil, err
	}
	if len(tiles) < total {
		return nil, fmt.Errorf("loadfile has %d cells, want %d: %w", len(tiles), total, ErrMalformedLoadfile)
	}

	m := models.NewGameMap(width, height)
	for i, tile := range tiles {
		for _, o := range tile {
			if err := m.Append(i%width, i/width, o); err != nil {
				return nil, err
			}
		}
	}

	return &Game{Map: m, Registry: registry}, nil
}

// LoadFile reads and loads a loadfile from disk.
func LoadFile(path string, width, height int, stats config.Balance) (*Game, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read loadfile: %w", err)
	}
	return Load(raw, width, height, stats)
}

// LoadLayout loads a stored layout.
func LoadLayout(l *models.Layout, stats config.Balance) (*Game, error) {
	g, err := Load([]byte(l.Data), l.Width, l.Height, stats)
	if err != nil {
		return nil, fmt.Errorf("layout %s: %w", l.Name, err)
	}
	return g, nil
}
