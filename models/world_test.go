package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileAtBounds(t *testing.T) {
	m := NewGameMap(3, 2)
	require.NoError(t, m.Append(2, 1, TerrainOccupant(TerrainWall)))

	tile, err := m.TileAt(2, 1)
	require.NoError(t, err)
	assert.Equal(t, []Occupant{TerrainOccupant(TerrainWall)}, tile)

	for _, p := range []Position{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {3, 2}} {
		_, err := m.TileAt(p.X, p.Y)
		assert.ErrorIs(t, err, ErrOutOfBounds, "%v", p)
	}
}

func TestTileAtReturnsCopy(t *testing.T) {
	m := NewGameMap(1, 1)
	require.NoError(t, m.Append(0, 0, TerrainOccupant(TerrainEmpty)))

	tile, err := m.TileAt(0, 0)
	require.NoError(t, err)
	tile[0] = TerrainOccupant(TerrainWall)

	g, err := m.Glyph(0, 0)
	require.NoError(t, err)
	assert.Equal(t, GlyphEmpty, g)
}

func TestRemovePlayerKeepsOthersInOrder(t *testing.T) {
	m := NewGameMap(1, 1)
	require.NoError(t, m.Append(0, 0, GoldOccupant(42)))
	require.NoError(t, m.InsertPlayer(0, 0, PlayerID))
	require.NoError(t, m.Append(0, 0, HostileOccupant(3)))

	require.NoError(t, m.RemovePlayer(0, 0))

	tile, err := m.TileAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, []Occupant{GoldOccupant(42), HostileOccupant(3)}, tile)
}

func TestRemovePlayerWithoutPlayer(t *testing.T) {
	m := NewGameMap(1, 1)
	require.NoError(t, m.Append(0, 0, TerrainOccupant(TerrainEmpty)))

	err := m.RemovePlayer(0, 0)
	assert.ErrorIs(t, err, ErrNoPlayerOnTile)

	tile, _ := m.TileAt(0, 0)
	assert.Len(t, tile, 1)
}

func TestGlyphPrecedence(t *testing.T) {
	m := NewGameMap(4, 1)
	require.NoError(t, m.Append(0, 0, TerrainOccupant(TerrainRock)))
	require.NoError(t, m.Append(1, 0, GoldOccupant(1)))
	require.NoError(t, m.Append(1, 0, HostileOccupant(1)))
	require.NoError(t, m.Append(2, 0, HostileOccupant(2)))
	require.NoError(t, m.Append(3, 0, TerrainOccupant(TerrainWall)))
	require.NoError(t, m.InsertPlayer(3, 0, PlayerID))

	assert.Equal(t, []string{" *E@"}, m.Render())
}

func TestPlayerTiles(t *testing.T) {
	m := NewGameMap(2, 2)
	assert.Empty(t, m.PlayerTiles())

	require.NoError(t, m.InsertPlayer(1, 1, PlayerID))
	assert.Equal(t, []Position{{X: 1, Y: 1}}, m.PlayerTiles())
}

func TestRegistry(t *testing.T) {
	_, err := NewRegistry(nil, nil)
	assert.ErrorIs(t, err, ErrMissingPlayer)

	p := &Player{ID: PlayerID, HP: 42}
	h := &Hostile{ID: 1, HP: 42, Damage: 1}
	r, err := NewRegistry(p, []*Hostile{h})
	require.NoError(t, err)

	r.Player().Gold += 5
	assert.Equal(t, 5, p.Gold, "registry hands out the canonical record")

	got, ok := r.Hostile(1)
	require.True(t, ok)
	assert.Same(t, h, got)

	_, ok = r.Hostile(7)
	assert.False(t, ok)
}

func TestPlayerOccupantKeepsPlayerIDThroughJSON(t *testing.T) {
	in := []Occupant{PlayerOccupant(PlayerID), TerrainOccupant(TerrainEmpty)}

	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Entity":0`)

	var out []Occupant
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
