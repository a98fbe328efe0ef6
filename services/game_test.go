package services

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridcrawl/server/models"
)

func TestMoveRightScenario(t *testing.T) {
	g := mustLoad(t, "@..\n...\n..#", 3, 3)

	pos, err := g.MovePlayer(Right)
	require.NoError(t, err)
	assert.Equal(t, models.Position{X: 1, Y: 0}, pos)
	assert.Equal(t, pos, g.Player().Pos)

	assert.Equal(t, ".@.\n...\n..#", strings.Join(g.Render(), "\n"))
	require.NoError(t, g.CheckInvariants())
}

func TestDirectionOffsets(t *testing.T) {
	for dir, want := range map[Direction]models.Position{
		Left:  {X: 0, Y: 1},
		Right: {X: 2, Y: 1},
		Up:    {X: 1, Y: 0},
		Down:  {X: 1, Y: 2},
	} {
		g := mustLoad(t, "...\n.@.\n...", 3, 3)
		pos, err := g.MovePlayer(dir)
		require.NoError(t, err, dir.String())
		assert.Equal(t, want, pos, dir.String())
	}
}

func TestMoveKeepsOccupants(t *testing.T) {
	g := mustLoad(t, "@*E", 3, 1)

	_, err := g.MovePlayer(Right)
	require.NoError(t, err)
	assert.Equal(t, []string{".@E"}, g.Render())

	tile, _ := g.Map.TileAt(1, 0)
	assert.Equal(t, []models.Occupant{models.GoldOccupant(42), models.PlayerOccupant(models.PlayerID)}, tile)
	assert.Equal(t, 0, g.Player().Gold, "stepping on gold does not pick it up")

	_, err = g.MovePlayer(Right)
	require.NoError(t, err)
	assert.Equal(t, []string{".*@"}, g.Render())

	_, err = g.MovePlayer(Left)
	require.NoError(t, err)
	assert.Equal(t, []string{".@E"}, g.Render())

	tile, _ = g.Map.TileAt(2, 0)
	assert.Equal(t, []models.Occupant{models.HostileOccupant(g.Hostiles()[0].ID)}, tile)
	assert.Equal(t, 42, g.Hostiles()[0].HP)
	require.NoError(t, g.CheckInvariants())
}

func TestMoveThroughWalls(t *testing.T) {
	g := mustLoad(t, "@#.", 3, 1)

	_, err := g.MovePlayer(Right)
	require.NoError(t, err)
	assert.Equal(t, []string{".@."}, g.Render())

	_, err = g.MovePlayer(Right)
	require.NoError(t, err)
	assert.Equal(t, []string{".#@"}, g.Render())
}

func TestMoveOutOfBoundsIsNoop(t *testing.T) {
	// The player is walked to every edge and corner of a 3x3 map and each
	// direction is tried there.
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			rows := []string{"...", ".*.", "..E"}
			row := []byte(rows[y])
			row[x] = '@'
			rows[y] = string(row)

			for _, dir := range []Direction{Left, Right, Up, Down} {
				g := mustLoad(t, strings.Join(rows, "\n"), 3, 3)
				to := models.Position{X: x, Y: y}.Add(dir.Offset())
				if g.Map.InBounds(to.X, to.Y) {
					continue
				}

				before := snapshotTiles(t, g)
				pos, err := g.MovePlayer(dir)

				assert.ErrorIs(t, err, ErrOutOfBounds, "(%d,%d) %s", x, y, dir)
				assert.Equal(t, models.Position{X: x, Y: y}, pos)
				assert.Equal(t, models.Position{X: x, Y: y}, g.Player().Pos)
				assert.Equal(t, before, snapshotTiles(t, g))
			}
		}
	}
}

func TestRandomWalkKeepsInvariants(t *testing.T) {
	g := mustLoad(t, "#####\n#@*E#\n# . #\n#####", 5, 4)
	rng := rand.New(rand.NewSource(1))
	dirs := []Direction{Left, Right, Up, Down}

	for i := 0; i < 500; i++ {
		_, err := g.MovePlayer(dirs[rng.Intn(len(dirs))])
		if err != nil {
			require.ErrorIs(t, err, ErrOutOfBounds)
		}
		require.NoError(t, g.CheckInvariants())
	}

	// Non-player occupants never move or disappear.
	counts := map[models.OccupantKind]int{}
	for y := 0; y < 4; y++ {
		for x := 0; x < 5; x++ {
			tile, _ := g.Map.TileAt(x, y)
			require.NotEmpty(t, tile)
			for _, o := range tile {
				counts[o.Kind]++
			}
		}
	}
	assert.Equal(t, 1, counts[models.KindPlayer])
	assert.Equal(t, 1, counts[models.KindGold])
	assert.Equal(t, 1, counts[models.KindHostile])
}

func TestMovePanicsOnCorruptMap(t *testing.T) {
	g := mustLoad(t, "@.", 2, 1)
	require.NoError(t, g.Map.RemovePlayer(0, 0))

	assert.Panics(t, func() { g.MovePlayer(Right) })
}

func TestCheckInvariantsDetectsDrift(t *testing.T) {
	g := mustLoad(t, "@.", 2, 1)
	g.Player().Pos = models.Position{X: 1, Y: 0}
	assert.Error(t, g.CheckInvariants())

	g = mustLoad(t, "@.", 2, 1)
	require.NoError(t, g.Map.InsertPlayer(1, 0, models.PlayerID))
	assert.Error(t, g.CheckInvariants())
}

func snapshotTiles(t *testing.T, g *Game) [][]models.Occupant {
	t.Helper()
	var out [][]models.Occupant
	for y := 0; y < g.Map.Height; y++ {
		for x := 0; x < g.Map.Width; x++ {
			tile, err := g.Map.TileAt(x, y)
			require.NoError(t, err)
			out = append(out, tile)
		}
	}
	return out
}
