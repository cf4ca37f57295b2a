package tiles

import (
	"math"
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToWorld(t *testing.T) {
	c := TileCoordinate{X: 2, Y: -1, Z: 3}
	assert.Equal(t, Vec3{X: 192, Y: -96, Z: 3}, c.ToWorld(16, 6))
	assert.Equal(t, Vec3{X: 4, Y: -2, Z: 3}, c.ToWorld(2, 1))
	assert.Equal(t, c.ToWorld(SpriteDim, SpriteScale), c.World())
}

func TestEq2DIgnoresZ(t *testing.T) {
	a := TileCoordinate{X: 1, Y: 2, Z: 0}
	assert.True(t, a.Eq2D(TileCoordinate{X: 1, Y: 2, Z: 5}))
	assert.False(t, a.Eq2D(TileCoordinate{X: 2, Y: 1}))
	assert.Equal(t, TileCoordinate{X: 0, Y: 3}, a.Add(-1, 1))
}

func TestVec3Lerp(t *testing.T) {
	a, b := Vec3{X: 0, Y: 10}, Vec3{X: 10, Y: 0}
	assert.Equal(t, a, a.Lerp(b, 0))
	assert.Equal(t, b, a.Lerp(b, 1))
	assert.Equal(t, Vec3{X: 5, Y: 5}, a.Lerp(b, 0.5))
}

func TestBlockingMapNegativeCells(t *testing.T) {
	m := NewBlockingMap()
	m.Set(TileCoordinate{X: -2, Y: 1}, 7)
	m.Set(TileCoordinate{X: 2, Y: 1}, 8)

	e, ok := m.Lookup(TileCoordinate{X: -2, Y: 1, Z: 9})
	require.True(t, ok)
	assert.Equal(t, ecs.EntityId(7), e)

	e, ok = m.Lookup(TileCoordinate{X: 2, Y: 1})
	require.True(t, ok)
	assert.Equal(t, ecs.EntityId(8), e)

	_, ok = m.Lookup(TileCoordinate{X: 1, Y: -2})
	assert.False(t, ok)
	assert.Equal(t, 2, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())

	var empty BlockingMap
	_, ok = empty.Lookup(TileCoordinate{})
	assert.False(t, ok)
}

func TestBlockingMapFarCellsStayDistinct(t *testing.T) {
	m := NewBlockingMap()
	m.Set(TileCoordinate{X: 1, Y: 1}, 3)

	for _, far := range []TileCoordinate{
		{X: 1 + 1<<32, Y: 1},
		{X: 1, Y: 1 - 1<<32},
		{X: math.MaxInt64, Y: math.MinInt64},
	} {
		_, ok := m.Lookup(far)
		assert.False(t, ok, far.String())
	}

	m.Set(TileCoordinate{X: 1 + 1<<32, Y: 1}, 4)
	m.Set(TileCoordinate{X: 1 + 1<<32, Y: 1}, 5)
	assert.Equal(t, 2, m.Len())

	e, ok := m.Lookup(TileCoordinate{X: 1, Y: 1})
	require.True(t, ok)
	assert.Equal(t, ecs.EntityId(3), e)
	e, ok = m.Lookup(TileCoordinate{X: 1 + 1<<32, Y: 1})
	require.True(t, ok)
	assert.Equal(t, ecs.EntityId(5), e)
}

func TestBlockingSystemRebuilds(t *testing.T) {
	app := ecs.NewApp()
	app.AddPlugins(appstate.Plugin{Initial: appstate.Running}, Plugin{})

	wall := app.Storage.Spawn(Tile{}, TileCoordinate{X: 1}, BlockingTile{})
	app.Storage.Spawn(Tile{}, TileCoordinate{X: 2})
	app.Update(0)

	blocking := ecs.GetSingleton[BlockingMap](app.Storage)
	require.NotNil(t, blocking)
	e, ok := blocking.Lookup(TileCoordinate{X: 1})
	require.True(t, ok)
	assert.Equal(t, wall, e)
	_, ok = blocking.Lookup(TileCoordinate{X: 2})
	assert.False(t, ok)

	app.Storage.Delete(wall)
	app.Update(0)
	assert.Equal(t, 0, blocking.Len())
}
