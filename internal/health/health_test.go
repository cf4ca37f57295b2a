package health

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *ecs.App {
	app := ecs.NewApp()
	tiles.Register(app)
	app.AddPlugins(appstate.Plugin{Initial: appstate.Running}, Plugin{})
	return app
}

func TestHeartRefusedAtMax(t *testing.T) {
	app := newApp()
	at := tiles.TileCoordinate{X: 3, Y: 3}
	player := app.Storage.Spawn(at, Health{Hearts: 3, Max: 3})
	heart := app.Storage.Spawn(at, Hearts(1))
	picked := ecs.NewEventReader[PickedUpHearts](app.Storage)

	app.Update(0)

	assert.True(t, app.Storage.Alive(heart))
	assert.Equal(t, uint(3), ecs.ReadComponent[Health](app.Storage, player).Hearts)
	assert.True(t, picked.IsEmpty())
}

func TestHeartPickedUpWithRoom(t *testing.T) {
	app := newApp()
	at := tiles.TileCoordinate{X: 3, Y: 3}
	player := app.Storage.Spawn(at, Health{Hearts: 1, Max: 3})
	heart := app.Storage.Spawn(tiles.TileCoordinate{X: 3, Y: 3, Z: 1}, Hearts(2))
	picked := ecs.NewEventReader[PickedUpHearts](app.Storage)

	app.Update(0)

	assert.False(t, app.Storage.Alive(heart))
	h := ecs.ReadComponent[Health](app.Storage, player)
	require.NotNil(t, h)
	assert.Equal(t, Health{Hearts: 3, Max: 3}, *h)

	var got []PickedUpHearts
	for ev := range picked.Read() {
		got = append(got, ev)
	}
	assert.Equal(t, []PickedUpHearts{{Entity: player, Hearts: 2, Health: Health{Hearts: 3, Max: 3}}}, got)
}

func TestCanTake(t *testing.T) {
	assert.True(t, Health{Hearts: 1, Max: 3}.CanTake(2))
	assert.False(t, Health{Hearts: 1, Max: 3}.CanTake(3))
}
