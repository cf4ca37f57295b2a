package gold

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *ecs.App {
	app := ecs.NewApp()
	tiles.Register(app)
	app.AddPlugins(appstate.Plugin{Initial: appstate.Running}, controls.Plugin{}, Plugin{})
	return app
}

func TestPickupBanksAndDespawnsCoin(t *testing.T) {
	app := newApp()
	player := app.Storage.Spawn(tiles.TileCoordinate{X: 1}, controls.PlayerControlled{}, Gold{})
	coin := app.Storage.Spawn(tiles.TileCoordinate{X: 1, Z: 2}, Gold{Coins: 5})
	other := app.Storage.Spawn(tiles.TileCoordinate{X: 2}, Gold{Coins: 7})
	picked := ecs.NewEventReader[PlayerPickedUpGoldCoins](app.Storage)

	app.Update(0)

	assert.False(t, app.Storage.Alive(coin))
	assert.True(t, app.Storage.Alive(other))
	assert.Equal(t, int64(5), ecs.ReadComponent[Gold](app.Storage, player).Coins)

	bank := ecs.GetSingleton[PlayerGold](app.Storage)
	require.NotNil(t, bank)
	assert.Equal(t, int64(5), bank.Coins)

	var got []PlayerPickedUpGoldCoins
	for ev := range picked.Read() {
		got = append(got, ev)
	}
	assert.Equal(t, []PlayerPickedUpGoldCoins{{Player: player, Coins: 5, Total: 5}}, got)
}

func TestSpawnedPlayerReceivesBank(t *testing.T) {
	app := newApp()
	app.Update(0)
	ecs.GetSingleton[PlayerGold](app.Storage).Coins = 12

	player := app.Storage.Spawn(tiles.TileCoordinate{}, controls.PlayerControlled{})
	ecs.SendEvent(app.Storage, controls.PlayerSpawned{Entity: player})
	app.Update(0)

	g := ecs.ReadComponent[Gold](app.Storage, player)
	require.NotNil(t, g)
	assert.Equal(t, int64(12), g.Coins)
}

func TestLeavingRunReportsFinalGold(t *testing.T) {
	app := newApp()
	app.Update(0)
	ecs.GetSingleton[PlayerGold](app.Storage).Coins = 9
	final := ecs.NewEventReader[FinalPlayerGoldAmount](app.Storage)

	appstate.RequestApp(app.Storage, appstate.MainMenu)
	app.Update(0)

	assert.Nil(t, ecs.GetSingleton[PlayerGold](app.Storage))
	var got []FinalPlayerGoldAmount
	for ev := range final.Read() {
		got = append(got, ev)
	}
	assert.Equal(t, []FinalPlayerGoldAmount{{Coins: 9}}, got)
}
