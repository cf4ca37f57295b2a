package ingameui

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLines(t *testing.T) {
	assert.Equal(t, "Health: 2/3", HealthLine(health.Health{Hearts: 2, Max: 3}))
	assert.Equal(t, "Gold: 7", GoldLine(gold.Gold{Coins: 7}))
	assert.Equal(t, []string{"Health: 1/3"}, (&HUD{Health: "Health: 1/3"}).Lines())
}

func TestRefreshOnPickup(t *testing.T) {
	app := ecs.NewApp()
	tiles.Register(app)
	app.AddPlugins(appstate.Plugin{Initial: appstate.Running}, controls.Plugin{}, gold.Plugin{}, health.Plugin{}, Plugin{})

	at := tiles.TileCoordinate{}
	player := app.Storage.Spawn(at, controls.PlayerControlled{}, health.Health{Hearts: 1, Max: 3}, gold.Gold{})
	app.Update(0)

	hud := ecs.GetSingleton[HUD](app.Storage)
	require.NotNil(t, hud)
	assert.Equal(t, "Health: 1/3", hud.Health)
	assert.Equal(t, "Gold: 0", hud.Gold)

	app.Storage.Spawn(at, health.Hearts(1))
	app.Storage.Spawn(at, gold.Gold{Coins: 4})
	app.Update(0)

	assert.Equal(t, "Health: 2/3", hud.Health)
	assert.Equal(t, "Gold: 4", hud.Gold)
	assert.True(t, app.Storage.Alive(player))
}
