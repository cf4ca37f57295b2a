package camera

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/tiles"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToScreen(t *testing.T) {
	cam := GameCamera{X: 96, Y: 0, Zoom: 1}
	x, y := cam.ToScreen(tiles.Vec3{X: 96, Y: 96}, 800, 600)
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 204.0, y)

	x, y = GameCamera{}.ToScreen(tiles.Vec3{X: 10, Y: -10}, 100, 100)
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 60.0, y)
}

func TestFollowsPlayer(t *testing.T) {
	app := ecs.NewApp()
	tiles.Register(app)
	app.AddPlugins(appstate.Plugin{Initial: appstate.Running}, controls.Plugin{}, Plugin{})
	app.Storage.Spawn(controls.PlayerControlled{}, tiles.Transform{Position: tiles.Vec3{X: 800, Y: -80}})

	app.Update(0)
	cam := ecs.GetSingleton[GameCamera](app.Storage)
	require.NotNil(t, cam)
	assert.InDelta(t, 100, cam.X, 1e-9)
	assert.InDelta(t, -10, cam.Y, 1e-9)

	app.Update(0)
	assert.InDelta(t, 100+700*DefaultFollow, cam.X, 1e-9)

	appstate.RequestApp(app.Storage, appstate.MainMenu)
	app.Update(0)
	assert.Nil(t, ecs.GetSingleton[GameCamera](app.Storage))
}
