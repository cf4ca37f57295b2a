package appstate_test

import (
	"testing"

	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/stretchr/testify/assert"
)

func TestLevelIds(t *testing.T) {
	assert.Equal(t, "level03", appstate.Level03.LevelID())
	assert.Equal(t, "", appstate.None.LevelID())

	state, ok := appstate.ParseLevel("LEVEL04")
	assert.True(t, ok)
	assert.Equal(t, appstate.Level04, state)

	_, ok = appstate.ParseLevel("level99")
	assert.False(t, ok)
}

func TestRunningDrivesLevelState(t *testing.T) {
	app := ecs.NewApp()
	app.AddPlugins(appstate.Plugin{Initial: appstate.MainMenu, StartLevel: appstate.Level02})

	app.Update(0)
	level, _ := ecs.CurrentState[appstate.LevelState](app.Storage)
	assert.Equal(t, appstate.None, level)

	appstate.RequestApp(app.Storage, appstate.Running)
	app.Update(0)
	level, _ = ecs.CurrentState[appstate.LevelState](app.Storage)
	assert.Equal(t, appstate.Level02, level)

	appstate.RequestApp(app.Storage, appstate.MainMenu)
	app.Update(0)
	level, _ = ecs.CurrentState[appstate.LevelState](app.Storage)
	assert.Equal(t, appstate.None, level)
	assert.False(t, app.ShouldExit())

	appstate.RequestApp(app.Storage, appstate.Quitting)
	app.Update(0)
	assert.True(t, app.ShouldExit())
}
