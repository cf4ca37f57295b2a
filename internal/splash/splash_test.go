package splash

import (
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/input"
	"github.com/stretchr/testify/assert"
)

func newApp(script *input.Scripted) *ecs.App {
	app := ecs.NewApp()
	app.AddPlugins(
		input.Plugin{Source: script},
		appstate.Plugin{Initial: appstate.Splash},
		Plugin{Title: "tilequest", Duration: time.Second},
	)
	return app
}

func current(app *ecs.App) appstate.AppState {
	state, _ := ecs.CurrentState[appstate.AppState](app.Storage)
	return state
}

func TestSplashTimesOut(t *testing.T) {
	app := newApp(input.NewScripted())

	app.Update(0.5)
	assert.Equal(t, appstate.Splash, current(app))
	assert.NotNil(t, ecs.GetSingleton[Splash](app.Storage))

	app.Update(0.6)
	app.Update(0)
	assert.Equal(t, appstate.MainMenu, current(app))
	assert.Nil(t, ecs.GetSingleton[Splash](app.Storage))
}

func TestSplashSkippedByKey(t *testing.T) {
	script := input.NewScripted()
	app := newApp(script)

	script.Press(ebiten.KeyEnter)
	app.Update(0)
	app.Update(0)
	assert.Equal(t, appstate.MainMenu, current(app))
}

func TestTitleFadesInOverFirstHalf(t *testing.T) {
	assert.Equal(t, 0.0, TitleAlpha(0))
	assert.InDelta(t, 0.5, TitleAlpha(0.25), 1e-9)
	assert.Equal(t, 1.0, TitleAlpha(0.5))
	assert.Equal(t, 1.0, TitleAlpha(0.9))
	assert.Equal(t, 0.0, TitleAlpha(-1))
}
