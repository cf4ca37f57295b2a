package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/config"
	"github.com/plus3/tilequest/internal/gold"
	"github.com/plus3/tilequest/internal/health"
	"github.com/plus3/tilequest/internal/history"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/levels"
	"github.com/plus3/tilequest/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type player struct {
	t      *testing.T
	game   *Game
	script *input.Scripted
}

func newPlayer(t *testing.T) *player {
	t.Helper()
	catalog, err := levels.Load()
	require.NoError(t, err)
	script := input.NewScripted()
	return &player{t: t, game: NewHeadless(config.Default(), catalog, script), script: script}
}

// press runs one frame per key and a quiet frame after the last.
func (p *player) press(keys ...ebiten.Key) {
	for _, key := range keys {
		p.script.Press(key)
		require.False(p.t, p.game.Step())
	}
	p.game.Step()
}

func (p *player) app() appstate.AppState {
	s, _ := ecs.CurrentState[appstate.AppState](p.game.App().Storage)
	return s
}

func (p *player) level() appstate.LevelState {
	s, _ := ecs.CurrentState[appstate.LevelState](p.game.App().Storage)
	return s
}

func TestFullRun(t *testing.T) {
	p := newPlayer(t)
	storage := p.game.App().Storage

	p.game.Step()
	assert.Equal(t, appstate.Splash, p.app())

	p.press(ebiten.KeyEnter)
	assert.Equal(t, appstate.MainMenu, p.app())

	p.press(ebiten.KeyEnter)
	assert.Equal(t, appstate.Running, p.app())
	assert.Equal(t, appstate.Level01, p.level())

	p.press(ebiten.KeyD, ebiten.KeyD)
	assert.Equal(t, appstate.Level02, p.level())

	p.press(ebiten.KeyD, ebiten.KeyD)
	assert.Equal(t, appstate.Level03, p.level())
	assert.Equal(t, int64(1), ecs.GetSingleton[gold.PlayerGold](storage).Coins)

	p.press(ebiten.KeyW, ebiten.KeyW, ebiten.KeyD)
	assert.Equal(t, appstate.Level04, p.level())

	p.press(ebiten.KeyA, ebiten.KeyW, ebiten.KeyA, ebiten.KeyD, ebiten.KeyD, ebiten.KeyD)
	assert.Equal(t, appstate.Level05, p.level())

	p.press(ebiten.KeyA, ebiten.KeyS, ebiten.KeyA, ebiten.KeyD)
	hearts := ecs.NewQuery[struct{ *health.Health }](storage)
	hearts.Execute()
	_, h, ok := hearts.Single()
	require.True(t, ok)
	assert.Equal(t, uint(2), h.Hearts)

	p.press(ebiten.KeyD, ebiten.KeyW, ebiten.KeyD, ebiten.KeyD, ebiten.KeyD)
	assert.Equal(t, appstate.MainMenu, p.app())
	assert.Equal(t, appstate.None, p.level())

	last := ecs.GetSingleton[history.LastRun](storage)
	require.NotNil(t, last)
	require.True(t, last.Known)
	assert.Equal(t, 14, int(last.Run.Gold))
	assert.Equal(t, 5, last.Run.Levels)

	p.script.Press(ebiten.KeyDown)
	p.script.Press(ebiten.KeyEnter)
	p.game.Step()
	p.game.Step()
	assert.True(t, p.game.Step())
}

func TestEscapeReturnsToMenu(t *testing.T) {
	p := newPlayer(t)
	p.game.Step()
	p.press(ebiten.KeyEnter)
	p.press(ebiten.KeyEnter)
	require.Equal(t, appstate.Running, p.app())

	p.press(ebiten.KeyEscape)
	assert.Equal(t, appstate.MainMenu, p.app())
	assert.Equal(t, appstate.None, p.level())
}

func TestLayoutUsesConfiguredSize(t *testing.T) {
	p := newPlayer(t)
	w, h := p.game.Layout(1920, 1080)
	assert.Equal(t, 1280, w)
	assert.Equal(t, 720, h)
}

func TestScreenResourceReusedAcrossFrames(t *testing.T) {
	p := newPlayer(t)
	storage := p.game.App().Storage

	first := ecs.GetSingleton[render.Screen](storage)
	require.NotNil(t, first)

	img := &ebiten.Image{}
	p.game.setScreen(img)
	p.game.setScreen(img)

	current := ecs.GetSingleton[render.Screen](storage)
	assert.Same(t, first, current)
	assert.Same(t, img, current.Image)

	ecs.RemoveSingleton[render.Screen](storage)
	p.game.setScreen(img)
	assert.Same(t, img, ecs.GetSingleton[render.Screen](storage).Image)
}
