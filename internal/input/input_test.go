package input

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedReplaysOneFramePerTick(t *testing.T) {
	s := NewScripted()
	s.Press(ebiten.KeyW)
	s.Idle(1)
	s.Click(10, 20)
	require.Equal(t, 3, s.Pending())

	s.Tick()
	assert.True(t, s.KeyJustPressed(ebiten.KeyW))
	assert.False(t, s.KeyJustPressed(ebiten.KeyS))

	s.Tick()
	assert.False(t, s.KeyJustPressed(ebiten.KeyW))
	assert.False(t, s.MouseJustPressed())

	s.Tick()
	assert.True(t, s.MouseJustPressed())
	x, y := s.CursorPosition()
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)

	s.Tick()
	assert.False(t, s.MouseJustPressed())
	assert.Equal(t, 0, s.Pending())
}

func TestPluginTicksScriptedSource(t *testing.T) {
	s := NewScripted()
	app := ecs.NewApp()
	app.AddPlugins(Plugin{Source: s})

	s.Press(ebiten.KeyArrowUp)
	app.Update(0)

	in := ecs.GetSingleton[Input](app.Storage)
	require.NotNil(t, in)
	assert.True(t, in.JustPressed(ebiten.KeyW, ebiten.KeyArrowUp))

	app.Update(0)
	assert.False(t, in.JustPressed(ebiten.KeyArrowUp))
}

func TestNilInputReadsAsIdle(t *testing.T) {
	var in *Input
	assert.False(t, in.JustPressed(ebiten.KeyEnter))
	assert.False(t, in.Clicked())
}
