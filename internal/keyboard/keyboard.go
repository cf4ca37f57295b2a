// Package keyboard turns key presses into direction input while a level runs.
package keyboard

import (
	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/input"
	"github.com/plus3/tilequest/internal/logging"
)

const NAME = "keyboard"

var bindings = []struct {
	keys []ebiten.Key
	dir  controls.Direction
}{
	{[]ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}, controls.Left},
	{[]ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}, controls.Right},
	{[]ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp}, controls.Up},
	{[]ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown}, controls.Down},
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	app.AddSystems(ecs.Update, &KeyboardSystem{logger: logging.For(NAME)}, ecs.InState(appstate.Running))
}

// KeyboardSystem sends a DirectionInput per bound key pressed this frame.
// Escape leaves the run for the main menu.
type KeyboardSystem struct {
	Input      ecs.Singleton[input.Input]
	Directions ecs.EventWriter[controls.DirectionInput]
	Next       ecs.Singleton[ecs.NextState[appstate.AppState]]
	logger     *log.Logger
}

func (s *KeyboardSystem) Execute(frame *ecs.UpdateFrame) {
	in := s.Input.Get()
	if in.JustPressed(ebiten.KeyEscape) {
		s.logger.Info("leaving run")
		if next := s.Next.Get(); next != nil {
			next.Set(appstate.MainMenu)
		}
		return
	}

	for _, binding := range bindings {
		if in.JustPressed(binding.keys...) {
			s.Directions.Send(controls.DirectionInput{Dir: binding.dir})
		}
	}
}
