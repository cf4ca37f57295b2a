// Package controls defines the player marker and the direction input event
// the keyboard produces and movement consumes.
package controls

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/logging"
)

const NAME = "controls"

// PlayerControlled marks the entity moved by direction input.
type PlayerControlled struct{}

type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "Direction(?)"
	}
}

// Delta is the grid step of the direction. Up increases Y.
func (d Direction) Delta() (dx, dy int64) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	case Up:
		return 0, 1
	case Down:
		return 0, -1
	default:
		return 0, 0
	}
}

// DirectionInput is sent once per directional key press.
type DirectionInput struct {
	Dir Direction
}

// PlayerSpawned is sent when a player entity is created.
type PlayerSpawned struct {
	Entity ecs.EntityId
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.Register[PlayerControlled](app)
	app.AddSystems(ecs.Update, &ControlsSystem{logger: logging.For(NAME)}, ecs.InState(appstate.Running))
}

// ControlsSystem logs the direction input of the frame.
type ControlsSystem struct {
	Inputs ecs.EventReader[DirectionInput]
	logger *log.Logger
}

func (s *ControlsSystem) Execute(frame *ecs.UpdateFrame) {
	for in := range s.Inputs.Read() {
		s.logger.Debug("direction input", "dir", in.Dir)
	}
}
