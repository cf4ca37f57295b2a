// Package movement steps player-controlled entities across the grid.
package movement

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/animation"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/controls"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "movement"

const wiggleDuration = 150 * time.Millisecond

// Moved is sent after an entity steps onto a new cell.
type Moved struct {
	Entity   ecs.EntityId
	From, To tiles.TileCoordinate
}

// MovementBlocked is sent when a step is refused. At is the blocked cell.
type MovementBlocked struct {
	Entity  ecs.EntityId
	At      tiles.TileCoordinate
	Blocker ecs.EntityId
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	app.AddSystems(ecs.Update, &MovementSystem{logger: logging.For(NAME)}, ecs.InState(appstate.Running))
}

// MovementSystem applies every DirectionInput of the frame to every player.
type MovementSystem struct {
	Inputs  ecs.EventReader[controls.DirectionInput]
	Players ecs.Query[struct {
		ecs.EntityId
		*controls.PlayerControlled
		*tiles.TileCoordinate
	}]
	Blocking ecs.Singleton[tiles.BlockingMap]
	Settings ecs.Singleton[animation.Settings]
	Moved    ecs.EventWriter[Moved]
	Blocked  ecs.EventWriter[MovementBlocked]
	logger   *log.Logger
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	blocking := s.Blocking.Get()
	settings := animation.Settings{MoveDuration: animation.DefaultMoveDuration, MoveEase: animation.DefaultMoveEase}
	if st := s.Settings.Get(); st != nil {
		settings = *st
	}

	for in := range s.Inputs.Read() {
		dx, dy := in.Dir.Delta()
		for player := range s.Players.Values() {
			from := *player.TileCoordinate
			to := from.Add(dx, dy)

			if blocking != nil {
				if blocker, ok := blocking.Lookup(to); ok {
					s.logger.Debug("movement blocked", "entity", player.EntityId, "at", to, "blocker", blocker)
					s.Blocked.Send(MovementBlocked{Entity: player.EntityId, At: to, Blocker: blocker})
					frame.Commands.AddComponent(player.EntityId, animation.New(animation.Wiggle, wiggleDuration, animation.SineInOut))
					continue
				}
			}

			*player.TileCoordinate = to
			frame.Commands.AddComponent(player.EntityId, animation.NewMove(from, to, settings))
			s.Moved.Send(Moved{Entity: player.EntityId, From: from, To: to})
		}
	}
}
