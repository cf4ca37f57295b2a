package tiles

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/logging"
)

// Plugin registers the tile components, the BlockingMap resource and the
// systems that keep it current.
type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	Register(app)
	ecs.NewSingleton(app.Storage, NewBlockingMap())

	running := ecs.InState(appstate.Running)
	app.AddSystems(ecs.Update, &BlockingSystem{}, running)
	app.AddSystems(ecs.PostUpdate, &LoggingSystem{logger: logging.For(NAME)}, running)
}

// LoggingSystem writes every tile coordinate at debug level.
type LoggingSystem struct {
	Tiles ecs.Query[struct {
		ecs.EntityId
		*TileCoordinate
	}]
	logger *log.Logger
}

func (s *LoggingSystem) Execute(frame *ecs.UpdateFrame) {
	if s.logger.GetLevel() > log.DebugLevel {
		return
	}
	for tile := range s.Tiles.Values() {
		s.logger.Debug("tile", "entity", tile.EntityId, "coordinate", tile.TileCoordinate)
	}
}
