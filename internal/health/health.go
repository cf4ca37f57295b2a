// Package health tracks hearts and heart pickups.
package health

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/tiles"
)

const NAME = "health"

// Health is bounded by Max.
type Health struct {
	Hearts uint
	Max    uint
}

// CanTake reports whether n more hearts fit.
func (h Health) CanTake(n uint) bool {
	return h.Hearts+n <= h.Max
}

// Hearts is a pickup worth that many hearts.
type Hearts uint

// PickedUpHearts is sent after a pickup with the new health.
type PickedUpHearts struct {
	Entity ecs.EntityId
	Hearts uint
	Health Health
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.Register[Health](app)
	ecs.Register[Hearts](app)
	app.AddSystems(ecs.Update, &CheckForHeartSystem{logger: logging.For(NAME)}, ecs.InState(appstate.Running))
}

// CheckForHeartSystem lets health bearers pick up hearts on their cell when
// there is room for them. Hearts that do not fit stay where they are.
type CheckForHeartSystem struct {
	Bearers ecs.Query[struct {
		ecs.EntityId
		*Health
		*tiles.TileCoordinate
	}]
	Pickups ecs.Query[struct {
		ecs.EntityId
		*Hearts
		*tiles.TileCoordinate
	}]
	PickedUp ecs.EventWriter[PickedUpHearts]
	logger   *log.Logger
}

func (s *CheckForHeartSystem) Execute(frame *ecs.UpdateFrame) {
	taken := map[ecs.EntityId]bool{}
	for bearer := range s.Bearers.Values() {
		for pickup := range s.Pickups.Values() {
			if taken[pickup.EntityId] || !pickup.TileCoordinate.Eq2D(*bearer.TileCoordinate) {
				continue
			}
			n := uint(*pickup.Hearts)
			if !bearer.Health.CanTake(n) {
				s.logger.Debug("health full", "entity", bearer.EntityId, "hearts", bearer.Health.Hearts, "max", bearer.Health.Max)
				continue
			}

			taken[pickup.EntityId] = true
			bearer.Health.Hearts += n
			s.logger.Info("picked up hearts", "entity", bearer.EntityId, "hearts", bearer.Health.Hearts, "max", bearer.Health.Max)
			s.PickedUp.Send(PickedUpHearts{Entity: bearer.EntityId, Hearts: n, Health: *bearer.Health})
			frame.Commands.Delete(pickup.EntityId)
		}
	}
}
