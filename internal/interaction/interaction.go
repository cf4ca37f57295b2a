// Package interaction links triggers to their effects. Bumping into an
// entity with an InteractionSource interacts with every entity carrying a
// matching InteractionTarget.
package interaction

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/tilequest/ecs"
	"github.com/plus3/tilequest/internal/appstate"
	"github.com/plus3/tilequest/internal/logging"
	"github.com/plus3/tilequest/internal/movement"
)

const NAME = "interaction"

type InteractionId int64

type InteractionSource struct {
	Id InteractionId
}

type InteractionTarget struct {
	Id InteractionId
}

// Interacted is sent once per matching target.
type Interacted struct {
	Source ecs.EntityId
	Target ecs.EntityId
	Id     InteractionId
}

type Plugin struct{}

func (Plugin) Build(app *ecs.App) {
	ecs.Register[InteractionSource](app)
	ecs.Register[InteractionTarget](app)
	app.AddSystems(ecs.Update, &InteractionSystem{logger: logging.For(NAME)}, ecs.InState(appstate.Running))
}

type InteractionSystem struct {
	Blocked ecs.EventReader[movement.MovementBlocked]
	Targets ecs.Query[struct {
		ecs.EntityId
		*InteractionTarget
	}]
	Interacted ecs.EventWriter[Interacted]
	logger     *log.Logger
}

func (s *InteractionSystem) Execute(frame *ecs.UpdateFrame) {
	for ev := range s.Blocked.Read() {
		source := ecs.ReadComponent[InteractionSource](frame.Storage, ev.Blocker)
		if source == nil {
			continue
		}
		for target := range s.Targets.Values() {
			if target.InteractionTarget.Id != source.Id {
				continue
			}
			s.logger.Info("interacted", "source", ev.Blocker, "target", target.EntityId, "id", source.Id)
			s.Interacted.Send(Interacted{Source: ev.Blocker, Target: target.EntityId, Id: source.Id})
		}
	}
}
